package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors. The message text is what callers see in the envelope.
var (
	// authentication
	ErrInvalidCredentials  = errors.New("Invalid credentials")
	ErrMissingCredentials  = errors.New("Username and password are required")
	ErrInvalidSessionToken = errors.New("Invalid session token")
	ErrSessionRequired     = errors.New("Authentication required")
	ErrSessionExpired      = errors.New("Session expired")
	ErrIncorrectPassword   = errors.New("Current password is incorrect")
	ErrRateLimitExceeded   = errors.New("Too many requests, please try again later")
	ErrInsufficientRole    = errors.New("Only donors can perform this action")

	// users and roles
	ErrUserNotFound      = errors.New("User not found")
	ErrUserAlreadyExists = errors.New("User with this username or email already exists")
	ErrInvalidRole       = errors.New("Invalid role selected")
	ErrInvalidEmail      = errors.New("Invalid email format")

	// donor module
	ErrDonorNotFound        = errors.New("Donor not found or invalid role.")
	ErrDonorProfileNotFound = errors.New("Donor profile not found.")
	ErrConversationNotFound = errors.New("Conversation not found.")
	ErrInvalidSender        = errors.New("Conversation not found or invalid sender.")
	ErrParticipantNotFound  = errors.New("Participant not found")
	ErrParticipantMismatch  = errors.New("Participant role does not match participant2Type")
	ErrSelfConversation     = errors.New("Cannot start a conversation with yourself")
	ErrStorageUnavailable   = errors.New("Image storage is not configured")
	ErrUnsupportedMediaType = errors.New("Only image files are allowed")
	ErrRequestTooLarge      = errors.New("Image exceeds the maximum upload size")
	ErrImageRequired        = errors.New("No image file provided")

	// request
	ErrMissingParameter = errors.New("All required fields must be provided")
	ErrInvalidParameter = errors.New("Invalid parameter")
	ErrInvalidPassword  = errors.New("New password must be at least 6 characters long")

	// database
	ErrDatabaseQuery  = errors.New("Database error occurred")
	ErrDatabaseInsert = errors.New("Database insert failed")
	ErrDatabaseUpdate = errors.New("Database update failed")
	ErrDatabaseDelete = errors.New("Database delete failed")

	ErrInternalServerError = errors.New("Internal server error")
)

// AppError error with an explicit HTTP status and user-facing message
type AppError struct {
	Err     error
	Message string
	Code    int
}

// Error implements error
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap supports errors.Is / errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError
func NewAppError(err error, message string, code int) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Code:    code,
	}
}

// WrapError wraps err with a context message
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// GetHTTPStatusCode maps an error to its HTTP status.
// Conflicts and bad credentials answer 400 so they are indistinguishable from validation failures.
func GetHTTPStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}

	switch {
	case errors.Is(err, ErrSessionRequired) || errors.Is(err, ErrSessionExpired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInsufficientRole):
		return http.StatusForbidden
	case errors.Is(err, ErrDonorNotFound) || errors.Is(err, ErrDonorProfileNotFound) ||
		errors.Is(err, ErrConversationNotFound) || errors.Is(err, ErrInvalidSender) ||
		errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrParticipantNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrIncorrectPassword) ||
		errors.Is(err, ErrInvalidSessionToken) || errors.Is(err, ErrUserAlreadyExists) ||
		errors.Is(err, ErrMissingCredentials):
		return http.StatusBadRequest
	case errors.Is(err, ErrMissingParameter) || errors.Is(err, ErrInvalidParameter) ||
		errors.Is(err, ErrInvalidRole) || errors.Is(err, ErrInvalidPassword) ||
		errors.Is(err, ErrParticipantMismatch) || errors.Is(err, ErrSelfConversation) ||
		errors.Is(err, ErrImageRequired) || errors.Is(err, ErrInvalidEmail):
		return http.StatusBadRequest
	case errors.Is(err, ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text safe to show to a client.
// Unknown errors collapse to a generic message so driver details never leak.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	for _, known := range publicErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return ErrInternalServerError.Error()
}

var publicErrors = []error{
	ErrInvalidCredentials, ErrMissingCredentials, ErrInvalidSessionToken, ErrSessionRequired, ErrSessionExpired,
	ErrIncorrectPassword, ErrRateLimitExceeded, ErrInsufficientRole,
	ErrUserNotFound, ErrUserAlreadyExists, ErrInvalidRole, ErrInvalidEmail,
	ErrDonorNotFound, ErrDonorProfileNotFound, ErrConversationNotFound, ErrInvalidSender,
	ErrParticipantNotFound, ErrParticipantMismatch, ErrSelfConversation,
	ErrStorageUnavailable, ErrUnsupportedMediaType, ErrRequestTooLarge, ErrImageRequired,
	ErrMissingParameter, ErrInvalidParameter, ErrInvalidPassword,
	ErrDatabaseQuery, ErrDatabaseInsert, ErrDatabaseUpdate, ErrDatabaseDelete,
}
