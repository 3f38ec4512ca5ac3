package services

import (
	"context"
	"io"
	"time"

	"foodshare/internal/models"
)

// AuthServiceInterface authentication and session operations
type AuthServiceInterface interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.UserProfile, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	ListRoles(ctx context.Context) (map[uint]models.Role, error)
	Logout(ctx context.Context, authHeader string) error
	Authenticate(ctx context.Context, token string) (*models.User, error)
	CurrentUser(ctx context.Context, userID uint) (*models.UserProfile, error)
	ChangePassword(ctx context.Context, userID uint, req models.ChangePasswordRequest) error
}

// DonorServiceInterface donor-scoped reads and messaging
type DonorServiceInterface interface {
	GetDonations(ctx context.Context, donorID uint) (*models.DonorDonationsResponse, error)
	GetProfile(ctx context.Context, donorID uint) (*models.DonorProfile, error)
	GetConversations(ctx context.Context, donorID uint) (*models.DonorConversationsResponse, error)
	GetMessages(ctx context.Context, conversationID uint) (*models.ConversationMessagesResponse, error)
	SendMessage(ctx context.Context, req models.SendMessageRequest) (*models.SendMessageResponse, error)
	StartConversation(ctx context.Context, donorID uint, req models.StartConversationRequest) (*models.Conversation, bool, error)
	CreateDonation(ctx context.Context, donorID uint, req models.CreateDonationRequest) (*models.Donation, error)
	MarkConversationRead(ctx context.Context, conversationID, userID uint) (*models.MarkReadResponse, error)
	GetUnreadCount(ctx context.Context, userID uint) (*models.UnreadCountResponse, error)
}

// ImageServiceInterface donation image uploads
type ImageServiceInterface interface {
	Enabled() bool
	UploadDonationImage(ctx context.Context, userID uint, r io.Reader) (*models.ImageUploadResponse, error)
}

// StorageClient object storage used for donation images
type StorageClient interface {
	PutObject(ctx context.Context, objectPath, contentType string, reader io.Reader, size int64) (string, error)
	RemoveObject(ctx context.Context, objectPath string) error
	HealthCheck(ctx context.Context) error
	PublicURL(objectPath string) string
}

// MessagePublisher receives committed messages for realtime delivery
type MessagePublisher interface {
	PublishMessage(conv *models.Conversation, msg *models.Message)
}

// =============================================================================
// Repository interfaces
// =============================================================================

// UserRepositoryInterface users table
type UserRepositoryInterface interface {
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	FindActiveByLogin(ctx context.Context, login string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error
	UpdatePassword(ctx context.Context, userID uint, hash string) error
	IsActiveDonor(ctx context.Context, id uint) (bool, error)
}

// RoleRepositoryInterface roles table
type RoleRepositoryInterface interface {
	List(ctx context.Context) ([]models.Role, error)
	GetByID(ctx context.Context, id uint) (*models.Role, error)
}

// SessionRepositoryInterface user_sessions table
type SessionRepositoryInterface interface {
	Create(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteByToken(ctx context.Context, token string) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// DonationRepositoryInterface donations table and donor profile reads
type DonationRepositoryInterface interface {
	ListByDonor(ctx context.Context, donorID uint) ([]models.Donation, error)
	Create(ctx context.Context, d *models.Donation) error
	GetDonorProfile(ctx context.Context, donorID uint) (*models.DonorProfile, error)
	GetStats(ctx context.Context, donorID uint) (models.DonationStats, error)
}

// ConversationRepositoryInterface conversations and messages
type ConversationRepositoryInterface interface {
	ListByDonor(ctx context.Context, donorID uint) ([]models.ConversationSummary, error)
	GetByID(ctx context.Context, id uint) (*models.Conversation, error)
	FindBetween(ctx context.Context, userA, userB uint) (*models.Conversation, error)
	Create(ctx context.Context, conv *models.Conversation) error
	ListMessages(ctx context.Context, conversationID uint) ([]models.Message, error)
	SendMessage(ctx context.Context, conversationID, senderID uint, text string, at time.Time) (*models.Message, *models.Conversation, error)
	MarkRead(ctx context.Context, conversationID, readerID uint) (int64, error)
	UnreadCount(ctx context.Context, userID uint) (int, error)
}
