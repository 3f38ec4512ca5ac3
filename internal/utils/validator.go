package utils

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"foodshare/internal/models"

	"github.com/go-playground/validator/v10"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var (
	structValidator *validator.Validate
	validatorOnce   sync.Once
)

// Validator shared validator with the custom tags registered
func Validator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("notblank", notBlank)
		_ = v.RegisterValidation("participanttype", participantType)
		structValidator = v
	})
	return structValidator
}

// ValidateStruct runs tag validation. A failed required/notblank tag becomes
// ErrMissingParameter, anything else ErrInvalidParameter.
func ValidateStruct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Tag() == "required" || fe.Tag() == "notblank" {
				return ErrMissingParameter
			}
		}
		return ErrInvalidParameter
	}
	return ErrInvalidParameter
}

// notblank: string not empty after trimming whitespace
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// participanttype: one of the seeded role names
func participantType(fl validator.FieldLevel) bool {
	return IsParticipantType(fl.Field().String())
}

// IsParticipantType reports whether name is a valid conversation counterpart type
func IsParticipantType(name string) bool {
	switch name {
	case models.RoleDonor, models.RoleVolunteer, models.RoleOrganization:
		return true
	}
	return false
}

// ValidateEmail checks email format
func ValidateEmail(email string) bool {
	if email == "" {
		return false
	}
	return emailRegex.MatchString(email)
}

// ValidateNewPassword minimum length for a changed password
func ValidateNewPassword(password string) bool {
	return len(password) >= 6
}

// SanitizeString drops control characters and trims
func SanitizeString(input string) string {
	input = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, input)
	return strings.TrimSpace(input)
}
