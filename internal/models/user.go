package models

import "time"

// Role names in the seeded catalog
const (
	RoleDonor        = "donor"
	RoleVolunteer    = "volunteer"
	RoleOrganization = "organization"
)

// User row of the users table joined with its role name
type User struct {
	ID            uint       `json:"id" db:"id"`
	Username      string     `json:"username" db:"username"`
	Email         string     `json:"email" db:"email"`
	PasswordHash  string     `json:"-" db:"password_hash"`
	FirstName     string     `json:"firstName" db:"first_name"`
	LastName      string     `json:"lastName" db:"last_name"`
	Phone         *string    `json:"phone" db:"phone"`
	RoleID        uint       `json:"roleId" db:"role_id"`
	RoleName      string     `json:"roleName" db:"role_name"`
	IsActive      bool       `json:"isActive" db:"is_active"`
	EmailVerified bool       `json:"emailVerified" db:"email_verified"`
	LastLogin     *time.Time `json:"lastLogin" db:"last_login"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
}

// DisplayName "first last"
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// Profile public view of the user, never carries the hash
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Phone:         u.Phone,
		RoleID:        u.RoleID,
		RoleName:      u.RoleName,
		IsActive:      u.IsActive,
		EmailVerified: u.EmailVerified,
		LastLogin:     u.LastLogin,
	}
}

// Role entry of the role catalog
type Role struct {
	ID          uint   `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

// Session row of user_sessions
type Session struct {
	ID        uint      `json:"id" db:"id"`
	UserID    uint      `json:"userId" db:"user_id"`
	Token     string    `json:"-" db:"session_token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Expired reports whether the session is past its expiry at now
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// UserProfile public user fields
type UserProfile struct {
	ID            uint       `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Phone         *string    `json:"phone"`
	RoleID        uint       `json:"roleId"`
	RoleName      string     `json:"roleName"`
	IsActive      bool       `json:"isActive"`
	EmailVerified bool       `json:"emailVerified"`
	LastLogin     *time.Time `json:"lastLogin"`
}

// RegisterRequest registration body; phone is optional
type RegisterRequest struct {
	Username  string  `json:"username" validate:"notblank"`
	Email     string  `json:"email" validate:"notblank"`
	Password  string  `json:"password" validate:"notblank"`
	FirstName string  `json:"firstName" validate:"notblank"`
	LastName  string  `json:"lastName" validate:"notblank"`
	Phone     *string `json:"phone"`
	RoleID    *uint   `json:"roleId" validate:"required"`
}

// LoginRequest login body; username may also be an email
type LoginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

// LoginResponse login payload
type LoginResponse struct {
	User         UserProfile `json:"user"`
	SessionToken string      `json:"sessionToken"`
	ExpiresAt    time.Time   `json:"expiresAt"`
}

// ChangePasswordRequest change-password body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"notblank"`
	NewPassword     string `json:"newPassword" validate:"notblank"`
}
