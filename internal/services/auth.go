package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"foodshare/internal/models"
	"foodshare/internal/utils"
)

// AuthService registration, login and session lifecycle
type AuthService struct {
	userRepo      UserRepositoryInterface
	roleRepo      RoleRepositoryInterface
	sessionRepo   SessionRepositoryInterface
	sessionTTL    time.Duration
	now           func() time.Time
	checkPassword func(password, hash string) bool
	logger        utils.Logger
}

// NewAuthService creates an AuthService
func NewAuthService(userRepo UserRepositoryInterface, roleRepo RoleRepositoryInterface, sessionRepo SessionRepositoryInterface, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		userRepo:      userRepo,
		roleRepo:      roleRepo,
		sessionRepo:   sessionRepo,
		sessionTTL:    sessionTTL,
		now:           func() time.Time { return time.Now().UTC() },
		checkPassword: utils.CheckPasswordHash,
		logger:        utils.GetLogger(),
	}
}

// Register creates an account. The identity conflict check runs before the role
// check, and nothing is written unless both pass.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.UserProfile, error) {
	req.Username = utils.SanitizeString(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = utils.SanitizeString(req.FirstName)
	req.LastName = utils.SanitizeString(req.LastName)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.ErrMissingParameter
	}
	if !utils.ValidateEmail(req.Email) {
		return nil, utils.ErrInvalidEmail
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.ErrUserAlreadyExists
	}

	role, err := s.roleRepo.GetByID(ctx, *req.RoleID)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidParameter) {
			return nil, err
		}
		s.logger.Error("hash password failed", "error", err.Error())
		return nil, utils.ErrInternalServerError
	}

	user := &models.User{
		Username:      req.Username,
		Email:         req.Email,
		PasswordHash:  hash,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		RoleID:        role.ID,
		RoleName:      role.Name,
		IsActive:      true,
		EmailVerified: false,
		CreatedAt:     s.now().Truncate(time.Second),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "userID", user.ID, "role", role.Name, "email", utils.SanitizeEmail(user.Email))
	profile := user.Profile()
	return &profile, nil
}

// Login verifies credentials and issues a new session. Unknown user and wrong
// password fail with the same error after the same bcrypt work.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.ErrMissingCredentials
	}

	user, err := s.userRepo.FindActiveByLogin(ctx, req.Username)
	if err != nil {
		if errors.Is(err, utils.ErrUserNotFound) {
			s.checkPassword(req.Password, utils.DummyPasswordHash())
			return nil, utils.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.checkPassword(req.Password, user.PasswordHash) {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateSessionToken()
	if err != nil {
		s.logger.Error("generate session token failed", "userID", user.ID, "error", err.Error())
		return nil, utils.ErrInternalServerError
	}

	// DATETIME columns keep whole seconds
	now := s.now().Truncate(time.Second)
	session := &models.Session{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	s.logger.Info("user logged in", "userID", user.ID, "expiresAt", session.ExpiresAt)
	return &models.LoginResponse{
		User:         user.Profile(),
		SessionToken: token,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}

// ListRoles returns the role catalog keyed by id
func (s *AuthService) ListRoles(ctx context.Context) (map[uint]models.Role, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[uint]models.Role, len(roles))
	for _, r := range roles {
		out[r.ID] = r
	}
	return out, nil
}

// Logout deletes the session named by a "Bearer <token>" header. Expiry is not
// checked; a second logout with the same token fails.
func (s *AuthService) Logout(ctx context.Context, authHeader string) error {
	token, ok := utils.ExtractBearerToken(authHeader)
	if !ok {
		return utils.ErrInvalidSessionToken
	}

	n, err := s.sessionRepo.DeleteByToken(ctx, token)
	if err != nil {
		return err
	}
	if n == 0 {
		return utils.ErrInvalidSessionToken
	}
	return nil
}

// Authenticate resolves a session token to its active user
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, utils.ErrSessionRequired
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidSessionToken) {
			return nil, utils.ErrSessionRequired
		}
		return nil, err
	}
	if session.Expired(s.now()) {
		return nil, utils.ErrSessionExpired
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, utils.ErrUserNotFound) {
			return nil, utils.ErrSessionRequired
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, utils.ErrSessionRequired
	}
	return user, nil
}

// CurrentUser public profile of userID
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

// ChangePassword replaces the password after verifying the current one
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, req models.ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrMissingParameter
	}
	if !utils.ValidateNewPassword(req.NewPassword) {
		return utils.ErrInvalidPassword
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.checkPassword(req.CurrentPassword, user.PasswordHash) {
		return utils.ErrIncorrectPassword
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidParameter) {
			return err
		}
		s.logger.Error("hash password failed", "userID", userID, "error", err.Error())
		return utils.ErrInternalServerError
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.logger.Info("password changed", "userID", userID)
	return nil
}
