package handlers

import (
	"errors"
	"net/http"
	"time"

	"foodshare/internal/middleware"
	"foodshare/internal/models"
	"foodshare/internal/services"
	"foodshare/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler authentication endpoints
type AuthHandler struct {
	authService services.AuthServiceInterface
	logger      utils.Logger
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(authService services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      utils.GetLogger(),
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	reqCtx := extractRequestContext(c)

	var req models.RegisterRequest
	if !bindJSONOrFail(c, &req, h.logger, "Register") {
		return
	}

	h.logger.Info("register request",
		"username", req.Username,
		"email", utils.SanitizeEmail(req.Email),
		"ip", reqCtx.ClientIP)

	profile, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, h.logger, "Register",
			"username", req.Username,
			"email", utils.SanitizeEmail(req.Email),
			"ip", reqCtx.ClientIP)
		return
	}

	h.logger.Info("user registered",
		"userID", profile.ID,
		"username", profile.Username,
		"ip", reqCtx.ClientIP,
		"duration", time.Since(reqCtx.StartTime))

	utils.SuccessResponse(c, http.StatusCreated, "User registered successfully", profile)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	reqCtx := extractRequestContext(c)

	var req models.LoginRequest
	if !bindJSONOrFail(c, &req, h.logger, "Login") {
		middleware.RecordLogin("invalid")
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidCredentials) || errors.Is(err, utils.ErrMissingCredentials) {
			middleware.RecordLogin("invalid")
		} else {
			middleware.RecordLogin("error")
		}
		respondServiceError(c, err, h.logger, "Login", "username", req.Username, "ip", reqCtx.ClientIP)
		return
	}

	middleware.RecordLogin("success")
	h.logger.Info("login succeeded",
		"userID", resp.User.ID,
		"username", resp.User.Username,
		"ip", reqCtx.ClientIP,
		"duration", time.Since(reqCtx.StartTime))

	utils.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}

// GetRoles handles GET /api/auth/roles
func (h *AuthHandler) GetRoles(c *gin.Context) {
	roles, err := h.authService.ListRoles(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, h.logger, "GetRoles")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Roles retrieved successfully", roles)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	reqCtx := extractRequestContext(c)

	if err := h.authService.Logout(c.Request.Context(), c.GetHeader("Authorization")); err != nil {
		respondServiceError(c, err, h.logger, "Logout", "ip", reqCtx.ClientIP)
		return
	}

	h.logger.Info("session closed", "ip", reqCtx.ClientIP)
	utils.MessageResponse(c, http.StatusOK, "Logout successful")
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := getUserIDOrFail(c)
	if !ok {
		return
	}

	profile, err := h.authService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, h.logger, "Me", "userID", userID)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "User retrieved successfully", profile)
}

// ChangePassword handles POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := getUserIDOrFail(c)
	if !ok {
		return
	}

	var req models.ChangePasswordRequest
	if !bindJSONOrFail(c, &req, h.logger, "ChangePassword") {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		respondServiceError(c, err, h.logger, "ChangePassword", "userID", userID)
		return
	}
	utils.MessageResponse(c, http.StatusOK, "Password changed successfully")
}
