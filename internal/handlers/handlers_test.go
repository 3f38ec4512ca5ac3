package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodshare/internal/models"
	"foodshare/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetLogger(utils.NewNopLogger())
}

type fakeAuthService struct {
	register       func(req models.RegisterRequest) (*models.UserProfile, error)
	login          func(req models.LoginRequest) (*models.LoginResponse, error)
	roles          map[uint]models.Role
	logoutHeader   string
	logoutErr      error
	currentUser    func(userID uint) (*models.UserProfile, error)
	changePassword func(userID uint, req models.ChangePasswordRequest) error
}

func (f *fakeAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.UserProfile, error) {
	return f.register(req)
}

func (f *fakeAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	return f.login(req)
}

func (f *fakeAuthService) ListRoles(ctx context.Context) (map[uint]models.Role, error) {
	return f.roles, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, authHeader string) error {
	f.logoutHeader = authHeader
	return f.logoutErr
}

func (f *fakeAuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	return nil, utils.ErrSessionRequired
}

func (f *fakeAuthService) CurrentUser(ctx context.Context, userID uint) (*models.UserProfile, error) {
	return f.currentUser(userID)
}

func (f *fakeAuthService) ChangePassword(ctx context.Context, userID uint, req models.ChangePasswordRequest) error {
	return f.changePassword(userID, req)
}

// withUser stands in for the session middleware
func withUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func doJSON(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) models.APIResponse[T] {
	t.Helper()
	var env models.APIResponse[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}
