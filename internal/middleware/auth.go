package middleware

import (
	"foodshare/internal/services"
	"foodshare/internal/utils"

	"github.com/gin-gonic/gin"
)

const contextUserIDKey = "userID"

// SessionAuthMiddleware resolves "Authorization: Bearer <token>" to the session's
// user. Missing, unknown and expired sessions are rejected with 401.
func SessionAuthMiddleware(auth services.AuthServiceInterface) gin.HandlerFunc {
	return sessionAuth(auth, false)
}

// SessionAuthWithQueryMiddleware also accepts the token as ?token=, for
// websocket clients that cannot set headers
func SessionAuthWithQueryMiddleware(auth services.AuthServiceInterface) gin.HandlerFunc {
	return sessionAuth(auth, true)
}

func sessionAuth(auth services.AuthServiceInterface, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := utils.ExtractBearerToken(c.GetHeader("Authorization"))
		if !ok && allowQuery {
			token = c.Query("token")
		}
		if token == "" {
			utils.AbortWithError(c, utils.ErrSessionRequired)
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			utils.GetLogger().Debug("session rejected",
				"token", utils.SanitizeToken(token),
				"path", c.Request.URL.Path,
				"error", err.Error(),
			)
			utils.AbortWithError(c, err)
			return
		}

		c.Set(contextUserIDKey, user.ID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(contextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
