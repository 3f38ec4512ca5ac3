package middleware

import (
	"time"

	"foodshare/internal/utils"

	"github.com/gin-gonic/gin"
)

// LoggerMiddleware logs one line per request; bodies and tokens are never logged
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []interface{}{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"route", c.FullPath(),
			"ip", c.ClientIP(),
			"latencyMs", latency.Milliseconds(),
			"bytes", c.Writer.Size(),
		}
		if userID, exists := c.Get(contextUserIDKey); exists {
			fields = append(fields, "userID", userID)
		}
		if requestID, exists := c.Get("requestID"); exists {
			fields = append(fields, "requestID", requestID)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		logger := utils.GetLogger()
		switch {
		case status >= 500:
			logger.Error("request failed", fields...)
		case status >= 400:
			logger.Warn("request rejected", fields...)
		default:
			logger.Info("request handled", fields...)
		}
	}
}
