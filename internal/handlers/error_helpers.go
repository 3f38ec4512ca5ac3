package handlers

import (
	"net/http"

	"foodshare/internal/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError writes the envelope for a service error. Server-side
// failures are logged with the raw error; the client only sees the public text.
func respondServiceError(c *gin.Context, err error, logger utils.Logger, operation string, logFields ...interface{}) {
	code := utils.GetHTTPStatusCode(err)

	fields := []interface{}{
		"operation", operation,
		"error", err.Error(),
		"endpoint", c.Request.URL.Path,
		"method", c.Request.Method,
		"status", code,
	}
	fields = append(fields, logFields...)

	if code >= http.StatusInternalServerError {
		logger.Error("request failed", fields...)
	} else {
		logger.Warn("request rejected", fields...)
	}

	utils.ErrorResponse(c, code, utils.PublicMessage(err))
}

// logNonBlockingError logs a failure that does not change the response
func logNonBlockingError(logger utils.Logger, operation string, err error, logFields ...interface{}) {
	fields := []interface{}{
		"operation", operation,
		"error", err.Error(),
	}
	fields = append(fields, logFields...)
	logger.Warn("non-critical operation failed", fields...)
}
