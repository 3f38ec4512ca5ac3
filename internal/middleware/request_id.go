package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader header carrying the request id
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware reuses the caller's X-Request-ID or generates one
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}

		c.Set("requestID", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}
