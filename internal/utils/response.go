package utils

import (
	"time"

	"foodshare/internal/models"

	"github.com/gin-gonic/gin"
)

// SuccessResponse writes a success envelope carrying data
func SuccessResponse[T any](c *gin.Context, code int, message string, data T) {
	c.JSON(code, models.APIResponse[T]{
		Success:    true,
		Message:    message,
		Data:       data,
		Timestamp:  time.Now().UTC(),
		StatusCode: code,
	})
}

// MessageResponse writes a success envelope without data
func MessageResponse(c *gin.Context, code int, message string) {
	c.JSON(code, models.APIResponse[any]{
		Success:    true,
		Message:    message,
		Timestamp:  time.Now().UTC(),
		StatusCode: code,
	})
}

// ErrorResponse writes a failure envelope; the text goes into both message and error
func ErrorResponse(c *gin.Context, code int, detail string) {
	c.JSON(code, failure(code, detail))
}

// AbortWithError writes the envelope for err and stops the handler chain
func AbortWithError(c *gin.Context, err error) {
	code := GetHTTPStatusCode(err)
	c.AbortWithStatusJSON(code, failure(code, PublicMessage(err)))
}

// RespondError maps err to its status and public message
func RespondError(c *gin.Context, err error) {
	code := GetHTTPStatusCode(err)
	ErrorResponse(c, code, PublicMessage(err))
}

func failure(code int, detail string) models.APIResponse[any] {
	return models.APIResponse[any]{
		Success:    false,
		Message:    detail,
		Error:      detail,
		Timestamp:  time.Now().UTC(),
		StatusCode: code,
	}
}
