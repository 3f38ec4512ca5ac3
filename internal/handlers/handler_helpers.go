package handlers

import (
	"errors"
	"io"
	"time"

	"foodshare/internal/middleware"
	"foodshare/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestContext per-request values used in log lines
type RequestContext struct {
	ClientIP  string
	UserAgent string
	RequestID string
	StartTime time.Time
}

// extractRequestContext computes the request context once and caches it on c
func extractRequestContext(c *gin.Context) RequestContext {
	if ctx, exists := c.Get("_request_context"); exists {
		if reqCtx, ok := ctx.(RequestContext); ok {
			return reqCtx
		}
	}

	reqCtx := RequestContext{
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: c.GetString("requestID"),
		StartTime: time.Now(),
	}
	c.Set("_request_context", reqCtx)
	return reqCtx
}

// getUserIDOrFail reads the session user id, answering 401 when absent
func getUserIDOrFail(c *gin.Context) (uint, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondError(c, utils.ErrSessionRequired)
		return 0, false
	}
	return userID, true
}

// bindJSONOrFail decodes the body into req. An empty body leaves req zeroed so
// the service reports the missing fields; malformed JSON answers 400.
func bindJSONOrFail(c *gin.Context, req interface{}, logger utils.Logger, funcName string) bool {
	err := c.ShouldBindJSON(req)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	if logger != nil && funcName != "" {
		logger.Warn(funcName+" bad request body", "error", err.Error())
	}
	utils.RespondError(c, utils.ErrInvalidParameter)
	return false
}

// parseIDParam parses a positive numeric path parameter, answering 400 otherwise
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := utils.ParseID(c.Param(name))
	if err != nil {
		utils.RespondError(c, err)
		return 0, false
	}
	return id, true
}
