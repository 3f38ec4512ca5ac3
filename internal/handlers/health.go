package handlers

import (
	"context"
	"net/http"
	"time"

	"foodshare/internal/services"
	"foodshare/internal/utils"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler liveness, readiness and dependency health
type HealthHandler struct {
	db      Pinger
	storage services.StorageClient
	logger  utils.Logger
}

// NewHealthHandler creates a HealthHandler; storage is nil when object storage is disabled
func NewHealthHandler(db Pinger, storage services.StorageClient) *HealthHandler {
	return &HealthHandler{
		db:      db,
		storage: storage,
		logger:  utils.GetLogger(),
	}
}

// HealthStatus payload of /health
type HealthStatus struct {
	Status    string                       `json:"status"`
	Timestamp time.Time                    `json:"timestamp"`
	Version   string                       `json:"version"`
	Services  map[string]map[string]string `json:"services"`
}

// Check handles GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := "healthy"
	deps := make(map[string]map[string]string)

	if h.db == nil {
		status = "unhealthy"
		deps["database"] = map[string]string{"status": "not_configured"}
	} else if err := h.db.Ping(ctx); err != nil {
		status = "unhealthy"
		deps["database"] = map[string]string{"status": "down"}
		h.logger.Error("database health check failed", "error", err.Error())
	} else {
		deps["database"] = map[string]string{"status": "up"}
	}

	// storage is optional; a failure degrades uploads only
	if h.storage == nil {
		deps["storage"] = map[string]string{"status": "disabled"}
	} else if err := h.storage.HealthCheck(ctx); err != nil {
		deps["storage"] = map[string]string{"status": "down"}
		h.logger.Warn("storage health check failed", "error", err.Error())
	} else {
		deps["storage"] = map[string]string{"status": "up"}
	}

	code := http.StatusOK
	if status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthStatus{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
		Services:  deps,
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Error("not ready: database unreachable", "error", err.Error())
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "Service not ready")
			return
		}
	}
	utils.MessageResponse(c, http.StatusOK, "Service ready")
}

// Live handles GET /live
func (h *HealthHandler) Live(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Service alive", gin.H{"timestamp": time.Now().Unix()})
}
