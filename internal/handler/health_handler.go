package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// Pinger is anything whose reachability the health check reports.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler provides health endpoint.
type HealthHandler struct {
	storage string
	db      Pinger
	timeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. db may be nil for the
// in-memory storage.
func NewHealthHandler(storage string, db Pinger, timeout time.Duration) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{storage: storage, db: db, timeout: timeout}
}

// GetHealth responds with service and storage status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	storageStatus := "connected"
	code := http.StatusOK
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			storageStatus = "disconnected"
			code = http.StatusServiceUnavailable
		}
	}

	status := "healthy"
	if code != http.StatusOK {
		status = "degraded"
	}
	c.JSON(code, gin.H{
		"status": status,
		"uptime": int(time.Since(startTime).Seconds()),
		"storage": gin.H{
			"type":   h.storage,
			"status": storageStatus,
		},
	})
}
