package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openbom/bomsight/internal/application"
	"github.com/openbom/bomsight/pkg/logger"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	snapshots *application.SnapshotService
	log       logger.Logger
	startedAt time.Time
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(snapshots *application.SnapshotService, log logger.Logger) *HealthHandler {
	return &HealthHandler{snapshots: snapshots, log: log, startedAt: time.Now()}
}

// LivenessCheck handles GET /health/live.
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
		"uptime": time.Since(h.startedAt).String(),
	})
}

// ReadinessCheck handles GET /health/ready. The service is ready when a
// snapshot can be served, which exercises the fixture source on a cold
// cache.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	if _, err := h.snapshots.Current(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"reason": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
