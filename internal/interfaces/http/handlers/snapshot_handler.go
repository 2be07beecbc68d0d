package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openbom/bomsight/internal/application"
	"github.com/openbom/bomsight/internal/application/dto"
	"github.com/openbom/bomsight/pkg/logger"
)

// SnapshotHandler serves snapshot lifecycle endpoints.
type SnapshotHandler struct {
	snapshots *application.SnapshotService
	log       logger.Logger
}

// NewSnapshotHandler creates a SnapshotHandler.
func NewSnapshotHandler(snapshots *application.SnapshotService, log logger.Logger) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots, log: log}
}

// GetSummary handles GET /api/v1/snapshot/summary.
func (h *SnapshotHandler) GetSummary(c *gin.Context) {
	summary, err := h.snapshots.Summary(c.Request.Context())
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, summary)
}

// Refresh handles POST /api/v1/snapshot/refresh. It rebuilds synchronously
// and returns the summary of the fresh snapshot.
func (h *SnapshotHandler) Refresh(c *gin.Context) {
	if _, err := h.snapshots.Refresh(c.Request.Context()); err != nil {
		dto.SendError(c, err)
		return
	}

	summary, err := h.snapshots.Summary(c.Request.Context())
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, summary)
}
