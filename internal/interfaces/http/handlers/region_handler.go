package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openbom/bomsight/internal/application"
	"github.com/openbom/bomsight/internal/application/dto"
	"github.com/openbom/bomsight/pkg/logger"
)

// RegionHandler serves the regional rollup view.
type RegionHandler struct {
	snapshots *application.SnapshotService
	log       logger.Logger
}

// NewRegionHandler creates a RegionHandler.
func NewRegionHandler(snapshots *application.SnapshotService, log logger.Logger) *RegionHandler {
	return &RegionHandler{snapshots: snapshots, log: log}
}

// GetRollup handles GET /api/v1/regions/rollup.
func (h *RegionHandler) GetRollup(c *gin.Context) {
	rollup, err := h.snapshots.Rollup(c.Request.Context())
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, rollup)
}
