package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openbom/bomsight/internal/application"
	"github.com/openbom/bomsight/internal/application/dto"
	"github.com/openbom/bomsight/pkg/errors"
	"github.com/openbom/bomsight/pkg/logger"
)

// RiskHandler serves the scored entity views.
type RiskHandler struct {
	snapshots *application.SnapshotService
	log       logger.Logger
}

// NewRiskHandler creates a RiskHandler.
func NewRiskHandler(snapshots *application.SnapshotService, log logger.Logger) *RiskHandler {
	return &RiskHandler{snapshots: snapshots, log: log}
}

// ListEntities handles GET /api/v1/risk/entities.
func (h *RiskHandler) ListEntities(c *gin.Context) {
	var filter application.EntityFilter

	if raw := c.Query("tier"); raw != "" {
		tier, err := tierFromQuery(raw)
		if err != nil {
			dto.SendError(c, err)
			return
		}
		filter.Tier = tier
	}
	if raw := c.Query("minScore"); raw != "" {
		minScore, err := strconv.Atoi(raw)
		if err != nil || minScore < 0 || minScore > 100 {
			dto.SendError(c, errors.ErrInvalidRequest.WithDetail("minScore", raw))
			return
		}
		filter.MinScore = minScore
	}

	results, err := h.snapshots.Entities(c.Request.Context(), filter)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, gin.H{"entities": results, "count": len(results)})
}

// GetEntity handles GET /api/v1/risk/entities/:id.
func (h *RiskHandler) GetEntity(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		dto.SendError(c, errors.ErrInvalidRequest.WithDetail("id", "missing"))
		return
	}

	result, err := h.snapshots.Entity(c.Request.Context(), id)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, result)
}
