// Package handlers implements the HTTP endpoints of the analytics API.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openbom/bomsight/internal/application"
	"github.com/openbom/bomsight/internal/application/dto"
	"github.com/openbom/bomsight/pkg/constants"
	"github.com/openbom/bomsight/pkg/errors"
	"github.com/openbom/bomsight/pkg/logger"
)

// BOMHandler serves the flattened and nested hierarchy views.
type BOMHandler struct {
	snapshots *application.SnapshotService
	log       logger.Logger
}

// NewBOMHandler creates a BOMHandler.
func NewBOMHandler(snapshots *application.SnapshotService, log logger.Logger) *BOMHandler {
	return &BOMHandler{snapshots: snapshots, log: log}
}

// ListRows handles GET /api/v1/bom/rows.
func (h *BOMHandler) ListRows(c *gin.Context) {
	filter, err := rowFilterFromQuery(c)
	if err != nil {
		dto.SendError(c, err)
		return
	}

	rows, err := h.snapshots.Rows(c.Request.Context(), filter)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, gin.H{"rows": rows, "count": len(rows)})
}

// GetTree handles GET /api/v1/bom/tree.
func (h *BOMHandler) GetTree(c *gin.Context) {
	tree, err := h.snapshots.Tree(c.Request.Context())
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, gin.H{"roots": tree})
}

func rowFilterFromQuery(c *gin.Context) (application.RowFilter, error) {
	filter := application.RowFilter{
		SystemID: c.Query("system"),
		Search:   c.Query("q"),
	}

	if raw := c.Query("type"); raw != "" {
		entityType := constants.EntityType(raw)
		if entityType.HierarchyLevel() < 0 {
			return filter, errors.ErrInvalidRequest.WithDetail("type", raw)
		}
		filter.Type = entityType
	}
	if raw := c.Query("tier"); raw != "" {
		tier, err := tierFromQuery(raw)
		if err != nil {
			return filter, err
		}
		filter.Tier = tier
	}
	if raw := c.Query("minScore"); raw != "" {
		minScore, err := strconv.Atoi(raw)
		if err != nil || minScore < 0 || minScore > 100 {
			return filter, errors.ErrInvalidRequest.WithDetail("minScore", raw)
		}
		filter.MinScore = minScore
	}
	return filter, nil
}

func tierFromQuery(raw string) (constants.RiskTier, error) {
	tier := constants.RiskTier(raw)
	switch tier {
	case constants.TierLow, constants.TierModerate, constants.TierHigh, constants.TierCritical:
		return tier, nil
	}
	return "", errors.ErrInvalidRequest.WithDetail("tier", raw)
}
