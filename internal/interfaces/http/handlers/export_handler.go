package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openbom/bomsight/internal/application"
	"github.com/openbom/bomsight/internal/application/dto"
	"github.com/openbom/bomsight/pkg/logger"
)

// ExportHandler streams snapshot exports.
type ExportHandler struct {
	snapshots *application.SnapshotService
	log       logger.Logger
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(snapshots *application.SnapshotService, log logger.Logger) *ExportHandler {
	return &ExportHandler{snapshots: snapshots, log: log}
}

// ExportRowsCSV handles GET /api/v1/export/rows.csv. The same filters as
// the rows endpoint apply, so a filtered dashboard view exports as seen.
func (h *ExportHandler) ExportRowsCSV(c *gin.Context) {
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

	filename := fmt.Sprintf("bom-rows-%s.csv", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := dto.WriteRowsCSV(c.Writer, rows); err != nil {
		h.log.Error(c.Request.Context(), "csv export aborted", err, logger.Fields{"rows": len(rows)})
	}
}
