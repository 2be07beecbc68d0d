package dto

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/openbom/bomsight/internal/domain/models"
)

// exportColumns is the fixed column order of the CSV export. The export is
// consumed by spreadsheets, so identity and hierarchy come first and the
// risk fields last.
var exportColumns = []string{
	"id",
	"type",
	"name",
	"parentId",
	"level",
	"regionCode",
	"leadTimeDays",
	"altVendorCount",
	"singleSourceFlag",
	"riskScore",
	"riskTier",
}

// WriteRowsCSV streams the flattened rows as CSV, header first. Rows
// without a computed score leave the risk columns empty rather than
// writing a fake zero.
func WriteRowsCSV(w io.Writer, rows []models.BOMRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportColumns); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.ID,
			string(row.Type),
			row.Name,
			row.ParentID,
			strconv.Itoa(row.Level),
			row.RegionCode,
			strconv.Itoa(row.LeadTimeDays),
			strconv.Itoa(row.AltVendorCount),
			strconv.FormatBool(row.SingleSourceFlag),
			"",
			"",
		}
		if row.RiskScore != nil {
			record[9] = strconv.Itoa(*row.RiskScore)
			record[10] = string(row.RiskTier)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
