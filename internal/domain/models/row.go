package models

import (
	"time"

	"github.com/openbom/bomsight/pkg/constants"
)

// BOMRow is one flattened row of the joined hierarchy, level 0 (System)
// through level 3 (Vendor). RiskScore and RiskTier are nil/empty for rows
// whose entity has no metrics record; a missing metrics record is tolerated,
// never an error.
type BOMRow struct {
	ID               string               `json:"id"`
	Type             constants.EntityType `json:"type"`
	Name             string               `json:"name"`
	ParentID         string               `json:"parentId,omitempty"`
	Level            int                  `json:"level"`
	LeadTimeDays     int                  `json:"leadTime"`
	RiskScore        *int                 `json:"riskScore,omitempty"`
	RiskTier         constants.RiskTier   `json:"riskTier,omitempty"`
	AltVendorCount   int                  `json:"altVendorCount"`
	SingleSourceFlag bool                 `json:"singleSourceFlag"`
	RegionCode       string               `json:"regionCode,omitempty"`
}

// TreeNode is a BOMRow with its children nested, for the tree endpoint.
type TreeNode struct {
	BOMRow
	Children []*TreeNode `json:"children,omitempty"`
}

// RegionRollup aggregates relationship weights by the target vendor's
// region, plus the derived diversity percentage.
type RegionRollup struct {
	Weights        map[string]float64 `json:"weights"`
	TotalWeight    float64            `json:"totalWeight"`
	DiversityIndex float64            `json:"diversityIndex"`
}

// Snapshot is the fully derived view of one population load: levelled rows,
// per-entity risk results, regional rollup and bookkeeping counters. It is
// rebuilt wholesale whenever the population changes; there is no
// incremental maintenance.
type Snapshot struct {
	GeneratedAt  time.Time                  `json:"generatedAt"`
	Rows         []BOMRow                   `json:"rows"`
	Results      map[string]RiskResult      `json:"results"`
	Rollup       RegionRollup               `json:"rollup"`
	TierCounts   map[constants.RiskTier]int `json:"tierCounts"`
	DanglingRefs int                        `json:"danglingRefs"`
	PartialDocs  []string                   `json:"partialDocs,omitempty"`
}

// RowsForSystem filters rows to the subtree rooted at the given system id.
func (s *Snapshot) RowsForSystem(systemID string) []BOMRow {
	if systemID == "" {
		return s.Rows
	}

	keep := map[string]bool{systemID: true}
	out := make([]BOMRow, 0)
	for _, row := range s.Rows {
		if row.ID == systemID || keep[row.ParentID] {
			keep[row.ID] = true
			out = append(out, row)
		}
	}
	return out
}
