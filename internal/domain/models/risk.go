package models

import "github.com/openbom/bomsight/pkg/constants"

// RiskResult is the derived risk assessment for one entity. It is computed
// on demand from an EntityMetrics and the current population's lead-time
// normalizer, and is never cached independently of the snapshot it belongs
// to: when the population changes, every result is recomputed.
type RiskResult struct {
	EntityID string             `json:"entity_id"`
	Score    int                `json:"score"`
	Tier     constants.RiskTier `json:"tier"`
	Color    string             `json:"color"`
	Actions  []string           `json:"actions"`
}
