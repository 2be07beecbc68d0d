package service

import (
	"math"

	"github.com/openbom/bomsight/internal/domain/models"
	"github.com/openbom/bomsight/pkg/constants"
)

// RiskScorer computes the weighted composite risk score and its derived
// tier for a single entity. The factor weights and tier boundaries live in
// pkg/constants and must not be reordered or retuned without a product
// decision; golden outputs depend on them.
type RiskScorer struct{}

// NewRiskScorer creates a new RiskScorer.
func NewRiskScorer() *RiskScorer {
	return &RiskScorer{}
}

// ComputeRiskScore combines the entity metrics into a 0-100 integer score.
// leadTime normalizes lead_time_days against the current population; a nil
// normalizer scores the lead-time factor 0, which is the documented
// degradation for an empty population. Inputs are not range-validated:
// out-of-range metrics clamp at the edges of the final score instead of
// raising an error.
func (s *RiskScorer) ComputeRiskScore(m models.EntityMetrics, leadTime *Normalizer) int {
	leadTimeRisk := 0.0
	if leadTime != nil {
		leadTimeRisk = leadTime.Normalize(float64(m.LeadTimeDays))
	}

	composite := constants.WeightInverseRobustness*(100-m.RobustnessScore) +
		constants.WeightComplexity*m.ComplexityScore +
		constants.WeightSourcingRisk*sourcingRisk(m) +
		constants.WeightGeoConcentration*m.GeoConcentrationIndex*100 +
		constants.WeightLeadTimeRisk*leadTimeRisk +
		constants.WeightCriticality*m.CriticalityScore

	return clampScore(int(math.Round(composite)))
}

// Score is a convenience that computes the score, tier, color and actions
// in one pass.
func (s *RiskScorer) Score(m models.EntityMetrics, leadTime *Normalizer, advisor *ActionAdvisor) models.RiskResult {
	score := s.ComputeRiskScore(m, leadTime)
	tier := TierForScore(score)
	return models.RiskResult{
		EntityID: m.ID,
		Score:    score,
		Tier:     tier,
		Color:    TierColor(tier),
		Actions:  advisor.RecommendActions(m, score),
	}
}

// sourcingRisk scores vendor diversification: a single-sourced entity takes
// the maximum, otherwise the base risk decays per alternate vendor and
// floors at zero.
func sourcingRisk(m models.EntityMetrics) float64 {
	if m.SingleSourceFlag {
		return constants.SourcingRiskSingleSource
	}
	risk := constants.SourcingRiskBase - constants.SourcingRiskPerAltVendor*float64(m.AltVendorCount)
	if risk < 0 {
		return 0
	}
	return risk
}

// TierForScore classifies a score into one of the four risk bands.
// Boundaries are inclusive on the low end of each band.
func TierForScore(score int) constants.RiskTier {
	switch {
	case score <= constants.TierLowMax:
		return constants.TierLow
	case score <= constants.TierModerateMax:
		return constants.TierModerate
	case score <= constants.TierHighMax:
		return constants.TierHigh
	default:
		return constants.TierCritical
	}
}

// TierColor maps a tier to its fixed dashboard color.
func TierColor(tier constants.RiskTier) string {
	switch tier {
	case constants.TierLow:
		return constants.TierColorLow
	case constants.TierModerate:
		return constants.TierColorModerate
	case constants.TierHigh:
		return constants.TierColorHigh
	default:
		return constants.TierColorCritical
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
