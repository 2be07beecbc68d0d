package models

import "encoding/json"

// EntityMetrics holds the raw risk inputs for one component or vendor.
// Score fields are expected in [0,100] and ratio fields in [0.0,1.0]; the
// producer clamps them, the scorer does not re-validate.
type EntityMetrics struct {
	ID                    string  `json:"id"`
	ComplexityScore       float64 `json:"complexity_score"`
	RobustnessScore       float64 `json:"robustness_score"`
	LeadTimeDays          int     `json:"lead_time_days"`
	SingleSourceFlag      bool    `json:"single_source_flag"`
	AltVendorCount        int     `json:"alt_vendor_count"`
	GeoConcentrationIndex float64 `json:"geographic_concentration_index"`
	SpendShare            float64 `json:"spend_share"`
	CriticalityScore      float64 `json:"criticality_score"`
}

// metricsAliases mirrors EntityMetrics but also accepts the legacy field
// names used by the quadrant chart fixtures (x for complexity, y for
// robustness). Alias folding happens here, once, at decode time; business
// logic only ever sees the canonical record.
type metricsAliases struct {
	ID                    string   `json:"id"`
	ComplexityScore       *float64 `json:"complexity_score"`
	RobustnessScore       *float64 `json:"robustness_score"`
	LeadTimeDays          int      `json:"lead_time_days"`
	SingleSourceFlag      bool     `json:"single_source_flag"`
	AltVendorCount        int      `json:"alt_vendor_count"`
	GeoConcentrationIndex float64  `json:"geographic_concentration_index"`
	SpendShare            float64  `json:"spend_share"`
	CriticalityScore      float64  `json:"criticality_score"`

	AliasX          *float64 `json:"x"`
	AliasY          *float64 `json:"y"`
	AliasComplexity *float64 `json:"complexity"`
	AliasRobustness *float64 `json:"robustness"`
}

// UnmarshalJSON decodes a metrics record, folding legacy aliases into the
// canonical fields. Canonical names win over aliases when both are present.
func (m *EntityMetrics) UnmarshalJSON(data []byte) error {
	var aux metricsAliases
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	m.ID = aux.ID
	m.LeadTimeDays = aux.LeadTimeDays
	m.SingleSourceFlag = aux.SingleSourceFlag
	m.AltVendorCount = aux.AltVendorCount
	m.GeoConcentrationIndex = aux.GeoConcentrationIndex
	m.SpendShare = aux.SpendShare
	m.CriticalityScore = aux.CriticalityScore

	m.ComplexityScore = firstOf(aux.ComplexityScore, aux.AliasComplexity, aux.AliasX)
	m.RobustnessScore = firstOf(aux.RobustnessScore, aux.AliasRobustness, aux.AliasY)

	return nil
}

func firstOf(candidates ...*float64) float64 {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return 0
}
