package service

import (
	"github.com/openbom/bomsight/internal/domain/models"
	"github.com/openbom/bomsight/pkg/constants"
)

// actionRule is one threshold predicate paired with its fixed label.
type actionRule struct {
	label   string
	applies func(m models.EntityMetrics, score int) bool
}

// ActionAdvisor maps metric thresholds to recommended mitigation actions.
// Rules are independent booleans evaluated in declaration order; the order
// only matters for presentation. The advisor is pure and total: it never
// fails, the worst case is an empty list.
type ActionAdvisor struct {
	rules []actionRule
}

// NewActionAdvisor creates the advisor with the standard rule set.
func NewActionAdvisor() *ActionAdvisor {
	return &ActionAdvisor{rules: []actionRule{
		{constants.ActionDiversifyVendors, func(m models.EntityMetrics, score int) bool {
			return m.SingleSourceFlag && score >= constants.ActionDiversifyMinScore
		}},
		{constants.ActionRedesignStudy, func(m models.EntityMetrics, score int) bool {
			return m.ComplexityScore >= constants.ActionRedesignMinComplexity &&
				m.RobustnessScore <= constants.ActionRedesignMaxRobustness
		}},
		{constants.ActionRegionalRebalance, func(m models.EntityMetrics, score int) bool {
			return m.GeoConcentrationIndex >= constants.ActionRebalanceMinGeoIndex
		}},
		{constants.ActionSafetyStockReview, func(m models.EntityMetrics, score int) bool {
			return m.LeadTimeDays >= constants.ActionBufferMinLeadTimeDays &&
				score >= constants.ActionBufferMinScore
		}},
		{constants.ActionQualifyAlternates, func(m models.EntityMetrics, score int) bool {
			return m.AltVendorCount == 0 && m.CriticalityScore >= constants.ActionQualifyMinCriticality
		}},
		{constants.ActionDualSourcing, func(m models.EntityMetrics, score int) bool {
			return m.SpendShare >= constants.ActionDualSourceMinSpendShare &&
				score >= constants.ActionDualSourceMinScore
		}},
		{constants.ActionSupplierProgram, func(m models.EntityMetrics, score int) bool {
			return m.RobustnessScore <= constants.ActionSupplierMaxRobustness
		}},
		{constants.ActionSimplifyDesign, func(m models.EntityMetrics, score int) bool {
			return m.ComplexityScore >= constants.ActionSimplifyMinComplexity
		}},
	}}
}

// RecommendActions evaluates every rule against the same (metrics, score)
// pair and returns the labels of the rules that hold, in rule order.
func (a *ActionAdvisor) RecommendActions(m models.EntityMetrics, score int) []string {
	actions := make([]string, 0, len(a.rules))
	for _, rule := range a.rules {
		if rule.applies(m, score) {
			actions = append(actions, rule.label)
		}
	}
	return actions
}
