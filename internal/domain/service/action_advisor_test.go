package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openbom/bomsight/internal/domain/models"
	"github.com/openbom/bomsight/internal/domain/service"
	"github.com/openbom/bomsight/pkg/constants"
)

func TestRecommendActions_NoRulesFire(t *testing.T) {
	advisor := service.NewActionAdvisor()
	m := models.EntityMetrics{
		ID:              "cmp-quiet",
		RobustnessScore: 90,
		ComplexityScore: 10,
		AltVendorCount:  3,
	}

	actions := advisor.RecommendActions(m, 20)
	assert.Empty(t, actions)
}

func TestRecommendActions_ReferenceScenario(t *testing.T) {
	advisor := service.NewActionAdvisor()
	m := models.EntityMetrics{
		ID:                    "cmp-ref",
		RobustnessScore:       35,
		ComplexityScore:       82,
		SingleSourceFlag:      true,
		AltVendorCount:        0,
		GeoConcentrationIndex: 0.9,
		LeadTimeDays:          120,
		SpendShare:            0.2,
		CriticalityScore:      90,
	}

	actions := advisor.RecommendActions(m, 84)

	assert.Equal(t, []string{
		constants.ActionDiversifyVendors,
		constants.ActionRedesignStudy,
		constants.ActionRegionalRebalance,
		constants.ActionSafetyStockReview,
		constants.ActionQualifyAlternates,
		constants.ActionSimplifyDesign,
	}, actions)
}

func TestRecommendActions_Deterministic(t *testing.T) {
	advisor := service.NewActionAdvisor()
	m := models.EntityMetrics{
		ID:                    "cmp-det",
		RobustnessScore:       25,
		ComplexityScore:       85,
		SingleSourceFlag:      true,
		GeoConcentrationIndex: 0.8,
		LeadTimeDays:          100,
		SpendShare:            0.5,
		CriticalityScore:      80,
	}

	first := advisor.RecommendActions(m, 90)
	second := advisor.RecommendActions(m, 90)
	assert.Equal(t, first, second)
}

func TestRecommendActions_ScoreGates(t *testing.T) {
	advisor := service.NewActionAdvisor()
	m := models.EntityMetrics{
		ID:               "cmp-gate",
		RobustnessScore:  80,
		SingleSourceFlag: true,
		LeadTimeDays:     120,
		SpendShare:       0.6,
	}

	// Below every score gate: single-source, lead-time and spend-share rules
	// all stay silent.
	assert.Empty(t, advisor.RecommendActions(m, 49))

	// Score 50 opens the lead-time and spend-share gates but not the
	// single-source gate (which needs 60).
	mid := advisor.RecommendActions(m, 50)
	assert.Equal(t, []string{
		constants.ActionSafetyStockReview,
		constants.ActionDualSourcing,
	}, mid)

	high := advisor.RecommendActions(m, 60)
	assert.Equal(t, []string{
		constants.ActionDiversifyVendors,
		constants.ActionSafetyStockReview,
		constants.ActionDualSourcing,
	}, high)
}

func TestRecommendActions_QualifyAlternatesNeedsZeroVendors(t *testing.T) {
	advisor := service.NewActionAdvisor()

	noAlts := models.EntityMetrics{ID: "cmp-a", RobustnessScore: 90, AltVendorCount: 0, CriticalityScore: 85}
	oneAlt := models.EntityMetrics{ID: "cmp-b", RobustnessScore: 90, AltVendorCount: 1, CriticalityScore: 85}

	assert.Contains(t, advisor.RecommendActions(noAlts, 10), constants.ActionQualifyAlternates)
	assert.NotContains(t, advisor.RecommendActions(oneAlt, 10), constants.ActionQualifyAlternates)
}
