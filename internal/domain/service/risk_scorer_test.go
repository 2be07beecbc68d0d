package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbom/bomsight/internal/domain/models"
	"github.com/openbom/bomsight/internal/domain/service"
	"github.com/openbom/bomsight/pkg/constants"
)

func leadTimeNormalizer(t *testing.T, values ...float64) *service.Normalizer {
	t.Helper()
	n, err := service.NewNormalizer(values)
	require.NoError(t, err)
	return n
}

func TestComputeRiskScore_AllFactorsAtMinimum(t *testing.T) {
	scorer := service.NewRiskScorer()
	m := models.EntityMetrics{
		ID:               "cmp-min",
		RobustnessScore:  100,
		ComplexityScore:  0,
		SingleSourceFlag: false,
		AltVendorCount:   6, // decays sourcing risk to zero
		LeadTimeDays:     0,
		CriticalityScore: 0,
	}

	score := scorer.ComputeRiskScore(m, leadTimeNormalizer(t, 0, 100))
	assert.Equal(t, 0, score)
}

func TestComputeRiskScore_AllFactorsAtMaximum(t *testing.T) {
	scorer := service.NewRiskScorer()
	m := models.EntityMetrics{
		ID:                    "cmp-max",
		RobustnessScore:       0,
		ComplexityScore:       100,
		SingleSourceFlag:      true,
		GeoConcentrationIndex: 1.0,
		LeadTimeDays:          100,
		CriticalityScore:      100,
	}

	score := scorer.ComputeRiskScore(m, leadTimeNormalizer(t, 0, 100))
	assert.Equal(t, 100, score)
}

func TestComputeRiskScore_ReferenceScenario(t *testing.T) {
	scorer := service.NewRiskScorer()
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

	// Lead-time population normalizes 120 to 100.
	score := scorer.ComputeRiskScore(m, leadTimeNormalizer(t, 0, 120))

	// round(0.28*65 + 0.20*82 + 0.18*100 + 0.14*90 + 0.12*100 + 0.08*90) = 84
	assert.Equal(t, 84, score)
	assert.Equal(t, constants.TierCritical, service.TierForScore(score))
}

func TestComputeRiskScore_NilNormalizerScoresLeadTimeZero(t *testing.T) {
	scorer := service.NewRiskScorer()
	m := models.EntityMetrics{ID: "cmp-nil", LeadTimeDays: 500}

	withNorm := scorer.ComputeRiskScore(m, leadTimeNormalizer(t, 0, 500))
	withoutNorm := scorer.ComputeRiskScore(m, nil)

	assert.Greater(t, withNorm, withoutNorm)
	// Only robustness (inverse of zero) and sourcing base contribute.
	assert.Equal(t, 39, withoutNorm) // round(0.28*100 + 0.18*60)
}

func TestComputeRiskScore_SourcingDecay(t *testing.T) {
	scorer := service.NewRiskScorer()
	norm := leadTimeNormalizer(t, 0, 100)

	base := models.EntityMetrics{ID: "cmp", RobustnessScore: 100}

	twoAlts := base
	twoAlts.AltVendorCount = 2
	manyAlts := base
	manyAlts.AltVendorCount = 9

	// 60 - 10*2 = 40 -> round(0.18*40) = 7; floors at 0 for many alternates.
	assert.Equal(t, 7, scorer.ComputeRiskScore(twoAlts, norm))
	assert.Equal(t, 0, scorer.ComputeRiskScore(manyAlts, norm))
}

func TestComputeRiskScore_GarbageInputsClampAtEdges(t *testing.T) {
	scorer := service.NewRiskScorer()
	norm := leadTimeNormalizer(t, 0, 100)

	over := models.EntityMetrics{
		ID:                    "cmp-over",
		RobustnessScore:       -50,
		ComplexityScore:       400,
		SingleSourceFlag:      true,
		GeoConcentrationIndex: 3.0,
		LeadTimeDays:          1000,
		CriticalityScore:      900,
	}
	under := models.EntityMetrics{ID: "cmp-under", RobustnessScore: 300, AltVendorCount: 10}

	assert.Equal(t, 100, scorer.ComputeRiskScore(over, norm))
	assert.Equal(t, 0, scorer.ComputeRiskScore(under, norm))
}

func TestTierForScore_Boundaries(t *testing.T) {
	cases := []struct {
		score int
		tier  constants.RiskTier
	}{
		{0, constants.TierLow},
		{34, constants.TierLow},
		{35, constants.TierModerate},
		{59, constants.TierModerate},
		{60, constants.TierHigh},
		{74, constants.TierHigh},
		{75, constants.TierCritical},
		{100, constants.TierCritical},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.tier, service.TierForScore(tc.score), "score %d", tc.score)
	}
}

func TestTierColor_ConsistentWithBands(t *testing.T) {
	assert.Equal(t, constants.TierColorLow, service.TierColor(service.TierForScore(constants.TierLowMax)))
	assert.Equal(t, constants.TierColorModerate, service.TierColor(service.TierForScore(constants.TierLowMax+1)))
	assert.Equal(t, constants.TierColorHigh, service.TierColor(service.TierForScore(constants.TierModerateMax+1)))
	assert.Equal(t, constants.TierColorCritical, service.TierColor(service.TierForScore(constants.TierHighMax+1)))
}
