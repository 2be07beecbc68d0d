// Package constants defines system-wide constants for the bomsight analytics service.
// This package provides type-safe constant definitions used across all modules.
package constants

import "time"

// ================================================================================
// Entity Type Constants
// ================================================================================

// EntityType identifies the level of a record in the BOM hierarchy.
type EntityType string

const (
	// EntityTypeSystem is a top-level system (hierarchy level 0).
	EntityTypeSystem EntityType = "system"

	// EntityTypeSubsystem is a subsystem under a system (level 1).
	EntityTypeSubsystem EntityType = "subsystem"

	// EntityTypeComponent is a component under a subsystem (level 2).
	EntityTypeComponent EntityType = "component"

	// EntityTypeVendor is a sourcing vendor for a component (level 3).
	EntityTypeVendor EntityType = "vendor"
)

// HierarchyLevel returns the tree depth of an entity type, System being 0.
func (t EntityType) HierarchyLevel() int {
	switch t {
	case EntityTypeSystem:
		return 0
	case EntityTypeSubsystem:
		return 1
	case EntityTypeComponent:
		return 2
	case EntityTypeVendor:
		return 3
	default:
		return -1
	}
}

// ================================================================================
// Risk Tier Constants
// ================================================================================

// RiskTier is one of four ordinal risk bands derived from a 0-100 score.
type RiskTier string

const (
	// TierLow covers scores 0-34.
	TierLow RiskTier = "Low"

	// TierModerate covers scores 35-59.
	TierModerate RiskTier = "Moderate"

	// TierHigh covers scores 60-74.
	TierHigh RiskTier = "High"

	// TierCritical covers scores 75-100.
	TierCritical RiskTier = "Critical"
)

// Tier band boundaries, inclusive upper bound of each band below Critical.
// These are product decisions and must be preserved exactly; changing them
// changes the risk semantics of every downstream consumer.
const (
	TierLowMax      = 34
	TierModerateMax = 59
	TierHighMax     = 74
)

// Tier colors used by the dashboard. Driven by the same band boundaries and
// kept next to them so the two cannot drift apart.
const (
	TierColorLow      = "#2e7d32"
	TierColorModerate = "#f9a825"
	TierColorHigh     = "#ef6c00"
	TierColorCritical = "#c62828"
)

// ================================================================================
// Risk Scoring Weights
// ================================================================================

// Composite score factor weights. The six weights sum to 1.0. Like the tier
// boundaries above, these are product constants with no derivation formula
// and must be preserved bit-for-bit.
const (
	WeightInverseRobustness = 0.28
	WeightComplexity        = 0.20
	WeightSourcingRisk      = 0.18
	WeightGeoConcentration  = 0.14
	WeightLeadTimeRisk      = 0.12
	WeightCriticality       = 0.08
)

// Sourcing risk factor constants: a single-sourced entity scores the
// maximum, otherwise the base decays per qualified alternate vendor.
const (
	SourcingRiskSingleSource = 100.0
	SourcingRiskBase         = 60.0
	SourcingRiskPerAltVendor = 10.0
)

// ================================================================================
// Mitigation Action Thresholds
// ================================================================================

// Thresholds for the ordered action heuristics. Rule order is part of the
// contract (list order = rule declaration order).
const (
	ActionDiversifyMinScore       = 60
	ActionRedesignMinComplexity   = 70
	ActionRedesignMaxRobustness   = 40
	ActionRebalanceMinGeoIndex    = 0.7
	ActionBufferMinLeadTimeDays   = 90
	ActionBufferMinScore          = 50
	ActionQualifyMinCriticality   = 70
	ActionDualSourceMinSpendShare = 0.4
	ActionDualSourceMinScore      = 50
	ActionSupplierMaxRobustness   = 30
	ActionSimplifyMinComplexity   = 80
)

// Mitigation action labels.
const (
	ActionDiversifyVendors  = "Diversify Vendor Options"
	ActionRedesignStudy     = "Strategic Redesign Feasibility Study"
	ActionRegionalRebalance = "Regional Rebalancing Initiative"
	ActionSafetyStockReview = "Safety Stock Buffer Review"
	ActionQualifyAlternates = "Qualify Alternate Vendors"
	ActionDualSourcing      = "Negotiate Dual-Sourcing Contracts"
	ActionSupplierProgram   = "Supplier Development Program"
	ActionSimplifyDesign    = "Design Simplification Assessment"
)

// ================================================================================
// Fixture Document Constants
// ================================================================================

// FixtureDoc names one of the JSON documents that make up a population.
type FixtureDoc string

const (
	FixtureDocSystems       FixtureDoc = "systems"
	FixtureDocSubsystems    FixtureDoc = "subsystems"
	FixtureDocComponents    FixtureDoc = "components"
	FixtureDocVendors       FixtureDoc = "vendors"
	FixtureDocRelationships FixtureDoc = "relationships"
	FixtureDocMetrics       FixtureDoc = "metrics"
	FixtureDocRegions       FixtureDoc = "regions"
)

// AllFixtureDocs lists every document the loader fetches, in fetch order.
// The regions document is optional; the other six form the population.
var AllFixtureDocs = []FixtureDoc{
	FixtureDocSystems,
	FixtureDocSubsystems,
	FixtureDocComponents,
	FixtureDocVendors,
	FixtureDocRelationships,
	FixtureDocMetrics,
	FixtureDocRegions,
}

// ================================================================================
// Cache Constants
// ================================================================================

const (
	// SnapshotCacheKey is the cache key for the current population snapshot.
	SnapshotCacheKey = "snapshot:current"

	// SnapshotCacheDefaultTTL is the default lifetime of a cached snapshot.
	SnapshotCacheDefaultTTL = 5 * time.Minute

	// SnapshotCacheCleanupInterval is how often expired entries are purged.
	SnapshotCacheCleanupInterval = 10 * time.Minute
)

// ================================================================================
// Error Code Constants
// ================================================================================

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	// ErrCodeInvalidRequest indicates a malformed or incomplete request.
	ErrCodeInvalidRequest ErrorCode = "invalid_request"

	// ErrCodeInvalidPopulation indicates a normalizer was built from an empty sample.
	ErrCodeInvalidPopulation ErrorCode = "invalid_population"

	// ErrCodeFixtureUnavailable indicates a fixture document could not be loaded.
	ErrCodeFixtureUnavailable ErrorCode = "fixture_unavailable"

	// ErrCodeNotFound indicates a requested entity does not exist in the population.
	ErrCodeNotFound ErrorCode = "not_found"

	// ErrCodeServerError indicates an unexpected internal failure.
	ErrCodeServerError ErrorCode = "server_error"
)

// ================================================================================
// Service Configuration Constants
// ================================================================================

const (
	// ServiceName identifies this service in logs and traces.
	ServiceName = "bomsight"

	// DefaultServicePort is the default HTTP service port.
	DefaultServicePort = 8080

	// DefaultRequestTimeout is the default per-document fixture fetch timeout.
	DefaultRequestTimeout = 10 * time.Second

	// DefaultShutdownTimeout is the graceful shutdown timeout.
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultWatchDebounce is the quiet period after a fixture file event
	// before the snapshot is rebuilt.
	DefaultWatchDebounce = 500 * time.Millisecond
)

// ================================================================================
// Context Keys
// ================================================================================

// ContextKey represents keys used in context.Context.
type ContextKey string

const (
	// ContextKeyRequestID is the key for the request ID in context.
	ContextKeyRequestID ContextKey = "request_id"

	// ContextKeyTraceID is the key for the distributed trace ID in context.
	ContextKeyTraceID ContextKey = "trace_id"
)
