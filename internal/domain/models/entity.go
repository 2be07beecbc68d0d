package models

import "github.com/openbom/bomsight/pkg/constants"

// System is a top-level entry of the BOM hierarchy.
type System struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Subsystem belongs to exactly one System.
type Subsystem struct {
	ID       string `json:"id"`
	SystemID string `json:"systemId"`
	Name     string `json:"name"`
}

// Component belongs to exactly one Subsystem.
type Component struct {
	ID          string `json:"id"`
	SubsystemID string `json:"subsystemId"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
}

// Vendor supplies one or more components. RegionCode links it to the
// regional rollup.
type Vendor struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RegionCode string `json:"regionCode"`
	Country    string `json:"country,omitempty"`
}

// Region is an optional lookup record for display names.
type Region struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Relationship is a weighted, typed edge between two entities. Hierarchy
// edges and cross-cutting flow edges share this shape.
type Relationship struct {
	ID       string               `json:"id,omitempty"`
	FromID   string               `json:"fromId"`
	ToID     string               `json:"toId"`
	FromType constants.EntityType `json:"fromType"`
	ToType   constants.EntityType `json:"toType"`
	Type     string               `json:"type,omitempty"`
	Weight   float64              `json:"weight"`
}

// Population is the full set of fixture collections a snapshot is built
// from. Any collection may be empty; the aggregator degrades gracefully
// on partial loads.
type Population struct {
	Systems       []System
	Subsystems    []Subsystem
	Components    []Component
	Vendors       []Vendor
	Relationships []Relationship
	Metrics       []EntityMetrics
	Regions       []Region
}

// Empty reports whether no entity collection carries any record.
func (p *Population) Empty() bool {
	return len(p.Systems) == 0 && len(p.Subsystems) == 0 &&
		len(p.Components) == 0 && len(p.Vendors) == 0
}
