// Package application orchestrates the scoring core over a loaded
// population: the aggregator joins entity records into levelled rows and
// regional rollups, and the snapshot service manages the cached result of
// one full load -> normalize -> score -> aggregate pass.
package application

import (
	"context"
	"sort"
	"time"

	"github.com/dominikbraun/graph"

	"github.com/openbom/bomsight/internal/domain/models"
	"github.com/openbom/bomsight/internal/domain/service"
	"github.com/openbom/bomsight/pkg/constants"
	"github.com/openbom/bomsight/pkg/logger"
)

// entityRef is the join index entry for one entity id.
type entityRef struct {
	entityType constants.EntityType
	name       string
	regionCode string
}

// AggregatorService joins the population collections into the derived
// snapshot views. It runs once per population snapshot; there is no
// incremental maintenance, callers recompute the full join on every change.
type AggregatorService struct {
	scorer  *service.RiskScorer
	advisor *service.ActionAdvisor
	log     logger.Logger
}

// NewAggregatorService creates a new AggregatorService.
func NewAggregatorService(scorer *service.RiskScorer, advisor *service.ActionAdvisor, log logger.Logger) *AggregatorService {
	return &AggregatorService{scorer: scorer, advisor: advisor, log: log}
}

// BuildSnapshot derives rows, risk results and the regional rollup from a
// population. It tolerates empty and partial populations (producing empty
// views) and skips dangling references silently; the only bookkeeping for
// them is the DanglingRefs counter.
func (a *AggregatorService) BuildSnapshot(ctx context.Context, pop *models.Population) *models.Snapshot {
	snap := &models.Snapshot{
		GeneratedAt: time.Now().UTC(),
		Rows:        make([]models.BOMRow, 0),
		Results:     make(map[string]models.RiskResult),
		TierCounts:  make(map[constants.RiskTier]int),
		Rollup: models.RegionRollup{
			Weights: make(map[string]float64),
		},
	}

	leadTime := a.fitLeadTimeNormalizer(ctx, pop.Metrics)

	metricsByID := make(map[string]models.EntityMetrics, len(pop.Metrics))
	for _, m := range pop.Metrics {
		metricsByID[m.ID] = m
		result := a.scorer.Score(m, leadTime, a.advisor)
		snap.Results[m.ID] = result
		snap.TierCounts[result.Tier]++
	}

	index := a.buildIndex(pop)
	children, dangling := a.buildHierarchy(ctx, pop, index)
	snap.DanglingRefs += dangling

	snap.Rows = a.flattenRows(pop, index, children, metricsByID, snap.Results)

	rollup, skipped := a.rollupRegions(pop, index)
	snap.Rollup = rollup
	snap.DanglingRefs += skipped

	a.log.Debug(ctx, "snapshot aggregated", logger.Fields{
		"rows":          len(snap.Rows),
		"scored":        len(snap.Results),
		"regions":       len(snap.Rollup.Weights),
		"dangling_refs": snap.DanglingRefs,
	})

	return snap
}

// fitLeadTimeNormalizer builds the population-wide lead-time normalizer.
// With no metrics loaded there is nothing to fit; scoring then treats the
// lead-time factor as zero instead of failing.
func (a *AggregatorService) fitLeadTimeNormalizer(ctx context.Context, metrics []models.EntityMetrics) *service.Normalizer {
	if len(metrics) == 0 {
		return nil
	}

	values := make([]float64, len(metrics))
	for i, m := range metrics {
		values[i] = float64(m.LeadTimeDays)
	}

	n, err := service.NewNormalizer(values)
	if err != nil {
		a.log.Warn(ctx, "lead-time normalizer not fitted", logger.Fields{"error": err.Error()})
		return nil
	}
	return n
}

func (a *AggregatorService) buildIndex(pop *models.Population) map[string]entityRef {
	index := make(map[string]entityRef)
	for _, s := range pop.Systems {
		index[s.ID] = entityRef{entityType: constants.EntityTypeSystem, name: s.Name}
	}
	for _, s := range pop.Subsystems {
		index[s.ID] = entityRef{entityType: constants.EntityTypeSubsystem, name: s.Name}
	}
	for _, c := range pop.Components {
		index[c.ID] = entityRef{entityType: constants.EntityTypeComponent, name: c.Name}
	}
	for _, v := range pop.Vendors {
		index[v.ID] = entityRef{entityType: constants.EntityTypeVendor, name: v.Name, regionCode: v.RegionCode}
	}
	return index
}

// buildHierarchy assembles the parent->child adjacency of the BOM tree.
// The tree portion must be a strict DAG, so edges are added through a
// cycle-rejecting directed graph; an edge that would create a cycle or
// that references an unknown id is dropped and counted, not surfaced.
func (a *AggregatorService) buildHierarchy(ctx context.Context, pop *models.Population, index map[string]entityRef) (map[string][]string, int) {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	for id := range index {
		_ = g.AddVertex(id)
	}

	dangling := 0
	addEdge := func(parentID, childID string) {
		if _, ok := index[parentID]; !ok {
			dangling++
			return
		}
		if _, ok := index[childID]; !ok {
			dangling++
			return
		}
		if err := g.AddEdge(parentID, childID); err != nil {
			switch err {
			case graph.ErrEdgeAlreadyExists:
				// duplicate hierarchy edge, harmless
			case graph.ErrEdgeCreatesCycle:
				dangling++
				a.log.Debug(ctx, "cyclic hierarchy edge skipped", logger.Fields{
					"parent_id": parentID,
					"child_id":  childID,
				})
			default:
				dangling++
			}
		}
	}

	for _, s := range pop.Subsystems {
		addEdge(s.SystemID, s.ID)
	}
	for _, c := range pop.Components {
		addEdge(c.SubsystemID, c.ID)
	}
	for _, r := range pop.Relationships {
		if r.FromType == constants.EntityTypeComponent && r.ToType == constants.EntityTypeVendor {
			addEdge(r.FromID, r.ToID)
		}
	}

	children := make(map[string][]string)
	adjacency, err := g.AdjacencyMap()
	if err != nil {
		a.log.Warn(ctx, "hierarchy adjacency unavailable", logger.Fields{"error": err.Error()})
		return children, dangling
	}
	for parent, edges := range adjacency {
		ids := make([]string, 0, len(edges))
		for child := range edges {
			ids = append(ids, child)
		}
		sort.Strings(ids)
		children[parent] = ids
	}
	return children, dangling
}

// flattenRows walks the hierarchy depth-first from the system roots and
// emits one row per visited entity, parents before children. A vendor
// supplying several components is emitted once under each of them.
func (a *AggregatorService) flattenRows(
	pop *models.Population,
	index map[string]entityRef,
	children map[string][]string,
	metricsByID map[string]models.EntityMetrics,
	results map[string]models.RiskResult,
) []models.BOMRow {
	rows := make([]models.BOMRow, 0, len(index))

	var walk func(id, parentID string)
	walk = func(id, parentID string) {
		ref := index[id]
		level := ref.entityType.HierarchyLevel()
		if level < 0 {
			return
		}

		row := models.BOMRow{
			ID:         id,
			Type:       ref.entityType,
			Name:       ref.name,
			ParentID:   parentID,
			Level:      level,
			RegionCode: ref.regionCode,
		}
		if m, ok := metricsByID[id]; ok {
			row.LeadTimeDays = m.LeadTimeDays
			row.AltVendorCount = m.AltVendorCount
			row.SingleSourceFlag = m.SingleSourceFlag
		}
		if result, ok := results[id]; ok {
			score := result.Score
			row.RiskScore = &score
			row.RiskTier = result.Tier
		}
		rows = append(rows, row)

		if level >= constants.EntityTypeVendor.HierarchyLevel() {
			return
		}
		for _, childID := range children[id] {
			walk(childID, id)
		}
	}

	systemIDs := make([]string, 0, len(pop.Systems))
	for _, s := range pop.Systems {
		systemIDs = append(systemIDs, s.ID)
	}
	sort.Strings(systemIDs)
	for _, id := range systemIDs {
		walk(id, "")
	}

	return rows
}

// rollupRegions sums relationship weights by the target vendor's region and
// derives the diversity index, 1 minus the Herfindahl-Hirschman
// concentration over regional shares, as a percentage. Relationships whose
// endpoints are not in the population are excluded silently.
func (a *AggregatorService) rollupRegions(pop *models.Population, index map[string]entityRef) (models.RegionRollup, int) {
	rollup := models.RegionRollup{Weights: make(map[string]float64)}
	skipped := 0

	for _, r := range pop.Relationships {
		if r.ToType != constants.EntityTypeVendor {
			continue
		}
		target, ok := index[r.ToID]
		if !ok || target.entityType != constants.EntityTypeVendor {
			skipped++
			continue
		}
		if _, ok := index[r.FromID]; !ok {
			skipped++
			continue
		}

		region := target.regionCode
		if region == "" {
			region = "unassigned"
		}
		rollup.Weights[region] += r.Weight
		rollup.TotalWeight += r.Weight
	}

	if rollup.TotalWeight > 0 {
		sumSquares := 0.0
		for _, w := range rollup.Weights {
			share := w / rollup.TotalWeight
			sumSquares += share * share
		}
		rollup.DiversityIndex = (1 - sumSquares) * 100
	}

	return rollup, skipped
}

// BuildTree nests the flattened rows into parent->children form for the
// tree endpoint. System rows are the roots and are always present.
func BuildTree(rows []models.BOMRow) []*models.TreeNode {
	roots := make([]*models.TreeNode, 0)
	stack := make([]*models.TreeNode, 0)

	for _, row := range rows {
		node := &models.TreeNode{BOMRow: row}
		for len(stack) > 0 && stack[len(stack)-1].Level >= row.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}

	return roots
}
