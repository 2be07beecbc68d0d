package application

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/openbom/bomsight/internal/domain/models"
	"github.com/openbom/bomsight/pkg/constants"
	"github.com/openbom/bomsight/pkg/errors"
	"github.com/openbom/bomsight/pkg/logger"
)

// PopulationLoader loads the full entity population from the fixture
// source. The second return value lists the documents that could not be
// loaded; a loader only returns an error when nothing usable was loaded.
type PopulationLoader interface {
	Load(ctx context.Context) (*models.Population, []string, error)
}

// BuildObserver receives the outcome of snapshot builds, for metrics.
type BuildObserver interface {
	ObserveSnapshotBuild(result string, duration time.Duration)
	ObserveDanglingRefs(count int)
}

// RowFilter narrows the flattened row list. Zero values mean no filtering
// on that dimension.
type RowFilter struct {
	SystemID string
	Type     constants.EntityType
	Tier     constants.RiskTier
	MinScore int
	Search   string
}

// EntityFilter narrows the scored entity list.
type EntityFilter struct {
	Tier     constants.RiskTier
	MinScore int
}

// SnapshotSummary is the condensed health view of the current snapshot.
type SnapshotSummary struct {
	GeneratedAt  time.Time                  `json:"generatedAt"`
	RowCount     int                        `json:"rowCount"`
	ScoredCount  int                        `json:"scoredCount"`
	TierCounts   map[constants.RiskTier]int `json:"tierCounts"`
	DanglingRefs int                        `json:"danglingRefs"`
	PartialDocs  []string                   `json:"partialDocs,omitempty"`
}

// SnapshotService owns the lifecycle of the current analytics snapshot:
// it triggers rebuilds, caches the result and answers the read queries the
// HTTP layer exposes. Rebuilds are serialized; readers get the cached
// snapshot without blocking on an in-flight rebuild.
type SnapshotService struct {
	loader     PopulationLoader
	aggregator *AggregatorService
	store      *cache.Cache
	observer   BuildObserver
	log        logger.Logger

	rebuildMu sync.Mutex
}

// NewSnapshotService creates a SnapshotService with the given TTL for the
// cached snapshot. A nil observer disables build metrics.
func NewSnapshotService(loader PopulationLoader, aggregator *AggregatorService, ttl time.Duration, observer BuildObserver, log logger.Logger) *SnapshotService {
	if ttl <= 0 {
		ttl = constants.SnapshotCacheDefaultTTL
	}
	return &SnapshotService{
		loader:     loader,
		aggregator: aggregator,
		store:      cache.New(ttl, constants.SnapshotCacheCleanupInterval),
		observer:   observer,
		log:        log,
	}
}

// Current returns the cached snapshot, rebuilding it on a miss or after
// TTL expiry.
func (s *SnapshotService) Current(ctx context.Context) (*models.Snapshot, error) {
	if cached, ok := s.store.Get(constants.SnapshotCacheKey); ok {
		return cached.(*models.Snapshot), nil
	}
	return s.Refresh(ctx)
}

// Refresh rebuilds the snapshot from the fixture source and replaces the
// cached one. Concurrent callers are serialized; the second caller
// rebuilds again rather than piggybacking, which keeps the semantics of an
// explicit refresh request honest.
func (s *SnapshotService) Refresh(ctx context.Context) (*models.Snapshot, error) {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	start := time.Now()
	pop, partial, err := s.loader.Load(ctx)
	if err != nil {
		s.observe("error", time.Since(start))
		s.log.Error(ctx, "snapshot rebuild failed", err, logger.Fields{})
		return nil, err
	}

	if pop.Empty() {
		s.log.Warn(ctx, "fixture source yielded an empty population", logger.Fields{
			"partial_docs": partial,
		})
	}

	snap := s.aggregator.BuildSnapshot(ctx, pop)
	snap.PartialDocs = partial

	if s.observer != nil {
		s.observer.ObserveDanglingRefs(snap.DanglingRefs)
	}

	s.store.Set(constants.SnapshotCacheKey, snap, cache.DefaultExpiration)

	result := "ok"
	if len(partial) > 0 {
		result = "partial"
	}
	s.observe(result, time.Since(start))
	s.log.Info(ctx, "snapshot rebuilt", logger.Fields{
		"rows":         len(snap.Rows),
		"partial_docs": partial,
		"duration_ms":  time.Since(start).Milliseconds(),
	})
	return snap, nil
}

// Invalidate drops the cached snapshot so the next read rebuilds.
func (s *SnapshotService) Invalidate() {
	s.store.Delete(constants.SnapshotCacheKey)
}

func (s *SnapshotService) observe(result string, d time.Duration) {
	if s.observer != nil {
		s.observer.ObserveSnapshotBuild(result, d)
	}
}

// Rows returns the flattened row list, optionally filtered.
func (s *SnapshotService) Rows(ctx context.Context, filter RowFilter) ([]models.BOMRow, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return FilterRows(snap.RowsForSystem(filter.SystemID), filter), nil
}

// Tree returns the nested hierarchy view.
func (s *SnapshotService) Tree(ctx context.Context) ([]*models.TreeNode, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTree(snap.Rows), nil
}

// Entities returns the scored risk results sorted by descending score,
// ties broken by entity id for stable output.
func (s *SnapshotService) Entities(ctx context.Context, filter EntityFilter) ([]models.RiskResult, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]models.RiskResult, 0, len(snap.Results))
	for _, r := range snap.Results {
		if filter.Tier != "" && r.Tier != filter.Tier {
			continue
		}
		if r.Score < filter.MinScore {
			continue
		}
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].EntityID < results[j].EntityID
	})
	return results, nil
}

// Entity returns the risk result for one entity id.
func (s *SnapshotService) Entity(ctx context.Context, id string) (models.RiskResult, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return models.RiskResult{}, err
	}
	result, ok := snap.Results[id]
	if !ok {
		return models.RiskResult{}, errors.ErrEntityNotFound(id)
	}
	return result, nil
}

// Rollup returns the regional weight rollup.
func (s *SnapshotService) Rollup(ctx context.Context) (models.RegionRollup, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return models.RegionRollup{}, err
	}
	return snap.Rollup, nil
}

// Summary returns the condensed snapshot health view.
func (s *SnapshotService) Summary(ctx context.Context) (SnapshotSummary, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return SnapshotSummary{}, err
	}
	return SnapshotSummary{
		GeneratedAt:  snap.GeneratedAt,
		RowCount:     len(snap.Rows),
		ScoredCount:  len(snap.Results),
		TierCounts:   snap.TierCounts,
		DanglingRefs: snap.DanglingRefs,
		PartialDocs:  snap.PartialDocs,
	}, nil
}

// FilterRows applies a RowFilter to an already flattened row list.
func FilterRows(rows []models.BOMRow, filter RowFilter) []models.BOMRow {
	out := make([]models.BOMRow, 0, len(rows))
	search := strings.ToLower(filter.Search)
	for _, row := range rows {
		if filter.Type != "" && row.Type != filter.Type {
			continue
		}
		if filter.Tier != "" && row.RiskTier != filter.Tier {
			continue
		}
		if filter.MinScore > 0 && (row.RiskScore == nil || *row.RiskScore < filter.MinScore) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(row.Name), search) {
			continue
		}
		out = append(out, row)
	}
	return out
}
