package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbom/bomsight/internal/application"
	"github.com/openbom/bomsight/internal/domain/models"
	"github.com/openbom/bomsight/pkg/constants"
	"github.com/openbom/bomsight/pkg/errors"
	"github.com/openbom/bomsight/pkg/logger"
)

type stubLoader struct {
	pop     *models.Population
	partial []string
	err     error
	calls   int
}

func (l *stubLoader) Load(ctx context.Context) (*models.Population, []string, error) {
	l.calls++
	if l.err != nil {
		return nil, nil, l.err
	}
	return l.pop, l.partial, nil
}

type recordingObserver struct {
	results  []string
	dangling []int
}

func (o *recordingObserver) ObserveSnapshotBuild(result string, duration time.Duration) {
	o.results = append(o.results, result)
}

func (o *recordingObserver) ObserveDanglingRefs(count int) {
	o.dangling = append(o.dangling, count)
}

func newSnapshotService(loader *stubLoader) *application.SnapshotService {
	return application.NewSnapshotService(loader, newAggregator(), time.Minute, nil, logger.NewNoopLogger())
}

func TestSnapshotService_CurrentCachesAcrossReads(t *testing.T) {
	loader := &stubLoader{pop: testPopulation()}
	svc := newSnapshotService(loader)
	ctx := context.Background()

	first, err := svc.Current(ctx)
	require.NoError(t, err)
	second, err := svc.Current(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, loader.calls)
}

func TestSnapshotService_RefreshReloads(t *testing.T) {
	loader := &stubLoader{pop: testPopulation()}
	svc := newSnapshotService(loader)
	ctx := context.Background()

	_, err := svc.Current(ctx)
	require.NoError(t, err)
	_, err = svc.Refresh(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, loader.calls)
}

func TestSnapshotService_InvalidateForcesRebuild(t *testing.T) {
	loader := &stubLoader{pop: testPopulation()}
	svc := newSnapshotService(loader)
	ctx := context.Background()

	_, err := svc.Current(ctx)
	require.NoError(t, err)

	svc.Invalidate()
	_, err = svc.Current(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, loader.calls)
}

func TestSnapshotService_ObserverSeesBuildAndDanglingRefs(t *testing.T) {
	observer := &recordingObserver{}
	svc := application.NewSnapshotService(
		&stubLoader{pop: testPopulation()},
		newAggregator(),
		time.Minute,
		observer,
		logger.NewNoopLogger(),
	)

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	// testPopulation carries one orphaned component reference, and the
	// observer must see that count on every rebuild, not just the first.
	assert.Equal(t, []string{"ok"}, observer.results)
	assert.Equal(t, []int{1}, observer.dangling)

	_, err = svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, observer.dangling)
}

func TestSnapshotService_LoaderErrorPropagates(t *testing.T) {
	loadErr := errors.ErrFixtureUnavailable("systems", assert.AnError)
	svc := newSnapshotService(&stubLoader{err: loadErr})

	_, err := svc.Current(context.Background())
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeFixtureUnavailable, errors.CodeOf(err))
}

func TestSnapshotService_PartialDocsSurfaceInSummary(t *testing.T) {
	loader := &stubLoader{pop: testPopulation(), partial: []string{"regions"}}
	svc := newSnapshotService(loader)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"regions"}, summary.PartialDocs)
	assert.Equal(t, 8, summary.RowCount)
	assert.Equal(t, 2, summary.ScoredCount)
	assert.Equal(t, 1, summary.DanglingRefs)
	assert.Equal(t, 1, summary.TierCounts[constants.TierCritical])
}

func TestSnapshotService_EntitiesSortedByScore(t *testing.T) {
	svc := newSnapshotService(&stubLoader{pop: testPopulation()})

	results, err := svc.Entities(context.Background(), application.EntityFilter{})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "cmp-1", results[0].EntityID)
	assert.Equal(t, "cmp-2", results[1].EntityID)

	critical, err := svc.Entities(context.Background(), application.EntityFilter{Tier: constants.TierCritical})
	require.NoError(t, err)
	require.Len(t, critical, 1)
	assert.Equal(t, "cmp-1", critical[0].EntityID)

	high, err := svc.Entities(context.Background(), application.EntityFilter{MinScore: 90})
	require.NoError(t, err)
	assert.Empty(t, high)
}

func TestSnapshotService_EntityNotFound(t *testing.T) {
	svc := newSnapshotService(&stubLoader{pop: testPopulation()})

	_, err := svc.Entity(context.Background(), "cmp-unknown")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestFilterRows(t *testing.T) {
	svc := newSnapshotService(&stubLoader{pop: testPopulation()})
	ctx := context.Background()

	vendors, err := svc.Rows(ctx, application.RowFilter{Type: constants.EntityTypeVendor})
	require.NoError(t, err)
	assert.Len(t, vendors, 3)

	scored, err := svc.Rows(ctx, application.RowFilter{MinScore: 60})
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.Equal(t, "cmp-1", scored[0].ID)

	named, err := svc.Rows(ctx, application.RowFilter{Search: "injector"})
	require.NoError(t, err)
	require.Len(t, named, 1)
	assert.Equal(t, "cmp-2", named[0].ID)

	tiered, err := svc.Rows(ctx, application.RowFilter{Tier: constants.TierLow})
	require.NoError(t, err)
	require.Len(t, tiered, 1)
	assert.Equal(t, "cmp-2", tiered[0].ID)
}

func TestFilterRows_SystemSubtree(t *testing.T) {
	svc := newSnapshotService(&stubLoader{pop: testPopulation()})
	ctx := context.Background()

	subtree, err := svc.Rows(ctx, application.RowFilter{SystemID: "sys-a"})
	require.NoError(t, err)
	assert.Len(t, subtree, 8)

	none, err := svc.Rows(ctx, application.RowFilter{SystemID: "sys-unknown"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
