package fixtures_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbom/bomsight/internal/infrastructure/fixtures"
	"github.com/openbom/bomsight/pkg/constants"
	"github.com/openbom/bomsight/pkg/errors"
	"github.com/openbom/bomsight/pkg/logger"
)

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), []byte(content), 0o600))
}

func writeFullFixtureSet(t *testing.T, dir string) {
	t.Helper()
	writeDoc(t, dir, "systems", `{"samples":[{"id":"sys-a","name":"Propulsion"}]}`)
	writeDoc(t, dir, "subsystems", `{"samples":[{"id":"sub-a","systemId":"sys-a","name":"Turbine"}]}`)
	writeDoc(t, dir, "components", `{"samples":[{"id":"cmp-1","subsystemId":"sub-a","name":"Blade Assembly"}]}`)
	writeDoc(t, dir, "vendors", `{"samples":[{"id":"ven-x","name":"Alloyworks","regionCode":"apac"}]}`)
	writeDoc(t, dir, "relationships", `{"samples":[{"id":"rel-1","fromId":"cmp-1","toId":"ven-x","fromType":"component","toType":"vendor","type":"supplies","weight":2}]}`)
	writeDoc(t, dir, "metrics", `{"samples":[{"id":"cmp-1","complexity_score":82,"robustness_score":35,"lead_time_days":120,"single_source_flag":true,"alt_vendor_count":0,"geographic_concentration_index":0.9,"spend_share":0.2,"criticality_score":90}]}`)
	writeDoc(t, dir, "regions", `{"samples":[{"code":"apac","name":"Asia Pacific"}]}`)
}

func TestLoader_FullFixtureSet(t *testing.T) {
	dir := t.TempDir()
	writeFullFixtureSet(t, dir)

	loader := fixtures.NewLoader(fixtures.DirSource{Dir: dir}, nil, logger.NewNoopLogger())
	pop, partial, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Empty(t, partial)
	require.Len(t, pop.Systems, 1)
	require.Len(t, pop.Subsystems, 1)
	require.Len(t, pop.Components, 1)
	require.Len(t, pop.Vendors, 1)
	require.Len(t, pop.Relationships, 1)
	require.Len(t, pop.Metrics, 1)
	require.Len(t, pop.Regions, 1)

	assert.Equal(t, "sys-a", pop.Subsystems[0].SystemID)
	assert.Equal(t, constants.EntityTypeVendor, pop.Relationships[0].ToType)
	assert.Equal(t, 120, pop.Metrics[0].LeadTimeDays)
	assert.True(t, pop.Metrics[0].SingleSourceFlag)
}

func TestLoader_MetricAliasesFold(t *testing.T) {
	dir := t.TempDir()
	writeFullFixtureSet(t, dir)
	// Legacy dashboards exported complexity and robustness as x and y.
	writeDoc(t, dir, "metrics", `{"samples":[{"id":"cmp-legacy","x":70,"y":40,"lead_time_days":10}]}`)

	loader := fixtures.NewLoader(fixtures.DirSource{Dir: dir}, nil, logger.NewNoopLogger())
	pop, _, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, pop.Metrics, 1)
	assert.Equal(t, 70.0, pop.Metrics[0].ComplexityScore)
	assert.Equal(t, 40.0, pop.Metrics[0].RobustnessScore)
}

func TestLoader_MissingDocIsPartial(t *testing.T) {
	dir := t.TempDir()
	writeFullFixtureSet(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "subsystems.json")))
	require.NoError(t, os.Remove(filepath.Join(dir, "vendors.json")))

	loader := fixtures.NewLoader(fixtures.DirSource{Dir: dir}, nil, logger.NewNoopLogger())
	pop, partial, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"subsystems", "vendors"}, partial)
	assert.Empty(t, pop.Vendors)
	assert.NotEmpty(t, pop.Systems)
}

func TestLoader_MissingRegionsIsNotPartial(t *testing.T) {
	dir := t.TempDir()
	writeFullFixtureSet(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "regions.json")))

	loader := fixtures.NewLoader(fixtures.DirSource{Dir: dir}, nil, logger.NewNoopLogger())
	pop, partial, err := loader.Load(context.Background())
	require.NoError(t, err)

	// regions.json is an optional display lookup: a six-doc fixture set is
	// a healthy load, not a partial one.
	assert.Empty(t, partial)
	assert.Empty(t, pop.Regions)
	assert.NotEmpty(t, pop.Vendors)
}

func TestLoader_MalformedDocIsPartial(t *testing.T) {
	dir := t.TempDir()
	writeFullFixtureSet(t, dir)
	writeDoc(t, dir, "components", `{"rows":[]}`)

	loader := fixtures.NewLoader(fixtures.DirSource{Dir: dir}, nil, logger.NewNoopLogger())
	pop, partial, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"components"}, partial)
	assert.Empty(t, pop.Components)
}

func TestLoader_AllDocsMissingFails(t *testing.T) {
	loader := fixtures.NewLoader(fixtures.DirSource{Dir: t.TempDir()}, nil, logger.NewNoopLogger())

	_, _, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeFixtureUnavailable, errors.CodeOf(err))
}
