package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbom/bomsight/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "./fixtures", cfg.Fixtures.Dir)
	assert.Equal(t, 5*time.Minute, cfg.Cache.SnapshotTTLDuration())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "bomsight", cfg.Monitoring.ServiceName)
	assert.False(t, cfg.Monitoring.TracingEnabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("BOMSIGHT_SERVER_PORT", "9090")
	t.Setenv("BOMSIGHT_LOG_LEVEL", "debug")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 7070
fixtures:
  base_url: http://fixtures.internal/bom
  dir: ""
  watch: true
cache:
  snapshot_ttl: 30
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "http://fixtures.internal/bom", cfg.Fixtures.BaseURL)
	assert.True(t, cfg.Fixtures.Watch)
	assert.Equal(t, 30*time.Second, cfg.Cache.SnapshotTTLDuration())
}

func TestLoadConfig_ValidationFailures(t *testing.T) {
	t.Setenv("BOMSIGHT_SERVER_PORT", "99999")
	_, err := config.LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_TracingNeedsEndpoint(t *testing.T) {
	t.Setenv("BOMSIGHT_MONITORING_TRACING_ENABLED", "true")
	_, err := config.LoadConfig("")
	assert.Error(t, err)
}
