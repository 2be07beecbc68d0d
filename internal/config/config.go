// Package config holds the service configuration and its loader.
package config

import (
	"fmt"
	"time"

	"github.com/openbom/bomsight/pkg/constants"
)

// Config holds the application's configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Fixtures   FixturesConfig   `mapstructure:"fixtures"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Log        LogConfig        `mapstructure:"log"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// FixturesConfig selects where the population documents come from. Dir
// takes precedence; BaseURL is used when Dir is empty.
type FixturesConfig struct {
	Dir            string `mapstructure:"dir"`
	BaseURL        string `mapstructure:"base_url"`
	RequestTimeout int    `mapstructure:"request_timeout"` // in seconds
	Watch          bool   `mapstructure:"watch"`
	WatchDebounce  int    `mapstructure:"watch_debounce"` // in milliseconds
}

// RequestTimeoutDuration returns the HTTP fetch timeout.
func (c *FixturesConfig) RequestTimeoutDuration() time.Duration {
	if c.RequestTimeout <= 0 {
		return constants.DefaultRequestTimeout
	}
	return time.Duration(c.RequestTimeout) * time.Second
}

// WatchDebounceDuration returns the rebuild debounce window.
func (c *FixturesConfig) WatchDebounceDuration() time.Duration {
	if c.WatchDebounce <= 0 {
		return constants.DefaultWatchDebounce
	}
	return time.Duration(c.WatchDebounce) * time.Millisecond
}

type CacheConfig struct {
	SnapshotTTL int `mapstructure:"snapshot_ttl"` // in seconds
}

// SnapshotTTLDuration returns the snapshot cache TTL.
func (c *CacheConfig) SnapshotTTLDuration() time.Duration {
	if c.SnapshotTTL <= 0 {
		return constants.SnapshotCacheDefaultTTL
	}
	return time.Duration(c.SnapshotTTL) * time.Second
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type MonitoringConfig struct {
	TracingEnabled bool    `mapstructure:"tracing_enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	ServiceName    string  `mapstructure:"service_name"`
	SamplingRate   float64 `mapstructure:"sampling_rate"`
	PprofEnabled   bool    `mapstructure:"pprof_enabled"`
}

// Validate checks for essential configuration values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Fixtures.Dir == "" && c.Fixtures.BaseURL == "" {
		return fmt.Errorf("one of fixtures.dir or fixtures.base_url must be set")
	}
	if c.Monitoring.TracingEnabled && c.Monitoring.JaegerEndpoint == "" {
		return fmt.Errorf("monitoring.jaeger_endpoint required when tracing is enabled")
	}
	return nil
}
