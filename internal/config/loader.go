package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/openbom/bomsight/pkg/constants"
	"github.com/openbom/bomsight/pkg/errors"
)

// LoadConfig loads the configuration from file and environment variables.
// A missing config file is not an error; defaults and BOMSIGHT_* variables
// are enough to run.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", constants.DefaultServicePort)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("fixtures.dir", "./fixtures")
	v.SetDefault("fixtures.request_timeout", 10)
	v.SetDefault("fixtures.watch", false)
	v.SetDefault("fixtures.watch_debounce", 500)
	v.SetDefault("cache.snapshot_ttl", 300)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("monitoring.tracing_enabled", false)
	v.SetDefault("monitoring.service_name", constants.ServiceName)
	v.SetDefault("monitoring.sampling_rate", 0.1)
	v.SetDefault("monitoring.pprof_enabled", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/bomsight/")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.New(constants.ErrCodeServerError, "failed to read config file", err.Error()).WithError(err)
		}
	}

	v.SetEnvPrefix("BOMSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New(constants.ErrCodeServerError, "failed to unmarshal config", err.Error()).WithError(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.ErrInvalidRequest.WithError(err)
	}

	return &cfg, nil
}
