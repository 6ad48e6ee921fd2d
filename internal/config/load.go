package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// GATELAB_SERVER_PORT or GATELAB_AUTH_SESSION_SECRET.
const EnvPrefix = "GATELAB"

var defaults = map[string]interface{}{
	"server.port":                      8080,
	"server.log_level":                 "info",
	"server.shutdown_timeout_seconds":  10,
	"auth.session_secret":              "",
	"auth.token_lifetime_minutes":      120,
	"sandbox.canvas_width":             800,
	"sandbox.canvas_height":            384,
	"sandbox.gate_width":               100,
	"sandbox.gate_height":              60,
	"sandbox.session_ttl_minutes":      60,
	"sandbox.max_sessions":             1000,
	"sandbox.janitor_interval_seconds": 60,
	"rate_limit.requests_per_second":   20,
	"rate_limit.burst":                 40,
}

// Load configuration from defaults, an optional config file and environment
// variables. Environment variables take precedence over values from config
// files. An empty path searches for config.yaml in the working directory
// and /etc/gatelab; a missing file is not an error unless path was given.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/gatelab")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in defaults overlaid with environment variables
// and without validation. Offline commands that never sign tokens use it.
func Default() Config {
	v := newViper()
	var cfg Config
	// Defaults always decode; a malformed environment value leaves the
	// field at its zero value.
	_ = v.Unmarshal(&cfg)
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}
