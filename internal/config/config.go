// Package config loads process configuration for the automata command.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the file read when no path is given.
const DefaultPath = "automata.yaml"

// EnvPrefix prefixes the environment variables overriding file values.
const EnvPrefix = "AUTOMATA_"

// Config represents the structure of automata.yaml.
type Config struct {
	LogLevel string        `mapstructure:"log_level"`
	Server   ServerConfig  `mapstructure:"server"`
	Metrics  MetricsConfig `mapstructure:"metrics"`
	Explore  ExploreConfig `mapstructure:"explore"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	QueryTimeout    time.Duration `mapstructure:"query_timeout"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// ExploreConfig tunes nondeterministic queries.
type ExploreConfig struct {
	Parallelism int  `mapstructure:"parallelism"`
	StateSet    bool `mapstructure:"state_set"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel: "info",
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 5 * time.Second,
			QueryTimeout:    2 * time.Second,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Addr returns the listen address of the server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// envKeys maps environment variables to their position in the file.
var envKeys = map[string][]string{
	"LOG_LEVEL":               {"log_level"},
	"SERVER_PORT":             {"server", "port"},
	"SERVER_SHUTDOWN_TIMEOUT": {"server", "shutdown_timeout"},
	"SERVER_QUERY_TIMEOUT":    {"server", "query_timeout"},
	"METRICS_ENABLED":         {"metrics", "enabled"},
	"EXPLORE_PARALLELISM":     {"explore", "parallelism"},
	"EXPLORE_STATE_SET":       {"explore", "state_set"},
}

// Load reads a configuration file (YAML or JSON), applies AUTOMATA_*
// environment overrides and fills the rest from Default.
// A missing file is not an error.
func Load(path string) (Config, error) {
	raw := map[string]any{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if strings.ToLower(filepath.Ext(path)) == ".json" {
			if err := json.Unmarshal(data, &raw); err != nil {
				return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if raw == nil {
		// An empty YAML document decodes to nil.
		raw = map[string]any{}
	}

	for name, keys := range envKeys {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			set(raw, keys, v)
		}
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port %d out of range", c.Server.Port)
	}
	if c.Server.ShutdownTimeout < 0 || c.Server.QueryTimeout < 0 {
		return fmt.Errorf("invalid config: timeouts must not be negative")
	}
	if c.Explore.Parallelism < 0 {
		return fmt.Errorf("invalid config: explore.parallelism must not be negative")
	}
	return nil
}

func set(m map[string]any, keys []string, v any) {
	for _, k := range keys[:len(keys)-1] {
		child, ok := m[k].(map[string]any)
		if !ok {
			child = map[string]any{}
			m[k] = child
		}
		m = child
	}
	m[keys[len(keys)-1]] = v
}
