package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultIntervalMS is the check interval used when none (or a non-positive one) is configured.
	DefaultIntervalMS = 60000
	// DefaultAlertThreshold is the percentage above which a reading raises a warning.
	DefaultAlertThreshold = 80.0
	// DefaultMetricsEndpoint is recorded for compatibility; nothing is sent to it.
	DefaultMetricsEndpoint = "http://localhost:8080/metrics"

	// EnvPrefix prefixes every environment override, e.g. MONITOR_INTERVAL_MS.
	EnvPrefix = "MONITOR_"
)

// Config represents configuration data for the health monitor.
// A Config is built once at startup and passed around by value.
type Config struct {
	IntervalMS      int     `yaml:"interval_ms" env:"INTERVAL_MS"`
	AlertThreshold  float64 `yaml:"alert_threshold" env:"ALERT_THRESHOLD"`
	MetricsEndpoint string  `yaml:"metrics_endpoint" env:"METRICS_ENDPOINT"`
	DebugMode       bool    `yaml:"debug_mode" env:"DEBUG_MODE"`
	VerboseLogging  bool    `yaml:"verbose_logging" env:"VERBOSE_LOGGING"`
	LogLevel        string  `yaml:"log_level" env:"LOG_LEVEL"`
	// RandomSeed makes the simulated readings reproducible; zero means seed from entropy.
	RandomSeed uint64 `yaml:"random_seed" env:"RANDOM_SEED"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		IntervalMS:      DefaultIntervalMS,
		AlertThreshold:  DefaultAlertThreshold,
		MetricsEndpoint: DefaultMetricsEndpoint,
		LogLevel:        "info",
	}
}

// Interval returns the check interval as a duration.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// Load reads configuration from a yaml file and applies MONITOR_* environment
// overrides on top. Missing files fall back to defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(content, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg.Normalize()
}

// Normalize fills in defaults for degenerate values and rejects invalid ones.
func (c Config) Normalize() (Config, error) {
	if c.IntervalMS <= 0 {
		c.IntervalMS = DefaultIntervalMS
	}
	if c.AlertThreshold < 0 || c.AlertThreshold > 100 {
		return Config{}, fmt.Errorf("alert_threshold must be within 0-100, got %v", c.AlertThreshold)
	}
	c.MetricsEndpoint = strings.TrimSpace(c.MetricsEndpoint)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return c, nil
}
