package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, time.Minute, cfg.Interval())
	assert.False(t, cfg.DebugMode)
	assert.False(t, cfg.VerboseLogging)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
interval_ms: 5000
alert_threshold: 65.5
metrics_endpoint: " http://metrics.internal/push "
debug_mode: true
verbose_logging: true
log_level: DEBUG
random_seed: 42
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Interval())
	assert.Equal(t, 65.5, cfg.AlertThreshold)
	assert.Equal(t, "http://metrics.internal/push", cfg.MetricsEndpoint)
	assert.True(t, cfg.DebugMode)
	assert.True(t, cfg.VerboseLogging)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, uint64(42), cfg.RandomSeed)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "interval_ms: 5000\nalert_threshold: 50\n")
	t.Setenv("MONITOR_ALERT_THRESHOLD", "90")
	t.Setenv("MONITOR_DEBUG_MODE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.IntervalMS)
	assert.Equal(t, 90.0, cfg.AlertThreshold)
	assert.True(t, cfg.DebugMode)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "interval_ms: [not a number\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("MONITOR_INTERVAL_MS", "soon")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse environment")
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantErr   bool
		wantIntMS int
	}{
		{"defaults", func(*Config) {}, false, DefaultIntervalMS},
		{"zero interval falls back", func(c *Config) { c.IntervalMS = 0 }, false, DefaultIntervalMS},
		{"negative interval falls back", func(c *Config) { c.IntervalMS = -10 }, false, DefaultIntervalMS},
		{"custom interval kept", func(c *Config) { c.IntervalMS = 1500 }, false, 1500},
		{"threshold boundaries allowed", func(c *Config) { c.AlertThreshold = 100 }, false, DefaultIntervalMS},
		{"threshold above range", func(c *Config) { c.AlertThreshold = 120 }, true, 0},
		{"negative threshold", func(c *Config) { c.AlertThreshold = -1 }, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			got, err := cfg.Normalize()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIntMS, got.IntervalMS)
		})
	}
}

func TestNormalize_EmptyLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "  "

	got, err := cfg.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "info", got.LogLevel)
}
