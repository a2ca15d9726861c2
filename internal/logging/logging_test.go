package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"healthmonitor/internal/config"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		verbose bool
		enabled zapcore.Level
		blocked zapcore.Level
	}{
		{"info", "info", false, zapcore.InfoLevel, zapcore.DebugLevel},
		{"warn", "warn", false, zapcore.WarnLevel, zapcore.InfoLevel},
		{"verbose lowers to debug", "warn", true, zapcore.DebugLevel, zapcore.DebugLevel - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.LogLevel = tt.level
			cfg.VerboseLogging = tt.verbose

			logger, err := New(cfg)
			require.NoError(t, err)
			defer func() { _ = logger.Sync() }()

			assert.True(t, logger.Core().Enabled(tt.enabled))
			assert.False(t, logger.Core().Enabled(tt.blocked))
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogLevel = "chatty"

	_, err := New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
}
