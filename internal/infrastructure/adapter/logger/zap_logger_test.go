package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/core"
)

func TestZapLogger_WritesFields(t *testing.T) {
	zc, logs := observer.New(zapcore.DebugLevel)
	log := newFromCore(zc, core.LogLevelInfo)

	log.Info("Schedule computed", map[string]any{
		"city":     "Cairo",
		"duration": "10h0m0s",
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Schedule computed", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "Cairo", entries[0].ContextMap()["city"])
}

func TestZapLogger_SetLevel(t *testing.T) {
	zc, logs := observer.New(zapcore.DebugLevel)
	log := newFromCore(zc, core.LogLevelInfo)

	log.Debug("hidden", nil)
	assert.Equal(t, 0, logs.Len())

	log.SetLevel(core.LogLevelDebug)
	assert.Equal(t, core.LogLevelDebug, log.GetLevel())
	log.Debug("visible", nil)
	assert.Equal(t, 1, logs.Len())

	log.SetLevel(core.LogLevelError)
	log.Warn("hidden", nil)
	log.Error("visible", map[string]any{"error": "boom"})
	assert.Equal(t, 2, logs.Len())
}

func TestNewZapLogger_Options(t *testing.T) {
	log := NewZapLogger(Options{Production: true, Level: core.LogLevelWarn, OutputPath: "stderr"})

	assert.Equal(t, core.LogLevelWarn, log.GetLevel())
	log.Info("not written", nil)
}

func TestNoopLogger(t *testing.T) {
	log := NewNoopLogger()

	log.SetLevel(core.LogLevelError)
	assert.Equal(t, core.LogLevelError, log.GetLevel())
	log.Debug("ignored", nil)
	log.Info("ignored", nil)
	log.Warn("ignored", nil)
	log.Error("ignored", nil)
	assert.NoError(t, log.Flush())
}
