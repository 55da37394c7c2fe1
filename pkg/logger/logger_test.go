package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/classgrid/SmartClassGrid/pkg/config"
)

func TestNew(t *testing.T) {
	log, err := New(&config.Config{Env: config.EnvDevelopment})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestNewProductionDebugLevel(t *testing.T) {
	cfg := &config.Config{Env: config.EnvProduction}
	cfg.Log.Level = "debug"
	cfg.Log.Format = "console"

	log, err := New(cfg)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewBadLevelFallsBack(t *testing.T) {
	cfg := &config.Config{}
	cfg.Log.Level = "shouting"

	log, err := New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, log)
}
