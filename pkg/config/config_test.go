package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "./data/courses.csv", cfg.Input.CoursesFile)
	assert.Equal(t, "./out/schedule.csv", cfg.Output.ScheduleFile)
	assert.Equal(t, 10000, cfg.Engine.MaxBacktrackIterations)
	assert.Equal(t, 5000, cfg.Engine.MaxSolverIterations)
	assert.InDelta(t, 0.9, cfg.Engine.OverloadThreshold, 1e-9)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_SOLVER_ITERATIONS", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 250, cfg.Engine.MaxSolverIterations)
}

func TestDelimiterRune(t *testing.T) {
	assert.Equal(t, ',', (&InputConfig{}).DelimiterRune())
	assert.Equal(t, ';', (&InputConfig{Delimiter: ";"}).DelimiterRune())
}
