package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8, cfg.Scoring.Concurrency)
	assert.Equal(t, 25, cfg.Scoring.DefaultWeights.Geography)
	assert.Equal(t, 25, cfg.Scoring.DefaultWeights.Size)
	assert.Equal(t, 25, cfg.Scoring.DefaultWeights.ServiceMix)
	assert.Equal(t, 25, cfg.Scoring.DefaultWeights.OwnerGoals)
	assert.Empty(t, cfg.Scoring.WeightProfiles)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DEALFIT_STORE_DRIVER", "sqlite")
	t.Setenv("DEALFIT_STORE_DATABASE_URL", "dealfit.db")
	t.Setenv("DEALFIT_SERVER_PORT", "9090")
	t.Setenv("DEALFIT_SCORING_CONCURRENCY", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "dealfit.db", cfg.Store.DatabaseURL)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2, cfg.Scoring.Concurrency)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "json"}))
	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "console"}))
	assert.Error(t, InitLogger(LogConfig{Level: "not-a-level"}))
}
