package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "SHUTDOWN_TIMEOUT", "CORS_ALLOW_ORIGINS",
	"DB_HOST", "DB_PASSWORD",
	"WEIGHT_LOCATION", "WEIGHT_SKILL_MATCH", "WEIGHT_AVAILABILITY", "WEIGHT_PRIORITY", "WEIGHT_HISTORICAL",
	"COLD_START_BONUS", "MIN_INTERACTIONS_FOR_LEARNING", "MAX_DISTANCE",
	"EPSILON", "EPSILON_DECAY", "MIN_EPSILON",
	"AB_BOOST_FACTOR", "AB_EPSILON_CEILING", "SCORING_WORKERS",
	"GEMINI_API_KEY", "GEMINI_TIMEOUT", "GEMINI_EMBEDDING_CACHE_SIZE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5001", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, 0.25, cfg.Scoring.WeightLocation)
	assert.Equal(t, 0.1, cfg.Scoring.WeightHistorical)
	assert.Equal(t, 5, cfg.Scoring.MinInteractions)
	assert.Equal(t, 50.0, cfg.Scoring.MaxDistance)
	assert.Equal(t, 0.1, cfg.Bandit.Epsilon)
	assert.Equal(t, 0.995, cfg.Bandit.EpsilonDecay)
	assert.Equal(t, 0.01, cfg.Bandit.MinEpsilon)
	assert.Equal(t, 1.5, cfg.Engine.ABBoostFactor)
	assert.Equal(t, 0.2, cfg.Engine.ABEpsilonCeiling)
	assert.Empty(t, cfg.Gemini.APIKey)
	assert.Equal(t, 4096, cfg.Gemini.CacheSize)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:8080"}, cfg.Server.AllowOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("WEIGHT_SKILL_MATCH", "0.4")
	t.Setenv("EPSILON", "0.3")
	t.Setenv("MIN_INTERACTIONS_FOR_LEARNING", "10")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("GEMINI_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 0.4, cfg.Scoring.WeightSkill)
	assert.Equal(t, 0.3, cfg.Bandit.Epsilon)
	assert.Equal(t, 10, cfg.Scoring.MinInteractions)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, 2*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowOrigins)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unparsable float", map[string]string{"EPSILON": "lots"}},
		{"NaN weight", map[string]string{"WEIGHT_PRIORITY": "NaN"}},
		{"unparsable int", map[string]string{"MIN_INTERACTIONS_FOR_LEARNING": "five"}},
		{"unparsable cache size", map[string]string{"GEMINI_EMBEDDING_CACHE_SIZE": "big"}},
		{"database without password", map[string]string{"DB_HOST": "db", "DB_PASSWORD": ""}},
		{"bad duration", map[string]string{"SHUTDOWN_TIMEOUT": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

// Range checks on engine settings belong to the engine config; Load only
// parses them.
func TestLoad_LeavesEngineRangesToEngine(t *testing.T) {
	clearEnv(t)
	t.Setenv("EPSILON", "1.5")
	t.Setenv("MAX_DISTANCE", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.Bandit.Epsilon)
	assert.Equal(t, 0.0, cfg.Scoring.MaxDistance)
}
