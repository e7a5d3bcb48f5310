package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "TRIP_PROXY_HTTP_ADDR", "TRIP_PROXY_CORS_ORIGINS", "TRIP_PROXY_DB_DSN",
		"TRIP_PROXY_REDIS_ADDR", "TRIP_PROXY_FIREBASE_PROJECT_ID", "GEMINI_API_KEY", "GEMINI_API_URL",
		"TRIP_PROXY_PROVIDER_TIMEOUT", "TRIP_PROXY_EXTRACT_MODEL", "TRIP_PROXY_EXTRACT_TEMPERATURE",
		"TRIP_PROXY_PLAN_MODEL", "TRIP_PROXY_PLAN_TEMPERATURE", "TRIP_PROXY_PLAN_REJECT_DUPLICATES",
		"TRIP_PROXY_LEDGER_RETENTION_DAYS", "TRIP_PROXY_LEDGER_PRUNE_SCHEDULE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Empty(t, cfg.AI.GeminiKey, "missing key must not fail startup")
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", cfg.AI.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "gemini-1.5-pro", cfg.AI.Extract.Model)
	assert.InDelta(t, 0.2, cfg.AI.Extract.Temperature, 1e-6)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Plan.Model)
	assert.InDelta(t, 0.5, cfg.AI.Plan.Temperature, 1e-6)
	assert.False(t, cfg.AI.Plan.RejectDuplicateLocations)
	assert.Equal(t, 30, cfg.Ledger.RetentionDays)
	assert.Equal(t, "0 3 * * *", cfg.Ledger.PruneSchedule)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("TRIP_PROXY_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("GEMINI_API_KEY", " key ")
	t.Setenv("GEMINI_API_URL", "http://localhost:9999/v1beta/")
	t.Setenv("TRIP_PROXY_PLAN_TEMPERATURE", "0.9")
	t.Setenv("TRIP_PROXY_PLAN_REJECT_DUPLICATES", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "key", cfg.AI.GeminiKey)
	assert.Equal(t, "http://localhost:9999/v1beta", cfg.AI.BaseURL)
	assert.InDelta(t, 0.9, cfg.AI.Plan.Temperature, 1e-6)
	assert.True(t, cfg.AI.Plan.RejectDuplicateLocations)
}

func TestLoad_InvalidTemperature(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIP_PROXY_EXTRACT_TEMPERATURE", "3.5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRIP_PROXY_EXTRACT_TEMPERATURE")
}

func TestLoad_ZeroTimeoutMeansUnbounded(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIP_PROXY_PROVIDER_TIMEOUT", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.AI.Timeout)
}

func TestLoad_NegativeTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIP_PROXY_PROVIDER_TIMEOUT", "-5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRIP_PROXY_PROVIDER_TIMEOUT")
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIP_PROXY_PROVIDER_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
}
