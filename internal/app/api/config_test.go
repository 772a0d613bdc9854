package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "POSTGRES_DSN", "SQLITE_DSN", "DB_DEBUG", "SEED_SAMPLE_DATA",
		"ORDER_SEARCH_LIMIT", "DEFAULT_PAGE_LIMIT", "TEMPORAL_DISABLED", "SHUTDOWN_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 1000, cfg.OrderSearchLimit)
	assert.Equal(t, 100, cfg.DefaultPageLimit)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.SeedSampleData)
	assert.False(t, cfg.TemporalDisabled)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DEBUG", "yes")
	t.Setenv("SEED_SAMPLE_DATA", "true")
	t.Setenv("ORDER_SEARCH_LIMIT", "50")
	t.Setenv("DEFAULT_PAGE_LIMIT", "20")
	t.Setenv("TEMPORAL_DISABLED", "1")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.DBDebug)
	assert.True(t, cfg.SeedSampleData)
	assert.Equal(t, 50, cfg.OrderSearchLimit)
	assert.Equal(t, 20, cfg.DefaultPageLimit)
	assert.True(t, cfg.TemporalDisabled)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_RejectsBadNumbers(t *testing.T) {
	t.Setenv("ORDER_SEARCH_LIMIT", "5000")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("ORDER_SEARCH_LIMIT", "")
	t.Setenv("DEFAULT_PAGE_LIMIT", "-1")
	_, err = LoadConfig()
	require.Error(t, err)
}
