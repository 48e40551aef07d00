package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 600, cfg.MaxMonths)
	assert.Equal(t, 2, cfg.CapMultiple())
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 10000, cfg.CacheSize)
	assert.Equal(t, ":8000", cfg.Addr())
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_RATE", "50.5")
	t.Setenv("ITERATION_CAP_MULTIPLE", "3")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("CACHE_SIZE", "500")
	t.Setenv("MAX_MONTHS", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 50.5, cfg.MaxRate)
	assert.Equal(t, 3, cfg.CapMultiple())
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 500, cfg.CacheSize)
	assert.Equal(t, 600, cfg.MaxMonths)
}

func TestCapMultiple_Invalid(t *testing.T) {
	var nilCfg *Config
	assert.Equal(t, 2, nilCfg.CapMultiple())
	assert.Equal(t, 2, (&Config{IterationCapMultiple: 0}).CapMultiple())
}
