package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("TURN_TIMER_SECONDS", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 60, cfg.Battle.TurnTimerSeconds)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("REDIS_URL", "redis://localhost:6380/2")
	t.Setenv("TURN_TIMER_SECONDS", "30")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.HTTP.Addr)
	assert.Equal(t, "redis://localhost:6380/2", cfg.Redis.URL)
	assert.Equal(t, 30, cfg.Battle.TurnTimerSeconds)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("TURN_TIMER_SECONDS", "not-a-number")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Battle.TurnTimerSeconds)
}
