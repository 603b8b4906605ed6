package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("YEAR", "2026")
	t.Setenv("LEAGUE_ID", "12345")
}

func TestNewDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "2026", cfg.ESPNAPI.Year)
	assert.Equal(t, "ACTIVE", cfg.Prediction.InjuryStatus)
	assert.Equal(t, 15*time.Minute, cfg.Prediction.CacheTTL)
	assert.Equal(t, time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC), cfg.Prediction.SeasonStartAt)
	assert.Equal(t, 20, cfg.Prediction.Weeks)
	assert.Equal(t, 10, cfg.Prediction.DailyLimit)
	assert.Equal(t, "/mcp", cfg.Server.MCPPath)
}

func TestNewMissingLeague(t *testing.T) {
	t.Setenv("YEAR", "2026")
	t.Setenv("LEAGUE_ID", "")
	require.NoError(t, os.Unsetenv("LEAGUE_ID"))

	_, err := New()
	assert.Error(t, err)
}

func TestNewRejectsBadCron(t *testing.T) {
	setRequired(t)
	t.Setenv("OUTLOOK_CRON", "every monday")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OUTLOOK_CRON")
}

func TestNewRejectsBadSeasonStart(t *testing.T) {
	setRequired(t)
	t.Setenv("SEASON_START", "10/21/2025")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEASON_START")
}
