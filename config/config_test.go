package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8420", cfg.Addr)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "claude-sonnet-4-5", cfg.ArchitectModel)
	assert.Equal(t, "gpt-4o", cfg.ReviewerModel)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 50, cfg.HistoryLimit)
	assert.Equal(t, 5*time.Minute, cfg.RunBudget)
	assert.Equal(t, 15*time.Second, cfg.HeartbeatInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogJSON)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AGENTCOUNCIL_ADDR", "0.0.0.0:9000")
	t.Setenv("AGENTCOUNCIL_DATABASE_URL", "postgres://localhost/council")
	t.Setenv("AGENTCOUNCIL_RUN_BUDGET", "2m")
	t.Setenv("AGENTCOUNCIL_LOG_JSON", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
	assert.Equal(t, "postgres://localhost/council", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Minute, cfg.RunBudget)
	assert.True(t, cfg.LogJSON)
}

func TestLoad_ValidationFailures(t *testing.T) {
	t.Setenv("AGENTCOUNCIL_TEMPERATURE", "3.5")
	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidTemperature)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Temperature:       0.7,
		HistoryLimit:      50,
		RunBudget:         time.Minute,
		HeartbeatInterval: time.Second,
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.HistoryLimit = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidHistoryLimit)

	bad = valid
	bad.RunBudget = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidRunBudget)

	bad = valid
	bad.HeartbeatInterval = -time.Second
	assert.ErrorIs(t, bad.Validate(), ErrInvalidHeartbeat)
}
