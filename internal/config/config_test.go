package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "./users.json", cfg.DataFile)
	assert.Equal(t, DefaultSessionSecret, cfg.SessionSecret)
	assert.Equal(t, "admin", cfg.AdminUser)
	assert.Equal(t, "admin123", cfg.AdminPass)
	assert.Equal(t, "@every 15s", cfg.TelemetrySchedule)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_FILE", "/var/lib/fleetpulse/users.json")
	t.Setenv("SESSION_SECRET", "super-secret")
	t.Setenv("ADMIN_USER", "ops")
	t.Setenv("ADMIN_PASS", "hunter2")
	t.Setenv("TELEMETRY_SCHEDULE", "@every 1m")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, "/var/lib/fleetpulse/users.json", cfg.DataFile)
	assert.Equal(t, "super-secret", cfg.SessionSecret)
	assert.Equal(t, "ops", cfg.AdminUser)
	assert.Equal(t, "hunter2", cfg.AdminPass)
	assert.Equal(t, "@every 1m", cfg.TelemetrySchedule)
	assert.True(t, cfg.IsProduction())
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}
