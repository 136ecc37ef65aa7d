package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "maintenance-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.Equal(t, 5*1024*1024, cfg.Upload.MaxBytes)
	assert.True(t, cfg.Seed.DemoAccounts)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "noreply@qwego.com", cfg.Notify.EmailFrom)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("SEED_DEMO_ACCOUNTS", "false")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, 1024, cfg.Upload.MaxBytes)
	assert.False(t, cfg.Seed.DemoAccounts)
	assert.Equal(t, 15, cfg.Auth.AccessTokenTTLMinutes)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestRequestTimeoutDisabledWhenNonPositive(t *testing.T) {
	app := AppConfig{RequestTimeoutSeconds: 0}
	assert.Equal(t, time.Duration(0), app.RequestTimeout())
}
