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

	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "cookie", cfg.SessionStore)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.AppDebug)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("APP_DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.True(t, cfg.AppDebug)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestValidate_ProductionRequiresSecrets(t *testing.T) {
	cfg := &Config{
		AppEnv:        "production",
		Port:          "8080",
		DBDriver:      "mysql",
		SessionStore:  "cookie",
		SessionSecret: defaultSessionSecret,
		JWTSecret:     "a-real-secret-that-is-long-enough",
		JWTTTL:        time.Hour,
	}
	require.Error(t, cfg.Validate())

	cfg.SessionSecret = "another-real-secret"
	require.NoError(t, cfg.Validate())

	cfg.JWTSecret = defaultJWTSecret
	require.Error(t, cfg.Validate())
}
