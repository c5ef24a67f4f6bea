package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestLoadFromEnv tests loading configuration from environment variables
func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret_key")
	t.Setenv("API_PORT", "9090")
	t.Setenv("DB_NAME", "muniportal_test")
	t.Setenv("LOOKUP_API_TOKEN", "apis-token")
	t.Setenv("AUDIT_RETENTION_DAYS", "90")

	cfg := &Config{}
	err := cfg.LoadFromEnv()
	require.NoError(t, err)

	// Verify configuration values
	require.Equal(t, "9090", cfg.API.Port)
	require.Equal(t, "localhost", cfg.Database.Host)
	require.Equal(t, 5432, cfg.Database.Port)
	require.Equal(t, "muniportal_test", cfg.Database.DBName)
	require.Equal(t, "disable", cfg.Database.SSLMode)
	require.Equal(t, "test_secret_key", cfg.Auth.JWTSecret)
	require.Equal(t, 8*time.Hour, cfg.Auth.TokenDuration)
	require.Equal(t, 24*time.Hour, cfg.Auth.SessionDuration)
	require.Equal(t, "https://api.apis.net.pe/v2", cfg.Lookup.BaseURL)
	require.Equal(t, "apis-token", cfg.Lookup.Token)
	require.Equal(t, 10*time.Second, cfg.Lookup.Timeout)
	require.Equal(t, 90, cfg.Audit.RetentionDays)
	require.Equal(t, "30 3 * * *", cfg.Audit.RetentionSchedule)
}

// TestLoadFromEnv_RequiresJWTSecret verifies the secret cannot be defaulted
func TestLoadFromEnv_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg := &Config{}
	err := cfg.LoadFromEnv()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET")
}

// TestLoadFromEnv_Defaults verifies defaults used when variables are unset
func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret_key")

	cfg := &Config{}
	err := cfg.LoadFromEnv()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.API.Port)
	require.Equal(t, "muniportal", cfg.Database.DBName)
	require.Equal(t, 1000, cfg.RateLimit.Requests)
	require.Equal(t, 60, cfg.RateLimit.Window)
	require.Equal(t, 0, cfg.Audit.RetentionDays)
}

// TestLoadFromEnv_InvalidDurationFallsBack verifies bad values use defaults
func TestLoadFromEnv_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret_key")
	t.Setenv("TOKEN_DURATION", "not-a-duration")
	t.Setenv("RATE_LIMIT_REQUESTS", "many")

	cfg := &Config{}
	err := cfg.LoadFromEnv()
	require.NoError(t, err)

	require.Equal(t, 8*time.Hour, cfg.Auth.TokenDuration)
	require.Equal(t, 1000, cfg.RateLimit.Requests)
}
