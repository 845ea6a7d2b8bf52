package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebenezer-app/ebenezer/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"BACKEND", "SQLITE_PATH", "AUTH_SECRET", "AUTH_TOKEN_TTL", "PORT", "CORS_ALLOWED_ORIGINS"} {
		// Setenv restores the original value on cleanup; Unsetenv lets the default apply.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendSQLite, cfg.Backend)
	assert.Equal(t, "data/ebenezer.db", cfg.DSN())
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.ErrorIs(t, cfg.RequireSecret(), config.ErrMissingSecret)
}

func TestLoad_Postgres(t *testing.T) {
	t.Setenv("BACKEND", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("DB_USER", "ebenezer")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "chiesa")
	t.Setenv("AUTH_SECRET", "s3cr3t")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://ebenezer:secret@db:6432/chiesa?sslmode=disable", cfg.DSN())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.NoError(t, cfg.RequireSecret())
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("BACKEND", "mysql")

	_, err := config.Load()
	assert.Error(t, err)
}
