package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.True(t, cfg.Seed)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 5.0, cfg.RateLimit)
	assert.Equal(t, 10, cfg.RateBurst)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.OTLPEndpoint)
}

func TestOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"HOST":         "127.0.0.1",
		"PORT":         "8080",
		"STORE":        "sqlite",
		"SEED":         "false",
		"CORS_ORIGINS": "http://localhost:5173, https://example.com",
		"RATE_LIMIT":   "0",
		"LOG_LEVEL":    "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, DefaultSQLitePath, cfg.DatabaseURL)
	assert.False(t, cfg.Seed)
	assert.Equal(t, []string{"http://localhost:5173", "https://example.com"}, cfg.CORSOrigins)
	assert.Zero(t, cfg.RateLimit)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"bad port":             {"PORT": "http"},
		"port out of range":    {"PORT": "70000"},
		"unknown store":        {"STORE": "redis"},
		"postgres without url": {"STORE": "postgres"},
		"bad seed":             {"SEED": "maybe"},
		"negative rate":        {"RATE_LIMIT": "-1"},
		"zero burst":           {"RATE_BURST": "0"},
		"unknown log level":    {"LOG_LEVEL": "loud"},
	}

	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(env(vars))
			assert.Error(t, err)
		})
	}
}

func TestLoadFileWithoutDotenv(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), ".env"), env(nil))
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.Store)
}

func TestLoadFileRejectsMalformedDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STORE-KIND=sqlite\n"), 0o600))

	_, err := LoadFile(path, env(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestValidateAfterOverride(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)

	cfg.Store = StoreSQLite
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultSQLitePath, cfg.DatabaseURL)

	cfg.Store = StorePostgres
	cfg.DatabaseURL = ""
	assert.Error(t, cfg.Validate())

	cfg.Store = "redis"
	assert.Error(t, cfg.Validate())
}
