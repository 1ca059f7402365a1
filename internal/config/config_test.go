package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBase(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "sign")
	t.Setenv("ENCRYPTION_KEY", "seal")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("STORAGE_BACKEND", "local")
}

func TestLoadDefaults(t *testing.T) {
	setBase(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(1<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, "wallet.settlements", cfg.EventsQueue)
}

func TestLoadRejectsEqualSecrets(t *testing.T) {
	setBase(t)
	t.Setenv("ENCRYPTION_KEY", "sign")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must differ")
}

func TestLoadRequiresSecrets(t *testing.T) {
	setBase(t)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ENCRYPTION_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
	assert.Contains(t, err.Error(), "ENCRYPTION_KEY is required")
}

func TestLoadRequiresDatabaseForPostgres(t *testing.T) {
	setBase(t)
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadMinioSettings(t *testing.T) {
	setBase(t)
	t.Setenv("STORAGE_BACKEND", "minio")
	t.Setenv("MINIO_ENDPOINT", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_ACCESS_KEY", "minio")
	t.Setenv("MINIO_SECRET_KEY", "minio123")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "minio", cfg.Storage.Backend)
}

func TestLoadBadValues(t *testing.T) {
	setBase(t)
	t.Setenv("TOKEN_TTL", "twelve hours")
	t.Setenv("RATE_RPS", "fast")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_TTL")
	assert.Contains(t, err.Error(), "RATE_RPS")
}
