package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, 20, cfg.DBMaxConns)
	assert.Equal(t, 5*time.Second, cfg.DBAcquireTimeout)
	assert.Equal(t, 10*time.Second, cfg.DBConnectTimeout)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, CacheBackendMemory, cfg.CacheBackend)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/hireova")
	t.Setenv("DATABASE_ACQUIRE_TIMEOUT", "250ms")
	t.Setenv("DATABASE_CONNECT_TIMEOUT", "3s")
	t.Setenv("REQUEST_TIMEOUT", "12")
	t.Setenv("ALLOWED_ORIGINS", "https://app.hireova.ai/, http://localhost:3000")
	t.Setenv("API_PREFIX", "api/v2/")
	t.Setenv("CACHE_BACKEND", "none")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.DBAcquireTimeout)
	assert.Equal(t, 3*time.Second, cfg.DBConnectTimeout)
	assert.Equal(t, 12*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"https://app.hireova.ai", "http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "/api/v2", cfg.APIPrefix)
	assert.Equal(t, CacheBackendNone, cfg.CacheBackend)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			StorageDriver:       StorageDriverMemory,
			CacheBackend:        CacheBackendMemory,
			CacheMemoryCapacity: 10,
			DBMaxConns:          5,
			DBMinConns:          1,
			DBAcquireTimeout:    time.Second,
			BcryptCost:          10,
		}
	}

	t.Run("valid", func(t *testing.T) {
		cfg := base()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("postgres without url", func(t *testing.T) {
		cfg := base()
		cfg.StorageDriver = StorageDriverPostgres
		assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")
	})

	t.Run("redis without url", func(t *testing.T) {
		cfg := base()
		cfg.CacheBackend = CacheBackendRedis
		assert.ErrorContains(t, cfg.Validate(), "REDIS_URL")
	})

	t.Run("pool bounds", func(t *testing.T) {
		cfg := base()
		cfg.DBMinConns = 10
		assert.ErrorContains(t, cfg.Validate(), "DATABASE_POOL_MIN")
	})

	t.Run("negative connect timeout", func(t *testing.T) {
		cfg := base()
		cfg.DBConnectTimeout = -time.Second
		assert.ErrorContains(t, cfg.Validate(), "DATABASE_CONNECT_TIMEOUT")
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := base()
		cfg.StorageDriver = "sqlite"
		assert.ErrorContains(t, cfg.Validate(), "STORAGE_DRIVER")
	})
}
