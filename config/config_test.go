package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults_MemoryDriver(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "segredo")
	t.Setenv("STORAGE_DRIVER", "MEMORY")

	cfg := LoadConfig()

	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.DBTimeout)
	assert.Equal(t, 300*time.Second, cfg.CacheTTL)
	assert.Equal(t, 720*time.Minute, cfg.TokenExpiry)
	assert.Equal(t, "300-M", cfg.RateLimit)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "segredo")
	t.Setenv("DATABASE_URL", "postgres://localhost/mercadinho")
	t.Setenv("DB_TIMEOUT_SEC", "2")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RATE_LIMIT", "10-S")

	cfg := LoadConfig()

	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, "postgres://localhost/mercadinho", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Second, cfg.DBTimeout)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "10-S", cfg.RateLimit)
}

func TestGetIntEnv_InvalidFallsBack(t *testing.T) {
	t.Setenv("REDIS_DB", "abc")
	assert.Equal(t, 7, getIntEnv("REDIS_DB", 7))
}
