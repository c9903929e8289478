//go:build !integration

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_PASSWORD", "pass")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.False(t, cfg.Verification.IncludePendingVendors)
	assert.Equal(t, 100, cfg.Verification.MaxPageSize)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 10, cfg.Redis.PoolSize)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_PASSWORD", "pass")
	t.Setenv("VERIFICATION_INCLUDE_PENDING_VENDORS", "true")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Verification.IncludePendingVendors)
	assert.Equal(t, 2*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_MissingSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "pass")

	_, err := Load()
	assert.EqualError(t, err, "missing jwt secret")

	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_PASSWORD", "")

	_, err = Load()
	assert.EqualError(t, err, "missing database password")
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_PASSWORD", "pass")
	t.Setenv("REDIS_DB", "zero")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidRedisPoolSize(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_PASSWORD", "pass")
	t.Setenv("REDIS_POOL_SIZE", "0")

	_, err := Load()
	assert.EqualError(t, err, "redis pool size must be positive")
}
