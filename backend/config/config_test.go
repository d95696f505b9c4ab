package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_TTL", "168h")
	t.Setenv("REVIEW_CACHE_TTL", "5m")
	t.Setenv("REDIS_DB", "0")
	t.Setenv("STORAGE", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 168*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5*time.Minute, cfg.ReviewCacheTTL)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("JWT_TTL", "a week")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "JWT_TTL")

	t.Setenv("JWT_TTL", "1h")
	t.Setenv("REDIS_DB", "zero")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "REDIS_DB")

	t.Setenv("REDIS_DB", "0")
	t.Setenv("STORAGE", "mongo")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "STORAGE")
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "u",
		DBPassword: "p",
		DBName:     "learnsphere",
		DBSSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=learnsphere sslmode=disable", cfg.DSN())
}
