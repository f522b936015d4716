package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoboard/internal/gateway/config"
	"memoboard/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.GetAddress())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "http://localhost:9999/api/memos", cfg.Backend.MemosURL())
	assert.Equal(t, "http://localhost:9999/api/board", cfg.Backend.BoardURL())
	assert.True(t, cfg.Backend.Credentialed)
	assert.Equal(t, config.MirrorSQLite, cfg.Mirror.Driver)
	assert.Equal(t, 5*time.Second, cfg.Shutdown.GetTimeout())
	assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())

	res := cfg.Resilience.Resilience()
	assert.Equal(t, 3, res.Retry.MaxAttempts)
	assert.Equal(t, 5, res.Breaker.ErrorThreshold)
	assert.Equal(t, 10*time.Second, res.Breaker.Timeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GATEWAY_BACKEND_ORIGIN", "http://backend:9000/")
	t.Setenv("GATEWAY_MIRROR_DRIVER", "redis")
	t.Setenv("GATEWAY_REDIS_HOST", "cache")
	t.Setenv("GATEWAY_HTTP_CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("GATEWAY_LOGGER_MODE", "development")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "http://backend:9000/api/memos", cfg.Backend.MemosURL())
	assert.Equal(t, config.MirrorRedis, cfg.Mirror.Driver)
	assert.Equal(t, "cache:6379", cfg.Redis.ClientConfig().Addr())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
}

func TestLoadRejectsUnknownMirrorDriver(t *testing.T) {
	t.Setenv("GATEWAY_MIRROR_DRIVER", "localstorage")

	_, err := config.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrInvalidConfig)
}
