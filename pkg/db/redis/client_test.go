package redis_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoboard/pkg/db/redis"
)

func configFor(t *testing.T, addr string) *redis.Config {
	t.Helper()

	host, portStr, _ := strings.Cut(addr, ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := redis.DefaultConfig()
	cfg.Host = host
	cfg.Port = port
	cfg.Timeout = time.Second
	return cfg
}

func TestNewClient(t *testing.T) {
	s := miniredis.RunT(t)
	ctx := context.Background()

	rdb, err := redis.NewClient(ctx, configFor(t, s.Addr()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	require.NoError(t, rdb.Set(ctx, "k", "v", 0).Err())
	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewClientUnreachable(t *testing.T) {
	s := miniredis.RunT(t)
	cfg := configFor(t, s.Addr())
	s.Close()

	rdb, err := redis.NewClient(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, rdb)
	assert.Contains(t, err.Error(), redis.ErrConnect)
}

func TestConfigAddr(t *testing.T) {
	cfg := redis.DefaultConfig()
	assert.Equal(t, "localhost:6379", cfg.Addr())
}
