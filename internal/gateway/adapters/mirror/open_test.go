package mirror_test

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoboard/internal/gateway/adapters/mirror"
	redisdb "memoboard/pkg/db/redis"
)

func TestOpenDrivers(t *testing.T) {
	ctx := context.Background()
	s := miniredis.RunT(t)
	port, err := strconv.Atoi(s.Port())
	require.NoError(t, err)

	redisCfg := redisdb.DefaultConfig()
	redisCfg.Host = s.Host()
	redisCfg.Port = port

	tests := []struct {
		name string
		opts mirror.Options
	}{
		{"memory", mirror.Options{Driver: mirror.DriverMemory}},
		{"sqlite", mirror.Options{Driver: mirror.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "m.db")}},
		{"redis", mirror.Options{Driver: mirror.DriverRedis, RedisPrefix: "test:", Redis: redisCfg}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := mirror.Open(ctx, tt.opts)
			require.NoError(t, err)
			exerciseStore(t, store)
			assert.NoError(t, store.Close())
		})
	}
}

func TestOpenFailures(t *testing.T) {
	ctx := context.Background()

	_, err := mirror.Open(ctx, mirror.Options{Driver: "localstorage"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), mirror.ErrUnknownDriver)

	_, err = mirror.Open(ctx, mirror.Options{Driver: mirror.DriverSQLite})
	require.Error(t, err)
	assert.Contains(t, err.Error(), mirror.ErrFailedToOpenStore)
}
