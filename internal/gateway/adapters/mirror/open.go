package mirror

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"memoboard/internal/gateway/ports/mirror"
	redisdb "memoboard/pkg/db/redis"
	"memoboard/pkg/logger"
)

// Драйверы хранилища.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// Сообщения выбора хранилища.
const (
	LogMirrorOpened      = "mirror store opened"
	ErrUnknownDriver     = "unknown mirror driver"
	ErrFailedToOpenStore = "failed to open mirror store"
)

// Options описывает выбор и настройки хранилища зеркала.
type Options struct {
	Driver      string
	SQLitePath  string
	RedisPrefix string
	RedisTTL    time.Duration
	Redis       *redisdb.Config
}

// Open создает хранилище по Options.Driver.
func Open(ctx context.Context, opts Options) (mirror.Store, error) {
	log := logger.Log(ctx).With(zap.String("driver", opts.Driver))

	var (
		store mirror.Store
		err   error
	)
	switch opts.Driver {
	case DriverMemory:
		store = NewMemoryStore()
	case DriverSQLite:
		store, err = OpenSQLite(ctx, opts.SQLitePath)
	case DriverRedis:
		cfg := opts.Redis
		if cfg == nil {
			cfg = redisdb.DefaultConfig()
		}
		client, cerr := redisdb.NewClient(ctx, cfg)
		if cerr != nil {
			err = cerr
			break
		}
		store = NewRedisStore(client, opts.RedisPrefix, opts.RedisTTL)
	default:
		return nil, fmt.Errorf("%s: %q", ErrUnknownDriver, opts.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToOpenStore, err)
	}

	log.Info(ctx, LogMirrorOpened)
	return store, nil
}
