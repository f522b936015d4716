package logger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"memoboard/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	levels := []string{"debug", "info", "warn", "warning", "error", "bogus", ""}

	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range levels {
			t.Run(string(env)+"/level="+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)

				assert.NotPanics(t, func() {
					log.Debug(context.Background(), "debug message")
					log.Info(context.Background(), "info message", zap.Int("n", 1))
				})
			})
		}
	}
}

func TestLoggerWith(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	child := log.With(zap.String("key", "value"))
	assert.NotSame(t, log, child)

	named := log.Named("memos")
	assert.NotSame(t, log, named)
}

func TestFromContext(t *testing.T) {
	t.Run("logger stored in context", func(t *testing.T) {
		testLogger := logger.NewNop()
		ctx := logger.NewContext(context.Background(), testLogger)

		got, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, got)
	})

	t.Run("missing logger", func(t *testing.T) {
		got, err := logger.FromContext(context.Background())
		require.ErrorIs(t, err, logger.ErrLoggerNotFound)
		assert.Nil(t, got)
	})

	t.Run("nil context", func(t *testing.T) {
		//nolint:staticcheck // nil context is part of the contract
		got, err := logger.FromContext(nil)
		require.ErrorIs(t, err, logger.ErrLoggerNotFound)
		assert.Nil(t, got)
	})
}

func TestLog(t *testing.T) {
	logger.SetGlobalLogger(nil)
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	t.Run("context logger wins over global", func(t *testing.T) {
		global := logger.NewNop()
		logger.SetGlobalLogger(global)

		local := logger.NewNop()
		ctx := logger.NewContext(context.Background(), local)

		assert.Same(t, local, logger.Log(ctx))
	})

	t.Run("global logger when context is empty", func(t *testing.T) {
		global := logger.NewNop()
		logger.SetGlobalLogger(global)

		assert.Same(t, global, logger.Log(context.Background()))
	})

	t.Run("fallback logger is a singleton", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		first := logger.Log(context.Background())
		second := logger.Log(context.Background())
		require.NotNil(t, first)
		assert.Same(t, first, second)
	})
}

func TestInitGlobalLoggerWithLevel(t *testing.T) {
	logger.SetGlobalLogger(nil)
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "debug"))
	first := logger.Log(context.Background())

	require.NoError(t, logger.InitGlobalLogger(logger.Production))
	assert.Same(t, first, logger.Log(context.Background()), "second init must keep the existing logger")
}

func TestRequestID(t *testing.T) {
	t.Run("explicit id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-1")

		id, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.Equal(t, "req-1", id)
	})

	t.Run("generated id is a UUID v4", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)

		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
	})

	t.Run("absent id", func(t *testing.T) {
		id, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
		assert.Empty(t, id)
	})

	t.Run("WithRequestID", func(t *testing.T) {
		log := logger.NewNop()

		assert.Same(t, log, log.WithRequestID(context.Background()))

		ctx := logger.NewRequestIDContext(context.Background(), "req-2")
		assert.NotSame(t, log, log.WithRequestID(ctx))
	})
}
