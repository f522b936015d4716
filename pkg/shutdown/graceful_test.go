package shutdown_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoboard/pkg/shutdown"
)

func TestRunExecutesAllHooks(t *testing.T) {
	var calls atomic.Int32
	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}

	err := shutdown.Run(context.Background(), time.Second, hook, hook, hook)

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRunJoinsHookErrors(t *testing.T) {
	errRedis := errors.New("redis close failed")

	err := shutdown.Run(context.Background(), time.Second,
		func(context.Context) error { return nil },
		func(context.Context) error { return errRedis },
	)

	require.ErrorIs(t, err, errRedis)
}

func TestRunRespectsTimeout(t *testing.T) {
	slow := func(ctx context.Context) error {
		select {
		case <-time.After(2 * time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	start := time.Now()
	err := shutdown.Run(context.Background(), 100*time.Millisecond, slow)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitReturnsWhenContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var called atomic.Bool
	done := make(chan error, 1)
	go func() {
		done <- shutdown.Wait(ctx, time.Second, func(hookCtx context.Context) error {
			called.Store(hookCtx.Err() == nil)
			return nil
		})
	}()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
		assert.True(t, called.Load(), "hook must run with a live context")
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after context cancellation")
	}
}
