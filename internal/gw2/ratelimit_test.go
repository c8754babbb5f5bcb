package gw2

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeLimiter(rpm int, now *time.Time) *rateLimiter {
	rl := newRateLimiter(rpm)
	rl.now = func() time.Time { return *now }
	rl.lastRefill = *now
	return rl
}

func TestRateLimiter(t *testing.T) {
	t.Run("burst up to capacity", func(t *testing.T) {
		now := time.Unix(0, 0)
		rl := newFakeLimiter(60, &now)

		for i := 0; i < 60; i++ {
			require.Zero(t, rl.tryAcquire(), "request %d should not wait", i)
		}

		delay := rl.tryAcquire()
		assert.Equal(t, time.Second, delay)
	})

	t.Run("refills over time", func(t *testing.T) {
		now := time.Unix(0, 0)
		rl := newFakeLimiter(60, &now)
		for i := 0; i < 60; i++ {
			rl.tryAcquire()
		}
		assert.Equal(t, 0, rl.available())

		now = now.Add(2500 * time.Millisecond)
		assert.Zero(t, rl.tryAcquire())
		assert.Equal(t, 1, rl.available())
		assert.Zero(t, rl.tryAcquire())
		assert.Equal(t, 500*time.Millisecond, rl.tryAcquire())
	})

	t.Run("never exceeds capacity", func(t *testing.T) {
		now := time.Unix(0, 0)
		rl := newFakeLimiter(10, &now)

		now = now.Add(time.Hour)
		assert.Zero(t, rl.tryAcquire())
		assert.Equal(t, 9, rl.available())
	})

	t.Run("context cancellation", func(t *testing.T) {
		rl := newRateLimiter(1)
		require.NoError(t, rl.wait(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- rl.wait(ctx)
		}()

		cancel()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("wait did not return after cancellation")
		}
	})

	t.Run("default rate", func(t *testing.T) {
		rl := newRateLimiter(0)
		assert.Equal(t, DefaultRequestsPerMinute, rl.capacity)
	})
}
