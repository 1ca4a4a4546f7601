package ratelimit

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*FixedWindowLimiter, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	limiter, err := NewWithClient(redis.NewClient(&redis.Options{Addr: server.Addr()}), "test:ratelimit", limit, window)
	require.NoError(t, err)
	t.Cleanup(func() { limiter.Close() })
	return limiter, server
}

func TestFixedWindowLimiterRedis(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "ip-1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d should pass", i+1)
	}

	ok, err := limiter.Allow(ctx, "ip-1")
	require.NoError(t, err)
	assert.False(t, ok, "third request should be blocked")

	ok, err = limiter.Allow(ctx, "ip-2")
	require.NoError(t, err)
	assert.True(t, ok, "other keys keep their own quota")
}

func TestFixedWindowLimiterResetsOnNextWindow(t *testing.T) {
	limiter, server := newTestLimiter(t, 1, time.Minute)
	now := time.Date(2024, 3, 1, 10, 0, 30, 0, time.UTC)
	limiter.WithClock(func() time.Time { return now })
	ctx := context.Background()

	ok, err := limiter.Allow(ctx, "ip-1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = limiter.Allow(ctx, "ip-1")
	assert.False(t, ok)

	key := "test:ratelimit:ip-1:" + strconv.FormatInt(now.UnixMilli()/time.Minute.Milliseconds(), 10)
	assert.Equal(t, time.Minute, server.TTL(key))

	now = now.Add(30 * time.Second)
	ok, err = limiter.Allow(ctx, "ip-1")
	require.NoError(t, err)
	assert.True(t, ok, "a new window starts with a fresh count")
}

func TestFixedWindowLimiterReportsRedisErrors(t *testing.T) {
	limiter, server := newTestLimiter(t, 1, time.Second)

	server.Close()
	ok, err := limiter.Allow(context.Background(), "ip-1")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestFixedWindowLimiterConstructorErrors(t *testing.T) {
	limiter, err := New(Config{Limit: 1, Window: time.Second})
	assert.Error(t, err)
	assert.Nil(t, limiter)

	limiter, err = New(Config{Addr: "localhost:6379", Limit: 0, Window: time.Second})
	assert.Error(t, err)
	assert.Nil(t, limiter)

	limiter, err = New(Config{Addr: "localhost:6379", Limit: 1, Window: time.Microsecond})
	assert.Error(t, err)
	assert.Nil(t, limiter)
}
