package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisTimeout = 2 * time.Second

// Config describes a Redis-backed fixed window.
type Config struct {
	Addr     string
	Password string
	Prefix   string
	Limit    int
	Window   time.Duration
}

// FixedWindowLimiter counts requests per key in Redis. Each window is its own key,
// named by the window's index since the epoch, so counters reset on window boundaries.
type FixedWindowLimiter struct {
	rdb    redis.UniversalClient
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

// New connects a limiter to the Redis at cfg.Addr.
func New(cfg Config) (*FixedWindowLimiter, error) {
	if cfg.Addr == "" {
		return nil, errors.New("ratelimit: redis address is required")
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password})
	limiter, err := NewWithClient(rdb, cfg.Prefix, cfg.Limit, cfg.Window)
	if err != nil {
		rdb.Close()
		return nil, err
	}
	return limiter, nil
}

// NewWithClient builds a limiter on an existing client. Close closes that client.
func NewWithClient(rdb redis.UniversalClient, prefix string, limit int, window time.Duration) (*FixedWindowLimiter, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("ratelimit: limit must be positive, got %d", limit)
	}
	if window < time.Millisecond {
		return nil, fmt.Errorf("ratelimit: window must be at least 1ms, got %s", window)
	}
	if prefix == "" {
		prefix = "booknook:ratelimit"
	}
	return &FixedWindowLimiter{
		rdb:    rdb,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}, nil
}

// WithClock replaces the time source.
func (l *FixedWindowLimiter) WithClock(now func() time.Time) *FixedWindowLimiter {
	l.now = now
	return l
}

// Allow counts one request for key and reports whether it is within quota.
// Redis errors are returned as is; the caller picks fail-open or fail-closed.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if key == "" {
		key = "unknown"
	}
	slot := l.now().UnixMilli() / l.window.Milliseconds()
	counter := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, counter)
		pipe.PExpire(ctx, counter, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("ratelimit: count %s: %w", key, err)
	}
	return incr.Val() <= l.limit, nil
}

func (l *FixedWindowLimiter) Close() error {
	return l.rdb.Close()
}
