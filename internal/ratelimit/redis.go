package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/deadloked8999/e-bar/domain"
)

// recordScript bumps the counter and attaches the window TTL on the
// first hit in a single atomic step, so no counter can ever survive
// without an expiry.
var recordScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisLimiter is a fixed-window counter backed by Redis, for deployments
// where the backend runs more than one instance. INCR is atomic per key;
// the window TTL is attached on the first hit.
type RedisLimiter struct {
	client      *redis.Client
	prefix      string
	maxAttempts int
	window      time.Duration
}

// NewRedisLimiter creates a Redis-backed login rate limiter
func NewRedisLimiter(client *redis.Client, maxAttempts int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:      client,
		prefix:      "login:att:",
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Allow implements domain.LoginRateLimiter
func (l *RedisLimiter) Allow(ctx context.Context, identifier string) (bool, error) {
	count, err := l.client.Get(ctx, l.prefix+identifier).Int()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read attempt counter: %w", err)
	}
	return count < l.maxAttempts, nil
}

// RecordAttempt implements domain.LoginRateLimiter
func (l *RedisLimiter) RecordAttempt(ctx context.Context, identifier string) error {
	key := l.prefix + identifier

	if err := recordScript.Run(ctx, l.client, []string{key}, l.window.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	return nil
}

var _ domain.LoginRateLimiter = (*RedisLimiter)(nil)
