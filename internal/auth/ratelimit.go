package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	maxLoginFailures = 5
	failureWindow    = 15 * time.Minute
)

// LoginLimiter throttles repeated failed logins per client address.
type LoginLimiter interface {
	// Allow reports whether the address may attempt a login.
	Allow(ctx context.Context, addr string) bool
	// RecordFailure counts a failed attempt; once the threshold is hit
	// the address stays blocked until the window expires.
	RecordFailure(ctx context.Context, addr string)
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, addr string)
}

// RedisLimiter keeps failure counters in Redis so blocks survive
// restarts and are shared across instances.
type RedisLimiter struct {
	rdb *redis.Client
}

func NewRedisLimiter(rdb *redis.Client) *RedisLimiter {
	return &RedisLimiter{rdb: rdb}
}

func (l *RedisLimiter) key(addr string) string {
	return "login_failures:" + addr
}

func (l *RedisLimiter) Allow(ctx context.Context, addr string) bool {
	n, err := l.rdb.Get(ctx, l.key(addr)).Int()
	if err != nil {
		// Missing key or Redis trouble both fall open; throttling is
		// best-effort and must not lock users out on store errors.
		return true
	}
	return n < maxLoginFailures
}

func (l *RedisLimiter) RecordFailure(ctx context.Context, addr string) {
	n, err := l.rdb.Incr(ctx, l.key(addr)).Result()
	if err != nil {
		return
	}
	if n == 1 {
		l.rdb.Expire(ctx, l.key(addr), failureWindow)
	}
}

func (l *RedisLimiter) Reset(ctx context.Context, addr string) {
	l.rdb.Del(ctx, l.key(addr))
}
