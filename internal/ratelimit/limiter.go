// Package ratelimit implements a fixed-window request counter on top of the
// cache layer. Each increment arms the window TTL only if the counter has
// none, in the same transaction, so a continuously active client cannot
// extend its own window and a counter can never be stranded without an
// expiry; counts within a window stay atomic because INCR is atomic on the
// Redis side.
package ratelimit

import (
	"context"
	"time"

	redisrepo "github.com/Javets70/url-shortner-backend/internal/repository/redis"
)

type Cache interface {
	GetInt(ctx context.Context, key string) (int64, bool)
	IncrementWithTTL(ctx context.Context, key string, amount int64, ttl time.Duration) int64
}

type Limiter struct {
	cache  Cache
	limit  int64
	window time.Duration
}

func New(cache Cache, limit int, window time.Duration) *Limiter {
	return &Limiter{
		cache:  cache,
		limit:  int64(limit),
		window: window,
	}
}

// Admit reports whether a request from clientKey may proceed. Cache faults
// fail open: an unreachable counter never blocks traffic.
func (l *Limiter) Admit(ctx context.Context, clientKey string) bool {
	key := redisrepo.RateLimitKey(clientKey)

	if count, ok := l.cache.GetInt(ctx, key); ok && count >= l.limit {
		return false
	}

	l.cache.IncrementWithTTL(ctx, key, 1, l.window)
	return true
}
