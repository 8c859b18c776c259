package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Javets70/url-shortner-backend/internal/logger"
	"github.com/redis/go-redis/v9"
)

// URLKey is the cache key for a link snapshot.
func URLKey(shortCode string) string {
	return fmt.Sprintf("url:%s", shortCode)
}

// RateLimitKey is the counter key for a client's request window.
func RateLimitKey(clientKey string) string {
	return fmt.Sprintf("rate_limit:%s", clientKey)
}

// Cache is a fail-soft facade over Redis. Every operation absorbs transport
// and serialization faults: Set/Delete/Expire report false, Get reports
// absent, Increment reports 0. Callers fall back to the authoritative store;
// a cache outage must never block redirects or writes.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Set stores value under key with the given TTL. Non-string values are
// JSON-encoded before storage.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	data, err := encode(value)
	if err != nil {
		logger.FromContext(ctx).Warn("cache set skipped: encode failed", "key", key, "error", err)
		return false
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.FromContext(ctx).Warn("cache set failed", "key", key, "error", err)
		return false
	}
	return true
}

// Get returns the raw value stored under key, or absent.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		logger.FromContext(ctx).Warn("cache get failed", "key", key, "error", err)
		return "", false
	}
	return value, true
}

// GetJSON decodes the value stored under key into dest. Absent keys, faults
// and undecodable values all report false; decoding is opportunistic, not
// contractual.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	value, ok := c.Get(ctx, key)
	if !ok {
		return false
	}

	if err := json.Unmarshal([]byte(value), dest); err != nil {
		logger.FromContext(ctx).Warn("cache get: stale or undecodable entry", "key", key, "error", err)
		return false
	}
	return true
}

// GetInt returns the integer value stored under key, or absent.
func (c *Cache) GetInt(ctx context.Context, key string) (int64, bool) {
	value, ok := c.Get(ctx, key)
	if !ok {
		return 0, false
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *Cache) Delete(ctx context.Context, key string) bool {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.FromContext(ctx).Warn("cache delete failed", "key", key, "error", err)
		return false
	}
	return true
}

// Increment adds amount to the counter under key and returns the new count.
// A fault reports 0; callers must treat that as a soft failure.
func (c *Cache) Increment(ctx context.Context, key string, amount int64) int64 {
	count, err := c.client.IncrBy(ctx, key, amount).Result()
	if err != nil {
		logger.FromContext(ctx).Warn("cache increment failed", "key", key, "error", err)
		return 0
	}
	return count
}

// IncrementWithTTL adds amount to the counter under key and, in the same
// transaction, arms the TTL if the key has none (EXPIRE NX). The increment
// and the arming cannot fault independently, so a counter can never be left
// behind without an expiry. A fault reports 0.
func (c *Cache) IncrementWithTTL(ctx context.Context, key string, amount int64, ttl time.Duration) int64 {
	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.IncrBy(ctx, key, amount)
		pipe.ExpireNX(ctx, key, ttl)
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Warn("cache increment failed", "key", key, "error", err)
		return 0
	}
	return incr.Val()
}

func (c *Cache) Expire(ctx context.Context, key string, ttl time.Duration) bool {
	ok, err := c.client.Expire(ctx, key, ttl).Result()
	if err != nil {
		logger.FromContext(ctx).Warn("cache expire failed", "key", key, "error", err)
		return false
	}
	return ok
}

func encode(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}
