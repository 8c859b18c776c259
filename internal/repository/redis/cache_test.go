package redis

import (
	"context"
	"testing"
	"time"

	"github.com/Javets70/url-shortner-backend/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return NewCache(client), mr
}

func setupBrokenCache(t *testing.T) *Cache {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	mr.Close()
	t.Cleanup(func() { client.Close() })

	return NewCache(client)
}

func TestCache_SetAndGetJSON(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	expires := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	url := &domain.ShortURL{
		ID:          1,
		ShortCode:   "abc123",
		OriginalURL: "https://example.com",
		IsActive:    true,
		ExpiresAt:   &expires,
		VisitCount:  10,
	}

	ok := cache.Set(ctx, URLKey(url.ShortCode), url, 10*time.Minute)
	require.True(t, ok)

	var got domain.ShortURL
	require.True(t, cache.GetJSON(ctx, URLKey("abc123"), &got))
	assert.Equal(t, url.ShortCode, got.ShortCode)
	assert.Equal(t, url.OriginalURL, got.OriginalURL)
	assert.Equal(t, url.VisitCount, got.VisitCount)
	require.NotNil(t, got.ExpiresAt)
	assert.True(t, expires.Equal(*got.ExpiresAt))
}

func TestCache_GetAbsentKey(t *testing.T) {
	cache, _ := setupTestCache(t)

	_, ok := cache.Get(context.Background(), "missing")
	assert.False(t, ok)

	var dest domain.ShortURL
	assert.False(t, cache.GetJSON(context.Background(), "missing", &dest))
}

func TestCache_RawStringPassthrough(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.True(t, cache.Set(ctx, "plain", "not json at all", time.Minute))

	value, ok := cache.Get(ctx, "plain")
	require.True(t, ok)
	assert.Equal(t, "not json at all", value)

	// Decoding is opportunistic: an undecodable entry is treated as absent
	// for typed reads but the raw value stays retrievable.
	var dest domain.ShortURL
	assert.False(t, cache.GetJSON(ctx, "plain", &dest))
}

func TestCache_EntryExpires(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.True(t, cache.Set(ctx, "temp", "value", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, "temp")
	assert.False(t, ok)
}

func TestCache_Delete(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.True(t, cache.Set(ctx, "gone", "value", time.Minute))
	assert.True(t, cache.Delete(ctx, "gone"))

	_, ok := cache.Get(ctx, "gone")
	assert.False(t, ok)
}

func TestCache_IncrementAndExpire(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	assert.Equal(t, int64(1), cache.Increment(ctx, "counter", 1))
	assert.Equal(t, int64(3), cache.Increment(ctx, "counter", 2))

	count, ok := cache.GetInt(ctx, "counter")
	require.True(t, ok)
	assert.Equal(t, int64(3), count)

	assert.True(t, cache.Expire(ctx, "counter", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok = cache.GetInt(ctx, "counter")
	assert.False(t, ok)
}

func TestCache_IncrementWithTTLArmsOnlyOnce(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	assert.Equal(t, int64(1), cache.IncrementWithTTL(ctx, "counter", 1, time.Minute))
	mr.FastForward(30 * time.Second)

	// A later increment must not extend a live TTL.
	assert.Equal(t, int64(2), cache.IncrementWithTTL(ctx, "counter", 1, time.Minute))
	assert.LessOrEqual(t, mr.TTL("counter"), 30*time.Second)

	mr.FastForward(31 * time.Second)
	_, ok := cache.GetInt(ctx, "counter")
	assert.False(t, ok)
}

func TestCache_IncrementWithTTLRearmsUntimedKey(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	// Counter created without a TTL; the transactional increment arms it.
	assert.Equal(t, int64(1), cache.Increment(ctx, "counter", 1))
	require.Zero(t, mr.TTL("counter"))

	assert.Equal(t, int64(2), cache.IncrementWithTTL(ctx, "counter", 1, time.Minute))
	assert.Greater(t, mr.TTL("counter"), time.Duration(0))
}

func TestCache_FailsSoftOnFault(t *testing.T) {
	cache := setupBrokenCache(t)
	ctx := context.Background()

	assert.False(t, cache.Set(ctx, "key", "value", time.Minute))

	_, ok := cache.Get(ctx, "key")
	assert.False(t, ok)

	assert.False(t, cache.Delete(ctx, "key"))
	assert.Equal(t, int64(0), cache.Increment(ctx, "key", 1))
	assert.Equal(t, int64(0), cache.IncrementWithTTL(ctx, "key", 1, time.Minute))
	assert.False(t, cache.Expire(ctx, "key", time.Minute))
}
