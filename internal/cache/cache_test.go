package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *CacheConfig {
	cfg := DefaultCacheConfig()
	cfg.TTL = time.Minute
	cfg.CleanupInterval = time.Minute
	return cfg
}

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(testConfig())
	defer c.Close()

	t.Run("Set then Get returns the value", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k1", []byte("v1"), time.Minute))

		value, err := c.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), value)
	})

	t.Run("Missing key returns ErrKeyNotFound", func(t *testing.T) {
		_, err := c.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Expired key returns ErrKeyNotFound", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "short", []byte("v"), time.Nanosecond))
		time.Sleep(5 * time.Millisecond)

		_, err := c.Get(ctx, "short")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Delete removes the key", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k2", []byte("v2"), time.Minute))
		require.NoError(t, c.Delete(ctx, "k2"))

		_, err := c.Get(ctx, "k2")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("DeletePattern removes matching keys", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "names:1", []byte("a"), time.Minute))
		require.NoError(t, c.Set(ctx, "names:2", []byte("b"), time.Minute))
		require.NoError(t, c.Set(ctx, "other:1", []byte("c"), time.Minute))

		require.NoError(t, c.DeletePattern(ctx, "names:*"))

		_, err := c.Get(ctx, "names:1")
		assert.ErrorIs(t, err, ErrKeyNotFound)
		_, err = c.Get(ctx, "other:1")
		assert.NoError(t, err)
	})

	t.Run("Increment starts from zero", func(t *testing.T) {
		value, err := c.Increment(ctx, "counter", 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), value)

		value, err = c.Increment(ctx, "counter", 3)
		require.NoError(t, err)
		assert.Equal(t, int64(5), value)
	})
}

func TestMemoryCache_Sets(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(testConfig())
	defer c.Close()

	require.NoError(t, c.SetAdd(ctx, "sessions", "jti-1"))
	require.NoError(t, c.SetAdd(ctx, "sessions", "jti-2"))

	isMember, err := c.SetIsMember(ctx, "sessions", "jti-1")
	require.NoError(t, err)
	assert.True(t, isMember)

	isMember, err = c.SetIsMember(ctx, "sessions", "jti-3")
	require.NoError(t, err)
	assert.False(t, isMember)

	require.NoError(t, c.SetRemove(ctx, "sessions", "jti-1"))
	isMember, err = c.SetIsMember(ctx, "sessions", "jti-1")
	require.NoError(t, err)
	assert.False(t, isMember)
}

func TestGenericCacheService(t *testing.T) {
	ctx := context.Background()

	t.Run("Round-trips structured data with prefixing", func(t *testing.T) {
		cfg := testConfig()
		svc := NewGenericCacheService(NewMemoryCache(cfg), cfg)
		defer svc.Close()

		type profile struct {
			Name string `json:"name"`
		}

		require.NoError(t, svc.CacheData(ctx, "profile:1", profile{Name: "Ada"}))

		var got profile
		require.NoError(t, svc.GetCached(ctx, "profile:1", &got))
		assert.Equal(t, "Ada", got.Name)
	})

	t.Run("Disabled cache returns ErrCacheDisabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.Enabled = false
		svc := NewGenericCacheService(NewMemoryCache(testConfig()), cfg)
		defer svc.Close()

		err := svc.CacheData(ctx, "k", "v")
		assert.ErrorIs(t, err, ErrCacheDisabled)

		var target string
		err = svc.GetCached(ctx, "k", &target)
		assert.ErrorIs(t, err, ErrCacheDisabled)
	})

	t.Run("Set membership flows through prefixed keys", func(t *testing.T) {
		cfg := testConfig()
		svc := NewGenericCacheService(NewMemoryCache(cfg), cfg)
		defer svc.Close()

		key := svc.GenerateHashKey("sessions", map[string]interface{}{"uid": "admin-1"})
		require.NoError(t, svc.SetAdd(ctx, key, "jti-1"))

		isMember, err := svc.SetIsMember(ctx, key, "jti-1")
		require.NoError(t, err)
		assert.True(t, isMember)

		require.NoError(t, svc.SetRemove(ctx, key, "jti-1"))
		isMember, err = svc.SetIsMember(ctx, key, "jti-1")
		require.NoError(t, err)
		assert.False(t, isMember)
	})

	t.Run("GenerateHashKey is deterministic and order-insensitive", func(t *testing.T) {
		cfg := testConfig()
		svc := NewGenericCacheService(NewMemoryCache(cfg), cfg)
		defer svc.Close()

		k1 := svc.GenerateHashKey("p", map[string]interface{}{"a": "1", "b": "2"})
		k2 := svc.GenerateHashKey("p", map[string]interface{}{"b": "2", "a": "1"})
		k3 := svc.GenerateHashKey("p", map[string]interface{}{"a": "1", "b": "3"})

		assert.Equal(t, k1, k2)
		assert.NotEqual(t, k1, k3)
	})
}
