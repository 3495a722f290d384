package binder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/admin-api/internal/cache"
	"github.com/skillswap/admin-api/internal/store"
)

func waitForSnapshotLen(t *testing.T, b *Binder, want int) store.Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap := b.Snapshot()
		if len(snap) == want {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("snapshot never reached %d documents", want)
	return nil
}

func TestBinder_InitialSnapshot(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	defer st.Close()

	_, err := st.Push(ctx, "feedback", map[string]interface{}{"message": "hi"})
	require.NoError(t, err)

	b := New(ctx, st, "feedback")
	defer b.Close()

	snap := b.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "hi", snap[0].String("message"))
	assert.Equal(t, "feedback", b.Path())
}

func TestBinder_ReplacesOnMutation(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	defer st.Close()

	b := New(ctx, st, "posts")
	defer b.Close()

	assert.Empty(t, b.Snapshot())

	key, err := st.Push(ctx, "posts", map[string]interface{}{"status": "pending"})
	require.NoError(t, err)
	waitForSnapshotLen(t, b, 1)

	require.NoError(t, st.Delete(ctx, "posts", key))
	waitForSnapshotLen(t, b, 0)
}

func TestBinder_CloseReleasesSubscription(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	defer st.Close()

	b := New(ctx, st, "users")
	b.Close()

	// Mutations after Close must not block or panic.
	_, err := st.Push(ctx, "users", map[string]interface{}{"name": "Ada"})
	assert.NoError(t, err)
}

func TestSet_GetAndClose(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	defer st.Close()

	set := NewSet(ctx, st, "users", "feedback")
	defer set.Close()

	assert.NotNil(t, set.Get("users"))
	assert.NotNil(t, set.Get("feedback"))
	assert.Nil(t, set.Get("reports"))
}

func TestNameResolver(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	defer st.Close()

	require.NoError(t, st.Write(ctx, "users", "u1", map[string]interface{}{
		"name":  "Ada Lovelace",
		"email": "ada@skillswap.io",
	}))
	require.NoError(t, st.Write(ctx, "users", "u2", map[string]interface{}{
		"email": "anon@skillswap.io",
	}))

	cfg := cache.DefaultCacheConfig()
	cacheService := cache.NewGenericCacheService(cache.NewMemoryCache(cfg), cfg)
	defer cacheService.Close()

	r := NewNameResolver(st, cacheService)

	t.Run("Resolves existing users", func(t *testing.T) {
		assert.Equal(t, "Ada Lovelace", r.ResolveName(ctx, "u1"))
	})

	t.Run("Missing record falls back to Unknown User", func(t *testing.T) {
		assert.Equal(t, UnknownUserName, r.ResolveName(ctx, "missing"))
	})

	t.Run("Record without a name falls back to Unknown User", func(t *testing.T) {
		assert.Equal(t, UnknownUserName, r.ResolveName(ctx, "u2"))
	})

	t.Run("System id resolves to System", func(t *testing.T) {
		assert.Equal(t, SystemUserName, r.ResolveName(ctx, SystemUserID))
	})

	t.Run("Batch resolution maps every id", func(t *testing.T) {
		names := r.ResolveNames(ctx, []string{"u1", "missing", SystemUserID, "u1"})
		assert.Equal(t, "Ada Lovelace", names["u1"])
		assert.Equal(t, UnknownUserName, names["missing"])
		assert.Equal(t, SystemUserName, names[SystemUserID])
	})

	t.Run("Cached name survives a store delete until invalidated", func(t *testing.T) {
		assert.Equal(t, "Ada Lovelace", r.ResolveName(ctx, "u1"))

		require.NoError(t, st.Delete(ctx, "users", "u1"))
		assert.Equal(t, "Ada Lovelace", r.ResolveName(ctx, "u1"))

		r.Invalidate(ctx, "u1")
		assert.Equal(t, UnknownUserName, r.ResolveName(ctx, "u1"))
	})
}
