// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/admin-api/internal/audit"
	"github.com/skillswap/admin-api/internal/binder"
	"github.com/skillswap/admin-api/internal/listview"
	"github.com/skillswap/admin-api/internal/store"
	"github.com/skillswap/admin-api/posts/errors"
)

func newTestService(t *testing.T) (PostService, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	t.Cleanup(func() { st.Close() })

	resolver := binder.NewNameResolver(st, nil)
	recorder := audit.NewRecorder(st)
	return NewPostService(st, nil, resolver, recorder), st
}

func seedPosts(t *testing.T, st *store.MemoryStore) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, st.Write(ctx, "users", "u1", map[string]interface{}{"name": "Alice"}))

	require.NoError(t, st.Write(ctx, "posts", "p1", map[string]interface{}{
		"user_id":    "u1",
		"content":    "Teach guitar basics",
		"image":      "https://cdn.skillswap.example/p1.jpg",
		"status":     "pending",
		"created_at": "2026-02-01T09:00:00Z",
	}))
	require.NoError(t, st.Write(ctx, "posts", "p2", map[string]interface{}{
		"user_id":    "u1",
		"content":    "Spanish conversation",
		"status":     "approved",
		"created_at": "2026-02-02T09:00:00Z",
	}))
	require.NoError(t, st.Write(ctx, "posts", "p3", map[string]interface{}{
		"user_id":    "u1",
		"content":    "Sourdough baking",
		"status":     "pending",
		"created_at": "2026-02-03T09:00:00Z",
	}))
}

func TestPostService_List(t *testing.T) {
	svc, st := newTestService(t)
	seedPosts(t, st)
	ctx := context.Background()

	t.Run("surfaces only pending posts", func(t *testing.T) {
		page, err := svc.List(ctx, listview.Params{Page: 1})
		require.NoError(t, err)

		require.Len(t, page.Items, 2)
		assert.Equal(t, "p3", page.Items[0].ID)
		assert.Equal(t, "p1", page.Items[1].ID)
		assert.Equal(t, "Alice", page.Items[0].UserName)
		assert.Equal(t, "Sourdough baking", page.Items[0].Content)
		assert.Equal(t, "https://cdn.skillswap.example/p1.jpg", page.Items[1].Image)
	})

	t.Run("search covers content", func(t *testing.T) {
		page, err := svc.List(ctx, listview.Params{Search: "guitar", Page: 1})
		require.NoError(t, err)

		require.Len(t, page.Items, 1)
		assert.Equal(t, "p1", page.Items[0].ID)
	})
}

func TestPostService_Delete(t *testing.T) {
	svc, st := newTestService(t)
	seedPosts(t, st)
	ctx := context.Background()

	t.Run("removes record and logs", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, "p1", "admin-1"))

		_, err := st.Get(ctx, "posts", "p1")
		assert.ErrorIs(t, err, store.ErrNotFound)

		logs, err := st.Read(ctx, "logs")
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, "Post Deleted", logs[0].String("action"))
		assert.Equal(t, "admin-1", logs[0].String("admin_id"))
	})

	t.Run("missing post", func(t *testing.T) {
		err := svc.Delete(ctx, "p1", "admin-1")
		assert.ErrorIs(t, err, errors.ErrPostNotFound)
	})
}
