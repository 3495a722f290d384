// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/admin-api/internal/binder"
	"github.com/skillswap/admin-api/internal/listview"
	"github.com/skillswap/admin-api/internal/store"
	"github.com/skillswap/admin-api/users/errors"
)

// Fixed clock so the three-day window is deterministic.
var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*userService, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	t.Cleanup(func() { st.Close() })

	resolver := binder.NewNameResolver(st, nil)
	svc := NewUserService(st, nil, resolver).(*userService)
	svc.now = func() time.Time { return testNow }
	return svc, st
}

func seedUsers(t *testing.T, st *store.MemoryStore) {
	t.Helper()
	ctx := context.Background()

	write := func(key, name, email, status, createdAt string) {
		require.NoError(t, st.Write(ctx, "users", key, map[string]interface{}{
			"name":       name,
			"email":      email,
			"status":     status,
			"created_at": createdAt,
		}))
	}

	write("u1", "Charlie", "charlie@example.com", "inactive", "2026-01-01T00:00:00Z")
	write("u2", "alice", "alice@example.com", "active", "2026-03-09T08:00:00Z")
	// Exactly on the three-day boundary.
	write("u3", "Bob", "bob@example.com", "active", "2026-03-07T12:00:00Z")
	// One second outside the window.
	write("u4", "Dana", "dana@example.com", "active", "2026-03-07T11:59:59Z")
}

func TestUserService_List(t *testing.T) {
	svc, st := newTestService(t)
	seedUsers(t, st)
	ctx := context.Background()

	t.Run("three day window is boundary inclusive", func(t *testing.T) {
		page, err := svc.List(ctx, listview.Params{Filter: "new", Page: 1})
		require.NoError(t, err)

		ids := make([]string, 0, len(page.Items))
		for _, u := range page.Items {
			ids = append(ids, u.ID)
		}
		assert.ElementsMatch(t, []string{"u2", "u3"}, ids)
	})

	t.Run("old filter is the complement", func(t *testing.T) {
		page, err := svc.List(ctx, listview.Params{Filter: "old", Page: 1})
		require.NoError(t, err)

		ids := make([]string, 0, len(page.Items))
		for _, u := range page.Items {
			ids = append(ids, u.ID)
		}
		assert.ElementsMatch(t, []string{"u1", "u4"}, ids)
	})

	t.Run("status filter matches the stored account status", func(t *testing.T) {
		page, err := svc.List(ctx, listview.Params{Filter: "inactive", Page: 1})
		require.NoError(t, err)

		require.Len(t, page.Items, 1)
		assert.Equal(t, "u1", page.Items[0].ID)
		assert.Equal(t, "inactive", page.Items[0].Status)
	})

	t.Run("newest user and capped new cards", func(t *testing.T) {
		page, err := svc.List(ctx, listview.Params{Page: 1})
		require.NoError(t, err)

		require.NotNil(t, page.NewestUser)
		assert.Equal(t, "u2", page.NewestUser.ID)
		require.Len(t, page.NewUsers, 2)
		assert.Equal(t, "u2", page.NewUsers[0].ID)
		assert.Equal(t, "u3", page.NewUsers[1].ID)
	})

	t.Run("highlight cards follow the visible set", func(t *testing.T) {
		// A search that excludes alice must drop her from the cards too.
		page, err := svc.List(ctx, listview.Params{Search: "bob@", Page: 1})
		require.NoError(t, err)

		require.NotNil(t, page.NewestUser)
		assert.Equal(t, "u3", page.NewestUser.ID)
		require.Len(t, page.NewUsers, 1)
		assert.Equal(t, "u3", page.NewUsers[0].ID)
	})

	t.Run("name sorts reverse each other", func(t *testing.T) {
		asc, err := svc.List(ctx, listview.Params{Sort: "name-asc", Page: 1})
		require.NoError(t, err)
		desc, err := svc.List(ctx, listview.Params{Sort: "name-desc", Page: 1})
		require.NoError(t, err)

		require.Len(t, asc.Items, 4)
		assert.Equal(t, "alice", asc.Items[0].Name)
		assert.Equal(t, "Dana", asc.Items[3].Name)

		for i := range asc.Items {
			assert.Equal(t, asc.Items[i].ID, desc.Items[len(desc.Items)-1-i].ID)
		}
	})

	t.Run("search covers name and email", func(t *testing.T) {
		page, err := svc.List(ctx, listview.Params{Search: "bob@", Page: 1})
		require.NoError(t, err)

		require.Len(t, page.Items, 1)
		assert.Equal(t, "u3", page.Items[0].ID)
	})
}

func TestUserService_ListPagination(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 23; i++ {
		require.NoError(t, st.Write(ctx, "users", string(rune('a'+i)), map[string]interface{}{
			"name":       "User",
			"email":      "user@example.com",
			"created_at": "2026-01-01T00:00:00Z",
		}))
	}

	page, err := svc.List(ctx, listview.Params{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 23, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 10)

	last, err := svc.List(ctx, listview.Params{Page: 3})
	require.NoError(t, err)
	assert.Len(t, last.Items, 3)

	beyond, err := svc.List(ctx, listview.Params{Page: 4})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 3, beyond.TotalPages)
}

func TestUserService_Update(t *testing.T) {
	svc, st := newTestService(t)
	seedUsers(t, st)
	ctx := context.Background()

	t.Run("merge updates name and email", func(t *testing.T) {
		require.NoError(t, svc.Update(ctx, "u1", "Charles", "charles@example.com"))

		doc, err := st.Get(ctx, "users", "u1")
		require.NoError(t, err)
		assert.Equal(t, "Charles", doc.String("name"))
		assert.Equal(t, "charles@example.com", doc.String("email"))
		// Untouched fields survive the merge.
		assert.Equal(t, "2026-01-01T00:00:00Z", doc.String("created_at"))
	})

	t.Run("both fields required", func(t *testing.T) {
		err := svc.Update(ctx, "u1", "", "charles@example.com")
		assert.ErrorIs(t, err, errors.ErrValidationFailed)

		err = svc.Update(ctx, "u1", "Charles", "  ")
		assert.ErrorIs(t, err, errors.ErrValidationFailed)
	})

	t.Run("missing user", func(t *testing.T) {
		err := svc.Update(ctx, "nope", "Name", "mail@example.com")
		assert.ErrorIs(t, err, errors.ErrUserNotFound)
	})
}

func TestUserService_Delete(t *testing.T) {
	svc, st := newTestService(t)
	seedUsers(t, st)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "u4"))
	_, err := st.Get(ctx, "users", "u4")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = svc.Delete(ctx, "u4")
	assert.ErrorIs(t, err, errors.ErrUserNotFound)
}
