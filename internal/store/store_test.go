package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	t.Run("Push and Read preserve insertion order", func(t *testing.T) {
		k1, err := s.Push(ctx, "feedback", map[string]interface{}{"message": "first"})
		require.NoError(t, err)
		k2, err := s.Push(ctx, "feedback", map[string]interface{}{"message": "second"})
		require.NoError(t, err)

		snapshot, err := s.Read(ctx, "feedback")
		require.NoError(t, err)
		require.Len(t, snapshot, 2)
		assert.Equal(t, k1, snapshot[0].Key)
		assert.Equal(t, k2, snapshot[1].Key)
		assert.Equal(t, "first", snapshot[0].String("message"))
	})

	t.Run("Get returns ErrNotFound for missing documents", func(t *testing.T) {
		_, err := s.Get(ctx, "feedback", "missing-key")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Update merges fields and keeps the rest", func(t *testing.T) {
		key, err := s.Push(ctx, "reports", map[string]interface{}{
			"reason": "spam",
			"status": "pending",
		})
		require.NoError(t, err)

		err = s.Update(ctx, "reports", key, map[string]interface{}{"status": "resolved"})
		require.NoError(t, err)

		doc, err := s.Get(ctx, "reports", key)
		require.NoError(t, err)
		assert.Equal(t, "resolved", doc.String("status"))
		assert.Equal(t, "spam", doc.String("reason"))
	})

	t.Run("Update of a missing document returns ErrNotFound", func(t *testing.T) {
		err := s.Update(ctx, "reports", "nope", map[string]interface{}{"status": "resolved"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete removes the document and tolerates absence", func(t *testing.T) {
		key, err := s.Push(ctx, "posts", map[string]interface{}{"title": "hello"})
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, "posts", key))
		_, err = s.Get(ctx, "posts", key)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.NoError(t, s.Delete(ctx, "posts", key))
	})

	t.Run("Query matches a child field exactly", func(t *testing.T) {
		_, err := s.Push(ctx, "admins", map[string]interface{}{"email": "a@skillswap.io"})
		require.NoError(t, err)
		_, err = s.Push(ctx, "admins", map[string]interface{}{"email": "b@skillswap.io"})
		require.NoError(t, err)

		matches, err := s.Query(ctx, "admins", "email", "a@skillswap.io")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "a@skillswap.io", matches[0].String("email"))
	})

	t.Run("Empty path is rejected", func(t *testing.T) {
		_, err := s.Read(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidPath)
	})
}

func TestMemoryStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	_, err := s.Push(ctx, "skills", map[string]interface{}{"name": "Go"})
	require.NoError(t, err)

	ch, cancel := s.Subscribe(ctx, "skills")
	defer cancel()

	initial := <-ch
	require.Len(t, initial, 1)
	assert.Equal(t, "Go", initial[0].String("name"))

	_, err = s.Push(ctx, "skills", map[string]interface{}{"name": "Rust"})
	require.NoError(t, err)

	next := <-ch
	require.Len(t, next, 2)
	assert.Equal(t, "Rust", next[1].String("name"))
}

func TestMemoryStore_SubscribeLatestWins(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	ch, cancel := s.Subscribe(ctx, "skills")
	defer cancel()

	// Consume the initial empty snapshot.
	<-ch

	// Mutate twice without consuming; the subscriber must see only the
	// latest snapshot, not a backlog.
	_, err := s.Push(ctx, "skills", map[string]interface{}{"name": "Go"})
	require.NoError(t, err)
	_, err = s.Push(ctx, "skills", map[string]interface{}{"name": "Rust"})
	require.NoError(t, err)

	latest := <-ch
	assert.Len(t, latest, 2)

	select {
	case stale, ok := <-ch:
		if ok {
			t.Fatalf("unexpected extra snapshot with %d documents", len(stale))
		}
	default:
	}
}

func TestMemoryStore_SubscribeCancel(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	ch, cancel := s.Subscribe(ctx, "users")
	<-ch

	cancel()

	_, ok := <-ch
	assert.False(t, ok, "channel must be closed after cancel")

	// Mutations after cancel must not panic or block.
	_, err := s.Push(ctx, "users", map[string]interface{}{"name": "Ada"})
	assert.NoError(t, err)
}

func TestMemoryStore_FailNext(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	s.FailNext = true
	_, err := s.Push(ctx, "feedback", map[string]interface{}{"message": "x"})
	assert.ErrorIs(t, err, ErrUnavailable)

	// The failure is one-shot and leaves no partial state behind.
	snapshot, err := s.Read(ctx, "feedback")
	require.NoError(t, err)
	assert.Empty(t, snapshot)

	_, err = s.Push(ctx, "feedback", map[string]interface{}{"message": "y"})
	assert.NoError(t, err)
}

func TestDocument_Decode(t *testing.T) {
	doc := Document{
		Key: "k1",
		Data: map[string]interface{}{
			"name":  "Ada",
			"email": "ada@skillswap.io",
			"count": float64(3),
		},
	}

	var target struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Count int    `json:"count"`
	}
	require.NoError(t, doc.Decode(&target))
	assert.Equal(t, "Ada", target.Name)
	assert.Equal(t, "ada@skillswap.io", target.Email)
	assert.Equal(t, 3, target.Count)
}
