package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/admin-api/internal/store"
)

func TestRecorder_Record(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	defer st.Close()

	r := NewRecorder(st)
	r.Record(ctx, "Feedback Approved", "admin-1", "u1's feedback was approved.")

	snapshot, err := st.Read(ctx, LogsPath)
	require.NoError(t, err)
	require.Len(t, snapshot, 1)

	entry := snapshot[0]
	assert.Equal(t, "Feedback Approved", entry.String("action"))
	assert.Equal(t, "admin-1", entry.String("admin_id"))
	assert.Equal(t, "u1's feedback was approved.", entry.String("details"))
	assert.NotEmpty(t, entry.String("created_at"))
}

func TestRecorder_SwallowsStoreFailure(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	defer st.Close()

	st.FailNext = true
	r := NewRecorder(st)

	// Must not panic or propagate the failure.
	r.Record(ctx, "Feedback Deleted", "admin-1", "gone")

	snapshot, err := st.Read(ctx, LogsPath)
	require.NoError(t, err)
	assert.Empty(t, snapshot)
}
