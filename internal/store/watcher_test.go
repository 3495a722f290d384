package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubReader serves whatever snapshot the test assigns per path, standing in
// for the database when notifications originate outside this process.
type stubReader struct {
	snapshots map[string]Snapshot
}

func (r *stubReader) Read(ctx context.Context, path string) (Snapshot, error) {
	return r.snapshots[path], nil
}

func TestWatcher_NotifyRefreshesFromReader(t *testing.T) {
	ctx := context.Background()
	reader := &stubReader{snapshots: map[string]Snapshot{
		"feedback": {{Key: "f1", Data: map[string]interface{}{"status": "pending"}}},
	}}
	w := newWatcher(reader)

	ch, cancel := w.subscribe("feedback")
	defer cancel()

	// A second writer inserts a row; the only signal this process gets is
	// the change notification carrying the path.
	reader.snapshots["feedback"] = Snapshot{
		{Key: "f1", Data: map[string]interface{}{"status": "pending"}},
		{Key: "f2", Data: map[string]interface{}{"status": "pending"}},
	}
	w.notify(ctx, "feedback")

	snapshot := <-ch
	require.Len(t, snapshot, 2)
	assert.Equal(t, "f2", snapshot[1].Key)

	// A deletion by the external writer disappears on the next notification.
	reader.snapshots["feedback"] = Snapshot{}
	w.notify(ctx, "feedback")

	assert.Empty(t, <-ch)
}

func TestWatcher_ActivePaths(t *testing.T) {
	w := newWatcher(&stubReader{snapshots: map[string]Snapshot{}})

	_, cancelUsers := w.subscribe("users")
	_, cancelPosts := w.subscribe("posts")
	assert.ElementsMatch(t, []string{"users", "posts"}, w.activePaths())

	cancelPosts()
	assert.ElementsMatch(t, []string{"users"}, w.activePaths())

	cancelUsers()
	assert.Empty(t, w.activePaths())
}

func TestWatcher_NotifyAfterCancel(t *testing.T) {
	ctx := context.Background()
	reader := &stubReader{snapshots: map[string]Snapshot{
		"users": {{Key: "u1", Data: map[string]interface{}{"name": "Ada"}}},
	}}
	w := newWatcher(reader)

	ch, cancel := w.subscribe("users")
	cancel()

	// The subscription is gone; the notification must neither panic nor
	// resurrect the closed channel.
	w.notify(ctx, "users")

	_, ok := <-ch
	assert.False(t, ok)
}
