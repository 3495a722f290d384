package store

import (
	"context"
	"sync"

	"github.com/skillswap/admin-api/internal/pkg/log"
)

// snapshotReader is the read side a watcher needs to materialize snapshots.
type snapshotReader interface {
	Read(ctx context.Context, path string) (Snapshot, error)
}

// watcher fans out full replacement snapshots to path subscribers.
// Subscriber channels have capacity 1 and latest-wins semantics: a slow
// consumer sees the most recent snapshot, never a backlog of stale ones.
type watcher struct {
	mu     sync.Mutex
	subs   map[string]map[int]chan Snapshot
	nextID int
	reader snapshotReader
}

func newWatcher(reader snapshotReader) *watcher {
	return &watcher{
		subs:   make(map[string]map[int]chan Snapshot),
		reader: reader,
	}
}

// subscribe registers a listener for path and returns its channel and a
// release func. The caller is responsible for delivering the initial snapshot.
func (w *watcher) subscribe(path string) (chan Snapshot, func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.subs[path] == nil {
		w.subs[path] = make(map[int]chan Snapshot)
	}

	id := w.nextID
	w.nextID++

	ch := make(chan Snapshot, 1)
	w.subs[path][id] = ch

	cancel := func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if listeners, ok := w.subs[path]; ok {
			if _, ok := listeners[id]; ok {
				delete(listeners, id)
				close(ch)
			}
			if len(listeners) == 0 {
				delete(w.subs, path)
			}
		}
	}

	return ch, cancel
}

// notify re-reads the path and delivers the fresh snapshot to all listeners.
// Called after every change notification; a read failure drops the
// notification and leaves subscribers on their previous snapshot.
func (w *watcher) notify(ctx context.Context, path string) {
	w.mu.Lock()
	active := len(w.subs[path]) > 0
	w.mu.Unlock()
	if !active {
		return
	}

	snapshot, err := w.reader.Read(ctx, path)
	if err != nil {
		log.Error("watcher: failed to read %s for notification: %v", path, err)
		return
	}

	// Delivery happens under the subscription lock, so a concurrent cancel
	// either removes the channel before we see it or waits until the send
	// completes. Sends are non-blocking latest-wins, never held open.
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ch := range w.subs[path] {
		deliver(ch, snapshot)
	}
}

// activePaths returns every path with at least one live subscription.
func (w *watcher) activePaths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	paths := make([]string, 0, len(w.subs))
	for path := range w.subs {
		paths = append(paths, path)
	}
	return paths
}

// deliver replaces any undelivered snapshot with the latest one. The caller
// must hold the watcher lock or otherwise own the channel exclusively.
func deliver(ch chan Snapshot, snapshot Snapshot) {
	for {
		select {
		case ch <- snapshot:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

// closeAll releases every subscription, used on store shutdown.
func (w *watcher) closeAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, listeners := range w.subs {
		for id, ch := range listeners {
			delete(listeners, id)
			close(ch)
		}
		delete(w.subs, path)
	}
}
