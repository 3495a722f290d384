// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package binder keeps one materialized snapshot per collection path, replaced
// wholesale whenever the store reports a change. View handlers read the
// current snapshot without touching the database.
package binder

import (
	"context"
	"sync"

	"github.com/skillswap/admin-api/internal/store"
)

// Binder holds the live snapshot of a single collection path.
type Binder struct {
	path   string
	mu     sync.RWMutex
	snap   store.Snapshot
	cancel func()
	done   chan struct{}
}

// New subscribes to path and starts applying replacement snapshots.
// The initial snapshot is in place before New returns.
func New(ctx context.Context, st store.Store, path string) *Binder {
	ch, cancel := st.Subscribe(ctx, path)

	b := &Binder{
		path:   path,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	// The subscription delivers the current snapshot immediately.
	if snapshot, ok := <-ch; ok {
		b.snap = snapshot
	}

	go b.run(ch)

	return b
}

// run swaps in replacement snapshots until the subscription closes.
// Readers never observe a partial replace.
func (b *Binder) run(ch <-chan store.Snapshot) {
	defer close(b.done)
	for snapshot := range ch {
		b.mu.Lock()
		b.snap = snapshot
		b.mu.Unlock()
	}
}

// Path returns the collection path this binder tracks.
func (b *Binder) Path() string {
	return b.path
}

// Snapshot returns the current materialized snapshot.
func (b *Binder) Snapshot() store.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snap
}

// Close releases the subscription and waits for the apply loop to stop.
func (b *Binder) Close() {
	b.cancel()
	<-b.done
}

// Set is a fixed group of binders keyed by path, torn down together.
type Set struct {
	mu      sync.Mutex
	binders map[string]*Binder
}

// NewSet creates binders for every given path.
func NewSet(ctx context.Context, st store.Store, paths ...string) *Set {
	set := &Set{binders: make(map[string]*Binder, len(paths))}
	for _, path := range paths {
		set.binders[path] = New(ctx, st, path)
	}
	return set
}

// Get returns the binder for path, or nil when the set does not track it.
func (s *Set) Get(path string) *Binder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.binders[path]
}

// Close tears down every binder in the set.
func (s *Set) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for path, b := range s.binders {
		b.Close()
		delete(s.binders, path)
	}
}
