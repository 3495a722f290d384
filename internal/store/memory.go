package store

import (
	"context"
	"sync"

	uuid "github.com/gofrs/uuid"
)

// MemoryStore is an in-memory Store used by tests and local development.
// It shares the watcher fan-out semantics with PostgresStore.
type MemoryStore struct {
	mu      sync.RWMutex
	paths   map[string][]memoryDoc
	watcher *watcher

	// FailNext forces the next mutating call to fail with ErrUnavailable,
	// letting tests exercise store-failure handling.
	FailNext bool

	// FailAfter, when positive, counts down on each mutating call and
	// fails the call that reaches zero. FailAfter=2 lets the first
	// mutation through and fails the second.
	FailAfter int
}

type memoryDoc struct {
	key  string
	data map[string]interface{}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{paths: make(map[string][]memoryDoc)}
	s.watcher = newWatcher(s)
	return s
}

func (s *MemoryStore) failNext() bool {
	if s.FailNext {
		s.FailNext = false
		return true
	}
	if s.FailAfter > 0 {
		s.FailAfter--
		if s.FailAfter == 0 {
			return true
		}
	}
	return false
}

func cloneData(data map[string]interface{}) map[string]interface{} {
	cloned := make(map[string]interface{}, len(data))
	for k, v := range data {
		cloned[k] = v
	}
	return cloned
}

// Read returns the full ordered contents of a path.
func (s *MemoryStore) Read(ctx context.Context, path string) (Snapshot, error) {
	if path == "" {
		return nil, ErrInvalidPath
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.paths[path]
	snapshot := make(Snapshot, 0, len(docs))
	for _, doc := range docs {
		snapshot = append(snapshot, Document{Key: doc.key, Data: cloneData(doc.data)})
	}
	return snapshot, nil
}

// Get returns a single document.
func (s *MemoryStore) Get(ctx context.Context, path, key string) (Document, error) {
	if path == "" {
		return Document{}, ErrInvalidPath
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.paths[path] {
		if doc.key == key {
			return Document{Key: doc.key, Data: cloneData(doc.data)}, nil
		}
	}
	return Document{}, ErrNotFound
}

// Write sets the full value of a document, creating it if needed.
func (s *MemoryStore) Write(ctx context.Context, path, key string, data map[string]interface{}) error {
	if path == "" {
		return ErrInvalidPath
	}

	s.mu.Lock()
	if s.failNext() {
		s.mu.Unlock()
		return ErrUnavailable
	}
	replaced := false
	docs := s.paths[path]
	for i, doc := range docs {
		if doc.key == key {
			docs[i].data = cloneData(data)
			replaced = true
			break
		}
	}
	if !replaced {
		s.paths[path] = append(docs, memoryDoc{key: key, data: cloneData(data)})
	}
	s.mu.Unlock()

	s.watcher.notify(ctx, path)
	return nil
}

// Update merge-updates the named fields of an existing document.
func (s *MemoryStore) Update(ctx context.Context, path, key string, partial map[string]interface{}) error {
	if path == "" {
		return ErrInvalidPath
	}

	s.mu.Lock()
	if s.failNext() {
		s.mu.Unlock()
		return ErrUnavailable
	}
	found := false
	for _, doc := range s.paths[path] {
		if doc.key == key {
			for k, v := range partial {
				doc.data[k] = v
			}
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return ErrNotFound
	}

	s.watcher.notify(ctx, path)
	return nil
}

// Push appends a new document with a generated key and returns the key.
func (s *MemoryStore) Push(ctx context.Context, path string, data map[string]interface{}) (string, error) {
	if path == "" {
		return "", ErrInvalidPath
	}

	key := uuid.Must(uuid.NewV4()).String()

	s.mu.Lock()
	if s.failNext() {
		s.mu.Unlock()
		return "", ErrUnavailable
	}
	s.paths[path] = append(s.paths[path], memoryDoc{key: key, data: cloneData(data)})
	s.mu.Unlock()

	s.watcher.notify(ctx, path)
	return key, nil
}

// Delete removes a document. Deleting an absent document is not an error.
func (s *MemoryStore) Delete(ctx context.Context, path, key string) error {
	if path == "" {
		return ErrInvalidPath
	}

	s.mu.Lock()
	if s.failNext() {
		s.mu.Unlock()
		return ErrUnavailable
	}
	docs := s.paths[path]
	for i, doc := range docs {
		if doc.key == key {
			s.paths[path] = append(docs[:i:i], docs[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.watcher.notify(ctx, path)
	return nil
}

// Query returns documents whose named child field equals value exactly.
func (s *MemoryStore) Query(ctx context.Context, path, field, value string) (Snapshot, error) {
	if path == "" {
		return nil, ErrInvalidPath
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := Snapshot{}
	for _, doc := range s.paths[path] {
		if v, ok := doc.data[field].(string); ok && v == value {
			snapshot = append(snapshot, Document{Key: doc.key, Data: cloneData(doc.data)})
		}
	}
	return snapshot, nil
}

// Subscribe delivers the current snapshot immediately, then a replacement
// snapshot after every mutation of the path.
func (s *MemoryStore) Subscribe(ctx context.Context, path string) (<-chan Snapshot, func()) {
	ch, cancel := s.watcher.subscribe(path)

	snapshot, _ := s.Read(ctx, path)
	deliver(ch, snapshot)

	return ch, cancel
}

// Close releases all subscriptions.
func (s *MemoryStore) Close() error {
	s.watcher.closeAll()
	return nil
}
