// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package store provides a path-addressed document store. Collections live
// under string paths ("users", "feedback", "logs"), documents are schemaless
// JSON objects keyed by a generated or caller-provided key, and every path
// can be subscribed to for full-snapshot change notifications.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Common store errors.
var (
	// ErrNotFound is returned when a document does not exist at the given path/key.
	ErrNotFound = errors.New("document not found")

	// ErrUnavailable is returned when the backing database cannot be reached.
	ErrUnavailable = errors.New("store unavailable")

	// ErrInvalidPath is returned for empty or malformed paths.
	ErrInvalidPath = errors.New("invalid path")
)

// Document is a single record under a path.
type Document struct {
	Key  string                 `json:"key"`
	Data map[string]interface{} `json:"data"`
}

// Decode unmarshals the document data into target via JSON round-trip.
func (d Document) Decode(target interface{}) error {
	raw, err := json.Marshal(d.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal document data: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", d.Key, err)
	}
	return nil
}

// String returns a string field of the document, or "" when absent.
func (d Document) String(field string) string {
	if v, ok := d.Data[field].(string); ok {
		return v
	}
	return ""
}

// Snapshot is the full ordered contents of a path at a point in time.
// Order is insertion order.
type Snapshot []Document

// Keys returns the document keys in snapshot order.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s))
	for _, doc := range s {
		keys = append(keys, doc.Key)
	}
	return keys
}

// Store is the path-addressed document store contract.
type Store interface {
	// Read returns the full ordered contents of a path.
	Read(ctx context.Context, path string) (Snapshot, error)

	// Get returns a single document. Returns ErrNotFound when absent.
	Get(ctx context.Context, path, key string) (Document, error)

	// Write sets the full value of a document, creating it if needed.
	Write(ctx context.Context, path, key string, data map[string]interface{}) error

	// Update merge-updates the named fields of an existing document.
	// Returns ErrNotFound when the document does not exist.
	Update(ctx context.Context, path, key string, partial map[string]interface{}) error

	// Push appends a new document with a generated key and returns the key.
	Push(ctx context.Context, path string, data map[string]interface{}) (string, error)

	// Delete removes a document. Deleting an absent document is not an error.
	Delete(ctx context.Context, path, key string) error

	// Query returns documents whose named child field equals value exactly.
	// This is the store's single supported query form.
	Query(ctx context.Context, path, field, value string) (Snapshot, error)

	// Subscribe delivers the current snapshot immediately, then a full
	// replacement snapshot after every mutation of the path. The returned
	// func releases the subscription.
	Subscribe(ctx context.Context, path string) (<-chan Snapshot, func())

	// Close releases the store's resources.
	Close() error
}
