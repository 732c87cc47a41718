// Package docstore defines the document key-value store contract backing
// thread persistence. Documents are opaque blobs; serialization is the
// caller's concern.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no document exists for the id.
var ErrNotFound = errors.New("document not found")

// Document is one stored blob.
type Document struct {
	ID   string
	Blob string
}

// Store is a black-box document store.
type Store interface {
	// Get returns the document for the id, or ErrNotFound.
	Get(ctx context.Context, id string) (string, error)

	// GetAll returns every stored document, in store-defined order.
	GetAll(ctx context.Context) ([]Document, error)

	// Add stores the blob under the id, replacing any existing document.
	Add(ctx context.Context, id, blob string) error

	// Delete removes the documents for the ids. Missing ids are ignored.
	Delete(ctx context.Context, ids []string) error

	// Close releases the store's resources.
	Close() error
}
