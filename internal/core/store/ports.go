package store

import (
	"context"
	"errors"
)

// ErrDocumentNotFound is returned when a referenced document does not exist.
var ErrDocumentNotFound = errors.New("document not found")

// Document is a single record in a collection, with its raw JSON payload.
type Document struct {
	// ID is the document identifier within its collection.
	ID string
	// Data is the JSON-encoded document body.
	Data []byte
}

// FieldUpdate is a field-level patch against one document.
// Field keys may use dotted paths (e.g. "shipments.disp-1.status") to
// address nested objects, mirroring document-database field paths.
type FieldUpdate struct {
	// Collection is the collection holding the document.
	Collection string
	// ID is the document identifier.
	ID string
	// Fields maps field paths to their new values.
	Fields map[string]interface{}
}

// Store defines the document persistence operations the engine depends on.
// This is a port that can be implemented by different document stores.
type Store interface {
	// FetchAll returns every document in a collection, ordered by the
	// document's createdAt field descending.
	FetchAll(ctx context.Context, collection string) ([]Document, error)

	// Update applies a field-level patch to a single document.
	// Returns ErrDocumentNotFound if the document does not exist.
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error

	// BatchUpdate applies a set of field-level patches atomically.
	// Either every update is applied or none are; a missing document
	// fails the whole batch with ErrDocumentNotFound before any write.
	BatchUpdate(ctx context.Context, updates []FieldUpdate) error

	// Insert writes a full document, replacing any existing one.
	Insert(ctx context.Context, collection, id string, doc interface{}) error

	// Ping checks if the store is reachable.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
