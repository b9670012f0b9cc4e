// Package docstore is a small key-document store: JSON documents grouped
// into named collections, queryable by field value. Collection names may be
// hierarchical paths (e.g. "users/jane_at_x.com/notifications"), which is
// how per-user subcollections are addressed.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document id does not exist in a collection.
var ErrNotFound = errors.New("document not found")

// Document is a stored JSON document. Data values are JSON-compatible
// (string, float64, bool, nested maps/slices); timestamps are stored as
// RFC 3339 strings so that lexicographic ordering matches time ordering.
type Document struct {
	ID   string
	Data map[string]any
}

// Write describes one document creation inside a batch.
type Write struct {
	Collection string
	Data       map[string]any
}

// Store is the persistence surface consumed by the notification layer.
type Store interface {
	// Query returns all documents in collection whose field equals any of
	// values. Order is unspecified.
	Query(ctx context.Context, collection, field string, values []string) ([]Document, error)

	// List returns up to limit documents from collection ordered by the
	// given field, descending. A limit of 0 means no limit.
	List(ctx context.Context, collection, orderField string, limit int) ([]Document, error)

	// BatchPut creates every write atomically and returns the generated
	// document ids, in input order. Either all writes land or none do.
	BatchPut(ctx context.Context, writes []Write) ([]string, error)

	// Update merges fields into an existing document. Returns ErrNotFound
	// if the document does not exist.
	Update(ctx context.Context, collection, id string, fields map[string]any) error

	// DeleteAll removes every document in collection.
	DeleteAll(ctx context.Context, collection string) error
}
