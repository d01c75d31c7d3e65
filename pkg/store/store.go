package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("document not found")

// Filter describes an equality condition on a document field.
// Multiple filters are ANDed.
type Filter struct {
	Field string
	Value any
}

// Document is a stored record annotated with its generated id.
type Document struct {
	ID   string
	Data map[string]any
}

// Store is the gateway to the schemaless document store. It performs no
// sorting, paging or projection; callers own ordering and aggregation.
// Operations are one-shot: no retries, no timeouts beyond ctx.
type Store interface {
	// Create stores data in the named collection and returns the generated id.
	Create(ctx context.Context, collection string, data map[string]any) (string, error)
	// Query returns all documents matching the ANDed equality filters.
	// Result order is unspecified.
	Query(ctx context.Context, collection string, filters []Filter) ([]Document, error)
	// Update merges partial into the document's fields, leaving others untouched.
	Update(ctx context.Context, collection, id string, partial map[string]any) error
	// Delete removes the document. Deleting a missing id is a no-op.
	Delete(ctx context.Context, collection, id string) error
	// Get loads a single document by id (used for the per-uid profile doc).
	Get(ctx context.Context, collection, id string) (Document, error)
	// Put creates or replaces a document under a caller-chosen id.
	Put(ctx context.Context, collection, id string, data map[string]any) error
}

func ByField(field string, value any) Filter {
	return Filter{Field: field, Value: value}
}

func ByOwner(uid string) Filter {
	return Filter{Field: "ownerId", Value: uid}
}
