package record

import (
	"context"
)

// Store is the durable storage contract the collection managers run against.
// Operations are never retried and carry no timeout of their own; callers
// pass a context through.
type Store interface {
	// Open initializes the backing stores. It is idempotent and safe to
	// call concurrently; every caller observes the same outcome. An
	// ErrStoreUnavailable result is non-fatal for implementations that
	// can degrade to a fallback.
	Open(ctx context.Context) error

	// Append inserts a new record into the named collection and assigns
	// its ID. The record's ID field is set on success.
	Append(ctx context.Context, col Collection, rec *Record) (int64, error)

	// ListAll returns every record in the collection, unordered.
	// Display order is the caller's concern.
	ListAll(ctx context.Context, col Collection) ([]Record, error)

	// Clear removes all records from the collection.
	Clear(ctx context.Context, col Collection) error

	Close() error
}
