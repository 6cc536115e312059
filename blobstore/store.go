package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob or catalog entry does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store reads and writes named blobs.
type Store interface {
	// Open opens a blob for sequential reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Create creates or replaces a blob. The data becomes visible on
	// Close; a blob is never observable half written.
	Create(ctx context.Context, name string) (io.WriteCloser, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all blobs with the prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Catalog tracks which published blob is current.
type Catalog interface {
	// Publish atomically points the catalog at name.
	Publish(ctx context.Context, name string) error

	// Current returns the published name, or ErrNotFound if nothing has
	// been published yet.
	Current(ctx context.Context) (string, error)
}
