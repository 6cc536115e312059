// Package store defines read access to rating data and provides an
// in-memory reference implementation.
//
// Stores hand out cursors, not slices: rating lists can be large and may
// live behind real storage engines. Cursors follow the database/sql
// discipline: callers defer Close immediately after a successful open
// and check Err after the iteration loop.
package store

import (
	"context"

	"github.com/longlongdada/lenskit/ratings"
)

// Store provides read access to a rating collection.
type Store interface {
	// ItemRatings returns a cursor over all ratings of item. Unknown
	// items yield an empty cursor, not an error.
	ItemRatings(ctx context.Context, item ratings.ItemID) (Cursor, error)

	// UserRatings returns a cursor over all ratings by user. Unknown
	// users yield an empty cursor, not an error.
	UserRatings(ctx context.Context, user ratings.UserID) (Cursor, error)
}

// Cursor streams ratings. Close must be called on every cursor, on every
// path out of the consuming code.
type Cursor interface {
	// Next advances to the next rating, returning false when the stream
	// is exhausted or failed. Use Err to tell the two apart.
	Next() bool

	// Rating returns the current rating. Only valid after a true Next.
	Rating() ratings.Rating

	// Err returns the error that stopped iteration, if any.
	Err() error

	// Close releases the cursor's resources. Safe to call more than
	// once.
	Close() error
}

// sliceCursor iterates an in-memory batch of ratings.
type sliceCursor struct {
	rs     []ratings.Rating
	pos    int
	closed bool
}

func newSliceCursor(rs []ratings.Rating) *sliceCursor {
	return &sliceCursor{rs: rs, pos: -1}
}

func (c *sliceCursor) Next() bool {
	if c.closed || c.pos+1 >= len(c.rs) {
		return false
	}
	c.pos++
	return true
}

func (c *sliceCursor) Rating() ratings.Rating {
	return c.rs[c.pos]
}

func (c *sliceCursor) Err() error { return nil }

func (c *sliceCursor) Close() error {
	c.closed = true
	return nil
}
