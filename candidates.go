package lenskit

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/longlongdada/lenskit/ratings"
	"github.com/longlongdada/lenskit/store"
)

// candidateLocator discovers the users eligible for similarity
// comparison: everyone who rated at least one query item, except the
// target.
type candidateLocator struct {
	store store.Store
}

// find returns the union of distinct raters across the query items. The
// scan is bounded by the rating lists of the query items, never the
// whole store.
func (l *candidateLocator) find(ctx context.Context, exclude ratings.UserID, queryItems []ratings.ItemID) (*roaring64.Bitmap, error) {
	users := roaring64.New()
	for _, item := range queryItems {
		if err := l.scanItem(ctx, exclude, item, users); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// scanItem adds item's raters to users. The item cursor is released on
// every path out.
func (l *candidateLocator) scanItem(ctx context.Context, exclude ratings.UserID, item ratings.ItemID, users *roaring64.Bitmap) error {
	cur, err := l.store.ItemRatings(ctx, item)
	if err != nil {
		return fmt.Errorf("open item %d ratings: %w", item, err)
	}
	defer func() { _ = cur.Close() }()

	for cur.Next() {
		if r := cur.Rating(); r.User != exclude {
			users.Add(uint64(r.User))
		}
	}
	if err := cur.Err(); err != nil {
		return fmt.Errorf("scan item %d ratings: %w", item, err)
	}
	return nil
}
