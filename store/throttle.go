package store

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/longlongdada/lenskit/ratings"
)

// Compile time check to ensure ThrottledStore satisfies the Store interface.
var _ Store = (*ThrottledStore)(nil)

// ThrottledStore wraps a Store and paces cursor opens with a shared rate
// limiter. Batch jobs fan many searches out against one backing store;
// the limiter keeps their aggregate open rate inside what that store can
// absorb. The wait honors context cancellation.
type ThrottledStore struct {
	inner   Store
	limiter *rate.Limiter
}

// Throttled wraps inner so every cursor open first waits on limiter.
func Throttled(inner Store, limiter *rate.Limiter) *ThrottledStore {
	return &ThrottledStore{inner: inner, limiter: limiter}
}

// ItemRatings implements Store.
func (s *ThrottledStore) ItemRatings(ctx context.Context, item ratings.ItemID) (Cursor, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.ItemRatings(ctx, item)
}

// UserRatings implements Store.
func (s *ThrottledStore) UserRatings(ctx context.Context, user ratings.UserID) (Cursor, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.UserRatings(ctx, user)
}
