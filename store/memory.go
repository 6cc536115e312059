package store

import (
	"context"
	"sync"

	"github.com/longlongdada/lenskit/ratings"
)

// Compile time check to ensure MemoryStore satisfies the Store interface.
var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory rating store with per-item and per-user
// posting lists. Writes append rating events; a later rating of the same
// item by the same user is a new event, visible to vector construction
// as an override. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	byItem map[ratings.ItemID][]ratings.Rating
	byUser map[ratings.UserID][]ratings.Rating
	total  int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byItem: make(map[ratings.ItemID][]ratings.Rating),
		byUser: make(map[ratings.UserID][]ratings.Rating),
	}
}

// Add appends one rating event.
func (s *MemoryStore) Add(r ratings.Rating) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byItem[r.Item] = append(s.byItem[r.Item], r)
	s.byUser[r.User] = append(s.byUser[r.User], r)
	s.total++
}

// AddAll appends a batch of rating events.
func (s *MemoryStore) AddAll(rs []ratings.Rating) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range rs {
		s.byItem[r.Item] = append(s.byItem[r.Item], r)
		s.byUser[r.User] = append(s.byUser[r.User], r)
	}
	s.total += len(rs)
}

// ItemRatings implements Store.
func (s *MemoryStore) ItemRatings(ctx context.Context, item ratings.ItemID) (Cursor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newSliceCursor(snapshotRatings(s.byItem[item])), nil
}

// UserRatings implements Store.
func (s *MemoryStore) UserRatings(ctx context.Context, user ratings.UserID) (Cursor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newSliceCursor(snapshotRatings(s.byUser[user])), nil
}

// Len returns the total number of rating events.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// Users returns all users with at least one rating, in unspecified order.
func (s *MemoryStore) Users() []ratings.UserID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]ratings.UserID, 0, len(s.byUser))
	for u := range s.byUser {
		users = append(users, u)
	}
	return users
}

// Items returns all items with at least one rating, in unspecified order.
func (s *MemoryStore) Items() []ratings.ItemID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ratings.ItemID, 0, len(s.byItem))
	for i := range s.byItem {
		items = append(items, i)
	}
	return items
}

// Ratings returns a copy of every rating event, grouped by user, in
// unspecified group order. Used by snapshot encoding.
func (s *MemoryStore) Ratings() []ratings.Rating {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ratings.Rating, 0, s.total)
	for _, rs := range s.byUser {
		out = append(out, rs...)
	}
	return out
}

// snapshotRatings copies a posting list so cursors stay valid while the
// store keeps appending.
func snapshotRatings(rs []ratings.Rating) []ratings.Rating {
	if len(rs) == 0 {
		return nil
	}
	out := make([]ratings.Rating, len(rs))
	copy(out, rs)
	return out
}
