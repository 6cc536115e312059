package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longlongdada/lenskit/ratings"
)

func collect(t *testing.T, c Cursor) []ratings.Rating {
	t.Helper()
	defer func() {
		require.NoError(t, c.Close())
	}()

	var out []ratings.Rating
	for c.Next() {
		out = append(out, c.Rating())
	}
	require.NoError(t, c.Err())
	return out
}

func TestMemoryStoreCursors(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.AddAll([]ratings.Rating{
		{User: 1, Item: 10, Value: 4, Timestamp: 100},
		{User: 1, Item: 20, Value: 3, Timestamp: 110},
		{User: 2, Item: 10, Value: 5, Timestamp: 120},
	})

	cur, err := s.ItemRatings(ctx, 10)
	require.NoError(t, err)
	got := collect(t, cur)
	assert.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, ratings.ItemID(10), r.Item)
	}

	cur, err = s.UserRatings(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, collect(t, cur), 2)

	assert.Equal(t, 3, s.Len())
	assert.ElementsMatch(t, []ratings.UserID{1, 2}, s.Users())
	assert.ElementsMatch(t, []ratings.ItemID{10, 20}, s.Items())
	assert.Len(t, s.Ratings(), 3)
}

func TestMemoryStoreUnknownKeys(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	cur, err := s.ItemRatings(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, collect(t, cur))

	cur, err = s.UserRatings(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, collect(t, cur))
}

func TestMemoryStoreCursorIsSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Add(ratings.Rating{User: 1, Item: 10, Value: 4, Timestamp: 100})

	cur, err := s.ItemRatings(ctx, 10)
	require.NoError(t, err)

	// Appends after the open must not leak into the open cursor.
	s.Add(ratings.Rating{User: 2, Item: 10, Value: 2, Timestamp: 200})
	assert.Len(t, collect(t, cur), 1)

	cur, err = s.ItemRatings(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, collect(t, cur), 2)
}

func TestCursorClosedStopsIteration(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.AddAll([]ratings.Rating{
		{User: 1, Item: 10, Value: 4},
		{User: 2, Item: 10, Value: 3},
	})

	cur, err := s.ItemRatings(ctx, 10)
	require.NoError(t, err)
	require.True(t, cur.Next())
	require.NoError(t, cur.Close())

	assert.False(t, cur.Next())
	assert.NoError(t, cur.Close(), "double close is allowed")
}
