package lenskit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/longlongdada/lenskit/internal/lru"
	"github.com/longlongdada/lenskit/ratings"
	"github.com/longlongdada/lenskit/store"
)

// vectorSource yields the raw (pre-normalization) rating vector of a
// user. The raw vector is the expensive, cacheable artifact; callers
// normalize detached copies per comparison.
type vectorSource interface {
	vector(ctx context.Context, user ratings.UserID) (*ratings.ImmutableVector, error)
}

// Compile time checks to ensure both sources satisfy vectorSource.
var (
	_ vectorSource = (*cachedVectorSource)(nil)
	_ vectorSource = (*directVectorSource)(nil)
)

// cacheEntry is a cached vector with its pessimistic staleness
// fingerprint. The fingerprint assumes timestamps are non-decreasing
// with insertion order; ratings back-dated below a previously seen
// maximum go undetected.
type cacheEntry struct {
	ratingCount  int
	maxTimestamp int64
	vector       *ratings.ImmutableVector
}

// cachedVectorSource caches immutable rating vectors per user and
// validates every read against the store's current rating count and
// maximum timestamp. Rebuilds for the same user are coalesced through a
// singleflight group, so at most one installer runs the check-then-update
// sequence per key at a time; the LRU map serializes reads and writes
// across keys.
type cachedVectorSource struct {
	store   store.Store
	entries *lru.Cache[ratings.UserID, *cacheEntry]
	group   singleflight.Group
	metrics MetricsCollector
	logger  *Logger
}

func newCachedVectorSource(s store.Store, capacity int, metrics MetricsCollector, logger *Logger) *cachedVectorSource {
	return &cachedVectorSource{
		store:   s,
		entries: lru.New[ratings.UserID, *cacheEntry](capacity),
		metrics: metrics,
		logger:  logger,
	}
}

func (s *cachedVectorSource) vector(ctx context.Context, user ratings.UserID) (*ratings.ImmutableVector, error) {
	v, err, _ := s.group.Do(strconv.FormatInt(int64(user), 10), func() (any, error) {
		return s.fetch(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return v.(*ratings.ImmutableVector), nil
}

func (s *cachedVectorSource) fetch(ctx context.Context, user ratings.UserID) (*ratings.ImmutableVector, error) {
	start := time.Now()

	// One validation read per fetch: staleness can only be judged
	// against the store's current ratings.
	rs, err := readUserRatings(ctx, s.store, user)
	if err != nil {
		return nil, err
	}
	count := len(rs)
	maxTS := ratings.MaxTimestamp(rs)

	if ent, ok := s.entries.Get(user); ok && ent.ratingCount == count && ent.maxTimestamp == maxTS {
		s.metrics.RecordVectorFetch(true, time.Since(start))
		return ent.vector, nil
	}

	vec := ratings.FromRatings(rs).Freeze()
	s.entries.Put(user, &cacheEntry{
		ratingCount:  count,
		maxTimestamp: maxTS,
		vector:       vec,
	})
	s.metrics.RecordVectorFetch(false, time.Since(start))
	s.logger.LogVectorRebuild(ctx, user, count)
	return vec, nil
}

// directVectorSource rebuilds the vector from the store on every call.
// Selected at construction when caching is disabled.
type directVectorSource struct {
	store   store.Store
	metrics MetricsCollector
}

func (s *directVectorSource) vector(ctx context.Context, user ratings.UserID) (*ratings.ImmutableVector, error) {
	start := time.Now()

	rs, err := readUserRatings(ctx, s.store, user)
	if err != nil {
		return nil, err
	}
	vec := ratings.FromRatings(rs).Freeze()
	s.metrics.RecordVectorFetch(false, time.Since(start))
	return vec, nil
}

// readUserRatings drains the user's rating cursor into a batch. The
// cursor is released on every path out.
func readUserRatings(ctx context.Context, s store.Store, user ratings.UserID) ([]ratings.Rating, error) {
	cur, err := s.UserRatings(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("open user %d ratings: %w", user, err)
	}
	defer func() { _ = cur.Close() }()

	var rs []ratings.Rating
	for cur.Next() {
		rs = append(rs, cur.Rating())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("scan user %d ratings: %w", user, err)
	}
	return rs, nil
}
