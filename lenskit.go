package lenskit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"golang.org/x/sync/errgroup"

	"github.com/longlongdada/lenskit/norm"
	"github.com/longlongdada/lenskit/ratings"
	"github.com/longlongdada/lenskit/similarity"
	"github.com/longlongdada/lenskit/store"
)

// Neighbor is a candidate user labeled with its similarity to the search
// target. Ratings is the candidate's raw (unnormalized) rating vector,
// detached from any shared storage; one Neighbor is shared across all
// item neighborhoods it appears in.
type Neighbor struct {
	User       ratings.UserID
	Ratings    ratings.Vector
	Similarity float64
}

// Finder performs user-based collaborative-filtering neighborhood
// search: per candidate item, the top-N users most similar to the target
// who rated that item.
//
// A Finder is safe for concurrent use. Each FindNeighbors call runs as a
// single logical worker; only the rating-vector cache is shared between
// concurrent calls.
type Finder struct {
	store            store.Store
	neighborhoodSize int
	similarity       similarity.Similarity
	normalizer       norm.Normalizer
	vectors          vectorSource
	locator          *candidateLocator
	batchConcurrency int
	metrics          MetricsCollector
	logger           *Logger
}

// New creates a Finder over the given rating store. Configuration is
// validated here, before any search executes.
func New(s store.Store, optFns ...Option) (*Finder, error) {
	if s == nil {
		return nil, ErrNoStore
	}

	o := applyOptions(optFns)
	if o.neighborhoodSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNeighborhoodSize, o.neighborhoodSize)
	}
	if o.similarity == nil {
		return nil, ErrNoSimilarity
	}
	if o.normalizer == nil {
		return nil, ErrNoNormalizer
	}
	if o.batchConcurrency <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchConcurrency, o.batchConcurrency)
	}

	f := &Finder{
		store:            s,
		neighborhoodSize: o.neighborhoodSize,
		similarity:       o.similarity,
		normalizer:       o.normalizer,
		locator:          &candidateLocator{store: s},
		batchConcurrency: o.batchConcurrency,
		metrics:          o.metrics,
		logger:           o.logger,
	}

	// Caching disabled is an explicit always-fetch source, selected
	// once here, not a nil check on the hot path.
	if o.cacheVectors {
		f.vectors = newCachedVectorSource(s, o.cacheCapacity, o.metrics, o.logger)
	} else {
		f.vectors = &directVectorSource{store: s, metrics: o.metrics}
	}

	return f, nil
}

// FindNeighbors returns, for each item, up to N users most similar to
// user who rated that item. vector is the target user's rating vector;
// it is never mutated. items restricts which item neighborhoods are
// built; nil means no restriction, so every item any candidate rated is
// considered.
//
// Neighbor slices are unordered; ties in similarity survive
// non-deterministically. Store failures abort the search and propagate.
func (f *Finder) FindNeighbors(ctx context.Context, user ratings.UserID, vector ratings.Vector, items []ratings.ItemID) (map[ratings.ItemID][]Neighbor, error) {
	start := time.Now()

	result, candidates, err := f.findNeighbors(ctx, user, vector, items)
	f.metrics.RecordSearch(candidates, time.Since(start), err)
	f.logger.LogSearch(ctx, user, candidates, len(result), err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (f *Finder) findNeighbors(ctx context.Context, user ratings.UserID, vector ratings.Vector, items []ratings.ItemID) (map[ratings.ItemID][]Neighbor, int, error) {
	// The target's normalized copy; the caller's vector stays intact.
	query := vector.Clone()
	f.normalizer.Normalize(user, query)

	queryItems := f.selectQueryItems(vector, items)

	candidates, err := f.locator.find(ctx, user, queryItems)
	if err != nil {
		return nil, 0, err
	}
	found := int(candidates.GetCardinality())

	// Nil admits every item the candidate rated.
	var admit *roaring64.Bitmap
	if items != nil {
		admit = roaring64.New()
		for _, item := range items {
			admit.Add(uint64(item))
		}
	}

	agg := newTopNAggregator(f.neighborhoodSize)

	it := candidates.Iterator()
	for it.HasNext() {
		candidate := ratings.UserID(int64(it.Next()))

		urv, err := f.vectors.vector(ctx, candidate)
		if err != nil {
			return nil, found, err
		}

		// Normalization is pairwise and recomputed; the raw vector is
		// what travels on the Neighbor.
		nurv := urv.Mutable()
		f.normalizer.Normalize(candidate, nurv)

		n := Neighbor{
			User:       candidate,
			Ratings:    urv.Mutable(),
			Similarity: f.similarity.Similarity(query, nurv),
		}
		for item := range n.Ratings {
			if admit == nil || admit.Contains(uint64(item)) {
				agg.offer(item, n)
			}
		}
	}

	return agg.result(), found, nil
}

// selectQueryItems picks the item set the candidate scan runs over.
// With a sparsity-optimized similarity and a target vector smaller than
// the requested item set, scanning the target's own items finds every
// candidate that can score above zero while touching fewer rating
// lists. With no requested items there is nothing else to scan: the
// store exposes no item enumeration, so the target's items are the only
// bounded choice.
func (f *Finder) selectQueryItems(vector ratings.Vector, items []ratings.ItemID) []ratings.ItemID {
	if items == nil {
		return vector.Items()
	}
	if f.similarity.SparsityOptimized() && vector.Len() < len(items) {
		return vector.Items()
	}
	return items
}

// FindAll runs one FindNeighbors per user, concurrently up to the
// configured batch concurrency, fetching each user's own vector through
// the shared rating-vector cache. The first failure cancels the
// remaining work. Individual searches keep their single-worker
// semantics.
func (f *Finder) FindAll(ctx context.Context, users []ratings.UserID, items []ratings.ItemID) (map[ratings.UserID]map[ratings.ItemID][]Neighbor, error) {
	start := time.Now()

	var (
		mu     sync.Mutex
		failed atomic.Int64
	)
	out := make(map[ratings.UserID]map[ratings.ItemID][]Neighbor, len(users))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.batchConcurrency)

	for _, user := range users {
		g.Go(func() error {
			urv, err := f.vectors.vector(gctx, user)
			if err != nil {
				failed.Add(1)
				return fmt.Errorf("user %d: %w", user, err)
			}
			neighborhoods, err := f.FindNeighbors(gctx, user, urv.Mutable(), items)
			if err != nil {
				failed.Add(1)
				return fmt.Errorf("user %d: %w", user, err)
			}
			mu.Lock()
			out[user] = neighborhoods
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	f.metrics.RecordBatchSearch(len(users), int(failed.Load()), time.Since(start))
	f.logger.LogBatchSearch(ctx, len(users), int(failed.Load()))
	if err != nil {
		return nil, err
	}
	return out, nil
}
