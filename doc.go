// Package lenskit provides user-based collaborative-filtering
// neighborhood search for Go.
//
// Given a target user's rating vector and a set of candidate items, a
// Finder returns, per item, the top-N most similar users who rated that
// item, for use by a downstream rating predictor. Raw user vectors are
// fetched through a staleness-checked cache; normalization is recomputed
// per comparison; per-item selection runs over bounded min-heaps.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	st := store.NewMemoryStore()
//	st.AddAll(myRatings)
//
//	finder, err := lenskit.New(st,
//	    lenskit.WithNeighborhoodSize(30),
//	    lenskit.WithSimilarity(similarity.Cosine{}),
//	    lenskit.WithNormalizer(norm.MeanCenter{}),
//	)
//	if err != nil {
//	    panic(err)
//	}
//
//	neighborhoods, err := finder.FindNeighbors(ctx, userID, userVector, candidateItems)
//	for item, neighbors := range neighborhoods {
//	    // neighbors: up to 30 users who rated item, most similar to userID
//	}
//
// Pass nil candidate items to consider every item the candidates rated.
//
// # Data Access
//
// Rating data is read through the store.Store interface; the in-memory
// implementation covers embedded use, MovieLens-format files load via the
// movielens package, and snapshots move through blobstore backends
// (local disk, S3, MinIO).
//
// # Caching
//
// Each user's raw rating vector is cached after first use and validated
// against the store's current rating count and maximum timestamp on
// every access, so rating updates take effect on the next search without
// explicit invalidation. The cache grows without bound by default;
// WithCacheCapacity bounds it with LRU eviction, and WithVectorCache(false)
// disables it.
package lenskit
