package lenskit

import "errors"

var (
	// ErrNoStore is returned when a Finder is constructed without a
	// rating store.
	ErrNoStore = errors.New("rating store is required")

	// ErrInvalidNeighborhoodSize is returned when the configured
	// neighborhood size is not positive.
	ErrInvalidNeighborhoodSize = errors.New("neighborhood size must be positive")

	// ErrNoSimilarity is returned when the similarity function is nil.
	ErrNoSimilarity = errors.New("similarity function is required")

	// ErrNoNormalizer is returned when the normalizer is nil.
	ErrNoNormalizer = errors.New("normalizer is required")

	// ErrInvalidBatchConcurrency is returned when the batch concurrency
	// limit is not positive.
	ErrInvalidBatchConcurrency = errors.New("batch concurrency must be positive")
)
