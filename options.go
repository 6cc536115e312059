package lenskit

import (
	"log/slog"
	"runtime"

	"github.com/longlongdada/lenskit/norm"
	"github.com/longlongdada/lenskit/similarity"
)

// DefaultNeighborhoodSize is the neighborhood size used when none is
// configured.
const DefaultNeighborhoodSize = 40

type options struct {
	neighborhoodSize int
	similarity       similarity.Similarity
	normalizer       norm.Normalizer
	cacheVectors     bool
	cacheCapacity    int
	batchConcurrency int
	metrics          MetricsCollector
	logger           *Logger
}

// Option configures Finder construction.
type Option func(*options)

// WithNeighborhoodSize configures N, the maximum number of neighbors
// kept per item. Must be positive.
func WithNeighborhoodSize(n int) Option {
	return func(o *options) {
		o.neighborhoodSize = n
	}
}

// WithSimilarity configures the similarity function used to score
// candidate users against the target.
func WithSimilarity(s similarity.Similarity) Option {
	return func(o *options) {
		o.similarity = s
	}
}

// WithNormalizer configures the normalization applied to rating vectors
// before similarity comparison. Normalization runs per comparison on
// detached copies; raw vectors are what the cache stores.
func WithNormalizer(n norm.Normalizer) Option {
	return func(o *options) {
		o.normalizer = n
	}
}

// WithVectorCache enables or disables the rating-vector cache. Enabled
// by default. With the cache disabled every candidate vector is rebuilt
// from the store on every search.
func WithVectorCache(enabled bool) Option {
	return func(o *options) {
		o.cacheVectors = enabled
	}
}

// WithCacheCapacity bounds the rating-vector cache to capacity users,
// evicting the least recently used beyond that. capacity <= 0 keeps the
// default policy: the cache never evicts, and the caller bounds the user
// population instead.
func WithCacheCapacity(capacity int) Option {
	return func(o *options) {
		o.cacheCapacity = capacity
	}
}

// WithBatchConcurrency configures how many users FindAll searches
// concurrently. Must be positive. Defaults to the number of schedulable
// CPUs.
func WithBatchConcurrency(n int) Option {
	return func(o *options) {
		o.batchConcurrency = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations.
//
// Example with BasicMetricsCollector:
//
//	metrics := &lenskit.BasicMetricsCollector{}
//	finder, _ := lenskit.New(st, lenskit.WithMetricsCollector(metrics))
//	// ... search ...
//	stats := metrics.GetStats()
//	fmt.Printf("Searches: %d, Avg latency: %dns\n", stats.SearchCount, stats.SearchAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithLogger configures structured logging for operations.
//
// Example with JSON logging:
//
//	logger := lenskit.NewJSONLogger(slog.LevelInfo)
//	finder, _ := lenskit.New(st, lenskit.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		neighborhoodSize: DefaultNeighborhoodSize,
		similarity:       similarity.Cosine{},
		normalizer:       norm.Identity{},
		cacheVectors:     true,
		batchConcurrency: runtime.GOMAXPROCS(0),
		metrics:          NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
