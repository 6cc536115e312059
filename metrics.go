package lenskit

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    searchCounter   prometheus.Counter
//	    searchHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordSearch(candidates int, duration time.Duration, err error) {
//	    p.searchCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordSearch is called after each neighborhood search.
	// candidates is the number of candidate users compared, duration is
	// the total time taken, err is nil if successful.
	RecordSearch(candidates int, duration time.Duration, err error)

	// RecordBatchSearch is called after each batch search.
	// users is the number of users attempted, failed is the number that
	// failed, duration is the total time taken.
	RecordBatchSearch(users, failed int, duration time.Duration)

	// RecordVectorFetch is called after each rating-vector fetch.
	// hit reports whether a cached vector was still valid.
	RecordVectorFetch(hit bool, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSearch(int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordBatchSearch(int, int, time.Duration) {}
func (NoopMetricsCollector) RecordVectorFetch(bool, time.Duration)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SearchCount           atomic.Int64
	SearchErrors          atomic.Int64
	SearchCandidates      atomic.Int64
	SearchTotalNanos      atomic.Int64
	BatchSearchCount      atomic.Int64
	BatchSearchUsers      atomic.Int64
	BatchSearchFailed     atomic.Int64
	VectorFetchCount      atomic.Int64
	VectorFetchHits       atomic.Int64
	VectorFetchTotalNanos atomic.Int64
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(candidates int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchCandidates.Add(int64(candidates))
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// RecordBatchSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchSearch(users, failed int, duration time.Duration) {
	b.BatchSearchCount.Add(1)
	b.BatchSearchUsers.Add(int64(users))
	b.BatchSearchFailed.Add(int64(failed))
}

// RecordVectorFetch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordVectorFetch(hit bool, duration time.Duration) {
	b.VectorFetchCount.Add(1)
	b.VectorFetchTotalNanos.Add(duration.Nanoseconds())
	if hit {
		b.VectorFetchHits.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SearchCount:         b.SearchCount.Load(),
		SearchErrors:        b.SearchErrors.Load(),
		SearchCandidates:    b.SearchCandidates.Load(),
		SearchAvgNanos:      b.getAvgSearchNanos(),
		BatchSearchCount:    b.BatchSearchCount.Load(),
		BatchSearchUsers:    b.BatchSearchUsers.Load(),
		BatchSearchFailed:   b.BatchSearchFailed.Load(),
		VectorFetchCount:    b.VectorFetchCount.Load(),
		VectorFetchHits:     b.VectorFetchHits.Load(),
		VectorFetchAvgNanos: b.getAvgVectorFetchNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgSearchNanos() int64 {
	count := b.SearchCount.Load()
	if count == 0 {
		return 0
	}
	return b.SearchTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgVectorFetchNanos() int64 {
	count := b.VectorFetchCount.Load()
	if count == 0 {
		return 0
	}
	return b.VectorFetchTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SearchCount         int64
	SearchErrors        int64
	SearchCandidates    int64
	SearchAvgNanos      int64
	BatchSearchCount    int64
	BatchSearchUsers    int64
	BatchSearchFailed   int64
	VectorFetchCount    int64
	VectorFetchHits     int64
	VectorFetchAvgNanos int64
}
