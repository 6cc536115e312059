package lenskit

import (
	"github.com/longlongdada/lenskit/internal/queue"
	"github.com/longlongdada/lenskit/ratings"
)

// neighborLess orders neighbors by similarity only, ascending, so the
// per-item heaps evict their weakest member first.
func neighborLess(a, b Neighbor) bool { return a.Similarity < b.Similarity }

// topNAggregator maintains one bounded min-heap of neighbors per item.
// Heaps are created lazily on first offer and never removed; an item
// that received an offer always appears in the result, even if its best
// neighbors were later evicted elsewhere.
type topNAggregator struct {
	size  int
	heaps map[ratings.ItemID]*queue.Bounded[Neighbor]
}

func newTopNAggregator(size int) *topNAggregator {
	return &topNAggregator{
		size:  size,
		heaps: make(map[ratings.ItemID]*queue.Bounded[Neighbor]),
	}
}

// offer feeds one neighbor to item's heap. Once the heap holds size
// neighbors, each further offer evicts the least similar; ties at the
// boundary survive in unspecified order.
func (a *topNAggregator) offer(item ratings.ItemID, n Neighbor) {
	h, ok := a.heaps[item]
	if !ok {
		h = queue.NewBounded(a.size, neighborLess)
		a.heaps[item] = h
	}
	h.Push(n)
}

// snapshot returns item's current neighbors, unordered, or nil for an
// item that never received an offer.
func (a *topNAggregator) snapshot(item ratings.ItemID) []Neighbor {
	h, ok := a.heaps[item]
	if !ok {
		return nil
	}
	return h.Items()
}

// result snapshots every item heap into the final per-item mapping.
func (a *topNAggregator) result() map[ratings.ItemID][]Neighbor {
	out := make(map[ratings.ItemID][]Neighbor, len(a.heaps))
	for item := range a.heaps {
		out[item] = a.snapshot(item)
	}
	return out
}
