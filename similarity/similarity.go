// Package similarity provides vector similarity metrics for comparing
// user rating vectors.
//
// Every metric reports whether it is sparsity optimized: a sparsity
// optimized metric scores disjoint vectors as zero, which lets a search
// skip candidates that share no rated items with the query without
// changing the result.
package similarity

import "github.com/longlongdada/lenskit/ratings"

// Similarity scores the likeness of two rating vectors. Higher is more
// similar. Implementations must be safe for concurrent use.
type Similarity interface {
	// Similarity returns the similarity of a and b.
	Similarity(a, b ratings.Vector) float64

	// SparsityOptimized reports whether vectors with no common items
	// always score zero.
	SparsityOptimized() bool
}

// Func adapts an ordinary function to the Similarity interface. Adapted
// functions report themselves as not sparsity optimized; implement the
// full interface for metrics that can make the stronger guarantee.
type Func func(a, b ratings.Vector) float64

// Similarity implements Similarity.
func (f Func) Similarity(a, b ratings.Vector) float64 { return f(a, b) }

// SparsityOptimized implements Similarity.
func (Func) SparsityOptimized() bool { return false }
