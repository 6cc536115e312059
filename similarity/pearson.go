package similarity

import (
	"math"

	"github.com/longlongdada/lenskit/ratings"
)

// Compile time check to ensure Pearson satisfies the Similarity interface.
var _ Similarity = Pearson{}

// Pearson is the Pearson correlation of two rating vectors over the items
// both users rated, with the per-user means taken over that overlap.
// Shrinkage > 0 enables significance weighting: the correlation is scaled
// by n/(n+Shrinkage) where n is the overlap size, discounting pairs with
// little common evidence.
type Pearson struct {
	Shrinkage float64
}

// Similarity implements Similarity.
func (p Pearson) Similarity(a, b ratings.Vector) float64 {
	small, large := a, b
	if len(large) < len(small) {
		small, large = large, small
	}

	var (
		n          int
		sumA, sumB float64
		common     []ratings.ItemID
	)
	for item, va := range small {
		if vb, ok := large[item]; ok {
			n++
			sumA += va
			sumB += vb
			common = append(common, item)
		}
	}
	if n < 2 {
		return 0
	}

	meanA := sumA / float64(n)
	meanB := sumB / float64(n)

	var cov, varA, varB float64
	for _, item := range common {
		da := small[item] - meanA
		db := large[item] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	if varA == 0 || varB == 0 {
		return 0
	}

	r := cov / math.Sqrt(varA*varB)
	if p.Shrinkage > 0 {
		r *= float64(n) / (float64(n) + p.Shrinkage)
	}
	return r
}

// SparsityOptimized implements Similarity. Pairs without common items
// score zero.
func (Pearson) SparsityOptimized() bool { return true }
