package similarity

import "github.com/longlongdada/lenskit/ratings"

// Compile time check to ensure Jaccard satisfies the Similarity interface.
var _ Similarity = Jaccard{}

// Jaccard is the Jaccard index of the rated item sets: overlap divided by
// union. Rating values are ignored; only which items were rated counts.
type Jaccard struct{}

// Similarity implements Similarity.
func (Jaccard) Similarity(a, b ratings.Vector) float64 {
	small, large := a, b
	if len(large) < len(small) {
		small, large = large, small
	}

	var overlap int
	for item := range small {
		if _, ok := large[item]; ok {
			overlap++
		}
	}
	union := len(a) + len(b) - overlap
	if union == 0 {
		return 0
	}
	return float64(overlap) / float64(union)
}

// SparsityOptimized implements Similarity. Disjoint item sets have zero
// overlap and therefore score zero.
func (Jaccard) SparsityOptimized() bool { return true }
