package similarity

import "github.com/longlongdada/lenskit/ratings"

// Compile time check to ensure Cosine satisfies the Similarity interface.
var _ Similarity = Cosine{}

// Cosine is the cosine of the angle between two rating vectors. The dot
// product runs over the common items only; the norms cover the full
// vectors. Damping is added to the denominator to pull scores of
// low-information pairs toward zero; zero damping is plain cosine.
type Cosine struct {
	Damping float64
}

// Similarity implements Similarity.
func (c Cosine) Similarity(a, b ratings.Vector) float64 {
	small, large := a, b
	if len(large) < len(small) {
		small, large = large, small
	}

	var dot float64
	for item, va := range small {
		if vb, ok := large[item]; ok {
			dot += va * vb
		}
	}
	if dot == 0 {
		return 0
	}

	denom := a.Norm()*b.Norm() + c.Damping
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// SparsityOptimized implements Similarity. Disjoint vectors have a zero
// dot product and therefore score zero.
func (Cosine) SparsityOptimized() bool { return true }
