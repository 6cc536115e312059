// Package norm provides rating-vector normalizers applied before
// similarity comparison.
//
// Normalizers mutate the vector they are given in place and nothing
// else; callers pass detached copies when the original must survive.
// Normalizing the same data twice from the same starting point yields
// the same result.
package norm

import (
	"math"

	"github.com/longlongdada/lenskit/ratings"
)

// Normalizer transforms a user's rating vector in place.
type Normalizer interface {
	// Normalize rewrites v. user identifies whose ratings these are,
	// for normalizers keyed on per-user statistics.
	Normalize(user ratings.UserID, v ratings.Vector)
}

// Compile time checks to ensure the normalizers satisfy the interface.
var (
	_ Normalizer = Identity{}
	_ Normalizer = MeanCenter{}
	_ Normalizer = ZScore{}
)

// Identity leaves the vector unchanged.
type Identity struct{}

// Normalize implements Normalizer.
func (Identity) Normalize(user ratings.UserID, v ratings.Vector) {}

// MeanCenter subtracts the user's mean rating from every entry, so that
// values express preference relative to the user's own baseline.
type MeanCenter struct{}

// Normalize implements Normalizer.
func (MeanCenter) Normalize(user ratings.UserID, v ratings.Vector) {
	mean := v.Mean()
	for item, val := range v {
		v[item] = val - mean
	}
}

// ZScore centers on the user's mean and scales by the standard deviation
// of the user's ratings. A user who rates everything identically has no
// spread to scale by; such vectors are centered only.
type ZScore struct{}

// Normalize implements Normalizer.
func (ZScore) Normalize(user ratings.UserID, v ratings.Vector) {
	if len(v) == 0 {
		return
	}
	mean := v.Mean()
	var variance float64
	for _, val := range v {
		d := val - mean
		variance += d * d
	}
	variance /= float64(len(v))

	sd := math.Sqrt(variance)
	for item, val := range v {
		if sd == 0 {
			v[item] = val - mean
		} else {
			v[item] = (val - mean) / sd
		}
	}
}
