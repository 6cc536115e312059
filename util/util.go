package util

import (
	"math/rand"

	"github.com/longlongdada/lenskit/ratings"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// GenerateRatings generates a deterministic rating matrix using the given
// RNG. Each user rates roughly one in ten items with half-star values
// between 1.0 and 5.0; timestamps increase monotonically.
func (r *RNG) GenerateRatings(users, items int) []ratings.Rating {
	var out []ratings.Rating

	var ts int64
	for u := 1; u <= users; u++ {
		for i := 1; i <= items; i++ {
			if r.rand.Float64() >= 0.1 {
				continue
			}

			ts++
			out = append(out, ratings.Rating{
				User:      ratings.UserID(u),
				Item:      ratings.ItemID(i),
				Value:     float64(r.rand.Intn(9)+2) / 2,
				Timestamp: ts,
			})
		}
	}

	return out
}
