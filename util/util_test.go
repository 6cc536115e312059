package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRatings(t *testing.T) {
	rng := NewRNG(4711)

	rs := rng.GenerateRatings(50, 100)

	assert.NotEmpty(t, rs)

	var lastTS int64
	for _, r := range rs {
		assert.GreaterOrEqual(t, r.Value, 1.0)
		assert.LessOrEqual(t, r.Value, 5.0)
		assert.Greater(t, r.Timestamp, lastTS)
		lastTS = r.Timestamp
	}
}

func TestGenerateRatingsDeterministic(t *testing.T) {
	a := NewRNG(4711).GenerateRatings(10, 20)
	b := NewRNG(4711).GenerateRatings(10, 20)

	assert.Equal(t, a, b)
}
