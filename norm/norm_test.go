package norm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/longlongdada/lenskit/ratings"
)

func TestIdentity(t *testing.T) {
	v := ratings.Vector{1: 4, 2: 2}
	Identity{}.Normalize(7, v)
	assert.Equal(t, ratings.Vector{1: 4, 2: 2}, v)
}

func TestMeanCenter(t *testing.T) {
	v := ratings.Vector{1: 2, 2: 4, 3: 6}
	MeanCenter{}.Normalize(7, v)

	assert.InDelta(t, -2, v[1], 1e-9)
	assert.InDelta(t, 0, v[2], 1e-9)
	assert.InDelta(t, 2, v[3], 1e-9)
	assert.InDelta(t, 0, v.Mean(), 1e-9)
}

func TestMeanCenterRepeatable(t *testing.T) {
	a := ratings.Vector{1: 1, 2: 5}
	b := a.Clone()

	MeanCenter{}.Normalize(7, a)
	MeanCenter{}.Normalize(7, b)
	assert.Equal(t, a, b, "normalizing equal copies must agree")
}

func TestZScore(t *testing.T) {
	v := ratings.Vector{1: 2, 2: 4, 3: 6}
	ZScore{}.Normalize(7, v)

	// mean 4, sd sqrt(8/3)
	assert.InDelta(t, -1.2247448, v[1], 1e-6)
	assert.InDelta(t, 0, v[2], 1e-9)
	assert.InDelta(t, 1.2247448, v[3], 1e-6)
}

func TestZScoreConstantVector(t *testing.T) {
	v := ratings.Vector{1: 3, 2: 3}
	ZScore{}.Normalize(7, v)

	assert.InDelta(t, 0, v[1], 1e-9)
	assert.InDelta(t, 0, v[2], 1e-9)
}

func TestZScoreEmptyVector(t *testing.T) {
	v := ratings.Vector{}
	ZScore{}.Normalize(7, v)
	assert.Equal(t, 0, v.Len())
}
