package queue

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedKeepsLargest(t *testing.T) {
	q := NewBounded(3, func(a, b float64) bool { return a < b })

	for _, v := range []float64{0.2, 0.9, 0.1, 0.5, 0.7, 0.3} {
		q.Push(v)
	}

	assert.Equal(t, 3, q.Len())
	assert.ElementsMatch(t, []float64{0.5, 0.7, 0.9}, q.Items())

	min, ok := q.Min()
	require.True(t, ok)
	assert.Equal(t, 0.5, min)
}

func TestBoundedUnderLimit(t *testing.T) {
	q := NewBounded(5, func(a, b int) bool { return a < b })

	q.Push(2)
	q.Push(1)

	assert.Equal(t, 2, q.Len())
	assert.ElementsMatch(t, []int{1, 2}, q.Items())
}

func TestBoundedPopOrder(t *testing.T) {
	q := NewBounded(4, func(a, b int) bool { return a < b })
	for _, v := range []int{4, 1, 3, 2} {
		q.Push(v)
	}

	var got []int
	for {
		v, ok := q.Pop()
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, got)

	_, ok := q.Pop()
	assert.False(t, ok)
	_, ok = q.Min()
	assert.False(t, ok)
}

func TestBoundedRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	const limit = 10
	q := NewBounded(limit, func(a, b float64) bool { return a < b })

	vals := make([]float64, 200)
	for i := range vals {
		vals[i] = rng.Float64()
		q.Push(vals[i])
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(vals)))
	assert.ElementsMatch(t, vals[:limit], q.Items())
}

func TestBoundedItemsIsCopy(t *testing.T) {
	q := NewBounded(3, func(a, b int) bool { return a < b })
	q.Push(1)
	q.Push(2)

	items := q.Items()
	items[0] = 99

	assert.ElementsMatch(t, []int{1, 2}, q.Items())
}
