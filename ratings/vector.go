package ratings

import "math"

// Vector is a mutable sparse rating vector: a mapping from item to the
// rating value a user gave it. The zero value is not usable; construct
// with NewVector, FromRatings, or a map literal.
type Vector map[ItemID]float64

// NewVector creates an empty vector with room for n entries.
func NewVector(n int) Vector {
	return make(Vector, n)
}

// Get returns the rating for item and whether it is present.
func (v Vector) Get(item ItemID) (float64, bool) {
	val, ok := v[item]
	return val, ok
}

// Set stores the rating for item, overwriting any previous value.
func (v Vector) Set(item ItemID, value float64) {
	v[item] = value
}

// Len returns the number of rated items.
func (v Vector) Len() int {
	return len(v)
}

// Items returns the rated items in unspecified order.
func (v Vector) Items() []ItemID {
	items := make([]ItemID, 0, len(v))
	for item := range v {
		items = append(items, item)
	}
	return items
}

// Clone returns a mutable copy detached from v. Mutating the copy never
// affects v or any other copy.
func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	for item, val := range v {
		c[item] = val
	}
	return c
}

// Mean returns the arithmetic mean of the rating values, or 0 for an
// empty vector.
func (v Vector) Mean() float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, val := range v {
		sum += val
	}
	return sum / float64(len(v))
}

// Norm returns the Euclidean norm of the rating values.
func (v Vector) Norm() float64 {
	var sum float64
	for _, val := range v {
		sum += val * val
	}
	return math.Sqrt(sum)
}

// Freeze wraps v in an immutable view. The caller must not mutate v
// afterwards; use Clone first when the original is still needed.
func (v Vector) Freeze() *ImmutableVector {
	return &ImmutableVector{m: v}
}

// ImmutableVector is a read-only rating vector. Instances are safe for
// concurrent readers and safe to share across goroutines.
type ImmutableVector struct {
	m Vector
}

// Get returns the rating for item and whether it is present.
func (v *ImmutableVector) Get(item ItemID) (float64, bool) {
	val, ok := v.m[item]
	return val, ok
}

// Len returns the number of rated items.
func (v *ImmutableVector) Len() int {
	return len(v.m)
}

// Items returns the rated items in unspecified order.
func (v *ImmutableVector) Items() []ItemID {
	return v.m.Items()
}

// Mutable returns a mutable copy detached from the immutable backing
// storage.
func (v *ImmutableVector) Mutable() Vector {
	return v.m.Clone()
}
