// Package queue provides a value-based bounded min-heap used for top-N
// neighbor selection.
package queue

// Bounded is a min-heap that holds at most limit elements. Pushing onto a
// full heap evicts the minimum element, so the heap converges on the
// largest limit elements seen. Value-based storage, no pointer
// indirection.
type Bounded[T any] struct {
	less  func(a, b T) bool
	limit int
	items []T
}

// NewBounded creates a bounded min-heap ordered by less. limit must be
// positive. The backing slice is sized limit+1 so a push on a full heap
// can insert before evicting.
func NewBounded[T any](limit int, less func(a, b T) bool) *Bounded[T] {
	return &Bounded[T]{
		less:  less,
		limit: limit,
		items: make([]T, 0, limit+1),
	}
}

// Push inserts item while maintaining the heap invariant, then evicts the
// minimum element if the heap has grown past its limit. Ties at the
// minimum are broken by heap order; which of equally-ranked elements
// survives is unspecified.
func (q *Bounded[T]) Push(item T) {
	q.items = append(q.items, item)
	q.siftUp(len(q.items) - 1)
	if len(q.items) > q.limit {
		q.Pop()
	}
}

// Pop removes and returns the minimum element.
func (q *Bounded[T]) Pop() (T, bool) {
	n := len(q.items)
	if n == 0 {
		var zero T
		return zero, false
	}
	root := q.items[0]
	last := q.items[n-1]
	var zero T
	q.items[n-1] = zero
	q.items = q.items[:n-1]
	if n-1 > 0 {
		q.items[0] = last
		q.siftDown(0)
	}
	return root, true
}

// Min returns the minimum element without removing it.
func (q *Bounded[T]) Min() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

// Len returns the number of elements in the heap.
func (q *Bounded[T]) Len() int { return len(q.items) }

// Items returns a copy of the heap contents in unspecified order.
func (q *Bounded[T]) Items() []T {
	out := make([]T, len(q.items))
	copy(out, q.items)
	return out
}

func (q *Bounded[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !q.less(q.items[i], q.items[p]) {
			return
		}
		q.items[i], q.items[p] = q.items[p], q.items[i]
		i = p
	}
}

func (q *Bounded[T]) siftDown(i int) {
	n := len(q.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		if r := l + 1; r < n && q.less(q.items[r], q.items[l]) {
			best = r
		}
		if !q.less(q.items[best], q.items[i]) {
			return
		}
		q.items[i], q.items[best] = q.items[best], q.items[i]
		i = best
	}
}
