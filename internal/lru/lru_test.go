package lru

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheEviction(t *testing.T) {
	c := New[int, string](2)

	c.Put(1, "a")
	c.Put(2, "b")

	// Touch 1 so 2 becomes the eviction candidate.
	_, ok := c.Get(1)
	assert.True(t, ok)

	c.Put(3, "c")
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get(2)
	assert.False(t, ok, "least recently used entry should be evicted")
	v, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	_, ok = c.Get(3)
	assert.True(t, ok)
}

func TestCacheUnbounded(t *testing.T) {
	c := New[int, int](0)

	for i := 0; i < 1000; i++ {
		c.Put(i, i)
	}
	assert.Equal(t, 1000, c.Len())

	v, ok := c.Get(0)
	assert.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestCacheUpdate(t *testing.T) {
	c := New[string, int](2)

	c.Put("x", 1)
	c.Put("x", 2)
	assert.Equal(t, 1, c.Len())

	v, ok := c.Get("x")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestCacheRemove(t *testing.T) {
	c := New[string, int](0)

	c.Put("x", 1)
	assert.True(t, c.Remove("x"))
	assert.False(t, c.Remove("x"))

	_, ok := c.Get("x")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCacheStats(t *testing.T) {
	c := New[int, int](2)

	c.Put(1, 1)
	c.Get(1)
	c.Get(2)

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}
