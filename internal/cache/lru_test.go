package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRU_GetAdd(t *testing.T) {
	c := NewLRU[string](2)

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Add("a", "1")
	c.Add("b", "2")
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	// b is now least recently used
	c.Add("c", "3")
	_, ok = c.Get("b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = c.Get("a")
	assert.True(t, ok)

	assert.Equal(t, Stats{Size: 2, Hits: 2, Misses: 2}, c.Stats())
}

func TestLRU_Overwrite(t *testing.T) {
	c := NewLRU[int](0)
	c.Add("k", 1)
	c.Add("k", 2)

	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Stats().Size)
}
