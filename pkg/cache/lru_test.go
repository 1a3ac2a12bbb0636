package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storybud/emailkit/pkg/cache"
)

func TestLRU_PutGet(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, string](2)
	c.Put("a", "1")

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestLRU_EvictsOldest(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	_, _ = c.Get("a")
	c.Put("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok)

	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestLRU_UpdateExisting(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, int](2)
	c.Put("a", 1)
	c.Put("a", 2)

	v, _ := c.Get("a")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())
}

func TestLRU_Clear(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, int](4)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Clear()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestLRU_Delete(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, int](4)
	c.Put("a", 1)

	assert.True(t, c.Delete("a"))
	assert.False(t, c.Delete("a"))
}

func TestNewLRU_InvalidCapacityPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { cache.NewLRU[string, int](0) })
}
