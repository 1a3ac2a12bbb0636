package cache

import (
	"container/list"
	"sync"
)

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// LRU is a thread-safe LRU cache. When the cache reaches its capacity, the
// least recently used item is evicted.
type LRU[K comparable, V any] struct {
	capacity int
	items    map[K]*list.Element
	eviction *list.List
	mu       sync.Mutex
}

// NewLRU creates a new LRU cache with the specified capacity.
// The capacity must be positive, otherwise it panics.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		panic("LRU cache capacity must be positive")
	}
	return &LRU[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element),
		eviction: list.New(),
	}
}

// Get retrieves a value from the cache and marks it as recently used.
// Returns the value and true if found, zero value and false otherwise.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.eviction.MoveToFront(elem)
		entry := elem.Value.(*lruEntry[K, V])
		return entry.value, true
	}

	var zero V
	return zero, false
}

// Put adds or updates a value in the cache.
// If the cache is at capacity, the least recently used item is evicted.
func (c *LRU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.eviction.MoveToFront(elem)
		elem.Value.(*lruEntry[K, V]).value = value
		return
	}

	elem := c.eviction.PushFront(&lruEntry[K, V]{key: key, value: value})
	c.items[key] = elem

	if c.eviction.Len() > c.capacity {
		c.evictOldest()
	}
}

// Delete removes a key from the cache. Returns true if the key was present.
func (c *LRU[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return false
	}
	c.eviction.Remove(elem)
	delete(c.items, key)
	return true
}

// Len returns the number of items currently in the cache.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}

// Clear removes all items from the cache.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]*list.Element)
	c.eviction.Init()
}

func (c *LRU[K, V]) evictOldest() {
	oldest := c.eviction.Back()
	if oldest == nil {
		return
	}
	entry := oldest.Value.(*lruEntry[K, V])
	c.eviction.Remove(oldest)
	delete(c.items, entry.key)
}
