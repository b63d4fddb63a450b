// Package layoutcache provides a bounded LRU cache for compiled patterns.
package layoutcache

import (
	"container/list"
	"sync"
)

// DefaultSize is the default maximum number of cached entries.
const DefaultSize = 128

// Cache is an LRU cache keyed by pattern text.
// It is safe for concurrent use.
type Cache[V any] struct {
	mu      sync.Mutex
	items   map[string]*list.Element
	lruList *list.List
	maxSize int
}

type entry[V any] struct {
	key   string
	value V
}

// New creates a cache holding at most maxSize entries.
// A maxSize below 1 falls back to DefaultSize.
func New[V any](maxSize int) *Cache[V] {
	if maxSize < 1 {
		maxSize = DefaultSize
	}
	return &Cache[V]{
		items:   make(map[string]*list.Element),
		lruList: list.New(),
		maxSize: maxSize,
	}
}

// Get returns the cached value for key, calling compile to build it on a miss.
// compile runs outside the lock; when two goroutines race on the same key the
// first stored value wins and both callers get it.
func (c *Cache[V]) Get(key string, compile func(string) V) V {
	c.mu.Lock()
	if elem, ok := c.items[key]; ok {
		c.lruList.MoveToFront(elem)
		v := elem.Value.(*entry[V]).value
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	v := compile(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.lruList.MoveToFront(elem)
		return elem.Value.(*entry[V]).value
	}

	if c.lruList.Len() >= c.maxSize {
		if oldest := c.lruList.Back(); oldest != nil {
			c.lruList.Remove(oldest)
			delete(c.items, oldest.Value.(*entry[V]).key)
		}
	}

	c.items[key] = c.lruList.PushFront(&entry[V]{key: key, value: v})
	return v
}

// Len returns the current number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lruList.Len()
}

// contains reports whether key is cached without touching its recency.
func (c *Cache[V]) contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}
