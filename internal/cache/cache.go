// Package cache provides the bounded LRU caches backends use for GPU
// objects that are expensive to create and cheap to look up: pipelines,
// samplers and bind group layouts.
//
// Values are owned by the cache. When an entry is evicted, replaced,
// deleted or cleared, the cache hands it to the eviction hook so the
// backend can destroy the underlying handle.
//
//	pipelines := cache.New[pipelineKey, hal.RenderPipeline](64, func(_ pipelineKey, p hal.RenderPipeline) {
//		device.DestroyRenderPipeline(p)
//	})
//	p, err := pipelines.GetOrCreate(key, func() (hal.RenderPipeline, error) {
//		return device.CreateRenderPipeline(desc)
//	})
package cache

import (
	"sync"
	"sync/atomic"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 256

// EvictFunc releases a value leaving the cache.
type EvictFunc[K comparable, V any] func(key K, value V)

// LRU is a thread-safe, fixed-capacity cache with least recently used
// eviction. It must not be copied after creation.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*entry[K, V]
	lru      lruList[K]
	capacity int
	onEvict  EvictFunc[K, V]

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type entry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// New creates a cache holding at most capacity entries. onEvict may be nil.
func New[K comparable, V any](capacity int, onEvict EvictFunc[K, V]) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRU[K, V]{
		entries:  make(map[K]*entry[K, V]),
		capacity: capacity,
		onEvict:  onEvict,
	}
}

// Get returns the value for key and marks it recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.lru.MoveToFront(e.node)
	c.hits.Add(1)
	return e.value, true
}

// Set stores value under key. A previous value for key is handed to the
// eviction hook.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		old := e.value
		e.value = value
		c.lru.MoveToFront(e.node)
		c.evict(key, old)
		return
	}
	c.insert(key, value)
}

// GetOrCreate returns the cached value for key, calling create on a miss.
// create runs under the cache lock, so concurrent callers never create the
// same key twice. A create error is returned and nothing is cached.
func (c *LRU[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.lru.MoveToFront(e.node)
		c.hits.Add(1)
		return e.value, nil
	}
	c.misses.Add(1)

	value, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	c.insert(key, value)
	return value, nil
}

// Delete removes key, handing its value to the eviction hook.
func (c *LRU[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.lru.Remove(e.node)
	delete(c.entries, key)
	c.evict(key, e.value)
	return true
}

// Clear removes every entry, handing each value to the eviction hook.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		c.evict(key, e.value)
	}
	c.entries = make(map[K]*entry[K, V])
	c.lru.Clear()
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the maximum number of entries.
func (c *LRU[K, V]) Capacity() int {
	return c.capacity
}

// Stats returns a snapshot of the cache counters.
func (c *LRU[K, V]) Stats() Stats {
	hits, misses := c.hits.Load(), c.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return Stats{
		Len:       c.Len(),
		Capacity:  c.capacity,
		Hits:      hits,
		Misses:    misses,
		HitRate:   rate,
		Evictions: c.evictions.Load(),
	}
}

// insert adds a new entry, evicting the oldest ones first if full.
// Caller must hold c.mu.
func (c *LRU[K, V]) insert(key K, value V) {
	for c.lru.Len() >= c.capacity {
		oldest, ok := c.lru.RemoveOldest()
		if !ok {
			break
		}
		e := c.entries[oldest]
		delete(c.entries, oldest)
		c.evictions.Add(1)
		c.evict(oldest, e.value)
	}
	c.entries[key] = &entry[K, V]{value: value, node: c.lru.PushFront(key)}
}

func (c *LRU[K, V]) evict(key K, value V) {
	if c.onEvict != nil {
		c.onEvict(key, value)
	}
}

// Stats contains cache statistics.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	HitRate   float64
	Evictions uint64
}
