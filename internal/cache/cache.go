package cache

import "sync"

// Cache is a generic thread-safe LRU cache with a soft limit.
// When the cache exceeds softLimit, least recently used entries are
// evicted and handed to the eviction callback.
//
// Cache is safe for concurrent use.
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*entry[K, V]
	order     recency[K, V]
	softLimit int
	onEvict   func(K, V)

	hits      uint64
	misses    uint64
	evictions uint64
}

type evicted[K comparable, V any] struct {
	key   K
	value V
}

// New creates a new cache with the given soft limit.
// A softLimit of 0 means unlimited.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	c := &Cache[K, V]{
		entries:   make(map[K]*entry[K, V]),
		softLimit: softLimit,
	}
	c.order.init()
	return c
}

// OnEvict sets the callback run for every entry leaving the cache through
// eviction, Delete or Clear. The callback runs after the cache lock is
// released, on the goroutine that caused the eviction.
func (c *Cache[K, V]) OnEvict(fn func(K, V)) {
	c.mu.Lock()
	c.onEvict = fn
	c.mu.Unlock()
}

// Get retrieves a value from the cache.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.touch(e)
	return e.value, true
}

// Set stores a value in the cache. Replacing an existing value evicts the
// old one. If the cache exceeds softLimit after insertion, least recently
// used entries are evicted.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	out := c.store(key, value)
	fn := c.onEvict
	c.mu.Unlock()

	c.notify(fn, out)
}

// GetOrCreate returns cached value or creates it.
// create is called under lock to prevent duplicate creation, so it must
// not call back into the cache.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.hits++
		c.order.touch(e)
		c.mu.Unlock()
		return e.value
	}
	c.misses++
	value := create()
	out := c.store(key, value)
	fn := c.onEvict
	c.mu.Unlock()

	c.notify(fn, out)
	return value
}

// Delete removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok {
		c.order.unlink(e)
		delete(c.entries, key)
	}
	fn := c.onEvict
	c.mu.Unlock()

	if ok && fn != nil {
		fn(key, e.value)
	}
	return ok
}

// Clear removes all entries from the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	out := make([]evicted[K, V], 0, len(c.entries))
	for key, e := range c.entries {
		out = append(out, evicted[K, V]{key: key, value: e.value})
	}
	c.entries = make(map[K]*entry[K, V])
	c.order.init()
	fn := c.onEvict
	c.mu.Unlock()

	c.notify(fn, out)
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Capacity returns the soft limit of the cache.
func (c *Cache[K, V]) Capacity() int {
	return c.softLimit
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
		Capacity:  c.softLimit,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// store inserts or replaces key and evicts down to the soft limit.
// Caller must hold c.mu.
func (c *Cache[K, V]) store(key K, value V) []evicted[K, V] {
	var out []evicted[K, V]
	if old, ok := c.entries[key]; ok {
		out = append(out, evicted[K, V]{key: key, value: old.value})
		old.value = value
		c.order.touch(old)
		return out
	}
	e := &entry[K, V]{key: key, value: value}
	c.entries[key] = e
	c.order.pushFront(e)

	for c.softLimit > 0 && c.order.len() > c.softLimit {
		victim := c.order.oldest()
		c.order.unlink(victim)
		delete(c.entries, victim.key)
		out = append(out, evicted[K, V]{key: victim.key, value: victim.value})
		c.evictions++
	}
	return out
}

func (c *Cache[K, V]) notify(fn func(K, V), out []evicted[K, V]) {
	if fn == nil {
		return
	}
	for _, e := range out {
		fn(e.key, e.value)
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the soft limit.
	Capacity int
	// Hits is the number of lookups that found an entry.
	Hits uint64
	// Misses is the number of lookups that did not.
	Misses uint64
	// HitRate is the cache hit rate 0.0 to 1.0.
	HitRate float64
	// Evictions is the number of entries dropped for exceeding the limit.
	Evictions uint64
}
