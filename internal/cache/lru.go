package cache

// entry is a cached value linked into the recency ring of its cache.
type entry[K comparable, V any] struct {
	key        K
	value      V
	prev, next *entry[K, V]
}

// recency orders entries from most to least recently used. It is a ring
// around a sentinel, so linking never checks for nil neighbours.
// Not safe for concurrent use; Cache holds its lock around every call.
type recency[K comparable, V any] struct {
	root entry[K, V]
	n    int
}

func (r *recency[K, V]) init() {
	r.root.prev = &r.root
	r.root.next = &r.root
	r.n = 0
}

func (r *recency[K, V]) len() int { return r.n }

// pushFront links e as the most recently used entry.
func (r *recency[K, V]) pushFront(e *entry[K, V]) {
	e.prev = &r.root
	e.next = r.root.next
	r.root.next.prev = e
	r.root.next = e
	r.n++
}

// touch marks a linked entry as the most recently used.
func (r *recency[K, V]) touch(e *entry[K, V]) {
	if r.root.next == e {
		return
	}
	r.unlink(e)
	r.pushFront(e)
}

func (r *recency[K, V]) unlink(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev, e.next = nil, nil
	r.n--
}

// oldest returns the least recently used entry, or nil when empty.
func (r *recency[K, V]) oldest() *entry[K, V] {
	if r.n == 0 {
		return nil
	}
	return r.root.prev
}
