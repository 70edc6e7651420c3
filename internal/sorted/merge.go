package sorted

// Visitor receives the keys of a two-way walk.
// Any nil callback is skipped.
type Visitor[K, L, R any] struct {
	// Left is called for keys present only on the left side.
	Left func(key K, l L)
	// Right is called for keys present only on the right side.
	Right func(key K, r R)
	// Both is called for keys present on both sides.
	Both func(key K, l L, r R)
}

// Walk visits the union of the keys of left and right in ascending order.
// Both slices must be sorted by compare. The walk is O(len(left)+len(right)).
func Walk[K, L, R any](left []Entry[K, L], right []Entry[K, R], compare func(a, b K) int, v Visitor[K, L, R]) {
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		switch c := compare(left[i].Key, right[j].Key); {
		case c < 0:
			if v.Left != nil {
				v.Left(left[i].Key, left[i].Value)
			}
			i++
		case c > 0:
			if v.Right != nil {
				v.Right(right[j].Key, right[j].Value)
			}
			j++
		default:
			if v.Both != nil {
				v.Both(left[i].Key, left[i].Value, right[j].Value)
			}
			i++
			j++
		}
	}
	for ; i < len(left); i++ {
		if v.Left != nil {
			v.Left(left[i].Key, left[i].Value)
		}
	}
	for ; j < len(right); j++ {
		if v.Right != nil {
			v.Right(right[j].Key, right[j].Value)
		}
	}
}

// Merge walks m against right like Walk, but keys found only on the right
// are added to m using the value returned by insert. The inserted entries
// become visible in m once the walk has finished.
func Merge[K, V, R any](m *Map[K, V], right []Entry[K, R], insert func(key K, r R) V, v Visitor[K, V, R]) {
	var added []Entry[K, V]
	Walk(m.entries, right, m.cmp, Visitor[K, V, R]{
		Left: v.Left,
		Both: v.Both,
		Right: func(key K, r R) {
			added = append(added, Entry[K, V]{Key: key, Value: insert(key, r)})
		},
	})
	if len(added) == 0 {
		return
	}
	merged := make([]Entry[K, V], 0, len(m.entries)+len(added))
	i, j := 0, 0
	for i < len(m.entries) && j < len(added) {
		if m.cmp(m.entries[i].Key, added[j].Key) < 0 {
			merged = append(merged, m.entries[i])
			i++
		} else {
			merged = append(merged, added[j])
			j++
		}
	}
	merged = append(merged, m.entries[i:]...)
	merged = append(merged, added[j:]...)
	m.entries = merged
}
