package cache

import (
	"fmt"
	"testing"
)

// variantKeys mimics the define blocks programs are cached by.
func variantKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("#define LIGHTS %d\n#define USE_FOG\n", i)
	}
	return keys
}

func BenchmarkCacheHit(b *testing.B) {
	keys := variantKeys(8)
	c := New[string, uint32](32)
	for i, k := range keys {
		c.Set(k, uint32(i))
	}

	b.ReportAllocs()
	i := 0
	for b.Loop() {
		c.Get(keys[i%len(keys)])
		i++
	}
}

func BenchmarkCacheGetOrCreate(b *testing.B) {
	keys := variantKeys(64)
	c := New[string, uint32](32)

	b.ReportAllocs()
	i := 0
	for b.Loop() {
		c.GetOrCreate(keys[i%len(keys)], func() uint32 { return uint32(i) })
		i++
	}
}

func BenchmarkCacheEvicting(b *testing.B) {
	c := New[int, uint32](64)
	released := 0
	c.OnEvict(func(int, uint32) { released++ })

	i := 0
	for b.Loop() {
		c.Set(i, uint32(i))
		i++
	}
	b.ReportMetric(float64(released)/float64(i), "evictions/op")
}
