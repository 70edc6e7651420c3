// Package cache provides a generic LRU cache with an eviction callback.
//
// It backs the per-context program variant cache: each entry owns a GL
// object, and the eviction callback deletes that object when the entry is
// dropped.
//
//	c := cache.New[string, uint32](64)
//	c.OnEvict(func(_ string, program uint32) { driver.DeleteProgram(program) })
//	c.Set("USE_FOG", program)
//	program, ok := c.Get("USE_FOG")
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
// Eviction callbacks run outside the lock.
package cache
