package glstate

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNoDriver is returned when a context must be created but no driver
// was supplied.
var ErrNoDriver = errors.New("glstate: no driver for context")

// ErrContextClosed is returned when a closed context is used.
var ErrContextClosed = errors.New("glstate: context closed")

// Context pairs the capability table and the state cache of one graphics
// context.
type Context struct {
	ID         uint32
	Extensions *Extensions
	State      *State

	closed bool
}

// Closed reports whether the context was torn down.
func (c *Context) Closed() bool { return c.closed }

// ContextSet owns the contexts of a process, creating each lazily on
// first lookup and tearing it down with Close.
//
// ContextSet is safe for concurrent use; each Context it returns is not.
type ContextSet struct {
	mu       sync.Mutex
	registry *Registry
	contexts map[uint32]*Context
	opts     []Option
}

// NewContextSet creates a context set whose capability tables live in
// registry. opts are applied to every State created.
func NewContextSet(registry *Registry, opts ...Option) *ContextSet {
	if registry == nil {
		registry = NewRegistry()
	}
	return &ContextSet{
		registry: registry,
		contexts: make(map[uint32]*Context),
		opts:     opts,
	}
}

// Registry returns the capability registry of the set.
func (cs *ContextSet) Registry() *Registry { return cs.registry }

// Context returns the context with the given ID, creating it with d if it
// does not exist. d must be current on the calling thread.
func (cs *ContextSet) Context(id uint32, d Driver) (*Context, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if c, ok := cs.contexts[id]; ok {
		return c, nil
	}
	if d == nil {
		return nil, fmt.Errorf("context %d: %w", id, ErrNoDriver)
	}

	ext := cs.registry.Get(id, d)
	opts := append([]Option{WithContextID(id)}, cs.opts...)
	c := &Context{
		ID:         id,
		Extensions: ext,
		State:      NewState(d, ext, opts...),
	}
	cs.contexts[id] = c
	Logger().Info("glstate: context created", "context", id)
	return c, nil
}

// Lookup returns an existing context.
func (cs *ContextSet) Lookup(id uint32) (*Context, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	c, ok := cs.contexts[id]
	return c, ok
}

// Close tears down a context: its state is reset, per-context programs
// are released, the vertex array state is released and the capability
// table is dropped from the registry. The context must be current on the
// calling thread.
func (cs *ContextSet) Close(id uint32) error {
	cs.mu.Lock()
	c, ok := cs.contexts[id]
	delete(cs.contexts, id)
	cs.mu.Unlock()

	if !ok {
		return fmt.Errorf("context %d: %w", id, ErrContextClosed)
	}
	s := c.State
	s.Reset()
	if comp := s.ShaderComposer(); comp != nil {
		comp.Release(id)
	}
	s.releaseContextObjects()
	s.VertexArrayState().Release()
	cs.registry.Delete(id)
	c.closed = true
	Logger().Info("glstate: context closed", "context", id)
	return nil
}

// IDs returns the IDs of the open contexts.
func (cs *ContextSet) IDs() []uint32 {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	ids := make([]uint32, 0, len(cs.contexts))
	for id := range cs.contexts {
		ids = append(ids, id)
	}
	return ids
}

// ContextReleaser is implemented by attribute types that hold
// per-context GL objects, such as compiled programs.
type ContextReleaser interface {
	ReleaseContext(contextID uint32)
}
