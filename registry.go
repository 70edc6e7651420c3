package glstate

import (
	"slices"
	"sync"
)

// Registry maps context IDs to their capability tables.
//
// A process normally owns one Registry and passes it to whatever creates
// contexts. Set lets several contexts share one table, for example to
// normalize capabilities across windows on different GPUs.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[uint32]*Extensions
	disable *DisableList
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithDisableString sets the extension disable list from its textual
// form, replacing the one read from the environment.
func WithDisableString(s string) RegistryOption {
	return func(r *Registry) {
		r.disable = ParseDisableList(s)
	}
}

// WithDisableList sets the extension disable list.
func WithDisableList(l *DisableList) RegistryOption {
	return func(r *Registry) {
		r.disable = l
	}
}

// NewRegistry creates an empty registry. The disable list defaults to the
// value of DisableEnv at the time of the call; changing the variable
// later has no effect on the registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		entries: make(map[uint32]*Extensions),
		disable: DisableListFromEnv(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DisableList returns the disable list used for new tables.
func (r *Registry) DisableList() *DisableList {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.disable
}

// Lookup returns the table of a context if one exists.
func (r *Registry) Lookup(contextID uint32) (*Extensions, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[contextID]
	return e, ok
}

// Get returns the table of a context, building it from d if it does not
// exist yet. d must be current on the calling thread when a table is
// built. With a nil driver Get behaves like Lookup.
func (r *Registry) Get(contextID uint32, d Driver) *Extensions {
	if e, ok := r.Lookup(contextID); ok || d == nil {
		return e
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[contextID]; ok {
		return e
	}
	e := NewExtensions(contextID, d, r.disable)
	r.entries[contextID] = e
	Logger().Info("glstate: extensions registered",
		"context", contextID, "renderer", e.Renderer, "version", e.Version)
	return e
}

// Set installs ext as the table of a context, replacing any existing
// one. A nil ext removes the entry.
func (r *Registry) Set(contextID uint32, ext *Extensions) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ext == nil {
		delete(r.entries, contextID)
		return
	}
	r.entries[contextID] = ext
}

// Delete removes the table of a context.
func (r *Registry) Delete(contextID uint32) {
	r.Set(contextID, nil)
}

// Contexts returns the registered context IDs in ascending order.
func (r *Registry) Contexts() []uint32 {
	r.mu.RLock()
	ids := make([]uint32, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	slices.Sort(ids)
	return ids
}
