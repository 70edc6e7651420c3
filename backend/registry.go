package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/glstate"
)

// Driver names registered by this module.
const (
	// DriverGL is the go-gl driver, registered by backend/gogl when built
	// with the gl tag.
	DriverGL = "gl"
	// DriverDesktop46 is the recording driver impersonating a 4.6
	// compatibility profile.
	DriverDesktop46 = "desktop46"
	DriverCore33    = "core33"
	DriverLegacy14  = "legacy14"
	DriverGLES2     = "gles2"
)

// registry holds registered drivers.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for driver selection (first available wins).
	// A real context beats the recording drivers.
	driverPriority = []string{DriverGL, DriverDesktop46}
)

// Register registers a driver factory with the given name.
// This is typically called from init() functions in backend packages.
// If a driver with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a driver from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the sorted names of the registered drivers.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a driver with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Open opens the driver registered under name. An empty name opens the
// default driver.
func Open(name string) (glstate.Driver, func(), error) {
	if name == "" {
		return Default()
	}
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrDriverNotAvailable, name)
	}
	return factory()
}

// Default opens the best available driver based on priority, falling
// back to the first registered driver that opens in name order.
func Default() (glstate.Driver, func(), error) {
	names := Available()
	order := make([]string, 0, len(names))
	for _, name := range driverPriority {
		if slices.Contains(names, name) {
			order = append(order, name)
		}
	}
	for _, name := range names {
		if !slices.Contains(order, name) {
			order = append(order, name)
		}
	}

	var lastErr error
	for _, name := range order {
		d, release, err := Open(name)
		if err == nil {
			return d, release, nil
		}
		glstate.Logger().Warn("backend: driver unavailable", "driver", name, "err", err)
		lastErr = err
	}
	if lastErr != nil {
		return nil, nil, lastErr
	}
	return nil, nil, ErrDriverNotAvailable
}
