package backend

import (
	"errors"

	"github.com/gogpu/glstate"
)

// Common backend errors.
var (
	// ErrDriverNotAvailable is returned when a requested driver is not
	// registered or none is registered at all.
	ErrDriverNotAvailable = errors.New("backend: driver not available")
)

// Factory opens a driver. It returns the driver and a function that
// releases it; the release function is never nil when err is nil.
type Factory func() (glstate.Driver, func(), error)
