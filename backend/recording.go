package backend

import (
	"github.com/gogpu/glstate"
	"github.com/gogpu/glstate/backend/record"
)

// The recording drivers are always available.
func init() {
	for name, cfg := range map[string]func() record.Config{
		DriverDesktop46: record.Desktop46,
		DriverCore33:    record.Core33,
		DriverLegacy14:  record.Legacy14,
		DriverGLES2:     record.GLES2,
	} {
		Register(name, recordFactory(cfg))
	}
}

func recordFactory(cfg func() record.Config) Factory {
	return func() (glstate.Driver, func(), error) {
		return record.New(cfg()), func() {}, nil
	}
}
