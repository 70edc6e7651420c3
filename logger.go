package glstate

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discardHandler drops every record. Enabled reports false, so the apply
// path never formats attributes while logging is off.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }

var (
	silentLogger = slog.New(discardHandler{})

	// activeLogger is swapped atomically; State methods on any context
	// thread may log while another goroutine calls SetLogger.
	activeLogger atomic.Pointer[slog.Logger]
)

func init() {
	activeLogger.Store(silentLogger)
}

// SetLogger routes the log output of glstate and its sub-packages to l.
// The package is silent until SetLogger is called; a nil l makes it
// silent again.
//
// Levels:
//   - [slog.LevelDebug]: extension resolution, state creation, program builds
//   - [slog.LevelInfo]: context and registry lifecycle, profile loading
//   - [slog.LevelWarn]: GL errors, shader compile and link failures,
//     out of range stack operations, unsupported attribute fallbacks
//
// For example, to see everything on stderr:
//
//	glstate.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silentLogger
	}
	activeLogger.Store(l)
}

// Logger returns the logger installed by SetLogger. The attrib,
// shadercomp, config and backend packages log through it.
func Logger() *slog.Logger {
	return activeLogger.Load()
}
