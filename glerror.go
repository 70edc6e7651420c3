package glstate

import "fmt"

// CheckGLErrors selects how often the state polls glGetError.
type CheckGLErrors uint8

const (
	// NeverCheckGLErrors disables polling.
	NeverCheckGLErrors CheckGLErrors = iota
	// OncePerFrame polls from FrameCompleted.
	OncePerFrame
	// OncePerAttribute polls after every mode and attribute applied.
	OncePerAttribute
)

func (c CheckGLErrors) String() string {
	switch c {
	case NeverCheckGLErrors:
		return "never"
	case OncePerFrame:
		return "once-per-frame"
	case OncePerAttribute:
		return "once-per-attribute"
	}
	return fmt.Sprintf("CheckGLErrors(%d)", uint8(c))
}

// ParseCheckGLErrors parses the String form of a CheckGLErrors.
func ParseCheckGLErrors(s string) (CheckGLErrors, error) {
	switch s {
	case "never", "":
		return NeverCheckGLErrors, nil
	case "once-per-frame", "frame":
		return OncePerFrame, nil
	case "once-per-attribute", "attribute":
		return OncePerAttribute, nil
	}
	return 0, fmt.Errorf("glstate: unknown GL error check mode %q", s)
}

// SetCheckGLErrors sets the polling frequency.
func (s *State) SetCheckGLErrors(c CheckGLErrors) { s.checkGLErrors = c }

// CheckForGLErrors returns the polling frequency.
func (s *State) CheckForGLErrors() CheckGLErrors { return s.checkGLErrors }

// GLErrorString returns the name of a GL error code.
func GLErrorString(code uint32) string {
	switch code {
	case GLNoError:
		return "GL_NO_ERROR"
	case GLInvalidEnum:
		return "GL_INVALID_ENUM"
	case GLInvalidValue:
		return "GL_INVALID_VALUE"
	case GLInvalidOperation:
		return "GL_INVALID_OPERATION"
	case GLStackOverflow:
		return "GL_STACK_OVERFLOW"
	case GLStackUnderflow:
		return "GL_STACK_UNDERFLOW"
	case GLOutOfMemory:
		return "GL_OUT_OF_MEMORY"
	case GLInvalidFramebufferOperation:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case GLContextLost:
		return "GL_CONTEXT_LOST"
	}
	return fmt.Sprintf("GL error 0x%04X", code)
}

// maxErrorDrain bounds the glGetError loop; a lost context may report
// errors forever.
const maxErrorDrain = 16

// CheckGLErrors drains the GL error queue, logging each error with where
// as context. It reports whether any error was found. Errors never alter
// control flow of the state.
func (s *State) CheckGLErrors(where string) bool {
	found := false
	for range maxErrorDrain {
		code := s.driver.GetError()
		if code == GLNoError {
			break
		}
		found = true
		s.counters.glErrors.Add(1)
		Logger().Warn("glstate: GL error",
			"error", GLErrorString(code),
			"where", where,
			"context", s.contextID)
	}
	return found
}

func (s *State) checkGLErrorsFor(kind string, key fmt.Stringer) {
	if s.CheckGLErrors("") {
		Logger().Warn("glstate: GL error raised while applying "+kind, "key", key.String())
	}
}

// FrameCompleted ends a frame: with OncePerFrame checking, the GL error
// queue is drained.
func (s *State) FrameCompleted() {
	if s.checkGLErrors == OncePerFrame {
		s.CheckGLErrors("end of frame")
	}
}
