package glstate

import (
	"testing"

	"github.com/gogpu/glstate/backend/record"
)

// TestDefaultOptions tests that a state created without options uses the
// documented defaults.
func TestDefaultOptions(t *testing.T) {
	s, _ := newTestState(t, record.Desktop46())

	if s.ContextID() != 0 {
		t.Errorf("ContextID() = %d, want 0", s.ContextID())
	}
	if s.CheckForGLErrors() != OncePerFrame {
		t.Errorf("CheckForGLErrors() = %v, want once-per-frame", s.CheckForGLErrors())
	}
	if s.ShaderCompositionEnabled() {
		t.Error("shader composition enabled by default")
	}
	if s.UseModelViewAndProjectionUniforms() {
		t.Error("matrix uniforms enabled by default")
	}
	if s.VertexArrayState().VertexArrayObject() != 0 {
		t.Error("vertex array object allocated by default")
	}
}

// TestOptions tests each functional option.
func TestOptions(t *testing.T) {
	comp := &testComposer{}
	var fired bool
	s, _ := newTestState(t, record.Core33(),
		WithContextID(4),
		WithCheckGLErrors(NeverCheckGLErrors),
		WithShaderComposer(comp),
		WithModelViewAndProjectionUniforms(true),
		WithCompletedCallback(CompletedFunc(func(*State) { fired = true })),
		WithVertexArrayObject(true),
	)

	if s.ContextID() != 4 {
		t.Errorf("ContextID() = %d, want 4", s.ContextID())
	}
	if s.CheckForGLErrors() != NeverCheckGLErrors {
		t.Errorf("CheckForGLErrors() = %v, want never", s.CheckForGLErrors())
	}
	if s.ShaderComposer() != comp || !s.ShaderCompositionEnabled() {
		t.Error("composer not installed")
	}
	if !s.UseModelViewAndProjectionUniforms() {
		t.Error("matrix uniforms not enabled")
	}
	if s.VertexArrayState().VertexArrayObject() == 0 {
		t.Error("vertex array object not allocated")
	}
	s.SetDynamicObjectCount(0, true)
	s.SetDynamicObjectCount(1, false)
	s.DecrementDynamicObjectCount()
	if !fired {
		t.Error("completed callback not installed")
	}
}

// TestWithShaderCompositionOrder tests that the later option wins.
func TestWithShaderCompositionOrder(t *testing.T) {
	comp := &testComposer{}
	s, _ := newTestState(t, record.Core33(), WithShaderComposer(comp), WithShaderComposition(false))
	if s.ShaderCompositionEnabled() {
		t.Error("WithShaderComposition(false) after WithShaderComposer left composition on")
	}
	if s.ShaderComposer() != comp {
		t.Error("composer dropped")
	}
	s.SetShaderCompositionEnabled(true)
	if !s.ShaderCompositionEnabled() {
		t.Error("SetShaderCompositionEnabled(true) had no effect")
	}
	s.SetShaderComposer(nil)
	if s.ShaderComposer() != nil {
		t.Error("SetShaderComposer(nil) kept the composer")
	}
}
