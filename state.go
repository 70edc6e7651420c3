package glstate

import (
	"slices"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/glstate/internal/sorted"
)

// noUnit selects the non-texture mode and attribute maps.
const noUnit = -1

// State is the per-context OpenGL state cache.
//
// It keeps a stack per mode, attribute, uniform and define key, fed by
// pushing and popping StateSets, and converges the GL context to the top
// of those stacks lazily: a GL call is issued only when the resolved
// value differs from the value last sent for the key.
//
// A State is bound to one context and must only be used from the thread
// that currently owns that context. The dynamic object counter is the
// only part that may be touched from other goroutines.
type State struct {
	contextID uint32
	driver    Driver
	ext       *Extensions

	modes             *sorted.Map[Mode, *ModeStack]
	attributes        *sorted.Map[AttributeKey, *AttributeStack]
	textureModes      []*sorted.Map[Mode, *ModeStack]
	textureAttributes []*sorted.Map[AttributeKey, *AttributeStack]
	uniforms          *sorted.Map[string, *UniformStack]
	defines           defineMap
	modeValidity      map[Mode]bool

	stateSets []*StateSet

	activeTextureUnit int

	lastAppliedProgram ProgramObject

	composer                 ShaderComposer
	shaderCompositionEnabled bool
	shaderCompositionDirty   bool
	compositionComponents    []*ShaderComponent
	compositionProgram       Attribute
	compositionUniforms      *sorted.Map[string, *Uniform]

	drawBuffer, readBuffer           uint32
	drawBufferValid, readBufferValid bool

	matrices matrixState

	checkGLErrors CheckGLErrors

	dynamicCount atomic.Int64
	completed    atomic.Pointer[completedHolder]

	vas *VertexArrayState

	releasers map[ContextReleaser]struct{}

	counters counters
}

// NewState creates the state cache of a context.
//
// ext describes the capabilities of the context; pass nil to query them
// from the driver with no disable list.
func NewState(d Driver, ext *Extensions, opts ...Option) *State {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if ext == nil {
		ext = NewExtensions(o.contextID, d, nil)
	}

	s := &State{
		contextID:                o.contextID,
		driver:                   d,
		ext:                      ext,
		modes:                    sorted.New[Mode, *ModeStack](compareModes),
		attributes:               sorted.New[AttributeKey, *AttributeStack](compareAttributeKeys),
		uniforms:                 sorted.NewOrdered[string, *UniformStack](),
		defines:                  newDefineMap(),
		modeValidity:             make(map[Mode]bool),
		composer:                 o.composer,
		shaderCompositionEnabled: o.shaderComposition,
		shaderCompositionDirty:   true,
		compositionUniforms:      sorted.NewOrdered[string, *Uniform](),
		checkGLErrors:            o.checkGLErrors,
	}
	s.matrices.init(o.uniformMatrices)
	if o.completed != nil {
		s.SetCompletedCallback(o.completed)
	}
	for _, m := range ext.UnsupportedModes() {
		s.modeValidity[m] = false
	}
	s.vas = NewVertexArrayState(d, ext)
	if o.vertexArrayObject {
		s.vas.Generate()
	}

	Logger().Debug("glstate: state created",
		"context", s.contextID,
		"maxTextureUnits", s.maxTextureUnits(),
		"shaderComposition", s.shaderCompositionEnabled)
	return s
}

// ContextID returns the ID of the context the state belongs to.
func (s *State) ContextID() uint32 { return s.contextID }

// Driver returns the GL driver of the context.
func (s *State) Driver() Driver { return s.driver }

// Extensions returns the capability table of the context.
func (s *State) Extensions() *Extensions { return s.ext }

// VertexArrayState returns the current vertex array state.
func (s *State) VertexArrayState() *VertexArrayState { return s.vas }

// SetVertexArrayState makes vas current, binding its vertex array object
// if it has one.
func (s *State) SetVertexArrayState(vas *VertexArrayState) {
	if vas == nil || vas == s.vas {
		return
	}
	s.vas = vas
	vas.Bind()
}

// LastAppliedProgramObject returns the program object bound by the last
// applied program attribute, or nil.
func (s *State) LastAppliedProgramObject() ProgramObject { return s.lastAppliedProgram }

// SetLastAppliedProgramObject records the program bound by a program
// attribute. Program attributes call it from Apply.
func (s *State) SetLastAppliedProgramObject(p ProgramObject) {
	if s.lastAppliedProgram == p {
		return
	}
	s.lastAppliedProgram = p
	s.counters.programSwitches.Add(1)
	if p != nil && s.matrices.useUniforms {
		s.matrices.markUniformsDirty()
	}
}

// TrackContextReleaser registers r to be called when the context of the
// state is closed. Attributes that create GL objects on first apply call
// it so their objects are freed with the context.
func (s *State) TrackContextReleaser(r ContextReleaser) {
	if s.releasers == nil {
		s.releasers = make(map[ContextReleaser]struct{})
	}
	s.releasers[r] = struct{}{}
}

func (s *State) releaseContextObjects() {
	for r := range s.releasers {
		r.ReleaseContext(s.contextID)
	}
	clear(s.releasers)
}

// ShaderComposer returns the installed composer.
func (s *State) ShaderComposer() ShaderComposer { return s.composer }

// SetShaderComposer installs a composer.
func (s *State) SetShaderComposer(c ShaderComposer) {
	s.composer = c
	s.shaderCompositionDirty = true
}

// SetShaderCompositionEnabled toggles shader composition.
func (s *State) SetShaderCompositionEnabled(enabled bool) {
	s.shaderCompositionEnabled = enabled
	s.shaderCompositionDirty = true
}

// ShaderCompositionEnabled reports whether shader composition is on.
func (s *State) ShaderCompositionEnabled() bool { return s.shaderCompositionEnabled }

// ShaderComponents returns the components used for the last composed
// program.
func (s *State) ShaderComponents() []*ShaderComponent { return s.compositionComponents }

// ApplyShaderCompositionUniform queues a uniform for the composed program.
// Attributes call it from Apply; the queue is flushed at the end of the
// current apply.
func (s *State) ApplyShaderCompositionUniform(u *Uniform) {
	if u == nil {
		return
	}
	s.compositionUniforms.Set(u.Name(), u)
}

// SetDrawBuffer selects the draw buffer, skipping redundant calls.
func (s *State) SetDrawBuffer(buf uint32) {
	if s.drawBufferValid && s.drawBuffer == buf {
		return
	}
	s.driver.DrawBuffer(buf)
	s.drawBuffer, s.drawBufferValid = buf, true
}

// SetReadBuffer selects the read buffer, skipping redundant calls.
func (s *State) SetReadBuffer(buf uint32) {
	if s.readBufferValid && s.readBuffer == buf {
		return
	}
	s.driver.ReadBuffer(buf)
	s.readBuffer, s.readBufferValid = buf, true
}

// DrawBuffer returns the last selected draw buffer.
func (s *State) DrawBuffer() (uint32, bool) { return s.drawBuffer, s.drawBufferValid }

// ReadBuffer returns the last selected read buffer.
func (s *State) ReadBuffer() (uint32, bool) { return s.readBuffer, s.readBufferValid }

// ProjectionMatrix returns the current projection matrix.
func (s *State) ProjectionMatrix() mgl32.Mat4 { return s.matrices.projection }

// ModelViewMatrix returns the current model-view matrix.
func (s *State) ModelViewMatrix() mgl32.Mat4 { return s.matrices.modelView }

// StateSetStack returns the pushed state sets, bottom first.
// The slice aliases internal storage and must not be modified.
func (s *State) StateSetStack() []*StateSet { return s.stateSets }

// StateSetStackSize returns the number of pushed state sets.
func (s *State) StateSetStackSize() int { return len(s.stateSets) }

func (s *State) newModeStack(m Mode) *ModeStack {
	valid, ok := s.modeValidity[m]
	return &ModeStack{valid: !ok || valid}
}

func (s *State) modeStack(m Mode) *ModeStack {
	return s.modes.GetOrInsert(m, func() *ModeStack { return s.newModeStack(m) })
}

func (s *State) attributeStack(k AttributeKey) *AttributeStack {
	return s.attributes.GetOrInsert(k, func() *AttributeStack { return &AttributeStack{} })
}

func (s *State) textureModeMap(unit int) *sorted.Map[Mode, *ModeStack] {
	for len(s.textureModes) <= unit {
		s.textureModes = append(s.textureModes, sorted.New[Mode, *ModeStack](compareModes))
	}
	return s.textureModes[unit]
}

func (s *State) textureAttributeMap(unit int) *sorted.Map[AttributeKey, *AttributeStack] {
	for len(s.textureAttributes) <= unit {
		s.textureAttributes = append(s.textureAttributes, sorted.New[AttributeKey, *AttributeStack](compareAttributeKeys))
	}
	return s.textureAttributes[unit]
}

func (s *State) modeMapFor(unit int) *sorted.Map[Mode, *ModeStack] {
	if unit == noUnit {
		return s.modes
	}
	return s.textureModeMap(unit)
}

func (s *State) attributeMapFor(unit int) *sorted.Map[AttributeKey, *AttributeStack] {
	if unit == noUnit {
		return s.attributes
	}
	return s.textureAttributeMap(unit)
}

func (s *State) modeStackFor(unit int, m Mode) *ModeStack {
	return s.modeMapFor(unit).GetOrInsert(m, func() *ModeStack { return s.newModeStack(m) })
}

func (s *State) attributeStackFor(unit int, k AttributeKey) *AttributeStack {
	return s.attributeMapFor(unit).GetOrInsert(k, func() *AttributeStack { return &AttributeStack{} })
}

// CurrentDefines returns the defines currently visible to shaders.
func (s *State) CurrentDefines() map[string]string {
	if s.defines.dirty {
		s.defines.refresh()
	}
	out := make(map[string]string, s.defines.current.Len())
	for name, dv := range s.defines.current.All() {
		out[name] = dv.Text
	}
	return out
}

// DefineString returns "#define" lines for those of names that are
// currently visible, in name order. Programs use it both as the preamble
// of their sources and as the key of the compiled variant.
func (s *State) DefineString(names []string) string {
	if s.defines.dirty {
		s.defines.refresh()
	}
	var b []byte
	for _, name := range sortedUnique(names) {
		dv, ok := s.defines.current.Get(name)
		if !ok {
			continue
		}
		b = append(b, "#define "...)
		b = append(b, name...)
		if dv.Text != "" {
			b = append(b, ' ')
			b = append(b, dv.Text...)
		}
		b = append(b, '\n')
	}
	return string(b)
}

// SupportsShaderRequirement reports whether a define is currently visible.
func (s *State) SupportsShaderRequirement(name string) bool {
	if s.defines.dirty {
		s.defines.refresh()
	}
	_, ok := s.defines.current.Get(name)
	return ok
}

// SupportsShaderRequirements reports whether every define is visible.
// An empty list is always supported.
func (s *State) SupportsShaderRequirements(names []string) bool {
	for _, name := range names {
		if !s.SupportsShaderRequirement(name) {
			return false
		}
	}
	return true
}

func sortedUnique(names []string) []string {
	out := slices.Clone(names)
	slices.Sort(out)
	return slices.Compact(out)
}
