package attrib

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/naga"

	"github.com/gogpu/glstate"
	"github.com/gogpu/glstate/internal/cache"
)

// Errors returned when building a program.
var (
	ErrCompile     = errors.New("attrib: shader compile failed")
	ErrLink        = errors.New("attrib: program link failed")
	ErrUnsupported = errors.New("attrib: shaders not supported by context")
)

// DefaultMaxVariants is the number of define variants of one program kept
// per context when Program.MaxVariants is zero.
const DefaultMaxVariants = 32

// WGSLSource is a WGSL shader stage. It is compiled to SPIR-V and loaded
// with glShaderBinary on contexts that support GL_ARB_gl_spirv.
type WGSLSource struct {
	Stage      glstate.ShaderStage
	Code       string
	EntryPoint string
}

// Program is a GLSL program attribute. It is compiled lazily, once per
// context and per combination of the defines it lists.
//
// On contexts that support SPIR-V the WGSL stages are used instead of the
// GLSL sources. WGSL has no preprocessor, so defines do not select WGSL
// variants.
type Program struct {
	global
	Name    string
	Sources []glstate.ShaderSource
	WGSL    []WGSLSource
	// Defines lists the define names the sources react to. Their current
	// values are inserted after the #version line of every stage.
	Defines []string
	// MaxVariants bounds the compiled variants kept per context.
	MaxVariants int

	mu       sync.Mutex
	contexts map[uint32]*programContext
	spirv    map[int][]byte
}

type programContext struct {
	variants *cache.Cache[string, *PerContextProgram]
}

// NewProgram returns a GLSL program from its stage sources.
func NewProgram(name string, sources ...glstate.ShaderSource) *Program {
	return &Program{Name: name, Sources: sources}
}

// NewWGSLProgram returns a program from WGSL stages, with optional GLSL
// fallback sources for contexts without SPIR-V support.
func NewWGSLProgram(name string, stages []WGSLSource, fallback ...glstate.ShaderSource) *Program {
	return &Program{Name: name, WGSL: stages, Sources: fallback}
}

func (*Program) Type() glstate.AttributeType { return glstate.AttributeTypeProgram }

func (p *Program) empty() bool { return len(p.Sources) == 0 && len(p.WGSL) == 0 }

// Apply binds the variant of the program for the current defines,
// building it on first use. A program that fails to build binds program 0.
// An empty program unbinds. Re-applying the variant that is already bound
// issues no driver call.
func (p *Program) Apply(s *glstate.State) {
	if !s.Extensions().IsGLSLSupported {
		return
	}
	if p.empty() {
		s.Driver().UseProgram(0)
		s.SetLastAppliedProgramObject(nil)
		return
	}
	v, err := p.Compile(s)
	if err != nil {
		s.Driver().UseProgram(0)
		s.SetLastAppliedProgramObject(nil)
		return
	}
	if s.LastAppliedProgramObject() == glstate.ProgramObject(v) {
		return
	}
	s.Driver().UseProgram(v.handle)
	s.SetLastAppliedProgramObject(v)
}

// Compile returns the variant of the program for the current defines of
// s, building it if needed. Build failures are cached per variant and
// logged once.
func (p *Program) Compile(s *glstate.State) (*PerContextProgram, error) {
	key := p.variantKey(s)
	pc := p.contextFor(s)
	if v, ok := pc.variants.Get(key); ok {
		return v, v.err
	}
	v := p.build(s, key)
	pc.variants.Set(key, v)
	if v.err != nil {
		glstate.Logger().Warn("attrib: program build failed",
			"context", s.ContextID(), "program", p.Name, "err", v.err)
	} else {
		glstate.Logger().Debug("attrib: program built",
			"context", s.ContextID(), "program", p.Name, "handle", v.handle, "defines", key)
	}
	return v, v.err
}

// Variants returns the number of variants kept for a context.
func (p *Program) Variants(contextID uint32) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pc, ok := p.contexts[contextID]; ok {
		return pc.variants.Len()
	}
	return 0
}

// ReleaseContext deletes every variant built for the context. It
// implements glstate.ContextReleaser and must be called with the context
// current.
func (p *Program) ReleaseContext(contextID uint32) {
	p.mu.Lock()
	pc, ok := p.contexts[contextID]
	delete(p.contexts, contextID)
	p.mu.Unlock()
	if ok {
		pc.variants.Clear()
	}
}

func (p *Program) variantKey(s *glstate.State) string {
	if len(p.Defines) == 0 || p.usesSPIRV(s) {
		return ""
	}
	return s.DefineString(p.Defines)
}

func (p *Program) usesSPIRV(s *glstate.State) bool {
	return len(p.WGSL) > 0 && s.Extensions().IsSPIRVSupported
}

func (p *Program) contextFor(s *glstate.State) *programContext {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := s.ContextID()
	if pc, ok := p.contexts[id]; ok {
		return pc
	}
	if p.contexts == nil {
		p.contexts = make(map[uint32]*programContext)
	}
	limit := p.MaxVariants
	if limit <= 0 {
		limit = DefaultMaxVariants
	}
	pc := &programContext{variants: cache.New[string, *PerContextProgram](limit)}
	pc.variants.OnEvict(func(_ string, v *PerContextProgram) { v.release() })
	p.contexts[id] = pc
	s.TrackContextReleaser(p)
	return pc
}

func (p *Program) build(s *glstate.State, defines string) *PerContextProgram {
	v := &PerContextProgram{
		program:   p,
		driver:    s.Driver(),
		defines:   defines,
		locations: make(map[string]int32),
		attribs:   make(map[string]int32),
		sent:      make(map[int32]sentUniform),
	}
	drv := s.Driver()
	var shaders []uint32
	defer func() {
		for _, sh := range shaders {
			drv.DeleteShader(sh)
		}
	}()

	switch {
	case p.usesSPIRV(s):
		for i, src := range p.WGSL {
			bin, err := p.spirvFor(i)
			if err != nil {
				v.err = fmt.Errorf("%w: %s %s stage: %w", ErrCompile, p.Name, src.Stage, err)
				return v
			}
			sh := drv.CreateShader(uint32(src.Stage))
			shaders = append(shaders, sh)
			drv.ShaderBinary(sh, glstate.GLShaderBinaryFormatSPIRV, bin)
			drv.SpecializeShader(sh, src.EntryPoint)
			if drv.GetShaderi(sh, glstate.GLCompileStatus) == 0 {
				v.err = fmt.Errorf("%w: %s %s stage: %s", ErrCompile, p.Name, src.Stage, drv.ShaderInfoLog(sh))
				return v
			}
		}
	case len(p.Sources) > 0:
		for _, src := range p.Sources {
			sh := drv.CreateShader(uint32(src.Stage))
			shaders = append(shaders, sh)
			drv.ShaderSource(sh, injectDefines(src.Code, defines))
			drv.CompileShader(sh)
			if drv.GetShaderi(sh, glstate.GLCompileStatus) == 0 {
				v.err = fmt.Errorf("%w: %s %s stage: %s", ErrCompile, p.Name, src.Stage, drv.ShaderInfoLog(sh))
				return v
			}
		}
	default:
		v.err = fmt.Errorf("%w: %s has WGSL stages only", ErrUnsupported, p.Name)
		return v
	}

	prog := drv.CreateProgram()
	for _, sh := range shaders {
		drv.AttachShader(prog, sh)
	}
	drv.LinkProgram(prog)
	if drv.GetProgrami(prog, glstate.GLLinkStatus) == 0 {
		v.err = fmt.Errorf("%w: %s: %s", ErrLink, p.Name, drv.ProgramInfoLog(prog))
		drv.DeleteProgram(prog)
		return v
	}
	v.handle = prog
	s.Extensions().DebugObjectLabel(glstate.GLProgramLabel, prog, p.Name)
	return v
}

// spirvFor compiles WGSL stage i with naga. The result is shared by all
// contexts.
func (p *Program) spirvFor(i int) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if bin, ok := p.spirv[i]; ok {
		return bin, nil
	}
	bin, err := naga.Compile(p.WGSL[i].Code)
	if err != nil {
		return nil, err
	}
	if p.spirv == nil {
		p.spirv = make(map[int][]byte)
	}
	p.spirv[i] = bin
	return bin, nil
}

// injectDefines inserts the define block after the #version line, or at
// the top when the source has none.
func injectDefines(code, defines string) string {
	if defines == "" {
		return code
	}
	i := strings.Index(code, "#version")
	if i < 0 || strings.TrimSpace(code[:i]) != "" {
		return defines + code
	}
	eol := strings.IndexByte(code[i:], '\n')
	if eol < 0 {
		return code + "\n" + defines
	}
	at := i + eol + 1
	return code[:at] + defines + code[at:]
}

// CloneType returns the empty program, which unbinds.
func (*Program) CloneType() glstate.Attribute { return &Program{} }

func (p *Program) Compare(o glstate.Attribute) int {
	if r, done := compareTypes(p, o); done {
		return r
	}
	op := o.(*Program)
	if c := cmp.Or(
		cmp.Compare(p.Name, op.Name),
		cmp.Compare(len(p.Sources), len(op.Sources)),
		cmp.Compare(len(p.WGSL), len(op.WGSL)),
	); c != 0 {
		return c
	}
	for i := range p.Sources {
		if c := cmp.Compare(p.Sources[i].Code, op.Sources[i].Code); c != 0 {
			return c
		}
	}
	for i := range p.WGSL {
		if c := cmp.Compare(p.WGSL[i].Code, op.WGSL[i].Code); c != 0 {
			return c
		}
	}
	return 0
}

type sentUniform struct {
	uniform  *glstate.Uniform
	modified uint64
	typ      glstate.UniformType
	payload  []byte
}

// PerContextProgram is one linked variant of a Program in one context.
// It implements glstate.ProgramObject.
type PerContextProgram struct {
	program *Program
	driver  glstate.Driver
	defines string
	handle  uint32
	err     error

	locations map[string]int32
	attribs   map[string]int32
	sent      map[int32]sentUniform
}

func (v *PerContextProgram) Program() glstate.Attribute { return v.program }

func (v *PerContextProgram) Handle() uint32 { return v.handle }

// Defines returns the define block the variant was compiled with.
func (v *PerContextProgram) Defines() string { return v.defines }

// Err returns the build error of the variant, or nil.
func (v *PerContextProgram) Err() error { return v.err }

// UniformLocation returns the location of a uniform, or -1 when the
// program does not declare it.
func (v *PerContextProgram) UniformLocation(name string) int32 {
	if loc, ok := v.locations[name]; ok {
		return loc
	}
	loc := v.driver.GetUniformLocation(v.handle, name)
	v.locations[name] = loc
	return loc
}

// AttribLocation returns the location of a vertex attribute, or -1.
func (v *PerContextProgram) AttribLocation(name string) int32 {
	if loc, ok := v.attribs[name]; ok {
		return loc
	}
	loc := v.driver.GetAttribLocation(v.handle, name)
	v.attribs[name] = loc
	return loc
}

// ApplyUniform uploads u unless the program does not declare it or the
// location already holds the same value. A different uniform object
// carrying an identical payload does not cause an upload.
func (v *PerContextProgram) ApplyUniform(u *glstate.Uniform) {
	if v.handle == 0 {
		return
	}
	loc := v.UniformLocation(u.Name())
	if loc < 0 {
		return
	}
	last, ok := v.sent[loc]
	if ok && last.uniform == u && last.modified == u.ModifiedCount() {
		return
	}
	payload := u.Bytes()
	v.sent[loc] = sentUniform{uniform: u, modified: u.ModifiedCount(), typ: u.Type(), payload: payload}
	if ok && last.typ == u.Type() && bytes.Equal(last.payload, payload) {
		return
	}

	switch t := u.Type(); {
	case t == glstate.UniformMat3:
		v.driver.UniformMatrix3fv(loc, u.Floats())
	case t == glstate.UniformMat4:
		v.driver.UniformMatrix4fv(loc, u.Floats())
	case t.IsInteger():
		v.driver.Uniformiv(loc, t.Components(), u.Ints())
	default:
		v.driver.Uniformfv(loc, t.Components(), u.Floats())
	}
}

func (v *PerContextProgram) release() {
	if v.handle != 0 {
		v.driver.DeleteProgram(v.handle)
		v.handle = 0
	}
}
