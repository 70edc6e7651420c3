// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package record

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"unsafe"
)

// Call is one recorded driver call.
type Call struct {
	Name string
	Args []any
}

// String formats the call as Name(arg, ...). Integer enums print in hex.
func (c Call) String() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		switch v := a.(type) {
		case uint32:
			fmt.Fprintf(&b, "%#x", v)
		case string:
			fmt.Fprintf(&b, "%q", v)
		default:
			fmt.Fprint(&b, v)
		}
	}
	b.WriteByte(')')
	return b.String()
}

type shader struct {
	stage    uint32
	source   string
	binary   []byte
	compiled bool
	log      string
}

type program struct {
	shaders  []uint32
	linked   bool
	log      string
	source   string
	uniforms map[string]int32
	attribs  map[string]int32
}

// Driver is an in-memory GL driver. It is safe for concurrent use, but
// like a real context it models a single current context.
type Driver struct {
	mu      sync.Mutex
	cfg     Config
	calls   []Call
	errors  []uint32
	symbols map[string]*byte
	missing map[string]struct{}

	enabled  map[uint32]bool
	next     uint32
	shaders  map[uint32]*shader
	programs map[uint32]*program
	arrays   map[uint32]bool
	current  uint32
}

// New returns a driver impersonating cfg.
func New(cfg Config) *Driver {
	d := &Driver{
		cfg:      cfg,
		symbols:  make(map[string]*byte),
		missing:  make(map[string]struct{}),
		enabled:  make(map[uint32]bool),
		shaders:  make(map[uint32]*shader),
		programs: make(map[uint32]*program),
		arrays:   make(map[uint32]bool),
	}
	for _, name := range cfg.Missing {
		d.missing[name] = struct{}{}
	}
	return d
}

// Config returns the configuration the driver was created with.
func (d *Driver) Config() Config { return d.cfg }

func (d *Driver) record(name string, args ...any) {
	d.mu.Lock()
	d.calls = append(d.calls, Call{Name: name, Args: args})
	d.mu.Unlock()
}

// Calls returns a copy of the recorded calls.
func (d *Driver) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.calls)
}

// CallsNamed returns the recorded calls with the given name.
func (d *Driver) CallsNamed(name string) []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []Call
	for _, c := range d.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many calls with the given name were recorded. An
// empty name counts all calls.
func (d *Driver) Count(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if name == "" {
		return len(d.calls)
	}
	n := 0
	for _, c := range d.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Reset forgets the recorded calls. Simulated GL state is kept.
func (d *Driver) Reset() {
	d.mu.Lock()
	d.calls = d.calls[:0]
	d.mu.Unlock()
}

// PushError queues an error code returned by the next GetError calls.
func (d *Driver) PushError(code uint32) {
	d.mu.Lock()
	d.errors = append(d.errors, code)
	d.mu.Unlock()
}

// IsEnabled reports the simulated state of a capability.
func (d *Driver) IsEnabled(capability uint32) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled[capability]
}

// CurrentProgram returns the program last passed to UseProgram.
func (d *Driver) CurrentProgram() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Live returns the number of shaders, programs and vertex arrays that
// were created and not deleted.
func (d *Driver) Live() (shaders, programs, arrays int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.shaders), len(d.programs), len(d.arrays)
}

// ProcAddress returns a distinct non-nil pointer for every symbol the
// configuration does not mark missing.
func (d *Driver) ProcAddress(name string) unsafe.Pointer {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, gone := d.missing[name]; gone || name == "" {
		return nil
	}
	if d.cfg.Symbols != nil && !slices.Contains(d.cfg.Symbols, name) {
		return nil
	}
	p, ok := d.symbols[name]
	if !ok {
		p = new(byte)
		d.symbols[name] = p
	}
	return unsafe.Pointer(p)
}

func (d *Driver) GetString(name uint32) string {
	switch name {
	case glVendor:
		return d.cfg.Vendor
	case glRenderer:
		return d.cfg.Renderer
	case glVersion:
		return d.cfg.Version
	case glShadingLanguageVersion:
		return d.cfg.GLSLVersion
	case glExtensions:
		return d.cfg.extensionString()
	}
	return ""
}

func (d *Driver) GetStringi(name, index uint32) string {
	if name != glExtensions || int(index) >= len(d.cfg.Extensions) {
		return ""
	}
	return d.cfg.Extensions[index]
}

func (d *Driver) GetInteger(pname uint32) int32 {
	if pname == glNumExtensions {
		return int32(len(d.cfg.Extensions))
	}
	return d.cfg.Integers[pname]
}

func (d *Driver) GetError() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.errors) == 0 {
		return 0
	}
	code := d.errors[0]
	d.errors = d.errors[1:]
	return code
}

func (d *Driver) Enable(capability uint32) {
	d.record("Enable", capability)
	d.mu.Lock()
	d.enabled[capability] = true
	d.mu.Unlock()
}

func (d *Driver) Disable(capability uint32) {
	d.record("Disable", capability)
	d.mu.Lock()
	d.enabled[capability] = false
	d.mu.Unlock()
}

func (d *Driver) ActiveTexture(texture uint32) { d.record("ActiveTexture", texture) }

func (d *Driver) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	d.record("BlendFuncSeparate", srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (d *Driver) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	d.record("BlendEquationSeparate", modeRGB, modeAlpha)
}

func (d *Driver) BlendColor(r, g, b, a float32)       { d.record("BlendColor", r, g, b, a) }
func (d *Driver) DepthFunc(fn uint32)                 { d.record("DepthFunc", fn) }
func (d *Driver) DepthMask(write bool)                { d.record("DepthMask", write) }
func (d *Driver) DepthRange(near, far float64)        { d.record("DepthRange", near, far) }
func (d *Driver) CullFace(mode uint32)                { d.record("CullFace", mode) }
func (d *Driver) FrontFace(mode uint32)               { d.record("FrontFace", mode) }
func (d *Driver) ColorMask(r, g, b, a bool)           { d.record("ColorMask", r, g, b, a) }
func (d *Driver) PolygonOffset(factor, units float32) { d.record("PolygonOffset", factor, units) }
func (d *Driver) Fogi(pname uint32, param int32)      { d.record("Fogi", pname, param) }
func (d *Driver) Fogf(pname uint32, param float32)    { d.record("Fogf", pname, param) }

func (d *Driver) Fogfv(pname uint32, params []float32) {
	d.record("Fogfv", pname, slices.Clone(params))
}

func (d *Driver) BindTexture(target, texture uint32) { d.record("BindTexture", target, texture) }

func (d *Driver) TexParameteri(target, pname uint32, param int32) {
	d.record("TexParameteri", target, pname, param)
}

func (d *Driver) nextName() uint32 {
	d.next++
	return d.next
}

func (d *Driver) CreateShader(stage uint32) uint32 {
	d.mu.Lock()
	id := d.nextName()
	d.shaders[id] = &shader{stage: stage}
	d.mu.Unlock()
	d.record("CreateShader", stage)
	return id
}

func (d *Driver) ShaderSource(id uint32, source string) {
	d.record("ShaderSource", id)
	d.mu.Lock()
	defer d.mu.Unlock()
	if sh := d.shaders[id]; sh != nil {
		sh.source = source
		sh.binary = nil
	}
}

func (d *Driver) ShaderBinary(id, format uint32, binary []byte) {
	d.record("ShaderBinary", id, format, len(binary))
	d.mu.Lock()
	defer d.mu.Unlock()
	if sh := d.shaders[id]; sh != nil {
		sh.binary = slices.Clone(binary)
		sh.source = ""
	}
}

// SpecializeShader accepts any non-empty binary whose length is a whole
// number of SPIR-V words.
func (d *Driver) SpecializeShader(id uint32, entryPoint string) {
	d.record("SpecializeShader", id, entryPoint)
	d.mu.Lock()
	defer d.mu.Unlock()
	sh := d.shaders[id]
	if sh == nil {
		return
	}
	sh.compiled = len(sh.binary) > 0 && len(sh.binary)%4 == 0 && entryPoint != ""
	if !sh.compiled {
		sh.log = "invalid SPIR-V module"
	}
}

// CompileShader fails sources that contain Config.CompileError.
func (d *Driver) CompileShader(id uint32) {
	d.record("CompileShader", id)
	d.mu.Lock()
	defer d.mu.Unlock()
	sh := d.shaders[id]
	if sh == nil {
		return
	}
	switch {
	case sh.source == "":
		sh.compiled, sh.log = false, "empty shader source"
	case d.cfg.CompileError != "" && strings.Contains(sh.source, d.cfg.CompileError):
		sh.compiled, sh.log = false, "0:1: error: "+d.cfg.CompileError+" directive"
	default:
		sh.compiled, sh.log = true, ""
	}
}

func (d *Driver) GetShaderi(id, pname uint32) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	sh := d.shaders[id]
	if sh == nil {
		return 0
	}
	switch pname {
	case glCompileStatus:
		if sh.compiled {
			return 1
		}
	case glInfoLogLength:
		return int32(len(sh.log))
	}
	return 0
}

func (d *Driver) ShaderInfoLog(id uint32) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if sh := d.shaders[id]; sh != nil {
		return sh.log
	}
	return ""
}

func (d *Driver) DeleteShader(id uint32) {
	d.record("DeleteShader", id)
	d.mu.Lock()
	delete(d.shaders, id)
	d.mu.Unlock()
}

func (d *Driver) CreateProgram() uint32 {
	d.mu.Lock()
	id := d.nextName()
	d.programs[id] = &program{uniforms: make(map[string]int32), attribs: make(map[string]int32)}
	d.mu.Unlock()
	d.record("CreateProgram")
	return id
}

func (d *Driver) AttachShader(prog, sh uint32) {
	d.record("AttachShader", prog, sh)
	d.mu.Lock()
	defer d.mu.Unlock()
	if p := d.programs[prog]; p != nil {
		p.shaders = append(p.shaders, sh)
	}
}

// LinkProgram succeeds when at least one shader is attached and every
// attached shader that still exists compiled.
func (d *Driver) LinkProgram(prog uint32) {
	d.record("LinkProgram", prog)
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.programs[prog]
	if p == nil {
		return
	}
	p.linked, p.log = true, ""
	if len(p.shaders) == 0 {
		p.linked, p.log = false, "no shaders attached"
	}
	var src strings.Builder
	for _, id := range p.shaders {
		sh := d.shaders[id]
		if sh == nil {
			continue
		}
		if !sh.compiled {
			p.linked, p.log = false, fmt.Sprintf("shader %d not compiled", id)
		}
		src.WriteString(sh.source)
	}
	p.source = src.String()
}

func (d *Driver) GetProgrami(prog, pname uint32) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.programs[prog]
	if p == nil {
		return 0
	}
	switch pname {
	case glLinkStatus:
		if p.linked {
			return 1
		}
	case glInfoLogLength:
		return int32(len(p.log))
	}
	return 0
}

func (d *Driver) ProgramInfoLog(prog uint32) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p := d.programs[prog]; p != nil {
		return p.log
	}
	return ""
}

func (d *Driver) DeleteProgram(prog uint32) {
	d.record("DeleteProgram", prog)
	d.mu.Lock()
	delete(d.programs, prog)
	if d.current == prog {
		d.current = 0
	}
	d.mu.Unlock()
}

func (d *Driver) UseProgram(prog uint32) {
	d.record("UseProgram", prog)
	d.mu.Lock()
	d.current = prog
	d.mu.Unlock()
}

// GetUniformLocation hands out locations in first-query order. Unknown
// or unlinked programs report -1. A program whose GLSL sources declare
// uniforms only reports names that appear in them.
func (d *Driver) GetUniformLocation(prog uint32, name string) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.programs[prog]
	if p == nil || !p.linked || name == "" {
		return -1
	}
	if strings.Contains(p.source, "uniform ") && !strings.Contains(p.source, name) {
		return -1
	}
	loc, ok := p.uniforms[name]
	if !ok {
		loc = int32(len(p.uniforms))
		p.uniforms[name] = loc
	}
	return loc
}

func (d *Driver) GetAttribLocation(prog uint32, name string) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.programs[prog]
	if p == nil || !p.linked || name == "" {
		return -1
	}
	loc, ok := p.attribs[name]
	if !ok {
		loc = int32(len(p.attribs))
		p.attribs[name] = loc
	}
	return loc
}

func (d *Driver) Uniformiv(location int32, components int, values []int32) {
	d.record("Uniformiv", location, components, slices.Clone(values))
}

func (d *Driver) Uniformfv(location int32, components int, values []float32) {
	d.record("Uniformfv", location, components, slices.Clone(values))
}

func (d *Driver) UniformMatrix3fv(location int32, values []float32) {
	d.record("UniformMatrix3fv", location, slices.Clone(values))
}

func (d *Driver) UniformMatrix4fv(location int32, values []float32) {
	d.record("UniformMatrix4fv", location, slices.Clone(values))
}

func (d *Driver) MatrixMode(mode uint32) { d.record("MatrixMode", mode) }

func (d *Driver) LoadMatrixf(m *[16]float32) {
	d.record("LoadMatrixf", *m)
}

func (d *Driver) BindBuffer(target, buffer uint32) { d.record("BindBuffer", target, buffer) }

func (d *Driver) GenVertexArray() uint32 {
	d.mu.Lock()
	id := d.nextName()
	d.arrays[id] = true
	d.mu.Unlock()
	d.record("GenVertexArray")
	return id
}

func (d *Driver) DeleteVertexArray(array uint32) {
	d.record("DeleteVertexArray", array)
	d.mu.Lock()
	delete(d.arrays, array)
	d.mu.Unlock()
}

func (d *Driver) BindVertexArray(array uint32)          { d.record("BindVertexArray", array) }
func (d *Driver) EnableVertexAttribArray(i uint32)      { d.record("EnableVertexAttribArray", i) }
func (d *Driver) DisableVertexAttribArray(i uint32)     { d.record("DisableVertexAttribArray", i) }
func (d *Driver) VertexAttribDivisor(i, divisor uint32) { d.record("VertexAttribDivisor", i, divisor) }

func (d *Driver) VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride int32, offset uintptr) {
	d.record("VertexAttribPointer", index, size, typ, normalized, stride, offset)
}

func (d *Driver) DrawBuffer(buf uint32) { d.record("DrawBuffer", buf) }
func (d *Driver) ReadBuffer(buf uint32) { d.record("ReadBuffer", buf) }

func (d *Driver) ObjectLabel(identifier, name uint32, label string) {
	d.record("ObjectLabel", identifier, name, label)
}
