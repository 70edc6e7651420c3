// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build gl

package gogl

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.6-compatibility/gl"

	"github.com/gogpu/glstate"
)

var _ glstate.Driver = (*Driver)(nil)

// Driver issues GL calls through go-gl. The bindings are process global,
// so every Driver talks to the context current on the calling thread.
type Driver struct {
	procAddress func(string) unsafe.Pointer
}

// NewDriver loads the GL entry points with procAddress, which must return
// the address of a GL symbol for the current context, and returns a
// Driver resolving optional symbols through the same function.
func NewDriver(procAddress func(string) unsafe.Pointer) (*Driver, error) {
	if err := gl.InitWithProcAddrFunc(procAddress); err != nil {
		return nil, err
	}
	return &Driver{procAddress: procAddress}, nil
}

func glStr(s string) *uint8 { return gl.Str(s + "\x00") }

func (d *Driver) ProcAddress(name string) unsafe.Pointer {
	if name == "" {
		return nil
	}
	return d.procAddress(name)
}

func (d *Driver) GetString(name uint32) string {
	if p := gl.GetString(name); p != nil {
		return gl.GoStr(p)
	}
	return ""
}

func (d *Driver) GetStringi(name, index uint32) string {
	if p := gl.GetStringi(name, index); p != nil {
		return gl.GoStr(p)
	}
	return ""
}

func (d *Driver) GetInteger(pname uint32) int32 {
	var v int32
	gl.GetIntegerv(pname, &v)
	return v
}

func (d *Driver) GetError() uint32 { return gl.GetError() }

func (d *Driver) Enable(capability uint32)  { gl.Enable(capability) }
func (d *Driver) Disable(capability uint32) { gl.Disable(capability) }
func (d *Driver) ActiveTexture(t uint32)    { gl.ActiveTexture(t) }

func (d *Driver) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	if srcRGB == srcAlpha && dstRGB == dstAlpha {
		gl.BlendFunc(srcRGB, dstRGB)
		return
	}
	gl.BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (d *Driver) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	if modeRGB == modeAlpha {
		gl.BlendEquation(modeRGB)
		return
	}
	gl.BlendEquationSeparate(modeRGB, modeAlpha)
}

func (d *Driver) BlendColor(r, g, b, a float32)       { gl.BlendColor(r, g, b, a) }
func (d *Driver) DepthFunc(fn uint32)                 { gl.DepthFunc(fn) }
func (d *Driver) DepthMask(write bool)                { gl.DepthMask(write) }
func (d *Driver) DepthRange(near, far float64)        { gl.DepthRange(near, far) }
func (d *Driver) CullFace(mode uint32)                { gl.CullFace(mode) }
func (d *Driver) FrontFace(mode uint32)               { gl.FrontFace(mode) }
func (d *Driver) ColorMask(r, g, b, a bool)           { gl.ColorMask(r, g, b, a) }
func (d *Driver) PolygonOffset(factor, units float32) { gl.PolygonOffset(factor, units) }
func (d *Driver) Fogi(pname uint32, param int32)      { gl.Fogi(pname, param) }
func (d *Driver) Fogf(pname uint32, param float32)    { gl.Fogf(pname, param) }

func (d *Driver) Fogfv(pname uint32, params []float32) {
	if len(params) > 0 {
		gl.Fogfv(pname, &params[0])
	}
}

func (d *Driver) BindTexture(target, texture uint32) { gl.BindTexture(target, texture) }

func (d *Driver) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (d *Driver) CreateShader(stage uint32) uint32 { return gl.CreateShader(stage) }

func (d *Driver) ShaderSource(shader uint32, source string) {
	src, free := gl.Strs(source + "\x00")
	defer free()
	n := int32(len(source))
	gl.ShaderSource(shader, 1, src, &n)
}

func (d *Driver) ShaderBinary(shader, format uint32, binary []byte) {
	if len(binary) == 0 {
		return
	}
	gl.ShaderBinary(1, &shader, format, unsafe.Pointer(&binary[0]), int32(len(binary)))
}

func (d *Driver) SpecializeShader(shader uint32, entryPoint string) {
	gl.SpecializeShader(shader, glStr(entryPoint), 0, nil, nil)
}

func (d *Driver) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (d *Driver) GetShaderi(shader, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (d *Driver) ShaderInfoLog(shader uint32) string {
	var size int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &size)
	if size <= 0 {
		return ""
	}
	buf := make([]byte, size+1)
	var n int32
	gl.GetShaderInfoLog(shader, size, &n, &buf[0])
	return strings.TrimRight(string(buf[:n]), "\x00\n")
}

func (d *Driver) DeleteShader(shader uint32)          { gl.DeleteShader(shader) }
func (d *Driver) CreateProgram() uint32               { return gl.CreateProgram() }
func (d *Driver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (d *Driver) LinkProgram(program uint32)          { gl.LinkProgram(program) }

func (d *Driver) GetProgrami(program, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (d *Driver) ProgramInfoLog(program uint32) string {
	var size int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &size)
	if size <= 0 {
		return ""
	}
	buf := make([]byte, size+1)
	var n int32
	gl.GetProgramInfoLog(program, size, &n, &buf[0])
	return strings.TrimRight(string(buf[:n]), "\x00\n")
}

func (d *Driver) DeleteProgram(program uint32) { gl.DeleteProgram(program) }
func (d *Driver) UseProgram(program uint32)    { gl.UseProgram(program) }

func (d *Driver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, glStr(name))
}

func (d *Driver) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, glStr(name))
}

func (d *Driver) Uniformiv(location int32, components int, values []int32) {
	if len(values) == 0 || components <= 0 {
		return
	}
	count := int32(len(values) / components)
	switch components {
	case 1:
		gl.Uniform1iv(location, count, &values[0])
	case 2:
		gl.Uniform2iv(location, count, &values[0])
	case 3:
		gl.Uniform3iv(location, count, &values[0])
	case 4:
		gl.Uniform4iv(location, count, &values[0])
	}
}

func (d *Driver) Uniformfv(location int32, components int, values []float32) {
	if len(values) == 0 || components <= 0 {
		return
	}
	count := int32(len(values) / components)
	switch components {
	case 1:
		gl.Uniform1fv(location, count, &values[0])
	case 2:
		gl.Uniform2fv(location, count, &values[0])
	case 3:
		gl.Uniform3fv(location, count, &values[0])
	case 4:
		gl.Uniform4fv(location, count, &values[0])
	}
}

func (d *Driver) UniformMatrix3fv(location int32, values []float32) {
	if len(values) >= 9 {
		gl.UniformMatrix3fv(location, int32(len(values)/9), false, &values[0])
	}
}

func (d *Driver) UniformMatrix4fv(location int32, values []float32) {
	if len(values) >= 16 {
		gl.UniformMatrix4fv(location, int32(len(values)/16), false, &values[0])
	}
}

func (d *Driver) MatrixMode(mode uint32)     { gl.MatrixMode(mode) }
func (d *Driver) LoadMatrixf(m *[16]float32) { gl.LoadMatrixf(&m[0]) }

func (d *Driver) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (d *Driver) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (d *Driver) DeleteVertexArray(array uint32)        { gl.DeleteVertexArrays(1, &array) }
func (d *Driver) BindVertexArray(array uint32)          { gl.BindVertexArray(array) }
func (d *Driver) EnableVertexAttribArray(i uint32)      { gl.EnableVertexAttribArray(i) }
func (d *Driver) DisableVertexAttribArray(i uint32)     { gl.DisableVertexAttribArray(i) }
func (d *Driver) VertexAttribDivisor(i, divisor uint32) { gl.VertexAttribDivisor(i, divisor) }

func (d *Driver) VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, typ, normalized, stride, offset)
}

func (d *Driver) DrawBuffer(buf uint32) { gl.DrawBuffer(buf) }
func (d *Driver) ReadBuffer(buf uint32) { gl.ReadBuffer(buf) }

func (d *Driver) ObjectLabel(identifier, name uint32, label string) {
	gl.ObjectLabel(identifier, name, int32(len(label)), glStr(label))
}
