package glstate

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/mobile/exp/f32"
)

// UniformType describes the GLSL type of a uniform.
type UniformType uint8

// Supported uniform types.
const (
	UniformFloat UniformType = iota
	UniformVec2
	UniformVec3
	UniformVec4
	UniformInt
	UniformBool
	UniformSampler
	UniformMat3
	UniformMat4
)

var uniformTypeNames = [...]string{
	UniformFloat:   "float",
	UniformVec2:    "vec2",
	UniformVec3:    "vec3",
	UniformVec4:    "vec4",
	UniformInt:     "int",
	UniformBool:    "bool",
	UniformSampler: "sampler",
	UniformMat3:    "mat3",
	UniformMat4:    "mat4",
}

func (t UniformType) String() string {
	if int(t) < len(uniformTypeNames) {
		return uniformTypeNames[t]
	}
	return fmt.Sprintf("UniformType(%d)", uint8(t))
}

// Components returns the number of scalar components of the type.
func (t UniformType) Components() int {
	switch t {
	case UniformVec2:
		return 2
	case UniformVec3:
		return 3
	case UniformVec4:
		return 4
	case UniformMat3:
		return 9
	case UniformMat4:
		return 16
	default:
		return 1
	}
}

// IsInteger reports whether the type is sent with glUniform*i.
func (t UniformType) IsInteger() bool {
	return t == UniformInt || t == UniformBool || t == UniformSampler
}

// Uniform is a named shader uniform value.
//
// Every setter that changes the value bumps the modified count, which
// programs use to skip re-sending an unchanged uniform.
type Uniform struct {
	name     string
	typ      UniformType
	floats   []float32
	ints     []int32
	modified uint64
}

// NewUniform creates a zero-valued uniform of the given type.
func NewUniform(name string, typ UniformType) *Uniform {
	u := &Uniform{name: name, typ: typ}
	if typ.IsInteger() {
		u.ints = make([]int32, typ.Components())
	} else {
		u.floats = make([]float32, typ.Components())
	}
	return u
}

// NewFloatUniform creates a float uniform.
func NewFloatUniform(name string, v float32) *Uniform {
	u := NewUniform(name, UniformFloat)
	u.floats[0] = v
	return u
}

// NewVec3Uniform creates a vec3 uniform.
func NewVec3Uniform(name string, v mgl32.Vec3) *Uniform {
	u := NewUniform(name, UniformVec3)
	copy(u.floats, v[:])
	return u
}

// NewVec4Uniform creates a vec4 uniform.
func NewVec4Uniform(name string, v mgl32.Vec4) *Uniform {
	u := NewUniform(name, UniformVec4)
	copy(u.floats, v[:])
	return u
}

// NewIntUniform creates an int uniform.
func NewIntUniform(name string, v int32) *Uniform {
	u := NewUniform(name, UniformInt)
	u.ints[0] = v
	return u
}

// NewSamplerUniform creates a sampler uniform bound to a texture unit.
func NewSamplerUniform(name string, unit int32) *Uniform {
	u := NewUniform(name, UniformSampler)
	u.ints[0] = unit
	return u
}

// NewMat3Uniform creates a mat3 uniform.
func NewMat3Uniform(name string, m mgl32.Mat3) *Uniform {
	u := NewUniform(name, UniformMat3)
	copy(u.floats, m[:])
	return u
}

// NewMat4Uniform creates a mat4 uniform.
func NewMat4Uniform(name string, m mgl32.Mat4) *Uniform {
	u := NewUniform(name, UniformMat4)
	copy(u.floats, m[:])
	return u
}

// Name returns the uniform name.
func (u *Uniform) Name() string { return u.name }

// Type returns the uniform type.
func (u *Uniform) Type() UniformType { return u.typ }

// Floats returns the float payload. It is nil for integer types.
func (u *Uniform) Floats() []float32 { return u.floats }

// Ints returns the integer payload. It is nil for float types.
func (u *Uniform) Ints() []int32 { return u.ints }

// ModifiedCount returns the number of value changes since creation.
func (u *Uniform) ModifiedCount() uint64 { return u.modified }

// Dirty bumps the modified count without changing the value.
func (u *Uniform) Dirty() { u.modified++ }

// SetFloats replaces the float payload. It returns false if the type is
// an integer type or the length does not match.
func (u *Uniform) SetFloats(v ...float32) bool {
	if u.typ.IsInteger() || len(v) != len(u.floats) {
		return false
	}
	changed := false
	for i := range v {
		if u.floats[i] != v[i] {
			u.floats[i] = v[i]
			changed = true
		}
	}
	if changed {
		u.modified++
	}
	return true
}

// SetInts replaces the integer payload.
func (u *Uniform) SetInts(v ...int32) bool {
	if !u.typ.IsInteger() || len(v) != len(u.ints) {
		return false
	}
	changed := false
	for i := range v {
		if u.ints[i] != v[i] {
			u.ints[i] = v[i]
			changed = true
		}
	}
	if changed {
		u.modified++
	}
	return true
}

// SetFloat sets a float uniform.
func (u *Uniform) SetFloat(v float32) bool { return u.SetFloats(v) }

// SetInt sets an int, bool or sampler uniform.
func (u *Uniform) SetInt(v int32) bool { return u.SetInts(v) }

// SetVec3 sets a vec3 uniform.
func (u *Uniform) SetVec3(v mgl32.Vec3) bool { return u.SetFloats(v[:]...) }

// SetVec4 sets a vec4 uniform.
func (u *Uniform) SetVec4(v mgl32.Vec4) bool { return u.SetFloats(v[:]...) }

// SetMat3 sets a mat3 uniform.
func (u *Uniform) SetMat3(m mgl32.Mat3) bool { return u.SetFloats(m[:]...) }

// SetMat4 sets a mat4 uniform.
func (u *Uniform) SetMat4(m mgl32.Mat4) bool { return u.SetFloats(m[:]...) }

// Bytes returns the little-endian encoding of the payload as it would be
// uploaded to a uniform buffer.
func (u *Uniform) Bytes() []byte {
	if u.typ.IsInteger() {
		b := make([]byte, 0, 4*len(u.ints))
		for _, v := range u.ints {
			b = binary.LittleEndian.AppendUint32(b, uint32(v))
		}
		return b
	}
	return f32.Bytes(binary.LittleEndian, u.floats...)
}

// Equal reports whether two uniforms have the same name, type and value.
func (u *Uniform) Equal(o *Uniform) bool {
	if u == o {
		return true
	}
	if u == nil || o == nil {
		return false
	}
	return u.name == o.name && u.typ == o.typ && bytes.Equal(u.Bytes(), o.Bytes())
}

func (u *Uniform) String() string {
	if u.typ.IsInteger() {
		return fmt.Sprintf("%s %s = %v", u.typ, u.name, u.ints)
	}
	return fmt.Sprintf("%s %s = %v", u.typ, u.name, u.floats)
}
