package glstate

// VertexArrayState tracks the vertex attribute arrays and buffer bindings
// of one vertex array object, or of the context's default arrays when no
// object is used, and skips redundant GL calls.
//
// Arrays enabled for one draw can be disabled lazily: the renderer calls
// LazyDisablingOfVertexAttributes before setting up the arrays of the next
// draw and ApplyDisablingOfVertexAttributes after, so that only arrays
// the next draw does not use get disabled.
type VertexArrayState struct {
	driver Driver
	ext    *Extensions

	vao   uint32
	label string

	attribs []vertexAttrib

	arrayBuffer        uint32
	elementBuffer      uint32
	arrayBufferValid   bool
	elementBufferValid bool
}

type vertexAttrib struct {
	enabled     bool
	lazyDisable bool
	divisor     uint32
}

// NewVertexArrayState creates a vertex array state for a context.
func NewVertexArrayState(d Driver, ext *Extensions) *VertexArrayState {
	n := max(ext.MaxVertexAttribs, 16)
	return &VertexArrayState{
		driver:  d,
		ext:     ext,
		attribs: make([]vertexAttrib, n),
	}
}

// Generate allocates a vertex array object if the context supports them.
// It reports whether an object is in use.
func (v *VertexArrayState) Generate() bool {
	if v.vao != 0 {
		return true
	}
	if !v.ext.IsVertexArrayObjectSupported {
		return false
	}
	v.vao = v.driver.GenVertexArray()
	if v.label != "" {
		v.ext.DebugObjectLabel(GLVertexArrayLabel, v.vao, v.label)
	}
	return v.vao != 0
}

// SetLabel sets the debug label of the vertex array object.
func (v *VertexArrayState) SetLabel(label string) {
	v.label = label
	if v.vao != 0 {
		v.ext.DebugObjectLabel(GLVertexArrayLabel, v.vao, label)
	}
}

// VertexArrayObject returns the GL name of the object, or 0.
func (v *VertexArrayState) VertexArrayObject() uint32 { return v.vao }

// Bind binds the vertex array object, if any.
func (v *VertexArrayState) Bind() {
	if v.vao != 0 {
		v.driver.BindVertexArray(v.vao)
	}
}

// Unbind binds the default vertex array.
func (v *VertexArrayState) Unbind() {
	if v.vao != 0 {
		v.driver.BindVertexArray(0)
	}
}

// Release deletes the vertex array object. The state becomes a plain
// default-array tracker.
func (v *VertexArrayState) Release() {
	if v.vao != 0 {
		v.driver.DeleteVertexArray(v.vao)
		v.vao = 0
	}
	v.Dirty()
}

// Dirty forgets every binding so the next calls reach the driver.
func (v *VertexArrayState) Dirty() {
	for i := range v.attribs {
		v.attribs[i] = vertexAttrib{}
	}
	v.arrayBufferValid = false
	v.elementBufferValid = false
}

func (v *VertexArrayState) attrib(index uint32) *vertexAttrib {
	for int(index) >= len(v.attribs) {
		v.attribs = append(v.attribs, vertexAttrib{})
	}
	return &v.attribs[index]
}

// EnableVertexAttribArray enables a vertex attribute array.
func (v *VertexArrayState) EnableVertexAttribArray(index uint32) {
	a := v.attrib(index)
	a.lazyDisable = false
	if a.enabled {
		return
	}
	a.enabled = true
	v.driver.EnableVertexAttribArray(index)
}

// DisableVertexAttribArray disables a vertex attribute array.
func (v *VertexArrayState) DisableVertexAttribArray(index uint32) {
	a := v.attrib(index)
	a.lazyDisable = false
	if !a.enabled {
		return
	}
	a.enabled = false
	v.driver.DisableVertexAttribArray(index)
}

// IsVertexAttribArrayEnabled reports whether an array is enabled.
func (v *VertexArrayState) IsVertexAttribArrayEnabled(index uint32) bool {
	return int(index) < len(v.attribs) && v.attribs[index].enabled
}

// SetVertexAttribArray enables an array and points it at offset in the
// bound array buffer.
func (v *VertexArrayState) SetVertexAttribArray(index uint32, size int32, typ uint32, normalized bool, stride int32, offset uintptr) {
	v.EnableVertexAttribArray(index)
	v.driver.VertexAttribPointer(index, size, typ, normalized, stride, offset)
}

// SetVertexAttribDivisor sets the instancing divisor of an array. It is a
// no-op returning false when instanced arrays are unsupported.
func (v *VertexArrayState) SetVertexAttribDivisor(index, divisor uint32) bool {
	if !v.ext.IsInstancedArraysSupported {
		return false
	}
	a := v.attrib(index)
	if a.divisor == divisor {
		return true
	}
	a.divisor = divisor
	v.driver.VertexAttribDivisor(index, divisor)
	return true
}

// LazyDisablingOfVertexAttributes marks every enabled array as a
// candidate for disabling.
func (v *VertexArrayState) LazyDisablingOfVertexAttributes() {
	for i := range v.attribs {
		if v.attribs[i].enabled {
			v.attribs[i].lazyDisable = true
		}
	}
}

// ApplyDisablingOfVertexAttributes disables the arrays still marked by
// LazyDisablingOfVertexAttributes.
func (v *VertexArrayState) ApplyDisablingOfVertexAttributes() {
	for i := range v.attribs {
		if v.attribs[i].lazyDisable {
			v.attribs[i].lazyDisable = false
			v.attribs[i].enabled = false
			v.driver.DisableVertexAttribArray(uint32(i))
		}
	}
}

// BindVertexBufferObject binds an array buffer.
func (v *VertexArrayState) BindVertexBufferObject(buffer uint32) {
	if v.arrayBufferValid && v.arrayBuffer == buffer {
		return
	}
	v.driver.BindBuffer(GLArrayBuffer, buffer)
	v.arrayBuffer, v.arrayBufferValid = buffer, true
}

// UnbindVertexBufferObject binds array buffer 0.
func (v *VertexArrayState) UnbindVertexBufferObject() { v.BindVertexBufferObject(0) }

// BindElementBufferObject binds an element array buffer. The element
// binding is part of the vertex array object.
func (v *VertexArrayState) BindElementBufferObject(buffer uint32) {
	if v.elementBufferValid && v.elementBuffer == buffer {
		return
	}
	v.driver.BindBuffer(GLElementArrayBuffer, buffer)
	v.elementBuffer, v.elementBufferValid = buffer, true
}

// UnbindElementBufferObject binds element array buffer 0.
func (v *VertexArrayState) UnbindElementBufferObject() { v.BindElementBufferObject(0) }
