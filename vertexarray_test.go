package glstate

import (
	"testing"

	"github.com/gogpu/glstate/backend/record"
)

func TestVertexArrayStateObject(t *testing.T) {
	d := record.New(record.Core33())
	ext := NewExtensions(0, d, nil)
	v := NewVertexArrayState(d, ext)
	v.SetLabel("global")

	if !v.Generate() {
		t.Fatal("Generate() = false on a context with vertex array objects")
	}
	vao := v.VertexArrayObject()
	if vao == 0 {
		t.Fatal("no vertex array object")
	}
	if !v.Generate() || v.VertexArrayObject() != vao {
		t.Error("second Generate() allocated again")
	}
	if got := d.Count("GenVertexArray"); got != 1 {
		t.Errorf("GenVertexArray calls = %d, want 1", got)
	}

	v.Bind()
	v.Unbind()
	binds := d.CallsNamed("BindVertexArray")
	if len(binds) != 2 || binds[0].Args[0] != vao || binds[1].Args[0] != uint32(0) {
		t.Errorf("BindVertexArray calls = %v", binds)
	}

	v.Release()
	if v.VertexArrayObject() != 0 {
		t.Error("object kept after Release")
	}
	if got := d.Count("DeleteVertexArray"); got != 1 {
		t.Errorf("DeleteVertexArray calls = %d, want 1", got)
	}
}

func TestVertexArrayStateWithoutObjects(t *testing.T) {
	d := record.New(record.Legacy14())
	v := NewVertexArrayState(d, NewExtensions(0, d, nil))
	if v.Generate() {
		t.Error("Generate() = true without vertex array object support")
	}
	v.Bind()
	v.Release()
	if d.Count("BindVertexArray")+d.Count("DeleteVertexArray") != 0 {
		t.Error("vertex array calls issued without support")
	}
	if v.SetVertexAttribDivisor(0, 1) {
		t.Error("SetVertexAttribDivisor() = true without instanced arrays")
	}
}

func TestVertexAttribArrays(t *testing.T) {
	d := record.New(record.Core33())
	v := NewVertexArrayState(d, NewExtensions(0, d, nil))

	v.EnableVertexAttribArray(0)
	v.EnableVertexAttribArray(0)
	v.SetVertexAttribArray(1, 3, GLFloat, false, 12, 0)
	if got := d.Count("EnableVertexAttribArray"); got != 2 {
		t.Errorf("EnableVertexAttribArray calls = %d, want 2", got)
	}
	if got := d.Count("VertexAttribPointer"); got != 1 {
		t.Errorf("VertexAttribPointer calls = %d, want 1", got)
	}
	if !v.IsVertexAttribArrayEnabled(1) || v.IsVertexAttribArrayEnabled(2) {
		t.Error("IsVertexAttribArrayEnabled() wrong")
	}
	if v.IsVertexAttribArrayEnabled(1000) {
		t.Error("out of range index reported enabled")
	}

	v.DisableVertexAttribArray(2)
	if got := d.Count("DisableVertexAttribArray"); got != 0 {
		t.Errorf("disabling a disabled array issued %d calls", got)
	}

	if !v.SetVertexAttribDivisor(1, 1) || !v.SetVertexAttribDivisor(1, 1) {
		t.Error("SetVertexAttribDivisor() = false with instanced arrays")
	}
	if got := d.Count("VertexAttribDivisor"); got != 1 {
		t.Errorf("VertexAttribDivisor calls = %d, want 1", got)
	}

	// Index beyond the queried limit grows the table.
	v.EnableVertexAttribArray(40)
	if !v.IsVertexAttribArrayEnabled(40) {
		t.Error("array 40 not tracked")
	}
}

func TestLazyDisablingOfVertexAttributes(t *testing.T) {
	d := record.New(record.Core33())
	v := NewVertexArrayState(d, NewExtensions(0, d, nil))
	v.EnableVertexAttribArray(0)
	v.EnableVertexAttribArray(1)
	v.EnableVertexAttribArray(2)
	d.Reset()

	v.LazyDisablingOfVertexAttributes()
	v.EnableVertexAttribArray(0)
	v.EnableVertexAttribArray(2)
	v.ApplyDisablingOfVertexAttributes()

	calls := d.Calls()
	if len(calls) != 1 || calls[0].Name != "DisableVertexAttribArray" || calls[0].Args[0] != uint32(1) {
		t.Errorf("calls = %v, want a single DisableVertexAttribArray(1)", calls)
	}
	if v.IsVertexAttribArrayEnabled(1) {
		t.Error("array 1 still enabled")
	}
}

func TestBufferBindings(t *testing.T) {
	d := record.New(record.Core33())
	v := NewVertexArrayState(d, NewExtensions(0, d, nil))
	v.BindVertexBufferObject(4)
	v.BindVertexBufferObject(4)
	v.BindElementBufferObject(5)
	v.UnbindVertexBufferObject()
	v.UnbindElementBufferObject()
	v.UnbindElementBufferObject()
	if got := d.Count("BindBuffer"); got != 4 {
		t.Errorf("BindBuffer calls = %d, want 4", got)
	}

	v.Dirty()
	v.BindVertexBufferObject(0)
	if got := d.Count("BindBuffer"); got != 5 {
		t.Errorf("BindBuffer calls after Dirty = %d, want 5", got)
	}
}

func TestStateVertexArrayState(t *testing.T) {
	s, d := newTestState(t, record.Core33(), WithVertexArrayObject(true))
	global := s.VertexArrayState()
	if global.VertexArrayObject() == 0 {
		t.Fatal("WithVertexArrayObject did not allocate an object")
	}

	other := NewVertexArrayState(d, s.Extensions())
	other.Generate()
	d.Reset()
	s.SetVertexArrayState(other)
	s.SetVertexArrayState(other)
	if got := d.Count("BindVertexArray"); got != 1 {
		t.Errorf("BindVertexArray calls = %d, want 1", got)
	}
	if s.VertexArrayState() != other {
		t.Error("vertex array state not switched")
	}

	other.EnableVertexAttribArray(3)
	s.DirtyAllVertexArrays()
	if other.IsVertexAttribArrayEnabled(3) {
		t.Error("DirtyAllVertexArrays kept the enabled arrays")
	}
}
