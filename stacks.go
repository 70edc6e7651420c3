package glstate

import "github.com/gogpu/glstate/internal/sorted"

// ModeStack tracks one mode: its pushed values, the value last issued to
// GL and the fallback used when nothing is pushed.
type ModeStack struct {
	valid         bool
	changed       bool
	lastApplied   bool
	globalDefault bool
	values        []Value
}

func (ms *ModeStack) top() (Value, bool) {
	if len(ms.values) == 0 {
		return Off, false
	}
	return ms.values[len(ms.values)-1], true
}

// effective returns the value the mode should have: the top of the stack,
// or the global default when the stack is empty.
func (ms *ModeStack) effective() bool {
	if v, ok := ms.top(); ok {
		return v.Enabled()
	}
	return ms.globalDefault
}

func (ms *ModeStack) push(v Value) {
	if top, ok := ms.top(); ok && top.overrides(v) {
		v = top
	}
	ms.values = append(ms.values, v)
	ms.changed = true
}

func (ms *ModeStack) pop() {
	if n := len(ms.values); n > 0 {
		ms.values = ms.values[:n-1]
	}
	ms.changed = true
}

// AttributeStack tracks one attribute key. The last applied attribute is
// not owned: the state set that pushed it keeps it alive.
type AttributeStack struct {
	changed       bool
	lastApplied   Attribute
	lastComponent *ShaderComponent
	globalDefault Attribute
	entries       []AttributeValue
}

func (as *AttributeStack) top() (AttributeValue, bool) {
	if len(as.entries) == 0 {
		return AttributeValue{}, false
	}
	return as.entries[len(as.entries)-1], true
}

func (as *AttributeStack) push(av AttributeValue) {
	if top, ok := as.top(); ok && top.Value.overrides(av.Value) {
		av = top
	}
	as.entries = append(as.entries, av)
	as.changed = true
}

func (as *AttributeStack) pop() {
	if n := len(as.entries); n > 0 {
		as.entries[n-1] = AttributeValue{}
		as.entries = as.entries[:n-1]
	}
	as.changed = true
}

// UniformStack tracks one uniform name. Uniforms carry no dirty flag:
// they are handed to the bound program on every apply.
type UniformStack struct {
	entries []UniformValue
}

func (us *UniformStack) top() (UniformValue, bool) {
	if len(us.entries) == 0 {
		return UniformValue{}, false
	}
	return us.entries[len(us.entries)-1], true
}

func (us *UniformStack) push(uv UniformValue) {
	if top, ok := us.top(); ok && top.Value.overrides(uv.Value) {
		uv = top
	}
	us.entries = append(us.entries, uv)
}

func (us *UniformStack) pop() {
	if n := len(us.entries); n > 0 {
		us.entries[n-1] = UniformValue{}
		us.entries = us.entries[:n-1]
	}
}

// DefineStack tracks one shader define.
type DefineStack struct {
	changed bool
	entries []DefineValue
}

func (ds *DefineStack) top() (DefineValue, bool) {
	if len(ds.entries) == 0 {
		return DefineValue{}, false
	}
	return ds.entries[len(ds.entries)-1], true
}

// push reports whether the visible top changed.
func (ds *DefineStack) push(dv DefineValue) bool {
	top, ok := ds.top()
	switch {
	case !ok:
		ds.entries = append(ds.entries, dv)
	case top.Value.overrides(dv.Value):
		ds.entries = append(ds.entries, top)
		return false
	default:
		ds.entries = append(ds.entries, dv)
		if dv == top {
			return false
		}
	}
	ds.changed = true
	return true
}

// pop reports whether the visible top changed.
func (ds *DefineStack) pop() bool {
	n := len(ds.entries)
	if n == 0 {
		return false
	}
	changed := n < 2 || ds.entries[n-1] != ds.entries[n-2]
	ds.entries = ds.entries[:n-1]
	if changed {
		ds.changed = true
	}
	return changed
}

// defineMap aggregates the define stacks and the snapshot of defines
// currently visible to shaders.
type defineMap struct {
	stacks *sorted.Map[string, *DefineStack]
	// current holds the visible defines, those whose On bit is set.
	current *sorted.Map[string, DefineValue]
	// dirty is set when a push or pop changed a stack top since the
	// snapshot was built.
	dirty bool
	// transient is set when the snapshot includes defines of a state set
	// applied without being pushed.
	transient bool
	// changed reports whether the last rebuild altered the snapshot.
	changed bool
}

func newDefineMap() defineMap {
	return defineMap{
		stacks:  sorted.NewOrdered[string, *DefineStack](),
		current: sorted.NewOrdered[string, DefineValue](),
	}
}

// refresh rebuilds the snapshot from the stack tops.
func (dm *defineMap) refresh() {
	next := sorted.NewOrdered[string, DefineValue]()
	for name, ds := range dm.stacks.All() {
		ds.changed = false
		if top, ok := ds.top(); ok && top.Value.Enabled() {
			next.Set(name, top)
		}
	}
	dm.replace(next)
	dm.transient = false
}

func (dm *defineMap) replace(next *sorted.Map[string, DefineValue]) {
	dm.changed = !sameDefines(dm.current, next)
	dm.current = next
	dm.dirty = false
}

func sameDefines(a, b *sorted.Map[string, DefineValue]) bool {
	x, y := a.Entries(), b.Entries()
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i].Key != y[i].Key || x[i].Value.Text != y[i].Value.Text {
			return false
		}
	}
	return true
}
