package glstate

import (
	"github.com/gogpu/glstate/internal/sorted"
)

// PushStateSet pushes ss on the state set stack and pushes each of its
// entries on the stack of the entry's key. No GL call is made; the new
// values take effect on the next Apply.
//
// If the top of a key's stack carries Override and the incoming entry is
// not Protected, a copy of the top is pushed instead of the entry.
func (s *State) PushStateSet(ss *StateSet) {
	s.stateSets = append(s.stateSets, ss)
	if ss == nil {
		return
	}
	s.pushModeList(s.modes, ss.modes.Entries())
	s.pushAttributeList(s.attributes, ss.attributes.Entries())
	for unit, m := range ss.textureModes {
		s.pushModeList(s.textureModeMap(unit), m.Entries())
	}
	for unit, m := range ss.textureAttributes {
		s.pushAttributeList(s.textureAttributeMap(unit), m.Entries())
	}
	s.pushUniformList(ss.uniforms.Entries())
	s.pushDefineList(ss.defines.Entries())
}

// PopStateSet pops the most recently pushed state set and the entries it
// pushed. Popping an empty stack is a no-op.
func (s *State) PopStateSet() {
	n := len(s.stateSets)
	if n == 0 {
		return
	}
	ss := s.stateSets[n-1]
	if ss != nil {
		s.popModeList(s.modes, ss.modes.Entries())
		s.popAttributeList(s.attributes, ss.attributes.Entries())
		for unit, m := range ss.textureModes {
			s.popModeList(s.textureModeMap(unit), m.Entries())
		}
		for unit, m := range ss.textureAttributes {
			s.popAttributeList(s.textureAttributeMap(unit), m.Entries())
		}
		s.popUniformList(ss.uniforms.Entries())
		s.popDefineList(ss.defines.Entries())
	}
	s.stateSets[n-1] = nil
	s.stateSets = s.stateSets[:n-1]
}

// PopAllStateSets empties the state set stack, resets the matrices to
// identity and forgets the bound program.
func (s *State) PopAllStateSets() {
	for len(s.stateSets) > 0 {
		s.PopStateSet()
	}
	s.ApplyProjectionMatrix(nil)
	s.ApplyModelViewMatrix(nil)
	s.lastAppliedProgram = nil
}

// PopStateSetStackToSize pops state sets until at most size remain.
func (s *State) PopStateSetStackToSize(size int) {
	for len(s.stateSets) > size {
		s.PopStateSet()
	}
}

// InsertStateSet inserts ss at position pos of the state set stack.
// Every state set above pos is popped and pushed again so that override
// resolution sees the new order. A pos beyond the top appends.
func (s *State) InsertStateSet(pos int, ss *StateSet) {
	pos = max(pos, 0)
	var above []*StateSet
	for len(s.stateSets) > pos {
		above = append(above, s.stateSets[len(s.stateSets)-1])
		s.PopStateSet()
	}
	s.PushStateSet(ss)
	for i := len(above) - 1; i >= 0; i-- {
		s.PushStateSet(above[i])
	}
}

// RemoveStateSet removes the state set at position pos, re-pushing the
// state sets above it. An out of range position is logged and ignored.
func (s *State) RemoveStateSet(pos int) {
	if pos < 0 || pos >= len(s.stateSets) {
		Logger().Warn("glstate: RemoveStateSet position out of range",
			"pos", pos, "size", len(s.stateSets))
		return
	}
	var above []*StateSet
	for len(s.stateSets)-1 > pos {
		above = append(above, s.stateSets[len(s.stateSets)-1])
		s.PopStateSet()
	}
	s.PopStateSet()
	for i := len(above) - 1; i >= 0; i-- {
		s.PushStateSet(above[i])
	}
}

// CaptureCurrentState fills ss with the top of every non-empty stack,
// that is the state a full Apply would converge to.
func (s *State) CaptureCurrentState(ss *StateSet) {
	ss.Clear()
	for m, ms := range s.modes.All() {
		if v, ok := ms.top(); ok {
			ss.modes.Set(m, v)
		}
	}
	for k, as := range s.attributes.All() {
		if av, ok := as.top(); ok {
			ss.attributes.Set(k, av)
		}
	}
	for unit, modes := range s.textureModes {
		for m, ms := range modes.All() {
			if v, ok := ms.top(); ok {
				ss.textureModeMap(unit).Set(m, v)
			}
		}
	}
	for unit, attrs := range s.textureAttributes {
		for k, as := range attrs.All() {
			if av, ok := as.top(); ok {
				ss.textureAttributeMap(unit).Set(k, av)
			}
		}
	}
	for name, us := range s.uniforms.All() {
		if uv, ok := us.top(); ok {
			ss.uniforms.Set(name, uv)
		}
	}
	for name, ds := range s.defines.stacks.All() {
		if dv, ok := ds.top(); ok {
			ss.defines.Set(name, dv)
		}
	}
}

// Reset empties every stack and forgets what was applied, so that the
// next Apply re-issues the global defaults. Global defaults are kept.
func (s *State) Reset() {
	resetModes := func(modes *sorted.Map[Mode, *ModeStack]) {
		for _, ms := range modes.All() {
			ms.values = nil
			ms.lastApplied = !ms.globalDefault
			ms.changed = true
		}
	}
	resetAttributes := func(attrs *sorted.Map[AttributeKey, *AttributeStack]) {
		for _, as := range attrs.All() {
			as.entries = nil
			as.lastApplied = nil
			as.lastComponent = nil
			as.changed = true
		}
	}
	resetModes(s.modes)
	resetAttributes(s.attributes)
	for _, m := range s.textureModes {
		resetModes(m)
	}
	for _, a := range s.textureAttributes {
		resetAttributes(a)
	}
	for _, us := range s.uniforms.All() {
		us.entries = nil
	}
	for _, ds := range s.defines.stacks.All() {
		ds.entries = nil
		ds.changed = true
	}
	s.defines.dirty = true

	clear(s.stateSets)
	s.stateSets = s.stateSets[:0]

	s.activeTextureUnit = -1
	s.lastAppliedProgram = nil
	s.shaderCompositionDirty = true
	s.compositionProgram = nil
	s.drawBufferValid = false
	s.readBufferValid = false
	s.matrices.reset()
	s.DirtyAllVertexArrays()
}

// DirtyAllModes marks every mode as unknown so the next Apply re-issues
// it, for use after external code touched GL directly.
func (s *State) DirtyAllModes() {
	dirty := func(modes *sorted.Map[Mode, *ModeStack]) {
		for _, ms := range modes.All() {
			ms.lastApplied = !ms.lastApplied
			ms.changed = true
		}
	}
	dirty(s.modes)
	for _, m := range s.textureModes {
		dirty(m)
	}
}

// DirtyAllAttributes forgets every applied attribute so the next Apply
// re-issues it.
func (s *State) DirtyAllAttributes() {
	dirty := func(attrs *sorted.Map[AttributeKey, *AttributeStack]) {
		for _, as := range attrs.All() {
			as.lastApplied = nil
			as.lastComponent = nil
			as.changed = true
		}
	}
	dirty(s.attributes)
	for _, a := range s.textureAttributes {
		dirty(a)
	}
	s.lastAppliedProgram = nil
	s.shaderCompositionDirty = true
}

// DirtyAllVertexArrays forgets the vertex array bindings.
func (s *State) DirtyAllVertexArrays() {
	if s.vas != nil {
		s.vas.Dirty()
	}
}

// HaveAppliedMode records that external code set mode m to v.
func (s *State) HaveAppliedMode(m Mode, v Value) {
	s.haveAppliedMode(noUnit, m, v)
}

// HaveAppliedModeUnknown records that external code changed mode m to an
// unknown value. The next Apply re-issues it.
func (s *State) HaveAppliedModeUnknown(m Mode) {
	ms := s.modeStackFor(noUnit, m)
	ms.lastApplied = !ms.lastApplied
	ms.changed = true
}

// HaveAppliedTextureMode records that external code set mode m to v on a
// texture unit.
func (s *State) HaveAppliedTextureMode(unit int, m Mode, v Value) {
	if unit < 0 {
		return
	}
	s.haveAppliedMode(unit, m, v)
}

func (s *State) haveAppliedMode(unit int, m Mode, v Value) {
	ms := s.modeStackFor(unit, m)
	ms.lastApplied = v.Enabled()
	ms.changed = true
}

// HaveAppliedAttribute records that external code applied a.
func (s *State) HaveAppliedAttribute(a Attribute) {
	as := s.attributeStackFor(noUnit, KeyOf(a))
	as.lastApplied = a
	as.changed = true
}

// HaveAppliedAttributeType records that external code changed the state
// of an attribute key to an unknown value.
func (s *State) HaveAppliedAttributeType(t AttributeType, member uint32) {
	s.haveAppliedAttributeType(noUnit, AttributeKey{Type: t, Member: member})
}

// HaveAppliedTextureAttribute records that external code applied a on a
// texture unit.
func (s *State) HaveAppliedTextureAttribute(unit int, a Attribute) {
	if unit < 0 {
		return
	}
	as := s.attributeStackFor(unit, KeyOf(a))
	as.lastApplied = a
	as.changed = true
}

// HaveAppliedTextureAttributeType records that external code changed an
// attribute of a texture unit to an unknown value.
func (s *State) HaveAppliedTextureAttributeType(unit int, t AttributeType) {
	if unit < 0 {
		return
	}
	s.haveAppliedAttributeType(unit, AttributeKey{Type: t})
}

func (s *State) haveAppliedAttributeType(unit int, k AttributeKey) {
	as := s.attributeStackFor(unit, k)
	as.lastApplied = nil
	as.changed = true
	if unit == noUnit && k.Type == AttributeTypeProgram {
		s.lastAppliedProgram = nil
	}
}

// LastAppliedMode returns the value last issued for mode m.
func (s *State) LastAppliedMode(m Mode) bool {
	ms, ok := s.modes.Get(m)
	return ok && ms.lastApplied
}

// LastAppliedTextureMode returns the value last issued for mode m on a
// texture unit.
func (s *State) LastAppliedTextureMode(unit int, m Mode) bool {
	if unit < 0 || unit >= len(s.textureModes) {
		return false
	}
	ms, ok := s.textureModes[unit].Get(m)
	return ok && ms.lastApplied
}

// LastAppliedAttribute returns the attribute last applied for a key.
func (s *State) LastAppliedAttribute(t AttributeType, member uint32) Attribute {
	as, ok := s.attributes.Get(AttributeKey{Type: t, Member: member})
	if !ok {
		return nil
	}
	return as.lastApplied
}

// LastAppliedTextureAttribute returns the attribute last applied on a
// texture unit.
func (s *State) LastAppliedTextureAttribute(unit int, t AttributeType) Attribute {
	if unit < 0 || unit >= len(s.textureAttributes) {
		return nil
	}
	as, ok := s.textureAttributes[unit].Get(AttributeKey{Type: t})
	if !ok {
		return nil
	}
	return as.lastApplied
}

// SetModeValidity marks a mode as usable or not in this context. Applying
// an invalid mode is a silent no-op.
func (s *State) SetModeValidity(m Mode, valid bool) {
	s.modeValidity[m] = valid
	s.modeStack(m).valid = valid
	for _, modes := range s.textureModes {
		if ms, ok := modes.Get(m); ok {
			ms.valid = valid
		}
	}
}

// ModeValidity reports whether a mode is usable in this context.
func (s *State) ModeValidity(m Mode) bool {
	valid, ok := s.modeValidity[m]
	return !ok || valid
}

// SetGlobalDefaultModeValue sets the value applied when the stack of m
// is empty.
func (s *State) SetGlobalDefaultModeValue(m Mode, enabled bool) {
	ms := s.modeStack(m)
	ms.globalDefault = enabled
	ms.changed = true
}

// GlobalDefaultModeValue returns the value applied when the stack of m is
// empty.
func (s *State) GlobalDefaultModeValue(m Mode) bool {
	ms, ok := s.modes.Get(m)
	return ok && ms.globalDefault
}

// SetGlobalDefaultTextureModeValue sets the value applied when the stack
// of m on a texture unit is empty.
func (s *State) SetGlobalDefaultTextureModeValue(unit int, m Mode, enabled bool) {
	if unit < 0 {
		return
	}
	ms := s.modeStackFor(unit, m)
	ms.globalDefault = enabled
	ms.changed = true
}

// GlobalDefaultTextureModeValue returns the value applied when the stack
// of m on a texture unit is empty.
func (s *State) GlobalDefaultTextureModeValue(unit int, m Mode) bool {
	if unit < 0 || unit >= len(s.textureModes) {
		return false
	}
	ms, ok := s.textureModes[unit].Get(m)
	return ok && ms.globalDefault
}

// SetGlobalDefaultAttribute sets the attribute applied when the stack of
// its key is empty. By default the first attribute applied for a key
// provides it through CloneType.
func (s *State) SetGlobalDefaultAttribute(a Attribute) {
	as := s.attributeStack(KeyOf(a))
	as.globalDefault = a
	as.changed = true
}

// GlobalDefaultAttribute returns the fallback attribute of a key.
func (s *State) GlobalDefaultAttribute(t AttributeType, member uint32) Attribute {
	as, ok := s.attributes.Get(AttributeKey{Type: t, Member: member})
	if !ok {
		return nil
	}
	return as.globalDefault
}

// SetGlobalDefaultTextureAttribute sets the fallback attribute of a
// texture unit.
func (s *State) SetGlobalDefaultTextureAttribute(unit int, a Attribute) {
	if unit < 0 {
		return
	}
	as := s.attributeStackFor(unit, KeyOf(a))
	as.globalDefault = a
	as.changed = true
}

// GlobalDefaultTextureAttribute returns the fallback attribute of a key
// on a texture unit.
func (s *State) GlobalDefaultTextureAttribute(unit int, t AttributeType) Attribute {
	if unit < 0 || unit >= len(s.textureAttributes) {
		return nil
	}
	as, ok := s.textureAttributes[unit].Get(AttributeKey{Type: t})
	if !ok {
		return nil
	}
	return as.globalDefault
}

func (s *State) pushModeList(modes *sorted.Map[Mode, *ModeStack], in []sorted.Entry[Mode, Value]) {
	sorted.Merge(modes, in,
		func(m Mode, v Value) *ModeStack {
			ms := s.newModeStack(m)
			ms.push(v)
			return ms
		},
		sorted.Visitor[Mode, *ModeStack, Value]{
			Both: func(_ Mode, ms *ModeStack, v Value) { ms.push(v) },
		})
}

func (s *State) pushAttributeList(attrs *sorted.Map[AttributeKey, *AttributeStack], in []sorted.Entry[AttributeKey, AttributeValue]) {
	sorted.Merge(attrs, in,
		func(_ AttributeKey, av AttributeValue) *AttributeStack {
			as := &AttributeStack{}
			as.push(av)
			return as
		},
		sorted.Visitor[AttributeKey, *AttributeStack, AttributeValue]{
			Both: func(_ AttributeKey, as *AttributeStack, av AttributeValue) { as.push(av) },
		})
}

func (s *State) pushUniformList(in []sorted.Entry[string, UniformValue]) {
	sorted.Merge(s.uniforms, in,
		func(_ string, uv UniformValue) *UniformStack {
			us := &UniformStack{}
			us.push(uv)
			return us
		},
		sorted.Visitor[string, *UniformStack, UniformValue]{
			Both: func(_ string, us *UniformStack, uv UniformValue) { us.push(uv) },
		})
}

func (s *State) pushDefineList(in []sorted.Entry[string, DefineValue]) {
	sorted.Merge(s.defines.stacks, in,
		func(_ string, dv DefineValue) *DefineStack {
			ds := &DefineStack{}
			ds.push(dv)
			s.defines.dirty = true
			return ds
		},
		sorted.Visitor[string, *DefineStack, DefineValue]{
			Both: func(_ string, ds *DefineStack, dv DefineValue) {
				if ds.push(dv) {
					s.defines.dirty = true
				}
			},
		})
}

func (s *State) popModeList(modes *sorted.Map[Mode, *ModeStack], in []sorted.Entry[Mode, Value]) {
	for _, e := range in {
		if ms, ok := modes.Get(e.Key); ok {
			ms.pop()
		}
	}
}

func (s *State) popAttributeList(attrs *sorted.Map[AttributeKey, *AttributeStack], in []sorted.Entry[AttributeKey, AttributeValue]) {
	for _, e := range in {
		if as, ok := attrs.Get(e.Key); ok {
			as.pop()
		}
	}
}

func (s *State) popUniformList(in []sorted.Entry[string, UniformValue]) {
	for _, e := range in {
		if us, ok := s.uniforms.Get(e.Key); ok {
			us.pop()
		}
	}
}

func (s *State) popDefineList(in []sorted.Entry[string, DefineValue]) {
	for _, e := range in {
		if ds, ok := s.defines.stacks.Get(e.Key); ok && ds.pop() {
			s.defines.dirty = true
		}
	}
}
