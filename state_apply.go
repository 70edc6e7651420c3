package glstate

import (
	"cmp"

	"github.com/gogpu/glstate/internal/sorted"
)

// Apply converges the GL context to the top of every stack: modes,
// attributes and their texture unit variants, defines, the composed
// program if any, uniforms and matrix uniforms. Only keys marked changed
// since the previous apply are examined, and only values differing from
// what was last issued reach the driver.
func (s *State) Apply() {
	s.counters.applies.Add(1)
	s.compositionUniforms.Clear()

	for unit, modes := range s.textureModes {
		s.applyModeMap(unit, modes)
	}
	for unit, attrs := range s.textureAttributes {
		s.applyAttributeMap(unit, attrs)
	}

	s.applyModeMap(noUnit, s.modes)

	s.defines.changed = false
	if s.defines.dirty || s.defines.transient {
		s.defines.refresh()
	}

	previous := s.lastAppliedProgram
	s.applyAttributeMap(noUnit, s.attributes)
	s.reapplyProgramForDefines(previous)

	if s.shaderCompositionEnabled && (s.lastAppliedProgram == previous || s.lastAppliedProgram == nil) {
		s.applyShaderComposition()
	}

	s.applyUniformMap()
	s.flushCompositionUniforms()
	s.applyMatrixUniforms()
}

// ApplyStateSet applies the stacks merged with ss as if ss were pushed on
// top, without pushing it. The merge walks the tracked keys and the keys
// of ss in order, so ss must not be modified concurrently. Keys seen for
// the first time get a stack and stay marked changed so the next apply
// restores them.
//
// A nil ss is equivalent to Apply.
func (s *State) ApplyStateSet(ss *StateSet) {
	if ss == nil {
		s.Apply()
		return
	}
	s.counters.applies.Add(1)
	s.compositionUniforms.Clear()

	s.stateSets = append(s.stateSets, ss)
	defer func() {
		s.stateSets[len(s.stateSets)-1] = nil
		s.stateSets = s.stateSets[:len(s.stateSets)-1]
	}()

	units := max(len(ss.textureModes), len(s.textureModes))
	for unit := range units {
		if unit < len(ss.textureModes) {
			s.applyModeList(unit, s.textureModeMap(unit), ss.textureModes[unit].Entries())
		} else {
			s.applyModeMap(unit, s.textureModes[unit])
		}
	}
	units = max(len(ss.textureAttributes), len(s.textureAttributes))
	for unit := range units {
		if unit < len(ss.textureAttributes) {
			s.applyAttributeList(unit, s.textureAttributeMap(unit), ss.textureAttributes[unit].Entries())
		} else {
			s.applyAttributeMap(unit, s.textureAttributes[unit])
		}
	}

	previous := s.lastAppliedProgram

	s.applyModeList(noUnit, s.modes, ss.modes.Entries())
	s.applyDefineList(ss.defines.Entries())
	s.applyAttributeList(noUnit, s.attributes, ss.attributes.Entries())
	s.reapplyProgramForDefines(previous)

	if s.shaderCompositionEnabled && (s.lastAppliedProgram == previous || s.lastAppliedProgram == nil) {
		s.applyShaderComposition()
	}

	s.applyUniformList(ss.uniforms.Entries())
	s.flushCompositionUniforms()
	s.applyMatrixUniforms()
}

// ApplyMode applies a mode immediately and marks it changed so the next
// Apply restores the stacked value.
func (s *State) ApplyMode(m Mode, enabled bool) bool {
	ms := s.modeStack(m)
	ms.changed = true
	return s.applyMode(noUnit, m, enabled, ms)
}

// ApplyTextureMode applies a mode on a texture unit immediately.
func (s *State) ApplyTextureMode(unit int, m Mode, enabled bool) bool {
	if unit < 0 {
		return false
	}
	ms := s.modeStackFor(unit, m)
	ms.changed = true
	return s.applyMode(unit, m, enabled, ms)
}

// ApplyAttribute applies an attribute immediately and marks its key
// changed so the next Apply restores the stacked attribute.
func (s *State) ApplyAttribute(a Attribute) bool {
	as := s.attributeStack(KeyOf(a))
	as.changed = true
	return s.applyAttribute(noUnit, a, as)
}

// ApplyTextureAttribute applies an attribute on a texture unit
// immediately.
func (s *State) ApplyTextureAttribute(unit int, a Attribute) bool {
	if unit < 0 {
		return false
	}
	as := s.attributeStackFor(unit, KeyOf(a))
	as.changed = true
	return s.applyAttribute(unit, a, as)
}

// ApplyModeScoped applies a mode and returns a function restoring the
// value that was in effect before.
//
//	restore := s.ApplyModeScoped(glstate.ModeDepthTest, false)
//	defer restore()
func (s *State) ApplyModeScoped(m Mode, enabled bool) (restore func()) {
	previous := s.LastAppliedMode(m)
	s.ApplyMode(m, enabled)
	return func() { s.ApplyMode(m, previous) }
}

// ApplyTextureModeScoped is ApplyModeScoped for a texture unit. For a
// unit that cannot be selected nothing is applied and restore does nothing.
func (s *State) ApplyTextureModeScoped(unit int, m Mode, enabled bool) (restore func()) {
	if unit < 0 {
		return func() {}
	}
	previous := s.LastAppliedTextureMode(unit, m)
	s.ApplyTextureMode(unit, m, enabled)
	return func() { s.ApplyTextureMode(unit, m, previous) }
}

// SetActiveTextureUnit makes unit the active texture unit. It returns
// false if the unit cannot be selected. Unit 0 is always considered
// valid, even without multi-texturing.
func (s *State) SetActiveTextureUnit(unit int) bool {
	if unit < 0 {
		return false
	}
	if unit == s.activeTextureUnit {
		return true
	}
	if s.ext.ActiveTexture.Valid() && unit < s.maxTextureUnits() {
		s.driver.ActiveTexture(GLTexture0 + uint32(unit))
		s.activeTextureUnit = unit
		s.counters.textureUnitSwitches.Add(1)
		return true
	}
	return unit == 0
}

// ActiveTextureUnit returns the active texture unit, or -1 if unknown.
func (s *State) ActiveTextureUnit() int { return s.activeTextureUnit }

func (s *State) maxTextureUnits() int {
	return max(s.ext.MaxTextureUnits, s.ext.MaxTextureCoords)
}

func (s *State) applyMode(unit int, m Mode, enabled bool, ms *ModeStack) bool {
	if !ms.valid || ms.lastApplied == enabled {
		s.counters.modeSkips.Add(1)
		return false
	}
	if unit != noUnit && !s.SetActiveTextureUnit(unit) {
		return false
	}
	ms.lastApplied = enabled
	if enabled {
		s.driver.Enable(uint32(m))
	} else {
		s.driver.Disable(uint32(m))
	}
	s.counters.modeCalls.Add(1)
	if s.checkGLErrors == OncePerAttribute {
		s.checkGLErrorsFor("mode", m)
	}
	return true
}

func (s *State) applyAttribute(unit int, a Attribute, as *AttributeStack) bool {
	if as.lastApplied == a {
		s.counters.attributeSkips.Add(1)
		return false
	}
	if unit != noUnit && !s.SetActiveTextureUnit(unit) {
		return false
	}
	if as.globalDefault == nil {
		as.globalDefault = a.CloneType()
	}
	s.issueAttribute(a, as)
	return true
}

func (s *State) applyGlobalDefaultAttribute(unit int, as *AttributeStack) bool {
	if as.lastApplied == as.globalDefault {
		s.counters.attributeSkips.Add(1)
		return false
	}
	if as.globalDefault == nil {
		as.lastApplied = nil
		return true
	}
	if unit != noUnit && !s.SetActiveTextureUnit(unit) {
		return false
	}
	s.issueAttribute(as.globalDefault, as)
	return true
}

func (s *State) issueAttribute(a Attribute, as *AttributeStack) {
	as.lastApplied = a
	if c := a.ShaderComponent(); c != as.lastComponent {
		as.lastComponent = c
		s.shaderCompositionDirty = true
	}
	a.Apply(s)
	s.counters.attributeCalls.Add(1)
	if s.checkGLErrors == OncePerAttribute {
		s.checkGLErrorsFor("attribute", KeyOf(a))
	}
}

// applyModeMap applies the changed stacks of a mode map.
func (s *State) applyModeMap(unit int, modes *sorted.Map[Mode, *ModeStack]) {
	for m, ms := range modes.All() {
		if ms.changed {
			ms.changed = false
			s.applyMode(unit, m, ms.effective(), ms)
		}
	}
}

// applyModeList merges an incoming mode list against a mode map.
func (s *State) applyModeList(unit int, modes *sorted.Map[Mode, *ModeStack], in []sorted.Entry[Mode, Value]) {
	sorted.Merge(modes, in,
		func(m Mode, v Value) *ModeStack {
			ms := s.newModeStack(m)
			s.applyMode(unit, m, v.Enabled(), ms)
			ms.changed = true
			return ms
		},
		sorted.Visitor[Mode, *ModeStack, Value]{
			Left: func(m Mode, ms *ModeStack) {
				if ms.changed {
					ms.changed = false
					s.applyMode(unit, m, ms.effective(), ms)
				}
			},
			Both: func(m Mode, ms *ModeStack, v Value) {
				if top, ok := ms.top(); ok && top.overrides(v) {
					if ms.changed {
						ms.changed = false
						s.applyMode(unit, m, top.Enabled(), ms)
					}
					return
				}
				if s.applyMode(unit, m, v.Enabled(), ms) {
					ms.changed = true
				}
			},
		})
}

// applyAttributeMap applies the changed stacks of an attribute map.
func (s *State) applyAttributeMap(unit int, attrs *sorted.Map[AttributeKey, *AttributeStack]) {
	for _, as := range attrs.All() {
		if as.changed {
			as.changed = false
			s.applyAttributeTop(unit, as)
		}
	}
}

func (s *State) applyAttributeTop(unit int, as *AttributeStack) {
	if top, ok := as.top(); ok {
		s.applyAttribute(unit, top.Attribute, as)
	} else {
		s.applyGlobalDefaultAttribute(unit, as)
	}
}

// applyAttributeList merges an incoming attribute list against an
// attribute map.
func (s *State) applyAttributeList(unit int, attrs *sorted.Map[AttributeKey, *AttributeStack], in []sorted.Entry[AttributeKey, AttributeValue]) {
	sorted.Merge(attrs, in,
		func(_ AttributeKey, av AttributeValue) *AttributeStack {
			as := &AttributeStack{}
			s.applyAttribute(unit, av.Attribute, as)
			as.changed = true
			return as
		},
		sorted.Visitor[AttributeKey, *AttributeStack, AttributeValue]{
			Left: func(_ AttributeKey, as *AttributeStack) {
				if as.changed {
					as.changed = false
					s.applyAttributeTop(unit, as)
				}
			},
			Both: func(_ AttributeKey, as *AttributeStack, av AttributeValue) {
				if top, ok := as.top(); ok && top.Value.overrides(av.Value) {
					if as.changed {
						as.changed = false
						s.applyAttribute(unit, top.Attribute, as)
					}
					return
				}
				if s.applyAttribute(unit, av.Attribute, as) {
					as.changed = true
				}
			},
		})
}

func (s *State) applyUniform(u *Uniform) {
	s.lastAppliedProgram.ApplyUniform(u)
	s.counters.uniformCalls.Add(1)
}

// applyUniformMap hands the top of every uniform stack to the bound
// program.
func (s *State) applyUniformMap() {
	if s.lastAppliedProgram == nil {
		return
	}
	for _, us := range s.uniforms.All() {
		if uv, ok := us.top(); ok {
			s.applyUniform(uv.Uniform)
		}
	}
}

// applyUniformList merges an incoming uniform list against the uniform
// stacks and hands the winners to the bound program.
func (s *State) applyUniformList(in []sorted.Entry[string, UniformValue]) {
	if s.lastAppliedProgram == nil {
		return
	}
	sorted.Walk(s.uniforms.Entries(), in, cmp.Compare[string], sorted.Visitor[string, *UniformStack, UniformValue]{
		Left: func(_ string, us *UniformStack) {
			if uv, ok := us.top(); ok {
				s.applyUniform(uv.Uniform)
			}
		},
		Right: func(_ string, uv UniformValue) {
			s.applyUniform(uv.Uniform)
		},
		Both: func(_ string, us *UniformStack, uv UniformValue) {
			if top, ok := us.top(); ok && top.Value.overrides(uv.Value) {
				s.applyUniform(top.Uniform)
				return
			}
			s.applyUniform(uv.Uniform)
		},
	})
}

// applyDefineList rebuilds the define snapshot from the define stacks
// merged with an incoming define list.
func (s *State) applyDefineList(in []sorted.Entry[string, DefineValue]) {
	next := sorted.NewOrdered[string, DefineValue]()
	visible := func(name string, dv DefineValue) {
		if dv.Value.Enabled() {
			next.Set(name, dv)
		}
	}
	sorted.Walk(s.defines.stacks.Entries(), in, cmp.Compare[string], sorted.Visitor[string, *DefineStack, DefineValue]{
		Left: func(name string, ds *DefineStack) {
			if top, ok := ds.top(); ok {
				visible(name, top)
			}
		},
		Right: visible,
		Both: func(name string, ds *DefineStack, dv DefineValue) {
			if top, ok := ds.top(); ok && top.Value.overrides(dv.Value) {
				visible(name, top)
				return
			}
			visible(name, dv)
		},
	})
	for _, ds := range s.defines.stacks.All() {
		ds.changed = false
	}
	s.defines.replace(next)
	s.defines.transient = len(in) > 0
}

// reapplyProgramForDefines re-applies the bound program when the defines
// changed but no other program was applied, so that it can switch to the
// variant compiled for the new defines.
func (s *State) reapplyProgramForDefines(previous ProgramObject) {
	if previous == nil || s.lastAppliedProgram != previous || !s.defines.changed {
		return
	}
	if p := previous.Program(); p != nil {
		p.Apply(s)
	}
}

// applyShaderComposition binds the program composed from the shader
// components of the applied attributes.
func (s *State) applyShaderComposition() {
	if s.shaderCompositionDirty {
		if s.composer != nil {
			s.compositionComponents = s.compositionComponents[:0]
			for _, as := range s.attributes.All() {
				if as.lastComponent != nil {
					s.compositionComponents = append(s.compositionComponents, as.lastComponent)
				}
			}
			s.compositionProgram = s.composer.Program(s, s.compositionComponents)
		}
		s.shaderCompositionDirty = false
	}
	if s.compositionProgram != nil {
		s.applyAttribute(noUnit, s.compositionProgram, s.attributeStack(KeyOf(s.compositionProgram)))
	}
}

func (s *State) flushCompositionUniforms() {
	if s.lastAppliedProgram == nil || s.compositionUniforms.Len() == 0 {
		return
	}
	for _, u := range s.compositionUniforms.All() {
		s.applyUniform(u)
	}
}
