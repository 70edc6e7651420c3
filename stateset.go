package glstate

import (
	"cmp"

	"github.com/gogpu/glstate/internal/sorted"
)

// StateSet holds one level of scoped state: modes, attributes, per-texture
// unit modes and attributes, uniforms and shader defines. Entries are kept
// sorted by key so the state can merge them in a single linear pass.
//
// A StateSet must not be modified while it is pushed on a State.
type StateSet struct {
	name string

	modes             *sorted.Map[Mode, Value]
	attributes        *sorted.Map[AttributeKey, AttributeValue]
	textureModes      []*sorted.Map[Mode, Value]
	textureAttributes []*sorted.Map[AttributeKey, AttributeValue]
	uniforms          *sorted.Map[string, UniformValue]
	defines           *sorted.Map[string, DefineValue]
}

// NewStateSet creates an empty state set.
func NewStateSet(name string) *StateSet {
	return &StateSet{
		name:       name,
		modes:      sorted.New[Mode, Value](compareModes),
		attributes: sorted.New[AttributeKey, AttributeValue](compareAttributeKeys),
		uniforms:   sorted.NewOrdered[string, UniformValue](),
		defines:    sorted.NewOrdered[string, DefineValue](),
	}
}

// Name returns the debug name of the set.
func (ss *StateSet) Name() string { return ss.name }

// SetMode sets a mode. A value with the Inherit bit removes the mode.
func (ss *StateSet) SetMode(m Mode, v Value) {
	if v&Inherit != 0 {
		ss.modes.Delete(m)
		return
	}
	ss.modes.Set(m, v)
}

// RemoveMode removes a mode.
func (ss *StateSet) RemoveMode(m Mode) { ss.modes.Delete(m) }

// Mode returns the value of a mode.
func (ss *StateSet) Mode(m Mode) (Value, bool) { return ss.modes.Get(m) }

// SetAttribute sets an attribute. Texture attributes are routed to
// texture unit 0.
func (ss *StateSet) SetAttribute(a Attribute, v Value) {
	if a == nil {
		return
	}
	if a.IsTextureAttribute() {
		Logger().Debug("glstate: texture attribute set without unit, using unit 0",
			"set", ss.name, "attribute", KeyOf(a))
		ss.SetTextureAttribute(0, a, v)
		return
	}
	ss.attributes.Set(KeyOf(a), AttributeValue{Attribute: a, Value: v &^ On})
}

// SetAttributeAndModes sets an attribute and, if it implements ModeUser,
// the modes it implies using the On bit of v.
func (ss *StateSet) SetAttributeAndModes(a Attribute, v Value) {
	if a == nil {
		return
	}
	if a.IsTextureAttribute() {
		ss.SetTextureAttributeAndModes(0, a, v)
		return
	}
	ss.SetAttribute(a, v)
	if mu, ok := a.(ModeUser); ok {
		for _, m := range mu.Modes() {
			ss.SetMode(m, v)
		}
	}
}

// RemoveAttribute removes the attribute with the given key.
func (ss *StateSet) RemoveAttribute(t AttributeType, member uint32) {
	ss.attributes.Delete(AttributeKey{Type: t, Member: member})
}

// Attribute returns the attribute stored for a key.
func (ss *StateSet) Attribute(t AttributeType, member uint32) (AttributeValue, bool) {
	return ss.attributes.Get(AttributeKey{Type: t, Member: member})
}

func (ss *StateSet) textureModeMap(unit int) *sorted.Map[Mode, Value] {
	for len(ss.textureModes) <= unit {
		ss.textureModes = append(ss.textureModes, sorted.New[Mode, Value](compareModes))
	}
	return ss.textureModes[unit]
}

func (ss *StateSet) textureAttributeMap(unit int) *sorted.Map[AttributeKey, AttributeValue] {
	for len(ss.textureAttributes) <= unit {
		ss.textureAttributes = append(ss.textureAttributes, sorted.New[AttributeKey, AttributeValue](compareAttributeKeys))
	}
	return ss.textureAttributes[unit]
}

// SetTextureMode sets a mode on a texture unit.
func (ss *StateSet) SetTextureMode(unit int, m Mode, v Value) {
	if unit < 0 {
		return
	}
	if v&Inherit != 0 {
		ss.RemoveTextureMode(unit, m)
		return
	}
	ss.textureModeMap(unit).Set(m, v)
}

// RemoveTextureMode removes a mode from a texture unit.
func (ss *StateSet) RemoveTextureMode(unit int, m Mode) {
	if unit >= 0 && unit < len(ss.textureModes) {
		ss.textureModes[unit].Delete(m)
	}
}

// TextureMode returns the value of a mode on a texture unit.
func (ss *StateSet) TextureMode(unit int, m Mode) (Value, bool) {
	if unit < 0 || unit >= len(ss.textureModes) {
		return Off, false
	}
	return ss.textureModes[unit].Get(m)
}

// SetTextureAttribute sets an attribute on a texture unit.
func (ss *StateSet) SetTextureAttribute(unit int, a Attribute, v Value) {
	if a == nil || unit < 0 {
		return
	}
	ss.textureAttributeMap(unit).Set(KeyOf(a), AttributeValue{Attribute: a, Value: v &^ On})
}

// SetTextureAttributeAndModes sets a texture attribute and the modes it
// implies on the same unit.
func (ss *StateSet) SetTextureAttributeAndModes(unit int, a Attribute, v Value) {
	ss.SetTextureAttribute(unit, a, v)
	if mu, ok := a.(ModeUser); ok {
		for _, m := range mu.Modes() {
			ss.SetTextureMode(unit, m, v)
		}
	}
}

// RemoveTextureAttribute removes an attribute from a texture unit.
func (ss *StateSet) RemoveTextureAttribute(unit int, t AttributeType) {
	if unit >= 0 && unit < len(ss.textureAttributes) {
		ss.textureAttributes[unit].Delete(AttributeKey{Type: t})
	}
}

// TextureAttribute returns the attribute of a texture unit.
func (ss *StateSet) TextureAttribute(unit int, t AttributeType) (AttributeValue, bool) {
	if unit < 0 || unit >= len(ss.textureAttributes) {
		return AttributeValue{}, false
	}
	return ss.textureAttributes[unit].Get(AttributeKey{Type: t})
}

// TextureUnits returns the number of texture units the set touches.
func (ss *StateSet) TextureUnits() int {
	return max(len(ss.textureModes), len(ss.textureAttributes))
}

// AddUniform adds or replaces a uniform.
func (ss *StateSet) AddUniform(u *Uniform, v Value) {
	if u == nil {
		return
	}
	ss.uniforms.Set(u.Name(), UniformValue{Uniform: u, Value: v &^ On})
}

// RemoveUniform removes a uniform by name.
func (ss *StateSet) RemoveUniform(name string) { ss.uniforms.Delete(name) }

// Uniform returns a uniform by name.
func (ss *StateSet) Uniform(name string) (*Uniform, bool) {
	uv, ok := ss.uniforms.Get(name)
	return uv.Uniform, ok
}

// SetDefine sets a shader define. The On bit controls whether the define
// is visible to shaders.
func (ss *StateSet) SetDefine(name, text string, v Value) {
	ss.defines.Set(name, DefineValue{Text: text, Value: v})
}

// RemoveDefine removes a shader define.
func (ss *StateSet) RemoveDefine(name string) { ss.defines.Delete(name) }

// Define returns a shader define.
func (ss *StateSet) Define(name string) (DefineValue, bool) { return ss.defines.Get(name) }

// Clear removes every entry.
func (ss *StateSet) Clear() {
	ss.modes.Clear()
	ss.attributes.Clear()
	ss.textureModes = nil
	ss.textureAttributes = nil
	ss.uniforms.Clear()
	ss.defines.Clear()
}

// Empty reports whether the set holds no state.
func (ss *StateSet) Empty() bool {
	if ss.modes.Len() != 0 || ss.attributes.Len() != 0 || ss.uniforms.Len() != 0 || ss.defines.Len() != 0 {
		return false
	}
	for _, m := range ss.textureModes {
		if m.Len() != 0 {
			return false
		}
	}
	for _, m := range ss.textureAttributes {
		if m.Len() != 0 {
			return false
		}
	}
	return true
}

// Compare orders two state sets by content. It is used to sort render
// bins so that sets with equal state end up next to each other.
func (ss *StateSet) Compare(o *StateSet) int {
	if c := cmp.Compare(ss.modes.Len(), o.modes.Len()); c != 0 {
		return c
	}
	if c := cmp.Compare(ss.attributes.Len(), o.attributes.Len()); c != 0 {
		return c
	}
	a, b := ss.modes.Entries(), o.modes.Entries()
	for i := range a {
		if c := compareModes(a[i].Key, b[i].Key); c != 0 {
			return c
		}
		if c := cmp.Compare(a[i].Value, b[i].Value); c != 0 {
			return c
		}
	}
	x, y := ss.attributes.Entries(), o.attributes.Entries()
	for i := range x {
		if c := x[i].Key.Compare(y[i].Key); c != 0 {
			return c
		}
		if x[i].Value.Attribute != y[i].Value.Attribute {
			if c := x[i].Value.Attribute.Compare(y[i].Value.Attribute); c != 0 {
				return c
			}
		}
		if c := cmp.Compare(x[i].Value.Value, y[i].Value.Value); c != 0 {
			return c
		}
	}
	return 0
}
