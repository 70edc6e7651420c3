package glstate

import "fmt"

// AttributeType identifies a class of state attribute.
type AttributeType uint32

// Attribute types known to this package. Applications may define their
// own types starting at AttributeTypeUser.
const (
	AttributeTypeTexture AttributeType = iota
	AttributeTypePolygonOffset
	AttributeTypeFog
	AttributeTypeBlendFunc
	AttributeTypeBlendEquation
	AttributeTypeBlendColor
	AttributeTypeDepth
	AttributeTypeCullFace
	AttributeTypeFrontFace
	AttributeTypeColorMask
	AttributeTypeProgram
	AttributeTypeUser AttributeType = 1000
)

var attributeTypeNames = [...]string{
	AttributeTypeTexture:       "Texture",
	AttributeTypePolygonOffset: "PolygonOffset",
	AttributeTypeFog:           "Fog",
	AttributeTypeBlendFunc:     "BlendFunc",
	AttributeTypeBlendEquation: "BlendEquation",
	AttributeTypeBlendColor:    "BlendColor",
	AttributeTypeDepth:         "Depth",
	AttributeTypeCullFace:      "CullFace",
	AttributeTypeFrontFace:     "FrontFace",
	AttributeTypeColorMask:     "ColorMask",
	AttributeTypeProgram:       "Program",
}

// String returns the attribute type name.
func (t AttributeType) String() string {
	if int(t) < len(attributeTypeNames) && attributeTypeNames[t] != "" {
		return attributeTypeNames[t]
	}
	return fmt.Sprintf("AttributeType(%d)", uint32(t))
}

// AttributeKey identifies an attribute stack: the attribute type plus a
// member index for types that have several independent slots (for
// example clip planes or per-buffer blend state).
type AttributeKey struct {
	Type   AttributeType
	Member uint32
}

// Compare orders keys by type, then member. It returns a negative number
// when k sorts before o, zero when equal and a positive number otherwise.
func (k AttributeKey) Compare(o AttributeKey) int {
	switch {
	case k.Type < o.Type:
		return -1
	case k.Type > o.Type:
		return 1
	case k.Member < o.Member:
		return -1
	case k.Member > o.Member:
		return 1
	}
	return 0
}

func (k AttributeKey) String() string {
	return fmt.Sprintf("%s[%d]", k.Type, k.Member)
}

func compareAttributeKeys(a, b AttributeKey) int { return a.Compare(b) }

// Attribute is a structured piece of GL state applied as a unit.
//
// The state cache compares attributes by identity: two distinct values
// are always considered different even if their parameters match.
// Implementations must therefore be pointer types.
type Attribute interface {
	// Type returns the attribute class.
	Type() AttributeType
	// Member returns the slot index within the class.
	Member() uint32
	// IsTextureAttribute reports whether the attribute is bound per
	// texture unit.
	IsTextureAttribute() bool
	// Apply issues the GL calls for the attribute on the state's driver.
	Apply(s *State)
	// CloneType returns a new attribute of the same type with default
	// parameters. It is used as the fallback applied when a stack empties.
	CloneType() Attribute
	// Compare orders attributes of the same type by their parameters.
	Compare(o Attribute) int
	// ShaderComponent returns the shader snippet contributed by the
	// attribute when shader composition is enabled, or nil.
	ShaderComponent() *ShaderComponent
}

// ModeUser is implemented by attributes that imply GL modes, such as a
// blend function implying ModeBlend. StateSet.SetAttributeAndModes uses
// it to set both in one call.
type ModeUser interface {
	Modes() []Mode
}

// KeyOf returns the stack key of an attribute.
func KeyOf(a Attribute) AttributeKey {
	return AttributeKey{Type: a.Type(), Member: a.Member()}
}

// AttributeValue pairs an attribute with its override flags.
type AttributeValue struct {
	Attribute Attribute
	Value     Value
}

// UniformValue pairs a uniform with its override flags.
type UniformValue struct {
	Uniform *Uniform
	Value   Value
}

// DefineValue is the value of a shader define together with its flags.
// Only defines with the On bit set are visible to shaders.
type DefineValue struct {
	Text  string
	Value Value
}
