package attrib

import (
	"cmp"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glstate"
)

// CullFace selects the faces discarded when ModeCullFace is on.
// CullModeNone issues no call; disable ModeCullFace instead.
type CullFace struct {
	global
	Mode gputypes.CullMode
}

func NewCullFace(m gputypes.CullMode) *CullFace { return &CullFace{Mode: m} }

func (*CullFace) Type() glstate.AttributeType { return glstate.AttributeTypeCullFace }

// Modes implements glstate.ModeUser.
func (*CullFace) Modes() []glstate.Mode { return []glstate.Mode{glstate.ModeCullFace} }

func (c *CullFace) Apply(s *glstate.State) {
	if mode, ok := cullModeGL(c.Mode); ok {
		s.Driver().CullFace(mode)
	}
}

func (*CullFace) CloneType() glstate.Attribute { return NewCullFace(gputypes.CullModeBack) }

func (c *CullFace) Compare(o glstate.Attribute) int {
	if r, done := compareTypes(c, o); done {
		return r
	}
	return cmp.Compare(c.Mode, o.(*CullFace).Mode)
}

// FrontFace is the winding of front-facing polygons.
type FrontFace struct {
	global
	Winding gputypes.FrontFace
}

func NewFrontFace(w gputypes.FrontFace) *FrontFace { return &FrontFace{Winding: w} }

func (*FrontFace) Type() glstate.AttributeType { return glstate.AttributeTypeFrontFace }

func (f *FrontFace) Apply(s *glstate.State) { s.Driver().FrontFace(frontFaceGL(f.Winding)) }

func (*FrontFace) CloneType() glstate.Attribute { return NewFrontFace(gputypes.FrontFaceCCW) }

func (f *FrontFace) Compare(o glstate.Attribute) int {
	if r, done := compareTypes(f, o); done {
		return r
	}
	return cmp.Compare(f.Winding, o.(*FrontFace).Winding)
}

// ColorMask selects the color channels written.
type ColorMask struct {
	global
	Mask gputypes.ColorWriteMask
}

func NewColorMask(m gputypes.ColorWriteMask) *ColorMask { return &ColorMask{Mask: m} }

func (*ColorMask) Type() glstate.AttributeType { return glstate.AttributeTypeColorMask }

func (c *ColorMask) Apply(s *glstate.State) {
	s.Driver().ColorMask(
		c.Mask&gputypes.ColorWriteMaskRed != 0,
		c.Mask&gputypes.ColorWriteMaskGreen != 0,
		c.Mask&gputypes.ColorWriteMaskBlue != 0,
		c.Mask&gputypes.ColorWriteMaskAlpha != 0)
}

func (*ColorMask) CloneType() glstate.Attribute { return NewColorMask(gputypes.ColorWriteMaskAll) }

func (c *ColorMask) Compare(o glstate.Attribute) int {
	if r, done := compareTypes(c, o); done {
		return r
	}
	return cmp.Compare(c.Mask, o.(*ColorMask).Mask)
}

// PolygonOffset is the depth offset applied to filled polygons.
type PolygonOffset struct {
	global
	Factor, Units float32
}

func NewPolygonOffset(factor, units float32) *PolygonOffset {
	return &PolygonOffset{Factor: factor, Units: units}
}

func (*PolygonOffset) Type() glstate.AttributeType { return glstate.AttributeTypePolygonOffset }

// Modes implements glstate.ModeUser.
func (*PolygonOffset) Modes() []glstate.Mode {
	return []glstate.Mode{glstate.ModePolygonOffsetFill}
}

func (p *PolygonOffset) Apply(s *glstate.State) { s.Driver().PolygonOffset(p.Factor, p.Units) }

func (*PolygonOffset) CloneType() glstate.Attribute { return &PolygonOffset{} }

func (p *PolygonOffset) Compare(o glstate.Attribute) int {
	if r, done := compareTypes(p, o); done {
		return r
	}
	op := o.(*PolygonOffset)
	return cmp.Or(cmp.Compare(p.Factor, op.Factor), cmp.Compare(p.Units, op.Units))
}
