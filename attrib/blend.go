package attrib

import (
	"cmp"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glstate"
)

// BlendFunc is the source and destination blend factors.
type BlendFunc struct {
	global
	SrcRGB, DstRGB     gputypes.BlendFactor
	SrcAlpha, DstAlpha gputypes.BlendFactor
}

// NewBlendFunc returns a blend function using the same factors for color
// and alpha.
func NewBlendFunc(src, dst gputypes.BlendFactor) *BlendFunc {
	return &BlendFunc{SrcRGB: src, DstRGB: dst, SrcAlpha: src, DstAlpha: dst}
}

// NewBlendFuncSeparate returns a blend function with separate alpha
// factors.
func NewBlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha gputypes.BlendFactor) *BlendFunc {
	return &BlendFunc{SrcRGB: srcRGB, DstRGB: dstRGB, SrcAlpha: srcAlpha, DstAlpha: dstAlpha}
}

func (*BlendFunc) Type() glstate.AttributeType { return glstate.AttributeTypeBlendFunc }

// Modes implements glstate.ModeUser.
func (*BlendFunc) Modes() []glstate.Mode { return []glstate.Mode{glstate.ModeBlend} }

// IsSeparate reports whether the alpha factors differ from the color ones.
func (b *BlendFunc) IsSeparate() bool {
	return b.SrcRGB != b.SrcAlpha || b.DstRGB != b.DstAlpha
}

// Apply issues glBlendFuncSeparate, or the color factors for both when the
// context lacks separate blending.
func (b *BlendFunc) Apply(s *glstate.State) {
	srcAlpha, dstAlpha := b.SrcAlpha, b.DstAlpha
	if b.IsSeparate() && !s.Extensions().IsBlendFuncSeparateSupported {
		glstate.Logger().Warn("attrib: separate blend function not supported, using color factors",
			"context", s.ContextID())
		srcAlpha, dstAlpha = b.SrcRGB, b.DstRGB
	}
	s.Driver().BlendFuncSeparate(
		blendFactorGL(b.SrcRGB), blendFactorGL(b.DstRGB),
		blendFactorGL(srcAlpha), blendFactorGL(dstAlpha))
}

// CloneType returns the GL default, ONE / ZERO.
func (*BlendFunc) CloneType() glstate.Attribute {
	return NewBlendFunc(gputypes.BlendFactorOne, gputypes.BlendFactorZero)
}

func (b *BlendFunc) Compare(o glstate.Attribute) int {
	if c, done := compareTypes(b, o); done {
		return c
	}
	ob := o.(*BlendFunc)
	return cmp.Or(
		cmp.Compare(b.SrcRGB, ob.SrcRGB),
		cmp.Compare(b.DstRGB, ob.DstRGB),
		cmp.Compare(b.SrcAlpha, ob.SrcAlpha),
		cmp.Compare(b.DstAlpha, ob.DstAlpha),
	)
}

// BlendEquation is the blend operation for color and alpha.
type BlendEquation struct {
	global
	RGB, Alpha gputypes.BlendOperation
}

// NewBlendEquation returns an equation using op for color and alpha.
func NewBlendEquation(op gputypes.BlendOperation) *BlendEquation {
	return &BlendEquation{RGB: op, Alpha: op}
}

func (*BlendEquation) Type() glstate.AttributeType { return glstate.AttributeTypeBlendEquation }

func (*BlendEquation) Modes() []glstate.Mode { return []glstate.Mode{glstate.ModeBlend} }

func usesMinMax(op gputypes.BlendOperation) bool {
	return op == gputypes.BlendOperationMin || op == gputypes.BlendOperationMax
}

func (b *BlendEquation) Apply(s *glstate.State) {
	ext := s.Extensions()
	if !ext.IsBlendEquationSupported {
		glstate.Logger().Warn("attrib: blend equation not supported", "context", s.ContextID())
		return
	}
	if (usesMinMax(b.RGB) || usesMinMax(b.Alpha)) && !ext.IsBlendMinMaxSupported {
		glstate.Logger().Warn("attrib: min/max blend equation not supported", "context", s.ContextID())
		return
	}
	alpha := b.Alpha
	if !ext.IsBlendEquationSeparateSupported {
		alpha = b.RGB
	}
	s.Driver().BlendEquationSeparate(blendOperationGL(b.RGB), blendOperationGL(alpha))
}

func (*BlendEquation) CloneType() glstate.Attribute {
	return NewBlendEquation(gputypes.BlendOperationAdd)
}

func (b *BlendEquation) Compare(o glstate.Attribute) int {
	if c, done := compareTypes(b, o); done {
		return c
	}
	ob := o.(*BlendEquation)
	return cmp.Or(cmp.Compare(b.RGB, ob.RGB), cmp.Compare(b.Alpha, ob.Alpha))
}

// BlendColor is the constant color used by the constant blend factors.
type BlendColor struct {
	global
	Color mgl32.Vec4
}

func NewBlendColor(c mgl32.Vec4) *BlendColor { return &BlendColor{Color: c} }

func (*BlendColor) Type() glstate.AttributeType { return glstate.AttributeTypeBlendColor }

func (b *BlendColor) Apply(s *glstate.State) {
	if !s.Extensions().IsBlendColorSupported {
		return
	}
	s.Driver().BlendColor(b.Color[0], b.Color[1], b.Color[2], b.Color[3])
}

func (*BlendColor) CloneType() glstate.Attribute { return &BlendColor{} }

func (b *BlendColor) Compare(o glstate.Attribute) int {
	if c, done := compareTypes(b, o); done {
		return c
	}
	ob := o.(*BlendColor)
	for i := range b.Color {
		if c := cmp.Compare(b.Color[i], ob.Color[i]); c != 0 {
			return c
		}
	}
	return 0
}
