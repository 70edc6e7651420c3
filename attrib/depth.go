package attrib

import (
	"cmp"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glstate"
)

// Depth is the depth test function, depth write mask and depth range.
type Depth struct {
	global
	Func      gputypes.CompareFunction
	Write     bool
	Near, Far float64
}

// NewDepth returns a depth attribute with the full [0, 1] range.
func NewDepth(fn gputypes.CompareFunction, write bool) *Depth {
	return &Depth{Func: fn, Write: write, Near: 0, Far: 1}
}

func (*Depth) Type() glstate.AttributeType { return glstate.AttributeTypeDepth }

// Modes implements glstate.ModeUser.
func (*Depth) Modes() []glstate.Mode { return []glstate.Mode{glstate.ModeDepthTest} }

func (d *Depth) Apply(s *glstate.State) {
	drv := s.Driver()
	drv.DepthFunc(compareFunctionGL(d.Func))
	drv.DepthMask(d.Write)
	drv.DepthRange(d.Near, d.Far)
}

// CloneType returns the GL default: LESS, writes on, range [0, 1].
func (*Depth) CloneType() glstate.Attribute {
	return NewDepth(gputypes.CompareFunctionLess, true)
}

func (d *Depth) Compare(o glstate.Attribute) int {
	if c, done := compareTypes(d, o); done {
		return c
	}
	od := o.(*Depth)
	return cmp.Or(
		cmp.Compare(d.Func, od.Func),
		compareBools(d.Write, od.Write),
		cmp.Compare(d.Near, od.Near),
		cmp.Compare(d.Far, od.Far),
	)
}
