package attrib

import (
	"cmp"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glstate"
)

const glTextureLabel uint32 = 0x1702

// Texture binds an existing GL texture object to a texture unit and sets
// its sampling parameters.
type Texture struct {
	Target    glstate.Mode
	Handle    uint32
	Min, Mag  gputypes.FilterMode
	Mipmapped bool
	WrapS     gputypes.AddressMode
	WrapT     gputypes.AddressMode
	// Label is attached to the texture as a debug label on first bind.
	Label string

	labeled map[uint32]bool
}

// NewTexture2D returns a linearly filtered, repeating 2D texture binding.
func NewTexture2D(handle uint32) *Texture {
	return &Texture{
		Target: glstate.ModeTexture2D,
		Handle: handle,
		Min:    gputypes.FilterModeLinear,
		Mag:    gputypes.FilterModeLinear,
		WrapS:  gputypes.AddressModeRepeat,
		WrapT:  gputypes.AddressModeRepeat,
	}
}

func (*Texture) Type() glstate.AttributeType { return glstate.AttributeTypeTexture }

func (*Texture) Member() uint32 { return 0 }

func (*Texture) IsTextureAttribute() bool { return true }

func (*Texture) ShaderComponent() *glstate.ShaderComponent { return nil }

// Modes implements glstate.ModeUser. The target mode is only meaningful
// to fixed-function contexts; others mark it invalid.
func (t *Texture) Modes() []glstate.Mode { return []glstate.Mode{t.Target} }

func (t *Texture) Apply(s *glstate.State) {
	drv := s.Driver()
	target := uint32(t.Target)
	drv.BindTexture(target, t.Handle)
	if t.Handle == 0 {
		return
	}
	drv.TexParameteri(target, glTextureMinFilter, int32(minFilterGL(t.Min, t.Mipmapped)))
	drv.TexParameteri(target, glTextureMagFilter, int32(filterGL(t.Mag)))
	drv.TexParameteri(target, glTextureWrapS, int32(addressModeGL(t.WrapS)))
	drv.TexParameteri(target, glTextureWrapT, int32(addressModeGL(t.WrapT)))

	if t.Label != "" && !t.labeled[s.ContextID()] {
		if t.labeled == nil {
			t.labeled = make(map[uint32]bool)
		}
		t.labeled[s.ContextID()] = true
		s.Extensions().DebugObjectLabel(glTextureLabel, t.Handle, t.Label)
	}
}

// CloneType returns a binding of texture 0 to the same target, which
// unbinds the unit.
func (t *Texture) CloneType() glstate.Attribute {
	return &Texture{Target: t.Target}
}

func (t *Texture) Compare(o glstate.Attribute) int {
	if r, done := compareTypes(t, o); done {
		return r
	}
	ot := o.(*Texture)
	return cmp.Or(
		cmp.Compare(t.Target, ot.Target),
		cmp.Compare(t.Handle, ot.Handle),
		cmp.Compare(t.Min, ot.Min),
		cmp.Compare(t.Mag, ot.Mag),
		compareBools(t.Mipmapped, ot.Mipmapped),
		cmp.Compare(t.WrapS, ot.WrapS),
		cmp.Compare(t.WrapT, ot.WrapT),
	)
}
