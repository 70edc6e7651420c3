package attrib

import (
	"cmp"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/glstate"
)

// FogMode is the fog falloff equation.
type FogMode uint8

const (
	FogLinear FogMode = iota
	FogExp
	FogExp2
)

func (m FogMode) gl() int32 {
	switch m {
	case FogExp:
		return int32(glExp)
	case FogExp2:
		return int32(glExp2)
	}
	return int32(glLinear)
}

// Uniform names set by Fog for composed shaders.
const (
	FogColorUniform  = "glstate_FogColor"
	FogParamsUniform = "glstate_FogParams"
)

// fogComponent is shared by every Fog so that composed programs are reused
// across fog parameter changes.
var fogComponent = &glstate.ShaderComponent{
	Name: "fog",
	Sources: []glstate.ShaderSource{{
		Stage: glstate.StageFragment,
		Code: `uniform vec4 glstate_FogColor;
uniform vec4 glstate_FogParams; // mode, density, start, end
vec4 glstate_applyFog(vec4 color, float depth) {
    float f;
    if (glstate_FogParams.x < 0.5) {
        f = (glstate_FogParams.w - depth) / (glstate_FogParams.w - glstate_FogParams.z);
    } else if (glstate_FogParams.x < 1.5) {
        f = exp(-glstate_FogParams.y * depth);
    } else {
        float d = glstate_FogParams.y * depth;
        f = exp(-d * d);
    }
    return vec4(mix(glstate_FogColor.rgb, color.rgb, clamp(f, 0.0, 1.0)), color.a);
}
`,
	}},
}

// Fog is the fixed-function fog. With shader composition enabled it
// contributes a fragment snippet and feeds its parameters as uniforms.
type Fog struct {
	global
	Mode       FogMode
	Density    float32
	Start, End float32
	Color      mgl32.Vec4

	colorUniform  *glstate.Uniform
	paramsUniform *glstate.Uniform
}

// NewFog returns a fog with GL defaults for the given mode.
func NewFog(mode FogMode) *Fog {
	return &Fog{Mode: mode, Density: 1, Start: 0, End: 1}
}

func (*Fog) Type() glstate.AttributeType { return glstate.AttributeTypeFog }

// Modes implements glstate.ModeUser.
func (*Fog) Modes() []glstate.Mode { return []glstate.Mode{glstate.ModeFog} }

func (*Fog) ShaderComponent() *glstate.ShaderComponent { return fogComponent }

func (f *Fog) Apply(s *glstate.State) {
	if s.Extensions().IsFixedFunctionSupported {
		drv := s.Driver()
		drv.Fogi(glFogMode, f.Mode.gl())
		drv.Fogf(glFogDensity, f.Density)
		drv.Fogf(glFogStart, f.Start)
		drv.Fogf(glFogEnd, f.End)
		drv.Fogfv(glFogColor, f.Color[:])
	}
	if s.ShaderCompositionEnabled() {
		if f.colorUniform == nil {
			f.colorUniform = glstate.NewVec4Uniform(FogColorUniform, f.Color)
			f.paramsUniform = glstate.NewVec4Uniform(FogParamsUniform, mgl32.Vec4{})
		}
		f.colorUniform.SetVec4(f.Color)
		f.paramsUniform.SetVec4(mgl32.Vec4{float32(f.Mode), f.Density, f.Start, f.End})
		s.ApplyShaderCompositionUniform(f.colorUniform)
		s.ApplyShaderCompositionUniform(f.paramsUniform)
	}
}

func (*Fog) CloneType() glstate.Attribute { return NewFog(FogExp) }

func (f *Fog) Compare(o glstate.Attribute) int {
	if r, done := compareTypes(f, o); done {
		return r
	}
	of := o.(*Fog)
	c := cmp.Or(
		cmp.Compare(f.Mode, of.Mode),
		cmp.Compare(f.Density, of.Density),
		cmp.Compare(f.Start, of.Start),
		cmp.Compare(f.End, of.End),
	)
	if c != 0 {
		return c
	}
	for i := range f.Color {
		if c := cmp.Compare(f.Color[i], of.Color[i]); c != 0 {
			return c
		}
	}
	return 0
}
