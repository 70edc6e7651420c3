package glstate

// ShaderStage is a GL shader type enum.
type ShaderStage uint32

// Shader stages.
const (
	StageFragment ShaderStage = 0x8B30
	StageVertex   ShaderStage = 0x8B31
	StageGeometry ShaderStage = 0x8DD9
	StageCompute  ShaderStage = 0x91B9
)

func (s ShaderStage) String() string {
	switch s {
	case StageFragment:
		return "fragment"
	case StageVertex:
		return "vertex"
	case StageGeometry:
		return "geometry"
	case StageCompute:
		return "compute"
	}
	return "unknown"
}

// ShaderSource is one source snippet of a shader component.
type ShaderSource struct {
	Stage ShaderStage
	Code  string
}

// ShaderComponent is the shader code an attribute contributes when the
// state composes programs from the attributes currently applied.
// Components are compared by identity.
type ShaderComponent struct {
	Name    string
	Sources []ShaderSource
}

// ShaderComposer builds programs from shader components.
type ShaderComposer interface {
	// Program returns the program attribute for the component list, or
	// nil if none can be built. Implementations are expected to cache.
	Program(s *State, components []*ShaderComponent) Attribute
	// Release drops every program created for the context.
	Release(contextID uint32)
}

// ProgramObject is the per-context handle of a linked program. The state
// records the object bound by the last applied program attribute and
// sends uniforms through it.
type ProgramObject interface {
	// Program returns the attribute that created the object.
	Program() Attribute
	// ApplyUniform uploads u if the program declares it.
	ApplyUniform(u *Uniform)
	// Handle returns the GL program name.
	Handle() uint32
}
