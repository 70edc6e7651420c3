// Package shadercomp composes GLSL programs from the shader components
// contributed by the attributes applied to a glstate.State.
//
// Every component adds its snippets to the matching stage and defines
// GLSTATE_<NAME> (upper-cased component name), which the main template
// tests to call into the component:
//
//	c := shadercomp.New()
//	s := glstate.NewState(driver, ext,
//	    glstate.WithShaderComposer(c),
//	    glstate.WithShaderComposition(true))
package shadercomp

import (
	"strconv"
	"strings"
	"sync"

	"github.com/gogpu/glstate"
	"github.com/gogpu/glstate/attrib"
)

// Default main templates. The fragment template calls the snippets of the
// components it knows about.
const (
	DefaultVertexMain = `in vec4 glstate_Vertex;
uniform mat4 glstate_ModelViewProjectionMatrix;
uniform mat4 glstate_ModelViewMatrix;
out float glstate_EyeDepth;
void main() {
    vec4 eye = glstate_ModelViewMatrix * glstate_Vertex;
    glstate_EyeDepth = -eye.z;
    gl_Position = glstate_ModelViewProjectionMatrix * glstate_Vertex;
}
`
	DefaultFragmentMain = `in float glstate_EyeDepth;
uniform vec4 glstate_Color;
out vec4 glstate_FragColor;
void main() {
    vec4 color = glstate_Color;
#ifdef GLSTATE_FOG
    color = glstate_applyFog(color, glstate_EyeDepth);
#endif
    glstate_FragColor = color;
}
`
)

// Option configures a Composer.
type Option func(*Composer)

// WithGLSLVersion sets the #version line of composed stages, "330" by
// default.
func WithGLSLVersion(v string) Option {
	return func(c *Composer) { c.version = v }
}

// WithMain replaces the main template of a stage.
func WithMain(stage glstate.ShaderStage, code string) Option {
	return func(c *Composer) { c.mains[stage] = code }
}

// WithMaxVariants bounds the compiled variants kept per composed program
// and context.
func WithMaxVariants(n int) Option {
	return func(c *Composer) { c.maxVariants = n }
}

// Composer is the default glstate.ShaderComposer. It keeps one program
// per distinct component list. Composer is safe for concurrent use.
type Composer struct {
	version     string
	mains       map[glstate.ShaderStage]string
	maxVariants int

	mu       sync.Mutex
	ids      map[*glstate.ShaderComponent]int
	programs map[string]*attrib.Program
}

// New returns a Composer with the default vertex and fragment templates.
func New(opts ...Option) *Composer {
	c := &Composer{
		version: "330",
		mains: map[glstate.ShaderStage]string{
			glstate.StageVertex:   DefaultVertexMain,
			glstate.StageFragment: DefaultFragmentMain,
		},
		ids:      make(map[*glstate.ShaderComponent]int),
		programs: make(map[string]*attrib.Program),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Program returns the program composed from components, building its
// sources on first request. Compilation happens when the program is
// applied.
func (c *Composer) Program(_ *glstate.State, components []*glstate.ShaderComponent) glstate.Attribute {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := c.key(components)
	if p, ok := c.programs[key]; ok {
		return p
	}
	p := attrib.NewProgram(programName(components), c.sources(components)...)
	p.MaxVariants = c.maxVariants
	c.programs[key] = p
	glstate.Logger().Debug("shadercomp: composed program", "name", p.Name, "components", len(components))
	return p
}

// Release drops the GL objects of every composed program in a context.
func (c *Composer) Release(contextID uint32) {
	c.mu.Lock()
	programs := make([]*attrib.Program, 0, len(c.programs))
	for _, p := range c.programs {
		programs = append(programs, p)
	}
	c.mu.Unlock()

	for _, p := range programs {
		p.ReleaseContext(contextID)
	}
}

// Len returns the number of composed programs.
func (c *Composer) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.programs)
}

// key identifies a component list by the identity of its components.
// Caller must hold c.mu.
func (c *Composer) key(components []*glstate.ShaderComponent) string {
	var b strings.Builder
	for i, comp := range components {
		id, ok := c.ids[comp]
		if !ok {
			id = len(c.ids) + 1
			c.ids[comp] = id
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

func (c *Composer) sources(components []*glstate.ShaderComponent) []glstate.ShaderSource {
	var defines strings.Builder
	for _, comp := range components {
		defines.WriteString("#define GLSTATE_")
		defines.WriteString(strings.ToUpper(comp.Name))
		defines.WriteByte('\n')
	}

	var out []glstate.ShaderSource
	for _, stage := range []glstate.ShaderStage{glstate.StageVertex, glstate.StageGeometry, glstate.StageFragment} {
		main, ok := c.mains[stage]
		if !ok {
			continue
		}
		var b strings.Builder
		b.WriteString("#version ")
		b.WriteString(c.version)
		b.WriteByte('\n')
		b.WriteString(defines.String())
		for _, comp := range components {
			for _, src := range comp.Sources {
				if src.Stage == stage {
					b.WriteString(src.Code)
				}
			}
		}
		b.WriteString(main)
		out = append(out, glstate.ShaderSource{Stage: stage, Code: b.String()})
	}
	return out
}

func programName(components []*glstate.ShaderComponent) string {
	if len(components) == 0 {
		return "composed"
	}
	names := make([]string, len(components))
	for i, comp := range components {
		names[i] = comp.Name
	}
	return "composed:" + strings.Join(names, "+")
}
