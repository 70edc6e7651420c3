// Package config loads driver workaround profiles from TOML and turns them
// into glstate options.
//
//	check_gl_errors      = "once-per-frame"
//	shader_composition   = true
//	use_uniform_matrices = true
//	vertex_array_object  = true
//	max_program_cache    = 16
//
//	[[disable]]
//	renderer   = "Mesa DRI Intel"
//	extensions = ["GL_ARB_texture_float"]
//
//	[[disable]]
//	extensions = ["GL_ARB_gl_spirv"]
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/glstate"
	"github.com/gogpu/glstate/shadercomp"
)

// ErrInvalid is returned for profiles that do not parse or hold
// out-of-range values.
var ErrInvalid = errors.New("config: invalid profile")

// Disable is one rule of the extension disable list. An empty Renderer
// matches every renderer.
type Disable struct {
	Renderer   string   `toml:"renderer,omitempty"`
	Extensions []string `toml:"extensions"`
}

// Profile is a driver workaround profile.
type Profile struct {
	CheckGLErrors      string    `toml:"check_gl_errors,omitempty"`
	ShaderComposition  bool      `toml:"shader_composition"`
	UseUniformMatrices bool      `toml:"use_uniform_matrices"`
	VertexArrayObject  bool      `toml:"vertex_array_object"`
	MaxProgramCache    int       `toml:"max_program_cache,omitempty"`
	Disable            []Disable `toml:"disable,omitempty"`

	checkGLErrors glstate.CheckGLErrors
}

// Load decodes a profile. Keys not present keep the values of Default.
// Unknown keys are rejected.
func Load(r io.Reader) (*Profile, error) {
	p := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%w: line %d column %d: %s", ErrInvalid, row, col, derr.Error())
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadFile reads and decodes the profile at path.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	p, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	glstate.Logger().Info("config: profile loaded", "path", path, "disable", p.DisableString())
	return p, nil
}

// Default returns the profile matching glstate's defaults.
func Default() *Profile {
	return &Profile{CheckGLErrors: glstate.OncePerFrame.String(), checkGLErrors: glstate.OncePerFrame}
}

func (p *Profile) validate() error {
	c, err := glstate.ParseCheckGLErrors(p.CheckGLErrors)
	if err != nil {
		return fmt.Errorf("%w: check_gl_errors: %w", ErrInvalid, err)
	}
	p.checkGLErrors = c
	if p.MaxProgramCache < 0 {
		return fmt.Errorf("%w: max_program_cache %d is negative", ErrInvalid, p.MaxProgramCache)
	}
	for i, d := range p.Disable {
		if len(d.Extensions) == 0 {
			return fmt.Errorf("%w: disable[%d] lists no extensions", ErrInvalid, i)
		}
		if strings.ContainsAny(d.Renderer, ";:") {
			return fmt.Errorf("%w: disable[%d] renderer %q contains a separator", ErrInvalid, i, d.Renderer)
		}
	}
	return nil
}

// DisableString returns the disable rules in the textual form parsed by
// glstate.ParseDisableList.
func (p *Profile) DisableString() string {
	entries := make([]string, 0, len(p.Disable))
	for _, d := range p.Disable {
		names := strings.Join(d.Extensions, ",")
		if d.Renderer != "" {
			names = d.Renderer + ":" + names
		}
		entries = append(entries, names)
	}
	return strings.Join(entries, ";")
}

// Options returns the state options of the profile.
func (p *Profile) Options() []glstate.Option {
	return []glstate.Option{
		glstate.WithCheckGLErrors(p.checkGLErrors),
		glstate.WithShaderComposition(p.ShaderComposition),
		glstate.WithModelViewAndProjectionUniforms(p.UseUniformMatrices),
		glstate.WithVertexArrayObject(p.VertexArrayObject),
	}
}

// RegistryOptions returns the registry options of the profile. A profile
// without disable rules leaves the environment default in place.
func (p *Profile) RegistryOptions() []glstate.RegistryOption {
	if len(p.Disable) == 0 {
		return nil
	}
	return []glstate.RegistryOption{glstate.WithDisableString(p.DisableString())}
}

// ComposerOptions returns the shader composer options of the profile.
func (p *Profile) ComposerOptions() []shadercomp.Option {
	if p.MaxProgramCache == 0 {
		return nil
	}
	return []shadercomp.Option{shadercomp.WithMaxVariants(p.MaxProgramCache)}
}

// Encode writes the profile as TOML.
func (p *Profile) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(p)
}
