package glstate

import (
	"strconv"
	"strings"
)

// Proc is the address of a resolved GL entry point, or 0.
type Proc uintptr

// Valid reports whether the entry point was resolved.
func (p Proc) Valid() bool { return p != 0 }

// GetProcAddress resolves the first of names the driver knows, trying
// them in order. Later names are usually the ARB, EXT or vendor aliases
// of the core name. It returns 0 if none resolves.
func GetProcAddress(d Driver, names ...string) Proc {
	for _, name := range names {
		if p := d.ProcAddress(name); p != nil {
			return Proc(uintptr(p))
		}
	}
	return 0
}

// Extensions is the capability table of one context: driver strings,
// parsed versions, extension support flags, limits and the optional entry
// points resolved for the context.
//
// An Extensions is built once per context by NewExtensions and is
// read-only afterwards.
type Extensions struct {
	ContextID uint32

	Vendor      string
	Renderer    string
	Version     string
	GLSLVersion string

	// GLVersion is the numeric GL version, e.g. 4.6 or 3.2 for ES 3.2.
	GLVersion float32
	// GLSLLanguageVersion is the numeric GLSL version, e.g. 4.6.
	GLSLLanguageVersion float32
	IsGLES              bool
	IsCoreProfile       bool

	IsFixedFunctionSupported         bool
	IsMultiTextureSupported          bool
	IsTextureCubeMapSupported        bool
	IsTexture3DSupported             bool
	IsTextureRectangleSupported      bool
	IsBlendFuncSeparateSupported     bool
	IsBlendEquationSupported         bool
	IsBlendEquationSeparateSupported bool
	IsBlendColorSupported            bool
	IsBlendMinMaxSupported           bool
	IsGLSLSupported                  bool
	IsBufferObjectSupported          bool
	IsVertexArrayObjectSupported     bool
	IsInstancedArraysSupported       bool
	IsSPIRVSupported                 bool
	IsDebugLabelSupported            bool
	IsDepthClampSupported            bool
	IsSRGBFramebufferSupported       bool
	IsPrimitiveRestartSupported      bool
	IsPointSpriteSupported           bool

	MaxTextureUnits  int
	MaxTextureCoords int
	MaxVertexAttribs int

	ActiveTexture         Proc
	BlendFuncSeparate     Proc
	BlendEquation         Proc
	BlendEquationSeparate Proc
	BlendColor            Proc
	CreateShader          Proc
	UseProgram            Proc
	BindBuffer            Proc
	GenVertexArrays       Proc
	BindVertexArray       Proc
	DeleteVertexArrays    Proc
	VertexAttribPointer   Proc
	VertexAttribDivisor   Proc
	ShaderBinary          Proc
	SpecializeShader      Proc
	ObjectLabel           Proc
	GetStringi            Proc

	driver     Driver
	extensions map[string]struct{}
	disabled   map[string]struct{}
}

// NewExtensions queries the driver of the current context and builds its
// capability table. Extensions named by disable for the context's
// renderer are reported unsupported. A nil disable list disables nothing.
func NewExtensions(contextID uint32, d Driver, disable *DisableList) *Extensions {
	e := &Extensions{
		ContextID:   contextID,
		driver:      d,
		Vendor:      d.GetString(GLVendor),
		Renderer:    d.GetString(GLRenderer),
		Version:     d.GetString(GLVersion),
		GLSLVersion: d.GetString(GLShadingLanguageVersion),
		extensions:  make(map[string]struct{}),
	}
	e.GLVersion, e.IsGLES = ParseGLVersion(e.Version)
	e.GLSLLanguageVersion = ParseGLSLVersion(e.GLSLVersion)
	e.disabled = disable.DisabledFor(e.Renderer)

	e.GetStringi = GetProcAddress(d, "glGetStringi")
	e.loadExtensionSet()

	switch {
	case e.IsGLES:
		e.IsFixedFunctionSupported = e.GLVersion < 2.0
	case e.GLVersion >= 3.2:
		e.IsCoreProfile = d.GetInteger(GLContextProfileMask)&GLContextCoreProfileBit != 0
	case e.GLVersion >= 3.1:
		e.IsCoreProfile = !e.IsSupported("GL_ARB_compatibility")
	}
	if !e.IsGLES {
		e.IsFixedFunctionSupported = !e.IsCoreProfile
	}

	e.initFlags()
	e.initProcs()
	e.initLimits()

	if len(e.disabled) > 0 {
		Logger().Info("glstate: extensions disabled by disable list",
			"context", contextID, "renderer", e.Renderer, "count", len(e.disabled))
	}
	Logger().Debug("glstate: extensions initialized",
		"context", contextID,
		"renderer", e.Renderer,
		"version", e.GLVersion,
		"glsl", e.GLSLLanguageVersion,
		"gles", e.IsGLES,
		"core", e.IsCoreProfile,
		"extensions", len(e.extensions))
	return e
}

func (e *Extensions) loadExtensionSet() {
	if e.GLVersion >= 3.0 && e.GetStringi.Valid() {
		n := int(e.driver.GetInteger(GLNumExtensions))
		for i := range n {
			if name := e.driver.GetStringi(GLExtensions, uint32(i)); name != "" {
				e.extensions[name] = struct{}{}
			}
		}
		if len(e.extensions) > 0 {
			return
		}
	}
	for name := range strings.FieldsSeq(e.driver.GetString(GLExtensions)) {
		e.extensions[name] = struct{}{}
	}
}

// versionAtLeast compares against the desktop or the ES requirement
// depending on the context. A zero requirement is never met.
func (e *Extensions) versionAtLeast(desktop, es float32) bool {
	req := desktop
	if e.IsGLES {
		req = es
	}
	return req > 0 && e.GLVersion >= req
}

func (e *Extensions) anySupported(names ...string) bool {
	for _, n := range names {
		if e.IsSupported(n) {
			return true
		}
	}
	return false
}

func (e *Extensions) initFlags() {
	e.IsMultiTextureSupported = e.versionAtLeast(1.3, 1.0) || e.anySupported("GL_ARB_multitexture", "GL_EXT_multitexture")
	e.IsTextureCubeMapSupported = e.versionAtLeast(1.3, 2.0) || e.anySupported("GL_ARB_texture_cube_map", "GL_EXT_texture_cube_map")
	e.IsTexture3DSupported = e.versionAtLeast(1.2, 3.0) || e.anySupported("GL_EXT_texture3D", "GL_OES_texture_3D")
	e.IsTextureRectangleSupported = e.versionAtLeast(3.1, 0) || e.anySupported("GL_ARB_texture_rectangle", "GL_EXT_texture_rectangle", "GL_NV_texture_rectangle")
	e.IsBlendFuncSeparateSupported = e.versionAtLeast(1.4, 2.0) || e.anySupported("GL_EXT_blend_func_separate")
	e.IsBlendEquationSupported = e.versionAtLeast(1.4, 2.0) || e.anySupported("GL_EXT_blend_equation", "GL_ARB_imaging")
	e.IsBlendEquationSeparateSupported = e.versionAtLeast(2.0, 2.0) || e.anySupported("GL_EXT_blend_equation_separate", "GL_ATI_blend_equation_separate")
	e.IsBlendColorSupported = e.versionAtLeast(1.4, 2.0) || e.anySupported("GL_EXT_blend_color", "GL_ARB_imaging")
	e.IsBlendMinMaxSupported = e.versionAtLeast(1.4, 3.0) || e.anySupported("GL_EXT_blend_minmax")
	e.IsGLSLSupported = e.versionAtLeast(2.0, 2.0) || e.anySupported("GL_ARB_shader_objects") && e.anySupported("GL_ARB_vertex_shader")
	e.IsBufferObjectSupported = e.versionAtLeast(1.5, 1.1) || e.anySupported("GL_ARB_vertex_buffer_object")
	e.IsVertexArrayObjectSupported = e.versionAtLeast(3.0, 3.0) || e.anySupported("GL_ARB_vertex_array_object", "GL_OES_vertex_array_object", "GL_APPLE_vertex_array_object")
	e.IsInstancedArraysSupported = e.versionAtLeast(3.3, 3.0) || e.anySupported("GL_ARB_instanced_arrays", "GL_EXT_instanced_arrays")
	e.IsSPIRVSupported = e.versionAtLeast(4.6, 0) || e.anySupported("GL_ARB_gl_spirv")
	e.IsDebugLabelSupported = e.versionAtLeast(4.3, 3.2) || e.anySupported("GL_KHR_debug")
	e.IsDepthClampSupported = e.versionAtLeast(3.2, 0) || e.anySupported("GL_ARB_depth_clamp", "GL_NV_depth_clamp", "GL_EXT_depth_clamp")
	e.IsSRGBFramebufferSupported = e.versionAtLeast(3.0, 0) || e.anySupported("GL_ARB_framebuffer_sRGB", "GL_EXT_framebuffer_sRGB", "GL_EXT_sRGB_write_control")
	e.IsPrimitiveRestartSupported = e.versionAtLeast(3.1, 0) || e.anySupported("GL_NV_primitive_restart")
	e.IsPointSpriteSupported = e.IsFixedFunctionSupported && (e.versionAtLeast(2.0, 1.1) || e.anySupported("GL_ARB_point_sprite", "GL_NV_point_sprite", "GL_OES_point_sprite"))
}

func (e *Extensions) initProcs() {
	d := e.driver
	e.ActiveTexture = GetProcAddress(d, "glActiveTexture", "glActiveTextureARB")
	e.BlendFuncSeparate = GetProcAddress(d, "glBlendFuncSeparate", "glBlendFuncSeparateEXT", "glBlendFuncSeparateINGR")
	e.BlendEquation = GetProcAddress(d, "glBlendEquation", "glBlendEquationEXT")
	e.BlendEquationSeparate = GetProcAddress(d, "glBlendEquationSeparate", "glBlendEquationSeparateEXT", "glBlendEquationSeparateATI")
	e.BlendColor = GetProcAddress(d, "glBlendColor", "glBlendColorEXT")
	e.CreateShader = GetProcAddress(d, "glCreateShader", "glCreateShaderObjectARB")
	e.UseProgram = GetProcAddress(d, "glUseProgram", "glUseProgramObjectARB")
	e.BindBuffer = GetProcAddress(d, "glBindBuffer", "glBindBufferARB")
	e.GenVertexArrays = GetProcAddress(d, "glGenVertexArrays", "glGenVertexArraysOES", "glGenVertexArraysAPPLE")
	e.BindVertexArray = GetProcAddress(d, "glBindVertexArray", "glBindVertexArrayOES", "glBindVertexArrayAPPLE")
	e.DeleteVertexArrays = GetProcAddress(d, "glDeleteVertexArrays", "glDeleteVertexArraysOES", "glDeleteVertexArraysAPPLE")
	e.VertexAttribPointer = GetProcAddress(d, "glVertexAttribPointer", "glVertexAttribPointerARB")
	e.VertexAttribDivisor = GetProcAddress(d, "glVertexAttribDivisor", "glVertexAttribDivisorARB", "glVertexAttribDivisorEXT")
	e.ShaderBinary = GetProcAddress(d, "glShaderBinary")
	e.SpecializeShader = GetProcAddress(d, "glSpecializeShader", "glSpecializeShaderARB")
	e.ObjectLabel = GetProcAddress(d, "glObjectLabel", "glObjectLabelKHR")

	// A flag is only as good as the entry points behind it.
	e.IsVertexArrayObjectSupported = e.IsVertexArrayObjectSupported && e.GenVertexArrays.Valid() && e.BindVertexArray.Valid()
	e.IsInstancedArraysSupported = e.IsInstancedArraysSupported && e.VertexAttribDivisor.Valid()
	e.IsSPIRVSupported = e.IsSPIRVSupported && e.ShaderBinary.Valid() && e.SpecializeShader.Valid()
	e.IsDebugLabelSupported = e.IsDebugLabelSupported && e.ObjectLabel.Valid()
	e.IsBlendFuncSeparateSupported = e.IsBlendFuncSeparateSupported && e.BlendFuncSeparate.Valid()
	e.IsBlendEquationSeparateSupported = e.IsBlendEquationSeparateSupported && e.BlendEquationSeparate.Valid()
}

func (e *Extensions) initLimits() {
	d := e.driver
	switch {
	case e.IsGLSLSupported:
		e.MaxTextureUnits = int(d.GetInteger(GLMaxTextureImageUnits))
		if e.IsFixedFunctionSupported {
			e.MaxTextureCoords = int(d.GetInteger(GLMaxTextureCoords))
		}
		e.MaxVertexAttribs = int(d.GetInteger(GLMaxVertexAttribs))
	case e.IsMultiTextureSupported:
		e.MaxTextureUnits = int(d.GetInteger(GLMaxTextureUnits))
		e.MaxTextureCoords = e.MaxTextureUnits
	default:
		e.MaxTextureUnits = 1
		e.MaxTextureCoords = 1
	}
	e.MaxTextureUnits = max(e.MaxTextureUnits, 1)
}

// IsSupported reports whether the driver advertises ext and the disable
// list does not disable it.
func (e *Extensions) IsSupported(ext string) bool {
	if _, off := e.disabled[ext]; off {
		return false
	}
	_, ok := e.extensions[ext]
	return ok
}

// IsSupportedEither reports whether either extension is supported.
func (e *Extensions) IsSupportedEither(ext1, ext2 string) bool {
	return e.IsSupported(ext1) || e.IsSupported(ext2)
}

// IsExtensionOrVersionSupported reports whether the context version is at
// least version, or else whether ext is supported.
func (e *Extensions) IsExtensionOrVersionSupported(ext string, version float32) bool {
	return e.GLVersion >= version || e.IsSupported(ext)
}

// IsDisabled reports whether the disable list names ext for this context.
func (e *Extensions) IsDisabled(ext string) bool {
	_, off := e.disabled[ext]
	return off
}

// Count returns the number of advertised extensions.
func (e *Extensions) Count() int { return len(e.extensions) }

// Supported returns the advertised extensions that are not disabled.
func (e *Extensions) Supported() []string {
	out := make([]string, 0, len(e.extensions))
	for name := range e.extensions {
		if !e.IsDisabled(name) {
			out = append(out, name)
		}
	}
	return out
}

// UnsupportedModes returns the modes that cannot be enabled in this
// context. The state marks them invalid so applying them is a no-op.
func (e *Extensions) UnsupportedModes() []Mode {
	var out []Mode
	if !e.IsFixedFunctionSupported {
		out = append(out,
			ModeLighting, ModeFog, ModeAlphaTest, ModeNormalize,
			ModeTexture1D, ModeTexture2D, ModeTexture3D,
			ModeTextureRectangle, ModeTextureCubeMap)
	} else {
		if !e.IsTexture3DSupported {
			out = append(out, ModeTexture3D)
		}
		if !e.IsTextureCubeMapSupported {
			out = append(out, ModeTextureCubeMap)
		}
		if !e.IsTextureRectangleSupported {
			out = append(out, ModeTextureRectangle)
		}
	}
	if !e.IsPointSpriteSupported {
		out = append(out, ModePointSprite)
	}
	if !e.IsDepthClampSupported {
		out = append(out, ModeDepthClamp)
	}
	if !e.IsSRGBFramebufferSupported {
		out = append(out, ModeFramebufferSRGB)
	}
	if !e.IsPrimitiveRestartSupported {
		out = append(out, ModePrimitiveRestart)
	}
	if e.IsGLES {
		out = append(out, ModeColorLogicOp, ModeMultisample, ModeProgramPointSize)
	}
	return out
}

// DebugObjectLabel attaches a debug label to a GL object when the context
// supports it.
func (e *Extensions) DebugObjectLabel(identifier, name uint32, label string) {
	if label == "" || !e.IsDebugLabelSupported {
		return
	}
	e.driver.ObjectLabel(identifier, name, label)
}

// ParseGLVersion extracts the numeric version from a GL_VERSION string
// and reports whether it is an OpenGL ES context.
//
//	"4.6.0 NVIDIA 535.54"        -> 4.6, false
//	"OpenGL ES 3.2 Mesa 23.0.4"  -> 3.2, true
//	"OpenGL ES-CM 1.1"           -> 1.1, true
func ParseGLVersion(s string) (float32, bool) {
	s = strings.TrimSpace(s)
	gles := false
	if rest, ok := strings.CutPrefix(s, "OpenGL ES"); ok {
		gles = true
		s = strings.TrimLeft(rest, "-CML ")
	}
	return parseVersionNumber(s), gles
}

// ParseGLSLVersion extracts the numeric version from a
// GL_SHADING_LANGUAGE_VERSION string such as "4.60 NVIDIA" or
// "OpenGL ES GLSL ES 3.20".
func ParseGLSLVersion(s string) float32 {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "ES "); i >= 0 {
		s = s[i+3:]
	}
	return parseVersionNumber(s)
}

// parseVersionNumber reads "major.minor" from the start of s.
func parseVersionNumber(s string) float32 {
	end := 0
	dots := 0
	for end < len(s) {
		c := s[end]
		if c == '.' {
			dots++
			if dots > 1 {
				break
			}
		} else if c < '0' || c > '9' {
			break
		}
		end++
	}
	major, minor, _ := strings.Cut(s[:end], ".")
	if major == "" {
		return 0
	}
	if len(minor) > 1 {
		minor = minor[:1]
	}
	v, err := strconv.ParseFloat(major+"."+minor+"0", 32)
	if err != nil {
		return 0
	}
	return float32(v)
}

// IsExtensionInString reports whether ext appears as a whole word in a
// space separated extension string.
func IsExtensionInString(ext, extensions string) bool {
	for name := range strings.FieldsSeq(extensions) {
		if name == ext {
			return true
		}
	}
	return false
}
