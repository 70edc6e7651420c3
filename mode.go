package glstate

import "fmt"

// Mode is an OpenGL capability toggled with glEnable/glDisable.
// The numeric value is the GL enum, which also defines the ordering used
// when merging state sets.
type Mode uint32

// Common modes.
const (
	ModeCullFace          Mode = 0x0B44
	ModeLighting          Mode = 0x0B50
	ModeFog               Mode = 0x0B60
	ModeDepthTest         Mode = 0x0B71
	ModeStencilTest       Mode = 0x0B90
	ModeNormalize         Mode = 0x0BA1
	ModeAlphaTest         Mode = 0x0BC0
	ModeDither            Mode = 0x0BD0
	ModeBlend             Mode = 0x0BE2
	ModeColorLogicOp      Mode = 0x0BF2
	ModeScissorTest       Mode = 0x0C11
	ModeTexture1D         Mode = 0x0DE0
	ModeTexture2D         Mode = 0x0DE1
	ModePolygonOffsetLine Mode = 0x2A02
	ModePolygonOffsetFill Mode = 0x8037
	ModeTexture3D         Mode = 0x806F
	ModeMultisample       Mode = 0x809D
	ModeSampleAlphaToCov  Mode = 0x809E
	ModeTextureRectangle  Mode = 0x84F5
	ModeTextureCubeMap    Mode = 0x8513
	ModeProgramPointSize  Mode = 0x8642
	ModeDepthClamp        Mode = 0x864F
	ModePointSprite       Mode = 0x8861
	ModeFramebufferSRGB   Mode = 0x8DB9
	ModePrimitiveRestart  Mode = 0x8F9D
	ModeClipDistance0     Mode = 0x3000
)

var modeNames = map[Mode]string{
	ModeCullFace:          "GL_CULL_FACE",
	ModeLighting:          "GL_LIGHTING",
	ModeFog:               "GL_FOG",
	ModeDepthTest:         "GL_DEPTH_TEST",
	ModeStencilTest:       "GL_STENCIL_TEST",
	ModeNormalize:         "GL_NORMALIZE",
	ModeAlphaTest:         "GL_ALPHA_TEST",
	ModeDither:            "GL_DITHER",
	ModeBlend:             "GL_BLEND",
	ModeColorLogicOp:      "GL_COLOR_LOGIC_OP",
	ModeScissorTest:       "GL_SCISSOR_TEST",
	ModeTexture1D:         "GL_TEXTURE_1D",
	ModeTexture2D:         "GL_TEXTURE_2D",
	ModePolygonOffsetLine: "GL_POLYGON_OFFSET_LINE",
	ModePolygonOffsetFill: "GL_POLYGON_OFFSET_FILL",
	ModeTexture3D:         "GL_TEXTURE_3D",
	ModeMultisample:       "GL_MULTISAMPLE",
	ModeSampleAlphaToCov:  "GL_SAMPLE_ALPHA_TO_COVERAGE",
	ModeTextureRectangle:  "GL_TEXTURE_RECTANGLE",
	ModeTextureCubeMap:    "GL_TEXTURE_CUBE_MAP",
	ModeProgramPointSize:  "GL_PROGRAM_POINT_SIZE",
	ModeDepthClamp:        "GL_DEPTH_CLAMP",
	ModePointSprite:       "GL_POINT_SPRITE",
	ModeFramebufferSRGB:   "GL_FRAMEBUFFER_SRGB",
	ModePrimitiveRestart:  "GL_PRIMITIVE_RESTART",
	ModeClipDistance0:     "GL_CLIP_DISTANCE0",
}

// String returns the GL enum name, or the hex value for unknown modes.
func (m Mode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return fmt.Sprintf("Mode(0x%04X)", uint32(m))
}

// compareModes orders modes by enum value.
func compareModes(a, b Mode) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
