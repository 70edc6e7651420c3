package attrib

import "github.com/gogpu/gputypes"

// GL enums consumed by the attributes of this package.
const (
	glZero                  uint32 = 0
	glOne                   uint32 = 1
	glSrcColor              uint32 = 0x0300
	glOneMinusSrcColor      uint32 = 0x0301
	glSrcAlpha              uint32 = 0x0302
	glOneMinusSrcAlpha      uint32 = 0x0303
	glDstAlpha              uint32 = 0x0304
	glOneMinusDstAlpha      uint32 = 0x0305
	glDstColor              uint32 = 0x0306
	glOneMinusDstColor      uint32 = 0x0307
	glSrcAlphaSaturate      uint32 = 0x0308
	glConstantColor         uint32 = 0x8001
	glOneMinusConstantColor uint32 = 0x8002

	glFuncAdd             uint32 = 0x8006
	glMin                 uint32 = 0x8007
	glMax                 uint32 = 0x8008
	glFuncSubtract        uint32 = 0x800A
	glFuncReverseSubtract uint32 = 0x800B

	glNever    uint32 = 0x0200
	glLess     uint32 = 0x0201
	glEqual    uint32 = 0x0202
	glLequal   uint32 = 0x0203
	glGreater  uint32 = 0x0204
	glNotequal uint32 = 0x0205
	glGequal   uint32 = 0x0206
	glAlways   uint32 = 0x0207

	glFront uint32 = 0x0404
	glBack  uint32 = 0x0405
	glCW    uint32 = 0x0900
	glCCW   uint32 = 0x0901

	glFogDensity uint32 = 0x0B62
	glFogStart   uint32 = 0x0B63
	glFogEnd     uint32 = 0x0B64
	glFogMode    uint32 = 0x0B65
	glFogColor   uint32 = 0x0B66
	glExp        uint32 = 0x0800
	glExp2       uint32 = 0x0801
	glLinear     uint32 = 0x2601

	glNearest              uint32 = 0x2600
	glNearestMipmapNearest uint32 = 0x2700
	glLinearMipmapLinear   uint32 = 0x2703
	glTextureMagFilter     uint32 = 0x2800
	glTextureMinFilter     uint32 = 0x2801
	glTextureWrapS         uint32 = 0x2802
	glTextureWrapT         uint32 = 0x2803
	glRepeat               uint32 = 0x2901
	glClampToEdge          uint32 = 0x812F
	glMirroredRepeat       uint32 = 0x8370
)

func blendFactorGL(f gputypes.BlendFactor) uint32 {
	switch f {
	case gputypes.BlendFactorZero:
		return glZero
	case gputypes.BlendFactorOne:
		return glOne
	case gputypes.BlendFactorSrc:
		return glSrcColor
	case gputypes.BlendFactorOneMinusSrc:
		return glOneMinusSrcColor
	case gputypes.BlendFactorSrcAlpha:
		return glSrcAlpha
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return glOneMinusSrcAlpha
	case gputypes.BlendFactorDst:
		return glDstColor
	case gputypes.BlendFactorOneMinusDst:
		return glOneMinusDstColor
	case gputypes.BlendFactorDstAlpha:
		return glDstAlpha
	case gputypes.BlendFactorOneMinusDstAlpha:
		return glOneMinusDstAlpha
	case gputypes.BlendFactorSrcAlphaSaturated:
		return glSrcAlphaSaturate
	case gputypes.BlendFactorConstant:
		return glConstantColor
	case gputypes.BlendFactorOneMinusConstant:
		return glOneMinusConstantColor
	}
	return glOne
}

func blendOperationGL(op gputypes.BlendOperation) uint32 {
	switch op {
	case gputypes.BlendOperationSubtract:
		return glFuncSubtract
	case gputypes.BlendOperationReverseSubtract:
		return glFuncReverseSubtract
	case gputypes.BlendOperationMin:
		return glMin
	case gputypes.BlendOperationMax:
		return glMax
	}
	return glFuncAdd
}

func compareFunctionGL(f gputypes.CompareFunction) uint32 {
	switch f {
	case gputypes.CompareFunctionNever:
		return glNever
	case gputypes.CompareFunctionLess:
		return glLess
	case gputypes.CompareFunctionEqual:
		return glEqual
	case gputypes.CompareFunctionLessEqual:
		return glLequal
	case gputypes.CompareFunctionGreater:
		return glGreater
	case gputypes.CompareFunctionNotEqual:
		return glNotequal
	case gputypes.CompareFunctionGreaterEqual:
		return glGequal
	case gputypes.CompareFunctionAlways:
		return glAlways
	}
	return glLess
}

func cullModeGL(m gputypes.CullMode) (uint32, bool) {
	switch m {
	case gputypes.CullModeFront:
		return glFront, true
	case gputypes.CullModeBack:
		return glBack, true
	}
	return 0, false
}

func frontFaceGL(f gputypes.FrontFace) uint32 {
	if f == gputypes.FrontFaceCW {
		return glCW
	}
	return glCCW
}

func filterGL(f gputypes.FilterMode) uint32 {
	if f == gputypes.FilterModeNearest {
		return glNearest
	}
	return glLinear
}

func minFilterGL(f gputypes.FilterMode, mipmapped bool) uint32 {
	switch {
	case !mipmapped:
		return filterGL(f)
	case f == gputypes.FilterModeNearest:
		return glNearestMipmapNearest
	}
	return glLinearMipmapLinear
}

func addressModeGL(m gputypes.AddressMode) uint32 {
	switch m {
	case gputypes.AddressModeClampToEdge:
		return glClampToEdge
	case gputypes.AddressModeMirrorRepeat:
		return glMirroredRepeat
	}
	return glRepeat
}
