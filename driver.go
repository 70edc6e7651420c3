package glstate

import "unsafe"

// GL enums used by the state cache and the attributes.
const (
	GLNoError                     uint32 = 0
	GLInvalidEnum                 uint32 = 0x0500
	GLInvalidValue                uint32 = 0x0501
	GLInvalidOperation            uint32 = 0x0502
	GLStackOverflow               uint32 = 0x0503
	GLStackUnderflow              uint32 = 0x0504
	GLOutOfMemory                 uint32 = 0x0505
	GLInvalidFramebufferOperation uint32 = 0x0506
	GLContextLost                 uint32 = 0x0507

	GLVendor                 uint32 = 0x1F00
	GLRenderer               uint32 = 0x1F01
	GLVersion                uint32 = 0x1F02
	GLExtensions             uint32 = 0x1F03
	GLShadingLanguageVersion uint32 = 0x8B8C
	GLNumExtensions          uint32 = 0x821D
	GLContextProfileMask     uint32 = 0x9126
	GLContextCoreProfileBit  int32  = 0x1

	GLMaxTextureUnits      uint32 = 0x84E2
	GLMaxTextureCoords     uint32 = 0x8871
	GLMaxTextureImageUnits uint32 = 0x8872
	GLMaxVertexAttribs     uint32 = 0x8869

	GLTexture0 uint32 = 0x84C0

	GLModelView  uint32 = 0x1700
	GLProjection uint32 = 0x1701

	GLArrayBuffer        uint32 = 0x8892
	GLElementArrayBuffer uint32 = 0x8893

	GLFloat uint32 = 0x1406

	GLCompileStatus uint32 = 0x8B81
	GLLinkStatus    uint32 = 0x8B82

	GLShaderBinaryFormatSPIRV uint32 = 0x9551

	GLProgramLabel     uint32 = 0x82E2
	GLShaderLabel      uint32 = 0x82E1
	GLVertexArrayLabel uint32 = 0x8074

	GLBack  uint32 = 0x0405
	GLFront uint32 = 0x0404
)

// Driver is the OpenGL entry point table used by the state cache.
//
// Implementations wrap a loaded GL binding for one context. All methods
// must be called from the thread that owns the context. Optional entry
// points are guarded by the Extensions of the context: callers check the
// corresponding Proc before invoking them.
type Driver interface {
	// ProcAddress resolves a GL symbol. It returns nil for unknown names
	// and never panics.
	ProcAddress(name string) unsafe.Pointer

	GetString(name uint32) string
	GetStringi(name, index uint32) string
	GetInteger(pname uint32) int32
	GetError() uint32

	Enable(capability uint32)
	Disable(capability uint32)
	ActiveTexture(texture uint32)

	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32)
	BlendEquationSeparate(modeRGB, modeAlpha uint32)
	BlendColor(r, g, b, a float32)
	DepthFunc(fn uint32)
	DepthMask(write bool)
	DepthRange(near, far float64)
	CullFace(mode uint32)
	FrontFace(mode uint32)
	ColorMask(r, g, b, a bool)
	PolygonOffset(factor, units float32)
	Fogi(pname uint32, param int32)
	Fogf(pname uint32, param float32)
	Fogfv(pname uint32, params []float32)

	BindTexture(target, texture uint32)
	TexParameteri(target, pname uint32, param int32)

	CreateShader(stage uint32) uint32
	ShaderSource(shader uint32, source string)
	ShaderBinary(shader, format uint32, binary []byte)
	SpecializeShader(shader uint32, entryPoint string)
	CompileShader(shader uint32)
	GetShaderi(shader, pname uint32) int32
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgrami(program, pname uint32) int32
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32
	GetAttribLocation(program uint32, name string) int32
	Uniformiv(location int32, components int, values []int32)
	Uniformfv(location int32, components int, values []float32)
	UniformMatrix3fv(location int32, values []float32)
	UniformMatrix4fv(location int32, values []float32)

	MatrixMode(mode uint32)
	LoadMatrixf(m *[16]float32)

	BindBuffer(target, buffer uint32)
	GenVertexArray() uint32
	DeleteVertexArray(array uint32)
	BindVertexArray(array uint32)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride int32, offset uintptr)
	VertexAttribDivisor(index, divisor uint32)

	DrawBuffer(buf uint32)
	ReadBuffer(buf uint32)
	ObjectLabel(identifier, name uint32, label string)
}
