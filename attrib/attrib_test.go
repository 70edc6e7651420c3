package attrib

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glstate"
	"github.com/gogpu/glstate/backend/record"
)

func newState(t *testing.T, cfg record.Config, opts ...glstate.Option) (*glstate.State, *record.Driver) {
	t.Helper()
	d := record.New(cfg)
	s := glstate.NewState(d, glstate.NewExtensions(0, d, nil), opts...)
	d.Reset()
	return s, d
}

func callStrings(d *record.Driver) string {
	calls := d.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return strings.Join(out, "; ")
}

func TestFixedFunctionAttributes(t *testing.T) {
	tests := []struct {
		name string
		attr glstate.Attribute
		want string
	}{
		{
			name: "blend func",
			attr: NewBlendFunc(gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOneMinusSrcAlpha),
			want: "BlendFuncSeparate(0x302, 0x303, 0x302, 0x303)",
		},
		{
			name: "blend func separate",
			attr: NewBlendFuncSeparate(gputypes.BlendFactorOne, gputypes.BlendFactorOneMinusSrcAlpha,
				gputypes.BlendFactorOne, gputypes.BlendFactorZero),
			want: "BlendFuncSeparate(0x1, 0x303, 0x1, 0x0)",
		},
		{
			name: "blend equation",
			attr: NewBlendEquation(gputypes.BlendOperationReverseSubtract),
			want: "BlendEquationSeparate(0x800b, 0x800b)",
		},
		{
			name: "blend color",
			attr: NewBlendColor(mgl32.Vec4{1, 0.5, 0, 1}),
			want: "BlendColor(1, 0.5, 0, 1)",
		},
		{
			name: "depth",
			attr: NewDepth(gputypes.CompareFunctionLessEqual, false),
			want: "DepthFunc(0x203); DepthMask(false); DepthRange(0, 1)",
		},
		{
			name: "cull front",
			attr: NewCullFace(gputypes.CullModeFront),
			want: "CullFace(0x404)",
		},
		{
			name: "cull none",
			attr: NewCullFace(gputypes.CullModeNone),
			want: "",
		},
		{
			name: "front face",
			attr: NewFrontFace(gputypes.FrontFaceCW),
			want: "FrontFace(0x900)",
		},
		{
			name: "color mask",
			attr: NewColorMask(gputypes.ColorWriteMaskRed | gputypes.ColorWriteMaskAlpha),
			want: "ColorMask(true, false, false, true)",
		},
		{
			name: "polygon offset",
			attr: NewPolygonOffset(1, 2),
			want: "PolygonOffset(1, 2)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, d := newState(t, record.Desktop46())
			if !s.ApplyAttribute(tt.attr) {
				t.Fatal("ApplyAttribute() = false, want true")
			}
			if got := callStrings(d); got != tt.want {
				t.Errorf("calls = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCloneTypeIsGLDefault(t *testing.T) {
	tests := []struct {
		attr glstate.Attribute
		want string
	}{
		{&BlendFunc{}, "BlendFuncSeparate(0x1, 0x0, 0x1, 0x0)"},
		{&BlendEquation{}, "BlendEquationSeparate(0x8006, 0x8006)"},
		{&BlendColor{}, "BlendColor(0, 0, 0, 0)"},
		{&Depth{}, "DepthFunc(0x201); DepthMask(true); DepthRange(0, 1)"},
		{&CullFace{}, "CullFace(0x405)"},
		{&FrontFace{}, "FrontFace(0x901)"},
		{&ColorMask{}, "ColorMask(true, true, true, true)"},
		{&PolygonOffset{}, "PolygonOffset(0, 0)"},
	}
	for _, tt := range tests {
		t.Run(tt.attr.Type().String(), func(t *testing.T) {
			s, d := newState(t, record.Desktop46())
			def := tt.attr.CloneType()
			if def.Type() != tt.attr.Type() {
				t.Fatalf("CloneType().Type() = %v, want %v", def.Type(), tt.attr.Type())
			}
			s.ApplyAttribute(def)
			if got := callStrings(d); got != tt.want {
				t.Errorf("calls = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBlendFallbacks(t *testing.T) {
	cfg := record.Legacy14()
	cfg.Version = "1.3 Record"
	cfg.Extensions = []string{"GL_ARB_multitexture", "GL_EXT_blend_equation"}

	s, d := newState(t, cfg)
	s.ApplyAttribute(NewBlendFuncSeparate(gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOneMinusSrcAlpha,
		gputypes.BlendFactorOne, gputypes.BlendFactorZero))
	if got, want := callStrings(d), "BlendFuncSeparate(0x302, 0x303, 0x302, 0x303)"; got != want {
		t.Errorf("without separate blending: calls = %q, want %q", got, want)
	}

	d.Reset()
	s.ApplyAttribute(NewBlendEquation(gputypes.BlendOperationMax))
	if n := d.Count(""); n != 0 {
		t.Errorf("max equation without GL_EXT_blend_minmax issued %d calls", n)
	}
	s.ApplyAttribute(NewBlendEquation(gputypes.BlendOperationSubtract))
	if got, want := callStrings(d), "BlendEquationSeparate(0x800a, 0x800a)"; got != want {
		t.Errorf("calls = %q, want %q", got, want)
	}

	d.Reset()
	s.ApplyAttribute(NewBlendColor(mgl32.Vec4{1, 1, 1, 1}))
	if n := d.Count("BlendColor"); n != 0 {
		t.Errorf("BlendColor issued %d times without support", n)
	}
}

func TestAttributeModes(t *testing.T) {
	tests := []struct {
		attr glstate.Attribute
		mode glstate.Mode
	}{
		{NewBlendFunc(gputypes.BlendFactorOne, gputypes.BlendFactorOne), glstate.ModeBlend},
		{NewDepth(gputypes.CompareFunctionLess, true), glstate.ModeDepthTest},
		{NewCullFace(gputypes.CullModeBack), glstate.ModeCullFace},
		{NewPolygonOffset(1, 1), glstate.ModePolygonOffsetFill},
		{NewFog(FogLinear), glstate.ModeFog},
	}
	for _, tt := range tests {
		ss := glstate.NewStateSet("modes")
		ss.SetAttributeAndModes(tt.attr, glstate.On)
		if v, ok := ss.Mode(tt.mode); !ok || !v.Enabled() {
			t.Errorf("%v: Mode(%v) = %v, %v, want ON", tt.attr.Type(), tt.mode, v, ok)
		}
	}

	tex := NewTexture2D(3)
	ss := glstate.NewStateSet("texture")
	ss.SetTextureAttributeAndModes(1, tex, glstate.On)
	if v, ok := ss.TextureMode(1, glstate.ModeTexture2D); !ok || !v.Enabled() {
		t.Errorf("TextureMode(1, GL_TEXTURE_2D) = %v, %v, want ON", v, ok)
	}
}

func TestCompare(t *testing.T) {
	a := NewBlendFunc(gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOneMinusSrcAlpha)
	b := NewBlendFunc(gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOneMinusSrcAlpha)
	c := NewBlendFunc(gputypes.BlendFactorOne, gputypes.BlendFactorZero)

	if got := a.Compare(b); got != 0 {
		t.Errorf("equal blend funcs: Compare = %d, want 0", got)
	}
	if x, y := a.Compare(c), c.Compare(a); x == 0 || (x < 0) == (y < 0) {
		t.Errorf("Compare not antisymmetric: %d, %d", x, y)
	}
	depth := NewDepth(gputypes.CompareFunctionLess, true)
	if got := a.Compare(depth); got >= 0 {
		t.Errorf("BlendFunc.Compare(Depth) = %d, want < 0", got)
	}
	if got := depth.Compare(a); got <= 0 {
		t.Errorf("Depth.Compare(BlendFunc) = %d, want > 0", got)
	}
	if got := depth.Compare(nil); got <= 0 {
		t.Errorf("Compare(nil) = %d, want > 0", got)
	}
}

func TestFog(t *testing.T) {
	fog := NewFog(FogLinear)
	fog.Start, fog.End = 10, 100
	fog.Color = mgl32.Vec4{0.5, 0.5, 0.5, 1}

	s, d := newState(t, record.Desktop46())
	s.ApplyAttribute(fog)
	want := "Fogi(0xb65, 9729); Fogf(0xb62, 1); Fogf(0xb63, 10); Fogf(0xb64, 100); Fogfv(0xb66, [0.5 0.5 0.5 1])"
	if got := callStrings(d); got != want {
		t.Errorf("calls = %q, want %q", got, want)
	}
	if fog.ShaderComponent() == nil {
		t.Error("Fog has no shader component")
	}
	if NewFog(FogExp).ShaderComponent() != fog.ShaderComponent() {
		t.Error("fog instances do not share their shader component")
	}

	core, cd := newState(t, record.Core33())
	core.ApplyAttribute(NewFog(FogExp2))
	if n := cd.Count(""); n != 0 {
		t.Errorf("fog on a core context issued %d calls", n)
	}
}

func TestTexture(t *testing.T) {
	s, d := newState(t, record.Desktop46())
	tex := NewTexture2D(7)
	tex.Label = "albedo"
	tex.Mipmapped = true
	tex.WrapS = gputypes.AddressModeClampToEdge

	if !s.ApplyTextureAttribute(1, tex) {
		t.Fatal("ApplyTextureAttribute() = false, want true")
	}
	want := strings.Join([]string{
		"ActiveTexture(0x84c1)",
		"BindTexture(0xde1, 0x7)",
		"TexParameteri(0xde1, 0x2801, 9987)",
		"TexParameteri(0xde1, 0x2800, 9729)",
		"TexParameteri(0xde1, 0x2802, 33071)",
		"TexParameteri(0xde1, 0x2803, 10497)",
		`ObjectLabel(0x1702, 0x7, "albedo")`,
	}, "; ")
	if got := callStrings(d); got != want {
		t.Errorf("calls = %q\nwant %q", got, want)
	}

	s.ApplyTextureAttribute(1, NewTexture2D(8))
	s.ApplyTextureAttribute(1, tex)
	if n := d.Count("ObjectLabel"); n != 1 {
		t.Errorf("ObjectLabel issued %d times, want 1", n)
	}

	d.Reset()
	s.ApplyTextureAttribute(1, tex.CloneType())
	if got, want := callStrings(d), "BindTexture(0xde1, 0x0)"; got != want {
		t.Errorf("default texture: calls = %q, want %q", got, want)
	}
}
