package attrib

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/naga"

	"github.com/gogpu/glstate"
	"github.com/gogpu/glstate/backend/record"
)

const (
	testVertex = `#version 330
uniform mat4 glstate_ModelViewProjectionMatrix;
in vec4 position;
void main() { gl_Position = glstate_ModelViewProjectionMatrix * position; }
`
	testFragment = `#version 330
uniform float alpha;
out vec4 color;
void main() { color = vec4(1.0, 1.0, 1.0, alpha); }
`
	testWGSL = `@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    let x = f32(i32(idx) - 1);
    let y = f32(i32(idx & 1u) * 2 - 1);
    return vec4<f32>(x, y, 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`
)

func newTestProgram(name string) *Program {
	return NewProgram(name,
		glstate.ShaderSource{Stage: glstate.StageVertex, Code: testVertex},
		glstate.ShaderSource{Stage: glstate.StageFragment, Code: testFragment})
}

func TestInjectDefines(t *testing.T) {
	tests := []struct {
		name, code, defines, want string
	}{
		{"no defines", "#version 330\nvoid main() {}\n", "", "#version 330\nvoid main() {}\n"},
		{"after version", "#version 330\nvoid main() {}\n", "#define A\n", "#version 330\n#define A\nvoid main() {}\n"},
		{"leading blank", "\n#version 330\nx\n", "#define A\n", "\n#version 330\n#define A\nx\n"},
		{"no version", "void main() {}\n", "#define A 1\n", "#define A 1\nvoid main() {}\n"},
		{"version without newline", "#version 330", "#define A\n", "#version 330\n#define A\n"},
		{"version in comment", "// #version 330\nx\n", "#define A\n", "#define A\n// #version 330\nx\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := injectDefines(tt.code, tt.defines); got != tt.want {
				t.Errorf("injectDefines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProgramBuildAndBind(t *testing.T) {
	s, d := newState(t, record.Desktop46())
	p := newTestProgram("basic")

	if !s.ApplyAttribute(p) {
		t.Fatal("ApplyAttribute() = false, want true")
	}
	obj := s.LastAppliedProgramObject()
	if obj == nil {
		t.Fatal("no program object after apply")
	}
	if obj.Handle() == 0 || obj.Handle() != d.CurrentProgram() {
		t.Errorf("Handle() = %d, bound = %d", obj.Handle(), d.CurrentProgram())
	}
	if obj.Program() != glstate.Attribute(p) {
		t.Error("Program() does not return the attribute")
	}
	shaders, programs, _ := d.Live()
	if shaders != 0 || programs != 1 {
		t.Errorf("Live() = %d shaders, %d programs, want 0, 1", shaders, programs)
	}
	labels := d.CallsNamed("ObjectLabel")
	if len(labels) != 1 || labels[0].Args[0] != glstate.GLProgramLabel || labels[0].Args[2] != "basic" {
		t.Errorf("ObjectLabel calls = %v", labels)
	}

	if got := p.Variants(0); got != 1 {
		t.Errorf("Variants(0) = %d, want 1", got)
	}
	if got := p.Variants(1); got != 0 {
		t.Errorf("Variants(1) = %d, want 0", got)
	}
}

func TestProgramEmptyUnbinds(t *testing.T) {
	s, d := newState(t, record.Desktop46())
	s.ApplyAttribute(newTestProgram("p"))
	s.ApplyAttribute((&Program{}).CloneType())
	if d.CurrentProgram() != 0 {
		t.Errorf("bound program = %d, want 0", d.CurrentProgram())
	}
	if s.LastAppliedProgramObject() != nil {
		t.Error("LastAppliedProgramObject() != nil after the empty program")
	}
}

func TestProgramCompileError(t *testing.T) {
	s, d := newState(t, record.Desktop46())
	p := NewProgram("broken", glstate.ShaderSource{Stage: glstate.StageFragment, Code: "#version 330\n#error nope\n"})

	_, err := p.Compile(s)
	if !errors.Is(err, ErrCompile) {
		t.Fatalf("Compile() error = %v, want ErrCompile", err)
	}
	created := d.Count("CreateShader")
	if _, err := p.Compile(s); !errors.Is(err, ErrCompile) {
		t.Errorf("second Compile() error = %v, want ErrCompile", err)
	}
	if n := d.Count("CreateShader"); n != created {
		t.Errorf("failed variant rebuilt: CreateShader %d -> %d", created, n)
	}

	s.ApplyAttribute(p)
	if d.CurrentProgram() != 0 || s.LastAppliedProgramObject() != nil {
		t.Error("failed program left a program bound")
	}
	if shaders, programs, _ := d.Live(); shaders != 0 || programs != 0 {
		t.Errorf("Live() = %d shaders, %d programs after failure, want 0, 0", shaders, programs)
	}
}

func TestProgramSpecializeError(t *testing.T) {
	if _, err := naga.Compile(testWGSL); err != nil {
		t.Skipf("naga cannot compile the test shader: %v", err)
	}
	s, _ := newState(t, record.Desktop46())
	p := NewWGSLProgram("no entry point", []WGSLSource{{Stage: glstate.StageVertex, Code: testWGSL}})
	if _, err := p.Compile(s); !errors.Is(err, ErrCompile) {
		t.Errorf("Compile() error = %v, want ErrCompile", err)
	}
}

// linkFailure is a driver whose programs never link.
type linkFailure struct {
	*record.Driver
}

func (linkFailure) GetProgrami(uint32, uint32) int32 { return 0 }

func (linkFailure) ProgramInfoLog(uint32) string { return "varying mismatch" }

func TestProgramLinkError(t *testing.T) {
	d := linkFailure{record.New(record.Desktop46())}
	s := glstate.NewState(d, glstate.NewExtensions(0, d, nil))

	_, err := newTestProgram("unlinkable").Compile(s)
	if !errors.Is(err, ErrLink) {
		t.Fatalf("Compile() error = %v, want ErrLink", err)
	}
	if shaders, programs, _ := d.Live(); shaders != 0 || programs != 0 {
		t.Errorf("Live() = %d shaders, %d programs after link failure, want 0, 0", shaders, programs)
	}
}

func TestProgramDefineVariants(t *testing.T) {
	s, d := newState(t, record.Desktop46())
	p := newTestProgram("fog")
	p.Defines = []string{"USE_FOG"}

	withFog := glstate.NewStateSet("with fog")
	withFog.SetAttribute(p, glstate.On)
	withFog.SetDefine("USE_FOG", "1", glstate.On)
	s.PushStateSet(withFog)
	s.Apply()

	v1, ok := s.LastAppliedProgramObject().(*PerContextProgram)
	if !ok {
		t.Fatalf("LastAppliedProgramObject() = %T", s.LastAppliedProgramObject())
	}
	if got, want := v1.Defines(), "#define USE_FOG 1\n"; got != want {
		t.Errorf("Defines() = %q, want %q", got, want)
	}

	s.PopStateSet()
	plain := glstate.NewStateSet("plain")
	plain.SetAttribute(p, glstate.On)
	s.PushStateSet(plain)
	s.Apply()

	v2 := s.LastAppliedProgramObject().(*PerContextProgram)
	if v2 == v1 || v2.Defines() != "" {
		t.Errorf("variant without define: %+v", v2)
	}
	if d.CurrentProgram() != v2.Handle() {
		t.Errorf("bound program = %d, want %d", d.CurrentProgram(), v2.Handle())
	}
	if got := p.Variants(0); got != 2 {
		t.Errorf("Variants(0) = %d, want 2", got)
	}
}

func TestProgramVariantEviction(t *testing.T) {
	s, d := newState(t, record.Desktop46())
	p := newTestProgram("evict")
	p.Defines = []string{"A"}
	p.MaxVariants = 1

	if _, err := p.Compile(s); err != nil {
		t.Fatal(err)
	}
	ss := glstate.NewStateSet("a")
	ss.SetDefine("A", "", glstate.On)
	s.PushStateSet(ss)
	v, err := p.Compile(s)
	if err != nil {
		t.Fatal(err)
	}
	if v.Defines() != "#define A\n" {
		t.Errorf("Defines() = %q, want %q", v.Defines(), "#define A\n")
	}
	if got := p.Variants(0); got != 1 {
		t.Errorf("Variants(0) = %d, want 1", got)
	}
	if n := d.Count("DeleteProgram"); n != 1 {
		t.Errorf("DeleteProgram issued %d times, want 1", n)
	}
}

func TestProgramUniforms(t *testing.T) {
	s, d := newState(t, record.Desktop46())
	p := newTestProgram("uniforms")
	alpha := glstate.NewFloatUniform("alpha", 0.5)

	ss := glstate.NewStateSet("uniforms")
	ss.SetAttribute(p, glstate.On)
	ss.AddUniform(alpha, glstate.On)
	s.PushStateSet(ss)
	s.Apply()

	calls := d.CallsNamed("Uniformfv")
	if len(calls) != 1 || calls[0].String() != "Uniformfv(0, 1, [0.5])" {
		t.Fatalf("Uniformfv calls = %v", calls)
	}

	v := s.LastAppliedProgramObject().(*PerContextProgram)
	v.ApplyUniform(alpha)
	if n := d.Count("Uniformfv"); n != 1 {
		t.Errorf("unchanged uniform re-sent: %d calls", n)
	}
	alpha.SetFloat(0.25)
	v.ApplyUniform(alpha)
	if n := d.Count("Uniformfv"); n != 2 {
		t.Errorf("changed uniform: %d calls, want 2", n)
	}

	v.ApplyUniform(glstate.NewIntUniform("undeclared", 1))
	if n := d.Count("Uniformiv"); n != 0 {
		t.Errorf("undeclared uniform sent: %d calls", n)
	}
	if loc := v.UniformLocation("undeclared"); loc != -1 {
		t.Errorf("UniformLocation(undeclared) = %d, want -1", loc)
	}
	if loc := v.AttribLocation("position"); loc < 0 {
		t.Errorf("AttribLocation(position) = %d", loc)
	}
}

func TestProgramUniformSamePayload(t *testing.T) {
	s, d := newState(t, record.Desktop46())
	ss := glstate.NewStateSet("program")
	ss.SetAttribute(newTestProgram("payload"), glstate.On)
	s.PushStateSet(ss)
	s.Apply()
	v := s.LastAppliedProgramObject().(*PerContextProgram)

	tests := []struct {
		name    string
		uniform *glstate.Uniform
		uploads int
	}{
		{"first", glstate.NewFloatUniform("alpha", 0.5), 1},
		{"same value", glstate.NewFloatUniform("alpha", 0.5), 1},
		{"new value", glstate.NewFloatUniform("alpha", 0.75), 2},
		{"back again", glstate.NewFloatUniform("alpha", 0.5), 3},
		{"same bits as int", glstate.NewIntUniform("alpha", 0x3f000000), 4},
	}
	for _, tt := range tests {
		v.ApplyUniform(tt.uniform)
		if got := d.Count("Uniformfv") + d.Count("Uniformiv"); got != tt.uploads {
			t.Errorf("%s: uploads = %d, want %d", tt.name, got, tt.uploads)
		}
	}
}

func TestProgramApplyBoundVariant(t *testing.T) {
	s, d := newState(t, record.Desktop46())
	p := newTestProgram("bound")

	p.Apply(s)
	p.Apply(s)
	if n := d.Count("UseProgram"); n != 1 {
		t.Errorf("UseProgram issued %d times, want 1", n)
	}

	s.DirtyAllAttributes()
	p.Apply(s)
	if n := d.Count("UseProgram"); n != 2 {
		t.Errorf("after DirtyAllAttributes: UseProgram issued %d times, want 2", n)
	}

	s.HaveAppliedAttributeType(glstate.AttributeTypeProgram, 0)
	p.Apply(s)
	if n := d.Count("UseProgram"); n != 3 {
		t.Errorf("after HaveAppliedAttributeType: UseProgram issued %d times, want 3", n)
	}
	if d.CurrentProgram() != s.LastAppliedProgramObject().Handle() {
		t.Errorf("bound program = %d, want %d", d.CurrentProgram(), s.LastAppliedProgramObject().Handle())
	}
}

func TestProgramMatrixUniforms(t *testing.T) {
	s, d := newState(t, record.Core33(), glstate.WithModelViewAndProjectionUniforms(true))
	ss := glstate.NewStateSet("program")
	ss.SetAttribute(newTestProgram("mvp"), glstate.On)
	s.PushStateSet(ss)
	s.Apply()
	mv := mgl32.Translate3D(0, 0, -5)
	s.ApplyModelViewMatrix(&mv)

	calls := d.CallsNamed("UniformMatrix4fv")
	if len(calls) == 0 {
		t.Fatal("MVP matrix not sent")
	}
	for _, c := range calls {
		if c.Args[0] != int32(0) {
			t.Errorf("%v: matrix sent to an undeclared location", c)
		}
	}
	if n := d.Count("UniformMatrix3fv"); n != 0 {
		t.Errorf("undeclared normal matrix sent %d times", n)
	}
}

func TestProgramReleaseContext(t *testing.T) {
	d := record.New(record.Desktop46())
	cs := glstate.NewContextSet(glstate.NewRegistry(glstate.WithDisableString("")))
	c, err := cs.Context(1, d)
	if err != nil {
		t.Fatal(err)
	}
	p := newTestProgram("released")
	c.State.ApplyAttribute(p)
	if got := p.Variants(1); got != 1 {
		t.Fatalf("Variants(1) = %d, want 1", got)
	}

	if err := cs.Close(1); err != nil {
		t.Fatal(err)
	}
	if got := p.Variants(1); got != 0 {
		t.Errorf("Variants(1) after close = %d, want 0", got)
	}
	if _, programs, _ := d.Live(); programs != 0 {
		t.Errorf("%d programs alive after close", programs)
	}
}

func TestWGSLProgram(t *testing.T) {
	if _, err := naga.Compile(testWGSL); err != nil {
		t.Skipf("naga cannot compile the test shader: %v", err)
	}
	stages := []WGSLSource{
		{Stage: glstate.StageVertex, Code: testWGSL, EntryPoint: "vs_main"},
		{Stage: glstate.StageFragment, Code: testWGSL, EntryPoint: "fs_main"},
	}

	t.Run("spirv", func(t *testing.T) {
		s, d := newState(t, record.Desktop46())
		p := NewWGSLProgram("wgsl", stages)
		if _, err := p.Compile(s); err != nil {
			t.Fatal(err)
		}
		if n := d.Count("ShaderBinary"); n != 2 {
			t.Errorf("ShaderBinary issued %d times, want 2", n)
		}
		if n := d.Count("SpecializeShader"); n != 2 {
			t.Errorf("SpecializeShader issued %d times, want 2", n)
		}
		if n := d.Count("ShaderSource"); n != 0 {
			t.Errorf("ShaderSource issued %d times, want 0", n)
		}
	})

	t.Run("glsl fallback", func(t *testing.T) {
		s, d := newState(t, record.Core33())
		p := NewWGSLProgram("wgsl", stages,
			glstate.ShaderSource{Stage: glstate.StageVertex, Code: testVertex})
		if _, err := p.Compile(s); err != nil {
			t.Fatal(err)
		}
		if n := d.Count("ShaderBinary"); n != 0 {
			t.Errorf("ShaderBinary issued %d times, want 0", n)
		}
		if n := d.Count("ShaderSource"); n != 1 {
			t.Errorf("ShaderSource issued %d times, want 1", n)
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		s, _ := newState(t, record.Core33())
		p := NewWGSLProgram("wgsl", stages)
		if _, err := p.Compile(s); !errors.Is(err, ErrUnsupported) {
			t.Errorf("Compile() error = %v, want ErrUnsupported", err)
		}
	})
}
