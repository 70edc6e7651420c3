package glstate

import (
	"strings"
	"testing"

	"github.com/gogpu/glstate/backend/record"
)

var _ Driver = (*record.Driver)(nil)

// newTestState returns a state over a recording driver with an empty
// call log.
func newTestState(t *testing.T, cfg record.Config, opts ...Option) (*State, *record.Driver) {
	t.Helper()
	d := record.New(cfg)
	s := NewState(d, NewExtensions(0, d, nil), opts...)
	d.Reset()
	return s, d
}

// applyLog collects the names of applied test attributes in order.
type applyLog struct {
	names []string
}

func (l *applyLog) String() string { return strings.Join(l.names, ",") }

func (l *applyLog) reset() { l.names = l.names[:0] }

// testAttribute logs its name when applied.
type testAttribute struct {
	typ       AttributeType
	member    uint32
	texture   bool
	name      string
	log       *applyLog
	component *ShaderComponent
}

func newTestAttribute(typ AttributeType, name string, log *applyLog) *testAttribute {
	return &testAttribute{typ: typ, name: name, log: log}
}

func (a *testAttribute) Type() AttributeType      { return a.typ }
func (a *testAttribute) Member() uint32           { return a.member }
func (a *testAttribute) IsTextureAttribute() bool { return a.texture }

func (a *testAttribute) Apply(*State) {
	if a.log != nil {
		a.log.names = append(a.log.names, a.name)
	}
}

func (a *testAttribute) CloneType() Attribute {
	return &testAttribute{typ: a.typ, member: a.member, texture: a.texture, name: "default", log: a.log}
}

func (a *testAttribute) Compare(o Attribute) int {
	return strings.Compare(a.name, o.(*testAttribute).name)
}

func (a *testAttribute) ShaderComponent() *ShaderComponent { return a.component }

// blendLike is a test attribute implying ModeBlend.
type blendLike struct {
	*testAttribute
}

func (blendLike) Modes() []Mode { return []Mode{ModeBlend} }

// testProgram binds itself as the current program object and records
// the uniforms it receives.
type testProgram struct {
	handle   uint32
	applies  int
	uniforms []string
	comp     *ShaderComponent
}

func (p *testProgram) Type() AttributeType               { return AttributeTypeProgram }
func (p *testProgram) Member() uint32                    { return 0 }
func (p *testProgram) IsTextureAttribute() bool          { return false }
func (p *testProgram) CloneType() Attribute              { return &testProgram{} }
func (p *testProgram) Compare(o Attribute) int           { return int(p.handle) - int(o.(*testProgram).handle) }
func (p *testProgram) ShaderComponent() *ShaderComponent { return p.comp }

func (p *testProgram) Apply(s *State) {
	p.applies++
	s.Driver().UseProgram(p.handle)
	if p.handle == 0 {
		s.SetLastAppliedProgramObject(nil)
		return
	}
	s.SetLastAppliedProgramObject(p)
}

func (p *testProgram) Program() Attribute { return p }
func (p *testProgram) Handle() uint32     { return p.handle }

func (p *testProgram) ApplyUniform(u *Uniform) {
	p.uniforms = append(p.uniforms, u.Name())
}

func (p *testProgram) resetUniforms() { p.uniforms = p.uniforms[:0] }

// testComposer returns one program per distinct component list length.
type testComposer struct {
	calls    int
	released []uint32
	programs map[int]*testProgram
}

func (c *testComposer) Program(_ *State, components []*ShaderComponent) Attribute {
	c.calls++
	if c.programs == nil {
		c.programs = make(map[int]*testProgram)
	}
	p, ok := c.programs[len(components)]
	if !ok {
		p = &testProgram{handle: uint32(100 + len(components))}
		c.programs[len(components)] = p
	}
	return p
}

func (c *testComposer) Release(id uint32) { c.released = append(c.released, id) }

// modeSet builds a state set holding a single mode.
func modeSet(name string, m Mode, v Value) *StateSet {
	ss := NewStateSet(name)
	ss.SetMode(m, v)
	return ss
}

// attributeSet builds a state set holding a single attribute.
func attributeSet(name string, a Attribute, v Value) *StateSet {
	ss := NewStateSet(name)
	ss.SetAttribute(a, v)
	return ss
}
