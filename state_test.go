package glstate

import (
	"testing"

	"github.com/gogpu/glstate/backend/record"
)

func TestPushPopMode(t *testing.T) {
	s, d := newTestState(t, record.Desktop46())

	s.PushStateSet(modeSet("blend", ModeBlend, On))
	s.Apply()
	if got := d.Count("Enable"); got != 1 {
		t.Fatalf("Enable calls = %d, want 1", got)
	}
	if !d.IsEnabled(uint32(ModeBlend)) {
		t.Error("GL_BLEND not enabled after Apply")
	}

	s.PopStateSet()
	s.Apply()
	if got := d.Count("Disable"); got != 1 {
		t.Errorf("Disable calls = %d, want 1", got)
	}
	if d.IsEnabled(uint32(ModeBlend)) {
		t.Error("GL_BLEND still enabled after pop")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	s, d := newTestState(t, record.Desktop46())
	log := &applyLog{}

	ss := NewStateSet("scene")
	ss.SetMode(ModeDepthTest, On)
	ss.SetMode(ModeCullFace, On)
	ss.SetAttribute(newTestAttribute(AttributeTypeDepth, "depth", log), On)
	ss.SetTextureMode(1, ModeTexture2D, On)
	s.PushStateSet(ss)
	s.Apply()

	d.Reset()
	log.reset()
	s.Apply()
	s.Apply()
	if n := d.Count(""); n != 0 {
		t.Errorf("repeated Apply issued %d calls: %v", n, d.Calls())
	}
	if len(log.names) != 0 {
		t.Errorf("repeated Apply re-applied attributes: %s", log)
	}
}

func TestOverrideAndProtected(t *testing.T) {
	tests := []struct {
		name   string
		parent Value
		child  Value
		want   bool
	}{
		{"child wins", On, Off, false},
		{"override parent wins", On | Override, Off, true},
		{"override off parent wins", Off | Override, On, false},
		{"protected child wins", Off | Override, On | Protected, true},
		{"protected without override", Off, On | Protected, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, d := newTestState(t, record.Desktop46())
			s.PushStateSet(modeSet("parent", ModeBlend, tt.parent))
			s.PushStateSet(modeSet("child", ModeBlend, tt.child))
			s.Apply()
			if got := d.IsEnabled(uint32(ModeBlend)); got != tt.want {
				t.Errorf("GL_BLEND = %v, want %v", got, tt.want)
			}

			// ApplyStateSet must resolve the same way as a push.
			s2, d2 := newTestState(t, record.Desktop46())
			s2.PushStateSet(modeSet("parent", ModeBlend, tt.parent))
			s2.ApplyStateSet(modeSet("child", ModeBlend, tt.child))
			if got := d2.IsEnabled(uint32(ModeBlend)); got != tt.want {
				t.Errorf("ApplyStateSet: GL_BLEND = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverrideAttribute(t *testing.T) {
	s, _ := newTestState(t, record.Desktop46())
	log := &applyLog{}
	parent := newTestAttribute(AttributeTypeBlendFunc, "parent", log)
	child := newTestAttribute(AttributeTypeBlendFunc, "child", log)
	protected := newTestAttribute(AttributeTypeBlendFunc, "protected", log)

	s.PushStateSet(attributeSet("parent", parent, Override))
	s.PushStateSet(attributeSet("child", child, Off))
	s.Apply()
	if got := s.LastAppliedAttribute(AttributeTypeBlendFunc, 0); got != parent {
		t.Errorf("applied %v, want the overriding parent", got)
	}

	s.PushStateSet(attributeSet("protected", protected, Protected))
	s.Apply()
	if got := s.LastAppliedAttribute(AttributeTypeBlendFunc, 0); got != protected {
		t.Errorf("applied %v, want the protected child", got)
	}

	s.PopStateSet()
	s.PopStateSet()
	s.Apply()
	if got, want := log.String(), "parent,protected,parent"; got != want {
		t.Errorf("apply order = %q, want %q", got, want)
	}
}

func TestPushPopIsLIFO(t *testing.T) {
	s, d := newTestState(t, record.Desktop46())
	values := []Value{On, Off, On, On, Off}
	for i, v := range values {
		s.PushStateSet(modeSet("level", ModeScissorTest, v))
		s.Apply()
		if got := d.IsEnabled(uint32(ModeScissorTest)); got != v.Enabled() {
			t.Fatalf("push %d: enabled = %v, want %v", i, got, v.Enabled())
		}
	}
	for i := len(values) - 1; i > 0; i-- {
		s.PopStateSet()
		s.Apply()
		if got, want := d.IsEnabled(uint32(ModeScissorTest)), values[i-1].Enabled(); got != want {
			t.Fatalf("pop to %d: enabled = %v, want %v", i-1, got, want)
		}
	}
	s.PopStateSet()
	s.PopStateSet()
	if n := s.StateSetStackSize(); n != 0 {
		t.Errorf("StateSetStackSize() = %d, want 0", n)
	}
}

func TestLazyModeConvergence(t *testing.T) {
	s, d := newTestState(t, record.Desktop46())
	for _, v := range []Value{On, On, Off, On} {
		s.PushStateSet(modeSet("draw", ModeDepthTest, v))
		s.Apply()
		s.PopStateSet()
	}
	// The pops in between leave the mode marked changed; only a differing
	// value reaches the driver.
	calls := d.Count("Enable") + d.Count("Disable")
	if calls != 3 {
		t.Errorf("mode calls = %d, want 3: %v", calls, d.Calls())
	}
	st := s.Stats()
	if st.ModeCalls != 3 {
		t.Errorf("Stats().ModeCalls = %d, want 3", st.ModeCalls)
	}
}

func TestLazyAttributeConvergence(t *testing.T) {
	s, _ := newTestState(t, record.Desktop46())
	log := &applyLog{}
	a := newTestAttribute(AttributeTypeCullFace, "a", log)
	b := newTestAttribute(AttributeTypeCullFace, "b", log)

	for _, attr := range []*testAttribute{a, a, b, a} {
		s.ApplyStateSet(attributeSet("draw", attr, On))
	}
	if got, want := log.String(), "a,b,a"; got != want {
		t.Errorf("applied %q, want %q", got, want)
	}
}

func TestGlobalDefaultAttribute(t *testing.T) {
	s, _ := newTestState(t, record.Desktop46())
	log := &applyLog{}
	a := newTestAttribute(AttributeTypeFog, "fog", log)

	s.PushStateSet(attributeSet("fog", a, On))
	s.Apply()
	s.PopStateSet()
	s.Apply()
	s.Apply()

	if got, want := log.String(), "fog,default"; got != want {
		t.Errorf("applied %q, want %q", got, want)
	}
	def := s.GlobalDefaultAttribute(AttributeTypeFog, 0)
	if def == nil || def.(*testAttribute).name != "default" {
		t.Errorf("GlobalDefaultAttribute() = %v, want the CloneType default", def)
	}

	custom := newTestAttribute(AttributeTypeFog, "custom", log)
	s.SetGlobalDefaultAttribute(custom)
	s.PushStateSet(attributeSet("fog", a, On))
	s.Apply()
	s.PopStateSet()
	s.Apply()
	if got, want := log.String(), "fog,default,fog,custom"; got != want {
		t.Errorf("applied %q, want %q", got, want)
	}
}

func TestGlobalDefaultMode(t *testing.T) {
	s, d := newTestState(t, record.Desktop46())
	s.SetGlobalDefaultModeValue(ModeDither, true)
	if !s.GlobalDefaultModeValue(ModeDither) {
		t.Fatal("GlobalDefaultModeValue() = false, want true")
	}
	s.Apply()
	if !d.IsEnabled(uint32(ModeDither)) {
		t.Error("global default not applied to an empty stack")
	}

	s.PushStateSet(modeSet("nodither", ModeDither, Off))
	s.Apply()
	s.PopStateSet()
	s.Apply()
	if !d.IsEnabled(uint32(ModeDither)) {
		t.Error("global default not restored after pop")
	}
}

func TestGlobalDefaultTextureUnit(t *testing.T) {
	s, d := newTestState(t, record.Desktop46())
	if s.GlobalDefaultTextureModeValue(1, ModeTexture2D) {
		t.Error("GlobalDefaultTextureModeValue() = true before it was set")
	}
	if def := s.GlobalDefaultTextureAttribute(1, AttributeTypeTexture); def != nil {
		t.Errorf("GlobalDefaultTextureAttribute() = %v before it was set", def)
	}

	s.SetGlobalDefaultTextureModeValue(1, ModeTexture2D, true)
	log := &applyLog{}
	tex := newTestAttribute(AttributeTypeTexture, "white", log)
	tex.texture = true
	s.SetGlobalDefaultTextureAttribute(1, tex)

	if !s.GlobalDefaultTextureModeValue(1, ModeTexture2D) {
		t.Error("GlobalDefaultTextureModeValue() = false, want true")
	}
	if def := s.GlobalDefaultTextureAttribute(1, AttributeTypeTexture); def != tex {
		t.Errorf("GlobalDefaultTextureAttribute() = %v, want %v", def, tex)
	}
	if s.GlobalDefaultTextureModeValue(0, ModeTexture2D) {
		t.Error("texture unit 0 picked up the default of unit 1")
	}

	s.Apply()
	if got, want := log.String(), "white"; got != want {
		t.Errorf("applied %q, want %q", got, want)
	}
	if !d.IsEnabled(uint32(ModeTexture2D)) {
		t.Error("texture mode default not applied")
	}
}

func TestApplyStateSetDoesNotPush(t *testing.T) {
	s, d := newTestState(t, record.Desktop46())

	s.ApplyStateSet(modeSet("transient", ModeStencilTest, On))
	if !d.IsEnabled(uint32(ModeStencilTest)) {
		t.Fatal("ApplyStateSet did not enable the mode")
	}
	if n := s.StateSetStackSize(); n != 0 {
		t.Errorf("StateSetStackSize() = %d, want 0", n)
	}

	s.Apply()
	if d.IsEnabled(uint32(ModeStencilTest)) {
		t.Error("Apply did not restore the stacked value")
	}
}

func TestApplyStateSetNil(t *testing.T) {
	s, d := newTestState(t, record.Desktop46())
	s.PushStateSet(modeSet("blend", ModeBlend, On))
	s.ApplyStateSet(nil)
	if !d.IsEnabled(uint32(ModeBlend)) {
		t.Error("ApplyStateSet(nil) did not behave like Apply")
	}
}

func TestPushNilStateSet(t *testing.T) {
	s, _ := newTestState(t, record.Desktop46())
	s.PushStateSet(nil)
	if n := s.StateSetStackSize(); n != 1 {
		t.Fatalf("StateSetStackSize() = %d, want 1", n)
	}
	s.PopStateSet()
	s.PopStateSet()
	if n := s.StateSetStackSize(); n != 0 {
		t.Errorf("StateSetStackSize() = %d, want 0", n)
	}
}

func TestInsertAndRemoveStateSet(t *testing.T) {
	s, d := newTestState(t, record.Desktop46())
	a := modeSet("a", ModeBlend, Off)
	c := modeSet("c", ModeBlend, On)
	s.PushStateSet(a)
	s.PushStateSet(c)
	s.Apply()
	if !d.IsEnabled(uint32(ModeBlend)) {
		t.Fatal("GL_BLEND should follow the top set")
	}

	b := modeSet("b", ModeBlend, Off|Override)
	s.InsertStateSet(0, b)
	s.Apply()
	if d.IsEnabled(uint32(ModeBlend)) {
		t.Error("inserted override at the bottom did not win")
	}
	stack := s.StateSetStack()
	if len(stack) != 3 || stack[0] != b || stack[1] != a || stack[2] != c {
		t.Errorf("stack after insert = %v", names(stack))
	}

	s.RemoveStateSet(0)
	s.Apply()
	if !d.IsEnabled(uint32(ModeBlend)) {
		t.Error("removing the override did not restore the top set")
	}

	s.RemoveStateSet(5)
	if n := s.StateSetStackSize(); n != 2 {
		t.Errorf("out of range remove changed the stack size to %d", n)
	}

	s.InsertStateSet(10, b)
	if stack := s.StateSetStack(); stack[len(stack)-1] != b {
		t.Error("insert beyond the top did not append")
	}
}

func names(stack []*StateSet) []string {
	out := make([]string, len(stack))
	for i, ss := range stack {
		out[i] = ss.Name()
	}
	return out
}

func TestPopStateSetStackToSize(t *testing.T) {
	s, _ := newTestState(t, record.Desktop46())
	for range 5 {
		s.PushStateSet(NewStateSet("level"))
	}
	s.PopStateSetStackToSize(2)
	if n := s.StateSetStackSize(); n != 2 {
		t.Errorf("StateSetStackSize() = %d, want 2", n)
	}
	s.PopStateSetStackToSize(4)
	if n := s.StateSetStackSize(); n != 2 {
		t.Errorf("growing size changed the stack to %d", n)
	}
}

func TestPopAllStateSets(t *testing.T) {
	s, _ := newTestState(t, record.Desktop46())
	prog := &testProgram{handle: 7}
	ss := attributeSet("program", prog, On)
	s.PushStateSet(ss)
	s.Apply()
	if s.LastAppliedProgramObject() != prog {
		t.Fatal("program not bound")
	}
	s.PopAllStateSets()
	if s.StateSetStackSize() != 0 {
		t.Error("stack not empty")
	}
	if s.LastAppliedProgramObject() != nil {
		t.Error("program not forgotten")
	}
}

func TestCaptureCurrentState(t *testing.T) {
	s, _ := newTestState(t, record.Desktop46())
	log := &applyLog{}
	depth := newTestAttribute(AttributeTypeDepth, "depth", log)

	parent := NewStateSet("parent")
	parent.SetMode(ModeBlend, On|Override)
	parent.SetAttribute(depth, On)
	parent.SetDefine("SHADOWS", "1", On)
	child := NewStateSet("child")
	child.SetMode(ModeBlend, Off)
	child.SetTextureMode(2, ModeTexture2D, On)
	s.PushStateSet(parent)
	s.PushStateSet(child)

	got := NewStateSet("captured")
	got.SetMode(ModeFog, On)
	s.CaptureCurrentState(got)

	if v, ok := got.Mode(ModeBlend); !ok || v != On|Override {
		t.Errorf("captured GL_BLEND = %v, %v; want ON|OVERRIDE", v, ok)
	}
	if _, ok := got.Mode(ModeFog); ok {
		t.Error("capture kept a previous entry")
	}
	if av, ok := got.Attribute(AttributeTypeDepth, 0); !ok || av.Attribute != depth {
		t.Error("attribute not captured")
	}
	if v, ok := got.TextureMode(2, ModeTexture2D); !ok || !v.Enabled() {
		t.Error("texture mode not captured")
	}
	if dv, ok := got.Define("SHADOWS"); !ok || dv.Text != "1" {
		t.Error("define not captured")
	}
}

func TestReset(t *testing.T) {
	s, d := newTestState(t, record.Desktop46())
	log := &applyLog{}
	s.PushStateSet(modeSet("blend", ModeBlend, On))
	s.PushStateSet(attributeSet("depth", newTestAttribute(AttributeTypeDepth, "depth", log), On))
	s.Apply()
	s.SetActiveTextureUnit(2)

	s.Reset()
	if n := s.StateSetStackSize(); n != 0 {
		t.Errorf("StateSetStackSize() = %d, want 0", n)
	}
	if u := s.ActiveTextureUnit(); u != -1 {
		t.Errorf("ActiveTextureUnit() = %d, want -1", u)
	}

	d.Reset()
	s.Apply()
	// Every tracked mode is re-issued at its global default.
	if got := d.Count("Disable"); got != 1 {
		t.Errorf("Disable calls after Reset = %d, want 1", got)
	}
	if got, want := log.String(), "depth,default"; got != want {
		t.Errorf("applied %q, want %q", got, want)
	}
}

func TestDirtyAllModes(t *testing.T) {
	s, d := newTestState(t, record.Desktop46())
	s.PushStateSet(modeSet("blend", ModeBlend, On))
	s.Apply()
	d.Reset()

	s.DirtyAllModes()
	s.Apply()
	if got := d.Count("Enable"); got != 1 {
		t.Errorf("Enable calls after DirtyAllModes = %d, want 1", got)
	}
}

func TestDirtyAllAttributes(t *testing.T) {
	s, _ := newTestState(t, record.Desktop46())
	log := &applyLog{}
	s.PushStateSet(attributeSet("fog", newTestAttribute(AttributeTypeFog, "fog", log), On))
	s.Apply()
	s.DirtyAllAttributes()
	s.Apply()
	if got, want := log.String(), "fog,fog"; got != want {
		t.Errorf("applied %q, want %q", got, want)
	}
}

func TestHaveApplied(t *testing.T) {
	s, d := newTestState(t, record.Desktop46())
	log := &applyLog{}

	s.HaveAppliedMode(ModeBlend, On)
	if !s.LastAppliedMode(ModeBlend) {
		t.Error("LastAppliedMode() = false after HaveAppliedMode(On)")
	}
	s.Apply()
	if got := d.Count("Disable"); got != 1 {
		t.Errorf("Disable calls = %d, want 1", got)
	}

	fog := newTestAttribute(AttributeTypeFog, "fog", log)
	s.PushStateSet(attributeSet("fog", fog, On))
	s.HaveAppliedAttribute(fog)
	s.Apply()
	if len(log.names) != 0 {
		t.Errorf("attribute applied externally was re-applied: %s", log)
	}

	s.HaveAppliedAttributeType(AttributeTypeFog, 0)
	s.Apply()
	if got := log.String(); got != "fog" {
		t.Errorf("applied %q after HaveAppliedAttributeType, want fog", got)
	}

	d.Reset()
	s.HaveAppliedModeUnknown(ModeBlend)
	s.Apply()
	if got := d.Count("Disable") + d.Count("Enable"); got != 1 {
		t.Errorf("mode calls after HaveAppliedModeUnknown = %d, want 1", got)
	}
}

func TestModeValidity(t *testing.T) {
	s, d := newTestState(t, record.Desktop46())
	s.SetModeValidity(ModeFog, false)
	if s.ModeValidity(ModeFog) {
		t.Fatal("ModeValidity() = true after SetModeValidity(false)")
	}
	s.PushStateSet(modeSet("fog", ModeFog, On))
	s.Apply()
	if d.Count("Enable") != 0 {
		t.Error("invalid mode reached the driver")
	}
	if s.ApplyMode(ModeFog, true) {
		t.Error("ApplyMode() of an invalid mode reported a change")
	}

	core, cd := newTestState(t, record.Core33())
	if core.ModeValidity(ModeLighting) {
		t.Error("GL_LIGHTING valid on a core profile")
	}
	core.ApplyStateSet(modeSet("lighting", ModeLighting, On))
	if cd.Count("Enable") != 0 {
		t.Error("fixed-function mode reached a core profile driver")
	}
}

func TestApplyModeImmediate(t *testing.T) {
	s, d := newTestState(t, record.Desktop46())
	s.PushStateSet(modeSet("blend", ModeBlend, On))
	s.Apply()

	restore := s.ApplyModeScoped(ModeBlend, false)
	if d.IsEnabled(uint32(ModeBlend)) {
		t.Error("ApplyModeScoped did not disable")
	}
	restore()
	if !d.IsEnabled(uint32(ModeBlend)) {
		t.Error("restore did not re-enable")
	}

	s.ApplyMode(ModeBlend, false)
	s.Apply()
	if !d.IsEnabled(uint32(ModeBlend)) {
		t.Error("Apply did not restore the stacked value after ApplyMode")
	}
}

func TestApplyAttributeImmediate(t *testing.T) {
	s, _ := newTestState(t, record.Desktop46())
	log := &applyLog{}
	stacked := newTestAttribute(AttributeTypeColorMask, "stacked", log)
	direct := newTestAttribute(AttributeTypeColorMask, "direct", log)

	s.PushStateSet(attributeSet("mask", stacked, On))
	s.Apply()
	if !s.ApplyAttribute(direct) {
		t.Error("ApplyAttribute() = false, want true")
	}
	if s.ApplyAttribute(direct) {
		t.Error("second ApplyAttribute() = true, want false")
	}
	s.Apply()
	if got, want := log.String(), "stacked,direct,stacked"; got != want {
		t.Errorf("applied %q, want %q", got, want)
	}
}

func TestDrawReadBuffer(t *testing.T) {
	s, d := newTestState(t, record.Desktop46())
	s.SetDrawBuffer(GLBack)
	s.SetDrawBuffer(GLBack)
	s.SetReadBuffer(GLFront)
	if got := d.Count("DrawBuffer"); got != 1 {
		t.Errorf("DrawBuffer calls = %d, want 1", got)
	}
	if buf, ok := s.ReadBuffer(); !ok || buf != GLFront {
		t.Errorf("ReadBuffer() = %#x, %v", buf, ok)
	}
	s.Reset()
	s.SetDrawBuffer(GLBack)
	if got := d.Count("DrawBuffer"); got != 2 {
		t.Errorf("DrawBuffer calls after Reset = %d, want 2", got)
	}
}

func TestStats(t *testing.T) {
	s, _ := newTestState(t, record.Desktop46())
	log := &applyLog{}
	s.PushStateSet(modeSet("blend", ModeBlend, On))
	s.PushStateSet(attributeSet("fog", newTestAttribute(AttributeTypeFog, "fog", log), On))
	s.Apply()
	s.Apply()

	st := s.Stats()
	if st.Applies != 2 {
		t.Errorf("Applies = %d, want 2", st.Applies)
	}
	if st.ModeCalls != 1 || st.AttributeCalls != 1 {
		t.Errorf("ModeCalls, AttributeCalls = %d, %d, want 1, 1", st.ModeCalls, st.AttributeCalls)
	}
}
