package glstate

import "sync/atomic"

// Stats counts the work done by a State. The counters are cumulative and
// safe to read from any goroutine.
type Stats struct {
	// Applies is the number of Apply and ApplyStateSet calls.
	Applies uint64
	// ModeCalls is the number of glEnable/glDisable calls issued.
	ModeCalls uint64
	// ModeSkips is the number of mode applies elided because the value
	// matched the last applied one or the mode is unsupported.
	ModeSkips uint64
	// AttributeCalls is the number of attribute Apply calls issued.
	AttributeCalls uint64
	// AttributeSkips is the number of attribute applies elided.
	AttributeSkips uint64
	// UniformCalls is the number of uniforms handed to a program.
	UniformCalls uint64
	// TextureUnitSwitches is the number of glActiveTexture calls.
	TextureUnitSwitches uint64
	// ProgramSwitches is the number of times the bound program changed.
	ProgramSwitches uint64
	// GLErrors is the number of GL errors seen by CheckGLErrors.
	GLErrors uint64
}

type counters struct {
	applies             atomic.Uint64
	modeCalls           atomic.Uint64
	modeSkips           atomic.Uint64
	attributeCalls      atomic.Uint64
	attributeSkips      atomic.Uint64
	uniformCalls        atomic.Uint64
	textureUnitSwitches atomic.Uint64
	programSwitches     atomic.Uint64
	glErrors            atomic.Uint64
}

// Stats returns a snapshot of the counters.
func (s *State) Stats() Stats {
	c := &s.counters
	return Stats{
		Applies:             c.applies.Load(),
		ModeCalls:           c.modeCalls.Load(),
		ModeSkips:           c.modeSkips.Load(),
		AttributeCalls:      c.attributeCalls.Load(),
		AttributeSkips:      c.attributeSkips.Load(),
		UniformCalls:        c.uniformCalls.Load(),
		TextureUnitSwitches: c.textureUnitSwitches.Load(),
		ProgramSwitches:     c.programSwitches.Load(),
		GLErrors:            c.glErrors.Load(),
	}
}
