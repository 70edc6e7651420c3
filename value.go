package glstate

import "strings"

// Value carries the on/off state of a mode together with the flags that
// control how a pushed entry interacts with the entries below it.
type Value uint32

const (
	// Off disables a mode.
	Off Value = 0x0
	// On enables a mode.
	On Value = 0x1
	// Override makes the entry win over entries pushed later that are not
	// Protected.
	Override Value = 0x2
	// Protected makes the entry immune to an Override below it.
	Protected Value = 0x4
	// Inherit asks the state set to drop its own entry and use the parent's.
	Inherit Value = 0x8
)

// Enabled reports whether the On bit is set.
func (v Value) Enabled() bool { return v&On != 0 }

// IsOverride reports whether the Override bit is set.
func (v Value) IsOverride() bool { return v&Override != 0 }

// IsProtected reports whether the Protected bit is set.
func (v Value) IsProtected() bool { return v&Protected != 0 }

// overrides reports whether a stack top with flags v suppresses an
// incoming entry with flags incoming.
func (v Value) overrides(incoming Value) bool {
	return v.IsOverride() && !incoming.IsProtected()
}

// String returns the flags joined with "|", e.g. "ON|OVERRIDE".
func (v Value) String() string {
	parts := make([]string, 0, 4)
	if v.Enabled() {
		parts = append(parts, "ON")
	} else {
		parts = append(parts, "OFF")
	}
	if v.IsOverride() {
		parts = append(parts, "OVERRIDE")
	}
	if v.IsProtected() {
		parts = append(parts, "PROTECTED")
	}
	if v&Inherit != 0 {
		parts = append(parts, "INHERIT")
	}
	return strings.Join(parts, "|")
}
