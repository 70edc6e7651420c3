package attrib

import "github.com/gogpu/glstate"

// global is embedded by attributes that have a single slot and are not
// bound per texture unit.
type global struct{}

func (global) Member() uint32 { return 0 }

func (global) IsTextureAttribute() bool { return false }

func (global) ShaderComponent() *glstate.ShaderComponent { return nil }

// compareTypes orders attributes of different types. It reports false when
// both have the same type and the caller must compare parameters.
func compareTypes(a, b glstate.Attribute) (int, bool) {
	if b == nil {
		return 1, true
	}
	if c := glstate.KeyOf(a).Compare(glstate.KeyOf(b)); c != 0 {
		return c, true
	}
	return 0, false
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}
