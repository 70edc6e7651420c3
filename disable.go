package glstate

import (
	"os"
	"strings"
)

// DisableEnv is the environment variable holding the default extension
// disable list.
const DisableEnv = "GLSTATE_EXTENSION_DISABLE"

// DisableList forces extensions to be reported unsupported, either on
// every renderer or on renderers whose GL_RENDERER string starts with a
// given prefix. It is the place to work around driver bugs.
//
// The textual form is a ';' separated list of entries. An entry is either
// a ',' separated list of extension names, disabled everywhere, or a
// renderer prefix followed by ':' and such a list:
//
//	GL_ARB_vertex_array_object;Mesa DRI Intel:GL_ARB_texture_float,GL_EXT_blend_color
type DisableList struct {
	rules []disableRule
}

type disableRule struct {
	renderer   string
	extensions []string
}

// ParseDisableList parses the textual form of a disable list. Empty
// entries and names are skipped.
func ParseDisableList(s string) *DisableList {
	l := &DisableList{}
	for entry := range strings.SplitSeq(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		var rule disableRule
		names := entry
		if renderer, rest, ok := strings.Cut(entry, ":"); ok {
			rule.renderer = strings.TrimSpace(renderer)
			names = rest
		}
		for name := range strings.SplitSeq(names, ",") {
			if name = strings.TrimSpace(name); name != "" {
				rule.extensions = append(rule.extensions, name)
			}
		}
		if len(rule.extensions) > 0 {
			l.rules = append(l.rules, rule)
		}
	}
	return l
}

// DisableListFromEnv parses the disable list held in DisableEnv.
func DisableListFromEnv() *DisableList {
	return ParseDisableList(os.Getenv(DisableEnv))
}

// Disabled reports whether ext is disabled on renderer.
func (l *DisableList) Disabled(renderer, ext string) bool {
	if l == nil {
		return false
	}
	for _, r := range l.rules {
		if r.renderer != "" && !strings.HasPrefix(renderer, r.renderer) {
			continue
		}
		for _, name := range r.extensions {
			if name == ext {
				return true
			}
		}
	}
	return false
}

// DisabledFor returns the set of extensions disabled on renderer.
func (l *DisableList) DisabledFor(renderer string) map[string]struct{} {
	out := make(map[string]struct{})
	if l == nil {
		return out
	}
	for _, r := range l.rules {
		if r.renderer != "" && !strings.HasPrefix(renderer, r.renderer) {
			continue
		}
		for _, name := range r.extensions {
			out[name] = struct{}{}
		}
	}
	return out
}

// Empty reports whether the list disables nothing.
func (l *DisableList) Empty() bool { return l == nil || len(l.rules) == 0 }

// String returns the textual form of the list.
func (l *DisableList) String() string {
	if l == nil {
		return ""
	}
	var b strings.Builder
	for i, r := range l.rules {
		if i > 0 {
			b.WriteByte(';')
		}
		if r.renderer != "" {
			b.WriteString(r.renderer)
			b.WriteByte(':')
		}
		b.WriteString(strings.Join(r.extensions, ","))
	}
	return b.String()
}
