// Package glstate provides a per-context OpenGL state cache.
//
// # Overview
//
// A scene renderer describes the state of each draw as a stack of
// StateSets: modes (glEnable capabilities), attributes (blend function,
// depth test, program, textures), uniforms and shader defines. The State
// of a context keeps one stack per key, merges pushed StateSets with
// override and protection rules, and issues a GL call only when the value
// it resolves for a key differs from the one last sent to the driver.
//
//	s := glstate.NewState(driver, nil)
//
//	scene := glstate.NewStateSet("scene")
//	scene.SetMode(glstate.ModeDepthTest, glstate.On)
//	s.PushStateSet(scene)
//
//	transparent := glstate.NewStateSet("transparent")
//	transparent.SetAttributeAndModes(attrib.NewBlendFunc(
//	    gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOneMinusSrcAlpha), glstate.On)
//	s.ApplyStateSet(transparent)
//	// draw ...
//
//	s.PopStateSet()
//	s.Apply()
//
// # Override and protection
//
// When the top of a key's stack carries Override, later pushes that are
// not Protected are replaced by a copy of the top, so a parent can force
// a value on a whole subtree. Protected entries opt out of that.
//
// # Extensions
//
// Extensions holds the capability table of a context: parsed GL and GLSL
// versions, extension flags and optional entry points resolved with
// fallback names. A DisableList, read from the GLSTATE_EXTENSION_DISABLE
// environment variable by default, forces extensions off per renderer.
// Registry maps context IDs to tables and ContextSet pairs each table with
// the State of its context.
//
// # Threading
//
// A State and its Extensions belong to one context and must only be used
// by the thread that has the context current. Registry and ContextSet are
// safe for concurrent use, as is the dynamic object counter of a State.
//
// # Logging
//
// glstate logs through log/slog. Logging is silent until SetLogger is
// called.
package glstate
