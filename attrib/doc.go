// Package attrib provides the concrete state attributes applied by a
// glstate.State: blending, depth, face culling, color mask, polygon
// offset, fog, textures and GLSL or WGSL programs.
//
// Fixed-function parameters are expressed with the WebGPU-style enums of
// github.com/gogpu/gputypes and translated to GL enums when applied:
//
//	ss := glstate.NewStateSet("transparent")
//	ss.SetAttributeAndModes(attrib.NewBlendFunc(
//	    gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOneMinusSrcAlpha), glstate.On)
//	ss.SetAttribute(attrib.NewDepth(gputypes.CompareFunctionLessEqual, false), glstate.On)
//
// Attributes are compared by identity in the state cache. Share one
// attribute between state sets to let the cache skip redundant applies.
package attrib
