// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package record

import "strings"

// GL query enums answered by the driver.
const (
	glVendor                 = 0x1F00
	glRenderer               = 0x1F01
	glVersion                = 0x1F02
	glExtensions             = 0x1F03
	glShadingLanguageVersion = 0x8B8C
	glNumExtensions          = 0x821D
	glContextProfileMask     = 0x9126
	glMaxTextureUnits        = 0x84E2
	glMaxTextureCoords       = 0x8871
	glMaxTextureImageUnits   = 0x8872
	glMaxVertexAttribs       = 0x8869
	glCompileStatus          = 0x8B81
	glLinkStatus             = 0x8B82
	glInfoLogLength          = 0x8B84
)

// Config describes the GL implementation the driver impersonates.
type Config struct {
	Vendor      string
	Renderer    string
	Version     string
	GLSLVersion string
	Extensions  []string

	// Integers answers GetInteger. Missing keys read as 0.
	Integers map[uint32]int32

	// Missing lists symbols ProcAddress does not resolve. When Symbols is
	// non-nil only the names it lists resolve.
	Missing []string
	Symbols []string

	// CompileError makes any shader whose source contains it fail to
	// compile.
	CompileError string
}

// Desktop46 models a 4.6 compatibility profile with 16 texture units.
func Desktop46() Config {
	return Config{
		Vendor:      "gogpu",
		Renderer:    "Record 4.6",
		Version:     "4.6.0 Compatibility Profile Record",
		GLSLVersion: "4.60 Record",
		Extensions: []string{
			"GL_ARB_compatibility",
			"GL_ARB_gl_spirv",
			"GL_ARB_vertex_array_object",
			"GL_ARB_instanced_arrays",
			"GL_KHR_debug",
			"GL_EXT_texture_filter_anisotropic",
		},
		Integers: map[uint32]int32{
			glContextProfileMask:   0x2,
			glMaxTextureUnits:      4,
			glMaxTextureCoords:     8,
			glMaxTextureImageUnits: 16,
			glMaxVertexAttribs:     16,
		},
		CompileError: "#error",
	}
}

// Core33 models a 3.3 core profile.
func Core33() Config {
	return Config{
		Vendor:      "gogpu",
		Renderer:    "Record Core",
		Version:     "3.3.0 Core Profile Record",
		GLSLVersion: "3.30 Record",
		Extensions: []string{
			"GL_ARB_vertex_array_object",
			"GL_ARB_instanced_arrays",
		},
		Integers: map[uint32]int32{
			glContextProfileMask:   0x1,
			glMaxTextureImageUnits: 16,
			glMaxVertexAttribs:     16,
		},
		CompileError: "#error",
	}
}

// Legacy14 models a GL 1.4 implementation with 4 fixed-function texture
// units and no shaders.
func Legacy14() Config {
	return Config{
		Vendor:      "gogpu",
		Renderer:    "Record Legacy",
		Version:     "1.4 Record",
		GLSLVersion: "",
		Extensions:  []string{"GL_ARB_multitexture", "GL_EXT_blend_color"},
		Integers: map[uint32]int32{
			glMaxTextureUnits: 4,
		},
		Missing: []string{
			"glGetStringi", "glSpecializeShader", "glSpecializeShaderARB",
			"glShaderBinary", "glObjectLabel", "glObjectLabelKHR",
			"glGenVertexArrays", "glGenVertexArraysOES", "glGenVertexArraysAPPLE",
			"glBindVertexArray", "glBindVertexArrayOES", "glBindVertexArrayAPPLE",
		},
	}
}

// GLES2 models an OpenGL ES 2.0 implementation.
func GLES2() Config {
	return Config{
		Vendor:      "gogpu",
		Renderer:    "Record ES",
		Version:     "OpenGL ES 2.0 Record",
		GLSLVersion: "OpenGL ES GLSL ES 1.00",
		Extensions:  []string{"GL_OES_vertex_array_object", "GL_EXT_blend_minmax"},
		Integers: map[uint32]int32{
			glMaxTextureImageUnits: 8,
			glMaxVertexAttribs:     8,
		},
		Missing: []string{"glGetStringi", "glSpecializeShader", "glSpecializeShaderARB"},
	}
}

func (c Config) extensionString() string {
	return strings.Join(c.Extensions, " ")
}
