// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build gl

package gogl

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/glstate"
)

// WindowConfig describes the GLFW window and context to create.
type WindowConfig struct {
	Title  string
	Width  int
	Height int

	// Hidden creates an invisible window, which is enough to own a
	// context for probing and benchmarks.
	Hidden bool

	// Major and Minor request a context version. Zero leaves the
	// choice to GLFW.
	Major, Minor int

	// Core requests a core profile context.
	Core bool
}

// Window is a GLFW window whose context is current on the creating thread.
type Window struct {
	win    *glfw.Window
	driver *Driver
}

var (
	glfwMu    sync.Mutex
	glfwUsers int
)

func acquireGLFW() error {
	glfwMu.Lock()
	defer glfwMu.Unlock()
	if glfwUsers == 0 {
		if err := glfw.Init(); err != nil {
			return fmt.Errorf("gogl: glfw init: %w", err)
		}
	}
	glfwUsers++
	return nil
}

func releaseGLFW() {
	glfwMu.Lock()
	defer glfwMu.Unlock()
	glfwUsers--
	if glfwUsers == 0 {
		glfw.Terminate()
	}
}

// NewWindow creates a window and makes its context current. The caller
// must have locked the goroutine to its OS thread with
// runtime.LockOSThread and keep using the Window from that thread.
func NewWindow(cfg WindowConfig) (*Window, error) {
	if err := acquireGLFW(); err != nil {
		return nil, err
	}
	if cfg.Width <= 0 {
		cfg.Width = 64
	}
	if cfg.Height <= 0 {
		cfg.Height = 64
	}
	if cfg.Title == "" {
		cfg.Title = "glstate"
	}

	glfw.DefaultWindowHints()
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
	if cfg.Major > 0 {
		glfw.WindowHint(glfw.ContextVersionMajor, cfg.Major)
		glfw.WindowHint(glfw.ContextVersionMinor, cfg.Minor)
	}
	if cfg.Core {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		releaseGLFW()
		return nil, fmt.Errorf("gogl: create window: %w", err)
	}
	win.MakeContextCurrent()

	d, err := NewDriver(procAddress)
	if err != nil {
		win.Destroy()
		releaseGLFW()
		return nil, fmt.Errorf("gogl: load entry points: %w", err)
	}
	glstate.Logger().Info("gogl: context created",
		"version", d.GetString(glstate.GLVersion),
		"renderer", d.GetString(glstate.GLRenderer))
	return &Window{win: win, driver: d}, nil
}

func procAddress(name string) unsafe.Pointer {
	return glfw.GetProcAddress(name)
}

// Driver returns the GL driver bound to the window's context.
func (w *Window) Driver() *Driver { return w.driver }

// SwapBuffers presents the back buffer and polls window events.
func (w *Window) SwapBuffers() {
	w.win.SwapBuffers()
	glfw.PollEvents()
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// Destroy destroys the window and its context.
func (w *Window) Destroy() {
	if w.win == nil {
		return
	}
	w.win.Destroy()
	w.win = nil
	releaseGLFW()
}
