// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gogl implements glstate.Driver on top of the go-gl OpenGL 4.6
// compatibility bindings, with a GLFW helper to create a context.
//
// The package requires cgo and is only built with the gl build tag:
//
//	go build -tags gl ./...
//
// Typical use:
//
//	runtime.LockOSThread()
//	win, err := gogl.NewWindow(gogl.WindowConfig{Hidden: true})
//	if err != nil { ... }
//	defer win.Destroy()
//	s := glstate.NewState(win.Driver(), nil)
package gogl
