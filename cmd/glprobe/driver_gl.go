//go:build gl

package main

import (
	"runtime"

	_ "github.com/gogpu/glstate/backend/gogl"
)

// GLFW and the GL context must stay on the main thread.
func init() { runtime.LockOSThread() }
