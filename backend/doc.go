// Package backend is the registry of GL drivers glstate can run on.
//
// Drivers register a Factory under a name, typically from an init()
// function. The recording drivers of backend/record are registered by
// this package and always available:
//
//	d, release, err := backend.Open("core33")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer release()
//	s := glstate.NewState(d, glstate.NewExtensions(0, d, nil))
//
// Importing backend/gogl in a build with the gl tag adds the "gl" driver,
// which Default prefers:
//
//	import _ "github.com/gogpu/glstate/backend/gogl"
//
// # Available Drivers
//
//   - "gl": go-gl on a hidden GLFW window (gl build tag)
//   - "desktop46": recording driver, 4.6 compatibility profile
//   - "core33": recording driver, 3.3 core profile
//   - "legacy14": recording driver, GL 1.4 fixed function
//   - "gles2": recording driver, OpenGL ES 2.0
package backend
