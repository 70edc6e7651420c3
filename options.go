package glstate

// Option configures a State during creation.
// Use functional options to customize State behavior.
//
// Example:
//
//	// Plain state cache
//	s := glstate.NewState(driver, ext)
//
//	// Check GL errors after every attribute and compose shaders
//	s := glstate.NewState(driver, ext,
//	    glstate.WithCheckGLErrors(glstate.OncePerAttribute),
//	    glstate.WithShaderComposer(composer))
type Option func(*stateOptions)

// stateOptions holds optional configuration for State creation.
type stateOptions struct {
	contextID         uint32
	checkGLErrors     CheckGLErrors
	composer          ShaderComposer
	shaderComposition bool
	uniformMatrices   bool
	completed         CompletedCallback
	vertexArrayObject bool
}

// defaultOptions returns the default state options.
func defaultOptions() stateOptions {
	return stateOptions{
		checkGLErrors: OncePerFrame,
	}
}

// WithContextID sets the ID of the graphics context the state belongs to.
// Per-context resources such as compiled programs are keyed by this ID.
func WithContextID(id uint32) Option {
	return func(o *stateOptions) {
		o.contextID = id
	}
}

// WithCheckGLErrors sets how often glGetError is polled.
func WithCheckGLErrors(c CheckGLErrors) Option {
	return func(o *stateOptions) {
		o.checkGLErrors = c
	}
}

// WithShaderComposer installs a composer and enables shader composition.
//
// When enabled, a state set stack that does not bind a program gets one
// built from the shader components of the attributes currently applied.
func WithShaderComposer(c ShaderComposer) Option {
	return func(o *stateOptions) {
		o.composer = c
		o.shaderComposition = c != nil
	}
}

// WithShaderComposition toggles shader composition without changing the
// composer.
func WithShaderComposition(enabled bool) Option {
	return func(o *stateOptions) {
		o.shaderComposition = enabled
	}
}

// WithModelViewAndProjectionUniforms makes the state publish its matrices
// as uniforms to the bound program, for contexts without fixed-function
// matrix stacks.
func WithModelViewAndProjectionUniforms(enabled bool) Option {
	return func(o *stateOptions) {
		o.uniformMatrices = enabled
	}
}

// WithCompletedCallback registers the callback fired when the dynamic
// object count reaches zero.
func WithCompletedCallback(cb CompletedCallback) Option {
	return func(o *stateOptions) {
		o.completed = cb
	}
}

// WithVertexArrayObject makes the state allocate a global vertex array
// object when the context supports them.
func WithVertexArrayObject(enabled bool) Option {
	return func(o *stateOptions) {
		o.vertexArrayObject = enabled
	}
}
