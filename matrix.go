package glstate

import "github.com/go-gl/mathgl/mgl32"

// Names of the matrix uniforms published when matrix uniforms are on.
const (
	ModelViewMatrixUniform           = "glstate_ModelViewMatrix"
	ProjectionMatrixUniform          = "glstate_ProjectionMatrix"
	ModelViewProjectionMatrixUniform = "glstate_ModelViewProjectionMatrix"
	NormalMatrixUniform              = "glstate_NormalMatrix"
)

type matrixState struct {
	projection mgl32.Mat4
	modelView  mgl32.Mat4

	initialView        mgl32.Mat4
	initialInverseView mgl32.Mat4

	useUniforms   bool
	uniformsDirty bool
	modelViewU    *Uniform
	projectionU   *Uniform
	mvpU          *Uniform
	normalU       *Uniform
}

func (ms *matrixState) init(useUniforms bool) {
	ms.projection = mgl32.Ident4()
	ms.modelView = mgl32.Ident4()
	ms.initialView = mgl32.Ident4()
	ms.initialInverseView = mgl32.Ident4()
	ms.setUseUniforms(useUniforms)
}

func (ms *matrixState) setUseUniforms(on bool) {
	ms.useUniforms = on
	if !on || ms.modelViewU != nil {
		return
	}
	ms.modelViewU = NewMat4Uniform(ModelViewMatrixUniform, ms.modelView)
	ms.projectionU = NewMat4Uniform(ProjectionMatrixUniform, ms.projection)
	ms.mvpU = NewMat4Uniform(ModelViewProjectionMatrixUniform, ms.projection.Mul4(ms.modelView))
	ms.normalU = NewMat3Uniform(NormalMatrixUniform, normalMatrix(ms.modelView))
	ms.uniformsDirty = true
}

func (ms *matrixState) reset() {
	ms.projection = mgl32.Ident4()
	ms.modelView = mgl32.Ident4()
	if ms.useUniforms {
		ms.updateUniforms()
	}
}

func (ms *matrixState) markUniformsDirty() { ms.uniformsDirty = true }

func (ms *matrixState) updateUniforms() {
	ms.modelViewU.SetMat4(ms.modelView)
	ms.projectionU.SetMat4(ms.projection)
	ms.mvpU.SetMat4(ms.projection.Mul4(ms.modelView))
	ms.normalU.SetMat3(normalMatrix(ms.modelView))
	ms.uniformsDirty = true
}

// normalMatrix returns the inverse transpose of the upper 3x3 of m.
func normalMatrix(m mgl32.Mat4) mgl32.Mat3 {
	return m.Mat3().Inv().Transpose()
}

// SetUseModelViewAndProjectionUniforms toggles publishing the matrices as
// uniforms to the bound program.
func (s *State) SetUseModelViewAndProjectionUniforms(on bool) {
	s.matrices.setUseUniforms(on)
	if on {
		s.matrices.updateUniforms()
	}
}

// UseModelViewAndProjectionUniforms reports whether matrix uniforms are on.
func (s *State) UseModelViewAndProjectionUniforms() bool { return s.matrices.useUniforms }

// MatrixUniforms returns the model-view, projection, model-view-projection
// and normal matrix uniforms, or nils when matrix uniforms are off.
func (s *State) MatrixUniforms() (modelView, projection, mvp, normal *Uniform) {
	m := &s.matrices
	return m.modelViewU, m.projectionU, m.mvpU, m.normalU
}

// ApplyProjectionMatrix sets the projection matrix. A nil matrix selects
// identity. The fixed-function matrix is loaded when the context has one.
func (s *State) ApplyProjectionMatrix(m *mgl32.Mat4) {
	p := mgl32.Ident4()
	if m != nil {
		p = *m
	}
	if p == s.matrices.projection {
		return
	}
	s.matrices.projection = p
	if s.matrices.useUniforms {
		s.matrices.updateUniforms()
	}
	if s.ext.IsFixedFunctionSupported {
		s.driver.MatrixMode(GLProjection)
		s.driver.LoadMatrixf((*[16]float32)(&s.matrices.projection))
		s.driver.MatrixMode(GLModelView)
	}
}

// ApplyModelViewMatrix sets the model-view matrix. A nil matrix selects
// identity.
func (s *State) ApplyModelViewMatrix(m *mgl32.Mat4) {
	mv := mgl32.Ident4()
	if m != nil {
		mv = *m
	}
	if mv == s.matrices.modelView {
		return
	}
	s.matrices.modelView = mv
	if s.matrices.useUniforms {
		s.matrices.updateUniforms()
	}
	if s.ext.IsFixedFunctionSupported {
		s.driver.LoadMatrixf((*[16]float32)(&s.matrices.modelView))
	}
	s.applyMatrixUniforms()
}

// SetInitialViewMatrix records the view matrix of the camera at the start
// of the frame and its inverse, for attributes that need eye-to-world
// transforms.
func (s *State) SetInitialViewMatrix(m mgl32.Mat4) {
	s.matrices.initialView = m
	s.matrices.initialInverseView = m.Inv()
}

// InitialViewMatrix returns the matrix set by SetInitialViewMatrix.
func (s *State) InitialViewMatrix() mgl32.Mat4 { return s.matrices.initialView }

// InitialInverseViewMatrix returns the inverse of the initial view matrix.
func (s *State) InitialInverseViewMatrix() mgl32.Mat4 { return s.matrices.initialInverseView }

// applyMatrixUniforms sends the matrix uniforms to the bound program when
// they changed since the last send.
func (s *State) applyMatrixUniforms() {
	m := &s.matrices
	if !m.useUniforms || !m.uniformsDirty || s.lastAppliedProgram == nil {
		return
	}
	s.applyUniform(m.modelViewU)
	s.applyUniform(m.projectionU)
	s.applyUniform(m.mvpU)
	s.applyUniform(m.normalU)
	m.uniformsDirty = false
}
