package scene

import (
	"LightCaster/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// Target is whatever executes a frame's draw calls. The OpenGL renderer is
// the real one; each Begin*Pass activates the pass program and its textures.
type Target interface {
	Clear(color mgl32.Vec3)
	BeginGroundPass() renderer.UniformSetter
	DrawGround()
	BeginCubePass() renderer.UniformSetter
	DrawCube()
	BeginModelPass() renderer.UniformSetter
	DrawModel()
}

// Frame is the complete plan for one frame. View and Projection are computed
// once and shared by every pass.
type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	ViewPos    mgl32.Vec3
	Lights     renderer.LightSet

	Ground mgl32.Mat4
	Cubes  [len(CubePositions)]mgl32.Mat4
	Model  mgl32.Mat4
}

// Render submits the ground, cube and model passes in that order.
func (f *Frame) Render(t Target) {
	t.Clear(ClearColor)

	u := t.BeginGroundPass()
	f.setCamera(u)
	u.SetMat4(renderer.UniformModel, f.Ground)
	t.DrawGround()

	u = t.BeginCubePass()
	renderer.ApplyLightSet(u, &f.Lights, f.ViewPos, Shininess)
	f.setCamera(u)
	for _, model := range f.Cubes {
		u.SetMat4(renderer.UniformModel, model)
		t.DrawCube()
	}

	u = t.BeginModelPass()
	renderer.ApplyLightSet(u, &f.Lights, f.ViewPos, Shininess)
	f.setCamera(u)
	u.SetMat4(renderer.UniformModel, f.Model)
	t.DrawModel()
}

func (f *Frame) setCamera(u renderer.UniformSetter) {
	u.SetMat4(renderer.UniformView, f.View)
	u.SetMat4(renderer.UniformProjection, f.Projection)
}
