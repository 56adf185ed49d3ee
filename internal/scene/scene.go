// Package scene holds the fixed demo scene: where things are, how they are
// lit, and how one frame is assembled from the application state.
package scene

import (
	"LightCaster/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	Shininess float32 = 32
	FixedFov  float32 = 45
	NearPlane float32 = 0.1
	FarPlane  float32 = 100
)

var ClearColor = mgl32.Vec3{0.2, 0.2, 0.2}

// CubePositions are two rows of five along the sides plus three across the back.
var CubePositions = [...]mgl32.Vec3{
	{2.0, -0.5, 0.0},
	{2.0, -0.5, -1.0},
	{2.0, -0.5, -2.0},
	{2.0, -0.5, -3.0},
	{2.0, -0.5, -4.0},
	{-2.0, -0.5, 0.0},
	{-2.0, -0.5, -1.0},
	{-2.0, -0.5, -2.0},
	{-2.0, -0.5, -3.0},
	{-2.0, -0.5, -4.0},

	{0.0, -0.5, -4.0},
	{1.0, -0.5, -4.0},
	{-1.0, -0.5, -4.0},
}

var PointLightPositions = [renderer.NumPointLights]mgl32.Vec3{
	{0.7, 0.2, 2.0},
	{2.3, -3.3, -4.0},
	{-4.0, 2.0, -12.0},
	{0.0, 0.0, -3.0},
}

// SpotParkedPosition is where the flashlight goes when switched off: far
// enough below the ground that its cone lights nothing visible.
var SpotParkedPosition = mgl32.Vec3{0, -20, 0}

var lightAttenuation = renderer.Attenuation{Constant: 1.0, Linear: 0.09, Quadratic: 0.032}

// GroundModelMatrix lays the unit quad flat one unit below the origin and
// stretches it to 200x200. The zero Z scale is harmless since the ground
// program does not transform normals.
func GroundModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(0, -1, 0).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(-90))).
		Mul4(mgl32.Scale3D(200, 200, 0))
}

func CubeModelMatrix(offset mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(offset.X(), offset.Y(), offset.Z())
}

func LoadedModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, -2.5).Mul4(mgl32.Scale3D(0.2, 0.2, 0.2))
}

// Lights builds the frame's light set. The spotlight always points along the
// camera front; it sits at the camera when on and at SpotParkedPosition when off.
func Lights(cam *renderer.Camera, flashlightOn bool) renderer.LightSet {
	var lights renderer.LightSet

	lights.Directional = renderer.DirectionalLight{
		Direction: mgl32.Vec3{-0.2, -1.0, -0.3},
		Ambient:   renderer.Gray(0.05),
		Diffuse:   renderer.Gray(0.4),
		Specular:  renderer.Gray(0.5),
	}

	for i, pos := range PointLightPositions {
		lights.Points[i] = renderer.PointLight{
			Position:    pos,
			Ambient:     renderer.Gray(0.05),
			Diffuse:     renderer.Gray(0.8),
			Specular:    renderer.Gray(1.0),
			Attenuation: lightAttenuation,
		}
	}

	spotPos := SpotParkedPosition
	if flashlightOn {
		spotPos = cam.Position
	}
	lights.Spot = renderer.SpotLight{
		Position:    spotPos,
		Direction:   cam.Front,
		Ambient:     renderer.Gray(0.0),
		Diffuse:     renderer.Gray(1.0),
		Specular:    renderer.Gray(1.0),
		Attenuation: lightAttenuation,
		CutOff:      renderer.CutOffCos(12.5),
		OuterCutOff: renderer.CutOffCos(15.0),
	}

	return lights
}
