// camera.go
package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type CameraMovement int

const (
	Forward CameraMovement = iota
	Backward
	Left
	Right
)

const (
	DefaultYaw         float32 = -90.0
	DefaultPitch       float32 = 0.0
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultFov         float32 = 45.0

	MinFov   float32 = 1.0
	MaxFov   float32 = 45.0
	MaxPitch float32 = 89.0
)

type Camera struct {
	// HOT DATA - Accessed every frame for view/projection calculations
	Position mgl32.Vec3 // Camera position in world space
	Front    mgl32.Vec3 // Forward direction vector
	Up       mgl32.Vec3 // Up direction vector
	Right    mgl32.Vec3 // Right direction vector
	Pitch    float32    // Pitch angle in degrees
	Yaw      float32    // Yaw angle in degrees

	// COLD DATA - Configuration and input handling, accessed less frequently
	WorldUp     mgl32.Vec3 // World up vector (usually (0,1,0))
	Speed       float32    // Movement speed in units per second
	Sensitivity float32    // Degrees per pixel of mouse movement
	Fov         float32    // Zoom, in degrees
	InvertMouse bool       // Invert mouse Y axis
}

func NewCamera(position, worldUp mgl32.Vec3, yaw, pitch float32) *Camera {
	camera := Camera{
		Position:    position,
		Front:       mgl32.Vec3{0, 0, -1},
		WorldUp:     worldUp,
		Yaw:         yaw,
		Pitch:       mgl32.Clamp(pitch, -MaxPitch, MaxPitch),
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
		Fov:         DefaultFov,
	}
	camera.updateCameraVectors()
	return &camera
}

// NewDefaultCamera sits at (0,0,3) looking down -Z.
func NewDefaultCamera() *Camera {
	return NewCamera(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 1, 0}, DefaultYaw, DefaultPitch)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// GetProjectionMatrix uses the camera zoom as the vertical field of view.
func (c *Camera) GetProjectionMatrix(aspectRatio, near, far float32) mgl32.Mat4 {
	return Perspective(c.Fov, aspectRatio, near, far)
}

// Perspective builds a projection from a field of view in degrees.
func Perspective(fovDegrees, aspectRatio, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspectRatio, near, far)
}

func (c *Camera) ProcessKeyboard(direction CameraMovement, deltaTime float32) {
	if deltaTime < 0 {
		deltaTime = 0
	}
	velocity := c.Speed * deltaTime

	switch direction {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	}
}

func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32) {
	xoffset *= c.Sensitivity
	yoffset *= c.Sensitivity

	c.Yaw += xoffset

	if c.InvertMouse {
		c.Pitch -= yoffset
	} else {
		c.Pitch += yoffset
	}
	// Past +-90 the view flips
	c.Pitch = mgl32.Clamp(c.Pitch, -MaxPitch, MaxPitch)

	c.updateCameraVectors()
}

func (c *Camera) ProcessMouseScroll(yoffset float32) {
	c.Fov = mgl32.Clamp(c.Fov-yoffset, MinFov, MaxFov)
}

func (c *Camera) updateCameraVectors() {
	yawRad := mgl32.DegToRad(c.Yaw)
	pitchRad := mgl32.DegToRad(c.Pitch)

	front := mgl32.Vec3{
		float32(math.Cos(float64(yawRad)) * math.Cos(float64(pitchRad))),
		float32(math.Sin(float64(pitchRad))),
		float32(math.Sin(float64(yawRad)) * math.Cos(float64(pitchRad))),
	}

	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}
