package renderer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-4

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func assertOrthonormal(t *testing.T, cam *Camera) {
	t.Helper()
	for name, v := range map[string]mgl32.Vec3{"front": cam.Front, "right": cam.Right, "up": cam.Up} {
		if !near(v.Len(), 1) {
			t.Errorf("%s should be unit length, got %f", name, v.Len())
		}
	}
	if !near(cam.Front.Dot(cam.Right), 0) || !near(cam.Front.Dot(cam.Up), 0) || !near(cam.Right.Dot(cam.Up), 0) {
		t.Errorf("basis not orthogonal: front=%v right=%v up=%v", cam.Front, cam.Right, cam.Up)
	}
}

func TestNewDefaultCamera(t *testing.T) {
	cam := NewDefaultCamera()

	if cam == nil {
		t.Fatal("NewDefaultCamera returned nil")
	}
	if cam.Position != (mgl32.Vec3{0, 0, 3}) {
		t.Errorf("unexpected start position %v", cam.Position)
	}
	if !cam.Front.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, epsilon) {
		t.Errorf("camera should face -Z, front=%v", cam.Front)
	}
	if !cam.Right.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, epsilon) {
		t.Errorf("right should be +X, got %v", cam.Right)
	}
	if cam.Speed != 2.5 || cam.Sensitivity != 0.1 || cam.Fov != 45 {
		t.Errorf("unexpected tuning speed=%v sensitivity=%v fov=%v", cam.Speed, cam.Sensitivity, cam.Fov)
	}
	assertOrthonormal(t, cam)
}

func TestCameraForwardMovement(t *testing.T) {
	cam := NewDefaultCamera()

	cam.ProcessKeyboard(Forward, 1.0)

	if !cam.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, 0.5}, epsilon) {
		t.Errorf("expected (0,0,0.5), got %v", cam.Position)
	}
}

func TestCameraMovementDirections(t *testing.T) {
	tests := []struct {
		dir  CameraMovement
		want mgl32.Vec3
	}{
		{Forward, mgl32.Vec3{0, 0, 2}},
		{Backward, mgl32.Vec3{0, 0, 4}},
		{Left, mgl32.Vec3{-1, 0, 3}},
		{Right, mgl32.Vec3{1, 0, 3}},
	}

	for _, tt := range tests {
		cam := NewDefaultCamera()
		cam.Speed = 1
		cam.ProcessKeyboard(tt.dir, 1)
		if !cam.Position.ApproxEqualThreshold(tt.want, epsilon) {
			t.Errorf("direction %d: got %v, want %v", tt.dir, cam.Position, tt.want)
		}
	}
}

func TestCameraZeroDeltaDoesNotMove(t *testing.T) {
	cam := NewDefaultCamera()
	cam.ProcessMouseMovement(123, -45)
	start := cam.Position

	for _, dir := range []CameraMovement{Forward, Backward, Left, Right} {
		cam.ProcessKeyboard(dir, 0)
	}
	cam.ProcessKeyboard(Forward, -1)

	if cam.Position != start {
		t.Errorf("position changed from %v to %v", start, cam.Position)
	}
}

func TestCameraPitchClamp(t *testing.T) {
	cam := NewDefaultCamera()

	cam.ProcessMouseMovement(0, 10000)
	if cam.Pitch != 89 {
		t.Errorf("pitch should clamp to 89, got %v", cam.Pitch)
	}
	assertOrthonormal(t, cam)

	cam.ProcessMouseMovement(0, -100000)
	if cam.Pitch != -89 {
		t.Errorf("pitch should clamp to -89, got %v", cam.Pitch)
	}
	assertOrthonormal(t, cam)
}

func TestCameraRandomMouseKeepsInvariants(t *testing.T) {
	cam := NewDefaultCamera()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		x := (rng.Float32() - 0.5) * 2000
		y := (rng.Float32() - 0.5) * 2000
		cam.ProcessMouseMovement(x, y)

		if cam.Pitch < -89 || cam.Pitch > 89 {
			t.Fatalf("step %d: pitch %v out of range", i, cam.Pitch)
		}
		assertOrthonormal(t, cam)
	}
}

func TestCameraInvertMouse(t *testing.T) {
	cam := NewDefaultCamera()
	cam.InvertMouse = true

	cam.ProcessMouseMovement(0, 100)
	if cam.Pitch != -10 {
		t.Errorf("inverted pitch = %v, want -10", cam.Pitch)
	}
}

func TestCameraYawTurnsRight(t *testing.T) {
	cam := NewDefaultCamera()

	// 900 px * 0.1 = 90 degrees, from -Z to +X
	cam.ProcessMouseMovement(900, 0)

	if !cam.Front.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, epsilon) {
		t.Errorf("front = %v, want +X", cam.Front)
	}
}

func TestCameraScrollClamp(t *testing.T) {
	cam := NewDefaultCamera()

	cam.ProcessMouseScroll(10)
	if cam.Fov != 35 {
		t.Errorf("fov = %v, want 35", cam.Fov)
	}

	cam.ProcessMouseScroll(1000)
	if cam.Fov != 1 {
		t.Errorf("fov should clamp to 1, got %v", cam.Fov)
	}

	cam.ProcessMouseScroll(-1000)
	if cam.Fov != 45 {
		t.Errorf("fov should clamp to 45, got %v", cam.Fov)
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		cam.ProcessMouseScroll((rng.Float32() - 0.5) * 100)
		if cam.Fov < 1 || cam.Fov > 45 {
			t.Fatalf("fov %v out of range", cam.Fov)
		}
	}
}

func TestCameraGetViewMatrixIsPure(t *testing.T) {
	cam := NewDefaultCamera()
	cam.ProcessMouseMovement(37, -12)
	cam.ProcessKeyboard(Left, 0.3)
	before := *cam

	first := cam.GetViewMatrix()
	second := cam.GetViewMatrix()

	if first != second {
		t.Error("GetViewMatrix should return identical matrices")
	}
	if *cam != before {
		t.Error("GetViewMatrix mutated the camera")
	}
}

func TestCameraGetViewMatrix(t *testing.T) {
	cam := NewDefaultCamera()

	view := cam.GetViewMatrix()

	if view.At(3, 3) != 1.0 {
		t.Error("View matrix should be valid (w component = 1)")
	}
	// The eye maps to the origin of view space
	eye := view.Mul4x1(cam.Position.Vec4(1)).Vec3()
	if !eye.ApproxEqualThreshold(mgl32.Vec3{}, epsilon) {
		t.Errorf("eye in view space = %v, want origin", eye)
	}
}

func TestCameraGetProjectionMatrix(t *testing.T) {
	cam := NewDefaultCamera()

	proj := cam.GetProjectionMatrix(800.0/600.0, 0.1, 100)

	if proj.At(3, 3) != 0.0 {
		t.Error("Perspective projection should have w=0 at (3,3)")
	}
	if proj != Perspective(45, 800.0/600.0, 0.1, 100) {
		t.Error("projection should use the camera zoom")
	}
}
