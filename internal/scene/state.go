package scene

import (
	"LightCaster/internal/config"
	"LightCaster/internal/input"
	"LightCaster/internal/logger"
	"LightCaster/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// FrameTimer measures the time between frames.
type FrameTimer struct {
	last    float64
	started bool
}

// Tick returns the seconds since the previous call. The first call and a
// clock that goes backwards both yield 0.
func (t *FrameTimer) Tick(now float64) float32 {
	if !t.started {
		t.started = true
		t.last = now
		return 0
	}
	delta := now - t.last
	t.last = now
	if delta < 0 {
		return 0
	}
	return float32(delta)
}

// Keys reports which actions are held this frame.
type Keys interface {
	Pressed(a input.Action) bool
}

// State is everything that changes while the program runs. It is owned by
// the render loop and never shared between goroutines.
type State struct {
	Camera     *renderer.Camera
	Flashlight input.Toggle
	Mouse      *input.MouseTracker
	Timer      FrameTimer

	Aspect     float32
	ScrollZoom bool
}

func NewState(cfg *config.Config) *State {
	cam := renderer.NewDefaultCamera()
	cam.Speed = cfg.Camera.Speed
	cam.Sensitivity = cfg.Camera.Sensitivity
	cam.InvertMouse = cfg.Camera.InvertMouse

	s := &State{
		Camera:     cam,
		Mouse:      input.NewMouseTracker(float64(cfg.Window.Width)/2, float64(cfg.Window.Height)/2),
		Aspect:     cfg.AspectRatio(),
		ScrollZoom: cfg.Camera.ScrollZoom,
	}
	s.Flashlight.Set(cfg.Camera.Flashlight)
	return s
}

var movementKeys = []struct {
	action    input.Action
	direction renderer.CameraMovement
}{
	{input.MoveForward, renderer.Forward},
	{input.MoveBackward, renderer.Backward},
	{input.MoveLeft, renderer.Left},
	{input.MoveRight, renderer.Right},
}

// HandleKeys applies one frame of keyboard state and reports whether quit
// was requested.
func (s *State) HandleKeys(keys Keys, deltaTime float32) bool {
	if keys.Pressed(input.Quit) {
		return true
	}

	for _, k := range movementKeys {
		if keys.Pressed(k.action) {
			s.Camera.ProcessKeyboard(k.direction, deltaTime)
		}
	}

	if s.Flashlight.Update(keys.Pressed(input.ToggleFlashlight)) {
		logger.Log.Debug("Flashlight toggled", zap.Bool("on", s.Flashlight.On()))
	}
	return false
}

func (s *State) HandleCursor(x, y float64) {
	xoffset, yoffset := s.Mouse.Offsets(x, y)
	s.Camera.ProcessMouseMovement(xoffset, yoffset)
}

// HandleFocus restarts mouse tracking when the window gets the cursor back,
// so the first motion after refocusing does not swing the camera.
func (s *State) HandleFocus(focused bool) {
	if focused {
		s.Mouse.Reset()
	}
}

func (s *State) HandleScroll(yoffset float64) {
	s.Camera.ProcessMouseScroll(float32(yoffset))
}

// Resize tracks the framebuffer aspect ratio. A zero-sized (minimised)
// framebuffer keeps the previous ratio.
func (s *State) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.Aspect = float32(width) / float32(height)
}

// Projection uses a fixed 45 degree field of view unless scroll zoom is on.
func (s *State) Projection() mgl32.Mat4 {
	fov := FixedFov
	if s.ScrollZoom {
		fov = s.Camera.Fov
	}
	return renderer.Perspective(fov, s.Aspect, NearPlane, FarPlane)
}

// BuildFrame snapshots the state into the plan for one frame.
func (s *State) BuildFrame() *Frame {
	frame := &Frame{
		View:       s.Camera.GetViewMatrix(),
		Projection: s.Projection(),
		ViewPos:    s.Camera.Position,
		Lights:     Lights(s.Camera, s.Flashlight.On()),
		Ground:     GroundModelMatrix(),
		Model:      LoadedModelMatrix(),
	}
	for i, pos := range CubePositions {
		frame.Cubes[i] = CubeModelMatrix(pos)
	}
	return frame
}
