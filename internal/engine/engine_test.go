package engine

import (
	"LightCaster/internal/config"
	"LightCaster/internal/input"
	"errors"
	"fmt"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestUnwindRunsInReverse(t *testing.T) {
	var order []int
	var u Unwind
	for i := 1; i <= 3; i++ {
		i := i
		u.Add(func() { order = append(order, i) })
	}

	u.Unwind()

	if fmt.Sprint(order) != "[3 2 1]" {
		t.Errorf("order = %v, want [3 2 1]", order)
	}

	// a second Unwind has nothing left to run
	u.Unwind()
	if len(order) != 3 {
		t.Errorf("functions ran twice: %v", order)
	}
}

func TestKeyBindingsCoverEveryAction(t *testing.T) {
	actions := []input.Action{
		input.MoveForward, input.MoveBackward, input.MoveLeft, input.MoveRight,
		input.ToggleFlashlight, input.Quit,
	}
	seen := map[glfw.Key]input.Action{}

	for _, a := range actions {
		key, ok := keyBindings[a]
		if !ok {
			t.Errorf("%v has no key", a)
			continue
		}
		if other, dup := seen[key]; dup {
			t.Errorf("%v and %v share a key", a, other)
		}
		seen[key] = a
	}
	if keyBindings[input.ToggleFlashlight] != glfw.KeyF || keyBindings[input.Quit] != glfw.KeyEscape {
		t.Error("unexpected flashlight or quit binding")
	}
}

func TestSentinelErrorsWrap(t *testing.T) {
	err := fmt.Errorf("%w: %v", ErrWindowCreate, errors.New("no display"))

	if !errors.Is(err, ErrWindowCreate) || errors.Is(err, ErrGLInit) {
		t.Error("wrapped window error should match only ErrWindowCreate")
	}
}

func TestNewBuildsStateFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Speed = 7
	cfg.Camera.InvertMouse = true

	e := New(cfg)

	if e.state.Camera.Speed != 7 || !e.state.Camera.InvertMouse {
		t.Errorf("camera not configured: %+v", e.state.Camera)
	}
	if e.window != nil || e.renderer != nil {
		t.Error("New must not touch the window system")
	}
}
