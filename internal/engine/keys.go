package engine

import (
	"LightCaster/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var keyBindings = map[input.Action]glfw.Key{
	input.MoveForward:      glfw.KeyW,
	input.MoveBackward:     glfw.KeyS,
	input.MoveLeft:         glfw.KeyA,
	input.MoveRight:        glfw.KeyD,
	input.ToggleFlashlight: glfw.KeyF,
	input.Quit:             glfw.KeyEscape,
}

// windowKeys polls the bound keys of a window.
type windowKeys struct {
	window *glfw.Window
}

func (k windowKeys) Pressed(a input.Action) bool {
	key, ok := keyBindings[a]
	return ok && k.window.GetKey(key) == glfw.Press
}
