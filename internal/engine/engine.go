package engine

import (
	"LightCaster/internal/config"
	"LightCaster/internal/loader"
	"LightCaster/internal/logger"
	"LightCaster/internal/renderer"
	"LightCaster/internal/scene"
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

var (
	ErrWindowCreate = errors.New("could not create window")
	ErrGLInit       = errors.New("could not initialize OpenGL")
)

// Engine owns the window, the GL resources and the scene state. Run must be
// called from the main goroutine with the OS thread locked.
type Engine struct {
	cfg      *config.Config
	window   *glfw.Window
	state    *scene.State
	textures *renderer.TextureManager
	renderer *renderer.OpenGLRenderer
	frames   int
}

func New(cfg *config.Config) *Engine {
	return &Engine{
		cfg:   cfg,
		state: scene.NewState(cfg),
	}
}

// Run opens the window, loads the scene and renders until the window is
// closed. Everything acquired is released before Run returns.
func (e *Engine) Run() error {
	var cleanup Unwind
	defer cleanup.Unwind()

	logger.Log.Info("LightCaster initializing...")
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("could not initialize glfw: %w", err)
	}
	cleanup.Add(glfw.Terminate)

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(e.cfg.Window.Width, e.cfg.Window.Height, e.cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWindowCreate, err)
	}
	e.window = window
	cleanup.Add(window.Destroy)

	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("%w: %v", ErrGLInit, err)
	}
	logger.Log.Info("OpenGL context ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	if e.cfg.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	renderer.Debug = e.cfg.Window.Wireframe
	e.textures = renderer.NewTextureManager(e.cfg.Assets.FlipTextures)
	e.renderer = renderer.NewOpenGLRenderer(e.textures)
	cleanup.Add(e.renderer.Cleanup)

	fbWidth, fbHeight := window.GetFramebufferSize()
	if err := e.renderer.Init(int32(fbWidth), int32(fbHeight)); err != nil {
		return err
	}
	e.state.Resize(fbWidth, fbHeight)

	e.renderer.LoadSceneTextures(renderer.SceneTextures{
		Ground:       e.cfg.Assets.GroundTexture,
		CubeDiffuse:  e.cfg.Assets.CubeDiffuseTexture,
		CubeSpecular: e.cfg.Assets.CubeSpecularTexture,
	})
	e.loadModel()

	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	window.SetCursorPosCallback(e.mouseCallback)
	window.SetScrollCallback(e.scrollCallback)
	window.SetFocusCallback(e.focusCallback)
	window.SetFramebufferSizeCallback(e.framebufferSizeCallback)

	e.renderLoop()
	return nil
}

// loadModel is non-fatal: without a model the model pass draws nothing.
func (e *Engine) loadModel() {
	load := loader.LoadModel
	if e.cfg.Assets.UseModelCache {
		load = loader.LoadModelCached
	}

	model, err := load(e.cfg.Assets.Model)
	if err != nil {
		logger.Log.Error("Could not load the model, continuing without it",
			zap.String("path", e.cfg.Assets.Model), zap.Error(err))
		return
	}
	e.renderer.SetModel(model)
}

func (e *Engine) renderLoop() {
	keys := windowKeys{window: e.window}
	start := glfw.GetTime()

	for !e.window.ShouldClose() {
		deltaTime := e.state.Timer.Tick(glfw.GetTime())

		if e.state.HandleKeys(keys, deltaTime) {
			e.window.SetShouldClose(true)
		}

		e.state.BuildFrame().Render(e.renderer)

		e.window.SwapBuffers()
		glfw.PollEvents()
		e.frames++
	}

	elapsed := glfw.GetTime() - start
	fields := []zap.Field{zap.Int("frames", e.frames), zap.Float64("seconds", elapsed)}
	if elapsed > 0 {
		fields = append(fields, zap.Float64("avgFPS", float64(e.frames)/elapsed))
	}
	logger.Log.Info("Render loop finished", fields...)
}

func (e *Engine) mouseCallback(_ *glfw.Window, xpos, ypos float64) {
	e.state.HandleCursor(xpos, ypos)
}

func (e *Engine) focusCallback(_ *glfw.Window, focused bool) {
	e.state.HandleFocus(focused)
}

func (e *Engine) scrollCallback(_ *glfw.Window, _, yoffset float64) {
	e.state.HandleScroll(yoffset)
}

func (e *Engine) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	e.renderer.UpdateViewport(int32(width), int32(height))
	e.state.Resize(width, height)
	logger.Log.Debug("Framebuffer resized", zap.Int("width", width), zap.Int("height", height))
}
