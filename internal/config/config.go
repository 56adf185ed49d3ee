package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

type WindowConfig struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Title     string `json:"title"`
	VSync     bool   `json:"vsync"`
	Wireframe bool   `json:"wireframe"`
}

type AssetConfig struct {
	GroundTexture       string `json:"ground_texture"`
	CubeDiffuseTexture  string `json:"cube_diffuse_texture"`
	CubeSpecularTexture string `json:"cube_specular_texture"`
	Model               string `json:"model"`
	FlipTextures        bool   `json:"flip_textures"`
	UseModelCache       bool   `json:"use_model_cache"`
}

type CameraConfig struct {
	Speed       float32 `json:"speed"`
	Sensitivity float32 `json:"sensitivity"`
	InvertMouse bool    `json:"invert_mouse"`

	// ScrollZoom makes the projection follow the camera's zoom. Off keeps
	// the projection at a fixed 45 degrees.
	ScrollZoom bool `json:"scroll_zoom"`

	// Flashlight is the flashlight state at startup.
	Flashlight bool `json:"flashlight"`
}

type Config struct {
	Window   WindowConfig `json:"window"`
	Assets   AssetConfig  `json:"assets"`
	Camera   CameraConfig `json:"camera"`
	LogLevel string       `json:"log_level"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "LightCaster",
			VSync:  true,
		},
		Assets: AssetConfig{
			GroundTexture:       "resources/grass.jpg",
			CubeDiffuseTexture:  "resources/container2.png",
			CubeSpecularTexture: "resources/container2_specular.png",
			Model:               "resources/backpack/backpack.obj",
			FlipTextures:        true,
			UseModelCache:       true,
		},
		Camera: CameraConfig{
			Speed:       2.5,
			Sensitivity: 0.1,
		},
		LogLevel: "info",
	}
}

// Load reads a JSON config file on top of the defaults. A missing file is
// not an error; fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.Speed < 0 {
		return fmt.Errorf("camera speed must not be negative, got %v", c.Camera.Speed)
	}
	if c.Camera.Sensitivity <= 0 {
		return fmt.Errorf("camera sensitivity must be positive, got %v", c.Camera.Sensitivity)
	}

	assets := map[string]string{
		"ground_texture":        c.Assets.GroundTexture,
		"cube_diffuse_texture":  c.Assets.CubeDiffuseTexture,
		"cube_specular_texture": c.Assets.CubeSpecularTexture,
		"model":                 c.Assets.Model,
	}
	for name, path := range assets {
		if path == "" {
			return fmt.Errorf("asset path %s is empty", name)
		}
	}
	return nil
}

// AspectRatio of the initial window.
func (c *Config) AspectRatio() float32 {
	return float32(c.Window.Width) / float32(c.Window.Height)
}
