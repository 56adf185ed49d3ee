package renderer

import (
	"LightCaster/internal/logger"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Texture units used by the fixed scene programs.
const (
	groundDiffuseUnit = 0
	cubeDiffuseUnit   = 1
	cubeSpecularUnit  = 2
)

// Sampler uniforms set once after linking. Model samplers are bound per mesh.
var (
	groundSamplers = map[string]int32{"texture_diffuse1": groundDiffuseUnit}
	cubeSamplers   = map[string]int32{"material.diffuse": cubeDiffuseUnit, "material.specular": cubeSpecularUnit}
)

// SceneTextures are the image paths for the ground and cube passes.
type SceneTextures struct {
	Ground       string
	CubeDiffuse  string
	CubeSpecular string
}

// OpenGLRenderer owns every GPU resource of the scene: three programs, the
// ground and cube meshes, their textures and the loaded model.
type OpenGLRenderer struct {
	groundShader *Shader
	cubeShader   *Shader
	modelShader  *Shader

	ground *Mesh
	cube   *Mesh
	model  *Model

	textures      *TextureManager
	groundTexture uint32
	cubeDiffuse   uint32
	cubeSpecular  uint32
}

func NewOpenGLRenderer(textures *TextureManager) *OpenGLRenderer {
	return &OpenGLRenderer{
		groundShader: InitGroundShader(),
		cubeShader:   InitCubeShader(),
		modelShader:  InitModelShader(),
		ground:       NewGroundMesh(),
		cube:         NewCubeMesh(),
		textures:     textures,
	}
}

// Init compiles the programs and uploads the built-in meshes. The GL context
// must be current. A shader error is fatal for the caller.
func (rend *OpenGLRenderer) Init(width, height int32) error {
	for _, shader := range []*Shader{rend.groundShader, rend.cubeShader, rend.modelShader} {
		if err := shader.Compile(); err != nil {
			return fmt.Errorf("compile shaders: %w", err)
		}
	}

	setSamplers(rend.groundShader, groundSamplers)
	setSamplers(rend.cubeShader, cubeSamplers)

	rend.ground.Upload()
	rend.cube.Upload()

	if DepthTestEnabled {
		gl.Enable(gl.DEPTH_TEST)
	}
	if Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	rend.UpdateViewport(width, height)

	logger.Log.Info("OpenGL renderer initialized",
		zap.Int32("width", width),
		zap.Int32("height", height))
	return nil
}

func setSamplers(shader *Shader, samplers map[string]int32) {
	shader.Use()
	for name, unit := range samplers {
		shader.SetInt(name, unit)
	}
}

// LoadSceneTextures loads the ground and cube maps. Failures leave handle 0
// and are only logged.
func (rend *OpenGLRenderer) LoadSceneTextures(paths SceneTextures) {
	rend.groundTexture = rend.loadTexture(paths.Ground)
	rend.cubeDiffuse = rend.loadTexture(paths.CubeDiffuse)
	rend.cubeSpecular = rend.loadTexture(paths.CubeSpecular)
}

func (rend *OpenGLRenderer) loadTexture(path string) uint32 {
	id, err := rend.textures.LoadTexture(path)
	if err != nil {
		logger.Log.Error("Failed to load texture", zap.String("path", path), zap.Error(err))
	}
	return id
}

// SetModel uploads m and makes it the model drawn by the model pass.
func (rend *OpenGLRenderer) SetModel(m *Model) {
	if rend.model != nil {
		rend.model.Cleanup(rend.textures)
	}
	m.Upload(rend.textures)
	rend.model = m
}

func (rend *OpenGLRenderer) Clear(color mgl32.Vec3) {
	gl.ClearColor(color.X(), color.Y(), color.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (rend *OpenGLRenderer) BeginGroundPass() UniformSetter {
	gl.ActiveTexture(gl.TEXTURE0 + groundDiffuseUnit)
	gl.BindTexture(gl.TEXTURE_2D, rend.groundTexture)
	rend.groundShader.Use()
	return rend.groundShader
}

func (rend *OpenGLRenderer) DrawGround() {
	rend.ground.Draw()
}

func (rend *OpenGLRenderer) BeginCubePass() UniformSetter {
	gl.ActiveTexture(gl.TEXTURE0 + cubeDiffuseUnit)
	gl.BindTexture(gl.TEXTURE_2D, rend.cubeDiffuse)
	gl.ActiveTexture(gl.TEXTURE0 + cubeSpecularUnit)
	gl.BindTexture(gl.TEXTURE_2D, rend.cubeSpecular)
	rend.cubeShader.Use()
	return rend.cubeShader
}

func (rend *OpenGLRenderer) DrawCube() {
	rend.cube.Draw()
}

func (rend *OpenGLRenderer) BeginModelPass() UniformSetter {
	rend.modelShader.Use()
	return rend.modelShader
}

// DrawModel is a no-op when no model was loaded.
func (rend *OpenGLRenderer) DrawModel() {
	if rend.model == nil {
		return
	}
	rend.model.Draw(rend.modelShader)
}

func (rend *OpenGLRenderer) UpdateViewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

// Cleanup releases GPU objects in reverse order of creation.
func (rend *OpenGLRenderer) Cleanup() {
	if rend.model != nil {
		rend.model.Cleanup(rend.textures)
		rend.model = nil
	}
	for _, id := range []uint32{rend.groundTexture, rend.cubeDiffuse, rend.cubeSpecular} {
		rend.textures.ReleaseTexture(id)
	}
	rend.groundTexture, rend.cubeDiffuse, rend.cubeSpecular = 0, 0, 0
	rend.textures.LogStats()
	// anything a mesh still holds goes with the context
	rend.textures.Clear()

	rend.cube.Delete()
	rend.ground.Delete()
	rend.modelShader.Delete()
	rend.cubeShader.Delete()
	rend.groundShader.Delete()

	logger.Log.Info("OpenGL renderer cleaned up")
}
