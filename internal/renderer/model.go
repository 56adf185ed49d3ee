package renderer

import (
	"LightCaster/internal/logger"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Texture kinds double as sampler name prefixes in the model shader.
const (
	TextureDiffuse  = "texture_diffuse"
	TextureSpecular = "texture_specular"
)

type Texture struct {
	ID   uint32
	Type string
	Path string
}

// DefaultMaterial is copied for meshes whose MTL entry is missing.
var DefaultMaterial = Material{
	Name:          "default",
	DiffuseColor:  [3]float32{1.0, 1.0, 1.0},
	SpecularColor: [3]float32{1.0, 1.0, 1.0},
	Shininess:     32.0,
	Alpha:         1.0,
}

type Material struct {
	Name          string
	DiffuseColor  [3]float32
	SpecularColor [3]float32
	Shininess     float32
	Alpha         float32
	DiffuseMap    string // map_Kd, resolved against the MTL directory
	SpecularMap   string // map_Ks
}

// NewDefaultMaterial returns a private copy of DefaultMaterial.
func NewDefaultMaterial() *Material {
	m := DefaultMaterial
	return &m
}

// Model is a loaded asset: one mesh per material run of the source file.
type Model struct {
	Name       string
	SourcePath string
	Meshes     []*Mesh
}

func (m *Model) VertexCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		n += mesh.VertexCount()
	}
	return n
}

// Bounds returns the axis-aligned box of all mesh positions.
func (m *Model) Bounds() (min, max mgl32.Vec3) {
	first := true
	for _, mesh := range m.Meshes {
		stride := mesh.Layout.Stride
		for i := 0; i+2 < len(mesh.Vertices); i += stride {
			p := mgl32.Vec3{mesh.Vertices[i], mesh.Vertices[i+1], mesh.Vertices[i+2]}
			if first {
				min, max = p, p
				first = false
				continue
			}
			for k := 0; k < 3; k++ {
				if p[k] < min[k] {
					min[k] = p[k]
				}
				if p[k] > max[k] {
					max[k] = p[k]
				}
			}
		}
	}
	return min, max
}

// Upload pushes every mesh to the GPU and loads its material maps. A map that
// fails to load is logged and bound as texture 0.
func (m *Model) Upload(tm *TextureManager) {
	for _, mesh := range m.Meshes {
		mesh.Textures = mesh.Textures[:0]
		if mat := mesh.Material; mat != nil {
			if mat.DiffuseMap != "" {
				mesh.Textures = append(mesh.Textures, loadMaterialTexture(tm, mat.DiffuseMap, TextureDiffuse))
			}
			if mat.SpecularMap != "" {
				mesh.Textures = append(mesh.Textures, loadMaterialTexture(tm, mat.SpecularMap, TextureSpecular))
			}
		}
		mesh.Upload()
	}

	logger.Log.Info("Model uploaded",
		zap.String("name", m.Name),
		zap.Int("meshes", len(m.Meshes)),
		zap.Int("vertices", m.VertexCount()))
}

func loadMaterialTexture(tm *TextureManager, path, kind string) Texture {
	id, err := tm.LoadTexture(path)
	if err != nil {
		logger.Log.Warn("Failed to load material texture", zap.String("path", path), zap.Error(err))
	}
	return Texture{ID: id, Type: kind, Path: path}
}

type samplerBinding struct {
	Name    string
	Unit    int32
	Texture uint32
}

// samplerBindings numbers textures per kind from 1, so the second diffuse map
// of a mesh becomes texture_diffuse2. Units are assigned in order.
func samplerBindings(textures []Texture) []samplerBinding {
	counts := make(map[string]int, 2)
	bindings := make([]samplerBinding, 0, len(textures))
	for i, tex := range textures {
		counts[tex.Type]++
		bindings = append(bindings, samplerBinding{
			Name:    fmt.Sprintf("%s%d", tex.Type, counts[tex.Type]),
			Unit:    int32(i),
			Texture: tex.ID,
		})
	}
	return bindings
}

// Draw binds each mesh's maps on consecutive texture units and draws it with
// the currently active program.
func (m *Model) Draw(u UniformSetter) {
	for _, mesh := range m.Meshes {
		for _, b := range samplerBindings(mesh.Textures) {
			gl.ActiveTexture(gl.TEXTURE0 + uint32(b.Unit))
			u.SetInt(b.Name, b.Unit)
			gl.BindTexture(gl.TEXTURE_2D, b.Texture)
		}
		mesh.Draw()
	}
	gl.ActiveTexture(gl.TEXTURE0)
}

func (m *Model) Cleanup(tm *TextureManager) {
	for _, mesh := range m.Meshes {
		for _, tex := range mesh.Textures {
			tm.ReleaseTexture(tex.ID)
		}
		mesh.Textures = nil
		mesh.Delete()
	}
}
