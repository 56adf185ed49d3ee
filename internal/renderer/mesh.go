package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

const float32Size = 4

// VertexAttrib places one shader input inside an interleaved vertex.
// Size and Offset are counted in floats.
type VertexAttrib struct {
	Location uint32
	Size     int32
	Offset   int
}

type VertexLayout struct {
	Stride  int // floats per vertex
	Attribs []VertexAttrib
}

var (
	// position, uv
	GroundLayout = VertexLayout{Stride: 5, Attribs: []VertexAttrib{{0, 3, 0}, {1, 2, 3}}}
	// position, normal, uv
	CubeLayout = VertexLayout{Stride: 8, Attribs: []VertexAttrib{{0, 3, 0}, {1, 3, 3}, {2, 2, 6}}}
	// position, uv, normal as produced by the OBJ loader
	ModelLayout = VertexLayout{Stride: 8, Attribs: []VertexAttrib{{0, 3, 0}, {2, 2, 3}, {1, 3, 5}}}
)

// Mesh is interleaved vertex data plus its GPU buffers. Indices are optional;
// without them the mesh is drawn as a plain triangle list.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
	Material *Material
	Textures []Texture

	VAO uint32
	VBO uint32
	EBO uint32
}

func (m *Mesh) VertexCount() int {
	if m.Layout.Stride == 0 {
		return 0
	}
	return len(m.Vertices) / m.Layout.Stride
}

// ElementCount is the count passed to the draw call.
func (m *Mesh) ElementCount() int32 {
	if len(m.Indices) > 0 {
		return int32(len(m.Indices))
	}
	return int32(m.VertexCount())
}

func (m *Mesh) Uploaded() bool {
	return m.VAO != 0
}

// Upload creates the VAO, VBO and optional EBO and configures the attributes.
// A mesh that already has buffers is left as is.
func (m *Mesh) Upload() {
	if m.Uploaded() {
		return
	}
	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)

	gl.GenBuffers(1, &m.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*float32Size, gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	if len(m.Indices) > 0 {
		gl.GenBuffers(1, &m.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}

	stride := int32(m.Layout.Stride * float32Size)
	for _, a := range m.Layout.Attribs {
		gl.VertexAttribPointer(a.Location, a.Size, gl.FLOAT, false, stride, gl.PtrOffset(a.Offset*float32Size))
		gl.EnableVertexAttribArray(a.Location)
	}

	gl.BindVertexArray(0)
}

// Draw is a no-op for a mesh without buffers.
func (m *Mesh) Draw() {
	if !m.Uploaded() {
		return
	}
	gl.BindVertexArray(m.VAO)
	if len(m.Indices) > 0 {
		gl.DrawElements(gl.TRIANGLES, m.ElementCount(), gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.ElementCount())
	}
	gl.BindVertexArray(0)
}

func (m *Mesh) Delete() {
	if m.EBO != 0 {
		gl.DeleteBuffers(1, &m.EBO)
		m.EBO = 0
	}
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
		m.VBO = 0
	}
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
		m.VAO = 0
	}
}

// NewGroundMesh is a unit quad in the XY plane whose UVs repeat 20 times.
func NewGroundMesh() *Mesh {
	return &Mesh{
		Vertices: []float32{
			// positions      // texture coords
			0.5, 0.5, 0.0, 20.0, 20.0, // top right
			0.5, -0.5, 0.0, 20.0, 0.0, // bottom right
			-0.5, -0.5, 0.0, 0.0, 0.0, // bottom left
			-0.5, 0.5, 0.0, 0.0, 20.0, // top left
		},
		Indices: []uint32{
			0, 1, 3,
			1, 2, 3,
		},
		Layout: GroundLayout,
	}
}

// NewCubeMesh is a unit cube centred on the origin, 36 vertices with per-face normals.
func NewCubeMesh() *Mesh {
	return &Mesh{
		Vertices: []float32{
			-0.5, -0.5, -0.5, 0.0, 0.0, -1.0, 0.0, 0.0,
			0.5, -0.5, -0.5, 0.0, 0.0, -1.0, 1.0, 0.0,
			0.5, 0.5, -0.5, 0.0, 0.0, -1.0, 1.0, 1.0,
			0.5, 0.5, -0.5, 0.0, 0.0, -1.0, 1.0, 1.0,
			-0.5, 0.5, -0.5, 0.0, 0.0, -1.0, 0.0, 1.0,
			-0.5, -0.5, -0.5, 0.0, 0.0, -1.0, 0.0, 0.0,

			-0.5, -0.5, 0.5, 0.0, 0.0, 1.0, 0.0, 0.0,
			0.5, -0.5, 0.5, 0.0, 0.0, 1.0, 1.0, 0.0,
			0.5, 0.5, 0.5, 0.0, 0.0, 1.0, 1.0, 1.0,
			0.5, 0.5, 0.5, 0.0, 0.0, 1.0, 1.0, 1.0,
			-0.5, 0.5, 0.5, 0.0, 0.0, 1.0, 0.0, 1.0,
			-0.5, -0.5, 0.5, 0.0, 0.0, 1.0, 0.0, 0.0,

			-0.5, 0.5, 0.5, -1.0, 0.0, 0.0, 1.0, 0.0,
			-0.5, 0.5, -0.5, -1.0, 0.0, 0.0, 1.0, 1.0,
			-0.5, -0.5, -0.5, -1.0, 0.0, 0.0, 0.0, 1.0,
			-0.5, -0.5, -0.5, -1.0, 0.0, 0.0, 0.0, 1.0,
			-0.5, -0.5, 0.5, -1.0, 0.0, 0.0, 0.0, 0.0,
			-0.5, 0.5, 0.5, -1.0, 0.0, 0.0, 1.0, 0.0,

			0.5, 0.5, 0.5, 1.0, 0.0, 0.0, 1.0, 0.0,
			0.5, 0.5, -0.5, 1.0, 0.0, 0.0, 1.0, 1.0,
			0.5, -0.5, -0.5, 1.0, 0.0, 0.0, 0.0, 1.0,
			0.5, -0.5, -0.5, 1.0, 0.0, 0.0, 0.0, 1.0,
			0.5, -0.5, 0.5, 1.0, 0.0, 0.0, 0.0, 0.0,
			0.5, 0.5, 0.5, 1.0, 0.0, 0.0, 1.0, 0.0,

			-0.5, -0.5, -0.5, 0.0, -1.0, 0.0, 0.0, 1.0,
			0.5, -0.5, -0.5, 0.0, -1.0, 0.0, 1.0, 1.0,
			0.5, -0.5, 0.5, 0.0, -1.0, 0.0, 1.0, 0.0,
			0.5, -0.5, 0.5, 0.0, -1.0, 0.0, 1.0, 0.0,
			-0.5, -0.5, 0.5, 0.0, -1.0, 0.0, 0.0, 0.0,
			-0.5, -0.5, -0.5, 0.0, -1.0, 0.0, 0.0, 1.0,

			-0.5, 0.5, -0.5, 0.0, 1.0, 0.0, 0.0, 1.0,
			0.5, 0.5, -0.5, 0.0, 1.0, 0.0, 1.0, 1.0,
			0.5, 0.5, 0.5, 0.0, 1.0, 0.0, 1.0, 0.0,
			0.5, 0.5, 0.5, 0.0, 1.0, 0.0, 1.0, 0.0,
			-0.5, 0.5, 0.5, 0.0, 1.0, 0.0, 0.0, 0.0,
			-0.5, 0.5, -0.5, 0.0, 1.0, 0.0, 0.0, 1.0,
		},
		Layout: CubeLayout,
	}
}
