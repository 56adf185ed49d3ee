package loader

import (
	"LightCaster/internal/logger"
	"LightCaster/internal/renderer"
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// LoadModel parses an OBJ file and the MTL libraries it references. The result
// has one mesh per run of faces sharing a material, with interleaved
// position/uv/normal vertices and a unified index buffer.
func LoadModel(filename string) (*renderer.Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	model, err := parseOBJ(file, filepath.Dir(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	model.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	model.SourcePath = filename

	min, max := model.Bounds()
	logger.Log.Info("Model loaded",
		zap.String("path", filename),
		zap.Int("meshes", len(model.Meshes)),
		zap.Int("vertices", model.VertexCount()),
		zap.Float32s("boundsMin", min[:]),
		zap.Float32s("boundsMax", max[:]))
	return model, nil
}

// meshBuilder accumulates one material run. Material is NOT part of the vertex
// key since each run gets its own buffers.
type meshBuilder struct {
	material       *renderer.Material
	vertexMap      map[FaceVertex]uint32
	vertices       []float32
	indices        []uint32
	missingNormals []bool // per vertex, true when its face vertex had no vn
}

func newMeshBuilder(material *renderer.Material) *meshBuilder {
	return &meshBuilder{
		material:  material,
		vertexMap: make(map[FaceVertex]uint32),
	}
}

type objData struct {
	positions []float32
	texCoords []float32
	normals   []float32
}

func (b *meshBuilder) add(fv FaceVertex, obj *objData) {
	if idx, exists := b.vertexMap[fv]; exists {
		b.indices = append(b.indices, idx)
		return
	}

	idx := uint32(len(b.vertices) / renderer.ModelLayout.Stride)
	b.vertexMap[fv] = idx

	p := fv.VertexIdx * 3
	b.vertices = append(b.vertices, obj.positions[p], obj.positions[p+1], obj.positions[p+2])

	if fv.TexCoordIdx >= 0 {
		t := fv.TexCoordIdx * 2
		b.vertices = append(b.vertices, obj.texCoords[t], obj.texCoords[t+1])
	} else {
		b.vertices = append(b.vertices, 0.0, 0.0)
	}

	if fv.NormalIdx >= 0 {
		n := fv.NormalIdx * 3
		b.vertices = append(b.vertices, obj.normals[n], obj.normals[n+1], obj.normals[n+2])
		b.missingNormals = append(b.missingNormals, false)
	} else {
		b.vertices = append(b.vertices, 0.0, 0.0, 0.0)
		b.missingNormals = append(b.missingNormals, true)
	}

	b.indices = append(b.indices, idx)
}

func (b *meshBuilder) build() *renderer.Mesh {
	for _, missing := range b.missingNormals {
		if missing {
			recalculateNormals(b.vertices, b.indices, b.missingNormals)
			break
		}
	}
	return &renderer.Mesh{
		Vertices: b.vertices,
		Indices:  b.indices,
		Layout:   renderer.ModelLayout,
		Material: b.material,
	}
}

func parseOBJ(r io.Reader, dir string) (*renderer.Model, error) {
	var obj objData
	materials := map[string]*renderer.Material{}
	model := &renderer.Model{}
	current := newMeshBuilder(renderer.NewDefaultMaterial())

	flush := func() {
		if len(current.indices) > 0 {
			model.Meshes = append(model.Meshes, current.build())
		}
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 || strings.HasPrefix(parts[0], "#") {
			continue
		}

		switch parts[0] {
		case "v":
			vertex, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			obj.positions = append(obj.positions, vertex...)
		case "vn":
			normal, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			obj.normals = append(obj.normals, normal...)
		case "vt":
			texCoord, err := parseFloats(parts[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", lineNo, err)
			}
			obj.texCoords = append(obj.texCoords, texCoord...)
		case "f":
			counts := [3]int{len(obj.positions) / 3, len(obj.texCoords) / 2, len(obj.normals) / 3}
			faceVertices, err := parseFace(parts[1:], counts)
			if err != nil {
				return nil, fmt.Errorf("line %d: face: %w", lineNo, err)
			}
			for _, fv := range faceVertices {
				current.add(fv, &obj)
			}
		case "mtllib":
			for _, name := range parts[1:] {
				mtlPath := resolvePath(dir, name)
				loaded, err := LoadMaterials(mtlPath)
				if err != nil {
					logger.Log.Warn("Material library not loaded, using defaults",
						zap.String("path", mtlPath), zap.Error(err))
					continue
				}
				for k, v := range loaded {
					materials[k] = v
				}
			}
		case "usemtl":
			if len(parts) < 2 {
				continue
			}
			material, ok := materials[parts[1]]
			if !ok {
				logger.Log.Debug("Material not found", zap.String("material", parts[1]))
				material = renderer.NewDefaultMaterial()
				material.Name = parts[1]
			}
			flush()
			current = newMeshBuilder(material)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	if len(model.Meshes) == 0 {
		return nil, fmt.Errorf("no faces found")
	}
	return model, nil
}

// LoadMaterials loads material properties from a .mtl file. Texture paths
// are resolved against the directory of the MTL file.
func LoadMaterials(filename string) (map[string]*renderer.Material, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return parseMaterials(file, filepath.Dir(filename))
}

func parseMaterials(r io.Reader, dir string) (map[string]*renderer.Material, error) {
	var currentMaterial *renderer.Material
	materials := make(map[string]*renderer.Material)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				logger.Log.Warn("Malformed material line", zap.String("line", line))
				continue
			}
			currentMaterial = renderer.NewDefaultMaterial()
			currentMaterial.Name = fields[1]
			materials[fields[1]] = currentMaterial
			continue
		}
		if currentMaterial == nil {
			continue
		}

		switch fields[0] {
		case "Kd": // Diffuse color
			if len(fields) == 4 {
				currentMaterial.DiffuseColor = parseColor(fields[1:])
			}
		case "Ks": // Specular color
			if len(fields) == 4 {
				currentMaterial.SpecularColor = parseColor(fields[1:])
			}
		case "Ns": // Shininess
			if len(fields) == 2 {
				currentMaterial.Shininess = parseFloat(fields[1])
			}
		case "d": // Dissolve (alpha/opacity)
			if len(fields) == 2 {
				currentMaterial.Alpha = parseFloat(fields[1])
			}
		case "map_Kd":
			// options may precede the file name, which is always last
			if len(fields) >= 2 {
				currentMaterial.DiffuseMap = resolvePath(dir, fields[len(fields)-1])
			}
		case "map_Ks":
			if len(fields) >= 2 {
				currentMaterial.SpecularMap = resolvePath(dir, fields[len(fields)-1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return materials, nil
}

func resolvePath(dir, path string) string {
	path = filepath.FromSlash(strings.ReplaceAll(path, `\`, "/"))
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// parseColor parses RGB color components; bad components become 0.
func parseColor(fields []string) [3]float32 {
	var color [3]float32
	for i, field := range fields {
		color[i] = parseFloat(field)
	}
	return color
}

func parseFloat(s string) float32 {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		logger.Log.Warn("Error parsing material value", zap.String("value", s), zap.Error(err))
		return 0
	}
	return float32(f)
}

// parseFloats reads exactly n components, ignoring any extras such as the
// optional w of a vertex.
func parseFloats(parts []string, n int) ([]float32, error) {
	if len(parts) < n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(parts))
	}
	values := make([]float32, n)
	for i := 0; i < n; i++ {
		val, err := strconv.ParseFloat(parts[i], 32)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", parts[i], err)
		}
		values[i] = float32(val)
	}
	return values, nil
}

// FaceVertex holds zero-based indices; -1 marks an absent uv or normal.
type FaceVertex struct {
	VertexIdx   int32
	TexCoordIdx int32
	NormalIdx   int32
}

// parseIndex converts a 1-based or negative (relative) OBJ index to a
// zero-based one and checks it against count.
func parseIndex(s string, count int) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", s, err)
	}
	idx := int(v) - 1
	if v < 0 {
		idx = count + int(v)
	}
	if v == 0 || idx < 0 || idx >= count {
		return 0, fmt.Errorf("index %d out of range (have %d)", v, count)
	}
	return int32(idx), nil
}

// parseFace triangulates a polygon as a fan around its first vertex; a quad
// becomes v0 v1 v2, v0 v2 v3. counts are the positions, uvs and normals
// defined so far.
func parseFace(parts []string, counts [3]int) ([]FaceVertex, error) {
	if len(parts) < 3 {
		return nil, fmt.Errorf("face needs at least 3 vertices, got %d", len(parts))
	}

	face := make([]FaceVertex, 0, len(parts))
	for _, part := range parts {
		vals := strings.Split(part, "/")
		fv := FaceVertex{TexCoordIdx: -1, NormalIdx: -1}

		var err error
		if fv.VertexIdx, err = parseIndex(vals[0], counts[0]); err != nil {
			return nil, err
		}
		if len(vals) > 1 && vals[1] != "" {
			if fv.TexCoordIdx, err = parseIndex(vals[1], counts[1]); err != nil {
				return nil, err
			}
		}
		if len(vals) > 2 && vals[2] != "" {
			if fv.NormalIdx, err = parseIndex(vals[2], counts[2]); err != nil {
				return nil, err
			}
		}
		face = append(face, fv)
	}

	if len(face) == 3 {
		return face, nil
	}
	if len(face) > 4 {
		logger.Log.Debug("Face with more than 4 vertices detected, using fan triangulation", zap.Int("vertexCount", len(face)))
	}
	triangulated := make([]FaceVertex, 0, (len(face)-2)*3)
	for i := 1; i < len(face)-1; i++ {
		triangulated = append(triangulated, face[0], face[i], face[i+1])
	}
	return triangulated, nil
}

// RecalculateNormals replaces the normals of an interleaved model-layout
// vertex buffer with area-weighted smooth normals from its triangles.
func RecalculateNormals(vertices []float32, indices []uint32) {
	recalculateNormals(vertices, indices, nil)
}

// recalculateNormals rewrites only the vertices flagged in replace. A nil
// replace rewrites all of them. Explicit normals are left untouched.
func recalculateNormals(vertices []float32, indices []uint32, replace []bool) {
	const stride = 8
	const normalOffset = 5
	count := uint32(len(vertices) / stride)

	selected := func(i uint32) bool {
		return replace == nil || (int(i) < len(replace) && replace[i])
	}

	for i := uint32(0); i < count; i++ {
		if !selected(i) {
			continue
		}
		n := i*stride + normalOffset
		vertices[n], vertices[n+1], vertices[n+2] = 0, 0, 0
	}

	position := func(i uint32) mgl32.Vec3 {
		return mgl32.Vec3{vertices[i*stride], vertices[i*stride+1], vertices[i*stride+2]}
	}

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if i0 >= count || i1 >= count || i2 >= count {
			continue
		}
		v0 := position(i0)
		normal := position(i1).Sub(v0).Cross(position(i2).Sub(v0))
		for _, idx := range []uint32{i0, i1, i2} {
			if !selected(idx) {
				continue
			}
			n := idx*stride + normalOffset
			vertices[n] += normal[0]
			vertices[n+1] += normal[1]
			vertices[n+2] += normal[2]
		}
	}

	for i := uint32(0); i < count; i++ {
		if !selected(i) {
			continue
		}
		n := i*stride + normalOffset
		normal := mgl32.Vec3{vertices[n], vertices[n+1], vertices[n+2]}
		if normal.Len() == 0 {
			normal = mgl32.Vec3{0, 1, 0}
		} else {
			normal = normal.Normalize()
		}
		vertices[n], vertices[n+1], vertices[n+2] = normal[0], normal[1], normal[2]
	}
}
