package renderer

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	meshMagic   uint32 = 0x4D455348 // "MESH"
	meshVersion uint32 = 2

	// maxDecodedSize bounds the decompressed stream read by DecodeModelBinary.
	maxDecodedSize = 1 << 30
)

// EncodeModelBinary writes the CPU-side meshes and materials of a model as a
// gzip-compressed little-endian stream. GPU handles are not stored.
func EncodeModelBinary(model *Model) ([]byte, error) {
	var buf bytes.Buffer
	gzWriter := gzip.NewWriter(&buf)

	if err := binary.Write(gzWriter, binary.LittleEndian, meshMagic); err != nil {
		return nil, err
	}
	if err := binary.Write(gzWriter, binary.LittleEndian, meshVersion); err != nil {
		return nil, err
	}
	if err := writeString(gzWriter, model.Name); err != nil {
		return nil, err
	}
	if err := binary.Write(gzWriter, binary.LittleEndian, int32(len(model.Meshes))); err != nil {
		return nil, err
	}

	for _, mesh := range model.Meshes {
		mat := mesh.Material
		if mat == nil {
			mat = NewDefaultMaterial()
		}
		if err := writeMaterial(gzWriter, mat); err != nil {
			return nil, err
		}
		if err := writeFloat32Slice(gzWriter, mesh.Vertices); err != nil {
			return nil, err
		}
		if err := writeUint32Slice(gzWriter, mesh.Indices); err != nil {
			return nil, err
		}
	}

	if err := gzWriter.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeModelBinary is the inverse of EncodeModelBinary. Meshes come back with
// ModelLayout and no GPU buffers.
func DecodeModelBinary(data []byte) (*Model, error) {
	gzReader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzReader.Close()

	raw, err := io.ReadAll(io.LimitReader(gzReader, maxDecodedSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	if len(raw) > maxDecodedSize {
		return nil, fmt.Errorf("decompressed data exceeds %d bytes", maxDecodedSize)
	}
	// Every length prefix is checked against what is left in r, so corrupt
	// counts fail before allocating.
	r := bytes.NewReader(raw)

	var magic uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != meshMagic {
		return nil, fmt.Errorf("invalid mesh file magic: %x", magic)
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != meshVersion {
		return nil, fmt.Errorf("unsupported mesh version: %d", version)
	}

	model := &Model{}
	if model.Name, err = readString(r); err != nil {
		return nil, err
	}

	var meshCount int32
	if err := binary.Read(r, binary.LittleEndian, &meshCount); err != nil {
		return nil, err
	}
	if meshCount < 0 || int64(meshCount) > int64(r.Len()) {
		return nil, fmt.Errorf("invalid mesh count: %d", meshCount)
	}

	model.Meshes = make([]*Mesh, 0, meshCount)
	for i := int32(0); i < meshCount; i++ {
		mesh := &Mesh{Layout: ModelLayout}
		if mesh.Material, err = readMaterial(r); err != nil {
			return nil, fmt.Errorf("mesh %d material: %w", i, err)
		}
		if mesh.Vertices, err = readFloat32Slice(r); err != nil {
			return nil, fmt.Errorf("mesh %d vertices: %w", i, err)
		}
		if mesh.Indices, err = readUint32Slice(r); err != nil {
			return nil, fmt.Errorf("mesh %d indices: %w", i, err)
		}
		model.Meshes = append(model.Meshes, mesh)
	}

	return model, nil
}

func writeMaterial(w io.Writer, mat *Material) error {
	for _, s := range []string{mat.Name, mat.DiffuseMap, mat.SpecularMap} {
		if err := writeString(w, s); err != nil {
			return err
		}
	}
	return binary.Write(w, binary.LittleEndian, struct {
		Diffuse, Specular [3]float32
		Shininess, Alpha  float32
	}{mat.DiffuseColor, mat.SpecularColor, mat.Shininess, mat.Alpha})
}

func readMaterial(r *bytes.Reader) (*Material, error) {
	mat := &Material{}
	for _, s := range []*string{&mat.Name, &mat.DiffuseMap, &mat.SpecularMap} {
		v, err := readString(r)
		if err != nil {
			return nil, err
		}
		*s = v
	}
	var props struct {
		Diffuse, Specular [3]float32
		Shininess, Alpha  float32
	}
	if err := binary.Read(r, binary.LittleEndian, &props); err != nil {
		return nil, err
	}
	mat.DiffuseColor = props.Diffuse
	mat.SpecularColor = props.Specular
	mat.Shininess = props.Shininess
	mat.Alpha = props.Alpha
	return mat, nil
}

// Helper functions for binary encoding
func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func writeFloat32Slice(w io.Writer, data []float32) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(data))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}

func writeUint32Slice(w io.Writer, data []uint32) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(data))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}

// readCount reads a length prefix for elements of elemSize bytes and rejects
// it when r does not hold that much data.
func readCount(r *bytes.Reader, elemSize int) (int32, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return 0, err
	}
	if count < 0 {
		return 0, fmt.Errorf("negative length %d", count)
	}
	if int64(count)*int64(elemSize) > int64(r.Len()) {
		return 0, fmt.Errorf("length %d exceeds remaining %d bytes", count, r.Len())
	}
	return count, nil
}

func readString(r *bytes.Reader) (string, error) {
	count, err := readCount(r, 1)
	if err != nil {
		return "", err
	}
	b := make([]byte, count)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func readFloat32Slice(r *bytes.Reader) ([]float32, error) {
	count, err := readCount(r, 4)
	if err != nil {
		return nil, err
	}
	data := make([]float32, count)
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return nil, err
	}
	return data, nil
}

func readUint32Slice(r *bytes.Reader) ([]uint32, error) {
	count, err := readCount(r, 4)
	if err != nil {
		return nil, err
	}
	data := make([]uint32, count)
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return nil, err
	}
	return data, nil
}
