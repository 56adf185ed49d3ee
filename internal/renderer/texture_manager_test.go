package renderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

// twoRowImage has a red top row and a blue bottom row.
func twoRowImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	red := color.NRGBA{255, 0, 0, 255}
	blue := color.NRGBA{0, 0, 255, 255}
	img.Set(0, 0, red)
	img.Set(1, 0, red)
	img.Set(0, 1, blue)
	img.Set(1, 1, blue)
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeRGBA(t *testing.T) {
	data := encodePNG(t, twoRowImage())

	rgba, err := DecodeRGBA(bytes.NewReader(data), false)
	if err != nil {
		t.Fatalf("DecodeRGBA: %v", err)
	}
	if rgba.Rect.Dx() != 2 || rgba.Rect.Dy() != 2 {
		t.Fatalf("size = %v", rgba.Rect)
	}
	if got := rgba.RGBAAt(0, 0); got.R != 255 || got.B != 0 {
		t.Errorf("top-left = %v, want red", got)
	}
}

func TestDecodeRGBAFlip(t *testing.T) {
	data := encodePNG(t, twoRowImage())

	rgba, err := DecodeRGBA(bytes.NewReader(data), true)
	if err != nil {
		t.Fatalf("DecodeRGBA: %v", err)
	}
	if got := rgba.RGBAAt(0, 0); got.B != 255 || got.R != 0 {
		t.Errorf("flipped top-left = %v, want blue", got)
	}
	if got := rgba.RGBAAt(1, 1); got.R != 255 {
		t.Errorf("flipped bottom-right = %v, want red", got)
	}
}

func TestDecodeRGBABMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, twoRowImage()); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}

	rgba, err := DecodeRGBA(&buf, false)
	if err != nil {
		t.Fatalf("DecodeRGBA: %v", err)
	}
	if got := rgba.RGBAAt(0, 1); got.B != 255 {
		t.Errorf("bottom-left = %v, want blue", got)
	}
}

func TestDecodeRGBARejectsGarbage(t *testing.T) {
	if _, err := DecodeRGBA(bytes.NewReader([]byte("not an image")), true); err == nil {
		t.Error("expected an error for undecodable data")
	}
}

func newFakeTextureManager() (*TextureManager, *[]uint32) {
	tm := NewTextureManager(true)
	var next uint32
	freed := []uint32{}
	tm.upload = func(*image.RGBA) uint32 {
		next++
		return next
	}
	tm.free = func(id uint32) { freed = append(freed, id) }
	return tm, &freed
}

func TestTextureManagerCachesByPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grass.png")
	if err := os.WriteFile(path, encodePNG(t, twoRowImage()), 0o644); err != nil {
		t.Fatal(err)
	}
	tm, freed := newFakeTextureManager()

	first, err := tm.LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	second, err := tm.LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if first != second || first == 0 {
		t.Fatalf("handles %d and %d should match and be non-zero", first, second)
	}

	stats := tm.GetStats()
	if stats.CacheHits != 1 || stats.CacheMisses != 1 || stats.ActiveTextures != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}

	tm.ReleaseTexture(first)
	if len(*freed) != 0 {
		t.Fatal("texture freed while still referenced")
	}
	tm.ReleaseTexture(first)
	if len(*freed) != 1 || (*freed)[0] != first {
		t.Errorf("freed = %v, want [%d]", *freed, first)
	}
}

func TestTextureManagerMissingFile(t *testing.T) {
	tm, _ := newFakeTextureManager()

	id, err := tm.LoadTexture(filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if id != 0 {
		t.Errorf("handle = %d, want 0 on failure", id)
	}
}

func TestTextureManagerClear(t *testing.T) {
	dir := t.TempDir()
	tm, freed := newFakeTextureManager()
	for _, name := range []string{"a.png", "b.png"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, encodePNG(t, twoRowImage()), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := tm.LoadTexture(path); err != nil {
			t.Fatal(err)
		}
	}

	tm.Clear()

	if len(*freed) != 2 {
		t.Errorf("freed %d textures, want 2", len(*freed))
	}
	if tm.GetStats().ActiveTextures != 0 {
		t.Error("textures still active after Clear")
	}
}
