package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// recorder captures uniform uploads by name.
type recorder struct {
	ints   map[string]int32
	floats map[string]float32
	vecs   map[string]mgl32.Vec3
	mats   map[string]mgl32.Mat4
}

func newRecorder() *recorder {
	return &recorder{
		ints:   make(map[string]int32),
		floats: make(map[string]float32),
		vecs:   make(map[string]mgl32.Vec3),
		mats:   make(map[string]mgl32.Mat4),
	}
}

func (r *recorder) SetInt(name string, v int32) { r.ints[name] = v }
func (r *recorder) SetFloat(name string, v float32) { r.floats[name] = v }
func (r *recorder) SetVec3(name string, v mgl32.Vec3) { r.vecs[name] = v }
func (r *recorder) SetMat4(name string, v mgl32.Mat4) { r.mats[name] = v }

func sampleLightSet() *LightSet {
	var ls LightSet
	ls.Directional = DirectionalLight{
		Direction: mgl32.Vec3{-0.2, -1, -0.3},
		Ambient:   Gray(0.05),
		Diffuse:   Gray(0.4),
		Specular:  Gray(0.5),
	}
	for i := range ls.Points {
		ls.Points[i] = PointLight{
			Position:    mgl32.Vec3{float32(i), 0, 0},
			Ambient:     Gray(0.05),
			Diffuse:     Gray(0.8),
			Specular:    Gray(1),
			Attenuation: Attenuation{1, 0.09, 0.032},
		}
	}
	ls.Spot = SpotLight{
		Position:    mgl32.Vec3{0, -20, 0},
		Direction:   mgl32.Vec3{0, 0, -1},
		Diffuse:     Gray(1),
		Specular:    Gray(1),
		Attenuation: Attenuation{1, 0.09, 0.032},
		CutOff:      CutOffCos(12.5),
		OuterCutOff: CutOffCos(15),
	}
	return &ls
}

func TestApplyLightSetUniformNames(t *testing.T) {
	rec := newRecorder()
	ApplyLightSet(rec, sampleLightSet(), mgl32.Vec3{1, 2, 3}, 32)

	wantVecs := []string{
		"viewPos",
		"dirLight.direction", "dirLight.ambient", "dirLight.diffuse", "dirLight.specular",
		"spotLight.position", "spotLight.direction", "spotLight.ambient", "spotLight.diffuse", "spotLight.specular",
	}
	wantFloats := []string{
		"material.shininess",
		"spotLight.constant", "spotLight.linear", "spotLight.quadratic", "spotLight.cutOff", "spotLight.outerCutOff",
	}
	for i := 0; i < NumPointLights; i++ {
		p := PointLightName(i)
		wantVecs = append(wantVecs, p+".position", p+".ambient", p+".diffuse", p+".specular")
		wantFloats = append(wantFloats, p+".constant", p+".linear", p+".quadratic")
	}

	for _, name := range wantVecs {
		if _, ok := rec.vecs[name]; !ok {
			t.Errorf("missing vec3 uniform %q", name)
		}
	}
	for _, name := range wantFloats {
		if _, ok := rec.floats[name]; !ok {
			t.Errorf("missing float uniform %q", name)
		}
	}
	if len(rec.vecs) != len(wantVecs) {
		t.Errorf("uploaded %d vec3 uniforms, want %d", len(rec.vecs), len(wantVecs))
	}
	if len(rec.floats) != len(wantFloats) {
		t.Errorf("uploaded %d float uniforms, want %d", len(rec.floats), len(wantFloats))
	}
}

func TestApplyLightSetValues(t *testing.T) {
	rec := newRecorder()
	ApplyLightSet(rec, sampleLightSet(), mgl32.Vec3{1, 2, 3}, 32)

	if rec.vecs["viewPos"] != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("viewPos = %v", rec.vecs["viewPos"])
	}
	if rec.floats["material.shininess"] != 32 {
		t.Errorf("shininess = %v", rec.floats["material.shininess"])
	}
	if rec.vecs["pointLights[2].position"] != (mgl32.Vec3{2, 0, 0}) {
		t.Errorf("pointLights[2].position = %v", rec.vecs["pointLights[2].position"])
	}
	if rec.floats["pointLights[3].quadratic"] != 0.032 {
		t.Errorf("pointLights[3].quadratic = %v", rec.floats["pointLights[3].quadratic"])
	}
	if rec.vecs["spotLight.position"] != (mgl32.Vec3{0, -20, 0}) {
		t.Errorf("spotLight.position = %v", rec.vecs["spotLight.position"])
	}
}

func TestCutOffCos(t *testing.T) {
	if !near(CutOffCos(0), 1) {
		t.Error("cos(0) should be 1")
	}
	if !near(CutOffCos(60), 0.5) {
		t.Errorf("cos(60) = %v", CutOffCos(60))
	}
	if CutOffCos(12.5) <= CutOffCos(15) {
		t.Error("inner cutoff cosine must exceed the outer one")
	}
}
