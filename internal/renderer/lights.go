package renderer

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// UniformSetter uploads named uniforms to the active program. Names must
// match the GLSL declarations exactly: a typo is a silent no-op.
type UniformSetter interface {
	SetInt(name string, value int32)
	SetFloat(name string, value float32)
	SetVec3(name string, value mgl32.Vec3)
	SetMat4(name string, value mgl32.Mat4)
}

// NumPointLights must match the pointLights array size in the lit shaders.
const NumPointLights = 4

// Attenuation holds the 1/(c + l*d + q*d^2) falloff coefficients.
type Attenuation struct {
	Constant  float32
	Linear    float32
	Quadratic float32
}

type DirectionalLight struct {
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
}

type PointLight struct {
	Position mgl32.Vec3
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
	Attenuation
}

type SpotLight struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Attenuation
	CutOff      float32 // cosine of the inner half-angle
	OuterCutOff float32 // cosine of the outer half-angle
}

// LightSet is everything the lit shaders need for one frame.
type LightSet struct {
	Directional DirectionalLight
	Points      [NumPointLights]PointLight
	Spot        SpotLight
}

// CutOffCos converts a cone half-angle in degrees to the cosine the shaders compare against.
func CutOffCos(degrees float32) float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(degrees))))
}

// Gray is a convenience for uniform-intensity colors.
func Gray(v float32) mgl32.Vec3 {
	return mgl32.Vec3{v, v, v}
}

func (d DirectionalLight) Apply(u UniformSetter, name string) {
	u.SetVec3(name+".direction", d.Direction)
	u.SetVec3(name+".ambient", d.Ambient)
	u.SetVec3(name+".diffuse", d.Diffuse)
	u.SetVec3(name+".specular", d.Specular)
}

func (p PointLight) Apply(u UniformSetter, name string) {
	u.SetVec3(name+".position", p.Position)
	u.SetVec3(name+".ambient", p.Ambient)
	u.SetVec3(name+".diffuse", p.Diffuse)
	u.SetVec3(name+".specular", p.Specular)
	u.SetFloat(name+".constant", p.Constant)
	u.SetFloat(name+".linear", p.Linear)
	u.SetFloat(name+".quadratic", p.Quadratic)
}

func (s SpotLight) Apply(u UniformSetter, name string) {
	u.SetVec3(name+".position", s.Position)
	u.SetVec3(name+".direction", s.Direction)
	u.SetVec3(name+".ambient", s.Ambient)
	u.SetVec3(name+".diffuse", s.Diffuse)
	u.SetVec3(name+".specular", s.Specular)
	u.SetFloat(name+".constant", s.Constant)
	u.SetFloat(name+".linear", s.Linear)
	u.SetFloat(name+".quadratic", s.Quadratic)
	u.SetFloat(name+".cutOff", s.CutOff)
	u.SetFloat(name+".outerCutOff", s.OuterCutOff)
}

// PointLightName returns the uniform prefix of the i-th point light.
func PointLightName(i int) string {
	return fmt.Sprintf("pointLights[%d]", i)
}

// ApplyLightSet uploads the light set, the eye position and the material
// shininess to a lit program. Both the cube and model programs declare the
// same dirLight / pointLights / spotLight block.
func ApplyLightSet(u UniformSetter, lights *LightSet, viewPos mgl32.Vec3, shininess float32) {
	u.SetVec3("viewPos", viewPos)
	u.SetFloat("material.shininess", shininess)

	lights.Directional.Apply(u, "dirLight")
	for i, p := range lights.Points {
		p.Apply(u, PointLightName(i))
	}
	lights.Spot.Apply(u, "spotLight")
}
