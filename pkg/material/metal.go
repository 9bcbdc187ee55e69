package material

import (
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   core.Vec3 // Metal color
	Fuzzness float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzzness float64) *Metal {
	return &Metal{Albedo: albedo, Fuzzness: math.Max(0, math.Min(fuzzness, 1))}
}

// Emission implements Material
func (m *Metal) Emission() core.Vec3 {
	return core.Vec3{}
}

// SampleF reflects wo about the shading normal. Fuzzy metals jitter the
// mirror direction by a point in a sphere of radius Fuzzness and are absorbed
// when the jitter pushes the direction below the surface.
func (m *Metal) SampleF(wo, ng, ns core.Vec3, u0, u1, u2 float64) Sample {
	reflected := reflect(wo.Negate(), ns)

	if m.Fuzzness > 0 {
		perturbation := core.SamplePointInUnitSphere(core.NewVec3(u0, u1, u2)).Multiply(m.Fuzzness)
		reflected = reflected.Add(perturbation)
	}
	reflected = reflected.Normalize()

	if reflected.Dot(ns) <= 0 {
		return Sample{}
	}

	// The mirror lobe is a delta: F/PDF equals the albedo
	return Sample{F: m.Albedo, Wi: reflected, PDF: 1}
}

// Glossy is a tinted Phong lobe around the mirror direction
type Glossy struct {
	Albedo   core.Vec3
	Exponent float64 // lobe sharpness; larger is closer to a mirror
}

// NewGlossy creates a new glossy material
func NewGlossy(albedo core.Vec3, exponent float64) *Glossy {
	return &Glossy{Albedo: albedo, Exponent: math.Max(exponent, 0)}
}

// Emission implements Material
func (g *Glossy) Emission() core.Vec3 {
	return core.Vec3{}
}

// SampleF importance samples the lobe, so the reflectance over the pdf is
// the albedo for every direction above the surface
func (g *Glossy) SampleF(wo, ng, ns core.Vec3, u0, u1, u2 float64) Sample {
	mirror := reflect(wo.Negate(), ns).Normalize()
	wi := core.SamplePowerCosine(mirror, g.Exponent, core.NewVec2(u0, u1)).Normalize()

	if wi.Dot(ns) <= 0 {
		return Sample{}
	}
	pdf := core.PowerCosinePDF(g.Exponent, wi.Dot(mirror))
	if pdf <= 0 {
		return Sample{}
	}

	return Sample{F: g.Albedo.Multiply(pdf), Wi: wi, PDF: pdf}
}
