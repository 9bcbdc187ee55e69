package material

import (
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Emission implements Material
func (l *Lambertian) Emission() core.Vec3 {
	return core.Vec3{}
}

// SampleF draws a cosine-weighted direction around the shading normal
func (l *Lambertian) SampleF(wo, ng, ns core.Vec3, u0, u1, u2 float64) Sample {
	wi := core.SampleCosineHemisphere(ns, core.NewVec2(u0, u1)).Normalize()

	// Calculate PDF: cos(θ) / π where θ is angle from normal
	cosTheta := wi.Dot(ns)
	if cosTheta <= 0 {
		return Sample{}
	}
	pdf := cosTheta / math.Pi

	// BRDF albedo/π times the cosine term
	return Sample{
		F:       l.Albedo.Multiply(cosTheta / math.Pi),
		Wi:      wi,
		PDF:     pdf,
		Diffuse: true,
	}
}
