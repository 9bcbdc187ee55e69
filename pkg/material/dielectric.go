package material

import (
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Emission implements Material
func (d *Dielectric) Emission() core.Vec3 {
	return core.Vec3{}
}

// SampleF picks reflection or refraction with the Schlick Fresnel weight, using u0
func (d *Dielectric) SampleF(wo, ng, ns core.Vec3, u0, u1, u2 float64) Sample {
	// Entering when wo is on the outside of the geometric surface
	refractionRatio := d.RefractiveIndex
	if wo.Dot(ng) > 0 {
		refractionRatio = 1.0 / d.RefractiveIndex
	}

	unitDirection := wo.Negate().Normalize()
	cosTheta := math.Min(-unitDirection.Dot(ns), 1.0)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))

	// Check for total internal reflection
	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || Reflectance(cosTheta, refractionRatio) > u0 {
		direction = reflect(unitDirection, ns)
	} else {
		direction = refract(unitDirection, ns, refractionRatio)
	}

	// Clear glass: no absorption
	return Sample{F: core.NewVec3(1, 1, 1), Wi: direction.Normalize(), PDF: 1}
}

// refract calculates the refraction of a vector using Snell's law
func refract(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
