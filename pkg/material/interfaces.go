package material

import (
	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Material interface for surfaces that emit and scatter light
type Material interface {
	// Emission returns the radiance the surface emits in every direction
	Emission() core.Vec3

	// SampleF samples an incoming direction for the outgoing direction wo.
	// ng is the outward geometric normal, ns the shading normal facing wo.
	// u0, u1 and u2 are independent uniform samples in [0,1).
	SampleF(wo, ng, ns core.Vec3, u0, u1, u2 float64) Sample
}

// Sample is the result of sampling a material's scattering function.
// F already includes the cosine factor, so a path's throughput is scaled by F/PDF.
type Sample struct {
	F       core.Vec3 // reflectance
	Wi      core.Vec3 // sampled incoming direction (unit length)
	PDF     float64   // solid angle density of Wi; 0 means the path is absorbed
	Diffuse bool      // false for specular and glossy bounces
}

// Absorbed reports whether the sample ends the path
func (s Sample) Absorbed() bool {
	return s.PDF <= 0 || s.F.IsBlack()
}

// SphericalTexture modulates reflectance by the direction from a sphere's
// center to the hit point
type SphericalTexture interface {
	SphericalMap(dir core.Vec3) core.Vec3
}

// BumpMap perturbs a shading normal by the direction from a sphere's center
// to the hit point
type BumpMap interface {
	SphericalMap(dir, normal core.Vec3) core.Vec3
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
