package material

import (
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Ripple perturbs normals with a sinusoidal height field laid out in
// latitude/longitude: h(u,v) = Amplitude * sin(2πFu) * sin(2πFv)
type Ripple struct {
	Frequency float64
	Amplitude float64
}

// NewRipple creates a ripple bump map
func NewRipple(frequency, amplitude float64) *Ripple {
	return &Ripple{Frequency: frequency, Amplitude: amplitude}
}

// SphericalMap tilts normal against the height gradient at dir. The result
// always stays in the hemisphere of the unperturbed normal.
func (r *Ripple) SphericalMap(dir, normal core.Vec3) core.Vec3 {
	d := dir.Normalize()
	uv := core.SphericalUV(d)

	w := 2 * math.Pi * r.Frequency
	dhdu := r.Amplitude * w * math.Cos(w*uv.X) * math.Sin(w*uv.Y)
	dhdv := r.Amplitude * w * math.Sin(w*uv.X) * math.Cos(w*uv.Y)

	// Tangents along increasing u (longitude) and v (towards the north pole)
	phi := 2 * math.Pi * uv.X
	tangentU := core.NewVec3(-math.Sin(phi), 0, math.Cos(phi))
	tangentV := core.NewVec3(0, 1, 0).Subtract(d.Multiply(d.Y)).Normalize()

	perturbed := normal.Subtract(tangentU.Multiply(dhdu).Add(tangentV.Multiply(dhdv))).Normalize()
	if perturbed.Dot(normal) <= 0 {
		return normal
	}
	return perturbed
}
