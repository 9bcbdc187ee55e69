package core

import "math"

// RayEpsilon is the default lower bound of a ray's parametric range. It keeps
// secondary rays from re-hitting the surface they start on.
const RayEpsilon = 1e-4

// Ray represents a ray with an origin, direction and valid range [MinT, MaxT].
// Intersection routines lower MaxT to the closest hit found so far.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	MinT      float64
	MaxT      float64
}

// NewRay creates a new ray covering [RayEpsilon, +Inf)
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, MinT: RayEpsilon, MaxT: math.Inf(1)}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
