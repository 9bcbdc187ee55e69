package integrator

import (
	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/lights"
)

// HitTester finds the closest primitive along a ray. On a hit it lowers
// ray.MaxT to the hit distance.
type HitTester interface {
	Intersect(ray *core.Ray) (geometry.PrimitiveRef, bool)
}

// Scene is what the path sampler needs to know about the world
type Scene interface {
	GetCamera() geometry.RayGenerator
	GetSurface(ref geometry.PrimitiveRef) geometry.Surface
	GetEnvironment() lights.InfiniteLight
}

// Config holds the film size and the per-class bounce budgets
type Config struct {
	Width              int
	Height             int
	MaxDiffuseBounces  int // a path ends once it takes more diffuse bounces than this
	MaxSpecularBounces int // same for specular and glossy bounces
}

// PathStats counts work done by a sampler since the last reset
type PathStats struct {
	Paths int64 // SampleImage calls
	Rays  int64 // intersection queries
}
