package integrator

import (
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// PathSampler implements iterative unidirectional path tracing
type PathSampler struct {
	scene   Scene
	config  Config
	sampler core.Sampler
	stats   PathStats
}

// NewPathSampler creates a path sampler that draws all of its random numbers from sampler
func NewPathSampler(scene Scene, config Config, sampler core.Sampler) *PathSampler {
	return &PathSampler{
		scene:   scene,
		config:  config,
		sampler: sampler,
	}
}

// SampleImage traces one path through the film position (pixelU, pixelV),
// given in pixels with the jitter already applied, and returns its radiance.
//
// Random numbers are drawn in a fixed order: lens u, lens v, then three per
// bounce for the material sample.
func (ps *PathSampler) SampleImage(hits HitTester, pixelU, pixelV float64) core.Vec3 {
	ps.stats.Paths++

	lensU := ps.sampler.Get1D()
	lensV := ps.sampler.Get1D()
	ray := ps.scene.GetCamera().GenerateRay(pixelU, pixelV, ps.config.Width, ps.config.Height, lensU, lensV)

	throughput := core.NewVec3(1, 1, 1)
	radiance := core.Vec3{}
	diffuseBounces := 0
	specularBounces := 0

	for {
		ps.stats.Rays++
		ref, hit := hits.Intersect(&ray)
		if !hit {
			return radiance.Add(throughput.MultiplyVec(ps.scene.GetEnvironment().Le(ray.Direction)))
		}

		surface := ps.scene.GetSurface(ref)
		point := ray.At(ray.MaxT)
		outward := surface.Sphere.Normal(point)

		// Shading normal faces the incoming ray
		normal := outward
		if ray.Direction.Dot(outward) > 0 {
			normal = outward.Negate()
		}
		if surface.Bump != nil {
			normal = surface.Bump.SphericalMap(outward, normal)
		}

		radiance = radiance.Add(throughput.MultiplyVec(surface.Material.Emission()))

		wo := ray.Direction.Negate().Normalize()
		u := ps.sampler.Get3D()
		sample := surface.Material.SampleF(wo, outward, normal, u.X, u.Y, u.Z)
		if sample.Absorbed() {
			return radiance
		}

		f := sample.F
		if surface.Texture != nil {
			f = f.MultiplyVec(surface.Texture.SphericalMap(outward))
		}

		if sample.Diffuse {
			diffuseBounces++
			if diffuseBounces > ps.config.MaxDiffuseBounces {
				return radiance
			}
		} else {
			specularBounces++
			if specularBounces > ps.config.MaxSpecularBounces {
				return radiance
			}
		}

		throughput = throughput.MultiplyVec(f.Multiply(1 / sample.PDF))
		if !isFinite(throughput) {
			return radiance
		}

		ray = core.NewRay(point, sample.Wi)
	}
}

// Stats returns the counters accumulated since the last ResetStats
func (ps *PathSampler) Stats() PathStats {
	return ps.stats
}

// ResetStats zeroes the counters
func (ps *PathSampler) ResetStats() {
	ps.stats = PathStats{}
}

func isFinite(v core.Vec3) bool {
	return !math.IsInf(v.X, 0) && !math.IsNaN(v.X) &&
		!math.IsInf(v.Y, 0) && !math.IsNaN(v.Y) &&
		!math.IsInf(v.Z, 0) && !math.IsNaN(v.Z)
}
