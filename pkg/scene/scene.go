package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/lights"
	"github.com/df07/go-interactive-raytracer/pkg/material"
)

// SceneSphere is a scene sphere together with its shading attachments.
// Texture and Bump may be nil.
type SceneSphere struct {
	Sphere   *geometry.Sphere
	Material material.Material
	Texture  material.SphericalTexture
	Bump     material.BumpMap
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
	Spheres      []SceneSphere
	Environment  lights.InfiniteLight

	// Puppet is optional. When present every part needs a material.
	Puppet          *geometry.Puppet
	PuppetMaterials [geometry.PuppetPartCount]material.Material
}

// AddSphere appends a plain sphere and returns its index
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) int {
	return s.AddSurface(SceneSphere{Sphere: geometry.NewSphere(center, radius), Material: mat})
}

// AddSurface appends a sphere with attachments and returns its index
func (s *Scene) AddSurface(sphere SceneSphere) int {
	s.Spheres = append(s.Spheres, sphere)
	return len(s.Spheres) - 1
}

// SetPuppet places a puppet, using mat for every part
func (s *Scene) SetPuppet(puppet *geometry.Puppet, mat material.Material) {
	s.Puppet = puppet
	for i := range s.PuppetMaterials {
		s.PuppetMaterials[i] = mat
	}
}

// SetCamera replaces the camera
func (s *Scene) SetCamera(config geometry.CameraConfig) {
	s.CameraConfig = config
	s.Camera = geometry.NewCamera(config)
}

// Pose moves the puppet (if any) to animation time t in seconds
func (s *Scene) Pose(t float64) {
	if s.Puppet != nil {
		s.Puppet.Pose(t)
	}
}

// Primitives lists everything the hit tester indexes: scene spheres first,
// then puppet parts
func (s *Scene) Primitives() []geometry.Primitive {
	prims := make([]geometry.Primitive, 0, len(s.Spheres)+geometry.PuppetPartCount)
	for i, sphere := range s.Spheres {
		prims = append(prims, geometry.Primitive{
			Ref:   geometry.PrimitiveRef{Kind: geometry.PrimitiveScene, Index: i},
			Shape: sphere.Sphere,
		})
	}
	if s.Puppet != nil {
		prims = append(prims, s.Puppet.Primitives()...)
	}
	return prims
}

// GetCamera returns the camera as a ray generator
func (s *Scene) GetCamera() geometry.RayGenerator {
	return s.Camera
}

// GetEnvironment returns the light seen by rays that leave the scene
func (s *Scene) GetEnvironment() lights.InfiniteLight {
	return s.Environment
}

// GetSurface resolves a hit reference. Puppet parts carry no texture or bump map.
// An out of range reference is a programming error and panics.
func (s *Scene) GetSurface(ref geometry.PrimitiveRef) geometry.Surface {
	switch ref.Kind {
	case geometry.PrimitiveScene:
		sphere := s.Spheres[ref.Index]
		return geometry.Surface{
			Sphere:   sphere.Sphere,
			Material: sphere.Material,
			Texture:  sphere.Texture,
			Bump:     sphere.Bump,
		}
	case geometry.PrimitivePuppet:
		if s.Puppet == nil {
			panic(fmt.Sprintf("scene: %v hit but the scene has no puppet", ref))
		}
		part := geometry.PuppetPart(ref.Index)
		return geometry.Surface{
			Sphere:   s.Puppet.Sphere(part),
			Material: s.PuppetMaterials[part],
		}
	default:
		panic(fmt.Sprintf("scene: unknown primitive kind in %v", ref))
	}
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return errors.New("scene has no camera")
	}
	if s.Environment == nil {
		return errors.New("scene has no environment light")
	}
	for i, sphere := range s.Spheres {
		if sphere.Sphere == nil {
			return fmt.Errorf("sphere %d has no geometry", i)
		}
		if sphere.Sphere.Radius <= 0 {
			return fmt.Errorf("sphere %d has non-positive radius %g", i, sphere.Sphere.Radius)
		}
		if sphere.Material == nil {
			return fmt.Errorf("sphere %d has no material", i)
		}
	}
	if s.Puppet != nil {
		if s.Puppet.Scale <= 0 {
			return fmt.Errorf("puppet has non-positive scale %g", s.Puppet.Scale)
		}
		for i, mat := range s.PuppetMaterials {
			if mat == nil {
				return fmt.Errorf("puppet part %s has no material", geometry.PuppetPart(i))
			}
		}
	}
	return nil
}
