package scene

import (
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/lights"
	"github.com/df07/go-interactive-raytracer/pkg/material"
)

// NewTextureScene creates a row of spheres demonstrating texture mapping,
// bump mapping and a coated material
func NewTextureScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:   core.NewVec3(0, 2, 9),
		LookAt:   core.NewVec3(0, 1, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     45.0,
		Aperture: 0.0, // No DOF for texture clarity
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Environment: lights.NewGradientInfiniteLight(
			core.NewVec3(0.3, 0.4, 0.6), // topColor (subtle blue)
			core.NewVec3(0.2, 0.2, 0.2), // bottomColor (dim gray)
		),
	}
	s.SetCamera(cameraConfig)

	white := material.NewLambertian(core.NewVec3(1, 1, 1))

	// Ground with a fine brick-colored checker
	s.AddSurface(SceneSphere{
		Sphere:   geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000),
		Material: white,
		Texture: material.NewChecker(6000, 3000,
			core.NewVec3(0.7, 0.3, 0.1),  // Orange
			core.NewVec3(0.5, 0.2, 0.05), // Dark brown
		),
	})

	// All spheres in a single row, left to right
	s.AddSurface(SceneSphere{
		Sphere:   geometry.NewSphere(core.NewVec3(-4.5, 1, 0), 1),
		Material: white,
		Texture: material.NewChecker(16, 8,
			core.NewVec3(0.9, 0.9, 0.9), // White
			core.NewVec3(0.2, 0.2, 0.8), // Blue
		),
	})
	s.AddSurface(SceneSphere{
		Sphere:   geometry.NewSphere(core.NewVec3(-2.25, 1, 0), 1),
		Material: white,
		Texture: material.NewGradient(
			core.NewVec3(1.0, 0.2, 0.2), // Red (top)
			core.NewVec3(0.2, 1.0, 0.2), // Green (bottom)
		),
	})
	s.AddSurface(SceneSphere{
		Sphere:   geometry.NewSphere(core.NewVec3(0, 1, 0), 1),
		Material: white,
		Texture:  uvDebugTexture(64, 32),
	})
	s.AddSurface(SceneSphere{
		Sphere:   geometry.NewSphere(core.NewVec3(2.25, 1, 0), 1),
		Material: material.NewLambertian(core.NewVec3(0.3, 0.6, 0.7)),
		Bump:     material.NewRipple(10, 0.02),
	})

	// Glass coat over a diffuse red base
	s.AddSphere(core.NewVec3(4.5, 1, 0), 1, material.NewLayered(
		material.NewDielectric(1.5),
		material.NewLambertian(core.NewVec3(0.7, 0.1, 0.1)),
	))

	// Area light above and in front of the row
	s.AddSphere(core.NewVec3(0, 8, 5), 2, material.NewEmissive(core.NewVec3(20, 20, 20)))

	return s
}

// uvDebugTexture builds an image whose red channel follows u and green
// channel follows v, with a darker band every eighth of the way around
func uvDebugTexture(width, height int) *material.ImageTexture {
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u := (float64(x) + 0.5) / float64(width)
			v := (float64(y) + 0.5) / float64(height)
			c := core.NewVec3(u, v, 0.2)
			if math.Mod(u*8, 1) < 0.1 {
				c = c.Multiply(0.5)
			}
			pixels[y*width+x] = c
		}
	}
	return material.NewImageTexture(width, height, pixels)
}
