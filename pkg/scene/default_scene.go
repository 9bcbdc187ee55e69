package scene

import (
	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/lights"
	"github.com/df07/go-interactive-raytracer/pkg/material"
)

// NewDefaultScene creates the default scene: a row of spheres with assorted
// materials, a checkered ground and the puppet, under a gradient sky
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:   core.NewVec3(0, 0.9, 3),
		LookAt:   core.NewVec3(0, 0.5, -1), // Look at the sphere row
		Up:       core.NewVec3(0, 1, 0),
		VFov:     40.0,
		Aperture: 0.02,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Environment: lights.NewGradientInfiniteLight(
			core.NewVec3(0.5, 0.7, 1.0), // topColor (blue sky)
			core.NewVec3(1.0, 1.0, 1.0), // bottomColor (white ground)
		),
	}
	s.SetCamera(cameraConfig)

	// Create materials
	lambertianGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.8))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glossyBlue := material.NewGlossy(core.NewVec3(0.2, 0.35, 0.8), 80)
	materialGlass := material.NewDielectric(1.5)

	// Ground: a huge sphere with a checker pattern
	s.AddSurface(SceneSphere{
		Sphere:   geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000),
		Material: lambertianGround,
		Texture:  material.NewChecker(4000, 2000, core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.35, 0.45, 0.3)),
	})

	// Center sphere: diffuse red with ripples, half coated in glass
	s.AddSurface(SceneSphere{
		Sphere:   geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5),
		Material: material.NewMix(lambertianRed, materialGlass, 0.2),
		Bump:     material.NewRipple(6, 0.01),
	})
	s.AddSphere(core.NewVec3(-1.1, 0.5, -1), 0.5, metalSilver)
	s.AddSphere(core.NewVec3(1.1, 0.5, -1), 0.5, metalGold)
	s.AddSphere(core.NewVec3(0.55, 0.2, -0.3), 0.2, materialGlass)
	s.AddSphere(core.NewVec3(-0.6, 0.15, -0.2), 0.15, glossyBlue)

	// Small warm glowing sphere
	s.AddSphere(core.NewVec3(-0.2, 0.08, 0.1), 0.08,
		material.NewGlowing(material.NewLambertian(core.NewVec3(0.9, 0.6, 0.3)), core.NewVec3(3, 1.6, 0.6)))

	// Key light above and behind the camera
	s.AddSphere(core.NewVec3(4, 8, 6), 2, material.NewEmissive(core.NewVec3(6, 5.6, 5.2)))

	// The puppet walks beside the row, rendered at half size
	puppet := geometry.NewPuppet(core.NewVec3(1.9, 0, -1.6), 0.5)
	puppet.Yaw = -35
	puppet.Pose(0)
	s.SetPuppet(puppet, material.NewLambertian(core.NewVec3(0.75, 0.75, 0.7)))
	s.PuppetMaterials[geometry.PartHead] = material.NewLambertian(core.NewVec3(0.85, 0.65, 0.5))
	s.PuppetMaterials[geometry.PartChest] = material.NewLambertian(core.NewVec3(0.2, 0.3, 0.6))

	return s
}

// NewEmissiveScene is a single red emissive sphere straight ahead of the
// camera against a black sky
func NewEmissiveScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   20,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := &Scene{Environment: lights.NewUniformInfiniteLight(core.Vec3{})}
	s.SetCamera(cameraConfig)
	s.AddSphere(core.NewVec3(0, 0, -3), 1, material.NewEmissive(core.NewVec3(1, 0, 0)))
	return s
}

// NewStudioScene puts the puppet on a mirror floor under a single area light
func NewStudioScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center: core.NewVec3(0, 1.2, 3.2),
		LookAt: core.NewVec3(0, 0.9, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := &Scene{Environment: lights.NewUniformInfiniteLight(core.NewVec3(0.03, 0.03, 0.04))}
	s.SetCamera(cameraConfig)

	s.AddSphere(core.NewVec3(0, -500, 0), 500, material.NewMetal(core.NewVec3(0.7, 0.7, 0.75), 0.05))
	s.AddSphere(core.NewVec3(0, 506, 0), 500, material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7)))
	s.AddSphere(core.NewVec3(-1.5, 4, 1.5), 1, material.NewEmissive(core.NewVec3(10, 9, 8)))
	s.AddSphere(core.NewVec3(2, 2.5, -1), 0.5, material.NewEmissive(core.NewVec3(1, 2, 4)))

	puppet := geometry.NewPuppet(core.NewVec3(0, 0, 0), 1)
	puppet.Pose(0)
	s.SetPuppet(puppet, material.NewGlossy(core.NewVec3(0.9, 0.3, 0.2), 40))
	s.PuppetMaterials[geometry.PartHead] = material.NewLambertian(core.NewVec3(0.9, 0.9, 0.9))

	return s
}
