package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

func testCameraConfig() CameraConfig {
	return CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   90,
	}
}

func TestCamera_CenterPixelLooksForward(t *testing.T) {
	camera := NewCamera(testCameraConfig())

	ray := camera.GenerateRay(50, 25, 100, 50, 0.5, 0.5)
	assert.Equal(t, core.Vec3{}, ray.Origin)
	assert.InDelta(t, 0, ray.Direction.X, 1e-12)
	assert.InDelta(t, 0, ray.Direction.Y, 1e-12)
	assert.InDelta(t, -1, ray.Direction.Z, 1e-12)
	assert.InDelta(t, 1, ray.Direction.Length(), 1e-12)
}

func TestCamera_RowZeroIsTop(t *testing.T) {
	camera := NewCamera(testCameraConfig())

	top := camera.GenerateRay(5, 0, 10, 10, 0.5, 0.5)
	bottom := camera.GenerateRay(5, 10, 10, 10, 0.5, 0.5)
	left := camera.GenerateRay(0, 5, 10, 10, 0.5, 0.5)

	assert.Greater(t, top.Direction.Y, 0.0)
	assert.Less(t, bottom.Direction.Y, 0.0)
	assert.Less(t, left.Direction.X, 0.0)

	// 90° vertical FOV: the top edge is at 45°
	assert.InDelta(t, top.Direction.Y, -top.Direction.Z, 1e-12)
}

func TestCamera_AspectFromFilm(t *testing.T) {
	camera := NewCamera(testCameraConfig())

	// On a 2:1 film the right edge is twice as far out as the top edge
	right := camera.GenerateRay(20, 5, 20, 10, 0.5, 0.5)
	top := camera.GenerateRay(10, 0, 20, 10, 0.5, 0.5)
	assert.InDelta(t, 2*top.Direction.Y/-top.Direction.Z, right.Direction.X/-right.Direction.Z, 1e-9)
}

func TestCamera_ApertureJittersOrigin(t *testing.T) {
	config := testCameraConfig()
	config.Aperture = 0.5
	config.FocusDistance = 2
	camera := NewCamera(config)

	a := camera.GenerateRay(50, 50, 100, 100, 0.1, 0.9)
	b := camera.GenerateRay(50, 50, 100, 100, 0.9, 0.1)
	assert.NotEqual(t, a.Origin, b.Origin)

	// Both rays still meet on the focus plane
	pa := a.At(2 / -a.Direction.Z)
	pb := b.At(2 / -b.Direction.Z)
	assert.InDelta(t, pa.X, pb.X, 1e-9)
	assert.InDelta(t, pa.Y, pb.Y, 1e-9)
}

func TestCameraConfig_Orbit(t *testing.T) {
	config := CameraConfig{Center: core.NewVec3(0, 1, 5), LookAt: core.NewVec3(0, 1, 0)}

	rotated := config.Orbit(90, 0)
	assert.InDelta(t, 5, rotated.Center.X, 1e-9)
	assert.InDelta(t, 1, rotated.Center.Y, 1e-9)
	assert.InDelta(t, 0, rotated.Center.Z, 1e-9)

	closer := config.Orbit(0, 2)
	assert.InDelta(t, 3, closer.Center.Z, 1e-9)
}

func TestMergeCameraConfig(t *testing.T) {
	base := testCameraConfig()
	merged := MergeCameraConfig(base, CameraConfig{VFov: 30, Center: core.NewVec3(1, 2, 3)})
	assert.Equal(t, 30.0, merged.VFov)
	assert.Equal(t, core.NewVec3(1, 2, 3), merged.Center)
	assert.Equal(t, base.LookAt, merged.LookAt)
}
