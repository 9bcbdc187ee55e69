package geometry

import (
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// RayGenerator turns a (jittered) pixel coordinate into a primary ray.
// pixelU/pixelV are in pixels with (0,0) at the top-left corner; lensU and
// lensV are uniform samples used for depth of field.
type RayGenerator interface {
	GenerateRay(pixelU, pixelV float64, width, height int, lensU, lensV float64) core.Ray
}

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center        core.Vec3 `yaml:"center"`         // Camera position
	LookAt        core.Vec3 `yaml:"look_at"`        // Point the camera is looking at
	Up            core.Vec3 `yaml:"up"`             // Up direction (usually 0,1,0)
	VFov          float64   `yaml:"vfov"`           // Vertical field of view in degrees
	Aperture      float64   `yaml:"aperture"`       // Lens diameter, 0 for a pinhole
	FocusDistance float64   `yaml:"focus_distance"` // 0 focuses on LookAt
}

// Camera is a thin-lens perspective camera. The aspect ratio comes from the
// film size passed to GenerateRay, so one camera serves any buffer shape.
type Camera struct {
	config     CameraConfig
	origin     core.Vec3
	u, v, w    core.Vec3
	halfHeight float64 // tan(vfov/2) * focus distance
	focusDist  float64
	lensRadius float64
}

// NewCamera creates a camera from configuration
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180
	focusDist := config.FocusDistance
	if focusDist <= 0 {
		focusDist = config.Center.Subtract(config.LookAt).Length()
	}

	up := config.Up
	if up.IsBlack() {
		up = core.NewVec3(0, 1, 0)
	}

	// Orthonormal basis: w points backwards, u right, v up
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	return &Camera{
		config:     config,
		origin:     config.Center,
		u:          u,
		v:          v,
		w:          w,
		halfHeight: math.Tan(theta/2) * focusDist,
		focusDist:  focusDist,
		lensRadius: config.Aperture / 2,
	}
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GenerateRay implements RayGenerator
func (c *Camera) GenerateRay(pixelU, pixelV float64, width, height int, lensU, lensV float64) core.Ray {
	aspect := float64(width) / float64(height)
	halfWidth := c.halfHeight * aspect

	// Map pixel space to [-1,1] on the focus plane, flipping V so row 0 is the top
	sx := 2*pixelU/float64(width) - 1
	sy := 1 - 2*pixelV/float64(height)

	focusPoint := c.origin.
		Add(c.u.Multiply(sx * halfWidth)).
		Add(c.v.Multiply(sy * c.halfHeight)).
		Subtract(c.w.Multiply(c.focusDist))

	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.SamplePointInUnitDisk(core.NewVec2(lensU, lensV)).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	return core.NewRay(origin, focusPoint.Subtract(origin).Normalize())
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if !override.Center.IsBlack() {
		result.Center = override.Center
	}
	if !override.LookAt.IsBlack() {
		result.LookAt = override.LookAt
	}
	if !override.Up.IsBlack() {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// Orbit rotates the camera position around LookAt about the world Y axis by
// yawDegrees, and moves it towards (dolly > 0) or away from the target.
func (c CameraConfig) Orbit(yawDegrees, dolly float64) CameraConfig {
	offset := c.Center.Subtract(c.LookAt)
	angle := yawDegrees * math.Pi / 180
	cosA, sinA := math.Cos(angle), math.Sin(angle)
	rotated := core.NewVec3(
		offset.X*cosA+offset.Z*sinA,
		offset.Y,
		-offset.X*sinA+offset.Z*cosA,
	)

	if dolly != 0 {
		length := rotated.Length()
		newLength := math.Max(0.1, length-dolly)
		rotated = rotated.Multiply(newLength / length)
	}

	result := c
	result.Center = c.LookAt.Add(rotated)
	return result
}
