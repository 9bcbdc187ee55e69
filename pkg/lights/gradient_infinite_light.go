package lights

import (
	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// GradientInfiniteLight blends from a ground color below the horizon to a sky color overhead
type GradientInfiniteLight struct {
	TopColor    core.Vec3
	BottomColor core.Vec3
}

// NewGradientInfiniteLight creates a new gradient infinite light
func NewGradientInfiniteLight(topColor, bottomColor core.Vec3) *GradientInfiniteLight {
	return &GradientInfiniteLight{TopColor: topColor, BottomColor: bottomColor}
}

// Le implements InfiniteLight
func (gil *GradientInfiniteLight) Le(direction core.Vec3) core.Vec3 {
	d := direction.Normalize()
	t := 0.5 * (d.Y + 1.0) // Map Y from [-1,1] to [0,1]
	return gil.BottomColor.Multiply(1.0 - t).Add(gil.TopColor.Multiply(t))
}
