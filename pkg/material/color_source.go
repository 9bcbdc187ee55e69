package material

import (
	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// SolidColor tints every direction by the same color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// SphericalMap returns the solid color regardless of direction
func (s *SolidColor) SphericalMap(dir core.Vec3) core.Vec3 {
	return s.Color
}
