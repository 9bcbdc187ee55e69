package material

import (
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Checker alternates two colors over a latitude/longitude grid
type Checker struct {
	CellsU int // cells around the equator
	CellsV int // cells from pole to pole
	Color1 core.Vec3
	Color2 core.Vec3
}

// NewChecker creates a procedural spherical checkerboard
func NewChecker(cellsU, cellsV int, color1, color2 core.Vec3) *Checker {
	return &Checker{CellsU: max(1, cellsU), CellsV: max(1, cellsV), Color1: color1, Color2: color2}
}

// SphericalMap implements SphericalTexture
func (c *Checker) SphericalMap(dir core.Vec3) core.Vec3 {
	uv := core.SphericalUV(dir)
	checkU := int(math.Floor(uv.X * float64(c.CellsU)))
	checkV := int(math.Floor(uv.Y * float64(c.CellsV)))
	if (checkU+checkV)%2 == 0 {
		return c.Color1
	}
	return c.Color2
}

// Gradient blends from Bottom at the south pole to Top at the north pole
type Gradient struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewGradient creates a vertical spherical gradient
func NewGradient(top, bottom core.Vec3) *Gradient {
	return &Gradient{Top: top, Bottom: bottom}
}

// SphericalMap implements SphericalTexture
func (g *Gradient) SphericalMap(dir core.Vec3) core.Vec3 {
	return g.Bottom.Lerp(g.Top, core.SphericalUV(dir).Y)
}
