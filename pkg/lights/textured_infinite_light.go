package lights

import (
	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// TexturedInfiniteLight looks the environment up in a spherical texture, such as
// a latitude/longitude image
type TexturedInfiniteLight struct {
	Texture   Texture
	Intensity float64
}

// Texture is the lookup a textured environment needs. material.ImageTexture
// and material.Checker both satisfy it.
type Texture interface {
	SphericalMap(dir core.Vec3) core.Vec3
}

// NewTexturedInfiniteLight creates a textured environment scaled by intensity
func NewTexturedInfiniteLight(texture Texture, intensity float64) *TexturedInfiniteLight {
	return &TexturedInfiniteLight{Texture: texture, Intensity: intensity}
}

// Le implements InfiniteLight
func (til *TexturedInfiniteLight) Le(direction core.Vec3) core.Vec3 {
	return til.Texture.SphericalMap(direction).Multiply(til.Intensity)
}
