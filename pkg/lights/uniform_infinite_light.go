package lights

import (
	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// UniformInfiniteLight represents a uniform infinite area light (constant emission in all directions)
type UniformInfiniteLight struct {
	Emission core.Vec3
}

// NewUniformInfiniteLight creates a new uniform infinite light
func NewUniformInfiniteLight(emission core.Vec3) *UniformInfiniteLight {
	return &UniformInfiniteLight{Emission: emission}
}

// Le implements InfiniteLight
func (uil *UniformInfiniteLight) Le(direction core.Vec3) core.Vec3 {
	return uil.Emission
}
