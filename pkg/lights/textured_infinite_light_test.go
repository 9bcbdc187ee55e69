package lights

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

type constantTexture core.Vec3

func (c constantTexture) SphericalMap(dir core.Vec3) core.Vec3 { return core.Vec3(c) }

func TestTexturedInfiniteLight_ScalesTexture(t *testing.T) {
	light := NewTexturedInfiniteLight(constantTexture{X: 0.5, Y: 0.25, Z: 1}, 2)
	assert.Equal(t, core.NewVec3(1, 0.5, 2), light.Le(core.NewVec3(0, 0, -1)))
}

// directionTexture returns the lookup direction as a color
type directionTexture struct{}

func (directionTexture) SphericalMap(dir core.Vec3) core.Vec3 { return dir }

func TestTexturedInfiniteLight_LooksUpDirection(t *testing.T) {
	light := NewTexturedInfiniteLight(directionTexture{}, 0.5)
	assert.Equal(t, core.NewVec3(0, 1, 0), light.Le(core.NewVec3(0, 2, 0)))

	var _ InfiniteLight = light
}
