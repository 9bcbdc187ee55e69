package lights

import "github.com/df07/go-interactive-raytracer/pkg/core"

// InfiniteLight is the environment surrounding the scene. Rays that escape
// every primitive pick up Le in their direction.
type InfiniteLight interface {
	// Le returns the radiance arriving from direction (need not be normalized)
	Le(direction core.Vec3) core.Vec3
}
