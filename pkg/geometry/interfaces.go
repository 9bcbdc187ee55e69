package geometry

import (
	"fmt"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Intersect lowers ray.MaxT to the hit distance and reports true when the
// ray hits the shape inside [ray.MinT, ray.MaxT].
type Shape interface {
	Intersect(ray *core.Ray) bool
	BoundingBox() core.AABB
}

// PrimitiveKind tags which index space a PrimitiveRef points into
type PrimitiveKind uint8

const (
	PrimitiveScene  PrimitiveKind = iota // scene sphere
	PrimitivePuppet                      // articulated puppet part
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveScene:
		return "scene"
	case PrimitivePuppet:
		return "puppet"
	default:
		return fmt.Sprintf("PrimitiveKind(%d)", uint8(k))
	}
}

// PrimitiveRef identifies a hit primitive. Index is relative to its kind:
// scene spheres and puppet parts are numbered independently.
type PrimitiveRef struct {
	Kind  PrimitiveKind
	Index int
}

func (r PrimitiveRef) String() string {
	return fmt.Sprintf("%s#%d", r.Kind, r.Index)
}

// Primitive pairs a shape with the reference reported when it is hit
type Primitive struct {
	Ref   PrimitiveRef
	Shape Shape
}

// Surface is the shading data attached to a primitive. Texture and Bump
// are optional; puppet parts never carry them.
type Surface struct {
	Sphere   *Sphere
	Material material.Material
	Texture  material.SphericalTexture
	Bump     material.BumpMap
}
