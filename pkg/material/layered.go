package material

import (
	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Layered represents a material with two layers - an outer and inner material.
// Light hits the outer layer first, then if it scatters inward, hits the inner layer.
// This simulates coatings such as clear lacquer over paint.
type Layered struct {
	Outer Material // coating, usually a Dielectric
	Inner Material // base material under the coating
}

// NewLayered creates a new layered material
func NewLayered(outer, inner Material) *Layered {
	return &Layered{
		Outer: outer,
		Inner: inner,
	}
}

// Emission is what either layer emits
func (l *Layered) Emission() core.Vec3 {
	return l.Outer.Emission().Add(l.Inner.Emission())
}

// SampleF samples the outer layer first. A direction leaving the surface ends
// there; one heading inward is handed to the inner layer at the same point,
// which draws from (u1, u2, u0). Throughput of both layers is folded into F.
func (l *Layered) SampleF(wo, ng, ns core.Vec3, u0, u1, u2 float64) Sample {
	outer := l.Outer.SampleF(wo, ng, ns, u0, u1, u2)
	if outer.Absorbed() || outer.Wi.Dot(ng) >= 0 {
		return outer
	}

	inner := l.Inner.SampleF(outer.Wi.Negate(), ng, ns, u1, u2, u0)
	if inner.Absorbed() {
		// Nothing comes back from the base: the ray carries on through the coating
		return outer
	}

	return Sample{
		F:       outer.F.Multiply(1 / outer.PDF).MultiplyVec(inner.F),
		Wi:      inner.Wi,
		PDF:     inner.PDF,
		Diffuse: inner.Diffuse,
	}
}
