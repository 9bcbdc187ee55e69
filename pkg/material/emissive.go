package material

import (
	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Emissive represents a light-emitting material that absorbs everything it is hit by
type Emissive struct {
	Color core.Vec3 // Emitted light color/intensity
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Color: emission}
}

// Emission returns the emitted light for this material
func (e *Emissive) Emission() core.Vec3 {
	return e.Color
}

// SampleF never scatters: the zero sample ends the path at the light
func (e *Emissive) SampleF(wo, ng, ns core.Vec3, u0, u1, u2 float64) Sample {
	return Sample{}
}

// Glowing adds emission on top of any scattering material
type Glowing struct {
	Base  Material
	Color core.Vec3
}

// NewGlowing wraps base with an emitted color
func NewGlowing(base Material, emission core.Vec3) *Glowing {
	return &Glowing{Base: base, Color: emission}
}

// Emission returns the glow plus whatever the base material emits
func (g *Glowing) Emission() core.Vec3 {
	return g.Color.Add(g.Base.Emission())
}

// SampleF delegates to the base material
func (g *Glowing) SampleF(wo, ng, ns core.Vec3, u0, u1, u2 float64) Sample {
	return g.Base.SampleF(wo, ng, ns, u0, u1, u2)
}
