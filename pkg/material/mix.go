package material

import (
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Mix represents a material that probabilistically chooses between two materials
type Mix struct {
	Material1 Material
	Material2 Material
	Ratio     float64 // 0.0 = all material1, 1.0 = all material2
}

// NewMix creates a new mix material
func NewMix(material1, material2 Material, ratio float64) *Mix {
	return &Mix{
		Material1: material1,
		Material2: material2,
		Ratio:     math.Max(0.0, math.Min(ratio, 1.0)),
	}
}

// Emission blends the two emissions by ratio
func (m *Mix) Emission() core.Vec3 {
	return m.Material1.Emission().Multiply(1 - m.Ratio).Add(m.Material2.Emission().Multiply(m.Ratio))
}

// SampleF chooses a material with u0 and rescales u0 so the chosen material
// still receives a uniform sample. The selection probability cancels in F/PDF.
func (m *Mix) SampleF(wo, ng, ns core.Vec3, u0, u1, u2 float64) Sample {
	if u0 < m.Ratio {
		return m.Material2.SampleF(wo, ng, ns, u0/m.Ratio, u1, u2)
	}
	return m.Material1.SampleF(wo, ng, ns, (u0-m.Ratio)/(1-m.Ratio), u1, u2)
}
