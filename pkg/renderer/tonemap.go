package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// Tone mapper names accepted in Config.ToneMapper
const (
	ToneMapperGamma    = "gamma"
	ToneMapperReinhard = "reinhard"
)

// ToneMapper converts a linear buffer into display values in [0,1]
type ToneMapper interface {
	Map(src, dst *FrameBuffer)
}

// NewToneMapper returns the tone mapper registered under name.
// An empty name selects gamma.
func NewToneMapper(name string) (ToneMapper, error) {
	switch name {
	case "", ToneMapperGamma:
		return &GammaToneMapper{Gamma: 2.0, Exposure: 1.0}, nil
	case ToneMapperReinhard:
		return &ReinhardToneMapper{Gamma: 2.0, Exposure: 1.0}, nil
	default:
		return nil, fmt.Errorf("unknown tone mapper %q", name)
	}
}

// GammaToneMapper scales by exposure, clamps to [0,1] and gamma corrects
type GammaToneMapper struct {
	Gamma    float64
	Exposure float64
}

// Map implements ToneMapper
func (g *GammaToneMapper) Map(src, dst *FrameBuffer) {
	for i, c := range src.Pixels {
		dst.Pixels[i] = c.Multiply(g.Exposure).Clamp(0, 1).GammaCorrect(g.Gamma)
	}
}

// ReinhardToneMapper compresses highlights with c/(1+c) before gamma correction
type ReinhardToneMapper struct {
	Gamma    float64
	Exposure float64
}

// Map implements ToneMapper
func (r *ReinhardToneMapper) Map(src, dst *FrameBuffer) {
	for i, c := range src.Pixels {
		c = c.Multiply(r.Exposure).Clamp(0, math.MaxFloat64)
		c = core.NewVec3(c.X/(1+c.X), c.Y/(1+c.Y), c.Z/(1+c.Z))
		dst.Pixels[i] = c.GammaCorrect(r.Gamma)
	}
}
