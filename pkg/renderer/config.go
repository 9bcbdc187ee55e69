package renderer

import (
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
)

// Config contains everything the renderer reads at construction
type Config struct {
	Width              int     `yaml:"width"`
	Height             int     `yaml:"height"`
	SamplesPerPass     int     `yaml:"samples_per_pass"`     // path samples per pixel per frame
	GhostFactorEditing float64 `yaml:"ghost_factor_editing"` // history weight while the camera moves
	GhostFactorStatic  float64 `yaml:"ghost_factor_static"`  // history weight once the camera has been still for a while
	MaxDiffuseBounces  int     `yaml:"max_diffuse_bounces"`
	MaxSpecularBounces int     `yaml:"max_specular_bounces"` // specular and glossy
	Seed               int64   `yaml:"seed"`
	ToneMapper         string  `yaml:"tone_mapper"` // "gamma" or "reinhard"

	Accelerator geometry.BVHConfig `yaml:"accelerator"`
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:              320,
		Height:             180,
		SamplesPerPass:     2,
		GhostFactorEditing: 0.05,
		GhostFactorStatic:  0.9,
		MaxDiffuseBounces:  3,
		MaxSpecularBounces: 8,
		Seed:               42,
		ToneMapper:         ToneMapperGamma,
		Accelerator:        geometry.DefaultBVHConfig(),
	}
}

// Validate reports the first invalid field as a *ConfigError
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return configErrorf("width", "must be positive, got %d", c.Width)
	case c.Height <= 0:
		return configErrorf("height", "must be positive, got %d", c.Height)
	case c.SamplesPerPass <= 0:
		return configErrorf("samples_per_pass", "must be positive, got %d", c.SamplesPerPass)
	case c.GhostFactorEditing < 0 || c.GhostFactorEditing > 1:
		return configErrorf("ghost_factor_editing", "must be in [0,1], got %g", c.GhostFactorEditing)
	case c.GhostFactorStatic < 0 || c.GhostFactorStatic > 1:
		return configErrorf("ghost_factor_static", "must be in [0,1], got %g", c.GhostFactorStatic)
	case c.MaxDiffuseBounces < 0:
		return configErrorf("max_diffuse_bounces", "must not be negative, got %d", c.MaxDiffuseBounces)
	case c.MaxSpecularBounces < 0:
		return configErrorf("max_specular_bounces", "must not be negative, got %d", c.MaxSpecularBounces)
	}

	if _, err := NewToneMapper(c.ToneMapper); err != nil {
		return configErrorf("tone_mapper", "%v", err)
	}

	a := c.Accelerator
	switch {
	case a.BranchingFactor < 2 || a.BranchingFactor > 16:
		return configErrorf("accelerator.branching_factor", "must be in [2,16], got %d", a.BranchingFactor)
	case a.CostSamples <= 0:
		return configErrorf("accelerator.cost_samples", "must be positive, got %d", a.CostSamples)
	case a.IntersectionCost <= 0:
		return configErrorf("accelerator.intersection_cost", "must be positive, got %g", a.IntersectionCost)
	case a.TraversalCost < 0:
		return configErrorf("accelerator.traversal_cost", "must not be negative, got %g", a.TraversalCost)
	case a.EmptyBonus < 0 || a.EmptyBonus >= 1:
		return configErrorf("accelerator.empty_bonus", "must be in [0,1), got %g", a.EmptyBonus)
	}
	return nil
}
