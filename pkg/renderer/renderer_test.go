package renderer

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/integrator"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
)

func smallConfig(width, height, spp int) Config {
	config := DefaultConfig()
	config.Width = width
	config.Height = height
	config.SamplesPerPass = spp
	return config
}

// recordingPresenter keeps a copy of every presented frame
type recordingPresenter struct {
	frames []*FrameBuffer
	err    error
}

func (p *recordingPresenter) Present(buf *FrameBuffer) error {
	frame := NewFrameBuffer(buf.Width, buf.Height)
	frame.CopyFrom(buf)
	p.frames = append(p.frames, frame)
	return p.err
}

func TestRenderer_SingleEmissivePixel(t *testing.T) {
	for _, spp := range []int{1, 2, 4} {
		r, err := NewRenderer(scene.NewEmissiveScene(), smallConfig(1, 1, spp))
		require.NoError(t, err)

		stats := r.RenderFrame(time.Unix(0, 0))

		buffers := r.Buffers()
		assert.Equal(t, core.NewVec3(1, 0, 0), buffers.Pass.At(0, 0), "spp %d", spp)
		assert.Equal(t, core.NewVec3(1, 0, 0), buffers.Persistent.At(0, 0), "spp %d", spp)
		assert.Equal(t, core.NewVec3(1, 0, 0), buffers.Display.At(0, 0), "spp %d", spp)
		assert.Equal(t, int64(spp), stats.Paths)
		assert.Equal(t, 0.0, stats.BlendFactor)
	}
}

func TestRenderer_AccumulationMatchesSumThenScale(t *testing.T) {
	const seed = 7
	config := smallConfig(6, 4, 3)
	config.Seed = seed
	sc := scene.NewDefaultScene()

	r, err := NewRenderer(sc, config)
	require.NoError(t, err)
	now := time.Unix(0, 0)
	r.start = now
	r.buildAccelerator(now)
	r.renderPass()

	// Replay the same random stream, summing first and scaling once at the end
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))
	paths := integrator.NewPathSampler(sc, integrator.Config{
		Width:              config.Width,
		Height:             config.Height,
		MaxDiffuseBounces:  config.MaxDiffuseBounces,
		MaxSpecularBounces: config.MaxSpecularBounces,
	}, sampler)
	bvh := geometry.NewBVH(sc.Primitives(), config.Accelerator)

	sums := NewFrameBuffer(config.Width, config.Height)
	for s := 0; s < config.SamplesPerPass; s++ {
		for y := 0; y < config.Height; y++ {
			for x := 0; x < config.Width; x++ {
				jitter := sampler.Get2D()
				sums.Add(x, y, paths.SampleImage(bvh, float64(x)+jitter.X, float64(y)+jitter.Y))
			}
		}
	}
	for i := range sums.Pixels {
		sums.Pixels[i] = sums.Pixels[i].Multiply(1.0 / float64(config.SamplesPerPass))
	}

	if diff := cmp.Diff(sums.Pixels, r.pass.Pixels, cmpopts.EquateApprox(1e-12, 1e-12)); diff != "" {
		t.Errorf("pass buffer mismatch (-sum then scale +scale then add):\n%s", diff)
	}
}

func TestRenderer_PassOverwritesPreviousFrame(t *testing.T) {
	r, err := NewRenderer(scene.NewEmissiveScene(), smallConfig(1, 1, 2))
	require.NoError(t, err)

	r.pass.Fill(core.NewVec3(100, 100, 100))
	renderAt(r, 0)
	assert.Equal(t, core.NewVec3(1, 0, 0), r.pass.At(0, 0))
}

// renderAt renders a frame at the given number of seconds after the epoch
func renderAt(r *Renderer, seconds float64) FrameStats {
	return r.RenderFrame(time.Unix(0, 0).Add(time.Duration(seconds * float64(time.Second))))
}

func TestRenderer_Deterministic(t *testing.T) {
	render := func(seed int64) []core.Vec3 {
		config := smallConfig(16, 9, 2)
		config.Seed = seed
		r, err := NewRenderer(scene.NewDefaultScene(), config)
		require.NoError(t, err)
		renderAt(r, 0)
		renderAt(r, 0.1)
		return append([]core.Vec3(nil), r.Buffers().Display.Pixels...)
	}

	first := render(42)
	assert.Empty(t, cmp.Diff(first, render(42)), "same seed must give the same frames")
	assert.NotEmpty(t, cmp.Diff(first, render(43)), "a different seed should change the noise")
}

func TestRenderer_BlendFactorFollowsEdits(t *testing.T) {
	config := smallConfig(2, 2, 1)
	config.GhostFactorEditing = 0.1
	config.GhostFactorStatic = 0.9
	r, err := NewRenderer(scene.NewEmissiveScene(), config)
	require.NoError(t, err)

	first := renderAt(r, 0)
	assert.False(t, first.Edited)
	assert.Equal(t, 0.0, first.BlendFactor)

	camera := r.CameraConfig()
	camera.VFov = 25
	r.UpdateCamera(camera)
	edited := renderAt(r, 10)
	assert.True(t, edited.Edited)
	assert.InDelta(t, 0.1, edited.BlendFactor, 1e-12)
	assert.Equal(t, 25.0, r.CameraConfig().VFov)

	still := renderAt(r, 20)
	assert.False(t, still.Edited)
	assert.InDelta(t, 0.9, still.BlendFactor, 1e-12)

	// Blending red with red stays red
	assert.InDelta(t, 1.0, r.Buffers().Persistent.At(1, 1).X, 1e-9)
}

func TestRenderer_BlendsHistoryIntoPersistent(t *testing.T) {
	config := smallConfig(1, 1, 1)
	config.GhostFactorStatic = 0.5
	config.GhostFactorEditing = 0.5
	r, err := NewRenderer(scene.NewEmissiveScene(), config)
	require.NoError(t, err)

	renderAt(r, 0)
	r.persistent.Fill(core.NewVec3(0, 0, 1))
	renderAt(r, 1)

	assert.InDelta(t, 0.5, r.persistent.At(0, 0).X, 1e-12)
	assert.InDelta(t, 0.5, r.persistent.At(0, 0).Z, 1e-12)
}

func TestRenderer_Presenter(t *testing.T) {
	presenter := &recordingPresenter{}
	r, err := NewRenderer(scene.NewEmissiveScene(), smallConfig(3, 2, 1), WithPresenter(presenter))
	require.NoError(t, err)

	stats := renderAt(r, 0)
	require.NoError(t, stats.PresentErr)
	require.Len(t, presenter.frames, 1)
	assert.Equal(t, r.Buffers().Display.Pixels, presenter.frames[0].Pixels)

	presenter.err = errors.New("display gone")
	stats = renderAt(r, 1)
	assert.EqualError(t, stats.PresentErr, "display gone")
	assert.Equal(t, 1, stats.Frame)
}

func TestRenderer_StatsCountWork(t *testing.T) {
	r, err := NewRenderer(scene.NewDefaultScene(), smallConfig(8, 4, 2))
	require.NoError(t, err)

	stats := renderAt(r, 0)
	assert.Equal(t, int64(8*4*2), stats.Paths)
	assert.GreaterOrEqual(t, stats.Rays, stats.Paths)
	assert.Greater(t, stats.BVH.TotalShapes, geometry.PuppetPartCount)
	assert.Greater(t, stats.AverageLuminance, 0.0)
	assert.Contains(t, stats.String(), "frame 0")
}

func TestRenderer_InjectedSampler(t *testing.T) {
	r, err := NewRenderer(scene.NewEmissiveScene(), smallConfig(1, 1, 1),
		WithSampler(core.NewRandomSampler(rand.New(rand.NewSource(1)))), WithLogger(core.NopLogger{}))
	require.NoError(t, err)
	renderAt(r, 0)
	assert.Equal(t, core.NewVec3(1, 0, 0), r.Buffers().Pass.At(0, 0))
}

func TestNewRenderer_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, "width"},
		{"negative height", func(c *Config) { c.Height = -1 }, "height"},
		{"zero samples", func(c *Config) { c.SamplesPerPass = 0 }, "samples_per_pass"},
		{"ghost above one", func(c *Config) { c.GhostFactorEditing = 1.5 }, "ghost_factor_editing"},
		{"negative ghost", func(c *Config) { c.GhostFactorStatic = -0.1 }, "ghost_factor_static"},
		{"negative diffuse", func(c *Config) { c.MaxDiffuseBounces = -1 }, "max_diffuse_bounces"},
		{"negative specular", func(c *Config) { c.MaxSpecularBounces = -1 }, "max_specular_bounces"},
		{"unknown tone mapper", func(c *Config) { c.ToneMapper = "aces" }, "tone_mapper"},
		{"branching too low", func(c *Config) { c.Accelerator.BranchingFactor = 1 }, "accelerator.branching_factor"},
		{"branching too high", func(c *Config) { c.Accelerator.BranchingFactor = 17 }, "accelerator.branching_factor"},
		{"no cost samples", func(c *Config) { c.Accelerator.CostSamples = 0 }, "accelerator.cost_samples"},
		{"free intersections", func(c *Config) { c.Accelerator.IntersectionCost = 0 }, "accelerator.intersection_cost"},
		{"negative traversal", func(c *Config) { c.Accelerator.TraversalCost = -1 }, "accelerator.traversal_cost"},
		{"empty bonus of one", func(c *Config) { c.Accelerator.EmptyBonus = 1 }, "accelerator.empty_bonus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)

			_, err := NewRenderer(scene.NewEmissiveScene(), config)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))

			var configErr *ConfigError
			require.True(t, errors.As(err, &configErr))
			assert.Equal(t, tt.field, configErr.Field)
		})
	}
}

func TestNewRenderer_RejectsInvalidScene(t *testing.T) {
	_, err := NewRenderer(nil, DefaultConfig())
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	broken := scene.NewEmissiveScene()
	broken.Environment = nil
	_, err = NewRenderer(broken, DefaultConfig())
	require.Error(t, err)
	var configErr *ConfigError
	require.True(t, errors.As(err, &configErr))
	assert.Equal(t, "scene", configErr.Field)
	assert.Contains(t, err.Error(), "environment")
}

func TestDefaultConfig_IsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestRenderer_Pick(t *testing.T) {
	r, err := NewRenderer(scene.NewEmissiveScene(), smallConfig(5, 5, 1))
	require.NoError(t, err)

	result, ok := r.Pick(2, 2)
	require.True(t, ok)
	assert.Equal(t, geometry.PrimitiveRef{Kind: geometry.PrimitiveScene, Index: 0}, result.Ref)
	assert.InDelta(t, 2.0, result.Distance, 1e-9)
	assert.InDelta(t, 1.0, result.Normal.Z, 1e-9)
	assert.Equal(t, core.NewVec3(1, 0, 0), result.Surface.Material.Emission())

	_, ok = r.Pick(5, 0)
	assert.False(t, ok, "outside the film")

	// Looking away from the sphere misses
	camera := r.CameraConfig()
	camera.LookAt = core.NewVec3(0, 0, 1)
	r.UpdateCamera(camera)
	_, ok = r.Pick(2, 2)
	assert.False(t, ok)
}
