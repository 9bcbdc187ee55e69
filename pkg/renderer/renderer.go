package renderer

import (
	"math/rand"
	"time"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/integrator"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
)

// Presenter displays a tone mapped frame
type Presenter interface {
	Present(buf *FrameBuffer) error
}

// Option customises a Renderer
type Option func(*Renderer)

// WithLogger sets the logger used for construction and build summaries
func WithLogger(logger core.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

// WithPresenter sets where finished frames go. Without one frames are only
// kept in the display buffer.
func WithPresenter(presenter Presenter) Option {
	return func(r *Renderer) { r.presenter = presenter }
}

// WithSampler replaces the seeded random sampler
func WithSampler(sampler core.Sampler) Option {
	return func(r *Renderer) { r.sampler = sampler }
}

// Buffers gives read access to the renderer's frame buffers
type Buffers struct {
	Pass       *FrameBuffer // this frame's filtered samples
	Persistent *FrameBuffer // blended history, linear
	Display    *FrameBuffer // tone mapped persistent buffer
}

// Renderer produces one interactive frame per RenderFrame call. It is not
// safe for concurrent use; drive it from a single goroutine.
type Renderer struct {
	scene      *scene.Scene
	config     Config
	logger     core.Logger
	presenter  Presenter
	sampler    core.Sampler
	paths      *integrator.PathSampler
	toneMapper ToneMapper

	pass       *FrameBuffer
	scratch    *FrameBuffer
	persistent *FrameBuffer
	display    *FrameBuffer

	bvh    *geometry.BVH
	blend  BlendState
	start  time.Time // animation time origin, set by the first frame
	frame  int
	edited bool
}

// NewRenderer validates the configuration and the scene and allocates the
// frame buffers
func NewRenderer(sc *scene.Scene, config Config, opts ...Option) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, configErrorf("scene", "no scene")
	}
	if err := sc.Validate(); err != nil {
		return nil, configErrorf("scene", "%v", err)
	}

	toneMapper, err := NewToneMapper(config.ToneMapper)
	if err != nil {
		return nil, configErrorf("tone_mapper", "%v", err)
	}

	r := &Renderer{
		scene:      sc,
		config:     config,
		logger:     core.NopLogger{},
		toneMapper: toneMapper,
		pass:       NewFrameBuffer(config.Width, config.Height),
		scratch:    NewFrameBuffer(config.Width, config.Height),
		persistent: NewFrameBuffer(config.Width, config.Height),
		display:    NewFrameBuffer(config.Width, config.Height),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.sampler == nil {
		r.sampler = core.NewRandomSampler(rand.New(rand.NewSource(config.Seed)))
	}

	r.paths = integrator.NewPathSampler(sc, integrator.Config{
		Width:              config.Width,
		Height:             config.Height,
		MaxDiffuseBounces:  config.MaxDiffuseBounces,
		MaxSpecularBounces: config.MaxSpecularBounces,
	}, r.sampler)

	puppetParts := 0
	if sc.Puppet != nil {
		puppetParts = geometry.PuppetPartCount
	}
	r.logger.Printf("Renderer: %dx%d, %d samples/pass, %d scene spheres + %d puppet spheres, tone mapper %q\n",
		config.Width, config.Height, config.SamplesPerPass, len(sc.Spheres), puppetParts, config.ToneMapper)

	return r, nil
}

// Config returns the configuration the renderer was built with
func (r *Renderer) Config() Config {
	return r.config
}

// CameraConfig returns the current camera
func (r *Renderer) CameraConfig() geometry.CameraConfig {
	return r.scene.CameraConfig
}

// UpdateCamera replaces the camera. The next frame counts as a camera edit.
func (r *Renderer) UpdateCamera(config geometry.CameraConfig) {
	r.scene.SetCamera(config)
	r.edited = true
}

// Buffers exposes the renderer's buffers. Callers must not write to them.
func (r *Renderer) Buffers() Buffers {
	return Buffers{Pass: r.pass, Persistent: r.persistent, Display: r.display}
}

// RenderFrame renders, filters, blends, tone maps and presents one frame.
// now drives both the puppet animation and the blend ramps.
func (r *Renderer) RenderFrame(now time.Time) FrameStats {
	frameStart := time.Now()
	stats := FrameStats{Frame: r.frame, Edited: r.edited}
	if r.frame == 0 {
		r.start = now
	}

	stageStart := time.Now()
	r.buildAccelerator(now)
	stats.BVH = r.bvh.Stats()
	stats.BuildTime = time.Since(stageStart)

	stageStart = time.Now()
	r.paths.ResetStats()
	r.renderPass()
	pathStats := r.paths.Stats()
	stats.Paths, stats.Rays = pathStats.Paths, pathStats.Rays
	stats.SampleTime = time.Since(stageStart)

	stageStart = time.Now()
	r.filter()
	stats.FilterTime = time.Since(stageStart)

	stageStart = time.Now()
	stats.BlendFactor = r.blendHistory(now)
	stats.AverageLuminance = r.persistent.AverageLuminance()
	stats.BlendTime = time.Since(stageStart)

	stageStart = time.Now()
	r.toneMapper.Map(r.persistent, r.display)
	stats.ToneMapTime = time.Since(stageStart)

	if r.presenter != nil {
		stageStart = time.Now()
		stats.PresentErr = r.presenter.Present(r.display)
		stats.PresentTime = time.Since(stageStart)
		if stats.PresentErr != nil {
			r.logger.Printf("Frame %d: present failed: %v\n", r.frame, stats.PresentErr)
		}
	}

	r.frame++
	r.edited = false
	stats.TotalTime = time.Since(frameStart)
	return stats
}

// buildAccelerator poses the puppet and rebuilds the BVH over scene spheres
// followed by puppet spheres
func (r *Renderer) buildAccelerator(now time.Time) {
	r.scene.Pose(now.Sub(r.start).Seconds())
	r.bvh = geometry.NewBVH(r.scene.Primitives(), r.config.Accelerator)
	if r.frame == 0 {
		bs := r.bvh.Stats()
		r.logger.Printf("BVH: %d nodes, %d leaves, depth %d, %d primitives\n",
			bs.TotalNodes, bs.LeafNodes, bs.MaxDepth, bs.TotalShapes)
	}
}

// renderPass fills the pass buffer with SamplesPerPass jittered samples per
// pixel. Each sample is scaled before accumulation; the first sample of a
// pixel overwrites last frame's value.
func (r *Renderer) renderPass() {
	spp := r.config.SamplesPerPass
	scale := 1.0 / float64(spp)
	for s := 0; s < spp; s++ {
		for y := 0; y < r.config.Height; y++ {
			for x := 0; x < r.config.Width; x++ {
				jitter := r.sampler.Get2D()
				c := r.paths.SampleImage(r.bvh, float64(x)+jitter.X, float64(y)+jitter.Y).Multiply(scale)
				if s == 0 {
					r.pass.Set(x, y, c)
				} else {
					r.pass.Add(x, y, c)
				}
			}
		}
	}
}

func (r *Renderer) filter() {
	for i := 0; i < FilterPasses; i++ {
		ApplyBoxFilter(r.pass, r.scratch, FilterRadius)
	}
}

// blendHistory folds the pass into the persistent buffer and returns the
// history weight used
func (r *Renderer) blendHistory(now time.Time) float64 {
	if r.frame == 0 {
		r.blend = NewBlendState(now)
		r.persistent.CopyFrom(r.pass)
		return 0
	}

	var factor float64
	r.blend, factor = r.blend.Next(now, r.edited, r.config.GhostFactorEditing, r.config.GhostFactorStatic)
	r.persistent.Blend(r.pass, factor)
	return factor
}

// PickResult describes the surface seen through a pixel
type PickResult struct {
	Ref      geometry.PrimitiveRef
	Surface  geometry.Surface
	Point    core.Vec3
	Normal   core.Vec3 // outward geometric normal
	Distance float64
}

// Pick traces a single ray through the center of pixel (x, y) and the center
// of the lens. It uses the accelerator of the last frame, so it sees the
// puppet where it was last drawn.
func (r *Renderer) Pick(x, y int) (PickResult, bool) {
	if x < 0 || y < 0 || x >= r.config.Width || y >= r.config.Height {
		return PickResult{}, false
	}
	if r.bvh == nil {
		r.bvh = geometry.NewBVH(r.scene.Primitives(), r.config.Accelerator)
	}

	ray := r.scene.GetCamera().GenerateRay(float64(x)+0.5, float64(y)+0.5, r.config.Width, r.config.Height, 0.5, 0.5)
	ref, ok := r.bvh.Intersect(&ray)
	if !ok {
		return PickResult{}, false
	}

	surface := r.scene.GetSurface(ref)
	point := ray.At(ray.MaxT)
	return PickResult{
		Ref:      ref,
		Surface:  surface,
		Point:    point,
		Normal:   surface.Sphere.Normal(point),
		Distance: ray.MaxT,
	}, true
}
