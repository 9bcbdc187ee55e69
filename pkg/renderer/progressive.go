package renderer

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/df07/go-interactive-raytracer/pkg/geometry"
)

// CameraPath alternates between orbiting the look-at point and holding still,
// so an unattended session shows both the editing and the settling look
type CameraPath struct {
	Base       geometry.CameraConfig
	OrbitTime  time.Duration // length of each moving phase
	HoldTime   time.Duration // length of each still phase
	OrbitSpeed float64       // degrees per second while moving
}

// DefaultCameraPath orbits for 3 seconds then holds for 4
func DefaultCameraPath(base geometry.CameraConfig) *CameraPath {
	return &CameraPath{
		Base:       base,
		OrbitTime:  3 * time.Second,
		HoldTime:   4 * time.Second,
		OrbitSpeed: 20,
	}
}

// At returns the camera after elapsed time on the path and whether the
// camera is moving at that moment
func (p *CameraPath) At(elapsed time.Duration) (geometry.CameraConfig, bool) {
	cycle := p.OrbitTime + p.HoldTime
	if cycle <= 0 || elapsed < 0 {
		return p.Base, false
	}

	completed := elapsed / cycle
	inCycle := elapsed % cycle
	moving := inCycle < p.OrbitTime
	orbiting := time.Duration(completed)*p.OrbitTime + min(inCycle, p.OrbitTime)

	return p.Base.Orbit(p.OrbitSpeed*orbiting.Seconds(), 0), moving
}

// LoopConfig controls the interactive render loop
type LoopConfig struct {
	FPS    float64     // frame rate cap, 0 renders as fast as possible
	Frames int         // stop after this many frames, 0 runs until the context ends
	Path   *CameraPath // optional automatic camera motion

	// Edits carries camera changes from other goroutines. Pending edits are
	// applied between frames and the last one wins.
	Edits <-chan geometry.CameraConfig

	// Tasks run on the render goroutine between frames, after edits. They
	// may read renderer state that is unsafe to touch from elsewhere.
	Tasks <-chan func(*Renderer)

	// Clock supplies frame timestamps, time.Now when nil
	Clock func() time.Time
}

// Loop drives r from a single goroutine until ctx ends or config.Frames
// frames have been rendered. Stats for every frame are delivered on the first
// channel; the error channel reports a context error if the loop was
// cancelled. Both channels are closed when the loop exits.
func Loop(ctx context.Context, r *Renderer, config LoopConfig) (<-chan FrameStats, <-chan error) {
	statsChan := make(chan FrameStats, 1)
	errChan := make(chan error, 1)

	clock := config.Clock
	if clock == nil {
		clock = time.Now
	}

	limit := rate.Inf
	if config.FPS > 0 {
		limit = rate.Limit(config.FPS)
	}
	limiter := rate.NewLimiter(limit, 1)

	go func() {
		defer close(statsChan)
		defer close(errChan)

		r.logger.Printf("Starting interactive loop (fps cap %g, frames %d)\n", config.FPS, config.Frames)

		var start time.Time
		for frame := 0; config.Frames == 0 || frame < config.Frames; frame++ {
			if err := limiter.Wait(ctx); err != nil {
				r.logger.Printf("Loop stopped before frame %d: %v\n", frame, err)
				errChan <- contextErr(ctx, err)
				return
			}

			now := clock()
			if frame == 0 {
				start = now
			}

			applyEdits(r, config.Edits)
			runTasks(r, config.Tasks)
			if config.Path != nil {
				if camera, moving := config.Path.At(now.Sub(start)); moving {
					r.UpdateCamera(camera)
				}
			}

			stats := r.RenderFrame(now)
			select {
			case statsChan <- stats:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return statsChan, errChan
}

// applyEdits drains pending camera edits without blocking
func applyEdits(r *Renderer, edits <-chan geometry.CameraConfig) {
	if edits == nil {
		return
	}
	for {
		select {
		case camera, ok := <-edits:
			if !ok {
				return
			}
			r.UpdateCamera(camera)
		default:
			return
		}
	}
}

// runTasks runs pending tasks without blocking
func runTasks(r *Renderer, tasks <-chan func(*Renderer)) {
	if tasks == nil {
		return
	}
	for {
		select {
		case task, ok := <-tasks:
			if !ok {
				return
			}
			task(r)
		default:
			return
		}
	}
}

// contextErr prefers the context's own error over the limiter's wrapping of it
func contextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
