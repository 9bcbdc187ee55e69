package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-interactive-raytracer/pkg/geometry"
)

// FrameStats describes one call to RenderFrame
type FrameStats struct {
	Frame       int     // 0-based frame number
	Edited      bool    // the camera changed since the previous frame
	BlendFactor float64 // weight of the history, 0 on the first frame
	Paths       int64   // camera paths traced
	Rays        int64   // intersection queries

	AverageLuminance float64 // of the persistent (linear) buffer
	BVH              geometry.BVHStats

	// Per-stage wall clock timings
	BuildTime   time.Duration // pose + BVH rebuild
	SampleTime  time.Duration
	FilterTime  time.Duration
	BlendTime   time.Duration
	ToneMapTime time.Duration
	PresentTime time.Duration
	TotalTime   time.Duration

	PresentErr error // nil when there is no presenter or it succeeded
}

// RaysPerPath returns the mean number of intersection queries per camera path
func (s FrameStats) RaysPerPath() float64 {
	if s.Paths == 0 {
		return 0
	}
	return float64(s.Rays) / float64(s.Paths)
}

func (s FrameStats) String() string {
	return fmt.Sprintf("frame %d: %v total (build %v, sample %v, filter %v, blend %v, tonemap %v, present %v), %d paths, %.2f rays/path, blend %.3f, lum %.4f",
		s.Frame, s.TotalTime.Round(time.Microsecond),
		s.BuildTime.Round(time.Microsecond), s.SampleTime.Round(time.Microsecond),
		s.FilterTime.Round(time.Microsecond), s.BlendTime.Round(time.Microsecond),
		s.ToneMapTime.Round(time.Microsecond), s.PresentTime.Round(time.Microsecond),
		s.Paths, s.RaysPerPath(), s.BlendFactor, s.AverageLuminance)
}
