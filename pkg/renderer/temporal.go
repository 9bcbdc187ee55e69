package renderer

import (
	"time"
)

// Ramp lengths of the blend factor after the camera starts or stops moving
const (
	EditRamp   = 2 * time.Second
	StaticRamp = 5 * time.Second
)

// BlendState remembers when the camera last moved and when it was last still
type BlendState struct {
	LastEdit   time.Time
	LastStatic time.Time
}

// NewBlendState starts with both timestamps at now
func NewBlendState(now time.Time) BlendState {
	return BlendState{LastEdit: now, LastStatic: now}
}

// Next records a frame at now and returns the updated state and the history
// weight for this frame. The weight ramps from the static ghost factor to the
// editing one over EditRamp once the camera starts moving, and back over
// StaticRamp once it stops.
func (s BlendState) Next(now time.Time, edited bool, editing, static float64) (BlendState, float64) {
	var k float64
	if edited {
		s.LastEdit = now
		dt := clampDuration(now.Sub(s.LastStatic), EditRamp)
		k = 1 - dt.Seconds()/EditRamp.Seconds()
	} else {
		s.LastStatic = now
		dt := clampDuration(now.Sub(s.LastEdit), StaticRamp)
		k = dt.Seconds() / StaticRamp.Seconds()
	}
	return s, (1-k)*editing + k*static
}

func clampDuration(d, limit time.Duration) time.Duration {
	return max(0, min(d, limit))
}
