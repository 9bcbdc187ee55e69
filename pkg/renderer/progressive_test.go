package renderer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
)

// fakeClock advances by step on every call
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func TestCameraPath_At(t *testing.T) {
	path := &CameraPath{
		Base:       geometry.CameraConfig{Center: core.NewVec3(0, 0, 5), LookAt: core.Vec3{}},
		OrbitTime:  time.Second,
		HoldTime:   time.Second,
		OrbitSpeed: 90,
	}

	camera, moving := path.At(0)
	assert.True(t, moving)
	assert.Equal(t, path.Base.Center, camera.Center)

	// Holding after one full orbit phase: a quarter turn
	camera, moving = path.At(1500 * time.Millisecond)
	assert.False(t, moving)
	assert.InDelta(t, 5, camera.Center.X, 1e-9)
	assert.InDelta(t, 0, camera.Center.Z, 1e-9)

	// The second orbit phase continues from where the first stopped
	camera, moving = path.At(2500 * time.Millisecond)
	assert.True(t, moving)
	expected := path.Base.Orbit(135, 0)
	assert.InDelta(t, expected.Center.X, camera.Center.X, 1e-9)
	assert.InDelta(t, expected.Center.Z, camera.Center.Z, 1e-9)
}

func TestCameraPath_NoPhases(t *testing.T) {
	path := &CameraPath{Base: geometry.CameraConfig{VFov: 30}}
	camera, moving := path.At(time.Hour)
	assert.False(t, moving)
	assert.Equal(t, path.Base, camera)
}

func collect(t *testing.T, statsChan <-chan FrameStats, errChan <-chan error) ([]FrameStats, error) {
	t.Helper()
	var frames []FrameStats
	for stats := range statsChan {
		frames = append(frames, stats)
	}
	return frames, <-errChan
}

func TestLoop_RendersRequestedFrames(t *testing.T) {
	r, err := NewRenderer(scene.NewEmissiveScene(), smallConfig(2, 2, 1))
	require.NoError(t, err)

	clock := &fakeClock{now: time.Unix(0, 0), step: 100 * time.Millisecond}
	statsChan, errChan := Loop(context.Background(), r, LoopConfig{Frames: 4, Clock: clock.Now})

	frames, err := collect(t, statsChan, errChan)
	require.NoError(t, err)
	require.Len(t, frames, 4)
	for i, f := range frames {
		assert.Equal(t, i, f.Frame)
		assert.False(t, f.Edited)
	}
}

func TestLoop_AppliesLastPendingEdit(t *testing.T) {
	r, err := NewRenderer(scene.NewEmissiveScene(), smallConfig(2, 2, 1))
	require.NoError(t, err)

	edits := make(chan geometry.CameraConfig, 2)
	first := r.CameraConfig()
	first.VFov = 15
	second := r.CameraConfig()
	second.VFov = 18
	edits <- first
	edits <- second

	statsChan, errChan := Loop(context.Background(), r, LoopConfig{Frames: 2, Edits: edits})
	frames, err := collect(t, statsChan, errChan)
	require.NoError(t, err)
	require.Len(t, frames, 2)

	assert.True(t, frames[0].Edited)
	assert.False(t, frames[1].Edited)
	assert.Equal(t, 18.0, r.CameraConfig().VFov)
}

func TestLoop_CameraPathMarksEdits(t *testing.T) {
	r, err := NewRenderer(scene.NewEmissiveScene(), smallConfig(2, 2, 1))
	require.NoError(t, err)

	path := &CameraPath{Base: r.CameraConfig(), OrbitTime: time.Second, HoldTime: time.Second, OrbitSpeed: 10}
	clock := &fakeClock{now: time.Unix(0, 0), step: 400 * time.Millisecond}
	statsChan, errChan := Loop(context.Background(), r, LoopConfig{Frames: 5, Path: path, Clock: clock.Now})

	frames, err := collect(t, statsChan, errChan)
	require.NoError(t, err)
	require.Len(t, frames, 5)

	// Elapsed 0, 0.4, 0.8 orbit; 1.2, 1.6 hold
	var edited []bool
	for _, f := range frames {
		edited = append(edited, f.Edited)
	}
	assert.Equal(t, []bool{true, true, true, false, false}, edited)
}

func TestLoop_StopsOnCancel(t *testing.T) {
	r, err := NewRenderer(scene.NewEmissiveScene(), smallConfig(2, 2, 1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	statsChan, errChan := Loop(ctx, r, LoopConfig{})
	frames, err := collect(t, statsChan, errChan)
	assert.Empty(t, frames)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoop_RateLimited(t *testing.T) {
	r, err := NewRenderer(scene.NewEmissiveScene(), smallConfig(1, 1, 1))
	require.NoError(t, err)

	start := time.Now()
	statsChan, errChan := Loop(context.Background(), r, LoopConfig{Frames: 3, FPS: 20})
	frames, err := collect(t, statsChan, errChan)
	require.NoError(t, err)
	require.Len(t, frames, 3)

	// Burst of one: the second and third frames each wait 50ms
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestLoop_RunsTasksBetweenFrames(t *testing.T) {
	r, err := NewRenderer(scene.NewEmissiveScene(), smallConfig(4, 4, 1))
	require.NoError(t, err)

	tasks := make(chan func(*Renderer), 1)
	var picked PickResult
	var hit bool
	tasks <- func(r *Renderer) { picked, hit = r.Pick(2, 2) }

	statsChan, errChan := Loop(context.Background(), r, LoopConfig{Frames: 1, Tasks: tasks})
	_, err = collect(t, statsChan, errChan)
	require.NoError(t, err)

	require.True(t, hit)
	assert.Equal(t, geometry.PrimitiveRef{Kind: geometry.PrimitiveScene, Index: 0}, picked.Ref)
	assert.InDelta(t, 2.0, picked.Distance, 0.05)
}
