package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSampler_DrawOrder(t *testing.T) {
	// The sampler must consume the stream in the same order as direct Float64 calls
	reference := rand.New(rand.NewSource(7))
	expected := []float64{reference.Float64(), reference.Float64(), reference.Float64(),
		reference.Float64(), reference.Float64(), reference.Float64()}

	sampler := NewRandomSampler(rand.New(rand.NewSource(7)))
	first := sampler.Get1D()
	pair := sampler.Get2D()
	triple := sampler.Get3D()

	assert.Equal(t, expected[0], first)
	assert.Equal(t, expected[1], pair.X)
	assert.Equal(t, expected[2], pair.Y)
	assert.Equal(t, expected[3], triple.X)
	assert.Equal(t, expected[4], triple.Y)
	assert.Equal(t, expected[5], triple.Z)
}

func TestSampleCosineHemisphere_StaysAboveSurface(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	normals := []Vec3{
		NewVec3(0, 1, 0),
		NewVec3(1, 0, 0),
		NewVec3(0, 0, -1),
		NewVec3(1, 1, 1).Normalize(),
	}

	for _, normal := range normals {
		for i := 0; i < 500; i++ {
			dir := SampleCosineHemisphere(normal, NewVec2(random.Float64(), random.Float64()))
			require.InDelta(t, 1.0, dir.Length(), 1e-9)
			require.GreaterOrEqual(t, dir.Dot(normal), -1e-9)
		}
	}
}

func TestSamplePowerCosine(t *testing.T) {
	axis := NewVec3(0, 0, 1)

	// u=1 always gives the axis itself
	dir := SamplePowerCosine(axis, 20, NewVec2(1, 0.3))
	assert.InDelta(t, 1.0, dir.Dot(axis), 1e-12)

	// Higher exponents concentrate samples around the axis
	random := rand.New(rand.NewSource(3))
	var wide, narrow float64
	for i := 0; i < 2000; i++ {
		s := NewVec2(random.Float64(), random.Float64())
		wide += SamplePowerCosine(axis, 1, s).Dot(axis)
		narrow += SamplePowerCosine(axis, 100, s).Dot(axis)
	}
	assert.Greater(t, narrow, wide)

	assert.Equal(t, 0.0, PowerCosinePDF(10, -0.5))
	assert.InDelta(t, 11/(2*math.Pi), PowerCosinePDF(10, 1), 1e-12)
}

func TestSamplePointInUnitDisk(t *testing.T) {
	random := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitDisk(NewVec2(random.Float64(), random.Float64()))
		require.LessOrEqual(t, p.X*p.X+p.Y*p.Y, 1.0+1e-9)
		require.Equal(t, 0.0, p.Z)
	}
	assert.Equal(t, Vec3{}, SamplePointInUnitDisk(NewVec2(0.5, 0.5)))
}

func TestSamplePointInUnitSphere(t *testing.T) {
	random := rand.New(rand.NewSource(5))
	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitSphere(NewVec3(random.Float64(), random.Float64(), random.Float64()))
		require.LessOrEqual(t, p.Length(), 1.0+1e-9)
	}
}

func TestSphericalUV(t *testing.T) {
	north := SphericalUV(NewVec3(0, 1, 0))
	south := SphericalUV(NewVec3(0, -1, 0))
	equator := SphericalUV(NewVec3(1, 0, 0))
	back := SphericalUV(NewVec3(-1, 0, 0))

	assert.InDelta(t, 1.0, north.Y, 1e-12)
	assert.InDelta(t, 0.0, south.Y, 1e-12)
	assert.InDelta(t, 0.5, equator.Y, 1e-12)
	assert.InDelta(t, 0.0, equator.X, 1e-12)
	assert.InDelta(t, 0.5, back.X, 1e-12)
}
