package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

func TestNewToneMapper(t *testing.T) {
	for _, name := range []string{"", ToneMapperGamma, ToneMapperReinhard} {
		mapper, err := NewToneMapper(name)
		require.NoError(t, err, name)
		assert.NotNil(t, mapper)
	}

	_, err := NewToneMapper("filmic")
	assert.Error(t, err)
}

func TestGammaToneMapper(t *testing.T) {
	src := NewFrameBuffer(3, 1)
	src.Set(0, 0, core.NewVec3(0.25, 0, 1))
	src.Set(1, 0, core.NewVec3(4, -1, 0))
	dst := NewFrameBuffer(3, 1)

	mapper, err := NewToneMapper(ToneMapperGamma)
	require.NoError(t, err)
	mapper.Map(src, dst)

	assert.InDelta(t, 0.5, dst.At(0, 0).X, 1e-12)
	assert.Equal(t, 1.0, dst.At(0, 0).Z)
	assert.Equal(t, 1.0, dst.At(1, 0).X, "highlights clamp")
	assert.Equal(t, core.Vec3{}, dst.At(2, 0))
	// Source untouched
	assert.Equal(t, core.NewVec3(4, -1, 0), src.At(1, 0))
}

func TestReinhardToneMapper(t *testing.T) {
	src := NewFrameBuffer(2, 1)
	src.Set(0, 0, core.NewVec3(1, 3, 0))
	src.Set(1, 0, core.NewVec3(1000, 1000, 1000))
	dst := NewFrameBuffer(2, 1)

	mapper, err := NewToneMapper(ToneMapperReinhard)
	require.NoError(t, err)
	mapper.Map(src, dst)

	// 1/(1+1) = 0.5 and 3/(1+3) = 0.75 before gamma 2
	assert.InDelta(t, 0.70710678, dst.At(0, 0).X, 1e-6)
	assert.InDelta(t, 0.8660254, dst.At(0, 0).Y, 1e-6)
	// Very bright values approach but stay below white
	assert.Less(t, dst.At(1, 0).X, 1.0)
	assert.Greater(t, dst.At(1, 0).X, 0.99)
}
