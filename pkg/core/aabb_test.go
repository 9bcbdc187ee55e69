package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		expected bool
	}{
		{"straight through", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), true},
		{"pointing away", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), false},
		{"miss to the side", NewRay(NewVec3(3, 0, 5), NewVec3(0, 0, -1)), false},
		{"parallel inside slab", NewRay(NewVec3(0.5, 0.5, 5), NewVec3(0, 0, -1)), true},
		{"origin inside", NewRay(NewVec3(0, 0, 0), NewVec3(1, 2, 3)), true},
		{"range ends before box", Ray{Origin: NewVec3(0, 0, 5), Direction: NewVec3(0, 0, -1), MinT: 0, MaxT: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := tt.ray
			assert.Equal(t, tt.expected, box.Hit(&ray))
		})
	}
}

func TestAABB_UnionAndArea(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(2, 0, 0), NewVec3(3, 1, 1))

	u := a.Union(b)
	assert.Equal(t, NewVec3(0, 0, 0), u.Min)
	assert.Equal(t, NewVec3(3, 1, 1), u.Max)
	assert.Equal(t, 0, u.LongestAxis())
	assert.InDelta(t, 14.0, u.SurfaceArea(), 1e-12)
	assert.Equal(t, NewVec3(1.5, 0.5, 0.5), u.Center())
}

func TestAABB_Empty(t *testing.T) {
	empty := EmptyAABB()
	assert.False(t, empty.IsValid())
	assert.Equal(t, 0.0, empty.SurfaceArea())

	grown := empty.ExtendPoint(NewVec3(1, 2, 3))
	assert.True(t, grown.IsValid())
	assert.Equal(t, NewVec3(1, 2, 3), grown.Min)
	assert.False(t, math.IsInf(grown.Max.X, 0))
}
