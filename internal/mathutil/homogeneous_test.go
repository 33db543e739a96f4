package mathutil

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomogenize(t *testing.T) {
	got, err := Homogenize(mgl64.Vec4{2, -4, 6, 2})
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec4{1, -2, 3, 1}, got)

	got, err = Homogenize(mgl64.Vec4{0.3, 0.7, -0.1, -0.7})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got[3], "w must divide to exactly 1")
}

func TestHomogenizeRejectsBadW(t *testing.T) {
	tests := []struct {
		name string
		v    mgl64.Vec4
	}{
		{"zero", mgl64.Vec4{1, 2, 3, 0}},
		{"nan", mgl64.Vec4{1, 2, 3, math.NaN()}},
		{"inf", mgl64.Vec4{1, 2, 3, math.Inf(1)}},
		{"overflow", mgl64.Vec4{math.MaxFloat64, 0, 0, 1e-300}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Homogenize(tt.v)
			assert.ErrorIs(t, err, ErrBadW)
		})
	}
}

func TestEdge2D(t *testing.T) {
	// Edge along +X: points above are on the left (positive).
	assert.Greater(t, Edge2D(0, 0, 1, 0, 0.5, 1), 0.0)
	assert.Less(t, Edge2D(0, 0, 1, 0, 0.5, -1), 0.0)
	assert.Equal(t, 0.0, Edge2D(0, 0, 1, 0, 3, 0))
}

func TestIsUnit(t *testing.T) {
	assert.True(t, IsUnit(mgl64.Vec3{1, 1, 1}.Normalize(), 1e-9))
	assert.False(t, IsUnit(mgl64.Vec3{1, 1, 1}, 1e-9))
	assert.False(t, IsUnit(mgl64.Vec3{}, 1e-9))
}
