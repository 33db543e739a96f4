package transform

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

// Exact zeros in the expected values rule out relative comparison, so
// matrices and vectors are compared element-wise with an absolute bound.
func assertVecNear(t *testing.T, want, got mgl64.Vec4, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], tol, msgAndArgs...)
}

func assertMatNear(t *testing.T, want, got mgl64.Mat4, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], tol, msgAndArgs...)
}

func TestViewMovesEyeToOrigin(t *testing.T) {
	eye := mgl64.Vec3{0, 0, 5}
	got := View(eye).Mul4x1(eye.Vec4(1))
	assert.Equal(t, mgl64.Vec4{0, 0, 0, 1}, got)

	eye = mgl64.Vec3{-1, 2.5, 3}
	got = View(eye).Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	assert.Equal(t, mgl64.Vec4{1, -2.5, -3, 1}, got)
}

func TestModelRotatesAboutZ(t *testing.T) {
	got := Model(90).Mul4x1(mgl64.Vec4{1, 0, 3, 1})
	assertVecNear(t, mgl64.Vec4{0, 1, 3, 1}, got)

	got = Model(-180).Mul4x1(mgl64.Vec4{2, 1, 0, 1})
	assertVecNear(t, mgl64.Vec4{-2, -1, 0, 1}, got)

	assertMatNear(t, mgl64.Ident4(), Model(360))

	// Exact rotations still carry sin/cos noise around zero.
	assertMatNear(t, mgl64.Mat4FromRows(
		mgl64.Vec4{0, -1, 0, 0},
		mgl64.Vec4{1, 0, 0, 0},
		mgl64.Vec4{0, 0, 1, 0},
		mgl64.Vec4{0, 0, 0, 1},
	), Model(90))
}

func TestProjectionMatchesPerspective(t *testing.T) {
	tests := []struct {
		fov, aspect, near, far float64
	}{
		{45, 1, 0.1, 50},
		{60, 16.0 / 9, 1, 100},
		{90, 0.5, 0.01, 10},
	}
	for _, tt := range tests {
		got, err := Projection(tt.fov, tt.aspect, tt.near, tt.far)
		require.NoError(t, err)
		want := mgl64.Perspective(mgl64.DegToRad(tt.fov), tt.aspect, tt.near, tt.far)
		assertMatNear(t, want, got, "fov=%g", tt.fov)
	}
}

func TestProjectionMapsNearAndFar(t *testing.T) {
	p, err := Projection(45, 1, 0.1, 50)
	require.NoError(t, err)

	ndcZ := func(z float64) float64 {
		c := p.Mul4x1(mgl64.Vec4{0, 0, z, 1})
		return c[2] / c[3]
	}
	assert.InDelta(t, -1, ndcZ(-0.1), tol)
	assert.InDelta(t, 1, ndcZ(-50), tol)

	// Depth grows monotonically away from the camera.
	assert.Less(t, ndcZ(-2), ndcZ(-5))

	// w is the distance in front of the camera.
	c := p.Mul4x1(mgl64.Vec4{1, 1, -7, 1})
	assert.InDelta(t, 7, c[3], tol)
}

func TestProjectionFieldOfViewIsDegrees(t *testing.T) {
	p, err := Projection(90, 1, 1, 10)
	require.NoError(t, err)
	// At 90° the frustum edge at distance d is at height d.
	c := p.Mul4x1(mgl64.Vec4{0, 3, -3, 1})
	assert.InDelta(t, 1, c[1]/c[3], tol)
}

func TestProjectionDegenerate(t *testing.T) {
	tests := []struct {
		name                   string
		fov, aspect, near, far float64
	}{
		{"near equals far", 45, 1, 5, 5},
		{"far before near", 45, 1, 5, 1},
		{"zero aspect", 45, 0, 0.1, 50},
		{"zero near", 45, 1, 0, 50},
		{"zero fov", 0, 1, 0.1, 50},
		{"fov 180", 180, 1, 0.1, 50},
		{"nan", math.NaN(), 1, 0.1, 50},
		{"inf far", 45, 1, 0.1, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Projection(tt.fov, tt.aspect, tt.near, tt.far)
			assert.ErrorIs(t, err, ErrDegenerateProjection)
		})
	}
}

func TestAxisRotationMatchesRodrigues(t *testing.T) {
	axes := []mgl64.Vec3{
		mgl64.Vec3{1, 1, 1}.Normalize(),
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0, 0, -1},
		{-1, 0, 0},
		{0.6, 0.8, 0},
		mgl64.Vec3{-2, 1, -3}.Normalize(),
	}
	for _, axis := range axes {
		for _, deg := range []float64{0, 30, 90, -45, 200} {
			got, err := AxisRotation(axis, deg)
			require.NoError(t, err)
			want := mgl64.HomogRotate3D(mgl64.DegToRad(deg), axis)
			assertMatNear(t, want, got, "axis %v angle %g", axis, deg)
		}
	}
}

func TestAxisRotationKeepsAxisFixed(t *testing.T) {
	axis := mgl64.Vec3{1, 2, 2}.Normalize()
	m, err := AxisRotation(axis, 73)
	require.NoError(t, err)
	got := m.Mul4x1(axis.Vec4(1))
	assertVecNear(t, axis.Vec4(1), got)
}

func TestAxisRotationRequiresUnitAxis(t *testing.T) {
	for _, axis := range []mgl64.Vec3{{1, 1, 1}, {}, {0, 0, 2}} {
		_, err := AxisRotation(axis, 10)
		assert.ErrorIs(t, err, ErrAxisNotUnit, "axis %v", axis)
	}
}

func TestMVPOrder(t *testing.T) {
	model := Model(90)
	view := View(mgl64.Vec3{0, 0, 5})
	proj, err := Projection(45, 1, 0.1, 50)
	require.NoError(t, err)

	p := mgl64.Vec4{2, 0, -2, 1}
	want := proj.Mul4x1(view.Mul4x1(model.Mul4x1(p)))
	got := MVP(proj, view, model).Mul4x1(p)
	assertVecNear(t, want, got)
}
