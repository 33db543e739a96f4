package mathutil

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrBadW is returned by Homogenize when w cannot be divided by.
var ErrBadW = errors.New("mathutil: homogeneous w is zero or not finite")

// Homogenize divides all four components by w. The returned w is exactly 1.
func Homogenize(v mgl64.Vec4) (mgl64.Vec4, error) {
	w := v[3]
	if w == 0 || !IsFinite(w) {
		return v, ErrBadW
	}
	out := mgl64.Vec4{v[0] / w, v[1] / w, v[2] / w, v[3] / w}
	for _, c := range out {
		if !IsFinite(c) {
			return v, ErrBadW
		}
	}
	return out, nil
}

// Edge2D is the z component of (b-a) × (p-a) in the XY plane.
// Its sign tells which side of the directed edge a→b the point p lies on.
func Edge2D(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// IsFinite reports whether f is neither NaN nor ±Inf.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// IsUnit reports whether v has length 1 within tol.
func IsUnit(v mgl64.Vec3, tol float64) bool {
	return math.Abs(v.Len()-1) <= tol
}
