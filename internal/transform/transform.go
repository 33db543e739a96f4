// Package transform builds the model, view and projection matrices fed to
// the rasterizer.
//
// All builders share one convention. Angles are taken in degrees and
// converted to radians once, at the call boundary. Matrices are mgl64.Mat4
// acting on column vectors (M·v), so the combined transform is P·V·M. The
// camera looks down −Z; zNear and zFar are positive distances in front of
// it, and the projection maps the near plane to NDC z = −1 and the far plane
// to z = +1, so a smaller depth is nearer.
package transform

import (
	"errors"
	"fmt"
	"math"

	"sw-rasterizer/internal/mathutil"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrDegenerateProjection is returned for frustum parameters that would
	// divide by zero or flip the frustum.
	ErrDegenerateProjection = errors.New("transform: degenerate projection")

	// ErrAxisNotUnit is returned by AxisRotation for an axis that is not
	// normalized.
	ErrAxisNotUnit = errors.New("transform: rotation axis is not unit length")
)

// axisTolerance bounds |len(axis)-1| accepted by AxisRotation.
const axisTolerance = 1e-6

// View translates world space so the eye sits at the origin.
// There is no rotation: the camera always looks down −Z.
func View(eye mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(-eye[0], -eye[1], -eye[2])
}

// Model rotates about the Z axis by angleDeg degrees. No translation.
func Model(angleDeg float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DZ(mgl64.DegToRad(angleDeg))
}

// Projection builds a perspective projection as ortho·persp: persp squeezes
// the frustum into the box between the near and far planes, and ortho scales
// that box into [-1,1]³. fovDeg is the vertical field of view.
func Projection(fovDeg, aspect, zNear, zFar float64) (mgl64.Mat4, error) {
	for _, v := range []float64{fovDeg, aspect, zNear, zFar} {
		if !mathutil.IsFinite(v) {
			return mgl64.Mat4{}, fmt.Errorf("%w: non-finite parameter", ErrDegenerateProjection)
		}
	}
	switch {
	case aspect == 0:
		return mgl64.Mat4{}, fmt.Errorf("%w: aspect ratio is zero", ErrDegenerateProjection)
	case zNear <= 0:
		return mgl64.Mat4{}, fmt.Errorf("%w: zNear %g must be positive", ErrDegenerateProjection, zNear)
	case zFar <= zNear:
		return mgl64.Mat4{}, fmt.Errorf("%w: zFar %g must exceed zNear %g", ErrDegenerateProjection, zFar, zNear)
	case fovDeg <= 0 || fovDeg >= 180:
		return mgl64.Mat4{}, fmt.Errorf("%w: field of view %g out of (0,180)", ErrDegenerateProjection, fovDeg)
	}

	n, f := zNear, zFar
	persp := mgl64.Mat4FromRows(
		mgl64.Vec4{n, 0, 0, 0},
		mgl64.Vec4{0, n, 0, 0},
		mgl64.Vec4{0, 0, n + f, n * f},
		mgl64.Vec4{0, 0, -1, 0},
	)

	top := n * math.Tan(mgl64.DegToRad(fovDeg)/2)
	right := top * aspect
	ortho := mgl64.Mat4FromRows(
		mgl64.Vec4{1 / right, 0, 0, 0},
		mgl64.Vec4{0, 1 / top, 0, 0},
		mgl64.Vec4{0, 0, -2 / (f - n), -(f + n) / (f - n)},
		mgl64.Vec4{0, 0, 0, 1},
	)

	return ortho.Mul4(persp), nil
}

// AxisRotation rotates by angleDeg degrees about a unit axis through the
// origin. The axis is first turned onto +Z (about X, then about Y), the
// rotation is applied about Z, and the alignment is undone.
func AxisRotation(axis mgl64.Vec3, angleDeg float64) (mgl64.Mat4, error) {
	if !mathutil.IsUnit(axis, axisTolerance) {
		return mgl64.Mat4{}, fmt.Errorf("%w: |%v| = %g", ErrAxisNotUnit, axis, axis.Len())
	}

	rx := math.Atan2(axis[1], axis[2])
	ry := -math.Asin(mgl64.Clamp(axis[0], -1, 1))
	align := mgl64.HomogRotate3DY(ry).Mul4(mgl64.HomogRotate3DX(rx))

	// align is orthonormal, its inverse is its transpose.
	return align.Transpose().Mul4(Model(angleDeg)).Mul4(align), nil
}

// MVP combines the three transforms in the order they apply to a vertex:
// model first, projection last.
func MVP(projection, view, model mgl64.Mat4) mgl64.Mat4 {
	return projection.Mul4(view).Mul4(model)
}
