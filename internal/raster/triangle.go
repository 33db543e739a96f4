package raster

import (
	"fmt"
	"math"

	"sw-rasterizer/internal/mathutil"

	"github.com/go-gl/mathgl/mgl64"
)

// Triangle is one primitive after the viewport transform: x and y in pixels,
// z the remapped depth, w the homogeneous w left by the perspective divide.
type Triangle struct {
	V [3]mgl64.Vec4
	C [3]mgl64.Vec3 // per-vertex RGB in [0,255]
}

// SetVertex sets vertex i.
func (t *Triangle) SetVertex(i int, v mgl64.Vec4) {
	t.V[i] = v
}

// SetColor sets the color of vertex i. Channels must lie in [0,255].
func (t *Triangle) SetColor(i int, c mgl64.Vec3) error {
	for _, ch := range c {
		if !(ch >= 0 && ch <= 255) {
			return fmt.Errorf("raster: vertex color %v: %w", c, ErrColorRange)
		}
	}
	t.C[i] = c
	return nil
}

// Color is the single color a flat-shaded triangle is filled with: the
// color of vertex 0.
func (t *Triangle) Color() mgl64.Vec3 {
	return t.C[0]
}

// Area returns twice the signed screen-space area. It is positive for
// counter-clockwise vertices.
func (t *Triangle) Area() float64 {
	a, b, c := t.V[0], t.V[1], t.V[2]
	return mathutil.Edge2D(a[0], a[1], b[0], b[1], c[0], c[1])
}

// Inside reports whether (x, y) lies in the triangle. Edges are taken in
// vertex order; the point is inside when all three edge functions share a
// sign, zero counting as either sign, so either winding works and points on
// an edge are inside.
func (t *Triangle) Inside(x, y float64) bool {
	a, b, c := t.V[0], t.V[1], t.V[2]
	e0 := mathutil.Edge2D(a[0], a[1], b[0], b[1], x, y)
	e1 := mathutil.Edge2D(b[0], b[1], c[0], c[1], x, y)
	e2 := mathutil.Edge2D(c[0], c[1], a[0], a[1], x, y)
	return (e0 >= 0 && e1 >= 0 && e2 >= 0) || (e0 <= 0 && e1 <= 0 && e2 <= 0)
}

// Barycentric returns the weights of (x, y) with respect to the vertices.
// Each weight is a sub-triangle area over the full area, so all three are
// computed independently. A zero-area triangle yields NaN or Inf.
func (t *Triangle) Barycentric(x, y float64) (alpha, beta, gamma float64) {
	a, b, c := t.V[0], t.V[1], t.V[2]
	area := t.Area()
	alpha = mathutil.Edge2D(b[0], b[1], c[0], c[1], x, y) / area
	beta = mathutil.Edge2D(c[0], c[1], a[0], a[1], x, y) / area
	gamma = mathutil.Edge2D(a[0], a[1], b[0], b[1], x, y) / area
	return alpha, beta, gamma
}

// interpolate blends a per-vertex quantity with perspective correction:
// each weight is divided by its vertex w and the sum renormalized.
func (t *Triangle) interpolate(alpha, beta, gamma float64, q0, q1, q2 float64) float64 {
	w0, w1, w2 := t.V[0][3], t.V[1][3], t.V[2][3]
	wRecip := 1 / (alpha/w0 + beta/w1 + gamma/w2)
	return wRecip * (alpha*q0/w0 + beta*q1/w1 + gamma*q2/w2)
}

// Shading picks how a covered pixel's color is derived.
type Shading int

const (
	// Flat fills the whole triangle with Triangle.Color.
	Flat Shading = iota
	// Smooth interpolates the vertex colors at the pixel center.
	Smooth
)

func (s Shading) String() string {
	switch s {
	case Flat:
		return "flat"
	case Smooth:
		return "smooth"
	}
	return fmt.Sprintf("Shading(%d)", int(s))
}

// ParseShading accepts the names String produces.
func ParseShading(name string) (Shading, error) {
	switch name {
	case "flat", "":
		return Flat, nil
	case "smooth":
		return Smooth, nil
	}
	return Flat, fmt.Errorf("raster: unknown shading %q", name)
}

// samplePattern holds the sub-pixel sample offsets used for coverage.
var samplePattern = [4][2]float64{
	{0.25, 0.25},
	{0.25, 0.75},
	{0.75, 0.25},
	{0.75, 0.75},
}

// RasterizeTriangle fills t into fb with 4-sample coverage and a strict
// less-than depth test. The written color is the shaded color scaled by the
// covered fraction; it is not blended with what the pixel held before.
func RasterizeTriangle(fb *FrameBuffer, t *Triangle, shading Shading, st *Stats) error {
	v0, v1, v2 := t.V[0], t.V[1], t.V[2]

	// Bounding box, clamped to the buffer while still in floating point:
	// vertices near the eye plane land far outside the int range.
	w, h := float64(fb.Width), float64(fb.Height)
	minX := int(clampf(math.Floor(math.Min(math.Min(v0[0], v1[0]), v2[0])), 0, w))
	maxX := int(clampf(math.Ceil(math.Max(math.Max(v0[0], v1[0]), v2[0])), 0, w))
	minY := int(clampf(math.Floor(math.Min(math.Min(v0[1], v1[1]), v2[1])), 0, h))
	maxY := int(clampf(math.Ceil(math.Max(math.Max(v0[1], v1[1]), v2[1])), 0, h))

	degenerate := t.Area() == 0

	for y := minY; y < maxY; y++ {
		fy := float64(y)
		for x := minX; x < maxX; x++ {
			fx := float64(x)

			covered := 0
			for _, s := range samplePattern {
				if t.Inside(fx+s[0], fy+s[1]) {
					covered++
				}
			}
			if covered == 0 {
				continue
			}
			if degenerate {
				return fmt.Errorf("raster: zero-area triangle covers pixel (%d,%d): %w", x, y, ErrDegenerate)
			}
			coverage := float64(covered) / float64(len(samplePattern))

			alpha, beta, gamma := t.Barycentric(fx+0.5, fy+0.5)
			z := t.interpolate(alpha, beta, gamma, v0[2], v1[2], v2[2])
			if !mathutil.IsFinite(z) {
				return fmt.Errorf("raster: depth %g at pixel (%d,%d): %w", z, x, y, ErrDegenerate)
			}

			idx := fb.Index(x, y)
			if !(z < fb.Depth[idx]) {
				st.Rejected++
				continue
			}

			c := t.Color()
			if shading == Smooth {
				for k := 0; k < 3; k++ {
					c[k] = t.interpolate(alpha, beta, gamma, t.C[0][k], t.C[1][k], t.C[2][k])
				}
				c = clampColor(c)
			}

			fb.Color[idx] = c.Mul(coverage)
			fb.Depth[idx] = z
			st.Fragments++
		}
	}
	return nil
}

func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// clampColor keeps extrapolated colors inside [0,255]. Pixel centers of
// partly covered pixels can fall outside the triangle.
func clampColor(c mgl64.Vec3) mgl64.Vec3 {
	for k := range c {
		c[k] = mgl64.Clamp(c[k], 0, 255)
	}
	return c
}
