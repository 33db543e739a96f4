package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RasterizeWireframe draws the three edges of t with Bresenham lines in the
// color of each edge's first vertex. Depth is neither tested nor written.
func RasterizeWireframe(fb *FrameBuffer, t *Triangle, st *Stats) {
	for i := 0; i < 3; i++ {
		a, b := t.V[i], t.V[(i+1)%3]
		st.Fragments += DrawLine(fb, a[0], a[1], b[0], b[1], t.C[i])
	}
}

// DrawLine draws a line between two pixel-space points, rounding the ends
// to the nearest pixel. Pixels outside fb are skipped. It returns the number
// of pixels written.
func DrawLine(fb *FrameBuffer, x0f, y0f, x1f, y1f float64, c mgl64.Vec3) int {
	x0, y0 := int(math.Round(x0f)), int(math.Round(y0f))
	x1, y1 := int(math.Round(x1f)), int(math.Round(y1f))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	written := 0
	err := dx + dy
	for {
		if fb.Contains(x0, y0) {
			fb.Color[fb.Index(x0, y0)] = c
			written++
		}
		if x0 == x1 && y0 == y1 {
			return written
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
