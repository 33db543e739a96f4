package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Buffers selects which planes Clear resets.
type Buffers uint8

const (
	Color Buffers = 1 << iota
	Depth
)

// FrameBuffer holds the color and depth planes as flat slices sharing one
// addressing scheme, see Index.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []mgl64.Vec3 // RGB in [0,255], len = W*H
	Depth  []float64    // smaller is nearer, len = W*H
}

// NewFrameBuffer allocates zeroed planes. Nothing is cleared: depth starts
// at 0, not +Inf, until Clear(Depth) is called.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]mgl64.Vec3, n),
		Depth:  make([]float64, n),
	}
}

// Index maps pixel (x, y), with y growing upward, to a slice offset.
// Row 0 of the slices is the top image row.
func (fb *FrameBuffer) Index(x, y int) int {
	return (fb.Height-1-y)*fb.Width + x
}

// Contains reports whether (x, y) addresses a pixel of the buffer.
func (fb *FrameBuffer) Contains(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// Clear resets the selected planes: color to black, depth to +Inf.
func (fb *FrameBuffer) Clear(b Buffers) {
	if b&Color != 0 {
		fill(fb.Color, mgl64.Vec3{})
	}
	if b&Depth != 0 {
		fill(fb.Depth, math.Inf(1))
	}
}

// At returns the color of pixel (x, y).
func (fb *FrameBuffer) At(x, y int) mgl64.Vec3 {
	return fb.Color[fb.Index(x, y)]
}

// DepthAt returns the stored depth of pixel (x, y).
func (fb *FrameBuffer) DepthAt(x, y int) float64 {
	return fb.Depth[fb.Index(x, y)]
}

// SetPixel writes a color, ignoring coordinates outside the buffer.
func (fb *FrameBuffer) SetPixel(x, y int, c mgl64.Vec3) {
	if !fb.Contains(x, y) {
		return
	}
	fb.Color[fb.Index(x, y)] = c
}

// fill sets every element using copy-doubling.
func fill[T any](s []T, v T) {
	if len(s) == 0 {
		return
	}
	s[0] = v
	for i := 1; i < len(s); i *= 2 {
		copy(s[i:], s[:i])
	}
}
