package raster

import (
	"errors"
	"fmt"
	"log/slog"

	"sw-rasterizer/internal/mathutil"
	"sw-rasterizer/internal/transform"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrUnknownBuffer        = errors.New("raster: unknown buffer handle")
	ErrIndexOutOfRange      = errors.New("raster: vertex index out of range")
	ErrColorRange           = errors.New("raster: color channel outside [0,255]")
	ErrDegenerate           = errors.New("raster: degenerate geometry")
	ErrUnsupportedPrimitive = errors.New("raster: unsupported primitive")
	ErrBadSize              = errors.New("raster: width and height must be positive")
)

// Primitive selects how Draw interprets each index triple.
type Primitive int

const (
	// PrimTriangle fills each triangle with coverage and depth testing.
	PrimTriangle Primitive = iota
	// PrimLine outlines each triangle.
	PrimLine
)

func (p Primitive) String() string {
	switch p {
	case PrimTriangle:
		return "triangle"
	case PrimLine:
		return "line"
	}
	return fmt.Sprintf("Primitive(%d)", int(p))
}

// DepthRange is the span NDC z in [-1,1] is linearly remapped onto.
type DepthRange struct {
	Near float64
	Far  float64
}

// DefaultDepthRange matches the default projection planes.
var DefaultDepthRange = DepthRange{Near: 0.1, Far: 50}

// Stats counts what the last Draw did.
type Stats struct {
	Triangles int // primitives processed
	Fragments int // pixels written
	Rejected  int // covered pixels that failed the depth test
}

// Rasterizer owns a frame buffer, the loaded geometry and the current
// model, view and projection transforms. It is not safe for concurrent use;
// callers that share one must serialize Clear, the setters, Draw and reading
// the frame buffer.
type Rasterizer struct {
	fb   *FrameBuffer
	geom *Geometry

	model      mgl64.Mat4
	view       mgl64.Mat4
	projection mgl64.Mat4

	depth   DepthRange
	shading Shading
	stats   Stats
}

// New returns a rasterizer with a width×height frame buffer. The buffers
// are zeroed but not cleared; transforms start as identity.
func New(width, height int) (*Rasterizer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadSize, width, height)
	}
	return &Rasterizer{
		fb:         NewFrameBuffer(width, height),
		geom:       NewGeometry(),
		model:      mgl64.Ident4(),
		view:       mgl64.Ident4(),
		projection: mgl64.Ident4(),
		depth:      DefaultDepthRange,
	}, nil
}

func (r *Rasterizer) Width() int  { return r.fb.Width }
func (r *Rasterizer) Height() int { return r.fb.Height }

// FrameBuffer exposes the color and depth planes for read-back.
func (r *Rasterizer) FrameBuffer() *FrameBuffer { return r.fb }

// Stats returns the counters of the most recent Draw.
func (r *Rasterizer) Stats() Stats { return r.stats }

func (r *Rasterizer) SetModel(m mgl64.Mat4)      { r.model = m }
func (r *Rasterizer) SetView(v mgl64.Mat4)       { r.view = v }
func (r *Rasterizer) SetProjection(p mgl64.Mat4) { r.projection = p }

// SetDepthRange changes the viewport depth remap.
func (r *Rasterizer) SetDepthRange(d DepthRange) { r.depth = d }

// SetShading switches between flat and smooth fill.
func (r *Rasterizer) SetShading(s Shading) { r.shading = s }

// Clear resets the selected buffers.
func (r *Rasterizer) Clear(b Buffers) { r.fb.Clear(b) }

func (r *Rasterizer) LoadPositions(p []mgl64.Vec3) PosBufID { return r.geom.LoadPositions(p) }
func (r *Rasterizer) LoadIndices(ind [][3]int) IndBufID     { return r.geom.LoadIndices(ind) }
func (r *Rasterizer) LoadColors(c []mgl64.Vec3) ColBufID    { return r.geom.LoadColors(c) }

// Draw transforms and rasterizes every triangle of the index buffer.
// It stops at the first invalid handle, index, color or degenerate
// triangle; pixels written by earlier triangles stay written.
func (r *Rasterizer) Draw(pos PosBufID, ind IndBufID, col ColBufID, prim Primitive) error {
	if prim != PrimTriangle && prim != PrimLine {
		return fmt.Errorf("raster: draw: %w: %v", ErrUnsupportedPrimitive, prim)
	}
	positions, err := r.geom.Positions(pos)
	if err != nil {
		return err
	}
	indices, err := r.geom.Indices(ind)
	if err != nil {
		return err
	}
	colors, err := r.geom.Colors(col)
	if err != nil {
		return err
	}

	r.stats = Stats{}
	mvp := transform.MVP(r.projection, r.view, r.model)

	var t Triangle
	for n, face := range indices {
		for k, vi := range face {
			if vi < 0 || vi >= len(positions) || vi >= len(colors) {
				return fmt.Errorf("raster: triangle %d: index %d (positions %d, colors %d): %w",
					n, vi, len(positions), len(colors), ErrIndexOutOfRange)
			}
			clip := mvp.Mul4x1(positions[vi].Vec4(1))
			ndc, err := mathutil.Homogenize(clip)
			if err != nil {
				return fmt.Errorf("raster: triangle %d vertex %d: clip %v: %w", n, k, clip, ErrDegenerate)
			}
			t.SetVertex(k, r.viewport(ndc))
			if err := t.SetColor(k, colors[vi]); err != nil {
				return fmt.Errorf("raster: triangle %d vertex %d: %w", n, k, err)
			}
		}

		switch prim {
		case PrimTriangle:
			if err := RasterizeTriangle(r.fb, &t, r.shading, &r.stats); err != nil {
				return fmt.Errorf("raster: triangle %d: %w", n, err)
			}
		case PrimLine:
			RasterizeWireframe(r.fb, &t, &r.stats)
		}
		r.stats.Triangles++
	}

	Logger().Debug("draw",
		slog.String("primitive", prim.String()),
		slog.Int("triangles", r.stats.Triangles),
		slog.Int("fragments", r.stats.Fragments),
		slog.Int("rejected", r.stats.Rejected))
	return nil
}

// viewport maps NDC x,y from [-1,1] to [0,width]×[0,height] and z linearly
// onto the depth range. The linear z remap is not the true non-linear depth
// of the scene, only a monotonic stand-in for it.
func (r *Rasterizer) viewport(v mgl64.Vec4) mgl64.Vec4 {
	w, h := float64(r.fb.Width), float64(r.fb.Height)
	f1 := (r.depth.Far - r.depth.Near) / 2
	f2 := (r.depth.Far + r.depth.Near) / 2
	return mgl64.Vec4{
		0.5 * w * (v[0] + 1),
		0.5 * h * (v[1] + 1),
		v[2]*f1 + f2,
		v[3],
	}
}
