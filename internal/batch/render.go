package batch

import (
	"fmt"
	"image"

	"sw-rasterizer/internal/postprocess"
	"sw-rasterizer/internal/raster"
	"sw-rasterizer/internal/scene"
)

// Options controls how a frame is produced from a scene.
type Options struct {
	Width       int
	Height      int
	Supersample int // render at this multiple, then downsample
	Scale       int // nearest-neighbor enlargement after downsampling
	Shading     raster.Shading
	Primitive   raster.Primitive
}

// Renderer owns one rasterizer with the scene already loaded into it.
// It is not safe for concurrent use; give each goroutine its own.
type Renderer struct {
	opts  Options
	r     *raster.Rasterizer
	bound *scene.Bound
}

// NewRenderer allocates the (possibly supersampled) framebuffer and binds s.
func NewRenderer(s *scene.Scene, opts Options) (*Renderer, error) {
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	r, err := raster.New(opts.Width*opts.Supersample, opts.Height*opts.Supersample)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	r.SetShading(opts.Shading)
	b := scene.Bind(r, s)
	b.Primitive = opts.Primitive
	return &Renderer{opts: opts, r: r, bound: b}, nil
}

// Frame renders one pose and returns the post-processed image together
// with the draw statistics.
func (rd *Renderer) Frame(p scene.Pose) (*image.NRGBA, raster.Stats, error) {
	if err := rd.bound.Render(p); err != nil {
		return nil, rd.r.Stats(), err
	}
	img := rd.r.Image()
	if rd.opts.Supersample > 1 {
		img = postprocess.Downsample(img, rd.opts.Width, rd.opts.Height)
	}
	img = postprocess.Upscale(img, rd.opts.Scale)
	return img, rd.r.Stats(), nil
}

// Rasterizer exposes the underlying rasterizer, e.g. for depth inspection.
func (rd *Renderer) Rasterizer() *raster.Rasterizer { return rd.r }
