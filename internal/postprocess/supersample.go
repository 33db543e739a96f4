package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample reduces img to width x height with CatmullRom filtering.
// Images already within the target are returned as is. Rendered frames are
// opaque, so the filter runs straight on NRGBA without an alpha pass.
func Downsample(img *image.NRGBA, width, height int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= width && b.Dy() <= height {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Upscale enlarges img by an integer factor with nearest-neighbor sampling,
// so individual pixels stay visible as blocks.
func Upscale(img *image.NRGBA, factor int) *image.NRGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
