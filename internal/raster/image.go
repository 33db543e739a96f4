package raster

import (
	"image"
)

// Image converts the color plane to an NRGBA image, top row first.
// Channels are rounded and clamped to 0–255; alpha is opaque.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for row := 0; row < fb.Height; row++ {
		off := row * img.Stride
		src := fb.Color[row*fb.Width : (row+1)*fb.Width]
		for x, c := range src {
			i := off + x*4
			img.Pix[i] = clamp255(c[0])
			img.Pix[i+1] = clamp255(c[1])
			img.Pix[i+2] = clamp255(c[2])
			img.Pix[i+3] = 255
		}
	}
	return img
}

// Image is a shorthand for r.FrameBuffer().Image().
func (r *Rasterizer) Image() *image.NRGBA {
	return r.fb.Image()
}

func clamp255(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
