// Package imageio writes rendered frames to disk and reads images back for
// comparison.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// ErrFormat is returned for an extension no encoder handles.
var ErrFormat = errors.New("imageio: unsupported format")

// ErrSize is returned by Diff for images of different dimensions.
var ErrSize = errors.New("imageio: image sizes differ")

// Encode writes img in the given format: "png", "webp" or "tga".
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "webp":
		return nativewebp.Encode(w, img, nil)
	case "tga":
		return tga.Encode(w, img)
	}
	return fmt.Errorf("%w: %q", ErrFormat, format)
}

// Supported reports whether Encode handles format.
func Supported(format string) bool {
	return format == "png" || format == "webp" || format == "tga"
}

// FormatOf maps a file name to the format Encode expects.
func FormatOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// Save encodes img to path, creating parent directories. The format
// follows the file extension.
func Save(path string, img image.Image) (err error) {
	format := FormatOf(path)
	if !Supported(format) {
		return fmt.Errorf("imageio: save %s: %w: %q", path, ErrFormat, format)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("imageio: save %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: save %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("imageio: close %s: %w", path, cerr)
		}
	}()

	if err := Encode(f, img, format); err != nil {
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	return nil
}

// Decode reads an image in the given format: "png", "jpg"/"jpeg", "webp"
// or "tga". The format is chosen by the caller because the tga package
// registers an empty magic string, which makes image.Decode sniffing
// unreliable.
func Decode(r io.Reader, format string) (image.Image, error) {
	switch format {
	case "png":
		return png.Decode(r)
	case "jpg", "jpeg":
		return jpeg.Decode(r)
	case "webp":
		return nativewebp.Decode(r)
	case "tga":
		return tga.Decode(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrFormat, format)
}

// Load decodes a PNG, JPEG, WebP or TGA file into NRGBA. The format
// follows the file extension.
func Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: read %s: %w", path, err)
	}
	defer f.Close()

	img, err := Decode(f, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", path, err)
	}
	return ToNRGBA(img), nil
}

// ToNRGBA returns src itself when it already is NRGBA, a converted copy
// otherwise.
func ToNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

// Diff counts pixels where any channel of a and b differs by more than tol.
func Diff(a, b *image.NRGBA, tol uint8) (int, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrSize, ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}

	diff := 0
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			i := a.PixOffset(ab.Min.X+x, ab.Min.Y+y)
			j := b.PixOffset(bb.Min.X+x, bb.Min.Y+y)
			for k := 0; k < 4; k++ {
				if absDiff(a.Pix[i+k], b.Pix[j+k]) > tol {
					diff++
					break
				}
			}
		}
	}
	return diff, nil
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
