// Package export writes plots to image files: screenshots of the window
// as BMP and headless renderings of a scene as PNG.
package export

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"

	"golang.org/x/image/bmp"
)

// EncodeBMP writes img as an uncompressed, bottom-up, 24-bit BMP.
// Transparent pixels are composited over white first, because the
// encoder only drops the alpha channel for opaque images.
func EncodeBMP(w io.Writer, img image.Image) error {
	return bmp.Encode(w, opaque(img))
}

// WriteBMP creates or truncates path and writes img into it.
func WriteBMP(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := EncodeBMP(f, img); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func opaque(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && rgba.Opaque() {
		return rgba
	}
	out := image.NewRGBA(b)
	draw.Draw(out, b, image.White, image.Point{}, draw.Src)
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}
