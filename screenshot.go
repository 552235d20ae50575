package main

import (
	"image"

	gl "github.com/go-gl/gl/v3.1/gles2"

	"github.com/cellux/grapher/internal/export"
)

// readFramebuffer returns the current contents of the back buffer.
func readFramebuffer(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	flipRows(img)
	dropAlpha(img)
	return img
}

// dropAlpha marks every pixel opaque. Blending leaves partial alpha in
// the frame buffer around anti-aliased text while the colour channels
// already hold the final on-screen colour.
func dropAlpha(img *image.RGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}

// flipRows turns a bottom-up GL image into a top-down one.
func flipRows(img *image.RGBA) {
	h := img.Rect.Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}

// saveScreenshot writes the frame drawn so far to path as a BMP file.
func (app *App) saveScreenshot(path string) {
	width, height := app.fbSize.X, app.fbSize.Y
	if width <= 0 || height <= 0 {
		return
	}
	img := readFramebuffer(width, height)
	app.reportSaved(path, export.WriteBMP(path, img))
}
