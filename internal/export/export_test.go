package export

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/cellux/grapher/internal/graph"
)

func TestEncodeBMPHeader(t *testing.T) {
	const w, h = 3, 2
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(10 * x), G: uint8(100 + y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := EncodeBMP(&buf, img); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	le := binary.LittleEndian

	if string(b[0:2]) != "BM" {
		t.Fatalf("magic = %q", b[0:2])
	}
	rowSize := (3*w + 3) &^ 3
	if size := le.Uint32(b[2:6]); int(size) != 54+rowSize*h || int(size) != len(b) {
		t.Errorf("file size field = %d, len = %d, want %d", size, len(b), 54+rowSize*h)
	}
	if off := le.Uint32(b[10:14]); off != 54 {
		t.Errorf("pixel offset = %d, want 54", off)
	}
	if hdr := le.Uint32(b[14:18]); hdr != 40 {
		t.Errorf("info header size = %d, want 40", hdr)
	}
	if gotW, gotH := int32(le.Uint32(b[18:22])), int32(le.Uint32(b[22:26])); gotW != w || gotH != h {
		t.Errorf("dimensions = %dx%d, want %dx%d (positive height means bottom-up)", gotW, gotH, w, h)
	}
	if bpp := le.Uint16(b[28:30]); bpp != 24 {
		t.Errorf("bit depth = %d, want 24", bpp)
	}
	if comp := le.Uint32(b[30:34]); comp != 0 {
		t.Errorf("compression = %d, want 0", comp)
	}
	// First stored row is the bottom row of the image, pixels in BGR order.
	first := b[54 : 54+3]
	if want := []byte{200, 101, 0}; !bytes.Equal(first, want) {
		t.Errorf("first pixel = %v, want %v", first, want)
	}
}

func TestEncodeBMPFlattensAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := EncodeBMP(&buf, img); err != nil {
		t.Fatal(err)
	}
	if bpp := binary.LittleEndian.Uint16(buf.Bytes()[28:30]); bpp != 24 {
		t.Errorf("bit depth = %d, want 24", bpp)
	}
}

func TestWriteBMPReportsErrors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	bad := filepath.Join(t.TempDir(), "missing", "shot.bmp")
	if err := WriteBMP(bad, img); err == nil {
		t.Fatal("expected an error for a path in a missing directory")
	}
	good := filepath.Join(t.TempDir(), "shot.bmp")
	if err := WriteBMP(good, img); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(good); err != nil || fi.Size() == 0 {
		t.Fatalf("stat %s: %v", good, err)
	}
}

func testScene(t *testing.T, sources ...string) *graph.Scene {
	t.Helper()
	vp, err := graph.NewViewport(-10, 10, -10, 10, 200, 200)
	if err != nil {
		t.Fatal(err)
	}
	reg := graph.NewRegistry()
	for _, src := range sources {
		if err := reg.Add(src); err != nil {
			t.Fatal(err)
		}
	}
	s, err := graph.BuildScene(context.Background(), vp, reg, graph.SceneOptions{})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRendererPNG(t *testing.T) {
	r, err := NewRenderer(nil)
	if err != nil {
		t.Fatal(err)
	}
	s := testScene(t, "x", "1/x")

	path := filepath.Join(t.TempDir(), "plot.png")
	if err := r.WritePNG(path, s); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Fatalf("image is %v, want 200x200", b)
	}

	// Between grid lines, away from axes and curves, the background shows.
	if r, g, b, _ := img.At(5, 5).RGBA(); r>>8 < 240 || g>>8 < 240 || b>>8 < 240 {
		t.Errorf("background pixel = %v %v %v", r>>8, g>>8, b>>8)
	}

	// y = x passes through (2.5, 2.5), i.e. pixel (125, 75).
	red := false
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			r, g, _, _ := img.At(125+dx, 75+dy).RGBA()
			if r>>8 > g>>8+50 {
				red = true
			}
		}
	}
	if !red {
		t.Error("first curve not drawn in red near (125, 75)")
	}
}

func TestRendererEncodeMatchesRender(t *testing.T) {
	r, err := NewRenderer(nil)
	if err != nil {
		t.Fatal(err)
	}
	s := testScene(t, "sin(x)")
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf, s); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	img, err := r.Render(s)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bounds differ: %v vs %v", decoded.Bounds(), img.Bounds())
	}
}
