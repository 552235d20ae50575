package graph

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func mustViewport(t *testing.T, xMin, xMax, yMin, yMax float64, w, h int) *Viewport {
	t.Helper()
	vp, err := NewViewport(xMin, xMax, yMin, yMax, w, h)
	if err != nil {
		t.Fatal(err)
	}
	return vp
}

func rectNear(t *testing.T, vp *Viewport, want [4]float64) {
	t.Helper()
	xMin, xMax, yMin, yMax := vp.ProjectionRect()
	got := [4]float64{xMin, xMax, yMin, yMax}
	for i := range got {
		if math.Abs(got[i]-want[i]) > eps {
			t.Fatalf("rect = %v, want %v", got, want)
		}
	}
}

func TestNewViewportRejectsBadInput(t *testing.T) {
	if _, err := NewViewport(1, 1, -1, 1, 10, 10); !errors.Is(err, ErrInvalidRect) {
		t.Errorf("empty x range: %v", err)
	}
	if _, err := NewViewport(-1, 1, 2, 1, 10, 10); !errors.Is(err, ErrInvalidRect) {
		t.Errorf("inverted y range: %v", err)
	}
	if _, err := NewViewport(-1, 1, -1, 1, 0, 10); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("zero width: %v", err)
	}
}

func TestPan(t *testing.T) {
	vp := mustViewport(t, -10, 10, -10, 10, 700, 700)
	// 35 px is one twentieth of the window, i.e. one unit.
	vp.Pan(35, 0)
	rectNear(t, vp, [4]float64{-11, 9, -10, 10})
	vp.Pan(0, 70)
	rectNear(t, vp, [4]float64{-11, 9, -8, 12})
}

func TestPanRoundTrip(t *testing.T) {
	for _, width := range []int{1, 320, 701, 1920} {
		for _, d := range []float64{-1000, -3.5, 0, 0.25, 17, 4096} {
			vp := mustViewport(t, -10, 10, -7, 3, width, 480)
			vp.Pan(d, 0)
			vp.Pan(-d, 0)
			rectNear(t, vp, [4]float64{-10, 10, -7, 3})
			vp.Pan(0, d)
			vp.Pan(0, -d)
			rectNear(t, vp, [4]float64{-10, 10, -7, 3})
		}
	}
}

func TestZoomInverse(t *testing.T) {
	vp := mustViewport(t, -10, 10, -10, 10, 700, 700)
	if err := vp.ZoomIn(); err != nil {
		t.Fatal(err)
	}
	rectNear(t, vp, [4]float64{-8, 8, -8, 8})
	if err := vp.ZoomOut(); err != nil {
		t.Fatal(err)
	}
	xMin, xMax, yMin, yMax := vp.ProjectionRect()
	if xMin != -10 || xMax != 10 || yMin != -10 || yMax != 10 {
		t.Errorf("zoom in/out not inverse: %v %v %v %v", xMin, xMax, yMin, yMax)
	}
}

func TestZoomInLimit(t *testing.T) {
	vp := mustViewport(t, -10, 10, -10, 10, 700, 700)
	accepted := 0
	for i := 0; i < 20; i++ {
		if err := vp.ZoomIn(); err != nil {
			if !errors.Is(err, ErrZoomLimit) {
				t.Fatalf("unexpected error %v", err)
			}
			continue
		}
		accepted++
	}
	// 20 -> 16 -> 12 -> 8 -> 4, the next step would collapse the range.
	if accepted != 4 {
		t.Errorf("accepted %d zoom-ins, want 4", accepted)
	}
	xMin, xMax, yMin, yMax := vp.ProjectionRect()
	if !(xMin < xMax) || !(yMin < yMax) {
		t.Fatalf("invariant broken: %v %v %v %v", xMin, xMax, yMin, yMax)
	}
	rectNear(t, vp, [4]float64{-2, 2, -2, 2})
}

func TestZoomAtKeepsPointerFixed(t *testing.T) {
	vp := mustViewport(t, -10, 10, -10, 10, 800, 600)
	px, py := 200.0, 450.0
	cx, cy := vp.ToCoord(px, py)
	if err := vp.ZoomAt(0.5, px, py); err != nil {
		t.Fatal(err)
	}
	gx, gy := vp.ToCoord(px, py)
	if math.Abs(gx-cx) > eps || math.Abs(gy-cy) > eps {
		t.Errorf("pointer moved from (%v,%v) to (%v,%v)", cx, cy, gx, gy)
	}
	xMin, xMax, yMin, yMax := vp.ProjectionRect()
	if math.Abs((xMax-xMin)-10) > eps || math.Abs((yMax-yMin)-10) > eps {
		t.Errorf("spans not halved: %v %v", xMax-xMin, yMax-yMin)
	}
	if err := vp.ZoomAt(1e-12, px, py); !errors.Is(err, ErrZoomLimit) {
		t.Errorf("extreme zoom-in: %v", err)
	}
	if err := vp.ZoomAt(-1, px, py); !errors.Is(err, ErrZoomLimit) {
		t.Errorf("negative factor: %v", err)
	}
}

func TestResizeKeepsRect(t *testing.T) {
	vp := mustViewport(t, -3, 5, -1, 2, 700, 700)
	if err := vp.Resize(1024, 300); err != nil {
		t.Fatal(err)
	}
	rectNear(t, vp, [4]float64{-3, 5, -1, 2})
	if w, h := vp.Size(); w != 1024 || h != 300 {
		t.Errorf("Size() = %d,%d", w, h)
	}
	if err := vp.Resize(0, 0); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Resize(0,0) = %v", err)
	}
	if w, h := vp.Size(); w != 1024 || h != 300 {
		t.Errorf("rejected resize changed size to %d,%d", w, h)
	}
}

func TestPixelConversion(t *testing.T) {
	vp := mustViewport(t, -10, 10, -5, 5, 400, 200)
	tests := []struct {
		x, y   float64
		px, py float64
	}{
		{-10, 5, 0, 0},
		{10, -5, 400, 200},
		{0, 0, 200, 100},
		{5, 2.5, 300, 50},
	}
	for _, tt := range tests {
		px, py := vp.ToPixel(tt.x, tt.y)
		if math.Abs(px-tt.px) > eps || math.Abs(py-tt.py) > eps {
			t.Errorf("ToPixel(%v,%v) = (%v,%v), want (%v,%v)", tt.x, tt.y, px, py, tt.px, tt.py)
		}
		x, y := vp.ToCoord(tt.px, tt.py)
		if math.Abs(x-tt.x) > eps || math.Abs(y-tt.y) > eps {
			t.Errorf("ToCoord(%v,%v) = (%v,%v)", tt.px, tt.py, x, y)
		}
	}
}

func TestSetRect(t *testing.T) {
	vp := mustViewport(t, -10, 10, -10, 10, 100, 100)
	if err := vp.SetRect(0, 0, 0, 1); !errors.Is(err, ErrInvalidRect) {
		t.Errorf("SetRect empty range: %v", err)
	}
	rectNear(t, vp, [4]float64{-10, 10, -10, 10})
	if err := vp.SetRect(-1, 1, -2, 2); err != nil {
		t.Fatal(err)
	}
	rectNear(t, vp, [4]float64{-1, 1, -2, 2})
}
