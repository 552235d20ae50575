package graph

import (
	"errors"
	"fmt"
)

const (
	// ZoomStep is how far each edge moves on a single zoom in or out.
	ZoomStep = 2.0
	// MinSpan is the narrowest visible range a zoom may produce.
	MinSpan = 1e-3
	// MaxSpan is the widest visible range a scroll zoom may produce.
	MaxSpan = 1e9
)

var (
	ErrZoomLimit   = errors.New("zoom limit reached")
	ErrInvalidSize = errors.New("invalid window size")
	ErrInvalidRect = errors.New("invalid viewport rectangle")
)

// Viewport maps the visible coordinate rectangle onto a window of
// width x height pixels. Pixel y grows downwards, coordinate y upwards.
//
// xMin < xMax and yMin < yMax hold at all times.
type Viewport struct {
	xMin, xMax    float64
	yMin, yMax    float64
	width, height int
}

func NewViewport(xMin, xMax, yMin, yMax float64, width, height int) (*Viewport, error) {
	if !(xMin < xMax) || !(yMin < yMax) {
		return nil, fmt.Errorf("%w: x=[%v,%v] y=[%v,%v]", ErrInvalidRect, xMin, xMax, yMin, yMax)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Viewport{
		xMin: xMin, xMax: xMax,
		yMin: yMin, yMax: yMax,
		width: width, height: height,
	}, nil
}

// ProjectionRect returns the visible rectangle for the orthographic
// projection.
func (v *Viewport) ProjectionRect() (xMin, xMax, yMin, yMax float64) {
	return v.xMin, v.xMax, v.yMin, v.yMax
}

func (v *Viewport) Size() (width, height int) {
	return v.width, v.height
}

func (v *Viewport) Scale() (xScale, yScale float64) {
	return (v.xMax - v.xMin) / float64(v.width), (v.yMax - v.yMin) / float64(v.height)
}

// Pan moves the view by a pointer drag of (dx, dy) pixels.
func (v *Viewport) Pan(dx, dy float64) {
	xScale, yScale := v.Scale()
	v.xMin -= dx * xScale
	v.xMax -= dx * xScale
	v.yMin += dy * yScale
	v.yMax += dy * yScale
}

// ZoomIn moves every edge ZoomStep units towards the centre. It fails
// with ErrZoomLimit instead of collapsing or inverting the rectangle.
func (v *Viewport) ZoomIn() error {
	if v.xMax-v.xMin-2*ZoomStep < MinSpan || v.yMax-v.yMin-2*ZoomStep < MinSpan {
		return ErrZoomLimit
	}
	v.grow(-ZoomStep)
	return nil
}

// ZoomOut moves every edge ZoomStep units away from the centre.
func (v *Viewport) ZoomOut() error {
	v.grow(ZoomStep)
	return nil
}

func (v *Viewport) grow(d float64) {
	v.xMin -= d
	v.xMax += d
	v.yMin -= d
	v.yMax += d
}

// ZoomAt scales the visible spans by factor while keeping the coordinate
// under pixel (px, py) fixed. factor < 1 zooms in.
func (v *Viewport) ZoomAt(factor, px, py float64) error {
	if !(factor > 0) {
		return fmt.Errorf("%w: factor %v", ErrZoomLimit, factor)
	}
	xSpan := (v.xMax - v.xMin) * factor
	ySpan := (v.yMax - v.yMin) * factor
	if xSpan < MinSpan || ySpan < MinSpan || xSpan > MaxSpan || ySpan > MaxSpan {
		return ErrZoomLimit
	}
	cx, cy := v.ToCoord(px, py)
	fx := px / float64(v.width)
	fy := py / float64(v.height)
	v.xMin = cx - fx*xSpan
	v.xMax = v.xMin + xSpan
	v.yMax = cy + fy*ySpan
	v.yMin = v.yMax - ySpan
	return nil
}

// Resize records new window dimensions. The visible rectangle is kept.
func (v *Viewport) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	v.width = width
	v.height = height
	return nil
}

// SetRect replaces the visible rectangle.
func (v *Viewport) SetRect(xMin, xMax, yMin, yMax float64) error {
	if !(xMin < xMax) || !(yMin < yMax) {
		return fmt.Errorf("%w: x=[%v,%v] y=[%v,%v]", ErrInvalidRect, xMin, xMax, yMin, yMax)
	}
	v.xMin, v.xMax, v.yMin, v.yMax = xMin, xMax, yMin, yMax
	return nil
}

// ToPixel converts a coordinate to window pixels, origin top left.
func (v *Viewport) ToPixel(x, y float64) (px, py float64) {
	px = (x - v.xMin) / (v.xMax - v.xMin) * float64(v.width)
	py = (v.yMax - y) / (v.yMax - v.yMin) * float64(v.height)
	return
}

// ToCoord converts window pixels to a coordinate.
func (v *Viewport) ToCoord(px, py float64) (x, y float64) {
	x = v.xMin + px/float64(v.width)*(v.xMax-v.xMin)
	y = v.yMax - py/float64(v.height)*(v.yMax-v.yMin)
	return
}

func (v *Viewport) Contains(x, y float64) bool {
	return x >= v.xMin && x <= v.xMax && y >= v.yMin && y <= v.yMax
}
