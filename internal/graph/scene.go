package graph

import (
	"context"
	"image/color"
	"math"
)

var (
	ColorBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ColorGrid       = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	ColorAxis       = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	ColorLabel      = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
)

// Palette holds the curve colours, assigned by registry index.
var Palette = []color.NRGBA{
	{R: 255, G: 0, B: 0, A: 255},
	{R: 0, G: 64, B: 255, A: 255},
	{R: 0, G: 153, B: 0, A: 255},
	{R: 204, G: 0, B: 204, A: 255},
	{R: 255, G: 128, B: 0, A: 255},
	{R: 0, G: 153, B: 153, A: 255},
}

func CurveColor(index int) color.NRGBA {
	return Palette[index%len(Palette)]
}

// MinLabelSpacing is the minimum distance in pixels between axis labels.
const MinLabelSpacing = 36

type Line struct {
	From, To Point
	Color    color.NRGBA
}

type LabelAxis int

const (
	AxisX LabelAxis = iota
	AxisY
)

// Label is a tick label anchored at a coordinate on one of the axes.
// Backends offset the text a few pixels from the anchor.
type Label struct {
	At    Point
	Axis  LabelAxis
	Text  string
	Color color.NRGBA
}

type Curve struct {
	Index     int
	Source    string
	Color     color.NRGBA
	Polylines []Polyline
}

// Scene is everything drawn in one frame, in coordinate space.
type Scene struct {
	XMin, XMax, YMin, YMax float64
	Width, Height          int
	Background             color.NRGBA
	Grid                   []Line
	Axes                   []Line
	Labels                 []Label
	Curves                 []Curve
}

type SceneOptions struct {
	// Samples is the number of intervals per curve; 0 means one per pixel.
	Samples int
	// Step, when positive, replaces Samples with a fixed interval width.
	Step     float64
	MaxTicks int
}

// BuildScene lays out the grid, the axes with their labels and the
// sampled curves of every registered function for the current view.
func BuildScene(ctx context.Context, vp *Viewport, reg *Registry, opts SceneOptions) (*Scene, error) {
	xMin, xMax, yMin, yMax := vp.ProjectionRect()
	width, height := vp.Size()
	s := &Scene{
		XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax,
		Width: width, Height: height,
		Background: ColorBackground,
	}

	xTicks := Ticks(xMin, xMax, opts.MaxTicks)
	yTicks := Ticks(yMin, yMax, opts.MaxTicks)
	for _, x := range xTicks {
		s.Grid = append(s.Grid, Line{Point{x, yMin}, Point{x, yMax}, ColorGrid})
	}
	for _, y := range yTicks {
		s.Grid = append(s.Grid, Line{Point{xMin, y}, Point{xMax, y}, ColorGrid})
	}

	s.Axes = []Line{
		{Point{xMin, 0}, Point{xMax, 0}, ColorAxis},
		{Point{0, yMin}, Point{0, yMax}, ColorAxis},
	}

	// Labels stay on screen when an axis is scrolled out of view.
	labelY := clamp(0, yMin, yMax)
	labelX := clamp(0, xMin, xMax)
	xEvery := labelStride(xTicks, xMax-xMin, width)
	yEvery := labelStride(yTicks, yMax-yMin, height)
	for _, x := range xTicks {
		if !onStride(x, xTicks, xEvery) {
			continue
		}
		s.Labels = append(s.Labels, Label{Point{x, labelY}, AxisX, FormatLabel(x), ColorLabel})
	}
	for _, y := range yTicks {
		if !onStride(y, yTicks, yEvery) {
			continue
		}
		s.Labels = append(s.Labels, Label{Point{labelX, y}, AxisY, FormatLabel(y), ColorLabel})
	}

	exprs := reg.Expressions()
	fs := make([]Evaluator, len(exprs))
	for i, e := range exprs {
		fs[i] = e
	}
	samples := opts.Samples
	if samples <= 0 {
		samples = width
	}
	n := SampleCount(xMin, xMax, samples, opts.Step)
	sampled, err := SampleAll(ctx, fs, xMin, xMax, n)
	if err != nil {
		return nil, err
	}
	for i, e := range exprs {
		s.Curves = append(s.Curves, Curve{
			Index:     i,
			Source:    e.Source(),
			Color:     CurveColor(i),
			Polylines: sampled[i],
		})
	}
	return s, nil
}

// ToPixel converts a scene coordinate to pixels, origin top left.
func (s *Scene) ToPixel(p Point) (px, py float64) {
	px = (p.X - s.XMin) / (s.XMax - s.XMin) * float64(s.Width)
	py = (s.YMax - p.Y) / (s.YMax - s.YMin) * float64(s.Height)
	return
}

const labelPad = 3

// LabelOrigin returns the pixel position of the left end of the baseline
// for a label whose rendered text is textW pixels wide and rises ascent
// pixels above the baseline. Labels sit above and to the right of their
// anchor and are pushed back inside the frame near its edges.
func (s *Scene) LabelOrigin(l Label, textW, ascent float64) (x, baseline float64) {
	px, py := s.ToPixel(l.At)
	x = px + labelPad
	baseline = py - labelPad
	if w := float64(s.Width); x+textW > w {
		x = w - textW - labelPad
	}
	x = math.Max(x, 0)
	if baseline-ascent < 0 {
		baseline = py + ascent + labelPad
	}
	if h := float64(s.Height); baseline > h-labelPad {
		baseline = h - labelPad
	}
	return x, baseline
}

// labelStride returns how many ticks apart labels are placed so that they
// are at least MinLabelSpacing pixels apart: 1, 2, 5, 10, 20, 50, ...
func labelStride(ticks []float64, span float64, pixels int) int {
	if len(ticks) < 2 || span <= 0 || pixels <= 0 {
		return 1
	}
	tickPixels := (ticks[1] - ticks[0]) / span * float64(pixels)
	for _, base := range []int{1, 10, 100, 1000, 10000} {
		for _, m := range []int{1, 2, 5} {
			if tickPixels*float64(base*m) >= MinLabelSpacing {
				return base * m
			}
		}
	}
	return len(ticks)
}

// onStride keeps labels aligned to multiples of the stride so they do not
// jump around while panning.
func onStride(v float64, ticks []float64, every int) bool {
	if every <= 1 {
		return true
	}
	step := 1.0
	if len(ticks) > 1 {
		step = ticks[1] - ticks[0]
	}
	k := math.Round(v / step)
	return math.Mod(k, float64(every)) == 0
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
