package export

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/cellux/grapher/internal/graph"
)

const (
	labelSize      = 11
	gridLineWidth  = 1
	axisLineWidth  = 1.5
	curveLineWidth = 2
)

// Renderer draws a graph.Scene off screen.
type Renderer struct {
	face   text.Face
	logger *slog.Logger
}

func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	source, err := text.NewFontSource(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("load label font: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{face: source.Face(labelSize), logger: logger}, nil
}

func (r *Renderer) draw(s *graph.Scene) (*gg.Context, error) {
	dc := gg.NewContext(s.Width, s.Height)
	dc.SetColor(s.Background)
	dc.DrawRectangle(0, 0, float64(s.Width), float64(s.Height))
	if err := dc.Fill(); err != nil {
		dc.Close()
		return nil, err
	}

	strokeLines := func(lines []graph.Line, width float64) error {
		dc.SetLineWidth(width)
		for _, l := range lines {
			x0, y0 := s.ToPixel(l.From)
			x1, y1 := s.ToPixel(l.To)
			dc.SetColor(l.Color)
			dc.DrawLine(x0, y0, x1, y1)
			if err := dc.Stroke(); err != nil {
				return err
			}
		}
		return nil
	}
	if err := strokeLines(s.Grid, gridLineWidth); err != nil {
		dc.Close()
		return nil, err
	}
	if err := strokeLines(s.Axes, axisLineWidth); err != nil {
		dc.Close()
		return nil, err
	}

	dc.SetLineWidth(curveLineWidth)
	for _, c := range s.Curves {
		dc.SetColor(c.Color)
		for _, pl := range c.Polylines {
			for i, p := range pl {
				px, py := s.ToPixel(p)
				if i == 0 {
					dc.MoveTo(px, py)
				} else {
					dc.LineTo(px, py)
				}
			}
		}
		if err := dc.Stroke(); err != nil {
			dc.Close()
			return nil, err
		}
	}

	dc.SetFont(r.face)
	ascent := r.face.Metrics().Ascent
	for _, l := range s.Labels {
		w, _ := dc.MeasureString(l.Text)
		x, baseline := s.LabelOrigin(l, w, ascent)
		dc.SetColor(l.Color)
		dc.DrawString(l.Text, x, baseline)
	}
	return dc, nil
}

// Render returns the scene as an image.
func (r *Renderer) Render(s *graph.Scene) (image.Image, error) {
	dc, err := r.draw(s)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// EncodePNG writes the scene to w as PNG.
func (r *Renderer) EncodePNG(w io.Writer, s *graph.Scene) error {
	dc, err := r.draw(s)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

// WritePNG writes the scene to path as PNG.
func (r *Renderer) WritePNG(path string, s *graph.Scene) error {
	dc, err := r.draw(s)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	r.logger.Debug("wrote png", "path", path, "width", s.Width, "height", s.Height, "curves", len(s.Curves))
	return nil
}
