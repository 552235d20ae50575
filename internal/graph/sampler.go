package graph

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cellux/grapher/internal/expression"
)

const (
	// LegacyStep is the fixed sampling step of the classic renderer.
	LegacyStep = 0.01
	MinSamples = 2
	MaxSamples = 100000
)

type Point struct {
	X, Y float64
}

// Polyline is a run of consecutive points joined by segments.
type Polyline []Point

// Evaluator is a function of one variable.
type Evaluator interface {
	Eval(x float64) float64
}

// Func adapts an ordinary function to Evaluator.
type Func func(float64) float64

func (f Func) Eval(x float64) float64 { return f(x) }

// SampleCount returns the number of intervals used to cover [x0, x1].
// With step > 0 the interval width is fixed, otherwise samples intervals
// are spread over the range. The result is clamped to
// [MinSamples, MaxSamples].
func SampleCount(x0, x1 float64, samples int, step float64) int {
	n := samples
	if step > 0 {
		n = int(math.Ceil((x1 - x0) / step))
	}
	return min(max(n, MinSamples), MaxSamples)
}

// Sample evaluates f at n+1 evenly spaced points from x0 to x1 and joins
// neighbouring points into polylines. A segment is dropped when either of
// its end points is NaN or infinite, which splits the curve there.
func Sample(f Evaluator, x0, x1 float64, n int) []Polyline {
	if n < 1 || !(x0 < x1) {
		return nil
	}
	var (
		out  []Polyline
		cur  Polyline
		prev Point
		ok   bool
	)
	for i := 0; i <= n; i++ {
		x := x0 + (x1-x0)*float64(i)/float64(n)
		p := Point{X: x, Y: f.Eval(x)}
		pok := expression.Defined(p.Y)
		if ok && pok {
			if len(cur) == 0 {
				cur = append(cur, prev)
			}
			cur = append(cur, p)
		} else if len(cur) > 0 {
			out = append(out, cur)
			cur = nil
		}
		prev, ok = p, pok
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// SampleAll samples every function over [x0, x1] on its own goroutine.
// The result is indexed like fs.
func SampleAll(ctx context.Context, fs []Evaluator, x0, x1 float64, n int) ([][]Polyline, error) {
	out := make([][]Polyline, len(fs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range fs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = Sample(f, x0, x1, n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
