package graph

import (
	"math"
	"strconv"
)

// MaxTicks bounds the number of grid lines per axis.
const MaxTicks = 200

// TickStep returns the spacing between grid lines: 1 while the range holds
// at most maxTicks integers, otherwise the smallest power of ten that does.
func TickStep(lo, hi float64, maxTicks int) float64 {
	if maxTicks <= 0 {
		maxTicks = MaxTicks
	}
	step := 1.0
	for (hi-lo)/step > float64(maxTicks) {
		step *= 10
	}
	return step
}

// Ticks returns the grid positions from floor(lo) to ceil(hi), rounded
// outwards to multiples of the tick step.
func Ticks(lo, hi float64, maxTicks int) []float64 {
	if !(lo < hi) {
		return nil
	}
	step := TickStep(lo, hi, maxTicks)
	start := math.Floor(lo/step) * step
	end := math.Ceil(hi/step) * step
	n := int(math.Round((end - start) / step))
	out := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, start+float64(i)*step)
	}
	return out
}

// LabelPrecision returns the number of decimals used to label tick v.
//
// For v >= 0.5 it is floor(log10(round(v))) - floor(log10(v)), which is
// non-zero only when rounding would carry into another decade (0.5 -> "0.5"
// rather than "1"). Between 0 and 0.5 enough decimals are used to reach
// the first significant digit. Zero gets no decimals and negative ticks
// use the precision of their magnitude, so log10 never sees a
// non-positive argument.
func LabelPrecision(v float64) int {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	v = math.Abs(v)
	r := math.Round(v)
	if r == 0 {
		return int(-math.Floor(math.Log10(v)))
	}
	p := int(math.Floor(math.Log10(r))) - int(math.Floor(math.Log10(v)))
	return max(0, p)
}

// FormatLabel renders tick v with LabelPrecision(v) decimals.
func FormatLabel(v float64) string {
	if v == 0 {
		// avoid "-0"
		v = 0
	}
	return strconv.FormatFloat(v, 'f', LabelPrecision(v), 64)
}
