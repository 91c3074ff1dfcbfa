package optimizer

import (
	"math"

	"github.com/iwvelando/lcoh-model/internal/parameters"
	"github.com/iwvelando/lcoh-model/pkg/mathutil"
)

// boxTransform maps an unconstrained vector y onto the decision box with
// x = lo + (hi-lo)(sin y + 1)/2, so every point the solver tries is in range.
type boxTransform struct {
	lower []float64
	upper []float64
}

func newBoxTransform(set parameters.DecisionSet) boxTransform {
	t := boxTransform{
		lower: make([]float64, len(set)),
		upper: make([]float64, len(set)),
	}
	for i, v := range set {
		t.lower[i] = v.Lower
		t.upper[i] = v.Upper
	}
	return t
}

// toBox writes the bounded point for y into dst.
func (t boxTransform) toBox(dst, y []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(y))
	}
	for i := range y {
		width := t.upper[i] - t.lower[i]
		if width == 0 {
			dst[i] = t.lower[i]
			continue
		}
		dst[i] = t.lower[i] + width*(math.Sin(y[i])+1)/2
	}
	return dst
}

// fromBox returns the unconstrained start for x. Values outside the box are
// pulled onto the nearest bound.
func (t boxTransform) fromBox(x []float64) []float64 {
	y := make([]float64, len(x))
	for i := range x {
		width := t.upper[i] - t.lower[i]
		if width == 0 {
			continue
		}
		r := mathutil.Clamp(2*(x[i]-t.lower[i])/width-1, -1, 1)
		y[i] = math.Asin(r)
	}
	return y
}
