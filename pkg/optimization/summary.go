// Package optimization provides shared data structures for optimization results.
package optimization

import "github.com/iwvelando/lcoh-model/pkg/mathutil"

// Summary captures how the optimizer moved a single decision variable.
type Summary struct {
	Key      string  `json:"key"`
	Label    string  `json:"label,omitempty"`
	Original float64 `json:"original"`
	Value    float64 `json:"value"`
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
}

// Delta returns the change applied to the variable.
func (s Summary) Delta() float64 {
	return s.Value - s.Original
}

// AtBound reports whether the optimized value sits on either bound within tol.
func (s Summary) AtBound(tol float64) bool {
	return mathutil.WithinTolerance(s.Value, s.Lower, tol) || mathutil.WithinTolerance(s.Value, s.Upper, tol)
}
