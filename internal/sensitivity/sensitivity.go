// Package sensitivity sweeps each decision variable across its bounds and
// records the NPV at every sample.
package sensitivity

import (
	"errors"
	"fmt"

	"github.com/iwvelando/lcoh-model/internal/parameters"
	"github.com/iwvelando/lcoh-model/internal/valuation"
	"github.com/iwvelando/lcoh-model/pkg/constants"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrNoDecisionVariables is returned when there is nothing to sweep.
	ErrNoDecisionVariables = errors.New("no decision variables selected")
	// ErrInvalidSampleCount is returned for fewer than two samples.
	ErrInvalidSampleCount = errors.New("sample count must be at least 2")
)

// Point is one sample of a series.
type Point struct {
	Value float64 `json:"value"`
	NPV   float64 `json:"npv"`
}

// Series is the NPV response to a single decision variable while every other
// parameter stays at its fixed value.
type Series struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Title  string  `json:"title"`
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	Points []Point `json:"points"`
}

// Values returns the swept parameter values.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// NPVs returns the NPV at each sample.
func (s Series) NPVs() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.NPV
	}
	return out
}

// Sweep evaluates samples evenly spaced values from Lower to Upper, endpoints
// included, for each variable in set. A samples value of 0 selects the
// default count.
func Sweep(fixed parameters.Assignment, set parameters.DecisionSet, samples int) (map[string]Series, error) {
	if samples == 0 {
		samples = constants.DefaultSweepSamples
	}
	if samples < constants.MinSweepSamples {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSampleCount, samples)
	}
	if len(set) == 0 {
		return nil, ErrNoDecisionVariables
	}
	if err := fixed.Require(valuation.RequiredKeys...); err != nil {
		return nil, err
	}

	out := make(map[string]Series, len(set))
	grid := make([]float64, samples)
	for _, v := range set {
		label := v.Key
		if p, ok := parameters.Lookup(v.Key); ok {
			label = p.Label
		}
		floats.Span(grid, v.Lower, v.Upper)
		// Pin the last sample against rounding in the step.
		grid[samples-1] = v.Upper

		series := Series{
			Key:    v.Key,
			Label:  label,
			Title:  "Sensitivity of NPV vs " + v.Key,
			Lower:  v.Lower,
			Upper:  v.Upper,
			Points: make([]Point, 0, samples),
		}
		for _, value := range grid {
			r, err := valuation.Evaluate(fixed.With(v.Key, value))
			if err != nil {
				return nil, err
			}
			series.Points = append(series.Points, Point{Value: value, NPV: r.NPV})
		}
		out[v.Key] = series
	}
	return out, nil
}

// Ordered returns the series in decision-set order, skipping missing keys.
func Ordered(set parameters.DecisionSet, series map[string]Series) []Series {
	out := make([]Series, 0, len(series))
	for _, v := range set {
		if s, ok := series[v.Key]; ok {
			out = append(out, s)
		}
	}
	return out
}
