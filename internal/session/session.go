// Package session holds the user-edited state of one interactive session:
// current values, bound overrides and the decision-variable flags. Every core
// operation reads its inputs from a Session instead of ambient state.
package session

import (
	"fmt"

	"github.com/iwvelando/lcoh-model/internal/parameters"
)

// Bounds is a (min, max) pair. Nothing enforces Min <= Max.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Row is the editable view of one parameter.
type Row struct {
	Key            string  `json:"key"`
	Label          string  `json:"label"`
	Value          float64 `json:"value"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	InOptimization bool    `json:"inOptimization"`
}

// Session is the explicit replacement for per-widget global state.
type Session struct {
	values         parameters.Assignment
	bounds         map[string]Bounds
	inOptimization map[string]bool
}

// New returns a session initialised from the registry defaults.
func New() *Session {
	s := &Session{
		values:         parameters.Defaults(),
		bounds:         make(map[string]Bounds),
		inOptimization: make(map[string]bool),
	}
	for _, p := range parameters.List() {
		s.bounds[p.Key] = Bounds{Min: p.Min, Max: p.Max}
		s.inOptimization[p.Key] = p.DecisionEligible
	}
	return s
}

// SetValue overrides the current value of key.
func (s *Session) SetValue(key string, value float64) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.values[key] = value
	return nil
}

// SetBounds overrides the optimizer and sweep interval of key.
func (s *Session) SetBounds(key string, min, max float64) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.bounds[key] = Bounds{Min: min, Max: max}
	return nil
}

// SetMin overrides only the lower bound of key.
func (s *Session) SetMin(key string, min float64) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b := s.bounds[key]
	b.Min = min
	s.bounds[key] = b
	return nil
}

// SetMax overrides only the upper bound of key.
func (s *Session) SetMax(key string, max float64) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b := s.bounds[key]
	b.Max = max
	s.bounds[key] = b
	return nil
}

// SetInOptimization marks key as a decision variable or fixes it.
func (s *Session) SetInOptimization(key string, in bool) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.inOptimization[key] = in
	return nil
}

// Value returns the current value of key.
func (s *Session) Value(key string) (float64, error) {
	return s.values.Value(key)
}

// Bounds returns the current bounds of key.
func (s *Session) Bounds(key string) (Bounds, error) {
	if err := checkKey(key); err != nil {
		return Bounds{}, err
	}
	return s.bounds[key], nil
}

// Assignment returns a complete copy of the current values.
func (s *Session) Assignment() parameters.Assignment {
	return s.values.Clone()
}

// DecisionSet returns the flagged parameters in registry order, bounded by
// their current overrides and starting from their current values.
func (s *Session) DecisionSet() parameters.DecisionSet {
	var set parameters.DecisionSet
	for _, key := range parameters.Keys() {
		if !s.inOptimization[key] {
			continue
		}
		b := s.bounds[key]
		set = append(set, parameters.DecisionVariable{
			Key:     key,
			Lower:   b.Min,
			Upper:   b.Max,
			Initial: s.values[key],
		})
	}
	return set
}

// Apply writes optimized values back into the session.
func (s *Session) Apply(values map[string]float64) error {
	for key := range values {
		if err := checkKey(key); err != nil {
			return err
		}
	}
	for key, v := range values {
		s.values[key] = v
	}
	return nil
}

// Rows returns the parameter table in registry order.
func (s *Session) Rows() []Row {
	params := parameters.List()
	rows := make([]Row, 0, len(params))
	for _, p := range params {
		b := s.bounds[p.Key]
		rows = append(rows, Row{
			Key:            p.Key,
			Label:          p.Label,
			Value:          s.values[p.Key],
			Min:            b.Min,
			Max:            b.Max,
			InOptimization: s.inOptimization[p.Key],
		})
	}
	return rows
}

// Warnings describes inverted bounds and values outside their bounds. The
// session keeps such inputs as given.
func (s *Session) Warnings() []string {
	var warnings []string
	for _, key := range parameters.Keys() {
		b := s.bounds[key]
		v := s.values[key]
		if b.Min > b.Max {
			warnings = append(warnings, fmt.Sprintf("parameter %s has min %g greater than max %g", key, b.Min, b.Max))
			continue
		}
		if v < b.Min || v > b.Max {
			warnings = append(warnings, fmt.Sprintf("parameter %s value %g is outside [%g, %g]", key, v, b.Min, b.Max))
		}
	}
	return warnings
}

func checkKey(key string) error {
	if _, ok := parameters.Lookup(key); !ok {
		return fmt.Errorf("unknown parameter %q", key)
	}
	return nil
}
