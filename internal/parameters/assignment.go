package parameters

import (
	"errors"
	"fmt"
)

// ErrMissingParameter is returned when an assignment lacks a key the model reads.
var ErrMissingParameter = errors.New("missing parameter")

// Assignment maps parameter keys to concrete values.
type Assignment map[string]float64

// Clone returns an independent copy.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// With returns a copy of the assignment with key set to value.
func (a Assignment) With(key string, value float64) Assignment {
	out := a.Clone()
	out[key] = value
	return out
}

// Overlay returns a copy of the assignment with every entry of values applied.
func (a Assignment) Overlay(values map[string]float64) Assignment {
	out := a.Clone()
	for k, v := range values {
		out[k] = v
	}
	return out
}

// Value returns the value stored under key or an error wrapping
// ErrMissingParameter.
func (a Assignment) Value(key string) (float64, error) {
	v, ok := a[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingParameter, key)
	}
	return v, nil
}

// Require checks that every key is present and reports the first missing one.
func (a Assignment) Require(keys ...string) error {
	for _, key := range keys {
		if _, ok := a[key]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingParameter, key)
		}
	}
	return nil
}
