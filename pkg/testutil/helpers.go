// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/lcoh-model/internal/sensitivity"
	"github.com/iwvelando/lcoh-model/internal/session"
)

// FindRow finds a parameter row by key in the rows slice.
// Returns a pointer to the row if found, nil otherwise.
func FindRow(rows []session.Row, key string) *session.Row {
	for i := range rows {
		if rows[i].Key == key {
			return &rows[i]
		}
	}
	return nil
}

// FindSeries finds the sweep series for key, nil if absent.
func FindSeries(series []sensitivity.Series, key string) *sensitivity.Series {
	for i := range series {
		if series[i].Key == key {
			return &series[i]
		}
	}
	return nil
}

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 {
	return &v
}

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool {
	return &v
}
