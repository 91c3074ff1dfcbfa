// Package output provides utilities for formatting and displaying LCOH results.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iwvelando/lcoh-model/internal/optimizer"
	"github.com/iwvelando/lcoh-model/internal/sensitivity"
	"github.com/iwvelando/lcoh-model/internal/session"
	"github.com/iwvelando/lcoh-model/internal/valuation"
	"github.com/iwvelando/lcoh-model/pkg/constants"
)

// Report collects whatever a command produced. Nil and empty sections are
// left out of every format.
type Report struct {
	Parameters  []session.Row         `json:"parameters,omitempty"`
	Result      *valuation.Result     `json:"result,omitempty"`
	Outcome     *optimizer.Outcome    `json:"optimization,omitempty"`
	Sweep       []sensitivity.Series  `json:"sweep,omitempty"`
	Sensitivity []sensitivity.Summary `json:"sensitivity,omitempty"`
	Warnings    []string              `json:"warnings,omitempty"`
}

// Write renders the report to w in the named text format.
func Write(w io.Writer, format string, report Report) error {
	switch format {
	case constants.OutputFormatPretty, "":
		return PrettyFormat(w, report)
	case constants.OutputFormatCSV:
		return CsvFormat(w, report)
	case constants.OutputFormatJSON:
		return JSONFormat(w, report)
	case constants.OutputFormatXLSX:
		return fmt.Errorf("format %s must be written to a file", format)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// JSONFormat writes the report as indented JSON.
func JSONFormat(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
