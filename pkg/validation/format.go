// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/lcoh-model/pkg/constants"
)

var supportedOutputFormats = []string{
	constants.OutputFormatPretty,
	constants.OutputFormatCSV,
	constants.OutputFormatJSON,
	constants.OutputFormatXLSX,
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	for _, supported := range supportedOutputFormats {
		if format == supported {
			return nil
		}
	}
	return fmt.Errorf("expected output format of %s, got %s",
		strings.Join(supportedOutputFormats, ", "), format)
}

// ValidateOutputDestination checks that formats writing files have a destination.
func ValidateOutputDestination(format, path string) error {
	if format == constants.OutputFormatXLSX && strings.TrimSpace(path) == "" {
		return fmt.Errorf("output format %s requires an output file", format)
	}
	return nil
}
