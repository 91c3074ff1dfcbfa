// Package constants provides shared constants for the lcoh-model application.
package constants

import "time"

// Unit conversions used by the valuation formulas.
const (
	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// KgPerTonne converts carbon tax quoted per tonne into a per-kg figure
	KgPerTonne = 1000.0

	// KWhPerMWh converts electricity prices quoted per MWh into per-kWh prices
	KWhPerMWh = 1000.0

	// ProductionEpsilon replaces a non-positive annual production so the
	// per-kg components stay finite
	ProductionEpsilon = 1e-9

	// PlaceholderPayback is the payback in years reported for any profitable
	// assignment
	PlaceholderPayback = 5.0
)

// Optimizer defaults
const (
	// DefaultOptimizerMaxIterations caps the major iterations of one solver run
	DefaultOptimizerMaxIterations = 2000

	// DefaultOptimizerTolerance is the absolute and relative objective
	// improvement below which an iteration is counted as stalled
	DefaultOptimizerTolerance = 1e-10

	// DefaultOptimizerStallIterations is the number of stalled iterations that
	// ends a run as converged
	DefaultOptimizerStallIterations = 100

	// DefaultPenaltyRounds bounds how often the feasibility penalty is
	// tightened before giving up
	DefaultPenaltyRounds = 6

	// BoundTolerance is how close an optimized value must be to a bound to be
	// reported as sitting on it
	BoundTolerance = 1e-6
)

// Sensitivity defaults
const (
	// DefaultSweepSamples is the number of evenly spaced samples per variable
	DefaultSweepSamples = 20

	// MinSweepSamples is the smallest grid that still includes both endpoints
	MinSweepSamples = 2
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatXLSX writes a spreadsheet workbook to a file
	OutputFormatXLSX = "xlsx"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment variables that override configuration keys
	EnvPrefix = "LCOH"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultShutdownTimeout is how long in-flight requests get on shutdown
	DefaultShutdownTimeout = 10 * time.Second

	// RequestIDHeader carries the request ID in and out of the API
	RequestIDHeader = "X-Request-ID"
)
