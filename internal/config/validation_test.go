package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		conf    Configuration
		wantErr string
	}{
		{
			name: "empty",
			conf: Configuration{},
		},
		{
			name: "valid",
			conf: Configuration{
				Logging:     LoggingConfig{Level: "warn", Format: "json"},
				Output:      OutputConfig{Format: "xlsx", File: "out.xlsx"},
				Optimizer:   OptimizerConfig{MaxIterations: 10, Tolerance: 1e-6, PenaltyRounds: 3},
				Sensitivity: SensitivityConfig{Samples: 5},
			},
		},
		{
			name:    "bad output format",
			conf:    Configuration{Output: OutputConfig{Format: "html"}},
			wantErr: "Output.Format",
		},
		{
			name:    "bad log level",
			conf:    Configuration{Logging: LoggingConfig{Level: "verbose"}},
			wantErr: "Logging.Level",
		},
		{
			name:    "single sample",
			conf:    Configuration{Sensitivity: SensitivityConfig{Samples: 1}},
			wantErr: "Sensitivity.Samples",
		},
		{
			name:    "negative tolerance",
			conf:    Configuration{Optimizer: OptimizerConfig{Tolerance: -1}},
			wantErr: "Optimizer.Tolerance",
		},
		{
			name:    "too many penalty rounds",
			conf:    Configuration{Optimizer: OptimizerConfig{PenaltyRounds: 20}},
			wantErr: "Optimizer.PenaltyRounds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conf.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
