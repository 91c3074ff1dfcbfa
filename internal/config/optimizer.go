package config

import "github.com/iwvelando/lcoh-model/pkg/constants"

// OptimizerConfig defines the solver settings of an optimize run.
type OptimizerConfig struct {
	EnforceFeasibility bool    `yaml:"enforceFeasibility,omitempty" mapstructure:"enforceFeasibility"`
	MaxIterations      int     `yaml:"maxIterations,omitempty" mapstructure:"maxIterations" validate:"omitempty,min=1"`
	Tolerance          float64 `yaml:"tolerance,omitempty" mapstructure:"tolerance" validate:"omitempty,gt=0"`
	StallIterations    int     `yaml:"stallIterations,omitempty" mapstructure:"stallIterations" validate:"omitempty,min=1"`
	PenaltyRounds      int     `yaml:"penaltyRounds,omitempty" mapstructure:"penaltyRounds" validate:"omitempty,min=1,max=12"`
}

// Normalize ensures defaults are applied before validation.
func (o *OptimizerConfig) Normalize() {
	if o == nil {
		return
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = constants.DefaultOptimizerMaxIterations
	}
	if o.Tolerance <= 0 {
		o.Tolerance = constants.DefaultOptimizerTolerance
	}
	if o.StallIterations <= 0 {
		o.StallIterations = constants.DefaultOptimizerStallIterations
	}
	if o.PenaltyRounds <= 0 {
		o.PenaltyRounds = constants.DefaultPenaltyRounds
	}
}
