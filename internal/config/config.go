// Package config defines the data structures related to configuration and
// includes functions for loading the config and applying it to a session.
package config

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/iwvelando/lcoh-model/internal/session"
	"github.com/iwvelando/lcoh-model/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for lcoh-model.
type Configuration struct {
	Logging     LoggingConfig                `yaml:"logging,omitempty" mapstructure:"logging"`
	Output      OutputConfig                 `yaml:"output,omitempty" mapstructure:"output"`
	Optimizer   OptimizerConfig              `yaml:"optimizer,omitempty" mapstructure:"optimizer"`
	Sensitivity SensitivityConfig            `yaml:"sensitivity,omitempty" mapstructure:"sensitivity"`
	Parameters  map[string]ParameterOverride `yaml:"parameters,omitempty" mapstructure:"parameters"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format     string `yaml:"format,omitempty" mapstructure:"format" validate:"omitempty,oneof=json console"`
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format" validate:"omitempty,oneof=pretty csv json xlsx"`
	File   string `yaml:"file,omitempty" mapstructure:"file"` // destination for xlsx
}

// SensitivityConfig holds the sweep settings.
type SensitivityConfig struct {
	Samples int `yaml:"samples,omitempty" mapstructure:"samples" validate:"omitempty,min=2"`
}

// ParameterOverride edits one registry row. Nil fields keep the registry value.
type ParameterOverride struct {
	Value          *float64 `yaml:"value,omitempty" json:"value,omitempty" mapstructure:"value"`
	Min            *float64 `yaml:"min,omitempty" json:"min,omitempty" mapstructure:"min"`
	Max            *float64 `yaml:"max,omitempty" json:"max,omitempty" mapstructure:"max"`
	InOptimization *bool    `yaml:"inOptimization,omitempty" json:"inOptimization,omitempty" mapstructure:"inOptimization"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

// DefaultConfiguration returns the configuration used when no file is given.
func DefaultConfiguration() (*Configuration, error) {
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults make the keys known to viper so environment overrides apply.
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.file", "")
	v.SetDefault("optimizer.enforceFeasibility", false)
	v.SetDefault("optimizer.maxIterations", constants.DefaultOptimizerMaxIterations)
	v.SetDefault("optimizer.tolerance", constants.DefaultOptimizerTolerance)
	v.SetDefault("optimizer.stallIterations", constants.DefaultOptimizerStallIterations)
	v.SetDefault("optimizer.penaltyRounds", constants.DefaultPenaltyRounds)
	v.SetDefault("sensitivity.samples", constants.DefaultSweepSamples)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.Optimizer.Normalize()
	if configuration.Sensitivity.Samples == 0 {
		configuration.Sensitivity.Samples = constants.DefaultSweepSamples
	}
	return &configuration, nil
}

// ApplyTo writes the parameter overrides into s. Keys are applied in sorted
// order so the first unknown key reported is stable.
func (c *Configuration) ApplyTo(s *session.Session) error {
	keys := make([]string, 0, len(c.Parameters))
	for key := range c.Parameters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := c.Parameters[key].ApplyTo(s, key); err != nil {
			return err
		}
	}
	return nil
}

// ApplyTo writes the override for key into s.
func (o ParameterOverride) ApplyTo(s *session.Session, key string) error {
	if o.Value != nil {
		if err := s.SetValue(key, *o.Value); err != nil {
			return err
		}
	}
	if o.Min != nil {
		if err := s.SetMin(key, *o.Min); err != nil {
			return err
		}
	}
	if o.Max != nil {
		if err := s.SetMax(key, *o.Max); err != nil {
			return err
		}
	}
	if o.InOptimization != nil {
		if err := s.SetInOptimization(key, *o.InOptimization); err != nil {
			return err
		}
	}
	// An empty override still has to name a known parameter.
	_, err := s.Bounds(key)
	return err
}

// NewSession returns a session with the configured overrides applied.
func (c *Configuration) NewSession() (*session.Session, error) {
	s := session.New()
	if err := c.ApplyTo(s); err != nil {
		return nil, err
	}
	return s, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	s, err := c.NewSession()
	if err != nil {
		return append(warnings, err.Error())
	}
	warnings = append(warnings, s.Warnings()...)

	if c.Optimizer.EnforceFeasibility && len(s.DecisionSet()) == 0 {
		warnings = append(warnings, "feasibility is enforced but no parameter is in the optimization")
	}
	return warnings
}
