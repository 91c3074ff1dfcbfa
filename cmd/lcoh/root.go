package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/iwvelando/lcoh-model/internal/config"
	"github.com/iwvelando/lcoh-model/internal/session"
	"github.com/iwvelando/lcoh-model/pkg/constants"
	"github.com/iwvelando/lcoh-model/pkg/output"
	"github.com/iwvelando/lcoh-model/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand.
type app struct {
	out io.Writer

	configPath   string
	logLevel     string
	outputFormat string
	outFile      string

	conf   *config.Configuration
	logger *zap.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "lcoh",
		Short:         "Levelized cost of hydrogen calculator",
		Long:          "Computes LCOH and profitability for a green-hydrogen plant, optimizes selected parameters for NPV and sweeps their sensitivity.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVar(&a.outputFormat, "output-format", "", "type of output override: pretty, csv, json, xlsx")
	flags.StringVar(&a.outFile, "out", "", "destination file for xlsx output")

	root.AddCommand(
		newParamsCmd(a),
		newEvaluateCmd(a),
		newOptimizeCmd(a),
		newSweepCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup loads the run configuration and builds the logger. An explicit
// --config must exist; the default file is optional.
func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if cmd.Flags().Changed("config") {
		a.conf, err = config.LoadConfiguration(a.configPath)
	} else {
		a.conf, err = loadOptionalConfiguration(a.configPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", a.configPath, err)
	}
	if err := a.conf.Validate(); err != nil {
		return err
	}

	logger, err := initializeLogger(a.conf.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	if a.outputFormat != "" {
		a.conf.Output.Format = a.outputFormat
	}
	if a.outFile != "" {
		a.conf.Output.File = a.outFile
	}
	if a.conf.Output.Format == "" {
		a.conf.Output.Format = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(a.conf.Output.Format); err != nil {
		return err
	}
	return validation.ValidateOutputDestination(a.conf.Output.Format, a.conf.Output.File)
}

func loadOptionalConfiguration(path string) (*config.Configuration, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return config.DefaultConfiguration()
	}
	return config.LoadConfiguration(path)
}

// newSession builds the session for this run and logs configuration warnings.
func (a *app) newSession() (*session.Session, []string, error) {
	s, err := a.conf.NewSession()
	if err != nil {
		return nil, nil, err
	}
	warnings := a.conf.ValidateConfiguration()
	for _, warning := range warnings {
		a.logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
	return s, warnings, nil
}

// render writes report in the configured format.
func (a *app) render(report output.Report) error {
	if a.conf.Output.Format == constants.OutputFormatXLSX {
		if err := output.WriteWorkbook(a.conf.Output.File, report); err != nil {
			return err
		}
		a.logger.Info("workbook written",
			zap.String("op", "main"),
			zap.String("file", a.conf.Output.File),
		)
		return nil
	}
	return output.Write(a.out, a.conf.Output.Format, report)
}
