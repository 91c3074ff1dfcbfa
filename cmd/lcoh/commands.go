package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/lcoh-model/internal/optimizer"
	"github.com/iwvelando/lcoh-model/internal/sensitivity"
	"github.com/iwvelando/lcoh-model/internal/server"
	"github.com/iwvelando/lcoh-model/internal/valuation"
	"github.com/iwvelando/lcoh-model/pkg/constants"
	"github.com/iwvelando/lcoh-model/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errNotConverged is returned after the report of a failed optimization has
// been written.
var errNotConverged = errors.New("optimization did not converge")

func newParamsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Show the parameter table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, warnings, err := a.newSession()
			if err != nil {
				return err
			}
			return a.render(output.Report{Parameters: s.Rows(), Warnings: warnings})
		},
	}
}

func newEvaluateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate",
		Short: "Compute LCOH and profitability for the configured parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, warnings, err := a.newSession()
			if err != nil {
				return err
			}
			result, err := valuation.Evaluate(s.Assignment())
			if err != nil {
				return err
			}
			a.logger.Debug("valuation computed",
				zap.String("op", "main.evaluate"),
				zap.Float64("lcoh", result.LCOH),
				zap.Float64("npv", result.NPV),
			)
			return a.render(output.Report{Parameters: s.Rows(), Result: &result, Warnings: warnings})
		},
	}
}

func newOptimizeCmd(a *app) *cobra.Command {
	var enforce bool
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Maximize NPV over the parameters marked for optimization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("enforce-feasibility") {
				a.conf.Optimizer.EnforceFeasibility = enforce
			}
			s, warnings, err := a.newSession()
			if err != nil {
				return err
			}

			runner := optimizer.NewRunner(a.logger, a.conf.Optimizer)
			outcome, err := runner.Optimize(s.Assignment(), s.DecisionSet(), a.conf.Optimizer.EnforceFeasibility)
			if err != nil {
				return err
			}
			if outcome.Converged {
				if err := s.Apply(outcome.Values); err != nil {
					return err
				}
			}

			if err := a.render(output.Report{Parameters: s.Rows(), Outcome: outcome, Warnings: warnings}); err != nil {
				return err
			}
			if !outcome.Converged {
				return errNotConverged
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&enforce, "enforce-feasibility", false, "require LCOH below the selling price")
	return cmd
}

func newSweepCmd(a *app) *cobra.Command {
	var samples int
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep NPV across the bounds of each optimization parameter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("samples") {
				a.conf.Sensitivity.Samples = samples
			}
			s, warnings, err := a.newSession()
			if err != nil {
				return err
			}

			set := s.DecisionSet()
			series, err := sensitivity.Sweep(s.Assignment(), set, a.conf.Sensitivity.Samples)
			if errors.Is(err, sensitivity.ErrNoDecisionVariables) {
				a.logger.Info("select at least one parameter for optimization to see a sweep",
					zap.String("op", "main.sweep"),
				)
				return a.render(output.Report{Warnings: warnings})
			}
			if err != nil {
				return err
			}
			summaries, err := sensitivity.Summarize(series)
			if err != nil {
				return err
			}
			return a.render(output.Report{
				Sweep:       sensitivity.Ordered(set, series),
				Sensitivity: summaries,
				Warnings:    warnings,
			})
		},
	}
	cmd.Flags().IntVar(&samples, "samples", constants.DefaultSweepSamples, "samples per parameter, endpoints included")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var (
		serverConfigPath string
		address          string
		maxRequestSize   string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srvCfg, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}
			if address != "" {
				srvCfg.Address = address
			}
			if maxRequestSize != "" {
				size, err := server.ParseSize(maxRequestSize)
				if err != nil {
					return err
				}
				srvCfg.SetRequestSizeBytes(size)
			}

			logger, err := initializeLogger(srvCfg.Logging, a.logLevel)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx, logger, srvCfg, version)
		},
	}
	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override")
	cmd.Flags().StringVar(&maxRequestSize, "max-request-size", "", "request body limit override (e.g. 256K, 1M)")
	return cmd
}
