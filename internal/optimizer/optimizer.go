// Package optimizer chooses decision-variable values that maximise NPV, with
// an optional LCOH below selling price constraint.
package optimizer

import (
	"fmt"
	"math"

	"github.com/iwvelando/lcoh-model/internal/config"
	"github.com/iwvelando/lcoh-model/internal/parameters"
	"github.com/iwvelando/lcoh-model/internal/valuation"
	"github.com/iwvelando/lcoh-model/pkg/optimization"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/optimize"
)

// feasibilityMargin keeps the penalised optimum strictly below the price.
const feasibilityMargin = 1e-9

// penaltyGrowth multiplies the constraint weight between rounds.
const penaltyGrowth = 10

// Runner runs bounded NPV maximisation.
type Runner struct {
	logger   *zap.Logger
	settings config.OptimizerConfig
}

// Outcome is the result of one Optimize call. When Converged is false,
// Values and Result describe the last point the solver reached and Message
// says why it stopped.
type Outcome struct {
	Converged   bool                   `json:"converged"`
	Message     string                 `json:"message"`
	Values      map[string]float64     `json:"values"`
	Assignment  parameters.Assignment  `json:"assignment"`
	Result      valuation.Result       `json:"result"`
	Summaries   []optimization.Summary `json:"summaries,omitempty"`
	Iterations  int                    `json:"iterations"`
	Evaluations int                    `json:"evaluations"`
	Status      string                 `json:"status"`
}

// NewRunner constructs a Runner. Zero settings take their defaults.
func NewRunner(logger *zap.Logger, settings config.OptimizerConfig) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	settings.Normalize()
	return &Runner{logger: logger, settings: settings}
}

// Optimize maximises NPV over set, holding every other key at its value in
// fixed. With enforce set, a result whose LCOH is not below the selling price
// is reported as not converged. The returned error is reserved for invalid
// input such as an incomplete assignment.
func (r *Runner) Optimize(fixed parameters.Assignment, set parameters.DecisionSet, enforce bool) (*Outcome, error) {
	start := fixed.Overlay(set.Values(set.Initial()))
	base, err := valuation.Evaluate(start)
	if err != nil {
		return nil, fmt.Errorf("optimizer: %w", err)
	}
	for _, v := range set {
		if _, ok := parameters.Lookup(v.Key); !ok {
			return nil, fmt.Errorf("optimizer: unknown decision variable %q", v.Key)
		}
	}

	if len(set) == 0 {
		r.logger.Debug("no decision variables, returning the fixed evaluation",
			zap.String("op", "optimizer.Optimize"),
		)
		return &Outcome{
			Converged:  true,
			Message:    "no decision variables",
			Values:     map[string]float64{},
			Assignment: start,
			Result:     base,
			Status:     optimize.Success.String(),
		}, nil
	}

	box := newBoxTransform(set)
	objective := func(y []float64, weight float64) float64 {
		x := box.toBox(nil, y)
		a := fixed.Overlay(set.Values(x))
		res, err := valuation.Evaluate(a)
		if err != nil {
			return math.Inf(1)
		}
		f := -res.NPV
		if weight > 0 {
			f += weight * math.Max(0, feasibilityMargin-valuation.Margin(a, res))
		}
		return f
	}

	rounds := 1
	weight := 0.0
	if enforce {
		rounds = r.settings.PenaltyRounds
		weight = penaltyWeight(start, base)
	}

	y := box.fromBox(set.Initial())
	outcome := &Outcome{}
	for round := 0; round < rounds; round++ {
		w := weight
		problem := optimize.Problem{
			Func: func(y []float64) float64 { return objective(y, w) },
		}

		result, err := optimize.Minimize(problem, y, r.gonumSettings(), &optimize.NelderMead{})
		if result == nil {
			// Minimize only returns no result on a setup failure.
			outcome.Converged = false
			outcome.Message = fmt.Sprintf("solver failed: %v", err)
			outcome.Status = optimize.Failure.String()
			break
		}

		y = result.X
		outcome.Iterations += result.Stats.MajorIterations
		outcome.Evaluations += result.Stats.FuncEvaluations
		outcome.Status = result.Status.String()
		outcome.Converged = err == nil && !result.Status.Early()
		switch {
		case err != nil:
			outcome.Message = fmt.Sprintf("solver stopped: %v", err)
		case result.Status.Early():
			outcome.Message = fmt.Sprintf("solver stopped early: %s", result.Status)
		default:
			outcome.Message = fmt.Sprintf("optimization terminated successfully: %s", result.Status)
		}

		r.logger.Debug("optimizer round finished",
			zap.String("op", "optimizer.Optimize"),
			zap.Int("round", round),
			zap.Float64("weight", w),
			zap.Float64("objective", result.F),
			zap.String("status", outcome.Status),
		)

		if !outcome.Converged || !enforce {
			break
		}
		a := fixed.Overlay(set.Values(box.toBox(nil, y)))
		if res, err := valuation.Evaluate(a); err == nil && res.Feasible {
			break
		}
		weight *= penaltyGrowth
	}

	x := box.toBox(nil, y)
	outcome.Values = set.Values(x)
	outcome.Assignment = fixed.Overlay(outcome.Values)
	outcome.Result, err = valuation.Evaluate(outcome.Assignment)
	if err != nil {
		return nil, fmt.Errorf("optimizer: %w", err)
	}
	outcome.Summaries = summarize(set, x)

	if enforce && !outcome.Result.Feasible {
		note := fmt.Sprintf(
			"no feasible point found: LCOH %.6f is not below the selling price %.6f",
			outcome.Result.LCOH, outcome.Assignment[parameters.H2SellingPrice],
		)
		if outcome.Converged {
			outcome.Message = note
		} else {
			outcome.Message += "; " + note
		}
		outcome.Converged = false
	}

	fields := []zap.Field{
		zap.String("op", "optimizer.Optimize"),
		zap.Strings("decisionVariables", set.Keys()),
		zap.Bool("enforceFeasibility", enforce),
		zap.Bool("converged", outcome.Converged),
		zap.String("message", outcome.Message),
		zap.Float64("npv", outcome.Result.NPV),
		zap.Float64("lcoh", outcome.Result.LCOH),
		zap.Int("iterations", outcome.Iterations),
	}
	if outcome.Converged {
		r.logger.Info("optimizer finished", fields...)
	} else {
		r.logger.Warn("optimizer did not converge", fields...)
	}

	return outcome, nil
}

func (r *Runner) gonumSettings() *optimize.Settings {
	return &optimize.Settings{
		MajorIterations: r.settings.MaxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   r.settings.Tolerance,
			Relative:   r.settings.Tolerance,
			Iterations: r.settings.StallIterations,
		},
	}
}

// penaltyWeight scales the first constraint weight to the NPV lost per $/kg
// of LCOH, which is the multiplier an exact penalty has to exceed.
func penaltyWeight(a parameters.Assignment, base valuation.Result) float64 {
	perKg := math.Abs(a[parameters.AnnualH2Prod] * a[parameters.DCFFactor])
	return math.Max(1, math.Max(perKg, math.Abs(base.NPV)))
}

func summarize(set parameters.DecisionSet, x []float64) []optimization.Summary {
	summaries := make([]optimization.Summary, 0, len(set))
	for i, v := range set {
		label := v.Key
		if p, ok := parameters.Lookup(v.Key); ok {
			label = p.Label
		}
		summaries = append(summaries, optimization.Summary{
			Key:      v.Key,
			Label:    label,
			Original: v.Initial,
			Value:    x[i],
			Lower:    v.Lower,
			Upper:    v.Upper,
		})
	}
	return summaries
}
