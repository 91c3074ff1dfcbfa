package output

import (
	"io"
	"strings"

	"github.com/iwvelando/lcoh-model/internal/optimizer"
	"github.com/iwvelando/lcoh-model/internal/sensitivity"
	"github.com/iwvelando/lcoh-model/internal/session"
	"github.com/iwvelando/lcoh-model/internal/valuation"
	"github.com/iwvelando/lcoh-model/pkg/constants"
	"github.com/iwvelando/lcoh-model/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, report Report) error {
	pw := &prettyWriter{w: w, p: message.NewPrinter(language.English)}

	for _, warning := range report.Warnings {
		pw.printf("warning: %s\n", warning)
	}
	if len(report.Warnings) > 0 {
		pw.printf("\n")
	}
	if len(report.Parameters) > 0 {
		pw.parameters(report.Parameters)
	}
	if report.Outcome != nil {
		pw.outcome(report.Outcome)
	}
	if report.Result != nil {
		pw.result(*report.Result)
	}
	if len(report.Sweep) > 0 {
		pw.sweep(report.Sweep)
	}
	if len(report.Sensitivity) > 0 {
		pw.sensitivity(report.Sensitivity)
	}
	return pw.err
}

type prettyWriter struct {
	w   io.Writer
	p   *message.Printer
	err error
}

func (pw *prettyWriter) printf(format string, args ...interface{}) {
	if pw.err != nil {
		return
	}
	_, pw.err = pw.p.Fprintf(pw.w, format, args...)
}

func (pw *prettyWriter) parameters(rows []session.Row) {
	pw.printf("--- Parameters ---\n")
	pw.printf("%-38s | %16s | %16s | %16s | %s\n", "Parameter", "Value", "Min", "Max", "Optimize")
	pw.printf("%s\n", strings.Repeat("_", 104))
	for _, row := range rows {
		mark := ""
		if row.InOptimization {
			mark = "x"
		}
		pw.printf("%-38s | %16v | %16v | %16v | %s\n", row.Label, row.Value, row.Min, row.Max, mark)
	}
	pw.printf("\n")
}

func (pw *prettyWriter) result(r valuation.Result) {
	pw.printf("--- Results ---\n")
	pw.printf("%-16s | %s (%s)\n", "LCOH", format.PerKg(r.LCOH), r.MoneyCheck())
	pw.printf("%-16s | %s\n", "CAPEX", format.PerKg(r.CapexPerKg))
	pw.printf("%-16s | %s\n", "OPEX", format.PerKg(r.OpexPerKg))
	pw.printf("%-16s | %s\n", "Electricity", format.PerKg(r.ElecPerKg))
	pw.printf("%-16s | %s\n", "Carbon Tax", format.PerKg(r.CarbonTaxPerKg))
	pw.printf("%-16s | %s\n", "Revenue", format.Currency(r.Revenue))
	pw.printf("%-16s | %s\n", "Cost", format.Currency(r.Cost))
	pw.printf("%-16s | %s\n", "Profit", format.Currency(r.Profit))
	pw.printf("%-16s | %s\n", "NPV", format.Currency(r.NPV))
	pw.printf("%-16s | %.2f%%\n", "ROI", r.ROI)
	pw.printf("%-16s | %.1f yr\n", "Payback", r.Payback)
	pw.printf("\n")
}

func (pw *prettyWriter) outcome(o *optimizer.Outcome) {
	state := "converged"
	if !o.Converged {
		state = "did not converge"
	}
	pw.printf("--- Optimization ---\n")
	pw.printf("%-16s | %s (%s)\n", "Status", state, o.Status)
	pw.printf("%-16s | %s\n", "Message", o.Message)
	pw.printf("%-16s | %d\n", "Iterations", o.Iterations)
	pw.printf("%-16s | %d\n", "Evaluations", o.Evaluations)
	if len(o.Summaries) > 0 {
		pw.printf("Optimized variables:\n")
		for _, s := range o.Summaries {
			marker := ""
			if s.AtBound(constants.BoundTolerance) {
				marker = " [at bound]"
			}
			pw.printf("  %s = %.6f (was %.6f, bounds %v to %v)%s\n", s.Key, s.Value, s.Original, s.Lower, s.Upper, marker)
		}
	}
	pw.printf("Final NPV: %s\n", format.Currency(o.Result.NPV))
	pw.printf("Final LCOH: %s\n", format.PerKg(o.Result.LCOH))
	pw.printf("Money Check: %s\n", o.Result.MoneyCheck())
	pw.printf("\n")
}

func (pw *prettyWriter) sweep(series []sensitivity.Series) {
	for _, s := range series {
		pw.printf("--- %s ---\n", s.Title)
		pw.printf("%16s | %s\n", s.Key, "NPV")
		for _, point := range s.Points {
			pw.printf("%16.6f | %s\n", point.Value, format.Currency(point.NPV))
		}
		pw.printf("\n")
	}
}

func (pw *prettyWriter) sensitivity(summaries []sensitivity.Summary) {
	pw.printf("--- Sensitivity ranking ---\n")
	for i, s := range summaries {
		pw.printf("%d. %s: NPV spread %s (best at %v, correlation %.3f)\n",
			i+1, s.Key, format.Currency(s.Spread), s.BestValue, s.Correlation)
	}
	pw.printf("\n")
}
