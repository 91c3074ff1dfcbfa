package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/iwvelando/lcoh-model/internal/valuation"
	"github.com/iwvelando/lcoh-model/pkg/constants"
)

// CsvFormat outputs the report as comma-separated rows of
// section, key, field, value.
func CsvFormat(w io.Writer, report Report) error {
	cw := csv.NewWriter(w)
	rows := [][]string{{"section", "key", "field", "value"}}

	for _, row := range report.Parameters {
		rows = append(rows,
			[]string{"parameter", row.Key, "value", num(row.Value)},
			[]string{"parameter", row.Key, "min", num(row.Min)},
			[]string{"parameter", row.Key, "max", num(row.Max)},
			[]string{"parameter", row.Key, "inOptimization", strconv.FormatBool(row.InOptimization)},
		)
	}
	if report.Outcome != nil {
		o := report.Outcome
		rows = append(rows,
			[]string{"optimization", "", "converged", strconv.FormatBool(o.Converged)},
			[]string{"optimization", "", "status", o.Status},
			[]string{"optimization", "", "message", o.Message},
			[]string{"optimization", "", "iterations", strconv.Itoa(o.Iterations)},
		)
		for _, s := range o.Summaries {
			rows = append(rows,
				[]string{"optimization", s.Key, "original", num(s.Original)},
				[]string{"optimization", s.Key, "optimized", num(s.Value)},
				[]string{"optimization", s.Key, "delta", num(s.Delta())},
				[]string{"optimization", s.Key, "atBound", strconv.FormatBool(s.AtBound(constants.BoundTolerance))},
			)
		}
		rows = append(rows, resultRows("optimization", o.Result)...)
	}
	if report.Result != nil {
		rows = append(rows, resultRows("result", *report.Result)...)
	}
	for _, s := range report.Sweep {
		for i, point := range s.Points {
			idx := strconv.Itoa(i)
			rows = append(rows,
				[]string{"sweep", s.Key, "value[" + idx + "]", num(point.Value)},
				[]string{"sweep", s.Key, "npv[" + idx + "]", num(point.NPV)},
			)
		}
	}
	for _, s := range report.Sensitivity {
		rows = append(rows,
			[]string{"sensitivity", s.Key, "spread", num(s.Spread)},
			[]string{"sensitivity", s.Key, "bestValue", num(s.BestValue)},
			[]string{"sensitivity", s.Key, "correlation", num(s.Correlation)},
		)
	}
	for _, warning := range report.Warnings {
		rows = append(rows, []string{"warning", "", "", warning})
	}

	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func resultRows(section string, r valuation.Result) [][]string {
	return [][]string{
		{section, "", "lcoh", num(r.LCOH)},
		{section, "", "capexPerKg", num(r.CapexPerKg)},
		{section, "", "opexPerKg", num(r.OpexPerKg)},
		{section, "", "elecPerKg", num(r.ElecPerKg)},
		{section, "", "carbonTaxPerKg", num(r.CarbonTaxPerKg)},
		{section, "", "feasible", strconv.FormatBool(r.Feasible)},
		{section, "", "moneyCheck", r.MoneyCheck()},
		{section, "", "revenue", num(r.Revenue)},
		{section, "", "cost", num(r.Cost)},
		{section, "", "profit", num(r.Profit)},
		{section, "", "npv", num(r.NPV)},
		{section, "", "roi", num(r.ROI)},
		{section, "", "payback", num(r.Payback)},
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
