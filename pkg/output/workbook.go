package output

import (
	"fmt"

	"github.com/iwvelando/lcoh-model/internal/valuation"
	"github.com/xuri/excelize/v2"
)

// Sheet names used by WriteWorkbook.
const (
	SheetParameters   = "Parameters"
	SheetResults      = "Results"
	SheetOptimization = "Optimization"
	SheetSensitivity  = "Sensitivity"
)

// WriteWorkbook saves the report as an xlsx workbook at path, one sheet per
// non-empty section.
func WriteWorkbook(path string, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	sb := &sheetBuilder{f: f}

	if len(report.Parameters) > 0 {
		sb.sheet(SheetParameters, []interface{}{"Key", "Parameter", "Value", "Min", "Max", "In Optimization"})
		for _, row := range report.Parameters {
			sb.row(row.Key, row.Label, row.Value, row.Min, row.Max, row.InOptimization)
		}
	}

	result := report.Result
	if result == nil && report.Outcome != nil {
		result = &report.Outcome.Result
	}
	if result != nil {
		sb.sheet(SheetResults, []interface{}{"Metric", "Value"})
		writeResult(sb, *result)
	}

	if report.Outcome != nil {
		o := report.Outcome
		sb.sheet(SheetOptimization, []interface{}{"Key", "Parameter", "Original", "Optimized", "Lower", "Upper"})
		for _, s := range o.Summaries {
			sb.row(s.Key, s.Label, s.Original, s.Value, s.Lower, s.Upper)
		}
		sb.row()
		sb.row("Converged", o.Converged)
		sb.row("Status", o.Status)
		sb.row("Message", o.Message)
		sb.row("Iterations", o.Iterations)
	}

	if len(report.Sweep) > 0 {
		sb.sheet(SheetSensitivity, []interface{}{"Key", "Value", "NPV"})
		for _, s := range report.Sweep {
			for _, point := range s.Points {
				sb.row(s.Key, point.Value, point.NPV)
			}
		}
	}

	if sb.err != nil {
		return sb.err
	}
	if sb.sheets == 0 {
		return fmt.Errorf("nothing to write to %s", path)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("unable to save workbook %s: %w", path, err)
	}
	return nil
}

func writeResult(sb *sheetBuilder, r valuation.Result) {
	sb.row("LCOH [$/kg]", r.LCOH)
	sb.row("Money Check", r.MoneyCheck())
	sb.row("CAPEX [$/kg]", r.CapexPerKg)
	sb.row("OPEX [$/kg]", r.OpexPerKg)
	sb.row("Electricity [$/kg]", r.ElecPerKg)
	sb.row("Carbon Tax [$/kg]", r.CarbonTaxPerKg)
	sb.row("Revenue [$/yr]", r.Revenue)
	sb.row("Cost [$/yr]", r.Cost)
	sb.row("Profit [$/yr]", r.Profit)
	sb.row("NPV [$]", r.NPV)
	sb.row("ROI [%]", r.ROI)
	sb.row("Payback [yr]", r.Payback)
}

// sheetBuilder appends rows to the current sheet and keeps the first error.
type sheetBuilder struct {
	f      *excelize.File
	name   string
	next   int
	sheets int
	err    error
}

func (sb *sheetBuilder) sheet(name string, header []interface{}) {
	if sb.err != nil {
		return
	}
	if sb.sheets == 0 {
		// Reuse the default sheet so the workbook has no blank tab.
		sb.err = sb.f.SetSheetName(sb.f.GetSheetName(0), name)
	} else {
		var idx int
		idx, sb.err = sb.f.NewSheet(name)
		if sb.err == nil && idx < 0 {
			sb.err = fmt.Errorf("unable to create sheet %s", name)
		}
	}
	sb.sheets++
	sb.name = name
	sb.next = 1
	sb.row(header...)
}

func (sb *sheetBuilder) row(values ...interface{}) {
	if sb.err != nil {
		return
	}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, sb.next)
		if err != nil {
			sb.err = err
			return
		}
		if err := sb.f.SetCellValue(sb.name, cell, v); err != nil {
			sb.err = err
			return
		}
	}
	sb.next++
}
