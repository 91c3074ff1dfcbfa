// Package valuation computes the LCOH cost breakdown and the profitability
// metrics for one complete parameter assignment.
package valuation

import (
	"github.com/iwvelando/lcoh-model/internal/parameters"
	"github.com/iwvelando/lcoh-model/pkg/constants"
	"github.com/iwvelando/lcoh-model/pkg/mathutil"
)

// Money check labels.
const (
	MoneyLabel   = "Money"
	NoMoneyLabel = "No Money"
)

// RequiredKeys lists every parameter Evaluate reads. plant_size_mw is the only
// registry entry it does not need.
var RequiredKeys = []string{
	parameters.CapexMWYear,
	parameters.OpexMWYear,
	parameters.AnnualH2Prod,
	parameters.PlantLife,
	parameters.DiscountRate,
	parameters.CapacityFactor,
	parameters.H2Efficiency1,
	parameters.H2Efficiency2,
	parameters.ElectricityCost,
	parameters.CRF,
	parameters.DCFFactor,
	parameters.H2SellingPrice,
	parameters.CarbonTax,
	parameters.TaxCredit,
	parameters.H2StorageCost,
	parameters.H2TransportCost,
}

// Result holds the derived metrics. Per-kg components are in $/kg of H2,
// the remaining money figures in $/yr except NPV.
type Result struct {
	CapexPerKg     float64 `json:"capexPerKg"`
	OpexPerKg      float64 `json:"opexPerKg"`
	ElecPerKg      float64 `json:"elecPerKg"`
	CarbonTaxPerKg float64 `json:"carbonTaxPerKg"`
	LCOH           float64 `json:"lcoh"`
	Feasible       bool    `json:"feasible"`

	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
	NPV     float64 `json:"npv"`
	Payback float64 `json:"payback"`
	ROI     float64 `json:"roi"`

	// Fractions converted from their percentage inputs. No formula reads them.
	DiscountRate   float64 `json:"discountRate"`
	CapacityFactor float64 `json:"capacityFactor"`
}

// MoneyCheck returns the label shown next to the LCOH.
func (r Result) MoneyCheck() string {
	if r.Feasible {
		return MoneyLabel
	}
	return NoMoneyLabel
}

// Evaluate computes the Result for a. It fails only when a key from
// RequiredKeys is absent; every real-valued input is accepted.
func Evaluate(a parameters.Assignment) (Result, error) {
	if err := a.Require(RequiredKeys...); err != nil {
		return Result{}, err
	}

	annualProd := mathutil.SafeDivisor(a[parameters.AnnualH2Prod])
	price := a[parameters.H2SellingPrice]

	var r Result
	r.DiscountRate = mathutil.FromPercent(a[parameters.DiscountRate])
	r.CapacityFactor = mathutil.FromPercent(a[parameters.CapacityFactor])

	r.CapexPerKg = (a[parameters.CapexMWYear] * a[parameters.CRF]) / annualProd
	r.OpexPerKg = a[parameters.OpexMWYear] / annualProd
	r.ElecPerKg = (a[parameters.H2Efficiency1] + a[parameters.H2Efficiency2]) * (a[parameters.ElectricityCost] / constants.KWhPerMWh)
	r.CarbonTaxPerKg = a[parameters.CarbonTax] / constants.KgPerTonne
	r.LCOH = r.CapexPerKg + r.OpexPerKg + r.ElecPerKg + r.CarbonTaxPerKg +
		a[parameters.H2StorageCost] + a[parameters.H2TransportCost] - a[parameters.TaxCredit]
	r.Feasible = r.LCOH < price

	r.Revenue = price * annualProd
	r.Cost = r.LCOH * annualProd
	r.Profit = r.Revenue - r.Cost
	// Single-factor approximation, not a discounted sum over the plant life.
	r.NPV = r.Profit * a[parameters.DCFFactor]
	if r.Cost != 0 {
		r.ROI = (r.Profit / r.Cost) * constants.PercentageMultiplier
	}
	if r.Profit > 0 {
		r.Payback = constants.PlaceholderPayback
	}

	return r, nil
}

// Margin returns selling price minus LCOH, the quantity the feasibility
// constraint keeps non-negative.
func Margin(a parameters.Assignment, r Result) float64 {
	return a[parameters.H2SellingPrice] - r.LCOH
}
