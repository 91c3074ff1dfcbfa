package valuation

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/lcoh-model/internal/parameters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceAssignment() parameters.Assignment {
	return parameters.Defaults().Overlay(map[string]float64{
		parameters.CapexMWYear:     3242,
		parameters.OpexMWYear:      90000,
		parameters.AnnualH2Prod:    876000,
		parameters.CRF:             0.094392926,
		parameters.H2Efficiency1:   50,
		parameters.H2Efficiency2:   70,
		parameters.ElectricityCost: 3,
		parameters.CarbonTax:       0,
		parameters.TaxCredit:       0,
		parameters.H2StorageCost:   1,
		parameters.H2TransportCost: 0,
		parameters.H2SellingPrice:  3.5,
		parameters.DCFFactor:       10.59401425,
	})
}

func TestEvaluateReferenceAssignment(t *testing.T) {
	r, err := Evaluate(referenceAssignment())
	require.NoError(t, err)

	assert.InDelta(t, 0.000349, r.CapexPerKg, 1e-6)
	assert.InDelta(t, 0.10274, r.OpexPerKg, 1e-5)
	assert.InDelta(t, 0.36, r.ElecPerKg, 1e-12)
	assert.Equal(t, 0.0, r.CarbonTaxPerKg)
	assert.InDelta(t, 1.4631, r.LCOH, 1e-4)
	assert.True(t, r.Feasible)
	assert.Equal(t, MoneyLabel, r.MoneyCheck())

	assert.InDelta(t, 3.5*876000, r.Revenue, 1e-6)
	assert.InDelta(t, r.LCOH*876000, r.Cost, 1e-6)
	assert.InDelta(t, r.Revenue-r.Cost, r.Profit, 1e-6)
	assert.InDelta(t, r.Profit*10.59401425, r.NPV, 1e-3)
	assert.InDelta(t, r.Profit/r.Cost*100, r.ROI, 1e-9)
	assert.Equal(t, 5.0, r.Payback)
	assert.InDelta(t, 0.05, r.DiscountRate, 1e-12)
	assert.InDelta(t, 0.9, r.CapacityFactor, 1e-12)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	a := referenceAssignment()
	first, err := Evaluate(a)
	require.NoError(t, err)
	second, err := Evaluate(a)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, referenceAssignment(), a, "Evaluate must not modify its input")
}

func TestEvaluateZeroProductionUsesEpsilon(t *testing.T) {
	for _, prod := range []float64{0, -10} {
		a := referenceAssignment().With(parameters.AnnualH2Prod, prod)
		r, err := Evaluate(a)
		require.NoError(t, err)

		for name, v := range map[string]float64{"capex": r.CapexPerKg, "opex": r.OpexPerKg} {
			assert.False(t, math.IsInf(v, 0), "%s per kg is infinite for production %v", name, prod)
			assert.False(t, math.IsNaN(v), "%s per kg is NaN for production %v", name, prod)
		}
		assert.InDelta(t, 90000/1e-9, r.OpexPerKg, 1)
	}
}

func TestEvaluateROIZeroCost(t *testing.T) {
	// Storage cost cancelled by the tax credit with every other component zero.
	a := referenceAssignment().Overlay(map[string]float64{
		parameters.CapexMWYear:     0,
		parameters.OpexMWYear:      0,
		parameters.ElectricityCost: 0,
		parameters.TaxCredit:       1,
	})
	r, err := Evaluate(a)
	require.NoError(t, err)

	assert.Equal(t, 0.0, r.LCOH)
	assert.Equal(t, 0.0, r.Cost)
	assert.Equal(t, 0.0, r.ROI)
	assert.Greater(t, r.Profit, 0.0)
}

func TestEvaluatePaybackIsBinary(t *testing.T) {
	tests := []struct {
		name    string
		price   float64
		payback float64
	}{
		{"Profitable", 3.5, 5.0},
		{"Loss making", 0.5, 0.0},
		{"Break even", 0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := referenceAssignment().With(parameters.H2SellingPrice, tt.price)
			if tt.name == "Break even" {
				r, err := Evaluate(a)
				require.NoError(t, err)
				a = a.With(parameters.H2SellingPrice, r.LCOH)
			}
			r, err := Evaluate(a)
			require.NoError(t, err)
			assert.Equal(t, tt.payback, r.Payback)
		})
	}
}

func TestEvaluateInfeasible(t *testing.T) {
	a := referenceAssignment().With(parameters.ElectricityCost, 700)
	r, err := Evaluate(a)
	require.NoError(t, err)

	assert.InDelta(t, 84, r.ElecPerKg, 1e-9)
	assert.False(t, r.Feasible)
	assert.Equal(t, NoMoneyLabel, r.MoneyCheck())
	assert.Less(t, r.NPV, 0.0)
	assert.Less(t, Margin(a, r), 0.0)
}

func TestEvaluateCarbonTaxAndCredit(t *testing.T) {
	base, err := Evaluate(referenceAssignment())
	require.NoError(t, err)

	taxed, err := Evaluate(referenceAssignment().Overlay(map[string]float64{
		parameters.CarbonTax: 50,
		parameters.TaxCredit: 0.2,
	}))
	require.NoError(t, err)

	assert.InDelta(t, 0.05, taxed.CarbonTaxPerKg, 1e-12)
	assert.InDelta(t, base.LCOH+0.05-0.2, taxed.LCOH, 1e-12)
}

func TestEvaluateMissingParameter(t *testing.T) {
	a := referenceAssignment()
	delete(a, parameters.DCFFactor)

	_, err := Evaluate(a)
	require.Error(t, err)
	assert.True(t, errors.Is(err, parameters.ErrMissingParameter))
	assert.Contains(t, err.Error(), parameters.DCFFactor)
}

func TestEvaluateIgnoresPlantSize(t *testing.T) {
	a := referenceAssignment()
	delete(a, parameters.PlantSizeMW)

	_, err := Evaluate(a)
	assert.NoError(t, err)
}
