// Package parameters defines the static parameter registry of the LCOH model
// and the value types passed between the valuation, optimizer and sensitivity
// packages.
package parameters

// Registry keys.
const (
	CapexMWYear     = "capex_mw_yr"
	OpexMWYear      = "opex_mw_yr"
	AnnualH2Prod    = "annual_h2_prod"
	PlantSizeMW     = "plant_size_mw"
	PlantLife       = "plant_life"
	DiscountRate    = "discount_rate"
	CapacityFactor  = "capacity_factor"
	H2Efficiency1   = "h2_efficiency_1"
	H2Efficiency2   = "h2_efficiency_2"
	ElectricityCost = "electricity_cost"
	CRF             = "crf"
	DCFFactor       = "dcf_factor"
	H2SellingPrice  = "h2_selling_price"
	CarbonTax       = "carbon_tax"
	TaxCredit       = "tax_credit"
	H2StorageCost   = "h2_storage_cost"
	H2TransportCost = "h2_transport_cost"
)

// Parameter is one tunable quantity of the model.
type Parameter struct {
	Key              string  `json:"key"`
	Label            string  `json:"label"`
	Default          float64 `json:"default"`
	Min              float64 `json:"min"`
	Max              float64 `json:"max"`
	DecisionEligible bool    `json:"decisionEligible"`
}

var registry = []Parameter{
	{Key: CapexMWYear, Label: "CAPEX [$/Mw/yr]", Default: 3242.0, Min: 0.0, Max: 999999999.0, DecisionEligible: true},
	{Key: OpexMWYear, Label: "OPEX [$/Mw/yr]", Default: 90000.0, Min: 0.0, Max: 999999999.0, DecisionEligible: true},
	{Key: AnnualH2Prod, Label: "Annual H2 Production [Kg/yr]", Default: 876000.0, Min: 0.0, Max: 999999999.0},
	{Key: PlantSizeMW, Label: "Plant Size [Mw]", Default: 100.0, Min: 0.0, Max: 999999.0},
	{Key: PlantLife, Label: "Plant Lifetime [yr]", Default: 20.0, Min: 1.0, Max: 30.0},
	{Key: DiscountRate, Label: "Discount rate [%]", Default: 5.0, Min: 0.0, Max: 15.0},
	{Key: CapacityFactor, Label: "Capacity Factor [%]", Default: 90.0, Min: 0.0, Max: 100.0, DecisionEligible: true},
	{Key: H2Efficiency1, Label: "H2 Efficiency [kWh/kg] (1)", Default: 50.0, Min: 0.0, Max: 9999.0},
	{Key: H2Efficiency2, Label: "H2 Efficiency [kWh/kg] (2)", Default: 70.0, Min: 0.0, Max: 9999.0},
	{Key: ElectricityCost, Label: "Electricity Cost [$/Mwh]", Default: 3.0, Min: 1.0, Max: 700.0, DecisionEligible: true},
	{Key: CRF, Label: "CRF", Default: 0.094392926, Min: 0.0, Max: 1.0},
	{Key: DCFFactor, Label: "DCF factor", Default: 10.59401425, Min: 0.0, Max: 999999.0},
	{Key: H2SellingPrice, Label: "H2 Selling Price [$/kg]", Default: 3.5, Min: 0.0, Max: 999999.0, DecisionEligible: true},
	{Key: CarbonTax, Label: "Carbon Tax [$/ton co2]", Default: 0.0, Min: 0.0, Max: 999999.0, DecisionEligible: true},
	{Key: TaxCredit, Label: "Tax Credit [$/kgH2]", Default: 0.0, Min: 0.0, Max: 999999.0, DecisionEligible: true},
	{Key: H2StorageCost, Label: "Hydrogen Storage Cost [$/kg]", Default: 1.0, Min: 1.0, Max: 700.0},
	{Key: H2TransportCost, Label: "Hydrogen Transportation Cost [$/kg]", Default: 0.0, Min: 0.0, Max: 999999.0},
}

var index = func() map[string]int {
	m := make(map[string]int, len(registry))
	for i, p := range registry {
		m[p.Key] = i
	}
	return m
}()

// List returns the registry in display order. The slice is a copy.
func List() []Parameter {
	out := make([]Parameter, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the registry entry for key.
func Lookup(key string) (Parameter, bool) {
	i, ok := index[key]
	if !ok {
		return Parameter{}, false
	}
	return registry[i], true
}

// Keys returns every registry key in display order.
func Keys() []string {
	keys := make([]string, len(registry))
	for i, p := range registry {
		keys[i] = p.Key
	}
	return keys
}

// Defaults returns a complete assignment holding every default value.
func Defaults() Assignment {
	a := make(Assignment, len(registry))
	for _, p := range registry {
		a[p.Key] = p.Default
	}
	return a
}

// Position returns the display index of key, or -1 for unknown keys.
func Position(key string) int {
	i, ok := index[key]
	if !ok {
		return -1
	}
	return i
}
