package session

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iwvelando/lcoh-model/internal/parameters"
)

func TestNewSessionMatchesRegistry(t *testing.T) {
	s := New()

	if diff := cmp.Diff(parameters.Defaults(), s.Assignment()); diff != "" {
		t.Errorf("assignment differs from defaults (-want +got):\n%s", diff)
	}

	wantKeys := []string{
		parameters.CapexMWYear,
		parameters.OpexMWYear,
		parameters.CapacityFactor,
		parameters.ElectricityCost,
		parameters.H2SellingPrice,
		parameters.CarbonTax,
		parameters.TaxCredit,
	}
	if diff := cmp.Diff(wantKeys, s.DecisionSet().Keys()); diff != "" {
		t.Errorf("decision keys differ (-want +got):\n%s", diff)
	}

	if warnings := s.Warnings(); len(warnings) != 0 {
		t.Errorf("expected no warnings for defaults, got %v", warnings)
	}
}

func TestDecisionSetUsesOverrides(t *testing.T) {
	s := New()
	for _, key := range s.DecisionSet().Keys() {
		if err := s.SetInOptimization(key, false); err != nil {
			t.Fatalf("SetInOptimization(%s): %v", key, err)
		}
	}
	if len(s.DecisionSet()) != 0 {
		t.Fatalf("expected empty decision set, got %v", s.DecisionSet())
	}

	if err := s.SetInOptimization(parameters.ElectricityCost, true); err != nil {
		t.Fatal(err)
	}
	if err := s.SetBounds(parameters.ElectricityCost, 2, 50); err != nil {
		t.Fatal(err)
	}
	if err := s.SetValue(parameters.ElectricityCost, 10); err != nil {
		t.Fatal(err)
	}

	want := parameters.DecisionSet{{Key: parameters.ElectricityCost, Lower: 2, Upper: 50, Initial: 10}}
	if diff := cmp.Diff(want, s.DecisionSet()); diff != "" {
		t.Errorf("decision set differs (-want +got):\n%s", diff)
	}
}

func TestDecisionSetFollowsRegistryOrder(t *testing.T) {
	s := New()
	if err := s.SetInOptimization(parameters.H2TransportCost, true); err != nil {
		t.Fatal(err)
	}
	if err := s.SetInOptimization(parameters.AnnualH2Prod, true); err != nil {
		t.Fatal(err)
	}

	keys := s.DecisionSet().Keys()
	if keys[2] != parameters.AnnualH2Prod {
		t.Errorf("expected annual_h2_prod third, got %v", keys)
	}
	if keys[len(keys)-1] != parameters.H2TransportCost {
		t.Errorf("expected h2_transport_cost last, got %v", keys)
	}
}

func TestUnknownKeysAreRejected(t *testing.T) {
	s := New()
	if err := s.SetValue("nope", 1); err == nil {
		t.Error("expected SetValue to reject unknown key")
	}
	if err := s.SetBounds("nope", 0, 1); err == nil {
		t.Error("expected SetBounds to reject unknown key")
	}
	if err := s.SetInOptimization("nope", true); err == nil {
		t.Error("expected SetInOptimization to reject unknown key")
	}
	if err := s.Apply(map[string]float64{"nope": 1, parameters.CRF: 0.5}); err == nil {
		t.Error("expected Apply to reject unknown key")
	}
	if v, _ := s.Value(parameters.CRF); v != 0.094392926 {
		t.Errorf("Apply partially applied a rejected update: crf = %v", v)
	}
}

func TestAssignmentIsACopy(t *testing.T) {
	s := New()
	a := s.Assignment()
	a[parameters.CRF] = 0.5

	if v, _ := s.Value(parameters.CRF); v != 0.094392926 {
		t.Errorf("session mutated through Assignment(): crf = %v", v)
	}
}

func TestWarningsKeepInputs(t *testing.T) {
	s := New()
	if err := s.SetBounds(parameters.ElectricityCost, 700, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.SetValue(parameters.PlantLife, 45); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMin(parameters.CarbonTax, 5); err != nil {
		t.Fatal(err)
	}

	warnings := s.Warnings()
	if len(warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %d: %v", len(warnings), warnings)
	}

	b, err := s.Bounds(parameters.ElectricityCost)
	if err != nil {
		t.Fatal(err)
	}
	if b.Min != 700 || b.Max != 1 {
		t.Errorf("inverted bounds were altered: %+v", b)
	}
	if v, _ := s.Value(parameters.PlantLife); v != 45 {
		t.Errorf("out-of-range value was altered: %v", v)
	}
}

func TestRows(t *testing.T) {
	s := New()
	if err := s.SetMax(parameters.ElectricityCost, 100); err != nil {
		t.Fatal(err)
	}

	rows := s.Rows()
	if len(rows) != len(parameters.List()) {
		t.Fatalf("expected %d rows, got %d", len(parameters.List()), len(rows))
	}
	row := rows[parameters.Position(parameters.ElectricityCost)]
	want := Row{
		Key:            parameters.ElectricityCost,
		Label:          "Electricity Cost [$/Mwh]",
		Value:          3,
		Min:            1,
		Max:            100,
		InOptimization: true,
	}
	if diff := cmp.Diff(want, row); diff != "" {
		t.Errorf("row differs (-want +got):\n%s", diff)
	}
}
