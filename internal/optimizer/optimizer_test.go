package optimizer

import (
	"errors"
	"testing"

	"github.com/iwvelando/lcoh-model/internal/config"
	"github.com/iwvelando/lcoh-model/internal/parameters"
	"github.com/iwvelando/lcoh-model/internal/session"
	"github.com/iwvelando/lcoh-model/internal/valuation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRunner() *Runner {
	return NewRunner(zap.NewNop(), config.OptimizerConfig{
		MaxIterations:   5000,
		Tolerance:       1e-12,
		StallIterations: 50,
	})
}

func single(key string, lower, upper, initial float64) parameters.DecisionSet {
	return parameters.DecisionSet{{Key: key, Lower: lower, Upper: upper, Initial: initial}}
}

func TestOptimizeEmptyDecisionSet(t *testing.T) {
	fixed := parameters.Defaults()
	want, err := valuation.Evaluate(fixed)
	require.NoError(t, err)

	outcome, err := testRunner().Optimize(fixed, nil, true)
	require.NoError(t, err)

	assert.True(t, outcome.Converged)
	assert.Empty(t, outcome.Values)
	assert.Equal(t, want, outcome.Result)
	assert.Equal(t, 0, outcome.Evaluations)
}

func TestOptimizeElectricityCostGoesToLowerBound(t *testing.T) {
	fixed := parameters.Defaults()
	base, err := valuation.Evaluate(fixed)
	require.NoError(t, err)

	outcome, err := testRunner().Optimize(fixed, single(parameters.ElectricityCost, 1, 700, 3), false)
	require.NoError(t, err)

	require.True(t, outcome.Converged, outcome.Message)
	assert.InDelta(t, 1, outcome.Values[parameters.ElectricityCost], 1e-3)
	assert.GreaterOrEqual(t, outcome.Result.NPV, base.NPV)
	assert.Greater(t, outcome.Evaluations, 0)

	require.Len(t, outcome.Summaries, 1)
	s := outcome.Summaries[0]
	assert.Equal(t, parameters.ElectricityCost, s.Key)
	assert.Equal(t, "Electricity Cost [$/Mwh]", s.Label)
	assert.Equal(t, 3.0, s.Original)
	assert.True(t, s.AtBound(1e-3))
}

func TestOptimizeSellingPriceGoesToUpperBound(t *testing.T) {
	outcome, err := testRunner().Optimize(parameters.Defaults(), single(parameters.H2SellingPrice, 0, 10, 3.5), true)
	require.NoError(t, err)

	require.True(t, outcome.Converged, outcome.Message)
	assert.InDelta(t, 10, outcome.Values[parameters.H2SellingPrice], 1e-4)
	assert.True(t, outcome.Result.Feasible)
	assert.Equal(t, valuation.MoneyLabel, outcome.Result.MoneyCheck())
}

func TestOptimizeEnforcedInfeasibleReportsFailure(t *testing.T) {
	outcome, err := testRunner().Optimize(parameters.Defaults(), single(parameters.ElectricityCost, 600, 700, 650), true)
	require.NoError(t, err)

	assert.False(t, outcome.Converged)
	assert.Contains(t, outcome.Message, "no feasible point")
	assert.False(t, outcome.Result.Feasible)

	v := outcome.Values[parameters.ElectricityCost]
	assert.GreaterOrEqual(t, v, 600.0)
	assert.LessOrEqual(t, v, 700.0)
}

func TestOptimizeUnenforcedInfeasibleStillConverges(t *testing.T) {
	outcome, err := testRunner().Optimize(parameters.Defaults(), single(parameters.ElectricityCost, 600, 700, 650), false)
	require.NoError(t, err)

	require.True(t, outcome.Converged, outcome.Message)
	assert.InDelta(t, 600, outcome.Values[parameters.ElectricityCost], 1e-3)
	assert.False(t, outcome.Result.Feasible)
}

func TestOptimizeNeverConvergedAndInfeasibleWhenEnforced(t *testing.T) {
	s := session.New()
	fixed := s.Assignment()
	set := s.DecisionSet()
	require.NotEmpty(t, set)

	outcome, err := NewRunner(nil, config.OptimizerConfig{MaxIterations: 300}).Optimize(fixed, set, true)
	require.NoError(t, err)

	if outcome.Converged {
		assert.True(t, outcome.Result.Feasible)
	}
	for _, v := range set {
		got := outcome.Values[v.Key]
		assert.GreaterOrEqual(t, got, v.Lower, v.Key)
		assert.LessOrEqual(t, got, v.Upper, v.Key)
	}
}

func TestOptimizeZeroWidthAndInvertedBounds(t *testing.T) {
	set := parameters.DecisionSet{
		{Key: parameters.H2SellingPrice, Lower: 5, Upper: 5, Initial: 5},
		{Key: parameters.ElectricityCost, Lower: 700, Upper: 1, Initial: 3},
	}

	outcome, err := testRunner().Optimize(parameters.Defaults(), set, false)
	require.NoError(t, err)

	assert.Equal(t, 5.0, outcome.Values[parameters.H2SellingPrice])
	elec := outcome.Values[parameters.ElectricityCost]
	assert.GreaterOrEqual(t, elec, 1.0)
	assert.LessOrEqual(t, elec, 700.0)
	assert.InDelta(t, 1, elec, 1e-2)
}

func TestOptimizeDoesNotMutateFixed(t *testing.T) {
	fixed := parameters.Defaults()
	before := fixed.Clone()

	_, err := testRunner().Optimize(fixed, single(parameters.ElectricityCost, 1, 700, 3), false)
	require.NoError(t, err)

	assert.Equal(t, before, fixed)
}

func TestOptimizeMissingParameter(t *testing.T) {
	fixed := parameters.Defaults()
	delete(fixed, parameters.CRF)

	_, err := testRunner().Optimize(fixed, single(parameters.ElectricityCost, 1, 700, 3), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, parameters.ErrMissingParameter))
}

func TestOptimizeUnknownDecisionVariable(t *testing.T) {
	_, err := testRunner().Optimize(parameters.Defaults(), single("bogus", 0, 1, 0), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestNewRunnerAppliesDefaults(t *testing.T) {
	r := NewRunner(nil, config.OptimizerConfig{})
	assert.NotNil(t, r.logger)
	assert.Greater(t, r.settings.MaxIterations, 0)
	assert.Greater(t, r.settings.PenaltyRounds, 0)
}
