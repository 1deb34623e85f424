package pricing

import (
	"testing"

	"energy-dashboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(v float64) *float64 { return &v }

func TestResolveRateOrder(t *testing.T) {
	states := model.EntityStates{"sensor.price": "0.25"}

	r := Resolve("sensor.price", rate(0.10), states)
	assert.Equal(t, 0.25, r.PerUnit)
	assert.Equal(t, RateFromEntity, r.Provenance)
	assert.Empty(t, r.Warning)

	r = Resolve("", rate(0.10), states)
	assert.Equal(t, 0.10, r.PerUnit)
	assert.Equal(t, RateFromStatic, r.Provenance)

	r = Resolve("", nil, states)
	assert.Equal(t, 0.0, r.PerUnit)
	assert.Equal(t, RateNone, r.Provenance)
}

func TestResolveRateUnparseableEntityWarns(t *testing.T) {
	states := model.EntityStates{"sensor.price": "unavailable"}

	// Falls back to the static rate and warns.
	r := Resolve("sensor.price", rate(0.10), states)
	assert.Equal(t, 0.10, r.PerUnit)
	assert.Equal(t, RateFromStatic, r.Provenance)
	assert.NotEmpty(t, r.Warning)

	// No static fallback: rate 0 and a warning, never an error.
	r = Resolve("sensor.price", nil, states)
	assert.Equal(t, 0.0, r.PerUnit)
	assert.Equal(t, RateNone, r.Provenance)
	assert.NotEmpty(t, r.Warning)

	// Missing entity state counts as unresolved too.
	r = Resolve("sensor.absent", nil, states)
	assert.Equal(t, RateNone, r.Provenance)
	assert.NotEmpty(t, r.Warning)
}

func TestEvaluateDefaultCost(t *testing.T) {
	src := model.Source{Label: "Grid", ShowCost: true, RateStatic: rate(0.20)}

	cost := Evaluate(src, 10, nil)
	require.True(t, cost.Applicable)
	assert.InDelta(t, 2.0, cost.Amount, 1e-9)

	src.InvertCost = true
	cost = Evaluate(src, 10, nil)
	require.True(t, cost.Applicable)
	assert.InDelta(t, -2.0, cost.Amount, 1e-9)
}

func TestEvaluateShowCostFalse(t *testing.T) {
	src := model.Source{Label: "Solar", ShowCost: false, RateStatic: rate(0.20)}
	cost := Evaluate(src, 10, nil)
	assert.False(t, cost.Applicable)
}

func TestEvaluateFormula(t *testing.T) {
	src := model.Source{
		Label:       "Gas",
		ShowCost:    true,
		RateStatic:  rate(0.2),
		CostFormula: "value * rate + 5",
	}
	cost := Evaluate(src, 10, nil)
	require.True(t, cost.Applicable)
	assert.InDelta(t, 7.0, cost.Amount, 1e-9)
}

func TestEvaluateFormulaWithInvert(t *testing.T) {
	src := model.Source{
		Label:       "Export",
		ShowCost:    true,
		RateStatic:  rate(0.1),
		CostFormula: "value * rate",
		InvertCost:  true,
	}
	cost := Evaluate(src, 30, nil)
	require.True(t, cost.Applicable)
	assert.InDelta(t, -3.0, cost.Amount, 1e-9)
}

func TestEvaluateMalformedFormulaNotApplicable(t *testing.T) {
	src := model.Source{
		Label:       "Gas",
		ShowCost:    true,
		RateStatic:  rate(0.2),
		CostFormula: "value ** rate",
	}
	cost := Evaluate(src, 10, nil)
	assert.False(t, cost.Applicable)
	assert.NotEmpty(t, cost.Warning)
}

func TestEvaluateCarriesRateWarning(t *testing.T) {
	src := model.Source{
		Label:        "Grid",
		ShowCost:     true,
		RateEntityID: "sensor.price",
	}
	cost := Evaluate(src, 10, model.EntityStates{"sensor.price": "unknown"})
	require.True(t, cost.Applicable, "computation proceeds with rate 0")
	assert.Equal(t, 0.0, cost.Amount)
	assert.NotEmpty(t, cost.Warning)
}

func TestEvaluateNet(t *testing.T) {
	nm := model.NetMetering{Label: "Net", RateStatic: rate(0.30)}

	cost := EvaluateNet(nm, -20, nil)
	require.True(t, cost.Applicable, "net metering is never suppressed")
	assert.InDelta(t, -6.0, cost.Amount, 1e-9)

	// Rate-entity resolution applies the same policy.
	nm = model.NetMetering{Label: "Net", RateEntityID: "sensor.price"}
	cost = EvaluateNet(nm, 10, model.EntityStates{"sensor.price": "0.5"})
	assert.InDelta(t, 5.0, cost.Amount, 1e-9)
}
