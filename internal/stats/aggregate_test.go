package stats

import (
	"testing"

	"energy-dashboard/internal/model"

	"github.com/stretchr/testify/assert"
)

func sum(v float64) *float64    { return &v }
func change(v float64) *float64 { return &v }

func TestDeltaPrefersCumulativeSum(t *testing.T) {
	samples := []model.StatSample{
		{Sum: sum(10)},
		{Sum: sum(10)},
		{Sum: sum(25)},
	}
	// Last minus first; intermediate samples don't matter.
	assert.Equal(t, 15.0, Delta(samples))
}

func TestDeltaSumsChanges(t *testing.T) {
	samples := []model.StatSample{
		{Change: change(2)},
		{Change: change(3)},
		{Change: change(-1)},
	}
	assert.Equal(t, 4.0, Delta(samples))
}

func TestDeltaSumOnOneEndFallsBackToChanges(t *testing.T) {
	samples := []model.StatSample{
		{Sum: sum(100), Change: change(1)},
		{Change: change(2)},
	}
	assert.Equal(t, 3.0, Delta(samples))
}

func TestDeltaEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Delta(nil))
	assert.Equal(t, 0.0, Delta([]model.StatSample{}))
}

func TestDeltaNoUsableFields(t *testing.T) {
	assert.Equal(t, 0.0, Delta([]model.StatSample{{}, {}}))
}

func TestAggregateMissingEntityIsZero(t *testing.T) {
	series := map[string][]model.StatSample{
		"sensor.solar": {{Sum: sum(0)}, {Sum: sum(40)}},
	}
	values := Aggregate(series, []string{"sensor.solar", "sensor.gone"})
	assert.Equal(t, 40.0, values["sensor.solar"])
	assert.Equal(t, 0.0, values["sensor.gone"])
}

func TestEntityIDsDedup(t *testing.T) {
	sources := []model.Source{
		{EntityID: "sensor.solar"},
		{Derivation: &model.Derivation{ImportEntityID: "sensor.in", ExportEntityID: "sensor.out"}},
		{EntityID: "sensor.solar"}, // duplicate
		{EntityID: "sensor.in"},    // already referenced by the derivation
	}
	nm := &model.NetMetering{ImportEntityID: "sensor.in", ExportEntityID: "sensor.nm_out"}

	ids := EntityIDs(sources, nm)
	assert.Equal(t, []string{"sensor.solar", "sensor.in", "sensor.out", "sensor.nm_out"}, ids)
}

func TestRateEntityIDs(t *testing.T) {
	sources := []model.Source{
		{EntityID: "a", RateEntityID: "sensor.price"},
		{EntityID: "b", RateEntityID: "sensor.price"},
		{EntityID: "c"},
	}
	nm := &model.NetMetering{RateEntityID: "sensor.nm_price"}
	assert.Equal(t, []string{"sensor.price", "sensor.nm_price"}, RateEntityIDs(sources, nm))
}
