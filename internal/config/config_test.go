package config

import (
	"os"
	"path/filepath"
	"testing"

	"energy-dashboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	sources, err := Normalize([]SourceConfig{
		{Kind: "solar", EntityID: "sensor.solar"},
		{Kind: "gas", EntityID: "sensor.gas", Label: "Boiler", Unit: "kWh"},
		{EntityID: "sensor.misc"},
	})
	require.NoError(t, err)
	require.Len(t, sources, 3)

	assert.Equal(t, model.KindSolar, sources[0].Kind)
	assert.Equal(t, "Solar", sources[0].Label)
	assert.Equal(t, "☀️", sources[0].Emoji)
	assert.Equal(t, "kWh", sources[0].Unit)
	assert.True(t, sources[0].ShowCost, "show_cost defaults to true")

	// Explicit values beat defaults; omitted ones are still filled.
	assert.Equal(t, "Boiler", sources[1].Label)
	assert.Equal(t, "kWh", sources[1].Unit)
	assert.Equal(t, "🔥", sources[1].Emoji)

	// Missing kind maps to custom.
	assert.Equal(t, model.KindCustom, sources[2].Kind)

	for _, s := range sources {
		assert.NotEmpty(t, s.Label)
		assert.NotEmpty(t, s.Emoji)
		assert.NotEmpty(t, s.Unit)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	in := []SourceConfig{{Kind: "water", EntityID: "sensor.water"}}
	first, err := Normalize(in)
	require.NoError(t, err)
	second, err := Normalize(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalizeEmptyFails(t *testing.T) {
	_, err := Normalize(nil)
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = Normalize([]SourceConfig{})
	assert.ErrorAs(t, err, &cfgErr)
}

func TestNormalizeRejectsUnknownKind(t *testing.T) {
	_, err := Normalize([]SourceConfig{{Kind: "plutonium", EntityID: "sensor.x"}})
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestNormalizeDerivation(t *testing.T) {
	sources, err := Normalize([]SourceConfig{{
		Kind:           "grid_net",
		ImportEntityID: "sensor.in",
		ExportEntityID: "sensor.out",
	}})
	require.NoError(t, err)
	require.NotNil(t, sources[0].Derivation)
	assert.Equal(t, "sensor.in", sources[0].Derivation.ImportEntityID)
	assert.Equal(t, "sensor.out", sources[0].Derivation.ExportEntityID)

	// One-sided derivation is a config error.
	_, err = Normalize([]SourceConfig{{Kind: "grid_net", ImportEntityID: "sensor.in"}})
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	// No entity and no derivation is too.
	_, err = Normalize([]SourceConfig{{Kind: "solar"}})
	assert.ErrorAs(t, err, &cfgErr)
}

func TestNormalizePreservesOrder(t *testing.T) {
	sources, err := Normalize([]SourceConfig{
		{Kind: "water", EntityID: "a"},
		{Kind: "solar", EntityID: "b"},
		{Kind: "gas", EntityID: "c"},
	})
	require.NoError(t, err)
	assert.Equal(t, []model.SourceKind{model.KindWater, model.KindSolar, model.KindGas},
		[]model.SourceKind{sources[0].Kind, sources[1].Kind, sources[2].Kind})
}

func TestNormalizeNetMetering(t *testing.T) {
	nm := NormalizeNetMetering(&NetMeteringConfig{
		ImportEntityID: "sensor.in",
		ExportEntityID: "sensor.out",
	})
	require.NotNil(t, nm)
	assert.Equal(t, "Net Metering", nm.Label)
	assert.NotEmpty(t, nm.Emoji)
	assert.Equal(t, "kWh", nm.Unit)

	assert.Nil(t, NormalizeNetMetering(nil))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
period: week
format:
  currency: "€"
  cost_decimals: 3
sources:
  - kind: solar
    entity_id: sensor.solar
  - kind: grid_import
    entity_id: sensor.grid_in
    rate_static: 0.31
net_metering:
  import_entity_id: sensor.grid_in
  export_entity_id: sensor.grid_out
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "week", cfg.Period)
	assert.Equal(t, "€", cfg.Format.Currency)
	assert.Equal(t, 3, *cfg.Format.CostDecimals)
	assert.Equal(t, 2, *cfg.Format.ValueDecimals, "value decimals default")
	require.Len(t, cfg.Sources, 2)
	require.NotNil(t, cfg.Sources[1].RateStatic)
	assert.Equal(t, 0.31, *cfg.Sources[1].RateStatic)
}

func TestLoadRejectsEmptySources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("period: today\n"), 0o644))

	_, err := Load(path)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadRejectsHalfNetMetering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sources:
  - kind: solar
    entity_id: sensor.solar
net_metering:
  import_entity_id: sensor.grid_in
`), 0o644))

	_, err := Load(path)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
