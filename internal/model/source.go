package model

import "fmt"

// SourceKind is a closed enumeration of the utility kinds the dashboard
// understands. Keep these values stable; they appear in YAML configs.
type SourceKind string

const (
	KindSolar      SourceKind = "solar"
	KindBatteryIn  SourceKind = "battery_in"
	KindBatteryOut SourceKind = "battery_out"
	KindGridImport SourceKind = "grid_import"
	KindGridExport SourceKind = "grid_export"
	KindGridNet    SourceKind = "grid_net"
	KindGas        SourceKind = "gas"
	KindWater      SourceKind = "water"
	KindCustom     SourceKind = "custom"
)

// KindDefaults holds the display fields filled in for a source when the
// config leaves them blank.
type KindDefaults struct {
	Label string
	Emoji string
	Unit  string
}

// kindDefaults is exhaustive over SourceKind. Adding a kind without an
// entry here is caught by TestKindDefaultsExhaustive.
var kindDefaults = map[SourceKind]KindDefaults{
	KindSolar:      {Label: "Solar", Emoji: "☀️", Unit: "kWh"},
	KindBatteryIn:  {Label: "Battery In", Emoji: "🔋", Unit: "kWh"},
	KindBatteryOut: {Label: "Battery Out", Emoji: "🔋", Unit: "kWh"},
	KindGridImport: {Label: "Grid Import", Emoji: "⚡", Unit: "kWh"},
	KindGridExport: {Label: "Grid Export", Emoji: "⚡", Unit: "kWh"},
	KindGridNet:    {Label: "Grid", Emoji: "⚡", Unit: "kWh"},
	KindGas:        {Label: "Gas", Emoji: "🔥", Unit: "m³"},
	KindWater:      {Label: "Water", Emoji: "💧", Unit: "L"},
	KindCustom:     {Label: "Custom", Emoji: "📊", Unit: "kWh"},
}

// AllKinds returns the known kinds in a stable order.
func AllKinds() []SourceKind {
	return []SourceKind{
		KindSolar, KindBatteryIn, KindBatteryOut,
		KindGridImport, KindGridExport, KindGridNet,
		KindGas, KindWater, KindCustom,
	}
}

// ParseKind validates a config-supplied kind string. An empty string maps
// to KindCustom; anything else must match a known kind exactly.
func ParseKind(s string) (SourceKind, error) {
	if s == "" {
		return KindCustom, nil
	}
	k := SourceKind(s)
	if _, ok := kindDefaults[k]; !ok {
		return "", fmt.Errorf("unknown source kind %q", s)
	}
	return k, nil
}

// DefaultsFor returns the display defaults for a kind.
func DefaultsFor(k SourceKind) KindDefaults {
	return kindDefaults[k]
}

// Derivation computes a source's quantity as import minus export instead of
// reading a single entity.
type Derivation struct {
	ImportEntityID string
	ExportEntityID string
}

// Source is one fully-normalized energy source. Label, Emoji and Unit are
// always non-empty after normalization; the config package is the sole
// writer of these defaults.
type Source struct {
	Kind       SourceKind
	EntityID   string
	Derivation *Derivation

	Label string
	Emoji string
	Unit  string

	RateEntityID string
	RateStatic   *float64
	CostFormula  string

	InvertCost bool
	ShowCost   bool
	HideIfZero bool
}

// NetMetering is the optional combined import-minus-export source. It is
// computed after ordinary sources, always shown, and always totals.
type NetMetering struct {
	ImportEntityID string
	ExportEntityID string

	RateEntityID string
	RateStatic   *float64

	Label string
	Emoji string
	Unit  string
}
