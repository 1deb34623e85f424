package config

import (
	"fmt"
	"os"
	"time"

	"energy-dashboard/internal/model"

	"gopkg.in/yaml.v3"
)

// ConfigError marks a fatal, user-visible misconfiguration. No partial
// operation is attempted when one is raised.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "config: " + e.Msg }

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Period selects the default window when no external date selection is
	// active: today|yesterday|week|month|year. Defaults to "today".
	Period string `yaml:"period"`

	Format      Format             `yaml:"format"`
	Host        Host               `yaml:"host"`
	Sources     []SourceConfig     `yaml:"sources"`
	NetMetering *NetMeteringConfig `yaml:"net_metering"`
}

// Format controls number and currency rendering.
type Format struct {
	Currency      string `yaml:"currency" json:"currency,omitempty"`
	ValueDecimals *int   `yaml:"value_decimals" json:"value_decimals,omitempty"`
	CostDecimals  *int   `yaml:"cost_decimals" json:"cost_decimals,omitempty"`
}

// Host describes the upstream statistics connection.
type Host struct {
	URL            string `yaml:"url"`
	Token          string `yaml:"token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (h Host) Timeout() time.Duration {
	if h.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(h.TimeoutSeconds) * time.Second
}

// SourceConfig is one partially-specified source as written by the user.
// Missing display fields are filled from kind defaults during Normalize.
type SourceConfig struct {
	Kind     string `yaml:"kind" json:"kind,omitempty"`
	EntityID string `yaml:"entity_id" json:"entity_id,omitempty"`

	// When both import and export ids are set the source is derived as
	// import minus export and entity_id is ignored.
	ImportEntityID string `yaml:"import_entity_id" json:"import_entity_id,omitempty"`
	ExportEntityID string `yaml:"export_entity_id" json:"export_entity_id,omitempty"`

	Label string `yaml:"label" json:"label,omitempty"`
	Emoji string `yaml:"emoji" json:"emoji,omitempty"`
	Unit  string `yaml:"unit" json:"unit,omitempty"`

	RateEntityID string   `yaml:"rate_entity_id" json:"rate_entity_id,omitempty"`
	RateStatic   *float64 `yaml:"rate_static" json:"rate_static,omitempty"`
	CostFormula  string   `yaml:"cost_formula" json:"cost_formula,omitempty"`

	InvertCost bool  `yaml:"invert_cost" json:"invert_cost,omitempty"`
	ShowCost   *bool `yaml:"show_cost" json:"show_cost,omitempty"`
	HideIfZero bool  `yaml:"hide_if_zero" json:"hide_if_zero,omitempty"`
}

// NetMeteringConfig is the optional combined import/export source.
type NetMeteringConfig struct {
	ImportEntityID string `yaml:"import_entity_id" json:"import_entity_id,omitempty"`
	ExportEntityID string `yaml:"export_entity_id" json:"export_entity_id,omitempty"`

	RateEntityID string   `yaml:"rate_entity_id" json:"rate_entity_id,omitempty"`
	RateStatic   *float64 `yaml:"rate_static" json:"rate_static,omitempty"`

	Label string `yaml:"label" json:"label,omitempty"`
	Emoji string `yaml:"emoji" json:"emoji,omitempty"`
	Unit  string `yaml:"unit" json:"unit,omitempty"`
}

// Load reads, defaults and validates a YAML config.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Format.Currency == "" {
		c.Format.Currency = "$"
	}
	if c.Format.ValueDecimals == nil {
		d := 2
		c.Format.ValueDecimals = &d
	}
	if c.Format.CostDecimals == nil {
		d := 2
		c.Format.CostDecimals = &d
	}
}

// Validate checks the period keyword, the source list and the optional
// net-metering block. It runs Normalize so a Config that validates is
// guaranteed to normalize.
func (c *Config) Validate() error {
	if _, err := model.ParsePeriod(c.Period); err != nil {
		return configErrorf("%v", err)
	}
	if _, err := Normalize(c.Sources); err != nil {
		return err
	}
	if c.NetMetering != nil {
		if c.NetMetering.ImportEntityID == "" || c.NetMetering.ExportEntityID == "" {
			return configErrorf("net_metering requires both import_entity_id and export_entity_id")
		}
	}
	return nil
}

// Normalize expands the user-supplied source list into fully-specified
// descriptors. Order is preserved; explicit values always beat defaults.
// It does not check that referenced entities exist: unresolved entities are
// a runtime concern and degrade to zero values with a warning.
//
// Pure and idempotent: normalizing an already-normalized list is a no-op.
func Normalize(sources []SourceConfig) ([]model.Source, error) {
	if len(sources) == 0 {
		return nil, configErrorf("at least one source must be configured")
	}

	out := make([]model.Source, 0, len(sources))
	for i, sc := range sources {
		kind, err := model.ParseKind(sc.Kind)
		if err != nil {
			return nil, configErrorf("source %d: %v", i, err)
		}

		src := model.Source{
			Kind:         kind,
			EntityID:     sc.EntityID,
			RateEntityID: sc.RateEntityID,
			RateStatic:   sc.RateStatic,
			CostFormula:  sc.CostFormula,
			InvertCost:   sc.InvertCost,
			ShowCost:     sc.ShowCost == nil || *sc.ShowCost,
			HideIfZero:   sc.HideIfZero,
		}

		switch {
		case sc.ImportEntityID != "" && sc.ExportEntityID != "":
			src.Derivation = &model.Derivation{
				ImportEntityID: sc.ImportEntityID,
				ExportEntityID: sc.ExportEntityID,
			}
		case sc.ImportEntityID != "" || sc.ExportEntityID != "":
			return nil, configErrorf("source %d: derived sources need both import_entity_id and export_entity_id", i)
		case sc.EntityID == "":
			return nil, configErrorf("source %d: entity_id is required unless import/export ids are set", i)
		}

		defaults := model.DefaultsFor(kind)
		src.Label = firstNonEmpty(sc.Label, defaults.Label)
		src.Emoji = firstNonEmpty(sc.Emoji, defaults.Emoji)
		src.Unit = firstNonEmpty(sc.Unit, defaults.Unit)

		out = append(out, src)
	}
	return out, nil
}

// NormalizeNetMetering fills display defaults for the net-metering block.
// Returns nil when the block is absent.
func NormalizeNetMetering(nm *NetMeteringConfig) *model.NetMetering {
	if nm == nil {
		return nil
	}
	defaults := model.DefaultsFor(model.KindGridNet)
	return &model.NetMetering{
		ImportEntityID: nm.ImportEntityID,
		ExportEntityID: nm.ExportEntityID,
		RateEntityID:   nm.RateEntityID,
		RateStatic:     nm.RateStatic,
		Label:          firstNonEmpty(nm.Label, "Net Metering"),
		Emoji:          firstNonEmpty(nm.Emoji, defaults.Emoji),
		Unit:           firstNonEmpty(nm.Unit, defaults.Unit),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
