package models

import (
	"energy-dashboard/internal/config"
	"energy-dashboard/internal/model"
)

// RenderRequest is a one-shot pipeline invocation over inline statistics,
// for hosts that push data instead of being polled. Sources use the same
// shape as the YAML config.
type RenderRequest struct {
	Sources     []config.SourceConfig     `json:"sources"`
	NetMetering *config.NetMeteringConfig `json:"net_metering,omitempty"`

	Statistics map[string][]model.StatSample `json:"statistics"`
	States     map[string]string             `json:"states,omitempty"`

	Format *config.Format    `json:"format,omitempty"`
	Window *model.TimeWindow `json:"window,omitempty"`
}
