package models

import "energy-dashboard/internal/model"

// Row is the JSON projection of one display row.
type Row struct {
	Emoji          string  `json:"emoji"`
	Label          string  `json:"label"`
	Unit           string  `json:"unit"`
	Value          float64 `json:"value"`
	FormattedValue string  `json:"formatted_value"`
	NegativeValue  bool    `json:"negative_value"`
	CostApplicable bool    `json:"cost_applicable"`
	Cost           float64 `json:"cost"`
	FormattedCost  string  `json:"formatted_cost,omitempty"`
	Credit         bool    `json:"credit"`
	Warning        string  `json:"warning,omitempty"`
}

// SummaryResponse is the render boundary: the presentation layer turns
// this into markup.
type SummaryResponse struct {
	Rows            []Row            `json:"rows"`
	Total           float64          `json:"total"`
	TotalApplicable bool             `json:"total_applicable"`
	FormattedTotal  string           `json:"formatted_total"`
	Window          model.TimeWindow `json:"window"`
	Stale           bool             `json:"stale"`
}

func FromSummary(s model.Summary) SummaryResponse {
	rows := make([]Row, 0, len(s.Rows))
	for _, r := range s.Rows {
		rows = append(rows, Row{
			Emoji:          r.Emoji,
			Label:          r.Label,
			Unit:           r.Unit,
			Value:          r.Value,
			FormattedValue: r.FormattedValue,
			NegativeValue:  r.NegativeValue,
			CostApplicable: r.CostApplicable,
			Cost:           r.Cost,
			FormattedCost:  r.FormattedCost,
			Credit:         r.Credit,
			Warning:        r.Warning,
		})
	}
	return SummaryResponse{
		Rows:            rows,
		Total:           s.Total,
		TotalApplicable: s.TotalApplicable,
		FormattedTotal:  s.FormattedTotal,
		Window:          s.Window,
		Stale:           s.Stale,
	}
}

// SourceInfo describes one normalized source descriptor.
type SourceInfo struct {
	Kind           string   `json:"kind"`
	EntityID       string   `json:"entity_id,omitempty"`
	ImportEntityID string   `json:"import_entity_id,omitempty"`
	ExportEntityID string   `json:"export_entity_id,omitempty"`
	Label          string   `json:"label"`
	Emoji          string   `json:"emoji"`
	Unit           string   `json:"unit"`
	RateEntityID   string   `json:"rate_entity_id,omitempty"`
	RateStatic     *float64 `json:"rate_static,omitempty"`
	CostFormula    string   `json:"cost_formula,omitempty"`
	InvertCost     bool     `json:"invert_cost"`
	ShowCost       bool     `json:"show_cost"`
	HideIfZero     bool     `json:"hide_if_zero"`
}

func FromSource(s model.Source) SourceInfo {
	info := SourceInfo{
		Kind:         string(s.Kind),
		EntityID:     s.EntityID,
		Label:        s.Label,
		Emoji:        s.Emoji,
		Unit:         s.Unit,
		RateEntityID: s.RateEntityID,
		RateStatic:   s.RateStatic,
		CostFormula:  s.CostFormula,
		InvertCost:   s.InvertCost,
		ShowCost:     s.ShowCost,
		HideIfZero:   s.HideIfZero,
	}
	if s.Derivation != nil {
		info.ImportEntityID = s.Derivation.ImportEntityID
		info.ExportEntityID = s.Derivation.ExportEntityID
	}
	return info
}

// KindInfo describes one source kind and its display defaults.
type KindInfo struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Unit  string `json:"unit"`
}

// ErrorResponse wraps an API error.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
