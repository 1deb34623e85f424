// Package dashboard folds normalized sources and aggregated entity values
// into the render-ready summary: ordered rows plus a running total.
package dashboard

import (
	"energy-dashboard/internal/model"
	"energy-dashboard/internal/pricing"
)

type Engine struct {
	format Formatter
}

func New(format Formatter) *Engine {
	return &Engine{format: format}
}

// BuildSummary produces the summary for one refresh cycle.
//
// Sources are visited in configured order, which is the declared display
// order. A source with hide_if_zero set produces no row when its quantity
// is exactly zero. The total accumulates every applicable cost;
// TotalApplicable is true iff at least one row contributed. The
// net-metering row, when configured, comes last and always contributes.
func (e *Engine) BuildSummary(
	sources []model.Source,
	nm *model.NetMetering,
	values model.EntityValues,
	states model.EntityStates,
	window model.TimeWindow,
) model.Summary {
	summary := model.Summary{
		Rows:   make([]model.Row, 0, len(sources)+1),
		Window: window,
	}

	for _, src := range sources {
		quantity := Quantity(src, values)
		if src.HideIfZero && quantity == 0 {
			continue
		}
		cost := pricing.Evaluate(src, quantity, states)
		summary.Rows = append(summary.Rows, e.buildRow(
			src.Emoji, src.Label, src.Unit, quantity, cost,
		))
		if cost.Applicable {
			summary.Total += cost.Amount
			summary.TotalApplicable = true
		}
	}

	if nm != nil {
		quantity := NetQuantity(*nm, values)
		cost := pricing.EvaluateNet(*nm, quantity, states)
		summary.Rows = append(summary.Rows, e.buildRow(
			nm.Emoji, nm.Label, nm.Unit, quantity, cost,
		))
		summary.Total += cost.Amount
		summary.TotalApplicable = true
	}

	summary.FormattedTotal = e.format.FormatCost(summary.Total)
	return summary
}

func (e *Engine) buildRow(emoji, label, unit string, quantity float64, cost pricing.Cost) model.Row {
	row := model.Row{
		Emoji:          emoji,
		Label:          label,
		Unit:           unit,
		Value:          quantity,
		FormattedValue: e.format.FormatValue(quantity),
		NegativeValue:  quantity < 0,
		Warning:        cost.Warning,
	}
	if cost.Applicable {
		row.CostApplicable = true
		row.Cost = cost.Amount
		row.FormattedCost = e.format.FormatCost(cost.Amount)
		row.Credit = cost.Amount < 0
	}
	return row
}
