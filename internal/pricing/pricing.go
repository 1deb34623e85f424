// Package pricing turns a (source, quantity) pair into a signed monetary
// amount using the configured rate and optional formula override.
package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"energy-dashboard/internal/expr"
	"energy-dashboard/internal/model"

	log "github.com/sirupsen/logrus"
)

// RateProvenance records where a resolved rate came from.
type RateProvenance string

const (
	RateFromEntity RateProvenance = "entity"
	RateFromStatic RateProvenance = "static"
	RateNone       RateProvenance = "none"
)

// Rate is the result of rate resolution for one source.
type Rate struct {
	PerUnit    float64
	Provenance RateProvenance

	// Warning is set when a rate entity was configured but its state was
	// missing or non-numeric. The computation still proceeds with rate 0.
	Warning string
}

// Resolve picks a rate in priority order: numeric rate-entity state, then
// static rate, then 0.
func Resolve(rateEntityID string, rateStatic *float64, states model.EntityStates) Rate {
	if rateEntityID != "" {
		if state, ok := states[rateEntityID]; ok {
			if v, err := strconv.ParseFloat(strings.TrimSpace(state), 64); err == nil {
				return Rate{PerUnit: v, Provenance: RateFromEntity}
			}
		}
		// Configured but unresolved: fall through, but surface a warning.
		if rateStatic != nil {
			return Rate{
				PerUnit:    *rateStatic,
				Provenance: RateFromStatic,
				Warning:    fmt.Sprintf("rate entity %s has no numeric state, using static rate", rateEntityID),
			}
		}
		return Rate{
			Provenance: RateNone,
			Warning:    fmt.Sprintf("rate entity %s has no numeric state", rateEntityID),
		}
	}
	if rateStatic != nil {
		return Rate{PerUnit: *rateStatic, Provenance: RateFromStatic}
	}
	return Rate{Provenance: RateNone}
}

// Cost is the outcome of cost evaluation for one row. Applicable is false
// when cost display is suppressed or the formula failed.
type Cost struct {
	Applicable bool
	Amount     float64
	Warning    string
}

// Evaluate computes the cost of quantity units of src. A malformed custom
// formula marks the cost not applicable and is logged; it never aborts the
// pipeline.
func Evaluate(src model.Source, quantity float64, states model.EntityStates) Cost {
	if !src.ShowCost {
		return Cost{}
	}

	rate := Resolve(src.RateEntityID, src.RateStatic, states)
	amount := quantity * rate.PerUnit

	if src.CostFormula != "" {
		v, err := expr.Eval(src.CostFormula, map[string]float64{
			"value": quantity,
			"rate":  rate.PerUnit,
		})
		if err != nil {
			log.Printf("[Pricing] %s: cost formula failed: %v", src.Label, err)
			return Cost{Warning: fmt.Sprintf("cost formula failed: %v", err)}
		}
		amount = v
	}

	if src.InvertCost {
		amount = -amount
	}
	return Cost{Applicable: true, Amount: amount, Warning: rate.Warning}
}

// EvaluateNet prices the net-metering quantity. The same rate-resolution
// policy applies, but net metering supports no formula override and is
// never suppressed.
func EvaluateNet(nm model.NetMetering, quantity float64, states model.EntityStates) Cost {
	rate := Resolve(nm.RateEntityID, nm.RateStatic, states)
	return Cost{
		Applicable: true,
		Amount:     quantity * rate.PerUnit,
		Warning:    rate.Warning,
	}
}
