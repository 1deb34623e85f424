// Package stats reduces raw statistic samples into per-entity deltas for
// the active window.
package stats

import "energy-dashboard/internal/model"

// Delta folds an ordered sample sequence into a single net change.
//
// When both the first and last sample carry a cumulative sum, the delta is
// last minus first; this is robust to missing intermediate samples and is
// preferred. Otherwise per-bucket changes are summed. A sequence with
// neither field, or an empty sequence, yields 0 — absence of statistics is
// a normal condition for inactive sensors, not an error.
func Delta(samples []model.StatSample) float64 {
	if len(samples) == 0 {
		return 0
	}

	first, last := samples[0], samples[len(samples)-1]
	if first.Sum != nil && last.Sum != nil {
		return *last.Sum - *first.Sum
	}

	total := 0.0
	for _, s := range samples {
		if s.Change != nil {
			total += *s.Change
		}
	}
	return total
}

// Aggregate computes a delta for each requested entity. Entities missing
// from the series map report 0.
func Aggregate(series map[string][]model.StatSample, entityIDs []string) model.EntityValues {
	values := make(model.EntityValues, len(entityIDs))
	for _, id := range entityIDs {
		values[id] = Delta(series[id])
	}
	return values
}

// EntityIDs returns the de-duplicated union of statistics entities the
// descriptor set references: direct ids, both derivation sides, and the
// net-metering pair. Order follows first reference, so fetches are stable
// across refreshes.
func EntityIDs(sources []model.Source, nm *model.NetMetering) []string {
	seen := map[string]bool{}
	var ids []string
	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}

	for _, src := range sources {
		if src.Derivation != nil {
			add(src.Derivation.ImportEntityID)
			add(src.Derivation.ExportEntityID)
			continue
		}
		add(src.EntityID)
	}
	if nm != nil {
		add(nm.ImportEntityID)
		add(nm.ExportEntityID)
	}
	return ids
}

// RateEntityIDs returns the de-duplicated rate entities whose current
// states are needed to price the descriptor set.
func RateEntityIDs(sources []model.Source, nm *model.NetMetering) []string {
	seen := map[string]bool{}
	var ids []string
	for _, src := range sources {
		if src.RateEntityID != "" && !seen[src.RateEntityID] {
			seen[src.RateEntityID] = true
			ids = append(ids, src.RateEntityID)
		}
	}
	if nm != nil && nm.RateEntityID != "" && !seen[nm.RateEntityID] {
		ids = append(ids, nm.RateEntityID)
	}
	return ids
}
