package data

import (
	"context"
	"encoding/json"
	"os"

	"energy-dashboard/internal/model"
)

// Fixture is a statistics snapshot loaded from disk, used by the CLI, the
// demo and tests so the pipeline runs without a live host.
type Fixture struct {
	Statistics map[string][]model.StatSample `json:"statistics"`
	States     map[string]string             `json:"states"`
}

func LoadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f Fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// FetchStatistics returns the fixture samples clipped to the window. A
// sample with a zero start time is always included, so hand-written
// fixtures don't need timestamps.
func (f *Fixture) FetchStatistics(_ context.Context, entityIDs []string, window model.TimeWindow) (map[string][]model.StatSample, error) {
	out := make(map[string][]model.StatSample, len(entityIDs))
	for _, id := range entityIDs {
		for _, s := range f.Statistics[id] {
			if s.Start.IsZero() || (!s.Start.Before(window.Start) && s.Start.Before(window.End)) {
				out[id] = append(out[id], s)
			}
		}
	}
	return out, nil
}

func (f *Fixture) FetchStates(_ context.Context, entityIDs []string) (model.EntityStates, error) {
	states := make(model.EntityStates, len(entityIDs))
	for _, id := range entityIDs {
		if v, ok := f.States[id]; ok {
			states[id] = v
		}
	}
	return states, nil
}
