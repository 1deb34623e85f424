// Package service runs the refresh loop: every trigger (window broadcast,
// host state change, config replacement, periodic tick) starts an
// independent fetch-and-build cycle whose summary replaces the previous one
// wholesale. Cycles are not coalesced; last write wins.
package service

import (
	"context"
	"sync"
	"time"

	"energy-dashboard/internal/dashboard"
	"energy-dashboard/internal/model"
	"energy-dashboard/internal/stats"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// DataSource is the minimal capability the host must provide. HostClient
// and data.Fixture both satisfy it.
type DataSource interface {
	FetchStatistics(ctx context.Context, entityIDs []string, window model.TimeWindow) (map[string][]model.StatSample, error)
	FetchStates(ctx context.Context, entityIDs []string) (model.EntityStates, error)
}

type Service struct {
	engine *dashboard.Engine
	data   DataSource

	mu      sync.RWMutex
	sources []model.Source
	net     *model.NetMetering
	period  model.Period
	window  model.TimeWindow // zero until a broadcast arrives
	summary model.Summary

	now func() time.Time
}

// New wires a service over normalized sources. period picks the window
// until an external date selection arrives.
func New(data DataSource, engine *dashboard.Engine, sources []model.Source, nm *model.NetMetering, period model.Period) *Service {
	return &Service{
		engine:  engine,
		data:    data,
		sources: sources,
		net:     nm,
		period:  period,
		now:     time.Now,
	}
}

// Summary returns the latest built summary.
func (s *Service) Summary() model.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// Window returns the window the next cycle will use.
func (s *Service) Window() model.TimeWindow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeWindowLocked()
}

func (s *Service) activeWindowLocked() model.TimeWindow {
	if !s.window.IsZero() {
		return s.window
	}
	return s.period.Window(s.now())
}

// SetWindow replaces the active window (external date-selection broadcast)
// and refreshes.
func (s *Service) SetWindow(ctx context.Context, w model.TimeWindow) model.Summary {
	s.mu.Lock()
	s.window = w
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// ReplaceConfig swaps the normalized source set atomically and refreshes.
func (s *Service) ReplaceConfig(ctx context.Context, sources []model.Source, nm *model.NetMetering, period model.Period) model.Summary {
	s.mu.Lock()
	s.sources = sources
	s.net = nm
	s.period = period
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// Refresh runs one fetch-and-build cycle and stores the result. A failed
// statistics fetch degrades to an all-zero value map for the whole cycle —
// never a partial one — and marks the summary stale; the next trigger
// retries.
func (s *Service) Refresh(ctx context.Context) model.Summary {
	cycle := uuid.NewString()[:8]

	s.mu.RLock()
	sources := s.sources
	nm := s.net
	window := s.activeWindowLocked()
	s.mu.RUnlock()

	entityIDs := stats.EntityIDs(sources, nm)
	rateIDs := stats.RateEntityIDs(sources, nm)

	stale := false
	series, err := s.data.FetchStatistics(ctx, entityIDs, window)
	if err != nil {
		log.Printf("[Refresh %s] Statistics fetch failed, rendering zeros: %v", cycle, err)
		series = nil
		stale = true
	}
	values := stats.Aggregate(series, entityIDs)

	states := model.EntityStates{}
	if len(rateIDs) > 0 && !stale {
		states, err = s.data.FetchStates(ctx, rateIDs)
		if err != nil {
			log.Printf("[Refresh %s] States fetch failed, rates degrade: %v", cycle, err)
			states = model.EntityStates{}
		}
	}

	summary := s.engine.BuildSummary(sources, nm, values, states, window)
	summary.Stale = stale

	s.mu.Lock()
	s.summary = summary
	s.mu.Unlock()

	log.Printf("[Refresh %s] Built %d rows, total=%s (stale=%v)",
		cycle, len(summary.Rows), summary.FormattedTotal, stale)
	return summary
}

// Run refreshes immediately and then on every tick until ctx is done.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	s.Refresh(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Refresh(ctx)
		case <-ctx.Done():
			return
		}
	}
}
