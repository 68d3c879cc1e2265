// Package board owns the authoritative occupancy grid: full rebuilds on
// month or filter changes, serialized folding of change-event batches, and
// alert recomputation after every mutation.
package board

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pinball19/bus-app-2/internal/domain/schedule"
)

// Feed delivers ordered, non-overlapping batches of change events for one
// (month, year) subscription. The returned cancel tears the subscription
// down; after cancel returns no further callbacks fire.
type Feed interface {
	Subscribe(ctx context.Context, month, year int, fn func([]schedule.ChangeEvent)) (cancel func(), err error)
}

// Selection identifies what the board is showing.
type Selection struct {
	Month  int
	Year   int
	Filter schedule.Filter
}

// Snapshot is a stable copy of the board state handed to the display layer.
type Snapshot struct {
	Selection Selection        `json:"selection"`
	Grid      schedule.Grid    `json:"grid"`
	Alerts    []schedule.Alert `json:"alerts"`
	Contacts  []string         `json:"contacts"`
}

// Service maintains one grid per process. A mutex serializes rebuilds and
// merges; a generation counter tags each rebuild so batches subscribed
// against a superseded grid are dropped instead of leaking into the new one.
type Service struct {
	Store    schedule.Store
	Feed     Feed
	Vehicles []string
	Logger   *slog.Logger
	Now      func() time.Time

	// FeedCtx bounds the lifetime of feed subscriptions. Subscriptions must
	// survive the request that established them, so this is the application
	// context, never a request context. Nil means context.Background().
	FeedCtx context.Context

	mu         sync.Mutex
	selection  Selection
	generation uint64
	grid       *schedule.Grid
	alerts     []schedule.Alert
	cancelFeed func()
}

// Select rebuilds the grid for the given month and filter. The previous
// subscription is torn down before the new one is established, so events for
// the old selection can never reach the new grid. ctx bounds only the store
// fetch; the subscription itself runs under FeedCtx.
func (s *Service) Select(ctx context.Context, sel Selection) error {
	raws, err := s.Store.Bookings(ctx, sel.Month, sel.Year, sel.Filter)
	if err != nil {
		return fmt.Errorf("board: fetch bookings: %w", err)
	}

	s.mu.Lock()
	if s.cancelFeed != nil {
		s.cancelFeed()
		s.cancelFeed = nil
	}
	s.generation++
	gen := s.generation
	s.selection = sel
	s.grid = schedule.BuildGrid(raws, sel.Year, sel.Month, s.Vehicles)
	s.alerts = schedule.ComputeAlerts(s.grid, s.today())
	alertCount := len(s.alerts)
	s.mu.Unlock()

	if s.Logger != nil {
		s.Logger.Info("board rebuilt",
			"month", sel.Month, "year", sel.Year,
			"bookings", len(raws), "alerts", alertCount)
	}

	if s.Feed == nil {
		return nil
	}
	cancel, err := s.Feed.Subscribe(s.feedContext(), sel.Month, sel.Year, func(events []schedule.ChangeEvent) {
		s.apply(gen, events)
	})
	if err != nil {
		return fmt.Errorf("board: subscribe: %w", err)
	}

	s.mu.Lock()
	if s.generation == gen {
		s.cancelFeed = cancel
		s.mu.Unlock()
		return nil
	}
	// A newer Select raced us; this subscription is already stale.
	s.mu.Unlock()
	cancel()
	return nil
}

func (s *Service) apply(gen uint64, events []schedule.ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation || s.grid == nil {
		if s.Logger != nil {
			s.Logger.Debug("dropping change batch for superseded grid",
				"batch_generation", gen, "current", s.generation)
		}
		return
	}
	s.grid.ApplyChanges(events)
	s.alerts = schedule.ComputeAlerts(s.grid, s.today())
}

// Snapshot copies the current board state. Safe to hold after later merges.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{Selection: s.selection}
	if s.grid == nil {
		return snap
	}
	snap.Grid = schedule.Grid{Year: s.grid.Year, Month: s.grid.Month, Rows: make([]schedule.Row, len(s.grid.Rows))}
	for i, row := range s.grid.Rows {
		entries := make([]schedule.Entry, len(row.Entries))
		copy(entries, row.Entries)
		snap.Grid.Rows[i] = schedule.Row{VehicleName: row.VehicleName, Entries: entries}
	}
	snap.Alerts = append([]schedule.Alert(nil), s.alerts...)
	snap.Contacts = s.grid.ContactPersons()
	return snap
}

// Close tears down the active subscription.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelFeed != nil {
		s.cancelFeed()
		s.cancelFeed = nil
	}
}

func (s *Service) feedContext() context.Context {
	if s.FeedCtx != nil {
		return s.FeedCtx
	}
	return context.Background()
}

func (s *Service) today() time.Time {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
