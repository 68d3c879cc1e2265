// Package roster provides driver management and the duty analysis endpoints
// layered on the schedule store.
package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pinball19/bus-app-2/internal/domain/driver"
	"github.com/pinball19/bus-app-2/internal/domain/schedule"
)

var ErrNameRequired = errors.New("roster: driver name is required")

// DutyStatus bundles everything the driver detail view shows.
type DutyStatus struct {
	Driver   driver.Record      `json:"driver"`
	Work     driver.WorkSummary `json:"work"`
	Report   driver.DutyReport  `json:"report"`
	Upcoming []schedule.Entry   `json:"upcoming"`
}

// Service wires the roster repository to the booking store for duty-day
// analysis. Booking lookups span the months around today because duty runs
// cross month boundaries.
type Service struct {
	Drivers driver.Repository
	Store   schedule.Store
	Logger  *slog.Logger
	Now     func() time.Time
}

// List returns roster records sorted by name.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]driver.Record, error) {
	recs, err := s.Drivers.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("roster: list drivers: %w", err)
	}
	driver.SortByName(recs)
	return recs, nil
}

// Create stores a new active driver.
func (s *Service) Create(ctx context.Context, rec *driver.Record) (string, error) {
	if strings.TrimSpace(rec.Name) == "" {
		return "", ErrNameRequired
	}
	rec.IsActive = true
	id, err := s.Drivers.Insert(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("roster: insert driver: %w", err)
	}
	return id, nil
}

// Update rewrites a roster record.
func (s *Service) Update(ctx context.Context, id string, rec *driver.Record) error {
	if strings.TrimSpace(rec.Name) == "" {
		return ErrNameRequired
	}
	if err := s.Drivers.Update(ctx, id, rec); err != nil {
		return fmt.Errorf("roster: update driver: %w", err)
	}
	return nil
}

// Deactivate soft-deletes the driver; history stays queryable.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	if err := s.Drivers.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("roster: deactivate driver: %w", err)
	}
	return nil
}

// Duty computes the thirty-day work summary and the consecutive-duty report
// for the named driver, plus assignments in the next `upcomingDays` days.
func (s *Service) Duty(ctx context.Context, name string, upcomingDays int) (*DutyStatus, error) {
	rec, err := s.Drivers.ByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("roster: lookup driver %q: %w", name, err)
	}
	today := s.today()

	bookings, err := s.bookingsAround(ctx, name, today)
	if err != nil {
		return nil, err
	}

	status := &DutyStatus{
		Driver: *rec,
		Work:   driver.SummarizeWork(bookings, today),
		Report: driver.AnalyzeConsecutiveDuty(bookings, today),
	}
	if upcomingDays > 0 {
		for _, raw := range driver.UpcomingAssignments(bookings, today, upcomingDays) {
			status.Upcoming = append(status.Upcoming, schedule.Normalize(raw, raw.Year, raw.Month))
		}
	}
	return status, nil
}

// bookingsAround fetches the driver's bookings for last month, this month
// and next month, enough to cover both the trailing-30-day summary and the
// ±15 day consecutive-duty window. Office staff record the driver on either
// the driver field or the contact field depending on who books the trip, so
// both are matched; the store only does equality filters, hence two queries
// deduplicated by id.
func (s *Service) bookingsAround(ctx context.Context, name string, today time.Time) ([]schedule.RawBooking, error) {
	filters := []schedule.Filter{{DriverName: name}, {ContactPerson: name}}
	seen := map[string]struct{}{}
	var all []schedule.RawBooking
	for offset := -1; offset <= 1; offset++ {
		at := today.AddDate(0, offset, 0)
		month, year := int(at.Month()), at.Year()
		for _, f := range filters {
			raws, err := s.Store.Bookings(ctx, month, year, f)
			if err != nil {
				return nil, fmt.Errorf("roster: fetch bookings %d/%d: %w", year, month, err)
			}
			for _, raw := range raws {
				if _, ok := seen[raw.ID]; ok {
					continue
				}
				seen[raw.ID] = struct{}{}
				all = append(all, raw)
			}
		}
	}
	return all, nil
}

func (s *Service) today() time.Time {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
