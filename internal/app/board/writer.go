package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pinball19/bus-app-2/internal/domain/calendar"
	"github.com/pinball19/bus-app-2/internal/domain/schedule"
)

var (
	ErrUnknownVehicle = errors.New("board: vehicle is not in the configured fleet")
	ErrMonthRequired  = errors.New("board: booking month and year are required")
)

// Publisher emits a change event onto the feed consumed by Service.
type Publisher interface {
	Publish(ctx context.Context, ev schedule.ChangeEvent) error
}

// Writer handles booking mutations: write-through to the store, then a
// change event on the feed so every open board converges.
type Writer struct {
	Store     schedule.Store
	Publisher Publisher
	Vehicles  []string
	Logger    *slog.Logger
}

// Create validates and stores a new booking and returns its id. A missing
// styles map gets the default styling; when both departure and return dates
// are present the span is derived from them before month-end clamping.
func (w *Writer) Create(ctx context.Context, raw *schedule.RawBooking) (string, error) {
	if err := w.prepare(raw); err != nil {
		return "", err
	}
	id, err := w.Store.Insert(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("board: insert booking: %w", err)
	}
	raw.ID = id
	w.publish(ctx, schedule.ChangeEvent{
		Kind:        schedule.ChangeAdded,
		VehicleName: raw.VehicleName,
		BookingID:   id,
		Data:        raw,
	})
	return id, nil
}

// Update replaces the stored booking and emits a modified event.
func (w *Writer) Update(ctx context.Context, id string, raw *schedule.RawBooking) error {
	if err := w.prepare(raw); err != nil {
		return err
	}
	if err := w.Store.Update(ctx, id, raw); err != nil {
		return fmt.Errorf("board: update booking: %w", err)
	}
	raw.ID = id
	w.publish(ctx, schedule.ChangeEvent{
		Kind:        schedule.ChangeModified,
		VehicleName: raw.VehicleName,
		BookingID:   id,
		Data:        raw,
	})
	return nil
}

// Delete removes the booking. Deleting an id that is already gone is a
// no-op for the grid, but the store lookup failing is surfaced so the UI
// can distinguish "already deleted" from "store unreachable".
func (w *Writer) Delete(ctx context.Context, id string) error {
	raw, err := w.Store.Booking(ctx, id)
	if err != nil {
		if errors.Is(err, schedule.ErrBookingNotFound) {
			return nil
		}
		return fmt.Errorf("board: load booking for delete: %w", err)
	}
	if err := w.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("board: delete booking: %w", err)
	}
	// Raw data rides along on removals too; the feed routes events to the
	// right month subscription from it.
	w.publish(ctx, schedule.ChangeEvent{
		Kind:        schedule.ChangeRemoved,
		VehicleName: raw.VehicleName,
		BookingID:   id,
		Data:        raw,
	})
	return nil
}

// RenameVehicle rewrites the vehicle name across the month's bookings and
// replays each moved booking as a remove-from-old plus add-to-new pair, so
// merging boards shift the entries between rows.
func (w *Writer) RenameVehicle(ctx context.Context, oldName, newName string, month, year int) (int, error) {
	moved, err := w.Store.Bookings(ctx, month, year, schedule.Filter{VehicleName: oldName})
	if err != nil {
		return 0, fmt.Errorf("board: load bookings for rename: %w", err)
	}
	changed, err := w.Store.RenameVehicle(ctx, oldName, newName, month, year)
	if err != nil {
		return 0, fmt.Errorf("board: rename vehicle: %w", err)
	}
	for i := range moved {
		old := moved[i]
		w.publish(ctx, schedule.ChangeEvent{
			Kind:        schedule.ChangeRemoved,
			VehicleName: oldName,
			BookingID:   old.ID,
			Data:        &old,
		})
		renamed := moved[i]
		renamed.VehicleName = newName
		w.publish(ctx, schedule.ChangeEvent{
			Kind:        schedule.ChangeAdded,
			VehicleName: newName,
			BookingID:   renamed.ID,
			Data:        &renamed,
		})
	}
	return changed, nil
}

func (w *Writer) prepare(raw *schedule.RawBooking) error {
	if raw.Month < 1 || raw.Month > 12 || raw.Year == 0 {
		return ErrMonthRequired
	}
	if !w.knownVehicle(raw.VehicleName) {
		return ErrUnknownVehicle
	}
	if raw.Styles == nil {
		raw.Styles = schedule.DefaultStyles()
	}

	day := 1
	if d, ok := dayOf(raw.Day); ok && d >= 1 {
		day = calendar.ClampDay(raw.Year, raw.Month, d)
	}
	raw.Day = day

	span := 1
	if n, ok := dayOf(raw.Span); ok && n > 1 {
		span = n
	}
	if derived, ok := spanFromDates(raw.DepartureDate, raw.ReturnDate); ok {
		span = derived
	}
	if left := calendar.DaysInMonth(raw.Year, raw.Month) - day + 1; span > left {
		span = left
	}
	raw.Span = span
	return nil
}

func (w *Writer) knownVehicle(name string) bool {
	for _, v := range w.Vehicles {
		if v == name {
			return true
		}
	}
	return false
}

func (w *Writer) publish(ctx context.Context, ev schedule.ChangeEvent) {
	if w.Publisher == nil {
		return
	}
	if err := w.Publisher.Publish(ctx, ev); err != nil && w.Logger != nil {
		w.Logger.Error("change event publish failed",
			"kind", ev.Kind, "booking_id", ev.BookingID, "error", err)
	}
}

// spanFromDates derives the booked day count from departure and return
// dates, inclusive of both ends.
func spanFromDates(dep, ret schedule.RawDate) (int, bool) {
	d, ok := dep.Date()
	if !ok {
		return 0, false
	}
	r, ok := ret.Date()
	if !ok {
		return 0, false
	}
	days := int(r.Sub(d)/(24*time.Hour)) + 1
	if days < 1 {
		return 0, false
	}
	return days, true
}

func dayOf(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		var i int
		if _, err := fmt.Sscanf(n, "%d", &i); err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}
