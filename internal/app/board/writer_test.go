package board

import (
	"context"
	"errors"
	"testing"

	"github.com/pinball19/bus-app-2/internal/domain/schedule"
	"github.com/pinball19/bus-app-2/internal/infra/storage/memory"
)

type recordingPublisher struct {
	events []schedule.ChangeEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, ev schedule.ChangeEvent) error {
	p.events = append(p.events, ev)
	return nil
}

func newWriter(t *testing.T) (*Writer, *memory.Store, *recordingPublisher) {
	t.Helper()
	store := memory.NewStore()
	pub := &recordingPublisher{}
	return &Writer{Store: store, Publisher: pub, Vehicles: fleet}, store, pub
}

func TestWriterCreateValidation(t *testing.T) {
	w, _, _ := newWriter(t)
	ctx := context.Background()

	_, err := w.Create(ctx, &schedule.RawBooking{VehicleName: "小型1"})
	if !errors.Is(err, ErrMonthRequired) {
		t.Errorf("missing month: err = %v", err)
	}

	_, err = w.Create(ctx, &schedule.RawBooking{VehicleName: "幽霊号", Month: 4, Year: 2025})
	if !errors.Is(err, ErrUnknownVehicle) {
		t.Errorf("unknown vehicle: err = %v", err)
	}
}

func TestWriterCreateDefaults(t *testing.T) {
	w, store, pub := newWriter(t)
	ctx := context.Background()

	raw := &schedule.RawBooking{VehicleName: "小型1", Month: 4, Year: 2025}
	id, err := w.Create(ctx, raw)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	stored, err := store.Booking(ctx, id)
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	if stored.Day != 1 || stored.Span != 1 {
		t.Errorf("day/span = %v/%v, want 1/1", stored.Day, stored.Span)
	}
	if stored.Styles == nil {
		t.Error("default styles not applied")
	}
	if got := stored.Styles["departureDate"].BGColor; got != "#e6f7ff" {
		t.Errorf("departureDate bg = %q", got)
	}
	if len(pub.events) != 1 || pub.events[0].Kind != schedule.ChangeAdded {
		t.Errorf("events = %+v", pub.events)
	}
}

func TestWriterCreateDerivesSpanFromDates(t *testing.T) {
	w, store, _ := newWriter(t)
	ctx := context.Background()

	raw := &schedule.RawBooking{
		VehicleName:   "小型1",
		Month:         4,
		Year:          2025,
		Day:           10,
		Span:          1, // overridden by the date pair
		DepartureDate: schedule.DateFromText("2025/04/10"),
		ReturnDate:    schedule.DateFromText("2025/04/12"),
	}
	id, err := w.Create(ctx, raw)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	stored, _ := store.Booking(ctx, id)
	if stored.Span != 3 {
		t.Errorf("span = %v, want 3 (inclusive of both ends)", stored.Span)
	}
}

func TestWriterCreateClampsAtMonthEnd(t *testing.T) {
	w, store, _ := newWriter(t)
	ctx := context.Background()

	raw := &schedule.RawBooking{
		VehicleName: "小型1", Month: 4, Year: 2025,
		Day: 28, Span: 10,
	}
	id, err := w.Create(ctx, raw)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	stored, _ := store.Booking(ctx, id)
	if stored.Day != 28 || stored.Span != 3 {
		t.Errorf("day/span = %v/%v, want 28/3 for April", stored.Day, stored.Span)
	}
}

func TestWriterDeleteMissingIsNoop(t *testing.T) {
	w, _, pub := newWriter(t)
	if err := w.Delete(context.Background(), "never-stored"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(pub.events) != 0 {
		t.Errorf("no event expected for a missing booking, got %+v", pub.events)
	}
}

func TestWriterDeleteCarriesDataOnRemoval(t *testing.T) {
	w, _, pub := newWriter(t)
	ctx := context.Background()

	id, err := w.Create(ctx, &schedule.RawBooking{VehicleName: "小型1", Month: 4, Year: 2025, Day: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := w.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	last := pub.events[len(pub.events)-1]
	if last.Kind != schedule.ChangeRemoved || last.BookingID != id {
		t.Fatalf("last event = %+v", last)
	}
	if last.Data == nil || last.Data.Month != 4 || last.Data.Year != 2025 {
		t.Errorf("removal must carry the booking for month routing, got %+v", last.Data)
	}
}

func TestWriterRenameVehicle(t *testing.T) {
	w, store, pub := newWriter(t)
	ctx := context.Background()

	id, err := w.Create(ctx, &schedule.RawBooking{VehicleName: "小型1", Month: 4, Year: 2025, Day: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	pub.events = nil

	changed, err := w.RenameVehicle(ctx, "小型1", "マイクロ1", 4, 2025)
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if changed != 1 {
		t.Errorf("changed = %d, want 1", changed)
	}

	stored, _ := store.Booking(ctx, id)
	if stored.VehicleName != "マイクロ1" {
		t.Errorf("stored vehicle = %q", stored.VehicleName)
	}

	if len(pub.events) != 2 {
		t.Fatalf("events = %+v", pub.events)
	}
	if pub.events[0].Kind != schedule.ChangeRemoved || pub.events[0].VehicleName != "小型1" {
		t.Errorf("first event = %+v", pub.events[0])
	}
	if pub.events[1].Kind != schedule.ChangeAdded || pub.events[1].VehicleName != "マイクロ1" {
		t.Errorf("second event = %+v", pub.events[1])
	}
	if pub.events[1].Data.VehicleName != "マイクロ1" {
		t.Errorf("added event data keeps the old name: %+v", pub.events[1].Data)
	}
}
