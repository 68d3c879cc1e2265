// Package memory implements the document-store collaborators in process.
// It backs STORE_MODE=memory and the service-level tests; behavior mirrors
// the Mongo implementation, including equality-filter semantics.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pinball19/bus-app-2/internal/domain/driver"
	"github.com/pinball19/bus-app-2/internal/domain/message"
	"github.com/pinball19/bus-app-2/internal/domain/schedule"
)

// Store holds bookings, drivers and message threads behind one lock.
type Store struct {
	mu       sync.RWMutex
	order    []string
	bookings map[string]schedule.RawBooking
	drivers  map[string]driver.Record
	messages map[string][]message.Message
}

func NewStore() *Store {
	return &Store{
		bookings: make(map[string]schedule.RawBooking),
		drivers:  make(map[string]driver.Record),
		messages: make(map[string][]message.Message),
	}
}

func (s *Store) Bookings(ctx context.Context, month, year int, f schedule.Filter) ([]schedule.RawBooking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []schedule.RawBooking
	for _, id := range s.order {
		raw, ok := s.bookings[id]
		if !ok {
			continue
		}
		if raw.Month != month || raw.Year != year {
			continue
		}
		if f.VehicleName != "" && raw.VehicleName != f.VehicleName {
			continue
		}
		if f.ContactPerson != "" && raw.ContactPerson != f.ContactPerson {
			continue
		}
		if f.DriverName != "" && raw.DriverName != f.DriverName {
			continue
		}
		out = append(out, raw)
	}
	return out, nil
}

func (s *Store) Booking(ctx context.Context, id string) (*schedule.RawBooking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.bookings[id]
	if !ok {
		return nil, schedule.ErrBookingNotFound
	}
	return &raw, nil
}

func (s *Store) Insert(ctx context.Context, raw *schedule.RawBooking) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	stored := *raw
	stored.ID = id
	s.bookings[id] = stored
	s.order = append(s.order, id)
	return id, nil
}

func (s *Store) Update(ctx context.Context, id string, raw *schedule.RawBooking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[id]; !ok {
		return schedule.ErrBookingNotFound
	}
	stored := *raw
	stored.ID = id
	s.bookings[id] = stored
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bookings, id)
	return nil
}

func (s *Store) RenameVehicle(ctx context.Context, oldName, newName string, month, year int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := 0
	for id, raw := range s.bookings {
		if raw.VehicleName != oldName || raw.Month != month || raw.Year != year {
			continue
		}
		raw.VehicleName = newName
		s.bookings[id] = raw
		changed++
	}
	return changed, nil
}

func (s *Store) List(ctx context.Context, activeOnly bool) ([]driver.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []driver.Record
	for _, rec := range s.drivers {
		if activeOnly && !rec.IsActive {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) ByName(ctx context.Context, name string) (*driver.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.drivers {
		if rec.Name == name {
			r := rec
			return &r, nil
		}
	}
	return nil, driver.ErrDriverNotFound
}

func (s *Store) InsertDriver(ctx context.Context, rec *driver.Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	stored := *rec
	stored.ID = id
	s.drivers[id] = stored
	return id, nil
}

func (s *Store) UpdateDriver(ctx context.Context, id string, rec *driver.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drivers[id]; !ok {
		return driver.ErrDriverNotFound
	}
	stored := *rec
	stored.ID = id
	s.drivers[id] = stored
	return nil
}

func (s *Store) Deactivate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.drivers[id]
	if !ok {
		return driver.ErrDriverNotFound
	}
	rec.IsActive = false
	s.drivers[id] = rec
	return nil
}

func (s *Store) ForSchedule(ctx context.Context, scheduleID string) ([]message.Message, error) {
	if scheduleID == "" {
		return nil, message.ErrScheduleRequired
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]message.Message(nil), s.messages[scheduleID]...), nil
}

func (s *Store) Append(ctx context.Context, msg message.Message) (string, error) {
	if msg.ScheduleID == "" {
		return "", message.ErrScheduleRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	msg.ID = uuid.NewString()
	msg.PostedAt = time.Now().UTC()
	s.messages[msg.ScheduleID] = append(s.messages[msg.ScheduleID], msg)
	return msg.ID, nil
}

// DriverRepo adapts the store to driver.Repository, whose Insert/Update
// names collide with the booking methods.
type DriverRepo struct{ *Store }

func (r DriverRepo) Insert(ctx context.Context, rec *driver.Record) (string, error) {
	return r.InsertDriver(ctx, rec)
}

func (r DriverRepo) Update(ctx context.Context, id string, rec *driver.Record) error {
	return r.UpdateDriver(ctx, id, rec)
}

var _ schedule.Store = (*Store)(nil)
var _ driver.Repository = DriverRepo{}
var _ message.Repository = (*Store)(nil)
