package schedule

import (
	"context"
	"errors"
)

var (
	ErrBookingNotFound = errors.New("schedule: booking not found")
)

// Filter narrows a month fetch to one vehicle, contact person or driver.
// Zero value means no filtering.
type Filter struct {
	VehicleName   string
	ContactPerson string
	DriverName    string
}

// Store is the document-store collaborator the board reads bookings from.
// All queries are equality filters over (month, year) plus the optional
// Filter fields.
type Store interface {
	Bookings(ctx context.Context, month, year int, f Filter) ([]RawBooking, error)
	Booking(ctx context.Context, id string) (*RawBooking, error)
	Insert(ctx context.Context, raw *RawBooking) (string, error)
	Update(ctx context.Context, id string, raw *RawBooking) error
	Delete(ctx context.Context, id string) error
	// RenameVehicle rewrites the vehicle name on every matching booking of
	// the month and returns how many documents changed.
	RenameVehicle(ctx context.Context, oldName, newName string, month, year int) (int, error)
}
