package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pinball19/bus-app-2/internal/domain/schedule"
)

// ScheduleStore implements schedule.Store on the "schedules" collection.
type ScheduleStore struct {
	col *mongo.Collection
}

func NewScheduleStore(db *mongo.Database) *ScheduleStore {
	return &ScheduleStore{col: db.Collection("schedules")}
}

func (s *ScheduleStore) Bookings(ctx context.Context, month, year int, f schedule.Filter) ([]schedule.RawBooking, error) {
	filter := bson.M{"month": month, "year": year}
	if f.VehicleName != "" {
		filter["busName"] = f.VehicleName
	}
	if f.ContactPerson != "" {
		filter["contactPerson"] = f.ContactPerson
	}
	if f.DriverName != "" {
		filter["driverName"] = f.DriverName
	}
	cur, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongo: find schedules: %w", err)
	}
	defer cur.Close(ctx)

	var raws []schedule.RawBooking
	for cur.Next(ctx) {
		var doc scheduleDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongo: decode schedule: %w", err)
		}
		raws = append(raws, doc.toRaw())
	}
	return raws, cur.Err()
}

func (s *ScheduleStore) Booking(ctx context.Context, id string) (*schedule.RawBooking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, schedule.ErrBookingNotFound
	}
	var doc scheduleDocument
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, schedule.ErrBookingNotFound
		}
		return nil, fmt.Errorf("mongo: find schedule: %w", err)
	}
	raw := doc.toRaw()
	return &raw, nil
}

func (s *ScheduleStore) Insert(ctx context.Context, raw *schedule.RawBooking) (string, error) {
	doc := newScheduleDocument(raw)
	res, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("mongo: insert schedule: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("mongo: unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *ScheduleStore) Update(ctx context.Context, id string, raw *schedule.RawBooking) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return schedule.ErrBookingNotFound
	}
	doc := newScheduleDocument(raw)
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("mongo: update schedule: %w", err)
	}
	if res.MatchedCount == 0 {
		return schedule.ErrBookingNotFound
	}
	return nil
}

func (s *ScheduleStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return schedule.ErrBookingNotFound
	}
	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("mongo: delete schedule: %w", err)
	}
	return nil
}

func (s *ScheduleStore) RenameVehicle(ctx context.Context, oldName, newName string, month, year int) (int, error) {
	filter := bson.M{"busName": oldName, "month": month, "year": year}
	res, err := s.col.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"busName": newName}})
	if err != nil {
		return 0, fmt.Errorf("mongo: rename vehicle: %w", err)
	}
	return int(res.ModifiedCount), nil
}

// scheduleDocument mirrors the stored shape. Day, span and the date fields
// are left loosely typed on purpose: historic documents carry numbers,
// numeric strings or nothing, and normalization owns the coercion.
type scheduleDocument struct {
	ID primitive.ObjectID `bson:"_id,omitempty"`

	BusName string `bson:"busName"`
	Month   int    `bson:"month"`
	Year    int    `bson:"year"`
	Day     any    `bson:"day,omitempty"`
	Span    any    `bson:"span,omitempty"`

	OrderDate     string `bson:"orderDate,omitempty"`
	DepartureDate any    `bson:"departureDate,omitempty"`
	ReturnDate    any    `bson:"returnDate,omitempty"`

	GroupName     string `bson:"groupName,omitempty"`
	Destination   string `bson:"destination,omitempty"`
	CompanyName   string `bson:"companyName,omitempty"`
	ContactPerson string `bson:"contactPerson,omitempty"`
	ContactInfo   string `bson:"contactInfo,omitempty"`
	DriverName    string `bson:"driverName,omitempty"`
	Price         string `bson:"price,omitempty"`
	Passengers    string `bson:"passengers,omitempty"`
	BusType       string `bson:"busType,omitempty"`
	PaymentMethod string `bson:"paymentMethod,omitempty"`
	Memo          string `bson:"memo,omitempty"`

	ItineraryReceived bool `bson:"itineraryReceived"`
	PaymentCompleted  bool `bson:"paymentCompleted"`

	Styles map[string]schedule.CellStyle `bson:"styles,omitempty"`
}

func newScheduleDocument(raw *schedule.RawBooking) scheduleDocument {
	doc := scheduleDocument{
		BusName:           raw.VehicleName,
		Month:             raw.Month,
		Year:              raw.Year,
		Day:               raw.Day,
		Span:              raw.Span,
		OrderDate:         raw.OrderDate,
		DepartureDate:     dateToBSON(raw.DepartureDate),
		ReturnDate:        dateToBSON(raw.ReturnDate),
		GroupName:         raw.GroupName,
		Destination:       raw.Destination,
		CompanyName:       raw.CompanyName,
		ContactPerson:     raw.ContactPerson,
		ContactInfo:       raw.ContactInfo,
		DriverName:        raw.DriverName,
		Price:             raw.Price,
		Passengers:        raw.Passengers,
		BusType:           raw.BusType,
		PaymentMethod:     raw.PaymentMethod,
		Memo:              raw.Memo,
		ItineraryReceived: raw.ItineraryReceived,
		PaymentCompleted:  raw.PaymentCompleted,
		Styles:            raw.Styles,
	}
	return doc
}

func (d scheduleDocument) toRaw() schedule.RawBooking {
	return schedule.RawBooking{
		ID:                d.ID.Hex(),
		VehicleName:       d.BusName,
		Month:             d.Month,
		Year:              d.Year,
		Day:               d.Day,
		Span:              d.Span,
		OrderDate:         d.OrderDate,
		DepartureDate:     dateFromBSON(d.DepartureDate),
		ReturnDate:        dateFromBSON(d.ReturnDate),
		GroupName:         d.GroupName,
		Destination:       d.Destination,
		CompanyName:       d.CompanyName,
		ContactPerson:     d.ContactPerson,
		ContactInfo:       d.ContactInfo,
		DriverName:        d.DriverName,
		Price:             d.Price,
		Passengers:        d.Passengers,
		BusType:           d.BusType,
		PaymentMethod:     d.PaymentMethod,
		Memo:              d.Memo,
		ItineraryReceived: d.ItineraryReceived,
		PaymentCompleted:  d.PaymentCompleted,
		Styles:            d.Styles,
	}
}

func dateToBSON(d schedule.RawDate) any {
	switch d.Kind {
	case schedule.DateTimestamp, schedule.DateValue:
		return primitive.NewDateTimeFromTime(d.Time)
	case schedule.DateString:
		return d.Text
	}
	return nil
}

func dateFromBSON(v any) schedule.RawDate {
	switch t := v.(type) {
	case primitive.DateTime:
		return schedule.DateFromTime(t.Time().UTC())
	case time.Time:
		return schedule.DateFromTime(t.UTC())
	case string:
		return schedule.DateFromText(t)
	}
	return schedule.RawDate{}
}
