package schedule

import "github.com/pinball19/bus-app-2/internal/domain/calendar"

// Normalize coerces one raw booking into an entry anchored to (year, month).
// It never fails: an unparseable or sub-1 day becomes 1, a day past the end
// of the month is clamped to the last day, and the span is truncated so the
// entry never extends past the month boundary. Clamping is idempotent, so
// normalizing an already-normalized entry's values is a no-op.
func Normalize(raw RawBooking, year, month int) Entry {
	last := calendar.DaysInMonth(year, month)

	day, ok := parseOrdinal(raw.Day)
	if !ok || day < 1 {
		day = 1
	}
	if day > last {
		day = last
	}

	span, ok := parseOrdinal(raw.Span)
	if !ok || span < 1 {
		span = 1
	}
	if left := last - day + 1; span > left {
		span = left
	}

	return Entry{
		ID:          raw.ID,
		VehicleName: raw.VehicleName,
		Day:         day,
		Span:        span,
		Content: Content{
			OrderDate:         raw.OrderDate,
			DepartureDate:     raw.DepartureDate.Resolve(year, month, day),
			ReturnDate:        resolveReturn(raw.ReturnDate),
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
			ItineraryReceived: raw.ItineraryReceived,
			PaymentCompleted:  raw.PaymentCompleted,
			// Memo is preserved as authored; the bus type lives in its own
			// field and is never prefixed onto it.
			Memo: raw.Memo,
		},
		Styles: raw.Styles,
	}
}

// resolveReturn formats the return date when one is present. Unlike the
// departure date there is no synthesized fallback; a missing return date
// stays empty.
func resolveReturn(d RawDate) string {
	if t, ok := d.Date(); ok {
		return FormatYMD(t)
	}
	return ""
}
