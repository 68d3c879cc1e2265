// Package schedule implements the booking-grid engine behind the dispatch
// board: normalization of raw store records into month-anchored entries,
// the per-vehicle occupancy grid, incremental change merging and the
// operational alerts derived from the grid.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateKind discriminates the representations a departure/return date can
// arrive in from the document store.
type DateKind int

const (
	DateAbsent DateKind = iota
	DateTimestamp
	DateValue
	DateString
)

// RawDate is the tagged union of date representations found on stored
// bookings. Exactly one of Time/Text is meaningful depending on Kind.
type RawDate struct {
	Kind DateKind
	Time time.Time
	Text string
}

// DateFromTime tags a structured timestamp.
func DateFromTime(t time.Time) RawDate {
	return RawDate{Kind: DateTimestamp, Time: t}
}

// DateFromValue tags a plain date value (day granularity).
func DateFromValue(t time.Time) RawDate {
	return RawDate{Kind: DateValue, Time: t}
}

// DateFromText tags a free-form date string, typically "yyyy/mm/dd".
func DateFromText(s string) RawDate {
	if strings.TrimSpace(s) == "" {
		return RawDate{}
	}
	return RawDate{Kind: DateString, Text: s}
}

// Resolve produces the display text for the date. Structured values are
// formatted yyyy/mm/dd; a parseable text value is reformatted the same way;
// anything else falls back to the (year, month, day) the entry is anchored
// to, so the result is never empty.
func (d RawDate) Resolve(year, month, day int) string {
	switch d.Kind {
	case DateTimestamp, DateValue:
		return FormatYMD(d.Time)
	case DateString:
		if t, ok := ParseYMD(d.Text); ok {
			return FormatYMD(t)
		}
	}
	return FormatYMD(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
}

// Date returns the calendar date the union holds, if any.
func (d RawDate) Date() (time.Time, bool) {
	switch d.Kind {
	case DateTimestamp, DateValue:
		return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC), true
	case DateString:
		return ParseYMD(d.Text)
	}
	return time.Time{}, false
}

// FormatYMD renders a date as yyyy/mm/dd.
func FormatYMD(t time.Time) string {
	return t.Format("2006/01/02")
}

// ParseYMD accepts "yyyy/mm/dd" and "yyyy-mm-dd".
func ParseYMD(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006/01/02", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CellStyle is the per-field color pair attached to a booking cell.
type CellStyle struct {
	BGColor   string `json:"bgColor" bson:"bg_color"`
	TextColor string `json:"textColor" bson:"text_color"`
}

// DefaultStyles returns the styling applied when a booking carries none.
func DefaultStyles() map[string]CellStyle {
	return map[string]CellStyle{
		"departureDate": {BGColor: "#e6f7ff", TextColor: "#1890ff"},
		"groupName":     {BGColor: "#ffffff", TextColor: "#000000"},
		"destination":   {BGColor: "#ffffff", TextColor: "#000000"},
		"companyName":   {BGColor: "#ffffff", TextColor: "#000000"},
		"price":         {BGColor: "#ffffff", TextColor: "#000000"},
		"driverName":    {BGColor: "#ffffff", TextColor: "#000000"},
		"memo":          {BGColor: "#ffffff", TextColor: "#000000"},
	}
}

// RawBooking is one booking record as the document store hands it over.
// Day and Span are deliberately untyped: stored documents carry them as
// numbers, numeric strings or nothing at all, and normalization owns the
// coercion.
type RawBooking struct {
	ID          string
	VehicleName string
	Month       int
	Year        int
	Day         any
	Span        any

	OrderDate     string
	DepartureDate RawDate
	ReturnDate    RawDate

	GroupName     string
	Destination   string
	CompanyName   string
	ContactPerson string
	ContactInfo   string
	DriverName    string
	Price         string
	Passengers    string
	BusType       string
	PaymentMethod string
	Memo          string

	ItineraryReceived bool
	PaymentCompleted  bool

	Styles map[string]CellStyle
}

// Content holds the validated display fields of a booking. DepartureDate is
// always a non-empty yyyy/mm/dd string.
type Content struct {
	OrderDate         string `json:"orderDate"`
	DepartureDate     string `json:"departureDate"`
	ReturnDate        string `json:"returnDate,omitempty"`
	GroupName         string `json:"groupName"`
	Destination       string `json:"destination"`
	CompanyName       string `json:"companyName"`
	ContactPerson     string `json:"contactPerson"`
	ContactInfo       string `json:"contactInfo"`
	DriverName        string `json:"driverName"`
	Price             string `json:"price"`
	Passengers        string `json:"passengers"`
	BusType           string `json:"busType"`
	PaymentMethod     string `json:"paymentMethod"`
	ItineraryReceived bool   `json:"itineraryReceived"`
	PaymentCompleted  bool   `json:"paymentCompleted"`
	Memo              string `json:"memo"`
}

// Entry is a booking validated against a specific (year, month): day within
// the month, span clamped so the entry never crosses the month boundary.
type Entry struct {
	ID          string               `json:"id"`
	VehicleName string               `json:"vehicleName"`
	Day         int                  `json:"day"`
	Span        int                  `json:"span"`
	Content     Content              `json:"content"`
	Styles      map[string]CellStyle `json:"styles,omitempty"`
}

// LastDay is the final day the entry covers, using the clamped span.
func (e Entry) LastDay() int {
	return e.Day + e.Span - 1
}

// Covers reports whether the entry occupies the given day of its month.
func (e Entry) Covers(day int) bool {
	return day >= e.Day && day <= e.LastDay()
}

// DepartureDate parses the entry's display date back into a calendar date.
func (e Entry) DepartureDate() (time.Time, bool) {
	return ParseYMD(e.Content.DepartureDate)
}

func parseOrdinal(v any) (int, bool) {
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
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	case fmt.Stringer:
		i, err := strconv.Atoi(strings.TrimSpace(n.String()))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}
