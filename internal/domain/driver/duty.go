package driver

import (
	"sort"
	"time"

	"github.com/pinball19/bus-app-2/internal/domain/schedule"
)

// WorkSummary aggregates a driver's duty over the trailing thirty days.
type WorkSummary struct {
	TotalDutyDays int `json:"totalDutyDays"`
	BookingCount  int `json:"bookingCount"`
}

// DutyReport is the consecutive-duty analysis over the window around today.
type DutyReport struct {
	MaxConsecutive int        `json:"maxConsecutive"`
	HasLongRun     bool       `json:"hasLongRun"`
	LongRuns       [][]string `json:"longRuns,omitempty"`
}

// DutyWindowDays is how far the consecutive-duty analysis looks on each
// side of today.
const DutyWindowDays = 15

// SummarizeWork counts duty days and bookings whose departure falls within
// the thirty days up to today. Bookings without a resolvable departure date
// are skipped. Each booking contributes its span (defaulting to one day).
func SummarizeWork(bookings []schedule.RawBooking, today time.Time) WorkSummary {
	from := today.AddDate(0, 0, -30)
	var sum WorkSummary
	for _, b := range bookings {
		dep, ok := b.DepartureDate.Date()
		if !ok {
			continue
		}
		if dep.Before(from) || dep.After(today) {
			continue
		}
		span := 1
		if n, ok := parseSpan(b.Span); ok && n > 1 {
			span = n
		}
		sum.TotalDutyDays += span
		sum.BookingCount++
	}
	return sum
}

// AnalyzeConsecutiveDuty expands every booking's departure date plus span
// into individual duty dates, then groups them into consecutive runs with
// the same adjacency rule the vehicle alerting uses. Dates are keyed as
// day offsets so runs spanning a month boundary are detected.
func AnalyzeConsecutiveDuty(bookings []schedule.RawBooking, today time.Time) DutyReport {
	dates := map[int64]time.Time{}
	for _, b := range bookings {
		dep, ok := b.DepartureDate.Date()
		if !ok {
			continue
		}
		span := 1
		if n, ok := parseSpan(b.Span); ok && n > 1 {
			span = n
		}
		for i := 0; i < span; i++ {
			d := dep.AddDate(0, 0, i)
			dates[epochDay(d)] = d
		}
	}

	offsets := make([]int, 0, len(dates))
	for off := range dates {
		offsets = append(offsets, int(off))
	}
	sort.Ints(offsets)

	report := DutyReport{}
	for _, run := range schedule.ConsecutiveRuns(offsets) {
		if len(run) > report.MaxConsecutive {
			report.MaxConsecutive = len(run)
		}
		if !schedule.Alertable(run) {
			continue
		}
		days := make([]string, len(run))
		for i, off := range run {
			days[i] = dates[int64(off)].Format("2006-01-02")
		}
		report.LongRuns = append(report.LongRuns, days)
	}
	report.HasLongRun = len(report.LongRuns) > 0
	return report
}

// UpcomingAssignments filters the driver's bookings down to those relevant
// within [today, today+days]: a departure inside the window, or a multi-day
// booking whose anchored span covers today. Results are ordered by
// departure date.
func UpcomingAssignments(bookings []schedule.RawBooking, today time.Time, days int) []schedule.RawBooking {
	end := today.AddDate(0, 0, days)
	var out []schedule.RawBooking
	for _, b := range bookings {
		dep, ok := b.DepartureDate.Date()
		if !ok {
			continue
		}
		if !dep.Before(today) && !dep.After(end) {
			out = append(out, b)
			continue
		}
		span, withSpan := parseSpan(b.Span)
		day, withDay := parseDayOf(b)
		if withSpan && span > 1 && withDay {
			start := time.Date(b.Year, time.Month(b.Month), day, 0, 0, 0, 0, time.UTC)
			finish := start.AddDate(0, 0, span-1)
			if !today.Before(start) && !today.After(finish) {
				out = append(out, b)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di, _ := out[i].DepartureDate.Date()
		dj, _ := out[j].DepartureDate.Date()
		return di.Before(dj)
	})
	return out
}

func epochDay(t time.Time) int64 {
	return t.Unix() / 86400
}

func parseSpan(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func parseDayOf(b schedule.RawBooking) (int, bool) {
	return parseSpan(b.Day)
}
