// Package calendar provides the date arithmetic the scheduling board is
// built on: month lengths and weekday classification for header rendering.
package calendar

import "time"

// Weekday describes one day's position in the week for display purposes.
type Weekday struct {
	Label      string
	IsSaturday bool
	IsSunday   bool
}

var labels = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// DaysInMonth returns the number of days in the given 1-indexed month,
// accounting for leap years.
func DaysInMonth(year, month int) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekdayOf classifies the weekday of (year, month, day). Callers must
// supply a valid date; there is no error path.
func WeekdayOf(year, month, day int) Weekday {
	wd := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()
	return Weekday{
		Label:      labels[wd],
		IsSaturday: wd == time.Saturday,
		IsSunday:   wd == time.Sunday,
	}
}

// ClampDay forces day into [1, DaysInMonth(year, month)].
func ClampDay(year, month, day int) int {
	if day < 1 {
		return 1
	}
	if last := DaysInMonth(year, month); day > last {
		return last
	}
	return day
}

// Midnight truncates t to day granularity in its own location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
