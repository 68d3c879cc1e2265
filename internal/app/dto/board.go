package dto

import (
	"github.com/pinball19/bus-app-2/internal/app/board"
	"github.com/pinball19/bus-app-2/internal/domain/calendar"
	"github.com/pinball19/bus-app-2/internal/domain/schedule"
)

// DayHeader is one column of the board header.
type DayHeader struct {
	Day        int    `json:"day"`
	Weekday    string `json:"weekday"`
	IsSaturday bool   `json:"isSaturday"`
	IsSunday   bool   `json:"isSunday"`
}

// Board is the full display payload: header, rows, alerts and the contact
// names offered as filter choices.
type Board struct {
	Month    int              `json:"month"`
	Year     int              `json:"year"`
	Days     []DayHeader      `json:"days"`
	Rows     []schedule.Row   `json:"rows"`
	Alerts   []schedule.Alert `json:"alerts"`
	Contacts []string         `json:"contacts"`
}

// MapBoard expands the snapshot with per-day header metadata.
func MapBoard(snap board.Snapshot) Board {
	month, year := snap.Selection.Month, snap.Selection.Year
	last := calendar.DaysInMonth(year, month)
	days := make([]DayHeader, 0, last)
	for d := 1; d <= last; d++ {
		wd := calendar.WeekdayOf(year, month, d)
		days = append(days, DayHeader{
			Day:        d,
			Weekday:    wd.Label,
			IsSaturday: wd.IsSaturday,
			IsSunday:   wd.IsSunday,
		})
	}
	return Board{
		Month:    month,
		Year:     year,
		Days:     days,
		Rows:     snap.Grid.Rows,
		Alerts:   snap.Alerts,
		Contacts: snap.Contacts,
	}
}
