package schedule

import "sort"

// Row is one vehicle's line on the board: every normalized entry for that
// vehicle in the grid's month, in store order. Overlapping day ranges are
// permitted; render-time resolution is first match wins.
type Row struct {
	VehicleName string  `json:"vehicleName"`
	Entries     []Entry `json:"entries"`
}

// Grid is the per-vehicle, per-day occupancy structure for one month.
// Row order follows the configured vehicle list, never the data.
type Grid struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Rows  []Row `json:"rows"`
}

// BuildGrid normalizes every raw booking against (year, month) and groups
// the results by vehicle. Bookings whose vehicle name is not in the
// configured list are simply absent from the grid.
func BuildGrid(raws []RawBooking, year, month int, vehicles []string) *Grid {
	g := &Grid{Year: year, Month: month, Rows: make([]Row, 0, len(vehicles))}
	for _, name := range vehicles {
		row := Row{VehicleName: name}
		for _, raw := range raws {
			if raw.VehicleName != name {
				continue
			}
			row.Entries = append(row.Entries, Normalize(raw, year, month))
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}

// Row returns the row for the named vehicle, or nil when the vehicle is not
// tracked.
func (g *Grid) Row(name string) *Row {
	for i := range g.Rows {
		if g.Rows[i].VehicleName == name {
			return &g.Rows[i]
		}
	}
	return nil
}

// EntryStartingOn returns the first entry that begins on the given day.
// When overlapping bookings both start on the same day the earlier stored
// one wins.
func (r *Row) EntryStartingOn(day int) *Entry {
	for i := range r.Entries {
		if r.Entries[i].Day == day {
			return &r.Entries[i]
		}
	}
	return nil
}

// CoveredBy returns the entry whose multi-day span makes the given day an
// interior cell: the day is inside the entry's clamped range but is not its
// starting day. Days like this are suppressed at render time rather than
// shown as empty.
func (r *Row) CoveredBy(day int) *Entry {
	for i := range r.Entries {
		e := &r.Entries[i]
		if e.Day < day && e.Covers(day) {
			return e
		}
	}
	return nil
}

// IsEmpty reports whether the day has neither a starting entry nor an
// enclosing span.
func (r *Row) IsEmpty(day int) bool {
	return r.EntryStartingOn(day) == nil && r.CoveredBy(day) == nil
}

// OccupiedDays expands every entry's clamped span into individual days and
// returns them deduplicated in ascending order.
func (r *Row) OccupiedDays() []int {
	seen := map[int]struct{}{}
	for _, e := range r.Entries {
		for d := e.Day; d <= e.LastDay(); d++ {
			seen[d] = struct{}{}
		}
	}
	days := make([]int, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// ContactPersons returns the distinct non-empty contact names across the
// grid, in first-seen order. The board offers these as filter choices.
func (g *Grid) ContactPersons() []string {
	seen := map[string]struct{}{}
	var names []string
	for _, row := range g.Rows {
		for _, e := range row.Entries {
			name := e.Content.ContactPerson
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}
