package schedule

// ChangeKind mirrors the change types the store subscription delivers.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeModified ChangeKind = "modified"
	ChangeRemoved  ChangeKind = "removed"
)

// ChangeEvent is one document change from the store subscription. Data is
// present for added/modified and ignored for removed.
type ChangeEvent struct {
	Kind        ChangeKind  `json:"kind"`
	VehicleName string      `json:"vehicleName"`
	BookingID   string      `json:"bookingId"`
	Data        *RawBooking `json:"data,omitempty"`
}

// ApplyChanges folds a batch of change events into the grid in delivered
// order. Later events in a batch may depend on earlier ones (modify then
// remove in the same flush), so no reordering is permitted. Raw data is
// normalized against the grid's own month, with the same clamping rules as
// the initial build.
//
// Events for vehicles outside the tracked list are ignored; removing an id
// that is not present is a no-op. The caller is responsible for recomputing
// alerts afterwards.
func (g *Grid) ApplyChanges(events []ChangeEvent) {
	for _, ev := range events {
		row := g.Row(ev.VehicleName)
		if row == nil {
			continue
		}
		switch ev.Kind {
		case ChangeAdded, ChangeModified:
			if ev.Data == nil {
				continue
			}
			entry := Normalize(*ev.Data, g.Year, g.Month)
			if entry.ID == "" {
				entry.ID = ev.BookingID
			}
			if i := row.indexOf(entry.ID); i >= 0 {
				row.Entries[i] = entry
			} else {
				row.Entries = append(row.Entries, entry)
			}
		case ChangeRemoved:
			if i := row.indexOf(ev.BookingID); i >= 0 {
				row.Entries = append(row.Entries[:i], row.Entries[i+1:]...)
			}
		}
	}
}

func (r *Row) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range r.Entries {
		if r.Entries[i].ID == id {
			return i
		}
	}
	return -1
}
