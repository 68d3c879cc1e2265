package schedule

import "testing"

func singleVehicleGrid(t *testing.T, raws ...RawBooking) *Grid {
	t.Helper()
	return BuildGrid(raws, 2025, 4, []string{"小型1"})
}

func TestApplyChangesInOrder(t *testing.T) {
	g := singleVehicleGrid(t)
	booking := func(day int) *RawBooking {
		return &RawBooking{ID: "a", VehicleName: "小型1", Day: day, Span: 1}
	}
	g.ApplyChanges([]ChangeEvent{
		{Kind: ChangeAdded, VehicleName: "小型1", BookingID: "a", Data: booking(5)},
		{Kind: ChangeModified, VehicleName: "小型1", BookingID: "a", Data: booking(7)},
	})
	row := g.Row("小型1")
	if len(row.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(row.Entries))
	}
	if row.Entries[0].Day != 7 {
		t.Errorf("day = %d, want 7 (the later event in the batch)", row.Entries[0].Day)
	}

	// Reversed delivery leaves the earlier day visible.
	g2 := singleVehicleGrid(t)
	g2.ApplyChanges([]ChangeEvent{
		{Kind: ChangeModified, VehicleName: "小型1", BookingID: "a", Data: booking(7)},
		{Kind: ChangeAdded, VehicleName: "小型1", BookingID: "a", Data: booking(5)},
	})
	if got := g2.Row("小型1").Entries[0].Day; got != 5 {
		t.Errorf("reversed batch: day = %d, want 5", got)
	}
}

func TestApplyChangesModifyUnknownIDAppends(t *testing.T) {
	g := singleVehicleGrid(t)
	g.ApplyChanges([]ChangeEvent{
		{Kind: ChangeModified, VehicleName: "小型1", BookingID: "ghost",
			Data: &RawBooking{ID: "ghost", VehicleName: "小型1", Day: 3, Span: 2}},
	})
	row := g.Row("小型1")
	if len(row.Entries) != 1 || row.Entries[0].ID != "ghost" {
		t.Fatalf("modify of an unseen id should insert the booking, got %+v", row.Entries)
	}
}

func TestApplyChangesRemoveIdempotent(t *testing.T) {
	g := singleVehicleGrid(t,
		RawBooking{ID: "a", VehicleName: "小型1", Day: 5, Span: 2})
	removed := ChangeEvent{Kind: ChangeRemoved, VehicleName: "小型1", BookingID: "a"}

	g.ApplyChanges([]ChangeEvent{removed})
	if n := len(g.Row("小型1").Entries); n != 0 {
		t.Fatalf("entries after remove = %d, want 0", n)
	}
	g.ApplyChanges([]ChangeEvent{removed})
	if n := len(g.Row("小型1").Entries); n != 0 {
		t.Errorf("second remove of the same id must be a no-op, entries = %d", n)
	}
}

func TestApplyChangesUntrackedVehicleIgnored(t *testing.T) {
	g := singleVehicleGrid(t)
	g.ApplyChanges([]ChangeEvent{
		{Kind: ChangeAdded, VehicleName: "大型9", BookingID: "x",
			Data: &RawBooking{ID: "x", VehicleName: "大型9", Day: 1, Span: 1}},
	})
	if n := len(g.Row("小型1").Entries); n != 0 {
		t.Errorf("untracked vehicle leaked into the grid, entries = %d", n)
	}
}

func TestApplyChangesNormalizesAgainstGridMonth(t *testing.T) {
	g := singleVehicleGrid(t)
	g.ApplyChanges([]ChangeEvent{
		{Kind: ChangeAdded, VehicleName: "小型1", BookingID: "a",
			Data: &RawBooking{ID: "a", VehicleName: "小型1", Day: 35, Span: 10}},
	})
	e := g.Row("小型1").Entries[0]
	if e.Day != 30 || e.Span != 1 {
		t.Errorf("merged entry = day %d span %d, want day 30 span 1 for April", e.Day, e.Span)
	}
}

func TestApplyChangesAddedWithoutDataSkipped(t *testing.T) {
	g := singleVehicleGrid(t)
	g.ApplyChanges([]ChangeEvent{
		{Kind: ChangeAdded, VehicleName: "小型1", BookingID: "a"},
	})
	if n := len(g.Row("小型1").Entries); n != 0 {
		t.Errorf("added event without data must be skipped, entries = %d", n)
	}
}
