package schedule

import (
	"reflect"
	"testing"
)

var testVehicles = []string{"マイクロ1", "小型1", "中型1"}

func TestBuildGridRowOrder(t *testing.T) {
	raws := []RawBooking{
		{ID: "a", VehicleName: "中型1", Day: 1, Span: 1},
		{ID: "b", VehicleName: "マイクロ1", Day: 2, Span: 1},
	}
	g := BuildGrid(raws, 2025, 4, testVehicles)
	if len(g.Rows) != len(testVehicles) {
		t.Fatalf("rows = %d, want %d", len(g.Rows), len(testVehicles))
	}
	for i, name := range testVehicles {
		if g.Rows[i].VehicleName != name {
			t.Errorf("row %d = %q, want %q (order must follow the configured list)", i, g.Rows[i].VehicleName, name)
		}
	}
	if len(g.Rows[1].Entries) != 0 {
		t.Errorf("小型1 should have no entries, got %d", len(g.Rows[1].Entries))
	}
}

func TestBuildGridUnknownVehicleAbsent(t *testing.T) {
	raws := []RawBooking{{ID: "x", VehicleName: "大型9", Day: 1, Span: 1}}
	g := BuildGrid(raws, 2025, 4, testVehicles)
	for _, row := range g.Rows {
		if len(row.Entries) != 0 {
			t.Errorf("booking for untracked vehicle leaked into row %q", row.VehicleName)
		}
	}
}

func TestRowInteriorSuppression(t *testing.T) {
	raws := []RawBooking{{ID: "a", VehicleName: "小型1", Day: 10, Span: 3}}
	g := BuildGrid(raws, 2025, 4, testVehicles)
	row := g.Row("小型1")
	if row == nil {
		t.Fatal("row missing")
	}

	if e := row.EntryStartingOn(10); e == nil || e.ID != "a" {
		t.Errorf("day 10 should be the starting cell")
	}
	for _, day := range []int{11, 12} {
		if row.EntryStartingOn(day) != nil {
			t.Errorf("no entry starts on day %d", day)
		}
		if cov := row.CoveredBy(day); cov == nil || cov.ID != "a" {
			t.Errorf("day %d should be interior to the span", day)
		}
		if row.IsEmpty(day) {
			t.Errorf("day %d must not render as empty", day)
		}
	}
	if !row.IsEmpty(9) || !row.IsEmpty(13) {
		t.Errorf("days outside the span should be empty")
	}
}

func TestRowInteriorUsesClampedSpan(t *testing.T) {
	// Raw span of 10 would reach day 37; clamped it ends at the 30th.
	raws := []RawBooking{{ID: "a", VehicleName: "小型1", Day: 28, Span: 10}}
	g := BuildGrid(raws, 2025, 4, testVehicles)
	row := g.Row("小型1")
	if cov := row.CoveredBy(30); cov == nil {
		t.Errorf("day 30 should be covered")
	}
	if got := row.Entries[0].LastDay(); got != 30 {
		t.Errorf("LastDay = %d, want 30", got)
	}
}

func TestRowFirstMatchWinsOnOverlap(t *testing.T) {
	raws := []RawBooking{
		{ID: "first", VehicleName: "小型1", Day: 5, Span: 2},
		{ID: "second", VehicleName: "小型1", Day: 5, Span: 1},
	}
	g := BuildGrid(raws, 2025, 4, testVehicles)
	if e := g.Row("小型1").EntryStartingOn(5); e == nil || e.ID != "first" {
		t.Errorf("overlap resolution must keep the first stored booking")
	}
}

func TestOccupiedDaysExpandsAndDedupes(t *testing.T) {
	raws := []RawBooking{
		{ID: "a", VehicleName: "小型1", Day: 1, Span: 3},
		{ID: "b", VehicleName: "小型1", Day: 3, Span: 2}, // overlaps day 3
		{ID: "c", VehicleName: "小型1", Day: 8, Span: 1},
	}
	g := BuildGrid(raws, 2025, 4, testVehicles)
	got := g.Row("小型1").OccupiedDays()
	want := []int{1, 2, 3, 4, 8}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("OccupiedDays = %v, want %v", got, want)
	}
}

func TestContactPersons(t *testing.T) {
	raws := []RawBooking{
		{ID: "a", VehicleName: "小型1", Day: 1, Span: 1, ContactPerson: "佐藤"},
		{ID: "b", VehicleName: "中型1", Day: 2, Span: 1, ContactPerson: "鈴木"},
		{ID: "c", VehicleName: "小型1", Day: 3, Span: 1, ContactPerson: "佐藤"},
		{ID: "d", VehicleName: "小型1", Day: 4, Span: 1},
	}
	g := BuildGrid(raws, 2025, 4, testVehicles)
	got := g.ContactPersons()
	want := []string{"佐藤", "鈴木"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ContactPersons = %v, want %v", got, want)
	}
}
