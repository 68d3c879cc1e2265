package schedule

import (
	"strings"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestItineraryDue(t *testing.T) {
	departure := day(2025, time.March, 22)
	tests := []struct {
		name     string
		today    time.Time
		received bool
		want     bool
	}{
		{"deadline day", day(2025, time.March, 1), false, true},
		{"day before deadline", day(2025, time.February, 28), false, false},
		{"day before departure", day(2025, time.March, 21), false, true},
		{"departure day", day(2025, time.March, 22), false, false},
		{"after departure", day(2025, time.March, 25), false, false},
		{"already received", day(2025, time.March, 10), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ItineraryDue(departure, tt.received, tt.today); got != tt.want {
				t.Errorf("ItineraryDue(%v, %v, %v) = %v, want %v",
					departure, tt.received, tt.today, got, tt.want)
			}
		})
	}
}

func TestComputeAlertsConsecutiveRun(t *testing.T) {
	raws := []RawBooking{
		{ID: "a", VehicleName: "小型1", Day: 3, Span: 6, ItineraryReceived: true},
		{ID: "b", VehicleName: "中型1", Day: 3, Span: 5, ItineraryReceived: true},
	}
	g := BuildGrid(raws, 2025, 4, []string{"小型1", "中型1"})
	alerts := ComputeAlerts(g, day(2025, time.April, 1))
	if len(alerts) != 1 {
		t.Fatalf("alerts = %d, want 1 (only the six-day run)", len(alerts))
	}
	a := alerts[0]
	if a.Kind != AlertConsecutiveRun || a.Severity != SeverityWarning {
		t.Errorf("kind/severity = %s/%s", a.Kind, a.Severity)
	}
	if a.VehicleName != "小型1" {
		t.Errorf("vehicle = %q", a.VehicleName)
	}
	want := "小型1: 6日間連続稼働中 (3, 4, 5, 6, 7, 8日)"
	if a.Message != want {
		t.Errorf("message = %q, want %q", a.Message, want)
	}
}

func TestComputeAlertsRunSpansAdjacentBookings(t *testing.T) {
	// Two back-to-back three-day bookings form one six-day run.
	raws := []RawBooking{
		{ID: "a", VehicleName: "小型1", Day: 10, Span: 3, ItineraryReceived: true},
		{ID: "b", VehicleName: "小型1", Day: 13, Span: 3, ItineraryReceived: true},
	}
	g := BuildGrid(raws, 2025, 4, []string{"小型1"})
	alerts := ComputeAlerts(g, day(2025, time.April, 1))
	if len(alerts) != 1 {
		t.Fatalf("alerts = %d, want 1", len(alerts))
	}
	if got := alerts[0].Days; len(got) != 6 || got[0] != 10 || got[5] != 15 {
		t.Errorf("run days = %v, want 10..15", got)
	}
}

func TestComputeAlertsItineraryDeadline(t *testing.T) {
	raws := []RawBooking{
		{ID: "due", VehicleName: "小型1", Day: 22, Span: 1,
			DepartureDate: DateFromText("2025/03/22"), GroupName: "山田観光"},
		{ID: "received", VehicleName: "小型1", Day: 23, Span: 1,
			DepartureDate: DateFromText("2025/03/23"), GroupName: "田中ツアー",
			ItineraryReceived: true},
	}
	g := BuildGrid(raws, 2025, 3, []string{"小型1"})
	alerts := ComputeAlerts(g, day(2025, time.March, 5))
	if len(alerts) != 1 {
		t.Fatalf("alerts = %d, want 1", len(alerts))
	}
	a := alerts[0]
	if a.Kind != AlertItineraryDeadline || a.Severity != SeverityError {
		t.Errorf("kind/severity = %s/%s", a.Kind, a.Severity)
	}
	if !strings.Contains(a.Message, "03/22") || !strings.Contains(a.Message, "山田観光") {
		t.Errorf("message = %q", a.Message)
	}
}

func TestComputeAlertsUnparseableDepartureNeverAlerts(t *testing.T) {
	// A fallback-synthesized date always parses, so the no-alert case is a
	// resolved date far outside the window.
	raws := []RawBooking{
		{ID: "a", VehicleName: "小型1", Day: 5, Span: 1,
			DepartureDate: DateFromText("2025/06/05")},
	}
	g := BuildGrid(raws, 2025, 6, []string{"小型1"})
	if alerts := ComputeAlerts(g, day(2025, time.March, 5)); len(alerts) != 0 {
		t.Errorf("departure outside the window alerted: %+v", alerts)
	}
}

func TestComputeAlertsNilGrid(t *testing.T) {
	if got := ComputeAlerts(nil, day(2025, time.March, 5)); got != nil {
		t.Errorf("nil grid should produce no alerts, got %+v", got)
	}
}
