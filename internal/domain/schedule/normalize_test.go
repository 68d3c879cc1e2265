package schedule

import (
	"testing"
	"time"
)

func TestNormalizeDayClamping(t *testing.T) {
	tests := []struct {
		name     string
		day      any
		wantDay  int
	}{
		{"valid day", 12, 12},
		{"day as float from store", float64(12), 12},
		{"day as numeric string", "12", 12},
		{"non-numeric string", "soon", 1},
		{"nil day", nil, 1},
		{"zero", 0, 1},
		{"negative", -3, 1},
		{"past month end", 35, 30}, // april
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Normalize(RawBooking{VehicleName: "小型1", Day: tt.day, Span: 1}, 2025, 4)
			if e.Day != tt.wantDay {
				t.Errorf("day = %d, want %d", e.Day, tt.wantDay)
			}
		})
	}
}

func TestNormalizeSpanClamping(t *testing.T) {
	tests := []struct {
		name     string
		day      any
		span     any
		wantSpan int
	}{
		{"valid span", 5, 3, 3},
		{"missing span", 5, nil, 1},
		{"zero span", 5, 0, 1},
		{"span as string", 5, "4", 4},
		{"span past month end", 28, 10, 3},  // april: 28, 29, 30
		{"span at clamped day", 35, 10, 1},  // day clamps to 30 first
		{"full month", 1, 30, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Normalize(RawBooking{Day: tt.day, Span: tt.span}, 2025, 4)
			if e.Span != tt.wantSpan {
				t.Errorf("span = %d, want %d", e.Span, tt.wantSpan)
			}
			if last := e.Day + e.Span - 1; last > 30 {
				t.Errorf("entry extends to day %d, past month end", last)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := RawBooking{VehicleName: "中型1", Day: "42", Span: 9}
	once := Normalize(raw, 2025, 4)
	twice := Normalize(RawBooking{VehicleName: "中型1", Day: once.Day, Span: once.Span}, 2025, 4)
	if once.Day != twice.Day || once.Span != twice.Span {
		t.Errorf("normalization not idempotent: first (%d,%d), second (%d,%d)",
			once.Day, once.Span, twice.Day, twice.Span)
	}
}

func TestNormalizeDepartureDate(t *testing.T) {
	ts := time.Date(2025, 4, 18, 9, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		date RawDate
		want string
	}{
		{"structured timestamp", DateFromTime(ts), "2025/04/18"},
		{"date value", DateFromValue(ts), "2025/04/18"},
		{"slash text", DateFromText("2025/04/18"), "2025/04/18"},
		{"dash text", DateFromText("2025-04-18"), "2025/04/18"},
		{"unparseable text", DateFromText("mid april"), "2025/04/05"},
		{"absent", RawDate{}, "2025/04/05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Normalize(RawBooking{Day: 5, Span: 1, DepartureDate: tt.date}, 2025, 4)
			if e.Content.DepartureDate != tt.want {
				t.Errorf("departureDate = %q, want %q", e.Content.DepartureDate, tt.want)
			}
		})
	}
}

func TestNormalizeContentDefaults(t *testing.T) {
	e := Normalize(RawBooking{Day: 1, Span: 1}, 2025, 4)
	if e.Content.GroupName != "" || e.Content.Memo != "" || e.Content.Price != "" {
		t.Errorf("expected empty defaults, got %+v", e.Content)
	}
	if e.Content.ItineraryReceived || e.Content.PaymentCompleted {
		t.Errorf("expected false flags, got %+v", e.Content)
	}
	if e.Styles != nil {
		t.Errorf("expected nil styles (default styling), got %v", e.Styles)
	}
}

func TestNormalizeMemoPreserved(t *testing.T) {
	raw := RawBooking{Day: 3, Span: 1, BusType: "大型", Memo: "朝6時集合"}
	e := Normalize(raw, 2025, 4)
	if e.Content.Memo != "朝6時集合" {
		t.Errorf("memo mutated: %q", e.Content.Memo)
	}
	if e.Content.BusType != "大型" {
		t.Errorf("busType = %q, want 大型", e.Content.BusType)
	}
}
