package export

import (
	"strings"
	"testing"

	"github.com/pinball19/bus-app-2/internal/domain/schedule"
)

func TestMonthCSVHeader(t *testing.T) {
	got := string(MonthCSV(nil))
	want := "ID,バス名,日付,日数,受注日,出発日,帰着日,団体名,行き先,人数,料金,担当者,連絡先,車種,備考,スタイル設定\n"
	if got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
}

func TestMonthCSVRow(t *testing.T) {
	raws := []schedule.RawBooking{{
		ID:            "abc123",
		VehicleName:   "小型1",
		Day:           10,
		Span:          3,
		OrderDate:     "2025/03/01",
		DepartureDate: schedule.DateFromText("2025/04/10"),
		ReturnDate:    schedule.DateFromText("2025-04-12"),
		GroupName:     "山田観光",
		Destination:   "京都",
		Passengers:    "40",
		Price:         "120000",
		ContactPerson: "佐藤",
		ContactInfo:   "090-0000-0000",
		BusType:       "中型",
		Memo:          "朝6時出発",
	}}
	lines := strings.Split(string(MonthCSV(raws)), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	want := "abc123,小型1,10,3,2025/03/01,2025/04/10,2025/04/12,山田観光,京都,40,120000,佐藤,090-0000-0000,中型,朝6時出発,"
	if lines[1] != want {
		t.Errorf("row = %q, want %q", lines[1], want)
	}
}

func TestMonthCSVQuotesCommaFields(t *testing.T) {
	raws := []schedule.RawBooking{{
		ID:          "x",
		VehicleName: "小型1",
		Memo:        "往路,復路で経路が違う",
	}}
	out := string(MonthCSV(raws))
	if !strings.Contains(out, `"往路,復路で経路が違う"`) {
		t.Errorf("comma field not quoted: %q", out)
	}
}

func TestMonthCSVStylesColumn(t *testing.T) {
	raws := []schedule.RawBooking{{
		ID:          "x",
		VehicleName: "小型1",
		Styles: map[string]schedule.CellStyle{
			"memo": {BGColor: "#ffeeee", TextColor: "#cc0000"},
		},
	}}
	lines := strings.Split(string(MonthCSV(raws)), "\n")
	last := lines[1]
	// Marshaled JSON contains commas, so the whole cell is quoted.
	if !strings.Contains(last, `"{"memo":{"bgColor":"#ffeeee","textColor":"#cc0000"}}"`) {
		t.Errorf("styles column = %q", last)
	}
}

func TestMonthCSVEmptyOrdinals(t *testing.T) {
	raws := []schedule.RawBooking{{ID: "x", VehicleName: "小型1"}}
	lines := strings.Split(string(MonthCSV(raws)), "\n")
	if !strings.HasPrefix(lines[1], "x,小型1,,,") {
		t.Errorf("absent day/span should render empty: %q", lines[1])
	}
}
