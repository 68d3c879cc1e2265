// Package export assembles the month's bookings into the spreadsheet
// interchange format the office works with.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pinball19/bus-app-2/internal/domain/schedule"
)

// Column order is fixed; downstream spreadsheets reference these positions.
var headers = []string{
	"ID", "バス名", "日付", "日数", "受注日", "出発日", "帰着日",
	"団体名", "行き先", "人数", "料金", "担当者", "連絡先", "車種",
	"備考", "スタイル設定",
}

// MonthCSV renders one row per booking. Departure and return dates are
// resolved to yyyy/mm/dd text; the style map is embedded as JSON. Fields
// containing a comma are double-quoted.
func MonthCSV(raws []schedule.RawBooking) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(headers, ","))
	buf.WriteByte('\n')
	for i, raw := range raws {
		buf.WriteString(strings.Join(row(raw), ","))
		if i < len(raws)-1 {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

func row(raw schedule.RawBooking) []string {
	fields := []string{
		raw.ID,
		raw.VehicleName,
		ordinal(raw.Day),
		ordinal(raw.Span),
		raw.OrderDate,
		dateText(raw.DepartureDate),
		dateText(raw.ReturnDate),
		raw.GroupName,
		raw.Destination,
		raw.Passengers,
		raw.Price,
		raw.ContactPerson,
		raw.ContactInfo,
		raw.BusType,
		raw.Memo,
		stylesJSON(raw.Styles),
	}
	for i, f := range fields {
		fields[i] = quoteIfComma(f)
	}
	return fields
}

func quoteIfComma(s string) string {
	if strings.Contains(s, ",") {
		return `"` + s + `"`
	}
	return s
}

func dateText(d schedule.RawDate) string {
	if t, ok := d.Date(); ok {
		return schedule.FormatYMD(t)
	}
	return d.Text
}

func ordinal(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func stylesJSON(styles map[string]schedule.CellStyle) string {
	if len(styles) == 0 {
		return ""
	}
	b, err := json.Marshal(styles)
	if err != nil {
		return ""
	}
	return string(b)
}
