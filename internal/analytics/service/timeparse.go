package service

import (
	"strconv"
	"strings"
	"time"

	excelize "github.com/xuri/excelize/v2"
)

// форматы, которые встречались в выгрузках (Uniware, маркетплейсы, Excel)
var timeLayouts = append(append(append(
	[]string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02T15:04:05",
		"2006-01-02",
		"2006/01/02 15:04:05",
		"2006/01/02",
	},
	numericLayouts("/")...),
	numericLayouts("-")...),
	[]string{
		"Jan 2, 2006 15:04:05",
		"Jan 2, 2006 15:04",
		"Jan 2, 2006 3:04:05 PM",
		"Jan 2, 2006 3:04 PM",
		"Jan 2, 2006",
		"02 Jan 2006 15:04:05",
		"02 Jan 2006 15:04",
		"02 Jan 2006",
		"2-Jan-2006 15:04:05",
		"2-Jan-2006 15:04",
		"2-Jan-2006",
	}...,
)

// numericLayouts: месяц первым (US), потом день первым: запасной вариант,
// когда день > 12. Для каждого порядка одинаковый набор времени.
func numericLayouts(sep string) []string {
	clocks := []string{" 15:04:05", " 15:04", " 3:04:05 PM", " 3:04 PM", ""}
	out := make([]string, 0, 2*len(clocks))
	for _, date := range []string{"1" + sep + "2" + sep + "2006", "2" + sep + "1" + sep + "2006"} {
		for _, clock := range clocks {
			out = append(out, date+clock)
		}
	}
	return out
}

// ParseTimestamp: nil, если ничего не подошло. Часовой пояс, если он указан,
// сохраняется как есть: дата потом берётся по "настенному" времени записи.
func ParseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	// серийный номер Excel (дни с 1899-12-30), если ячейка числовая
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 20000 && f < 2958466 {
		if t, err := excelize.ExcelDateToTime(f, false); err == nil {
			return &t
		}
	}
	return nil
}

// DateKey: усечение до даты без перевода в UTC.
func DateKey(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}
