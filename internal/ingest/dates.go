package ingest

import (
	"strconv"
	"strings"
	"time"
)

// serialEpoch is day zero of the legacy spreadsheet day-count encoding.
// Day 1 nominally means 1900-01-01, but the originating system inherits the
// historical leap-year defect, which shifts the epoch to 1899-12-30.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// calendarLayouts are tried in order when a string cell is not a serial number.
var calendarLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01-02-06",
	"01/02/2006",
	"1/2/2006",
	"1/2/06",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-2006",
}

// NormalizeDate converts a raw cell into an ISO-8601 timestamp string.
// Empty input yields "". Numeric input (or a numeric string in (0, 100000))
// is a legacy serial day-count: serialEpoch + (value-1) days. Other strings
// are tried against known calendar layouts; an unparseable string is returned
// unchanged. Never fails. Used identically for claim and line dates.
func NormalizeDate(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.UTC().Format(time.RFC3339)
	case float64:
		if v == 0 {
			return ""
		}
		return serialToISO(v)
	case int:
		if v == 0 {
			return ""
		}
		return serialToISO(float64(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" || s == "null" || s == "undefined" {
			return ""
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil && n > 0 && n < 100000 {
			return serialToISO(n)
		}
		for _, layout := range calendarLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC().Format(time.RFC3339)
			}
		}
		return v
	default:
		return cellString(raw)
	}
}

func serialToISO(serial float64) string {
	ms := (serial - 1) * 86400000
	return serialEpoch.Add(time.Duration(ms * float64(time.Millisecond))).Format(time.RFC3339)
}
