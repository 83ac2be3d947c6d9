package ingest

import (
	"testing"
	"time"
)

func TestNormalizeDate_EmptyInputs(t *testing.T) {
	for _, in := range []any{nil, "", "  ", "null", "undefined", float64(0), 0, time.Time{}} {
		if got := NormalizeDate(in); got != "" {
			t.Errorf("NormalizeDate(%v) = %q, want empty", in, got)
		}
	}
}

func TestNormalizeDate_NativeDatePassthrough(t *testing.T) {
	d := time.Date(2023, time.June, 15, 10, 30, 0, 0, time.UTC)
	if got := NormalizeDate(d); got != "2023-06-15T10:30:00Z" {
		t.Errorf("NormalizeDate(native) = %q", got)
	}
}

func TestNormalizeDate_SerialEpoch(t *testing.T) {
	// Serial day-counts are anchored at 1899-12-30 to reproduce the
	// spreadsheet leap-year defect: serial + (value-1) days from the epoch.
	tests := []struct {
		serial any
		want   string
	}{
		{float64(1), "1899-12-30T00:00:00Z"},
		{float64(2), "1899-12-31T00:00:00Z"},
		{float64(3), "1900-01-01T00:00:00Z"},
		{float64(45107), "2023-06-30T00:00:00Z"},
		{"45107", "2023-06-30T00:00:00Z"}, // numeric string in (0,100000) is a serial
		{float64(45107.5), "2023-06-30T12:00:00Z"},
	}

	for _, tt := range tests {
		if got := NormalizeDate(tt.serial); got != tt.want {
			t.Errorf("NormalizeDate(%v) = %q, want %q", tt.serial, got, tt.want)
		}
	}
}

func TestNormalizeDate_CalendarStrings(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2023-06-15", "2023-06-15T00:00:00Z"},
		{"2023-06-15T08:00:00Z", "2023-06-15T08:00:00Z"},
		{"06/15/2023", "2023-06-15T00:00:00Z"},
	}

	for _, tt := range tests {
		if got := NormalizeDate(tt.in); got != tt.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDate_UnparseableReturnedUnchanged(t *testing.T) {
	in := "not a date at all"
	if got := NormalizeDate(in); got != in {
		t.Errorf("NormalizeDate(%q) = %q, want input unchanged", in, got)
	}

	// Numeric strings outside the serial window fall through to calendar
	// parsing, then passthrough.
	if got := NormalizeDate("123456789"); got != "123456789" {
		t.Errorf("NormalizeDate(large number) = %q, want passthrough", got)
	}
}
