package codes

import (
	"testing"

	"claimlens/internal/model"
)

func TestCanonical_Defaults(t *testing.T) {
	table := NewTable(nil)

	tests := []struct {
		field string
		value string
		want  string
	}{
		{FieldAAInd, "N", "Manual"},
		{FieldAAInd, "n", "Manual"},
		{FieldAAInd, "Manual", "Manual"},
		{FieldAAInd, " Y ", "Auto"},
		{FieldPaperEdi, "EDI", "Electronic"},
		{FieldPaperEdi, "p", "Paper"},
		{FieldFormType, "H", "Professional"},
		{FieldAAInd, "X", "X"},      // unknown code passes through
		{"noSuchField", " v ", "v"}, // unknown field trims only
	}

	for _, tt := range tests {
		if got := table.Canonical(tt.field, tt.value); got != tt.want {
			t.Errorf("Canonical(%q, %q) = %q, want %q", tt.field, tt.value, got, tt.want)
		}
	}
}

func TestEqual_EquivalentCodes(t *testing.T) {
	table := NewTable(nil)

	if !table.Equal(FieldAAInd, "N", "Manual") {
		t.Error("Expected N and Manual to compare equal")
	}
	if !table.Equal(FieldAAInd, "n", "MANUAL") {
		t.Error("Expected n and MANUAL to compare equal")
	}
	if table.Equal(FieldAAInd, "N", "Auto") {
		t.Error("Expected N and Auto to differ")
	}
}

func TestNewTable_OverrideReplacesField(t *testing.T) {
	table := NewTable(model.CodesConfig{
		FieldAAInd: {"Z": "Custom"},
	})

	if got := table.Canonical(FieldAAInd, "z"); got != "Custom" {
		t.Errorf("Expected override to map z to Custom, got %q", got)
	}
	// Override replaces the whole field map, so the default is gone
	if got := table.Canonical(FieldAAInd, "N"); got != "N" {
		t.Errorf("Expected default mapping to be replaced, got %q", got)
	}
	// Other fields keep their defaults
	if got := table.Canonical(FieldPaperEdi, "e"); got != "Electronic" {
		t.Errorf("Expected untouched field to keep defaults, got %q", got)
	}
}
