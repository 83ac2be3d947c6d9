package ingest

import "testing"

func TestResolveOne_ExactMatchWinsFirst(t *testing.T) {
	concept := Concept{
		Key:      "auditFlag",
		Names:    []string{"Audit Flag", "auditFlag"},
		Keywords: []string{"audit", "flag"},
	}

	col, ok := resolveOne([]string{"Audit Flag", "clmId"}, concept)
	if !ok || col != "Audit Flag" {
		t.Errorf("Expected exact match on %q, got %q (ok=%v)", "Audit Flag", col, ok)
	}
}

func TestResolveOne_CaseInsensitiveWhitespaceCollapsed(t *testing.T) {
	concept := Concept{
		Key:   "auditFlag",
		Names: []string{"Audit Flag"},
	}

	col, ok := resolveOne([]string{"clmId", "audit   FLAG"}, concept)
	if !ok || col != "audit   FLAG" {
		t.Errorf("Expected folded match, got %q (ok=%v)", col, ok)
	}
}

func TestResolveOne_KeywordScan(t *testing.T) {
	concept := Concept{
		Key:      "auditFlag",
		Names:    []string{"Audit Flag"},
		Keywords: []string{"audit", "flag"},
	}

	col, ok := resolveOne([]string{"AUDIT_FLAG"}, concept)
	if !ok || col != "AUDIT_FLAG" {
		t.Errorf("Expected keyword match on AUDIT_FLAG, got %q (ok=%v)", col, ok)
	}

	// All keywords must be present
	if _, ok := resolveOne([]string{"audit_code"}, concept); ok {
		t.Error("Expected no match when a keyword is missing")
	}
}

func TestResolveOne_NoMatch(t *testing.T) {
	concept := Concept{Key: "score", Names: []string{"Score"}}

	if col, ok := resolveOne([]string{"clmId", "chrgAmt"}, concept); ok {
		t.Errorf("Expected no match, got %q", col)
	}
}

func TestResolveColumns_OnePassPerSheet(t *testing.T) {
	concepts := []Concept{
		{Key: "clmId", Names: []string{"clmId"}},
		{Key: "score", Names: []string{"Score", "score"}},
		{Key: "auditFlag", Names: []string{"Audit Flag"}, Keywords: []string{"audit", "flag"}},
	}

	resolved := ResolveColumns([]string{"clmId", "score", "AuditFlag"}, concepts)

	if resolved["clmId"] != "clmId" {
		t.Errorf("clmId resolved to %q", resolved["clmId"])
	}
	if resolved["score"] != "score" {
		t.Errorf("score resolved to %q", resolved["score"])
	}
	if resolved["auditFlag"] != "AuditFlag" {
		t.Errorf("auditFlag resolved to %q", resolved["auditFlag"])
	}
}

func TestCellString_PlaceholdersCountAsEmpty(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{" Y ", "Y"},
		{"null", ""},
		{"undefined", ""},
		{nil, ""},
		{float64(12.5), "12.5"},
	}

	for _, tt := range tests {
		if got := cellString(tt.in); got != tt.want {
			t.Errorf("cellString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
