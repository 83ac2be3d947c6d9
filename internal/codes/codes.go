// Package codes maps raw categorical source codes to canonical labels so that
// logically-equivalent representations ("N", "Manual", "n") compare equal.
// The built-in tables are defaults, not authoritative: deployments override
// them wholesale per field from the config file.
package codes

import (
	"strings"

	"claimlens/internal/model"
)

// Filterable field names, as they appear in config overrides.
const (
	FieldAAInd    = "aaInd"
	FieldFormType = "formTyCd"
	FieldPaperEdi = "paperEdiCd"
	FieldNetwork  = "billProvNtCd"
)

var defaults = map[string]map[string]string{
	FieldAAInd: {
		"n":      "Manual",
		"manual": "Manual",
		"y":      "Auto",
		"a":      "Auto",
		"auto":   "Auto",
	},
	FieldFormType: {
		"h": "Professional",
		"u": "Institutional",
		"d": "Dental",
	},
	FieldPaperEdi: {
		"p":          "Paper",
		"paper":      "Paper",
		"e":          "Electronic",
		"edi":        "Electronic",
		"electronic": "Electronic",
	},
	FieldNetwork: {
		"i": "In-Network",
		"o": "Out-of-Network",
	},
}

// Table resolves raw codes to canonical labels per field
type Table struct {
	fields map[string]map[string]string
}

// NewTable builds a code table from the defaults, with any field present in
// overrides replacing that field's default map entirely.
func NewTable(overrides model.CodesConfig) *Table {
	fields := make(map[string]map[string]string, len(defaults))
	for field, m := range defaults {
		fields[field] = m
	}
	for field, m := range overrides {
		lowered := make(map[string]string, len(m))
		for code, label := range m {
			lowered[strings.ToLower(strings.TrimSpace(code))] = label
		}
		fields[field] = lowered
	}
	return &Table{fields: fields}
}

// Canonical returns the canonical label for a raw value of the given field.
// Unknown values are returned trimmed but otherwise unchanged.
func (t *Table) Canonical(field, value string) string {
	trimmed := strings.TrimSpace(value)
	m, ok := t.fields[field]
	if !ok {
		return trimmed
	}
	if label, ok := m[strings.ToLower(trimmed)]; ok {
		return label
	}
	return trimmed
}

// Equal reports whether two raw values of a field are logically equivalent:
// both are canonicalized, then compared case-insensitively.
func (t *Table) Equal(field, a, b string) bool {
	return strings.EqualFold(t.Canonical(field, a), t.Canonical(field, b))
}
