package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RawRow is one parsed source row, keyed by column header. Values are strings
// for cells read from a workbook or HTML table; native dates and numbers pass
// through unchanged when a reader can produce them.
type RawRow map[string]any

// Sheet is one parsed table: its header row plus data rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    []RawRow
}

// Concept is a canonical semantic field together with the source-column
// spellings that may carry it. Resolution happens once per sheet, not per row.
type Concept struct {
	Key      string   // canonical concept name
	Names    []string // accepted literal spellings, in priority order
	Keywords []string // a column matches when it contains every keyword (case-insensitive)

	// BlankSensitive concepts distinguish "column exists but cell blank"
	// (resolves to "") from "column does not exist". The source workbooks use
	// blank audit-flag cells meaningfully.
	BlankSensitive bool

	// Date concepts route through the date normalizer instead of plain
	// string extraction.
	Date bool

	// Default is the value used when the concept is unresolved or blank.
	Default string
}

// ResolveColumns maps concept keys to actual column names. Concepts with no
// matching column are absent from the result; callers must treat that as
// "value absent", never as an error.
func ResolveColumns(columns []string, concepts []Concept) map[string]string {
	resolved := make(map[string]string, len(concepts))
	for _, c := range concepts {
		if col, ok := resolveOne(columns, c); ok {
			resolved[c.Key] = col
		}
	}
	return resolved
}

// resolveOne tries, in priority order: exact match, case-insensitive
// whitespace-collapsed match, then keyword containment. First match wins.
func resolveOne(columns []string, c Concept) (string, bool) {
	for _, name := range c.Names {
		for _, col := range columns {
			if col == name {
				return col, true
			}
		}
	}

	for _, name := range c.Names {
		folded := foldKey(name)
		for _, col := range columns {
			if foldKey(col) == folded {
				return col, true
			}
		}
	}

	if len(c.Keywords) > 0 {
		for _, col := range columns {
			lower := strings.ToLower(col)
			all := true
			for _, kw := range c.Keywords {
				if !strings.Contains(lower, kw) {
					all = false
					break
				}
			}
			if all {
				return col, true
			}
		}
	}

	return "", false
}

// foldKey lowercases and collapses runs of whitespace to a single space.
func foldKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// conceptCell returns the raw cell for a concept, honoring the blank-vs-
// missing distinction: ok is false only when the concept's column is not
// present on the sheet.
func conceptCell(row RawRow, resolved map[string]string, key string) (any, bool) {
	col, ok := resolved[key]
	if !ok {
		return nil, false
	}
	v, ok := row[col]
	if !ok {
		return nil, true
	}
	return v, true
}

// cellString renders a raw cell as a trimmed string. The literal placeholders
// some exports write for missing values count as empty.
func cellString(v any) string {
	s := strings.TrimSpace(anyToString(v))
	if s == "null" || s == "undefined" {
		return ""
	}
	return s
}

func anyToString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
