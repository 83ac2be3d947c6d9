package ingest

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ParseWorkbook parses an xlsx document into sheets of header-keyed rows.
// The first row of each sheet is its header row; short data rows are padded
// so every row carries every header (blank cells stay distinguishable from
// absent columns).
func ParseWorkbook(data []byte) ([]Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		sheets = append(sheets, buildSheet(name, rows))
	}

	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return sheets, nil
}

// buildSheet converts a raw cell grid into header-keyed rows.
func buildSheet(name string, grid [][]string) Sheet {
	sheet := Sheet{Name: name}
	if len(grid) == 0 {
		return sheet
	}

	for _, h := range grid[0] {
		sheet.Headers = append(sheet.Headers, h)
	}

	for _, cells := range grid[1:] {
		row := make(RawRow, len(sheet.Headers))
		for i, header := range sheet.Headers {
			if header == "" {
				continue
			}
			if i < len(cells) {
				row[header] = cells[i]
			} else {
				row[header] = ""
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet
}
