package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ParseHTMLTables parses an HTML table export into the same sheet shape the
// workbook reader produces: one Sheet per <table>, first row as headers.
// Spreadsheet tools commonly offer "save as web page" exports; loading them
// must behave identically to loading the workbook itself.
func ParseHTMLTables(data []byte) ([]Sheet, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var sheets []Sheet
	n := 0

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "table" {
			n++
			name := tableName(node, n)
			sheets = append(sheets, buildSheet(name, tableGrid(node)))
			return // nested tables are not sheet data
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(sheets) == 0 {
		return nil, fmt.Errorf("document has no tables")
	}
	return sheets, nil
}

// tableGrid collects the cell text of every row in a table
func tableGrid(table *html.Node) [][]string {
	var grid [][]string

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "tr" {
			var cells []string
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					cells = append(cells, nodeText(c))
				}
			}
			grid = append(grid, cells)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)

	return grid
}

// tableName prefers a summary/id attribute, falling back to an ordinal name
func tableName(table *html.Node, ordinal int) string {
	for _, attr := range table.Attr {
		if (attr.Key == "summary" || attr.Key == "id") && attr.Val != "" {
			return attr.Val
		}
	}
	return fmt.Sprintf("Table %d", ordinal)
}

func nodeText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			buf.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.TrimSpace(buf.String())
}
