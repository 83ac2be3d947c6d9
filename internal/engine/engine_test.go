package engine

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"claimlens/internal/model"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// writeWorkbook builds a two-sheet workbook on disk and returns its path
func writeWorkbook(t *testing.T, claims [][]any, lines [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Claims"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	writeRows(t, f, "Claims", claims)

	if lines != nil {
		if _, err := f.NewSheet("Lines"); err != nil {
			t.Fatalf("add sheet: %v", err)
		}
		writeRows(t, f, "Lines", lines)
	}

	path := filepath.Join(t.TempDir(), "claims.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func writeRows(t *testing.T, f *excelize.File, sheet string, rows [][]any) {
	t.Helper()
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, ref, cell); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
}

func testWorkbookPath(t *testing.T) string {
	t.Helper()
	claims := [][]any{
		{"clmId", "Score", "clmAmt_totChrgAmt", "billProv_city(pie chart)", "formTyCd"},
		{"C1", 0.85, 1200, "Austin", "H"},
		{"C2", 0.10, 300, "Boston", "U"},
	}
	lines := [][]any{
		{"clmId", "clmLnNum", "chrgAmt", "diagCd", "procCd", "revnuCd"},
		{"C1", 1, 1200, "E11.9", "99213", "-"},
		{"C2", 1, 300, "E11.9", "null", "0450"},
	}
	return writeWorkbook(t, claims, lines)
}

func TestEngine_LoadEndToEnd(t *testing.T) {
	e := New(model.DefaultConfig(), testLogger())
	defer e.Close()

	if err := e.Load(context.Background(), testWorkbookPath(t)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	state := e.LoadState()
	if state.Loading || state.Error != "" {
		t.Errorf("Expected loaded state, got %+v", state)
	}

	claims := e.Claims()
	if len(claims) != 2 {
		t.Fatalf("Expected 2 claims, got %d", len(claims))
	}
	// Default sort is score descending
	if claims[0].ClaimID != "C1" {
		t.Errorf("Expected C1 first, got %s", claims[0].ClaimID)
	}
	if claims[0].RiskLevel != model.RiskHigh {
		t.Errorf("RiskLevel = %q, want High", claims[0].RiskLevel)
	}
	if claims[0].AmountBucket != "1000-1500" {
		t.Errorf("AmountBucket = %q, want 1000-1500", claims[0].AmountBucket)
	}

	if findings := e.Findings(); len(findings) != 0 {
		t.Errorf("Expected a clean dataset, got findings: %v", findings)
	}

	kpis := e.KPIs()
	if kpis.TotalClaims != 2 || kpis.HighRisk != 1 || kpis.LowRisk != 1 {
		t.Errorf("KPIs = %+v", kpis)
	}
	if kpis.TotalAmount != 1500 {
		t.Errorf("TotalAmount = %v, want 1500", kpis.TotalAmount)
	}
}

func TestEngine_LineItemsForCaseInsensitiveFallback(t *testing.T) {
	e := New(model.DefaultConfig(), testLogger())
	defer e.Close()
	if err := e.Load(context.Background(), testWorkbookPath(t)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if lines := e.LineItemsFor("C1"); len(lines) != 1 {
		t.Errorf("Exact match: got %d lines, want 1", len(lines))
	}
	if lines := e.LineItemsFor("c1"); len(lines) != 1 {
		t.Errorf("Case-insensitive fallback: got %d lines, want 1", len(lines))
	}
	if lines := e.LineItemsFor("missing"); lines != nil {
		t.Errorf("Unknown claim should have no lines, got %v", lines)
	}
}

func TestEngine_LineDetailSkipsPlaceholderCodes(t *testing.T) {
	e := New(model.DefaultConfig(), testLogger())
	defer e.Close()
	if err := e.Load(context.Background(), testWorkbookPath(t)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	detail := e.LineDetail("C1")
	if detail.LineCount != 1 || detail.TotalChargedAmount != 1200 {
		t.Errorf("Detail = %+v", detail)
	}
	if detail.DistinctDiagCodes != 1 {
		t.Errorf("DistinctDiagCodes = %d, want 1", detail.DistinctDiagCodes)
	}
	// "-" revenue code and "null" procedure code are placeholders
	if detail.RevenueCodeCount != 0 {
		t.Errorf("RevenueCodeCount = %d, want 0", detail.RevenueCodeCount)
	}

	detail2 := e.LineDetail("C2")
	if detail2.ProcedureCodeCount != 0 || detail2.RevenueCodeCount != 1 {
		t.Errorf("C2 detail = %+v", detail2)
	}
}

func TestEngine_FilterAndPage(t *testing.T) {
	e := New(model.DefaultConfig(), testLogger())
	defer e.Close()
	if err := e.Load(context.Background(), testWorkbookPath(t)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	e.SetFilter(model.FilterSpec{FormTypeCd: []string{"Professional"}})
	claims := e.Claims()
	if len(claims) != 1 || claims[0].ClaimID != "C1" {
		t.Fatalf("Canonical form-type filter: got %v", claims)
	}

	page := e.Page()
	if page.TotalItems != 1 || page.PageNumber != 1 || page.TotalPages != 1 {
		t.Errorf("Page = %+v", page)
	}

	e.SetFilter(model.FilterSpec{})
	if got := len(e.Claims()); got != 2 {
		t.Errorf("Cleared filter should restore 2 claims, got %d", got)
	}
}

func TestEngine_LoadFailureKeepsPreviousDataset(t *testing.T) {
	e := New(model.DefaultConfig(), testLogger())
	defer e.Close()
	if err := e.Load(context.Background(), testWorkbookPath(t)); err != nil {
		t.Fatalf("initial Load failed: %v", err)
	}

	missing := filepath.Join(t.TempDir(), "nope.xlsx")
	if err := e.Load(context.Background(), missing); err == nil {
		t.Fatal("Expected an error loading a missing file")
	}

	state := e.LoadState()
	if state.Error == "" {
		t.Error("LoadState should carry the load error")
	}
	if got := len(e.Claims()); got != 2 {
		t.Errorf("Previous dataset should stay readable, got %d claims", got)
	}
}

func TestEngine_FilterOptionsDistinctSorted(t *testing.T) {
	e := New(model.DefaultConfig(), testLogger())
	defer e.Close()
	if err := e.Load(context.Background(), testWorkbookPath(t)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	opts := e.FilterOptions()
	if len(opts.FormTypeCd) != 2 || opts.FormTypeCd[0] != "H" || opts.FormTypeCd[1] != "U" {
		t.Errorf("FormTypeCd options = %v", opts.FormTypeCd)
	}
}

func TestRenderer_WritesOutputs(t *testing.T) {
	e := New(model.DefaultConfig(), testLogger())
	defer e.Close()
	if err := e.Load(context.Background(), testWorkbookPath(t)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	report := e.BuildReport()
	if report.ClaimCount != 2 || report.LineCount != 2 {
		t.Fatalf("Report counts = %d/%d", report.ClaimCount, report.LineCount)
	}

	dir := t.TempDir()
	r := NewRenderer(true)

	jsonPath := filepath.Join(dir, "report.json")
	if err := r.RenderJSON(report, jsonPath); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if _, err := os.Stat(jsonPath); err != nil {
		t.Errorf("JSON output missing: %v", err)
	}

	mdPath := filepath.Join(dir, "report.md")
	if err := r.RenderMarkdown(report, mdPath); err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("read markdown: %v", err)
	}
	if len(md) == 0 {
		t.Error("Markdown output is empty")
	}
}
