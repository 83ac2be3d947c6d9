package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"claimlens/internal/model"
)

// Renderer writes reports to JSON and Markdown outputs
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// BuildReport snapshots the engine's current state as a report. The claim
// list reflects the active filter and sort.
func (e *Engine) BuildReport() *model.Report {
	ds := e.Dataset()
	if ds == nil {
		return &model.Report{}
	}
	return &model.Report{
		SourceRef:  ds.SourceRef,
		SourceName: ds.SourceName,
		LoadedAt:   ds.LoadedAt,
		ClaimCount: len(ds.Claims),
		LineCount:  len(ds.Lines),
		KPIs:       e.KPIs(),
		Groupings:  e.ChartGroupings(),
		Options:    e.FilterOptions(),
		Findings:   ds.Findings,
		Claims:     e.Claims(),
	}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes the report as a human-readable Markdown document
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Claims Report: %s\n\n", report.SourceName)
	fmt.Fprintf(&b, "- **Source**: %s\n", report.SourceRef)
	fmt.Fprintf(&b, "- **Loaded**: %s\n", report.LoadedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- **Claims**: %d\n", report.ClaimCount)
	fmt.Fprintf(&b, "- **Line items**: %d\n\n", report.LineCount)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total claims | %d |\n", report.KPIs.TotalClaims)
	fmt.Fprintf(&b, "| Total charged | %.2f |\n", report.KPIs.TotalAmount)
	fmt.Fprintf(&b, "| High risk | %d |\n", report.KPIs.HighRisk)
	fmt.Fprintf(&b, "| Medium risk | %d |\n", report.KPIs.MediumRisk)
	fmt.Fprintf(&b, "| Low risk | %d |\n\n", report.KPIs.LowRisk)

	writeGroupSection(&b, "Risk Levels", report.Groupings.ByRisk)
	writeGroupSection(&b, "Top Cities", report.Groupings.ByCity)
	writeGroupSection(&b, "Specialties", report.Groupings.BySpecialty)
	writeGroupSection(&b, "Amount Distribution", report.Groupings.ByAmountBucket)

	b.WriteString("## Data Integrity\n\n")
	if len(report.Findings) == 0 {
		b.WriteString("No integrity findings. Line data is consistent with claim headers.\n\n")
	} else {
		for _, f := range report.Findings {
			fmt.Fprintf(&b, "- ⚠️ %s\n", f.String())
		}
		b.WriteString("\n")
	}

	if report.LLM != nil && report.LLM.Enabled && report.LLM.SummaryMD != "" {
		fmt.Fprintf(&b, "## Narrative Summary (%s)\n\n", report.LLM.Model)
		b.WriteString("_Generated text. It describes the computed report and never alters it._\n\n")
		b.WriteString(report.LLM.SummaryMD)
		b.WriteString("\n\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n_Generated by claimlens_\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderLLMMarkdown writes a standalone narrative summary file
func (r *Renderer) RenderLLMMarkdown(markdown string, path string) error {
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderSummary prints a short report summary to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\n%s\n", report.SourceName)
	fmt.Printf("  Claims: %d  Lines: %d  Total charged: %.2f\n",
		report.ClaimCount, report.LineCount, report.KPIs.TotalAmount)
	fmt.Printf("  Risk: %d high / %d medium / %d low\n",
		report.KPIs.HighRisk, report.KPIs.MediumRisk, report.KPIs.LowRisk)
	if len(report.Findings) == 0 {
		fmt.Println("  Integrity: clean")
	} else {
		fmt.Printf("  Integrity: %d finding(s)\n", len(report.Findings))
		for _, f := range report.Findings {
			fmt.Printf("    - %s\n", f.String())
		}
	}
	fmt.Println()
}

func writeGroupSection(b *strings.Builder, title string, groups []model.GroupCount) {
	if len(groups) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	b.WriteString("| Group | Count |\n|---|---|\n")
	for _, g := range groups {
		fmt.Fprintf(b, "| %s | %d |\n", g.Label, g.Count)
	}
	b.WriteString("\n")
}
