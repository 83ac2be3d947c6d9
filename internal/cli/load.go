package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"claimlens/internal/engine"
	"claimlens/internal/llm"
	"claimlens/internal/model"
)

var (
	outJSON     string
	outMD       string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noFooter    bool
	insecureTLS bool
	httpProxy   string
	httpsProxy  string

	filterRisk   []string
	filterAAInd  []string
	filterForm   []string
	filterStatus []string
	filterAudit  []string
	searchID     string
	sortField    string
	sortDesc     bool
	pageNum      int
	pageSize     int
	showLines    string

	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load <source>",
	Short: "Load a claims export and generate a report",
	Long: `Load ingests a claims export from a local file or URL:
- Parse Excel workbooks (.xlsx) or HTML table dumps
- Resolve messy column headers to the canonical claim model
- Normalize dates, amounts, and code fields
- Cross-check claim headers against line items
- Produce KPIs, chart groupings, and an integrity report

Example:
  claimlens load claims.xlsx
  claimlens load claims.xlsx --json report.json --md report.md
  claimlens load https://exports.example.com/claims.xlsx --risk High --sort totChrgAmt --desc
  claimlens load claims.xlsx --lines CLM-1001
  claimlens load claims.xlsx --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	// Output flags
	loadCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	loadCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// HTTP flags
	loadCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall load timeout")
	loadCmd.Flags().StringVar(&userAgent, "ua", "Claimlens/0.1", "HTTP User-Agent")
	loadCmd.Flags().Int64Var(&maxBytes, "max-bytes", 50_000_000, "max source bytes to read")
	loadCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the dataset cache (force fresh fetch)")
	loadCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	loadCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (self-signed export servers)")
	loadCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	loadCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Query flags
	loadCmd.Flags().StringSliceVar(&filterRisk, "risk", nil, "filter by risk level (High, Medium, Low; repeatable = OR)")
	loadCmd.Flags().StringSliceVar(&filterAAInd, "aa-ind", nil, "filter by adjudication indicator (accepts codes or labels)")
	loadCmd.Flags().StringSliceVar(&filterForm, "form-type", nil, "filter by form type (accepts codes or labels)")
	loadCmd.Flags().StringSliceVar(&filterStatus, "claim-status", nil, "filter by claim status")
	loadCmd.Flags().StringSliceVar(&filterAudit, "audit-flag", nil, "filter by audit flag (case-insensitive)")
	loadCmd.Flags().StringVar(&searchID, "search", "", "claim id substring search (case-insensitive)")
	loadCmd.Flags().StringVar(&sortField, "sort", "score", "sort field (clmId, riskLevel, score, rcvdTs, totChrgAmt, ...)")
	loadCmd.Flags().BoolVar(&sortDesc, "desc", true, "sort descending")
	loadCmd.Flags().IntVar(&pageNum, "page", 1, "page number (1-indexed)")
	loadCmd.Flags().IntVar(&pageSize, "page-size", 10, "claims per page")
	loadCmd.Flags().StringVar(&showLines, "lines", "", "print line items and detail for one claim id")

	// LLM flags
	loadCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable narrative summary generation")
	loadCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	loadCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runLoad(cmd *cobra.Command, args []string) error {
	sourceRef := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Loading: %s\n", sourceRef)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	e := engine.New(cfg, newLogger())
	defer e.Close()

	if err := e.Load(ctx, sourceRef); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	e.SetFilter(model.FilterSpec{
		RiskLevel:     filterRisk,
		AAInd:         filterAAInd,
		FormTypeCd:    filterForm,
		ClaimStatus:   filterStatus,
		AuditFlag:     filterAudit,
		SearchClaimID: searchID,
	})
	dir := model.SortAsc
	if sortDesc {
		dir = model.SortDesc
	}
	e.SetSort(sortField, dir)
	e.SetPage(pageNum)

	report := e.BuildReport()

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Loaded %d claims, %d line items\n", report.ClaimCount, report.LineCount)
		fmt.Fprintf(os.Stderr, "✓ %d claims match the active filter\n", len(report.Claims))
		fmt.Fprintf(os.Stderr, "✓ %d integrity finding(s)\n", len(report.Findings))
		fmt.Fprintln(os.Stderr)
	}

	// Narrative summary runs last and only decorates the report
	if llmEnabled {
		if err := attachSummary(ctx, cfg, report); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: narrative summary failed: %v\n", err)
		}
	}

	renderer := engine.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}
	if report.LLM != nil && report.LLM.Enabled && outMD != "" {
		llmPath := strings.TrimSuffix(outMD, ".md") + ".llm.md"
		if err := renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(report.LLM), llmPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write narrative summary: %v\n", err)
		} else if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote narrative summary: %s\n", llmPath)
		}
	}

	renderer.RenderSummary(report)

	if showLines != "" {
		printLineDetail(e, showLines)
	}
	return nil
}

// attachSummary generates the optional narrative and attaches it to the
// report. Failures only warn; the computed report is already complete.
func attachSummary(ctx context.Context, cfg *model.Config, report *model.Report) error {
	summarizer, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return err
	}
	summary, err := summarizer.GenerateSummary(ctx, *report)
	if err != nil {
		return err
	}
	report.LLM = summary
	return nil
}

func printLineDetail(e *engine.Engine, claimID string) {
	detail := e.LineDetail(claimID)
	lines := e.LineItemsFor(claimID)

	fmt.Printf("Claim %s\n", claimID)
	fmt.Printf("  Lines: %d  Charged: %.2f  Distinct diagnoses: %d  Procedure codes: %d  Revenue codes: %d\n",
		detail.LineCount, detail.TotalChargedAmount, detail.DistinctDiagCodes,
		detail.ProcedureCodeCount, detail.RevenueCodeCount)
	for _, line := range lines {
		fmt.Printf("  #%d  charged %.2f  proc %s  diag %s\n",
			line.ClaimLineNum, line.ChargedAmount, orDash(line.ProcedureCd), orDash(line.DiagnosisCd))
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
