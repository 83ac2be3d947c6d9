package model

import "time"

// Report is the complete dataset report rendered by the CLI outputs
type Report struct {
	SourceRef  string    `json:"sourceRef"`
	SourceName string    `json:"sourceName"`
	LoadedAt   time.Time `json:"loadedAt"`

	ClaimCount int `json:"claimCount"`
	LineCount  int `json:"lineCount"`

	KPIs      KPIMetrics     `json:"kpis"`
	Groupings ChartGroupings `json:"groupings"`
	Options   FilterOptions  `json:"filterOptions"`

	Findings []Finding `json:"findings,omitempty"`

	// Claims is the filtered, sorted view active at render time
	Claims []Claim `json:"claims,omitempty"`

	LLM *LLMSummary `json:"llm,omitempty"` // optional narrative, never affects the data
}

// LLMSummary contains the optional model-generated narrative. It is clearly
// separated from the computed report and never feeds back into it.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
