// Package llm generates an optional narrative summary of a claims report.
// The summary is presentation only: it is produced after the report is
// complete and never feeds back into the computed data.
package llm

import (
	"context"
	"fmt"

	"claimlens/internal/model"
)

// Provider is a model backend that can summarize a report
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a narrative summary of the report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks that the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest is the input for summarization
type SummarizeRequest struct {
	// Report is the computed claims report to describe
	Report model.Report

	// Prompt overrides the default prompt when non-empty
	Prompt string

	// Model selects a provider-specific model
	Model string

	// MaxTokens caps the response length
	MaxTokens int
}

// SummarizeResponse is the provider's output
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	Provider  string // "openai" or "" (disabled)
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int

	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns the defaults (summarization disabled)
func DefaultConfig() Config {
	return Config{
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// ConfigFromModel converts the application LLM config
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		MaxTokens: cfg.MaxTokens,
	}
}

// BuildPrompt constructs the default summarization prompt. The model is told
// to restate the computed figures, never to recompute or extend them.
func BuildPrompt(report model.Report) string {
	prompt := fmt.Sprintf(`You are summarizing a healthcare claims data report.

RULES:
1. Describe ONLY the figures below. Do not estimate, extrapolate, or invent numbers.
2. Do not speculate about fraud or patient outcomes. Risk levels are dataset labels, not judgements.
3. If integrity findings are listed, mention them factually.

Report:
- Source: %s
- Claims: %d
- Line items: %d
- Total charged: %.2f
- Risk distribution: %d high, %d medium, %d low
`, report.SourceName, report.ClaimCount, report.LineCount,
		report.KPIs.TotalAmount, report.KPIs.HighRisk, report.KPIs.MediumRisk, report.KPIs.LowRisk)

	if len(report.Groupings.ByCity) > 0 {
		prompt += "\nTop provider cities:\n"
		for _, g := range report.Groupings.ByCity {
			prompt += fmt.Sprintf("- %s: %d\n", g.Label, g.Count)
		}
	}

	if len(report.Findings) == 0 {
		prompt += "\nData integrity: no findings.\n"
	} else {
		prompt += "\nData integrity findings:\n"
		for i, f := range report.Findings {
			if i >= 10 {
				prompt += fmt.Sprintf("... and %d more findings\n", len(report.Findings)-10)
				break
			}
			prompt += fmt.Sprintf("- %s\n", f.String())
		}
	}

	prompt += "\nWrite a 3-5 sentence summary of the dataset's composition and integrity."
	return prompt
}
