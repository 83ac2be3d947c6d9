package llm

import (
	"context"
	"fmt"
	"strings"

	"claimlens/internal/model"
)

// NewProvider creates a provider from configuration. An empty provider name
// means summarization is disabled.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", config.Provider)
	}
}

// Summarizer wraps a provider and produces report summaries
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer. With no provider configured it is a
// valid, disabled summarizer.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the active provider's name, or ""
func (s *Summarizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary produces the narrative summary for a report. A disabled
// summarizer returns nil; an unavailable provider returns a summary shell
// carrying a warning so the report records what happened.
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	if s.provider == nil {
		return nil, nil
	}

	if !s.provider.IsAvailable(ctx) {
		return &model.LLMSummary{
			Enabled:  false,
			Provider: s.provider.Name(),
			Warnings: []string{fmt.Sprintf("provider %s is not available (check API key and connectivity)", s.provider.Name())},
		}, nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	return &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}, nil
}

// RenderSeparateMarkdown renders the summary as a standalone document,
// clearly labelled as generated text.
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	var b strings.Builder
	b.WriteString("# Narrative Summary\n\n")
	fmt.Fprintf(&b, "_Generated by %s/%s. Describes the computed report; not part of the data._\n\n",
		summary.Provider, summary.Model)
	b.WriteString(summary.SummaryMD)
	b.WriteString("\n")
	if len(summary.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range summary.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}
