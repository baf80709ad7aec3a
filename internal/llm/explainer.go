package llm

import (
	"context"
	"fmt"

	"authorscan/internal/model"
)

// Explainer wraps a provider and produces the optional report
// explanation. It runs after scoring and never affects the judgment.
type Explainer struct {
	provider Provider
	config   Config
}

// NewExplainer creates an explainer for the configured provider.
// A Config with an empty Provider yields a disabled explainer.
func NewExplainer(config Config) (*Explainer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Explainer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (e *Explainer) IsEnabled() bool {
	return e != nil && e.provider != nil
}

// ProviderName returns the configured provider's name, or "" when disabled
func (e *Explainer) ProviderName() string {
	if !e.IsEnabled() {
		return ""
	}
	return e.provider.Name()
}

// Explain generates the explanation for a report. A disabled explainer
// returns (nil, nil); an unavailable provider yields a disabled
// explanation rather than failing the scan.
func (e *Explainer) Explain(ctx context.Context, report *model.Report) (*model.LLMExplanation, error) {
	if !e.IsEnabled() {
		return nil, nil
	}

	if !e.provider.IsAvailable(ctx) {
		return &model.LLMExplanation{
			Enabled:  false,
			Provider: e.provider.Name(),
			Text:     "provider unavailable",
		}, nil
	}

	resp, err := e.provider.Explain(ctx, ExplainRequest{
		Report:    report,
		Model:     e.config.Model,
		MaxTokens: e.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate explanation: %w", err)
	}

	return &model.LLMExplanation{
		Enabled:  true,
		Provider: e.provider.Name(),
		Model:    resp.Model,
		Text:     resp.Text,
		Tokens:   resp.TokensUsed,
	}, nil
}
