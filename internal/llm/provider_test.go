package llm

import (
	"strings"
	"testing"

	"authorscan/internal/model"
)

func testReport() *model.Report {
	return &model.Report{
		Subject:  "The cat sat on the mat",
		Provider: "copyleaks",
		Overall: model.Result{
			Prediction: model.AuthorHuman,
			Confidence: 0.95,
			WordCount:  3,
			Text:       "The cat sat.",
			Parts: []model.Result{
				{Prediction: model.AuthorHuman, Confidence: 0.95, WordCount: 3, Text: "The cat sat."},
			},
		},
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(testReport())

	if !strings.Contains(prompt, "Written by a Human at 95.0% confidence") {
		t.Errorf("expected the overall judgment in the prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, "3 across 1 spans") {
		t.Errorf("expected the word and span counts in the prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Do not cite or invent external sources") {
		t.Errorf("expected the grounding rule in the prompt:\n%s", prompt)
	}
}

func TestBuildPrompt_LimitsShownSpans(t *testing.T) {
	report := testReport()
	for i := 0; i < 7; i++ {
		report.Overall.Parts = append(report.Overall.Parts, model.Result{
			Prediction: model.AuthorArtificialIntelligence,
			Confidence: 0.5,
			WordCount:  10,
		})
	}

	prompt := BuildPrompt(report)
	if !strings.Contains(prompt, "more spans") {
		t.Errorf("expected the span list to be elided:\n%s", prompt)
	}
}

func TestCheckGrounding(t *testing.T) {
	strict := Config{StrictGrounding: true}

	if err := checkGrounding(strict, "The detector classified the text as human."); err != nil {
		t.Errorf("unexpected error on clean text: %v", err)
	}

	err := checkGrounding(strict, "According to https://example.com/study, the text is human.")
	if err == nil {
		t.Error("expected a grounding violation for a fabricated URL")
	}

	// Non-strict mode lets anything through
	lax := Config{StrictGrounding: false}
	if err := checkGrounding(lax, "See https://example.com for details."); err != nil {
		t.Errorf("unexpected error in non-strict mode: %v", err)
	}
}

func TestNewProvider(t *testing.T) {
	// An empty provider name means disabled, not an error
	p, err := NewProvider(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Error("expected a nil provider when disabled")
	}

	if _, err := NewProvider(Config{Provider: "nosuch"}); err == nil {
		t.Error("expected an error for an unknown provider")
	}

	// OpenAI and Anthropic demand a key up front
	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("expected an error for OpenAI without an API key")
	}
	if _, err := NewProvider(Config{Provider: "anthropic"}); err == nil {
		t.Error("expected an error for Anthropic without an API key")
	}

	// Ollama needs no key
	p, err = NewProvider(Config{Provider: "ollama"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil || p.Name() != "ollama" {
		t.Error("expected an ollama provider")
	}
}

func TestConfigFromModel_AlwaysStrict(t *testing.T) {
	cfg := ConfigFromModel(model.LLMConfig{Provider: "ollama"})
	if !cfg.StrictGrounding {
		t.Error("expected strict grounding to be forced on")
	}
}
