package llm

import (
	"context"
	"fmt"

	"authorscan/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Explain generates a prose explanation of a detection report
	Explain(ctx context.Context, req ExplainRequest) (*ExplainResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ExplainRequest contains the input for LLM explanation
type ExplainRequest struct {
	// Report is the detection report to explain
	Report *model.Report

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// ExplainResponse contains the LLM's explanation output
type ExplainResponse struct {
	// Text is the generated explanation
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// StrictGrounding rejects explanations that invent outside sources.
	// The report is the only ground the model may stand on.
	StrictGrounding bool

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:        "", // Disabled by default
		Model:           "",
		Timeout:         30,
		StrictGrounding: true,
		MaxTokens:       500,
	}
}

// explainSystemPrompt frames every provider call the same way
const explainSystemPrompt = "You are a careful assistant that explains automated AI-authorship detection reports without asserting ground truth."

// BuildPrompt constructs the default explanation prompt. The model is
// asked to restate what the detector measured, never to second-guess
// the judgment or claim to know who actually wrote the text.
func BuildPrompt(report *model.Report) string {
	overall := report.Overall

	prompt := fmt.Sprintf(`You are explaining an automated AI-authorship detection report to an end user.

CRITICAL RULES:
1. The report below is your ONLY source. Do not cite or invent external sources or URLs.
2. Do NOT assert who really wrote the text. Describe what the detector measured.
3. Use phrasing like "the detector classified..." or "spans totaling N words leaned...".
4. If the spans disagree with each other, say so plainly.

Report:
- Overall: %s at %.1f%% confidence
- Words scored: %d across %d spans
`, overall.Prediction.Display(), overall.Confidence*100, overall.WordCount, len(overall.Parts))

	// Show the most influential spans only, to keep the prompt small
	shown := 0
	for _, part := range overall.Parts {
		if shown >= 5 {
			prompt += fmt.Sprintf("... and %d more spans\n", len(overall.Parts)-shown)
			break
		}
		prompt += fmt.Sprintf("- span: %d words, %s at %.1f%%\n",
			part.WordCount, part.Prediction.Display(), part.Confidence*100)
		shown++
	}

	prompt += "\nProvide a 3-4 sentence explanation of the measurement, not of the truth."

	return prompt
}
