package model

import "time"

// Report represents the complete result of one authorscan invocation
type Report struct {
	Subject   string      `json:"subject"`    // Short subject derived from the scanned text
	Provider  string      `json:"provider"`   // Which detection provider produced the judgment
	ScannedAt time.Time   `json:"scanned_at"` // When the scan occurred
	Session   SessionMeta `json:"session_meta"`

	Overall Result `json:"overall"` // The aggregate judgment; Parts holds the per-span breakdown

	Presentation Presentation `json:"presentation"` // Derived label/color/summary for the overall judgment

	Dropped int `json:"dropped_spans,omitempty"` // Spans rejected during invariant validation

	LLM *LLMExplanation `json:"llm,omitempty"` // Optional LLM explanation (never affects the judgment)

	FromCache bool `json:"from_cache,omitempty"` // Whether this report was served from the CLI cache
}

// SessionMeta records browser session metadata for the scan
type SessionMeta struct {
	ProviderURL string `json:"provider_url"`
	PollRounds  int    `json:"poll_rounds"` // Rounds the completion poller actually used
	ElapsedMS   int64  `json:"elapsed_ms"`  // Wall time of the whole scan in milliseconds
}

// Presentation carries the derived human-facing rendering of a judgment
type Presentation struct {
	Label   string `json:"label"`   // Qualitative confidence label, e.g. "Certainly Written by a Human"
	Color   int    `json:"color"`   // Packed 24-bit RGB classification color
	Summary string `json:"summary"` // Truncated text summary with word count
}

// LLMExplanation is the optional prose explanation of a report
type LLMExplanation struct {
	Enabled  bool   `json:"enabled"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Text     string `json:"text"`
	Tokens   int    `json:"tokens,omitempty"`
}
