package model

// AuthorPrediction identifies which author class a result points at
type AuthorPrediction string

const (
	AuthorHuman                  AuthorPrediction = "human"
	AuthorArtificialIntelligence AuthorPrediction = "ai"
)

// Display returns the human-facing phrase for the author class
func (a AuthorPrediction) Display() string {
	if a == AuthorHuman {
		return "Written by a Human"
	}
	return "Generated by AI"
}

// Sign returns the signed-confidence multiplier for the author class:
// +1 for human, -1 for AI. Only aggregation uses the sign; a Result
// never carries a negative confidence.
func (a AuthorPrediction) Sign() float64 {
	if a == AuthorHuman {
		return 1
	}
	return -1
}

// Result represents one authorship judgment. A leaf result covers a
// single span of the scanned text and has no Parts. The single
// aggregate result produced per scan owns all leaves as its Parts.
type Result struct {
	Prediction AuthorPrediction `json:"prediction"`           // Which author class this judgment points at
	Confidence float64          `json:"confidence"`           // Probability mass behind the prediction, in [0,1]
	WordCount  int              `json:"word_count"`           // Words covered by this judgment
	Text       string           `json:"text"`                 // The exact covered text, whitespace-trimmed
	Parts      []Result         `json:"parts,omitempty"`      // Per-span breakdown; empty on leaves
}

// IsLeaf reports whether this result was parsed directly from one
// provider span rather than computed by aggregation.
func (r *Result) IsLeaf() bool {
	return len(r.Parts) == 0
}
