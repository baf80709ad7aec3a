package validate

import (
	"authorscan/internal/model"
)

// Validator checks parsed leaf judgments against the model invariants
// before they reach aggregation. The provider page is not under our
// control; a span that parses but carries an impossible value is
// dropped the same way a malformed span is dropped during extraction.
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// Clean returns the leaves that satisfy the invariants and the number
// of leaves dropped. Order is preserved.
func (v *Validator) Clean(leaves []model.Result) ([]model.Result, int) {
	kept := make([]model.Result, 0, len(leaves))
	for _, leaf := range leaves {
		if v.check(leaf) {
			kept = append(kept, leaf)
		}
	}
	return kept, len(leaves) - len(kept)
}

// check enforces the leaf invariants: a leaf never has parts, its
// confidence is a probability, and its word count is non-negative.
func (v *Validator) check(leaf model.Result) bool {
	switch {
	case !leaf.IsLeaf():
		return false
	case leaf.Confidence < 0 || leaf.Confidence > 1:
		return false
	case leaf.WordCount < 0:
		return false
	case leaf.Prediction != model.AuthorHuman && leaf.Prediction != model.AuthorArtificialIntelligence:
		return false
	}
	return true
}
