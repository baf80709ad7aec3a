package score

import (
	"math"

	"authorscan/internal/model"
)

// Aggregator folds per-span judgments into one overall judgment
type Aggregator struct{}

// NewAggregator creates a new aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate computes the word-count-weighted average of signed span
// confidences, where the sign encodes the author class (+1 human,
// -1 AI). The sign of the mean picks the overall prediction and its
// magnitude is the overall confidence, so the provider's fine-grained
// span classifications act as length-weighted votes.
//
// Aggregation over zero total words is undefined: ok is false when the
// leaf set is empty or covers no words, and the caller must surface
// that instead of inventing a judgment.
func (a *Aggregator) Aggregate(leaves []model.Result, containerText string) (model.Result, bool) {
	totalWords := 0
	signedSum := 0.0

	for _, leaf := range leaves {
		totalWords += leaf.WordCount
		signedSum += float64(leaf.WordCount) * leaf.Confidence * leaf.Prediction.Sign()
	}

	if totalWords == 0 {
		return model.Result{}, false
	}

	overallSigned := signedSum / float64(totalWords)

	// Signed zero is a perfect tie; it resolves to human
	prediction := model.AuthorHuman
	if overallSigned < 0 {
		prediction = model.AuthorArtificialIntelligence
	}

	return model.Result{
		Prediction: prediction,
		Confidence: math.Abs(overallSigned),
		WordCount:  totalWords,
		Text:       containerText,
		Parts:      leaves,
	}, true
}
