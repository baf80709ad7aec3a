// Package present derives the human-facing rendering of a judgment:
// a classification color, a qualitative confidence label, and a
// truncated text summary. All functions are pure; the chat/CLI layer
// decides where the derived values end up.
package present

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"authorscan/internal/model"
)

// Color maps a judgment onto a packed 24-bit RGB value. Fully
// confident AI is pure red and fully confident human is pure green;
// low confidence of either class converges on the same yellow-orange,
// so uncertainty reads as a warning color regardless of class.
func Color(r model.Result) int {
	// factor runs from 0 (AI) to 1 (human)
	var factor float64
	if r.Prediction == model.AuthorArtificialIntelligence {
		factor = 0.5 - r.Confidence/2
	} else {
		factor = 0.5 + r.Confidence/2
	}

	// Restrict the sweep to the red..green third of the hue circle
	hue := factor / 3

	red, green, blue := colorful.Hsv(hue*360, 0.85, 1).RGB255()
	return int(red)<<16 | int(green)<<8 | int(blue)
}

// Label renders the qualitative confidence tier. Tier lower bounds are
// inclusive: confidence 0.2 already reads "Plausibly".
func Label(r model.Result) string {
	if r.Confidence < 0.2 {
		return "Inconclusive"
	}

	var qualifier string
	switch {
	case r.Confidence < 0.6:
		qualifier = "Plausibly"
	case r.Confidence < 0.9:
		qualifier = "Probably"
	default:
		qualifier = "Certainly"
	}

	return fmt.Sprintf("%s %s\n%.1f%% Confident", qualifier, r.Prediction.Display(), r.Confidence*100)
}

// Summary returns the word count plus a snippet of the covered text:
// the whole text when it has at most 10 words, otherwise the first
// five and last five joined by a [...] marker.
func Summary(r model.Result) string {
	words := strings.Fields(r.Text)

	snippet := r.Text
	if len(words) > 10 {
		snippet = strings.Join(words[:5], " ") + " [...] " + strings.Join(words[len(words)-5:], " ")
	}

	return fmt.Sprintf("%d words\n%s", r.WordCount, snippet)
}

// Derive bundles the three derivations for embedding into a report
func Derive(r model.Result) model.Presentation {
	return model.Presentation{
		Label:   Label(r),
		Color:   Color(r),
		Summary: Summary(r),
	}
}
