package present

import (
	"fmt"
	"strings"
	"testing"

	"authorscan/internal/model"
)

func judgment(prediction model.AuthorPrediction, confidence float64) model.Result {
	return model.Result{Prediction: prediction, Confidence: confidence}
}

func TestColor_ConvergesAtZeroConfidence(t *testing.T) {
	// A fully uncertain judgment must render the same color for either
	// class: the caller cannot tell them apart, so neither can the eye
	human := Color(judgment(model.AuthorHuman, 0))
	ai := Color(judgment(model.AuthorArtificialIntelligence, 0))

	if human != ai {
		t.Errorf("expected identical colors at confidence 0, got #%06X and #%06X", human, ai)
	}
}

func TestColor_Monotonicity(t *testing.T) {
	confidences := []float64{0, 0.25, 0.5, 0.75, 1.0}

	// Rising human confidence sweeps from yellow toward green: the red
	// channel must never increase
	prevRed := 256
	for _, c := range confidences {
		packed := Color(judgment(model.AuthorHuman, c))
		red := (packed >> 16) & 0xFF
		if red > prevRed {
			t.Errorf("human confidence %f: red channel rose from %d to %d", c, prevRed, red)
		}
		prevRed = red
	}

	// Rising AI confidence sweeps from yellow toward red: the green
	// channel must never increase
	prevGreen := 256
	for _, c := range confidences {
		packed := Color(judgment(model.AuthorArtificialIntelligence, c))
		green := (packed >> 8) & 0xFF
		if green > prevGreen {
			t.Errorf("AI confidence %f: green channel rose from %d to %d", c, prevGreen, green)
		}
		prevGreen = green
	}
}

func TestColor_FullConfidenceEndpoints(t *testing.T) {
	humanPacked := Color(judgment(model.AuthorHuman, 1))
	aiPacked := Color(judgment(model.AuthorArtificialIntelligence, 1))

	// Certain human sits at the green end of the sweep
	if green := (humanPacked >> 8) & 0xFF; green != 255 {
		t.Errorf("expected full green channel for certain human, got %d", green)
	}

	// Certain AI sits at the red end
	if red := (aiPacked >> 16) & 0xFF; red != 255 {
		t.Errorf("expected full red channel for certain AI, got %d", red)
	}
	if green := (aiPacked >> 8) & 0xFF; green > 60 {
		t.Errorf("expected a low green channel for certain AI, got %d", green)
	}
}

func TestLabel_TierBoundaries(t *testing.T) {
	cases := []struct {
		confidence float64
		want       string
	}{
		{0.0, "Inconclusive"},
		{0.19, "Inconclusive"},
		{0.2, "Plausibly Written by a Human\n20.0% Confident"},
		{0.59, "Plausibly Written by a Human\n59.0% Confident"},
		{0.6, "Probably Written by a Human\n60.0% Confident"},
		{0.89, "Probably Written by a Human\n89.0% Confident"},
		{0.9, "Certainly Written by a Human\n90.0% Confident"},
		{0.95, "Certainly Written by a Human\n95.0% Confident"},
		{1.0, "Certainly Written by a Human\n100.0% Confident"},
	}

	for _, tc := range cases {
		got := Label(judgment(model.AuthorHuman, tc.confidence))
		if got != tc.want {
			t.Errorf("confidence %f: expected %q, got %q", tc.confidence, tc.want, got)
		}
	}
}

func TestLabel_ArtificialIntelligenceDisplay(t *testing.T) {
	got := Label(judgment(model.AuthorArtificialIntelligence, 0.75))
	want := "Probably Generated by AI\n75.0% Confident"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSummary_ShortTextVerbatim(t *testing.T) {
	// Exactly ten words stays verbatim
	text := "one two three four five six seven eight nine ten"
	r := model.Result{Text: text, WordCount: 10}

	want := "10 words\n" + text
	if got := Summary(r); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSummary_LongTextTruncates(t *testing.T) {
	text := "one two three four five six seven eight nine ten eleven"
	r := model.Result{Text: text, WordCount: 11}

	want := "11 words\none two three four five [...] seven eight nine ten eleven"
	if got := Summary(r); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSummary_WordCountIndependentOfSnippet(t *testing.T) {
	// The reported count is the provider's scored word count, not a
	// recount of the snippet
	r := model.Result{Text: "alpha beta", WordCount: 42}

	if got := Summary(r); !strings.HasPrefix(got, "42 words\n") {
		t.Errorf("expected provider word count in prefix, got %q", got)
	}
}

func TestDerive_BundlesAllThree(t *testing.T) {
	r := model.Result{
		Prediction: model.AuthorHuman,
		Confidence: 0.95,
		WordCount:  3,
		Text:       "The cat sat.",
	}

	p := Derive(r)
	if p.Label != "Certainly Written by a Human\n95.0% Confident" {
		t.Errorf("unexpected label %q", p.Label)
	}
	if p.Color != Color(r) {
		t.Errorf("expected color #%06X, got #%06X", Color(r), p.Color)
	}
	if p.Summary != fmt.Sprintf("3 words\n%s", r.Text) {
		t.Errorf("unexpected summary %q", p.Summary)
	}
}
