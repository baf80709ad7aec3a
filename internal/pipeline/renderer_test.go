package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"authorscan/internal/model"
	"authorscan/internal/present"
)

func reportFixture() *model.Report {
	overall := model.Result{
		Prediction: model.AuthorHuman,
		Confidence: 0.95,
		WordCount:  3,
		Text:       "The cat sat.",
		Parts: []model.Result{
			{Prediction: model.AuthorHuman, Confidence: 0.95, WordCount: 3, Text: "The cat sat."},
		},
	}

	return &model.Report{
		Subject:   "The cat sat.",
		Provider:  "copyleaks",
		ScannedAt: time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
		Session: model.SessionMeta{
			ProviderURL: "https://app.copyleaks.com/v1/scan/ai/embedded",
			PollRounds:  1,
			ElapsedMS:   1234,
		},
		Overall:      overall,
		Presentation: present.Derive(overall),
	}
}

func TestRenderJSON(t *testing.T) {
	renderer := NewRenderer(true)
	path := filepath.Join(t.TempDir(), "report.json")

	if err := renderer.RenderJSON(reportFixture(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report JSON did not round-trip: %v", err)
	}
	if decoded.Overall.Confidence != 0.95 {
		t.Errorf("expected confidence 0.95, got %f", decoded.Overall.Confidence)
	}
	if decoded.Presentation.Label != "Certainly Written by a Human\n95.0% Confident" {
		t.Errorf("unexpected label %q", decoded.Presentation.Label)
	}

	// elapsed_ms carries milliseconds, exactly as stored
	if decoded.Session.ElapsedMS != 1234 {
		t.Errorf("expected elapsed_ms 1234, got %d", decoded.Session.ElapsedMS)
	}
	if !strings.Contains(string(data), `"elapsed_ms": 1234`) {
		t.Error("expected the JSON to carry elapsed_ms as plain milliseconds")
	}
}

func TestRenderMarkdown(t *testing.T) {
	renderer := NewRenderer(true)
	path := filepath.Join(t.TempDir(), "report.md")

	if err := renderer.RenderMarkdown(reportFixture(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	markdown := string(data)

	for _, want := range []string{
		"# AI Detection Report: The cat sat.",
		"Certainly Written by a Human — 95.0% Confident",
		"| Words | Analysis | Text |",
		"| 3 | Certainly Written by a Human — 95.0% Confident | 3 words The cat sat. |",
		"Generated by authorscan",
	} {
		if !strings.Contains(markdown, want) {
			t.Errorf("expected markdown to contain %q:\n%s", want, markdown)
		}
	}
}

func TestRenderMarkdown_NoFooter(t *testing.T) {
	renderer := NewRenderer(false)
	path := filepath.Join(t.TempDir(), "report.md")

	if err := renderer.RenderMarkdown(reportFixture(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "Generated by authorscan") {
		t.Error("expected no footer")
	}
}
