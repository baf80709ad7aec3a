package cache

import (
	"strings"
	"testing"
	"time"

	"authorscan/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		Subject:   "The cat sat on the mat",
		Provider:  "copyleaks",
		ScannedAt: time.Now().UTC(),
		Overall: model.Result{
			Prediction: model.AuthorHuman,
			Confidence: 0.95,
			WordCount:  3,
			Text:       "The cat sat.",
		},
		Presentation: model.Presentation{
			Label:   "Certainly Written by a Human\n95.0% Confident",
			Color:   0x44FF26,
			Summary: "3 words\nThe cat sat.",
		},
	}
}

func TestReportCache_RoundTrip(t *testing.T) {
	backend := NewMemoryCache(time.Hour, time.Hour)
	reports := NewReportCache(backend, time.Hour)

	sample := "The cat sat on the mat and watched the rain fall."
	if err := reports.Put("copyleaks", sample, sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, found := reports.Get("copyleaks", sample)
	if !found {
		t.Fatal("expected a cache hit")
	}

	if !got.FromCache {
		t.Error("expected the served report to be marked FromCache")
	}
	if got.Overall.Prediction != model.AuthorHuman {
		t.Errorf("expected human prediction, got %s", got.Overall.Prediction)
	}
	if got.Overall.Confidence != 0.95 {
		t.Errorf("expected confidence 0.95, got %f", got.Overall.Confidence)
	}
	if got.Presentation.Label != "Certainly Written by a Human\n95.0% Confident" {
		t.Errorf("unexpected label %q", got.Presentation.Label)
	}
}

func TestReportCache_MissOnDifferentSample(t *testing.T) {
	backend := NewMemoryCache(time.Hour, time.Hour)
	reports := NewReportCache(backend, time.Hour)

	if err := reports.Put("copyleaks", "sample one", sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, found := reports.Get("copyleaks", "sample two"); found {
		t.Error("expected a miss for a different sample")
	}
	if _, found := reports.Get("otherprovider", "sample one"); found {
		t.Error("expected a miss for a different provider")
	}
}

func TestReportCache_CorruptEntryIsAMiss(t *testing.T) {
	backend := NewMemoryCache(time.Hour, time.Hour)
	reports := NewReportCache(backend, time.Hour)

	key := Key("copyleaks", "sample")
	if err := backend.Set(key, []byte("{not json"), time.Hour); err != nil {
		t.Fatal(err)
	}

	if _, found := reports.Get("copyleaks", "sample"); found {
		t.Error("expected a corrupt entry to read as a miss")
	}
}

func TestKey_Properties(t *testing.T) {
	a := Key("copyleaks", "sample one")
	b := Key("copyleaks", "sample two")
	c := Key("copyleaks", "sample one")

	if a == b {
		t.Error("expected distinct keys for distinct samples")
	}
	if a != c {
		t.Error("expected stable keys for the same input")
	}

	// The sample never appears in the key, however long it is
	long := strings.Repeat("a very long sample ", 1000)
	key := Key("copyleaks", long)
	if strings.Contains(key, "very long sample") {
		t.Error("expected the sample text to be hashed out of the key")
	}
	if len(key) > 100 {
		t.Errorf("expected a short key, got %d characters", len(key))
	}
}

func TestLayeredCache_PromotesFromDisk(t *testing.T) {
	dir := t.TempDir()

	// Write through one layered cache, then read through a fresh one
	// with an empty memory layer: the entry must come back from disk
	first := NewLayeredCache(time.Hour, dir, time.Hour)
	if err := first.Set("k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := NewLayeredCache(time.Hour, dir, time.Hour)
	got, found := second.Get("k")
	if !found {
		t.Fatal("expected a disk hit through a fresh cache")
	}
	if string(got) != "v" {
		t.Errorf("expected value %q, got %q", "v", got)
	}
}
