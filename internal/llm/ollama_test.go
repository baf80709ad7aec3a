package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func ollamaServer(t *testing.T, response ollamaResponse, status int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"models":[]}`))
		case "/api/generate":
			var req ollamaRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("bad request body: %v", err)
			}
			if req.Stream {
				t.Error("expected a non-streaming request")
			}
			if req.System != explainSystemPrompt {
				t.Errorf("unexpected system prompt %q", req.System)
			}

			w.WriteHeader(status)
			if status != http.StatusOK {
				_, _ = w.Write([]byte(`{"error":"model not found"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(response)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestOllamaExplain(t *testing.T) {
	server := ollamaServer(t, ollamaResponse{
		Model:           "llama3.1",
		Response:        "The detector classified the sample as human-written with high confidence.",
		Done:            true,
		PromptEvalCount: 120,
		EvalCount:       30,
	}, http.StatusOK)
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, StrictGrounding: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !provider.IsAvailable(context.Background()) {
		t.Fatal("expected the provider to be available")
	}

	resp, err := provider.Explain(context.Background(), ExplainRequest{Report: testReport()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(resp.Text, "classified the sample as human-written") {
		t.Errorf("unexpected explanation text %q", resp.Text)
	}
	if resp.Model != "llama3.1" {
		t.Errorf("unexpected model %q", resp.Model)
	}
	if resp.TokensUsed != 150 {
		t.Errorf("expected 150 tokens, got %d", resp.TokensUsed)
	}
}

func TestOllamaExplain_GroundingViolation(t *testing.T) {
	server := ollamaServer(t, ollamaResponse{
		Model:    "llama3.1",
		Response: "Per https://fabricated.example.com/paper the text is human.",
		Done:     true,
	}, http.StatusOK)
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, StrictGrounding: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = provider.Explain(context.Background(), ExplainRequest{Report: testReport()})
	if err == nil || !strings.Contains(err.Error(), "grounding violation") {
		t.Errorf("expected a grounding violation, got %v", err)
	}
}

func TestOllamaExplain_APIError(t *testing.T) {
	server := ollamaServer(t, ollamaResponse{}, http.StatusInternalServerError)
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = provider.Explain(context.Background(), ExplainRequest{Report: testReport()})
	if err == nil || !strings.Contains(err.Error(), "model not found") {
		t.Errorf("expected the API error to surface, got %v", err)
	}
}

func TestOllamaIsAvailable_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.IsAvailable(context.Background()) {
		t.Error("expected the provider to be unavailable")
	}
}
