package llm

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOllamaBackend_Compare_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			t.Errorf("Expected path /api/embed, got %s", r.URL.Path)
		}

		var req ollamaEmbedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != defaultOllamaEmbeddingModel {
			t.Errorf("Expected default model, got %s", req.Model)
		}

		_ = json.NewEncoder(w).Encode(ollamaEmbedResponse{
			Model:      req.Model,
			Embeddings: [][]float64{{0.5, 0.5, 0}, {0.5, 0.5, 0}},
		})
	}))
	defer server.Close()

	backend, _ := NewOllamaBackend(Config{BaseURL: server.URL + "/", Timeout: 5 * time.Second})

	got, err := backend.Compare(context.Background(), "query", "text")
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("Expected identical vectors to compare as 1, got %v", got)
	}
}

func TestOllamaBackend_Compare_WrongEmbeddingCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ollamaEmbedResponse{Embeddings: [][]float64{{1}}})
	}))
	defer server.Close()

	backend, _ := NewOllamaBackend(Config{BaseURL: server.URL, Timeout: 5 * time.Second})
	if _, err := backend.Compare(context.Background(), "q", "t"); err == nil {
		t.Fatal("Expected error for a single embedding")
	}
}

func TestOllamaBackend_Classify_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected path /api/generate, got %s", r.URL.Path)
		}

		var req ollamaGenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Format != "json" || req.Stream {
			t.Errorf("Expected non-streaming JSON mode, got format=%q stream=%v", req.Format, req.Stream)
		}

		_ = json.NewEncoder(w).Encode(ollamaGenerateResponse{
			Model:    req.Model,
			Response: `{"label": "NEUTRAL", "confidence": 0.66}`,
			Done:     true,
		})
	}))
	defer server.Close()

	backend, _ := NewOllamaBackend(Config{BaseURL: server.URL, Model: "mistral", Timeout: 5 * time.Second})

	got, err := backend.Classify(context.Background(), "Mortgage rates were unchanged.")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if got.Label != LabelNeutral {
		t.Errorf("Expected NEUTRAL, got %s", got.Label)
	}
}

func TestOllamaBackend_Classify_ModelNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "model 'nope' not found"}`))
	}))
	defer server.Close()

	backend, _ := NewOllamaBackend(Config{BaseURL: server.URL, Model: "nope", Timeout: 5 * time.Second})

	_, err := backend.Classify(context.Background(), "text")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if want := "ollama API error: API error (404): model 'nope' not found"; err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}
