package llm

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
)

func TestOpenAIBackend_Compare_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("Expected path /embeddings, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected Authorization header Bearer test-key, got %s", r.Header.Get("Authorization"))
		}

		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Input) != 2 || req.Input[0] != "query" || req.Input[1] != "page text" {
			t.Errorf("Unexpected input: %v", req.Input)
		}
		if req.Model != string(openai.SmallEmbedding3) {
			t.Errorf("Expected default embedding model, got %s", req.Model)
		}

		// Returned out of order on purpose
		_, _ = w.Write([]byte(`{
			"object": "list",
			"data": [
				{"object": "embedding", "index": 1, "embedding": [1, 1]},
				{"object": "embedding", "index": 0, "embedding": [1, 0]}
			],
			"model": "text-embedding-3-small",
			"usage": {"prompt_tokens": 4, "total_tokens": 4}
		}`))
	}))
	defer server.Close()

	backend, err := NewOpenAIBackend(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("Failed to create backend: %v", err)
	}

	got, err := backend.Compare(context.Background(), "query", "page text")
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if math.Abs(got-1/math.Sqrt2) > 1e-6 {
		t.Errorf("Expected cosine %.6f, got %.6f", 1/math.Sqrt2, got)
	}
}

func TestOpenAIBackend_Compare_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "Internal Server Error", "type": "server_error"}}`))
	}))
	defer server.Close()

	backend, _ := NewOpenAIBackend(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5 * time.Second})
	if _, err := backend.Compare(context.Background(), "q", "t"); err == nil {
		t.Fatal("Expected error, got nil")
	}
}

func TestOpenAIBackend_Classify_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}

		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONObject {
			t.Errorf("Expected JSON response format")
		}
		if len(req.Messages) != 2 || !strings.Contains(req.Messages[1].Content, "Houses are great") {
			t.Errorf("Expected prompt to contain the text")
		}

		resp := openai.ChatCompletionResponse{
			ID:    "chatcmpl-123",
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Message: openai.ChatCompletionMessage{
						Role:    "assistant",
						Content: `{"label": "positive", "confidence": 0.91}`,
					},
					FinishReason: "stop",
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	backend, _ := NewOpenAIBackend(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5 * time.Second})

	got, err := backend.Classify(context.Background(), "Houses are great")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if got.Label != LabelPositive {
		t.Errorf("Expected POSITIVE, got %s", got.Label)
	}
	if got.Confidence != 0.91 {
		t.Errorf("Expected confidence 0.91, got %v", got.Confidence)
	}
}

func TestOpenAIBackend_Classify_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{ID: "chatcmpl-123"})
	}))
	defer server.Close()

	backend, _ := NewOpenAIBackend(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5 * time.Second})
	if _, err := backend.Classify(context.Background(), "text"); err == nil {
		t.Fatal("Expected error for empty choices")
	}
}

func TestOpenAIBackend_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	backend, _ := NewOpenAIBackend(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	if _, err := backend.Classify(context.Background(), "text"); err == nil {
		t.Fatal("Expected timeout error")
	}
}

func TestNewOpenAIBackend_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIBackend(Config{}); err == nil {
		t.Fatal("Expected error without API key")
	}
}
