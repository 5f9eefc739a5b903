package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHuggingFaceBackend_Compare_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/"+defaultHuggingFaceSimilarityModel {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer hf-token" {
			t.Errorf("Unexpected Authorization header %s", r.Header.Get("Authorization"))
		}

		var req hfSimilarityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Inputs.SourceSentence != "query" || len(req.Inputs.Sentences) != 1 {
			t.Errorf("Unexpected inputs: %+v", req.Inputs)
		}

		_, _ = w.Write([]byte(`[0.62]`))
	}))
	defer server.Close()

	backend, _ := NewHuggingFaceBackend(Config{APIKey: "hf-token", BaseURL: server.URL, Timeout: 5 * time.Second})

	got, err := backend.Compare(context.Background(), "query", "page")
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if got != 0.62 {
		t.Errorf("Expected 0.62, got %v", got)
	}
}

func TestHuggingFaceBackend_Classify_ResponseShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Label
	}{
		{
			name: "nested roberta labels",
			body: `[[{"label": "LABEL_0", "score": 0.1}, {"label": "LABEL_1", "score": 0.2}, {"label": "LABEL_2", "score": 0.7}]]`,
			want: LabelPositive,
		},
		{
			name: "flat named labels",
			body: `[{"label": "negative", "score": 0.9}, {"label": "positive", "score": 0.1}]`,
			want: LabelNegative,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/models/"+defaultHuggingFaceSentimentModel {
					t.Errorf("Unexpected path %s", r.URL.Path)
				}
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			backend, _ := NewHuggingFaceBackend(Config{APIKey: "hf-token", BaseURL: server.URL, Timeout: 5 * time.Second})

			got, err := backend.Classify(context.Background(), "text")
			if err != nil {
				t.Fatalf("Classify failed: %v", err)
			}
			if got.Label != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got.Label)
			}
		})
	}
}

func TestHuggingFaceBackend_ModelLoading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": "Model is currently loading", "estimated_time": 20}`))
	}))
	defer server.Close()

	backend, _ := NewHuggingFaceBackend(Config{APIKey: "hf-token", BaseURL: server.URL, Timeout: 5 * time.Second})
	if _, err := backend.Classify(context.Background(), "text"); err == nil {
		t.Fatal("Expected error while model is loading")
	}
}

func TestDecodeLabelScores_Invalid(t *testing.T) {
	if _, err := decodeLabelScores(json.RawMessage(`{"unexpected": true}`)); err == nil {
		t.Fatal("Expected error for object response")
	}
	if _, err := decodeLabelScores(json.RawMessage(`[]`)); err == nil {
		t.Fatal("Expected error for empty response")
	}
}
