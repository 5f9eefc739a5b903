package llm

import (
	"strings"
	"testing"
)

func TestNewSimilarity(t *testing.T) {
	tests := []struct {
		config  Config
		want    string
		wantErr string
	}{
		{Config{}, "lexical", ""},
		{Config{Backend: "Lexical"}, "lexical", ""},
		{Config{Backend: "openai", APIKey: "k"}, "openai", ""},
		{Config{Backend: "ollama"}, "ollama", ""},
		{Config{Backend: "hf", APIKey: "k"}, "huggingface", ""},
		{Config{Backend: "openai"}, "", "API key is required"},
		{Config{Backend: "anthropic", APIKey: "k"}, "", "unknown similarity backend"},
	}

	for _, tt := range tests {
		t.Run(tt.config.Backend, func(t *testing.T) {
			got, err := NewSimilarity(tt.config)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got.Name() != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got.Name())
			}
		})
	}
}

func TestNewSentimentClassifier(t *testing.T) {
	tests := []struct {
		config  Config
		want    string
		wantErr bool
	}{
		{Config{}, "lexical", false},
		{Config{Backend: "openai", APIKey: "k"}, "openai", false},
		{Config{Backend: "claude", APIKey: "k"}, "anthropic", false},
		{Config{Backend: "ollama"}, "ollama", false},
		{Config{Backend: "huggingface", APIKey: "k"}, "huggingface", false},
		{Config{Backend: "huggingface"}, "", true},
		{Config{Backend: "vader"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.config.Backend, func(t *testing.T) {
			got, err := NewSentimentClassifier(tt.config)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for backend %q", tt.config.Backend)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got.Name() != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got.Name())
			}
		})
	}
}
