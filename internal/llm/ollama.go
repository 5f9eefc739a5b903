package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// OllamaBackend implements Similarity and SentimentClassifier against a local Ollama server
type OllamaBackend struct {
	baseURL    string
	httpClient *http.Client
	config     Config
}

var (
	_ Similarity          = (*OllamaBackend)(nil)
	_ SentimentClassifier = (*OllamaBackend)(nil)
)

// Ollama API structures
type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	System  string        `json:"system,omitempty"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type ollamaEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type ollamaEmbedResponse struct {
	Model      string      `json:"model"`
	Embeddings [][]float64 `json:"embeddings"`
}

type ollamaError struct {
	Error string `json:"error"`
}

const (
	defaultOllamaURL            = "http://localhost:11434"
	defaultOllamaEmbeddingModel = "nomic-embed-text"
	defaultOllamaChatModel      = "llama3.1:8b"
)

// NewOllamaBackend creates a new Ollama backend
func NewOllamaBackend(config Config) (*OllamaBackend, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}

	return &OllamaBackend{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: newHTTPClient(config, 60*time.Second), // local models can be slow
		config:     config,
	}, nil
}

// Name returns the backend name
func (b *OllamaBackend) Name() string {
	return "ollama"
}

// Compare embeds both texts with /api/embed and returns their cosine similarity
func (b *OllamaBackend) Compare(ctx context.Context, query, text string) (float64, error) {
	embedModel := b.config.Model
	if embedModel == "" {
		embedModel = defaultOllamaEmbeddingModel
	}

	var resp ollamaEmbedResponse
	req := ollamaEmbedRequest{Model: embedModel, Input: []string{query, text}}
	if err := postJSON(ctx, b.httpClient, b.baseURL+"/api/embed", nil, req, &resp, ollamaErrorMessage); err != nil {
		return 0, fmt.Errorf("ollama API error: %w", err)
	}
	if len(resp.Embeddings) != 2 {
		return 0, fmt.Errorf("expected 2 embeddings, got %d", len(resp.Embeddings))
	}

	return cosine(resp.Embeddings[0], resp.Embeddings[1])
}

// Classify asks a local chat model for a sentiment label in JSON mode
func (b *OllamaBackend) Classify(ctx context.Context, text string) (Sentiment, error) {
	chatModel := b.config.Model
	if chatModel == "" {
		chatModel = defaultOllamaChatModel
	}

	req := ollamaGenerateRequest{
		Model:   chatModel,
		Prompt:  BuildSentimentPrompt(text),
		Stream:  false,
		System:  sentimentSystemPrompt,
		Format:  "json",
		Options: ollamaOptions{Temperature: 0, NumPredict: 50},
	}

	var resp ollamaGenerateResponse
	if err := postJSON(ctx, b.httpClient, b.baseURL+"/api/generate", nil, req, &resp, ollamaErrorMessage); err != nil {
		return Sentiment{}, fmt.Errorf("ollama API error: %w", err)
	}

	return parseSentimentJSON(strings.TrimSpace(resp.Response))
}

func ollamaErrorMessage(body []byte) string {
	var apiErr ollamaError
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return ""
	}
	return apiErr.Error
}
