package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// HuggingFaceBackend calls the Hugging Face Inference API: the
// sentence-similarity task for Similarity and text-classification for sentiment
type HuggingFaceBackend struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	config     Config
}

var (
	_ Similarity          = (*HuggingFaceBackend)(nil)
	_ SentimentClassifier = (*HuggingFaceBackend)(nil)
)

const (
	defaultHuggingFaceURL             = "https://api-inference.huggingface.co"
	defaultHuggingFaceSimilarityModel = "sentence-transformers/all-mpnet-base-v2"
	defaultHuggingFaceSentimentModel  = "cardiffnlp/twitter-roberta-base-sentiment"
)

type hfSimilarityRequest struct {
	Inputs  hfSimilarityInputs `json:"inputs"`
	Options hfOptions          `json:"options"`
}

type hfSimilarityInputs struct {
	SourceSentence string   `json:"source_sentence"`
	Sentences      []string `json:"sentences"`
}

type hfClassificationRequest struct {
	Inputs  string    `json:"inputs"`
	Options hfOptions `json:"options"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfLabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type hfError struct {
	Error string `json:"error"`
}

// NewHuggingFaceBackend creates a new Hugging Face backend
func NewHuggingFaceBackend(config Config) (*HuggingFaceBackend, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Hugging Face API token is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultHuggingFaceURL
	}

	return &HuggingFaceBackend{
		apiKey:     config.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: newHTTPClient(config, defaultHostedTimeout),
		config:     config,
	}, nil
}

// Name returns the backend name
func (b *HuggingFaceBackend) Name() string {
	return "huggingface"
}

// Compare runs the sentence-similarity pipeline with the query as source sentence
func (b *HuggingFaceBackend) Compare(ctx context.Context, query, text string) (float64, error) {
	req := hfSimilarityRequest{
		Inputs: hfSimilarityInputs{
			SourceSentence: query,
			Sentences:      []string{text},
		},
		Options: hfOptions{WaitForModel: true},
	}

	var scores []float64
	if err := b.post(ctx, b.modelOr(defaultHuggingFaceSimilarityModel), req, &scores); err != nil {
		return 0, err
	}
	if len(scores) != 1 {
		return 0, fmt.Errorf("expected 1 similarity score, got %d", len(scores))
	}
	return scores[0], nil
}

// Classify runs the text-classification pipeline and keeps the highest-scoring label
func (b *HuggingFaceBackend) Classify(ctx context.Context, text string) (Sentiment, error) {
	req := hfClassificationRequest{
		Inputs:  text,
		Options: hfOptions{WaitForModel: true},
	}

	var raw json.RawMessage
	if err := b.post(ctx, b.modelOr(defaultHuggingFaceSentimentModel), req, &raw); err != nil {
		return Sentiment{}, err
	}

	labels, err := decodeLabelScores(raw)
	if err != nil {
		return Sentiment{}, err
	}

	best := labels[0]
	for _, l := range labels[1:] {
		if l.Score > best.Score {
			best = l
		}
	}

	return Sentiment{Label: NormalizeLabel(best.Label), Confidence: best.Score}, nil
}

func (b *HuggingFaceBackend) modelOr(fallback string) string {
	if b.config.Model != "" {
		return b.config.Model
	}
	return fallback
}

func (b *HuggingFaceBackend) post(ctx context.Context, modelID string, payload any, out any) error {
	url := fmt.Sprintf("%s/models/%s", b.baseURL, modelID)
	headers := map[string]string{"Authorization": "Bearer " + b.apiKey}

	if err := postJSON(ctx, b.httpClient, url, headers, payload, out, hfErrorMessage); err != nil {
		return fmt.Errorf("Hugging Face API error: %w", err)
	}
	return nil
}

// decodeLabelScores accepts both the nested [[...]] and the flat [...] response shapes
func decodeLabelScores(raw json.RawMessage) ([]hfLabelScore, error) {
	var nested [][]hfLabelScore
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}

	var flat []hfLabelScore
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}

	return nil, fmt.Errorf("unexpected classification response: %s", truncateForError(string(raw)))
}

func hfErrorMessage(body []byte) string {
	var apiErr hfError
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return ""
	}
	return apiErr.Error
}
