package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// AnthropicBackend implements SentimentClassifier with the Messages API
type AnthropicBackend struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	config     Config
}

var _ SentimentClassifier = (*AnthropicBackend)(nil)

// Anthropic API structures
type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Messages    []anthropicMessage `json:"messages"`
	System      string             `json:"system,omitempty"`
	Temperature float64            `json:"temperature"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
}

type anthropicError struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewAnthropicBackend creates a new Anthropic backend
func NewAnthropicBackend(config Config) (*AnthropicBackend, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}

	return &AnthropicBackend{
		apiKey:     config.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: newHTTPClient(config, defaultHostedTimeout),
		config:     config,
	}, nil
}

// Name returns the backend name
func (b *AnthropicBackend) Name() string {
	return "anthropic"
}

// Classify asks a Claude model for a sentiment label
func (b *AnthropicBackend) Classify(ctx context.Context, text string) (Sentiment, error) {
	chatModel := b.config.Model
	if chatModel == "" {
		chatModel = "claude-3-5-haiku-20241022"
	}

	apiReq := anthropicRequest{
		Model:     chatModel,
		MaxTokens: 50,
		System:    sentimentSystemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: BuildSentimentPrompt(text)},
		},
		Temperature: 0,
	}

	headers := map[string]string{
		"x-api-key":         b.apiKey,
		"anthropic-version": "2023-06-01",
	}

	var resp anthropicResponse
	if err := postJSON(ctx, b.httpClient, b.baseURL+"/v1/messages", headers, apiReq, &resp, anthropicErrorMessage); err != nil {
		return Sentiment{}, fmt.Errorf("Anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return Sentiment{}, fmt.Errorf("no content in Anthropic response")
	}

	return parseSentimentJSON(strings.TrimSpace(resp.Content[0].Text))
}

func anthropicErrorMessage(body []byte) string {
	var apiErr anthropicError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error.Message == "" {
		return ""
	}
	return apiErr.Error.Type + " - " + apiErr.Error.Message
}
