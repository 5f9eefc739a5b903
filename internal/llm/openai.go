package llm

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIBackend implements Similarity with the embeddings API and
// SentimentClassifier with a JSON-mode chat completion
type OpenAIBackend struct {
	client     *openai.Client
	httpClient *http.Client
	config     Config
}

var (
	_ Similarity          = (*OpenAIBackend)(nil)
	_ SentimentClassifier = (*OpenAIBackend)(nil)
)

// NewOpenAIBackend creates a new OpenAI backend
func NewOpenAIBackend(config Config) (*OpenAIBackend, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	httpClient := newHTTPClient(config, defaultHostedTimeout)
	clientConfig.HTTPClient = httpClient

	return &OpenAIBackend{
		client:     openai.NewClientWithConfig(clientConfig),
		httpClient: httpClient,
		config:     config,
	}, nil
}

// Name returns the backend name
func (b *OpenAIBackend) Name() string {
	return "openai"
}

// Compare embeds the query and the text in one request and returns their cosine similarity
func (b *OpenAIBackend) Compare(ctx context.Context, query, text string) (float64, error) {
	embeddingModel := openai.SmallEmbedding3
	if b.config.Model != "" {
		embeddingModel = openai.EmbeddingModel(b.config.Model)
	}

	resp, err := b.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{query, text},
		Model: embeddingModel,
	})
	if err != nil {
		return 0, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Data) != 2 {
		return 0, fmt.Errorf("expected 2 embeddings, got %d", len(resp.Data))
	}

	data := resp.Data
	sort.Slice(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	return cosine(toFloat64(data[0].Embedding), toFloat64(data[1].Embedding))
}

// Classify asks a chat model for a sentiment label
func (b *OpenAIBackend) Classify(ctx context.Context, text string) (Sentiment, error) {
	chatModel := b.config.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sentimentSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildSentimentPrompt(text)},
		},
		MaxTokens:   50,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return Sentiment{}, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Sentiment{}, fmt.Errorf("no response from OpenAI")
	}

	return parseSentimentJSON(strings.TrimSpace(resp.Choices[0].Message.Content))
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}
