package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ppiankov/veracity/internal/model"
)

// Similarity compares a query with a page text.
// Compare returns the cosine similarity of the two, in [-1, 1].
type Similarity interface {
	Name() string
	Compare(ctx context.Context, query, text string) (float64, error)
}

// SentimentClassifier labels the overall sentiment of a text
type SentimentClassifier interface {
	Name() string
	Classify(ctx context.Context, text string) (Sentiment, error)
}

// Label is a three-class sentiment label
type Label string

const (
	LabelPositive Label = "POSITIVE"
	LabelNeutral  Label = "NEUTRAL"
	LabelNegative Label = "NEGATIVE"
)

// Sentiment is a classifier verdict
type Sentiment struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
}

// NormalizeLabel maps the label spellings used by common sentiment models
// onto the three classes. Unknown labels are returned upper-cased as-is.
func NormalizeLabel(raw string) Label {
	l := strings.ToUpper(strings.TrimSpace(raw))
	switch l {
	case "POSITIVE", "POS", "LABEL_2":
		return LabelPositive
	case "NEUTRAL", "NEU", "LABEL_1":
		return LabelNeutral
	case "NEGATIVE", "NEG", "LABEL_0":
		return LabelNegative
	default:
		return Label(l)
	}
}

// Config holds the settings of one model backend
type Config struct {
	// Backend name: "lexical", "openai", "anthropic", "ollama", "huggingface"
	Backend string

	// Model name (backend-specific)
	Model string

	// APIKey for hosted backends
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for a single backend call
	Timeout time.Duration

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// ConfigFromModel converts a model.BackendConfig plus the shared proxy settings
func ConfigFromModel(b model.BackendConfig, h model.HTTPConfig) Config {
	return Config{
		Backend:    b.Backend,
		Model:      b.Model,
		APIKey:     b.APIKey,
		BaseURL:    b.BaseURL,
		Timeout:    b.Timeout,
		HTTPProxy:  h.HTTPProxy,
		HTTPSProxy: h.HTTPSProxy,
		NoProxy:    h.NoProxy,
	}
}

func (c Config) timeout(fallback time.Duration) time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return fallback
}

const sentimentSystemPrompt = "You are a sentiment classifier. You answer with JSON only."

// BuildSentimentPrompt constructs the prompt used by chat-style backends
func BuildSentimentPrompt(text string) string {
	return fmt.Sprintf(`Classify the overall sentiment of the text below as POSITIVE, NEUTRAL or NEGATIVE.

Respond with a single JSON object and nothing else:
{"label": "POSITIVE|NEUTRAL|NEGATIVE", "confidence": <number between 0 and 1>}

Text:
"""
%s
"""`, text)
}

// parseSentimentJSON extracts a Sentiment from a model reply that should be JSON
func parseSentimentJSON(reply string) (Sentiment, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return Sentiment{}, fmt.Errorf("no JSON object in reply: %q", truncateForError(reply))
	}

	var raw struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return Sentiment{}, fmt.Errorf("unmarshal sentiment: %w", err)
	}
	if raw.Label == "" {
		return Sentiment{}, fmt.Errorf("empty sentiment label")
	}

	return Sentiment{
		Label:      NormalizeLabel(raw.Label),
		Confidence: math.Max(0, math.Min(1, raw.Confidence)),
	}, nil
}

// cosine returns the cosine similarity of two vectors; zero vectors compare as 0
func cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding size mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

func truncateForError(s string) string {
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
