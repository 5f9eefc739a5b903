package llm

import (
	"fmt"
	"strings"
	"time"
)

const defaultHostedTimeout = 30 * time.Second

// NewSimilarity creates the similarity backend named in the configuration
func NewSimilarity(config Config) (Similarity, error) {
	switch strings.ToLower(config.Backend) {
	case "", "lexical":
		return NewLexicalBackend(), nil
	case "openai":
		return NewOpenAIBackend(config)
	case "ollama":
		return NewOllamaBackend(config)
	case "huggingface", "hf":
		return NewHuggingFaceBackend(config)
	default:
		return nil, fmt.Errorf("unknown similarity backend: %s (supported: lexical, openai, ollama, huggingface)", config.Backend)
	}
}

// NewSentimentClassifier creates the sentiment backend named in the configuration
func NewSentimentClassifier(config Config) (SentimentClassifier, error) {
	switch strings.ToLower(config.Backend) {
	case "", "lexical":
		return NewLexicalBackend(), nil
	case "openai":
		return NewOpenAIBackend(config)
	case "anthropic", "claude":
		return NewAnthropicBackend(config)
	case "ollama":
		return NewOllamaBackend(config)
	case "huggingface", "hf":
		return NewHuggingFaceBackend(config)
	default:
		return nil, fmt.Errorf("unknown sentiment backend: %s (supported: lexical, openai, anthropic, ollama, huggingface)", config.Backend)
	}
}
