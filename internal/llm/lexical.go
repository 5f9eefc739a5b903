package llm

import (
	"context"
	"math"
	"strings"
	"unicode"
)

// LexicalBackend is the offline fallback: term-frequency cosine similarity
// and a word-list sentiment counter. It needs no network and no model files.
type LexicalBackend struct{}

var (
	_ Similarity          = (*LexicalBackend)(nil)
	_ SentimentClassifier = (*LexicalBackend)(nil)
)

// NewLexicalBackend creates a new lexical backend
func NewLexicalBackend() *LexicalBackend {
	return &LexicalBackend{}
}

// Name returns the backend name
func (b *LexicalBackend) Name() string {
	return "lexical"
}

// Compare returns the cosine similarity of the term-frequency vectors of query and text
func (b *LexicalBackend) Compare(_ context.Context, query, text string) (float64, error) {
	q := termFrequencies(query)
	t := termFrequencies(text)
	if len(q) == 0 || len(t) == 0 {
		return 0, nil
	}

	var dot, normQ, normT float64
	for term, n := range q {
		dot += n * t[term]
		normQ += n * n
	}
	for _, n := range t {
		normT += n * n
	}

	return dot / (math.Sqrt(normQ) * math.Sqrt(normT)), nil
}

// Classify counts polarity words; a balance above 0.2 either way decides the label
func (b *LexicalBackend) Classify(_ context.Context, text string) (Sentiment, error) {
	var pos, neg int
	for _, tok := range tokenize(text) {
		switch {
		case positiveWords[tok]:
			pos++
		case negativeWords[tok]:
			neg++
		}
	}

	if pos+neg == 0 {
		return Sentiment{Label: LabelNeutral, Confidence: 0.5}, nil
	}

	balance := float64(pos-neg) / float64(pos+neg)
	switch {
	case balance > 0.2:
		return Sentiment{Label: LabelPositive, Confidence: balance}, nil
	case balance < -0.2:
		return Sentiment{Label: LabelNegative, Confidence: -balance}, nil
	default:
		return Sentiment{Label: LabelNeutral, Confidence: 1 - math.Abs(balance)}, nil
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func termFrequencies(text string) map[string]float64 {
	tf := make(map[string]float64)
	for _, tok := range tokenize(text) {
		tok = strings.Trim(tok, "'")
		if tok == "" || stopWords[tok] {
			continue
		}
		tf[tok]++
	}
	return tf
}

var stopWords = toSet(
	"a", "an", "the", "and", "or", "but", "if", "of", "to", "in", "on", "at", "by", "for",
	"with", "as", "is", "are", "was", "were", "be", "been", "it", "its", "this", "that",
	"these", "those", "i", "you", "he", "she", "we", "they", "my", "your", "our", "their",
	"do", "does", "did", "from", "so", "than", "then", "there", "what", "which", "who",
)

var positiveWords = toSet(
	"good", "great", "excellent", "benefit", "benefits", "beneficial", "advantage", "advantages",
	"best", "better", "positive", "success", "successful", "gain", "gains", "profit", "profitable",
	"safe", "secure", "reliable", "recommend", "recommended", "helpful", "opportunity", "strong",
	"growth", "love", "happy", "improve", "improved", "effective", "affordable", "wise",
)

var negativeWords = toSet(
	"bad", "poor", "worst", "worse", "risk", "risky", "loss", "losses", "lose", "negative",
	"fail", "failure", "danger", "dangerous", "scam", "fraud", "debt", "expensive", "problem",
	"problems", "warning", "mistake", "terrible", "hate", "crisis", "decline", "unsafe", "weak",
	"costly", "harm", "harmful", "avoid", "regret",
)

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
