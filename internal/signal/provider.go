// Package signal computes the five credibility sub-scores. Every provider is
// total: backend failures are mapped to the provider's documented default.
package signal

import (
	"context"
	"math"

	"github.com/ppiankov/veracity/internal/model"
)

// Provider computes one sub-score
type Provider interface {
	Dimension() model.Dimension
	Score(ctx context.Context, in Input) Outcome
}

// Input is what every provider sees of an evaluation
type Input struct {
	Query string
	URL   string
	Text  string // paragraph text; empty when the fetch failed
}

// Outcome is a provider's score plus how it was reached
type Outcome struct {
	Score     float64
	Defaulted bool   // true when a failure or missing input forced the default
	Detail    string // cause of the default, or a short description of the evidence
}

// Scores and defaults per provider
const (
	DefaultDomainTrust   = 60.0
	PrimaryDomainTrust   = 90.0
	SecondaryDomainTrust = 75.0

	DefaultRelevance = 0.0

	FactCheckMatched   = 80.0
	FactCheckUnmatched = 40.0
	DefaultFactCheck   = 50.0

	BiasPositive = 100.0
	BiasNeutral  = 50.0
	BiasNegative = 30.0
	DefaultBias  = 50.0

	CitationPerReference = 10.0
	DefaultCitation      = 0.0
)

// Excerpt lengths, in characters
const (
	BiasExcerptLen      = 512
	FactCheckExcerptLen = 200
)

// Clamp bounds v to [0,100]; NaN becomes 0
func Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

func scored(v float64, detail string) Outcome {
	return Outcome{Score: Clamp(v), Detail: detail}
}

func defaulted(v float64, detail string) Outcome {
	return Outcome{Score: Clamp(v), Defaulted: true, Detail: detail}
}
