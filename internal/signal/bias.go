package signal

import (
	"context"
	"strings"

	"github.com/ppiankov/veracity/internal/extract"
	"github.com/ppiankov/veracity/internal/llm"
	"github.com/ppiankov/veracity/internal/model"
)

// Bias maps the sentiment of the opening text to a score
type Bias struct {
	classifier llm.SentimentClassifier
}

// NewBias creates the bias provider
func NewBias(classifier llm.SentimentClassifier) *Bias {
	return &Bias{classifier: classifier}
}

func (p *Bias) Dimension() model.Dimension { return model.DimensionBias }

func (p *Bias) Score(ctx context.Context, in Input) Outcome {
	if strings.TrimSpace(in.Text) == "" {
		return defaulted(DefaultBias, "no page text")
	}
	if p.classifier == nil {
		return defaulted(DefaultBias, "no sentiment backend")
	}

	sentiment, err := p.classifier.Classify(ctx, extract.Truncate(in.Text, BiasExcerptLen))
	if err != nil {
		return defaulted(DefaultBias, p.classifier.Name()+": "+err.Error())
	}

	detail := p.classifier.Name() + ": " + string(sentiment.Label)
	return scored(BiasForLabel(sentiment.Label), detail)
}

// BiasForLabel maps a sentiment label to a bias score. Labels other than
// POSITIVE and NEUTRAL score as negative.
func BiasForLabel(label llm.Label) float64 {
	switch label {
	case llm.LabelPositive:
		return BiasPositive
	case llm.LabelNeutral:
		return BiasNeutral
	default:
		return BiasNegative
	}
}
