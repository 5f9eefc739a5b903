package signal

import (
	"context"
	"math"
	"strings"

	"github.com/ppiankov/veracity/internal/llm"
	"github.com/ppiankov/veracity/internal/model"
)

// Relevance scores how closely the page text matches the query
type Relevance struct {
	similarity llm.Similarity
}

// NewRelevance creates the relevance provider
func NewRelevance(similarity llm.Similarity) *Relevance {
	return &Relevance{similarity: similarity}
}

func (p *Relevance) Dimension() model.Dimension { return model.DimensionRelevance }

// Score is the cosine similarity scaled to 0..100 and truncated to a whole number
func (p *Relevance) Score(ctx context.Context, in Input) Outcome {
	if strings.TrimSpace(in.Text) == "" {
		return defaulted(DefaultRelevance, "no page text")
	}
	if p.similarity == nil {
		return defaulted(DefaultRelevance, "no similarity backend")
	}

	sim, err := p.similarity.Compare(ctx, in.Query, in.Text)
	if err != nil {
		return defaulted(DefaultRelevance, p.similarity.Name()+": "+err.Error())
	}

	return scored(math.Trunc(Clamp(sim*100)), p.similarity.Name())
}
