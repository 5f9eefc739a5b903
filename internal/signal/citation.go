package signal

import (
	"context"
	"fmt"

	"github.com/ppiankov/veracity/internal/lookup"
	"github.com/ppiankov/veracity/internal/model"
)

// Citation scores how often scholarly sources reference the URL
type Citation struct {
	counter lookup.CitationCounter
}

// NewCitation creates the citation provider; a nil counter always defaults
func NewCitation(counter lookup.CitationCounter) *Citation {
	return &Citation{counter: counter}
}

func (p *Citation) Dimension() model.Dimension { return model.DimensionCitation }

func (p *Citation) Score(ctx context.Context, in Input) Outcome {
	if p.counter == nil {
		return defaulted(DefaultCitation, "no citation backend")
	}

	n, err := p.counter.Count(ctx, in.URL)
	if err != nil {
		return defaulted(DefaultCitation, err.Error())
	}

	return scored(float64(n)*CitationPerReference, fmt.Sprintf("%d references", n))
}
