package signal

import (
	"context"

	"github.com/ppiankov/veracity/internal/extract"
	"github.com/ppiankov/veracity/internal/lookup"
	"github.com/ppiankov/veracity/internal/model"
)

// FactCheck looks the start of the page text up in a fact-check index
type FactCheck struct {
	checker lookup.FactChecker
}

// NewFactCheck creates the fact-check provider; a nil checker always defaults
func NewFactCheck(checker lookup.FactChecker) *FactCheck {
	return &FactCheck{checker: checker}
}

func (p *FactCheck) Dimension() model.Dimension { return model.DimensionFactCheck }

func (p *FactCheck) Score(ctx context.Context, in Input) Outcome {
	if p.checker == nil {
		return defaulted(DefaultFactCheck, "no fact-check backend")
	}

	matched, err := p.checker.Lookup(ctx, extract.Truncate(in.Text, FactCheckExcerptLen))
	if err != nil {
		return defaulted(DefaultFactCheck, err.Error())
	}
	if matched {
		return scored(FactCheckMatched, "matching claim review found")
	}
	return scored(FactCheckUnmatched, "no matching claim review")
}
