package score

import (
	"strings"

	"github.com/ppiankov/veracity/internal/model"
)

// PositiveExplanation is emitted when no rule triggers
const PositiveExplanation = "This source is highly credible and relevant."

type rule struct {
	dimension model.Dimension
	threshold float64
	sentence  string
}

// rules are evaluated in this order; the output follows it exactly
var rules = []rule{
	{model.DimensionDomainTrust, 50, "The source has low domain authority."},
	{model.DimensionRelevance, 50, "The content is not highly relevant to your query."},
	{model.DimensionFactCheck, 50, "Limited fact-checking verification found."},
	{model.DimensionBias, 50, "Potential bias detected in the content."},
	{model.DimensionCitation, 30, "Few citations found for this content."},
}

// Explain builds the rule-based rationale for a set of sub-scores.
// A rule triggers when its sub-score is strictly below the threshold.
func Explain(s model.SubScores) string {
	var reasons []string
	for _, r := range rules {
		if s.Get(r.dimension) < r.threshold {
			reasons = append(reasons, r.sentence)
		}
	}

	if len(reasons) == 0 {
		return PositiveExplanation
	}
	return strings.Join(reasons, " ")
}
