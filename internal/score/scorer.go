package score

import (
	"fmt"

	"github.com/ppiankov/veracity/internal/model"
)

// Scorer turns sub-scores into a verdict under a fixed weight vector
type Scorer struct {
	weights model.Weights
}

// Verdict is the derived part of an evaluation result
type Verdict struct {
	ValidityScore float64
	Stars         model.StarRating
	Explanation   string
}

// NewScorer creates a scorer; the weights are validated once, here
func NewScorer(weights model.Weights) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWeights, err)
	}
	return &Scorer{weights: weights}, nil
}

// Weights returns the weight vector used by the scorer
func (s *Scorer) Weights() model.Weights {
	return s.weights
}

// Calculate aggregates, rates and explains the sub-scores
func (s *Scorer) Calculate(sub model.SubScores) (Verdict, error) {
	validity, err := Aggregate(sub, s.weights)
	if err != nil {
		return Verdict{}, err
	}

	return Verdict{
		ValidityScore: validity,
		Stars:         ToStars(validity),
		Explanation:   Explain(sub),
	}, nil
}
