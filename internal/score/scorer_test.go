package score

import (
	"errors"
	"testing"

	"github.com/ppiankov/veracity/internal/model"
)

func TestNewScorer_RejectsInvalidWeights(t *testing.T) {
	_, err := NewScorer(model.Weights{DomainTrust: 1, Relevance: 1})
	if !errors.Is(err, ErrInvalidWeights) {
		t.Errorf("expected ErrInvalidWeights, got %v", err)
	}
}

func TestScorer_Calculate_Boundary(t *testing.T) {
	scorer, err := NewScorer(model.DefaultWeights())
	if err != nil {
		t.Fatalf("NewScorer: %v", err)
	}

	v, err := scorer.Calculate(uniform(50))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if v.ValidityScore != 50 {
		t.Errorf("expected validity 50, got %v", v.ValidityScore)
	}
	if v.Stars.Score != 3 {
		t.Errorf("expected 3 stars, got %d", v.Stars.Score)
	}
	if v.Explanation != PositiveExplanation {
		t.Errorf("expected positive explanation, got %q", v.Explanation)
	}
}

func TestScorer_Calculate_ReferenceExample(t *testing.T) {
	scorer, _ := NewScorer(model.DefaultWeights())

	// Placeholders of the first release plus a weak page
	v, err := scorer.Calculate(model.SubScores{DomainTrust: 60, Relevance: 35, FactCheck: 70, Bias: 30, Citation: 50})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	// 18 + 10.5 + 14 + 3 + 5 = 50.5
	if v.ValidityScore != 50.5 {
		t.Errorf("expected 50.5, got %v", v.ValidityScore)
	}
	if v.Stars.Score != 3 {
		t.Errorf("expected 3 stars, got %d", v.Stars.Score)
	}
	want := "The content is not highly relevant to your query. Potential bias detected in the content."
	if v.Explanation != want {
		t.Errorf("got %q, want %q", v.Explanation, want)
	}
}

func TestScorer_Calculate_OutOfRange(t *testing.T) {
	scorer, _ := NewScorer(model.DefaultWeights())

	_, err := scorer.Calculate(model.SubScores{DomainTrust: 120})
	if !errors.Is(err, ErrScoreOutOfRange) {
		t.Errorf("expected ErrScoreOutOfRange, got %v", err)
	}
}
