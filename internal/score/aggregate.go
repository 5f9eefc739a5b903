package score

import (
	"errors"
	"fmt"
	"math"

	"github.com/ppiankov/veracity/internal/model"
)

var (
	// ErrScoreOutOfRange is returned when a sub-score is outside [0,100]
	ErrScoreOutOfRange = errors.New("sub-score out of range")

	// ErrInvalidWeights is returned when a weight vector is negative or does not sum to 1.0
	ErrInvalidWeights = errors.New("invalid weight vector")
)

const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Aggregate combines the sub-scores into the validity score.
// Out-of-range scores and invalid weights are contract violations: they are
// reported, never clamped here.
func Aggregate(s model.SubScores, w model.Weights) (float64, error) {
	if err := w.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidWeights, err)
	}

	total := 0.0
	for _, d := range model.Dimensions {
		v := s.Get(d)
		if err := CheckRange(d, v); err != nil {
			return 0, err
		}
		total += w.Get(d) * v
	}

	return Round2(total), nil
}

// CheckRange verifies that v is a finite number in [0,100]
func CheckRange(d model.Dimension, v float64) error {
	if math.IsNaN(v) || v < MinScore || v > MaxScore {
		return fmt.Errorf("%w: %s = %v", ErrScoreOutOfRange, d, v)
	}
	return nil
}

// Round2 rounds to 2 decimal places, half away from zero
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
