package score

import (
	"math"
	"strings"

	"github.com/ppiankov/veracity/internal/model"
)

const (
	MinStars = 1
	MaxStars = 5

	starIcon = "⭐"
)

// ToStars maps a validity score onto 1-5 stars: round(validity/20), clamped
func ToStars(validity float64) model.StarRating {
	stars := MinStars
	if !math.IsNaN(validity) {
		stars = int(math.Max(MinStars, math.Min(MaxStars, math.Round(validity/20))))
	}

	return model.StarRating{
		Score: stars,
		Icon:  strings.Repeat(starIcon, stars),
	}
}
