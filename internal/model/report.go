package model

import "time"

// Result is the complete evaluation of one (query, URL) pair.
// It is the only artifact handed back to callers and is not mutated after Evaluate returns.
type Result struct {
	Query string `json:"query" yaml:"query"`
	URL   string `json:"url" yaml:"url"`

	SubScores     SubScores  `json:"sub_scores" yaml:"sub_scores"`
	ValidityScore float64    `json:"validity_score" yaml:"validity_score"`
	Stars         StarRating `json:"stars" yaml:"stars"`
	Explanation   string     `json:"explanation" yaml:"explanation"`

	Signals     []Signal    `json:"signals,omitempty" yaml:"signals,omitempty"` // Per-provider breakdown, in dimension order
	Source      PageContent `json:"source" yaml:"source"`                       // Fetch diagnostics
	EvaluatedAt time.Time   `json:"evaluated_at" yaml:"evaluated_at"`
}

// StarRating is the 1-5 presentation of the validity score
type StarRating struct {
	Score int    `json:"score" yaml:"score"`
	Icon  string `json:"icon" yaml:"icon"`
}

// Signal records how a provider arrived at its sub-score
type Signal struct {
	Dimension Dimension `json:"dimension" yaml:"dimension"`
	Score     float64   `json:"score" yaml:"score"`
	Weight    float64   `json:"weight" yaml:"weight"`
	Defaulted bool      `json:"defaulted" yaml:"defaulted"`               // Provider fell back to its documented default
	Detail    string    `json:"detail,omitempty" yaml:"detail,omitempty"` // Human-readable inputs (labels, counts, backend)
}

// LegacyReport mirrors the layout of the first release of the validator
type LegacyReport struct {
	RawScore    map[string]float64 `json:"raw_score" yaml:"raw_score"`
	Stars       StarRating         `json:"stars" yaml:"stars"`
	Explanation string             `json:"explanation" yaml:"explanation"`
}

// Legacy converts the result into the legacy layout
func (r *Result) Legacy() LegacyReport {
	raw := make(map[string]float64, len(Dimensions)+1)
	for _, d := range Dimensions {
		raw[d.Label()] = r.SubScores.Get(d)
	}
	raw["Final Validity Score"] = r.ValidityScore

	return LegacyReport{
		RawScore:    raw,
		Stars:       r.Stars,
		Explanation: r.Explanation,
	}
}
