package model

import (
	"fmt"
	"math"
)

// Dimension names one of the five sub-scores
type Dimension string

const (
	DimensionDomainTrust Dimension = "domain_trust"
	DimensionRelevance   Dimension = "relevance"
	DimensionFactCheck   Dimension = "fact_check"
	DimensionBias        Dimension = "bias"
	DimensionCitation    Dimension = "citation"
)

// Dimensions lists every dimension in declaration order.
// Anything that walks the sub-scores walks this slice, never a map.
var Dimensions = []Dimension{
	DimensionDomainTrust,
	DimensionRelevance,
	DimensionFactCheck,
	DimensionBias,
	DimensionCitation,
}

// Label returns the display name used by the legacy report layout
func (d Dimension) Label() string {
	switch d {
	case DimensionDomainTrust:
		return "Domain Trust"
	case DimensionRelevance:
		return "Content Relevance"
	case DimensionFactCheck:
		return "Fact-Check Score"
	case DimensionBias:
		return "Bias Score"
	case DimensionCitation:
		return "Citation Score"
	default:
		return string(d)
	}
}

// Valid reports whether d is one of the five recognized dimensions
func (d Dimension) Valid() bool {
	for _, known := range Dimensions {
		if d == known {
			return true
		}
	}
	return false
}

// SubScores holds the five sub-scores, each in [0,100]
type SubScores struct {
	DomainTrust float64 `json:"domain_trust" yaml:"domain_trust"`
	Relevance   float64 `json:"relevance" yaml:"relevance"`
	FactCheck   float64 `json:"fact_check" yaml:"fact_check"`
	Bias        float64 `json:"bias" yaml:"bias"`
	Citation    float64 `json:"citation" yaml:"citation"`
}

// Get returns the sub-score for a dimension
func (s SubScores) Get(d Dimension) float64 {
	switch d {
	case DimensionDomainTrust:
		return s.DomainTrust
	case DimensionRelevance:
		return s.Relevance
	case DimensionFactCheck:
		return s.FactCheck
	case DimensionBias:
		return s.Bias
	case DimensionCitation:
		return s.Citation
	default:
		return 0
	}
}

// Set stores the sub-score for a dimension
func (s *SubScores) Set(d Dimension, v float64) {
	switch d {
	case DimensionDomainTrust:
		s.DomainTrust = v
	case DimensionRelevance:
		s.Relevance = v
	case DimensionFactCheck:
		s.FactCheck = v
	case DimensionBias:
		s.Bias = v
	case DimensionCitation:
		s.Citation = v
	}
}

// Weights is the weighting policy applied to the sub-scores
type Weights struct {
	DomainTrust float64 `json:"domain_trust" yaml:"domain_trust" mapstructure:"domain_trust"`
	Relevance   float64 `json:"relevance" yaml:"relevance" mapstructure:"relevance"`
	FactCheck   float64 `json:"fact_check" yaml:"fact_check" mapstructure:"fact_check"`
	Bias        float64 `json:"bias" yaml:"bias" mapstructure:"bias"`
	Citation    float64 `json:"citation" yaml:"citation" mapstructure:"citation"`
}

// WeightTolerance is how far the weight sum may drift from 1.0
const WeightTolerance = 1e-6

// DefaultWeights returns the reference policy: 0.30, 0.30, 0.20, 0.10, 0.10
func DefaultWeights() Weights {
	return Weights{
		DomainTrust: 0.30,
		Relevance:   0.30,
		FactCheck:   0.20,
		Bias:        0.10,
		Citation:    0.10,
	}
}

// Get returns the weight for a dimension
func (w Weights) Get(d Dimension) float64 {
	switch d {
	case DimensionDomainTrust:
		return w.DomainTrust
	case DimensionRelevance:
		return w.Relevance
	case DimensionFactCheck:
		return w.FactCheck
	case DimensionBias:
		return w.Bias
	case DimensionCitation:
		return w.Citation
	default:
		return 0
	}
}

// Sum returns the total of all weights
func (w Weights) Sum() float64 {
	total := 0.0
	for _, d := range Dimensions {
		total += w.Get(d)
	}
	return total
}

// Validate checks that every weight is non-negative and finite and that
// the weights sum to 1.0 within WeightTolerance
func (w Weights) Validate() error {
	for _, d := range Dimensions {
		v := w.Get(d)
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("weight %s = %v is not a non-negative number", d, v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("weights sum to %v, want 1.0", sum)
	}
	return nil
}
