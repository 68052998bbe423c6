// Package risk scores fix-queue items so the most urgent repairs sort first.
package risk

import "fmt"

// Weights are the multipliers applied to each risk signal.
type Weights struct {
	Freshness     float64 `env:"STALE_WEIGHT" envDefault:"1.5"`
	Usage         float64 `env:"HIGH_USAGE_WEIGHT" envDefault:"1.4"`
	FailAdjacent  float64 `env:"FAILURE_ADJACENT_WEIGHT" envDefault:"1.3"`
	DepVolatility float64 `env:"DEP_VOLATILITY_WEIGHT" envDefault:"1.0"`
}

func DefaultWeights() Weights {
	return Weights{
		Freshness:     1.5,
		Usage:         1.4,
		FailAdjacent:  1.3,
		DepVolatility: 1.0,
	}
}

// Validate rejects negative weights, which would turn a riskier item into
// a negative score.
func (w Weights) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"stale", w.Freshness},
		{"high usage", w.Usage},
		{"failure adjacent", w.FailAdjacent},
		{"dep volatility", w.DepVolatility},
	} {
		if f.value < 0 {
			return fmt.Errorf("%s weight must not be negative, got %v", f.name, f.value)
		}
	}
	return nil
}

// Inputs are risk signals in the 0..1 range. Out-of-range values are not
// clamped.
type Inputs struct {
	FreshnessRisk      float64
	UsageRisk          float64
	FailAdjacentRisk   float64
	DepVolatilityRisk  float64
	ProximalMultiplier float64
}

// NewInputs returns zero risk with a neutral proximal multiplier.
func NewInputs() Inputs {
	return Inputs{ProximalMultiplier: 1.0}
}

type Scorer struct {
	weights Weights
}

func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

func (s *Scorer) Weights() Weights {
	return s.weights
}

func (s *Scorer) Score(in Inputs) float64 {
	base := in.FreshnessRisk*s.weights.Freshness +
		in.UsageRisk*s.weights.Usage +
		in.FailAdjacentRisk*s.weights.FailAdjacent +
		in.DepVolatilityRisk*s.weights.DepVolatility
	return base * in.ProximalMultiplier
}
