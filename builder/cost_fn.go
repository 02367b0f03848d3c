// Package builder provides link-cost distributions for landscape constructors.
package builder

import (
	"fmt"
	"math/rand"
)

// CostFn produces a link cost given an optional *rand.Rand source.
// It must be deterministic for a given RNG seed.
type CostFn func(rng *rand.Rand) float64

// DefaultCostFn always returns DefaultLinkCost.
func DefaultCostFn(_ *rand.Rand) float64 { return DefaultLinkCost }

// ConstantCostFn returns a CostFn that always yields value.
// Panics if value < 0.
func ConstantCostFn(value float64) CostFn {
	if value < 0 {
		panic(fmt.Sprintf("ConstantCostFn: value must be ≥ 0, got %g", value))
	}

	return func(_ *rand.Rand) float64 { return value }
}

// UniformCostFn returns a CostFn sampling uniformly in [min, max).
// Panics if min < 0 or max < min. With a nil rng it yields DefaultLinkCost.
func UniformCostFn(min, max float64) CostFn {
	if min < 0 || max < min {
		panic(fmt.Sprintf("UniformCostFn: require 0 ≤ min ≤ max, got min=%g, max=%g", min, max))
	}

	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultLinkCost
		}
		if max == min {
			return min
		}

		return min + rng.Float64()*(max-min)
	}
}

// ExponentialCostFn returns a CostFn sampling Exp(rate).
// Panics if rate ≤ 0. With a nil rng it yields DefaultLinkCost.
func ExponentialCostFn(rate float64) CostFn {
	if rate <= 0 {
		panic(fmt.Sprintf("ExponentialCostFn: rate must be > 0, got %g", rate))
	}

	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultLinkCost
		}

		return rng.ExpFloat64() / rate
	}
}
