// SPDX-License-Identifier: MIT
// Package: patchnet/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves MUST NOT panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"fmt"
	"math"
	"math/rand"
)

// BuilderOption customizes the behavior of a constructor by mutating a
// builderConfig instance before construction begins.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the deterministic patch ID generator: index -> ID.
// Panics on nil.
func WithIDScheme(fn func(int) int) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) { c.idFn = fn }
}

// WithRand provides an explicit RNG for stochastic builders.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a new *rand.Rand with the given seed (deterministic).
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithCostFn overrides the per-link cost generator. Panics on nil.
func WithCostFn(fn CostFn) BuilderOption {
	if fn == nil {
		panic("builder: WithCostFn(nil)")
	}
	return func(c *builderConfig) { c.costFn = fn }
}

// WithArea gives every generated patch the same area. Panics on a negative
// or non-finite value.
func WithArea(area float64) BuilderOption {
	if area < 0 || math.IsNaN(area) || math.IsInf(area, 0) {
		panic(fmt.Sprintf("builder: WithArea(%g)", area))
	}
	return func(c *builderConfig) {
		c.areaFn = func(int, *rand.Rand) float64 { return area }
	}
}

// WithAreaFn sets a per-index area generator. Panics on nil.
func WithAreaFn(fn func(i int, rng *rand.Rand) float64) BuilderOption {
	if fn == nil {
		panic("builder: WithAreaFn(nil)")
	}
	return func(c *builderConfig) { c.areaFn = fn }
}

// WithSpacing sets the distance between neighboring patches. Panics unless
// spacing is finite and > 0.
func WithSpacing(spacing float64) BuilderOption {
	if !(spacing > 0) || math.IsInf(spacing, 1) {
		panic(fmt.Sprintf("builder: WithSpacing(%g)", spacing))
	}
	return func(c *builderConfig) { c.spacing = spacing }
}
