// SPDX-License-Identifier: MIT
// Package: patchnet/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • idFn    = i+1            (patch IDs 1,2,3,...)
//   • rng     = nil            (pure/deterministic unless seeded)
//   • costFn  = ConstantCostFn(DefaultLinkCost)
//   • areaFn  = constant DefaultPatchArea
//   • spacing = DefaultSpacing (map units between neighboring patches)

package builder

import "math/rand"

// Deterministic defaults (named, no magic numbers).
const (
	// DefaultLinkCost is the cost of every generated link without WithCostFn.
	DefaultLinkCost = 1.0
	// DefaultPatchArea is the area (and so capacity) of every generated patch.
	DefaultPatchArea = 1.0
	// DefaultSpacing is the distance between neighboring generated patches.
	DefaultSpacing = 1.0
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors (immutable to callers).
type builderConfig struct {
	idFn    func(int) int
	rng     *rand.Rand
	costFn  CostFn
	areaFn  func(i int, rng *rand.Rand) float64
	spacing float64
}

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order (later overrides earlier).
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:    sequentialID,
		costFn:  DefaultCostFn,
		areaFn:  func(int, *rand.Rand) float64 { return DefaultPatchArea },
		spacing: DefaultSpacing,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// sequentialID numbers patches from 1.
func sequentialID(i int) int { return i + 1 }
