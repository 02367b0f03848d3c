// SPDX-License-Identifier: MIT
// Package: patchnet/builder
//
// api.go - public entry-point for the builder package.
//
// Design contract:
//   - One orchestrator: BuildLandscape(def, bopts, cons...). Resolves cfg, runs
//     cons in order against a fresh Draft, then hands the result to core.Build.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig.
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical graphs.
//   - Safety: never panic at runtime; return sentinel errors from constructors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/patchnet/core"
)

// Draft accumulates patches and links before core.Build freezes them.
// Constructors append to it; patch indices are global across constructors so
// composed fixtures never collide.
type Draft struct {
	Patches []core.Patch
	Links   []core.Link
}

// Constructor appends a deterministic topology to d using the resolved
// builderConfig. Constructors MUST:
//   - Validate parameters early and return sentinel errors (no panics).
//   - Allocate patch IDs through cfg.idFn(len(d.Patches)) so IDs stay unique.
//   - Preserve determinism for the same config and call order.
type Constructor func(d *Draft, cfg builderConfig) error

// BuildLandscape resolves the builder configuration from bopts, applies all
// constructors in order and builds the immutable graph with def.
// Any constructor error is wrapped with the context "BuildLandscape: %w".
//
// Complexity:
//   - Resolving options: O(len(bopts)).
//   - Applying K constructors: Σ cost of each constructor, plus core.Build.
//
// Errors:
//   - Wraps constructor errors via %w; callers branch with errors.Is against
//     builder sentinels (ErrTooFewVertices, ErrInvalidProbability, ...) and
//     core sentinels (core.ErrInvalidTopology) for the final build.
func BuildLandscape(def core.CostDefinition, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	d, err := BuildDraft(bopts, cons...)
	if err != nil {
		return nil, err
	}
	g, err := core.Build(d.Patches, d.Links, def)
	if err != nil {
		return nil, fmt.Errorf("BuildLandscape: %w", err)
	}

	return g, nil
}

// BuildDraft runs the constructors without building, for callers that want to
// edit the draft (add markers, tweak capacities) before core.Build.
func BuildDraft(bopts []BuilderOption, cons ...Constructor) (*Draft, error) {
	cfg := newBuilderConfig(bopts...)
	d := &Draft{}
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildLandscape: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(d, cfg); err != nil {
			return nil, fmt.Errorf("BuildLandscape: %w", err)
		}
	}

	return d, nil
}

// addPatch appends one patch at (x,y) and returns its ID.
func (d *Draft) addPatch(cfg builderConfig, x, y float64) int {
	i := len(d.Patches)
	id := cfg.idFn(i)
	d.Patches = append(d.Patches, core.Patch{ID: id, X: x, Y: y, Area: cfg.areaFn(i, cfg.rng)})

	return id
}

// addLink appends the link u—v with a generated cost and Euclidean length.
func (d *Draft) addLink(cfg builderConfig, u, v int, length float64) {
	d.Links = append(d.Links, core.Link{From: u, To: v, Cost: cfg.costFn(cfg.rng), Length: length})
}
