// SPDX-License-Identifier: MIT
// Package: patchnet/builder
//
// impl_random_sparse.go - implementation of RandomSparse(n, p) constructor.
//
// Model:
//   - Patches scattered uniformly in an n·spacing square.
//   - Erdős–Rényi-like: include each unordered pair {i<j} independently with prob p.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewVertices).
//   - 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   - cfg.rng must be non-nil (else ErrNeedRandSource); positions need it even
//     when p ∈ {0,1}.
//
// Determinism:
//   - Positions drawn first (i asc), then pair trials (i asc, j asc).

package builder

import (
	"fmt"
	"math"
)

const (
	methodRandomSparse      = "RandomSparse"
	minRandomSparseVertices = 1
	probMin                 = 0.0
	probMax                 = 1.0
)

// RandomSparse returns a Constructor that samples a random landscape over n
// patches with independent link probability p.
func RandomSparse(n int, p float64) Constructor {
	return func(d *Draft, cfg builderConfig) error {
		// 1) Validate parameters early.
		if n < minRandomSparseVertices {
			return fmt.Errorf("%s: n=%d < min=%d: %w",
				methodRandomSparse, n, minRandomSparseVertices, ErrTooFewVertices)
		}
		if p < probMin || p > probMax || math.IsNaN(p) {
			return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
				methodRandomSparse, p, probMin, probMax, ErrInvalidProbability)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: rng is required: %w", methodRandomSparse, ErrNeedRandSource)
		}

		// 2) Scatter patches.
		side := float64(n) * cfg.spacing
		base := len(d.Patches)
		for i := 0; i < n; i++ {
			d.addPatch(cfg, cfg.rng.Float64()*side, cfg.rng.Float64()*side)
		}

		// 3) Bernoulli trial per unordered pair.
		for i := base; i < base+n; i++ {
			for j := i + 1; j < base+n; j++ {
				if cfg.rng.Float64() >= p {
					continue
				}
				a, b := d.Patches[i], d.Patches[j]
				d.addLink(cfg, a.ID, b.ID, math.Hypot(a.X-b.X, a.Y-b.Y))
			}
		}

		return nil
	}
}
