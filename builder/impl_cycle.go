// SPDX-License-Identifier: MIT
// Package: patchnet/builder
//
// impl_cycle.go - implementation of Cycle(n) constructor.
//
// Contract:
//   • n ≥ 3 (else ErrTooFewVertices).
//   • Patches sit on a circle whose chord between neighbors equals cfg.spacing.
//   • Emits links in stable order i—(i+1)%n for i=0..n-1.
//
// Complexity: O(n) patches + O(n) links.

package builder

import (
	"fmt"
	"math"
)

const (
	methodCycle   = "Cycle"
	minCycleNodes = 3
)

// Cycle returns a Constructor that builds an n-patch ring.
func Cycle(n int) Constructor {
	return func(d *Draft, cfg builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}

		// chord = 2R·sin(π/n) = spacing
		radius := cfg.spacing / (2 * math.Sin(math.Pi/float64(n)))
		ids := make([]int, n)
		for i := 0; i < n; i++ {
			theta := 2 * math.Pi * float64(i) / float64(n)
			ids[i] = d.addPatch(cfg, radius*math.Cos(theta), radius*math.Sin(theta))
		}
		for i := 0; i < n; i++ {
			d.addLink(cfg, ids[i], ids[(i+1)%n], cfg.spacing)
		}

		return nil
	}
}
