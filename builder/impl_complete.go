// SPDX-License-Identifier: MIT
// Package: patchnet/builder
//
// impl_complete.go - implementation of Complete(n) constructor.
//
// Contract:
//   • n ≥ 1 (else ErrTooFewVertices).
//   • Patches on a ring as in Cycle; every unordered pair {i<j} is linked,
//     emitted in (i asc, j asc) order with the centroid distance as length.
//
// Complexity: O(n) patches + O(n²) links.

package builder

import (
	"fmt"
	"math"
)

const (
	methodComplete   = "Complete"
	minCompleteNodes = 1
)

// Complete returns a Constructor that links every pair of n patches.
func Complete(n int) Constructor {
	return func(d *Draft, cfg builderConfig) error {
		if n < minCompleteNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteNodes, ErrTooFewVertices)
		}

		radius := cfg.spacing
		if n > 1 {
			radius = cfg.spacing / (2 * math.Sin(math.Pi/float64(n)))
		}
		base := len(d.Patches)
		for i := 0; i < n; i++ {
			theta := 2 * math.Pi * float64(i) / float64(n)
			d.addPatch(cfg, radius*math.Cos(theta), radius*math.Sin(theta))
		}
		for i := base; i < base+n; i++ {
			for j := i + 1; j < base+n; j++ {
				a, b := d.Patches[i], d.Patches[j]
				d.addLink(cfg, a.ID, b.ID, math.Hypot(a.X-b.X, a.Y-b.Y))
			}
		}

		return nil
	}
}
