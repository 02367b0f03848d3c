// SPDX-License-Identifier: MIT
// Package: patchnet/builder
//
// impl_path.go - implementation of Path(n) constructor.
//
// Contract:
//   • n ≥ 2 (else ErrTooFewVertices).
//   • Patches on the x axis, cfg.spacing apart; links i—i+1 in ascending i.
//
// Complexity: O(n) patches + O(n-1) links.

package builder

import "fmt"

const (
	methodPath   = "Path"
	minPathNodes = 2
)

// Path returns a Constructor that builds a linear chain of n patches.
func Path(n int) Constructor {
	return func(d *Draft, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}

		prev := d.addPatch(cfg, 0, 0)
		for i := 1; i < n; i++ {
			cur := d.addPatch(cfg, float64(i)*cfg.spacing, 0)
			d.addLink(cfg, prev, cur, cfg.spacing)
			prev = cur
		}

		return nil
	}
}
