// SPDX-License-Identifier: MIT
// Package: patchnet/builder
//
// impl_star.go - implementation of Star(n) constructor.
//
// Contract:
//   • n ≥ 2 (else ErrTooFewVertices): one centre plus n-1 leaves.
//   • The centre is the first patch added (ID cfg.idFn(first index)); leaves
//     sit on a circle of radius cfg.spacing around it.
//   • Links centre—leaf in ascending leaf order.
//
// Complexity: O(n) patches + O(n-1) links.

package builder

import (
	"fmt"
	"math"
)

const (
	methodStar   = "Star"
	minStarNodes = 2
)

// Star returns a Constructor that builds a hub with n-1 spokes.
func Star(n int) Constructor {
	return func(d *Draft, cfg builderConfig) error {
		if n < minStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewVertices)
		}

		center := d.addPatch(cfg, 0, 0)
		leaves := n - 1
		for i := 0; i < leaves; i++ {
			theta := 2 * math.Pi * float64(i) / float64(leaves)
			leaf := d.addPatch(cfg, cfg.spacing*math.Cos(theta), cfg.spacing*math.Sin(theta))
			d.addLink(cfg, center, leaf, cfg.spacing)
		}

		return nil
	}
}
