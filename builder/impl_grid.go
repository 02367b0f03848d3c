// SPDX-License-Identifier: MIT
// Package: patchnet/builder
//
// impl_grid.go - implementation of Grid(rows, cols) constructor.
//
// Contract:
//   • rows ≥ 1 and cols ≥ 1 (else ErrTooFewVertices).
//   • Patches in row-major order at (c·spacing, −r·spacing).
//   • For each (r,c) emit Right then Bottom links if present.
//
// Complexity: O(R·C) patches + O(2·R·C) links.

package builder

import "fmt"

const (
	methodGrid = "Grid"
	minGridDim = 1
)

// Grid returns a Constructor that builds a rows×cols orthogonal lattice.
func Grid(rows, cols int) Constructor {
	return func(d *Draft, cfg builderConfig) error {
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
				methodGrid, rows, cols, minGridDim, ErrTooFewVertices)
		}

		// 1) Patches, row-major.
		ids := make([]int, rows*cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				ids[r*cols+c] = d.addPatch(cfg, float64(c)*cfg.spacing, -float64(r)*cfg.spacing)
			}
		}

		// 2) Right and Bottom neighbors.
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := ids[r*cols+c]
				if c+1 < cols {
					d.addLink(cfg, u, ids[r*cols+c+1], cfg.spacing)
				}
				if r+1 < rows {
					d.addLink(cfg, u, ids[(r+1)*cols+c], cfg.spacing)
				}
			}
		}

		return nil
	}
}
