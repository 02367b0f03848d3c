// Package gridgraph treats a raster of cell costs as an implicit graph: each
// passable cell is a node linked to its 4 or 8 neighbors.
package gridgraph

import (
	"fmt"
	"math"

	"github.com/katalvlaran/patchnet/core"
)

// NewCostSurface constructs a CostSurface from a non-empty, rectangular 2D slice
// indexed values[row][col]. It copies the input to ensure immutability.
// Returns ErrEmptyGrid if grid has no rows or no columns,
// ErrNonRectangular if any row length differs, ErrBadResolution for a bad
// cell size.
// Algorithmic complexity: O(W×H) time and memory.
func NewCostSurface(values [][]float64, opts SurfaceOptions) (*CostSurface, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	if !(opts.Resolution > 0) || math.IsInf(opts.Resolution, 0) {
		return nil, fmt.Errorf("%w: %g", ErrBadResolution, opts.Resolution)
	}
	h, w := len(values), len(values[0])
	costs := make([]float64, 0, w*h)
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		costs = append(costs, row...)
	}
	// Precompute neighbor offsets and step lengths based on connectivity
	var offsets [][2]int
	if opts.Conn == Conn8 {
		offsets = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	} else {
		offsets = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	}
	steps := make([]float64, len(offsets))
	for i, d := range offsets {
		if d[0] != 0 && d[1] != 0 {
			steps[i] = opts.Resolution * math.Sqrt2
		} else {
			steps[i] = opts.Resolution
		}
	}
	s := &CostSurface{
		Width:   w,
		Height:  h,
		opts:    opts,
		costs:   costs,
		offsets: offsets,
		steps:   steps,
	}
	s.labelRegions()

	return s, nil
}

// Options returns the georeferencing and connectivity of s.
func (s *CostSurface) Options() SurfaceOptions { return s.opts }

// Len returns the number of cells.
func (s *CostSurface) Len() int { return len(s.costs) }

// InBounds reports whether (col,row) lies within the grid boundaries.
// Complexity: O(1).
func (s *CostSurface) InBounds(col, row int) bool {
	return col >= 0 && col < s.Width && row >= 0 && row < s.Height
}

// Index maps (col,row) to a row-major index.
func (s *CostSurface) Index(col, row int) int { return row*s.Width + col }

// Coordinate converts a row-major index back to (col,row).
// Complexity: O(1).
func (s *CostSurface) Coordinate(idx int) (col, row int) {
	return idx % s.Width, idx / s.Width
}

// Cost returns the traversal cost of cell idx.
func (s *CostSurface) Cost(idx int) float64 { return s.costs[idx] }

// Passable reports whether cell idx can be traversed.
func (s *CostSurface) Passable(idx int) bool {
	c := s.costs[idx]
	return c >= 0 && !math.IsInf(c, 1)
}

// CellOf returns the index of the cell containing the map point (x,y).
// ok is false when the point falls outside the surface.
func (s *CostSurface) CellOf(x, y float64) (idx int, ok bool) {
	col := int(math.Floor((x - s.opts.OriginX) / s.opts.Resolution))
	row := int(math.Floor((s.opts.OriginY - y) / s.opts.Resolution))
	if !s.InBounds(col, row) {
		return 0, false
	}

	return s.Index(col, row), true
}

// Center returns the map coordinates of the centre of cell idx.
func (s *CostSurface) Center(idx int) (x, y float64) {
	col, row := s.Coordinate(idx)
	res := s.opts.Resolution

	return s.opts.OriginX + (float64(col)+0.5)*res, s.opts.OriginY - (float64(row)+0.5)*res
}

// ToGraph converts the passable cells into a *core.Graph: cell idx becomes
// patch idx+1 at its centre with area Resolution², and every neighbor pair is
// linked with the step cost (c_a + c_b)/2 · stepLength.
// Complexity: O(W×H×d), Memory: O(W×H + E).
func (s *CostSurface) ToGraph() (*core.Graph, error) {
	area := s.opts.Resolution * s.opts.Resolution
	patches := make([]core.Patch, 0, len(s.costs))
	var links []core.Link
	for idx := range s.costs {
		if !s.Passable(idx) {
			continue
		}
		x, y := s.Center(idx)
		patches = append(patches, core.Patch{ID: idx + 1, X: x, Y: y, Area: area})
		col, row := s.Coordinate(idx)
		for k, d := range s.offsets {
			nc, nr := col+d[0], row+d[1]
			if !s.InBounds(nc, nr) {
				continue
			}
			nb := s.Index(nc, nr)
			// each undirected pair once
			if nb <= idx || !s.Passable(nb) {
				continue
			}
			links = append(links, core.Link{
				From:   idx + 1,
				To:     nb + 1,
				Cost:   s.stepCost(idx, nb, k),
				Length: s.steps[k],
			})
		}
	}

	return core.Build(patches, links, core.DefaultCostDefinition())
}

// stepCost is the cost of moving from cell a to neighbor b through offset k.
func (s *CostSurface) stepCost(a, b, k int) float64 {
	return (s.costs[a] + s.costs[b]) / 2 * s.steps[k]
}
