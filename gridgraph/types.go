// Package gridgraph defines core types, options, and sentinel errors
// for raster cost surfaces.
package gridgraph

import "math"

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// String returns "conn4" or "conn8".
func (c Connectivity) String() string {
	if c == Conn8 {
		return "conn8"
	}

	return "conn4"
}

// Unreachable is the cost reported for cells no path reaches.
var Unreachable = math.Inf(1)

// SurfaceOptions contains the georeferencing and connectivity of a surface.
//
// OriginX/OriginY is the upper-left corner of cell (0,0); rows grow southward,
// so the centre of cell (col,row) is
// (OriginX + (col+0.5)·Resolution, OriginY − (row+0.5)·Resolution).
type SurfaceOptions struct {
	OriginX, OriginY float64
	Resolution       float64
	Conn             Connectivity
}

// DefaultSurfaceOptions returns unit cells anchored at (0,0) with Conn8,
// the usual choice for least-cost corridors.
func DefaultSurfaceOptions() SurfaceOptions {
	return SurfaceOptions{Resolution: 1, Conn: Conn8}
}

// CostSurface is an immutable raster of per-cell traversal costs.
// A NaN, infinite or negative cost marks a barrier cell.
// Cells are addressed by row-major index: row*Width + col.
type CostSurface struct {
	Width, Height int
	opts          SurfaceOptions
	costs         []float64
	offsets       [][2]int
	steps         []float64 // step length per offset
	regions       []int     // passable-region label per cell, -1 for barriers
	regionCount   int
}
