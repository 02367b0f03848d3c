// Package gridgraph treats a raster of cell traversal costs as a graph,
// enabling least-cost distances between points that are not graph nodes.
//
// What:
//
//   - CostSurface wraps a rectangular [][]float64 raster with georeferencing
//     (origin, resolution) and 4- or 8-connectivity.
//   - NaN, +Inf or negative cells are barriers.
//   - CellOf maps map coordinates to a cell; Center does the reverse.
//   - LeastCost runs Dijkstra over the implicit grid from one cell to a set
//     of target cells.
//   - Passable regions are labelled once so targets that no path can reach
//     are reported without searching.
//   - ToGraph converts the passable cells into a *core.Graph.
//
// Why:
//
//   - The distance matrix engine needs least-cost distances between arbitrary
//     points when they are not patches of the landscape graph.
//
// Complexity:
//
//   - NewCostSurface: O(W×H×d), Memory: O(W×H)    (d = 4 or 8).
//   - LeastCost:      O(W×H×log(W×H)), Memory: O(W×H).
//   - ToGraph:        O(W×H×d + E), Memory: O(W×H + E).
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrBadResolution: cell size not finite and > 0.
//   - ErrCellIndex: cell index out of range.
//   - ErrBarrier: search started from a barrier cell.
package gridgraph
