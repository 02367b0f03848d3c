// Package distance is the distance matrix engine: pairwise distances between
// point sets over a landscape graph or a raw cost surface.
//
// Kinds:
//
//   - LeastCost: one component, the cumulative link cost of the least-cost path.
//   - Flow: two components. Component 0 is the least-cost length of the path
//     chosen by the flow model; component 1 is the flow distance
//
//     Σ cost(e) over path links + α·Σ −ln(capacity_k / totalCapacity) over
//     intermediate patches k,
//
//     so a direct link reduces to its cost for any α. α must be finite and > 0.
//
// Points:
//
//	A Point either sits on a patch (OnNode) or is attached to the patch with
//	the nearest centroid, ties going to the lowest patch ID. The attachment
//	length times Engine.AttachCostFactor is added at both ends of the path.
//	ComputeGraphMatrix uses the patches themselves and skips attachment.
//
// Unreachable pairs carry the sentinel Unreachable (+Inf) instead of failing
// the whole matrix; callers check with IsUnreachable.
//
// Concurrency:
//
//	One single-source search per source point, run concurrently on an
//	errgroup limited to Engine.Parallelism. Each goroutine writes only its own
//	row. The progress.Reporter carried by the context is polled before every
//	row and may cancel the computation.
//
// Complexity:
//
//   - ComputeMatrix: O(P · (E log N)) for P source points.
//   - AllPairs:      O(N³) Floyd–Warshall, only when explicitly requested.
package distance
