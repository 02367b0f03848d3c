// Package dijkstra provides single-source least-cost search on the immutable
// landscape graph (*core.Graph) with non-negative link weights.
//
// Overview:
//
//   - Dijkstra computes the minimum-cost path from one patch to every reachable
//     patch in O((V + E) log V) time, where V = patches and E = links.
//   - It relies on a min-heap to always expand the next-closest node.
//   - Supports optional path reconstruction, a distance cap and a pluggable
//     weight function.
//
// When to use:
//
//   - Building least-cost distance matrices between habitat patches.
//   - Flow-distance search, where a WeightFunc folds the capacity term of every
//     traversed node into the link weight.
//   - Metrics that need single-source distances (F, PC, EC).
//
// Key features:
//
//   - Functional options allow fine-tuning behavior without changing the API signature.
//   - WithReturnPath: keeps the predecessor array so any path can be rebuilt.
//   - WithMaxDistance: stops exploration beyond a distance, saving work in large graphs.
//   - WithWeightFunc: replaces link costs by a derived weight per half-edge.
//   - Deterministic: heap ties are ordered by push sequence and neighbors are
//     scanned in ascending dense index, so equal-cost paths resolve identically
//     on every run.
//
// Performance and complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E), the heap holds at most one entry per relaxation.
//
// Error handling (sentinel errors):
//
//   - ErrNilGraph:        the graph pointer is nil.
//   - ErrVertexNotFound:  the source patch (or dense index) does not exist.
//   - ErrNegativeWeight:  a weight function produced a negative or NaN weight.
//   - ErrOptionViolation: an option received an invalid argument.
//
// Example usage:
//
//	res, err := dijkstra.Dijkstra(g, 1, dijkstra.WithReturnPath())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	to, _ := g.Index(4)
//	fmt.Println(res.Dist[to], res.PathTo(to))
package dijkstra
