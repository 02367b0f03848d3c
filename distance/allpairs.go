// File: allpairs.go
// Role: Dense all-pairs least-cost distances (Floyd–Warshall), only when requested.
// Determinism:
//   - Loop order is fixed (k → i → j) and relaxation is strict, so accumulation
//     order never changes.

package distance

import (
	"github.com/katalvlaran/patchnet/core"
)

// AllPairs returns the least-cost matrix between every pair of patches of g
// using Floyd–Warshall. It agrees with ComputeGraphMatrix(…, LeastCost, …)
// and is faster on small dense graphs; prefer the per-source engine otherwise.
//
// Complexity: O(N³) time, O(N²) memory.
func AllPairs(g *core.Graph) (*Matrix, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.Order()
	if n == 0 {
		return nil, ErrNoPoints
	}
	ids := pointIDs(GraphPoints(g))
	m := NewMatrix(LeastCost, ids, ids)

	// 1) Initialise: diagonal 0, direct links, +Inf elsewhere (from NewMatrix).
	d := m.data
	for i := 0; i < n; i++ {
		d[i*n+i] = 0
		for _, e := range g.NeighborsAt(i) {
			if e.Cost < d[i*n+e.To] {
				d[i*n+e.To] = e.Cost
			}
		}
	}

	// 2) Closure
	floydWarshallInPlace(d, n)

	return m, nil
}

// floydWarshallInPlace runs APSP closure on a flat n×n row-major buffer.
// +Inf denotes "no path"; the diagonal must be 0 before calling.
// Time: O(n³); extra space: O(1).
func floydWarshallInPlace(data []float64, n int) {
	var (
		k, i, j      int
		baseK, baseI int
		ik, kj, cand float64
	)
	for k = 0; k < n; k++ {
		baseK = k * n
		for i = 0; i < n; i++ {
			ik = data[i*n+k]
			if IsUnreachable(ik) {
				continue // no path via k can improve i→j
			}
			baseI = i * n
			for j = 0; j < n; j++ {
				kj = data[baseK+j]
				if IsUnreachable(kj) {
					continue
				}
				cand = ik + kj
				if cand < data[baseI+j] {
					data[baseI+j] = cand
				}
			}
		}
	}
}
