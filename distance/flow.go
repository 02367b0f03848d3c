// File: flow.go
// Role: Flow distance, computed with one Dijkstra per source.
//
// The flow distance charges the link cost and α·(−ln(cap_k/totalCap)) for
// every intermediate patch k, so a direct link costs exactly its link cost.
// Charging the node term of the node being left (except the source) makes
// every intermediate pay exactly once and the target pay nothing, so plain
// Dijkstra finds the optimum. A zero-capacity patch costs +Inf as an
// intermediate but stays reachable as a target.

package distance

import (
	"fmt"
	"math"

	"github.com/katalvlaran/patchnet/core"
	"github.com/katalvlaran/patchnet/dijkstra"
)

type flowModel struct {
	tau []float64 // α·(−ln share) per dense index
}

func newFlowModel(g *core.Graph, alpha float64) (*flowModel, error) {
	total := g.TotalCapacity()
	if !(total > 0) {
		return nil, fmt.Errorf("%w: flow requires positive total capacity", ErrInvalidParameter)
	}
	tau := make([]float64, g.Order())
	for i := range tau {
		c := g.PatchAt(i).Capacity
		if c <= 0 {
			tau[i] = math.Inf(1)
			continue
		}
		tau[i] = -alpha * math.Log(c/total)
	}

	return &flowModel{tau: tau}, nil
}

func (f *flowModel) row(g *core.Graph, from attachment, to []attachment, row []float64) error {
	src := from.node
	weight := func(u int, e core.HalfEdge) float64 {
		w := e.Cost
		if u != src {
			w += f.tau[u]
		}
		return w
	}
	res, err := dijkstra.FromIndex(g, src, dijkstra.WithWeightFunc(weight), dijkstra.WithReturnPath())
	if err != nil {
		return err
	}
	length := pathLengths(g, res)
	for j, t := range to {
		if !res.Reachable(t.node) {
			continue
		}
		row[2*j] = from.cost + length[t.node] + t.cost
		row[2*j+1] = from.cost + res.Dist[t.node] + t.cost
	}

	return nil
}

// pathLengths sums link costs along the predecessor tree of res.
// Unreached nodes keep NaN. Complexity: O(N) amortized.
func pathLengths(g *core.Graph, res *dijkstra.Result) []float64 {
	n := len(res.Dist)
	length := make([]float64, n)
	for i := range length {
		length[i] = math.NaN()
	}
	length[res.Source] = 0
	var stack []int
	for v := 0; v < n; v++ {
		if !res.Reachable(v) {
			continue
		}
		// climb until a known ancestor, then unwind
		stack = stack[:0]
		for cur := v; math.IsNaN(length[cur]); cur = res.Prev[cur] {
			stack = append(stack, cur)
		}
		for k := len(stack) - 1; k >= 0; k-- {
			cur := stack[k]
			p := res.Prev[cur]
			_, c, _ := g.Edge(g.PatchAt(p).ID, g.PatchAt(cur).ID)
			length[cur] = length[p] + c
		}
	}

	return length
}
