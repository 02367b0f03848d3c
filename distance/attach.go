// File: attach.go
// Role: Locating points on the graph and the least-cost row search.

package distance

import (
	"fmt"
	"math"

	"github.com/katalvlaran/patchnet/core"
	"github.com/katalvlaran/patchnet/dijkstra"
)

// attachment is the dense node a point enters the graph through and the cost
// of getting there.
type attachment struct {
	node int
	cost float64
}

// attachAll locates every point. OnNode points must name an existing patch;
// free points go to the nearest centroid, ties to the lowest patch ID (patches
// are stored in ascending ID order, so the first minimum wins).
// Complexity: O(P·N).
func (e *Engine) attachAll(g *core.Graph, pts []Point) ([]attachment, error) {
	out := make([]attachment, len(pts))
	for i, p := range pts {
		if p.OnNode {
			idx, ok := g.Index(p.Node)
			if !ok {
				return nil, fmt.Errorf("%w: point %q patch %d", ErrUnknownPatch, p.ID, p.Node)
			}
			out[i] = attachment{node: idx}
			continue
		}
		best, bestD := -1, math.Inf(1)
		for j := 0; j < g.Order(); j++ {
			c := g.PatchAt(j)
			if d := math.Hypot(c.X-p.X, c.Y-p.Y); d < bestD {
				best, bestD = j, d
			}
		}
		out[i] = attachment{node: best, cost: bestD * e.AttachCostFactor}
	}

	return out, nil
}

// leastCostRow runs one Dijkstra from the source node.
func leastCostRow(g *core.Graph, from attachment, to []attachment, row []float64) error {
	res, err := dijkstra.FromIndex(g, from.node)
	if err != nil {
		return err
	}
	for j, t := range to {
		if res.Reachable(t.node) {
			row[j] = from.cost + res.Dist[t.node] + t.cost
		}
	}

	return nil
}
