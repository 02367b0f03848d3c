// File: weighted.go
// Role: The weighted adjacency the clustering works on.

package modularity

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/patchnet/core"
)

// arc is one direction of a weighted link between dense indices.
type arc struct {
	to int
	w  float64
}

// weighted is an immutable snapshot of g under a Weighter.
// adj[i] is sorted by arc.to; deg[i] is the weighted degree; total is W.
type weighted struct {
	ids   []int // dense index → patch ID
	adj   [][]arc
	deg   []float64
	total float64
}

func newWeighted(g *core.Graph, w Weighter) (*weighted, error) {
	n := g.Order()
	links := g.Links()
	m := &weighted{
		ids: g.IDs(),
		adj: make([][]arc, n),
		deg: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		for _, e := range g.NeighborsAt(i) {
			if e.To < i {
				continue
			}
			wt := w.Weight(g.PatchAt(i), g.PatchAt(e.To), links[e.Link], e.Cost)
			if wt < 0 || math.IsNaN(wt) || math.IsInf(wt, 0) {
				return nil, fmt.Errorf("%w: %d–%d weight=%g", ErrInvalidWeight, m.ids[i], m.ids[e.To], wt)
			}
			m.adj[i] = append(m.adj[i], arc{to: e.To, w: wt})
			m.adj[e.To] = append(m.adj[e.To], arc{to: i, w: wt})
			m.deg[i] += wt
			m.deg[e.To] += wt
			m.total += wt
		}
	}
	for i := range m.adj {
		sort.Slice(m.adj[i], func(a, b int) bool { return m.adj[i][a].to < m.adj[i][b].to })
	}

	return m, nil
}

func (m *weighted) order() int { return len(m.ids) }

// term is the modularity contribution of a cluster with the given internal
// weight and degree sum.
func (m *weighted) term(internal, degree float64) float64 {
	if m.total == 0 {
		return 0
	}
	f := degree / (2 * m.total)

	return internal/m.total - f*f
}

// gain is ΔQ of merging two clusters joined by weight between.
func (m *weighted) gain(between, degA, degB float64) float64 {
	if m.total == 0 {
		return 0
	}

	return between/m.total - degA*degB/(2*m.total*m.total)
}

// score returns Q for membership of[i] = cluster label, labels in [0, k).
func (m *weighted) score(of []int, k int) float64 {
	internal := make([]float64, k)
	degree := make([]float64, k)
	for i, c := range of {
		degree[c] += m.deg[i]
		for _, a := range m.adj[i] {
			if a.to > i && of[a.to] == c {
				internal[c] += a.w
			}
		}
	}
	var q float64
	for c := 0; c < k; c++ {
		q += m.term(internal[c], degree[c])
	}

	return q
}
