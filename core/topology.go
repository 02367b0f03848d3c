// File: topology.go
// Role: Link filtering (threshold, minimum spanning forest) and component labelling.
// Determinism:
//   - Kruskal sorts with sort.SliceStable, so equal-cost links keep input order.
//   - Component labels follow the lowest dense index of each component.

package core

import "sort"

// disjointSet is a union-find over dense indices with path compression and
// union by rank.
type disjointSet struct {
	parent []int
	rank   []int
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{parent: make([]int, n), rank: make([]int, n)}
	for i := range ds.parent {
		ds.parent[i] = i
	}

	return ds
}

// find walks to the root, halving the path on the way.
func (ds *disjointSet) find(u int) int {
	for ds.parent[u] != u {
		ds.parent[u] = ds.parent[ds.parent[u]]
		u = ds.parent[u]
	}

	return u
}

// union merges the sets of u and v and reports whether they were disjoint.
func (ds *disjointSet) union(u, v int) bool {
	ru, rv := ds.find(u), ds.find(v)
	if ru == rv {
		return false
	}
	if ds.rank[ru] < ds.rank[rv] {
		ru, rv = rv, ru
	}
	ds.parent[rv] = ru
	if ds.rank[ru] == ds.rank[rv] {
		ds.rank[ru]++
	}

	return true
}

// filterTopology keeps the links selected by def.Topology. Intra-patch markers
// always survive. The returned slices are freshly allocated.
func filterTopology(def CostDefinition, ls []Link, costs []float64, index map[int]int) ([]Link, []float64) {
	keep := make([]bool, len(ls))
	var i int
	switch def.Topology {
	case TopologyThreshold:
		for i = range ls {
			keep[i] = ls[i].From == ls[i].To || costs[i] <= def.Threshold
		}
	case TopologyMST:
		// Kruskal over inter-patch links: a spanning forest on disconnected input.
		order := make([]int, 0, len(ls))
		for i = range ls {
			if ls[i].From == ls[i].To {
				keep[i] = true
				continue
			}
			order = append(order, i)
		}
		sort.SliceStable(order, func(a, b int) bool { return costs[order[a]] < costs[order[b]] })
		ds := newDisjointSet(len(index))
		for _, i = range order {
			if ds.union(index[ls[i].From], index[ls[i].To]) {
				keep[i] = true
			}
		}
	default:
		for i = range keep {
			keep[i] = true
		}
	}

	outLinks := make([]Link, 0, len(ls))
	outCosts := make([]float64, 0, len(ls))
	for i = range ls {
		if keep[i] {
			outLinks = append(outLinks, ls[i])
			outCosts = append(outCosts, costs[i])
		}
	}

	return outLinks, outCosts
}

// labelComponents assigns g.comp and g.compCount from the CSR adjacency.
func (g *Graph) labelComponents() {
	n := len(g.patches)
	ds := newDisjointSet(n)
	var i int
	for i = range g.links {
		if g.links[i].From != g.links[i].To {
			ds.union(g.index[g.links[i].From], g.index[g.links[i].To])
		}
	}
	g.comp = make([]int, n)
	label := make(map[int]int, n)
	for i = 0; i < n; i++ {
		root := ds.find(i)
		c, ok := label[root]
		if !ok {
			c = len(label)
			label[root] = c
		}
		g.comp[i] = c
	}
	g.compCount = len(label)
}
