// File: view.go
// Role: Non-mutating derived graphs (patch removal, induced subgraphs, relabel).
// Determinism:
//   - Derived graphs keep the source's link order and selected costs.
// Concurrency:
//   - Reads only; every result owns fresh storage (WithName shares read-only storage).

package core

import "fmt"

// WithoutPatch returns a copy of g without patch id and its incident links.
// The topology filter is not re-applied: the derived graph keeps exactly the
// links of g that do not touch id.
//
// Complexity: O(V + E).
func (g *Graph) WithoutPatch(id int) (*Graph, error) {
	if _, ok := g.index[id]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrPatchNotFound, id)
	}

	return g.derive(func(pid int) bool { return pid != id }), nil
}

// InducedSubgraph returns a copy of g restricted to the given patch ids and
// the links with both endpoints kept. Unknown ids yield ErrPatchNotFound.
//
// Complexity: O(V + E + len(ids)).
func (g *Graph) InducedSubgraph(ids []int) (*Graph, error) {
	keep := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := g.index[id]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrPatchNotFound, id)
		}
		keep[id] = struct{}{}
	}

	return g.derive(func(pid int) bool {
		_, ok := keep[pid]
		return ok
	}), nil
}

// ComponentSubgraph returns the subgraph induced by component label c.
func (g *Graph) ComponentSubgraph(c int) (*Graph, error) {
	if c < 0 || c >= g.compCount {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrComponentNotFound, c, g.compCount)
	}

	return g.derive(func(pid int) bool { return g.comp[g.index[pid]] == c }), nil
}

// WithName returns a graph sharing g's read-only storage under a new name.
// Complexity: O(1).
func (g *Graph) WithName(name string) *Graph {
	cp := *g
	cp.name = name

	return &cp
}

// derive copies every patch accepted by keep and every link whose endpoints
// are both kept.
func (g *Graph) derive(keep func(id int) bool) *Graph {
	ps := make([]Patch, 0, len(g.patches))
	for i := range g.patches {
		if keep(g.patches[i].ID) {
			ps = append(ps, g.patches[i])
		}
	}
	ls := make([]Link, 0, len(g.links))
	cs := make([]float64, 0, len(g.links))
	for i := range g.links {
		if keep(g.links[i].From) && keep(g.links[i].To) {
			ls = append(ls, g.links[i])
			cs = append(cs, g.costs[i])
		}
	}

	return assemble(g.name, g.def, ps, ls, cs)
}
