// File: methods.go
// Role: Node lookup, neighborhood and component queries.
// Determinism:
//   - Neighbor lists are ordered by neighbor patch ID ascending.
//   - Components are ordered by their lowest patch ID; members ascending.

package core

// Index returns the dense index of patch id.
// Complexity: O(1).
func (g *Graph) Index(id int) (int, bool) {
	i, ok := g.index[id]

	return i, ok
}

// PatchAt returns the patch stored at dense index i.
// Panics if i is out of range, like a slice access.
func (g *Graph) PatchAt(i int) Patch { return g.patches[i] }

// Patch returns the patch with the given id.
func (g *Graph) Patch(id int) (Patch, error) {
	i, ok := g.index[id]
	if !ok {
		return Patch{}, ErrPatchNotFound
	}

	return g.patches[i], nil
}

// HasPatch reports whether id is part of the graph.
func (g *Graph) HasPatch(id int) bool {
	_, ok := g.index[id]

	return ok
}

// NeighborsAt returns the half-edges of dense node i, sorted by HalfEdge.To.
// The slice is a shared view of the CSR index and must not be modified.
// Complexity: O(1).
func (g *Graph) NeighborsAt(i int) []HalfEdge {
	return g.adj[g.offsets[i]:g.offsets[i+1]]
}

// DegreeAt returns the number of traversable links at dense node i.
func (g *Graph) DegreeAt(i int) int { return g.offsets[i+1] - g.offsets[i] }

// Neighbors returns the IDs of patches linked to id, ascending.
// Complexity: O(d).
func (g *Graph) Neighbors(id int) ([]int, error) {
	i, ok := g.index[id]
	if !ok {
		return nil, ErrPatchNotFound
	}
	row := g.NeighborsAt(i)
	out := make([]int, len(row))
	for k := range row {
		out[k] = g.patches[row[k].To].ID
	}

	return out, nil
}

// Degree returns the number of traversable links at patch id.
func (g *Graph) Degree(id int) (int, error) {
	i, ok := g.index[id]
	if !ok {
		return 0, ErrPatchNotFound
	}

	return g.DegreeAt(i), nil
}

// Edge returns the link joining patches u and v (in either order) and its
// selected cost. ok is false when the patches are not directly linked.
// Complexity: O(1).
func (g *Graph) Edge(u, v int) (Link, float64, bool) {
	a, okA := g.index[u]
	b, okB := g.index[v]
	if !okA || !okB || a == b {
		return Link{}, 0, false
	}
	if a > b {
		a, b = b, a
	}
	li, ok := g.pairs[[2]int{a, b}]
	if !ok {
		return Link{}, 0, false
	}

	return g.links[li], g.costs[li], true
}

// ComponentCount returns the number of connected components.
func (g *Graph) ComponentCount() int { return g.compCount }

// Connected reports whether the graph has at most one component.
func (g *Graph) Connected() bool { return g.compCount <= 1 }

// ComponentAt returns the component label of dense node i.
func (g *Graph) ComponentAt(i int) int { return g.comp[i] }

// ComponentOf returns the component label of patch id.
func (g *Graph) ComponentOf(id int) (int, error) {
	i, ok := g.index[id]
	if !ok {
		return 0, ErrPatchNotFound
	}

	return g.comp[i], nil
}

// Components returns the patch IDs of every component, ordered by label.
// Complexity: O(V).
func (g *Graph) Components() [][]int {
	out := make([][]int, g.compCount)
	for i := range g.patches {
		out[g.comp[i]] = append(out[g.comp[i]], g.patches[i].ID)
	}

	return out
}

// LargestComponent returns the label of the component with the largest total
// capacity; ties go to the lowest label. Returns -1 on an empty graph.
func (g *Graph) LargestComponent() int {
	if g.compCount == 0 {
		return -1
	}
	sums := make([]float64, g.compCount)
	for i := range g.patches {
		sums[g.comp[i]] += g.patches[i].Capacity
	}
	best := 0
	for c := 1; c < len(sums); c++ {
		if sums[c] > sums[best] {
			best = c
		}
	}

	return best
}
