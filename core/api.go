// File: api.go
// Role: Thin read-only facade over the immutable Graph.
// Policy:
//   - No algorithms or hidden state here.
//   - Returned slices are copies unless documented as shared views.

package core

// Name returns the graph identity used to key metric results.
func (g *Graph) Name() string { return g.name }

// Definition returns the cost definition the graph was built with.
func (g *Graph) Definition() CostDefinition { return g.def }

// Order returns the number of patches.
// Complexity: O(1).
func (g *Graph) Order() int { return len(g.patches) }

// Size returns the number of traversable (inter-patch) links.
// Complexity: O(1).
func (g *Graph) Size() int { return len(g.adj) / 2 }

// TotalCapacity returns Σ Patch.Capacity over all patches.
func (g *Graph) TotalCapacity() float64 { return g.totalCapacity }

// Patches returns a copy of the patch arena, sorted by ID.
// Complexity: O(V).
func (g *Graph) Patches() []Patch {
	out := make([]Patch, len(g.patches))
	copy(out, g.patches)

	return out
}

// IDs returns all patch IDs in ascending order.
// Complexity: O(V).
func (g *Graph) IDs() []int {
	out := make([]int, len(g.patches))
	for i := range g.patches {
		out[i] = g.patches[i].ID
	}

	return out
}

// Links returns a copy of the retained link catalog, intra-patch markers included.
// Complexity: O(E).
func (g *Graph) Links() []Link {
	out := make([]Link, len(g.links))
	copy(out, g.links)

	return out
}

// LinkCost returns the selected cost of Links()[i].
func (g *Graph) LinkCost(i int) float64 { return g.costs[i] }

// Cost applies the graph's cost definition to an arbitrary link whose
// endpoints belong to the graph.
func (g *Graph) Cost(l Link) (float64, error) {
	a, okA := g.index[l.From]
	b, okB := g.index[l.To]
	if !okA || !okB {
		return 0, ErrPatchNotFound
	}

	return selectCost(g.def.Kind, l, g.patches[a], g.patches[b]), nil
}

// GraphStats is a compact summary for logging and admission checks.
type GraphStats struct {
	Name          string
	Patches       int
	Links         int
	Markers       int
	Components    int
	TotalCapacity float64
	Definition    CostDefinition
}

// Stats returns a snapshot summary of the graph.
// Complexity: O(E) to count intra-patch markers.
func (g *Graph) Stats() GraphStats {
	markers := 0
	for i := range g.links {
		if g.links[i].From == g.links[i].To {
			markers++
		}
	}

	return GraphStats{
		Name:          g.name,
		Patches:       len(g.patches),
		Links:         g.Size(),
		Markers:       markers,
		Components:    g.compCount,
		TotalCapacity: g.totalCapacity,
		Definition:    g.def,
	}
}
