// File: build.go
// Role: Validation and assembly of the immutable Graph.
// Determinism:
//   - Patches sorted by ID; links normalised to From <= To and kept in input order.
//   - CSR neighbor slices sorted by neighbor index ascending.
// Concurrency:
//   - Build allocates a fresh Graph; no shared state.

package core

import (
	"fmt"
	"math"
	"sort"
)

// Build validates patches and links, selects link costs from def, filters the
// link set by def.Topology and assembles an immutable Graph.
//
// Steps:
//  1. Validate def (ErrInvalidCostDefinition).
//  2. Copy and sort patches by ID, reject duplicates and negative/NaN attributes.
//  3. Validate links: known endpoints, finite non-negative Cost/Length,
//     self-loops only as intra-patch markers, one link per unordered pair.
//  4. Select per-link cost (Kind) and filter by Topology.
//  5. Assemble arena, CSR adjacency and component labels.
//
// The input slices are never retained.
//
// Complexity: O(V log V + E log E) time, O(V + E) space.
func Build(patches []Patch, links []Link, def CostDefinition) (*Graph, error) {
	// 1) Cost definition
	if err := validateDefinition(def); err != nil {
		return nil, err
	}

	// 2) Patch arena
	ps := make([]Patch, len(patches))
	copy(ps, patches)
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
	var i int
	for i = range ps {
		if i > 0 && ps[i].ID == ps[i-1].ID {
			return nil, &TopologyError{From: ps[i].ID, To: ps[i].ID, Reason: "duplicate patch id"}
		}
		if badAttr(ps[i].Area) || badAttr(ps[i].Perimeter) || badAttr(ps[i].Capacity) {
			return nil, &TopologyError{From: ps[i].ID, To: ps[i].ID, Reason: "negative or non-finite patch attribute"}
		}
		if ps[i].Capacity == 0 {
			ps[i].Capacity = ps[i].Area
		}
	}
	index := make(map[int]int, len(ps))
	for i = range ps {
		index[ps[i].ID] = i
	}

	// 3) Links
	ls := make([]Link, 0, len(links))
	seen := make(map[[2]int]struct{}, len(links))
	var l Link
	for _, l = range links {
		if l.From > l.To {
			l.From, l.To = l.To, l.From
		}
		if _, ok := index[l.From]; !ok {
			return nil, &TopologyError{From: l.From, To: l.To, Reason: fmt.Sprintf("unknown patch %d", l.From)}
		}
		if _, ok := index[l.To]; !ok {
			return nil, &TopologyError{From: l.From, To: l.To, Reason: fmt.Sprintf("unknown patch %d", l.To)}
		}
		if badAttr(l.Cost) || badAttr(l.Length) {
			return nil, &TopologyError{From: l.From, To: l.To, Reason: "negative or non-finite cost"}
		}
		if l.From == l.To && !l.IntraPatch {
			return nil, &TopologyError{From: l.From, To: l.To, Reason: "self-loop without intra-patch flag"}
		}
		if l.From != l.To && l.IntraPatch {
			return nil, &TopologyError{From: l.From, To: l.To, Reason: "intra-patch marker must be a self-loop"}
		}
		key := [2]int{l.From, l.To}
		if _, dup := seen[key]; dup {
			return nil, &TopologyError{From: l.From, To: l.To, Reason: "duplicate link"}
		}
		seen[key] = struct{}{}
		ls = append(ls, l)
	}

	// 4) Cost selection and topology filter
	costs := make([]float64, len(ls))
	for i = range ls {
		costs[i] = selectCost(def.Kind, ls[i], ps[index[ls[i].From]], ps[index[ls[i].To]])
	}
	ls, costs = filterTopology(def, ls, costs, index)

	// 5) Assembly
	return assemble("", def, ps, ls, costs), nil
}

// validateDefinition rejects unknown kinds/topologies and bad thresholds.
func validateDefinition(def CostDefinition) error {
	switch def.Kind {
	case CostLeastCost, CostEuclidean:
	default:
		return fmt.Errorf("%w: unknown cost kind %v", ErrInvalidCostDefinition, def.Kind)
	}
	switch def.Topology {
	case TopologyComplete, TopologyMST:
	case TopologyThreshold:
		if math.IsNaN(def.Threshold) || math.IsInf(def.Threshold, 0) || def.Threshold < 0 {
			return fmt.Errorf("%w: threshold %g", ErrInvalidCostDefinition, def.Threshold)
		}
	default:
		return fmt.Errorf("%w: unknown topology %v", ErrInvalidCostDefinition, def.Topology)
	}

	return nil
}

// badAttr reports negative, NaN or infinite attribute values.
func badAttr(v float64) bool {
	return v < 0 || math.IsNaN(v) || math.IsInf(v, 0)
}

// selectCost applies the cost kind to a single link.
func selectCost(kind CostKind, l Link, a, b Patch) float64 {
	if kind == CostLeastCost {
		return l.Cost
	}
	if l.Length > 0 || l.From == l.To {
		return l.Length
	}

	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// assemble builds arena, CSR adjacency and components from already validated
// and filtered input. ps must be sorted by ID; ls and costs are retained.
func assemble(name string, def CostDefinition, ps []Patch, ls []Link, costs []float64) *Graph {
	g := &Graph{
		name:    name,
		def:     def,
		patches: ps,
		index:   make(map[int]int, len(ps)),
		links:   ls,
		costs:   costs,
		offsets: make([]int, len(ps)+1),
		pairs:   make(map[[2]int]int, len(ls)),
	}
	var i int
	for i = range ps {
		g.index[ps[i].ID] = i
		g.totalCapacity += ps[i].Capacity
	}

	// Degree count for CSR offsets (markers skipped).
	var u, v int
	for i = range ls {
		if ls[i].From == ls[i].To {
			continue
		}
		u, v = g.index[ls[i].From], g.index[ls[i].To]
		g.offsets[u+1]++
		g.offsets[v+1]++
	}
	for i = 1; i < len(g.offsets); i++ {
		g.offsets[i] += g.offsets[i-1]
	}

	// Fill half-edges.
	g.adj = make([]HalfEdge, g.offsets[len(ps)])
	fill := make([]int, len(ps))
	copy(fill, g.offsets[:len(ps)])
	for i = range ls {
		if ls[i].From == ls[i].To {
			continue
		}
		u, v = g.index[ls[i].From], g.index[ls[i].To]
		g.adj[fill[u]] = HalfEdge{To: v, Cost: costs[i], Link: i}
		fill[u]++
		g.adj[fill[v]] = HalfEdge{To: u, Cost: costs[i], Link: i}
		fill[v]++
		g.pairs[[2]int{u, v}] = i
	}
	for u = range ps {
		row := g.adj[g.offsets[u]:g.offsets[u+1]]
		sort.Slice(row, func(a, b int) bool { return row[a].To < row[b].To })
	}

	g.labelComponents()

	return g
}
