// Package core defines the Patch, Link, CostDefinition and Graph types,
// sentinel errors, and the typed TopologyError.
//
// Errors:
//
//	ErrInvalidTopology       - malformed patch/link input.
//	ErrInvalidCostDefinition - unusable cost definition.
//	ErrPatchNotFound         - requested patch does not exist.
package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph construction and lookup.
var (
	// ErrInvalidTopology indicates a link or patch set that cannot form a valid graph.
	ErrInvalidTopology = errors.New("core: invalid topology")

	// ErrInvalidCostDefinition indicates an unknown cost kind/topology or a bad threshold.
	ErrInvalidCostDefinition = errors.New("core: invalid cost definition")

	// ErrPatchNotFound indicates an operation referenced a patch id absent from the graph.
	ErrPatchNotFound = errors.New("core: patch not found")

	// ErrComponentNotFound indicates a component label outside [0, ComponentCount).
	ErrComponentNotFound = errors.New("core: component not found")
)

// TopologyError describes which input element broke the topology contract.
// It always unwraps to ErrInvalidTopology.
type TopologyError struct {
	From, To int    // offending endpoints (From == To for patch-level problems)
	Reason   string // human readable cause
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("core: invalid topology at %d-%d: %s", e.From, e.To, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidTopology) succeed.
func (e *TopologyError) Unwrap() error { return ErrInvalidTopology }

// Patch is a habitat area, the node of the landscape graph.
type Patch struct {
	// ID is the stable identifier of the patch; unique within a Graph.
	ID int

	// X, Y locate the patch centroid in map units.
	X, Y float64

	// Area and Perimeter are the geographic attributes of the patch.
	Area      float64
	Perimeter float64

	// Capacity weights the patch in connectivity metrics. Zero means "use Area".
	Capacity float64
}

// Link is a potential dispersal path between two patches.
type Link struct {
	// From and To are patch IDs. Links are undirected; Build stores them
	// normalised so that From <= To.
	From, To int

	// Cost is the cumulative least cost along the path (cost-surface units).
	Cost float64

	// Length is the Euclidean length of the path in map units.
	Length float64

	// IntraPatch marks a within-patch distance record. Only self-loops may
	// carry it, and such markers are never traversed.
	IntraPatch bool
}

// CostKind selects which link attribute feeds the graph cost accessor.
type CostKind int

const (
	// CostLeastCost uses Link.Cost.
	CostLeastCost CostKind = iota
	// CostEuclidean uses Link.Length, falling back to the centroid distance when it is zero.
	CostEuclidean
)

// String renders the cost kind for logs and config files.
func (k CostKind) String() string {
	switch k {
	case CostLeastCost:
		return "leastcost"
	case CostEuclidean:
		return "euclidean"
	default:
		return fmt.Sprintf("CostKind(%d)", int(k))
	}
}

// ParseCostKind is the inverse of CostKind.String.
func ParseCostKind(s string) (CostKind, error) {
	for _, k := range []CostKind{CostLeastCost, CostEuclidean} {
		if k.String() == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: cost kind %q", ErrInvalidCostDefinition, s)
}

// Topology selects which links survive Build.
type Topology int

const (
	// TopologyComplete keeps every input link.
	TopologyComplete Topology = iota
	// TopologyThreshold keeps links whose selected cost is <= Threshold.
	TopologyThreshold
	// TopologyMST keeps a minimum spanning forest of the input links.
	TopologyMST
)

// String renders the topology for logs and config files.
func (t Topology) String() string {
	switch t {
	case TopologyComplete:
		return "complete"
	case TopologyThreshold:
		return "threshold"
	case TopologyMST:
		return "mst"
	default:
		return fmt.Sprintf("Topology(%d)", int(t))
	}
}

// ParseTopology is the inverse of Topology.String.
func ParseTopology(s string) (Topology, error) {
	for _, t := range []Topology{TopologyComplete, TopologyThreshold, TopologyMST} {
		if t.String() == s {
			return t, nil
		}
	}

	return 0, fmt.Errorf("%w: topology %q", ErrInvalidCostDefinition, s)
}

// CostDefinition is the cost model a Graph is built with.
type CostDefinition struct {
	Kind      CostKind
	Topology  Topology
	Threshold float64 // used only by TopologyThreshold; must be finite and >= 0
}

// DefaultCostDefinition returns least-cost weights over the complete link set.
func DefaultCostDefinition() CostDefinition {
	return CostDefinition{Kind: CostLeastCost, Topology: TopologyComplete}
}

// HalfEdge is one direction of an undirected link inside the CSR adjacency.
type HalfEdge struct {
	To   int     // dense index of the neighbor
	Cost float64 // selected cost of the link
	Link int     // index into Graph.Links()
}

// Graph is the immutable weighted landscape graph.
//
// patches is sorted by ID; index maps ID → dense position. adjacency for dense
// node i is adj[offsets[i]:offsets[i+1]], sorted by HalfEdge.To ascending.
// comp labels are assigned in order of the lowest dense index of each component.
type Graph struct {
	name string
	def  CostDefinition

	// Node arena
	patches []Patch
	index   map[int]int

	// Link catalog; costs[i] is the selected cost of links[i].
	links []Link
	costs []float64

	// CSR adjacency over inter-patch links only.
	offsets []int
	adj     []HalfEdge
	pairs   map[[2]int]int // (lowIdx, highIdx) → link index

	// Component labelling
	comp      []int
	compCount int

	totalCapacity float64
}
