// Package core provides the immutable weighted graph that every connectivity
// algorithm in patchnet runs on: habitat patches are nodes, dispersal links
// are edges.
//
// The Graph G = (V,E) is assembled once by Build and never mutated afterwards:
//
//   - Patches are stored in a dense arena sorted by Patch.ID; algorithms work on
//     dense indices (0..Order()-1) and translate with Index/PatchAt.
//   - Links are undirected. Adjacency is a CSR index (offsets + half-edges), so
//     NeighborsAt(i) is a zero-copy slice ordered by neighbor index ascending.
//   - Intra-patch distances are carried as self-loop markers (Link.IntraPatch).
//     They are retained in Links() but never appear in the adjacency.
//   - Connected components are labelled at build time; disconnected graphs are
//     valid input and are reported through Components/Connected.
//
// Cost definitions (CostDefinition):
//
//	– Kind:     CostLeastCost uses Link.Cost, CostEuclidean uses Link.Length
//	            (or the centroid distance when Length is zero).
//	– Topology: TopologyComplete keeps every link,
//	            TopologyThreshold keeps links whose selected cost ≤ Threshold,
//	            TopologyMST keeps a minimum spanning forest (Kruskal, union-find).
//
// Derived graphs:
//
//	WithoutPatch(id)      // O(V+E): copy without one patch and its links
//	InducedSubgraph(ids)  // O(V+E): copy restricted to ids
//	WithName(name)        // O(1):   shallow relabel, storage shared read-only
//
// Derived graphs are built from the already-filtered link set of the source, so
// removing a patch from an MST graph never re-runs the spanning forest.
//
// Concurrency:
//
//	A *Graph is safe for concurrent readers. There are no mutators; delta analysis
//	derives a private copy per worker instead of locking.
//
// Errors:
//
//	ErrInvalidTopology       – unknown endpoint, negative/NaN cost, duplicate patch
//	                           or link, self-loop without the intra-patch flag.
//	ErrInvalidCostDefinition – unknown kind/topology or bad threshold.
//	ErrPatchNotFound         – lookup of an absent patch id.
package core
