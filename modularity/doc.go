// Package modularity partitions a landscape graph into clusters of patches
// that maximise Newman's modularity
//
//	Q = Σ_c ( internal(c)/W − (deg(c)/(2W))² )
//
// where W is the total link weight, internal(c) the weight of links inside
// cluster c and deg(c) the summed weighted degree of its patches. A graph with
// no weight has Q = 0 for every partition.
//
// Algorithm:
//
//   - New runs greedy agglomeration: starting from singletons it repeatedly
//     merges the pair of clusters with the greatest ΔQ, until one cluster is
//     left, recording Q after every merge.
//   - Ties on ΔQ go to the pair with the lowest sum of cluster IDs, then the
//     lowest first ID. A cluster ID is the smallest patch ID it contains.
//   - Non-adjacent pairs are only considered once no adjacent pair improves Q,
//     which is what lets disconnected landscapes collapse to one cluster.
//   - OptimPartition(k) refines the greedy k-cluster level by moving single
//     patches between clusters. Only strictly improving moves are accepted, so
//     its Q is never below Partition(k).
//
// Link weights come from a Weighter: CountWeighter (one per link, the
// default), DecayWeighter (capacity product damped by cost) or any FuncWeighter.
//
// Caching:
//
//	Every Cluster caches its partial modularity. Init recomputes it from the
//	current membership, and any membership change through Partition.Move
//	invalidates the caches of both clusters involved, so PartModularity always
//	equals a fresh recomputation.
//
// Concurrency:
//
//	A Clustering is immutable after New and may be shared. Partitions are
//	mutable (Move, Init) and must be confined to one goroutine; clone them per
//	worker with Partition.Clone.
//
// Complexity:
//
//   - New: O(n·E) for the adjacent phase plus O(k²) per step once no adjacent
//     merge improves Q.
//   - Partition(k): O(n α(n)) replay with a union-find.
//   - OptimPartition(k): O(MaxPasses · n · (deg + k)).
package modularity
