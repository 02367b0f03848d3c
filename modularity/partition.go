// File: partition.go
// Role: Cluster and Partition with the explicit partial-modularity cache.
// Invariant:
//   - Every patch belongs to exactly one non-empty cluster.
//   - A cluster's cached value is either invalid or equal to a fresh Init.

package modularity

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/patchnet/core"
)

// Cluster is a set of patches. ID is the smallest patch ID in Nodes; Nodes is
// ascending. Treat both as read-only; change membership with Partition.Move.
type Cluster struct {
	ID    int
	Nodes []int

	model *weighted
	dense []int // ascending dense indices of Nodes

	partQ float64
	fresh bool
}

// Init recomputes the cached partial modularity from the current membership.
// Complexity: O(Σ deg · log |c|).
func (c *Cluster) Init() {
	var internal, degree float64
	for _, i := range c.dense {
		degree += c.model.deg[i]
		for _, a := range c.model.adj[i] {
			if a.to > i && c.has(a.to) {
				internal += a.w
			}
		}
	}
	c.partQ = c.model.term(internal, degree)
	c.fresh = true
}

// PartModularity returns the cluster's contribution to Q, recomputing it
// first when the cache was invalidated.
func (c *Cluster) PartModularity() float64 {
	if !c.fresh {
		c.Init()
	}

	return c.partQ
}

// Invalidate drops the cached value.
func (c *Cluster) Invalidate() { c.fresh = false }

// Len returns the number of patches.
func (c *Cluster) Len() int { return len(c.dense) }

func (c *Cluster) has(i int) bool {
	k := sort.SearchInts(c.dense, i)
	return k < len(c.dense) && c.dense[k] == i
}

// sync rebuilds ID and Nodes from dense.
func (c *Cluster) sync() {
	c.Nodes = c.Nodes[:0]
	for _, i := range c.dense {
		c.Nodes = append(c.Nodes, c.model.ids[i])
	}
	if len(c.Nodes) > 0 {
		c.ID = c.Nodes[0]
	}
}

// Partition is an exact partition of a graph's patches into clusters,
// ordered by cluster ID.
type Partition struct {
	model    *weighted
	clusters []*Cluster
	of       []int // dense index → position in clusters
}

// newPartition groups dense indices by label. Labels are arbitrary ints.
func newPartition(m *weighted, labels []int) *Partition {
	groups := make(map[int][]int)
	for i, l := range labels {
		groups[l] = append(groups[l], i)
	}
	p := &Partition{model: m, of: make([]int, m.order())}
	for _, dense := range groups {
		c := &Cluster{model: m, dense: dense}
		c.sync()
		p.clusters = append(p.clusters, c)
	}
	p.reindex()
	for _, c := range p.clusters {
		c.Init()
	}

	return p
}

// reindex sorts clusters by ID and rebuilds of.
func (p *Partition) reindex() {
	sort.Slice(p.clusters, func(a, b int) bool { return p.clusters[a].ID < p.clusters[b].ID })
	for pos, c := range p.clusters {
		for _, i := range c.dense {
			p.of[i] = pos
		}
	}
}

// Clusters returns the clusters ordered by ID. The slice is shared.
func (p *Partition) Clusters() []*Cluster { return p.clusters }

// Len returns the number of clusters.
func (p *Partition) Len() int { return len(p.clusters) }

// Modularity returns Σ PartModularity over the clusters.
func (p *Partition) Modularity() float64 {
	var q float64
	for _, c := range p.clusters {
		q += c.PartModularity()
	}

	return q
}

// Init recomputes every cluster cache.
func (p *Partition) Init() {
	for _, c := range p.clusters {
		c.Init()
	}
}

// ClusterOf returns the ID of the cluster holding patch id.
func (p *Partition) ClusterOf(id int) (int, bool) {
	i, ok := p.dense(id)
	if !ok {
		return 0, false
	}

	return p.clusters[p.of[i]].ID, true
}

// Membership returns patch ID → cluster ID.
func (p *Partition) Membership() map[int]int {
	out := make(map[int]int, len(p.of))
	for i, pos := range p.of {
		out[p.model.ids[i]] = p.clusters[pos].ID
	}

	return out
}

// IDs returns the patch IDs of every cluster, ordered by cluster ID.
func (p *Partition) IDs() [][]int {
	out := make([][]int, len(p.clusters))
	for k, c := range p.clusters {
		out[k] = append([]int(nil), c.Nodes...)
	}

	return out
}

// Move transfers patch id into the cluster currently identified by to.
// The source cluster must keep at least one patch. Both caches are
// invalidated and cluster IDs are renormalised, so to may no longer be the
// target's ID afterwards.
func (p *Partition) Move(id, to int) error {
	i, ok := p.dense(id)
	if !ok {
		return fmt.Errorf("%w: patch %d", ErrInvalidPartition, id)
	}
	dst := -1
	for pos, c := range p.clusters {
		if c.ID == to {
			dst = pos
			break
		}
	}
	if dst < 0 {
		return fmt.Errorf("%w: cluster %d", ErrInvalidPartition, to)
	}
	src := p.of[i]
	if src == dst {
		return nil
	}
	if p.clusters[src].Len() == 1 {
		return fmt.Errorf("%w: moving %d would empty cluster %d", ErrInvalidPartition, id, p.clusters[src].ID)
	}
	p.moveDense(i, src, dst)
	p.reindex()

	return nil
}

// moveDense moves dense node i between cluster positions without reindexing.
func (p *Partition) moveDense(i, src, dst int) {
	from, into := p.clusters[src], p.clusters[dst]
	k := sort.SearchInts(from.dense, i)
	from.dense = append(from.dense[:k], from.dense[k+1:]...)
	k = sort.SearchInts(into.dense, i)
	into.dense = append(into.dense, 0)
	copy(into.dense[k+1:], into.dense[k:])
	into.dense[k] = i
	from.sync()
	into.sync()
	from.Invalidate()
	into.Invalidate()
	p.of[i] = dst
}

// Clone returns a deep copy with its own caches.
func (p *Partition) Clone() *Partition {
	q := &Partition{model: p.model, of: append([]int(nil), p.of...)}
	for _, c := range p.clusters {
		q.clusters = append(q.clusters, &Cluster{
			ID:    c.ID,
			Nodes: append([]int(nil), c.Nodes...),
			model: c.model,
			dense: append([]int(nil), c.dense...),
			partQ: c.partQ,
			fresh: c.fresh,
		})
	}

	return q
}

// Validate checks that p partitions exactly the patches of g: every patch in
// one non-empty cluster, no unknown or repeated patch.
func (p *Partition) Validate(g *core.Graph) error {
	if g == nil {
		return ErrNilGraph
	}
	seen := make(map[int]bool, g.Order())
	for _, c := range p.clusters {
		if len(c.Nodes) == 0 {
			return fmt.Errorf("%w: empty cluster", ErrInvalidPartition)
		}
		for _, id := range c.Nodes {
			if !g.HasPatch(id) {
				return fmt.Errorf("%w: unknown patch %d", ErrInvalidPartition, id)
			}
			if seen[id] {
				return fmt.Errorf("%w: patch %d in two clusters", ErrInvalidPartition, id)
			}
			seen[id] = true
		}
	}
	if len(seen) != g.Order() {
		return fmt.Errorf("%w: %d of %d patches covered", ErrInvalidPartition, len(seen), g.Order())
	}

	return nil
}

func (p *Partition) dense(id int) (int, bool) {
	k := sort.SearchInts(p.model.ids, id)
	if k < len(p.model.ids) && p.model.ids[k] == id {
		return k, true
	}

	return 0, false
}

// labels returns of as cluster positions.
func (p *Partition) labels() []int { return append([]int(nil), p.of...) }
