// File: clustering.go
// Role: Greedy agglomeration and the partition queries built on its history.
// Determinism:
//   - Merge selection is a total order on (ΔQ desc, idA+idB asc, idA asc),
//     so the merge history does not depend on map iteration order.

package modularity

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/patchnet/core"
)

// Merge is one agglomeration step: clusters A < B (by ID) became cluster A,
// after which the partition had modularity Q.
type Merge struct {
	A, B int
	Q    float64
}

// Clustering is the full greedy merge history of a graph.
type Clustering struct {
	g      *core.Graph
	model  *weighted
	opts   options
	q0     float64
	merges []Merge
	pairs  [][2]int // dense representatives per merge
}

// New runs the greedy agglomeration on g with weighter w (CountWeighter when
// nil). The result answers every partition query without re-running it.
func New(g *core.Graph, w Weighter, opts ...Option) (*Clustering, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if w == nil {
		w = CountWeighter{}
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	m, err := newWeighted(g, w)
	if err != nil {
		return nil, err
	}

	c := &Clustering{g: g, model: m, opts: o}
	c.agglomerate()
	o.log.Debug("modularity agglomeration done",
		zap.String("graph", g.Name()),
		zap.Int("patches", m.order()),
		zap.Float64("total_weight", m.total),
		zap.Int("merges", len(c.merges)),
	)

	return c, nil
}

// agglo is the mutable state of the greedy pass. Clusters are represented by
// their lowest dense index, which is also their lowest patch ID.
type agglo struct {
	m     *weighted
	alive []bool
	deg   []float64
	links []map[int]float64 // rep → neighbour rep → joining weight
}

type candidate struct {
	a, b int // reps, a < b
	dq   float64
	ok   bool
}

// better reports whether (dq, a, b) beats cur under the merge order.
func (s *agglo) better(cur candidate, a, b int, dq float64) bool {
	if !cur.ok || dq > cur.dq {
		return true
	}
	if dq < cur.dq {
		return false
	}
	ids := s.m.ids
	sum, curSum := ids[a]+ids[b], ids[cur.a]+ids[cur.b]
	if sum != curSum {
		return sum < curSum
	}

	return ids[a] < ids[cur.a]
}

func (c *Clustering) agglomerate() {
	m := c.model
	n := m.order()
	s := &agglo{
		m:     m,
		alive: make([]bool, n),
		deg:   append([]float64(nil), m.deg...),
		links: make([]map[int]float64, n),
	}
	for i := 0; i < n; i++ {
		s.alive[i] = true
		s.links[i] = make(map[int]float64, len(m.adj[i]))
		for _, a := range m.adj[i] {
			s.links[i][a.to] += a.w
		}
		c.q0 += m.term(0, m.deg[i])
	}

	q := c.q0
	for step := 0; step < n-1; step++ {
		best := s.bestAdjacent()
		if !best.ok || best.dq <= 0 {
			best = s.bestAny()
		}
		s.merge(best.a, best.b)
		q += best.dq
		c.merges = append(c.merges, Merge{A: m.ids[best.a], B: m.ids[best.b], Q: q})
		c.pairs = append(c.pairs, [2]int{best.a, best.b})
	}
}

func (s *agglo) bestAdjacent() candidate {
	var best candidate
	for a := range s.links {
		if !s.alive[a] {
			continue
		}
		for b, w := range s.links[a] {
			if b <= a {
				continue
			}
			dq := s.m.gain(w, s.deg[a], s.deg[b])
			if s.better(best, a, b, dq) {
				best = candidate{a: a, b: b, dq: dq, ok: true}
			}
		}
	}

	return best
}

func (s *agglo) bestAny() candidate {
	var best candidate
	for a := range s.alive {
		if !s.alive[a] {
			continue
		}
		for b := a + 1; b < len(s.alive); b++ {
			if !s.alive[b] {
				continue
			}
			dq := s.m.gain(s.links[a][b], s.deg[a], s.deg[b])
			if s.better(best, a, b, dq) {
				best = candidate{a: a, b: b, dq: dq, ok: true}
			}
		}
	}

	return best
}

// merge folds b into a.
func (s *agglo) merge(a, b int) {
	for nb, w := range s.links[b] {
		delete(s.links[nb], b)
		if nb == a {
			continue
		}
		s.links[a][nb] += w
		s.links[nb][a] += w
	}
	delete(s.links[a], b)
	s.links[b] = nil
	s.deg[a] += s.deg[b]
	s.alive[b] = false
}

// Graph returns the clustered graph.
func (c *Clustering) Graph() *core.Graph { return c.g }

// Merges returns the merge history.
func (c *Clustering) Merges() []Merge { return append([]Merge(nil), c.merges...) }

// levelQ returns the recorded Q of the level with k clusters.
func (c *Clustering) levelQ(k int) float64 {
	s := c.model.order() - k
	if s == 0 {
		return c.q0
	}

	return c.merges[s-1].Q
}

// Partition returns the greedy partition with exactly k clusters,
// 1 ≤ k ≤ Order.
func (c *Clustering) Partition(k int) (*Partition, error) {
	n := c.model.order()
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: k=%d, patches=%d", ErrClusterCount, k, n)
	}

	p := c.replay(n - k)
	if err := p.Validate(c.g); err != nil {
		return nil, err
	}

	return p, nil
}

// replay applies the first s merges to singletons.
func (c *Clustering) replay(s int) *Partition {
	n := c.model.order()
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	for _, pr := range c.pairs[:s] {
		parent[find(pr[1])] = find(pr[0])
	}
	labels := make([]int, n)
	for i := range labels {
		labels[i] = find(i)
	}

	return newPartition(c.model, labels)
}

// Partitions returns every level of the history, ranked by modularity
// (descending), then by fewer clusters.
func (c *Clustering) Partitions() []*Partition {
	n := c.model.order()
	ks := make([]int, n)
	for i := range ks {
		ks[i] = i + 1
	}
	sort.SliceStable(ks, func(a, b int) bool {
		qa, qb := c.levelQ(ks[a]), c.levelQ(ks[b])
		if qa != qb {
			return qa > qb
		}
		return ks[a] < ks[b]
	})
	out := make([]*Partition, n)
	for i, k := range ks {
		out[i] = c.replay(n - k)
	}

	return out
}

// BestPartition returns the level with the highest modularity, the one with
// fewer clusters on ties. Nil for an empty graph.
func (c *Clustering) BestPartition() *Partition {
	n := c.model.order()
	if n == 0 {
		return nil
	}
	best := n
	for k := n - 1; k >= 1; k-- {
		if c.levelQ(k) >= c.levelQ(best) {
			best = k
		}
	}

	return c.replay(n - best)
}

// Modularity recomputes Q of p from scratch on the clustered graph. p must
// partition exactly the patches of that graph.
func (c *Clustering) Modularity(p *Partition) (float64, error) {
	if p == nil {
		return 0, ErrInvalidPartition
	}
	if err := p.Validate(c.g); err != nil {
		return 0, err
	}
	labels := make([]int, c.model.order())
	for k, cl := range p.clusters {
		for _, id := range cl.Nodes {
			i := sort.SearchInts(c.model.ids, id)
			labels[i] = k
		}
	}

	return c.model.score(labels, len(p.clusters)), nil
}

// Evaluate returns Q of g under membership (patch ID → cluster label) with
// weighter w (CountWeighter when nil). Entries for patches absent from g are
// ignored, which lets a partition of a full graph score a derived graph.
// Every patch of g must have a label.
func Evaluate(g *core.Graph, membership map[int]int, w Weighter) (float64, error) {
	if g == nil {
		return 0, ErrNilGraph
	}
	if w == nil {
		w = CountWeighter{}
	}
	m, err := newWeighted(g, w)
	if err != nil {
		return 0, err
	}
	pos := make(map[int]int)
	labels := make([]int, m.order())
	for i, id := range m.ids {
		l, ok := membership[id]
		if !ok {
			return 0, fmt.Errorf("%w: patch %d has no cluster", ErrInvalidPartition, id)
		}
		k, seen := pos[l]
		if !seen {
			k = len(pos)
			pos[l] = k
		}
		labels[i] = k
	}

	return m.score(labels, len(pos)), nil
}
