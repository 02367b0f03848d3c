// File: dijkstra.go
// Role: Lazy decrease-key Dijkstra over the CSR adjacency of core.Graph.
// Determinism:
//   - Heap ties are broken by push sequence and relaxation is strict (<), so the
//     first path discovered under the ascending-neighbor order wins.
// Concurrency:
//   - Each call owns its state; the graph is only read.

package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/patchnet/core"
)

// Dijkstra computes least-cost distances from patch source to every patch of g.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. options must be valid (ErrOptionViolation).
//  3. g must contain source (ErrVertexNotFound).
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func Dijkstra(g *core.Graph, source int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	src, ok := g.Index(source)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrVertexNotFound, source)
	}

	return FromIndex(g, src, opts...)
}

// FromIndex is Dijkstra with the source given as a dense node index. It is the
// entry point used by the distance engine and metrics, which already iterate
// over dense indices.
func FromIndex(g *core.Graph, src int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	// 1) Build and validate Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if src < 0 || src >= g.Order() {
		return nil, fmt.Errorf("%w: index %d", ErrVertexNotFound, src)
	}

	// 2) Prepare state
	n := g.Order()
	r := &runner{
		g:       g,
		options: cfg,
		res: &Result{
			Source: src,
			Dist:   make([]float64, n),
			Hops:   make([]int, n),
		},
		visited: make([]bool, n),
		pq:      make(nodePQ, 0, n),
	}
	if cfg.ReturnPath {
		r.res.Prev = make([]int, n)
	}

	// 3) Run
	r.init()
	if err := r.process(); err != nil {
		return nil, err
	}

	return r.res, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       *core.Graph
	options Options
	res     *Result
	visited []bool
	pq      nodePQ
	seq     uint64 // push counter for deterministic heap ties
}

// init sets every distance to Unreachable and pushes the source at 0.
func (r *runner) init() {
	for i := range r.res.Dist {
		r.res.Dist[i] = Unreachable
		r.res.Hops[i] = -1
		if r.res.Prev != nil {
			r.res.Prev[i] = -1
		}
	}
	r.res.Dist[r.res.Source] = 0
	r.res.Hops[r.res.Source] = 0
	heap.Init(&r.pq)
	r.push(r.res.Source, 0)
}

// process pops the closest unsettled node until the heap drains or the
// frontier passes MaxDistance.
func (r *runner) process() error {
	var item *nodeItem
	for r.pq.Len() > 0 {
		item = heap.Pop(&r.pq).(*nodeItem)
		if r.visited[item.id] {
			continue // stale entry
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[item.id] = true
		if err := r.relax(item.id); err != nil {
			return err
		}
	}

	// Nodes improved but never settled lie beyond MaxDistance.
	for i := range r.visited {
		if !r.visited[i] && !math.IsInf(r.res.Dist[i], 1) {
			r.res.Dist[i] = Unreachable
			r.res.Hops[i] = -1
			if r.res.Prev != nil {
				r.res.Prev[i] = -1
			}
		}
	}

	return nil
}

// relax tries to improve every neighbor of the settled node u.
func (r *runner) relax(u int) error {
	var (
		e       core.HalfEdge
		w       float64
		newDist float64
	)
	for _, e = range r.g.NeighborsAt(u) {
		if r.visited[e.To] {
			continue
		}
		if r.options.Weight != nil {
			w = r.options.Weight(u, e)
		} else {
			w = e.Cost
		}
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%w: %d→%d weight=%g", ErrNegativeWeight,
				r.g.PatchAt(u).ID, r.g.PatchAt(e.To).ID, w)
		}
		newDist = r.res.Dist[u] + w
		if newDist > r.options.MaxDistance {
			continue
		}
		// Strict improvement only: equal-cost alternatives keep the first path found.
		if newDist >= r.res.Dist[e.To] {
			continue
		}
		r.res.Dist[e.To] = newDist
		r.res.Hops[e.To] = r.res.Hops[u] + 1
		if r.res.Prev != nil {
			r.res.Prev[e.To] = u
		}
		r.push(e.To, newDist)
	}

	return nil
}

func (r *runner) push(id int, dist float64) {
	r.seq++
	heap.Push(&r.pq, &nodeItem{id: id, dist: dist, seq: r.seq})
}

// nodeItem is a heap entry: a dense node index and its tentative distance.
type nodeItem struct {
	id   int
	dist float64
	seq  uint64
}

// nodePQ is a min-heap of *nodeItem ordered by (dist, seq).
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
