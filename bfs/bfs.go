// File: bfs.go
// Role: Queue-based breadth-first search over the CSR adjacency.
// Determinism:
//   - Adjacency rows are sorted by neighbor index and enqueued in that order.

package bfs

import (
	"fmt"

	"github.com/katalvlaran/patchnet/core"
)

// BFS searches g from patch start.
func BFS(g *core.Graph, start int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	idx, ok := g.Index(start)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrPatchNotFound, start)
	}

	return FromIndex(g, idx, opts...)
}

// FromIndex is BFS with the start given as a dense node index.
//
// Complexity: O(V + E) time, O(V) memory.
func FromIndex(g *core.Graph, start int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	n := g.Order()
	if start < 0 || start >= n {
		return nil, fmt.Errorf("%w: index %d", ErrPatchNotFound, start)
	}

	res := &Result{
		Start:  start,
		Order:  make([]int, 0, n),
		Hops:   make([]int, n),
		Parent: make([]int, n),
	}
	for i := range res.Hops {
		res.Hops[i], res.Parent[i] = -1, -1
	}
	res.Hops[start] = 0
	res.Order = append(res.Order, start)

	// Order doubles as the queue: everything appended is eventually visited.
	for head := 0; head < len(res.Order); head++ {
		if err := o.Ctx.Err(); err != nil {
			return nil, err
		}
		cur := res.Order[head]
		if o.Visit != nil {
			if err := o.Visit(cur, res.Hops[cur]); err != nil {
				return nil, fmt.Errorf("bfs: visit patch %d: %w", g.PatchAt(cur).ID, err)
			}
		}
		next := res.Hops[cur] + 1
		if o.MaxHops > 0 && next > o.MaxHops {
			continue
		}
		for _, e := range g.NeighborsAt(cur) {
			if res.Hops[e.To] >= 0 || (o.Follow != nil && !o.Follow(cur, e)) {
				continue
			}
			res.Hops[e.To] = next
			res.Parent[e.To] = cur
			res.Order = append(res.Order, e.To)
		}
	}

	return res, nil
}

// Hops returns the link count from patch source to every dense index, -1
// when unreachable.
func Hops(g *core.Graph, source int, opts ...Option) ([]int, error) {
	res, err := BFS(g, source, opts...)
	if err != nil {
		return nil, err
	}

	return res.Hops, nil
}

// Within returns the IDs of the patches at most k links from source
// (source included), in visit order.
func Within(g *core.Graph, source, k int, opts ...Option) ([]int, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: k %d < 0", ErrOptionViolation, k)
	}
	if k == 0 {
		if g == nil {
			return nil, ErrNilGraph
		}
		if !g.HasPatch(source) {
			return nil, fmt.Errorf("%w: %d", ErrPatchNotFound, source)
		}
		return []int{source}, nil
	}
	res, err := BFS(g, source, append(opts, WithMaxHops(k))...)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(res.Order))
	for i, idx := range res.Order {
		ids[i] = g.PatchAt(idx).ID
	}

	return ids, nil
}
