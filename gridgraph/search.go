package gridgraph

import (
	"container/heap"
	"context"
	"fmt"
)

// LeastCost returns the least accumulated cost from cell from to each cell of
// targets, in targets order. Moving between neighbors a and b costs
// (c_a + c_b)/2 · stepLength, with stepLength = Resolution (orthogonal) or
// Resolution·√2 (diagonal). Unreached or barrier targets report Unreachable.
//
// Behavior:
//  1. Validate indices; a barrier source is ErrBarrier.
//  2. Targets in another region are Unreachable without searching.
//  3. Dijkstra over the implicit grid, stopping once every reachable target
//     is settled.
//
// Complexity: O(W·H·log(W·H)) worst case. Memory: O(W·H).
// The context is polled once per settled cell.
func (s *CostSurface) LeastCost(ctx context.Context, from int, targets []int) ([]float64, error) {
	// 1) Validate
	if from < 0 || from >= len(s.costs) {
		return nil, fmt.Errorf("%w: source %d", ErrCellIndex, from)
	}
	if !s.Passable(from) {
		return nil, fmt.Errorf("%w: %d", ErrBarrier, from)
	}
	out := make([]float64, len(targets))
	pending := make(map[int]struct{}, len(targets))
	for i, t := range targets {
		if t < 0 || t >= len(s.costs) {
			return nil, fmt.Errorf("%w: target %d", ErrCellIndex, t)
		}
		out[i] = Unreachable
		// 2) Region short-circuit
		if s.regions[t] == s.regions[from] {
			pending[t] = struct{}{}
		}
	}
	if len(pending) == 0 {
		return out, nil
	}

	// 3) Search
	dist := make([]float64, len(s.costs))
	for i := range dist {
		dist[i] = Unreachable
	}
	done := make([]bool, len(s.costs))
	dist[from] = 0
	pq := cellPQ{{idx: from}}
	var seq uint64
	for pq.Len() > 0 && len(pending) > 0 {
		cur := heap.Pop(&pq).(cellItem)
		if done[cur.idx] {
			continue // stale entry
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		done[cur.idx] = true
		delete(pending, cur.idx)

		col, row := s.Coordinate(cur.idx)
		for k, d := range s.offsets {
			nc, nr := col+d[0], row+d[1]
			if !s.InBounds(nc, nr) {
				continue
			}
			nb := s.Index(nc, nr)
			if done[nb] || !s.Passable(nb) {
				continue
			}
			nd := cur.dist + s.stepCost(cur.idx, nb, k)
			if nd < dist[nb] {
				dist[nb] = nd
				seq++
				heap.Push(&pq, cellItem{idx: nb, dist: nd, seq: seq})
			}
		}
	}
	for i, t := range targets {
		if done[t] {
			out[i] = dist[t]
		}
	}

	return out, nil
}

// cellItem is a heap entry for the grid search.
type cellItem struct {
	idx  int
	dist float64
	seq  uint64
}

// cellPQ is a min-heap ordered by (dist, seq).
type cellPQ []cellItem

func (pq cellPQ) Len() int { return len(pq) }

func (pq cellPQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].seq < pq[j].seq
}

func (pq cellPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *cellPQ) Push(x interface{}) { *pq = append(*pq, x.(cellItem)) }

func (pq *cellPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
