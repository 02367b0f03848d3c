package gridgraph

// labelRegions assigns a region label to every passable cell, where a region
// is a maximal set of passable cells connected under s.Conn. Barriers get -1.
// Labels follow row-major order of each region's first cell.
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for labels and the queue.
func (s *CostSurface) labelRegions() {
	s.regions = make([]int, len(s.costs))
	for i := range s.regions {
		s.regions[i] = -1
	}
	queue := make([]int, 0, len(s.costs))
	for i0 := range s.costs {
		if s.regions[i0] >= 0 || !s.Passable(i0) {
			continue
		}
		label := s.regionCount
		s.regionCount++
		// BFS to flood the region
		queue = append(queue[:0], i0)
		s.regions[i0] = label
		for qi := 0; qi < len(queue); qi++ {
			ux, uy := s.Coordinate(queue[qi])
			for _, d := range s.offsets {
				vx, vy := ux+d[0], uy+d[1]
				if !s.InBounds(vx, vy) {
					continue
				}
				vi := s.Index(vx, vy)
				if s.regions[vi] < 0 && s.Passable(vi) {
					s.regions[vi] = label
					queue = append(queue, vi)
				}
			}
		}
	}
}

// Region returns the passable-region label of cell idx, -1 for barriers.
func (s *CostSurface) Region(idx int) int { return s.regions[idx] }

// RegionCount returns the number of passable regions.
func (s *CostSurface) RegionCount() int { return s.regionCount }

// ConnectedRegions returns the cell indices of every passable region,
// ordered by label, each in ascending index order.
func (s *CostSurface) ConnectedRegions() [][]int {
	out := make([][]int, s.regionCount)
	for idx, r := range s.regions {
		if r >= 0 {
			out[r] = append(out[r], idx)
		}
	}

	return out
}
