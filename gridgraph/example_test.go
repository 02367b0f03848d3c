package gridgraph_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/patchnet/gridgraph"
)

// ExampleCostSurface_LeastCost finds the cheapest route across a small raster
// where the direct line crosses a costly river.
func ExampleCostSurface_LeastCost() {
	s, err := gridgraph.NewCostSurface([][]float64{
		{1, 50, 1},
		{1, 2, 1},
	}, gridgraph.SurfaceOptions{OriginX: 0, OriginY: 20, Resolution: 10, Conn: gridgraph.Conn4})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	from, _ := s.CellOf(5, 15)  // upper-left
	to, _ := s.CellOf(25, 15)   // upper-right
	costs, _ := s.LeastCost(context.Background(), from, []int{to})
	fmt.Println(costs[0])

	// Output:
	// 50
}
