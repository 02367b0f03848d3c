package bfs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/patchnet/bfs"
	"github.com/katalvlaran/patchnet/builder"
	"github.com/katalvlaran/patchnet/core"
)

// ring returns a cycle over patches 1..n whose link i→i+1 costs i.
func ring(t *testing.T, n int) *core.Graph {
	t.Helper()
	ps := make([]core.Patch, n)
	ls := make([]core.Link, n)
	for i := 0; i < n; i++ {
		ps[i] = core.Patch{ID: i + 1, Area: 1}
		ls[i] = core.Link{From: i + 1, To: (i+1)%n + 1, Cost: float64(i + 1)}
	}
	g, err := core.Build(ps, ls, core.DefaultCostDefinition())
	require.NoError(t, err)

	return g
}

func TestBFS_Errors(t *testing.T) {
	_, err := bfs.BFS(nil, 1)
	assert.ErrorIs(t, err, bfs.ErrNilGraph)
	_, err = bfs.FromIndex(nil, 0)
	assert.ErrorIs(t, err, bfs.ErrNilGraph)

	g := ring(t, 3)
	_, err = bfs.BFS(g, 42)
	assert.ErrorIs(t, err, bfs.ErrPatchNotFound)
	_, err = bfs.FromIndex(g, 3)
	assert.ErrorIs(t, err, bfs.ErrPatchNotFound)

	_, err = bfs.BFS(g, 1, bfs.WithMaxHops(-1))
	assert.ErrorIs(t, err, bfs.ErrOptionViolation)
	_, err = bfs.BFS(g, 1, bfs.WithMaxLinkCost(-0.5))
	assert.ErrorIs(t, err, bfs.ErrOptionViolation)
}

func TestBFS_Ring(t *testing.T) {
	g := ring(t, 6)

	res, err := bfs.BFS(g, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 2, 1}, res.Hops)
	assert.Equal(t, []int{0, 1, 5, 2, 4, 3}, res.Order)
	assert.Equal(t, 6, res.Reached())

	path, err := res.PathTo(3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, path, "lower index explored first")

	path, err = res.PathTo(0)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, path)
	_, err = res.PathTo(-1)
	assert.Error(t, err)
}

func TestBFS_Limits(t *testing.T) {
	g := ring(t, 6)

	hops, err := bfs.Hops(g, 1, bfs.WithMaxHops(1))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, -1, -1, -1, 1}, hops)

	// Link 6—1 costs 6: dropping it turns the ring into a path.
	res, err := bfs.BFS(g, 1, bfs.WithMaxLinkCost(5))
	require.NoError(t, err)
	assert.Equal(t, 5, res.Hops[5])

	res, err = bfs.BFS(g, 1, bfs.WithFollow(func(from int, e core.HalfEdge) bool { return e.To != 1 }))
	require.NoError(t, err)
	assert.Equal(t, -1, res.Hops[1])
	assert.Equal(t, 4, res.Hops[2], "reached the long way round")
}

func TestWithin(t *testing.T) {
	g, err := builder.BuildLandscape(core.DefaultCostDefinition(), nil, builder.Star(5))
	require.NoError(t, err)

	ids, err := bfs.Within(g, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, ids)

	ids, err = bfs.Within(g, 2, 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, ids)

	ids, err = bfs.Within(g, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, ids)

	_, err = bfs.Within(g, 3, -1)
	assert.ErrorIs(t, err, bfs.ErrOptionViolation)
	_, err = bfs.Within(g, 9, 0)
	assert.ErrorIs(t, err, bfs.ErrPatchNotFound)
}

func TestBFS_Disconnected(t *testing.T) {
	g, err := core.Build(
		[]core.Patch{{ID: 1, Area: 1}, {ID: 2, Area: 1}, {ID: 3, Area: 1}},
		[]core.Link{{From: 1, To: 2, Cost: 9}},
		core.DefaultCostDefinition(),
	)
	require.NoError(t, err)

	res, err := bfs.BFS(g, 1)
	require.NoError(t, err)
	assert.Equal(t, -1, res.Hops[2])
	assert.Equal(t, 2, res.Reached())
	_, err = res.PathTo(2)
	assert.Error(t, err)
}

func TestBFS_VisitorErrorAndCancel(t *testing.T) {
	g := ring(t, 4)
	boom := errors.New("boom")

	var seen []int
	_, err := bfs.BFS(g, 1, bfs.WithVisitor(func(idx, _ int) error {
		seen = append(seen, idx)
		if idx == 2 {
			return boom
		}
		return nil
	}))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{0, 1, 3, 2}, seen)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bfs.BFS(g, 1, bfs.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}
