package distance_test

import (
	"context"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/patchnet/builder"
	"github.com/katalvlaran/patchnet/core"
	"github.com/katalvlaran/patchnet/distance"
	"github.com/katalvlaran/patchnet/gridgraph"
	"github.com/katalvlaran/patchnet/progress"
)

func newEngine(opts ...distance.Option) *distance.Engine {
	return distance.NewEngine(zap.NewNop(), opts...)
}

func build(t *testing.T, ps []core.Patch, ls []core.Link) *core.Graph {
	t.Helper()
	g, err := core.Build(ps, ls, core.DefaultCostDefinition())
	require.NoError(t, err)

	return g
}

// ------------------------------------------------------------------------
// 1. Least-cost
// ------------------------------------------------------------------------

func TestLeastCost_RingOpposite(t *testing.T) {
	g, err := builder.BuildLandscape(core.DefaultCostDefinition(), nil, builder.Cycle(5))
	require.NoError(t, err)

	m, err := newEngine().ComputeGraphMatrix(context.Background(), g, distance.LeastCost, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Components())
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, m.Sources())
	assert.Equal(t, 2.0, m.At(0, 2, 0), "shortest of the two arcs")
	assert.Equal(t, 2.0, m.At(0, 3, 0))
	assert.Equal(t, 0.0, m.At(4, 4, 0))
}

func TestLeastCost_SymmetricOnRandomGraphs(t *testing.T) {
	for seed := int64(1); seed <= 3; seed++ {
		g, err := builder.BuildLandscape(core.DefaultCostDefinition(),
			[]builder.BuilderOption{builder.WithSeed(seed), builder.WithCostFn(builder.UniformCostFn(0.5, 20))},
			builder.RandomSparse(25, 0.15))
		require.NoError(t, err)

		m, err := newEngine(distance.WithParallelism(4)).ComputeGraphMatrix(context.Background(), g, distance.LeastCost, 0)
		require.NoError(t, err)
		assert.True(t, m.Symmetric(0, 1e-9), "seed %d", seed)

		ap, err := distance.AllPairs(g)
		require.NoError(t, err)
		for i := 0; i < g.Order(); i++ {
			for j := 0; j < g.Order(); j++ {
				a, b := m.At(i, j, 0), ap.At(i, j, 0)
				if distance.IsUnreachable(a) {
					assert.True(t, distance.IsUnreachable(b))
					continue
				}
				assert.InDelta(t, a, b, 1e-9, "seed %d (%d,%d)", seed, i, j)
			}
		}
	}
}

func TestLeastCost_Disconnected(t *testing.T) {
	g := build(t,
		[]core.Patch{{ID: 1, Area: 1}, {ID: 2, Area: 1}, {ID: 3, Area: 1}},
		[]core.Link{{From: 1, To: 2, Cost: 3}})

	m, err := newEngine().ComputeGraphMatrix(context.Background(), g, distance.LeastCost, 0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, m.At(0, 1, 0))
	assert.True(t, distance.IsUnreachable(m.At(0, 2, 0)))
	assert.True(t, distance.IsUnreachable(m.At(2, 1, 0)))
	assert.Equal(t, 0.0, m.At(2, 2, 0))
}

func TestAttachment(t *testing.T) {
	g := build(t,
		[]core.Patch{{ID: 1, X: 0, Area: 1}, {ID: 2, X: 10, Area: 1}},
		[]core.Link{{From: 1, To: 2, Cost: 4}})
	pts := []distance.Point{
		// 3 from patch 1
		{ID: "a", X: 0, Y: 3},
		// tie between 1 and 2 goes to patch 1
		{ID: "b", X: 5, Y: 0},
		{ID: "c", Node: 2, OnNode: true},
	}

	m, err := newEngine(distance.WithAttachCostFactor(2)).ComputeMatrix(context.Background(), pts, g, distance.LeastCost, 0)
	require.NoError(t, err)
	assert.Equal(t, 6.0+10.0, m.At(0, 1, 0), "a→1 (6) + 1→b (10)")
	assert.Equal(t, 6.0+4.0, m.At(0, 2, 0))
	assert.Equal(t, 10.0+4.0, m.At(1, 2, 0))
	assert.True(t, m.Symmetric(0, 1e-12))

	_, err = newEngine().ComputeMatrix(context.Background(),
		[]distance.Point{{ID: "x", Node: 9, OnNode: true}}, g, distance.LeastCost, 0)
	assert.ErrorIs(t, err, distance.ErrUnknownPatch)
}

// ------------------------------------------------------------------------
// 2. Flow
// ------------------------------------------------------------------------

func TestFlow_PathCorrection(t *testing.T) {
	// 1—2—3, capacities 1, 2, 1 (total 4).
	g := build(t,
		[]core.Patch{{ID: 1, Area: 1}, {ID: 2, Area: 2}, {ID: 3, Area: 1}},
		[]core.Link{{From: 1, To: 2, Cost: 1}, {From: 2, To: 3, Cost: 1}})

	m, err := newEngine().ComputeGraphMatrix(context.Background(), g, distance.Flow, 0.5)
	require.NoError(t, err)
	require.Equal(t, 2, m.Components())

	assert.InDelta(t, 1.0, m.At(0, 1, 1), 1e-12, "direct link reduces to its cost")
	assert.InDelta(t, 1.0, m.At(0, 1, 0), 1e-12)
	assert.InDelta(t, 2+0.5*math.Log(2), m.At(0, 2, 1), 1e-12, "2 − α·ln(2/4)")
	assert.InDelta(t, 2.0, m.At(0, 2, 0), 1e-12)
	assert.True(t, m.Symmetric(1, 1e-12))
}

func TestFlow_DirectLinkIgnoresAlpha(t *testing.T) {
	g := build(t,
		[]core.Patch{{ID: 1, Area: 1}, {ID: 2, Area: 3}},
		[]core.Link{{From: 1, To: 2, Cost: 5}})

	for _, alpha := range []float64{0.5, 1, 2} {
		m, err := newEngine().ComputeGraphMatrix(context.Background(), g, distance.Flow, alpha)
		require.NoError(t, err)
		assert.InDelta(t, 5.0, m.At(0, 1, 1), 1e-12, "α=%g", alpha)
		assert.InDelta(t, 5.0, m.At(1, 0, 1), 1e-12, "α=%g", alpha)
		assert.InDelta(t, 5.0, m.At(0, 1, 0), 1e-12, "α=%g", alpha)
	}
}

func TestFlow_AlphaScalesNodeTerm(t *testing.T) {
	// 1—2—3, capacities 1, 2, 1: the middle patch holds half the capacity.
	g := build(t,
		[]core.Patch{{ID: 1, Area: 1}, {ID: 2, Area: 2}, {ID: 3, Area: 1}},
		[]core.Link{{From: 1, To: 2, Cost: 1}, {From: 2, To: 3, Cost: 1}})

	for _, alpha := range []float64{0.5, 1, 2, 4} {
		m, err := newEngine().ComputeGraphMatrix(context.Background(), g, distance.Flow, alpha)
		require.NoError(t, err)
		assert.InDelta(t, 2+alpha*math.Log(2), m.At(0, 2, 1), 1e-12, "α=%g", alpha)
		assert.InDelta(t, 2.0, m.At(0, 2, 0), 1e-12, "α=%g", alpha)
	}
}

func TestFlow_PrefersHighCapacityStepStones(t *testing.T) {
	// Cheap route through a tiny patch 2 vs dearer route through a big patch 3.
	g := build(t,
		[]core.Patch{{ID: 1, Area: 1}, {ID: 2, Area: 0.01}, {ID: 3, Area: 10}, {ID: 4, Area: 1}},
		[]core.Link{
			{From: 1, To: 2, Cost: 1}, {From: 2, To: 4, Cost: 1},
			{From: 1, To: 3, Cost: 1.5}, {From: 3, To: 4, Cost: 1.5},
		})

	lc, err := newEngine().ComputeGraphMatrix(context.Background(), g, distance.LeastCost, 0)
	require.NoError(t, err)
	fl, err := newEngine().ComputeGraphMatrix(context.Background(), g, distance.Flow, 1)
	require.NoError(t, err)

	assert.Equal(t, 2.0, lc.At(0, 3, 0))
	assert.InDelta(t, 3.0, fl.At(0, 3, 0), 1e-12, "length of the flow path")
	assert.InDelta(t, 3-math.Log(10/12.01), fl.At(0, 3, 1), 1e-9)
}

func TestFlow_InvalidParameter(t *testing.T) {
	g := build(t, []core.Patch{{ID: 1, Area: 1}}, nil)
	for _, alpha := range []float64{0, -1, math.Inf(1), math.NaN()} {
		_, err := newEngine().ComputeGraphMatrix(context.Background(), g, distance.Flow, alpha)
		assert.ErrorIs(t, err, distance.ErrInvalidParameter, "α=%g", alpha)
	}
	_, err := newEngine().ComputeGraphMatrix(context.Background(), g, distance.Kind(9), 1)
	assert.ErrorIs(t, err, distance.ErrInvalidParameter)

	zero := build(t, []core.Patch{{ID: 1}, {ID: 2}}, []core.Link{{From: 1, To: 2, Cost: 1}})
	_, err = newEngine().ComputeGraphMatrix(context.Background(), zero, distance.Flow, 1)
	assert.ErrorIs(t, err, distance.ErrInvalidParameter, "no capacity at all")
}

// ------------------------------------------------------------------------
// 3. Engine plumbing: validation, cancellation, observer, surface
// ------------------------------------------------------------------------

func TestEngine_Validation(t *testing.T) {
	e := newEngine()
	_, err := e.ComputeGraphMatrix(context.Background(), nil, distance.LeastCost, 0)
	assert.ErrorIs(t, err, distance.ErrNilGraph)

	g := build(t, []core.Patch{{ID: 1, Area: 1}}, nil)
	_, err = e.ComputeMatrix(context.Background(), nil, g, distance.LeastCost, 0)
	assert.ErrorIs(t, err, distance.ErrNoPoints)

	_, err = distance.AllPairs(nil)
	assert.ErrorIs(t, err, distance.ErrNilGraph)
}

func TestEngine_Cancelled(t *testing.T) {
	g, err := builder.BuildLandscape(core.DefaultCostDefinition(), nil, builder.Grid(4, 4))
	require.NoError(t, err)

	c := &progress.Canceller{}
	c.Cancel()
	ctx := progress.WithReporter(context.Background(), c)
	_, err = newEngine().ComputeGraphMatrix(ctx, g, distance.LeastCost, 0)
	assert.ErrorIs(t, err, progress.ErrCancelled)

	cctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = newEngine().ComputeGraphMatrix(cctx, g, distance.LeastCost, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

type rowCounter struct{ n atomic.Int64 }

func (r *rowCounter) ObserveMatrixRow(string, time.Duration) { r.n.Add(1) }

func TestEngine_ObserverAndProgress(t *testing.T) {
	g, err := builder.BuildLandscape(core.DefaultCostDefinition(), nil, builder.Path(6))
	require.NoError(t, err)

	obs := &rowCounter{}
	c := &progress.Canceller{}
	ctx := progress.WithReporter(context.Background(), c)
	_, err = newEngine(distance.WithObserver(obs), distance.WithParallelism(1)).
		ComputeGraphMatrix(ctx, g, distance.LeastCost, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(6), obs.n.Load())
	assert.Equal(t, 6, c.Step(), "the last report carries the total")
}

func TestComputeSurfaceMatrix(t *testing.T) {
	s, err := gridgraph.NewCostSurface([][]float64{
		{1, 1, 1},
		{1, -1, 1},
		{1, 1, -1},
	}, gridgraph.SurfaceOptions{OriginX: 0, OriginY: 3, Resolution: 1, Conn: gridgraph.Conn4})
	require.NoError(t, err)

	pts := []distance.Point{
		{ID: "nw", X: 0.5, Y: 2.5},
		{ID: "se", X: 1.5, Y: 0.5},
		{ID: "rock", X: 2.5, Y: 0.5},
	}
	m, err := newEngine().ComputeSurfaceMatrix(context.Background(), pts, s)
	require.NoError(t, err)
	assert.Equal(t, 3.0, m.At(0, 1, 0), "down the west column then east")
	assert.True(t, m.Symmetric(0, 1e-12))
	assert.True(t, distance.IsUnreachable(m.At(0, 2, 0)))
	assert.True(t, distance.IsUnreachable(m.At(2, 0, 0)))
	assert.Equal(t, 0.0, m.At(2, 2, 0))

	_, err = newEngine().ComputeSurfaceMatrix(context.Background(), []distance.Point{{ID: "far", X: 9, Y: 9}}, s)
	assert.ErrorIs(t, err, distance.ErrOutsideSurface)
}

func TestMatrix_ComponentExport(t *testing.T) {
	g := build(t,
		[]core.Patch{{ID: 1, Area: 1}, {ID: 2, Area: 1}},
		[]core.Link{{From: 1, To: 2, Cost: 2}})
	m, err := newEngine().ComputeGraphMatrix(context.Background(), g, distance.Flow, 3)
	require.NoError(t, err)

	d, err := m.Component(1)
	require.NoError(t, err)
	r, c := d.Dims()
	assert.Equal(t, [2]int{2, 2}, [2]int{r, c})
	assert.Equal(t, 2.0, d.At(0, 1))

	_, err = m.Component(2)
	assert.ErrorIs(t, err, distance.ErrInvalidParameter)

	rect := distance.NewMatrix(distance.LeastCost, []string{"a"}, []string{"a", "b"})
	assert.False(t, rect.Symmetric(0, 1))
	rect.Set(0, 1, 0, 7)
	assert.Equal(t, 7.0, rect.At(0, 1, 0))
	assert.True(t, distance.IsUnreachable(rect.At(0, 0, 0)))
}

func TestKind_Strings(t *testing.T) {
	for _, k := range []distance.Kind{distance.LeastCost, distance.Flow} {
		back, err := distance.ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, back)
	}
	_, err := distance.ParseKind("resistance")
	assert.ErrorIs(t, err, distance.ErrInvalidParameter)
	assert.Equal(t, "Kind(7)", distance.Kind(7).String())
}

func BenchmarkComputeGraphMatrix_Grid(b *testing.B) {
	g, err := builder.BuildLandscape(core.DefaultCostDefinition(), nil, builder.Grid(30, 30))
	if err != nil {
		b.Fatal(err)
	}
	e := newEngine()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.ComputeGraphMatrix(context.Background(), g, distance.LeastCost, 0); err != nil {
			b.Fatal(err)
		}
	}
}
