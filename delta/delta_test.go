package delta_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/patchnet/builder"
	"github.com/katalvlaran/patchnet/core"
	"github.com/katalvlaran/patchnet/delta"
	"github.com/katalvlaran/patchnet/executor"
	"github.com/katalvlaran/patchnet/metric"
	"github.com/katalvlaran/patchnet/progress"
)

const eps = 1e-9

// pcStar is PC with α = ln 2, so every unit-cost hop halves the pair weight.
const pcStar = "PC_d1_p0.5_beta1"

func pool(t *testing.T, workers int) *executor.Pool {
	t.Helper()
	p, err := executor.New(workers)
	require.NoError(t, err)
	t.Cleanup(p.Close)

	return p
}

func launcher(t *testing.T, m metric.GlobalMetric, all bool) *metric.Launcher {
	t.Helper()
	l, err := metric.NewLauncher(m, all)
	require.NoError(t, err)

	return l
}

func pc(t *testing.T) metric.GlobalMetric {
	t.Helper()
	m, err := metric.NewGlobal(pcStar)
	require.NoError(t, err)

	return m
}

func star(t *testing.T, n int) *core.Graph {
	t.Helper()
	g, err := builder.BuildLandscape(core.DefaultCostDefinition(), nil, builder.Star(n))
	require.NoError(t, err)

	return g
}

// failing wraps a metric and fails on graphs without patch missing, or on
// every graph when missing is 0.
type failing struct {
	metric.GlobalMetric
	missing int
	err     error
}

func (f *failing) CalcMetric(ctx context.Context, g *core.Graph, o metric.CalcOptions) (metric.Result, error) {
	if f.missing == 0 || !g.HasPatch(f.missing) {
		return metric.Result{}, f.err
	}

	return f.GlobalMetric.CalcMetric(ctx, g, o)
}

func (f *failing) CloneGlobal() metric.GlobalMetric {
	return &failing{GlobalMetric: f.GlobalMetric.CloneGlobal(), missing: f.missing, err: f.err}
}

// cancelAfterFirst runs the wrapped metric and then calls cancel, so the
// baseline succeeds and dispatch sees a cancelled task.
type cancelAfterFirst struct {
	metric.GlobalMetric
	once   *sync.Once
	cancel func()
}

func (c *cancelAfterFirst) CalcMetric(ctx context.Context, g *core.Graph, o metric.CalcOptions) (metric.Result, error) {
	r, err := c.GlobalMetric.CalcMetric(ctx, g, o)
	c.once.Do(c.cancel)

	return r, err
}

func (c *cancelAfterFirst) CloneGlobal() metric.GlobalMetric {
	return &cancelAfterFirst{GlobalMetric: c.GlobalMetric.CloneGlobal(), once: c.once, cancel: c.cancel}
}

type recorder struct {
	mu      sync.Mutex
	batches map[string]int
	states  []string
}

func (r *recorder) ObserveBatch(status string, nodes int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.batches == nil {
		r.batches = make(map[string]int)
	}
	r.batches[status] += nodes
}

func (r *recorder) ObserveTask(state string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

// ------------------------------------------------------------------------
// 1. Configuration errors are synchronous.
// ------------------------------------------------------------------------

func TestNewTask_Validation(t *testing.T) {
	_, err := delta.NewTask(nil, delta.Difference)
	assert.ErrorIs(t, err, delta.ErrNilPool)

	_, err = delta.NewTask(pool(t, 1), delta.Mode(7))
	assert.ErrorIs(t, err, delta.ErrInvalidMode)

	id := uuid.New()
	task, err := delta.NewTask(pool(t, 1), delta.Ratio, delta.WithID(id))
	require.NoError(t, err)
	assert.Equal(t, id, task.ID)
	assert.Equal(t, delta.Pending, task.State())
}

func TestExecute_Validation(t *testing.T) {
	task, err := delta.NewTask(pool(t, 1), delta.Difference)
	require.NoError(t, err)
	g := star(t, 3)
	l := launcher(t, pc(t), true)
	ctx := context.Background()

	_, err = task.Execute(ctx, nil, l, 1)
	assert.ErrorIs(t, err, delta.ErrNilGraph)
	_, err = task.Execute(ctx, g, nil, 1)
	assert.ErrorIs(t, err, delta.ErrNilLauncher)
	_, err = task.Execute(ctx, g, l, 0)
	assert.ErrorIs(t, err, delta.ErrInvalidBatchSize)
	assert.Equal(t, delta.Pending, task.State(), "no dispatch on configuration errors")

	_, err = task.Execute(ctx, g, l, 2)
	require.NoError(t, err)
	_, err = task.Execute(ctx, g, l, 2)
	assert.ErrorIs(t, err, delta.ErrAlreadyStarted)
}

func TestParseMode(t *testing.T) {
	for _, m := range []delta.Mode{delta.Difference, delta.Ratio} {
		back, err := delta.ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, back)
	}
	_, err := delta.ParseMode("percent")
	assert.ErrorIs(t, err, delta.ErrInvalidMode)
	assert.Equal(t, "partially_failed", delta.PartiallyFailed.String())
	assert.True(t, delta.Failed.Terminal())
	assert.False(t, delta.Running.Terminal())
}

// ------------------------------------------------------------------------
// 2. Values.
// ------------------------------------------------------------------------

func TestExecute_StarCentreHasLargestDelta(t *testing.T) {
	// Star(5): centre 1, leaves 2..5, unit costs and areas, A = 5 throughout.
	// PC(G)       = (5 + 8·½ + 12·¼) / 25  = 0.48
	// PC(G − 1)   = 4 / 25                  = 0.16
	// PC(G − leaf)= (4 + 6·½ + 6·¼) / 25    = 0.34
	g := star(t, 5)
	rec := &recorder{}
	task, err := delta.NewTask(pool(t, 2), delta.Difference, delta.WithObserver(rec))
	require.NoError(t, err)

	res, err := task.Execute(context.Background(), g, launcher(t, pc(t), true), 2)
	require.NoError(t, err)
	assert.Equal(t, delta.Completed, res.State)
	assert.Equal(t, delta.Completed, task.State())
	assert.Equal(t, task.ID, res.Task)
	assert.Equal(t, pcStar, res.Metric)
	assert.InDelta(t, 0.48, res.Base.Value(), eps)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, res.IDs())
	assert.Empty(t, res.FailedIDs())
	assert.NoError(t, res.Err())

	assert.InDelta(t, 0.32, res.Deltas[1].Value(), eps)
	for _, leaf := range []int{2, 3, 4, 5} {
		assert.InDelta(t, 0.14, res.Deltas[leaf].Value(), eps)
	}

	rank, err := res.Ranking("")
	require.NoError(t, err)
	assert.Equal(t, 1, rank[0].ID)
	assert.Equal(t, []int{2, 3, 4, 5}, []int{rank[1].ID, rank[2].ID, rank[3].ID, rank[4].ID})
	_, err = res.Ranking("nope")
	assert.ErrorIs(t, err, metric.ErrInvalidParameter)

	assert.Equal(t, map[string]int{delta.BatchCompleted: 5}, rec.batches)
	assert.Equal(t, []string{"completed"}, rec.states)
}

func TestExecute_Ratio(t *testing.T) {
	task, err := delta.NewTask(pool(t, 1), delta.Ratio)
	require.NoError(t, err)

	res, err := task.Execute(context.Background(), star(t, 5), launcher(t, pc(t), true), 10)
	require.NoError(t, err)
	assert.InDelta(t, 0.32/0.48, res.Deltas[1].Value(), eps)
}

func TestExecute_RemovalNeverRaisesPC(t *testing.T) {
	// Patch 3 is isolated; 1 and 2 share a link. Every removal loses habitat
	// and the bigger patch loses more.
	g, err := core.Build(
		[]core.Patch{{ID: 1, Area: 10}, {ID: 2, Area: 1}, {ID: 3, Area: 5}},
		[]core.Link{{From: 1, To: 2, Cost: 100}},
		core.DefaultCostDefinition())
	require.NoError(t, err)
	m, err := metric.NewGlobal("PC_d1000_p0.05_beta1")
	require.NoError(t, err)
	task, err := delta.NewTask(pool(t, 2), delta.Difference)
	require.NoError(t, err)

	res, err := task.Execute(context.Background(), g, launcher(t, m, true), 1)
	require.NoError(t, err)
	for _, id := range g.IDs() {
		assert.GreaterOrEqual(t, res.Deltas[id].Value(), 0.0, "patch %d", id)
	}

	rank, err := res.Ranking("")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2}, []int{rank[0].ID, rank[1].ID, rank[2].ID})

	// Isolated patch 3 only takes its own term 5² / 16².
	assert.InDelta(t, 25.0/256, res.Deltas[3].Value(), eps)
}

func TestExecute_ConsistentWithRemoval(t *testing.T) {
	g, err := builder.BuildLandscape(core.DefaultCostDefinition(),
		[]builder.BuilderOption{builder.WithSeed(7), builder.WithCostFn(builder.UniformCostFn(0.5, 3))},
		builder.RandomSparse(14, 0.25))
	require.NoError(t, err)

	for _, detail := range []string{"PC_d2_p0.3_beta1", "IIC_beta1", "H", "SumDg"} {
		for _, all := range []bool{true, false} {
			m, err := metric.NewGlobal(detail)
			require.NoError(t, err)
			task, err := delta.NewTask(pool(t, 4), delta.Difference)
			require.NoError(t, err)

			res, err := task.Execute(context.Background(), g, launcher(t, m, all), 3)
			require.NoError(t, err, detail)
			require.Len(t, res.Deltas, g.Order())

			for _, id := range g.IDs() {
				sub, err := g.WithoutPatch(id)
				require.NoError(t, err)
				want, err := m.CalcMetric(context.Background(), sub,
					metric.CalcOptions{AllComponents: all, Landscape: g.TotalCapacity()})
				require.NoError(t, err)
				assert.InDelta(t, want.Value(), res.Base.Value()-res.Deltas[id].Value(), 1e-9,
					"%s all=%v patch %d", detail, all, id)
			}
		}
	}
}

func TestExecute_BatchSizeDoesNotChangeResults(t *testing.T) {
	g := star(t, 12)
	var first map[int]metric.Result
	for _, size := range []int{1, 5, 12, 100} {
		task, err := delta.NewTask(pool(t, 4), delta.Difference)
		require.NoError(t, err)
		res, err := task.Execute(context.Background(), g, launcher(t, pc(t), false), size)
		require.NoError(t, err)
		if first == nil {
			first = res.Deltas
			continue
		}
		assert.Equal(t, first, res.Deltas, "batch size %d", size)
	}
}

func TestResult_Store(t *testing.T) {
	g := star(t, 3).WithName("star")
	task, err := delta.NewTask(pool(t, 1), delta.Difference)
	require.NoError(t, err)
	res, err := task.Execute(context.Background(), g, launcher(t, pc(t), true), 1)
	require.NoError(t, err)

	tab := metric.NewTable()
	res.Store(tab)
	assert.Equal(t, 4, tab.Len())
	_, ok := tab.Get(metric.GlobalKey(pcStar, "star"))
	assert.True(t, ok)
	row, ok := tab.Get(metric.Key{Metric: "ddifference_" + pcStar, Graph: "star", Node: 1})
	require.True(t, ok)
	assert.Equal(t, res.Deltas[1], row)
}

// ------------------------------------------------------------------------
// 3. Failures.
// ------------------------------------------------------------------------

func TestExecute_PartialFailure(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{}
	task, err := delta.NewTask(pool(t, 2), delta.Difference, delta.WithObserver(rec))
	require.NoError(t, err)

	// Batches [1 2] [3 4] [5]; removing patch 3 fails.
	m := &failing{GlobalMetric: pc(t), missing: 3, err: boom}
	res, err := task.Execute(context.Background(), star(t, 5), launcher(t, m, true), 2)
	require.Error(t, err)
	require.NotNil(t, res)

	var pf *delta.PartialFailureError
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, []int{3, 4}, pf.Failed)
	assert.ErrorIs(t, err, boom)
	var be *delta.BatchError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, []int{3, 4}, be.Nodes)
	assert.False(t, be.Cancelled)

	assert.Equal(t, delta.PartiallyFailed, res.State)
	assert.Equal(t, delta.PartiallyFailed, task.State())
	assert.Equal(t, []int{1, 2, 5}, res.IDs())
	assert.Equal(t, []int{3, 4}, res.FailedIDs())
	assert.InDelta(t, 0.32, res.Deltas[1].Value(), eps, "sibling batches stay valid")

	assert.Equal(t, 3, rec.batches[delta.BatchCompleted])
	assert.Equal(t, 2, rec.batches[delta.BatchFailed])
	assert.Equal(t, []string{"partially_failed"}, rec.states)
}

func TestExecute_BaselineFailure(t *testing.T) {
	boom := errors.New("boom")
	task, err := delta.NewTask(pool(t, 1), delta.Difference)
	require.NoError(t, err)

	res, err := task.Execute(context.Background(), star(t, 4),
		launcher(t, &failing{GlobalMetric: pc(t), err: boom}, true), 2)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, delta.ErrComputationFailure)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, delta.Failed, task.State())
}

func TestExecute_CancelledContextDropsBatches(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	task, err := delta.NewTask(pool(t, 2), delta.Difference)
	require.NoError(t, err)

	m := &cancelAfterFirst{GlobalMetric: pc(t), once: &sync.Once{}, cancel: cancel}
	res, err := task.Execute(ctx, star(t, 5), launcher(t, m, true), 2)
	require.NotNil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, delta.PartiallyFailed, res.State)
	assert.Empty(t, res.Deltas)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, res.FailedIDs())
	for _, b := range res.Failures {
		assert.True(t, b.Cancelled)
	}
	assert.InDelta(t, 0.48, res.Base.Value(), eps)
}

func TestExecute_CancelledReporterDropsBatches(t *testing.T) {
	stop := &progress.Canceller{}
	ctx := progress.WithReporter(context.Background(), stop)
	task, err := delta.NewTask(pool(t, 2), delta.Difference)
	require.NoError(t, err)

	m := &cancelAfterFirst{GlobalMetric: pc(t), once: &sync.Once{}, cancel: stop.Cancel}
	res, err := task.Execute(ctx, star(t, 4), launcher(t, m, true), 1)
	require.NotNil(t, res)
	assert.ErrorIs(t, err, progress.ErrCancelled)
	assert.Len(t, res.Failures, 4)
}

func TestExecute_ClosedPool(t *testing.T) {
	p, err := executor.New(1)
	require.NoError(t, err)
	p.Close()
	task, err := delta.NewTask(p, delta.Difference)
	require.NoError(t, err)

	res, err := task.Execute(context.Background(), star(t, 3), launcher(t, pc(t), true), 1)
	assert.ErrorIs(t, err, executor.ErrClosed)
	assert.Equal(t, []int{1, 2, 3}, res.FailedIDs())
}

func TestMode_ZeroBaseline(t *testing.T) {
	// GD of an edgeless graph is zero with or without any patch.
	g, err := core.Build([]core.Patch{{ID: 1, Area: 1}, {ID: 2, Area: 1}}, nil, core.DefaultCostDefinition())
	require.NoError(t, err)
	m, err := metric.NewGlobal("GD")
	require.NoError(t, err)
	task, err := delta.NewTask(pool(t, 1), delta.Ratio)
	require.NoError(t, err)

	res, err := task.Execute(context.Background(), g, launcher(t, m, true), 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Base.Value())
	for _, id := range []int{1, 2} {
		v := res.Deltas[id].Value()
		assert.False(t, math.IsNaN(v))
		assert.Equal(t, 0.0, v)
	}
}
