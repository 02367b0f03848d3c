// File: task.go
// Role: Batched, parallel node-removal re-evaluation of a global metric.
// Determinism:
//   - Batches are cut in ascending patch id; results do not depend on the
//     order in which workers finish.
// Concurrency:
//   - The source graph is shared read-only. Every batch owns its launcher clone
//     and derived graphs; only the accumulator is shared, under a mutex.

package delta

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/patchnet/core"
	"github.com/katalvlaran/patchnet/executor"
	"github.com/katalvlaran/patchnet/metric"
	"github.com/katalvlaran/patchnet/progress"
)

// Batch statuses passed to Observer.ObserveBatch.
const (
	BatchCompleted = "completed"
	BatchFailed    = "failed"
	BatchCancelled = "cancelled"
)

// Observer receives batch and task outcomes.
type Observer interface {
	ObserveBatch(status string, nodes int, elapsed time.Duration)
	ObserveTask(state string)
}

// Option configures NewTask.
type Option func(*Task)

// WithLogger sets the task logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *Task) {
		if l != nil {
			t.log = l
		}
	}
}

// WithObserver sets the task observer.
func WithObserver(o Observer) Option {
	return func(t *Task) { t.obs = o }
}

// WithID overrides the generated task id.
func WithID(id uuid.UUID) Option {
	return func(t *Task) { t.ID = id }
}

// Task is a single delta-metric run. A Task executes once.
type Task struct {
	ID   uuid.UUID
	Mode Mode

	pool *executor.Pool
	log  *zap.Logger
	obs  Observer

	mu    sync.Mutex
	state State
}

// NewTask returns a Pending task that will run its batches on pool.
func NewTask(pool *executor.Pool, mode Mode, opts ...Option) (*Task, error) {
	if pool == nil {
		return nil, ErrNilPool
	}
	if mode != Difference && mode != Ratio {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMode, mode)
	}
	t := &Task{ID: uuid.New(), Mode: mode, pool: pool, log: zap.NewNop()}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// State returns the current lifecycle state.
func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state
}

func (t *Task) setState(s State) {
	t.mu.Lock()
	t.state = s
	t.mu.Unlock()
	if s.Terminal() && t.obs != nil {
		t.obs.ObserveTask(s.String())
	}
}

// start moves Pending to Running exactly once.
func (t *Task) start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Pending {
		return fmt.Errorf("%w: %s", ErrAlreadyStarted, t.state)
	}
	t.state = Running

	return nil
}

// Execute computes the delta of every patch of g for the metric run by l.
//
// Steps:
//  1. Validate arguments (synchronous, state stays Pending).
//  2. Compute the baseline on g; failure ends in Failed with ErrComputationFailure.
//  3. Dispatch one work item per batch until ctx or the progress reporter is
//     cancelled; undispatched batches are recorded as cancelled.
//  4. Wait for every dispatched batch and merge the outcomes.
//
// When some batch failed the returned Result is still valid for every other
// patch and the error is the *PartialFailureError of Result.Err.
func (t *Task) Execute(ctx context.Context, g *core.Graph, l *metric.Launcher, batchSize int) (*Result, error) {
	// 1) Validate
	switch {
	case g == nil:
		return nil, ErrNilGraph
	case l == nil || l.Metric == nil:
		return nil, ErrNilLauncher
	case batchSize < 1:
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchSize, batchSize)
	}
	if err := t.start(); err != nil {
		return nil, err
	}
	detail := l.Metric.DetailName()
	log := t.log.With(zap.String("task", t.ID.String()), zap.String("metric", detail),
		zap.String("graph", g.Name()))
	begin := time.Now()

	// 2) Baseline, with the normaliser pinned to g for every removal.
	l = l.Anchored(g)
	rep := progress.FromContext(ctx)
	base, err := l.Clone().Launch(ctx, g)
	if err != nil {
		t.setState(Failed)
		log.Error("baseline failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrComputationFailure, err)
	}

	// 3) Dispatch
	batches := split(g.IDs(), batchSize)
	log.Info("delta task started", zap.Int("patches", g.Order()), zap.Int("batches", len(batches)),
		zap.Stringer("mode", t.Mode))
	acc := newAccumulator(g.Order())
	counter := progress.NewCounter(rep, g.Order())
	// Dispatched batches are not preempted: they see neither ctx cancellation
	// nor the caller's reporter.
	workCtx := progress.WithReporter(context.WithoutCancel(ctx), progress.Nop{})

	type pending struct {
		nodes []int
		h     *executor.Handle
	}
	var (
		inflight []pending
		failures []*BatchError
	)
	for i, nodes := range batches {
		if err := progress.Check(ctx, rep); err != nil {
			failures = append(failures, t.drop(batches[i:], err)...)
			break
		}
		h, err := t.pool.Submit(ctx, t.batchWork(workCtx, g, l.Clone(), base, nodes, acc, counter))
		if err != nil {
			failures = append(failures, t.drop(batches[i:], err)...)
			break
		}
		inflight = append(inflight, pending{nodes: nodes, h: h})
	}

	// 4) Collect
	for _, p := range inflight {
		<-p.h.Done()
		if err := p.h.Err(); err != nil {
			var be *BatchError
			if !errors.As(err, &be) {
				be = &BatchError{Nodes: p.nodes, Err: err}
			}
			log.Warn("batch failed", zap.Int("first", p.nodes[0]), zap.Int("size", len(p.nodes)), zap.Error(err))
			failures = append(failures, be)
		}
	}
	sort.Slice(failures, func(a, b int) bool { return failures[a].Nodes[0] < failures[b].Nodes[0] })

	res := &Result{
		Task:     t.ID,
		Metric:   detail,
		Graph:    g.Name(),
		Mode:     t.Mode,
		Base:     base,
		Deltas:   acc.values(),
		Failures: failures,
	}
	res.State = Completed
	if len(failures) > 0 {
		res.State = PartiallyFailed
	}
	t.setState(res.State)
	log.Info("delta task finished", zap.Stringer("state", res.State), zap.Int("evaluated", len(res.Deltas)),
		zap.Int("failedBatches", len(failures)), zap.Duration("elapsed", time.Since(begin)))

	return res, res.Err()
}

// batchWork evaluates every patch of nodes on its own derived graph, under
// ctx rather than the submission context. The batch commits only when all
// its patches succeeded.
func (t *Task) batchWork(ctx context.Context, g *core.Graph, l *metric.Launcher, base metric.Result, nodes []int,
	acc *accumulator, counter *progress.Counter) executor.Work {
	return func(context.Context) error {
		begin := time.Now()
		out := make(map[int]metric.Result, len(nodes))
		for _, id := range nodes {
			sub, err := g.WithoutPatch(id)
			if err != nil {
				return t.fail(nodes, id, err, begin)
			}
			r, err := l.Launch(ctx, sub)
			if err != nil {
				return t.fail(nodes, id, err, begin)
			}
			out[id] = t.compare(base, r)
		}
		acc.commit(out)
		for range nodes {
			counter.Inc()
		}
		if t.obs != nil {
			t.obs.ObserveBatch(BatchCompleted, len(nodes), time.Since(begin))
		}
		t.log.Debug("batch done", zap.String("task", t.ID.String()), zap.Int("first", nodes[0]),
			zap.Int("size", len(nodes)), zap.Duration("elapsed", time.Since(begin)))

		return nil
	}
}

func (t *Task) fail(nodes []int, id int, err error, begin time.Time) error {
	if t.obs != nil {
		t.obs.ObserveBatch(BatchFailed, len(nodes), time.Since(begin))
	}

	return &BatchError{Nodes: nodes, Err: fmt.Errorf("patch %d: %w", id, err)}
}

// drop records never-dispatched batches.
func (t *Task) drop(batches [][]int, err error) []*BatchError {
	out := make([]*BatchError, len(batches))
	for i, nodes := range batches {
		out[i] = &BatchError{Nodes: nodes, Err: err, Cancelled: true}
		if t.obs != nil {
			t.obs.ObserveBatch(BatchCancelled, len(nodes), 0)
		}
	}

	return out
}

// compare applies the task mode to every value of r against base.
func (t *Task) compare(base, r metric.Result) metric.Result {
	vals := make([]float64, len(base.Values))
	for i, b := range base.Values {
		v, ok := r.Get(base.Names[i])
		if !ok {
			v = math.NaN()
		}
		vals[i] = t.Mode.apply(b, v)
	}

	return metric.NewResult(base.Names, vals...)
}

// split cuts ids into consecutive batches of at most size ids.
func split(ids []int, size int) [][]int {
	out := make([][]int, 0, (len(ids)+size-1)/size)
	for lo := 0; lo < len(ids); lo += size {
		hi := lo + size
		if hi > len(ids) {
			hi = len(ids)
		}
		out = append(out, ids[lo:hi:hi])
	}

	return out
}

// accumulator is the union of committed batch results.
type accumulator struct {
	mu   sync.Mutex
	rows map[int]metric.Result
}

func newAccumulator(n int) *accumulator {
	return &accumulator{rows: make(map[int]metric.Result, n)}
}

// commit adds rows; a patch already present keeps its first value.
func (a *accumulator) commit(rows map[int]metric.Result) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for id, r := range rows {
		if _, dup := a.rows[id]; dup {
			continue
		}
		a.rows[id] = r
	}
}

func (a *accumulator) values() map[int]metric.Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[int]metric.Result, len(a.rows))
	for id, r := range a.rows {
		out[id] = r
	}

	return out
}
