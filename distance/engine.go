// File: engine.go
// Role: Engine configuration and the concurrent per-source driver.
// Determinism:
//   - Every row is computed independently by a deterministic search, so the
//     matrix does not depend on scheduling.
// Concurrency:
//   - Rows run on an errgroup limited to Parallelism; each goroutine owns
//     exactly one row of the result.

package distance

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/patchnet/core"
	"github.com/katalvlaran/patchnet/progress"
)

// Engine computes distance matrices. The zero value is usable: Parallelism
// ≤ 0 means GOMAXPROCS, a nil Logger logs nothing, and AttachCostFactor 0
// makes attachment free. NewEngine sets AttachCostFactor to 1.
type Engine struct {
	Parallelism      int
	AttachCostFactor float64
	Logger           *zap.Logger
	Observer         RowObserver
}

// Option configures an Engine built by NewEngine.
type Option func(*Engine)

// WithParallelism caps the number of rows computed at once.
func WithParallelism(n int) Option { return func(e *Engine) { e.Parallelism = n } }

// WithAttachCostFactor sets the cost per unit of attachment length.
func WithAttachCostFactor(f float64) Option { return func(e *Engine) { e.AttachCostFactor = f } }

// WithObserver registers a per-row observer (e.g. a Prometheus collector).
func WithObserver(o RowObserver) Option { return func(e *Engine) { e.Observer = o } }

// NewEngine returns an Engine logging to log with attachment cost factor 1.
func NewEngine(log *zap.Logger, opts ...Option) *Engine {
	e := &Engine{AttachCostFactor: 1, Logger: log}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Engine) log() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}

	return e.Logger
}

func (e *Engine) limit() int {
	if e.Parallelism > 0 {
		return e.Parallelism
	}

	return runtime.GOMAXPROCS(0)
}

// ComputeMatrix returns the square matrix between points over g.
// It is ComputeBetween with the same set as sources and targets.
func (e *Engine) ComputeMatrix(ctx context.Context, points []Point, g *core.Graph, kind Kind, param float64) (*Matrix, error) {
	return e.ComputeBetween(ctx, points, points, g, kind, param)
}

// ComputeGraphMatrix returns the matrix between every pair of patches of g,
// with point IDs equal to the decimal patch IDs. No attachment is performed.
func (e *Engine) ComputeGraphMatrix(ctx context.Context, g *core.Graph, kind Kind, param float64) (*Matrix, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	return e.ComputeBetween(ctx, GraphPoints(g), GraphPoints(g), g, kind, param)
}

// GraphPoints returns one OnNode point per patch of g, in patch order.
func GraphPoints(g *core.Graph) []Point {
	pts := make([]Point, g.Order())
	for i := range pts {
		p := g.PatchAt(i)
		pts[i] = Point{ID: strconv.Itoa(p.ID), X: p.X, Y: p.Y, Node: p.ID, OnNode: true}
	}

	return pts
}

// ComputeBetween returns the matrix from every source point to every target
// point over g with the given distance kind. param is α for Flow and ignored
// for LeastCost. A point compared with itself (same ID) is at distance 0.
//
// Validation happens before any search starts:
//  1. g non-nil (ErrNilGraph), kind and param valid (ErrInvalidParameter).
//  2. both point sets non-empty (ErrNoPoints).
//  3. every point attachable (ErrUnknownPatch).
//
// Errors during the searches cancel the remaining rows; a reporter asking to
// stop yields progress.ErrCancelled.
func (e *Engine) ComputeBetween(ctx context.Context, sources, targets []Point, g *core.Graph, kind Kind, param float64) (*Matrix, error) {
	// 1) Validate
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := kind.validate(param); err != nil {
		return nil, err
	}
	if len(sources) == 0 || len(targets) == 0 || g.Order() == 0 {
		return nil, ErrNoPoints
	}
	src, err := e.attachAll(g, sources)
	if err != nil {
		return nil, err
	}
	dst, err := e.attachAll(g, targets)
	if err != nil {
		return nil, err
	}
	var search rowSearch
	switch kind {
	case LeastCost:
		search = leastCostRow
	case Flow:
		fm, err := newFlowModel(g, param)
		if err != nil {
			return nil, err
		}
		search = fm.row
	}

	// 2) Allocate
	m := NewMatrix(kind, pointIDs(sources), pointIDs(targets))
	e.log().Debug("distance matrix started",
		zap.Stringer("kind", kind),
		zap.Int("sources", len(sources)),
		zap.Int("targets", len(targets)),
		zap.Int("parallelism", e.limit()),
	)
	started := time.Now()

	// 3) One row per source
	rep := progress.FromContext(ctx)
	ctr := progress.NewCounter(rep, len(sources))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(e.limit())
	for i := range sources {
		i := i
		eg.Go(func() error {
			if err := progress.Check(gctx, rep); err != nil {
				return err
			}
			t0 := time.Now()
			if err := search(g, src[i], dst, m.row(i)); err != nil {
				return fmt.Errorf("distance: source %q: %w", sources[i].ID, err)
			}
			for j := range targets {
				if sources[i].ID == targets[j].ID {
					for k := 0; k < m.comps; k++ {
						m.Set(i, j, k, 0)
					}
				}
			}
			if e.Observer != nil {
				e.Observer.ObserveMatrixRow(kind.String(), time.Since(t0))
			}
			ctr.Inc()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		e.log().Debug("distance matrix aborted", zap.Error(err))
		return nil, err
	}
	e.log().Debug("distance matrix finished",
		zap.Stringer("kind", kind),
		zap.Duration("elapsed", time.Since(started)),
	)

	return m, nil
}

// rowSearch fills row (targets × components) for one attached source.
type rowSearch func(g *core.Graph, from attachment, to []attachment, row []float64) error

func pointIDs(ps []Point) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}

	return ids
}
