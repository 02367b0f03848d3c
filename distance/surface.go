// File: surface.go
// Role: Least-cost matrices over a raw cost surface.

package distance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/patchnet/gridgraph"
	"github.com/katalvlaran/patchnet/progress"
)

// ComputeSurfaceMatrix returns the least-cost matrix between points over a
// cost surface, for points that are not graph nodes. Each point is located in
// the cell containing it; a point outside the surface is ErrOutsideSurface.
// A source on a barrier cell reaches nothing but itself.
func (e *Engine) ComputeSurfaceMatrix(ctx context.Context, points []Point, s *gridgraph.CostSurface) (*Matrix, error) {
	// 1) Validate and locate
	if s == nil {
		return nil, ErrNilGraph
	}
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	cells := make([]int, len(points))
	for i, p := range points {
		idx, ok := s.CellOf(p.X, p.Y)
		if !ok {
			return nil, fmt.Errorf("%w: point %q at (%g,%g)", ErrOutsideSurface, p.ID, p.X, p.Y)
		}
		cells[i] = idx
	}

	m := NewMatrix(LeastCost, pointIDs(points), pointIDs(points))
	e.log().Debug("surface matrix started",
		zap.Int("points", len(points)),
		zap.Int("cells", s.Len()),
		zap.Stringer("conn", s.Options().Conn),
	)

	// 2) One grid search per source
	rep := progress.FromContext(ctx)
	ctr := progress.NewCounter(rep, len(points))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(e.limit())
	for i := range points {
		i := i
		eg.Go(func() error {
			if err := progress.Check(gctx, rep); err != nil {
				return err
			}
			t0 := time.Now()
			costs, err := s.LeastCost(gctx, cells[i], cells)
			switch {
			case errors.Is(err, gridgraph.ErrBarrier):
				// row stays Unreachable
			case err != nil:
				return fmt.Errorf("distance: source %q: %w", points[i].ID, err)
			default:
				copy(m.row(i), costs)
			}
			for j := range points {
				if points[i].ID == points[j].ID {
					m.Set(i, j, 0, 0)
				}
			}
			if e.Observer != nil {
				e.Observer.ObserveMatrixRow("surface", time.Since(t0))
			}
			ctr.Inc()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return m, nil
}
