// File: launcher.go
// Role: A global metric bound to its run options, cloned per worker.

package metric

import (
	"context"
	"fmt"

	"github.com/katalvlaran/patchnet/core"
	"github.com/katalvlaran/patchnet/progress"
)

// Launcher runs one configured global metric. A Launcher is not safe for
// concurrent use; give every worker its own Clone.
type Launcher struct {
	Metric        GlobalMetric
	AllComponents bool
	// Landscape is passed as CalcOptions.Landscape; zero keeps the per-graph
	// normaliser.
	Landscape float64
}

// NewLauncher validates m and returns a launcher for it.
func NewLauncher(m GlobalMetric, allComponents bool) (*Launcher, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil metric", ErrInvalidParameter)
	}

	return &Launcher{Metric: m, AllComponents: allComponents}, nil
}

// Clone returns a launcher over an independent copy of the metric.
func (l *Launcher) Clone() *Launcher {
	return &Launcher{Metric: l.Metric.CloneGlobal(), AllComponents: l.AllComponents, Landscape: l.Landscape}
}

// Anchored returns a clone whose Landscape is the total capacity of g,
// unless one is already set.
func (l *Launcher) Anchored(g *core.Graph) *Launcher {
	c := l.Clone()
	if !(c.Landscape > 0) && g != nil {
		c.Landscape = g.TotalCapacity()
	}

	return c
}

// Key returns the table key of a result of this launcher on g.
func (l *Launcher) Key(g *core.Graph) Key { return GlobalKey(l.Metric.DetailName(), g.Name()) }

// Launch evaluates the metric on g. The progress reporter carried by ctx, if
// any, is handed to the metric.
func (l *Launcher) Launch(ctx context.Context, g *core.Graph) (Result, error) {
	if g == nil {
		return Result{}, ErrNilGraph
	}
	opts := CalcOptions{AllComponents: l.AllComponents, Progress: progress.FromContext(ctx), Landscape: l.Landscape}

	return l.Metric.CalcMetric(ctx, g, opts)
}
