// File: base.go
// Role: Shared naming, scoping and distance helpers for the catalog metrics.

package metric

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/patchnet/core"
	"github.com/katalvlaran/patchnet/distance"
	"github.com/katalvlaran/patchnet/progress"
)

// info carries the fixed identity of a metric.
type info struct {
	name    string
	short   string
	results []string
}

func (i info) Name() string { return i.name }
func (i info) ShortName() string { return i.short }
func (i info) ResultNames() []string { return append([]string(nil), i.results...) }

// plain is the parameterless half of a metric: its detail name is its short
// name.
type plain struct{ info }

func newPlain(name, short string) plain {
	return plain{info{name: name, short: short, results: []string{short}}}
}

func (plain) HasParams() bool { return false }

func (p plain) DetailName() string { return p.short }

func (p plain) SetParamsFromDetailName(name string) error {
	return decodeDetail(p.short, name, nil, nil)
}

// decayed is the parameter half of the distance-decay metrics (d, p, beta).
type decayed struct {
	info
	DecayParams
}

func newDecayed(name, short string) decayed {
	return decayed{info: info{name: name, short: short, results: []string{short}}, DecayParams: DefaultDecayParams()}
}

func (decayed) HasParams() bool { return true }

func (d *decayed) DetailName() string { return encodeDetail(d.short, d.params()) }

func (d *decayed) SetParamsFromDetailName(name string) error {
	return decodeDetail(d.short, name, d.params(), func() error { return checkStruct(d.DecayParams) })
}

// scope returns the graph a global metric evaluates: g itself, or its
// largest component when opts.AllComponents is false.
func scope(g *core.Graph, opts CalcOptions) (*core.Graph, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if opts.AllComponents || g.ComponentCount() <= 1 {
		return g, nil
	}

	return g.ComponentSubgraph(g.LargestComponent())
}

// withProgress attaches opts.Progress to ctx.
func withProgress(ctx context.Context, opts CalcOptions) context.Context {
	if opts.Progress == nil {
		return ctx
	}

	return progress.WithReporter(ctx, opts.Progress)
}

// leastCost returns the all-patch least-cost matrix of g. Metrics run inside
// already parallel callers, so the engine uses one worker.
func leastCost(ctx context.Context, g *core.Graph, opts CalcOptions) (*distance.Matrix, error) {
	e := distance.NewEngine(zap.NewNop(), distance.WithParallelism(1))
	m, err := e.ComputeGraphMatrix(withProgress(ctx, opts), g, distance.LeastCost, 0)
	if err != nil {
		return nil, fmt.Errorf("metric: least-cost matrix: %w", err)
	}

	return m, nil
}

// capWeight returns (c_i·c_j)^β for dense indices.
func capWeight(g *core.Graph, i, j int, beta float64) float64 {
	return math.Pow(g.PatchAt(i).Capacity*g.PatchAt(j).Capacity, beta)
}

// normalise divides v by A², A being opts.Landscape when set and the total
// capacity of g otherwise. Returns 0 when A is 0.
func normalise(v float64, g *core.Graph, opts CalcOptions) float64 {
	a := opts.Landscape
	if !(a > 0) {
		a = g.TotalCapacity()
	}
	if a <= 0 {
		return 0
	}

	return v / (a * a)
}

// decaySum is Σ_i Σ_j (c_i c_j)^β e^(−α d_ij) over ordered pairs, i = j
// included, restricted to pairs accepted by keep (nil keeps all).
func decaySum(ctx context.Context, g *core.Graph, opts CalcOptions, dp DecayParams, keep func(i, j int) bool) (float64, error) {
	if g.Order() == 0 {
		return 0, nil
	}
	m, err := leastCost(ctx, g, opts)
	if err != nil {
		return 0, err
	}
	alpha := dp.Alpha()
	var sum float64
	for i := 0; i < g.Order(); i++ {
		for j := 0; j < g.Order(); j++ {
			d := m.At(i, j, 0)
			if distance.IsUnreachable(d) || (keep != nil && !keep(i, j)) {
				continue
			}
			sum += capWeight(g, i, j, dp.Beta) * math.Exp(-alpha*d)
		}
	}

	return sum, nil
}
