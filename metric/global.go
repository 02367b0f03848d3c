// File: global.go
// Role: Global metrics of the catalog.
// Conventions:
//   - Pairwise sums run over ordered pairs (i, j), i = j included, unless the
//     metric is documented as a symmetric half-sum.
//   - Unreachable pairs contribute nothing.
//   - Normalised metrics divide by the squared total capacity of the graph
//     passed to CalcMetric, before component restriction.

package metric

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/patchnet/bfs"
	"github.com/katalvlaran/patchnet/core"
	"github.com/katalvlaran/patchnet/distance"
	"github.com/katalvlaran/patchnet/modularity"
	"github.com/katalvlaran/patchnet/progress"
)

// PC is the probability of connectivity:
// Σ_i Σ_j (c_i c_j)^β e^(−α d_ij) / A², A from CalcOptions.Landscape.
type PC struct{ decayed }

// NewPC returns PC with DefaultDecayParams.
func NewPC() *PC {
	return &PC{newDecayed("Probability of connectivity", "PC")}
}

func (m *PC) CloneGlobal() GlobalMetric {
	c := *m

	return &c
}

// CalcMetric implements GlobalMetric.
func (m *PC) CalcMetric(ctx context.Context, g *core.Graph, opts CalcOptions) (Result, error) {
	h, err := scope(g, opts)
	if err != nil {
		return Result{}, err
	}
	sum, err := decaySum(ctx, h, opts, m.DecayParams, nil)
	if err != nil {
		return Result{}, err
	}

	return NewResult(m.results, normalise(sum, g, opts)), nil
}

// EC is the equivalent connectivity: the square root of the unnormalised PC sum.
type EC struct{ decayed }

// NewEC returns EC with DefaultDecayParams.
func NewEC() *EC {
	return &EC{newDecayed("Equivalent connectivity", "EC")}
}

func (m *EC) CloneGlobal() GlobalMetric {
	c := *m

	return &c
}

// CalcMetric implements GlobalMetric.
func (m *EC) CalcMetric(ctx context.Context, g *core.Graph, opts CalcOptions) (Result, error) {
	h, err := scope(g, opts)
	if err != nil {
		return Result{}, err
	}
	sum, err := decaySum(ctx, h, opts, m.DecayParams, nil)
	if err != nil {
		return Result{}, err
	}

	return NewResult(m.results, math.Sqrt(sum)), nil
}

// PCIntra is PC restricted to pairs inside the same cluster.
type PCIntra struct {
	decayed
	membership map[int]int
}

// NewPCIntra returns PCintra with DefaultDecayParams and no partition.
func NewPCIntra() *PCIntra {
	return &PCIntra{decayed: newDecayed("Intra-cluster probability of connectivity", "PCintra")}
}

func (m *PCIntra) CloneGlobal() GlobalMetric {
	c := *m

	return &c
}

// SetPartition implements ClusterAware. The membership is captured now;
// later changes to p are not seen.
func (m *PCIntra) SetPartition(p *modularity.Partition) { m.membership = membershipOf(p) }

// CalcMetric implements GlobalMetric.
func (m *PCIntra) CalcMetric(ctx context.Context, g *core.Graph, opts CalcOptions) (Result, error) {
	if m.membership == nil {
		return Result{}, ErrNoPartition
	}
	h, err := scope(g, opts)
	if err != nil {
		return Result{}, err
	}
	cluster := make([]int, h.Order())
	for i := range cluster {
		id := h.PatchAt(i).ID
		c, ok := m.membership[id]
		if !ok {
			return Result{}, fmt.Errorf("%w: patch %d has no cluster", ErrInvalidParameter, id)
		}
		cluster[i] = c
	}
	sum, err := decaySum(ctx, h, opts, m.DecayParams, func(i, j int) bool { return cluster[i] == cluster[j] })
	if err != nil {
		return Result{}, err
	}

	return NewResult(m.results, normalise(sum, g, opts)), nil
}

// IIC is the integral index of connectivity:
// Σ_i Σ_j (c_i c_j)^β / (1 + nl_ij) / A², nl being the hop count.
type IIC struct {
	info
	BetaParams
}

// NewIIC returns IIC with beta = 1.
func NewIIC() *IIC {
	return &IIC{info: info{name: "Integral index of connectivity", short: "IIC", results: []string{"IIC"}}, BetaParams: BetaParams{Beta: 1}}
}

func (m *IIC) HasParams() bool { return true }

func (m *IIC) DetailName() string { return encodeDetail(m.short, m.params()) }

func (m *IIC) SetParamsFromDetailName(name string) error {
	return decodeDetail(m.short, name, m.params(), func() error { return checkStruct(m.BetaParams) })
}

func (m *IIC) CloneGlobal() GlobalMetric {
	c := *m

	return &c
}

// CalcMetric implements GlobalMetric.
func (m *IIC) CalcMetric(ctx context.Context, g *core.Graph, opts CalcOptions) (Result, error) {
	h, err := scope(g, opts)
	if err != nil {
		return Result{}, err
	}
	var sum float64
	err = eachHops(ctx, h, opts, func(i int, hops []int) {
		for j, nl := range hops {
			if nl >= 0 {
				sum += capWeight(h, i, j, m.Beta) / float64(1+nl)
			}
		}
	})
	if err != nil {
		return Result{}, err
	}

	return NewResult(m.results, normalise(sum, g, opts)), nil
}

// Harary is the Harary index ½ Σ_{i≠j} 1/nl_ij, a symmetric half-sum.
type Harary struct{ plain }

// NewHarary returns the H metric.
func NewHarary() *Harary { return &Harary{newPlain("Harary index", "H")} }

func (m *Harary) CloneGlobal() GlobalMetric {
	c := *m

	return &c
}

// CalcMetric implements GlobalMetric.
func (m *Harary) CalcMetric(ctx context.Context, g *core.Graph, opts CalcOptions) (Result, error) {
	h, err := scope(g, opts)
	if err != nil {
		return Result{}, err
	}
	var sum float64
	err = eachHops(ctx, h, opts, func(i int, hops []int) {
		for j := i + 1; j < len(hops); j++ {
			if hops[j] > 0 {
				sum += 1 / float64(hops[j])
			}
		}
	})
	if err != nil {
		return Result{}, err
	}

	return NewResult(m.results, sum), nil
}

// NC is the number of components.
type NC struct{ plain }

// NewNC returns the NC metric.
func NewNC() *NC { return &NC{newPlain("Number of components", "NC")} }

func (m *NC) CloneGlobal() GlobalMetric {
	c := *m

	return &c
}

// CalcMetric implements GlobalMetric.
func (m *NC) CalcMetric(_ context.Context, g *core.Graph, opts CalcOptions) (Result, error) {
	h, err := scope(g, opts)
	if err != nil {
		return Result{}, err
	}

	return NewResult(m.results, float64(h.ComponentCount())), nil
}

// GD is the graph diameter: the largest finite least-cost distance.
type GD struct{ plain }

// NewGD returns the GD metric.
func NewGD() *GD { return &GD{newPlain("Graph diameter", "GD")} }

func (m *GD) CloneGlobal() GlobalMetric {
	c := *m

	return &c
}

// CalcMetric implements GlobalMetric.
func (m *GD) CalcMetric(ctx context.Context, g *core.Graph, opts CalcOptions) (Result, error) {
	h, err := scope(g, opts)
	if err != nil {
		return Result{}, err
	}
	if h.Order() == 0 {
		return NewResult(m.results, 0), nil
	}
	mat, err := leastCost(ctx, h, opts)
	if err != nil {
		return Result{}, err
	}
	var gd float64
	for i := 0; i < h.Order(); i++ {
		for j := i + 1; j < h.Order(); j++ {
			if d := mat.At(i, j, 0); !distance.IsUnreachable(d) && d > gd {
				gd = d
			}
		}
	}

	return NewResult(m.results, gd), nil
}

// Q is the modularity of a given partition on the evaluated graph, with one
// unit of weight per link. Patches absent from the graph are ignored.
type Q struct {
	plain
	membership map[int]int
}

// NewQ returns the Q metric with no partition.
func NewQ() *Q { return &Q{plain: newPlain("Modularity", "Q")} }

func (m *Q) CloneGlobal() GlobalMetric {
	c := *m

	return &c
}

// SetPartition implements ClusterAware.
func (m *Q) SetPartition(p *modularity.Partition) { m.membership = membershipOf(p) }

// CalcMetric implements GlobalMetric.
func (m *Q) CalcMetric(_ context.Context, g *core.Graph, opts CalcOptions) (Result, error) {
	if m.membership == nil {
		return Result{}, ErrNoPartition
	}
	h, err := scope(g, opts)
	if err != nil {
		return Result{}, err
	}
	q, err := modularity.Evaluate(h, m.membership, modularity.CountWeighter{})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	return NewResult(m.results, q), nil
}

func membershipOf(p *modularity.Partition) map[int]int {
	if p == nil {
		return nil
	}

	return p.Membership()
}

// eachHops runs a BFS from every patch of g and hands the hop counts to fn,
// polling ctx and the reporter between sources.
func eachHops(ctx context.Context, g *core.Graph, opts CalcOptions, fn func(i int, hops []int)) error {
	rep := opts.Progress
	if rep == nil {
		rep = progress.Nop{}
	}
	ctr := progress.NewCounter(rep, g.Order())
	for i := 0; i < g.Order(); i++ {
		if err := progress.Check(ctx, rep); err != nil {
			return err
		}
		res, err := bfs.FromIndex(g, i, bfs.WithContext(ctx))
		if err != nil {
			return err
		}
		fn(i, res.Hops)
		ctr.Inc()
	}

	return nil
}
