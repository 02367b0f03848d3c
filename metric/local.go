// File: local.go
// Role: Local metrics of the catalog and the sum-to-global adapter.

package metric

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/patchnet/core"
	"github.com/katalvlaran/patchnet/dijkstra"
	"github.com/katalvlaran/patchnet/progress"
)

// nodeIndex resolves a patch ID for a local metric.
func nodeIndex(g *core.Graph, node int) (int, error) {
	if g == nil {
		return 0, ErrNilGraph
	}
	i, ok := g.Index(node)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNodeNotFound, node)
	}

	return i, nil
}

// Degree is the number of neighbours of a patch.
type Degree struct{ plain }

// NewDegree returns the Dg metric.
func NewDegree() *Degree { return &Degree{newPlain("Degree", "Dg")} }

func (m *Degree) CloneLocal() LocalMetric {
	c := *m

	return &c
}

// CalcMetric implements LocalMetric.
func (m *Degree) CalcMetric(g *core.Graph, node int) (Result, error) {
	i, err := nodeIndex(g, node)
	if err != nil {
		return Result{}, err
	}

	return NewResult(m.results, float64(g.DegreeAt(i))), nil
}

// ClusteringCoefficient is the local clustering coefficient: links among the
// neighbours of a patch over k(k−1)/2. Zero below two neighbours.
type ClusteringCoefficient struct{ plain }

// NewClustering returns the CC metric.
func NewClusteringCoefficient() *ClusteringCoefficient {
	return &ClusteringCoefficient{newPlain("Clustering coefficient", "CC")}
}

func (m *ClusteringCoefficient) CloneLocal() LocalMetric {
	c := *m

	return &c
}

// CalcMetric implements LocalMetric.
func (m *ClusteringCoefficient) CalcMetric(g *core.Graph, node int) (Result, error) {
	i, err := nodeIndex(g, node)
	if err != nil {
		return Result{}, err
	}
	nb := g.NeighborsAt(i)
	k := len(nb)
	if k < 2 {
		return NewResult(m.results, 0), nil
	}
	var links int
	for a := 0; a < k; a++ {
		for b := a + 1; b < k; b++ {
			if _, _, ok := g.Edge(g.PatchAt(nb[a].To).ID, g.PatchAt(nb[b].To).ID); ok {
				links++
			}
		}
	}

	return NewResult(m.results, 2*float64(links)/float64(k*(k-1))), nil
}

// Flux is Σ_{j≠i} c_j^β e^(−α d_ij), the capacity reachable from a patch
// damped by least-cost distance.
type Flux struct{ decayed }

// NewFlux returns the F metric with DefaultDecayParams.
func NewFlux() *Flux { return &Flux{newDecayed("Flux", "F")} }

func (m *Flux) CloneLocal() LocalMetric {
	c := *m

	return &c
}

// CalcMetric implements LocalMetric.
func (m *Flux) CalcMetric(g *core.Graph, node int) (Result, error) {
	i, err := nodeIndex(g, node)
	if err != nil {
		return Result{}, err
	}
	res, err := dijkstra.FromIndex(g, i)
	if err != nil {
		return Result{}, err
	}
	alpha := m.Alpha()
	var f float64
	for j, d := range res.Dist {
		if j == i || !res.Reachable(j) {
			continue
		}
		f += math.Pow(g.PatchAt(j).Capacity, m.Beta) * math.Exp(-alpha*d)
	}

	return NewResult(m.results, f), nil
}

// Neighbourhood counts the other patches within least-cost distance R.
type Neighbourhood struct {
	info
	RadiusParams
}

// NewNeighbourhood returns the Nr metric with R = 1000.
func NewNeighbourhood() *Neighbourhood {
	return &Neighbourhood{
		info:         info{name: "Neighbourhood size", short: "Nr", results: []string{"Nr"}},
		RadiusParams: RadiusParams{R: 1000},
	}
}

func (m *Neighbourhood) HasParams() bool { return true }

func (m *Neighbourhood) DetailName() string { return encodeDetail(m.short, m.params()) }

func (m *Neighbourhood) SetParamsFromDetailName(name string) error {
	return decodeDetail(m.short, name, m.params(), func() error { return checkStruct(m.RadiusParams) })
}

func (m *Neighbourhood) CloneLocal() LocalMetric {
	c := *m

	return &c
}

// CalcMetric implements LocalMetric.
func (m *Neighbourhood) CalcMetric(g *core.Graph, node int) (Result, error) {
	i, err := nodeIndex(g, node)
	if err != nil {
		return Result{}, err
	}
	res, err := dijkstra.FromIndex(g, i, dijkstra.WithMaxDistance(m.R))
	if err != nil {
		return Result{}, err
	}
	var n int
	for j := range res.Dist {
		if j != i && res.Reachable(j) {
			n++
		}
	}

	return NewResult(m.results, float64(n)), nil
}

// sumPrefix prefixes the short name of every sum-to-global adapter.
const sumPrefix = "Sum"

// Sum turns a local metric into a global one by summing it over every patch
// of the evaluated graph.
type Sum struct {
	local LocalMetric
}

// NewSum wraps local.
func NewSum(local LocalMetric) *Sum { return &Sum{local: local} }

// Local returns the wrapped metric.
func (m *Sum) Local() LocalMetric { return m.local }

func (m *Sum) Name() string { return "Sum of " + m.local.Name() }

func (m *Sum) ShortName() string { return sumPrefix + m.local.ShortName() }

func (m *Sum) ResultNames() []string { return m.local.ResultNames() }

func (m *Sum) HasParams() bool { return m.local.HasParams() }

func (m *Sum) DetailName() string { return sumPrefix + m.local.DetailName() }

func (m *Sum) SetParamsFromDetailName(name string) error {
	rest, ok := strings.CutPrefix(name, sumPrefix)
	if !ok {
		return fmt.Errorf("%w: %q is not a detail name of %s", ErrInvalidParameter, name, m.ShortName())
	}

	return m.local.SetParamsFromDetailName(rest)
}

func (m *Sum) CloneGlobal() GlobalMetric { return &Sum{local: m.local.CloneLocal()} }

// CalcMetric implements GlobalMetric.
func (m *Sum) CalcMetric(ctx context.Context, g *core.Graph, opts CalcOptions) (Result, error) {
	h, err := scope(g, opts)
	if err != nil {
		return Result{}, err
	}
	rep := opts.Progress
	if rep == nil {
		rep = progress.Nop{}
	}
	ctr := progress.NewCounter(rep, h.Order())
	total := make([]float64, len(m.local.ResultNames()))
	for i := 0; i < h.Order(); i++ {
		if err := progress.Check(ctx, rep); err != nil {
			return Result{}, err
		}
		r, err := m.local.CalcMetric(h, h.PatchAt(i).ID)
		if err != nil {
			return Result{}, err
		}
		for k, v := range r.Values {
			total[k] += v
		}
		ctr.Inc()
	}

	return NewResult(m.local.ResultNames(), total...), nil
}
