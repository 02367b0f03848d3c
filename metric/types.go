// File: types.go
// Role: Metric interfaces, calculation options and sentinel errors.

package metric

import (
	"context"
	"errors"

	"github.com/katalvlaran/patchnet/core"
	"github.com/katalvlaran/patchnet/modularity"
	"github.com/katalvlaran/patchnet/progress"
)

var (
	// ErrInvalidParameter reports a detail name or parameter set that does not
	// describe a valid configuration of the metric.
	ErrInvalidParameter = errors.New("metric: invalid parameter")

	// ErrUnknownMetric reports a short name absent from the catalog.
	ErrUnknownMetric = errors.New("metric: unknown metric")

	// ErrNilGraph reports a nil graph.
	ErrNilGraph = errors.New("metric: graph is nil")

	// ErrNoPartition reports a cluster-aware metric run without SetPartition.
	ErrNoPartition = errors.New("metric: partition required")

	// ErrNodeNotFound reports a local metric asked about an unknown patch.
	ErrNodeNotFound = errors.New("metric: patch not found")
)

// Metric is the capability set shared by local and global metrics.
//
// DetailName and SetParamsFromDetailName are inverses: for every valid name n,
// SetParamsFromDetailName(n) followed by DetailName() returns n.
type Metric interface {
	// Name is the human-readable name.
	Name() string
	// ShortName identifies the metric in the catalog and prefixes DetailName.
	ShortName() string
	// ResultNames lists the entries of every Result, in order.
	ResultNames() []string
	// HasParams reports whether the metric declares parameters.
	HasParams() bool
	// DetailName encodes the short name and the current parameters.
	DetailName() string
	// SetParamsFromDetailName parses name. On error the parameters are left
	// unchanged.
	SetParamsFromDetailName(name string) error
}

// CalcOptions controls a global computation.
type CalcOptions struct {
	// AllComponents evaluates the whole graph; otherwise only its largest
	// component (capacity sum, ties to the lowest label).
	AllComponents bool
	// Progress receives per-source progress and may cancel. Nil means none.
	Progress progress.Reporter
	// Landscape is the capacity A that PC, PCintra and IIC divide by (as A²).
	// Zero means the total capacity of the evaluated graph; delta runs pin it
	// to the intact landscape so removals are compared on one scale.
	Landscape float64
}

// GlobalMetric summarises a whole graph.
type GlobalMetric interface {
	Metric
	CalcMetric(ctx context.Context, g *core.Graph, opts CalcOptions) (Result, error)
	// CloneGlobal returns an independent copy with the same parameters.
	CloneGlobal() GlobalMetric
}

// LocalMetric scores one patch of a graph.
type LocalMetric interface {
	Metric
	CalcMetric(g *core.Graph, node int) (Result, error)
	// CloneLocal returns an independent copy with the same parameters.
	CloneLocal() LocalMetric
}

// ClusterAware metrics need a partition before CalcMetric.
type ClusterAware interface {
	SetPartition(p *modularity.Partition)
}
