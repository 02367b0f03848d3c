// File: types.go
// Role: Sentinel errors, weighters and clustering options.

package modularity

import (
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/patchnet/core"
)

var (
	// ErrNilGraph is returned when the graph is nil.
	ErrNilGraph = errors.New("modularity: graph is nil")

	// ErrInvalidWeight is returned when a Weighter yields a negative, NaN or
	// infinite weight.
	ErrInvalidWeight = errors.New("modularity: invalid link weight")

	// ErrClusterCount is returned when k is outside [1, Order].
	ErrClusterCount = errors.New("modularity: cluster count out of range")

	// ErrInvalidPartition is returned when clusters do not partition the patch
	// set exactly, or a move would break that.
	ErrInvalidPartition = errors.New("modularity: invalid partition")
)

// Weighter turns a link into its modularity weight. a and b are the link
// endpoints and cost its selected cost in the graph.
type Weighter interface {
	Weight(a, b core.Patch, l core.Link, cost float64) float64
}

// CountWeighter weighs every link 1, so W is the number of links.
type CountWeighter struct{}

// Weight returns 1.
func (CountWeighter) Weight(core.Patch, core.Patch, core.Link, float64) float64 { return 1 }

// DecayWeighter weighs a link by (cap_a·cap_b)^Beta · e^(−Alpha·cost).
// The zero value reduces to CountWeighter.
type DecayWeighter struct {
	Alpha float64
	Beta  float64
}

// Weight implements Weighter.
func (d DecayWeighter) Weight(a, b core.Patch, _ core.Link, cost float64) float64 {
	return math.Pow(a.Capacity*b.Capacity, d.Beta) * math.Exp(-d.Alpha*cost)
}

// FuncWeighter adapts a plain function.
type FuncWeighter func(a, b core.Patch, l core.Link, cost float64) float64

// Weight calls f.
func (f FuncWeighter) Weight(a, b core.Patch, l core.Link, cost float64) float64 {
	return f(a, b, l, cost)
}

// DefaultMaxPasses bounds the local search of OptimPartition.
const DefaultMaxPasses = 100

// Option configures New.
type Option func(*options)

type options struct {
	maxPasses int
	log       *zap.Logger
}

func defaultOptions() options {
	return options{maxPasses: DefaultMaxPasses, log: zap.NewNop()}
}

// WithMaxPasses bounds the number of full node sweeps done by OptimPartition.
// Values < 1 are ignored.
func WithMaxPasses(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.maxPasses = n
		}
	}
}

// WithLogger sets the logger for merge and refinement summaries.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}
