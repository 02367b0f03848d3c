// File: types.go
// Role: Options, sentinel errors and the Result of a single-source search.

package dijkstra

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/patchnet/core"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilGraph indicates that a nil *core.Graph was passed to Dijkstra.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrVertexNotFound indicates that the source patch does not exist in the graph.
	ErrVertexNotFound = errors.New("dijkstra: source vertex not found in graph")

	// ErrNegativeWeight indicates that a negative or NaN weight was produced.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

	// ErrOptionViolation indicates an option was given an invalid argument.
	ErrOptionViolation = errors.New("dijkstra: invalid option supplied")
)

// Unreachable is the distance reported for nodes the search never settled.
var Unreachable = math.Inf(1)

// WeightFunc maps a half-edge leaving dense node from to a traversal weight.
// It must return a non-negative, non-NaN value.
type WeightFunc func(from int, e core.HalfEdge) float64

// Options configures the behavior of the Dijkstra algorithm.
type Options struct {
	MaxDistance float64    // default +Inf (no cap); must be >= 0
	ReturnPath  bool       // keep predecessors
	Weight      WeightFunc // nil means HalfEdge.Cost

	err error // first invalid option, surfaced by Dijkstra
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// WithMaxDistance stops the search once the frontier exceeds max.
// Negative or NaN values are reported as ErrOptionViolation.
func WithMaxDistance(max float64) Option {
	return func(o *Options) {
		if max < 0 || math.IsNaN(max) {
			o.err = fmt.Errorf("%w: MaxDistance must be non-negative, got %g", ErrOptionViolation, max)
			return
		}
		o.MaxDistance = max
	}
}

// WithReturnPath enables the predecessor array in the Result.
func WithReturnPath() Option {
	return func(o *Options) { o.ReturnPath = true }
}

// WithWeightFunc substitutes link costs by fn. A nil fn is ignored.
func WithWeightFunc(fn WeightFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.Weight = fn
		}
	}
}

// DefaultOptions returns the defaults: no distance cap, no predecessors,
// link cost as weight.
func DefaultOptions() Options {
	return Options{MaxDistance: math.Inf(1)}
}

// Result holds the outcome of one search. All slices are indexed by dense
// node index (see core.Graph.Index).
//
//   - Dist[i] is the least weight from Source to i, Unreachable if never settled.
//   - Hops[i] is the number of links on the chosen path, -1 if unreachable.
//   - Prev[i] is the predecessor on the chosen path, -1 for the source and
//     unreachable nodes; nil unless WithReturnPath was given.
type Result struct {
	Source int
	Dist   []float64
	Hops   []int
	Prev   []int
}

// Reachable reports whether dense node i was settled.
func (r *Result) Reachable(i int) bool { return !math.IsInf(r.Dist[i], 1) }

// PathTo reconstructs the dense-index path from Source to i.
// Returns nil if i is unreachable or predecessors were not requested.
func (r *Result) PathTo(i int) []int {
	if r.Prev == nil || !r.Reachable(i) {
		return nil
	}
	path := make([]int, 0, r.Hops[i]+1)
	for cur := i; cur != -1; cur = r.Prev[cur] {
		path = append(path, cur)
	}
	for a, b := 0, len(path)-1; a < b; a, b = a+1, b-1 {
		path[a], path[b] = path[b], path[a]
	}

	return path
}
