// File: types.go
// Role: Distance kinds, points, sentinel errors and the row observer hook.

package distance

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Sentinel errors for the distance engine.
var (
	// ErrInvalidParameter reports a bad distance kind parameter (e.g. α ≤ 0).
	ErrInvalidParameter = errors.New("distance: invalid parameter")

	// ErrNilGraph reports a nil graph or cost surface.
	ErrNilGraph = errors.New("distance: graph is nil")

	// ErrNoPoints reports an empty source or target set.
	ErrNoPoints = errors.New("distance: no points")

	// ErrUnknownPatch reports an OnNode point whose patch is not in the graph.
	ErrUnknownPatch = errors.New("distance: point references unknown patch")

	// ErrOutsideSurface reports a point that falls outside the cost surface.
	ErrOutsideSurface = errors.New("distance: point outside cost surface")
)

// Unreachable is stored for pairs no path joins.
var Unreachable = math.Inf(1)

// IsUnreachable reports whether v is the Unreachable sentinel.
func IsUnreachable(v float64) bool { return math.IsInf(v, 1) }

// Kind selects the distance model.
type Kind int

const (
	// LeastCost is the cumulative link cost of the least-cost path.
	LeastCost Kind = iota
	// Flow is the capacity-corrected flow distance.
	Flow
)

// String returns "leastcost" or "flow".
func (k Kind) String() string {
	switch k {
	case LeastCost:
		return "leastcost"
	case Flow:
		return "flow"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "leastcost":
		return LeastCost, nil
	case "flow":
		return Flow, nil
	default:
		return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidParameter, s)
	}
}

// Components returns the number of values stored per pair.
func (k Kind) Components() int {
	if k == Flow {
		return 2
	}

	return 1
}

// validate checks k and its parameter.
func (k Kind) validate(param float64) error {
	switch k {
	case LeastCost:
		return nil
	case Flow:
		if !(param > 0) || math.IsInf(param, 1) {
			return fmt.Errorf("%w: flow requires a finite α > 0, got %g", ErrInvalidParameter, param)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidParameter, int(k))
	}
}

// Point is a location to measure from or to.
// With OnNode set, Node is the patch ID and X/Y are ignored.
type Point struct {
	ID     string
	X, Y   float64
	Node   int
	OnNode bool
}

// RowObserver receives one call per finished matrix row. The observability
// collector implements it.
type RowObserver interface {
	ObserveMatrixRow(kind string, elapsed time.Duration)
}
