// File: types.go
// Role: Search options, sentinel errors and the hop-count result.

package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/patchnet/core"
)

var (
	// ErrNilGraph is returned for a nil *core.Graph.
	ErrNilGraph = errors.New("bfs: nil graph")

	// ErrPatchNotFound is returned when the start patch (or index) is absent.
	ErrPatchNotFound = errors.New("bfs: start patch not found")

	// ErrOptionViolation is returned when an option got an invalid argument.
	ErrOptionViolation = errors.New("bfs: invalid option")
)

// Option tunes a search. Invalid arguments are remembered and reported as
// ErrOptionViolation when the search starts.
type Option func(*Options)

// Options of a search. Hooks see dense node indices.
type Options struct {
	Ctx context.Context

	// Visit runs once per reached node, in visit order; an error aborts.
	Visit func(idx, hops int) error

	// MaxHops > 0 stops expansion beyond that many links; 0 means no limit.
	MaxHops int

	// Follow decides whether the half-edge from→e.To may be crossed.
	Follow func(from int, e core.HalfEdge) bool

	err error
}

// DefaultOptions: background context, no hop limit, every link followed.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext makes the search stop when ctx is done.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithVisitor sets the per-node hook.
func WithVisitor(fn func(idx, hops int) error) Option {
	return func(o *Options) { o.Visit = fn }
}

// WithMaxHops bounds the search depth; a negative bound is an error.
func WithMaxHops(k int) Option {
	return func(o *Options) {
		if k < 0 {
			o.err = fmt.Errorf("%w: max hops %d < 0", ErrOptionViolation, k)
			return
		}
		o.MaxHops = k
	}
}

// WithMaxLinkCost follows only links whose selected cost is at most c, the
// usual way to read a graph at a dispersal threshold.
func WithMaxLinkCost(c float64) Option {
	return func(o *Options) {
		if !(c >= 0) {
			o.err = fmt.Errorf("%w: max link cost %g", ErrOptionViolation, c)
			return
		}
		o.Follow = func(_ int, e core.HalfEdge) bool { return e.Cost <= c }
	}
}

// WithFollow sets an arbitrary link filter.
func WithFollow(fn func(from int, e core.HalfEdge) bool) Option {
	return func(o *Options) { o.Follow = fn }
}

// Result is a BFS tree over dense node indices.
// Hops is -1 and Parent is -1 for unreached nodes; Parent of Start is -1.
type Result struct {
	Start  int
	Order  []int
	Hops   []int
	Parent []int
}

// Reached returns the number of nodes reached, the start included.
func (r *Result) Reached() int { return len(r.Order) }

// PathTo returns the dense indices from Start to dest, or an error when dest
// was not reached.
func (r *Result) PathTo(dest int) ([]int, error) {
	if dest < 0 || dest >= len(r.Hops) || r.Hops[dest] < 0 {
		return nil, fmt.Errorf("bfs: index %d not reached from %d", dest, r.Start)
	}
	path := make([]int, r.Hops[dest]+1)
	for i, cur := len(path)-1, dest; cur != -1; i, cur = i-1, r.Parent[cur] {
		path[i] = cur
	}

	return path, nil
}
