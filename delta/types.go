// File: types.go
// Role: Task states, delta modes, errors and the task result.

package delta

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/katalvlaran/patchnet/metric"
)

// Sentinel errors.
var (
	ErrNilPool            = errors.New("delta: nil executor pool")
	ErrNilGraph           = errors.New("delta: nil graph")
	ErrNilLauncher        = errors.New("delta: nil metric launcher")
	ErrInvalidBatchSize   = errors.New("delta: batch size must be ≥ 1")
	ErrInvalidMode        = errors.New("delta: unknown mode")
	ErrAlreadyStarted     = errors.New("delta: task already started")
	ErrComputationFailure = errors.New("delta: baseline metric failed")
)

// State is the lifecycle state of a Task.
type State int

const (
	Pending State = iota
	Running
	Completed
	PartiallyFailed
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case PartiallyFailed:
		return "partially_failed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether s is a final state.
func (s State) Terminal() bool { return s >= Completed }

// Mode selects how the removed-patch value is compared to the baseline.
type Mode int

const (
	// Difference is base − removed.
	Difference Mode = iota
	// Ratio is (base − removed) / base.
	Ratio
)

func (m Mode) String() string {
	switch m {
	case Difference:
		return "difference"
	case Ratio:
		return "ratio"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "difference", "diff":
		return Difference, nil
	case "ratio":
		return Ratio, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// apply compares one value. A zero baseline in Ratio mode gives 0 when
// nothing changed and a signed infinity otherwise.
func (m Mode) apply(base, removed float64) float64 {
	d := base - removed
	if m == Difference {
		return d
	}
	if base == 0 {
		if d == 0 {
			return 0
		}
		return math.Inf(sign(d))
	}

	return d / base
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}

	return 1
}

// BatchError reports a batch whose patches got no delta.
type BatchError struct {
	Nodes     []int // patch ids of the batch
	Err       error
	Cancelled bool // dropped before dispatch
}

func (e *BatchError) Error() string {
	if e.Cancelled {
		return fmt.Sprintf("delta: batch of %d patches (first %d) cancelled: %v", len(e.Nodes), e.Nodes[0], e.Err)
	}

	return fmt.Sprintf("delta: batch of %d patches (first %d) failed: %v", len(e.Nodes), e.Nodes[0], e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// PartialFailureError lists every patch without a delta.
type PartialFailureError struct {
	Failed  []int // ascending patch ids
	Batches []*BatchError
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("delta: %d patches failed in %d batches: %v",
		len(e.Failed), len(e.Batches), e.Batches[0])
}

// Unwrap exposes the batch errors to errors.Is and errors.As.
func (e *PartialFailureError) Unwrap() []error {
	out := make([]error, len(e.Batches))
	for i, b := range e.Batches {
		out[i] = b
	}

	return out
}

// Result is the outcome of Task.Execute.
type Result struct {
	Task   uuid.UUID
	Metric string // detail name of the evaluated metric
	Graph  string
	Mode   Mode
	State  State

	Base     metric.Result
	Deltas   map[int]metric.Result // by patch id
	Failures []*BatchError
}

// IDs returns the patch ids with a delta, ascending.
func (r *Result) IDs() []int {
	ids := make([]int, 0, len(r.Deltas))
	for id := range r.Deltas {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids
}

// FailedIDs returns the patch ids without a delta, ascending.
func (r *Result) FailedIDs() []int {
	var ids []int
	for _, b := range r.Failures {
		ids = append(ids, b.Nodes...)
	}
	sort.Ints(ids)

	return ids
}

// Err returns a *PartialFailureError when some batch failed, nil otherwise.
func (r *Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}

	return &PartialFailureError{Failed: r.FailedIDs(), Batches: r.Failures}
}

// NodeDelta is one row of a ranking.
type NodeDelta struct {
	ID    int
	Value float64
}

// Ranking orders patches by the delta of the named result value, largest
// first, ties by ascending id. An empty name selects the first value.
func (r *Result) Ranking(name string) ([]NodeDelta, error) {
	if name == "" && len(r.Base.Names) > 0 {
		name = r.Base.Names[0]
	}
	out := make([]NodeDelta, 0, len(r.Deltas))
	for _, id := range r.IDs() {
		v, ok := r.Deltas[id].Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: no result value %q", metric.ErrInvalidParameter, name)
		}
		out = append(out, NodeDelta{ID: id, Value: v})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Value > out[b].Value })

	return out, nil
}

// Store puts the baseline and every delta into t. Delta rows are keyed by
// "d<Mode>_<detail>" and the patch id.
func (r *Result) Store(t *metric.Table) {
	t.Put(metric.GlobalKey(r.Metric, r.Graph), r.Base)
	name := "d" + r.Mode.String() + "_" + r.Metric
	for id, d := range r.Deltas {
		t.Put(metric.Key{Metric: name, Graph: r.Graph, Node: id}, d)
	}
}
