// File: result.go
// Role: Result tuples and the keyed, concurrency-safe result table.

package metric

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Result is an ordered tuple of named values.
type Result struct {
	Names  []string
	Values []float64
}

// NewResult pairs names with values; both must have the same length.
func NewResult(names []string, values ...float64) Result {
	if len(names) != len(values) {
		panic(fmt.Sprintf("metric: %d names for %d values", len(names), len(values)))
	}

	return Result{Names: append([]string(nil), names...), Values: values}
}

// Get returns the value called name.
func (r Result) Get(name string) (float64, bool) {
	for i, n := range r.Names {
		if n == name {
			return r.Values[i], true
		}
	}

	return 0, false
}

// Value returns the first value, or 0 for an empty result.
func (r Result) Value() float64 {
	if len(r.Values) == 0 {
		return 0
	}

	return r.Values[0]
}

// String renders "name=value" pairs.
func (r Result) String() string {
	parts := make([]string, len(r.Names))
	for i := range r.Names {
		parts[i] = fmt.Sprintf("%s=%g", r.Names[i], r.Values[i])
	}

	return strings.Join(parts, " ")
}

// GlobalNode is the Key.Node of global results.
const GlobalNode = -1

// Key identifies a result: the metric detail name (identity plus
// parameters), the graph name, and the patch for local results.
type Key struct {
	Metric string
	Graph  string
	Node   int
}

// GlobalKey returns the key of a global result.
func GlobalKey(metric, graph string) Key { return Key{Metric: metric, Graph: graph, Node: GlobalNode} }

// Table is a keyed result store, safe for concurrent use.
type Table struct {
	mu   sync.RWMutex
	rows map[Key]Result
}

// NewTable returns an empty table.
func NewTable() *Table { return &Table{rows: make(map[Key]Result)} }

// Put stores r under k, replacing any previous value.
func (t *Table) Put(k Key, r Result) {
	t.mu.Lock()
	t.rows[k] = r
	t.mu.Unlock()
}

// Get returns the result stored under k.
func (t *Table) Get(k Key) (Result, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rows[k]

	return r, ok
}

// Len returns the number of stored results.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.rows)
}

// Keys returns every key ordered by metric, graph, then node.
func (t *Table) Keys() []Key {
	t.mu.RLock()
	keys := make([]Key, 0, len(t.rows))
	for k := range t.rows {
		keys = append(keys, k)
	}
	t.mu.RUnlock()
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].Metric != keys[b].Metric {
			return keys[a].Metric < keys[b].Metric
		}
		if keys[a].Graph != keys[b].Graph {
			return keys[a].Graph < keys[b].Graph
		}
		return keys[a].Node < keys[b].Node
	})

	return keys
}
