// File: catalog.go
// Role: Registry of metrics by short name and detail-name factories.

package metric

import (
	"fmt"
	"sort"
	"strings"
)

var (
	globals = map[string]func() GlobalMetric{
		"PC":      func() GlobalMetric { return NewPC() },
		"EC":      func() GlobalMetric { return NewEC() },
		"PCintra": func() GlobalMetric { return NewPCIntra() },
		"IIC":     func() GlobalMetric { return NewIIC() },
		"H":       func() GlobalMetric { return NewHarary() },
		"NC":      func() GlobalMetric { return NewNC() },
		"GD":      func() GlobalMetric { return NewGD() },
		"Q":       func() GlobalMetric { return NewQ() },
	}
	locals = map[string]func() LocalMetric{
		"Dg": func() LocalMetric { return NewDegree() },
		"CC": func() LocalMetric { return NewClusteringCoefficient() },
		"F":  func() LocalMetric { return NewFlux() },
		"Nr": func() LocalMetric { return NewNeighbourhood() },
	}
)

// shortOf returns the short name a detail name starts with.
func shortOf(detail string) string {
	short, _, _ := strings.Cut(detail, "_")
	return short
}

// NewGlobal builds the global metric described by detail, e.g.
// "PC_d1000_p0.05_beta1", "NC" or "SumF_d500_p0.5_beta1".
func NewGlobal(detail string) (GlobalMetric, error) {
	short := shortOf(detail)
	if ctor, ok := globals[short]; ok {
		m := ctor()
		if err := m.SetParamsFromDetailName(detail); err != nil {
			return nil, err
		}
		return m, nil
	}
	if rest, ok := strings.CutPrefix(detail, sumPrefix); ok {
		local, err := NewLocal(rest)
		if err != nil {
			return nil, err
		}
		return NewSum(local), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, short)
}

// NewLocal builds the local metric described by detail.
func NewLocal(detail string) (LocalMetric, error) {
	short := shortOf(detail)
	ctor, ok := locals[short]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, short)
	}
	m := ctor()
	if err := m.SetParamsFromDetailName(detail); err != nil {
		return nil, err
	}

	return m, nil
}

// GlobalNames lists the catalog's global short names, without the Sum
// adapters, sorted.
func GlobalNames() []string { return sortedKeys(globals) }

// LocalNames lists the catalog's local short names, sorted.
func LocalNames() []string { return sortedKeys(locals) }

// Globals returns one default-configured instance of every global metric,
// Sum adapters included, ordered by short name.
func Globals() []GlobalMetric {
	var out []GlobalMetric
	for _, n := range GlobalNames() {
		out = append(out, globals[n]())
	}
	for _, n := range LocalNames() {
		out = append(out, NewSum(locals[n]()))
	}

	return out
}

// Locals returns one default-configured instance of every local metric.
func Locals() []LocalMetric {
	var out []LocalMetric
	for _, n := range LocalNames() {
		out = append(out, locals[n]())
	}

	return out
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
