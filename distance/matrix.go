// File: matrix.go
// Role: Dense [source][target][component] storage with gonum export.

package distance

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// Matrix stores distances indexed [source][target][component] in one flat
// row-major slice.
type Matrix struct {
	kind    Kind
	sources []string
	targets []string
	comps   int
	data    []float64
}

// NewMatrix allocates a matrix for the given point IDs, filled with Unreachable.
func NewMatrix(kind Kind, sources, targets []string) *Matrix {
	m := &Matrix{
		kind:    kind,
		sources: append([]string(nil), sources...),
		targets: append([]string(nil), targets...),
		comps:   kind.Components(),
	}
	m.data = make([]float64, len(sources)*len(targets)*m.comps)
	for i := range m.data {
		m.data[i] = Unreachable
	}

	return m
}

// Kind returns the distance model of m.
func (m *Matrix) Kind() Kind { return m.kind }

// Sources returns the source point IDs in row order.
func (m *Matrix) Sources() []string { return append([]string(nil), m.sources...) }

// Targets returns the target point IDs in column order.
func (m *Matrix) Targets() []string { return append([]string(nil), m.targets...) }

// Components returns the number of values per pair.
func (m *Matrix) Components() int { return m.comps }

func (m *Matrix) offset(i, j, k int) int {
	return (i*len(m.targets)+j)*m.comps + k
}

// At returns matrix[i][j][k]. It panics on out-of-range indices like a slice.
func (m *Matrix) At(i, j, k int) float64 { return m.data[m.offset(i, j, k)] }

// Set stores v at matrix[i][j][k].
func (m *Matrix) Set(i, j, k int, v float64) { m.data[m.offset(i, j, k)] = v }

// row returns the writable storage for source i.
func (m *Matrix) row(i int) []float64 {
	w := len(m.targets) * m.comps
	return m.data[i*w : (i+1)*w]
}

// Component copies component k into a gonum dense matrix (sources × targets).
func (m *Matrix) Component(k int) (*mat.Dense, error) {
	if k < 0 || k >= m.comps {
		return nil, fmt.Errorf("%w: component %d of %d", ErrInvalidParameter, k, m.comps)
	}
	if len(m.sources) == 0 || len(m.targets) == 0 {
		return nil, ErrNoPoints
	}
	vals := make([]float64, len(m.sources)*len(m.targets))
	for i := range m.sources {
		for j := range m.targets {
			vals[i*len(m.targets)+j] = m.At(i, j, k)
		}
	}

	return mat.NewDense(len(m.sources), len(m.targets), vals), nil
}

// Symmetric reports whether component k satisfies m[i][j][k] == m[j][i][k]
// within tol (absolute or relative) for every pair. Non-square matrices and
// matrices whose source and target IDs differ are never symmetric.
// Unreachable equals Unreachable.
func (m *Matrix) Symmetric(k int, tol float64) bool {
	if k < 0 || k >= m.comps || len(m.sources) != len(m.targets) {
		return false
	}
	for i := range m.sources {
		if m.sources[i] != m.targets[i] {
			return false
		}
	}
	for i := range m.sources {
		for j := i + 1; j < len(m.targets); j++ {
			if !scalar.EqualWithinAbsOrRel(m.At(i, j, k), m.At(j, i, k), tol, tol) {
				return false
			}
		}
	}

	return true
}
