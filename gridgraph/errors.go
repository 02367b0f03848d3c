package gridgraph

import "errors"

var (
	// ErrEmptyGrid indicates the input 2D slice is empty.
	ErrEmptyGrid = errors.New("gridgraph: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrBadResolution indicates a non-positive or non-finite cell size.
	ErrBadResolution = errors.New("gridgraph: resolution must be finite and > 0")
	// ErrCellIndex indicates a requested cell index is out of range.
	ErrCellIndex = errors.New("gridgraph: cell index out of range")
	// ErrBarrier indicates a search was started from an impassable cell.
	ErrBarrier = errors.New("gridgraph: source cell is a barrier")
)
