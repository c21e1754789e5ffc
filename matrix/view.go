// SPDX-License-Identifier: MIT

// Package matrix - MatrixView: no-copy addressing over a caller-owned flat buffer.
//
// Purpose:
//   - Name the storage convention of a flat buffer EXPLICITLY (RowMajor or ColMajor).
//   - Let column-major hosts hand their buffers in without an implicit reinterpretation:
//     the view translates (i,j) for reads, and ToDense performs the one explicit
//     transposition into the package-wide row-major convention.
//
// AI-Hints:
//   - Every kernel in this module consumes row-major *Dense. A view is an adapter, not a
//     second convention: materialize it with ToDense before heavy algebra.

package matrix

import (
	"fmt"
	"math"
)

// Layout names the linearization of a flat buffer.
type Layout int

const (
	// RowMajor stores (i,j) at i*cols + j. This is the package-wide convention.
	RowMajor Layout = iota
	// ColMajor stores (i,j) at i + j*rows (R, Fortran, LAPACK).
	ColMajor
)

// String implements fmt.Stringer.
func (l Layout) String() string {
	switch l {
	case RowMajor:
		return "row-major"
	case ColMajor:
		return "col-major"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// MatrixView addresses a caller-owned flat buffer with a fixed Layout.
// Reads and writes go straight to the buffer; no copy is made.
type MatrixView struct {
	data   []float64
	r, c   int
	layout Layout
}

var _ Matrix = (*MatrixView)(nil)

// NewView wraps data (len == rows*cols) with the given layout.
// Errors: ErrInvalidDimensions, ErrDimensionMismatch.
// Complexity: O(1).
func NewView(rows, cols int, data []float64, layout Layout) (*MatrixView, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewView: %w", ErrInvalidDimensions)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("NewView: len %d != %d*%d: %w", len(data), rows, cols, ErrDimensionMismatch)
	}
	if layout != RowMajor && layout != ColMajor {
		return nil, fmt.Errorf("NewView: %v: %w", layout, ErrDimensionMismatch)
	}

	return &MatrixView{data: data, r: rows, c: cols, layout: layout}, nil
}

// Rows returns the view height.
func (v *MatrixView) Rows() int { return v.r }

// Cols returns the view width.
func (v *MatrixView) Cols() int { return v.c }

// Layout reports the buffer convention of the view.
func (v *MatrixView) Layout() Layout { return v.layout }

// offset translates (i,j) into the flat buffer index for the view's layout.
func (v *MatrixView) offset(i, j int) int {
	if v.layout == ColMajor {
		return i + j*v.r
	}

	return i*v.c + j
}

// At reads (i,j) through the layout.
func (v *MatrixView) At(i, j int) (float64, error) {
	if i < 0 || i >= v.r || j < 0 || j >= v.c {
		return 0, fmt.Errorf("MatrixView.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return v.data[v.offset(i, j)], nil
}

// Set writes (i,j) through the layout; NaN/Inf are rejected under the default policy.
func (v *MatrixView) Set(i, j int, val float64) error {
	if i < 0 || i >= v.r || j < 0 || j >= v.c {
		return fmt.Errorf("MatrixView.Set(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if DefaultValidateNaNInf && (math.IsNaN(val) || math.IsInf(val, 0)) {
		return fmt.Errorf("MatrixView.Set(%d,%d): %w", i, j, ErrNaNInf)
	}
	v.data[v.offset(i, j)] = val

	return nil
}

// Clone materializes the view as an independent row-major *Dense.
func (v *MatrixView) Clone() Matrix {
	d, _ := v.ToDense() // shape was validated by NewView

	return d
}

// ToDense copies the view into a fresh row-major *Dense.
// For ColMajor views this is the explicit transposition step.
// Complexity: O(r*c).
func (v *MatrixView) ToDense() (*Dense, error) {
	out, err := NewDense(v.r, v.c)
	if err != nil {
		return nil, fmt.Errorf("MatrixView.ToDense: %w", err)
	}
	if v.layout == RowMajor {
		copy(out.data, v.data)
		return out, nil
	}
	var i, j int
	for i = 0; i < v.r; i++ {
		for j = 0; j < v.c; j++ {
			out.data[i*v.c+j] = v.data[i+j*v.r]
		}
	}

	return out, nil
}

// FromColumnMajor builds a row-major *Dense from a column-major buffer.
// It is NewView(..., ColMajor) followed by ToDense, with the numeric policy enforced.
// Errors: ErrInvalidDimensions, ErrDimensionMismatch, ErrNaNInf.
func FromColumnMajor(rows, cols int, data []float64) (*Dense, error) {
	v, err := NewView(rows, cols, data, ColMajor)
	if err != nil {
		return nil, fmt.Errorf("FromColumnMajor: %w", err)
	}
	out, err := v.ToDense()
	if err != nil {
		return nil, fmt.Errorf("FromColumnMajor: %w", err)
	}
	if out.validateNaNInf && out.HasNaNInf() {
		return nil, fmt.Errorf("FromColumnMajor: %w", ErrNaNInf)
	}

	return out, nil
}

// ToColumnMajor returns a fresh column-major copy of m (explicit transposition out).
// Complexity: O(r*c).
func ToColumnMajor(m *Dense) []float64 {
	out := make([]float64, m.r*m.c)
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			out[i+j*m.r] = m.data[i*m.c+j]
		}
	}

	return out
}
