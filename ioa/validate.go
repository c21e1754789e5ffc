// SPDX-License-Identifier: MIT

package ioa

import (
	"math"

	"github.com/katalvlaran/fio/matrix"
)

// denseOf returns m as a *matrix.Dense, copying through At when m is another
// Matrix implementation. Read-only callers may share the returned value.
// Empty matrices (zero rows or columns) are rejected.
func denseOf(op, name string, m matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, ioaErrorf(op, ErrDimensionMismatch, "%s is nil", name)
	}
	if m.Rows() == 0 || m.Cols() == 0 {
		return nil, ioaErrorf(op, ErrDimensionMismatch, "%s is %dx%d, want non-empty", name, m.Rows(), m.Cols())
	}
	if d, ok := m.(*matrix.Dense); ok {
		return d, nil
	}
	r, c := m.Rows(), m.Cols()
	out, err := matrix.NewDense(r, c)
	if err != nil {
		return nil, classify(op, err)
	}
	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, classify(op, err)
			}
			if err = out.Set(i, j, v); err != nil {
				return nil, classify(op, err)
			}
		}
	}

	return out, nil
}

// finiteDense rejects matrices holding NaN/Inf (possible after RawData writes).
func finiteDense(op, name string, d *matrix.Dense) error {
	if d.HasNaNInf() {
		return ioaErrorf(op, ErrNumericalInstability, "%s holds NaN/Inf", name)
	}

	return nil
}

// squareOperand converts m and checks that it is square and finite.
// Returns the dense form and n.
func squareOperand(op, name string, m matrix.Matrix) (*matrix.Dense, int, error) {
	d, err := denseOf(op, name, m)
	if err != nil {
		return nil, 0, err
	}
	if d.Rows() != d.Cols() {
		return nil, 0, ioaErrorf(op, ErrDimensionMismatch, "%s is %dx%d, want square", name, d.Rows(), d.Cols())
	}
	if err = finiteDense(op, name, d); err != nil {
		return nil, 0, err
	}

	return d, d.Rows(), nil
}

// sameSize checks that a square operand has n sectors.
func sameSize(op, name string, d *matrix.Dense, n int) error {
	if d.Rows() != n || d.Cols() != n {
		return ioaErrorf(op, ErrDimensionMismatch, "%s is %dx%d, want %dx%d", name, d.Rows(), d.Cols(), n, n)
	}

	return nil
}

// vector checks len(x) == n and finiteness.
func vector(op, name string, x []float64, n int) error {
	if len(x) != n {
		return ioaErrorf(op, ErrDimensionMismatch, "len(%s) = %d, want %d", name, len(x), n)
	}
	for k, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ioaErrorf(op, ErrNumericalInstability, "%s[%d] is not finite", name, k)
		}
	}

	return nil
}

// divisors is vector plus the non-zero requirement on every entry.
func divisors(op, name string, x []float64, n int) error {
	if err := vector(op, name, x, n); err != nil {
		return err
	}
	for k, v := range x {
		if v == 0 {
			return ioaErrorf(op, ErrDegenerate, "%s[%d] == 0", name, k)
		}
	}

	return nil
}
