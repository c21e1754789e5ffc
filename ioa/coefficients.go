// SPDX-License-Identifier: MIT
// Package: ioa
//
// Purpose:
//   - Derive the technical (A) and allocation (F) coefficient matrices from a
//     transactions table T and the total production vector p.
//
// Contract:
//   - A[i][j] = T[i][j] / p[j]  (columnwise normalization).
//   - F[i][j] = T[i][j] / p[i]  (rowwise normalization).
//   - Validation (shape, finiteness, p[k] != 0) completes before any cell is written.
//
// Determinism & Performance:
//   - Rows are independent tasks on the executor; each task writes only its row.
//   - Time O(n²), Space O(n²) for the result.

package ioa

import (
	"github.com/katalvlaran/fio/matrix"
)

const (
	opTechnical  = "TechnicalCoefficients"
	opAllocation = "AllocationCoefficients"
)

// TechnicalCoefficients returns A with A[i][j] = T[i][j] / p[j].
//
// Errors:
//   - ErrDimensionMismatch: T nil or not square, len(p) != n.
//   - ErrDegenerate: p[k] == 0.
//   - ErrNumericalInstability: NaN/Inf in T or p.
func TechnicalCoefficients(T matrix.Matrix, p []float64, opts ...Option) (*matrix.Dense, error) {
	return normalize(opTechnical, T, p, false, gatherOptions(opts...))
}

// AllocationCoefficients returns F with F[i][j] = T[i][j] / p[i].
// Errors as TechnicalCoefficients.
func AllocationCoefficients(T matrix.Matrix, p []float64, opts ...Option) (*matrix.Dense, error) {
	return normalize(opAllocation, T, p, true, gatherOptions(opts...))
}

// normalize divides T by p along columns (byRow=false) or rows (byRow=true).
func normalize(op string, T matrix.Matrix, p []float64, byRow bool, o options) (*matrix.Dense, error) {
	td, n, err := squareOperand(op, "T", T)
	if err != nil {
		return nil, err
	}
	if err = divisors(op, "p", p, n); err != nil {
		return nil, err
	}

	out, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, classify(op, err)
	}
	src, dst := td.RawData(), out.RawData()
	err = o.executor().ForEach(n, func(i int) error {
		base := i * n
		if byRow {
			for j := 0; j < n; j++ {
				dst[base+j] = src[base+j] / p[i]
			}
			return nil
		}
		for j := 0; j < n; j++ {
			dst[base+j] = src[base+j] / p[j]
		}
		return nil
	})
	if err != nil {
		return nil, classify(op, err)
	}
	if out.HasNaNInf() {
		return nil, ioaErrorf(op, ErrNumericalInstability, "coefficient overflow")
	}
	o.logger.Debug("coefficients computed", "op", op, "n", n)

	return out, nil
}
