// SPDX-License-Identifier: MIT
// Package: ioa
//
// Purpose:
//   - Leontief inverse L = (I − A)⁻¹ and Ghosh inverse G = (I − F)⁻¹.
//   - Transaction-table pipelines that derive the coefficients and invert in one call.
//
// Implementation:
//   - Stage 1: validate the coefficient matrix (square, finite).
//   - Stage 2: matrix.IdentityMinus builds I − M in one pass.
//   - Stage 3: the configured Inverter (default LU with partial pivoting) solves
//     (I − M)·X = I.
//   - Stage 4: a result holding NaN/Inf is rejected as ErrNumericalInstability.
//
// Complexity:
//   - Time O(n³), Space O(n²).

package ioa

import (
	"github.com/katalvlaran/fio/matrix"
)

const (
	opLeontief         = "LeontiefInverse"
	opGhosh            = "GhoshInverse"
	opLeontiefPipeline = "LeontiefFromTransactions"
	opGhoshPipeline    = "GhoshFromTransactions"
)

// LeontiefInverse returns L = (I − A)⁻¹.
//
// Errors:
//   - ErrDimensionMismatch (A nil or not square), ErrNumericalInstability,
//     ErrSingularMatrix (wrapping matrix.ErrSingular).
func LeontiefInverse(A matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	ad, _, err := squareOperand(opLeontief, "A", A)
	if err != nil {
		return nil, err
	}

	return invertIdentityMinus(opLeontief, ad, gatherOptions(opts...))
}

// GhoshInverse returns G = (I − F)⁻¹. Errors as LeontiefInverse.
func GhoshInverse(F matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	fd, _, err := squareOperand(opGhosh, "F", F)
	if err != nil {
		return nil, err
	}

	return invertIdentityMinus(opGhosh, fd, gatherOptions(opts...))
}

// LeontiefFromTransactions derives A from (T, p) and returns A and L.
// p is validated before any factorization is attempted.
func LeontiefFromTransactions(T matrix.Matrix, p []float64, opts ...Option) (A, L *matrix.Dense, err error) {
	o := gatherOptions(opts...)
	if A, err = normalize(opLeontiefPipeline, T, p, false, o); err != nil {
		return nil, nil, err
	}
	if L, err = invertIdentityMinus(opLeontiefPipeline, A, o); err != nil {
		return nil, nil, err
	}

	return A, L, nil
}

// GhoshFromTransactions derives F from (T, p) and returns F and G.
func GhoshFromTransactions(T matrix.Matrix, p []float64, opts ...Option) (F, G *matrix.Dense, err error) {
	o := gatherOptions(opts...)
	if F, err = normalize(opGhoshPipeline, T, p, true, o); err != nil {
		return nil, nil, err
	}
	if G, err = invertIdentityMinus(opGhoshPipeline, F, o); err != nil {
		return nil, nil, err
	}

	return F, G, nil
}

// invertIdentityMinus returns (I − m)⁻¹ through o.inverter. m is already validated.
func invertIdentityMinus(op string, m *matrix.Dense, o options) (*matrix.Dense, error) {
	im, err := matrix.IdentityMinus(m)
	if err != nil {
		return nil, classify(op, err)
	}
	inv, err := o.inverter.Invert(im)
	if err != nil {
		return nil, classify(op, err)
	}
	if inv == nil {
		return nil, ioaErrorf(op, ErrNumericalInstability, "inverter returned no result")
	}
	if inv.HasNaNInf() {
		return nil, ioaErrorf(op, ErrNumericalInstability, "inverse holds NaN/Inf")
	}

	return inv, nil
}
