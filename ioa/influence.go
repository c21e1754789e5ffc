// SPDX-License-Identifier: MIT
// Package: ioa
//
// Purpose:
//   - Field of influence: how strongly a small change in one coefficient
//     A[i][j] propagates into every entry of the Leontief inverse.
//
// Contract:
//
//	FI = Σ_{i,j} ( (L_{ij}(ε) − L) / ε )²   (elementwise square)
//
// where L_{ij}(ε) = (I − A − ε·e_i·e_jᵀ)⁻¹. FI is non-negative everywhere and,
// as ε → 0, tends to Σ_{i,j} (L[:,i]·L[j,:])².
//
// Implementation:
//   - Stage 1: validate A and L (square, same n, finite) and ε (> 0, finite).
//   - Stage 2: split the n² cells into contiguous chunks, one per worker.
//     Each chunk owns a scratch copy of A and a private n×n accumulator.
//   - Stage 3: per cell perturb, re-invert, accumulate, restore.
//     With WithRankOneUpdate the closed form replaces the re-inversion.
//   - Stage 4: fold partial accumulators in chunk order.
//
// Complexity:
//   - Full re-inversion: Time O(n⁵), Space O(n²) per worker.
//   - Rank-one: Time O(n⁴), Space O(n²) per worker.
//
// AI-Hints:
//   - With a fixed executor the fold order is fixed, so repeated calls are
//     bitwise identical. Different worker counts may differ in the last bits.

package ioa

import (
	"fmt"
	"math"

	"github.com/katalvlaran/fio/matrix"
	"github.com/katalvlaran/fio/parallel"
)

const opFieldOfInfluence = "FieldOfInfluence"

// FieldOfInfluence returns the n×n field of influence of A around its inverse L.
//
// Errors:
//   - ErrDimensionMismatch: A or L not square, or of different n.
//   - ErrDegenerate: epsilon ≤ 0, NaN or ±Inf.
//   - ErrSingularMatrix, ErrNumericalInstability from the re-inversions.
func FieldOfInfluence(A, L matrix.Matrix, epsilon float64, opts ...Option) (*matrix.Dense, error) {
	const op = opFieldOfInfluence
	ad, n, err := squareOperand(op, "A", A)
	if err != nil {
		return nil, err
	}
	ld, _, err := squareOperand(op, "L", L)
	if err != nil {
		return nil, err
	}
	if err = sameSize(op, "L", ld, n); err != nil {
		return nil, err
	}
	if !(epsilon > 0) || math.IsInf(epsilon, 0) {
		return nil, ioaErrorf(op, ErrDegenerate, "epsilon must be finite and > 0, got %g", epsilon)
	}

	o := gatherOptions(opts...)
	exec := o.executor()
	chunks := parallel.Chunks(n*n, exec.Workers())
	partials := make([]*matrix.Dense, len(chunks))
	o.logger.Debug("field of influence started",
		"n", n, "cells", n*n, "chunks", len(chunks), "rank_one", o.rankOne)

	err = exec.ForEach(len(chunks), func(c int) error {
		acc, err := matrix.NewDense(n, n)
		if err != nil {
			return err
		}
		if o.rankOne {
			err = influenceRankOne(acc, ld, chunks[c], epsilon)
		} else {
			err = influenceReinvert(acc, ad, ld, chunks[c], epsilon, o)
		}
		if err != nil {
			return err
		}
		partials[c] = acc
		return nil
	})
	if err != nil {
		return nil, classify(op, err)
	}

	out := partials[0]
	for c := 1; c < len(partials); c++ {
		if err = matrix.AddInPlace(out, partials[c]); err != nil {
			return nil, classify(op, err)
		}
	}
	if out.HasNaNInf() {
		return nil, ioaErrorf(op, ErrNumericalInstability, "influence holds NaN/Inf")
	}

	return out, nil
}

// cellTag labels errors raised while processing cell (i,j).
func cellTag(i, j int) string { return fmt.Sprintf("cell (%d,%d)", i, j) }

// influenceReinvert accumulates the cells of r into acc by full re-inversion.
func influenceReinvert(acc, ad, ld *matrix.Dense, r parallel.Range, eps float64, o options) error {
	n := ad.Rows()
	work, err := matrix.NewDenseFrom(n, n, ad.RawData())
	if err != nil {
		return err
	}
	raw := work.RawData()
	inv := 1.0 / eps
	var orig float64
	for cell := r.Lo; cell < r.Hi; cell++ {
		orig = raw[cell]
		raw[cell] = orig + eps
		lp, err := invertIdentityMinus(cellTag(cell/n, cell%n), work, o)
		raw[cell] = orig
		if err != nil {
			return err
		}
		if err = matrix.AccumSquaredScaledDiff(acc, lp, ld, inv); err != nil {
			return err
		}
	}

	return nil
}

// influenceRankOne accumulates the cells of r into acc with the closed form.
func influenceRankOne(acc, ld *matrix.Dense, r parallel.Range, eps float64) error {
	n := ld.Rows()
	a, l := acc.RawData(), ld.RawData()
	var i, j int
	for cell := r.Lo; cell < r.Hi; cell++ {
		i, j = cell/n, cell%n
		if err := accumInfluenceRankOne(cellTag(i, j), a, l, n, i, j, eps); err != nil {
			return err
		}
	}

	return nil
}
