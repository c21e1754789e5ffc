// SPDX-License-Identifier: MIT
// Package: ioa
//
// Purpose:
//   - Hypothetical extraction: remove one sector's purchases (backward) or
//     sales (forward), re-solve the system and measure the output loss.
//
// Contract (n sectors, P = Σ p):
//   - Backward, sector j: A' = A with column j zeroed, L' = (I − A')⁻¹,
//     x' = L'·rowsum(FD), delta = Σ x' − P, row j = (delta, delta / P).
//   - Forward, sector i: F' = F with row i zeroed, G' = (I − F')⁻¹,
//     x' = colsum(VA)·G', same pair.
//   - Total: elementwise sum of the backward and forward n×2 tables.
//
// Implementation:
//   - Validation (shapes, finiteness, p[k] != 0, P != 0) runs before any inversion.
//   - One task per sector on the executor; each task owns a private copy of
//     the coefficient matrix and writes only its own result row.
//   - With WithRankOneUpdate the base inverse is computed once and every
//     sector reuses it through a Sherman–Morrison correction (see rankone.go).
//
// Complexity:
//   - Full re-inversion: Time O(n⁴), Space O(n²) per worker.
//   - Rank-one: Time O(n³), Space O(n²).

package ioa

import (
	"fmt"

	"github.com/katalvlaran/fio/matrix"
)

const (
	opBackwardExtraction = "BackwardExtraction"
	opForwardExtraction  = "ForwardExtraction"
	opTotalExtraction    = "TotalExtraction"
)

// Column indices of the n×2 extraction tables.
const (
	ExtractionAbsolute = 0
	ExtractionRelative = 1
)

// BackwardExtraction returns the n×2 table of (delta, delta/Σp) obtained by
// extracting each sector's column from A.
//
// Inputs:
//   - A: n×n technical coefficients.
//   - FD: n×k final demand (k ≥ 1); only its row sums are used.
//   - p: total production, no zero entries, non-zero sum.
//
// Errors:
//   - ErrDimensionMismatch, ErrDegenerate, ErrSingularMatrix, ErrNumericalInstability.
func BackwardExtraction(A, FD matrix.Matrix, p []float64, opts ...Option) (*matrix.Dense, error) {
	const op = opBackwardExtraction
	ad, n, err := squareOperand(op, "A", A)
	if err != nil {
		return nil, err
	}
	fdd, err := denseOf(op, "FD", FD)
	if err != nil {
		return nil, err
	}
	if fdd.Rows() != n {
		return nil, ioaErrorf(op, ErrDimensionMismatch, "FD has %d rows, want %d", fdd.Rows(), n)
	}
	if err = finiteDense(op, "FD", fdd); err != nil {
		return nil, err
	}
	total, err := productionTotal(op, p, n)
	if err != nil {
		return nil, err
	}
	demand, err := matrix.RowSums(fdd)
	if err != nil {
		return nil, classify(op, err)
	}

	o := gatherOptions(opts...)
	o.logger.Debug("extraction started", "op", op, "n", n, "rank_one", o.rankOne)
	if o.rankOne {
		return backwardRankOne(op, ad, demand, total, o)
	}

	out, err := matrix.NewDense(n, 2)
	if err != nil {
		return nil, classify(op, err)
	}
	err = o.executor().ForEach(n, func(j int) error {
		work, err := matrix.NewDenseFrom(n, n, ad.RawData())
		if err != nil {
			return err
		}
		if err = work.ZeroCol(j); err != nil {
			return err
		}
		lj, err := invertIdentityMinus(sectorTag(j), work, o)
		if err != nil {
			return err
		}
		x, err := matrix.MatVec(lj, demand)
		if err != nil {
			return err
		}

		return storeDelta(out, j, x, total)
	})
	if err != nil {
		return nil, classify(op, err)
	}

	return out, nil
}

// ForwardExtraction returns the n×2 table of (delta, delta/Σp) obtained by
// extracting each sector's row from F.
//
// Inputs:
//   - F: n×n allocation coefficients.
//   - VA: k×n value added (k ≥ 1); only its column sums are used.
//   - p: total production, no zero entries, non-zero sum.
//
// Errors:
//   - ErrDimensionMismatch, ErrDegenerate, ErrSingularMatrix, ErrNumericalInstability.
func ForwardExtraction(F, VA matrix.Matrix, p []float64, opts ...Option) (*matrix.Dense, error) {
	const op = opForwardExtraction
	fd, n, err := squareOperand(op, "F", F)
	if err != nil {
		return nil, err
	}
	vad, err := denseOf(op, "VA", VA)
	if err != nil {
		return nil, err
	}
	if vad.Cols() != n {
		return nil, ioaErrorf(op, ErrDimensionMismatch, "VA has %d columns, want %d", vad.Cols(), n)
	}
	if err = finiteDense(op, "VA", vad); err != nil {
		return nil, err
	}
	total, err := productionTotal(op, p, n)
	if err != nil {
		return nil, err
	}
	supply, err := matrix.ColSums(vad)
	if err != nil {
		return nil, classify(op, err)
	}

	o := gatherOptions(opts...)
	o.logger.Debug("extraction started", "op", op, "n", n, "rank_one", o.rankOne)
	if o.rankOne {
		return forwardRankOne(op, fd, supply, total, o)
	}

	out, err := matrix.NewDense(n, 2)
	if err != nil {
		return nil, classify(op, err)
	}
	err = o.executor().ForEach(n, func(i int) error {
		work, err := matrix.NewDenseFrom(n, n, fd.RawData())
		if err != nil {
			return err
		}
		if err = work.ZeroRow(i); err != nil {
			return err
		}
		gi, err := invertIdentityMinus(sectorTag(i), work, o)
		if err != nil {
			return err
		}
		x, err := matrix.VecMat(supply, gi)
		if err != nil {
			return err
		}

		return storeDelta(out, i, x, total)
	})
	if err != nil {
		return nil, classify(op, err)
	}

	return out, nil
}

// TotalExtraction returns bwd + fwd elementwise (both n×2).
// Errors: ErrDimensionMismatch for nil operands or differing shapes, or a
// width other than 2.
func TotalExtraction(bwd, fwd matrix.Matrix) (*matrix.Dense, error) {
	const op = opTotalExtraction
	bd, err := denseOf(op, "backward", bwd)
	if err != nil {
		return nil, err
	}
	fd, err := denseOf(op, "forward", fwd)
	if err != nil {
		return nil, err
	}
	if bd.Cols() != 2 {
		return nil, ioaErrorf(op, ErrDimensionMismatch, "extraction tables have 2 columns, got %d", bd.Cols())
	}
	sum, err := matrix.Add(bd, fd)
	if err != nil {
		return nil, classify(op, err)
	}

	return sum, nil
}

// productionTotal validates p and returns Σ p (non-zero).
func productionTotal(op string, p []float64, n int) (float64, error) {
	if err := divisors(op, "p", p, n); err != nil {
		return 0, err
	}
	total := matrix.VecSum(p)
	if total == 0 {
		return 0, ioaErrorf(op, ErrDegenerate, "sum(p) == 0")
	}

	return total, nil
}

// sectorTag labels errors raised inside a per-sector task.
func sectorTag(k int) string { return fmt.Sprintf("sector %d", k) }

// storeDelta writes (Σx − total, (Σx − total)/total) into row k of out.
// Set rejects NaN/Inf, which surfaces as ErrNumericalInstability.
func storeDelta(out *matrix.Dense, k int, x []float64, total float64) error {
	delta := matrix.VecSum(x) - total
	if err := out.Set(k, ExtractionAbsolute, delta); err != nil {
		return classify(sectorTag(k), err)
	}
	if err := out.Set(k, ExtractionRelative, delta/total); err != nil {
		return classify(sectorTag(k), err)
	}

	return nil
}
