// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// element-wise addition and subtraction, matrix multiplication, transpose,
// scalar scaling, matrix-vector products, and LU factorization with partial
// pivoting plus the solves and inverse built on it. All functions perform
// strict fail-fast validation and return clear errors on dimension mismatches.
//
// Purpose:
//   - Declare canonical linear-algebra kernels used across the module.
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - Every kernel returns a fresh *Dense; inputs are never mutated.
//   - All kernels use central validators and wrap via matrixErrorf at the facade.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in LU/Inverse routines.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd           = "Add"
	opSub           = "Sub"
	opMul           = "Mul"
	opTranspose     = "Transpose"
	opScale         = "Scale"
	opInverse       = "Inverse"
	opLU            = "LU"
	opSolve         = "Solve"
	opMatVec        = "MatVec"
	opVecMat        = "VecMat"
	opIdentityMinus = "IdentityMinus"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// asDense returns m itself when it is a *Dense, otherwise a row-major copy.
// It lets kernels run a single flat-slice implementation.
// Complexity: O(1) for *Dense, O(r*c) otherwise.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	rows, cols := m.Rows(), m.Cols()
	out, err := newDenseWithPolicy(rows, cols, false)
	if err != nil {
		return nil, err
	}
	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v, err = m.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*cols+j] = v
		}
	}
	out.validateNaNInf = DefaultValidateNaNInf

	return out, nil
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Inputs must have identical shapes. A fresh Dense is allocated; operands are not mutated.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Allocate result Dense(rows, cols).
//   - Stage 2: Fast-path if both are *Dense - single flat loop 0..n-1.
//     Otherwise, fallback At with fixed i→j order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	// Fast path: *Dense with *Dense → single flat loop.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			length := rows * cols
			for idx := 0; idx < length; idx++ {
				res.data[idx] = da.data[idx] + sign*db.data[idx]
			}

			return res, nil
		}
	}

	// Fallback: interface path with fixed i→j order.
	var i, j int
	var av, bv float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			av, err = a.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			bv, err = b.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			res.data[i*cols+j] = av + sign*bv
		}
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A − B and returns a fresh Dense result.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// IdentityMinus computes I − m for a square m in one pass (no identity allocation).
// This is the Leontief/Ghosh matrix builder.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square).
//
// Complexity:
//   - Time O(n^2), Space O(n^2).
func IdentityMinus(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opIdentityMinus, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opIdentityMinus, err)
	}
	n := src.r
	res, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opIdentityMinus, err)
	}
	for idx, v := range src.data {
		res.data[idx] = -v
	}
	for i := 0; i < n; i++ {
		res.data[i*n+i] += 1.0
	}

	return res, nil
}

// Mul computes the matrix product C = A × B.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b); allocate result (a.Rows × b.Cols).
//   - Stage 2: i-k-j loop over flat row-major buffers, skipping zero a(i,k).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := da.r, da.c, db.c
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var i, j, k int
	var av float64
	var rowOffsetA, rowOffsetB, rowOffsetR int
	for i = 0; i < aRows; i++ {
		rowOffsetA = i * aCols
		rowOffsetR = i * bCols
		for k = 0; k < aCols; k++ {
			av = da.data[rowOffsetA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped.
// Errors: ErrNilMatrix. Complexity: O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	rows, cols := dm.r, dm.c
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	// data[i*cols + j] → res.data[j*rows + i]
	var i, j, baseSrc int
	for i = 0; i < rows; i++ {
		baseSrc = i * cols
		for j = 0; j < cols; j++ {
			res.data[j*rows+i] = dm.data[baseSrc+j]
		}
	}

	return res, nil
}

// Scale returns alpha * m as a fresh Dense.
// Errors: ErrNilMatrix. Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := NewDense(dm.r, dm.c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for idx, v := range dm.data {
		res.data[idx] = v * alpha
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Fast-path: *Dense performs one pass per row with flat indexing.
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	// Fast-path: *Dense allows flat, row-major dot-products.
	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc float64
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				acc += d.data[base+j] * x[j]
			}
			y[i] = acc
		}

		return y, nil
	}

	// Fallback: interface-based dot-products via At.
	var i, j int
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		y[i] = ZeroSum
		for j = 0; j < cols; j++ {
			mv, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// VecMat computes the row-vector product y = x * m (y[j] = Σ_i x[i]*m[i,j]).
//
// Contract: m non-nil; len(x) == m.Rows().
// Determinism: fixed i→j loop order (row-major friendly).
// Complexity: Time O(r*c), Space O(c).
func VecMat(x []float64, m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	if err := ValidateVecLen(x, m.Rows()); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	y := make([]float64, d.c)
	var i, j, base int
	var xv float64
	for i = 0; i < d.r; i++ {
		xv = x[i]
		if xv == 0 {
			continue
		}
		base = i * d.c
		for j = 0; j < d.c; j++ {
			y[j] += xv * d.data[base+j]
		}
	}

	return y, nil
}

// LUFactors holds a partial-pivoting LU factorization P·A = L·U.
// The unit lower factor L (below the diagonal) and the upper factor U (on and
// above the diagonal) share one row-major n×n buffer; perm[i] is the source
// row of A that landed in row i.
type LUFactors struct {
	n    int
	lu   []float64
	perm []int
	sign float64 // +1 or −1: parity of the row permutation
}

// LU computes the Doolittle factorization with partial (row) pivoting.
// Implementation:
//   - Stage 1: Validate m (not nil, square, finite); copy A into the work buffer.
//   - Stage 2: For each column k pick the row p ≥ k with the largest |a(p,k)|,
//     swap rows k and p, then eliminate below the pivot.
//
// Behavior highlights:
//   - Deterministic: ties in the pivot search keep the lowest row index.
//   - Degenerate pivot (|pivot| ≤ tol, default exactly zero) → ErrSingular.
//
// Inputs:
//   - m: square Matrix (n×n).
//   - opts: WithPivotTolerance adjusts the degenerate-pivot threshold.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// AI-Hints:
//   - Reuse the returned factors for several right-hand sides (Solve) instead of
//     forming the inverse.
func LU(m Matrix, opts ...Option) (*LUFactors, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	o := gatherOptions(opts...)
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	if src.HasNaNInf() {
		return nil, matrixErrorf(opLU, ErrNaNInf)
	}

	n := src.r
	f := &LUFactors{
		n:    n,
		lu:   make([]float64, n*n),
		perm: make([]int, n),
		sign: 1,
	}
	copy(f.lu, src.data)
	for i := 0; i < n; i++ {
		f.perm[i] = i
	}

	var i, j, k, p int
	var maxAbs, v, pivot, factor float64
	var baseK, baseI int
	a := f.lu
	for k = 0; k < n; k++ {
		// Pivot search in column k, rows k..n-1.
		p = k
		maxAbs = math.Abs(a[k*n+k])
		for i = k + 1; i < n; i++ {
			v = math.Abs(a[i*n+k])
			if v > maxAbs {
				maxAbs = v
				p = i
			}
		}
		if maxAbs <= o.pivotTol || maxAbs == ZeroPivot {
			return nil, matrixErrorf(opLU, fmt.Errorf("pivot column %d: %w", k, ErrSingular))
		}

		// Row swap k <-> p.
		if p != k {
			baseK, baseI = k*n, p*n
			for j = 0; j < n; j++ {
				a[baseK+j], a[baseI+j] = a[baseI+j], a[baseK+j]
			}
			f.perm[k], f.perm[p] = f.perm[p], f.perm[k]
			f.sign = -f.sign
		}

		// Elimination below the pivot.
		baseK = k * n
		pivot = a[baseK+k]
		for i = k + 1; i < n; i++ {
			baseI = i * n
			factor = a[baseI+k] / pivot
			a[baseI+k] = factor
			if factor == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a[baseI+j] -= factor * a[baseK+j]
			}
		}
	}

	return f, nil
}

// Size returns n for the n×n factorization.
func (f *LUFactors) Size() int { return f.n }

// Perm returns a copy of the row permutation (perm[i] = source row of A).
func (f *LUFactors) Perm() []int {
	out := make([]int, f.n)
	copy(out, f.perm)

	return out
}

// L returns the unit lower-triangular factor as a fresh Dense.
func (f *LUFactors) L() *Dense {
	out, _ := NewDense(f.n, f.n)
	for i := 0; i < f.n; i++ {
		for j := 0; j < i; j++ {
			out.data[i*f.n+j] = f.lu[i*f.n+j]
		}
		out.data[i*f.n+i] = 1
	}

	return out
}

// U returns the upper-triangular factor as a fresh Dense.
func (f *LUFactors) U() *Dense {
	out, _ := NewDense(f.n, f.n)
	for i := 0; i < f.n; i++ {
		for j := i; j < f.n; j++ {
			out.data[i*f.n+j] = f.lu[i*f.n+j]
		}
	}

	return out
}

// Det returns det(A) = sign(P) * Π U[i,i].
// Complexity: O(n).
func (f *LUFactors) Det() float64 {
	det := f.sign
	for i := 0; i < f.n; i++ {
		det *= f.lu[i*f.n+i]
	}

	return det
}

// Solve returns x with A·x = b using the stored factors.
//
// Implementation:
//   - Stage 1: permute b into y (y[i] = b[perm[i]]).
//   - Stage 2: forward substitution with unit L (top-down).
//   - Stage 3: backward substitution with U (bottom-up).
//
// Errors:
//   - ErrDimensionMismatch when len(b) != n.
//
// Complexity:
//   - Time O(n^2), Space O(n).
func (f *LUFactors) Solve(b []float64) ([]float64, error) {
	if err := ValidateVecLen(b, f.n); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	x := make([]float64, f.n)
	f.solveInto(x, b)

	return x, nil
}

// solveInto writes the solution of A·x = b into x (len(x) == len(b) == n).
func (f *LUFactors) solveInto(x, b []float64) {
	n := f.n
	a := f.lu
	var i, k, base int
	var sum float64
	for i = 0; i < n; i++ {
		x[i] = b[f.perm[i]]
	}
	// Forward: L*y = Pb (unit diagonal).
	for i = 0; i < n; i++ {
		sum = x[i]
		base = i * n
		for k = 0; k < i; k++ {
			sum -= a[base+k] * x[k]
		}
		x[i] = sum
	}
	// Backward: U*x = y.
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		base = i * n
		for k = i + 1; k < n; k++ {
			sum -= a[base+k] * x[k]
		}
		x[i] = sum / a[base+i]
	}
}

// Inverse assembles A^{-1} column by column from the stored factors.
// The result may hold NaN/Inf if the factorization was numerically degenerate
// but above the pivot tolerance; callers inspect it with HasNaNInf.
// Complexity: Time O(n^3), Space O(n^2).
func (f *LUFactors) Inverse() *Dense {
	n := f.n
	inv, _ := newDenseWithPolicy(n, n, false)
	e := make([]float64, n)
	x := make([]float64, n)
	var col, i int
	for col = 0; col < n; col++ {
		e[col] = 1
		f.solveInto(x, e)
		e[col] = 0
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}
	inv.validateNaNInf = DefaultValidateNaNInf

	return inv
}

// Inverse computes A^{-1} via LU with partial pivoting.
// The input must be non-nil and square. Returns ErrSingular if a degenerate
// pivot is detected. Produces a new Dense; does not mutate the input.
//
// Implementation:
//   - Stage 1: LU(m, opts...) → P·A = L·U.
//   - Stage 2: For each canonical basis column e_col solve L·U·x = P·e_col and
//     write x into column `col`.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// AI-Hints:
//   - If you only need A^{-1}*b, call LU once and Solve (cheaper than forming A^{-1}).
func Inverse(m Matrix, opts ...Option) (*Dense, error) {
	f, err := LU(m, opts...)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	return f.Inverse(), nil
}
