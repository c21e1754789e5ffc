// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication; each facade delegates to the canonical implementation.
//   - Keep function names explicit and intention-revealing to improve discoverability.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.
//
// AI-Hints:
//   - Prefer passing *Dense to unlock fast-paths in kernels (flat-slice loops).
//   - Use NewIdentity/NewZeros to build matrices with explicit shape and neutral elements.

package matrix

// ---------- Constructors & Utilities ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// ZerosLike returns a new zero matrix with the same shape as m.
// Handy to preallocate accumulators.
func ZerosLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ZerosLike", err)
	}

	return NewDense(m.Rows(), m.Cols())
}

// ---------- Row/column reductions ----------

// RowSums returns vector r where r[i] = sum_j m[i,j].
// Implementation: MatVec(m, ones(cols)). No custom loops.
// Complexity: O(rc).
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("RowSums", err)
	}
	ones := Ones(m.Cols())

	return MatVec(m, ones)
}

// ColSums returns vector c where c[j] = sum_i m[i,j].
// Implementation: VecMat(ones(rows), m).
// Complexity: O(rc).
func ColSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ColSums", err)
	}
	ones := Ones(m.Rows())

	return VecMat(ones, m)
}

// Ones returns a vector of n ones.
func Ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1.0
	}

	return v
}

// ---------- Diagonal scaling ----------

// ScaleRows returns diag(s) · m (row i multiplied by s[i]).
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(rc).
func ScaleRows(m Matrix, s []float64) (*Dense, error) { return ewScaleRows(m, s) }

// ScaleCols returns m · diag(s) (column j multiplied by s[j]).
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(rc).
func ScaleCols(m Matrix, s []float64) (*Dense, error) { return ewScaleCols(m, s) }

// ---------- In-place accumulation ----------

// AddInPlace performs dst += src. Shapes must match.
func AddInPlace(dst, src *Dense) error { return ewAddInPlace(dst, src) }

// AccumSquaredScaledDiff performs dst += ((a − b) * inv)² element-wise.
// Shapes must match. Complexity: O(rc), no allocation.
func AccumSquaredScaledDiff(dst, a, b *Dense, inv float64) error {
	return ewAccumSquaredScaledDiff(dst, a, b, inv)
}

// ---------- Numeric compare ----------

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN never compares close.
//
// AI-Hints:
//   - AllClose with small atol/rtol is ideal for invariance tests in unit tests.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}
