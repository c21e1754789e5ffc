// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, *private* element-wise and broadcast kernels (ew*) to avoid
//     duplicating tight loops across higher-level ops (stats, multipliers, reductions).
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Design:
//   - All ew* are UNEXPORTED by design (internal micro-kernels).
//   - Public API uses these via thin wrappers in api.go.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - Dense fast-path operates on a single flat buffer (row-major).

package matrix

import (
	"math"
)

// ewScaleRows computes out[i,j] = X[i,j] * scale[i]  (diag(scale) · X).
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
func ewScaleRows(X Matrix, scale []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf("ScaleRows", err)
	}
	r, c := X.Rows(), X.Cols()
	if len(scale) != r {
		return nil, matrixErrorf("ScaleRows", ErrDimensionMismatch)
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf("ScaleRows", err)
	}

	// Dense fast-path.
	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			base := i * c
			sf := scale[i]
			for j := 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] * sf
			}
		}
		return out, nil
	}

	// Generic fallback.
	for i := 0; i < r; i++ {
		sf := scale[i]
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return nil, matrixErrorf("ScaleRows", e)
			}
			out.data[i*c+j] = v * sf
		}
	}
	return out, nil
}

// ewScaleCols computes out[i,j] = X[i,j] * scale[j]  (X · diag(scale)).
// Time: O(r*c). Space: O(r*c).
func ewScaleCols(X Matrix, scale []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf("ScaleCols", err)
	}
	r, c := X.Rows(), X.Cols()
	if len(scale) != c {
		return nil, matrixErrorf("ScaleCols", ErrDimensionMismatch)
	}
	d, err := asDense(X)
	if err != nil {
		return nil, matrixErrorf("ScaleCols", err)
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf("ScaleCols", err)
	}
	for i := 0; i < r; i++ {
		base := i * c
		for j := 0; j < c; j++ {
			out.data[base+j] = d.data[base+j] * scale[j]
		}
	}
	return out, nil
}

// ewAccumSquaredScaledDiff performs dst += ((a − b) * inv)² element-wise, in place.
// All three must share one shape. Time: O(r*c). Space: O(1).
//
// AI-Hint: inner kernel of finite-difference sensitivity sums.
func ewAccumSquaredScaledDiff(dst, a, b *Dense, inv float64) error {
	if dst == nil || a == nil || b == nil {
		return matrixErrorf("AccumSquaredScaledDiff", ErrNilMatrix)
	}
	if err := ValidateSameShape(dst, a); err != nil {
		return matrixErrorf("AccumSquaredScaledDiff", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return matrixErrorf("AccumSquaredScaledDiff", err)
	}
	var d float64
	for idx := range dst.data {
		d = (a.data[idx] - b.data[idx]) * inv
		dst.data[idx] += d * d
	}
	return nil
}

// ewAddInPlace performs dst += src element-wise. Shapes must match.
// Time: O(r*c). Space: O(1).
func ewAddInPlace(dst, src *Dense) error {
	if dst == nil || src == nil {
		return matrixErrorf("AddInPlace", ErrNilMatrix)
	}
	if err := ValidateSameShape(dst, src); err != nil {
		return matrixErrorf("AddInPlace", err)
	}
	for idx, v := range src.data {
		dst.data[idx] += v
	}
	return nil
}

// ewAllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// Time: O(r*c). Space: O(1). Deterministic.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf("AllClose", ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}

	r, c := a.Rows(), a.Cols()

	// Dense fast-path: operate over flat slices when both are *Dense.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := 0; idx < r*c; idx++ {
				if !(math.Abs(da.data[idx]-db.data[idx]) <= atol+rtol*math.Abs(db.data[idx])) { // NaN never passes
					return false, nil
				}
			}
			return true, nil
		}
	}

	// Generic fallback via At.
	var av, bv float64
	var err error
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf("AllClose", err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf("AllClose", err)
			}
			if !(math.Abs(av-bv) <= atol+rtol*math.Abs(bv)) {
				return false, nil
			}
		}
	}

	return true, nil
}
