// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the descriptive statistics used by linkage analysis: grand mean,
//     row/column means and the sample coefficient of variation of a vector.
//   - Keep tight loops deterministic so parallel callers that split work by
//     row or column still produce identical per-index results.
//
// Exposed API:
//   - Mean(X)          -> grand mean of all r*c entries
//   - RowMeans(X)      -> per-row means (len=r)
//   - ColMeans(X)      -> per-column means (len=c)
//   - VecMean(x)       -> mean of a vector
//   - VecCV(x, mean)   -> sqrt(Σ(x−mean)²/(n−1)) / mean
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Dense fast-paths avoid At and operate on row-major flat buffers.

package matrix

import (
	"errors"
	"math"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMean     = "Mean"
	opRowMeans = "RowMeans"
	opColMeans = "ColMeans"
	opVecCV    = "VecCV"
)

// ErrZeroMean is returned by VecCV when the supplied mean is zero: the
// coefficient of variation is undefined.
var ErrZeroMean = errors.New("matrix: coefficient of variation with zero mean")

// ErrTooFewSamples is returned by VecCV for vectors shorter than two entries:
// the (n−1) denominator vanishes.
var ErrTooFewSamples = errors.New("matrix: sample statistic needs at least two values")

// Mean returns Σ_ij X[i,j] / (r*c).
// Errors: ErrNilMatrix. Complexity: O(r*c).
func Mean(X Matrix) (float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return 0, matrixErrorf(opMean, err)
	}
	d, err := asDense(X)
	if err != nil {
		return 0, matrixErrorf(opMean, err)
	}
	s := ZeroSum
	for _, v := range d.data {
		s += v
	}

	return s / float64(len(d.data)), nil
}

// RowMeans returns means[i] = Σ_j X[i,j] / c.
// Implementation: RowSums, then divide by c.
// Complexity: O(r*c).
func RowMeans(X Matrix) ([]float64, error) {
	sums, err := RowSums(X)
	if err != nil {
		return nil, matrixErrorf(opRowMeans, err)
	}
	invC := 1.0 / float64(X.Cols())
	for i := range sums {
		sums[i] *= invC
	}

	return sums, nil
}

// ColMeans returns means[j] = Σ_i X[i,j] / r.
// Implementation: ColSums, then divide by r.
// Complexity: O(r*c).
func ColMeans(X Matrix) ([]float64, error) {
	sums, err := ColSums(X)
	if err != nil {
		return nil, matrixErrorf(opColMeans, err)
	}
	invR := 1.0 / float64(X.Rows())
	for j := range sums {
		sums[j] *= invR
	}

	return sums, nil
}

// VecMean returns Σ x / len(x); zero for an empty vector.
// Complexity: O(n).
func VecMean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return VecSum(x) / float64(len(x))
}

// VecSum returns Σ x in index order.
// Complexity: O(n).
func VecSum(x []float64) float64 {
	s := ZeroSum
	for _, v := range x {
		s += v
	}

	return s
}

// VecCV returns the sample coefficient of variation of x around the given mean:
//
//	sqrt( Σ_k (x[k] − mean)² / (n−1) ) / mean
//
// Errors:
//   - ErrTooFewSamples for len(x) < 2.
//   - ErrZeroMean when mean == 0.
//
// Complexity: O(n).
func VecCV(x []float64, mean float64) (float64, error) {
	n := len(x)
	if n < 2 {
		return 0, matrixErrorf(opVecCV, ErrTooFewSamples)
	}
	if mean == 0 {
		return 0, matrixErrorf(opVecCV, ErrZeroMean)
	}
	ss := ZeroSum
	var d float64
	for _, v := range x {
		d = v - mean
		ss += d * d
	}

	return math.Sqrt(ss/float64(n-1)) / mean, nil
}
