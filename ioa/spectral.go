// SPDX-License-Identifier: MIT
// Package: ioa
//
// Purpose:
//   - Diagnose the Hawkins–Simon condition before inverting: a non-negative
//     coefficient matrix A yields a non-negative (I − A)⁻¹ iff ρ(A) < 1.
//
// Implementation:
//   - Eigenvalues via gonum's general (non-symmetric) eigensolver; ρ is the
//     largest modulus. No eigenvectors are formed.
//
// Complexity:
//   - Time O(n³), Space O(n²).

package ioa

import (
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/fio/matrix"
)

const (
	opSpectralRadius  = "SpectralRadius"
	opHawkinsSimon    = "CheckHawkinsSimon"
	productivityLimit = 1.0
)

// SpectralRadius returns max |λ| over the eigenvalues of M.
//
// Errors:
//   - ErrDimensionMismatch for a nil or non-square M.
//   - ErrNumericalInstability when the eigen decomposition does not converge.
func SpectralRadius(M matrix.Matrix) (float64, error) {
	d, n, err := squareOperand(opSpectralRadius, "M", M)
	if err != nil {
		return 0, err
	}
	g := mat.NewDense(n, n, append([]float64(nil), d.RawData()...))

	var eig mat.Eigen
	if ok := eig.Factorize(g, mat.EigenNone); !ok {
		return 0, ioaErrorf(opSpectralRadius, ErrNumericalInstability, "eigen decomposition did not converge")
	}
	rho := 0.0
	for _, v := range eig.Values(nil) {
		if m := cmplx.Abs(v); m > rho {
			rho = m
		}
	}

	return rho, nil
}

// CheckHawkinsSimon returns ρ(A) and ErrNotProductive when ρ(A) ≥ 1.
// A nil error means I − A is invertible with a non-negative inverse for
// non-negative A.
func CheckHawkinsSimon(A matrix.Matrix) (float64, error) {
	rho, err := SpectralRadius(A)
	if err != nil {
		return 0, classify(opHawkinsSimon, err)
	}
	if rho >= productivityLimit {
		return rho, ioaErrorf(opHawkinsSimon, ErrNotProductive, "spectral radius %.6g >= 1", rho)
	}

	return rho, nil
}
