// SPDX-License-Identifier: MIT
// Package: ioa
//
// Purpose:
//   - Output multipliers (total, direct, indirect) from L and A.
//   - One satellite-account multiplier algorithm shared by value added,
//     employment and any other per-sector account.
//
// Formulas:
//   - total[j]        = Σ_i L[i][j]
//   - direct[j]       = Σ_i A[i][j]
//   - indirect[j]     = total[j] − direct[j]
//   - requirements[i] = component[i] / p[i]
//   - generator       = diag(requirements) · L
//   - multiplier[j]   = Σ_i generator[i][j]
//   - indirect[j]     = multiplier[j] − requirements[j]
//
// Complexity:
//   - Time O(n²), Space O(n²) for the generator.

package ioa

import (
	"github.com/katalvlaran/fio/matrix"
)

const (
	opOutputMultiplier    = "OutputMultiplier"
	opSatelliteMultiplier = "SatelliteMultiplier"
)

// Satellite account labels used by the named wrappers.
const (
	AccountValueAdded = "value_added"
	AccountEmployment = "employment"
)

// OutputMultipliers holds the column-sum multipliers of L and A.
type OutputMultipliers struct {
	Total    []float64 `json:"total" yaml:"total"`
	Direct   []float64 `json:"direct" yaml:"direct"`
	Indirect []float64 `json:"indirect" yaml:"indirect"`
}

// SatelliteMultipliers holds the four products of the satellite algorithm.
type SatelliteMultipliers struct {
	Account      string        `json:"account,omitempty" yaml:"account,omitempty"`
	Requirements []float64     `json:"requirements" yaml:"requirements"`
	Generator    *matrix.Dense `json:"-" yaml:"-"`
	Multiplier   []float64     `json:"multiplier" yaml:"multiplier"`
	Indirect     []float64     `json:"indirect" yaml:"indirect"`
}

// OutputMultiplier returns colsum(L), colsum(A) and their difference.
// Indirect is computed by a single float subtraction per entry.
//
// Errors:
//   - ErrDimensionMismatch (non-square, or L and A of different n),
//     ErrNumericalInstability.
func OutputMultiplier(L, A matrix.Matrix) (OutputMultipliers, error) {
	var res OutputMultipliers
	ld, n, err := squareOperand(opOutputMultiplier, "L", L)
	if err != nil {
		return res, err
	}
	ad, _, err := squareOperand(opOutputMultiplier, "A", A)
	if err != nil {
		return res, err
	}
	if err = sameSize(opOutputMultiplier, "A", ad, n); err != nil {
		return res, err
	}

	if res.Total, err = matrix.ColSums(ld); err != nil {
		return res, classify(opOutputMultiplier, err)
	}
	if res.Direct, err = matrix.ColSums(ad); err != nil {
		return res, classify(opOutputMultiplier, err)
	}
	res.Indirect = make([]float64, n)
	for j := 0; j < n; j++ {
		res.Indirect[j] = res.Total[j] - res.Direct[j]
	}

	return res, nil
}

// SatelliteMultiplier runs the satellite algorithm for an arbitrary account vector.
//
// Errors:
//   - ErrDimensionMismatch: L non-square, len(component) or len(p) != n.
//   - ErrDegenerate: p[k] == 0.
//   - ErrNumericalInstability: NaN/Inf in any input.
func SatelliteMultiplier(L matrix.Matrix, component, p []float64) (SatelliteMultipliers, error) {
	return satellite(opSatelliteMultiplier, "", L, component, p)
}

// ValueAddedMultiplier is SatelliteMultiplier labelled AccountValueAdded.
func ValueAddedMultiplier(L matrix.Matrix, valueAdded, p []float64) (SatelliteMultipliers, error) {
	return satellite("ValueAddedMultiplier", AccountValueAdded, L, valueAdded, p)
}

// EmploymentMultiplier is SatelliteMultiplier labelled AccountEmployment.
func EmploymentMultiplier(L matrix.Matrix, employment, p []float64) (SatelliteMultipliers, error) {
	return satellite("EmploymentMultiplier", AccountEmployment, L, employment, p)
}

func satellite(op, account string, L matrix.Matrix, component, p []float64) (SatelliteMultipliers, error) {
	res := SatelliteMultipliers{Account: account}
	ld, n, err := squareOperand(op, "L", L)
	if err != nil {
		return res, err
	}
	if err = vector(op, "component", component, n); err != nil {
		return res, err
	}
	if err = divisors(op, "p", p, n); err != nil {
		return res, err
	}

	res.Requirements = make([]float64, n)
	for i := 0; i < n; i++ {
		res.Requirements[i] = component[i] / p[i]
	}
	if res.Generator, err = matrix.ScaleRows(ld, res.Requirements); err != nil {
		return res, classify(op, err)
	}
	if res.Multiplier, err = matrix.ColSums(res.Generator); err != nil {
		return res, classify(op, err)
	}
	res.Indirect = make([]float64, n)
	for j := 0; j < n; j++ {
		res.Indirect[j] = res.Multiplier[j] - res.Requirements[j]
	}

	return res, nil
}
