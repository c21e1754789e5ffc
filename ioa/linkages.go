// SPDX-License-Identifier: MIT
// Package: ioa
//
// Purpose:
//   - Read-only reductions over an inverse matrix (L or G): averages,
//     forward/backward linkages and the dispersion coefficients of variation.
//
// Formulas (n sectors, M the inverse):
//   - avg            = Σ_ij M[i][j] / n²
//   - forward[i]     = rowAvg[i] / avg
//   - backward[j]    = colAvg[j] / avg
//   - power[j]       = sqrt( Σ_i (M[i][j] − colAvg[j])² / (n−1) ) / colAvg[j]
//   - sensitivity[i] = sqrt( Σ_j (M[i][j] − rowAvg[i])² / (n−1) ) / rowAvg[i]
//
// Errors:
//   - ErrDimensionMismatch for a nil or non-square M.
//   - ErrDegenerate for a zero average, a zero row/column average in a
//     dispersion statistic, or n < 2 in a dispersion statistic.
//
// Determinism:
//   - Each dispersion entry is computed by exactly one task with a fixed loop
//     order, so results do not depend on the executor.

package ioa

import (
	"github.com/katalvlaran/fio/matrix"
)

const (
	opAverage     = "Average"
	opRowAverages = "RowAverages"
	opColAverages = "ColAverages"
	opForward     = "ForwardLinkages"
	opBackward    = "BackwardLinkages"
	opPower       = "PowerOfDispersion"
	opSensitivity = "SensitivityOfDispersion"
	opLinkages    = "Linkages"
)

// LinkageReport gathers every linkage statistic of one inverse matrix.
type LinkageReport struct {
	Average                 float64   `json:"average" yaml:"average"`
	RowAverages             []float64 `json:"row_averages" yaml:"row_averages"`
	ColAverages             []float64 `json:"col_averages" yaml:"col_averages"`
	Forward                 []float64 `json:"forward" yaml:"forward"`
	Backward                []float64 `json:"backward" yaml:"backward"`
	PowerOfDispersion       []float64 `json:"power_of_dispersion" yaml:"power_of_dispersion"`
	SensitivityOfDispersion []float64 `json:"sensitivity_of_dispersion" yaml:"sensitivity_of_dispersion"`
}

// Average returns the mean of all n² entries of M.
func Average(M matrix.Matrix) (float64, error) {
	d, _, err := squareOperand(opAverage, "M", M)
	if err != nil {
		return 0, err
	}
	avg, err := matrix.Mean(d)
	if err != nil {
		return 0, classify(opAverage, err)
	}

	return avg, nil
}

// RowAverages returns the mean of each row of M.
func RowAverages(M matrix.Matrix) ([]float64, error) {
	d, _, err := squareOperand(opRowAverages, "M", M)
	if err != nil {
		return nil, err
	}
	v, err := matrix.RowMeans(d)

	return v, classify(opRowAverages, err)
}

// ColAverages returns the mean of each column of M.
func ColAverages(M matrix.Matrix) ([]float64, error) {
	d, _, err := squareOperand(opColAverages, "M", M)
	if err != nil {
		return nil, err
	}
	v, err := matrix.ColMeans(d)

	return v, classify(opColAverages, err)
}

// ForwardLinkages returns rowAvg[i] / avg.
func ForwardLinkages(M matrix.Matrix) ([]float64, error) {
	d, _, err := squareOperand(opForward, "M", M)
	if err != nil {
		return nil, err
	}
	avg, err := nonZeroAverage(opForward, d)
	if err != nil {
		return nil, err
	}
	rows, err := matrix.RowMeans(d)
	if err != nil {
		return nil, classify(opForward, err)
	}

	return ratios(rows, avg), nil
}

// BackwardLinkages returns colAvg[j] / avg.
func BackwardLinkages(M matrix.Matrix) ([]float64, error) {
	d, _, err := squareOperand(opBackward, "M", M)
	if err != nil {
		return nil, err
	}
	avg, err := nonZeroAverage(opBackward, d)
	if err != nil {
		return nil, err
	}
	cols, err := matrix.ColMeans(d)
	if err != nil {
		return nil, classify(opBackward, err)
	}

	return ratios(cols, avg), nil
}

// PowerOfDispersion returns the coefficient of variation of each column of M.
func PowerOfDispersion(M matrix.Matrix, opts ...Option) ([]float64, error) {
	d, _, err := squareOperand(opPower, "M", M)
	if err != nil {
		return nil, err
	}
	cols, err := matrix.ColMeans(d)
	if err != nil {
		return nil, classify(opPower, err)
	}

	return dispersion(opPower, d, cols, false, gatherOptions(opts...))
}

// SensitivityOfDispersion returns the coefficient of variation of each row of M.
func SensitivityOfDispersion(M matrix.Matrix, opts ...Option) ([]float64, error) {
	d, _, err := squareOperand(opSensitivity, "M", M)
	if err != nil {
		return nil, err
	}
	rows, err := matrix.RowMeans(d)
	if err != nil {
		return nil, classify(opSensitivity, err)
	}

	return dispersion(opSensitivity, d, rows, true, gatherOptions(opts...))
}

// Linkages computes every statistic of LinkageReport from one pass of row and
// column means. Errors as the individual functions.
func Linkages(M matrix.Matrix, opts ...Option) (LinkageReport, error) {
	var rep LinkageReport
	d, _, err := squareOperand(opLinkages, "M", M)
	if err != nil {
		return rep, err
	}
	o := gatherOptions(opts...)

	if rep.Average, err = nonZeroAverage(opLinkages, d); err != nil {
		return rep, err
	}
	if rep.RowAverages, err = matrix.RowMeans(d); err != nil {
		return rep, classify(opLinkages, err)
	}
	if rep.ColAverages, err = matrix.ColMeans(d); err != nil {
		return rep, classify(opLinkages, err)
	}
	rep.Forward = ratios(rep.RowAverages, rep.Average)
	rep.Backward = ratios(rep.ColAverages, rep.Average)
	if rep.PowerOfDispersion, err = dispersion(opLinkages, d, rep.ColAverages, false, o); err != nil {
		return rep, err
	}
	if rep.SensitivityOfDispersion, err = dispersion(opLinkages, d, rep.RowAverages, true, o); err != nil {
		return rep, err
	}
	o.logger.Debug("linkages computed", "n", d.Rows(), "average", rep.Average)

	return rep, nil
}

// nonZeroAverage returns the grand mean, rejecting zero.
func nonZeroAverage(op string, d *matrix.Dense) (float64, error) {
	avg, err := matrix.Mean(d)
	if err != nil {
		return 0, classify(op, err)
	}
	if avg == 0 {
		return 0, ioaErrorf(op, ErrDegenerate, "average is zero")
	}

	return avg, nil
}

// ratios returns v[k] / den for every k.
func ratios(v []float64, den float64) []float64 {
	out := make([]float64, len(v))
	for k, x := range v {
		out[k] = x / den
	}

	return out
}

// dispersion computes the per-row (byRow) or per-column coefficient of
// variation of d around the supplied means, one task per line.
func dispersion(op string, d *matrix.Dense, means []float64, byRow bool, o options) ([]float64, error) {
	n := d.Rows()
	if n < 2 {
		return nil, ioaErrorf(op, ErrDegenerate, "dispersion needs n >= 2, got %d", n)
	}
	out := make([]float64, n)
	err := o.executor().ForEach(n, func(k int) error {
		var line []float64
		var err error
		if byRow {
			line, err = d.Row(k)
		} else {
			line, err = d.Col(k)
		}
		if err != nil {
			return err
		}
		cv, err := matrix.VecCV(line, means[k])
		if err != nil {
			return ioaErrorf(op, ErrDegenerate, "line %d: %v", k, err)
		}
		out[k] = cv
		return nil
	})
	if err != nil {
		return nil, classify(op, err)
	}

	return out, nil
}
