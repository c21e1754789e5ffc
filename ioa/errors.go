// SPDX-License-Identifier: MIT
// Package ioa: sentinel error set.
// Every analysis returns one of these kinds wrapped with an operation tag.
// Failures raised by the matrix kernels are mapped onto a kind while the
// original cause stays in the chain, so errors.Is matches both
// ioa.ErrSingularMatrix and matrix.ErrSingular.

package ioa

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/fio/matrix"
)

var (
	// ErrDimensionMismatch indicates operands whose sizes disagree with the sector count n.
	ErrDimensionMismatch = errors.New("ioa: dimension mismatch")

	// ErrDegenerate indicates a divisor that is zero (a production entry, the
	// production total, an average) or a parameter outside its domain (epsilon ≤ 0).
	ErrDegenerate = errors.New("ioa: degenerate input")

	// ErrSingularMatrix indicates that I−A (or I−F) could not be factorized.
	ErrSingularMatrix = errors.New("ioa: singular matrix")

	// ErrNumericalInstability indicates NaN/Inf in an input or in a solve result.
	ErrNumericalInstability = errors.New("ioa: numerical instability")

	// ErrNotProductive indicates a coefficient matrix whose spectral radius is ≥ 1
	// (the Hawkins–Simon condition fails).
	ErrNotProductive = errors.New("ioa: coefficient matrix is not productive")
)

// ioaErrorf tags a kind with the operation and a formatted detail.
func ioaErrorf(op string, kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), kind)
}

// classify maps err onto an ioa kind and prefixes the operation tag.
//
// Mapping:
//   - ioa kinds pass through unchanged.
//   - matrix.ErrSingular → ErrSingularMatrix.
//   - matrix.ErrNaNInf → ErrNumericalInstability.
//   - matrix.ErrZeroMean, matrix.ErrTooFewSamples → ErrDegenerate.
//   - matrix.ErrDimensionMismatch, ErrNilMatrix, ErrInvalidDimensions → ErrDimensionMismatch.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var kind error
	switch {
	case errors.Is(err, ErrDimensionMismatch), errors.Is(err, ErrDegenerate),
		errors.Is(err, ErrSingularMatrix), errors.Is(err, ErrNumericalInstability),
		errors.Is(err, ErrNotProductive):
		return fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, matrix.ErrSingular):
		kind = ErrSingularMatrix
	case errors.Is(err, matrix.ErrNaNInf):
		kind = ErrNumericalInstability
	case errors.Is(err, matrix.ErrZeroMean), errors.Is(err, matrix.ErrTooFewSamples):
		kind = ErrDegenerate
	case errors.Is(err, matrix.ErrDimensionMismatch), errors.Is(err, matrix.ErrNilMatrix),
		errors.Is(err, matrix.ErrInvalidDimensions):
		kind = ErrDimensionMismatch
	default:
		return fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Errorf("%s: %w: %w", op, kind, err)
}
