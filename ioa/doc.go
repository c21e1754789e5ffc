// SPDX-License-Identifier: MIT

// Package ioa implements input-output structural analysis on dense
// row-major matrices.
//
// Pipeline:
//
//	T, p ──TechnicalCoefficients──▶ A ──LeontiefInverse──▶ L ──▶ linkages, multipliers,
//	     ──AllocationCoefficients─▶ F ──GhoshInverse─────▶ G     extraction, influence
//
// Every function is a pure transformation of its arguments: inputs are never
// mutated and nothing is cached between calls. Work that decomposes into
// independent tasks (rows, sectors, matrix cells) is submitted to a
// parallel.Executor, by default the process-wide parallel.Default() pool;
// WithExecutor(parallel.Sequential()) makes a call single-threaded.
//
// Indexing: element (i,j) of every matrix is at RawData()[i*cols+j], and
// T[i][j] is the flow from sector i (row) to sector j (column). Column-major
// sources must go through matrix.FromColumnMajor first.
//
// Errors are one of ErrDimensionMismatch, ErrDegenerate, ErrSingularMatrix,
// ErrNumericalInstability or ErrNotProductive, tagged with the operation name.
// Inputs are validated before any factorization runs.
package ioa
