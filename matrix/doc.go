// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric core of fio: a row-major Dense
// matrix, explicit-layout views over caller buffers, and the deterministic
// kernels the input-output analysis is built from.
//
// The matrix package provides:
//
//   - Dense and MatrixView. Every kernel addresses element (i,j) at offset
//     i*cols+j; column-major data (R, Fortran) enters through FromColumnMajor
//     or NewView(..., ColMajor) and leaves through ToColumnMajor.
//   - Kernels: Add, Sub, Mul, Transpose, Scale, MatVec, VecMat, IdentityMinus,
//     RowSums, ColSums, ScaleRows, ScaleCols.
//   - LU factorization with partial pivoting (LU, LUFactors.Solve, Inverse).
//     A zero pivot column surfaces as ErrSingular.
//   - Statistics: Mean, RowMeans, ColMeans and the sample coefficient of
//     variation VecCV.
//
// Errors are package-level sentinels (see errors.go); match them with errors.Is.
// Loops run in fixed i→j order so repeated calls are bitwise reproducible.
package matrix
