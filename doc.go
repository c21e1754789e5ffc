// Package fio is an input-output economics engine: given an inter-industry
// transactions table it derives the structural indicators used in
// Leontief/Ghosh analysis.
//
// What it computes:
//
//   - Coefficients: technical (A = T·diag(p)⁻¹) and allocation (F = diag(p)⁻¹·T)
//   - Inverses: Leontief L = (I − A)⁻¹ and Ghosh G = (I − F)⁻¹, via LU with
//     partial pivoting
//   - Linkages: forward/backward (Rasmussen) and power/sensitivity of dispersion
//   - Multipliers: output (total, direct, indirect) and satellite accounts
//     (value added, employment)
//   - Hypothetical extraction: backward, forward and total
//   - Field of influence: sensitivity of L to perturbing each coefficient
//   - Hawkins–Simon diagnostic: spectral radius of A
//
// Under the hood everything is organized into three packages:
//
//	matrix/    dense row-major matrices, LU, element-wise kernels, statistics
//	parallel/  configure-once worker pool and the Executor abstraction
//	ioa/       the analyses above, with functional options
//
// The fio command (cmd/fio) runs the whole pipeline on a YAML table:
//
//	fio analyze -i table.yaml --format json --rank-one
//
// Indexing is row-major everywhere: T[i][j] is what sector i sells to sector j.
// Column-major buffers go through matrix.FromColumnMajor first.
//
//	go get github.com/katalvlaran/fio
package fio
