// SPDX-License-Identifier: MIT
// Package: ioa
//
// Purpose:
//   - Sherman–Morrison corrections that replace a full re-inversion when a
//     perturbation changes the coefficient matrix by a rank-one term.
//
// Identity:
//
//	(M + u·vᵀ)⁻¹ = M⁻¹ − (M⁻¹u)(vᵀM⁻¹) / (1 + vᵀM⁻¹u)
//
// The denominator vanishes exactly when M + u·vᵀ is singular (matrix
// determinant lemma); that case is reported as ErrSingularMatrix.
//
// Cases used here (M = I − A, L = M⁻¹):
//   - Backward extraction of sector j: u = A[:,j], v = e_j.
//     L'·d = y − w·y[j]/(1 + w[j]) with y = L·d, w = L·A[:,j].
//   - Forward extraction of sector i: u = e_i, v = F[i,:].
//     s·G' = z − w·z[i]/(1 + w[i]) with z = s·G, w = F[i,:]·G.
//   - Influence of cell (i,j): u = −ε·e_i, v = e_j.
//     (L' − L)/ε = L[:,i]·L[j,:] / (1 − ε·L[j][i]).

package ioa

import (
	"github.com/katalvlaran/fio/matrix"
)

// shermanMorrisonApply returns y − w·y[k]/(1 + w[k]).
func shermanMorrisonApply(tag string, y, w []float64, k int) ([]float64, error) {
	den := 1 + w[k]
	if den == 0 {
		return nil, ioaErrorf(tag, ErrSingularMatrix, "rank-one update denominator is zero")
	}
	s := y[k] / den
	x := make([]float64, len(y))
	for i := range y {
		x[i] = y[i] - w[i]*s
	}

	return x, nil
}

// backwardRankOne is BackwardExtraction on top of one base inverse.
func backwardRankOne(op string, ad *matrix.Dense, demand []float64, total float64, o options) (*matrix.Dense, error) {
	n := ad.Rows()
	base, err := invertIdentityMinus(op, ad, o)
	if err != nil {
		return nil, err
	}
	y, err := matrix.MatVec(base, demand)
	if err != nil {
		return nil, classify(op, err)
	}
	out, err := matrix.NewDense(n, 2)
	if err != nil {
		return nil, classify(op, err)
	}
	err = o.executor().ForEach(n, func(j int) error {
		u, err := ad.Col(j)
		if err != nil {
			return err
		}
		w, err := matrix.MatVec(base, u)
		if err != nil {
			return err
		}
		x, err := shermanMorrisonApply(sectorTag(j), y, w, j)
		if err != nil {
			return err
		}

		return storeDelta(out, j, x, total)
	})
	if err != nil {
		return nil, classify(op, err)
	}

	return out, nil
}

// forwardRankOne is ForwardExtraction on top of one base inverse.
func forwardRankOne(op string, fd *matrix.Dense, supply []float64, total float64, o options) (*matrix.Dense, error) {
	n := fd.Rows()
	base, err := invertIdentityMinus(op, fd, o)
	if err != nil {
		return nil, err
	}
	z, err := matrix.VecMat(supply, base)
	if err != nil {
		return nil, classify(op, err)
	}
	out, err := matrix.NewDense(n, 2)
	if err != nil {
		return nil, classify(op, err)
	}
	err = o.executor().ForEach(n, func(i int) error {
		v, err := fd.Row(i)
		if err != nil {
			return err
		}
		w, err := matrix.VecMat(v, base)
		if err != nil {
			return err
		}
		x, err := shermanMorrisonApply(sectorTag(i), z, w, i)
		if err != nil {
			return err
		}

		return storeDelta(out, i, x, total)
	})
	if err != nil {
		return nil, classify(op, err)
	}

	return out, nil
}

// accumInfluenceRankOne adds ((L' − L)/ε)² for cell (i,j) into acc, using
// the closed form L[:,i]·L[j,:] / (1 − ε·L[j][i]). l and acc are n×n row-major.
// Complexity: O(n²).
func accumInfluenceRankOne(tag string, acc, l []float64, n, i, j int, eps float64) error {
	den := 1 - eps*l[j*n+i]
	if den == 0 {
		return ioaErrorf(tag, ErrSingularMatrix, "rank-one update denominator is zero")
	}
	rowJ := l[j*n : (j+1)*n]
	var cx, v float64
	var base int
	for x := 0; x < n; x++ {
		cx = l[x*n+i] / den
		if cx == 0 {
			continue
		}
		base = x * n
		for y := 0; y < n; y++ {
			v = cx * rowJ[y]
			acc[base+y] += v * v
		}
	}

	return nil
}
