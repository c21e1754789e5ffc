// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/fio/matrix"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// Tolerance used by inverse/identity round-trip checks.
const tolInverse = 1e-9

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Implementation:
//   - Stage 1: Embed matrix.Matrix to forward all methods.
//   - Stage 2: Use hide{X} in tests to force non-*Dense (fallback) paths.
//
// Notes:
//   - Useful to assert fast-path == fallback bitwise (or via AllClose).
type hide struct{ matrix.Matrix }

// MustDense ALLOCATES an r×c *Dense or fails the test (fatal on error).
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	return m
}

// MustFrom builds a *Dense from row-major literals or fails the test.
//
// AI-Hints:
//   - Rows must all share the same length; ragged input is a test bug.
func MustFrom(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	r := len(rows)
	require.Positive(t, r)
	c := len(rows[0])
	flat := make([]float64, 0, r*c)
	for _, row := range rows {
		require.Len(t, row, c)
		flat = append(flat, row...)
	}
	m, err := matrix.NewDenseFrom(r, c, flat)
	require.NoError(t, err)

	return m
}

// fillDenseRand fills m with uniform values in [-1,1) from a seeded source.
func fillDenseRand(t testing.TB, m *matrix.Dense, seed int64) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	require.NoError(t, m.Apply(func(_, _ int, _ float64) float64 {
		return rng.Float64()*2 - 1
	}))
}

// diagDominant returns a random n×n matrix with |a_ii| > Σ_{j≠i}|a_ij|,
// which is always non-singular.
func diagDominant(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	m := MustDense(t, n, n)
	fillDenseRand(t, m, seed)
	for i := 0; i < n; i++ {
		require.NoError(t, m.Set(i, i, float64(n)+1))
	}

	return m
}

// toGonum copies a Dense into a gonum *mat.Dense for oracle comparisons.
func toGonum(m *matrix.Dense) *mat.Dense {
	raw := append([]float64(nil), m.RawData()...)

	return mat.NewDense(m.Rows(), m.Cols(), raw)
}

// requireMatClose asserts element-wise closeness with an absolute tolerance.
func requireMatClose(t testing.TB, want, got matrix.Matrix, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "matrices differ beyond %g:\nwant:\n%v\ngot:\n%v", atol, want, got)
}
