// SPDX-License-Identifier: MIT
// Package ioa_test contains shared fixtures for the analysis tests.
//
// Purpose:
//   • Small literal tables with closed-form answers.
//   • Seeded random productive economies (column sums < 1) for property checks.

package ioa_test

import (
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/katalvlaran/fio/ioa"
	"github.com/katalvlaran/fio/matrix"
	"github.com/katalvlaran/fio/parallel"
	"github.com/stretchr/testify/require"
)

// seq pins every call to a single goroutine for reproducible reductions.
var seq = ioa.WithExecutor(parallel.Sequential())

// threeSector is the 3×3 transactions table T[i][j] (row i sells to column j).
func threeSector(t testing.TB) (*matrix.Dense, []float64) {
	t.Helper()
	T := mustFrom(t, [][]float64{
		{1, 4, 7},
		{2, 5, 8},
		{3, 6, 9},
	})

	return T, []float64{100, 200, 300}
}

// mustFrom builds a *Dense from row-major literals or fails the test.
func mustFrom(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	r, c := len(rows), len(rows[0])
	flat := make([]float64, 0, r*c)
	for _, row := range rows {
		require.Len(t, row, c)
		flat = append(flat, row...)
	}
	m, err := matrix.NewDenseFrom(r, c, flat)
	require.NoError(t, err)

	return m
}

// productiveA returns a random non-negative n×n matrix whose column sums are
// at most 0.8, so its spectral radius is below one.
func productiveA(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	raw := make([]float64, n*n)
	for k := range raw {
		raw[k] = rng.Float64()
	}
	for j := 0; j < n; j++ {
		s := 0.0
		for i := 0; i < n; i++ {
			s += raw[i*n+j]
		}
		scale := 0.8 * rng.Float64() / s
		for i := 0; i < n; i++ {
			raw[i*n+j] *= scale
		}
	}
	m, err := matrix.NewDenseFrom(n, n, raw)
	require.NoError(t, err)

	return m
}

// positiveVec returns n values in [lo, lo+span).
func positiveVec(n int, seed int64, lo, span float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	v := make([]float64, n)
	for k := range v {
		v[k] = lo + span*rng.Float64()
	}

	return v
}

// countingInverter wraps the default LU inverter and counts invocations.
type countingInverter struct {
	calls atomic.Int64
}

func (c *countingInverter) Invert(m matrix.Matrix) (*matrix.Dense, error) {
	c.calls.Add(1)
	return ioa.LUInverter{}.Invert(m)
}

// requireClose asserts |want−got| ≤ atol elementwise.
func requireClose(t testing.TB, want, got matrix.Matrix, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "want:\n%v\ngot:\n%v", want, got)
}

// requireIdentity asserts M ≈ I within atol.
func requireIdentity(t testing.TB, M *matrix.Dense, atol float64) {
	t.Helper()
	I, err := matrix.NewIdentity(M.Rows())
	require.NoError(t, err)
	requireClose(t, I, M, atol)
}
