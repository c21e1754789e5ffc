// SPDX-License-Identifier: MIT
package ioa_test

import (
	"testing"

	"github.com/katalvlaran/fio/ioa"
	"github.com/stretchr/testify/require"
)

// TestOutputMultiplier_Diagonal: L = diag(2,3), A = 0.
func TestOutputMultiplier_Diagonal(t *testing.T) {
	L := mustFrom(t, [][]float64{{2, 0}, {0, 3}})
	A := mustFrom(t, [][]float64{{0, 0}, {0, 0}})

	m, err := ioa.OutputMultiplier(L, A)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 3}, m.Total)
	require.Equal(t, []float64{0, 0}, m.Direct)
	require.Equal(t, []float64{2, 3}, m.Indirect)
}

// TestOutputMultiplier_IndirectIsExactDifference checks the identity bit for bit.
func TestOutputMultiplier_IndirectIsExactDifference(t *testing.T) {
	A := productiveA(t, 9, 5)
	L, err := ioa.LeontiefInverse(A, seq)
	require.NoError(t, err)

	m, err := ioa.OutputMultiplier(L, A)
	require.NoError(t, err)
	for j := range m.Total {
		require.Equal(t, m.Total[j]-m.Direct[j], m.Indirect[j])
		require.GreaterOrEqual(t, m.Total[j], 1.0) // L ≥ I for productive A
	}
}

func TestOutputMultiplier_Errors(t *testing.T) {
	L := mustFrom(t, [][]float64{{2, 0}, {0, 3}})
	_, err := ioa.OutputMultiplier(L, mustFrom(t, [][]float64{{0}}))
	require.ErrorIs(t, err, ioa.ErrDimensionMismatch)
	_, err = ioa.OutputMultiplier(nil, L)
	require.ErrorIs(t, err, ioa.ErrDimensionMismatch)
}

func TestSatelliteMultiplier_ClosedForm(t *testing.T) {
	L := mustFrom(t, [][]float64{{1, 2}, {3, 4}})
	component := []float64{10, 30}
	p := []float64{100, 300}

	s, err := ioa.SatelliteMultiplier(L, component, p)
	require.NoError(t, err)
	require.Empty(t, s.Account)
	require.InDeltaSlice(t, []float64{0.1, 0.1}, s.Requirements, 1e-15)
	requireClose(t, mustFrom(t, [][]float64{{0.1, 0.2}, {0.3, 0.4}}), s.Generator, 1e-15)
	require.InDeltaSlice(t, []float64{0.4, 0.6}, s.Multiplier, 1e-15)
	for j := range s.Indirect {
		require.Equal(t, s.Multiplier[j]-s.Requirements[j], s.Indirect[j])
	}
}

// TestSatelliteMultiplier_AccountsShareAlgorithm: the named wrappers only label.
func TestSatelliteMultiplier_AccountsShareAlgorithm(t *testing.T) {
	L := mustFrom(t, [][]float64{{1.2, 0.3}, {0.1, 1.5}})
	v := []float64{40, 70}
	p := []float64{100, 150}

	base, err := ioa.SatelliteMultiplier(L, v, p)
	require.NoError(t, err)
	va, err := ioa.ValueAddedMultiplier(L, v, p)
	require.NoError(t, err)
	emp, err := ioa.EmploymentMultiplier(L, v, p)
	require.NoError(t, err)

	require.Equal(t, ioa.AccountValueAdded, va.Account)
	require.Equal(t, ioa.AccountEmployment, emp.Account)
	require.Equal(t, base.Multiplier, va.Multiplier)
	require.Equal(t, base.Multiplier, emp.Multiplier)
	require.Equal(t, base.Indirect, emp.Indirect)
}

func TestSatelliteMultiplier_Errors(t *testing.T) {
	L := mustFrom(t, [][]float64{{1, 0}, {0, 1}})
	tests := []struct {
		name         string
		component, p []float64
		want         error
	}{
		{"zero p", []float64{1, 1}, []float64{1, 0}, ioa.ErrDegenerate},
		{"short component", []float64{1}, []float64{1, 1}, ioa.ErrDimensionMismatch},
		{"long p", []float64{1, 1}, []float64{1, 1, 1}, ioa.ErrDimensionMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ioa.EmploymentMultiplier(L, tc.component, tc.p)
			require.ErrorIs(t, err, tc.want)
		})
	}
}
