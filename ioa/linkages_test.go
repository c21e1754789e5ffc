// SPDX-License-Identifier: MIT
package ioa_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/fio/ioa"
	"github.com/katalvlaran/fio/matrix"
	"github.com/katalvlaran/fio/parallel"
	"github.com/stretchr/testify/require"
)

// L = [[1,2],[3,4]] has distinct row and column statistics, so a row/column
// mix-up in any formula changes the answer.
func asymmetricL(t *testing.T) *matrix.Dense {
	return mustFrom(t, [][]float64{{1, 2}, {3, 4}})
}

func TestLinkages_ClosedForm(t *testing.T) {
	L := asymmetricL(t)

	avg, err := ioa.Average(L)
	require.NoError(t, err)
	require.Equal(t, 2.5, avg)

	rows, err := ioa.RowAverages(L)
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, 3.5}, rows)

	cols, err := ioa.ColAverages(L)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 3}, cols)

	fwd, err := ioa.ForwardLinkages(L)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.6, 1.4}, fwd, 1e-15)

	bwd, err := ioa.BackwardLinkages(L)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.8, 1.2}, bwd, 1e-15)

	// Column j CV: sqrt(Σ_i (L[i][j] − colAvg[j])² / (n−1)) / colAvg[j].
	pow, err := ioa.PowerOfDispersion(L, seq)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{math.Sqrt2 / 2, math.Sqrt2 / 3}, pow, 1e-15)

	// Row i CV: sqrt(Σ_j (L[i][j] − rowAvg[i])² / (n−1)) / rowAvg[i].
	sen, err := ioa.SensitivityOfDispersion(L, seq)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{math.Sqrt(0.5) / 1.5, math.Sqrt(0.5) / 3.5}, sen, 1e-15)
}

// TestLinkages_ReportMatchesParts checks the one-shot report against the individual calls.
func TestLinkages_ReportMatchesParts(t *testing.T) {
	A := productiveA(t, 7, 99)
	L, err := ioa.LeontiefInverse(A, seq)
	require.NoError(t, err)

	pool := parallel.NewPool()
	_, err = pool.Configure(3)
	require.NoError(t, err)

	rep, err := ioa.Linkages(L, ioa.WithExecutor(pool))
	require.NoError(t, err)

	fwd, _ := ioa.ForwardLinkages(L)
	bwd, _ := ioa.BackwardLinkages(L)
	pow, _ := ioa.PowerOfDispersion(L, seq)
	sen, _ := ioa.SensitivityOfDispersion(L, seq)
	require.Equal(t, fwd, rep.Forward)
	require.Equal(t, bwd, rep.Backward)
	require.Equal(t, pow, rep.PowerOfDispersion, "one task per column: executor-independent")
	require.Equal(t, sen, rep.SensitivityOfDispersion)

	// Forward and backward linkages each average to one.
	require.InDelta(t, 1.0, matrix.VecMean(rep.Forward), 1e-12)
	require.InDelta(t, 1.0, matrix.VecMean(rep.Backward), 1e-12)
}

func TestLinkages_Errors(t *testing.T) {
	zero := mustFrom(t, [][]float64{{0, 0}, {0, 0}})
	_, err := ioa.ForwardLinkages(zero)
	require.ErrorIs(t, err, ioa.ErrDegenerate)
	_, err = ioa.BackwardLinkages(zero)
	require.ErrorIs(t, err, ioa.ErrDegenerate)
	_, err = ioa.Linkages(zero, seq)
	require.ErrorIs(t, err, ioa.ErrDegenerate)

	// Column 0 averages to zero; its CV is undefined.
	zeroCol := mustFrom(t, [][]float64{{1, 2}, {-1, 3}})
	_, err = ioa.PowerOfDispersion(zeroCol, seq)
	require.ErrorIs(t, err, ioa.ErrDegenerate)

	// n = 1 leaves no degrees of freedom.
	_, err = ioa.SensitivityOfDispersion(mustFrom(t, [][]float64{{2}}), seq)
	require.ErrorIs(t, err, ioa.ErrDegenerate)

	_, err = ioa.Average(mustFrom(t, [][]float64{{1, 2}}))
	require.ErrorIs(t, err, ioa.ErrDimensionMismatch)
	_, err = ioa.RowAverages(nil)
	require.ErrorIs(t, err, ioa.ErrDimensionMismatch)
}
