// Package matrix_test provides benchmarks for core matrix package operations,
// using deterministic random fill for Dense matrices.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/fio/matrix"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{64, 128, 256}

// sinks to defeat dead-code elimination
var (
	sinkM matrix.Matrix
	sinkV []float64
	sinkF float64
)

func BenchmarkMul(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := MustDense(b, n, n)
			B := MustDense(b, n, n)
			fillDenseRand(b, A, 1337)
			fillDenseRand(b, B, 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Mul(A, B)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkMatVec(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := MustDense(b, n, n)
			fillDenseRand(b, A, 77)
			x := matrix.Ones(n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				y, err := matrix.MatVec(A, x)
				if err != nil {
					b.Fatal(err)
				}
				sinkV = y
			}
		})
	}
}

func BenchmarkLU(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{32, 64, 128} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := diagDominant(b, n, 303)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				f, err := matrix.LU(A)
				if err != nil {
					b.Fatal(err)
				}
				sinkF = f.Det()
			}
		})
	}
}

func BenchmarkInverse(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{32, 64, 128} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := diagDominant(b, n, 505)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				inv, err := matrix.Inverse(A)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = inv
			}
		})
	}
}

func BenchmarkAccumSquaredScaledDiff(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			dst := MustDense(b, n, n)
			x := MustDense(b, n, n)
			y := MustDense(b, n, n)
			fillDenseRand(b, x, 11)
			fillDenseRand(b, y, 12)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := matrix.AccumSquaredScaledDiff(dst, x, y, 1e3); err != nil {
					b.Fatal(err)
				}
			}
			sinkM = dst
		})
	}
}
