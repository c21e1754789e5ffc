// SPDX-License-Identifier: MIT
// Package ioa_test benchmarks the perturbation analyses, comparing full
// re-inversion against the rank-one update on the same inputs.
package ioa_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/fio/ioa"
	"github.com/katalvlaran/fio/matrix"
)

var sinkD *matrix.Dense

func BenchmarkBackwardExtraction(b *testing.B) {
	for _, n := range []int{16, 48} {
		A := productiveA(b, n, 1)
		p := positiveVec(n, 2, 10, 100)
		FD, err := matrix.NewDenseFrom(n, 1, positiveVec(n, 3, 1, 10))
		if err != nil {
			b.Fatal(err)
		}
		for _, rankOne := range []bool{false, true} {
			opts := []ioa.Option{}
			if rankOne {
				opts = append(opts, ioa.WithRankOneUpdate())
			}
			b.Run(fmt.Sprintf("n=%d/rankOne=%v", n, rankOne), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					out, err := ioa.BackwardExtraction(A, FD, p, opts...)
					if err != nil {
						b.Fatal(err)
					}
					sinkD = out
				}
			})
		}
	}
}

func BenchmarkFieldOfInfluence(b *testing.B) {
	for _, n := range []int{8, 24} {
		A := productiveA(b, n, 4)
		L, err := ioa.LeontiefInverse(A)
		if err != nil {
			b.Fatal(err)
		}
		for _, rankOne := range []bool{false, true} {
			opts := []ioa.Option{}
			if rankOne {
				opts = append(opts, ioa.WithRankOneUpdate())
			}
			b.Run(fmt.Sprintf("n=%d/rankOne=%v", n, rankOne), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					out, err := ioa.FieldOfInfluence(A, L, 1e-4, opts...)
					if err != nil {
						b.Fatal(err)
					}
					sinkD = out
				}
			})
		}
	}
}
