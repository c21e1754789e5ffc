// SPDX-License-Identifier: MIT
package ioa_test

import (
	"fmt"

	"github.com/katalvlaran/fio/ioa"
	"github.com/katalvlaran/fio/matrix"
	"github.com/katalvlaran/fio/parallel"
)

// ExampleLeontiefFromTransactions builds A and L for a two-sector economy.
func ExampleLeontiefFromTransactions() {
	// Row i sells to column j.
	T, _ := matrix.NewDenseFrom(2, 2, []float64{
		20, 30,
		40, 10,
	})
	p := []float64{100, 100}

	A, L, err := ioa.LeontiefFromTransactions(T, p, ioa.WithExecutor(parallel.Sequential()))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(A)
	m, _ := ioa.OutputMultiplier(L, A)
	fmt.Printf("total %.4f %.4f\n", m.Total[0], m.Total[1])
	// Output:
	// [0.2, 0.3]
	// [0.4, 0.1]
	// total 2.1667 1.8333
}

// ExampleBackwardExtraction removes each sector's purchases in turn.
func ExampleBackwardExtraction() {
	A, _ := matrix.NewDenseFrom(1, 1, []float64{0.5})
	FD, _ := matrix.NewDenseFrom(1, 1, []float64{50})

	bwd, err := ioa.BackwardExtraction(A, FD, []float64{100}, ioa.WithRankOneUpdate())
	if err != nil {
		fmt.Println(err)
		return
	}
	abs, _ := bwd.At(0, ioa.ExtractionAbsolute)
	rel, _ := bwd.At(0, ioa.ExtractionRelative)
	fmt.Println(abs, rel)
	// Output: -50 -0.5
}

// ExampleCheckHawkinsSimon rejects a coefficient matrix with ρ ≥ 1.
func ExampleCheckHawkinsSimon() {
	A, _ := matrix.NewDenseFrom(2, 2, []float64{
		0.6, 0.5,
		0.5, 0.6,
	})
	rho, err := ioa.CheckHawkinsSimon(A)
	fmt.Printf("%.2f %v\n", rho, err != nil)
	// Output: 1.10 true
}
