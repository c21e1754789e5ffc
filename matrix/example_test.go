// SPDX-License-Identifier: MIT
package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/fio/matrix"
)

// ExampleFromColumnMajor shows the explicit transposition step for data that
// arrives in column-major order (R, Fortran, BLAS).
func ExampleFromColumnMajor() {
	// Columns (1,2) and (3,4).
	m, err := matrix.FromColumnMajor(2, 2, []float64{1, 2, 3, 4})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(m)
	// Output:
	// [1, 3]
	// [2, 4]
}

// ExampleInverse computes (I − A)⁻¹ for a 1×1 system.
func ExampleInverse() {
	A, _ := matrix.NewDenseFrom(1, 1, []float64{0.5})
	IA, _ := matrix.IdentityMinus(A)
	L, err := matrix.Inverse(IA)
	if err != nil {
		fmt.Println(err)
		return
	}
	v, _ := L.At(0, 0)
	fmt.Println(v)
	// Output: 2
}

// ExampleLU factors once and solves for a right-hand side.
func ExampleLU() {
	A, _ := matrix.NewDenseFrom(2, 2, []float64{2, 1, 1, 3})
	f, err := matrix.LU(A)
	if err != nil {
		fmt.Println(err)
		return
	}
	x, _ := f.Solve([]float64{3, 5})
	fmt.Printf("%.2f %.2f det=%.0f\n", x[0], x[1], f.Det())
	// Output: 0.80 1.40 det=5
}
