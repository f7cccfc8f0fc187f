// SPDX-License-Identifier: MIT

// Package dissim: squared distances and double centering.
//
// Purpose:
//   - Build B = −½·J·D2·J, the inner-product matrix whose top eigenpairs give
//     the classical scaling coordinates.
//
// Notes:
//   - Inputs are read through the upper triangle only; Validate guarantees the
//     lower triangle agrees within eps.
//   - The product J·D2·J is evaluated literally with gonum, then folded back
//     into a SymDense by averaging (i,j) and (j,i), so B is exactly symmetric
//     regardless of rounding in the products.

package dissim

import (
	"gonum.org/v1/gonum/mat"
)

// centerScale is the −½ factor applied to J·D2·J.
const centerScale = -0.5

// Squared returns D2 with D2[i][j] = D[i][j]², read from the upper triangle.
// d must be square and non-empty (see Validate).
// Complexity: O(N²).
func Squared(d [][]float64) *mat.SymDense {
	n := len(d)
	d2 := mat.NewSymDense(n, nil)

	var (
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			v = d[i][j]
			d2.SetSym(i, j, v*v)
		}
	}

	return d2
}

// CenteringMatrix returns J = I − (1/n)·11ᵀ.
// Panics if n < 1, mirroring gonum's constructors.
func CenteringMatrix(n int) *mat.SymDense {
	j := mat.NewSymDense(n, nil)
	inv := 1.0 / float64(n)

	var r, c int
	for r = 0; r < n; r++ {
		for c = r; c < n; c++ {
			if r == c {
				j.SetSym(r, c, 1-inv)
			} else {
				j.SetSym(r, c, -inv)
			}
		}
	}

	return j
}

// DoubleCenter returns B = −½·J·D2·J for a squared-distance matrix d2.
//
// Implementation:
//   - Stage 1: build J for n = dim(d2).
//   - Stage 2: tmp = J·D2, prod = tmp·J (gonum dense products).
//   - Stage 3: B[i][j] = −½·(prod[i][j] + prod[j][i])/2 into a SymDense.
//
// Complexity: O(n³) time, O(n²) space.
func DoubleCenter(d2 mat.Symmetric) *mat.SymDense {
	n := d2.SymmetricDim()
	j := CenteringMatrix(n)

	var tmp, prod mat.Dense
	tmp.Mul(j, d2)
	prod.Mul(&tmp, j)

	b := mat.NewSymDense(n, nil)
	var r, c int
	for r = 0; r < n; r++ {
		for c = r; c < n; c++ {
			b.SetSym(r, c, centerScale*0.5*(prod.At(r, c)+prod.At(c, r)))
		}
	}

	return b
}

// Gram validates d and returns its double-centered matrix B.
// Errors are the Validate sentinels; d is never mutated.
func Gram(d [][]float64, opts ...Option) (*mat.SymDense, error) {
	if err := Validate(d, opts...); err != nil {
		return nil, err
	}

	return DoubleCenter(Squared(d)), nil
}
