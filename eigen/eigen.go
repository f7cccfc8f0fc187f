// SPDX-License-Identifier: MIT

package eigen

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotConverged is returned when a solver exhausts its iteration budget
	// or the underlying factorization reports failure.
	ErrNotConverged = errors.New("eigen: decomposition did not converge")

	// ErrNaNInf is returned when the input holds NaN or ±Inf entries.
	ErrNaNInf = errors.New("eigen: NaN or Inf encountered")

	// ErrBadBudget is returned by Jacobi when MaxSweeps is not positive.
	ErrBadBudget = errors.New("eigen: iteration budget must be > 0")

	// ErrBadTolerance is returned by Jacobi when Tol is negative, not finite
	// or not below 1.
	ErrBadTolerance = errors.New("eigen: tolerance must be in (0,1)")

	// ErrEmpty is returned for a 0×0 input.
	ErrEmpty = errors.New("eigen: matrix is empty")
)

// Solver computes all eigenpairs of a symmetric matrix.
type Solver interface {
	Decompose(a mat.Symmetric) (*Decomposition, error)
}

// Decomposition holds n eigenvalues and their eigenvectors.
// Column j of Vectors is the unit eigenvector belonging to Values[j].
type Decomposition struct {
	Values  []float64
	Vectors *mat.Dense
}

// Len reports the number of eigenpairs.
func (d *Decomposition) Len() int { return len(d.Values) }

// Vector returns a copy of the j-th eigenvector.
func (d *Decomposition) Vector(j int) []float64 {
	return mat.Col(nil, j, d.Vectors)
}

// checkFinite rejects empty or non-finite input before any solver work.
func checkFinite(op string, a mat.Symmetric) error {
	n := a.SymmetricDim()
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmpty)
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			v = a.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%s: A[%d][%d]: %w", op, i, j, ErrNaNInf)
			}
		}
	}

	return nil
}

// LAPACK solves with gonum's mat.EigenSym. Values come back in ascending order.
type LAPACK struct{}

var _ Solver = LAPACK{}

// Decompose implements Solver.
func (LAPACK) Decompose(a mat.Symmetric) (*Decomposition, error) {
	if err := checkFinite("LAPACK", a); err != nil {
		return nil, err
	}

	var es mat.EigenSym
	if ok := es.Factorize(a, true); !ok {
		return nil, fmt.Errorf("LAPACK: %w", ErrNotConverged)
	}

	var vecs mat.Dense
	es.VectorsTo(&vecs)

	return &Decomposition{
		Values:  es.Values(nil),
		Vectors: &vecs,
	}, nil
}
