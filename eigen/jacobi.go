// SPDX-License-Identifier: MIT

// Package eigen - cyclic Jacobi rotations with an explicit work budget.
//
// Purpose:
//   - Give callers a solver whose worst-case cost is fixed up front:
//     at most MaxSweeps sweeps of n(n−1)/2 rotations each.
//
// Determinism:
//   - Fixed (p,q) visiting order (row-major over the strict upper triangle),
//     no randomness, no map iteration. Same input ⇒ bitwise identical output.
//
// Complexity quicksheet:
//   - Per sweep O(n³) time; total O(MaxSweeps·n³); memory O(n²).

package eigen

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Jacobi defaults.
const (
	// DefaultTolerance is the relative off-diagonal norm at which Jacobi stops.
	DefaultTolerance = 1e-12

	// DefaultMaxSweeps caps the number of full cyclic sweeps.
	// Well-conditioned inputs usually converge in under ten.
	DefaultMaxSweeps = 50
)

// Jacobi is a cyclic Jacobi eigensolver.
//
// Convergence: the off-diagonal Frobenius norm must fall to Tol·‖A‖F.
// A zero matrix converges immediately. Values are returned in diagonal order
// (unsorted); Vectors accumulates the rotations.
type Jacobi struct {
	Tol       float64 // relative stopping threshold in (0,1); 0 means DefaultTolerance
	MaxSweeps int     // sweep budget; must be > 0
}

var _ Solver = Jacobi{}

// NewJacobi returns a Jacobi solver with the default tolerance and budget.
func NewJacobi() Jacobi {
	return Jacobi{Tol: DefaultTolerance, MaxSweeps: DefaultMaxSweeps}
}

// Decompose implements Solver.
//
// Implementation:
//   - Stage 1: validate budget and finiteness; copy A into a flat row-major
//     buffer and set V = I.
//   - Stage 2: per sweep, test ‖offdiag(A)‖F ≤ Tol·‖A‖F; else rotate every
//     (p,q) with p<q whose A[p,q] is non-zero.
//   - Stage 3: read eigenvalues from the diagonal.
//
// Errors:
//   - ErrBadBudget, ErrBadTolerance, ErrEmpty, ErrNaNInf,
//     ErrNotConverged (budget exhausted).
func (s Jacobi) Decompose(a mat.Symmetric) (*Decomposition, error) {
	if s.MaxSweeps <= 0 {
		return nil, fmt.Errorf("Jacobi: MaxSweeps=%d: %w", s.MaxSweeps, ErrBadBudget)
	}
	tol := s.Tol
	if tol == 0 {
		tol = DefaultTolerance
	}
	// A threshold at or above ‖A‖F would accept the input unrotated.
	if !(tol > 0 && tol < 1) {
		return nil, fmt.Errorf("Jacobi: Tol=%g: %w", s.Tol, ErrBadTolerance)
	}
	if err := checkFinite("Jacobi", a); err != nil {
		return nil, err
	}

	n := a.SymmetricDim()
	w := make([]float64, n*n) // working copy, row-major
	v := make([]float64, n*n) // accumulated rotations
	var i, j int
	for i = 0; i < n; i++ {
		v[i*n+i] = 1
		for j = 0; j < n; j++ {
			w[i*n+j] = a.At(i, j)
		}
	}

	threshold := tol * frobenius(w)

	var sweep int
	for sweep = 0; ; sweep++ {
		if offDiagonal(w, n) <= threshold {
			break
		}
		if sweep == s.MaxSweeps {
			return nil, fmt.Errorf("Jacobi: %d sweeps on %dx%d: %w", s.MaxSweeps, n, n, ErrNotConverged)
		}
		var p, q int
		for p = 0; p < n-1; p++ {
			for q = p + 1; q < n; q++ {
				rotate(w, v, n, p, q)
			}
		}
	}

	vals := make([]float64, n)
	for i = 0; i < n; i++ {
		vals[i] = w[i*n+i]
	}

	return &Decomposition{
		Values:  vals,
		Vectors: mat.NewDense(n, n, v),
	}, nil
}

// rotate annihilates w[p,q] with a plane rotation and accumulates it into v.
//
// θ = (a_qq − a_pp)/(2·a_pq), t = sign(θ)/(|θ|+√(θ²+1)), c = 1/√(1+t²), s = t·c.
func rotate(w, v []float64, n, p, q int) {
	apq := w[p*n+q]
	if apq == 0 {
		return
	}
	app := w[p*n+p]
	aqq := w[q*n+q]

	theta := (aqq - app) / (2 * apq)
	t := math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
	c := 1.0 / math.Sqrt(t*t+1)
	s := t * c

	var (
		k        int
		akp, akq float64
	)
	for k = 0; k < n; k++ {
		if k == p || k == q {
			continue
		}
		akp = w[k*n+p]
		akq = w[k*n+q]
		w[k*n+p] = c*akp - s*akq
		w[p*n+k] = w[k*n+p]
		w[k*n+q] = s*akp + c*akq
		w[q*n+k] = w[k*n+q]
	}
	w[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
	w[q*n+q] = s*s*app + 2*c*s*apq + c*c*aqq
	w[p*n+q] = 0
	w[q*n+p] = 0

	for k = 0; k < n; k++ {
		akp = v[k*n+p]
		akq = v[k*n+q]
		v[k*n+p] = c*akp - s*akq
		v[k*n+q] = s*akp + c*akq
	}
}

// frobenius returns ‖A‖F of a flat buffer.
func frobenius(w []float64) float64 {
	var sum float64
	for _, x := range w {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// offDiagonal returns the Frobenius norm of the off-diagonal part.
func offDiagonal(w []float64, n int) float64 {
	var (
		sum  float64
		i, j int
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i != j {
				sum += w[i*n+j] * w[i*n+j]
			}
		}
	}
	return math.Sqrt(sum)
}
