// SPDX-License-Identifier: MIT

// Package dissim: contract checks for dissimilarity matrices.
//
// Purpose:
//   - Reject caller contract violations before any numeric work starts, so a
//     malformed matrix surfaces as a descriptive error and never as an
//     undiagnosed eigensolver failure.
//
// Determinism & Performance:
//   - Fixed row-major scan order; the first violation in that order wins
//     within each check.
//   - Allocation free.

package dissim

import (
	"fmt"
	"math"
)

// Validate checks that d is a well-formed dissimilarity matrix.
//
// Implementation:
//   - Stage 1: shape (ErrEmpty, ErrNonSquare for any ragged row).
//   - Stage 2: every entry finite (ErrNaNInf) and non-negative (ErrNegative).
//   - Stage 3: |D[i][i]| ≤ eps (ErrNonZeroDiagonal).
//   - Stage 4: |D[i][j] - D[j][i]| ≤ eps over the strict upper triangle (ErrAsymmetry).
//
// Returns the sentinel wrapped with the offending coordinates.
// Complexity: O(N²) time, O(1) space.
func Validate(d [][]float64, opts ...Option) error {
	o := gatherOptions(opts...)

	n := len(d)
	if n == 0 {
		return ErrEmpty
	}
	var i, j int
	for i = 0; i < n; i++ {
		if len(d[i]) != n {
			return fmt.Errorf("row %d has %d entries, want %d: %w", i, len(d[i]), n, ErrNonSquare)
		}
	}

	var v float64
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v = d[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return cellErrorf(i, j, ErrNaNInf)
			}
			if v < 0 {
				return cellErrorf(i, j, ErrNegative)
			}
		}
	}

	for i = 0; i < n; i++ {
		if math.Abs(d[i][i]) > o.eps {
			return cellErrorf(i, i, ErrNonZeroDiagonal)
		}
	}

	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if math.Abs(d[i][j]-d[j][i]) > o.eps {
				return cellErrorf(i, j, ErrAsymmetry)
			}
		}
	}

	return nil
}

// RowOf returns a copy of row i, or nil when i is out of range.
func RowOf(d [][]float64, i int) []float64 {
	if i < 0 || i >= len(d) {
		return nil
	}
	return append([]float64(nil), d[i]...)
}
