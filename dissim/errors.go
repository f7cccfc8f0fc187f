// SPDX-License-Identifier: MIT

// Package dissim: sentinel error set.
// Validation failures return one of these sentinels wrapped with row/column
// context; callers match them via errors.Is.
//
// ERROR PRIORITY (first failing check wins, enforced in tests):
// empty -> non-square -> NaN/Inf -> negative -> diagonal -> asymmetry.

package dissim

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned for a matrix with no rows.
	ErrEmpty = errors.New("dissim: matrix is empty")

	// ErrNonSquare is returned when a row length differs from the row count.
	ErrNonSquare = errors.New("dissim: matrix is not square")

	// ErrNaNInf is returned when an entry is NaN or ±Inf.
	ErrNaNInf = errors.New("dissim: NaN or Inf encountered")

	// ErrNegative is returned when an entry is below zero.
	ErrNegative = errors.New("dissim: negative dissimilarity")

	// ErrNonZeroDiagonal is returned when |D[i][i]| exceeds epsilon.
	ErrNonZeroDiagonal = errors.New("dissim: diagonal not zero within eps")

	// ErrAsymmetry is returned when |D[i][j] - D[j][i]| exceeds epsilon.
	ErrAsymmetry = errors.New("dissim: matrix is not symmetric within eps")
)

// cellErrorf attaches the offending coordinates to a sentinel.
func cellErrorf(row, col int, err error) error {
	return fmt.Errorf("D[%d][%d]: %w", row, col, err)
}
