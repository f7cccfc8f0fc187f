package mds

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Stress returns Kruskal's stress-1 of an embedding against d:
//
//	sqrt( Σ_{i<j} (D[i][j] − ‖x_i − x_j‖)² / Σ_{i<j} D[i][j]² )
//
// 0 is a perfect fit. When every D[i][j] is zero the ratio is undefined;
// Stress then returns 0 if the points coincide too and +Inf otherwise.
// d must be square and coords must have len(d) rows of equal, non-zero
// length (ErrShape).
func Stress(d [][]float64, coords [][]float64) (float64, error) {
	n := len(d)
	for i, row := range d {
		if len(row) != n {
			return 0, fmt.Errorf("dissimilarity row %d has %d entries for %d items: %w", i, len(row), n, ErrShape)
		}
	}
	if len(coords) != n {
		return 0, fmt.Errorf("%d rows for %d items: %w", len(coords), n, ErrShape)
	}
	if n == 0 {
		return 0, nil
	}
	k := len(coords[0])
	for i, row := range coords {
		if len(row) != k || k == 0 {
			return 0, fmt.Errorf("row %d has %d coordinates: %w", i, len(row), ErrShape)
		}
	}

	var (
		num, den float64
		diff     float64
		i, j     int
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			diff = d[i][j] - floats.Distance(coords[i], coords[j], 2)
			num += diff * diff
			den += d[i][j] * d[i][j]
		}
	}
	if den == 0 {
		if num == 0 {
			return 0, nil
		}
		return math.Inf(1), nil
	}

	return math.Sqrt(num / den), nil
}
