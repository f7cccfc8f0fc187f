// Package dissim validates pairwise dissimilarity matrices and turns them into
// the double-centered inner-product matrix used by classical scaling.
//
// A dissimilarity matrix D is a square [][]float64 with N ≥ 1 rows whose
// entries are finite, non-negative, symmetric and zero on the diagonal
// (symmetry and the diagonal are checked within a configurable epsilon).
// The package never mutates D; every helper reads it and allocates fresh
// gonum matrices for its results.
//
// Pipeline:
//
//	D ──Validate──▶ D ──Squared──▶ D2 ──DoubleCenter──▶ B = −½·J·D2·J
//
// where J = I − (1/N)·11ᵀ is the centering matrix. Gram runs all three steps.
//
// Complexity: Validate and Squared are O(N²); DoubleCenter is two dense
// products, O(N³) time and O(N²) memory.
package dissim
