// Package mds implements classical (Torgerson) multidimensional scaling.
//
// 🚀 What does it do?
//
//	Given an N×N dissimilarity matrix D, Project returns N points in the
//	plane whose pairwise Euclidean distances approximate D as well as a
//	rank-2 linear projection allows. Embed generalizes to k dimensions.
//
// Algorithm:
//  1. D2[i][j] = D[i][j]².
//  2. J = I − (1/N)·11ᵀ.
//  3. B = −½·J·D2·J.
//  4. Full eigendecomposition of B (see package eigen).
//  5. Pick the k eigenvalues with the largest signed value; ties go to the
//     earliest index.
//  6. Coordinates = E·diag(√λ₁…√λk), E holding the chosen eigenvectors.
//
// Outcomes:
//
//	A call either returns a metric embedding, or, when the decomposition does
//	not converge or the input has no spread to embed, a random layout with
//	every coordinate uniform in [0,1). The random layout keeps the output
//	shape (N points, index aligned), is flagged in Result, and is reported
//	as a warning through the configured logger. Malformed input is never
//	papered over: contract violations come back as dissim errors.
//
// ⚙️ Usage:
//
//	pts, err := mds.Project(d)
//	res, err := mds.Embed(d, mds.WithDimensions(3), mds.WithSeed(42))
//
// Concurrency:
//
//	Calls share no state. A Projector may be used from many goroutines unless
//	it was configured WithRand, because *rand.Rand is not goroutine safe.
//	ProjectAll runs independent matrices in parallel.
package mds
