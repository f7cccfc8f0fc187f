// Package mdscale lays out items in a low-dimensional plane from nothing but
// their pairwise dissimilarities, using classical (Torgerson)
// multidimensional scaling.
//
// ✨ What's inside?
//
//	dissim/ — dissimilarity-matrix validation, squaring and double centering
//	eigen/  — symmetric eigensolvers: gonum LAPACK and budgeted Jacobi
//	mds/    — the projector: top-k selection, scaling, random fallback, batches
//	cmd/mdscale — command-line front end (CSV/JSON in, coordinates out)
//
// Quick example:
//
//	pts, err := mds.Project([][]float64{
//		{0, 3, 4, 5},
//		{3, 0, 5, 4},
//		{4, 5, 0, 3},
//		{5, 4, 3, 0},
//	})
//
// returns four points at the corners of a 3×4 rectangle (up to rotation,
// reflection and translation).
//
//	go get github.com/katalvlaran/mdscale
package mdscale
