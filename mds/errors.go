package mds

import "errors"

var (
	// ErrDegenerate reports that B carries no positive spread to embed
	// (for example every item is identical). Recovered via the random layout.
	ErrDegenerate = errors.New("mds: no positive eigenvalue to embed")

	// ErrNegativeEigenvalue reports that a selected eigenvalue is negative
	// beyond tolerance. Recovered via the random layout under NegativeFallback.
	ErrNegativeEigenvalue = errors.New("mds: selected eigenvalue is negative")

	// ErrShape is returned by Stress when coordinates and D disagree in size.
	ErrShape = errors.New("mds: coordinates do not match matrix size")
)
