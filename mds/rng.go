// Package mds - RNG utilities for the random fallback layout.
//
// Goals:
//   - Reproducibility on request: WithSeed ⇒ identical fallback layouts.
//   - Independent streams for batch runs: one derived *rand.Rand per matrix,
//     so results do not depend on goroutine scheduling.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Streams are created per call and
//     never shared between goroutines.
package mds

import (
	"math/rand"
	"time"
)

// rngFor returns the source for one projection call.
// Policy: explicit *rand.Rand wins, then the seed, then the clock.
func rngFor(o options) *rand.Rand {
	if o.rng != nil {
		return o.rng
	}
	if o.seeded {
		return rand.New(rand.NewSource(o.seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// deriveSeed mixes a parent seed and a stream identifier into a new seed
// using the SplitMix64 finalizer, so neighbouring streams are uncorrelated.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// batchParent picks the parent seed for a batch. An explicit *rand.Rand is
// consumed once here, before any goroutine starts.
func batchParent(o options) int64 {
	switch {
	case o.rng != nil:
		return o.rng.Int63()
	case o.seeded:
		return o.seed
	default:
		return time.Now().UnixNano()
	}
}

// randomLayout returns n rows of k coordinates, each uniform in [0,1).
// Rows are filled in index order so a seeded source is reproducible.
func randomLayout(n, k int, rng *rand.Rand) [][]float64 {
	out := make([][]float64, n)
	var i, j int
	for i = 0; i < n; i++ {
		out[i] = make([]float64, k)
		for j = 0; j < k; j++ {
			out[i][j] = rng.Float64()
		}
	}
	return out
}
