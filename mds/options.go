// Package mds: functional configuration for the projector.
//
// Design goals:
//   - Single source of truth for defaults (Default* constants below).
//   - Panic only on nonsensical parameters (programmer error).
//   - Last-writer-wins when the same setter is applied twice.
package mds

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/mdscale/dissim"
	"github.com/katalvlaran/mdscale/eigen"
)

// NegativePolicy decides what happens when a selected eigenvalue is negative.
type NegativePolicy int

const (
	// NegativeClamp treats negative selected eigenvalues as zero before the
	// square root; the matching coordinate collapses to 0.
	NegativeClamp NegativePolicy = iota

	// NegativeFallback treats a negative selected eigenvalue as a failed
	// embedding and returns the random layout instead.
	NegativeFallback
)

// String implements fmt.Stringer.
func (p NegativePolicy) String() string {
	switch p {
	case NegativeClamp:
		return "clamp"
	case NegativeFallback:
		return "fallback"
	default:
		return fmt.Sprintf("NegativePolicy(%d)", int(p))
	}
}

// ParseNegativePolicy maps "clamp" / "fallback" to a policy.
func ParseNegativePolicy(s string) (NegativePolicy, error) {
	switch s {
	case "clamp", "":
		return NegativeClamp, nil
	case "fallback":
		return NegativeFallback, nil
	default:
		return NegativeClamp, fmt.Errorf("mds: unknown negative-eigenvalue policy %q", s)
	}
}

// Defaults.
const (
	// DefaultDimensions is the target dimensionality used by Embed.
	DefaultDimensions = 2

	// DefaultEpsilon is the tolerance shared by input validation and the
	// eigenvalue sign tests (relative to max |B[i][j]|).
	DefaultEpsilon = dissim.DefaultEpsilon

	// DefaultNegativePolicy clamps, the common classical-scaling practice.
	DefaultNegativePolicy = NegativeClamp
)

const (
	panicDimensionsInvalid = "mds: WithDimensions: k must be >= 1"
	panicEpsilonInvalid    = "mds: WithEpsilon: eps must be finite, non-negative"
	panicSolverNil         = "mds: WithSolver: solver must not be nil"
	panicConcurrency       = "mds: WithConcurrency: limit must be >= 1"
)

// Option mutates internal options.
type Option func(*options)

// options is the resolved configuration. Unexported; build it via Option.
type options struct {
	dims        int
	eps         float64
	solver      eigen.Solver
	negative    NegativePolicy
	seed        int64
	seeded      bool
	rng         *rand.Rand
	logger      *log.Logger
	concurrency int
}

// WithDimensions sets the target dimensionality k used by Embed.
// Project always embeds in two dimensions.
func WithDimensions(k int) Option {
	if k < 1 {
		panic(panicDimensionsInvalid)
	}
	return func(o *options) { o.dims = k }
}

// WithEpsilon sets the tolerance for input validation and eigenvalue sign tests.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}
	return func(o *options) { o.eps = eps }
}

// WithSolver replaces the default eigen.LAPACK solver.
func WithSolver(s eigen.Solver) Option {
	if s == nil {
		panic(panicSolverNil)
	}
	return func(o *options) { o.solver = s }
}

// WithNegativePolicy selects how negative selected eigenvalues are handled.
func WithNegativePolicy(p NegativePolicy) Option {
	return func(o *options) { o.negative = p }
}

// WithSeed makes the random fallback layout reproducible.
// Without it the layout is seeded from the clock on every call.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
		o.rng = nil
	}
}

// WithRand draws fallback coordinates from r. r is not goroutine safe, so a
// Projector built with it must not be shared across goroutines.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithLogger sets the sink for fallback diagnostics. nil silences them.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
		if l == nil {
			o.logger = discardLogger()
		}
	}
}

// WithConcurrency bounds the number of parallel projections in ProjectAll.
func WithConcurrency(limit int) Option {
	if limit < 1 {
		panic(panicConcurrency)
	}
	return func(o *options) { o.concurrency = limit }
}

// gatherOptions applies user setters on top of the defaults.
func gatherOptions(user ...Option) options {
	o := options{
		dims:        DefaultDimensions,
		eps:         DefaultEpsilon,
		solver:      eigen.LAPACK{},
		negative:    DefaultNegativePolicy,
		logger:      log.Default(),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
