// SPDX-License-Identifier: MIT

// Package dissim: functional configuration for validation.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - Safe by construction: panic only on invalid parameters (programmer error).

package dissim

import "math"

// DefaultEpsilon is the tolerance used for the symmetry and zero-diagonal checks.
const DefaultEpsilon = 1e-9

const panicEpsilonInvalid = "dissim: WithEpsilon: eps must be finite, non-negative"

// Option mutates internal options. Safe to apply repeatedly.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	eps float64 // >= 0; DefaultEpsilon
}

// WithEpsilon sets the tolerance used by the symmetry and diagonal checks.
// Panics when eps is negative, NaN or infinite.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}
	return func(o *Options) {
		o.eps = eps
	}
}

// Epsilon reports the resolved tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// NewOptions resolves a list of setters on top of the defaults.
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// gatherOptions applies user setters on top of defaults (last-writer-wins).
func gatherOptions(user ...Option) Options {
	o := Options{eps: DefaultEpsilon}
	for _, set := range user {
		set(&o)
	}

	return o
}
