package mds

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/mdscale/dissim"
	"github.com/katalvlaran/mdscale/eigen"
)

// Point is one projected item in the plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Result is the outcome of one embedding.
//
// Coords has one row per input row, in input order, each of length k.
// Eigenvalues holds the selected eigenvalues (largest first, before any
// clamping); it is nil when Fallback is set. Explained is the share of the
// positive spectrum captured by the selected (clamped) eigenvalues.
// Reason says why the random layout was used.
type Result struct {
	Coords      [][]float64
	Eigenvalues []float64
	Explained   float64
	Fallback    bool
	Reason      error
}

// Points returns the first two coordinates of every row as Points.
// A one-dimensional embedding yields Y = 0.
func (r *Result) Points() []Point {
	pts := make([]Point, len(r.Coords))
	for i, row := range r.Coords {
		if len(row) > 0 {
			pts[i].X = row[0]
		}
		if len(row) > 1 {
			pts[i].Y = row[1]
		}
	}
	return pts
}

// Projector runs classical scaling with a fixed configuration.
type Projector struct {
	opts options
}

// New returns a Projector configured by opts.
func New(opts ...Option) *Projector {
	return &Projector{opts: gatherOptions(opts...)}
}

// Dimensions reports the k used by Embed.
func (p *Projector) Dimensions() int { return p.opts.dims }

// Project embeds d in two dimensions and returns one Point per row.
// It errors only on malformed input (dissim sentinels); numerical failures
// produce the random layout.
func (p *Projector) Project(d [][]float64) ([]Point, error) {
	res, err := embed(d, 2, p.opts)
	if err != nil {
		return nil, err
	}
	return res.Points(), nil
}

// Embed embeds d in the configured number of dimensions.
func (p *Projector) Embed(d [][]float64) (*Result, error) {
	return embed(d, p.opts.dims, p.opts)
}

// Project is shorthand for New(opts...).Project(d).
func Project(d [][]float64, opts ...Option) ([]Point, error) {
	return New(opts...).Project(d)
}

// Embed is shorthand for New(opts...).Embed(d).
func Embed(d [][]float64, opts ...Option) (*Result, error) {
	return New(opts...).Embed(d)
}

// embed is the single code path behind every entry point.
//
// Implementation:
//   - Stage 1: validate and build B = −½·J·D2·J (dissim.Gram).
//   - Stage 2: decompose B; ErrNotConverged ⇒ random layout.
//   - Stage 3: select top-k eigenvalues by signed value, earliest index on ties.
//   - Stage 4: sign policy (degenerate / negative) ⇒ clamp or random layout.
//   - Stage 5: coords[i][c] = v_c[i]·√λ_c with each v_c sign-normalized.
//
// Complexity: O(N³) for Gram plus the solver's cost; O(N²) memory.
func embed(d [][]float64, k int, o options) (*Result, error) {
	b, err := dissim.Gram(d, dissim.WithEpsilon(o.eps))
	if err != nil {
		return nil, err
	}
	n := len(d)

	dec, err := o.solver.Decompose(b)
	if err != nil {
		if errors.Is(err, eigen.ErrNotConverged) {
			return fallback(d, k, o, err), nil
		}
		return nil, fmt.Errorf("mds: %w", err)
	}

	scale := maxAbs(b)
	if scale == 0 {
		return fallback(d, k, o, ErrDegenerate), nil
	}
	floor := o.eps * scale

	idx := selectTop(dec.Values, k)
	if top := dec.Values[idx[0]]; !(top > floor) {
		return fallback(d, k, o, fmt.Errorf("λ1=%g: %w", top, ErrDegenerate)), nil
	}

	selected := make([]float64, len(idx))
	var c int
	for c = range idx {
		selected[c] = dec.Values[idx[c]]
		if selected[c] < -floor && o.negative == NegativeFallback {
			return fallback(d, k, o, fmt.Errorf("λ%d=%g: %w", c+1, selected[c], ErrNegativeEigenvalue)), nil
		}
	}

	coords := make([][]float64, n)
	for i := range coords {
		coords[i] = make([]float64, k)
	}
	var (
		i       int
		lambda  float64
		root    float64
		vec     []float64
		keptSum float64
	)
	for c = range idx {
		lambda = math.Max(selected[c], 0)
		keptSum += lambda
		root = math.Sqrt(lambda)
		vec = dec.Vector(idx[c])
		orient(vec)
		for i = 0; i < n; i++ {
			coords[i][c] = vec[i] * root
		}
	}

	return &Result{
		Coords:      coords,
		Eigenvalues: selected,
		Explained:   explained(keptSum, dec.Values),
	}, nil
}

// fallback builds the random layout and reports it.
func fallback(d [][]float64, k int, o options, reason error) *Result {
	reportFallback(o.logger, d, o.eps, reason)
	return &Result{
		Coords:   randomLayout(len(d), k, rngFor(o)),
		Fallback: true,
		Reason:   reason,
	}
}

// selectTop returns the indices of the min(k, n) largest values, largest
// first. Each pick is a sequential scan with a strict '>' so the earliest
// index wins ties.
// Complexity: O(k·n).
func selectTop(values []float64, k int) []int {
	n := len(values)
	if k > n {
		k = n
	}
	picked := make([]bool, n)
	out := make([]int, 0, k)

	var best, j int
	for len(out) < k {
		best = -1
		for j = 0; j < n; j++ {
			if picked[j] {
				continue
			}
			if best < 0 || values[j] > values[best] {
				best = j
			}
		}
		picked[best] = true
		out = append(out, best)
	}

	return out
}

// orient flips v in place so its largest-magnitude component (earliest on
// ties) is positive. Eigenvectors are defined up to sign; this pins one.
func orient(v []float64) {
	m := 0
	for i := 1; i < len(v); i++ {
		if math.Abs(v[i]) > math.Abs(v[m]) {
			m = i
		}
	}
	if len(v) == 0 || v[m] >= 0 {
		return
	}
	for i := range v {
		v[i] = -v[i]
	}
}

// explained returns kept / Σ positive eigenvalues, or 0 with no positive mass.
func explained(kept float64, values []float64) float64 {
	var total float64
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	if total == 0 {
		return 0
	}
	return kept / total
}

// maxAbs returns max |B[i][j]|.
func maxAbs(b mat.Symmetric) float64 {
	n := b.SymmetricDim()
	var (
		m    float64
		i, j int
	)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			m = math.Max(m, math.Abs(b.At(i, j)))
		}
	}
	return m
}
