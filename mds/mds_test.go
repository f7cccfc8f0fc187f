package mds_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mdscale/dissim"
	"github.com/katalvlaran/mdscale/eigen"
	"github.com/katalvlaran/mdscale/mds"
)

func TestProject_Shape(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(3))
	for _, n := range []int{1, 2, 3, 5, 20} {
		pts := make([][2]float64, n)
		for i := range pts {
			pts[i] = [2]float64{rng.Float64() * 10, rng.Float64() * 10}
		}
		got, err := mds.Project(euclid(pts), mds.WithLogger(nil), mds.WithSeed(1))
		require.NoError(t, err, "n=%d", n)
		require.Len(t, got, n)
		for i, p := range got {
			require.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y), "n=%d point %d", n, i)
		}
	}
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	d := euclid(cityPoints())
	orig := clone(d)
	_, err := mds.Project(d)
	require.NoError(t, err)
	assert.Equal(t, orig, d)

	z := zeros(5)
	_, err = mds.Project(z, mds.WithLogger(nil))
	require.NoError(t, err)
	assert.Equal(t, zeros(5), z)
}

// N identical items: no error, N points, random layout flagged.
func TestProject_AllZero_FallsBack(t *testing.T) {
	t.Parallel()

	logger, buf := bufferLogger()
	res, err := mds.Embed(zeros(6), mds.WithLogger(logger), mds.WithSeed(9))
	require.NoError(t, err)
	require.True(t, res.Fallback)
	require.ErrorIs(t, res.Reason, mds.ErrDegenerate)
	require.Len(t, res.Coords, 6)
	require.Nil(t, res.Eigenvalues)
	requireUnitSquare(t, res.Coords)

	out := buf.String()
	assert.Contains(t, out, "random layout")
	assert.Contains(t, out, "items=6")
	assert.Contains(t, out, "row_index=0")
}

func TestProject_DistancePreservation_Cities(t *testing.T) {
	t.Parallel()

	pts := cityPoints()
	d := euclid(pts)
	for name, s := range map[string]eigen.Solver{"lapack": eigen.LAPACK{}, "jacobi": eigen.NewJacobi()} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			logger, buf := bufferLogger()
			res, err := mds.Embed(d, mds.WithSolver(s), mds.WithLogger(logger))
			require.NoError(t, err)
			require.False(t, res.Fallback)
			require.Empty(t, buf.String())
			assert.InDelta(t, 1.0, res.Explained, 1e-9)

			got := res.Points()
			var bi, bj, gi, gj int
			var bestD, bestG float64
			for i := range d {
				for j := i + 1; j < len(d); j++ {
					proj := dist2([2]float64{got[i].X, got[i].Y}, [2]float64{got[j].X, got[j].Y})
					require.InDelta(t, d[i][j], proj, 1e-6, "%s-%s", cities[i].name, cities[j].name)
					if d[i][j] > bestD {
						bestD, bi, bj = d[i][j], i, j
					}
					if proj > bestG {
						bestG, gi, gj = proj, i, j
					}
				}
			}
			assert.Equal(t, [2]int{bi, bj}, [2]int{gi, gj}, "farthest pair")

			stress, err := mds.Stress(d, res.Coords)
			require.NoError(t, err)
			assert.Less(t, stress, 1e-9)
		})
	}
}

func TestProject_SolversAgree(t *testing.T) {
	t.Parallel()

	d := euclid(cityPoints())
	a, err := mds.Project(d, mds.WithSolver(eigen.LAPACK{}))
	require.NoError(t, err)
	b, err := mds.Project(d, mds.WithSolver(eigen.NewJacobi()))
	require.NoError(t, err)
	for i := range a {
		assert.InDelta(t, a[i].X, b[i].X, 1e-6, "X[%d]", i)
		assert.InDelta(t, a[i].Y, b[i].Y, 1e-6, "Y[%d]", i)
	}
}

// A 3×4 rectangle: distinct eigenvalues 16 and 9.
func TestProject_Deterministic(t *testing.T) {
	t.Parallel()

	d := [][]float64{
		{0, 3, 4, 5},
		{3, 0, 5, 4},
		{4, 5, 0, 3},
		{5, 4, 3, 0},
	}
	first, err := mds.Project(d)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := mds.Project(d)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}

	res, err := mds.Embed(d)
	require.NoError(t, err)
	require.Len(t, res.Eigenvalues, 2)
	assert.InDelta(t, 16.0, res.Eigenvalues[0], 1e-9)
	assert.InDelta(t, 9.0, res.Eigenvalues[1], 1e-9)
}

func TestSelectTop_EarliestIndexWinsTies(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{1, 2}, mds.SelectTop([]float64{1, 3, 3, 2}, 2))
	assert.Equal(t, []int{0, 3, 1}, mds.SelectTop([]float64{4, 2, 2, 4}, 3))
	assert.Equal(t, []int{2, 0, 1}, mds.SelectTop([]float64{-1, -2, 0}, 5))
	assert.Equal(t, []int{0, 1}, mds.SelectTop([]float64{0, 0, 0}, 2))
}

// Two equal largest eigenvalues: the lower-indexed pair becomes X.
func TestProject_TieBreak_UsesLowerIndexFirst(t *testing.T) {
	t.Parallel()

	d := euclid([][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}})
	stub := stubSolver{values: []float64{1, 5, 5, 2}, vectors: identity(4)}
	res, err := mds.Embed(d, mds.WithSolver(stub))
	require.NoError(t, err)
	require.False(t, res.Fallback)
	assert.Equal(t, []float64{5, 5}, res.Eigenvalues)

	root := math.Sqrt(5)
	want := [][]float64{{0, 0}, {root, 0}, {0, root}, {0, 0}}
	assert.Equal(t, want, res.Coords)
}

func TestOrient(t *testing.T) {
	t.Parallel()

	v := []float64{0.1, -0.9, 0.3}
	mds.Orient(v)
	assert.Equal(t, []float64{-0.1, 0.9, -0.3}, v)

	w := []float64{-0.5, 0.5}
	mds.Orient(w)
	assert.Equal(t, []float64{0.5, -0.5}, w)
}

// A large rank-deficient input under a one-sweep budget must come back
// promptly with a random layout instead of iterating on.
func TestProject_BudgetBounded_Large(t *testing.T) {
	if testing.Short() {
		t.Skip("large decomposition")
	}
	t.Parallel()

	const n = 500
	pts := make([][2]float64, n)
	anchors := [][2]float64{{0, 0}, {4, 1}, {2, 3}}
	for i := range pts {
		pts[i] = anchors[i%len(anchors)]
	}
	d := euclid(pts)

	start := time.Now()
	res, err := mds.Embed(d,
		mds.WithSolver(eigen.Jacobi{MaxSweeps: 1, Tol: 1e-16}),
		mds.WithLogger(nil),
		mds.WithSeed(5),
	)
	require.NoError(t, err)
	require.True(t, res.Fallback)
	require.ErrorIs(t, res.Reason, eigen.ErrNotConverged)
	require.Len(t, res.Coords, n)
	requireUnitSquare(t, res.Coords)
	assert.Less(t, time.Since(start), 2*time.Minute)

	lp, err := mds.Embed(d, mds.WithLogger(nil))
	require.NoError(t, err)
	require.False(t, lp.Fallback)
	require.Len(t, lp.Coords, n)
}

// Triangle inequality violated (1+1 < 3): B has a negative eigenvalue.
func TestEmbed_NegativePolicy(t *testing.T) {
	t.Parallel()

	d := [][]float64{
		{0, 1, 1},
		{1, 0, 3},
		{1, 3, 0},
	}

	clamped, err := mds.Embed(d, mds.WithDimensions(3), mds.WithLogger(nil))
	require.NoError(t, err)
	require.False(t, clamped.Fallback)
	require.Len(t, clamped.Eigenvalues, 3)
	require.Less(t, clamped.Eigenvalues[2], 0.0)
	for i := range d {
		assert.Zero(t, clamped.Coords[i][2], "clamped coordinate %d", i)
		assert.False(t, math.IsNaN(clamped.Coords[i][0]))
	}

	logger, buf := bufferLogger()
	fb, err := mds.Embed(d,
		mds.WithDimensions(3),
		mds.WithNegativePolicy(mds.NegativeFallback),
		mds.WithLogger(logger),
		mds.WithSeed(2),
	)
	require.NoError(t, err)
	require.True(t, fb.Fallback)
	require.ErrorIs(t, fb.Reason, mds.ErrNegativeEigenvalue)
	requireUnitSquare(t, fb.Coords)
	assert.Contains(t, buf.String(), "items=3")

	// Only two dimensions: the selected pair is non-negative, no fallback.
	two, err := mds.Embed(d, mds.WithNegativePolicy(mds.NegativeFallback), mds.WithLogger(nil))
	require.NoError(t, err)
	assert.False(t, two.Fallback)
}

func TestEmbed_SeededFallbackReproducible(t *testing.T) {
	t.Parallel()

	a, err := mds.Embed(zeros(10), mds.WithSeed(42), mds.WithLogger(nil))
	require.NoError(t, err)
	b, err := mds.Embed(zeros(10), mds.WithSeed(42), mds.WithLogger(nil))
	require.NoError(t, err)
	assert.Equal(t, a.Coords, b.Coords)

	c, err := mds.Embed(zeros(10), mds.WithSeed(43), mds.WithLogger(nil))
	require.NoError(t, err)
	assert.NotEqual(t, a.Coords, c.Coords)

	r := rand.New(rand.NewSource(42))
	viaRand, err := mds.Embed(zeros(10), mds.WithRand(r), mds.WithLogger(nil))
	require.NoError(t, err)
	assert.Equal(t, a.Coords, viaRand.Coords)
}

func TestEmbed_InvalidInput_NoFallback(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		d    [][]float64
		want error
	}{
		"empty":     {nil, dissim.ErrEmpty},
		"nonsquare": {[][]float64{{0, 1, 2}, {1, 0, 2}}, dissim.ErrNonSquare},
		"negative":  {[][]float64{{0, -2}, {-2, 0}}, dissim.ErrNegative},
		"nan":       {[][]float64{{0, math.NaN()}, {math.NaN(), 0}}, dissim.ErrNaNInf},
		"asym":      {[][]float64{{0, 1}, {2, 0}}, dissim.ErrAsymmetry},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			logger, buf := bufferLogger()
			res, err := mds.Embed(tc.d, mds.WithLogger(logger))
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, res)
			assert.Empty(t, buf.String())
		})
	}
}

func TestEmbed_SolverFailures(t *testing.T) {
	t.Parallel()

	d := euclid([][2]float64{{0, 0}, {1, 0}, {0, 2}})

	notConv := stubSolver{err: errors.Join(errors.New("stub"), eigen.ErrNotConverged)}
	res, err := mds.Embed(d, mds.WithSolver(notConv), mds.WithLogger(nil), mds.WithSeed(1))
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.ErrorIs(t, res.Reason, eigen.ErrNotConverged)

	other := stubSolver{err: eigen.ErrNaNInf}
	_, err = mds.Embed(d, mds.WithSolver(other), mds.WithLogger(nil))
	require.ErrorIs(t, err, eigen.ErrNaNInf)
}

func TestEmbed_MoreDimensionsThanItems(t *testing.T) {
	t.Parallel()

	res, err := mds.Embed([][]float64{{0, 2}, {2, 0}}, mds.WithDimensions(3))
	require.NoError(t, err)
	require.False(t, res.Fallback)
	require.Len(t, res.Eigenvalues, 2)
	for i, row := range res.Coords {
		require.Len(t, row, 3)
		assert.Zero(t, row[2], "row %d", i)
	}
	assert.InDelta(t, 2.0, math.Abs(res.Coords[0][0]-res.Coords[1][0]), 1e-12)
}

func TestEmbed_OneDimension(t *testing.T) {
	t.Parallel()

	d := euclid([][2]float64{{0, 0}, {1, 0}, {3, 0}})
	p := mds.New(mds.WithDimensions(1))
	require.Equal(t, 1, p.Dimensions())

	res, err := p.Embed(d)
	require.NoError(t, err)
	for _, row := range res.Coords {
		require.Len(t, row, 1)
	}
	pts := res.Points()
	assert.Zero(t, pts[0].Y)
	assert.InDelta(t, 3.0, math.Abs(pts[2].X-pts[0].X), 1e-9)

	// Project ignores the configured k and always returns the plane.
	flat, err := p.Project(d)
	require.NoError(t, err)
	require.Len(t, flat, 3)
}

func TestRepresentativeRow(t *testing.T) {
	t.Parallel()

	d := [][]float64{
		{0, 1, 1, 1},
		{1, 0, 0, 0},
		{1, 0, 0, 0},
		{1, 0, 0, 0},
	}
	assert.Equal(t, 1, mds.RepresentativeRow(d, 1e-9))
	assert.Equal(t, 0, mds.RepresentativeRow(zeros(3), 1e-9))
}

func TestReportFallback_TruncatesCopiedRow(t *testing.T) {
	t.Parallel()

	d := zeros(20)
	for j := 1; j < 20; j++ {
		d[0][j], d[j][0] = 0.5, 0.5
	}
	want := clone(d)

	logger, buf := bufferLogger()
	mds.ReportFallback(logger, d, 1e-9, mds.ErrDegenerate)

	out := buf.String()
	assert.Contains(t, out, "items=20")
	assert.Contains(t, out, "row_index=1")
	assert.Contains(t, out, "row_truncated=true")
	assert.Equal(t, want, d)
}

func TestOptions_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { mds.WithDimensions(0) })
	assert.Panics(t, func() { mds.WithEpsilon(-1) })
	assert.Panics(t, func() { mds.WithSolver(nil) })
	assert.Panics(t, func() { mds.WithConcurrency(0) })
}

func TestParseNegativePolicy(t *testing.T) {
	t.Parallel()

	p, err := mds.ParseNegativePolicy("fallback")
	require.NoError(t, err)
	assert.Equal(t, mds.NegativeFallback, p)
	assert.Equal(t, "fallback", p.String())

	p, err = mds.ParseNegativePolicy("")
	require.NoError(t, err)
	assert.Equal(t, mds.NegativeClamp, p)

	_, err = mds.ParseNegativePolicy("abs")
	require.Error(t, err)
}

func TestStress(t *testing.T) {
	t.Parallel()

	d := [][]float64{{0, 3}, {3, 0}}
	s, err := mds.Stress(d, [][]float64{{0, 0}, {3, 0}})
	require.NoError(t, err)
	assert.Zero(t, s)

	s, err = mds.Stress(d, [][]float64{{0, 0}, {6, 0}})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s, 1e-12)

	_, err = mds.Stress(d, [][]float64{{0, 0}})
	require.ErrorIs(t, err, mds.ErrShape)
	_, err = mds.Stress(d, [][]float64{{0, 0}, {1}})
	require.ErrorIs(t, err, mds.ErrShape)

	_, err = mds.Stress([][]float64{{0}, {1, 0}}, [][]float64{{0, 0}, {1, 0}})
	require.ErrorIs(t, err, mds.ErrShape)
	_, err = mds.Stress([][]float64{{0, 1, 2}, {1, 0}}, [][]float64{{0, 0}, {1, 0}})
	require.ErrorIs(t, err, mds.ErrShape)

	s, err = mds.Stress(zeros(2), [][]float64{{0, 0}, {1, 0}})
	require.NoError(t, err)
	assert.True(t, math.IsInf(s, 1))
}
