package mds_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/mdscale/eigen"
)

// cities are planar reference positions (km on a local projection) for twelve
// cities; their pairwise distances are an exactly embeddable 2-D metric.
var cities = []struct {
	name string
	x, y float64
}{
	{"Amsterdam", 0, 0},
	{"Berlin", 577, -45},
	{"Brussels", -95, -175},
	{"Copenhagen", 430, 390},
	{"Lisbon", -1525, -1630},
	{"London", -358, -35},
	{"Madrid", -990, -1405},
	{"Paris", -245, -420},
	{"Prague", 598, -395},
	{"Rome", 565, -1255},
	{"Vienna", 825, -615},
	{"Warsaw", 1035, -130},
}

func cityPoints() [][2]float64 {
	pts := make([][2]float64, len(cities))
	for i, c := range cities {
		pts[i] = [2]float64{c.x, c.y}
	}
	return pts
}

// euclid returns the pairwise Euclidean distances of pts.
func euclid(pts [][2]float64) [][]float64 {
	n := len(pts)
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		for j := range d[i] {
			d[i][j] = math.Hypot(pts[i][0]-pts[j][0], pts[i][1]-pts[j][1])
		}
	}
	return d
}

// zeros returns an n×n all-zero matrix (n identical items).
func zeros(n int) [][]float64 {
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}
	return d
}

func clone(d [][]float64) [][]float64 {
	out := make([][]float64, len(d))
	for i := range d {
		out[i] = append([]float64(nil), d[i]...)
	}
	return out
}

// dist2 is the planar distance between two points.
func dist2(a, b [2]float64) float64 { return math.Hypot(a[0]-b[0], a[1]-b[1]) }

// bufferLogger captures diagnostics for assertions.
func bufferLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}), &buf
}

// requireUnitSquare checks every coordinate lies in [0,1).
func requireUnitSquare(t *testing.T, coords [][]float64) {
	t.Helper()
	for i, row := range coords {
		for c, v := range row {
			require.GreaterOrEqual(t, v, 0.0, "coords[%d][%d]", i, c)
			require.Less(t, v, 1.0, "coords[%d][%d]", i, c)
		}
	}
}

// stubSolver returns a fixed decomposition, ignoring its input.
type stubSolver struct {
	values  []float64
	vectors *mat.Dense
	err     error
}

func (s stubSolver) Decompose(mat.Symmetric) (*eigen.Decomposition, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &eigen.Decomposition{
		Values:  append([]float64(nil), s.values...),
		Vectors: mat.DenseCopyOf(s.vectors),
	}, nil
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}
