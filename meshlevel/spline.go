package meshlevel

import (
	"fmt"
	"math"
	"sort"

	"github.com/MartinBloedorn/pmu/record"
	"gonum.org/v1/gonum/interp"
)

// gridKey quantises lattice coordinates so probe readings that drift in
// the last digits still land on the same row or column.
func gridKey(v float64) float64 { return math.Round(v*1e6) / 1e6 }

// GridSpline is a tensor-product natural cubic spline over a complete
// rectilinear lattice of samples. Beyond the lattice the edge values hold.
type GridSpline struct {
	xs, ys []float64
	rows   []interp.NaturalCubic
}

var _ ZOffsetter = &GridSpline{}

// newGridSpline returns ok=false when the samples do not form a complete
// lattice with at least minAxis distinct values along each axis.
func newGridSpline(samples []record.HeightSample, minAxis int) (g *GridSpline, ok bool, err error) {
	xi := make(map[float64]int)
	yi := make(map[float64]int)
	for _, s := range samples {
		xi[gridKey(s.X)] = 0
		yi[gridKey(s.Y)] = 0
	}
	if len(xi) < minAxis || len(yi) < minAxis || len(xi)*len(yi) != len(samples) {
		return nil, false, nil
	}

	g = &GridSpline{
		xs: sortedKeys(xi),
		ys: sortedKeys(yi),
	}
	for i, x := range g.xs {
		xi[x] = i
	}
	for i, y := range g.ys {
		yi[y] = i
	}

	z := make([][]float64, len(g.ys))
	seen := make([][]bool, len(g.ys))
	for j := range z {
		z[j] = make([]float64, len(g.xs))
		seen[j] = make([]bool, len(g.xs))
	}
	for _, s := range samples {
		i, j := xi[gridKey(s.X)], yi[gridKey(s.Y)]
		if seen[j][i] {
			return nil, false, nil
		}
		seen[j][i] = true
		z[j][i] = s.Z
	}

	g.rows = make([]interp.NaturalCubic, len(g.ys))
	for j := range g.rows {
		err = g.rows[j].Fit(g.xs, z[j])
		if err != nil {
			return nil, false, fmt.Errorf("fit spline row y=%g: %w", g.ys[j], err)
		}
	}

	return g, true, nil
}

func sortedKeys(m map[float64]int) []float64 {
	keys := make([]float64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	return keys
}

func (g *GridSpline) OffsetZ(x, y float64) float64 {
	col := make([]float64, len(g.rows))
	for j := range g.rows {
		col[j] = g.rows[j].Predict(x)
	}

	var c interp.NaturalCubic
	err := c.Fit(g.ys, col)
	if err != nil {
		// the y knots were accepted when the rows were fitted
		return col[0]
	}
	return c.Predict(y)
}
