package meshlevel

import (
	"fmt"
	"math"

	"github.com/MartinBloedorn/pmu/record"
	"gonum.org/v1/gonum/mat"
)

// ThinPlate is a thin-plate spline through scattered samples. It
// interpolates every sample exactly and extrapolates affinely.
type ThinPlate struct {
	// coordinates are normalised before solving to keep the system
	// well conditioned on machine-sized boards
	cx, cy, scale float64

	xs, ys     []float64
	weights    []float64
	a0, ax, ay float64
}

var _ ZOffsetter = &ThinPlate{}

func tpsKernel(r2 float64) float64 {
	if r2 == 0 {
		return 0
	}
	return 0.5 * r2 * math.Log(r2)
}

func NewThinPlate(samples []record.HeightSample) (*ThinPlate, error) {
	n := len(samples)
	if n < 3 {
		return nil, fmt.Errorf("thin-plate spline needs at least 3 samples, have %d", n)
	}

	minX, maxX := samples[0].X, samples[0].X
	minY, maxY := samples[0].Y, samples[0].Y
	for _, s := range samples {
		minX, maxX = math.Min(minX, s.X), math.Max(maxX, s.X)
		minY, maxY = math.Min(minY, s.Y), math.Max(maxY, s.Y)
	}

	tp := &ThinPlate{
		cx:    (minX + maxX) / 2,
		cy:    (minY + maxY) / 2,
		scale: math.Max(maxX-minX, maxY-minY) / 2,
		xs:    make([]float64, n),
		ys:    make([]float64, n),
	}
	if tp.scale == 0 {
		tp.scale = 1
	}
	for i, s := range samples {
		tp.xs[i], tp.ys[i] = tp.normalize(s.X, s.Y)
	}

	a := mat.NewDense(n+3, n+3, nil)
	b := mat.NewVecDense(n+3, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dx, dy := tp.xs[i]-tp.xs[j], tp.ys[i]-tp.ys[j]
			a.Set(i, j, tpsKernel(dx*dx+dy*dy))
		}
		a.Set(i, n, 1)
		a.Set(i, n+1, tp.xs[i])
		a.Set(i, n+2, tp.ys[i])
		a.Set(n, i, 1)
		a.Set(n+1, i, tp.xs[i])
		a.Set(n+2, i, tp.ys[i])
		b.SetVec(i, samples[i].Z)
	}

	var w mat.VecDense
	err := w.SolveVec(a, b)
	if err != nil {
		return nil, fmt.Errorf("solve thin-plate system: %w", err)
	}

	tp.weights = make([]float64, n)
	for i := range tp.weights {
		tp.weights[i] = w.AtVec(i)
	}
	tp.a0, tp.ax, tp.ay = w.AtVec(n), w.AtVec(n+1), w.AtVec(n+2)

	return tp, nil
}

func (tp *ThinPlate) normalize(x, y float64) (float64, float64) {
	return (x - tp.cx) / tp.scale, (y - tp.cy) / tp.scale
}

func (tp *ThinPlate) OffsetZ(x, y float64) float64 {
	x, y = tp.normalize(x, y)

	z := tp.a0 + tp.ax*x + tp.ay*y
	for i, w := range tp.weights {
		dx, dy := x-tp.xs[i], y-tp.ys[i]
		z += w * tpsKernel(dx*dx+dy*dy)
	}
	return z
}
