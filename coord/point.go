package coord

import (
	"math"
)

// Point is a machine coordinate in millimeters.
type Point struct{ X, Y, Z float64 }

func (p Point) Equal(b Point) bool {
	return p.X == b.X && p.Y == b.Y && p.Z == b.Z
}

func (p Point) Mul(val float64) Point {
	p.X *= val
	p.Y *= val
	p.Z *= val
	return p
}

func (p Point) Div(val float64) Point {
	p.X /= val
	p.Y /= val
	p.Z /= val
	return p
}

// Add will add the target values to p.
func (p Point) Add(target Point) Point {
	p.X += target.X
	p.Y += target.Y
	p.Z += target.Z
	return p
}

// Sub will subtract the target values from p.
func (p Point) Sub(target Point) Point {
	p.X -= target.X
	p.Y -= target.Y
	p.Z -= target.Z
	return p
}

// DistanceXY will return the 2D distance to p from (x,y).
func (p Point) DistanceXY(x, y float64) float64 {
	return math.Hypot(x-p.X, y-p.Y)
}

// NormXY is the length of the X,Y projection of p.
func (p Point) NormXY() float64 {
	return math.Hypot(p.X, p.Y)
}

// UnitXY returns the X,Y projection of p scaled to length 1.
// The zero vector is returned unchanged.
func (p Point) UnitXY() Point {
	n := p.NormXY()
	if n == 0 {
		return Point{}
	}
	return Point{X: p.X / n, Y: p.Y / n}
}

// Round will round every component of p to prec decimal digits.
func (p Point) Round(prec int) Point {
	return Point{
		X: Round(p.X, prec),
		Y: Round(p.Y, prec),
		Z: Round(p.Z, prec),
	}
}

// Round rounds v to prec decimal digits, half away from zero.
func Round(v float64, prec int) float64 {
	f := math.Pow(10, float64(prec))
	r := math.Round(v*f) / f
	if r == 0 {
		// no negative zero in output
		return 0
	}
	return r
}

// Linspace returns n evenly spaced values over [start, end].
// A single value is just start.
func Linspace(start, end float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	step := (end - start) / float64(n-1)
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = start + step*float64(i)
	}
	vals[n-1] = end
	return vals
}
