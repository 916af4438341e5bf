package coord

import (
	"math"
)

const (
	// Epsilon is the max error when checking containment.
	Epsilon   = 0.001
	epsilonSq = Epsilon * Epsilon

	degenerateArea = 1e-12
)

type Triangle struct{ A, B, C Point }

// barycentric returns the weights of A, B and C at (x,y).
//
// ok is false if the triangle has no area in the X,Y plane.
func (t Triangle) barycentric(x, y float64) (wa, wb, wc float64, ok bool) {
	det := (t.B.Y-t.C.Y)*(t.A.X-t.C.X) + (t.C.X-t.B.X)*(t.A.Y-t.C.Y)
	if math.Abs(det) < degenerateArea {
		return 0, 0, 0, false
	}
	wa = ((t.B.Y-t.C.Y)*(x-t.C.X) + (t.C.X-t.B.X)*(y-t.C.Y)) / det
	wb = ((t.C.Y-t.A.Y)*(x-t.C.X) + (t.A.X-t.C.X)*(y-t.C.Y)) / det
	return wa, wb, 1 - wa - wb, true
}

// ContainsXY returns true if the 2D projection of the triangle
// has the point x,y. Winding order does not matter.
func (t Triangle) ContainsXY(x, y float64) bool {
	if !pointInTriangleBoundingBox(
		t.A.X, t.A.Y,
		t.B.X, t.B.Y,
		t.C.X, t.C.Y,
		x, y) {
		return false
	}
	wa, wb, wc, ok := t.barycentric(x, y)
	if ok && wa >= 0 && wb >= 0 && wc >= 0 {
		return true
	}
	return t.edgeDistanceSq(x, y) <= epsilonSq
}

// DistanceSqXY is the squared planar distance from x,y to the triangle,
// zero when it is inside.
func (t Triangle) DistanceSqXY(x, y float64) float64 {
	wa, wb, wc, ok := t.barycentric(x, y)
	if ok && wa >= 0 && wb >= 0 && wc >= 0 {
		return 0
	}
	return t.edgeDistanceSq(x, y)
}

// Z will give the Z-coordinate on the plane defined by the triangle
// where it intersects x,y. Points outside the triangle are extrapolated
// along the same plane.
func (t Triangle) Z(x, y float64) float64 {
	wa, wb, wc, ok := t.barycentric(x, y)
	if !ok {
		return (t.A.Z + t.B.Z + t.C.Z) / 3
	}
	return wa*t.A.Z + wb*t.B.Z + wc*t.C.Z
}

func (t Triangle) edgeDistanceSq(x, y float64) float64 {
	return math.Min(
		distanceSquarePointToSegment(t.A.X, t.A.Y, t.B.X, t.B.Y, x, y),
		math.Min(
			distanceSquarePointToSegment(t.B.X, t.B.Y, t.C.X, t.C.Y, x, y),
			distanceSquarePointToSegment(t.C.X, t.C.Y, t.A.X, t.A.Y, x, y),
		),
	)
}

// adapted from https://totologic.blogspot.com/2014/01/accurate-point-in-triangle-test.html

func pointInTriangleBoundingBox(x1, y1, x2, y2, x3, y3, x, y float64) bool {
	xMin := math.Min(x1, math.Min(x2, x3)) - Epsilon
	xMax := math.Max(x1, math.Max(x2, x3)) + Epsilon
	yMin := math.Min(y1, math.Min(y2, y3)) - Epsilon
	yMax := math.Max(y1, math.Max(y2, y3)) + Epsilon

	if x < xMin || xMax < x || y < yMin || yMax < y {
		return false
	}
	return true
}

func distanceSquarePointToSegment(x1, y1, x2, y2, x, y float64) float64 {
	p1p2squareLength := (x2-x1)*(x2-x1) + (y2-y1)*(y2-y1)
	if p1p2squareLength == 0 {
		return (x-x1)*(x-x1) + (y-y1)*(y-y1)
	}
	dotProduct := ((x-x1)*(x2-x1) + (y-y1)*(y2-y1)) / p1p2squareLength
	if dotProduct < 0 {
		return (x-x1)*(x-x1) + (y-y1)*(y-y1)
	}
	if dotProduct <= 1 {
		p0p1squareLength := (x1-x)*(x1-x) + (y1-y)*(y1-y)
		return math.Max(0, p0p1squareLength-dotProduct*dotProduct*p1p2squareLength)
	}

	return (x-x2)*(x-x2) + (y-y2)*(y-y2)
}
