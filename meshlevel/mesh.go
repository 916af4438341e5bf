package meshlevel

import (
	"errors"
	"fmt"
	"math"

	"github.com/MartinBloedorn/pmu/coord"
	"github.com/fogleman/delaunay"
)

// Mesh is a piecewise-linear surface over a Delaunay triangulation.
type Mesh struct {
	minX, minY, maxX, maxY float64
	triangles              []coord.Triangle
}

var _ ZOffsetter = &Mesh{}

func NewMesh(points []coord.Point) (*Mesh, error) {
	if len(points) < 3 {
		return nil, errors.New("need at least 3 points to create a mesh")
	}

	points2d := make([]delaunay.Point, len(points))

	mesh := &Mesh{
		minX: points[0].X,
		minY: points[0].Y,
		maxX: points[0].X,
		maxY: points[0].Y,
	}
	for i, p := range points {
		mesh.minX = math.Min(mesh.minX, p.X)
		mesh.minY = math.Min(mesh.minY, p.Y)
		mesh.maxX = math.Max(mesh.maxX, p.X)
		mesh.maxY = math.Max(mesh.maxY, p.Y)

		points2d[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	mesh.minX -= coord.Epsilon
	mesh.minY -= coord.Epsilon
	mesh.maxX += coord.Epsilon
	mesh.maxY += coord.Epsilon

	tri, err := delaunay.Triangulate(points2d)
	if err != nil {
		return nil, fmt.Errorf("triangulate height samples: %w", err)
	}
	if len(tri.Triangles) == 0 {
		return nil, errors.New("triangulate height samples: no triangles")
	}

	mesh.triangles = make([]coord.Triangle, 0, len(tri.Triangles)/3)

	for i := 0; i < len(tri.Triangles); i += 3 {
		mesh.triangles = append(mesh.triangles, coord.Triangle{
			A: points[tri.Triangles[i]],
			B: points[tri.Triangles[i+1]],
			C: points[tri.Triangles[i+2]],
		})
	}

	return mesh, nil
}

// OffsetZ returns the height at x,y. Outside the hull the plane of the
// closest triangle is extended.
func (m Mesh) OffsetZ(x, y float64) float64 {
	if m.minX <= x && x <= m.maxX && m.minY <= y && y <= m.maxY {
		for _, t := range m.triangles {
			if t.ContainsXY(x, y) {
				return t.Z(x, y)
			}
		}
	}

	best := m.triangles[0]
	bestDist := math.Inf(1)
	for _, t := range m.triangles {
		d := t.DistanceSqXY(x, y)
		if d < bestDist {
			best, bestDist = t, d
		}
	}
	return best.Z(x, y)
}
