package probegrid

import (
	"math"

	"github.com/MartinBloedorn/pmu/coord"
	"github.com/MartinBloedorn/pmu/record"
	"github.com/asim/quadtree"
)

// drillIndex answers "which drills are near this point" queries.
type drillIndex struct {
	tree *quadtree.QuadTree
	// rejected holds drills the tree refused; they are scanned linearly.
	rejected  []record.Drill
	maxRadius float64
}

func newDrillIndex(drills []record.Drill) *drillIndex {
	ix := &drillIndex{}
	if len(drills) == 0 {
		return ix
	}

	minX, minY := drills[0].X, drills[0].Y
	maxX, maxY := minX, minY
	byCenter := make(map[[2]float64][]record.Drill, len(drills))
	var order [][2]float64
	for _, d := range drills {
		minX = math.Min(minX, d.X)
		minY = math.Min(minY, d.Y)
		maxX = math.Max(maxX, d.X)
		maxY = math.Max(maxY, d.Y)
		ix.maxRadius = math.Max(ix.maxRadius, d.Radius())

		c := [2]float64{d.X, d.Y}
		if _, ok := byCenter[c]; !ok {
			order = append(order, c)
		}
		byCenter[c] = append(byCenter[c], d)
	}

	// margin so drills on the edge are inside the boundary
	aabb := quadtree.NewAABB(
		quadtree.NewPoint((minX+maxX)/2, (minY+maxY)/2, nil),
		quadtree.NewPoint((maxX-minX)/2+1, (maxY-minY)/2+1, nil),
	)
	ix.tree = quadtree.New(aabb, 0, nil)
	for _, c := range order {
		if !ix.tree.Insert(quadtree.NewPoint(c[0], c[1], byCenter[c])) {
			ix.rejected = append(ix.rejected, byCenter[c]...)
		}
	}

	return ix
}

// near returns the drills whose center is within dist of p.
func (ix *drillIndex) near(p coord.Point, dist float64) []record.Drill {
	if ix.tree == nil {
		return nil
	}

	var res []record.Drill
	box := quadtree.NewAABB(
		quadtree.NewPoint(p.X, p.Y, nil),
		quadtree.NewPoint(dist, dist, nil),
	)
	for _, qp := range ix.tree.Search(box) {
		for _, d := range qp.Data().([]record.Drill) {
			if p.DistanceXY(d.X, d.Y) <= dist {
				res = append(res, d)
			}
		}
	}
	for _, d := range ix.rejected {
		if p.DistanceXY(d.X, d.Y) <= dist {
			res = append(res, d)
		}
	}

	return res
}
