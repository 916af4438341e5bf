package probegrid

import (
	"math"

	"github.com/MartinBloedorn/pmu/coord"
	"github.com/MartinBloedorn/pmu/record"
)

func pointAt(x, y float64) coord.Point { return coord.Point{X: x, Y: y} }

func pointDist(p record.GridPoint, d record.Drill) float64 {
	return math.Hypot(p.X-d.X, p.Y-d.Y)
}
