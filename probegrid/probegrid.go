// Package probegrid plans probe points over a board while keeping them
// clear of drilled holes.
package probegrid

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/MartinBloedorn/pmu/coord"
	"github.com/MartinBloedorn/pmu/record"
)

// Rand is the random source used to jitter stuck points.
type Rand interface {
	Float64() float64
}

// UnresolvedCollisionError is returned when a lattice point could not be
// moved clear of the drills around it.
type UnresolvedCollisionError struct {
	// X, Y is the lattice position the point started from.
	X, Y       float64
	Iterations int
}

func (e *UnresolvedCollisionError) Error() string {
	return fmt.Sprintf("probe point (%g, %g) still collides with a drill after %d iterations", e.X, e.Y, e.Iterations)
}

// Generator builds probing grids.
type Generator struct {
	cfg Config
	rnd Rand
}

// New returns a Generator. A nil rnd is replaced by a clock-seeded source.
func New(cfg Config, rnd Rand) (*Generator, error) {
	err := cfg.validate()
	if err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{cfg: cfg, rnd: rnd}, nil
}

// Generate returns TicksX*TicksY probe points, x-major, each moved clear
// of the drills if needed. Drills are not modified.
//
// If any point can not be placed an *UnresolvedCollisionError is returned
// and no points.
func (g *Generator) Generate(drills []record.Drill) ([]record.GridPoint, error) {
	valid := make([]record.Drill, 0, len(drills))
	for _, d := range drills {
		if !d.Valid() {
			continue
		}
		valid = append(valid, g.cfg.Mirror.apply(d))
	}
	if g.cfg.Mirror.Axis != "" && len(valid) > 0 {
		log.Printf("Probe grid: mirroring drills on %s about %g", g.cfg.Mirror.Axis, g.cfg.Mirror.Value)
	}
	ix := newDrillIndex(valid)

	b := g.cfg.Bounds
	xs := coord.Linspace(b.XMin, b.XMax, g.cfg.TicksX)
	ys := coord.Linspace(b.YMin, b.YMax, g.cfg.TicksY)

	grid := make([]record.GridPoint, 0, len(xs)*len(ys))
	for _, x := range xs {
		for _, y := range ys {
			p, err := g.place(ix, coord.Point{X: x, Y: y})
			if err != nil {
				return nil, err
			}
			grid = append(grid, record.GridPoint{
				X: coord.Round(p.X, g.cfg.Precision),
				Y: coord.Round(p.Y, g.cfg.Precision),
			})
		}
	}

	return grid, nil
}

// relevant returns the drills that act on p and whether p collides with any.
//
// Drills within Scope are relevant, as is any drill p collides with, so a
// large pad whose center is beyond Scope still pushes the point away.
func (g *Generator) relevant(ix *drillIndex, p coord.Point) ([]record.Drill, bool) {
	reach := math.Max(g.cfg.Scope, ix.maxRadius+g.cfg.Tol)

	var res []record.Drill
	var collision bool
	for _, d := range ix.near(p, reach) {
		dist := p.DistanceXY(d.X, d.Y)
		c := dist-d.Radius() < g.cfg.Tol
		collision = collision || c
		if c || dist < g.cfg.Scope {
			res = append(res, d)
		}
	}
	return res, collision
}

func (g *Generator) collides(p coord.Point, drills []record.Drill) bool {
	for _, d := range drills {
		if p.DistanceXY(d.X, d.Y)-d.Radius() < g.cfg.Tol {
			return true
		}
	}
	return false
}

// place moves p away from the drills it collides with.
func (g *Generator) place(ix *drillIndex, p coord.Point) (coord.Point, error) {
	drills, collision := g.relevant(ix, p)
	if !collision || len(drills) == 0 {
		return p, nil
	}

	start := p
	for n := 1; n <= g.cfg.MaxIter; n++ {
		var push coord.Point
		for _, d := range drills {
			push = push.Add(p.Sub(coord.Point{X: d.X, Y: d.Y}).UnitXY())
		}
		p = p.Add(push.UnitXY().Mul(g.cfg.Step))

		// symmetric layouts can cancel out the push entirely
		if n > g.cfg.RandIter {
			p = p.Add(g.jitter())
		}

		if !g.collides(p, drills) {
			log.Printf("Probe grid: avoided drill by moving (%g, %g) to (%g, %g)",
				start.X, start.Y,
				coord.Round(p.X, g.cfg.Precision), coord.Round(p.Y, g.cfg.Precision),
			)
			return p, nil
		}
	}

	return p, &UnresolvedCollisionError{X: start.X, Y: start.Y, Iterations: g.cfg.MaxIter}
}

func (g *Generator) jitter() coord.Point {
	a := 2 * math.Pi * g.rnd.Float64()
	return coord.Point{X: math.Cos(a), Y: math.Sin(a)}.Mul(g.cfg.Step)
}
