// Package record holds the typed records exchanged between the file
// readers, the probing grid generator and the leveler.
package record

import (
	"github.com/MartinBloedorn/pmu/coord"
)

// Mode is the motion mode of a step.
type Mode int8

const (
	ModeUnset  Mode = -1
	ModeRapid  Mode = 0
	ModeLinear Mode = 1
)

// MotionStep is a single rapid or linear move. Nil fields are unset and
// inherit the current position (or the modal state, for Mode and Feed).
type MotionStep struct {
	Mode Mode
	Feed *float64

	X, Y, Z *float64
}

// Float returns a pointer to v, for building MotionSteps.
func Float(v float64) *float64 { return &v }

// Resolve fills the unset axes of s from cur.
func (s MotionStep) Resolve(cur coord.Point) coord.Point {
	if s.X != nil {
		cur.X = *s.X
	}
	if s.Y != nil {
		cur.Y = *s.Y
	}
	if s.Z != nil {
		cur.Z = *s.Z
	}
	return cur
}

// At returns a copy of s moving to p, keeping mode and feed.
func (s MotionStep) At(p coord.Point) MotionStep {
	s.X = Float(p.X)
	s.Y = Float(p.Y)
	s.Z = Float(p.Z)
	if s.Feed != nil {
		s.Feed = Float(*s.Feed)
	}
	return s
}

// Item is an element of a Program: either a Motion or a Raw line.
type Item interface {
	item()
}

// Motion is a move the leveler interprets.
type Motion struct{ MotionStep }

// Raw is a line passed through untouched (comments, tool changes, ...).
type Raw string

func (Motion) item() {}
func (Raw) item()    {}

// Program is an ordered G-code sequence.
type Program []Item

// Motions counts the Motion items in p.
func (p Program) Motions() int {
	var n int
	for _, it := range p {
		if _, ok := it.(Motion); ok {
			n++
		}
	}
	return n
}

// Drill is a drilled hole; probe points must keep clear of it.
type Drill struct {
	// Diameter in mm. Tools without a definition carry NoTool.
	Diameter float64
	X, Y     float64
}

// NoTool is the diameter of drills whose tool was never defined.
const NoTool = -1

// Radius is half the diameter.
func (d Drill) Radius() float64 { return d.Diameter / 2 }

// Valid reports if d takes part in collision checks.
func (d Drill) Valid() bool { return d.Diameter > 0 }

// HeightSample is one probe measurement.
type HeightSample struct{ X, Y, Z float64 }

// Point converts h to a coord.Point.
func (h HeightSample) Point() coord.Point { return coord.Point{X: h.X, Y: h.Y, Z: h.Z} }

// GridPoint is a planned probe location.
type GridPoint struct{ X, Y float64 }
