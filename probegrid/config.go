package probegrid

import (
	"math"

	"github.com/MartinBloedorn/pmu/params"
	"github.com/MartinBloedorn/pmu/record"
)

// Bounds is the probed rectangle, inclusive.
type Bounds struct{ XMin, XMax, YMin, YMax float64 }

// Mirror reflects drills about a line parallel to one axis.
type Mirror struct {
	// Axis is "x" to reflect X coordinates, "y" for Y, "" to disable.
	Axis  string
	Value float64
}

func (m Mirror) apply(d record.Drill) record.Drill {
	switch m.Axis {
	case "x":
		d.X += 2 * (m.Value - d.X)
	case "y":
		d.Y += 2 * (m.Value - d.Y)
	}
	return d
}

// Config configures a Generator.
type Config struct {
	Bounds         Bounds
	TicksX, TicksY int

	// Tol is the minimum clearance from a probe point to a drill edge.
	Tol float64
	// Scope is the radius within which drills repel a point.
	Scope float64
	// Step is how far a point moves per iteration.
	Step float64

	MaxIter int
	// RandIter is the number of iterations before random jitter is added.
	RandIter int

	Precision int
	Mirror    Mirror
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// validate is written so that NaN fails every comparison.
func (c Config) validate() error {
	b := c.Bounds
	switch {
	case !finite(b.XMin, b.XMax, b.YMin, b.YMax):
		return &params.ValidationError{Param: "probe_lims", Reason: "values must be finite"}
	case !(b.XMin < b.XMax):
		return &params.ValidationError{Param: "probe_lims", Reason: "xmin must be less than xmax"}
	case !(b.YMin < b.YMax):
		return &params.ValidationError{Param: "probe_lims", Reason: "ymin must be less than ymax"}
	case c.TicksX < 1 || c.TicksY < 1:
		return &params.ValidationError{Param: "probe_tick", Reason: "tick counts must be >= 1"}
	case !finite(c.Tol) || !(c.Tol >= 0):
		return &params.ValidationError{Param: "drltol", Reason: "must be a finite value >= 0"}
	case !finite(c.Scope) || !(c.Scope >= 0):
		return &params.ValidationError{Param: "drlscope", Reason: "must be a finite value >= 0"}
	case !finite(c.Step) || !(c.Step > 0):
		return &params.ValidationError{Param: "drlstep", Reason: "must be a finite value > 0"}
	case c.Precision < 0:
		return &params.ValidationError{Param: "precision", Reason: "must be >= 0"}
	case !finite(c.Mirror.Value):
		return &params.ValidationError{Param: "mirrorval", Reason: "must be finite"}
	case c.Mirror.Axis != "" && c.Mirror.Axis != "x" && c.Mirror.Axis != "y":
		return &params.ValidationError{Param: "mirrorax", Reason: "must be x or y"}
	}
	return nil
}
