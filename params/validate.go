package params

import (
	"fmt"
	"math"
)

// ValidationError reports a malformed parameter value.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

type check struct {
	param string
	fn    func(Params) string
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func atLeastZero(v float64) string {
	if !finite(v) {
		return "must be finite"
	}
	if !(v >= 0) {
		return "must be >= 0"
	}
	return ""
}

func positive(v float64) string {
	if !finite(v) {
		return "must be finite"
	}
	if !(v > 0) {
		return "must be > 0"
	}
	return ""
}

var checks = []check{
	{"precision", func(p Params) string {
		if p.Precision < 0 {
			return "must be >= 0"
		}
		return ""
	}},
	{"drltol", func(p Params) string { return atLeastZero(p.DrlTol) }},
	{"drlscope", func(p Params) string { return atLeastZero(p.DrlScope) }},
	{"drlstep", func(p Params) string { return positive(p.DrlStep) }},
	{"maxiter", func(p Params) string {
		if p.MaxIter < 0 {
			return "must be >= 0"
		}
		return ""
	}},
	{"randiter", func(p Params) string {
		if p.RandIter < 0 {
			return "must be >= 0"
		}
		return ""
	}},
	{"probe_lims", func(p Params) string {
		if len(p.ProbeLims) != 4 {
			return fmt.Sprintf("need 4 values [xmin xmax ymin ymax], got %d", len(p.ProbeLims))
		}
		if !finite(p.ProbeLims...) {
			return "values must be finite"
		}
		if !(p.ProbeLims[0] < p.ProbeLims[1]) {
			return "xmin must be less than xmax"
		}
		if !(p.ProbeLims[2] < p.ProbeLims[3]) {
			return "ymin must be less than ymax"
		}
		return ""
	}},
	{"probe_tick", func(p Params) string {
		if len(p.ProbeTick) != 2 {
			return fmt.Sprintf("need 2 values [xticks yticks], got %d", len(p.ProbeTick))
		}
		if p.ProbeTick[0] < 1 || p.ProbeTick[1] < 1 {
			return "tick counts must be >= 1"
		}
		return ""
	}},
	{"mirrorax", func(p Params) string {
		if _, ok := NormalizeAxis(p.MirrorAx); !ok {
			return "must be x, y, 0 or 1"
		}
		return ""
	}},
	{"mirrorval", func(p Params) string {
		if !finite(p.MirrorVal) {
			return "must be finite"
		}
		return ""
	}},
	{"mincutdepth", func(p Params) string {
		if !finite(p.MinCutDepth) {
			return "must be finite"
		}
		return ""
	}},
	{"initialcoord", func(p Params) string {
		if len(p.InitialCoord) != 3 {
			return fmt.Sprintf("need 3 values [x y z], got %d", len(p.InitialCoord))
		}
		if !finite(p.InitialCoord...) {
			return "values must be finite"
		}
		return ""
	}},
	{"zthreshold", func(p Params) string { return atLeastZero(p.ZThreshold) }},
	{"xysampling", func(p Params) string { return positive(p.XYSampling) }},
}

// Validate returns a *ValidationError for the first invalid parameter.
func (p Params) Validate() error {
	for _, c := range checks {
		if r := c.fn(p); r != "" {
			return &ValidationError{Param: c.param, Reason: r}
		}
	}
	return nil
}

func (p Params) validate(name string) error {
	for _, c := range checks {
		if c.param != name {
			continue
		}
		if r := c.fn(p); r != "" {
			return &ValidationError{Param: c.param, Reason: r}
		}
	}
	return nil
}
