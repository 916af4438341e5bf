// Package params is the PMU parameter store.
//
// Parameters are loaded from a conf or YAML file, changed one at a time
// with Set, and handed to the grid generator and the leveler as typed
// configs once Validate passes.
package params

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Params holds every parameter the planner consumes.
type Params struct {
	// Precision is the number of decimal digits kept in generated coordinates.
	Precision int `param:"precision"`

	// DrlTol is the minimum clearance between a probe point and a drill edge.
	DrlTol float64 `param:"drltol"`
	// DrlScope is the radius within which drills repel a probe point.
	DrlScope float64 `param:"drlscope"`
	// DrlStep is the distance a probe point moves per avoidance iteration.
	DrlStep  float64 `param:"drlstep"`
	MaxIter  int     `param:"maxiter"`
	RandIter int     `param:"randiter"`

	// ProbeLims is xmin, xmax, ymin, ymax.
	ProbeLims []float64 `param:"probe_lims"`
	// ProbeTick is the number of points along x and y.
	ProbeTick []int `param:"probe_tick"`

	MirrorAx  string  `param:"mirrorax"`
	MirrorVal float64 `param:"mirrorval"`

	// MinCutDepth is reserved and not used by the leveler.
	MinCutDepth  float64   `param:"mincutdepth"`
	InitialCoord []float64 `param:"initialcoord"`
	ZThreshold   float64   `param:"zthreshold"`
	XYSampling   float64   `param:"xysampling"`

	// Seed for the drill avoidance jitter, 0 picks one from the clock.
	Seed int64 `param:"seed"`

	// Extra holds free-form entries such as file paths.
	Extra map[string]string `param:"-"`
}

var names = []string{
	"precision",
	"drltol", "drlscope", "drlstep", "maxiter", "randiter",
	"probe_lims", "probe_tick", "mirrorax", "mirrorval",
	"mincutdepth", "initialcoord", "zthreshold", "xysampling",
	"seed",
}

func isKnown(name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Default returns the built-in parameter set.
func Default() Params {
	return Params{
		Precision: 4,

		DrlTol:    1.0,
		DrlScope:  5.0,
		DrlStep:   0.2,
		MaxIter:   20,
		RandIter:  10,
		ProbeLims: []float64{0, 1, 0, 1},
		ProbeTick: []int{1, 1},
		MirrorAx:  "",
		MirrorVal: 0,

		MinCutDepth:  0,
		InitialCoord: []float64{0, 0, 0},
		ZThreshold:   0.01,
		XYSampling:   1.0,
	}
}

// Clone returns a deep copy of p.
func (p Params) Clone() Params {
	p.ProbeLims = append([]float64(nil), p.ProbeLims...)
	p.ProbeTick = append([]int(nil), p.ProbeTick...)
	p.InitialCoord = append([]float64(nil), p.InitialCoord...)
	if p.Extra != nil {
		extra := make(map[string]string, len(p.Extra))
		for k, v := range p.Extra {
			extra[k] = v
		}
		p.Extra = extra
	}
	return p
}

// Names lists the known parameters followed by the extras, sorted.
func (p Params) Names() []string {
	res := append([]string(nil), names...)
	extra := make([]string, 0, len(p.Extra))
	for k := range p.Extra {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	return append(res, extra...)
}

// Map returns every parameter keyed by name.
func (p Params) Map() map[string]interface{} {
	m := map[string]interface{}{
		"precision":    p.Precision,
		"drltol":       p.DrlTol,
		"drlscope":     p.DrlScope,
		"drlstep":      p.DrlStep,
		"maxiter":      p.MaxIter,
		"randiter":     p.RandIter,
		"probe_lims":   p.ProbeLims,
		"probe_tick":   p.ProbeTick,
		"mirrorax":     p.MirrorAx,
		"mirrorval":    p.MirrorVal,
		"mincutdepth":  p.MinCutDepth,
		"initialcoord": p.InitialCoord,
		"zthreshold":   p.ZThreshold,
		"xysampling":   p.XYSampling,
		"seed":         p.Seed,
	}
	for k, v := range p.Extra {
		m[k] = v
	}
	return m
}

// Get returns the value of name formatted the way Set accepts it.
func (p Params) Get(name string) (string, bool) {
	v, ok := p.Map()[name]
	if !ok {
		return "", false
	}
	return format(v), true
}

func format(v interface{}) string {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case []float64:
		s := make([]string, len(val))
		for i, f := range val {
			s[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return "[" + strings.Join(s, ", ") + "]"
	case []int:
		s := make([]string, len(val))
		for i, n := range val {
			s[i] = strconv.Itoa(n)
		}
		return "[" + strings.Join(s, ", ") + "]"
	}
	return fmt.Sprint(v)
}

// Set parses value into the parameter called name.
//
// Unknown names are kept as extras. The value is rejected, leaving p
// untouched, if it does not parse or fails the checks for that parameter.
func (p *Params) Set(name string, value interface{}) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Param: name, Reason: "empty name"}
	}
	if l := strings.ToLower(name); isKnown(l) {
		name = l
	}

	q := p.Clone()
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       listHook,
		WeaklyTypedInput: true,
		ZeroFields:       true,
		Metadata:         &md,
		TagName:          "param",
		Result:           &q,
	})
	if err != nil {
		return err
	}
	err = dec.Decode(map[string]interface{}{name: value})
	if err != nil {
		return &ValidationError{Param: name, Reason: decodeReason(err)}
	}
	if len(md.Unused) > 0 {
		if q.Extra == nil {
			q.Extra = make(map[string]string)
		}
		q.Extra[name] = format(value)
		*p = q
		return nil
	}

	if name == "mirrorax" {
		ax, ok := NormalizeAxis(q.MirrorAx)
		if !ok {
			return &ValidationError{Param: name, Reason: "must be x, y, 0 or 1"}
		}
		q.MirrorAx = ax
	}
	err = q.validate(name)
	if err != nil {
		return err
	}

	*p = q
	return nil
}

// Delete removes an extra entry. Known parameters can not be removed.
func (p *Params) Delete(name string) bool {
	if _, ok := p.Extra[name]; !ok {
		return false
	}
	q := p.Clone()
	delete(q.Extra, name)
	*p = q
	return true
}

func decodeReason(err error) string {
	if merr, ok := err.(*mapstructure.Error); ok && len(merr.Errors) > 0 {
		return merr.Errors[0]
	}
	return err.Error()
}

// listHook lets list parameters be written as "[1, 2, 3]" or "1 2 3".
func listHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
		return data, nil
	}
	return splitList(data.(string)), nil
}

func splitList(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// NormalizeAxis maps the accepted mirror axis spellings to "", "x" or "y".
// The numeric designations select x (0) and y (1).
func NormalizeAxis(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", true
	case "x", "0":
		return "x", true
	case "y", "1":
		return "y", true
	}
	return "", false
}
