package meshlevel

import (
	"errors"
	"io"
	"log"
	"math"

	"github.com/MartinBloedorn/pmu/coord"
	"github.com/MartinBloedorn/pmu/gcode"
	"github.com/MartinBloedorn/pmu/params"
	"github.com/MartinBloedorn/pmu/record"
)

var ErrEmptyInput = errors.New("empty motion program")

type Config struct {
	// Initial is the tool position before the first motion.
	Initial coord.Point

	// ZThreshold is the height change that must accumulate along a
	// segment before an intermediate point is emitted.
	ZThreshold float64

	// XYSampling is the planar distance between surface queries.
	XYSampling float64

	Precision int
}

func (cfg Config) validate() error {
	if !(cfg.XYSampling > 0) || math.IsInf(cfg.XYSampling, 1) {
		return &params.ValidationError{Param: "xysampling", Reason: "must be a finite value > 0"}
	}
	if !(cfg.ZThreshold >= 0) || math.IsInf(cfg.ZThreshold, 1) {
		return &params.ValidationError{Param: "zthreshold", Reason: "must be a finite value >= 0"}
	}
	for _, v := range []float64{cfg.Initial.X, cfg.Initial.Y, cfg.Initial.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &params.ValidationError{Param: "initialcoord", Reason: "values must be finite"}
		}
	}
	if cfg.Precision < 0 {
		return &params.ValidationError{Param: "precision", Reason: "must be >= 0"}
	}
	return nil
}

// MeshLeveler streams a program, splitting every motion where the
// surface deviates and lifting each emitted point by the surface height.
type MeshLeveler struct {
	cfg       Config
	offsetter ZOffsetter

	pos coord.Point

	buf  []record.Item
	bufN int

	added int

	r gcode.Reader
}

func New(cfg Config, surface ZOffsetter, r gcode.Reader) *MeshLeveler {
	l := &MeshLeveler{
		cfg:       cfg,
		offsetter: surface,
		pos:       cfg.Initial,
		r:         r,
	}
	if l.offsetter == nil {
		l.offsetter = flatOffsetter(0)
	}
	return l
}

// Added reports how many intermediate points have been emitted so far.
func (l *MeshLeveler) Added() int { return l.added }

func (l *MeshLeveler) Read() (record.Item, error) {
	if len(l.buf)-l.bufN > 0 {
		l.bufN++
		return l.buf[l.bufN-1], nil
	}

	it, err := l.r.Read()
	if err != nil {
		return nil, err
	}
	m, ok := it.(record.Motion)
	if !ok {
		return it, nil
	}

	next := m.Resolve(l.pos)
	l.buf = l.split(l.pos, next, m.MotionStep)
	l.added += len(l.buf) - 1
	l.pos = next

	l.bufN = 1
	return l.buf[0], nil
}

func (l *MeshLeveler) split(p0, p1 coord.Point, step record.MotionStep) []record.Item {
	var res []record.Item

	dist := p0.DistanceXY(p1.X, p1.Y)
	// TODO: account for rounding errors past (e.g. beyond .00001)?
	n := int(math.Ceil(dist / l.cfg.XYSampling))

	cz := l.offsetter.OffsetZ(p0.X, p0.Y)
	for i := 1; i < n; i++ {
		f := float64(i) / float64(n)
		x := p0.X + (p1.X-p0.X)*f
		y := p0.Y + (p1.Y-p0.Y)*f

		z := l.offsetter.OffsetZ(x, y)
		if math.Abs(z-cz) <= l.cfg.ZThreshold {
			continue
		}
		cz = z

		p := coord.Point{X: x, Y: y, Z: p0.Z + (p1.Z-p0.Z)*f + cz}
		res = append(res, record.Motion{MotionStep: step.At(p.Round(l.cfg.Precision))})
	}

	end := p1
	end.Z += l.offsetter.OffsetZ(p1.X, p1.Y)
	return append(res, record.Motion{MotionStep: step.At(end.Round(l.cfg.Precision))})
}

// Apply levels a whole program against an already fitted surface.
func Apply(cfg Config, prog record.Program, surface ZOffsetter) (record.Program, error) {
	if len(prog) == 0 {
		return nil, ErrEmptyInput
	}
	err := cfg.validate()
	if err != nil {
		return nil, err
	}

	l := New(cfg, surface, &gcode.ProgramReader{Program: prog})
	out := make(record.Program, 0, len(prog))
	for {
		it, err := l.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}

	log.Printf("Leveler: added %d intermediary points", l.Added())
	return out, nil
}

// Run fits a surface to samples and levels prog against it.
func Run(cfg Config, prog record.Program, samples []record.HeightSample) (record.Program, error) {
	if len(prog) == 0 {
		return nil, ErrEmptyInput
	}
	surface, err := Fit(samples)
	if err != nil {
		return nil, err
	}
	return Apply(cfg, prog, surface)
}
