package planner

import (
	"github.com/MartinBloedorn/pmu/coord"
	"github.com/MartinBloedorn/pmu/meshlevel"
	"github.com/MartinBloedorn/pmu/params"
	"github.com/MartinBloedorn/pmu/probegrid"
)

// GridConfig projects the grid generator settings out of p.
func GridConfig(p params.Params) (probegrid.Config, error) {
	err := p.Validate()
	if err != nil {
		return probegrid.Config{}, err
	}
	// Params built without Set may still carry 0 or 1
	axis, _ := params.NormalizeAxis(p.MirrorAx)

	return probegrid.Config{
		Bounds: probegrid.Bounds{
			XMin: p.ProbeLims[0],
			XMax: p.ProbeLims[1],
			YMin: p.ProbeLims[2],
			YMax: p.ProbeLims[3],
		},
		TicksX:    p.ProbeTick[0],
		TicksY:    p.ProbeTick[1],
		Tol:       p.DrlTol,
		Scope:     p.DrlScope,
		Step:      p.DrlStep,
		MaxIter:   p.MaxIter,
		RandIter:  p.RandIter,
		Precision: p.Precision,
		Mirror:    probegrid.Mirror{Axis: axis, Value: p.MirrorVal},
	}, nil
}

// LevelConfig projects the leveler settings out of p.
func LevelConfig(p params.Params) (meshlevel.Config, error) {
	err := p.Validate()
	if err != nil {
		return meshlevel.Config{}, err
	}

	return meshlevel.Config{
		Initial: coord.Point{
			X: p.InitialCoord[0],
			Y: p.InitialCoord[1],
			Z: p.InitialCoord[2],
		},
		ZThreshold: p.ZThreshold,
		XYSampling: p.XYSampling,
		Precision:  p.Precision,
	}, nil
}
