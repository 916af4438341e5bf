// Package probe generates the G-code that probes a grid for a heightmap.
package probe

import (
	"errors"
	"fmt"

	"github.com/MartinBloedorn/pmu/gcode"
	"github.com/MartinBloedorn/pmu/record"
)

// Options configure a grid of straight z-probes.
type Options struct {
	// TravelZ is the height for moves between points.
	TravelZ float64
	// Depth is the lowest Z a probe may travel to.
	Depth    float64
	FeedRate float64

	// ZeroFirst sets work Z to Offset when the first probe touches.
	ZeroFirst bool
	Offset    float64

	Precision int
}

func (opt Options) validate() error {
	if !(opt.FeedRate > 0) {
		return errors.New("probe feed rate must be > 0")
	}
	if opt.Depth >= opt.TravelZ {
		return errors.New("probe depth must be below the travel height")
	}
	return nil
}

// Order returns grid in serpentine order: the x-major columns of ticksY
// points are walked alternately up and down.
func Order(grid []record.GridPoint, ticksY int) ([]record.GridPoint, error) {
	if ticksY < 1 || len(grid)%ticksY != 0 {
		return nil, fmt.Errorf("%d grid points do not form columns of %d", len(grid), ticksY)
	}

	res := make([]record.GridPoint, 0, len(grid))
	for c := 0; c*ticksY < len(grid); c++ {
		col := grid[c*ticksY : (c+1)*ticksY]
		if c%2 == 0 {
			res = append(res, col...)
			continue
		}
		for i := len(col) - 1; i >= 0; i-- {
			res = append(res, col[i])
		}
	}
	return res, nil
}

func rapid(x, y, z *float64) record.Item {
	return record.Motion{MotionStep: record.MotionStep{Mode: record.ModeRapid, X: x, Y: y, Z: z}}
}

// probeCommand returns the block for a single straight probe.
func (opt Options) probeCommand() gcode.Block {
	return gcode.Block{
		{W: 'G', Arg: 38.2},
		{W: 'Z', Arg: opt.Depth},
		{W: 'F', Arg: opt.FeedRate},
	}
}

// Program returns a program probing every point of grid, lifting to
// TravelZ in between.
func Program(grid []record.GridPoint, ticksY int, opt Options) (record.Program, error) {
	err := opt.validate()
	if err != nil {
		return nil, err
	}
	points, err := Order(grid, ticksY)
	if err != nil {
		return nil, err
	}

	travel := record.Float(opt.TravelZ)
	prog := record.Program{
		record.Raw("G21 G90"),
		rapid(nil, nil, travel),
	}
	for i, p := range points {
		prog = append(prog,
			rapid(record.Float(p.X), record.Float(p.Y), nil),
			record.Raw(opt.probeCommand().Format(opt.Precision)),
		)
		if i == 0 && opt.ZeroFirst {
			zero := gcode.Block{{W: 'G', Arg: 92}, {W: 'Z', Arg: opt.Offset}}
			prog = append(prog, record.Raw(zero.Format(opt.Precision)))
		}
		prog = append(prog, rapid(nil, nil, travel))
	}

	return prog, nil
}
