package meshlevel

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/MartinBloedorn/pmu/coord"
	"github.com/MartinBloedorn/pmu/gcode"
	"github.com/MartinBloedorn/pmu/params"
	"github.com/MartinBloedorn/pmu/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corners(z func(x, y float64) float64) []record.HeightSample {
	var res []record.HeightSample
	for _, x := range []float64{0, 10} {
		for _, y := range []float64{0, 10} {
			res = append(res, record.HeightSample{X: x, Y: y, Z: z(x, y)})
		}
	}
	return res
}

func motionAt(t *testing.T, it record.Item) coord.Point {
	t.Helper()
	m, ok := it.(record.Motion)
	require.True(t, ok, "expected motion, got %#v", it)
	require.NotNil(t, m.X)
	require.NotNil(t, m.Y)
	require.NotNil(t, m.Z)
	return coord.Point{X: *m.X, Y: *m.Y, Z: *m.Z}
}

func TestMeshLeveler(t *testing.T) {
	// probes indicate a rise of 1mm over 10mm in X
	probes := corners(func(x, y float64) float64 { return 0.1 * x })

	cfg := Config{
		ZThreshold: 0.05,
		XYSampling: 1,
		Precision:  4,
	}
	prog := record.Program{
		record.Motion{MotionStep: record.MotionStep{Mode: record.ModeLinear, X: record.Float(10), Z: record.Float(-1)}},
	}

	out, err := Run(cfg, prog, probes)
	require.NoError(t, err)
	require.Len(t, out, 10)

	for i, it := range out {
		p := motionAt(t, it)
		assert.InDelta(t, float64(i+1), p.X, 1e-9)
		assert.Equal(t, 0.0, p.Y)
		// the surface rise cancels the descent of the cut
		assert.InDelta(t, 0, p.Z, 1e-9)
		assert.Equal(t, record.ModeLinear, it.(record.Motion).Mode)
	}
}

func TestMeshLeveler_Threshold(t *testing.T) {
	probes := corners(func(x, y float64) float64 { return 0.1 * x })

	cfg := Config{
		ZThreshold: 0.15,
		XYSampling: 1,
		Precision:  4,
	}
	prog := record.Program{
		record.Motion{MotionStep: record.MotionStep{Mode: record.ModeLinear, X: record.Float(10), Z: record.Float(-1)}},
	}

	out, err := Run(cfg, prog, probes)
	require.NoError(t, err)
	require.Len(t, out, 5)
	for i, it := range out {
		p := motionAt(t, it)
		assert.InDelta(t, float64(2*i+2), p.X, 1e-9)
		assert.InDelta(t, 0, p.Z, 1e-9)
	}
}

func TestMeshLeveler_Flat(t *testing.T) {
	probes := corners(func(x, y float64) float64 { return 0 })

	cfg := Config{
		ZThreshold: 0.01,
		XYSampling: 0.5,
		Precision:  3,
	}
	prog := record.Program{
		record.Motion{MotionStep: record.MotionStep{Mode: record.ModeRapid, X: record.Float(1), Y: record.Float(1), Z: record.Float(2)}},
		record.Motion{MotionStep: record.MotionStep{Mode: record.ModeLinear, Feed: record.Float(100), X: record.Float(9), Y: record.Float(7), Z: record.Float(-0.1)}},
		record.Motion{MotionStep: record.MotionStep{Mode: record.ModeUnset, Y: record.Float(2)}},
	}

	out, err := Run(cfg, prog, probes)
	require.NoError(t, err)
	require.Len(t, out, len(prog))

	assert.Equal(t, coord.Point{X: 1, Y: 1, Z: 2}, motionAt(t, out[0]))
	assert.Equal(t, coord.Point{X: 9, Y: 7, Z: -0.1}, motionAt(t, out[1]))
	assert.Equal(t, coord.Point{X: 9, Y: 2, Z: -0.1}, motionAt(t, out[2]))

	m := out[1].(record.Motion)
	require.NotNil(t, m.Feed)
	assert.Equal(t, 100.0, *m.Feed)
	assert.Equal(t, record.ModeUnset, out[2].(record.Motion).Mode)
}

func TestMeshLeveler_RawAndOffset(t *testing.T) {
	cfg := Config{
		Initial:    coord.Point{X: 0, Y: 0, Z: 0},
		ZThreshold: 0.01,
		XYSampling: 1,
		Precision:  4,
	}
	prog := record.Program{
		record.Raw("(header)"),
		record.Motion{MotionStep: record.MotionStep{Mode: record.ModeRapid, Z: record.Float(5)}},
		record.Motion{MotionStep: record.MotionStep{X: record.Float(1)}},
		record.Raw("M5"),
	}

	l := New(cfg, flatOffsetter(0.5), &gcode.ProgramReader{Program: prog})

	it, err := l.Read()
	require.NoError(t, err)
	assert.Equal(t, record.Raw("(header)"), it)

	it, err = l.Read()
	require.NoError(t, err)
	assert.Equal(t, coord.Point{Z: 5.5}, motionAt(t, it))

	it, err = l.Read()
	require.NoError(t, err)
	assert.Equal(t, coord.Point{X: 1, Z: 5.5}, motionAt(t, it))

	it, err = l.Read()
	require.NoError(t, err)
	assert.Equal(t, record.Raw("M5"), it)

	_, err = l.Read()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 0, l.Added())
}

func TestMeshLeveler_Bounded(t *testing.T) {
	// steep bumpy surface, every tick exceeds the threshold
	probes := []record.HeightSample{
		{X: 0, Y: 0, Z: 0},
		{X: 4, Y: 0, Z: 3},
		{X: 8, Y: 0, Z: -2},
		{X: 0, Y: 4, Z: 1},
		{X: 4, Y: 4, Z: 0},
		{X: 8, Y: 4, Z: 2},
	}
	cfg := Config{XYSampling: 0.7, Precision: 3}
	prog := record.Program{
		record.Motion{MotionStep: record.MotionStep{X: record.Float(8), Y: record.Float(4)}},
	}

	out, err := Run(cfg, prog, probes)
	require.NoError(t, err)

	// ceil(sqrt(80)/0.7) = 13 ticks at most
	assert.GreaterOrEqual(t, len(out), 1)
	assert.LessOrEqual(t, len(out), 13)
	assert.Equal(t, coord.Point{X: 8, Y: 4, Z: 2}, motionAt(t, out[len(out)-1]))
}

func TestRun_Errors(t *testing.T) {
	prog := record.Program{
		record.Motion{MotionStep: record.MotionStep{X: record.Float(1)}},
	}
	cfg := Config{XYSampling: 1}

	_, err := Run(cfg, nil, corners(func(x, y float64) float64 { return 0 }))
	assert.ErrorIs(t, err, ErrEmptyInput)

	// empty program is reported before a short heightmap
	_, err = Run(cfg, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Run(cfg, prog, corners(func(x, y float64) float64 { return 0 })[:3])
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Run(Config{}, prog, corners(func(x, y float64) float64 { return 0 }))
	var verr *params.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "xysampling", verr.Param)

	for param, bad := range map[string]Config{
		"xysampling":   {XYSampling: math.NaN()},
		"zthreshold":   {XYSampling: 1, ZThreshold: math.NaN()},
		"initialcoord": {XYSampling: 1, Initial: coord.Point{Z: math.Inf(-1)}},
	} {
		_, err = Run(bad, prog, corners(func(x, y float64) float64 { return 0 }))
		require.True(t, errors.As(err, &verr), "%s: got %v", param, err)
		assert.Equal(t, param, verr.Param)
	}
}

func TestOffsetFrom(t *testing.T) {
	samples := []record.HeightSample{{X: 1, Y: 2, Z: -3}, {X: 4, Y: 5, Z: -2.5}}

	res := OffsetFrom(-3, samples)
	assert.Equal(t, []record.HeightSample{{X: 1, Y: 2, Z: 0}, {X: 4, Y: 5, Z: 0.5}}, res)
	assert.Equal(t, -3.0, samples[0].Z)
}
