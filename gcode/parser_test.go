package gcode

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/MartinBloedorn/pmu/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func motion(mode record.Mode, feed, x, y, z *float64) record.Motion {
	return record.Motion{MotionStep: record.MotionStep{Mode: mode, Feed: feed, X: x, Y: y, Z: z}}
}

var f = record.Float

func TestParseBlock(t *testing.T) {
	b, ok := ParseBlock("g1 x1.5 Y-2 z.25 ; comment")
	require.True(t, ok)
	assert.Equal(t, Block{{W: 'G', Arg: 1}, {W: 'X', Arg: 1.5}, {W: 'Y', Arg: -2}, {W: 'Z', Arg: 0.25}}, b)

	b, ok = ParseBlock("G0 (rapid) X10")
	require.True(t, ok)
	assert.Equal(t, Block{{W: 'G', Arg: 0}, {W: 'X', Arg: 10}}, b)

	for _, s := range []string{"", "   ", "(only a comment)", "; note", "%", "G1 X", "hello world"} {
		_, ok = ParseBlock(s)
		assert.False(t, ok, s)
	}
}

func TestParser_Read(t *testing.T) {
	p := NewParser(strings.NewReader("(header)\nG21\nG0 Z2\nX1 Y1\nG1 F100 Z-0.1\nX5\nM5"))

	expected := []record.Item{
		record.Raw("(header)"),
		record.Raw("G21"),
		motion(record.ModeRapid, nil, nil, nil, f(2)),
		motion(record.ModeUnset, nil, f(1), f(1), nil),
		motion(record.ModeLinear, f(100), nil, nil, f(-0.1)),
		motion(record.ModeUnset, nil, f(5), nil, nil),
		record.Raw("M5"),
	}
	for _, e := range expected {
		it, err := p.Read()
		require.NoError(t, err)
		assert.Equal(t, e, it)
	}

	_, err := p.Read()
	assert.Equal(t, io.EOF, err)
}

func TestParser_ExtraWords(t *testing.T) {
	prog, err := Parse("G90 G1 X1 M3 S1000\n")
	require.NoError(t, err)

	assert.Equal(t, record.Program{
		record.Raw("G90 M3 S1000"),
		motion(record.ModeLinear, nil, f(1), nil, nil),
	}, prog)
}

func TestParser_Inches(t *testing.T) {
	prog, err := Parse("G20 (inch)\nG1 X1 Y0.5 F1\nG92 X0\nM5\n")
	require.NoError(t, err)

	require.Len(t, prog, 4)
	assert.Equal(t, record.Raw("G21"), prog[0])
	assert.Equal(t, motion(record.ModeLinear, f(25.4), f(25.4), f(12.7), nil), prog[1])
	assert.Equal(t, record.Raw("G92 X0"), prog[2])
	assert.Equal(t, record.Raw("M5"), prog[3])

	// units on the motion line itself
	prog, err = Parse("G20 G0 X2\n")
	require.NoError(t, err)
	assert.Equal(t, record.Program{
		record.Raw("G21"),
		motion(record.ModeRapid, nil, f(50.8), nil, nil),
	}, prog)

	// back to mm on the motion line
	prog, err = Parse("G20\nG21 G0 X1 Y2\nX3\n")
	require.NoError(t, err)
	assert.Equal(t, record.Program{
		record.Raw("G21"),
		record.Raw("G21"),
		motion(record.ModeRapid, nil, f(1), f(2), nil),
		motion(record.ModeUnset, nil, f(3), nil, nil),
	}, prog)
}

func TestParser_NonModal(t *testing.T) {
	prog, err := Parse("G91 G28 Z0\nG90\nG4 P0.5\nG1 X1\n")
	require.NoError(t, err)
	assert.Equal(t, record.Program{
		record.Raw("G91 G28 Z0"),
		record.Raw("G90"),
		record.Raw("G4 P0.5"),
		motion(record.ModeLinear, nil, f(1), nil, nil),
	}, prog)
}

func TestParser_Errors(t *testing.T) {
	_, err := Parse("G1 X0\nG91\nG1 X1\n")
	assert.True(t, errors.Is(err, ErrRelativeMotion))
	var lerr *LineError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, 3, lerr.Line)

	_, err = Parse("G2 X1 Y1 I0.5 J0\n")
	assert.True(t, errors.Is(err, ErrUnsupportedMotion))

	_, err = Parse("G81 Z-1 R1\nX5\n")
	assert.True(t, errors.Is(err, ErrUnsupportedMotion))

	_, err = Parse("G0 G1 X1\n")
	assert.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	prog, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, prog)

	prog, err = Parse("\n\n")
	require.NoError(t, err)
	assert.Equal(t, record.Program{record.Raw(""), record.Raw("")}, prog)
}
