package gcode

import (
	"bytes"
	"io"
	"testing"

	"github.com/MartinBloedorn/pmu/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWord_Format(t *testing.T) {
	assert.Equal(t, "X1.5", Word{W: 'X', Arg: 1.5}.Format(3))
	assert.Equal(t, "X1", Word{W: 'X', Arg: 1.00001}.Format(3))
	assert.Equal(t, "Z0", Word{W: 'Z', Arg: -0.00001}.Format(3))
	assert.Equal(t, "G38.2", Word{W: 'G', Arg: 38.2}.String())
}

func TestFormatItem(t *testing.T) {
	m := motion(record.ModeLinear, f(300), f(1.23456), nil, f(-0.1))
	assert.Equal(t, "G1 F300 X1.235 Z-0.1", FormatItem(m, 3))
	assert.Equal(t, "X2", FormatItem(motion(record.ModeUnset, nil, f(2), nil, nil), 3))
	assert.Equal(t, "(keep as is)", FormatItem(record.Raw("(keep as is)"), 3))
}

func TestWriteProgram(t *testing.T) {
	src := "(header)\nG21\nG0 Z2\nX1 Y1\nG1 F100 Z-0.1\nM5\n"
	prog := MustParse(src)

	var buf bytes.Buffer
	require.NoError(t, WriteProgram(&buf, prog, 4))
	assert.Equal(t, src, buf.String())
}

func TestProgramReader(t *testing.T) {
	prog := record.Program{record.Raw("M3"), record.Raw("M5")}
	gr := &ProgramReader{Program: prog}

	it, err := gr.Read()
	assert.NoError(t, err)
	assert.Equal(t, record.Raw("M3"), it)

	it, err = gr.Read()
	assert.NoError(t, err)
	assert.Equal(t, record.Raw("M5"), it)

	it, err = gr.Read()
	assert.Equal(t, io.EOF, err)
	assert.Nil(t, it)
}

func TestBuffer_Read(t *testing.T) {
	prog := record.Program{
		motion(record.ModeRapid, nil, nil, nil, f(1)),
		record.Raw("M2"),
	}

	b := NewBuffer(&ProgramReader{Program: prog}, 3)

	buf := make([]byte, 10)
	n, err := b.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.Equal(t, []byte("G0 Z1\nM2\n"), buf[:n])

	n, err = b.Read(buf)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 0, n)
}

func TestBuffer_ReadAll(t *testing.T) {
	prog := MustParse("G0 Z5\nG1 X10 Y10 F200\nG1 X20\n")

	data, err := io.ReadAll(NewBuffer(&ProgramReader{Program: prog}, 4))
	require.NoError(t, err)
	assert.Equal(t, "G0 Z5\nG1 F200 X10 Y10\nG1 X20\n", string(data))
}
