package hmap

import (
	"bytes"
	"strings"
	"testing"

	"github.com/MartinBloedorn/pmu/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	samples, err := Read(strings.NewReader("# x,y,z\n0,0,-0.05\n10, 0, 0.1\n\n0,10,0.02,extra\n"))
	require.NoError(t, err)

	assert.Equal(t, []record.HeightSample{
		{X: 0, Y: 0, Z: -0.05},
		{X: 10, Y: 0, Z: 0.1},
		{X: 0, Y: 10, Z: 0.02},
	}, samples)
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(strings.NewReader("0,0,0\n1,2\n"))
	assert.EqualError(t, err, "line 2: need x,y,z, got 2 fields")

	_, err = Read(strings.NewReader("0,0,0\n1,2,abc\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = ReadFile("does/not/exist.csv")
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []record.HeightSample{{X: 1, Y: 2.5, Z: -0.125}}, 3)
	require.NoError(t, err)
	assert.Equal(t, "1.000,2.500,-0.125\n", buf.String())

	samples, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, []record.HeightSample{{X: 1, Y: 2.5, Z: -0.125}}, samples)
}

func TestGrid(t *testing.T) {
	grid := []record.GridPoint{{X: 0, Y: 0}, {X: 0, Y: 5}, {X: 4.2, Y: 0}}

	var buf bytes.Buffer
	require.NoError(t, WriteGrid(&buf, grid, 2))
	assert.Equal(t, "0.00,0.00\n0.00,5.00\n4.20,0.00\n", buf.String())

	res, err := ReadGrid(&buf)
	require.NoError(t, err)
	assert.Equal(t, grid, res)

	res, err = ReadGrid(strings.NewReader("1,2,0.3\n"))
	require.NoError(t, err)
	assert.Equal(t, []record.GridPoint{{X: 1, Y: 2}}, res)
}
