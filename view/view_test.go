package view

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MartinBloedorn/pmu/probegrid"
	"github.com/MartinBloedorn/pmu/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircle(t *testing.T) {
	pts := circle(1, 2, 3)
	require.Len(t, pts, circleSegments+1)
	assert.InDelta(t, 4, pts[0].X, 1e-9)
	assert.InDelta(t, 2, pts[0].Y, 1e-9)
	assert.InDelta(t, pts[0].X, pts[circleSegments].X, 1e-9)
	assert.InDelta(t, pts[0].Y, pts[circleSegments].Y, 1e-9)
}

func TestPlot(t *testing.T) {
	drills := []record.Drill{
		{Diameter: 0.8, X: 2, Y: 3},
		{Diameter: record.NoTool, X: 5, Y: 5},
	}
	grid := []record.GridPoint{{X: 0, Y: 0}, {X: 10, Y: 10}}

	p, err := Plot(drills, grid, Options{
		Bounds:  probegrid.Bounds{XMin: 0, XMax: 10, YMin: 0, YMax: 20},
		Tol:     1,
		ShowTol: true,
		Title:   "board",
	})
	require.NoError(t, err)

	assert.Equal(t, "board", p.Title.Text)
	assert.InDelta(t, -0.5, p.X.Min, 1e-9)
	assert.InDelta(t, 10.5, p.X.Max, 1e-9)
	assert.InDelta(t, -1, p.Y.Min, 1e-9)
	assert.InDelta(t, 21, p.Y.Max, 1e-9)

	path := filepath.Join(t.TempDir(), "board.png")
	require.NoError(t, Save(p, path))
	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, st.Size())
}

func TestPlot_Empty(t *testing.T) {
	p, err := Plot(nil, nil, Options{})
	require.NoError(t, err)
	assert.NotNil(t, p)
}
