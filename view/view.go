// Package view renders drills and probe grids with gonum/plot.
package view

import (
	"image/color"
	"math"

	"github.com/MartinBloedorn/pmu/probegrid"
	"github.com/MartinBloedorn/pmu/record"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const circleSegments = 32

var (
	drillColor = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	tolColor   = color.RGBA{R: 200, G: 120, B: 120, A: 255}
	gridColor  = color.RGBA{R: 20, G: 60, B: 200, A: 255}
)

type Options struct {
	// Bounds is the probed area the axes are fitted to. A zero value
	// leaves the axes to autoscale.
	Bounds probegrid.Bounds

	// Tol draws a ring this far outside every drill when ShowTol is set.
	Tol     float64
	ShowTol bool

	Title string
}

func circle(x, y, r float64) plotter.XYs {
	pts := make(plotter.XYs, circleSegments+1)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = plotter.XY{X: x + r*math.Cos(a), Y: y + r*math.Sin(a)}
	}
	return pts
}

// Plot draws drill outlines, tolerance rings and probe points.
func Plot(drills []record.Drill, grid []record.GridPoint, opt Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opt.Title
	p.X.Label.Text = "X (mm)"
	p.Y.Label.Text = "Y (mm)"

	for _, d := range drills {
		if !d.Valid() {
			continue
		}
		outline, err := plotter.NewLine(circle(d.X, d.Y, d.Radius()))
		if err != nil {
			return nil, err
		}
		outline.Color = drillColor
		outline.Width = vg.Points(1)
		p.Add(outline)

		if opt.ShowTol && opt.Tol > 0 {
			ring, err := plotter.NewLine(circle(d.X, d.Y, d.Radius()+opt.Tol))
			if err != nil {
				return nil, err
			}
			ring.Color = tolColor
			ring.Width = vg.Points(0.5)
			ring.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
			p.Add(ring)
		}
	}

	if len(grid) > 0 {
		pts := make(plotter.XYs, len(grid))
		for i, g := range grid {
			pts[i] = plotter.XY{X: g.X, Y: g.Y}
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Shape = draw.CrossGlyph{}
		sc.GlyphStyle.Color = gridColor
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
		p.Legend.Add("probe points", sc)
	}

	b := opt.Bounds
	if b != (probegrid.Bounds{}) {
		// 10% margin around the probed area
		cx, hx := (b.XMin+b.XMax)/2, 1.1*(b.XMax-b.XMin)/2
		cy, hy := (b.YMin+b.YMax)/2, 1.1*(b.YMax-b.YMin)/2
		p.X.Min, p.X.Max = cx-hx, cx+hx
		p.Y.Min, p.Y.Max = cy-hy, cy+hy
	}
	p.Add(plotter.NewGrid())

	return p, nil
}

// Save writes p to path; the image format follows the extension.
func Save(p *plot.Plot, path string) error {
	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}
