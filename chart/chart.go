// Package chart wraps the plotting libraries behind small render helpers:
// gonum/plot for PNG line, heatmap, bar and box plots, go-chart for simple
// ranking bars, and go-echarts for the 3D surface.
package chart

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Default PNG canvas, roughly the 10x6in figure size of the reports this
// replaces.
const (
	Width  = 10 * vg.Inch
	Height = 6 * vg.Inch
)

// XY and XYs re-export the plotter point types so callers do not need a
// gonum import just to build line data.
type (
	XY  = plotter.XY
	XYs = plotter.XYs
)

// Series is one labelled line on a plot.
type Series struct {
	Label string
	XY    plotter.XYs
}

// Lines renders one line-with-points per series, colored in palette order
// with a legend entry each.
func Lines(title, xlabel, ylabel string, series []Series, path string) error {
	return lines(title, xlabel, ylabel, series, false, path)
}

// LinesLogY is Lines with a logarithmic Y axis. Points at or below zero
// cannot be placed on a log scale and must be filtered out by the caller.
func LinesLogY(title, xlabel, ylabel string, series []Series, path string) error {
	return lines(title, xlabel, ylabel, series, true, path)
}

func lines(title, xlabel, ylabel string, series []Series, logY bool, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	if logY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Add(plotter.NewGrid())

	for i, s := range series {
		if len(s.XY) == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(s.XY)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(s.Label, line, points)
	}
	p.Legend.Top = true
	p.Legend.Left = false

	return p.Save(Width, Height, path)
}
