package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
)

// Span is one colored block on a timeline: a [Start, End) interval on the
// lane with the given index.
type Span struct {
	Start float64
	End   float64
	Lane  int
	Value float64 // mapped to the span color
}

// Timeline renders spans as filled rectangles, one lane per label, with
// span colors taken from a colormap over the value range. Used for the
// chunked best-match visualization.
func Timeline(title, xlabel string, lanes []string, spans []Span, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Add(plotter.NewGrid())

	min, max := math.Inf(1), math.Inf(-1)
	for _, s := range spans {
		if s.Value < min {
			min = s.Value
		}
		if s.Value > max {
			max = s.Value
		}
	}
	cm := moreland.Kindlmann()
	if min < max {
		cm.SetMin(min)
		cm.SetMax(max)
	} else {
		cm.SetMin(0)
		cm.SetMax(1)
	}

	for _, s := range spans {
		lo := float64(s.Lane) - 0.4
		hi := float64(s.Lane) + 0.4
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: s.Start, Y: lo},
			{X: s.End, Y: lo},
			{X: s.End, Y: hi},
			{X: s.Start, Y: hi},
		})
		if err != nil {
			return err
		}
		c := color.Color(color.Gray{Y: 128})
		if min < max {
			if mapped, err := cm.At(s.Value); err == nil {
				c = mapped
			}
		}
		poly.Color = c
		poly.LineStyle.Color = color.Transparent
		p.Add(poly)
	}
	p.NominalY(lanes...)
	p.Y.Min = -0.5
	p.Y.Max = float64(len(lanes)) - 0.5

	return p.Save(Width, Height, path)
}
