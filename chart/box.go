package chart

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Boxes renders one box plot per group at integer positions with the group
// labels on the X axis. Empty groups are skipped but keep their slot so
// labels stay aligned.
func Boxes(title, xlabel, ylabel string, groups []string, values [][]float64, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	for i, vs := range values {
		if len(vs) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(30), float64(i), plotter.Values(vs))
		if err != nil {
			return err
		}
		p.Add(box)
	}
	p.NominalX(groups...)

	return p.Save(Width, Height, path)
}
