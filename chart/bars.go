package chart

import (
	"fmt"
	"os"

	gochart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// BarStat is one bar with its spread: the mean is the bar height, min and
// max draw as a whisker, N is printed above the bar.
type BarStat struct {
	Label string
	Mean  float64
	Min   float64
	Max   float64
	N     int
}

// WhiskerBars renders mean bars with min-max whiskers and n counts, the
// standard ranking figure of the accuracy sweeps.
func WhiskerBars(title, ylabel string, bars []BarStat, ymax float64, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel
	p.Y.Min = 0
	if ymax > 0 {
		p.Y.Max = ymax
	}
	p.Add(plotter.NewGrid())

	values := make(plotter.Values, len(bars))
	labels := make([]string, len(bars))
	for i, b := range bars {
		values[i] = b.Mean
		labels[i] = b.Label
	}
	bc, err := plotter.NewBarChart(values, vg.Points(28))
	if err != nil {
		return err
	}
	bc.Color = plotutil.Color(0)
	p.Add(bc)
	p.NominalX(labels...)

	ann := plotter.XYLabels{}
	for i, b := range bars {
		x := float64(i)
		whisker, err := plotter.NewLine(plotter.XYs{{X: x, Y: b.Min}, {X: x, Y: b.Max}})
		if err != nil {
			return err
		}
		whisker.Width = vg.Points(1.5)
		p.Add(whisker)
		ann.XYs = append(ann.XYs, plotter.XY{X: x, Y: b.Max})
		ann.Labels = append(ann.Labels, fmt.Sprintf("%.1f (n=%d)", b.Mean, b.N))
	}
	l, err := plotter.NewLabels(ann)
	if err != nil {
		return err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].Font.Size = vg.Points(8)
	}
	p.Add(l)

	return p.Save(Width, Height, path)
}

// BarGroup is one side of a grouped comparison (e.g. text vs binary).
type BarGroup struct {
	Label  string
	Values []float64 // one per category, aligned with the category labels
}

// GroupedBars renders two bar groups side by side per category.
func GroupedBars(title, ylabel string, categories []string, a, b BarGroup, ymax float64, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel
	p.Y.Min = 0
	if ymax > 0 {
		p.Y.Max = ymax
	}
	p.Add(plotter.NewGrid())

	w := vg.Points(18)
	barsA, err := plotter.NewBarChart(plotter.Values(a.Values), w)
	if err != nil {
		return err
	}
	barsA.Offset = -w / 2
	barsA.Color = plotutil.Color(0)

	barsB, err := plotter.NewBarChart(plotter.Values(b.Values), w)
	if err != nil {
		return err
	}
	barsB.Offset = w / 2
	barsB.Color = plotutil.Color(1)

	p.Add(barsA, barsB)
	p.Legend.Add(a.Label, barsA)
	p.Legend.Add(b.Label, barsB)
	p.Legend.Top = true
	p.NominalX(categories...)

	return p.Save(Width, Height, path)
}

// HBars renders a horizontal bar chart, used for top-configuration
// rankings where the labels are long.
func HBars(title, xlabel string, labels []string, values []float64, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Add(plotter.NewGrid())

	bc, err := plotter.NewBarChart(plotter.Values(values), vg.Points(14))
	if err != nil {
		return err
	}
	bc.Horizontal = true
	bc.Color = plotutil.Color(2)
	p.Add(bc)
	p.NominalY(labels...)

	return p.Save(Width, Height, path)
}

// RankingBars renders a quick labelled bar chart PNG via go-chart; used
// where a standalone figure with no whiskers is enough (outlier counts,
// per-genre accuracy).
func RankingBars(title string, labels []string, values []float64, path string) error {
	bars := make([]gochart.Value, len(values))
	for i, v := range values {
		bars[i] = gochart.Value{Label: labels[i], Value: v}
	}
	graph := gochart.BarChart{
		Title:    title,
		Width:    1024,
		Height:   512,
		BarWidth: 48,
		Bars:     bars,
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(gochart.PNG, f)
}
