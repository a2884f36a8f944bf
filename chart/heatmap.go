package chart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Grid is a dense labelled matrix implementing plotter.GridXYZ. Cells
// start out NaN, which renders as a missing ("N/A") cell rather than a
// value — missing parameter combinations must never crash a plot.
type Grid struct {
	XLabels []string
	YLabels []string
	cells   [][]float64 // [row][col]
}

// NewGrid returns a Grid with every cell missing.
func NewGrid(xlabels, ylabels []string) *Grid {
	cells := make([][]float64, len(ylabels))
	for i := range cells {
		row := make([]float64, len(xlabels))
		for j := range row {
			row[j] = math.NaN()
		}
		cells[i] = row
	}
	return &Grid{XLabels: xlabels, YLabels: ylabels, cells: cells}
}

// Set stores a value; out-of-range indices are ignored.
func (g *Grid) Set(row, col int, v float64) {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.XLabels) {
		return
	}
	g.cells[row][col] = v
}

// At returns the cell value (NaN when missing).
func (g *Grid) At(row, col int) float64 { return g.cells[row][col] }

// Dims implements plotter.GridXYZ.
func (g *Grid) Dims() (c, r int) { return len(g.XLabels), len(g.YLabels) }

// Z implements plotter.GridXYZ.
func (g *Grid) Z(c, r int) float64 { return g.cells[r][c] }

// X implements plotter.GridXYZ.
func (g *Grid) X(c int) float64 { return float64(c) }

// Y implements plotter.GridXYZ.
func (g *Grid) Y(r int) float64 { return float64(r) }

// ValueRange returns min and max over the present cells. With no data both
// are NaN.
func (g *Grid) ValueRange() (min, max float64) {
	min, max = math.NaN(), math.NaN()
	for _, row := range g.cells {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			if math.IsNaN(min) || v < min {
				min = v
			}
			if math.IsNaN(max) || v > max {
				max = v
			}
		}
	}
	return min, max
}

// Missing counts absent cells.
func (g *Grid) Missing() int {
	n := 0
	for _, row := range g.cells {
		for _, v := range row {
			if math.IsNaN(v) {
				n++
			}
		}
	}
	return n
}

// HeatmapOptions tune Heatmap rendering.
type HeatmapOptions struct {
	Annotate bool   // print cell values (and N/A for missing cells)
	Format   string // value format, default "%.3f"
}

// Heatmap renders g as an annotated heatmap PNG. Missing cells stay
// transparent and, when annotation is on, are marked N/A.
func Heatmap(title, xlabel, ylabel string, g *Grid, opts HeatmapOptions, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel

	hm := plotter.NewHeatMap(g, moreland.SmoothBlueRed().Palette(255))
	if min, max := g.ValueRange(); !math.IsNaN(min) {
		hm.Min, hm.Max = min, max
		if min == max {
			hm.Max = min + 1 // degenerate range, keep the palette happy
		}
	}
	hm.NaN = color.Transparent
	p.Add(hm)

	p.NominalX(g.XLabels...)
	p.NominalY(g.YLabels...)

	if opts.Annotate {
		format := opts.Format
		if format == "" {
			format = "%.3f"
		}
		labels := plotter.XYLabels{}
		for r := range g.YLabels {
			for c := range g.XLabels {
				v := g.At(r, c)
				text := "N/A"
				if !math.IsNaN(v) {
					text = fmt.Sprintf(format, v)
				}
				labels.XYs = append(labels.XYs, plotter.XY{X: float64(c), Y: float64(r)})
				labels.Labels = append(labels.Labels, text)
			}
		}
		l, err := plotter.NewLabels(labels)
		if err != nil {
			return err
		}
		for i := range l.TextStyle {
			l.TextStyle[i].Font.Size = vg.Points(8)
		}
		p.Add(l)
	}

	return p.Save(Width, Height, path)
}
