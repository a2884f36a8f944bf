package chart

import (
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// SurfacePoint is one (x, y, z) sample of a parameter surface.
type SurfacePoint struct {
	X float64
	Y float64
	Z float64
}

// Surface3D renders points as an interactive 3D surface HTML page. PNG 3D
// surfaces are not worth hand-rolling; the echarts output covers the same
// figure and stays browsable.
func Surface3D(title, xlabel, ylabel, zlabel string, points []SurfacePoint, path string) error {
	min, max := math.Inf(1), math.Inf(-1)
	data := make([]opts.Chart3DData, 0, len(points))
	for _, pt := range points {
		if math.IsNaN(pt.Z) {
			continue
		}
		if pt.Z < min {
			min = pt.Z
		}
		if pt.Z > max {
			max = pt.Z
		}
		data = append(data, opts.Chart3DData{Value: []interface{}{pt.X, pt.Y, pt.Z}})
	}
	if len(data) == 0 {
		min, max = 0, 1
	}

	surface := charts.NewSurface3D()
	surface.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: xlabel}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: ylabel}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: zlabel}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        float32(min),
			Max:        float32(max),
			InRange: &opts.VisualMapInRange{
				Color: []string{"#313695", "#74add1", "#ffffbf", "#f46d43", "#a50026"},
			},
		}),
	)
	surface.AddSeries(zlabel, data)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return surface.Render(f)
}
