package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/dsp/window"

	"resviz/chart"
	"resviz/results"
)

// Low-pass window size for the information profiles.
const infoWindowSize = 21

// runInfo renders a smoothed per-position information profile for every
// organism CSV found under the input directory. A symbol_info
// subdirectory is used when present, so the command accepts either the
// results directory or the symbol directory itself.
func runInfo(cfg *Config) error {
	dir := cfg.Input
	if fi, err := os.Stat(filepath.Join(dir, "symbol_info")); err == nil && fi.IsDir() {
		dir = filepath.Join(dir, "symbol_info")
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no symbol CSV files under %s", dir)
	}
	sort.Strings(paths)
	if err := ensureDir(cfg.OutDir); err != nil {
		return err
	}

	plotted := 0
	for _, path := range paths {
		points, err := results.LoadInfoProfile(path)
		if err != nil {
			log.Warnf("%s: %v", path, err)
			continue
		}
		organism := results.SymbolFileOrganism(filepath.Base(path))
		if err := plotInfoProfile(organism, points, cfg.OutDir); err != nil {
			log.Warnf("profile for %s: %v", organism, err)
			continue
		}
		plotted++
	}
	if plotted == 0 {
		return fmt.Errorf("no plottable profiles under %s", dir)
	}
	log.Infof("wrote %d information profiles", plotted)
	return nil
}

func plotInfoProfile(organism string, points []results.InfoPoint, dir string) error {
	if len(points) == 0 {
		return fmt.Errorf("empty profile")
	}
	info := make([]float64, len(points))
	for i, p := range points {
		info[i] = p.Information
	}
	smoothed := smoothProfile(info, infoWindowSize)

	pts := make(chart.XYs, 0, len(points))
	for i, p := range points {
		if math.IsNaN(smoothed[i]) {
			continue
		}
		pts = append(pts, chart.XY{X: p.Position, Y: smoothed[i]})
	}

	// profile filenames historically drop the organism's trailing character
	short := organism
	if len(short) > 1 {
		short = short[:len(short)-1]
	}
	safe := strings.NewReplacer("|", "_", " ", "_", "/", "_").Replace(short)
	path := filepath.Join(dir, "info_profile_processed_"+safe+".png")
	series := []chart.Series{{Label: short, XY: pts}}
	return chart.Lines("Processed Information Profile for "+short,
		"Position", "Information", series, path)
}

// smoothProfile low-pass filters an information signal with a normalized
// Blackman window. The signal is edge-padded, filtered in both the
// forward and reverse directions, and the two results combine pointwise
// by minimum, which suppresses the rebound around sharp peaks.
func smoothProfile(info []float64, size int) []float64 {
	if len(info) == 0 || size < 2 {
		return info
	}
	kernel := blackmanKernel(size)
	forward := convolveValid(padEdges(info, size/2), kernel)
	rev := reversed(info)
	backward := reversed(convolveValid(padEdges(rev, size/2), kernel))
	out := make([]float64, len(info))
	for i := range out {
		out[i] = math.Min(forward[i], backward[i])
	}
	return out
}

// blackmanKernel is a Blackman window of the given size scaled to sum to
// one, so convolving with it averages rather than amplifies.
func blackmanKernel(size int) []float64 {
	w := make([]float64, size)
	for i := range w {
		w[i] = 1
	}
	window.Blackman(w)
	sum := 0.0
	for _, v := range w {
		sum += v
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

// padEdges extends the signal by repeating the first and last samples n
// times on each side.
func padEdges(xs []float64, n int) []float64 {
	out := make([]float64, 0, len(xs)+2*n)
	for i := 0; i < n; i++ {
		out = append(out, xs[0])
	}
	out = append(out, xs...)
	for i := 0; i < n; i++ {
		out = append(out, xs[len(xs)-1])
	}
	return out
}

// convolveValid convolves xs with kernel keeping only the fully
// overlapped positions, returning len(xs)-len(kernel)+1 samples.
func convolveValid(xs, kernel []float64) []float64 {
	n := len(xs) - len(kernel) + 1
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		s := 0.0
		for j, k := range kernel {
			s += xs[i+j] * k
		}
		out[i] = s
	}
	return out
}

func reversed(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[len(xs)-1-i] = v
	}
	return out
}
