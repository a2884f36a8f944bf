package main

import (
	"fmt"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"

	"resviz/chart"
	"resviz/results"
	"resviz/stats"
)

// metric selects a ModelRun column for plotting.
type metric struct {
	name  string // file name fragment
	label string // axis label
	value func(results.ModelRun) float64
}

var modelMetrics = []metric{
	{"avg_info", "Average Information Content", func(r results.ModelRun) float64 { return r.AvgInfoContent }},
	{"exec_time", "Execution Time (ms)", func(r results.ModelRun) float64 { return r.ExecTimeMS }},
	{"model_size", "Model Size", func(r results.ModelRun) float64 { return r.ModelSize }},
}

func runModels(cfg *Config) error {
	runs, err := results.LoadModelRuns(cfg.Input)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return fmt.Errorf("no usable rows in %s", cfg.Input)
	}
	log.Infof("loaded %d model runs from %s", len(runs), cfg.Input)

	for _, seq := range uniqueFiles(runs) {
		seqRuns := filterRuns(runs, func(r results.ModelRun) bool { return r.File == seq })
		seqDir := filepath.Join(cfg.OutDir, seq)
		if err := ensureDir(seqDir); err != nil {
			return err
		}
		if err := plotSequence(cfg, seq, seqRuns, seqDir); err != nil {
			log.Warnf("plots for %s: %v", seq, err)
			continue
		}
		log.Infof("wrote plots for %s", seq)
	}

	if err := plotCrossComparisons(cfg, runs); err != nil {
		log.Warnf("cross-sequence plots: %v", err)
	}
	return writeMetricsSummary(cfg, runs)
}

func plotSequence(cfg *Config, seq string, runs []results.ModelRun, dir string) error {
	step0 := filterRuns(runs, func(r results.ModelRun) bool { return r.RecursiveStep == 0 })

	for _, m := range modelMetrics {
		// metric vs alpha, one line per k
		series := seriesByK(step0, m.value)
		path := filepath.Join(dir, m.name+"_vs_alpha.png")
		if err := chart.Lines(m.label+" VS Alpha - "+seq, "Alpha", m.label, series, path); err != nil {
			return err
		}
		// metric vs k, one line per alpha
		series = seriesByAlpha(step0, m.value)
		path = filepath.Join(dir, m.name+"_vs_k.png")
		if err := chart.Lines(m.label+" VS k - "+seq, "k", m.label, series, path); err != nil {
			return err
		}
		// serialization format comparison, once over alpha and once over k
		overAlpha := func(r results.ModelRun) float64 { return r.Alpha }
		overK := func(r results.ModelRun) float64 { return float64(r.K) }
		if series = seriesByFormat(step0, overAlpha, m.value); len(series) > 1 {
			path = filepath.Join(dir, m.name+"_by_format.png")
			if err := chart.Lines(m.label+" by Model Format - "+seq, "Alpha", m.label, series, path); err != nil {
				return err
			}
		}
		if series = seriesByFormat(step0, overK, m.value); len(series) > 1 {
			path = filepath.Join(dir, m.name+"_by_format_k.png")
			if err := chart.Lines(m.label+" by Model Format - "+seq, "k", m.label, series, path); err != nil {
				return err
			}
		}
	}

	if err := plotRecursive(seq, runs, dir); err != nil {
		return err
	}
	if err := plotConvergence(seq, runs, dir); err != nil {
		return err
	}

	// complexity profile: info content against context length
	profile := seriesByAlpha(step0, func(r results.ModelRun) float64 { return r.AvgInfoContent })
	path := filepath.Join(dir, "complexity_profile.png")
	if err := chart.Lines("Complexity Profile - "+seq, "Context Length (k)",
		"Average Information Content (bits/symbol)", profile, path); err != nil {
		return err
	}
	return plotProfileEvolution(seq, runs, dir)
}

func plotRecursive(seq string, runs []results.ModelRun, dir string) error {
	recDir := filepath.Join(dir, "recursive")
	if err := ensureDir(recDir); err != nil {
		return err
	}
	ks := uniqueKs(runs)
	alphas := uniqueAlphas(runs)

	// info content over recursive steps, one figure per k (lines per alpha)
	for _, k := range ks {
		kRuns := filterRuns(runs, func(r results.ModelRun) bool { return r.K == k })
		var series []chart.Series
		for _, a := range alphas {
			pts := lineOver(kRuns,
				func(r results.ModelRun) bool { return r.Alpha == a },
				func(r results.ModelRun) float64 { return float64(r.RecursiveStep) },
				func(r results.ModelRun) float64 { return r.AvgInfoContent })
			series = append(series, chart.Series{Label: fmt.Sprintf("α=%g", a), XY: pts})
		}
		path := filepath.Join(recDir, fmt.Sprintf("info_content_k%d.png", k))
		title := fmt.Sprintf("Information Content Over Recursive Steps (k=%d) - %s", k, seq)
		if err := chart.Lines(title, "Recursive Step", "Average Information Content", series, path); err != nil {
			return err
		}
	}

	// and one figure per alpha (lines per k)
	for _, a := range alphas {
		aRuns := filterRuns(runs, func(r results.ModelRun) bool { return r.Alpha == a })
		var series []chart.Series
		for _, k := range ks {
			pts := lineOver(aRuns,
				func(r results.ModelRun) bool { return r.K == k },
				func(r results.ModelRun) float64 { return float64(r.RecursiveStep) },
				func(r results.ModelRun) float64 { return r.AvgInfoContent })
			series = append(series, chart.Series{Label: fmt.Sprintf("k=%d", k), XY: pts})
		}
		path := filepath.Join(recDir, fmt.Sprintf("info_content_alpha%.2f.png", a))
		title := fmt.Sprintf("Information Content Over Recursive Steps (alpha=%g) - %s", a, seq)
		if err := chart.Lines(title, "Recursive Step", "Average Information Content", series, path); err != nil {
			return err
		}
	}

	// k × step heatmap at the median alpha
	if len(alphas) == 0 {
		return nil
	}
	closest := closestToMedian(alphas)
	medRuns := filterRuns(runs, func(r results.ModelRun) bool { return r.Alpha == closest })
	if len(medRuns) == 0 {
		return nil
	}
	steps := uniqueSteps(medRuns)
	grid := chart.NewGrid(intLabels(steps, "step %d"), intLabels(ks, "k=%d"))
	for ri, k := range ks {
		for ci, step := range steps {
			var vals []float64
			for _, r := range medRuns {
				if r.K == k && r.RecursiveStep == step {
					vals = append(vals, r.AvgInfoContent)
				}
			}
			if m := stats.Mean(vals); len(vals) > 0 {
				grid.Set(ri, ci, m)
			}
		}
	}
	path := filepath.Join(dir, fmt.Sprintf("info_content_heatmap_alpha%.2f.png", closest))
	title := fmt.Sprintf("Information Content Heatmap (alpha≈%.2f) - %s", closest, seq)
	return chart.Heatmap(title, "Recursive Step", "k", grid, chart.HeatmapOptions{Annotate: true, Format: "%.2f"}, path)
}

// ---------- grouping helpers ----------

func filterRuns(runs []results.ModelRun, keep func(results.ModelRun) bool) []results.ModelRun {
	var out []results.ModelRun
	for _, r := range runs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func uniqueFiles(runs []results.ModelRun) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range runs {
		if !seen[r.File] {
			seen[r.File] = true
			out = append(out, r.File)
		}
	}
	sort.Strings(out)
	return out
}

func uniqueKs(runs []results.ModelRun) []int {
	seen := map[int]bool{}
	var out []int
	for _, r := range runs {
		if !seen[r.K] {
			seen[r.K] = true
			out = append(out, r.K)
		}
	}
	sort.Ints(out)
	return out
}

func uniqueAlphas(runs []results.ModelRun) []float64 {
	seen := map[float64]bool{}
	var out []float64
	for _, r := range runs {
		if !seen[r.Alpha] {
			seen[r.Alpha] = true
			out = append(out, r.Alpha)
		}
	}
	sort.Float64s(out)
	return out
}

func uniqueSteps(runs []results.ModelRun) []int {
	seen := map[int]bool{}
	var out []int
	for _, r := range runs {
		if !seen[r.RecursiveStep] {
			seen[r.RecursiveStep] = true
			out = append(out, r.RecursiveStep)
		}
	}
	sort.Ints(out)
	return out
}

func seriesByK(runs []results.ModelRun, value func(results.ModelRun) float64) []chart.Series {
	var series []chart.Series
	for _, k := range uniqueKs(runs) {
		pts := lineOver(runs,
			func(r results.ModelRun) bool { return r.K == k },
			func(r results.ModelRun) float64 { return r.Alpha },
			value)
		series = append(series, chart.Series{Label: fmt.Sprintf("k=%d", k), XY: pts})
	}
	return series
}

func seriesByAlpha(runs []results.ModelRun, value func(results.ModelRun) float64) []chart.Series {
	var series []chart.Series
	for _, a := range uniqueAlphas(runs) {
		pts := lineOver(runs,
			func(r results.ModelRun) bool { return r.Alpha == a },
			func(r results.ModelRun) float64 { return float64(r.K) },
			value)
		series = append(series, chart.Series{Label: fmt.Sprintf("α=%g", a), XY: pts})
	}
	return series
}

func uniqueFormats(runs []results.ModelRun) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range runs {
		if r.Format != "" && !seen[r.Format] {
			seen[r.Format] = true
			out = append(out, r.Format)
		}
	}
	sort.Strings(out)
	return out
}

func seriesByFormat(runs []results.ModelRun, x, value func(results.ModelRun) float64) []chart.Series {
	var series []chart.Series
	for _, f := range uniqueFormats(runs) {
		pts := lineOver(runs,
			func(r results.ModelRun) bool { return r.Format == f },
			x, value)
		series = append(series, chart.Series{Label: f, XY: pts})
	}
	return series
}

// closestToMedian returns the member of alphas nearest their median, so
// figures pinned to "the median alpha" always use a value that exists in
// the data.
func closestToMedian(alphas []float64) float64 {
	median := stats.Median(alphas)
	closest := alphas[0]
	for _, a := range alphas {
		if abs(a-median) < abs(closest-median) {
			closest = a
		}
	}
	return closest
}

// lineOver builds sorted (x, mean y) points from the runs that pass keep.
// Multiple rows at the same x average, so input row order never changes
// the line.
func lineOver(runs []results.ModelRun, keep func(results.ModelRun) bool,
	x, y func(results.ModelRun) float64) chart.XYs {

	byX := map[float64][]float64{}
	for _, r := range runs {
		if keep(r) {
			byX[x(r)] = append(byX[x(r)], y(r))
		}
	}
	xs := make([]float64, 0, len(byX))
	for v := range byX {
		xs = append(xs, v)
	}
	sort.Float64s(xs)
	pts := make(chart.XYs, 0, len(xs))
	for _, v := range xs {
		m := stats.Mean(byX[v])
		if len(stats.DropNaN(byX[v])) == 0 {
			continue
		}
		pts = append(pts, chart.XY{X: v, Y: m})
	}
	return pts
}

func intLabels(vals []int, format string) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = fmt.Sprintf(format, v)
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
