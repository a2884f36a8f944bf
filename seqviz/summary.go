package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"resviz/chart"
	"resviz/results"
	"resviz/stats"
)

// plotCrossComparisons draws the figures that compare sequences against
// each other, written next to the per-sequence folders: execution time
// and model size per format, and all complexity profiles on one axis.
func plotCrossComparisons(cfg *Config, runs []results.ModelRun) error {
	step0 := filterRuns(runs, func(r results.ModelRun) bool { return r.RecursiveStep == 0 })
	if len(step0) == 0 {
		return nil
	}
	files := uniqueFiles(step0)
	formats := uniqueFormats(step0)

	if len(formats) >= 2 {
		a, b := formats[0], formats[1]
		groups := func(value func(results.ModelRun) float64) (chart.BarGroup, chart.BarGroup) {
			ga := chart.BarGroup{Label: a}
			gb := chart.BarGroup{Label: b}
			for _, f := range files {
				ga.Values = append(ga.Values, stats.Mean(metricWhere(step0, f, a, value)))
				gb.Values = append(gb.Values, stats.Mean(metricWhere(step0, f, b, value)))
			}
			return ga, gb
		}

		ga, gb := groups(func(r results.ModelRun) float64 { return r.ExecTimeMS })
		path := filepath.Join(cfg.OutDir, "avg_exec_time_comparison.png")
		title := fmt.Sprintf("Average Execution Time Comparison (%s vs %s)", a, b)
		if err := chart.GroupedBars(title, "Execution Time (ms)", files, ga, gb, 0, path); err != nil {
			return err
		}

		ga, gb = groups(func(r results.ModelRun) float64 { return r.ModelSize })
		path = filepath.Join(cfg.OutDir, "avg_model_size_comparison.png")
		title = fmt.Sprintf("Average Model Size Comparison (%s vs %s)", a, b)
		if err := chart.GroupedBars(title, "Model Size (bytes)", files, ga, gb, 0, path); err != nil {
			return err
		}
	} else {
		log.Debugf("only %d serialization formats, skipping format comparison", len(formats))
	}

	alphas := uniqueAlphas(runs)
	if len(alphas) == 0 {
		return nil
	}
	closest := closestToMedian(alphas)
	medRuns := filterRuns(step0, func(r results.ModelRun) bool { return r.Alpha == closest })
	if len(medRuns) == 0 {
		return nil
	}
	var series []chart.Series
	for _, f := range files {
		pts := lineOver(medRuns,
			func(r results.ModelRun) bool { return r.File == f },
			func(r results.ModelRun) float64 { return float64(r.K) },
			func(r results.ModelRun) float64 { return r.AvgInfoContent })
		series = append(series, chart.Series{Label: f, XY: pts})
	}
	path := filepath.Join(cfg.OutDir, "all_sequences_complexity.png")
	title := fmt.Sprintf("Complexity Profiles Comparison (alpha≈%.2f)", closest)
	return chart.Lines(title, "Context Length (k)",
		"Average Information Content (bits/symbol)", series, path)
}

func metricWhere(runs []results.ModelRun, file, format string, value func(results.ModelRun) float64) []float64 {
	var out []float64
	for _, r := range runs {
		if r.File == file && r.Format == format {
			out = append(out, value(r))
		}
	}
	return out
}

// writeMetricsSummary writes metrics_summary.txt: per sequence, the
// step-0 format averages, information content by recursive step, and the
// average step-to-step change per (k, alpha) pair.
func writeMetricsSummary(cfg *Config, runs []results.ModelRun) error {
	var b strings.Builder
	for _, seq := range uniqueFiles(runs) {
		seqRuns := filterRuns(runs, func(r results.ModelRun) bool { return r.File == seq })
		step0 := filterRuns(seqRuns, func(r results.ModelRun) bool { return r.RecursiveStep == 0 })

		fmt.Fprintf(&b, "%s:\n", seq)
		b.WriteString("  Format Comparison:\n")
		for _, f := range uniqueFormats(step0) {
			exec := stats.Mean(metricWhere(step0, seq, f, func(r results.ModelRun) float64 { return r.ExecTimeMS }))
			size := stats.Mean(metricWhere(step0, seq, f, func(r results.ModelRun) float64 { return r.ModelSize }))
			fmt.Fprintf(&b, "    Avg Execution Time (%s): %.2f ms\n", f, exec)
			fmt.Fprintf(&b, "    Avg Model Size (%s): %.2f bytes\n", f, size)
		}

		steps := uniqueSteps(seqRuns)
		maxStep := 0
		if len(steps) > 0 {
			maxStep = steps[len(steps)-1]
		}
		b.WriteString("\n  Recursive Analysis:\n")
		fmt.Fprintf(&b, "    Total Recursive Steps: %d\n", maxStep)
		b.WriteString("    Information Content by Step:\n")
		for _, step := range steps {
			var vals []float64
			for _, r := range seqRuns {
				if r.RecursiveStep == step {
					vals = append(vals, r.AvgInfoContent)
				}
			}
			d := stats.Summarize(vals)
			fmt.Fprintf(&b, "      Step %d: Mean=%.4f, Min=%.4f, Max=%.4f\n", step, d.Mean, d.Min, d.Max)
		}

		b.WriteString("\n    Convergence Analysis (Avg Change in Info Content):\n")
		for _, c := range avgChanges(seqRuns) {
			fmt.Fprintf(&b, "      k=%d, alpha=%.2f: %.6f\n", c.K, c.Alpha, c.Change)
		}
		b.WriteString("\n\n")
	}
	path := filepath.Join(cfg.OutDir, "metrics_summary.txt")
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// avgChanges collapses stepChanges to one mean change per (k, alpha),
// sorted by k then alpha.
func avgChanges(runs []results.ModelRun) []paramChange {
	type key struct {
		k int
		a float64
	}
	byPair := map[key][]float64{}
	for _, c := range stepChanges(runs) {
		byPair[key{c.K, c.Alpha}] = append(byPair[key{c.K, c.Alpha}], c.Change)
	}
	out := make([]paramChange, 0, len(byPair))
	for kk, vals := range byPair {
		out = append(out, paramChange{K: kk.k, Alpha: kk.a, Change: stats.Mean(vals)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].K != out[j].K {
			return out[i].K < out[j].K
		}
		return out[i].Alpha < out[j].Alpha
	})
	return out
}
