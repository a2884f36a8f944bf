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

func runParams(cfg *Config) error {
	res, err := results.LoadParamResults(cfg.Input)
	if err != nil {
		return err
	}
	if len(res) == 0 {
		return fmt.Errorf("no parameter results in %s", cfg.Input)
	}
	if err := ensureDir(cfg.OutDir); err != nil {
		return err
	}
	log.Infof("loaded %d parameter configurations", len(res))

	if err := plotTopConfigs(cfg, res); err != nil {
		return err
	}
	if err := plotParamHeatmaps(cfg, res); err != nil {
		return err
	}
	if err := plotParamLines(cfg, res); err != nil {
		return err
	}
	if err := plotCompressorComparison(cfg, res); err != nil {
		return err
	}
	if err := plotMethodBoxes(cfg, res); err != nil {
		return err
	}
	return writeParamReport(cfg, res)
}

func configLabel(r results.ParamResult) string {
	return fmt.Sprintf("%s (f:%d, b:%d, fs:%d)", r.Method, r.NumFrequencies, r.NumBins, r.FrameSize)
}

// plotTopConfigs ranks every configuration by top-1 accuracy and draws the
// best 15 as horizontal bars, worst at the bottom.
func plotTopConfigs(cfg *Config, res []results.ParamResult) error {
	sorted := append([]results.ParamResult(nil), res...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Top1Accuracy != sorted[j].Top1Accuracy {
			return sorted[i].Top1Accuracy > sorted[j].Top1Accuracy
		}
		return configLabel(sorted[i]) < configLabel(sorted[j])
	})
	if len(sorted) > 15 {
		sorted = sorted[:15]
	}
	// reversed so the best configuration draws on top
	labels := make([]string, len(sorted))
	values := make([]float64, len(sorted))
	for i, r := range sorted {
		j := len(sorted) - 1 - i
		labels[j] = configLabel(r)
		values[j] = r.Top1Accuracy
	}
	path := filepath.Join(cfg.OutDir, "top_configurations.png")
	return chart.HBars("Top Configurations by Top-1 Accuracy", "Accuracy (%)", labels, values, path)
}

// paramAxes names each tunable parameter and how to read it off a result.
var paramAxes = []struct {
	name  string
	value func(results.ParamResult) int
}{
	{"numFrequencies", func(r results.ParamResult) int { return r.NumFrequencies }},
	{"numBins", func(r results.ParamResult) int { return r.NumBins }},
	{"frameSize", func(r results.ParamResult) int { return r.FrameSize }},
	{"hopSize", func(r results.ParamResult) int { return r.HopSize }},
}

// plotParamHeatmaps renders, per tunable parameter, the mean top-1 accuracy
// of each (method, parameter value) slice.
func plotParamHeatmaps(cfg *Config, res []results.ParamResult) error {
	methods := map[string]bool{}
	for _, r := range res {
		methods[r.Method] = true
	}
	rows := make([]string, 0, len(methods))
	for m := range methods {
		rows = append(rows, m)
	}
	sort.Strings(rows)

	for _, axis := range paramAxes {
		valSet := map[int]bool{}
		for _, r := range res {
			valSet[axis.value(r)] = true
		}
		vals := make([]int, 0, len(valSet))
		for v := range valSet {
			vals = append(vals, v)
		}
		sort.Ints(vals)
		if len(vals) < 2 {
			log.Debugf("%s: single value, heatmap skipped", axis.name)
			continue
		}
		cols := make([]string, len(vals))
		for i, v := range vals {
			cols[i] = fmt.Sprintf("%d", v)
		}
		grid := chart.NewGrid(cols, rows)
		for ri, method := range rows {
			for ci, v := range vals {
				var acc []float64
				for _, r := range res {
					if r.Method == method && axis.value(r) == v {
						acc = append(acc, r.Top1Accuracy)
					}
				}
				if len(acc) > 0 {
					grid.Set(ri, ci, stats.Mean(acc))
				}
			}
		}
		title := fmt.Sprintf("Mean Top-1 Accuracy by Method and %s", axis.name)
		path := filepath.Join(cfg.OutDir, "param_influence_"+axis.name+".png")
		if err := chart.Heatmap(title, axis.name, "Method", grid,
			chart.HeatmapOptions{Annotate: cfg.Annotate, Format: "%.1f"}, path); err != nil {
			return err
		}
	}
	return nil
}

// paramLine builds sorted (value, mean top-1 accuracy) points over the
// results that pass keep.
func paramLine(res []results.ParamResult, keep func(results.ParamResult) bool,
	value func(results.ParamResult) int) chart.XYs {

	byVal := map[int][]float64{}
	for _, r := range res {
		if keep(r) {
			byVal[value(r)] = append(byVal[value(r)], r.Top1Accuracy)
		}
	}
	vals := make([]int, 0, len(byVal))
	for v := range byVal {
		vals = append(vals, v)
	}
	sort.Ints(vals)
	pts := make(chart.XYs, 0, len(vals))
	for _, v := range vals {
		pts = append(pts, chart.XY{X: float64(v), Y: stats.Mean(byVal[v])})
	}
	return pts
}

func paramMethods(res []results.ParamResult) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range res {
		if !seen[r.Method] {
			seen[r.Method] = true
			out = append(out, r.Method)
		}
	}
	sort.Strings(out)
	return out
}

// plotParamLines draws mean top-1 accuracy against each tunable
// parameter: frame and hop size with one line per method, frequency
// count for the maxfreq method and bin count for the spectral method.
func plotParamLines(cfg *Config, res []results.ParamResult) error {
	methods := paramMethods(res)

	for _, axis := range []struct {
		name, file string
		value      func(results.ParamResult) int
	}{
		{"Frame Size", "frame_size_vs_accuracy.png", func(r results.ParamResult) int { return r.FrameSize }},
		{"Hop Size", "hop_size_vs_accuracy.png", func(r results.ParamResult) int { return r.HopSize }},
	} {
		var series []chart.Series
		for _, m := range methods {
			pts := paramLine(res,
				func(r results.ParamResult) bool { return r.Method == m },
				axis.value)
			series = append(series, chart.Series{Label: m, XY: pts})
		}
		path := filepath.Join(cfg.OutDir, axis.file)
		title := axis.name + " vs Accuracy"
		if err := chart.Lines(title, axis.name, "Top-1 Accuracy (%)", series, path); err != nil {
			return err
		}
	}

	for _, only := range []struct {
		method, name, file string
		value              func(results.ParamResult) int
	}{
		{"maxfreq", "Number of Frequencies", "num_frequencies_vs_accuracy.png",
			func(r results.ParamResult) int { return r.NumFrequencies }},
		{"spectral", "Number of Bins", "num_bins_vs_accuracy.png",
			func(r results.ParamResult) int { return r.NumBins }},
	} {
		pts := paramLine(res,
			func(r results.ParamResult) bool { return r.Method == only.method },
			only.value)
		if len(pts) < 2 {
			log.Debugf("%s: not enough %s data", only.method, only.name)
			continue
		}
		path := filepath.Join(cfg.OutDir, only.file)
		title := fmt.Sprintf("%s vs Accuracy (%s)", only.name, only.method)
		series := []chart.Series{{Label: only.method, XY: pts}}
		if err := chart.Lines(title, only.name, "Top-1 Accuracy (%)", series, path); err != nil {
			return err
		}
	}
	return nil
}

func paramCompressors(res []results.ParamResult) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range res {
		if r.Compressor != "" && !seen[r.Compressor] {
			seen[r.Compressor] = true
			out = append(out, r.Compressor)
		}
	}
	sort.Strings(out)
	return out
}

// plotCompressorComparison contrasts compressors over every configuration
// they appear in: the accuracy spread as boxes and the averages as a
// ranking, worst first.
func plotCompressorComparison(cfg *Config, res []results.ParamResult) error {
	comps := paramCompressors(res)
	if len(comps) < 2 {
		log.Debugf("only %d compressors, comparison skipped", len(comps))
		return nil
	}
	values := make([][]float64, len(comps))
	for i, c := range comps {
		for _, r := range res {
			if r.Compressor == c {
				values[i] = append(values[i], r.Top1Accuracy)
			}
		}
	}
	path := filepath.Join(cfg.OutDir, "compressor_accuracy_boxplot.png")
	if err := chart.Boxes("Compressor Performance Comparison", "Compressor",
		"Top-1 Accuracy (%)", comps, values, path); err != nil {
		return err
	}

	type compAvg struct {
		name string
		mean float64
	}
	avgs := make([]compAvg, len(comps))
	for i, c := range comps {
		avgs[i] = compAvg{c, stats.Mean(values[i])}
	}
	sort.Slice(avgs, func(i, j int) bool {
		if avgs[i].mean != avgs[j].mean {
			return avgs[i].mean < avgs[j].mean
		}
		return avgs[i].name < avgs[j].name
	})
	labels := make([]string, len(avgs))
	means := make([]float64, len(avgs))
	for i, a := range avgs {
		labels[i] = a.name
		means[i] = a.mean
	}
	path = filepath.Join(cfg.OutDir, "compressor_avg_accuracy.png")
	return chart.HBars("Average Performance by Compressor",
		"Average Top-1 Accuracy (%)", labels, means, path)
}

func plotMethodBoxes(cfg *Config, res []results.ParamResult) error {
	methods := map[string][]float64{}
	for _, r := range res {
		methods[r.Method] = append(methods[r.Method], r.Top1Accuracy)
	}
	labels := make([]string, 0, len(methods))
	for m := range methods {
		labels = append(labels, m)
	}
	sort.Strings(labels)
	values := make([][]float64, len(labels))
	for i, m := range labels {
		values[i] = methods[m]
	}
	path := filepath.Join(cfg.OutDir, "method_accuracy_boxplot.png")
	return chart.Boxes("Top-1 Accuracy Distribution by Method", "Method", "Accuracy (%)", labels, values, path)
}

// writeParamReport writes detailed_analysis_report.txt: overall
// statistics, the ten best configurations, per-method accuracy spreads
// and the recommended configuration overall and per method.
func writeParamReport(cfg *Config, res []results.ParamResult) error {
	methods := paramMethods(res)
	comps := paramCompressors(res)

	top1 := make([]float64, len(res))
	for i, r := range res {
		top1[i] = r.Top1Accuracy
	}
	overall := stats.Summarize(top1)

	sorted := append([]results.ParamResult(nil), res...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Top1Accuracy != sorted[j].Top1Accuracy {
			return sorted[i].Top1Accuracy > sorted[j].Top1Accuracy
		}
		return configLabel(sorted[i]) < configLabel(sorted[j])
	})

	var b strings.Builder
	b.WriteString("DETAILED PARAMETER EVALUATION REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	b.WriteString("OVERALL STATISTICS:\n")
	b.WriteString(strings.Repeat("-", 20) + "\n")
	fmt.Fprintf(&b, "Total configurations tested: %d\n", len(res))
	fmt.Fprintf(&b, "Methods tested: %s\n", strings.Join(methods, ", "))
	if len(comps) > 0 {
		fmt.Fprintf(&b, "Compressors tested: %s\n", strings.Join(comps, ", "))
	}
	fmt.Fprintf(&b, "Best Top-1 accuracy: %.1f%%\n", overall.Max)
	fmt.Fprintf(&b, "Average Top-1 accuracy: %.1f%%\n", overall.Mean)
	fmt.Fprintf(&b, "Standard deviation: %.1f%%\n\n", overall.Std)

	b.WriteString("TOP 10 CONFIGURATIONS:\n")
	b.WriteString(strings.Repeat("-", 25) + "\n")
	topN := sorted
	if len(topN) > 10 {
		topN = topN[:10]
	}
	for i, r := range topN {
		fmt.Fprintf(&b, "%d. %s - Freq: %d, Bins: %d, Frame: %d, Hop: %d",
			i+1, r.Method, r.NumFrequencies, r.NumBins, r.FrameSize, r.HopSize)
		if r.Compressor != "" {
			fmt.Fprintf(&b, ", Comp: %s", r.Compressor)
		}
		fmt.Fprintf(&b, " - Acc: %.1f%%\n", r.Top1Accuracy)
	}
	b.WriteString("\n")

	b.WriteString("METHOD COMPARISON:\n")
	b.WriteString(strings.Repeat("-", 18) + "\n")
	for _, m := range methods {
		var t1, t5, t10 []float64
		for _, r := range res {
			if r.Method == m {
				t1 = append(t1, r.Top1Accuracy)
				t5 = append(t5, r.Top5Accuracy)
				t10 = append(t10, r.Top10Accuracy)
			}
		}
		d1, d5, d10 := stats.Summarize(t1), stats.Summarize(t5), stats.Summarize(t10)
		fmt.Fprintf(&b, "%s:\n", strings.ToUpper(m))
		fmt.Fprintf(&b, "  Top-1: %.1f%% ± %.1f%%\n", d1.Mean, d1.Std)
		fmt.Fprintf(&b, "  Top-5: %.1f%% ± %.1f%%\n", d5.Mean, d5.Std)
		fmt.Fprintf(&b, "  Top-10: %.1f%% ± %.1f%%\n\n", d10.Mean, d10.Std)
	}

	b.WriteString("PARAMETER RECOMMENDATIONS:\n")
	b.WriteString(strings.Repeat("-", 26) + "\n")
	best := sorted[0]
	b.WriteString("Best overall configuration:\n")
	writeConfigLines(&b, best, true)
	for _, m := range methods {
		for _, r := range sorted {
			if r.Method == m {
				fmt.Fprintf(&b, "Best %s configuration:\n", m)
				writeConfigLines(&b, r, false)
				break
			}
		}
	}

	path := filepath.Join(cfg.OutDir, "detailed_analysis_report.txt")
	return os.WriteFile(path, []byte(b.String()), 0644)
}

func writeConfigLines(b *strings.Builder, r results.ParamResult, withMethod bool) {
	if withMethod {
		fmt.Fprintf(b, "  Method: %s\n", r.Method)
	}
	fmt.Fprintf(b, "  Frequencies: %d\n", r.NumFrequencies)
	fmt.Fprintf(b, "  Bins: %d\n", r.NumBins)
	fmt.Fprintf(b, "  Frame Size: %d\n", r.FrameSize)
	fmt.Fprintf(b, "  Hop Size: %d\n", r.HopSize)
	if withMethod && r.Compressor != "" {
		fmt.Fprintf(b, "  Compressor: %s\n", r.Compressor)
	}
	fmt.Fprintf(b, "  Accuracy: %.1f%%\n\n", r.Top1Accuracy)
}
