package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"resviz/chart"
	"resviz/report"
	"resviz/results"
	"resviz/stats"
)

// combo is one point of the sweep grid.
type combo struct {
	Method     string
	Format     string
	Noise      string
	Compressor string
}

func (c combo) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", c.Method, c.Format, c.Noise, c.Compressor)
}

// sweepData holds every loaded grid cell plus the combos that had no
// metrics file in any requested dataset.
type sweepData struct {
	cells   map[combo]results.AccuracyMetrics
	missing []combo
}

func runSweep(cfg *Config) error {
	if _, err := os.Stat(cfg.Input); err != nil {
		return err
	}
	if err := ensureDir(cfg.OutDir); err != nil {
		return err
	}

	data := loadSweep(cfg)
	if len(data.cells) == 0 {
		return fmt.Errorf("no accuracy metrics found under %s (dataset %s)", cfg.Input, cfg.Dataset)
	}
	log.Infof("loaded %d grid cells, %d combinations missing", len(data.cells), len(data.missing))

	for _, noise := range cfg.Noises {
		if err := plotNoiseHeatmap(cfg, data, noise); err != nil {
			return err
		}
	}
	for _, topK := range []int{1, 5, 10} {
		if err := plotCompressorRanking(cfg, data, topK); err != nil {
			return err
		}
		if err := plotFormatComparison(cfg, data, topK); err != nil {
			return err
		}
		if err := plotMethodComparison(cfg, data, topK); err != nil {
			return err
		}
	}
	if err := writeSweepReport(cfg, data); err != nil {
		return err
	}
	if err := writeSweepWorkbook(cfg, data); err != nil {
		log.Warnf("workbook: %v", err)
	}
	return nil
}

// ---------- loading ----------

// metricsPath is the sweep runner's layout:
// compressors/<dataset>/<method>/<format>/<noise>_<compressor>/accuracy_metrics_<compressor>.json
func metricsPath(root, dataset string, c combo) string {
	return filepath.Join(root, "compressors", dataset, c.Method, c.Format,
		c.Noise+"_"+c.Compressor, "accuracy_metrics_"+c.Compressor+".json")
}

func loadSweep(cfg *Config) *sweepData {
	datasets := []string{cfg.Dataset}
	if cfg.Dataset == "both" {
		datasets = []string{"youtube", "small"}
	}
	data := &sweepData{cells: map[combo]results.AccuracyMetrics{}}
	for _, method := range cfg.Methods {
		for _, format := range cfg.Formats {
			for _, noise := range cfg.Noises {
				for _, comp := range cfg.Compressors {
					c := combo{method, format, noise, comp}
					var found []results.AccuracyMetrics
					for _, ds := range datasets {
						path := metricsPath(cfg.Input, ds, c)
						m, err := results.LoadAccuracyMetrics(path)
						if err != nil {
							if !os.IsNotExist(err) {
								log.Warnf("%s: %v", path, err)
							}
							continue
						}
						found = append(found, m)
					}
					if len(found) == 0 {
						data.missing = append(data.missing, c)
						continue
					}
					data.cells[c] = averageMetrics(found)
				}
			}
		}
	}
	return data
}

// averageMetrics combines per-dataset metrics into one cell. Counts sum,
// accuracies are plain means, matching a pooled two-dataset view closely
// enough for ranking purposes.
func averageMetrics(ms []results.AccuracyMetrics) results.AccuracyMetrics {
	if len(ms) == 1 {
		return ms[0]
	}
	var out results.AccuracyMetrics
	for _, m := range ms {
		out.TotalQueries += m.TotalQueries
		out.Top1Correct += m.Top1Correct
		out.Top5Correct += m.Top5Correct
		out.Top10Correct += m.Top10Correct
		out.Top1Accuracy += m.Top1Accuracy
		out.Top5Accuracy += m.Top5Accuracy
		out.Top10Accuracy += m.Top10Accuracy
	}
	n := float64(len(ms))
	out.Top1Accuracy /= n
	out.Top5Accuracy /= n
	out.Top10Accuracy /= n
	return out
}

// accuraciesWhere collects a topK accuracy over every cell the filter keeps.
func (d *sweepData) accuraciesWhere(topK int, keep func(combo) bool) []float64 {
	var out []float64
	for c, m := range d.cells {
		if keep(c) {
			out = append(out, m.Accuracy(topK))
		}
	}
	return out
}

// ---------- figures ----------

func plotNoiseHeatmap(cfg *Config, data *sweepData, noise string) error {
	var rows []string
	for _, method := range cfg.Methods {
		for _, format := range cfg.Formats {
			rows = append(rows, method+"_"+format)
		}
	}
	grid := chart.NewGrid(cfg.Compressors, rows)
	ri := 0
	for _, method := range cfg.Methods {
		for _, format := range cfg.Formats {
			for ci, comp := range cfg.Compressors {
				if m, ok := data.cells[combo{method, format, noise, comp}]; ok {
					grid.Set(ri, ci, m.Top1Accuracy)
				}
			}
			ri++
		}
	}
	title := fmt.Sprintf("Top-1 Accuracy by Method/Format and Compressor (%s)", noise)
	path := filepath.Join(cfg.OutDir, "accuracy_heatmap_"+noise+".png")
	return chart.Heatmap(title, "Compressor", "Method / Format", grid,
		chart.HeatmapOptions{Annotate: cfg.Annotate, Format: "%.1f"}, path)
}

func plotCompressorRanking(cfg *Config, data *sweepData, topK int) error {
	bars := make([]chart.BarStat, 0, len(cfg.Compressors))
	for _, comp := range cfg.Compressors {
		vals := data.accuraciesWhere(topK, func(c combo) bool { return c.Compressor == comp })
		if len(vals) == 0 {
			continue
		}
		d := stats.Summarize(vals)
		bars = append(bars, chart.BarStat{Label: comp, Mean: d.Mean, Min: d.Min, Max: d.Max, N: d.N})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Mean > bars[j].Mean })
	title := fmt.Sprintf("Compressor Ranking by Top-%d Accuracy", topK)
	path := filepath.Join(cfg.OutDir, fmt.Sprintf("compressor_ranking_top%d.png", topK))
	return chart.WhiskerBars(title, "Accuracy (%)", bars, 110, path)
}

func plotFormatComparison(cfg *Config, data *sweepData, topK int) error {
	if len(cfg.Formats) < 2 {
		return nil
	}
	group := func(format string) chart.BarGroup {
		g := chart.BarGroup{Label: format, Values: make([]float64, len(cfg.Methods))}
		for i, method := range cfg.Methods {
			vals := data.accuraciesWhere(topK, func(c combo) bool {
				return c.Method == method && c.Format == format
			})
			g.Values[i] = stats.Mean(vals)
		}
		return g
	}
	title := fmt.Sprintf("Text vs Binary Signatures: Top-%d Accuracy by Method", topK)
	path := filepath.Join(cfg.OutDir, fmt.Sprintf("format_comparison_top%d.png", topK))
	return chart.GroupedBars(title, "Accuracy (%)", cfg.Methods,
		group(cfg.Formats[0]), group(cfg.Formats[1]), 110, path)
}

func plotMethodComparison(cfg *Config, data *sweepData, topK int) error {
	if len(cfg.Methods) < 2 {
		return nil
	}
	group := func(method string) chart.BarGroup {
		g := chart.BarGroup{Label: method, Values: make([]float64, len(cfg.Formats))}
		for i, format := range cfg.Formats {
			vals := data.accuraciesWhere(topK, func(c combo) bool {
				return c.Method == method && c.Format == format
			})
			g.Values[i] = stats.Mean(vals)
		}
		return g
	}
	title := fmt.Sprintf("Method Comparison: Top-%d Accuracy by Format", topK)
	path := filepath.Join(cfg.OutDir, fmt.Sprintf("method_comparison_top%d.png", topK))
	return chart.GroupedBars(title, "Accuracy (%)", cfg.Formats,
		group(cfg.Methods[0]), group(cfg.Methods[1]), 110, path)
}

// ---------- reports ----------

// bestCombo returns the grid cell with the highest topK accuracy,
// breaking ties by combo string for a stable report.
func (d *sweepData) bestCombo(topK int) (combo, float64) {
	best := combo{}
	bestVal := math.Inf(-1)
	for c, m := range d.cells {
		v := m.Accuracy(topK)
		if v > bestVal || (v == bestVal && c.String() < best.String()) {
			best, bestVal = c, v
		}
	}
	return best, bestVal
}

func writeSweepReport(cfg *Config, data *sweepData) error {
	md := strings.EqualFold(cfg.Report, "md")

	var violations []combo
	for c, m := range data.cells {
		if !m.Monotonic() {
			violations = append(violations, c)
		}
	}
	sort.Slice(violations, func(i, j int) bool { return violations[i].String() < violations[j].String() })
	for _, c := range violations {
		m := data.cells[c]
		log.Warnf("%s: top-K accuracies not monotonic (%.1f / %.1f / %.1f)",
			c, m.Top1Accuracy, m.Top5Accuracy, m.Top10Accuracy)
	}

	var b strings.Builder
	if md {
		b.WriteString("# Compressor Sweep Summary\n\n")
		fmt.Fprintf(&b, "- Dataset: `%s`\n", cfg.Dataset)
		fmt.Fprintf(&b, "- Loaded cells: %d\n", len(data.cells))
		fmt.Fprintf(&b, "- Missing combinations: %d\n\n", len(data.missing))
		b.WriteString("## Best Combinations\n\n")
		b.WriteString("| Metric | Method | Format | Noise | Compressor | Accuracy |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		for _, topK := range []int{1, 5, 10} {
			c, v := data.bestCombo(topK)
			fmt.Fprintf(&b, "| top-%d | %s | %s | %s | %s | %.1f%% |\n",
				topK, c.Method, c.Format, c.Noise, c.Compressor, v)
		}
		if len(violations) > 0 {
			b.WriteString("\n## Monotonicity Violations\n\n")
			for _, c := range violations {
				m := data.cells[c]
				fmt.Fprintf(&b, "- `%s`: %.1f / %.1f / %.1f\n", c, m.Top1Accuracy, m.Top5Accuracy, m.Top10Accuracy)
			}
		}
		if len(data.missing) > 0 {
			b.WriteString("\n## Missing Combinations\n\n")
			for _, c := range data.missing {
				fmt.Fprintf(&b, "- `%s`\n", c)
			}
		}
	} else {
		b.WriteString("=== COMPRESSOR SWEEP SUMMARY ===\n")
		fmt.Fprintf(&b, "Dataset: %s\n", cfg.Dataset)
		fmt.Fprintf(&b, "Loaded cells: %d\n", len(data.cells))
		fmt.Fprintf(&b, "Missing combinations: %d\n\n", len(data.missing))
		b.WriteString("BEST COMBINATIONS:\n")
		for _, topK := range []int{1, 5, 10} {
			c, v := data.bestCombo(topK)
			fmt.Fprintf(&b, "top-%d: %s (%.1f%%)\n", topK, c, v)
		}
		if len(violations) > 0 {
			b.WriteString("\nMONOTONICITY VIOLATIONS:\n")
			for _, c := range violations {
				m := data.cells[c]
				fmt.Fprintf(&b, "%s: %.1f / %.1f / %.1f\n", c, m.Top1Accuracy, m.Top5Accuracy, m.Top10Accuracy)
			}
		}
		if len(data.missing) > 0 {
			b.WriteString("\nMISSING COMBINATIONS:\n")
			for _, c := range data.missing {
				fmt.Fprintf(&b, "%s\n", c)
			}
		}
	}
	name := "sweep_summary.txt"
	if md {
		name = "sweep_summary.md"
	}
	return os.WriteFile(filepath.Join(cfg.OutDir, name), []byte(b.String()), 0644)
}

func writeSweepWorkbook(cfg *Config, data *sweepData) error {
	combos := make([]combo, 0, len(data.cells))
	for c := range data.cells {
		combos = append(combos, c)
	}
	sort.Slice(combos, func(i, j int) bool { return combos[i].String() < combos[j].String() })

	sheet := report.Sheet{
		Name:   "Sweep",
		Header: []string{"method", "format", "noise", "compressor", "queries", "top1", "top5", "top10"},
	}
	for _, c := range combos {
		m := data.cells[c]
		sheet.Rows = append(sheet.Rows, []interface{}{
			c.Method, c.Format, c.Noise, c.Compressor,
			m.TotalQueries, m.Top1Accuracy, m.Top5Accuracy, m.Top10Accuracy,
		})
	}
	sheets := []report.Sheet{sheet}
	if len(data.missing) > 0 {
		miss := report.Sheet{Name: "Missing", Header: []string{"method", "format", "noise", "compressor"}}
		for _, c := range data.missing {
			miss.Rows = append(miss.Rows, []interface{}{c.Method, c.Format, c.Noise, c.Compressor})
		}
		sheets = append(sheets, miss)
	}
	return report.WriteWorkbook(filepath.Join(cfg.OutDir, "sweep_summary.xlsx"), sheets)
}
