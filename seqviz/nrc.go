package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"resviz/chart"
	"resviz/report"
	"resviz/results"
	"resviz/stats"
)

func runNRC(cfg *Config) error {
	exps, err := results.LoadExperiments(cfg.Input)
	if err != nil {
		return err
	}
	recs := results.Flatten(exps)
	if len(recs) == 0 {
		return fmt.Errorf("no reference records in %s", cfg.Input)
	}
	if err := ensureDir(cfg.OutDir); err != nil {
		return err
	}
	log.Infof("loaded %d experiments (%d reference rows)", len(exps), len(recs))

	if err := plotTopNRC(cfg, recs); err != nil {
		return err
	}
	if err := plotRankStability(cfg, recs); err != nil {
		return err
	}
	if err := plotParameterInfluence(cfg, recs); err != nil {
		return err
	}
	if err := plotNRCBoxes(cfg, recs); err != nil {
		return err
	}
	outliers := trackOutliers(cfg, recs)
	if err := plotExecTime(cfg, exps); err != nil {
		return err
	}
	if err := writeNRCSummary(cfg, recs); err != nil {
		return err
	}
	if err := writeTopTable(cfg, recs); err != nil {
		log.Warnf("top-organisms table: %v", err)
	}
	if err := writeNRCWorkbook(cfg, recs, outliers); err != nil {
		log.Warnf("workbook: %v", err)
	}
	return nil
}

// ---------- rank-1 NRC surface and heatmap ----------

// rank1Grid pivots rank-1 NRC onto an (alpha row × k column) grid. The
// first record per cell wins, as each (k, alpha) has a single rank-1
// reference in well-formed input.
func rank1Grid(recs []results.RefRecord) (*chart.Grid, []int, []float64) {
	top := filterRecs(recs, func(r results.RefRecord) bool { return r.Rank == 1 })
	ks, alphas := results.ParamGrid(top)
	grid := chart.NewGrid(intLabels(ks, "k=%d"), floatLabels(alphas, "α=%g"))
	for ri, a := range alphas {
		for ci, k := range ks {
			for _, r := range top {
				if r.K == k && r.Alpha == a {
					grid.Set(ri, ci, r.NRC)
					break
				}
			}
		}
	}
	return grid, ks, alphas
}

func plotTopNRC(cfg *Config, recs []results.RefRecord) error {
	grid, ks, alphas := rank1Grid(recs)

	path := filepath.Join(cfg.OutDir, "top_organism_nrc_heatmap.png")
	err := chart.Heatmap("NRC Values of Top-Ranked Organisms (Rank 1)",
		"k value", "Alpha value", grid, chart.HeatmapOptions{Annotate: cfg.Annotate}, path)
	if err != nil {
		return err
	}

	var points []chart.SurfacePoint
	for ri, a := range alphas {
		for ci, k := range ks {
			points = append(points, chart.SurfacePoint{X: float64(k), Y: a, Z: grid.At(ri, ci)})
		}
	}
	path = filepath.Join(cfg.OutDir, "nrc_3d_surface.html")
	return chart.Surface3D("Top-Ranked Organism NRC Values", "k", "alpha", "NRC", points, path)
}

// ---------- rank stability ----------

func plotRankStability(cfg *Config, recs []results.RefRecord) error {
	// organisms appearing in the top 5 anywhere, ordered by total rank score
	top5Names := map[string]bool{}
	for _, r := range recs {
		if r.Rank <= 5 {
			top5Names[r.Name] = true
		}
	}
	scores := results.RankStability(recs)
	var kept []results.OrganismScore
	for _, s := range scores {
		if top5Names[s.Name] {
			kept = append(kept, s)
		}
	}
	if len(kept) > 10 {
		kept = kept[:10]
	}
	if len(kept) == 0 {
		log.Warn("rank stability: no organisms in the top 5")
		return nil
	}

	ks, alphas := results.ParamGrid(recs)
	var colLabels []string
	for _, k := range ks {
		for _, a := range alphas {
			colLabels = append(colLabels, fmt.Sprintf("k=%d α=%g", k, a))
		}
	}
	rowLabels := make([]string, len(kept))
	grid := chart.NewGrid(colLabels, rowLabels)
	for i, org := range kept {
		rowLabels[i] = fmt.Sprintf("%s (score: %d)", org.ShortName, org.Score)
		for _, p := range org.Placed {
			col := -1
			for ci, k := range ks {
				for ai, a := range alphas {
					if k == p.K && a == p.Alpha {
						col = ci*len(alphas) + ai
					}
				}
			}
			if col >= 0 {
				grid.Set(i, col, float64(p.Rank))
			}
		}
	}
	grid.YLabels = rowLabels

	path := filepath.Join(cfg.OutDir, "rank_stability.png")
	return chart.Heatmap("Rank Stability Across Parameters (Ordered by Overall Performance)",
		"Parameter Combinations (k, α)", "Organism", grid,
		chart.HeatmapOptions{Annotate: cfg.Annotate, Format: "%.0f"}, path)
}

// ---------- parameter influence ----------

func plotParameterInfluence(cfg *Config, recs []results.RefRecord) error {
	for _, name := range results.TopByFrequency(recs, 3, 3) {
		org := filterRecs(recs, func(r results.RefRecord) bool { return r.Name == name })
		ks, alphas := results.ParamGrid(org)
		grid := chart.NewGrid(floatLabels(alphas, "%g"), intLabels(ks, "%d"))
		for ri, k := range ks {
			for ci, a := range alphas {
				var vals []float64
				for _, r := range org {
					if r.K == k && r.Alpha == a {
						vals = append(vals, r.NRC)
					}
				}
				if len(vals) > 0 {
					grid.Set(ri, ci, stats.Mean(vals))
				}
			}
		}
		short := org[0].ShortName
		safe := strings.NewReplacer("|", "_", " ", "_", "/", "_").Replace(short)
		path := filepath.Join(cfg.OutDir, "parameter_influence_"+safe+".png")
		title := fmt.Sprintf("NRC Values for %s Across Parameters", short)
		if err := chart.Heatmap(title, "Alpha value", "k value", grid,
			chart.HeatmapOptions{Annotate: cfg.Annotate}, path); err != nil {
			return err
		}
	}
	return nil
}

// ---------- distribution and outliers ----------

func plotNRCBoxes(cfg *Config, recs []results.RefRecord) error {
	groups := func(rs []results.RefRecord) ([]string, [][]float64) {
		ks, _ := results.ParamGrid(rs)
		labels := intLabels(ks, "%d")
		values := make([][]float64, len(ks))
		for i, k := range ks {
			for _, r := range rs {
				if r.K == k {
					values[i] = append(values[i], r.NRC)
				}
			}
		}
		return labels, values
	}

	labels, values := groups(recs)
	path := filepath.Join(cfg.OutDir, "nrc_boxplot_by_k.png")
	if err := chart.Boxes("Distribution of NRC Values by k", "k value", "NRC", labels, values, path); err != nil {
		return err
	}

	top := filterRecs(recs, func(r results.RefRecord) bool { return r.Rank <= 5 })
	labels, values = groups(top)
	path = filepath.Join(cfg.OutDir, "nrc_boxplot_top5_by_k.png")
	return chart.Boxes("NRC Values for Top 5 Ranking Organisms by k", "k value", "NRC", labels, values, path)
}

// nrcOutlier is one flagged value plus its deviation from the group median.
type nrcOutlier struct {
	K         int
	Alpha     float64
	Organism  string
	FullName  string
	NRC       float64
	MedianNRC float64
	Deviation float64
	Percent   float64
	Rank      int
}

// trackOutliers flags NRC values outside the 1.5×IQR fences per k, writes
// them to CSV plus a summary, and charts the most frequent offenders.
// Failures here only log: outlier tracking never blocks the main figures.
func trackOutliers(cfg *Config, recs []results.RefRecord) []nrcOutlier {
	ks, _ := results.ParamGrid(recs)
	var outliers []nrcOutlier
	for _, k := range ks {
		group := filterRecs(recs, func(r results.RefRecord) bool { return r.K == k })
		vals := make([]float64, len(group))
		for i, r := range group {
			vals[i] = r.NRC
		}
		median := stats.Median(vals)
		for _, i := range stats.Outliers(vals) {
			r := group[i]
			dev := r.NRC - median
			pct := math.Inf(1)
			if median != 0 {
				pct = dev / median * 100
			}
			outliers = append(outliers, nrcOutlier{
				K: k, Alpha: r.Alpha, Organism: r.ShortName, FullName: r.Name,
				NRC: r.NRC, MedianNRC: median, Deviation: dev, Percent: pct, Rank: r.Rank,
			})
		}
	}
	if len(outliers) == 0 {
		log.Info("no NRC outliers detected")
		return nil
	}
	sort.Slice(outliers, func(i, j int) bool {
		if outliers[i].K != outliers[j].K {
			return outliers[i].K < outliers[j].K
		}
		return outliers[i].Percent > outliers[j].Percent
	})

	if err := writeOutlierCSV(filepath.Join(cfg.OutDir, "nrc_outliers.csv"), outliers); err != nil {
		log.Warnf("outlier csv: %v", err)
	}

	counts := map[string]int{}
	for _, o := range outliers {
		counts[o.Organism]++
	}
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > 10 {
		names = names[:10]
	}
	vals := make([]float64, len(names))
	for i, n := range names {
		vals[i] = float64(counts[n])
	}
	path := filepath.Join(cfg.OutDir, "nrc_outliers_summary.png")
	if err := chart.RankingBars("Most Frequent NRC Outlier Organisms", names, vals, path); err != nil {
		log.Warnf("outlier chart: %v", err)
	}

	var b strings.Builder
	b.WriteString("=== OUTLIER ANALYSIS ===\n")
	fmt.Fprintf(&b, "Total outliers detected: %d\n", len(outliers))
	fmt.Fprintf(&b, "Number of unique outlier organisms: %d\n\n", len(counts))
	b.WriteString("TOP OUTLIER ORGANISMS:\n")
	for _, n := range names {
		fmt.Fprintf(&b, "%s: %d occurrences\n", n, counts[n])
	}
	b.WriteString("\nOUTLIERS BY K VALUE:\n")
	for _, k := range ks {
		n := 0
		for _, o := range outliers {
			if o.K == k {
				n++
			}
		}
		if n > 0 {
			fmt.Fprintf(&b, "k=%d: %d outliers\n", k, n)
		}
	}
	if err := os.WriteFile(filepath.Join(cfg.OutDir, "outliers_summary.txt"), []byte(b.String()), 0644); err != nil {
		log.Warnf("outlier summary: %v", err)
	}
	return outliers
}

func writeOutlierCSV(path string, outliers []nrcOutlier) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"k", "alpha", "organism", "full_name", "nrc", "median_nrc", "deviation", "percent_deviation", "rank"}); err != nil {
		return err
	}
	for _, o := range outliers {
		row := []string{
			strconv.Itoa(o.K),
			strconv.FormatFloat(o.Alpha, 'g', -1, 64),
			o.Organism,
			o.FullName,
			strconv.FormatFloat(o.NRC, 'f', 6, 64),
			strconv.FormatFloat(o.MedianNRC, 'f', 6, 64),
			strconv.FormatFloat(o.Deviation, 'f', 6, 64),
			strconv.FormatFloat(o.Percent, 'f', 2, 64),
			strconv.Itoa(o.Rank),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// ---------- execution time ----------

func plotExecTime(cfg *Config, exps []results.Experiment) error {
	ks := map[int]bool{}
	alphas := map[float64]bool{}
	for _, e := range exps {
		ks[e.K] = true
		alphas[e.Alpha] = true
	}
	sortedKs := make([]int, 0, len(ks))
	for k := range ks {
		sortedKs = append(sortedKs, k)
	}
	sort.Ints(sortedKs)
	sortedAlphas := make([]float64, 0, len(alphas))
	for a := range alphas {
		sortedAlphas = append(sortedAlphas, a)
	}
	sort.Float64s(sortedAlphas)

	var byK []chart.Series
	for _, k := range sortedKs {
		var pts chart.XYs
		for _, a := range sortedAlphas {
			for _, e := range exps {
				if e.K == k && e.Alpha == a {
					pts = append(pts, chart.XY{X: a, Y: e.ExecTimeMS / 1000})
					break
				}
			}
		}
		byK = append(byK, chart.Series{Label: fmt.Sprintf("k=%d", k), XY: pts})
	}
	path := filepath.Join(cfg.OutDir, "exec_time_vs_alpha.png")
	if err := chart.Lines("Execution Time vs Alpha", "Alpha", "Time (seconds)", byK, path); err != nil {
		return err
	}

	var byAlpha []chart.Series
	for _, a := range sortedAlphas {
		var pts chart.XYs
		for _, k := range sortedKs {
			for _, e := range exps {
				if e.K == k && e.Alpha == a {
					pts = append(pts, chart.XY{X: float64(k), Y: e.ExecTimeMS / 1000})
					break
				}
			}
		}
		byAlpha = append(byAlpha, chart.Series{Label: fmt.Sprintf("α=%g", a), XY: pts})
	}
	path = filepath.Join(cfg.OutDir, "exec_time_vs_k.png")
	return chart.Lines("Execution Time vs k", "k", "Time (seconds)", byAlpha, path)
}

// ---------- reports ----------

// bestRank1 picks the rank-1 record with the lowest NRC.
func bestRank1(recs []results.RefRecord) (results.RefRecord, bool) {
	best := results.RefRecord{NRC: math.Inf(1)}
	found := false
	for _, r := range recs {
		if r.Rank == 1 && r.NRC < best.NRC {
			best = r
			found = true
		}
	}
	return best, found
}

// mostFrequentRank1 returns the organism most often ranked first.
func mostFrequentRank1(recs []results.RefRecord) string {
	top := results.TopByFrequency(recs, 1, 1)
	if len(top) == 0 {
		return ""
	}
	return top[0]
}

func writeNRCSummary(cfg *Config, recs []results.RefRecord) error {
	best, ok := bestRank1(recs)
	if !ok {
		return fmt.Errorf("no rank-1 records")
	}
	md := strings.EqualFold(cfg.Report, "md")

	var b strings.Builder
	if md {
		b.WriteString("# Summary Statistics\n\n")
		fmt.Fprintf(&b, "- Input file: `%s`\n", cfg.Input)
		fmt.Fprintf(&b, "- Most frequent top-ranking organism: `%s`\n", mostFrequentRank1(recs))
		fmt.Fprintf(&b, "- Best NRC value: `%.6f`\n", best.NRC)
		fmt.Fprintf(&b, "- Best parameters: `k=%d, alpha=%g`\n", best.K, best.Alpha)
	} else {
		b.WriteString("=== SUMMARY STATISTICS ===\n")
		fmt.Fprintf(&b, "Input file: %s\n", cfg.Input)
		fmt.Fprintf(&b, "Most frequent top-ranking organism: %s\n", mostFrequentRank1(recs))
		fmt.Fprintf(&b, "Best NRC value: %.6f\n", best.NRC)
		fmt.Fprintf(&b, "Best parameters: k=%d, alpha=%g\n", best.K, best.Alpha)
	}
	name := "summary.txt"
	if md {
		name = "summary.md"
	}
	return os.WriteFile(filepath.Join(cfg.OutDir, name), []byte(b.String()), 0644)
}

// topTableRows selects the top-10 references at the configured (k, alpha).
func topTableRows(cfg *Config, recs []results.RefRecord) ([]report.TableRow, error) {
	sel := filterRecs(recs, func(r results.RefRecord) bool {
		return r.K == cfg.TableK && r.Alpha == cfg.TableAlpha
	})
	if len(sel) == 0 {
		return nil, fmt.Errorf("no data for k=%d alpha=%g", cfg.TableK, cfg.TableAlpha)
	}
	sort.Slice(sel, func(i, j int) bool { return sel[i].Rank < sel[j].Rank })
	if len(sel) > 10 {
		sel = sel[:10]
	}
	rows := make([]report.TableRow, len(sel))
	for i, r := range sel {
		rows[i] = report.TableRow{Rank: r.Rank, Name: r.ShortName, NRC: r.NRC, KLD: r.KLD}
	}
	return rows, nil
}

func writeTopTable(cfg *Config, recs []results.RefRecord) error {
	rows, err := topTableRows(cfg, recs)
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.OutDir, "top_organisms_table.tex")
	return report.WriteLatexTable(path, rows, cfg.TableK, cfg.TableAlpha)
}

func writeNRCWorkbook(cfg *Config, recs []results.RefRecord, outliers []nrcOutlier) error {
	rows, err := topTableRows(cfg, recs)
	if err != nil {
		return err
	}
	ranking := report.Sheet{
		Name:   "Ranking",
		Header: []string{"Rank", "Organism", "NRC", "KLD"},
	}
	for _, r := range rows {
		ranking.Rows = append(ranking.Rows, []interface{}{r.Rank, r.Name, r.NRC, r.KLD})
	}
	sheets := []report.Sheet{ranking}
	if len(outliers) > 0 {
		out := report.Sheet{
			Name:   "Outliers",
			Header: []string{"k", "alpha", "organism", "nrc", "median_nrc", "percent_deviation", "rank"},
		}
		for _, o := range outliers {
			out.Rows = append(out.Rows, []interface{}{o.K, o.Alpha, o.Organism, o.NRC, o.MedianNRC, o.Percent, o.Rank})
		}
		sheets = append(sheets, out)
	}
	return report.WriteWorkbook(filepath.Join(cfg.OutDir, "nrc_summary.xlsx"), sheets)
}

// ---------- helpers ----------

func filterRecs(recs []results.RefRecord, keep func(results.RefRecord) bool) []results.RefRecord {
	var out []results.RefRecord
	for _, r := range recs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func floatLabels(vals []float64, format string) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = fmt.Sprintf(format, v)
	}
	return out
}
