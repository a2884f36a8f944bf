package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"resviz/chart"
	"resviz/results"
	"resviz/stats"
)

// paramChange is the absolute change in mean information content between
// one recursive step and the previous one, for a single (k, alpha) pair.
type paramChange struct {
	K      int
	Alpha  float64
	Step   int
	Change float64
}

// stepChanges computes the step-to-step information content changes for
// every (k, alpha) pair. Rows at the same step average first, then the
// change at step s is |mean(s) - mean(s-1)| over consecutive recorded
// steps. Pairs with fewer than two steps contribute nothing.
func stepChanges(runs []results.ModelRun) []paramChange {
	var out []paramChange
	for _, k := range uniqueKs(runs) {
		for _, a := range uniqueAlphas(runs) {
			pts := lineOver(runs,
				func(r results.ModelRun) bool { return r.K == k && r.Alpha == a },
				func(r results.ModelRun) float64 { return float64(r.RecursiveStep) },
				func(r results.ModelRun) float64 { return r.AvgInfoContent })
			for i := 1; i < len(pts); i++ {
				out = append(out, paramChange{
					K:      k,
					Alpha:  a,
					Step:   int(pts[i].X),
					Change: abs(pts[i].Y - pts[i-1].Y),
				})
			}
		}
	}
	return out
}

// plotConvergence shows how quickly the recursive models settle: the
// change in information content per step (log scale, one line per k) and
// a k × alpha heatmap of the average change.
func plotConvergence(seq string, runs []results.ModelRun, dir string) error {
	changes := stepChanges(runs)
	if len(changes) == 0 {
		return nil
	}

	ks := uniqueKs(runs)
	var series []chart.Series
	for _, k := range ks {
		byStep := map[int][]float64{}
		for _, c := range changes {
			if c.K == k {
				byStep[c.Step] = append(byStep[c.Step], c.Change)
			}
		}
		steps := make([]int, 0, len(byStep))
		for s := range byStep {
			steps = append(steps, s)
		}
		sort.Ints(steps)
		var pts chart.XYs
		for _, s := range steps {
			// zero change cannot sit on a log axis
			if m := stats.Mean(byStep[s]); m > 0 {
				pts = append(pts, chart.XY{X: float64(s), Y: m})
			}
		}
		series = append(series, chart.Series{Label: fmt.Sprintf("k=%d", k), XY: pts})
	}
	path := filepath.Join(dir, "convergence_analysis.png")
	title := "Convergence Analysis - Change in Information Content - " + seq
	if err := chart.LinesLogY(title, "Recursive Step",
		"Absolute Change in Avg. Information Content", series, path); err != nil {
		return err
	}

	alphas := uniqueAlphas(runs)
	grid := chart.NewGrid(floatLabels(alphas, "α=%g"), intLabels(ks, "k=%d"))
	for ri, k := range ks {
		for ci, a := range alphas {
			var vals []float64
			for _, c := range changes {
				if c.K == k && c.Alpha == a {
					vals = append(vals, c.Change)
				}
			}
			if len(vals) > 0 {
				grid.Set(ri, ci, stats.Mean(vals))
			}
		}
	}
	path = filepath.Join(dir, "convergence_heatmap.png")
	title = "Average Change in Information Content by k and alpha - " + seq
	return chart.Heatmap(title, "Alpha", "k", grid,
		chart.HeatmapOptions{Annotate: true, Format: "%.3f"}, path)
}

// plotProfileEvolution draws the complexity profile at the median alpha
// across recursive steps, one line per step. When a run recorded more
// than five steps only steps 0, 1, 2, 5 and the last one draw, so the
// figure stays readable.
func plotProfileEvolution(seq string, runs []results.ModelRun, dir string) error {
	alphas := uniqueAlphas(runs)
	if len(alphas) == 0 {
		return nil
	}
	closest := closestToMedian(alphas)
	medRuns := filterRuns(runs, func(r results.ModelRun) bool { return r.Alpha == closest })
	steps := uniqueSteps(medRuns)
	if len(steps) == 0 {
		return nil
	}
	steps = evolutionSteps(steps)

	var series []chart.Series
	for _, step := range steps {
		pts := lineOver(medRuns,
			func(r results.ModelRun) bool { return r.RecursiveStep == step },
			func(r results.ModelRun) float64 { return float64(r.K) },
			func(r results.ModelRun) float64 { return r.AvgInfoContent })
		series = append(series, chart.Series{Label: fmt.Sprintf("step %d", step), XY: pts})
	}
	path := filepath.Join(dir, "complexity_profile_evolution.png")
	title := fmt.Sprintf("Complexity Profile Evolution (alpha≈%.2f) - %s", closest, seq)
	return chart.Lines(title, "Context Length (k)",
		"Average Information Content (bits/symbol)", series, path)
}

// evolutionSteps trims a sorted step list down to {0, 1, 2, 5, last}
// once it grows past five entries.
func evolutionSteps(steps []int) []int {
	if len(steps) <= 5 {
		return steps
	}
	want := map[int]bool{0: true, 1: true, 2: true, 5: true, steps[len(steps)-1]: true}
	var out []int
	for _, s := range steps {
		if want[s] {
			out = append(out, s)
		}
	}
	return out
}
