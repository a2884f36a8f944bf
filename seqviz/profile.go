package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"resviz/chart"
)

// runProfile renders the k-order context transition matrix of a raw
// sequence file: rows are the k-symbol contexts seen in the sequence,
// columns the symbol that followed, cells the occurrence counts.
func runProfile(cfg *Config) error {
	raw, err := os.ReadFile(cfg.Input)
	if err != nil {
		return err
	}
	seq := cleanSequence(raw)
	k := cfg.ProfileK
	if k <= 0 {
		return fmt.Errorf("context order must be positive, got %d", k)
	}
	if len(seq) <= k {
		return fmt.Errorf("sequence too short for k=%d (%d symbols)", k, len(seq))
	}
	if err := ensureDir(cfg.OutDir); err != nil {
		return err
	}

	counts := contextCounts(seq, k)
	grid, contexts, symbols := countsGrid(counts)
	log.Infof("%d contexts over %d symbols (k=%d)", len(contexts), len(symbols)-1, k)

	title := fmt.Sprintf("Symbol Counts per Context (k=%d)", k)
	path := filepath.Join(cfg.OutDir, fmt.Sprintf("context_profile_k%d.png", k))
	return chart.Heatmap(title, "Next symbol", "Context", grid,
		chart.HeatmapOptions{Annotate: cfg.Annotate, Format: "%.0f"}, path)
}

// cleanSequence strips line breaks and surrounding whitespace; sequence
// files are plain symbol streams, sometimes wrapped.
func cleanSequence(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", "")
}

// contextCounts tallies, for every k-symbol window, which symbol follows it.
func contextCounts(seq string, k int) map[string]map[string]int {
	counts := map[string]map[string]int{}
	for i := 0; i+k < len(seq); i++ {
		ctx := seq[i : i+k]
		next := string(seq[i+k])
		if counts[ctx] == nil {
			counts[ctx] = map[string]int{}
		}
		counts[ctx][next]++
	}
	return counts
}

// countsGrid lays the tallies out as a labelled grid with sorted rows and
// columns plus a trailing Sum column.
func countsGrid(counts map[string]map[string]int) (*chart.Grid, []string, []string) {
	contexts := make([]string, 0, len(counts))
	symSet := map[string]bool{}
	for ctx, m := range counts {
		contexts = append(contexts, ctx)
		for s := range m {
			symSet[s] = true
		}
	}
	sort.Strings(contexts)
	symbols := make([]string, 0, len(symSet))
	for s := range symSet {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	symbols = append(symbols, "Sum")

	grid := chart.NewGrid(symbols, contexts)
	for ri, ctx := range contexts {
		sum := 0
		for ci, s := range symbols[:len(symbols)-1] {
			n := counts[ctx][s]
			grid.Set(ri, ci, float64(n))
			sum += n
		}
		grid.Set(ri, len(symbols)-1, float64(sum))
	}
	return grid, contexts, symbols
}
