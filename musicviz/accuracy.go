package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"resviz/results"
)

// runAccuracy turns a directory of per-query ranking CSVs into one
// AccuracyMetrics JSON file. Each *_results.csv holds the top candidates
// for a query; the ground truth is the song name embedded in the query
// filename, matched fuzzily against the candidate names.
func runAccuracy(cfg *Config) error {
	paths, err := filepath.Glob(filepath.Join(cfg.Input, "*_results.csv"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no *_results.csv files under %s", cfg.Input)
	}
	sort.Strings(paths)

	var m results.AccuracyMetrics
	for _, path := range paths {
		rows, err := results.LoadRankingCSV(path)
		if err != nil {
			log.Warnf("%s: %v", path, err)
			continue
		}
		d := scoreQuery(path, rows)
		m.TotalQueries++
		if d.FoundAtRank != nil {
			switch r := *d.FoundAtRank; {
			case r == 1:
				m.Top1Correct++
				m.Top5Correct++
				m.Top10Correct++
			case r <= 5:
				m.Top5Correct++
				m.Top10Correct++
			case r <= 10:
				m.Top10Correct++
			}
		}
		m.Detailed = append(m.Detailed, d)
	}
	if m.TotalQueries == 0 {
		return fmt.Errorf("no readable ranking files under %s", cfg.Input)
	}
	n := float64(m.TotalQueries)
	m.Top1Accuracy = float64(m.Top1Correct) / n * 100
	m.Top5Accuracy = float64(m.Top5Correct) / n * 100
	m.Top10Accuracy = float64(m.Top10Correct) / n * 100
	log.Infof("%d queries: top-1 %.1f%%, top-5 %.1f%%, top-10 %.1f%%",
		m.TotalQueries, m.Top1Accuracy, m.Top5Accuracy, m.Top10Accuracy)

	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	dest := cfg.OutDir
	if !strings.HasSuffix(dest, ".json") {
		if err := ensureDir(dest); err != nil {
			return err
		}
		dest = filepath.Join(dest, "accuracy_metrics.json")
	}
	return os.WriteFile(dest, out, 0644)
}

// scoreQuery matches the query's ground-truth song against its top-10
// candidates and records where (if anywhere) it was found.
func scoreQuery(path string, rows []results.RankingRow) results.DetailedResult {
	query := strings.TrimSuffix(filepath.Base(path), "_results.csv")
	truth := results.NormalizeSongName(results.ExtractSongName(query))
	d := results.DetailedResult{
		Query:       query,
		GroundTruth: truth,
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Rank < rows[j].Rank })
	if len(rows) > 10 {
		rows = rows[:10]
	}
	for i, row := range rows {
		cand := results.NormalizeSongName(results.ExtractSongName(row.Filename))
		if i == 0 {
			d.TopMatch = cand
			d.TopScore = row.Score
		}
		if d.FoundAtRank == nil && results.FuzzyMatch(truth, cand) {
			rank := row.Rank
			d.FoundAtRank = &rank
		}
	}
	d.Correct = d.FoundAtRank != nil && *d.FoundAtRank == 1
	return d
}
