package results

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadModelRuns reads a recursive-model benchmark CSV. Columns are matched
// by header name so column order does not matter. Numeric cells that fail
// to parse become NaN rather than aborting the load. Any File whose
// ModelSize is ever 0 is excluded entirely from the returned rows.
func LoadModelRuns(path string) ([]ModelRun, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}

	col := map[string]int{}
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"alpha", "k", "File"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var runs []ModelRun
	dead := map[string]bool{} // files with a zero-size model anywhere
	for _, row := range records[1:] {
		base := filepath.Base(field(row, "File"))
		run := ModelRun{
			Alpha:          coerceFloat(field(row, "alpha")),
			K:              coerceInt(field(row, "k")),
			RecursiveStep:  coerceInt(field(row, "RecursiveStep")),
			AvgInfoContent: coerceFloat(field(row, "AvgInfoContent")),
			ExecTimeMS:     coerceFloat(field(row, "ExecTime(ms)")),
			ModelSize:      coerceFloat(field(row, "ModelSize")),
			File:           strings.TrimSuffix(base, filepath.Ext(base)),
			Format:         field(row, "ModelType"),
		}
		if run.ModelSize == 0 {
			dead[run.File] = true
		}
		runs = append(runs, run)
	}

	kept := runs[:0]
	for _, run := range runs {
		if !dead[run.File] {
			kept = append(kept, run)
		}
	}
	return kept, nil
}

// LoadRankingCSV reads a per-query ranking file. Each row is
// "rank,filename,score"; a header row and malformed rows are skipped.
// Rows come back sorted the way they appear, which is rank order for
// well-formed files.
func LoadRankingCSV(path string) ([]RankingRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var rows []RankingRow
	for _, rec := range records {
		if len(rec) < 3 {
			continue
		}
		rank, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			continue // header or junk
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			continue
		}
		rows = append(rows, RankingRow{Rank: rank, Filename: strings.TrimSpace(rec[1]), Score: score})
	}
	return rows, nil
}

func coerceFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func coerceInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
