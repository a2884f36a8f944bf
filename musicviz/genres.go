package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"resviz/chart"
	"resviz/results"
)

// genreStat accumulates per-genre identification results.
type genreStat struct {
	Samples     int
	Top1Correct int
	Top5Correct int
}

func (g genreStat) top1() float64 { return pct(g.Top1Correct, g.Samples) }
func (g genreStat) top5() float64 { return pct(g.Top5Correct, g.Samples) }

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// runGenres breaks identification accuracy down by musical genre. Queries
// come from the same *_results.csv ranking files the accuracy command
// reads; the genre of each query song comes from a song,genre CSV, matched
// by word overlap since the two sources spell names differently.
func runGenres(cfg *Config) error {
	genres, err := loadGenreMap(cfg.GenreFile)
	if err != nil {
		return err
	}
	paths, err := filepath.Glob(filepath.Join(cfg.Input, "*_results.csv"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no *_results.csv files under %s", cfg.Input)
	}
	sort.Strings(paths)
	if err := ensureDir(cfg.OutDir); err != nil {
		return err
	}

	stats := map[string]*genreStat{}
	unmatched := 0
	for _, path := range paths {
		rows, err := results.LoadRankingCSV(path)
		if err != nil {
			log.Warnf("%s: %v", path, err)
			continue
		}
		d := scoreQuery(path, rows)
		genre := lookupGenre(genres, d.GroundTruth)
		if genre == "" {
			unmatched++
			log.Debugf("no genre for %q", d.GroundTruth)
			continue
		}
		st := stats[genre]
		if st == nil {
			st = &genreStat{}
			stats[genre] = st
		}
		st.Samples++
		if d.FoundAtRank != nil {
			if *d.FoundAtRank == 1 {
				st.Top1Correct++
			}
			if *d.FoundAtRank <= 5 {
				st.Top5Correct++
			}
		}
	}
	if len(stats) == 0 {
		return fmt.Errorf("no queries matched a genre (%d unmatched)", unmatched)
	}
	if unmatched > 0 {
		log.Warnf("%d queries had no genre match", unmatched)
	}

	names := make([]string, 0, len(stats))
	for g := range stats {
		names = append(names, g)
	}
	// hardest genre first
	sort.Slice(names, func(i, j int) bool {
		a, b := stats[names[i]], stats[names[j]]
		if a.top1() != b.top1() {
			return a.top1() < b.top1()
		}
		return names[i] < names[j]
	})

	top1 := make([]float64, len(names))
	counts := make([]float64, len(names))
	for i, g := range names {
		top1[i] = stats[g].top1()
		counts[i] = float64(stats[g].Samples)
	}
	path := filepath.Join(cfg.OutDir, "genre_accuracy.png")
	if err := chart.RankingBars("Top-1 Accuracy by Genre (%)", names, top1, path); err != nil {
		return err
	}
	path = filepath.Join(cfg.OutDir, "genre_sample_counts.png")
	if err := chart.RankingBars("Samples per Genre", names, counts, path); err != nil {
		return err
	}

	return writeGenreReport(cfg, names, stats, unmatched)
}

// loadGenreMap reads a two-column song,genre CSV. Song names are stored
// normalized; a header row is skipped when present.
func loadGenreMap(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	genres := map[string]string{}
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		song, genre := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
		if i == 0 && strings.EqualFold(genre, "genre") {
			continue
		}
		if song == "" || genre == "" {
			continue
		}
		genres[results.NormalizeSongName(song)] = genre
	}
	if len(genres) == 0 {
		return nil, fmt.Errorf("%s: no song,genre rows", path)
	}
	return genres, nil
}

// Minimum word overlap for a fuzzy genre match.
const genreMatchFloor = 0.3

// lookupGenre finds the genre of a normalized song name: exact first, then
// the best word overlap of at least genreMatchFloor.
func lookupGenre(genres map[string]string, song string) string {
	if g, ok := genres[song]; ok {
		return g
	}
	bestScore := 0.0
	bestSong := ""
	for name := range genres {
		score := results.WordOverlap(song, name)
		if score < genreMatchFloor {
			continue
		}
		if score > bestScore || (score == bestScore && name < bestSong) {
			bestScore = score
			bestSong = name
		}
	}
	if bestSong == "" {
		return ""
	}
	return genres[bestSong]
}

func writeGenreReport(cfg *Config, names []string, stats map[string]*genreStat, unmatched int) error {
	md := strings.EqualFold(cfg.Report, "md")
	var b strings.Builder
	if md {
		b.WriteString("# Genre Difficulty Report\n\n")
		fmt.Fprintf(&b, "Genres ordered hardest first. %d queries had no genre match.\n\n", unmatched)
		b.WriteString("| Genre | Samples | Top-1 | Top-5 |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, g := range names {
			st := stats[g]
			fmt.Fprintf(&b, "| %s | %d | %.1f%% | %.1f%% |\n", g, st.Samples, st.top1(), st.top5())
		}
	} else {
		b.WriteString("=== GENRE DIFFICULTY REPORT ===\n")
		fmt.Fprintf(&b, "Genres ordered hardest first. Unmatched queries: %d\n\n", unmatched)
		for _, g := range names {
			st := stats[g]
			fmt.Fprintf(&b, "%-20s samples=%-4d top1=%5.1f%% top5=%5.1f%%\n", g, st.Samples, st.top1(), st.top5())
		}
	}
	name := "genre_report.txt"
	if md {
		name = "genre_report.md"
	}
	return os.WriteFile(filepath.Join(cfg.OutDir, name), []byte(b.String()), 0644)
}
