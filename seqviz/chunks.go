package main

import (
	"fmt"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"

	"resviz/chart"
	"resviz/results"
)

// runChunks draws a timeline of which reference each chunk of the target
// sequence matched best, colored by the chunk's NRC.
func runChunks(cfg *Config) error {
	rep, err := results.LoadChunkReport(cfg.Input)
	if err != nil {
		return err
	}
	if len(rep.Chunks) == 0 {
		return fmt.Errorf("no chunks in %s", cfg.Input)
	}
	if err := ensureDir(cfg.OutDir); err != nil {
		return err
	}

	laneSet := map[string]bool{}
	for _, c := range rep.Chunks {
		laneSet[c.BestMatch] = true
	}
	lanes := make([]string, 0, len(laneSet))
	for l := range laneSet {
		lanes = append(lanes, l)
	}
	sort.Strings(lanes)
	laneIdx := map[string]int{}
	for i, l := range lanes {
		laneIdx[l] = i
	}

	spans := make([]chart.Span, len(rep.Chunks))
	for i, c := range rep.Chunks {
		spans[i] = chart.Span{
			Start: float64(c.Position),
			End:   float64(c.Position + c.Length),
			Lane:  laneIdx[c.BestMatch],
			Value: c.BestNRC,
		}
	}
	log.Infof("%d chunks over %d references", len(rep.Chunks), len(lanes))

	title := "Best Matching Reference per Chunk"
	if rep.Sequence != "" {
		title = fmt.Sprintf("Best Matching Reference per Chunk (%s)", rep.Sequence)
	}
	short := make([]string, len(lanes))
	for i, l := range lanes {
		short[i] = results.ShortName(l)
	}
	path := filepath.Join(cfg.OutDir, "chunk_timeline.png")
	return chart.Timeline(title, "Sequence position", short, spans, path)
}
