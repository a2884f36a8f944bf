package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"resviz/results"
)

func writeMetrics(t *testing.T, root, dataset string, c combo, top1, top5, top10 float64) {
	t.Helper()
	path := metricsPath(root, dataset, c)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	body := fmt.Sprintf(`{"total_queries": 10, "top1_accuracy": %g, "top5_accuracy": %g, "top10_accuracy": %g}`,
		top1, top5, top10)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write metrics: %v", err)
	}
}

func sweepTestConfig(root string) *Config {
	cfg := defaultConfig()
	cfg.Input = root
	cfg.Methods = []string{"maxfreq"}
	cfg.Formats = []string{"text"}
	cfg.Noises = []string{"clean"}
	cfg.Compressors = []string{"gzip", "zstd"}
	return cfg
}

func TestLoadSweepMissingCombosTallied(t *testing.T) {
	root := t.TempDir()
	cfg := sweepTestConfig(root)
	cfg.Dataset = "youtube"
	writeMetrics(t, root, "youtube", combo{"maxfreq", "text", "clean", "gzip"}, 60, 80, 90)

	data := loadSweep(cfg)
	if len(data.cells) != 1 {
		t.Fatalf("got=%d cells, want 1", len(data.cells))
	}
	if len(data.missing) != 1 {
		t.Fatalf("got=%d missing, want 1", len(data.missing))
	}
	if data.missing[0].Compressor != "zstd" {
		t.Fatalf("got=%v, want zstd tallied missing", data.missing[0])
	}
}

func TestLoadSweepBothDatasetsAveraged(t *testing.T) {
	root := t.TempDir()
	cfg := sweepTestConfig(root)
	cfg.Dataset = "both"
	c := combo{"maxfreq", "text", "clean", "gzip"}
	writeMetrics(t, root, "youtube", c, 60, 80, 90)
	writeMetrics(t, root, "small", c, 40, 60, 70)
	// zstd exists only in one dataset and must still load
	c2 := combo{"maxfreq", "text", "clean", "zstd"}
	writeMetrics(t, root, "small", c2, 50, 70, 80)

	data := loadSweep(cfg)
	m, ok := data.cells[c]
	if !ok {
		t.Fatalf("got no cell for %v", c)
	}
	if m.Top1Accuracy != 50 || m.Top5Accuracy != 70 || m.Top10Accuracy != 80 {
		t.Fatalf("got=%+v, want dataset means 50/70/80", m)
	}
	if m.TotalQueries != 20 {
		t.Fatalf("got=%d queries, want counts summed", m.TotalQueries)
	}
	if m2, ok := data.cells[c2]; !ok || m2.Top1Accuracy != 50 {
		t.Fatalf("got=(%+v, %v), want single-dataset cell kept as-is", m2, ok)
	}
	if len(data.missing) != 0 {
		t.Fatalf("got=%v, want nothing missing", data.missing)
	}
}

func TestBestCombo(t *testing.T) {
	data := &sweepData{cells: map[combo]results.AccuracyMetrics{
		{"maxfreq", "text", "clean", "gzip"}:  {Top1Accuracy: 60, Top5Accuracy: 80, Top10Accuracy: 90},
		{"spectral", "text", "clean", "zstd"}: {Top1Accuracy: 75, Top5Accuracy: 85, Top10Accuracy: 95},
	}}
	c, v := data.bestCombo(1)
	if c.Compressor != "zstd" || v != 75 {
		t.Fatalf("got=(%v, %v), want zstd at 75", c, v)
	}
}

func TestAverageMetricsSingle(t *testing.T) {
	in := results.AccuracyMetrics{TotalQueries: 3, Top1Accuracy: 33.3}
	got := averageMetrics([]results.AccuracyMetrics{in})
	if got.TotalQueries != 3 || got.Top1Accuracy != 33.3 {
		t.Fatalf("got=%+v, want single input passed through", got)
	}
}
