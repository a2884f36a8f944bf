package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resviz/results"
)

func paramTestResults() []results.ParamResult {
	return []results.ParamResult{
		{Method: "maxfreq", NumFrequencies: 4, FrameSize: 1024, HopSize: 512, Compressor: "gzip",
			Top1Accuracy: 80, Top5Accuracy: 90, Top10Accuracy: 95},
		{Method: "maxfreq", NumFrequencies: 8, FrameSize: 2048, HopSize: 1024, Compressor: "zstd",
			Top1Accuracy: 60, Top5Accuracy: 70, Top10Accuracy: 80},
		{Method: "spectral", NumBins: 16, FrameSize: 1024, HopSize: 512, Compressor: "gzip",
			Top1Accuracy: 70, Top5Accuracy: 85, Top10Accuracy: 90},
	}
}

func TestParamLine(t *testing.T) {
	pts := paramLine(paramTestResults(),
		func(r results.ParamResult) bool { return r.Method == "maxfreq" },
		func(r results.ParamResult) int { return r.FrameSize })
	if len(pts) != 2 {
		t.Fatalf("got=%d points, want 2", len(pts))
	}
	if pts[0].X != 1024 || pts[0].Y != 80 {
		t.Fatalf("got=%+v, want (1024, 80) first", pts[0])
	}
	if pts[1].X != 2048 || pts[1].Y != 60 {
		t.Fatalf("got=%+v, want (2048, 60)", pts[1])
	}
}

func TestWriteParamReport(t *testing.T) {
	cfg := defaultConfig()
	cfg.OutDir = t.TempDir()
	if err := writeParamReport(cfg, paramTestResults()); err != nil {
		t.Fatalf("writeParamReport: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(cfg.OutDir, "detailed_analysis_report.txt"))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	body := string(raw)
	for _, want := range []string{
		"Total configurations tested: 3",
		"Methods tested: maxfreq, spectral",
		"Compressors tested: gzip, zstd",
		"Best Top-1 accuracy: 80.0%",
		"1. maxfreq - Freq: 4, Bins: 0, Frame: 1024, Hop: 512, Comp: gzip - Acc: 80.0%",
		"MAXFREQ:",
		"Best overall configuration:",
		"  Method: maxfreq",
		"Best spectral configuration:",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("report missing %q:\n%s", want, body)
		}
	}
}

func TestPlotCompressorComparisonSkipsSingle(t *testing.T) {
	cfg := defaultConfig()
	cfg.OutDir = t.TempDir()
	res := []results.ParamResult{
		{Method: "maxfreq", Compressor: "gzip", Top1Accuracy: 50},
	}
	if err := plotCompressorComparison(cfg, res); err != nil {
		t.Fatalf("plotCompressorComparison: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutDir, "compressor_accuracy_boxplot.png")); err == nil {
		t.Fatalf("got a comparison figure for a single compressor, want none")
	}
}
