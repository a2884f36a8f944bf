package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestBlackmanKernelSumsToOne(t *testing.T) {
	kernel := blackmanKernel(infoWindowSize)
	if len(kernel) != infoWindowSize {
		t.Fatalf("got=%d taps, want %d", len(kernel), infoWindowSize)
	}
	sum := 0.0
	for _, v := range kernel {
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("got sum=%v, want 1", sum)
	}
	// symmetric window
	if math.Abs(kernel[0]-kernel[len(kernel)-1]) > 1e-12 {
		t.Fatalf("got=%v vs %v, want symmetric ends", kernel[0], kernel[len(kernel)-1])
	}
}

func TestSmoothProfileConstantSignal(t *testing.T) {
	info := make([]float64, 50)
	for i := range info {
		info[i] = 2.0
	}
	out := smoothProfile(info, infoWindowSize)
	if len(out) != len(info) {
		t.Fatalf("got=%d samples, want %d", len(out), len(info))
	}
	for i, v := range out {
		if math.Abs(v-2.0) > 1e-9 {
			t.Fatalf("sample %d: got=%v, want an averaging filter to keep 2.0", i, v)
		}
	}
}

func TestSmoothProfileTakesMinimumOfDirections(t *testing.T) {
	// a single spike smooths to values strictly below the spike, and the
	// minimum combine keeps the result symmetric around it
	info := make([]float64, 41)
	info[20] = 10
	out := smoothProfile(info, infoWindowSize)
	if out[20] >= 10 {
		t.Fatalf("got=%v, want the spike attenuated", out[20])
	}
	for i := 0; i < len(out)/2; i++ {
		if math.Abs(out[i]-out[len(out)-1-i]) > 1e-9 {
			t.Fatalf("position %d: got=%v vs %v, want symmetry", i, out[i], out[len(out)-1-i])
		}
	}
}

func TestRunInfoWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "symbol_info")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	body := "Position,Information\n"
	for i := 0; i < 30; i++ {
		body += fmt.Sprintf("%d,1.0\n", i)
	}
	if err := os.WriteFile(filepath.Join(sub, "symbols_Escherichia_coli.csv"), []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := defaultConfig()
	cfg.Input = dir
	cfg.OutDir = filepath.Join(dir, "out")
	if err := runInfo(cfg); err != nil {
		t.Fatalf("runInfo: %v", err)
	}
	// trailing character of the organism name is dropped
	if _, err := os.Stat(filepath.Join(cfg.OutDir, "info_profile_processed_Escherichia_col.png")); err != nil {
		t.Fatalf("missing profile png: %v", err)
	}
}
