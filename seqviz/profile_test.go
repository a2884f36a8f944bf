package main

import "testing"

func TestCleanSequence(t *testing.T) {
	got := cleanSequence([]byte("ACGT\nACGT\r\nAC\n"))
	if got != "ACGTACGTAC" {
		t.Fatalf("got=%q, want line breaks stripped", got)
	}
}

func TestContextCounts(t *testing.T) {
	counts := contextCounts("ABABC", 2)
	// windows: AB->A, BA->B, AB->C
	if len(counts) != 2 {
		t.Fatalf("got=%d contexts, want 2", len(counts))
	}
	if counts["AB"]["A"] != 1 || counts["AB"]["C"] != 1 {
		t.Fatalf("got=%v, want AB followed by A and C once each", counts["AB"])
	}
	if counts["BA"]["B"] != 1 {
		t.Fatalf("got=%v, want BA followed by B", counts["BA"])
	}
}

func TestCountsGrid(t *testing.T) {
	counts := map[string]map[string]int{
		"AB": {"A": 1, "C": 2},
		"BA": {"B": 1},
	}
	grid, contexts, symbols := countsGrid(counts)
	if len(contexts) != 2 || contexts[0] != "AB" || contexts[1] != "BA" {
		t.Fatalf("got=%v, want sorted contexts", contexts)
	}
	// sorted symbols plus trailing Sum column
	if len(symbols) != 4 || symbols[3] != "Sum" {
		t.Fatalf("got=%v, want [A B C Sum]", symbols)
	}
	if grid.At(0, 2) != 2 {
		t.Fatalf("got=%v, want count 2 for AB->C", grid.At(0, 2))
	}
	if grid.At(0, 3) != 3 {
		t.Fatalf("got=%v, want row sum 3", grid.At(0, 3))
	}
	if grid.At(1, 3) != 1 {
		t.Fatalf("got=%v, want row sum 1", grid.At(1, 3))
	}
	// absent combinations are genuine zero counts, not missing cells
	if grid.At(1, 0) != 0 {
		t.Fatalf("got=%v, want 0 for BA->A", grid.At(1, 0))
	}
}
