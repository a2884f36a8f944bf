package results

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadInfoProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbols_Escherichia_coli.csv")
	body := "Position,Information\n0,1.5\n1,oops\n2,0.25\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	points, err := LoadInfoProfile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("got=%d points, want 3", len(points))
	}
	if points[0].Position != 0 || points[0].Information != 1.5 {
		t.Fatalf("got=%+v, want (0, 1.5)", points[0])
	}
	if !math.IsNaN(points[1].Information) {
		t.Fatalf("got=%v, want NaN for an unparsable cell", points[1].Information)
	}
}

func TestLoadInfoProfileMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("Position,Score\n0,1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadInfoProfile(path); err == nil {
		t.Fatalf("got nil error, want missing-column failure")
	}
}

func TestSymbolFileOrganism(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"symbols_Escherichia_coli.csv", "Escherichia_coli"},
		{"symbols_Homo_sapiens,complete_genome.csv", "Homo_sapiens"},
		{"plain.csv", "plain"},
	}
	for _, tt := range tests {
		if got := SymbolFileOrganism(tt.in); got != tt.want {
			t.Fatalf("SymbolFileOrganism(%q): got=%q, want %q", tt.in, got, tt.want)
		}
	}
}
