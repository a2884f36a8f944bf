package results

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadModelRuns(t *testing.T) {
	path := writeFile(t, "results.csv",
		"alpha,k,RecursiveStep,AvgInfoContent,ExecTime(ms),ModelSize,File,ModelType\n"+
			"0.01,3,0,1.95,120,4096,/data/seqs/human.fasta,JSON\n"+
			"0.01,5,0,1.80,150,8192,/data/seqs/human.fasta,BSON\n")
	runs, err := LoadModelRuns(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got=%d runs, want 2", len(runs))
	}
	r := runs[0]
	if r.Alpha != 0.01 || r.K != 3 || r.RecursiveStep != 0 {
		t.Fatalf("got=%+v, want alpha=0.01 k=3 step=0", r)
	}
	if r.File != "human" {
		t.Fatalf("got=%q, want basename without extension", r.File)
	}
	if r.Format != "JSON" {
		t.Fatalf("got=%q, want JSON", r.Format)
	}
}

func TestLoadModelRunsZeroModelSizeExcludesFile(t *testing.T) {
	path := writeFile(t, "results.csv",
		"alpha,k,RecursiveStep,AvgInfoContent,ExecTime(ms),ModelSize,File,ModelType\n"+
			"0.01,3,0,1.95,120,4096,good.fasta,JSON\n"+
			"0.01,3,0,1.90,100,0,bad.fasta,JSON\n"+
			"0.01,5,0,1.70,130,2048,bad.fasta,JSON\n")
	runs, err := LoadModelRuns(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// one zero-size row removes every row of that file, not just the row
	if len(runs) != 1 {
		t.Fatalf("got=%d runs, want 1", len(runs))
	}
	if runs[0].File != "good" {
		t.Fatalf("got=%q, want good", runs[0].File)
	}
}

func TestLoadModelRunsBadCellBecomesNaN(t *testing.T) {
	path := writeFile(t, "results.csv",
		"alpha,k,RecursiveStep,AvgInfoContent,ExecTime(ms),ModelSize,File,ModelType\n"+
			"0.01,3,0,not-a-number,120,4096,seq.fasta,JSON\n")
	runs, err := LoadModelRuns(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !math.IsNaN(runs[0].AvgInfoContent) {
		t.Fatalf("got=%v, want NaN", runs[0].AvgInfoContent)
	}
}

func TestLoadModelRunsMissingColumn(t *testing.T) {
	path := writeFile(t, "results.csv", "alpha,k\n0.01,3\n")
	if _, err := LoadModelRuns(path); err == nil {
		t.Fatalf("got=nil, want missing column error")
	}
}

func TestLoadRankingCSV(t *testing.T) {
	path := writeFile(t, "song_results.csv",
		"rank,filename,score\n"+
			"1,sample_Queen_Bohemian_Rhapsody_gzip.txt,0.41\n"+
			"2,sample_ABBA_Waterloo_gzip.txt,0.55\n"+
			"junk line without numbers,x\n")
	rows, err := LoadRankingCSV(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got=%d rows, want 2", len(rows))
	}
	if rows[0].Rank != 1 || rows[0].Score != 0.41 {
		t.Fatalf("got=%+v, want rank 1 score 0.41", rows[0])
	}
}
