package results

import "testing"

func TestLoadExperimentsAndFlatten(t *testing.T) {
	path := writeFile(t, "exps.json", `[
	  {"alpha": 0.01, "k": 5, "execTime_ms": 1200,
	   "references": [
	     {"name": "gb|AE005174|Escherichia coli O157:H7", "kld": 0.2, "nrc": 0.81, "rank": 1},
	     {"name": "Homo sapiens chromosome 1", "kld": 0.4, "nrc": 0.92, "rank": 2}
	   ]}
	]`)
	exps, err := LoadExperiments(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(exps) != 1 || len(exps[0].References) != 2 {
		t.Fatalf("got=%d exps, want 1 with 2 references", len(exps))
	}
	recs := Flatten(exps)
	if len(recs) != 2 {
		t.Fatalf("got=%d records, want 2", len(recs))
	}
	if recs[0].ShortName != "Escherichia coli O157:H7" {
		t.Fatalf("got=%q, want third pipe segment", recs[0].ShortName)
	}
	if recs[1].ShortName != "Homo sapiens" {
		t.Fatalf("got=%q, want first two words", recs[1].ShortName)
	}
	if recs[0].K != 5 || recs[0].Alpha != 0.01 || recs[0].ExecTimeMS != 1200 {
		t.Fatalf("got=%+v, want experiment fields copied", recs[0])
	}
}

func TestLoadExperimentsRejectsObject(t *testing.T) {
	path := writeFile(t, "exps.json", `{"alpha": 0.01}`)
	if _, err := LoadExperiments(path); err == nil {
		t.Fatalf("got=nil, want array shape error")
	}
}

func TestLoadAccuracyMetrics(t *testing.T) {
	path := writeFile(t, "metrics.json", `{
	  "total_queries": 10, "top1_correct": 6, "top5_correct": 8, "top10_correct": 9,
	  "top1_accuracy": 60.0, "top5_accuracy": 80.0, "top10_accuracy": 90.0,
	  "detailed_results": [
	    {"query": "a", "ground_truth": "a", "top_match": "a", "found_at_rank": 1, "correct": true},
	    {"query": "b", "ground_truth": "b", "top_match": "c", "found_at_rank": null, "correct": false}
	  ]
	}`)
	m, err := LoadAccuracyMetrics(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.TotalQueries != 10 || m.Top1Accuracy != 60 {
		t.Fatalf("got=%+v, want 10 queries at 60%%", m)
	}
	if !m.Monotonic() {
		t.Fatalf("got non-monotonic, want top1 <= top5 <= top10")
	}
	if len(m.Detailed) != 2 {
		t.Fatalf("got=%d detailed, want 2", len(m.Detailed))
	}
	if m.Detailed[0].FoundAtRank == nil || *m.Detailed[0].FoundAtRank != 1 {
		t.Fatalf("got=%v, want rank 1", m.Detailed[0].FoundAtRank)
	}
	if m.Detailed[1].FoundAtRank != nil {
		t.Fatalf("got=%v, want nil for null rank", m.Detailed[1].FoundAtRank)
	}
}

func TestLoadAccuracyMetricsPartialFile(t *testing.T) {
	path := writeFile(t, "metrics.json", `{"total_queries": 4, "top1_accuracy": 25.0}`)
	m, err := LoadAccuracyMetrics(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.TotalQueries != 4 || m.Top1Accuracy != 25 || m.Top10Accuracy != 0 {
		t.Fatalf("got=%+v, want absent fields zero", m)
	}
}

func TestLoadParamResultsBothShapes(t *testing.T) {
	bare := writeFile(t, "bare.json",
		`[{"method": "maxfreq", "numFrequencies": 4, "top1_accuracy": 70.0}]`)
	wrapped := writeFile(t, "wrapped.json",
		`{"results": [{"method": "spectral", "numBins": 16, "top1_accuracy": 65.0}]}`)

	out, err := LoadParamResults(bare)
	if err != nil || len(out) != 1 || out[0].Method != "maxfreq" {
		t.Fatalf("bare: got=(%v, %v), want one maxfreq result", out, err)
	}
	out, err = LoadParamResults(wrapped)
	if err != nil || len(out) != 1 || out[0].NumBins != 16 {
		t.Fatalf("wrapped: got=(%v, %v), want one result with 16 bins", out, err)
	}
}

func TestLoadChunkReport(t *testing.T) {
	path := writeFile(t, "chunks.json", `{
	  "sequence": "mystery.fasta",
	  "chunks": [{"position": 0, "length": 500, "best_match": "E. coli", "best_nrc": 0.7}]
	}`)
	rep, err := LoadChunkReport(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rep.Chunks) != 1 || rep.Chunks[0].Length != 500 {
		t.Fatalf("got=%+v, want one 500-long chunk", rep)
	}
}
