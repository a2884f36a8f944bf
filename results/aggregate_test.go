package results

import "testing"

func stabilityInput() []RefRecord {
	return []RefRecord{
		{K: 5, Alpha: 0.1, Name: "E. coli", ShortName: "E. coli", Rank: 1},
		{K: 5, Alpha: 0.01, Name: "E. coli", ShortName: "E. coli", Rank: 2},
		{K: 5, Alpha: 0.1, Name: "H. sapiens", ShortName: "H. sapiens", Rank: 2},
		{K: 5, Alpha: 0.01, Name: "H. sapiens", ShortName: "H. sapiens", Rank: 1},
		{K: 7, Alpha: 0.1, Name: "H. sapiens", ShortName: "H. sapiens", Rank: 3},
	}
}

func TestRankStabilityScore(t *testing.T) {
	scores := RankStability(stabilityInput())
	if len(scores) != 2 {
		t.Fatalf("got=%d organisms, want 2", len(scores))
	}
	// E. coli placed 1st and 2nd at k=5: score 1+2=3, beating H. sapiens at 6
	if scores[0].Name != "E. coli" || scores[0].Score != 3 {
		t.Fatalf("got=%s score %d, want E. coli score 3", scores[0].Name, scores[0].Score)
	}
	if scores[1].Score != 6 {
		t.Fatalf("got=%d, want 6", scores[1].Score)
	}
	placed := scores[0].Placed
	if len(placed) != 2 {
		t.Fatalf("got=%d placements, want 2", len(placed))
	}
	// placements sorted by k then alpha
	if placed[0].Alpha != 0.01 || placed[0].Rank != 2 {
		t.Fatalf("got=%+v, want (alpha 0.01, rank 2) first", placed[0])
	}
	if placed[1].Alpha != 0.1 || placed[1].Rank != 1 {
		t.Fatalf("got=%+v, want (alpha 0.1, rank 1) second", placed[1])
	}
}

func TestRankStabilityOrderInvariant(t *testing.T) {
	recs := stabilityInput()
	reversed := make([]RefRecord, len(recs))
	for i, r := range recs {
		reversed[len(recs)-1-i] = r
	}
	a := RankStability(recs)
	b := RankStability(reversed)
	if len(a) != len(b) {
		t.Fatalf("got=%d vs %d organisms", len(a), len(b))
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Score != b[i].Score {
			t.Fatalf("order dependence at %d: got=%+v vs %+v", i, a[i], b[i])
		}
		for j := range a[i].Placed {
			if a[i].Placed[j] != b[i].Placed[j] {
				t.Fatalf("placement order dependence: got=%+v vs %+v", a[i].Placed[j], b[i].Placed[j])
			}
		}
	}
}

func TestTopByFrequency(t *testing.T) {
	recs := []RefRecord{
		{Name: "A", Rank: 1},
		{Name: "A", Rank: 2},
		{Name: "B", Rank: 1},
		{Name: "C", Rank: 9}, // below maxRank cutoff
	}
	got := TopByFrequency(recs, 3, 2)
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Fatalf("got=%v, want [A B]", got)
	}
}

func TestParamGrid(t *testing.T) {
	recs := []RefRecord{
		{K: 7, Alpha: 0.1},
		{K: 5, Alpha: 0.01},
		{K: 7, Alpha: 0.01},
	}
	ks, alphas := ParamGrid(recs)
	if len(ks) != 2 || ks[0] != 5 || ks[1] != 7 {
		t.Fatalf("got=%v, want [5 7]", ks)
	}
	if len(alphas) != 2 || alphas[0] != 0.01 || alphas[1] != 0.1 {
		t.Fatalf("got=%v, want [0.01 0.1]", alphas)
	}
}
