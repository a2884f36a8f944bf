package main

import (
	"math"
	"testing"

	"resviz/results"
)

func TestLineOverAveragesAndSorts(t *testing.T) {
	runs := []results.ModelRun{
		{Alpha: 0.1, AvgInfoContent: 2},
		{Alpha: 0.01, AvgInfoContent: 1},
		{Alpha: 0.1, AvgInfoContent: 4},
	}
	pts := lineOver(runs,
		func(results.ModelRun) bool { return true },
		func(r results.ModelRun) float64 { return r.Alpha },
		func(r results.ModelRun) float64 { return r.AvgInfoContent })
	if len(pts) != 2 {
		t.Fatalf("got=%d points, want 2", len(pts))
	}
	if pts[0].X != 0.01 || pts[0].Y != 1 {
		t.Fatalf("got=%+v, want (0.01, 1) first", pts[0])
	}
	if pts[1].X != 0.1 || pts[1].Y != 3 {
		t.Fatalf("got=%+v, want duplicates at x averaged to 3", pts[1])
	}
}

func TestLineOverOrderInvariant(t *testing.T) {
	runs := []results.ModelRun{
		{Alpha: 0.01, AvgInfoContent: 1},
		{Alpha: 0.05, AvgInfoContent: 2},
		{Alpha: 0.1, AvgInfoContent: 3},
	}
	reversed := []results.ModelRun{runs[2], runs[1], runs[0]}
	all := func(results.ModelRun) bool { return true }
	x := func(r results.ModelRun) float64 { return r.Alpha }
	y := func(r results.ModelRun) float64 { return r.AvgInfoContent }
	a := lineOver(runs, all, x, y)
	b := lineOver(reversed, all, x, y)
	if len(a) != len(b) {
		t.Fatalf("got=%d vs %d points", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("order dependence at %d: got=%+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestLineOverSkipsAllNaNPoints(t *testing.T) {
	runs := []results.ModelRun{
		{Alpha: 0.01, AvgInfoContent: math.NaN()},
		{Alpha: 0.1, AvgInfoContent: 2},
	}
	pts := lineOver(runs,
		func(results.ModelRun) bool { return true },
		func(r results.ModelRun) float64 { return r.Alpha },
		func(r results.ModelRun) float64 { return r.AvgInfoContent })
	if len(pts) != 1 || pts[0].X != 0.1 {
		t.Fatalf("got=%+v, want the NaN-only x dropped", pts)
	}
}

func TestUniqueHelpers(t *testing.T) {
	runs := []results.ModelRun{
		{File: "b", K: 7, Alpha: 0.1, RecursiveStep: 1},
		{File: "a", K: 3, Alpha: 0.01, RecursiveStep: 0},
		{File: "b", K: 7, Alpha: 0.1, RecursiveStep: 1},
	}
	if got := uniqueFiles(runs); len(got) != 2 || got[0] != "a" {
		t.Fatalf("got=%v, want [a b]", got)
	}
	if got := uniqueKs(runs); len(got) != 2 || got[0] != 3 || got[1] != 7 {
		t.Fatalf("got=%v, want [3 7]", got)
	}
	if got := uniqueSteps(runs); len(got) != 2 || got[1] != 1 {
		t.Fatalf("got=%v, want [0 1]", got)
	}
}
