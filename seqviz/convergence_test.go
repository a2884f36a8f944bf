package main

import (
	"math"
	"reflect"
	"testing"

	"resviz/results"
)

func TestStepChanges(t *testing.T) {
	runs := []results.ModelRun{
		{K: 3, Alpha: 0.1, RecursiveStep: 0, AvgInfoContent: 2.0},
		{K: 3, Alpha: 0.1, RecursiveStep: 1, AvgInfoContent: 1.5},
		{K: 3, Alpha: 0.1, RecursiveStep: 2, AvgInfoContent: 1.6},
		// single step for this pair, no change to measure
		{K: 5, Alpha: 0.1, RecursiveStep: 0, AvgInfoContent: 1.0},
	}
	got := stepChanges(runs)
	if len(got) != 2 {
		t.Fatalf("got=%d changes, want 2", len(got))
	}
	if got[0].Step != 1 || math.Abs(got[0].Change-0.5) > 1e-12 {
		t.Fatalf("got=%+v, want |1.5-2.0| at step 1", got[0])
	}
	if got[1].Step != 2 || math.Abs(got[1].Change-0.1) > 1e-12 {
		t.Fatalf("got=%+v, want |1.6-1.5| at step 2", got[1])
	}
}

func TestStepChangesAveragesDuplicateSteps(t *testing.T) {
	// two rows at step 0 (e.g. one per serialization format) average
	// before the difference is taken
	runs := []results.ModelRun{
		{K: 3, Alpha: 0.1, RecursiveStep: 0, AvgInfoContent: 2.0},
		{K: 3, Alpha: 0.1, RecursiveStep: 0, AvgInfoContent: 4.0},
		{K: 3, Alpha: 0.1, RecursiveStep: 1, AvgInfoContent: 1.0},
	}
	got := stepChanges(runs)
	if len(got) != 1 || math.Abs(got[0].Change-2.0) > 1e-12 {
		t.Fatalf("got=%+v, want one change of |1-3|", got)
	}
}

func TestAvgChanges(t *testing.T) {
	runs := []results.ModelRun{
		{K: 5, Alpha: 0.1, RecursiveStep: 0, AvgInfoContent: 3.0},
		{K: 5, Alpha: 0.1, RecursiveStep: 1, AvgInfoContent: 2.0},
		{K: 5, Alpha: 0.1, RecursiveStep: 2, AvgInfoContent: 1.8},
		{K: 3, Alpha: 0.1, RecursiveStep: 0, AvgInfoContent: 2.0},
		{K: 3, Alpha: 0.1, RecursiveStep: 1, AvgInfoContent: 1.0},
	}
	got := avgChanges(runs)
	if len(got) != 2 {
		t.Fatalf("got=%d pairs, want 2", len(got))
	}
	// sorted by k then alpha
	if got[0].K != 3 || got[0].Change != 1.0 {
		t.Fatalf("got=%+v, want k=3 first with change 1", got[0])
	}
	if got[1].K != 5 || math.Abs(got[1].Change-0.6) > 1e-12 {
		t.Fatalf("got=%+v, want mean of 1.0 and 0.2", got[1])
	}
}

func TestEvolutionSteps(t *testing.T) {
	tests := []struct {
		in   []int
		want []int
	}{
		{[]int{0, 1, 2}, []int{0, 1, 2}},
		{[]int{0, 1, 2, 3, 4}, []int{0, 1, 2, 3, 4}},
		{[]int{0, 1, 2, 3, 4, 5, 6, 7}, []int{0, 1, 2, 5, 7}},
		{[]int{0, 1, 2, 3, 4, 6}, []int{0, 1, 2, 6}},
	}
	for _, tt := range tests {
		if got := evolutionSteps(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("evolutionSteps(%v): got=%v, want %v", tt.in, got, tt.want)
		}
	}
}
