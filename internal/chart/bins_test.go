package chart

import (
	"math"
	"testing"
)

func TestComputeBinsCoversRange(t *testing.T) {
	vals := make([]float64, 0, 98)
	for i := 0; i <= 97; i++ {
		vals = append(vals, float64(i))
	}
	bins, err := ComputeBins(vals, 10)
	if err != nil {
		t.Fatalf("ComputeBins: %v", err)
	}
	if len(bins) != 10 {
		t.Fatalf("expected 10 bins, got %d", len(bins))
	}
	if bins[0].Lower != 0 {
		t.Errorf("first bin lower = %g, want 0", bins[0].Lower)
	}
	last := bins[len(bins)-1]
	if last.Upper != 97 || !last.Closed {
		t.Errorf("last bin = %+v, want upper 97 and closed", last)
	}
	// Contiguous: each bin starts where the previous ended.
	for i := 1; i < len(bins); i++ {
		if bins[i].Lower != bins[i-1].Upper {
			t.Errorf("gap between bin %d and %d: %g vs %g", i-1, i, bins[i-1].Upper, bins[i].Lower)
		}
	}
	// Every value lands in exactly one bin.
	counts := AggregateBins(vals, bins)
	total := 0
	for _, bc := range counts {
		total += bc.Count
	}
	if total != len(vals) {
		t.Fatalf("counts sum to %d, want %d", total, len(vals))
	}
}

func TestComputeBinsSingleValue(t *testing.T) {
	bins, err := ComputeBins([]float64{5, 5, 5}, 2)
	if err != nil {
		t.Fatalf("ComputeBins: %v", err)
	}
	if len(bins) != 1 {
		t.Fatalf("expected 1 bin, got %d", len(bins))
	}
	if bins[0].Lower != 5 || bins[0].Upper != 5 || !bins[0].Closed {
		t.Fatalf("unexpected bin: %+v", bins[0])
	}
	if !bins[0].Contains(5) {
		t.Fatal("closed zero-width bin must contain its value")
	}
}

func TestComputeBinsErrors(t *testing.T) {
	if _, err := ComputeBins(nil, 1); err == nil {
		t.Fatal("expected error for empty values")
	}
	if _, err := ComputeBins([]float64{1, 2}, 0); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := ComputeBins([]float64{1, 2}, -3); err == nil {
		t.Fatal("expected error for negative width")
	}
}

func TestComputeBinsFractionalWidthDrift(t *testing.T) {
	// Widths like 0.1 accumulate floating-point drift; the last boundary
	// must still land exactly on the maximum.
	vals := []float64{0, 0.95}
	bins, err := ComputeBins(vals, 0.1)
	if err != nil {
		t.Fatalf("ComputeBins: %v", err)
	}
	last := bins[len(bins)-1]
	if last.Upper != 0.95 || !last.Closed {
		t.Fatalf("last bin = %+v, want upper exactly 0.95 and closed", last)
	}
	counts := AggregateBins(vals, bins)
	total := 0
	for _, bc := range counts {
		total += bc.Count
	}
	if total != 2 {
		t.Fatalf("counts sum to %d, want 2", total)
	}
}

func TestAggregateBinsKeepsZeroBins(t *testing.T) {
	vals := []float64{0, 1, 29, 30}
	bins, err := ComputeBins(vals, 10)
	if err != nil {
		t.Fatalf("ComputeBins: %v", err)
	}
	counts := AggregateBins(vals, bins)
	if len(counts) != len(bins) {
		t.Fatalf("expected %d counted bins, got %d", len(bins), len(counts))
	}
	// Middle decade has no members but still appears.
	if counts[1].Count != 0 {
		t.Errorf("bin %s count = %d, want 0", counts[1].Label(), counts[1].Count)
	}
	if counts[0].Count != 2 || counts[2].Count != 2 {
		t.Errorf("boundary bins got %d and %d, want 2 and 2", counts[0].Count, counts[2].Count)
	}
}

func TestHalfOpenMembership(t *testing.T) {
	iv := Interval{Lower: 10, Upper: 20}
	if !iv.Contains(10) {
		t.Error("lower bound must be included")
	}
	if iv.Contains(20) {
		t.Error("upper bound of a half-open bin must be excluded")
	}
	closed := Interval{Lower: 10, Upper: 20, Closed: true}
	if !closed.Contains(20) {
		t.Error("upper bound of the closed final bin must be included")
	}
}

func TestDefaultWidth(t *testing.T) {
	if w := DefaultWidth(0, 100); w != 10 {
		t.Errorf("DefaultWidth(0,100) = %g, want 10", w)
	}
	if w := DefaultWidth(7, 7); w != 1 {
		t.Errorf("DefaultWidth(7,7) = %g, want 1", w)
	}
}

func TestExpandMidpoints(t *testing.T) {
	counts := []BinCount{
		{Interval: Interval{Lower: 0, Upper: 10}, Count: 2},
		{Interval: Interval{Lower: 10, Upper: 20}, Count: 0},
		{Interval: Interval{Lower: 20, Upper: 30, Closed: true}, Count: 1},
	}
	got := ExpandMidpoints(counts)
	want := []float64{5, 5, 25}
	if len(got) != len(want) {
		t.Fatalf("ExpandMidpoints returned %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("ExpandMidpoints[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestNumBins(t *testing.T) {
	if n := NumBins(0, 100, 10); n != 10 {
		t.Errorf("NumBins(0,100,10) = %d, want 10", n)
	}
	if n := NumBins(5, 5, 10); n != 1 {
		t.Errorf("NumBins(5,5,10) = %d, want 1", n)
	}
}
