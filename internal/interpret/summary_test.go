package interpret

import (
	"math"
	"strings"
	"testing"

	"github.com/chartloom/chartloom-cli/internal/classify"
	"github.com/chartloom/chartloom-cli/internal/dataset"
)

func TestChartSummaryCategorical(t *testing.T) {
	tbl, types := fixtureTable(t)
	out := ChartSummary(tbl, types, []string{"region"})
	for _, want := range []string{
		"Value distribution for region (3 distinct):",
		"east: 2",
		"north: 1",
		"west: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q\n---\n%s", want, out)
		}
	}
}

func TestChartSummaryNumeric(t *testing.T) {
	tbl, types := fixtureTable(t)
	out := ChartSummary(tbl, types, []string{"revenue"})
	if !strings.Contains(out, "Statistical summary for revenue:") {
		t.Fatalf("summary:\n%s", out)
	}
	if !strings.Contains(out, "count: 3") {
		t.Errorf("missing count:\n%s", out)
	}
	if !strings.Contains(out, "min: 100.5") || !strings.Contains(out, "max: 250.8") {
		t.Errorf("missing range (%%.4g formatting):\n%s", out)
	}
}

func TestChartSummaryPair(t *testing.T) {
	tbl, err := dataset.New("t", []string{"x", "y"}, [][]dataset.Value{
		{dataset.Num(1.5), dataset.Num(3.5)},
		{dataset.Num(2.5), dataset.Num(5.5)},
		{dataset.Num(3.5), dataset.Num(7.5)},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out := ChartSummary(tbl, classify.ClassifyTable(tbl), []string{"x", "y"})
	if !strings.Contains(out, "Relationship between x and y:") {
		t.Fatalf("summary:\n%s", out)
	}
	// y is perfectly linear in x.
	if !strings.Contains(out, "Correlation coefficient: 1.000") {
		t.Fatalf("expected perfect correlation:\n%s", out)
	}
}

func TestChartSummaryMixedPairHasNoCorrelation(t *testing.T) {
	tbl, types := fixtureTable(t)
	out := ChartSummary(tbl, types, []string{"region", "revenue"})
	if strings.Contains(out, "Correlation coefficient") {
		t.Fatalf("correlation only applies to numeric pairs:\n%s", out)
	}
	if !strings.Contains(out, "Value distribution for region") ||
		!strings.Contains(out, "Statistical summary for revenue") {
		t.Fatalf("both columns should be summarized:\n%s", out)
	}
}

func TestStats(t *testing.T) {
	minVal, maxVal, mean, std := stats([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if minVal != 2 || maxVal != 9 {
		t.Errorf("range = %g..%g", minVal, maxVal)
	}
	if mean != 5 {
		t.Errorf("mean = %g, want 5", mean)
	}
	// Sample standard deviation of this classic set.
	if math.Abs(std-2.138089935) > 1e-6 {
		t.Errorf("std = %g", std)
	}
}

func TestPearsonConstantColumn(t *testing.T) {
	tbl, err := dataset.New("t", []string{"x", "y"}, [][]dataset.Value{
		{dataset.Num(1), dataset.Num(5)},
		{dataset.Num(2), dataset.Num(5)},
		{dataset.Num(3), dataset.Num(5)},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := pearson(tbl, "x", "y"); ok {
		t.Fatal("constant column has undefined correlation")
	}
}
