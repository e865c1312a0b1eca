package interpret

import (
	"strings"
	"testing"

	"github.com/chartloom/chartloom-cli/internal/classify"
	"github.com/chartloom/chartloom-cli/internal/dataset"
)

func fixtureTable(t *testing.T) (*dataset.Table, *classify.TypeMap) {
	t.Helper()
	tbl, err := dataset.New("orders.csv", []string{"region", "revenue"}, [][]dataset.Value{
		{dataset.Text("east"), dataset.Num(100.5)},
		{dataset.Text("west"), dataset.Num(250.75)},
		{dataset.Text("east"), dataset.Missing()},
		{dataset.Text("north"), dataset.Num(180.25)},
	})
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return tbl, classify.ClassifyTable(tbl)
}

func TestDatasetContext(t *testing.T) {
	tbl, types := fixtureTable(t)
	ctx := DatasetContext(tbl, types, "online store orders")

	for _, want := range []string{
		"[DATASET OVERVIEW]",
		"Dataset: orders.csv",
		"Rows: 4",
		"Columns: 2",
		"Description (provided by user): online store orders",
		"[COLUMNS]",
		"- region: Categorical (3 unique values) - values: east, north, west",
		"- revenue: Numeric (Continuous) (range: 100.50 to 250.75)",
		"[MISSING VALUES]",
		"Total missing cells: 1",
		"[SAMPLE ROWS] (first 3)",
		"| region | revenue |",
	} {
		if !strings.Contains(ctx, want) {
			t.Errorf("context missing %q\n---\n%s", want, ctx)
		}
	}
}

func TestDatasetContextOmitsEmptyDescription(t *testing.T) {
	tbl, types := fixtureTable(t)
	ctx := DatasetContext(tbl, types, "")
	if strings.Contains(ctx, "Description") {
		t.Fatalf("empty description should not appear:\n%s", ctx)
	}
}

func TestDatasetContextDistinctPreviewCap(t *testing.T) {
	header := []string{"city"}
	var rows [][]dataset.Value
	for _, c := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		rows = append(rows, []dataset.Value{dataset.Text(c)})
	}
	tbl, err := dataset.New("cities", header, rows)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := DatasetContext(tbl, classify.ClassifyTable(tbl), "")
	if !strings.Contains(ctx, "(12 unique values)") {
		t.Fatalf("missing distinct count:\n%s", ctx)
	}
	// Too many distinct values: the preview list is suppressed.
	if strings.Contains(ctx, "- values:") {
		t.Fatalf("preview should be suppressed above the cap:\n%s", ctx)
	}
}

func TestSafeCell(t *testing.T) {
	if got := safeCell("a|b\nc"); got != "a/b c" {
		t.Errorf("safeCell = %q", got)
	}
	long := strings.Repeat("x", 100)
	if got := safeCell(long); len(got) != 80 || !strings.HasSuffix(got, "...") {
		t.Errorf("long cell = %q (len %d)", got, len(got))
	}
}
