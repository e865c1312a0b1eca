package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeFile(t, "sales.csv", strings.Join([]string{
		"region,revenue,share",
		"east,1200.5,45%",
		"west,NA,30%",
		`north,"1,500",25%`,
	}, "\n"))
	tbl, err := ReadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if tbl.Name != "sales.csv" {
		t.Errorf("name = %q", tbl.Name)
	}
	if tbl.NumRows() != 3 || tbl.NumCols() != 3 {
		t.Fatalf("shape = %dx%d", tbl.NumRows(), tbl.NumCols())
	}

	rev, _ := tbl.Column("revenue")
	if !rev.Values[0].IsNum || rev.Values[0].Num != 1200.5 {
		t.Errorf("revenue[0] = %+v", rev.Values[0])
	}
	if !rev.Values[1].Missing {
		t.Errorf("NA should parse as missing, got %+v", rev.Values[1])
	}
	// Thousands separators are stripped during numeric detection.
	if !rev.Values[2].IsNum || rev.Values[2].Num != 1500 {
		t.Errorf("revenue[2] = %+v", rev.Values[2])
	}

	// Percent suffix is stripped but the magnitude is kept as-is.
	share, _ := tbl.Column("share")
	if !share.Values[0].IsNum || share.Values[0].Num != 45 {
		t.Errorf("share[0] = %+v", share.Values[0])
	}
}

func TestReadCSVRaggedRows(t *testing.T) {
	path := writeFile(t, "ragged.csv", strings.Join([]string{
		"a,b,c",
		"1,2",
		"3,4,5,6",
	}, "\n"))
	tbl, err := ReadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	c, _ := tbl.Column("c")
	if !c.Values[0].Missing {
		t.Errorf("short row should pad with missing, got %+v", c.Values[0])
	}
	if c.Values[1].Num != 5 {
		t.Errorf("long row should truncate to header width, got %+v", c.Values[1])
	}
	if tbl.NumCols() != 3 {
		t.Errorf("cols = %d", tbl.NumCols())
	}
}

func TestReadCSVMaxRows(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("n\n")
	for i := 0; i < 50; i++ {
		sb.WriteString("1\n")
	}
	path := writeFile(t, "big.csv", sb.String())
	opt := DefaultOptions()
	opt.MaxRows = 10
	tbl, err := ReadCSV(path, opt)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if tbl.NumRows() != 10 {
		t.Fatalf("rows = %d, want 10", tbl.NumRows())
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", "")
	_, err := ReadCSV(path, DefaultOptions())
	if err == nil || !strings.Contains(err.Error(), "empty dataset") {
		t.Fatalf("expected empty dataset error, got %v", err)
	}
}

func TestReadTSVSniffsTab(t *testing.T) {
	path := writeFile(t, "data.tsv", "a\tb\n1\t2\n")
	tbl, err := ReadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if tbl.NumCols() != 2 {
		t.Fatalf("cols = %d, want 2", tbl.NumCols())
	}
	b, _ := tbl.Column("b")
	if b.Values[0].Num != 2 {
		t.Fatalf("b[0] = %+v", b.Values[0])
	}
}

func TestReadCSVBlankHeaderAutoNamed(t *testing.T) {
	path := writeFile(t, "anon.csv", ",x\n1,2\n")
	tbl, err := ReadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if _, ok := tbl.Column("column_1"); !ok {
		t.Fatalf("blank header should auto-name, columns: %v", tbl.Columns())
	}
}

func TestReadCSVDuplicateHeader(t *testing.T) {
	path := writeFile(t, "dup.csv", "a,a\n1,2\n")
	if _, err := ReadCSV(path, DefaultOptions()); err == nil {
		t.Fatal("expected duplicate column error")
	}
}

func TestLoadDispatchesByExtension(t *testing.T) {
	path := writeFile(t, "sales.csv", "a\n1\n")
	tbl, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.NumRows() != 1 {
		t.Fatalf("rows = %d", tbl.NumRows())
	}
	if _, err := Load(filepath.Join(t.TempDir(), "doc.pdf"), DefaultOptions()); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{"-1.5", -1.5, true},
		{"1,234,567.5", 1234567.5, true},
		{"99%", 99, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"%", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseNumber(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("parseNumber(%q) = %g, %v; want %g, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
