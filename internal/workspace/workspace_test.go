package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitOpenRoundTrip(t *testing.T) {
	root := t.TempDir()
	ws, err := Init(root, "reports", "monthly reporting data")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if ws.Name != "reports" || ws.Description != "monthly reporting data" {
		t.Fatalf("workspace = %+v", ws)
	}
	if _, err := os.Stat(filepath.Join(root, "reports", "workspace.json")); err != nil {
		t.Fatalf("workspace.json not written: %v", err)
	}

	got, err := Open(root, "reports")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got.Name != "reports" || got.Description != ws.Description {
		t.Fatalf("reopened = %+v", got)
	}
	if got.Datasets == nil {
		t.Fatal("datasets map must be initialized")
	}
}

func TestInitRejectsDuplicatesAndBadNames(t *testing.T) {
	root := t.TempDir()
	if _, err := Init(root, "a", ""); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := Init(root, "a", ""); err == nil {
		t.Fatal("expected duplicate error")
	}
	for _, bad := range []string{"", "..", "x/y", `x\y`} {
		if _, err := Init(root, bad, ""); err == nil {
			t.Errorf("expected error for name %q", bad)
		}
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(t.TempDir(), "nope"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestAddDatasetCopiesFile(t *testing.T) {
	root := t.TempDir()
	ws, err := Init(root, "w", "")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	src := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(src, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	ds, err := ws.AddDataset(src, 1, 2, "august export")
	if err != nil {
		t.Fatalf("AddDataset: %v", err)
	}
	if ds.ID == "" || ds.Name != "sales.csv" || ds.Rows != 1 || ds.Cols != 2 {
		t.Fatalf("dataset = %+v", ds)
	}
	copied, err := os.ReadFile(ws.DatasetPath(ds))
	if err != nil {
		t.Fatalf("read copy: %v", err)
	}
	if string(copied) != "a,b\n1,2\n" {
		t.Fatalf("copy content = %q", copied)
	}

	// Registration survives a reopen.
	got, err := Open(root, "w")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(got.Datasets) != 1 {
		t.Fatalf("datasets = %+v", got.Datasets)
	}
}

func TestFindByIDAndName(t *testing.T) {
	root := t.TempDir()
	ws, err := Init(root, "w", "")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	src := filepath.Join(t.TempDir(), "Sales.csv")
	if err := os.WriteFile(src, []byte("a\n1\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	ds, err := ws.AddDataset(src, 1, 1, "")
	if err != nil {
		t.Fatalf("AddDataset: %v", err)
	}

	if got, err := ws.Find(ds.ID); err != nil || got.ID != ds.ID {
		t.Fatalf("Find by ID: %v", err)
	}
	if got, err := ws.Find("sales.csv"); err != nil || got.ID != ds.ID {
		t.Fatalf("case-insensitive name lookup: %v", err)
	}
	if _, err := ws.Find("missing.csv"); err == nil {
		t.Fatal("expected not-found error")
	}

	// A second dataset with the same name makes the name ambiguous.
	if _, err := ws.AddDataset(src, 1, 1, ""); err != nil {
		t.Fatalf("AddDataset: %v", err)
	}
	if _, err := ws.Find("sales.csv"); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Fatalf("expected ambiguity error, got %v", err)
	}
}

func TestList(t *testing.T) {
	root := t.TempDir()
	names, err := List(root)
	if err != nil || names != nil {
		t.Fatalf("List on empty root = %v, %v", names, err)
	}
	for _, n := range []string{"beta", "alpha"} {
		if _, err := Init(root, n, ""); err != nil {
			t.Fatalf("Init %s: %v", n, err)
		}
	}
	// A stray directory without workspace.json is ignored.
	if err := os.MkdirAll(filepath.Join(root, "junk"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	names, err = List(root)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Fatalf("names = %v", names)
	}
}
