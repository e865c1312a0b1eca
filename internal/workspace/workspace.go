// Package workspace manages named collections of datasets on disk.
// Each workspace lives under the configured workspaces directory as
// <name>/workspace.json plus copies of the registered dataset files.
package workspace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chartloom/chartloom-cli/internal/utils"
)

// Dataset is a dataset file registered in a workspace.
type Dataset struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Path     string    `json:"path"` // relative to the workspace dir
	Rows     int       `json:"rows"`
	Cols     int       `json:"cols"`
	AddedAt  time.Time `json:"added_at"`
	Notes    string    `json:"notes,omitempty"`
	Original string    `json:"original,omitempty"` // source path it was copied from
}

// Workspace is the on-disk metadata for one workspace.
type Workspace struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Datasets    map[string]*Dataset `json:"datasets"`

	dir string
}

// Dir returns the workspace directory on disk.
func (w *Workspace) Dir() string { return w.dir }

func metaPath(dir string) string { return filepath.Join(dir, "workspace.json") }

func validName(name string) error {
	if name == "" {
		return fmt.Errorf("workspace name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid workspace name %q", name)
	}
	return nil
}

// Init creates a new workspace under root. It fails if one already exists
// with the same name.
func Init(root, name, description string) (*Workspace, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	dir := filepath.Join(root, name)
	if _, err := os.Stat(metaPath(dir)); err == nil {
		return nil, fmt.Errorf("workspace %q already exists", name)
	}
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create workspace dir: %w", err)
	}
	now := time.Now().UTC()
	w := &Workspace{
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Datasets:    map[string]*Dataset{},
		dir:         dir,
	}
	if err := w.Save(); err != nil {
		return nil, err
	}
	return w, nil
}

// Open loads an existing workspace by name.
func Open(root, name string) (*Workspace, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	dir := filepath.Join(root, name)
	b, err := os.ReadFile(metaPath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("workspace %q not found", name)
		}
		return nil, fmt.Errorf("read workspace: %w", err)
	}
	var w Workspace
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("parse workspace.json: %w", err)
	}
	if w.Datasets == nil {
		w.Datasets = map[string]*Dataset{}
	}
	w.dir = dir
	return &w, nil
}

// Save persists workspace metadata atomically.
func (w *Workspace) Save() error {
	w.UpdatedAt = time.Now().UTC()
	b, err := utils.PrettyJSON(w)
	if err != nil {
		return fmt.Errorf("marshal workspace: %w", err)
	}
	if err := utils.SafeWriteFile(metaPath(w.dir), b); err != nil {
		return fmt.Errorf("write workspace.json: %w", err)
	}
	return nil
}

// AddDataset copies a dataset file into the workspace and registers it.
// Rows and cols are recorded for display; the caller supplies them after
// loading the file.
func (w *Workspace) AddDataset(srcPath string, rows, cols int, notes string) (*Dataset, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer src.Close()

	base := filepath.Base(srcPath)
	id := uuid.NewString()
	rel := filepath.Join("data", id+"_"+base)
	destPath := filepath.Join(w.dir, rel)
	if err := utils.EnsureDir(filepath.Dir(destPath)); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	dest, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("create dataset copy: %w", err)
	}
	if _, err := io.Copy(dest, src); err != nil {
		dest.Close()
		return nil, fmt.Errorf("copy dataset: %w", err)
	}
	if err := dest.Close(); err != nil {
		return nil, fmt.Errorf("close dataset copy: %w", err)
	}

	ds := &Dataset{
		ID:       id,
		Name:     base,
		Path:     rel,
		Rows:     rows,
		Cols:     cols,
		AddedAt:  time.Now().UTC(),
		Notes:    notes,
		Original: srcPath,
	}
	w.Datasets[id] = ds
	if err := w.Save(); err != nil {
		return nil, err
	}
	return ds, nil
}

// Find resolves a dataset by ID or name. Name matches are case-insensitive;
// an ambiguous name is an error.
func (w *Workspace) Find(ref string) (*Dataset, error) {
	if ds, ok := w.Datasets[ref]; ok {
		return ds, nil
	}
	var matches []*Dataset
	for _, ds := range w.Datasets {
		if strings.EqualFold(ds.Name, ref) {
			matches = append(matches, ds)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("dataset %q not found in workspace %q", ref, w.Name)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("dataset name %q is ambiguous in workspace %q (use the ID)", ref, w.Name)
	}
}

// DatasetPath returns the absolute path of a registered dataset.
func (w *Workspace) DatasetPath(ds *Dataset) string {
	return filepath.Join(w.dir, ds.Path)
}

// Sorted returns datasets ordered by the time they were added.
func (w *Workspace) Sorted() []*Dataset {
	out := make([]*Dataset, 0, len(w.Datasets))
	for _, ds := range w.Datasets {
		out = append(out, ds)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].AddedAt.Before(out[j].AddedAt)
	})
	return out
}

// List returns the names of all workspaces under root, sorted.
func List(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read workspaces dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(metaPath(filepath.Join(root, e.Name()))); err == nil {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
