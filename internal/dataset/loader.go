package dataset

import (
	"errors"
	"strings"
)

// Loader turns a file into a Table. Implementations select on filename.
type Loader interface {
	CanLoad(filename string) bool
	Load(path string, opt Options) (*Table, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// Load selects a loader by filename and reads the table.
func Load(path string, opt Options) (*Table, error) {
	for _, l := range registry {
		if l.CanLoad(path) {
			return l.Load(path, opt)
		}
	}
	return nil, ErrUnsupported
}

// ErrUnsupported indicates the file format has no registered loader.
var ErrUnsupported = errors.New("unsupported dataset format (expected .csv, .tsv or .xlsx)")

type csvLoader struct{}

func (csvLoader) CanLoad(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

func (csvLoader) Load(path string, opt Options) (*Table, error) { return ReadCSV(path, opt) }

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

func (xlsxLoader) Load(path string, opt Options) (*Table, error) {
	return ReadXLSX(path, "", 1, opt)
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}
