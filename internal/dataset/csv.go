package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Options controls how raw files are turned into tables.
type Options struct {
	// MaxRows limits rows loaded; 0 means unlimited.
	MaxRows int
	// Delimiter for CSV. If 0, auto-detects from the file extension.
	Delimiter rune
	// MissingMarkers are cell texts treated as missing, case-insensitive.
	// The empty cell is always missing.
	MissingMarkers []string
}

// DefaultOptions returns reasonable loading defaults.
func DefaultOptions() Options {
	return Options{
		MaxRows:        100000,
		MissingMarkers: []string{"na", "n/a", "null", "nan", "missing"},
	}
}

func (o Options) isMissing(s string) bool {
	if s == "" {
		return true
	}
	for _, m := range o.MissingMarkers {
		if strings.EqualFold(s, m) {
			return true
		}
	}
	return false
}

// parseCell converts one raw cell into a Value. Numeric detection strips a
// trailing percent sign and plain thousands commas before parsing.
func (o Options) parseCell(raw string) Value {
	s := strings.TrimSpace(raw)
	if o.isMissing(s) {
		return Missing()
	}
	if f, ok := parseNumber(s); ok {
		return Num(f)
	}
	return Text(s)
}

func parseNumber(s string) (float64, bool) {
	cleaned := strings.TrimSuffix(s, "%")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return f, true
	}
	// Thousands-separated form like 1,234,567.5.
	if strings.Contains(cleaned, ",") {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(cleaned, ",", ""), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// ReadCSV loads a CSV or TSV file into a Table. The first record is the
// header row.
func ReadCSV(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty dataset: %s", filepath.Base(path))
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = int(^uint(0) >> 1)
	}
	var rows [][]Value
	for len(rows) < maxRows {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		row := make([]Value, len(rec))
		for i, cell := range rec {
			row[i] = opt.parseCell(cell)
		}
		rows = append(rows, row)
	}
	return New(filepath.Base(path), header, rows)
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
