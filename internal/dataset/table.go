package dataset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Value is a single table cell: missing, numeric, or text.
type Value struct {
	Missing bool
	IsNum   bool
	Num     float64
	Text    string
}

// Num returns a numeric cell value.
func Num(v float64) Value { return Value{IsNum: true, Num: v} }

// Text returns a textual cell value.
func Text(s string) Value { return Value{Text: s} }

// Missing returns a missing cell value.
func Missing() Value { return Value{Missing: true} }

// String renders the cell for display. Numbers use the shortest exact form,
// so an integral float prints without a fractional part.
func (v Value) String() string {
	if v.Missing {
		return ""
	}
	if v.IsNum {
		return FormatNum(v.Num)
	}
	return v.Text
}

// FormatNum renders a float with the shortest representation that round-trips.
func FormatNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Column is an ordered sequence of cells identified by name within a table.
type Column struct {
	Name   string
	Values []Value
}

// NonMissing returns the count of non-missing cells.
func (c *Column) NonMissing() int {
	n := 0
	for _, v := range c.Values {
		if !v.Missing {
			n++
		}
	}
	return n
}

// MissingCount returns the count of missing cells.
func (c *Column) MissingCount() int { return len(c.Values) - c.NonMissing() }

// Numbers returns the non-missing numeric values in row order and whether
// every non-missing cell was numeric.
func (c *Column) Numbers() (vals []float64, allNumeric bool) {
	allNumeric = true
	for _, v := range c.Values {
		if v.Missing {
			continue
		}
		if !v.IsNum {
			allNumeric = false
			continue
		}
		vals = append(vals, v.Num)
	}
	return vals, allNumeric
}

// Strings returns the non-missing cells rendered for display, in row order.
func (c *Column) Strings() []string {
	out := make([]string, 0, len(c.Values))
	for _, v := range c.Values {
		if v.Missing {
			continue
		}
		out = append(out, v.String())
	}
	return out
}

// Distinct returns the distinct non-missing rendered values, sorted. When all
// distinct values parse as numbers the sort is numeric, otherwise lexical, so
// the order is stable regardless of row order.
func (c *Column) Distinct() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, v := range c.Values {
		if v.Missing {
			continue
		}
		s := v.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	SortValues(out)
	return out
}

// SortValues sorts rendered cell values numerically when every entry parses
// as a number, lexically otherwise.
func SortValues(vals []string) {
	nums := make([]float64, len(vals))
	numeric := true
	for i, s := range vals {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			numeric = false
			break
		}
		nums[i] = f
	}
	if numeric {
		sort.Slice(vals, func(i, j int) bool { return nums[i] < nums[j] })
		return
	}
	sort.Strings(vals)
}

// Table is an ordered set of named, equal-length columns.
type Table struct {
	Name  string
	cols  []*Column
	index map[string]int
}

// New builds a table from a header and rows. Column names must be unique and
// non-empty after trimming; short rows are padded with missing cells, long
// rows are truncated to the header width.
func New(name string, header []string, rows [][]Value) (*Table, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("table %q has no columns", name)
	}
	t := &Table{Name: name, index: make(map[string]int, len(header))}
	for i, h := range header {
		cn := strings.TrimSpace(h)
		if cn == "" {
			cn = fmt.Sprintf("column_%d", i+1)
		}
		if _, dup := t.index[cn]; dup {
			return nil, fmt.Errorf("duplicate column name %q", cn)
		}
		t.index[cn] = i
		t.cols = append(t.cols, &Column{Name: cn, Values: make([]Value, 0, len(rows))})
	}
	for _, row := range rows {
		for i := range t.cols {
			if i < len(row) {
				t.cols[i].Values = append(t.cols[i].Values, row[i])
			} else {
				t.cols[i].Values = append(t.cols[i].Values, Missing())
			}
		}
	}
	return t, nil
}

// Columns returns the columns in table order.
func (t *Table) Columns() []*Column { return t.cols }

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Values)
}

// NumCols returns the column count.
func (t *Table) NumCols() int { return len(t.cols) }

// MissingTotal returns the number of missing cells across all columns.
func (t *Table) MissingTotal() int {
	n := 0
	for _, c := range t.cols {
		n += c.MissingCount()
	}
	return n
}

// SampleRows returns up to n leading rows rendered for display.
func (t *Table) SampleRows(n int) [][]string {
	if n > t.NumRows() {
		n = t.NumRows()
	}
	out := make([][]string, 0, n)
	for r := 0; r < n; r++ {
		row := make([]string, len(t.cols))
		for i, c := range t.cols {
			row[i] = c.Values[r].String()
		}
		out = append(out, row)
	}
	return out
}
